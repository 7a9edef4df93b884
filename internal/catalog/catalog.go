package catalog

import (
	"fmt"
	"sort"
	"strings"
)

// ExtensionPoint names an Outlook UI surface an add-in can opt into.
type ExtensionPoint string

const (
	MessageReadCommandSurface          ExtensionPoint = "MessageReadCommandSurface"
	MessageComposeCommandSurface       ExtensionPoint = "MessageComposeCommandSurface"
	AppointmentAttendeeCommandSurface  ExtensionPoint = "AppointmentAttendeeCommandSurface"
	AppointmentOrganizerCommandSurface ExtensionPoint = "AppointmentOrganizerCommandSurface"
)

// AppVariant identifies one generated client application.
type AppVariant string

const (
	VariantCompose AppVariant = "compose"
	VariantRead    AppVariant = "read"
)

// Dir returns the directory name of the variant under the add-in root.
func (v AppVariant) Dir() string {
	return "app" + string(v)
}

// StartPage returns the variant's index page under host.
func (v AppVariant) StartPage(host string) string {
	return strings.TrimSuffix(host, "/") + "/" + v.Dir() + "/index.html"
}

// FormType is the manifest <Form xsi:type> value.
type FormType string

const (
	FormItemEdit FormType = "ItemEdit"
	FormItemRead FormType = "ItemRead"
)

// ItemType is the Office item kind a rule matches.
type ItemType string

const (
	ItemMessage     ItemType = "Message"
	ItemAppointment ItemType = "Appointment"
)

// RuleFormType is the FormType attribute of an ItemIs rule.
type RuleFormType string

const (
	RuleRead RuleFormType = "Read"
	RuleEdit RuleFormType = "Edit"
)

// Rule is one <Rule xsi:type="ItemIs"> activation predicate.
type Rule struct {
	ItemType ItemType
	FormType RuleFormType
}

func (r Rule) String() string {
	return string(r.ItemType) + "/" + string(r.FormType)
}

// Entry is one row of the catalog.
type Entry struct {
	Point       ExtensionPoint
	Description string
	Variant     AppVariant
	Form        FormType
	Rule        Rule
}

// entries is ordered; that order is the canonical output order everywhere.
var entries = []Entry{
	{
		Point:       MessageReadCommandSurface,
		Description: "Commands on the ribbon while reading a message",
		Variant:     VariantRead,
		Form:        FormItemRead,
		Rule:        Rule{ItemType: ItemMessage, FormType: RuleRead},
	},
	{
		Point:       MessageComposeCommandSurface,
		Description: "Commands on the ribbon while composing a message",
		Variant:     VariantCompose,
		Form:        FormItemEdit,
		Rule:        Rule{ItemType: ItemMessage, FormType: RuleEdit},
	},
	{
		Point:       AppointmentAttendeeCommandSurface,
		Description: "Commands on the ribbon for an appointment attendee",
		Variant:     VariantRead,
		Form:        FormItemRead,
		Rule:        Rule{ItemType: ItemAppointment, FormType: RuleRead},
	},
	{
		Point:       AppointmentOrganizerCommandSurface,
		Description: "Commands on the ribbon for an appointment organizer",
		Variant:     VariantCompose,
		Form:        FormItemEdit,
		Rule:        Rule{ItemType: ItemAppointment, FormType: RuleEdit},
	},
}

// Variants and Forms list every value in canonical order.
var (
	Variants = []AppVariant{VariantCompose, VariantRead}
	Forms    = []FormType{FormItemEdit, FormItemRead}
)

// UnknownExtensionPointError reports a selection the catalog has no row for.
type UnknownExtensionPointError struct {
	Point string
}

func (e *UnknownExtensionPointError) Error() string {
	return fmt.Sprintf("unknown extension point %q (known: %s)", e.Point, strings.Join(Names(), ", "))
}

// Entries returns a copy of the catalog in canonical order.
func Entries() []Entry {
	out := make([]Entry, len(entries))
	copy(out, entries)
	return out
}

// Lookup returns the catalog row for p.
func Lookup(p ExtensionPoint) (Entry, error) {
	for _, e := range entries {
		if e.Point == p {
			return e, nil
		}
	}
	return Entry{}, &UnknownExtensionPointError{Point: string(p)}
}

// Parse converts a raw name into an ExtensionPoint. Matching is exact.
func Parse(name string) (ExtensionPoint, error) {
	e, err := Lookup(ExtensionPoint(name))
	if err != nil {
		return "", err
	}
	return e.Point, nil
}

// Names returns every extension point name, sorted.
func Names() []string {
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, string(e.Point))
	}
	sort.Strings(names)
	return names
}

// Index returns the canonical position of p, or -1.
func Index(p ExtensionPoint) int {
	for i, e := range entries {
		if e.Point == p {
			return i
		}
	}
	return -1
}
