package manifest

import "encoding/xml"

const (
	// Namespace is the default namespace of an Office 1.1 manifest.
	Namespace = "http://schemas.microsoft.com/office/appforoffice/1.1"

	// XSINamespace is the XML Schema instance namespace used by xsi:type.
	XSINamespace = "http://www.w3.org/2001/XMLSchema-instance"
)

// xsi:type values used by mail add-in manifests.
const (
	TypeMailApp        = "MailApp"
	TypeRuleCollection = "RuleCollection"
	TypeItemIs         = "ItemIs"
)

// XSIType is an xsi:type attribute. It always marshals with the "xsi" prefix
// declared on the root element; parsing matches it by namespace.
type XSIType string

// MarshalXMLAttr implements xml.MarshalerAttr.
func (t XSIType) MarshalXMLAttr(_ xml.Name) (xml.Attr, error) {
	return xml.Attr{Name: xml.Name{Local: "xsi:type"}, Value: string(t)}, nil
}

// OfficeApp is the manifest root element.
type OfficeApp struct {
	XMLName  xml.Name `xml:"http://schemas.microsoft.com/office/appforoffice/1.1 OfficeApp" json:"-"`
	XMLNSXSI string   `xml:"xmlns:xsi,attr" json:"-"`
	Type     XSIType  `xml:"http://www.w3.org/2001/XMLSchema-instance type,attr" json:"xsiType"`

	ID                    string       `xml:"Id" json:"Id"`
	Version               string       `xml:"Version" json:"Version"`
	ProviderName          string       `xml:"ProviderName" json:"ProviderName"`
	DefaultLocale         string       `xml:"DefaultLocale" json:"DefaultLocale"`
	DisplayName           Value        `xml:"DisplayName" json:"DisplayName"`
	Description           Value        `xml:"Description" json:"Description"`
	IconURL               Value        `xml:"IconUrl" json:"IconUrl"`
	HighResolutionIconURL Value        `xml:"HighResolutionIconUrl" json:"HighResolutionIconUrl"`
	Hosts                 Hosts        `xml:"Hosts" json:"Hosts"`
	Requirements          Requirements `xml:"Requirements" json:"Requirements"`
	FormSettings          FormSettings `xml:"FormSettings" json:"FormSettings"`
	Permissions           string       `xml:"Permissions" json:"Permissions"`
	Rule                  RuleSet      `xml:"Rule" json:"Rule"`

	DisableEntityHighlighting bool `xml:"DisableEntityHighlighting" json:"DisableEntityHighlighting"`
}

// Value is an element carrying a single DefaultValue attribute.
type Value struct {
	DefaultValue string `xml:"DefaultValue,attr" json:"DefaultValue"`
}

// Hosts lists the Office hosts the add-in runs in.
type Hosts struct {
	Host []Host `xml:"Host" json:"Host"`
}

// Host is one <Host Name="..."/> entry.
type Host struct {
	Name string `xml:"Name,attr" json:"Name"`
}

// Requirements declares the API sets the add-in needs.
type Requirements struct {
	Sets Sets `xml:"Sets" json:"Sets"`
}

// Sets is the <Sets> container.
type Sets struct {
	Set []Set `xml:"Set" json:"Set"`
}

// Set is one requirement set.
type Set struct {
	Name       string `xml:"Name,attr" json:"Name"`
	MinVersion string `xml:"MinVersion,attr" json:"MinVersion"`
}

// FormSettings holds one Form per supported form type.
type FormSettings struct {
	Forms []Form `xml:"Form" json:"Form"`
}

// Form declares the page shown for one item view (ItemRead or ItemEdit).
type Form struct {
	Type            XSIType         `xml:"http://www.w3.org/2001/XMLSchema-instance type,attr" json:"xsiType"`
	DesktopSettings DesktopSettings `xml:"DesktopSettings" json:"DesktopSettings"`
}

// DesktopSettings is the desktop client configuration of a form.
type DesktopSettings struct {
	SourceLocation  Value `xml:"SourceLocation" json:"SourceLocation"`
	RequestedHeight int   `xml:"RequestedHeight,omitempty" json:"RequestedHeight,omitempty"`
}

// RuleSet is the top-level activation rule collection.
type RuleSet struct {
	Type  XSIType `xml:"http://www.w3.org/2001/XMLSchema-instance type,attr" json:"xsiType"`
	Mode  string  `xml:"Mode,attr" json:"Mode"`
	Rules []Rule  `xml:"Rule" json:"Rule"`
}

// Rule is one ItemIs activation rule.
type Rule struct {
	Type     XSIType `xml:"http://www.w3.org/2001/XMLSchema-instance type,attr" json:"xsiType"`
	ItemType string  `xml:"ItemType,attr" json:"ItemType"`
	FormType string  `xml:"FormType,attr" json:"FormType"`
}

// FormTypes returns the xsi:type of every form, in document order.
func (a *OfficeApp) FormTypes() []string {
	out := make([]string, 0, len(a.FormSettings.Forms))
	for _, f := range a.FormSettings.Forms {
		out = append(out, string(f.Type))
	}
	return out
}

// FindForm returns the form with the given xsi:type, or nil.
func (a *OfficeApp) FindForm(formType string) *Form {
	for i := range a.FormSettings.Forms {
		if string(a.FormSettings.Forms[i].Type) == formType {
			return &a.FormSettings.Forms[i]
		}
	}
	return nil
}

// HasRule reports whether an ItemIs rule for itemType/formType exists.
func (a *OfficeApp) HasRule(itemType, formType string) bool {
	for _, r := range a.Rule.Rules {
		if r.Type == TypeItemIs && r.ItemType == itemType && r.FormType == formType {
			return true
		}
	}
	return false
}
