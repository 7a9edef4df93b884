// Package selection reduces a set of chosen extension points to the deduplicated
// app variants, manifest forms and activation rules they imply.
package selection

import (
	"errors"
	"sort"

	"github.com/officegen-labs/officegen/internal/catalog"
)

// ErrEmptySelection is returned when no extension point was selected.
var ErrEmptySelection = errors.New("at least one extension point must be selected")

// Selection is the resolved form of a set of extension points. Every slice is
// deduplicated and ordered canonically; callers should still compare as sets.
type Selection struct {
	Points   []catalog.ExtensionPoint
	Variants []catalog.AppVariant
	Forms    []Form
	Rules    []catalog.Rule
}

// Form pairs a manifest form type with the variant whose start page hosts it.
type Form struct {
	Type    catalog.FormType
	Variant catalog.AppVariant
}

// Resolve maps selected points through the catalog. Unknown points fail with
// *catalog.UnknownExtensionPointError and no partial result.
func Resolve(points []catalog.ExtensionPoint) (*Selection, error) {
	if len(points) == 0 {
		return nil, ErrEmptySelection
	}

	rows := make([]catalog.Entry, 0, len(points))
	for _, p := range points {
		e, err := catalog.Lookup(p)
		if err != nil {
			return nil, err
		}
		rows = append(rows, e)
	}

	// Canonical order makes output independent of input order.
	sort.SliceStable(rows, func(i, j int) bool {
		return catalog.Index(rows[i].Point) < catalog.Index(rows[j].Point)
	})

	sel := &Selection{}
	seenPoint := make(map[catalog.ExtensionPoint]bool)
	seenVariant := make(map[catalog.AppVariant]bool)
	seenForm := make(map[catalog.FormType]bool)
	seenRule := make(map[catalog.Rule]bool)

	for _, e := range rows {
		if !seenPoint[e.Point] {
			seenPoint[e.Point] = true
			sel.Points = append(sel.Points, e.Point)
		}
		if !seenVariant[e.Variant] {
			seenVariant[e.Variant] = true
		}
		if !seenForm[e.Form] {
			seenForm[e.Form] = true
			sel.Forms = append(sel.Forms, Form{Type: e.Form, Variant: e.Variant})
		}
		if !seenRule[e.Rule] {
			seenRule[e.Rule] = true
			sel.Rules = append(sel.Rules, e.Rule)
		}
	}

	for _, v := range catalog.Variants {
		if seenVariant[v] {
			sel.Variants = append(sel.Variants, v)
		}
	}
	sort.SliceStable(sel.Forms, func(i, j int) bool {
		return formRank(sel.Forms[i].Type) < formRank(sel.Forms[j].Type)
	})

	return sel, nil
}

// ResolveNames parses raw names (as supplied on the command line) and resolves them.
func ResolveNames(names []string) (*Selection, error) {
	if len(names) == 0 {
		return nil, ErrEmptySelection
	}
	points := make([]catalog.ExtensionPoint, 0, len(names))
	for _, n := range names {
		p, err := catalog.Parse(n)
		if err != nil {
			return nil, err
		}
		points = append(points, p)
	}
	return Resolve(points)
}

// HasVariant reports whether v is part of the selection.
func (s *Selection) HasVariant(v catalog.AppVariant) bool {
	for _, got := range s.Variants {
		if got == v {
			return true
		}
	}
	return false
}

// HasForm reports whether a form of type ft is part of the selection.
func (s *Selection) HasForm(ft catalog.FormType) bool {
	for _, f := range s.Forms {
		if f.Type == ft {
			return true
		}
	}
	return false
}

// HasRule reports whether r is part of the selection.
func (s *Selection) HasRule(r catalog.Rule) bool {
	for _, got := range s.Rules {
		if got == r {
			return true
		}
	}
	return false
}

func formRank(ft catalog.FormType) int {
	for i, f := range catalog.Forms {
		if f == ft {
			return i
		}
	}
	return len(catalog.Forms)
}
