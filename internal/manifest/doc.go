// Package manifest models the Outlook mail add-in manifest (the OfficeApp XML
// document). It marshals and parses the XML form and validates a manifest
// against an embedded JSON Schema covering the subset of the Office 1.1 schema
// the generator emits.
package manifest
