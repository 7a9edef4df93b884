package manifest

import (
	"bytes"
	"encoding/xml"
	"fmt"
)

const fileNamePrefix = "manifest-"

// FileName returns the manifest file name for a sanitized project name.
func FileName(sanitizedName string) string {
	return fileNamePrefix + sanitizedName + ".xml"
}

// Marshal renders the manifest as an indented XML document with header. The
// xsi prefix is always declared, including on manifests returned by Parse.
func Marshal(app *OfficeApp) ([]byte, error) {
	if app.XMLNSXSI == "" {
		withNS := *app
		withNS.XMLNSXSI = XSINamespace
		app = &withNS
	}
	body, err := xml.MarshalIndent(app, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling manifest: %w", err)
	}

	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	buf.Write(body)
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

// Parse decodes a manifest document.
func Parse(data []byte) (*OfficeApp, error) {
	var app OfficeApp
	if err := xml.Unmarshal(data, &app); err != nil {
		return nil, fmt.Errorf("parsing manifest: %w", err)
	}
	return &app, nil
}
