package convert

import (
	"fmt"
	"os"

	"github.com/goccy/go-yaml"
)

// Format describes the file extension and MIME type of a conversion target.
type Format struct {
	Extension string `yaml:"extension"`
	MIME      string `yaml:"mime"`
}

// DefaultFormats returns the built-in target-format table, matching the
// formats unoconv ships with for office documents.
func DefaultFormats() map[string]Format {
	return map[string]Format{
		"pdf":  {Extension: "pdf", MIME: "application/pdf"},
		"doc":  {Extension: "doc", MIME: "application/msword"},
		"docx": {Extension: "docx", MIME: "application/vnd.openxmlformats-officedocument.wordprocessingml.document"},
		"odt":  {Extension: "odt", MIME: "application/vnd.oasis.opendocument.text"},
		"rtf":  {Extension: "rtf", MIME: "application/rtf"},
		"html": {Extension: "html", MIME: "text/html"},
		"txt":  {Extension: "txt", MIME: "text/plain"},
		"xlsx": {Extension: "xlsx", MIME: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"},
		"ods":  {Extension: "ods", MIME: "application/vnd.oasis.opendocument.spreadsheet"},
		"csv":  {Extension: "csv", MIME: "text/csv"},
	}
}

// LoadFormats reads a YAML file mapping format names to extension/mime pairs
// and overlays it on the default table. Deployments add or override entries
// without rebuilding.
func LoadFormats(path string) (map[string]Format, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read formats file: %w", err)
	}

	overrides := make(map[string]Format)
	if err := yaml.Unmarshal(raw, &overrides); err != nil {
		return nil, fmt.Errorf("parse formats file: %w", err)
	}

	formats := DefaultFormats()
	for name, f := range overrides {
		formats[name] = f
	}
	return formats, nil
}
