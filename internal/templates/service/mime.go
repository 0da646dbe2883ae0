package service

import (
	"mime"
	"path/filepath"
	"strings"
)

// defaultContentType is served when the template's file type is unknown,
// forcing clients to download rather than inline-render the body.
const defaultContentType = "application/force-download"

// officeTypes covers document extensions missing from Go's built-in table.
var officeTypes = map[string]string{
	".docx": "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	".doc":  "application/msword",
	".odt":  "application/vnd.oasis.opendocument.text",
	".xlsx": "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
	".ods":  "application/vnd.oasis.opendocument.spreadsheet",
	".md":   "text/markdown",
	".rtf":  "application/rtf",
}

// fileMeta infers the content type and extension from a stored file name.
func fileMeta(fileName string) (contentType, extension string) {
	ext := strings.ToLower(filepath.Ext(fileName))
	extension = strings.TrimPrefix(ext, ".")

	if ct, ok := officeTypes[ext]; ok {
		return ct, extension
	}
	if ct := mime.TypeByExtension(ext); ct != "" {
		return ct, extension
	}
	return defaultContentType, extension
}
