package models

import (
	"io"
	"path/filepath"
	"strings"
)

// File is an uploaded payload as received from a multipart form.
type File struct {
	Name        string
	ContentType string
	Size        int64
	Body        io.Reader
}

// Ext returns the lower-cased extension of the original file name without the dot.
func (f *File) Ext() string {
	if f == nil {
		return ""
	}
	return strings.ToLower(strings.TrimPrefix(filepath.Ext(f.Name), "."))
}
