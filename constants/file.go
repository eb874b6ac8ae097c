package constants

import (
	"path/filepath"
	"strings"
)

// FileCategory is the preview category derived from a file name.
type FileCategory string

const (
	PDF     FileCategory = "pdf"
	IMAGE   FileCategory = "image"
	UNKNOWN FileCategory = "unknown"
)

// ImageExtensions holds the extensions rendered as inline images.
var ImageExtensions = map[string]struct{}{
	"png":  {},
	"jpg":  {},
	"jpeg": {},
	"gif":  {},
	"bmp":  {},
	"webp": {},
}

// UploadExtensions holds the extensions accepted by the upload endpoint.
var UploadExtensions = map[string]struct{}{
	"pdf":  {},
	"png":  {},
	"jpg":  {},
	"jpeg": {},
	"gif":  {},
	"bmp":  {},
	"webp": {},
}

// NormalizeExt lowercases and trims the dot from a file extension.
func NormalizeExt(ext string) string {
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}

// CategoryForFile classifies a file name by its final extension only; no
// content sniffing. Empty or extension-less names are UNKNOWN.
func CategoryForFile(filename string) FileCategory {
	if filename == "" {
		return UNKNOWN
	}
	ext := NormalizeExt(filepath.Ext(filename))
	if ext == "" {
		return UNKNOWN
	}
	if ext == "pdf" {
		return PDF
	}
	if _, ok := ImageExtensions[ext]; ok {
		return IMAGE
	}
	return UNKNOWN
}

// AllowedUploadExt reports whether the extension is accepted for upload.
func AllowedUploadExt(ext string) bool {
	_, ok := UploadExtensions[NormalizeExt(ext)]
	return ok
}
