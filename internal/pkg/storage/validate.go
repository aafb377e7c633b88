package storage

import (
	"net/http"
	"strings"
)

// MaxImageSize is the upload size ceiling for listing photos (10 MiB)
const MaxImageSize = 10 * 1024 * 1024

// AllowedImageTypes is the photo MIME allow-list
var AllowedImageTypes = []string{"image/jpeg", "image/png", "image/webp"}

// IsAllowedImageType reports whether the MIME type is on the photo allow-list
func IsAllowedImageType(mimeType string) bool {
	for _, t := range AllowedImageTypes {
		if t == mimeType {
			return true
		}
	}
	return false
}

// DetectMimeType sniffs the MIME type from content (magic bytes, not the
// declared type)
func DetectMimeType(data []byte) string {
	mimeType := http.DetectContentType(data)
	// "image/jpeg; charset=utf-8" -> "image/jpeg"
	if idx := strings.Index(mimeType, ";"); idx != -1 {
		mimeType = strings.TrimSpace(mimeType[:idx])
	}
	return mimeType
}

// ExtensionForMime returns the file extension for a MIME type
func ExtensionForMime(mimeType string) string {
	switch mimeType {
	case "image/jpeg":
		return ".jpg"
	case "image/png":
		return ".png"
	case "image/webp":
		return ".webp"
	default:
		return ""
	}
}
