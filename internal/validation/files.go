package validation

import (
	"fmt"
	"mime"
	"path"
	"path/filepath"
	"regexp"
	"strings"

	"lead-intake/internal/apperr"
)

// MaxAttachmentSize caps each project document.
const MaxAttachmentSize = 10 << 20

// attachmentTypes pairs each accepted project document type with the
// extension its stored copy gets.
var attachmentTypes = []struct{ media, ext string }{
	{"application/pdf", ".pdf"},
	{"application/msword", ".doc"},
	{"application/vnd.openxmlformats-officedocument.wordprocessingml.document", ".docx"},
	{"image/jpeg", ".jpg"},
	{"image/png", ".png"},
	{"image/gif", ".gif"},
	{"image/webp", ".webp"},
	{"text/plain", ".txt"},
	{"application/vnd.ms-excel", ".xls"},
	{"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", ".xlsx"},
}

// AttachmentContentTypes lists the MIME types accepted for project documents.
var AttachmentContentTypes = func() []string {
	out := make([]string, len(attachmentTypes))
	for i, t := range attachmentTypes {
		out[i] = t.media
	}
	return out
}()

// AttachmentExtension is the extension a stored attachment gets for its
// content type; the client's filename plays no part. Unknown types yield "".
func AttachmentExtension(contentType string) string {
	media, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return ""
	}
	media = strings.ToLower(media)
	for _, t := range attachmentTypes {
		if t.media == media {
			return t.ext
		}
	}
	return ""
}

var unsafeNameChars = regexp.MustCompile(`[^A-Za-z0-9._-]`)

// CheckExtension compares the extension of name, case-insensitively, with
// allowed (entries like ".pdf").
func CheckExtension(name string, allowed []string) error {
	ext := strings.ToLower(filepath.Ext(name))
	if ext != "" {
		for _, a := range allowed {
			if strings.ToLower(a) == ext {
				return nil
			}
		}
	}
	return apperr.Validation("Invalid file type. Allowed types: %s", strings.Join(allowed, ", "))
}

// CheckContentType accepts a Content-Type header whose media type is in
// allowed. Parameters such as charset are ignored.
func CheckContentType(contentType string, allowed []string) error {
	media, _, err := mime.ParseMediaType(contentType)
	if err == nil {
		media = strings.ToLower(media)
		for _, a := range allowed {
			if a == media {
				return nil
			}
		}
	}
	return apperr.Validation("File type %q is not allowed", contentType)
}

// CheckSize rejects sizes strictly above max.
func CheckSize(size, max int64) error {
	if size > max {
		return apperr.Validation("File too large. Maximum size: %.2fMB", float64(max)/1024/1024)
	}
	return nil
}

// SanitizeFilename flattens name to its base, replaces every character
// outside [A-Za-z0-9._-] with '_' and truncates to maxLen keeping the
// extension.
func SanitizeFilename(name string, maxLen int) string {
	name = path.Base(strings.ReplaceAll(name, `\`, "/"))
	if name == "" || name == "." || name == ".." || name == "/" {
		return "unnamed_file"
	}

	name = unsafeNameChars.ReplaceAllString(name, "_")

	if maxLen > 0 && len(name) > maxLen {
		ext := filepath.Ext(name)
		if len(ext) >= maxLen {
			return name[:maxLen]
		}
		name = name[:maxLen-len(ext)] + ext
	}
	return name
}

// FormatSize renders a byte count the way upload errors and logs show it.
func FormatSize(n int64) string {
	if n == 0 {
		return "0 Bytes"
	}
	units := []string{"Bytes", "KB", "MB", "GB"}
	v := float64(n)
	i := 0
	for v >= 1024 && i < len(units)-1 {
		v /= 1024
		i++
	}
	return fmt.Sprintf("%.2f %s", v, units[i])
}
