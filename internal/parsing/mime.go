package parsing

import (
	"mime"
	"strings"
)

// MimeFromExt derives a MIME type from a file extension reported by the
// backend. Returns "" when the extension is unknown. The extension may be
// passed with or without the leading dot.
func MimeFromExt(ext string) string {
	if ext == "" {
		return ""
	}
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	mt := mime.TypeByExtension(ext)
	if mt == "" {
		return ""
	}
	// Strip any charset parameter, host headers carry the bare type.
	if i := strings.IndexByte(mt, ';'); i >= 0 {
		mt = strings.TrimSpace(mt[:i])
	}
	return mt
}
