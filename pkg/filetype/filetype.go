package filetype

import "strings"

var (
	documentExtensions = map[string]bool{".pdf": true, ".doc": true, ".docx": true, ".txt": true}
	imageExtensions    = map[string]bool{".webp": true, ".png": true, ".jpeg": true, ".jpg": true}
)

// Extension returns the lowercased text after the final dot, dot included,
// or an empty string when there is no dot.
func Extension(url string) string {
	i := strings.LastIndex(url, ".")
	if i < 0 {
		return ""
	}
	return strings.ToLower(url[i:])
}

// IsDocument reports whether url names a .pdf, .doc, .docx or .txt file.
func IsDocument(url string) bool {
	return documentExtensions[Extension(url)]
}

// IsImage reports whether url names a .webp, .png, .jpeg or .jpg file.
func IsImage(url string) bool {
	return imageExtensions[Extension(url)]
}

// DocumentExtensions lists the accepted pattern file extensions.
func DocumentExtensions() []string {
	return []string{".pdf", ".doc", ".docx", ".txt"}
}

// ImageExtensions lists the accepted thumbnail extensions.
func ImageExtensions() []string {
	return []string{".webp", ".png", ".jpeg", ".jpg"}
}
