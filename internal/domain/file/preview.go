package file

var imageMimeTypes = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".gif":  "image/gif",
	".webp": "image/webp",
}

var textExtensions = map[string]bool{
	".js":   true,
	".c":    true,
	".cpp":  true,
	".h":    true,
	".cs":   true,
	".txt":  true,
	".xml":  true,
	".json": true,
	".html": true,
	".css":  true,
}

// PreviewTypeFor decides how a file is previewed from its name alone
func PreviewTypeFor(name string) PreviewType {
	ext := Extension(name)
	if _, ok := imageMimeTypes[ext]; ok {
		return PreviewImage
	}
	if textExtensions[ext] {
		return PreviewText
	}
	return PreviewUnsupported
}

// ImageMimeType returns the MIME type reported for an image preview
func ImageMimeType(name string) string {
	if mime, ok := imageMimeTypes[Extension(name)]; ok {
		return mime
	}
	return "application/octet-stream"
}
