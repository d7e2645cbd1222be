package resources

import (
	"mime"
	"path"
	"strings"
)

// DefaultMediaType is used when an extension is unknown.
const DefaultMediaType = "application/octet-stream"

// mediaTypes pins the types an EPUB reader cares about so results do not
// depend on the host's mime tables.
var mediaTypes = map[string]string{
	".png":   "image/png",
	".jpg":   "image/jpeg",
	".jpeg":  "image/jpeg",
	".gif":   "image/gif",
	".svg":   "image/svg+xml",
	".webp":  "image/webp",
	".avif":  "image/avif",
	".bmp":   "image/bmp",
	".ico":   "image/vnd.microsoft.icon",
	".css":   "text/css",
	".html":  "text/html",
	".xhtml": "application/xhtml+xml",
	".js":    "text/javascript",
	".ttf":   "font/ttf",
	".otf":   "font/otf",
	".woff":  "font/woff",
	".woff2": "font/woff2",
	".mp3":   "audio/mpeg",
	".mp4":   "video/mp4",
	".txt":   "text/plain",
}

// MediaTypeByFilename infers a media type from the file extension.
// Parameters such as charset are dropped.
func MediaTypeByFilename(name string) string {
	ext := strings.ToLower(path.Ext(name))
	if ext == "" {
		return DefaultMediaType
	}
	if mt, ok := mediaTypes[ext]; ok {
		return mt
	}
	mt := mime.TypeByExtension(ext)
	if mt == "" {
		return DefaultMediaType
	}
	if base, _, err := mime.ParseMediaType(mt); err == nil {
		return base
	}
	return mt
}
