package ingest

import (
	"path/filepath"
	"strings"
)

// FallbackContentType is used when no type is declared and none can be
// inferred from the file extension.
const FallbackContentType = "application/octet-stream"

// mimeByExt maps lowercase file extensions to MIME types for the file
// categories the backend accepts. Built once; lookups never mutate it.
var mimeByExt = map[string]string{
	// documents
	".pdf":  "application/pdf",
	".doc":  "application/msword",
	".docx": "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	".rtf":  "application/rtf",

	// images
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".gif":  "image/gif",
	".webp": "image/webp",
	".heic": "image/heic",
	".heif": "image/heif",

	// video
	".mp4":  "video/mp4",
	".mpeg": "video/mpeg",
	".mpg":  "video/mpeg",
	".mov":  "video/quicktime",
	".avi":  "video/x-msvideo",
	".webm": "video/webm",
	".wmv":  "video/x-ms-wmv",

	// audio
	".mp3":  "audio/mpeg",
	".wav":  "audio/wav",
	".ogg":  "audio/ogg",
	".flac": "audio/flac",
	".aac":  "audio/aac",
	".aiff": "audio/aiff",

	// text
	".txt":  "text/plain",
	".md":   "text/markdown",
	".csv":  "text/csv",
	".html": "text/html",
	".xml":  "text/xml",
	".json": "application/json",
}

// contentTypeForPath resolves the content type for a path-based entry.
// A declared type always wins; otherwise the extension table decides.
func contentTypeForPath(declared, path string) string {
	if t := strings.TrimSpace(declared); t != "" {
		return t
	}
	ext := strings.ToLower(filepath.Ext(path))
	if mt, ok := mimeByExt[ext]; ok {
		return mt
	}
	return FallbackContentType
}

// contentTypeForInline resolves the content type for an inline entry.
// Inline entries carry no extension worth trusting, so it is the declared
// type or the fallback.
func contentTypeForInline(declared string) string {
	if t := strings.TrimSpace(declared); t != "" {
		return t
	}
	return FallbackContentType
}
