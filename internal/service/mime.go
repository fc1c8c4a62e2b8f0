package service

import (
	"path"
	"strings"
)

// mimeTypes is the fixed extension table for stored photo keys. Anything not
// listed is served as a generic binary.
var mimeTypes = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".gif":  "image/gif",
	".webp": "image/webp",
	".heic": "image/heic",
	".heif": "image/heif",
}

func mimeForKey(key string) string {
	if mime, ok := mimeTypes[strings.ToLower(path.Ext(key))]; ok {
		return mime
	}
	return "application/octet-stream"
}
