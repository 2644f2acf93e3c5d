package jsonapi

import (
	"mime"
	"net/http"
	"slices"
	"strings"
)

const (
	// MediaType is the JSON:API media type.
	MediaType = "application/vnd.api+json"

	// ExtBulk is the bulk extension allowing array data on write requests.
	ExtBulk = "bulk"
)

// ContentType returns the response content type, advertising the bulk
// extension and echoing it when the request used it.
func ContentType(bulk bool) string {
	ct := MediaType + `; supported-ext="` + ExtBulk + `"`
	if bulk {
		ct += `; ext="` + ExtBulk + `"`
	}
	return ct
}

// Extensions returns the extensions requested in the Content-Type of r.
// Plain application/json bodies are accepted without extensions.
func Extensions(r *http.Request) ([]string, *Error) {
	header := r.Header.Get("Content-Type")
	if header == "" {
		return nil, nil
	}

	mediaType, params, err := mime.ParseMediaType(header)
	if err != nil {
		return nil, UnsupportedMediaType(header)
	}

	switch mediaType {
	case MediaType:
	case "application/json":
		return nil, nil
	default:
		return nil, UnsupportedMediaType(header)
	}

	for name := range params {
		if name != "ext" && name != "supported-ext" {
			return nil, UnsupportedMediaType(header)
		}
	}

	ext := params["ext"]
	if ext == "" {
		return nil, nil
	}

	return splitList(ext), nil
}

// HasExtension reports whether ext is in exts.
func HasExtension(exts []string, ext string) bool {
	return slices.ContainsFunc(exts, func(e string) bool {
		return strings.EqualFold(e, ext)
	})
}
