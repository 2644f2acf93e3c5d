package jsonapi

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"github.com/JaimeStill/system-api/pkg/pagination"
)

// Respond writes doc with the JSON:API content type.
func Respond(w http.ResponseWriter, status int, doc *Document, bulk bool) {
	if doc.JSONAPI == nil {
		doc.JSONAPI = &Object{Version: Version}
		if bulk {
			doc.JSONAPI.Ext = []string{ExtBulk}
		}
	}

	w.Header().Set("Content-Type", ContentType(bulk))
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(doc)
}

// RespondErrors writes an error document. Server-side failures are logged
// at error level, client errors at debug.
func RespondErrors(w http.ResponseWriter, logger *slog.Logger, errs Errors) {
	status := errs.Status()
	if status >= http.StatusInternalServerError {
		logger.Error("request failed", "status", status, "error", errs.Error())
	} else {
		logger.Debug("request rejected", "status", status, "error", errs.Error())
	}

	Respond(w, status, &Document{Errors: errs}, false)
}

// RespondError converts err into an error document. Adapter failures
// (ErrInvalidData) and any other non-JSON:API error become 500 responses.
func RespondError(w http.ResponseWriter, logger *slog.Logger, err error) {
	if errors.Is(err, ErrInvalidData) {
		RespondErrors(w, logger, Errors{Internal(err)})
		return
	}
	RespondErrors(w, logger, AsErrors(err))
}

// CollectionDocument builds a document for one page of a collection with
// meta.total and pagination links derived from the request URL.
func CollectionDocument[T any](resources []*Resource, page pagination.PageResult[T], u *url.URL) *Document {
	return &Document{
		Data:  resources,
		Meta:  map[string]any{"total": page.Total},
		Links: PageLinks(u, page),
	}
}

// PageLinks returns self, first, last and, where applicable, prev and next links.
func PageLinks[T any](u *url.URL, page pagination.PageResult[T]) map[string]string {
	links := map[string]string{
		"self":  pageURL(u, page.Offset, page.Limit),
		"first": pageURL(u, 0, page.Limit),
		"last":  pageURL(u, page.LastOffset(), page.Limit),
	}

	if page.HasPrev() {
		links["prev"] = pageURL(u, max(page.Offset-page.Limit, 0), page.Limit)
	}
	if page.HasNext() {
		links["next"] = pageURL(u, page.Offset+page.Limit, page.Limit)
	}

	return links
}

func pageURL(u *url.URL, offset, limit int) string {
	values := u.Query()
	values.Set("page[offset]", strconv.Itoa(offset))
	values.Set("page[limit]", strconv.Itoa(limit))

	target := url.URL{Path: u.Path, RawQuery: values.Encode()}
	return target.String()
}

// RequestURL returns the URL the client requested. Module routers strip
// their prefix from r.URL, so the original RequestURI is preferred.
func RequestURL(r *http.Request) *url.URL {
	if r.RequestURI != "" {
		if u, err := url.ParseRequestURI(r.RequestURI); err == nil {
			return u
		}
	}
	return r.URL
}
