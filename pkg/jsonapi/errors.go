package jsonapi

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// ErrInvalidData signals that an adapter received a record it cannot
// represent. It indicates a programming defect, not a client error.
var ErrInvalidData = errors.New("jsonapi: invalid resource data")

// Error codes reported in error objects.
const (
	CodeFilterNotFound      = "filter-not-found"
	CodeSortNotFound        = "sort-not-found"
	CodePageInvalid         = "page-invalid"
	CodeAttributeReadonly   = "attribute-readonly"
	CodeAttributeValidation = "attribute-validation"
	CodeResourceNotFound    = "resource-not-found"
	CodeDataExists          = "data-exists"
	CodeTypeMismatch        = "type-mismatch"
	CodeIDMismatch          = "id-mismatch"
	CodeDocumentInvalid     = "document-invalid"
	CodeBulkRequired        = "bulk-required"
	CodeMediaType           = "media-type"
	CodeInternal            = "internal"
)

// Single is the index passed for errors about a non-bulk resource.
const Single = -1

// Error is a JSON:API error object.
type Error struct {
	ID     string  `json:"id,omitempty"`
	Status string  `json:"status"`
	Code   string  `json:"code"`
	Title  string  `json:"title"`
	Detail string  `json:"detail,omitempty"`
	Source *Source `json:"source,omitempty"`
}

// Source locates the cause of an error in the request.
type Source struct {
	Pointer   string `json:"pointer,omitempty"`
	Parameter string `json:"parameter,omitempty"`
}

func (e *Error) Error() string {
	if e.Detail != "" {
		return e.Code + ": " + e.Detail
	}
	return e.Code + ": " + e.Title
}

// HTTPStatus returns the numeric status of the error.
func (e *Error) HTTPStatus() int {
	n, err := strconv.Atoi(e.Status)
	if err != nil {
		return http.StatusInternalServerError
	}
	return n
}

func newError(status int, code, title, detail string) *Error {
	return &Error{
		ID:     uuid.NewString(),
		Status: strconv.Itoa(status),
		Code:   code,
		Title:  title,
		Detail: detail,
	}
}

func (e *Error) withPointer(p string) *Error {
	e.Source = &Source{Pointer: p}
	return e
}

func (e *Error) withParameter(p string) *Error {
	e.Source = &Source{Parameter: p}
	return e
}

// Pointer builds a JSON pointer into the request data. index is Single for
// non-bulk documents.
func Pointer(index int, parts ...string) string {
	segments := []string{"/data"}
	if index != Single {
		segments = append(segments, strconv.Itoa(index))
	}
	segments = append(segments, parts...)
	return strings.Join(segments, "/")
}

// FilterNotFound reports a filter the resource type does not support.
func FilterNotFound(typ, name string) *Error {
	return newError(
		http.StatusBadRequest,
		CodeFilterNotFound,
		"Filter not found",
		fmt.Sprintf("filter %q is not supported by %s", name, typ),
	).withParameter("filter[" + name + "]")
}

// FilterInvalid reports a filter value that cannot be interpreted.
// reason completes the sentence "<name> <reason>".
func FilterInvalid(name, reason string) *Error {
	return newError(
		http.StatusBadRequest,
		CodeAttributeValidation,
		"Invalid filter value",
		fmt.Sprintf("%s %s", name, reason),
	).withParameter("filter[" + name + "]")
}

// SortNotFound reports a sort field the resource type does not support.
func SortNotFound(typ, field string) *Error {
	return newError(
		http.StatusBadRequest,
		CodeSortNotFound,
		"Sort field not found",
		fmt.Sprintf("sort field %q is not supported by %s", field, typ),
	).withParameter("sort")
}

// PageInvalid reports a malformed pagination parameter.
func PageInvalid(param, value string) *Error {
	return newError(
		http.StatusBadRequest,
		CodePageInvalid,
		"Invalid page parameter",
		fmt.Sprintf("%s should be a non-negative integer, got %q", param, value),
	).withParameter(param)
}

// AttributeReadonly reports a write to an attribute that cannot be changed.
func AttributeReadonly(typ, attribute string, index int) *Error {
	return newError(
		http.StatusForbidden,
		CodeAttributeReadonly,
		"Attribute is read-only",
		fmt.Sprintf("%s of %s is read-only", attribute, typ),
	).withPointer(Pointer(index, "attributes", attribute))
}

// AttributeValidation reports an attribute value that failed validation.
// reason completes the sentence "<attribute> <reason>".
func AttributeValidation(typ, attribute, reason string, index int) *Error {
	return newError(
		http.StatusBadRequest,
		CodeAttributeValidation,
		"Invalid attribute",
		fmt.Sprintf("%s %s", attribute, reason),
	).withPointer(Pointer(index, "attributes", attribute))
}

// ResourceNotFound reports a missing resource.
func ResourceNotFound(typ, id string) *Error {
	return newError(
		http.StatusNotFound,
		CodeResourceNotFound,
		"Resource not found",
		fmt.Sprintf("%s %q does not exist", typ, id),
	)
}

// DataExists reports a create or rename onto an existing resource.
func DataExists(typ, id string, index int) *Error {
	return newError(
		http.StatusConflict,
		CodeDataExists,
		"Resource already exists",
		fmt.Sprintf("%s %q already exists", typ, id),
	).withPointer(Pointer(index))
}

// TypeMismatch reports a resource object of the wrong type.
func TypeMismatch(expected, got string, index int) *Error {
	return newError(
		http.StatusConflict,
		CodeTypeMismatch,
		"Resource type mismatch",
		fmt.Sprintf("expected type %q, got %q", expected, got),
	).withPointer(Pointer(index, "type"))
}

// IDMismatch reports a resource object whose id disagrees with the URL.
func IDMismatch(expected, got string, index int) *Error {
	return newError(
		http.StatusConflict,
		CodeIDMismatch,
		"Resource id mismatch",
		fmt.Sprintf("expected id %q, got %q", expected, got),
	).withPointer(Pointer(index, "id"))
}

// DocumentInvalid reports a request body that is not a usable document.
func DocumentInvalid(detail string) *Error {
	return newError(http.StatusBadRequest, CodeDocumentInvalid, "Invalid document", detail)
}

// BulkRequired reports array data submitted without the bulk extension.
func BulkRequired() *Error {
	return newError(
		http.StatusBadRequest,
		CodeBulkRequired,
		"Bulk extension required",
		`array data requires the media type parameter ext="bulk"`,
	).withPointer("/data")
}

// UnsupportedMediaType reports a request body with the wrong content type.
func UnsupportedMediaType(got string) *Error {
	return newError(
		http.StatusUnsupportedMediaType,
		CodeMediaType,
		"Unsupported media type",
		fmt.Sprintf("expected %s, got %q", MediaType, got),
	)
}

// Internal wraps an unexpected server failure.
func Internal(err error) *Error {
	return newError(http.StatusInternalServerError, CodeInternal, "Internal server error", err.Error())
}

// Errors accumulates error objects for a single response.
type Errors []*Error

// Add appends error objects to the list.
func (e *Errors) Add(errs ...*Error) {
	*e = append(*e, errs...)
}

// Append appends every error object of other to the list.
func (e *Errors) Append(other Errors) {
	*e = append(*e, other...)
}

// Empty reports whether no errors were collected.
func (e Errors) Empty() bool {
	return len(e) == 0
}

func (e Errors) Error() string {
	msgs := make([]string, len(e))
	for i, err := range e {
		msgs[i] = err.Error()
	}
	return strings.Join(msgs, "; ")
}

// Status returns the HTTP status for the response carrying these errors:
// the shared status when all agree, otherwise the most general class.
func (e Errors) Status() int {
	if len(e) == 0 {
		return http.StatusOK
	}

	status := e[0].HTTPStatus()
	server := false
	for _, err := range e {
		s := err.HTTPStatus()
		if s >= 500 {
			server = true
		}
		if s != status {
			status = 0
		}
	}

	switch {
	case status != 0:
		return status
	case server:
		return http.StatusInternalServerError
	default:
		return http.StatusBadRequest
	}
}

// AsErrors converts err into an error list. Anything other than error
// objects becomes a single internal error.
func AsErrors(err error) Errors {
	var list Errors
	if errors.As(err, &list) {
		return list
	}

	var single *Error
	if errors.As(err, &single) {
		return Errors{single}
	}

	return Errors{Internal(err)}
}

// Err returns the list as an error, or nil when it is empty.
func (e Errors) Err() error {
	if len(e) == 0 {
		return nil
	}
	return e
}
