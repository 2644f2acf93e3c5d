package jsonapi

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// Request is a decoded write request.
type Request struct {
	Data []ResourceObject
	Bulk bool

	array bool
}

type envelope struct {
	Data json.RawMessage `json:"data"`
}

// DecodeRequest reads the body of r as a JSON:API document. Array data is
// only accepted when the request negotiated the bulk extension and
// allowBulk is set.
func DecodeRequest(r *http.Request, allowBulk bool) (*Request, Errors) {
	exts, mediaErr := Extensions(r)
	if mediaErr != nil {
		return nil, Errors{mediaErr}
	}
	bulk := HasExtension(exts, ExtBulk)

	body, err := io.ReadAll(r.Body)
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return nil, Errors{DocumentInvalid("request body too large")}
		}
		return nil, Errors{DocumentInvalid(err.Error())}
	}

	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, Errors{DocumentInvalid(err.Error())}
	}

	data := bytes.TrimSpace(env.Data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil, Errors{DocumentInvalid("document has no primary data")}
	}

	req := &Request{Bulk: bulk}

	switch data[0] {
	case '[':
		if !bulk || !allowBulk {
			return nil, Errors{BulkRequired()}
		}
		if err := json.Unmarshal(data, &req.Data); err != nil {
			return nil, Errors{DocumentInvalid(err.Error())}
		}
		if len(req.Data) == 0 {
			return nil, Errors{DocumentInvalid("bulk document has no resources")}
		}
		req.array = true
	case '{':
		var obj ResourceObject
		if err := json.Unmarshal(data, &obj); err != nil {
			return nil, Errors{DocumentInvalid(err.Error())}
		}
		req.Data = []ResourceObject{obj}
	default:
		return nil, Errors{DocumentInvalid("primary data must be an object or an array")}
	}

	return req, nil
}

// Index returns the error index for the i-th resource of the request.
func (r *Request) Index(i int) int {
	if !r.array {
		return Single
	}
	return i
}

// IsArray reports whether the primary data was submitted as an array.
func (r *Request) IsArray() bool {
	return r.array
}

// CheckIdentity verifies the type of obj and, when id is set, that obj refers
// to it. Without a route id the resource must carry its own.
func CheckIdentity(obj ResourceObject, typ, id string, index int) Errors {
	var errs Errors

	if obj.Type != typ {
		errs.Add(TypeMismatch(typ, obj.Type, index))
	}

	switch {
	case id != "" && obj.ID != "" && obj.ID != id:
		errs.Add(IDMismatch(id, obj.ID, index))
	case id == "" && obj.ID == "":
		errs.Add(DocumentInvalid(fmt.Sprintf("resource at %s has no id", Pointer(index))))
	}

	return errs
}
