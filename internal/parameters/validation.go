package parameters

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/JaimeStill/system-api/pkg/jsonapi"
)

// decodeKey validates a submitted key attribute.
func decodeKey(raw json.RawMessage, index int) (string, *jsonapi.Error) {
	if jsonapi.IsNull(raw) {
		return "", jsonapi.AttributeValidation(Type, AttrKey, "is required", index)
	}

	var key string
	if err := json.Unmarshal(raw, &key); err != nil {
		return "", jsonapi.AttributeValidation(Type, AttrKey, "should be a string", index)
	}

	if key == "" {
		return "", jsonapi.AttributeValidation(Type, AttrKey, "is required", index)
	}
	if strings.Index(key, ".") < 1 {
		return "", jsonapi.AttributeValidation(Type, AttrKey, "should contain a . (dot)", index)
	}
	if strings.HasSuffix(key, ".") || strings.Contains(key, "..") {
		return "", jsonapi.AttributeValidation(Type, AttrKey, "should not contain empty segments", index)
	}

	return key, nil
}

// decodeValue validates a submitted value attribute. Only scalars are accepted.
func decodeValue(raw json.RawMessage, index int) (any, *jsonapi.Error) {
	if jsonapi.IsNull(raw) {
		return nil, jsonapi.AttributeValidation(Type, AttrValue, "is required", index)
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, jsonapi.AttributeValidation(Type, AttrValue, "should be valid JSON", index)
	}

	switch v.(type) {
	case string, bool, json.Number:
		return normalize(v), nil
	default:
		return nil, jsonapi.AttributeValidation(Type, AttrValue, "should be a scalar value", index)
	}
}

// checkAttributes reports submitted attributes the resource does not have.
func checkAttributes(attrs map[string]json.RawMessage, index int) jsonapi.Errors {
	var errs jsonapi.Errors
	for _, name := range sortedKeys(attrs) {
		if name != AttrKey && name != AttrValue {
			errs.Add(jsonapi.AttributeValidation(Type, name, "is not an attribute of "+Type, index))
		}
	}
	return errs
}
