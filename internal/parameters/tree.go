package parameters

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// Flatten converts nested tables into dotted keys. Array elements are
// addressed by index.
func Flatten(doc map[string]any) map[string]any {
	out := make(map[string]any)
	flattenInto(out, "", doc)
	return out
}

func flattenInto(out map[string]any, prefix string, value any) {
	switch v := value.(type) {
	case map[string]any:
		for k, child := range v {
			flattenInto(out, join(prefix, k), child)
		}
	case []any:
		for i, child := range v {
			flattenInto(out, join(prefix, strconv.Itoa(i)), child)
		}
	default:
		if prefix != "" && v != nil {
			out[prefix] = normalize(v)
		}
	}
}

func join(prefix, key string) string {
	if prefix == "" {
		return key
	}
	return prefix + "." + key
}

// lookup returns the scalar at key or nil when key is absent or names a table.
// Numeric segments index into arrays.
func lookup(doc map[string]any, key string) any {
	var current any = doc
	for _, segment := range strings.Split(key, ".") {
		var ok bool
		current, ok = child(current, segment)
		if !ok {
			return nil
		}
	}

	switch current.(type) {
	case map[string]any, []any, nil:
		return nil
	default:
		return normalize(current)
	}
}

func child(node any, segment string) (any, bool) {
	switch n := node.(type) {
	case map[string]any:
		v, ok := n[segment]
		return v, ok
	case []any:
		i, err := strconv.Atoi(segment)
		if err != nil || i < 0 || i >= len(n) || strconv.Itoa(i) != segment {
			return nil, false
		}
		return n[i], true
	default:
		return nil, false
	}
}

// tableAt returns the table stored under segment, creating it when absent
// and replacing a scalar. An array becomes a table keyed by element index so
// writes to one element leave the others addressable under the same keys.
func tableAt(table map[string]any, segment string) (map[string]any, bool) {
	switch v := table[segment].(type) {
	case map[string]any:
		return v, true
	case []any:
		indexed := make(map[string]any, len(v))
		for i, elem := range v {
			indexed[strconv.Itoa(i)] = elem
		}
		table[segment] = indexed
		return indexed, true
	default:
		return nil, false
	}
}

// setPath stores value at key, creating tables along the way and replacing
// scalars that sit where a table is needed.
func setPath(doc map[string]any, key string, value any) {
	segments := strings.Split(key, ".")
	table := doc
	for _, segment := range segments[:len(segments)-1] {
		next, ok := tableAt(table, segment)
		if !ok {
			next = make(map[string]any)
			table[segment] = next
		}
		table = next
	}
	table[segments[len(segments)-1]] = value
}

// removePath deletes key and prunes tables left empty.
func removePath(doc map[string]any, key string) {
	removeSegments(doc, strings.Split(key, "."))
}

func removeSegments(table map[string]any, segments []string) {
	if len(segments) == 1 {
		delete(table, segments[0])
		return
	}

	if _, ok := child(table[segments[0]], segments[1]); !ok {
		return
	}
	next, _ := tableAt(table, segments[0])
	removeSegments(next, segments[1:])
	if len(next) == 0 {
		delete(table, segments[0])
	}
}

func applyChanges(doc map[string]any, changes []Change) {
	for _, c := range changes {
		if c.Value == nil {
			removePath(doc, c.Key)
			continue
		}
		setPath(doc, c.Key, c.Value)
	}
}

// normalize maps decoded values onto the scalar set the API exposes:
// string, bool, int64 and float64. Integral numbers become int64.
func normalize(v any) any {
	switch val := v.(type) {
	case string, bool, int64:
		return val
	case int:
		return int64(val)
	case float64:
		if math.Abs(val) < 1<<53 && val == math.Trunc(val) {
			return int64(val)
		}
		return val
	case json.Number:
		if n, err := val.Int64(); err == nil {
			return n
		}
		if f, err := val.Float64(); err == nil {
			return f
		}
		return val.String()
	case time.Time:
		return val.Format(time.RFC3339)
	case fmt.Stringer:
		return val.String()
	default:
		return fmt.Sprint(val)
	}
}
