package domain

import (
	"encoding/json"
	"strings"
)

// DefaultImageFieldPath is where a section image lands when no path is given
const DefaultImageFieldPath = "image"

// Document is an open-ended nested key/value tree decoded from JSON.
// Nested objects are held as map[string]any and arrays as []any.
type Document map[string]any

// Merge returns base with update applied recursively. Objects are merged key by
// key when the base value is an object or absent; arrays, scalars and type
// mismatches are replaced. Neither argument is modified.
func Merge(base, update Document) Document {
	out := base.Clone()
	if out == nil {
		out = Document{}
	}
	for key, value := range update {
		if next, ok := asObject(value); ok {
			existing, present := out[key]
			current, isObject := asObject(existing)
			if isObject || !present || existing == nil {
				out[key] = map[string]any(Merge(current, next))
				continue
			}
		}
		out[key] = cloneValue(value)
	}
	return out
}

// Clone returns a deep copy of d
func (d Document) Clone() Document {
	if d == nil {
		return nil
	}
	out := make(Document, len(d))
	for k, v := range d {
		out[k] = cloneValue(v)
	}
	return out
}

// Lookup returns the value at a dotted path
func (d Document) Lookup(path string) (any, bool) {
	var current any = map[string]any(d)
	for _, part := range splitPath(path) {
		obj, ok := asObject(current)
		if !ok {
			return nil, false
		}
		current, ok = obj[part]
		if !ok {
			return nil, false
		}
	}
	return current, true
}

// Set writes value at a dotted path, creating or replacing intermediate objects
func (d Document) Set(path string, value any) {
	parts := splitPath(path)
	if len(parts) == 0 {
		return
	}
	obj := map[string]any(d)
	for _, part := range parts[:len(parts)-1] {
		next, ok := asObject(obj[part])
		if !ok {
			next = Document{}
		}
		obj[part] = map[string]any(next)
		obj = next
	}
	obj[parts[len(parts)-1]] = value
}

// ImageAt reads an image reference at path. Both {url, publicId} objects and
// bare URL strings are accepted.
func (d Document) ImageAt(path string) (ImageRef, bool) {
	value, ok := d.Lookup(path)
	if !ok {
		return ImageRef{}, false
	}
	switch v := value.(type) {
	case string:
		if v == "" {
			return ImageRef{}, false
		}
		return ImageRef{URL: v}, true
	default:
		obj, ok := asObject(v)
		if !ok {
			return ImageRef{}, false
		}
		ref := ImageRef{}
		ref.URL, _ = obj["url"].(string)
		ref.PublicID, _ = obj["publicId"].(string)
		return ref, ref.URL != "" || ref.PublicID != ""
	}
}

// Size is the length of the JSON encoding of d
func (d Document) Size() (int, error) {
	raw, err := json.Marshal(d)
	if err != nil {
		return 0, err
	}
	return len(raw), nil
}

// ImageValue is the document form of an image reference
func (r ImageRef) ImageValue() map[string]any {
	return map[string]any{"url": r.URL, "publicId": r.PublicID}
}

func splitPath(path string) []string {
	var parts []string
	for _, p := range strings.Split(path, ".") {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	return parts
}

func asObject(v any) (Document, bool) {
	switch obj := v.(type) {
	case map[string]any:
		return Document(obj), true
	case Document:
		return obj, true
	}
	return nil, false
}

func cloneValue(v any) any {
	switch val := v.(type) {
	case map[string]any:
		return map[string]any(Document(val).Clone())
	case Document:
		return map[string]any(val.Clone())
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = cloneValue(item)
		}
		return out
	}
	return v
}
