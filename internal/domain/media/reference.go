package media

import (
	"bytes"
	"encoding/json"
)

// objectURLKeys are the object fields that may carry an asset's URL (or
// relative path) inside an embedded reference.
var objectURLKeys = []string{"url", "src", "href", "original", "preview", "thumb", "thumbnail"}

// EmbeddedReference is one entry of an article's images payload: either
// a bare URL string or an object with optional address fields. Fields
// the media core does not own (title, alt, ...) pass through untouched.
// Entries that are neither strings nor objects round-trip verbatim.
type EmbeddedReference struct {
	str *string
	obj map[string]any
	raw json.RawMessage
}

func (r *EmbeddedReference) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		r.str = &s
		return nil
	}
	if len(trimmed) > 0 && trimmed[0] == '{' {
		var m map[string]any
		if err := json.Unmarshal(data, &m); err != nil {
			return err
		}
		r.obj = m
		return nil
	}
	r.raw = append(json.RawMessage(nil), data...)
	return nil
}

func (r EmbeddedReference) MarshalJSON() ([]byte, error) {
	switch {
	case r.str != nil:
		return json.Marshal(*r.str)
	case r.obj != nil:
		return json.Marshal(r.obj)
	case r.raw != nil:
		return r.raw, nil
	}
	return []byte("null"), nil
}

// rewrite updates every field of the reference that still carries the
// old identity, returning whether anything changed.
func (r *EmbeddedReference) rewrite(old, updated Identity) bool {
	switch {
	case r.str != nil:
		if (old.URL != "" && *r.str == old.URL) || (old.Path != "" && *r.str == old.Path) {
			v := updated.URL
			if v == "" {
				v = updated.Path
			}
			r.str = &v
			return true
		}
	case r.obj != nil:
		changed := false
		if old.Path != "" {
			if s, ok := r.obj["path"].(string); ok && s == old.Path {
				r.obj["path"] = updated.Path
				changed = true
			}
		}
		if old.Filename != "" && updated.Filename != "" {
			if s, ok := r.obj["filename"].(string); ok && s == old.Filename {
				r.obj["filename"] = updated.Filename
				changed = true
			}
		}
		for _, key := range objectURLKeys {
			s, ok := r.obj[key].(string)
			if !ok {
				continue
			}
			if (old.URL != "" && s == old.URL) || (old.Path != "" && s == old.Path) {
				r.obj[key] = updated.URL
				changed = true
			}
		}
		return changed
	}
	return false
}
