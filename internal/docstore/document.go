package docstore

import (
	"encoding/json"
	"fmt"
	"maps"
	"reflect"
	"time"

	"github.com/MKhiriev/go-blog-sync/models"
)

// document is a stored record. Server timestamps are kept as time.Time and
// rendered as RFC 3339 strings on export; every other value has the shape
// encoding/json produces.
type document struct {
	id     string
	fields map[string]any
}

func (d *document) export() models.Document {
	return models.Document{ID: d.id, Fields: exportValue(d.fields).(map[string]any)}
}

func exportValue(v any) any {
	switch v := v.(type) {
	case time.Time:
		return v.UTC().Format(time.RFC3339Nano)
	case map[string]any:
		out := make(map[string]any, len(v))
		for k, val := range v {
			out[k] = exportValue(val)
		}
		return out
	case []any:
		out := make([]any, len(v))
		for i, val := range v {
			out[i] = exportValue(val)
		}
		return out
	default:
		return v
	}
}

func (d *document) clone() *document {
	return &document{id: d.id, fields: maps.Clone(d.fields)}
}

// normalized is a write whose values were passed through a JSON round trip,
// so in-process callers and HTTP callers produce identical documents.
type normalized struct {
	fields      map[string]any
	timestamps  []string
	arrayUnion  map[string][]any
	arrayRemove map[string][]any
}

func normalizeWrite(w models.Write) (normalized, error) {
	var n normalized
	if err := roundTrip(w.Fields, &n.fields); err != nil {
		return normalized{}, err
	}
	if err := roundTrip(w.ArrayUnion, &n.arrayUnion); err != nil {
		return normalized{}, err
	}
	if err := roundTrip(w.ArrayRemove, &n.arrayRemove); err != nil {
		return normalized{}, err
	}
	n.timestamps = w.ServerTimestamps

	for name := range n.fields {
		if name == "" {
			return normalized{}, fmt.Errorf("%w: empty field name", ErrInvalidWrite)
		}
	}
	for _, name := range n.timestamps {
		if name == "" {
			return normalized{}, fmt.Errorf("%w: empty server timestamp field", ErrInvalidWrite)
		}
	}
	for name := range n.arrayUnion {
		if _, ok := n.arrayRemove[name]; ok {
			return normalized{}, fmt.Errorf("%w: %q is both added to and removed from", ErrInvalidWrite, name)
		}
	}
	return n, nil
}

func roundTrip[T any](in T, out *T) error {
	raw, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidWrite, err)
	}
	if err = json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidWrite, err)
	}
	return nil
}

// apply merges w into the fields of d. Array operations on a field that is
// not an array replace it.
func (d *document) apply(w normalized, commitTime time.Time) {
	if d.fields == nil {
		d.fields = make(map[string]any)
	}
	maps.Copy(d.fields, w.fields)

	for _, name := range w.timestamps {
		d.fields[name] = commitTime
	}

	for name, values := range w.arrayUnion {
		current, _ := d.fields[name].([]any)
		next := make([]any, 0, len(current)+len(values))
		next = append(next, current...)
		for _, v := range values {
			if !containsValue(next, v) {
				next = append(next, v)
			}
		}
		d.fields[name] = next
	}

	for name, values := range w.arrayRemove {
		current, _ := d.fields[name].([]any)
		next := make([]any, 0, len(current))
		for _, v := range current {
			if !containsValue(values, v) {
				next = append(next, v)
			}
		}
		d.fields[name] = next
	}
}

func containsValue(values []any, v any) bool {
	for _, existing := range values {
		if reflect.DeepEqual(existing, v) {
			return true
		}
	}
	return false
}
