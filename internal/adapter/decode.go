package adapter

import (
	"fmt"
	"math"
	"time"

	"github.com/MKhiriev/go-blog-sync/models"
)

// DecodePost validates a raw post document and applies defaults: tags [],
// mood neutral, likes [] (deduplicated).
func DecodePost(doc models.Document) (models.Post, error) {
	d := decoder{kind: "post", doc: doc}

	post := models.Post{
		ID:      doc.ID,
		Title:   d.requiredString("title"),
		Content: d.requiredString("content"),
		Date:    d.requiredTime(models.FieldDate),
		Tags:    d.stringList("tags", false),
		Likes:   d.stringList(models.FieldLikes, true),
	}

	rawMood := d.optionalString("mood")
	if d.err == nil {
		mood, err := models.ParseMood(rawMood)
		if err != nil {
			d.fail("mood", err.Error())
		}
		post.Mood = mood
	}

	if err := d.finish(); err != nil {
		return models.Post{}, err
	}
	return post, nil
}

// DecodePosts decodes every document; the first malformed one fails the batch.
func DecodePosts(docs []models.Document) ([]models.Post, error) {
	return decodeAll(docs, DecodePost)
}

// DecodeComment validates a raw comment document.
func DecodeComment(doc models.Document) (models.Comment, error) {
	d := decoder{kind: "comment", doc: doc}

	comment := models.Comment{
		ID:          doc.ID,
		PostID:      d.requiredString(models.FieldPostID),
		AuthorID:    d.requiredString("authorId"),
		AuthorName:  d.requiredString("authorName"),
		AuthorPhoto: d.optionalString("authorPhoto"),
		Content:     d.requiredString("content"),
		Date:        d.requiredTime(models.FieldDate),
	}

	if err := d.finish(); err != nil {
		return models.Comment{}, err
	}
	return comment, nil
}

// DecodeComments decodes every document; the first malformed one fails the batch.
func DecodeComments(docs []models.Document) ([]models.Comment, error) {
	return decodeAll(docs, DecodeComment)
}

func decodeAll[T any](docs []models.Document, decode func(models.Document) (T, error)) ([]T, error) {
	out := make([]T, 0, len(docs))
	for _, doc := range docs {
		v, err := decode(doc)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

// decoder accumulates the first field error of a document.
type decoder struct {
	kind string
	doc  models.Document
	err  error
}

func (d *decoder) fail(field, reason string) {
	if d.err == nil {
		d.err = fmt.Errorf("%w: %s %q: field %q: %s", ErrDecode, d.kind, d.doc.ID, field, reason)
	}
}

func (d *decoder) finish() error {
	if d.err == nil && d.doc.ID == "" {
		return fmt.Errorf("%w: %s without id", ErrDecode, d.kind)
	}
	return d.err
}

func (d *decoder) requiredString(field string) string {
	raw, ok := d.doc.Fields[field]
	if !ok || raw == nil {
		d.fail(field, "missing")
		return ""
	}
	s, ok := raw.(string)
	if !ok {
		d.fail(field, fmt.Sprintf("expected string, got %T", raw))
	}
	return s
}

func (d *decoder) optionalString(field string) string {
	raw, ok := d.doc.Fields[field]
	if !ok || raw == nil {
		return ""
	}
	s, ok := raw.(string)
	if !ok {
		d.fail(field, fmt.Sprintf("expected string, got %T", raw))
	}
	return s
}

func (d *decoder) requiredTime(field string) time.Time {
	raw, ok := d.doc.Fields[field]
	if !ok || raw == nil {
		d.fail(field, "missing")
		return time.Time{}
	}
	t, err := parseTimestamp(raw)
	if err != nil {
		d.fail(field, err.Error())
	}
	return t
}

// stringList reads an optional array of strings, returning an empty (non-nil)
// slice when the field is absent.
func (d *decoder) stringList(field string, dedupe bool) []string {
	out := []string{}

	raw, ok := d.doc.Fields[field]
	if !ok || raw == nil {
		return out
	}
	items, ok := raw.([]any)
	if !ok {
		d.fail(field, fmt.Sprintf("expected array, got %T", raw))
		return out
	}

	seen := make(map[string]struct{}, len(items))
	for _, item := range items {
		s, ok := item.(string)
		if !ok {
			d.fail(field, fmt.Sprintf("expected array of strings, got %T element", item))
			return []string{}
		}
		if dedupe {
			if _, dup := seen[s]; dup {
				continue
			}
			seen[s] = struct{}{}
		}
		out = append(out, s)
	}
	return out
}

// parseTimestamp accepts RFC 3339 strings and {"_seconds","_nanoseconds"}
// objects.
func parseTimestamp(raw any) (time.Time, error) {
	switch v := raw.(type) {
	case string:
		t, err := time.Parse(time.RFC3339Nano, v)
		if err != nil {
			return time.Time{}, fmt.Errorf("invalid timestamp %q", v)
		}
		return t.UTC(), nil
	case map[string]any:
		sec, okSec := v["_seconds"].(float64)
		nanos, okNanos := v["_nanoseconds"].(float64)
		if !okSec {
			return time.Time{}, fmt.Errorf("timestamp object without _seconds")
		}
		if !okNanos {
			nanos = 0
		}
		if sec != math.Trunc(sec) || nanos < 0 || nanos >= 1e9 {
			return time.Time{}, fmt.Errorf("invalid timestamp object")
		}
		return time.Unix(int64(sec), int64(nanos)).UTC(), nil
	default:
		return time.Time{}, fmt.Errorf("expected timestamp, got %T", raw)
	}
}
