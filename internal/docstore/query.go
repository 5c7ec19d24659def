package docstore

import (
	"cmp"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/MKhiriev/go-blog-sync/models"
)

// indexKey identifies a composite index: equality filters on one or more
// fields combined with an ordering on another.
type indexKey struct {
	collection string
	filters    string
	order      string
}

func (k indexKey) String() string {
	return k.collection + ":" + k.filters + "+" + k.order
}

// parseIndex parses an index definition of the form
// "collection:filterField[,filterField...]+orderField".
func parseIndex(def string) (indexKey, error) {
	collection, rest, ok := strings.Cut(strings.TrimSpace(def), ":")
	if !ok || collection == "" {
		return indexKey{}, fmt.Errorf("%w: %q", ErrInvalidIndex, def)
	}
	filters, order, ok := strings.Cut(rest, "+")
	if !ok || filters == "" || order == "" {
		return indexKey{}, fmt.Errorf("%w: %q", ErrInvalidIndex, def)
	}

	fields := strings.Split(filters, ",")
	for _, f := range fields {
		if f == "" {
			return indexKey{}, fmt.Errorf("%w: %q", ErrInvalidIndex, def)
		}
	}
	return newIndexKey(collection, fields, order), nil
}

func newIndexKey(collection string, filterFields []string, order string) indexKey {
	fields := slices.Clone(filterFields)
	slices.Sort(fields)
	fields = slices.Compact(fields)
	return indexKey{collection: collection, filters: strings.Join(fields, ","), order: order}
}

// requiredIndex returns the composite index q needs. Queries with only
// filters, only an ordering, or an ordering on the filtered field itself
// are served without one.
func requiredIndex(q models.Query) (indexKey, bool) {
	if q.OrderBy == nil || len(q.Filters) == 0 {
		return indexKey{}, false
	}

	fields := make([]string, 0, len(q.Filters))
	for _, f := range q.Filters {
		if f.Field != q.OrderBy.Field {
			fields = append(fields, f.Field)
		}
	}
	if len(fields) == 0 {
		return indexKey{}, false
	}
	return newIndexKey(q.Collection, fields, q.OrderBy.Field), true
}

func matches(fields map[string]any, filters []models.Filter) bool {
	for _, f := range filters {
		v, ok := fields[f.Field]
		if !ok || valueString(v) != f.Value {
			return false
		}
	}
	return true
}

func valueString(v any) string {
	switch v := v.(type) {
	case string:
		return v
	case time.Time:
		return v.UTC().Format(time.RFC3339Nano)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case nil:
		return "null"
	default:
		return fmt.Sprint(v)
	}
}

// compareValues orders timestamps chronologically (RFC 3339 strings
// included), numbers numerically and everything else by its string form.
func compareValues(a, b any) int {
	if ta, ok := asTime(a); ok {
		if tb, ok := asTime(b); ok {
			return ta.Compare(tb)
		}
	}
	if fa, ok := a.(float64); ok {
		if fb, ok := b.(float64); ok {
			return cmp.Compare(fa, fb)
		}
	}
	return strings.Compare(valueString(a), valueString(b))
}

func asTime(v any) (time.Time, bool) {
	switch v := v.(type) {
	case time.Time:
		return v, true
	case string:
		t, err := time.Parse(time.RFC3339Nano, v)
		return t, err == nil
	default:
		return time.Time{}, false
	}
}

// selectDocuments returns the documents of docs matching q in q's order.
// Documents missing the ordered field are excluded; ties break by id.
func selectDocuments(docs map[string]*document, q models.Query) []*document {
	out := make([]*document, 0, len(docs))
	for _, d := range docs {
		if !matches(d.fields, q.Filters) {
			continue
		}
		if q.OrderBy != nil {
			if _, ok := d.fields[q.OrderBy.Field]; !ok {
				continue
			}
		}
		out = append(out, d)
	}

	slices.SortFunc(out, func(a, b *document) int {
		if q.OrderBy != nil {
			c := compareValues(a.fields[q.OrderBy.Field], b.fields[q.OrderBy.Field])
			if q.OrderBy.Direction == models.Descending {
				c = -c
			}
			if c != 0 {
				return c
			}
		}
		return strings.Compare(a.id, b.id)
	})
	return out
}
