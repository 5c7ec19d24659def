// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// Collection names and field names shared by the client and the document store.
const (
	CollectionPosts    = "posts"
	CollectionComments = "comments"

	FieldDate   = "date"
	FieldLikes  = "likes"
	FieldPostID = "postId"
)

// Document is a raw record of the remote document store: an id plus an
// untyped field map as decoded from JSON.
type Document struct {
	ID     string         `json:"id"`
	Fields map[string]any `json:"fields"`
}

// DocumentList is the body of list responses and snapshot events.
type DocumentList struct {
	Documents []Document `json:"documents"`
}

// CreatedDocument is the body of a successful create response.
type CreatedDocument struct {
	ID string `json:"id"`
}

// Write is a create or update request. Fields are set verbatim;
// ServerTimestamps names fields the store fills with its commit time;
// ArrayUnion/ArrayRemove apply set operations to array fields.
type Write struct {
	Fields           map[string]any   `json:"fields,omitempty"`
	ServerTimestamps []string         `json:"serverTimestamps,omitempty"`
	ArrayUnion       map[string][]any `json:"arrayUnion,omitempty"`
	ArrayRemove      map[string][]any `json:"arrayRemove,omitempty"`
}

// IsEmpty reports whether w changes nothing.
func (w Write) IsEmpty() bool {
	return len(w.Fields) == 0 && len(w.ServerTimestamps) == 0 &&
		len(w.ArrayUnion) == 0 && len(w.ArrayRemove) == 0
}

// Direction is a sort direction.
type Direction string

const (
	Ascending  Direction = "asc"
	Descending Direction = "desc"
)

// Filter is an equality predicate on a single field.
type Filter struct {
	Field string
	Value string
}

// Order is a server-side ordering on a single field.
type Order struct {
	Field     string
	Direction Direction
}

// Query selects documents of one collection.
type Query struct {
	Collection string
	Filters    []Filter
	OrderBy    *Order
}

// ErrInvalidQuery is returned by [ParseQuery] for malformed query strings.
var ErrInvalidQuery = errors.New("invalid query")

// Values encodes the filters and ordering of q as URL query parameters:
// where=field:eq:value (repeated), orderBy=field, direction=asc|desc.
func (q Query) Values() url.Values {
	v := url.Values{}
	for _, f := range q.Filters {
		v.Add("where", f.Field+":eq:"+f.Value)
	}
	if q.OrderBy != nil {
		v.Set("orderBy", q.OrderBy.Field)
		v.Set("direction", string(q.OrderBy.Direction))
	}
	return v
}

// ParseQuery is the inverse of [Query.Values].
func ParseQuery(collection string, v url.Values) (Query, error) {
	q := Query{Collection: collection}

	for _, raw := range v["where"] {
		parts := strings.SplitN(raw, ":", 3)
		if len(parts) != 3 || parts[0] == "" || parts[1] != "eq" {
			return Query{}, fmt.Errorf("%w: where=%q", ErrInvalidQuery, raw)
		}
		q.Filters = append(q.Filters, Filter{Field: parts[0], Value: parts[2]})
	}

	if field := v.Get("orderBy"); field != "" {
		dir := Direction(v.Get("direction"))
		switch dir {
		case "":
			dir = Ascending
		case Ascending, Descending:
		default:
			return Query{}, fmt.Errorf("%w: direction=%q", ErrInvalidQuery, dir)
		}
		q.OrderBy = &Order{Field: field, Direction: dir}
	}

	return q, nil
}
