package reconcile

import (
	"slices"
	"strings"

	"github.com/MKhiriev/go-blog-sync/models"
)

// PostsNewestFirst orders posts by date descending. Equal dates fall back to
// the id so the order is total.
func PostsNewestFirst(a, b models.Post) int {
	if c := b.Date.Compare(a.Date); c != 0 {
		return c
	}
	return strings.Compare(a.ID, b.ID)
}

// CommentsOldestFirst orders comments by date ascending, then by id.
func CommentsOldestFirst(a, b models.Comment) int {
	if c := a.Date.Compare(b.Date); c != 0 {
		return c
	}
	return strings.Compare(a.ID, b.ID)
}

// Sorted returns a sorted copy of items.
func Sorted[T any](items []T, cmp func(a, b T) int) []T {
	out := slices.Clone(items)
	if out == nil {
		out = []T{}
	}
	slices.SortStableFunc(out, cmp)
	return out
}

// PostsQuery is the preferred posts query: all posts, newest first.
func PostsQuery() models.Query {
	return models.Query{
		Collection: models.CollectionPosts,
		OrderBy:    &models.Order{Field: models.FieldDate, Direction: models.Descending},
	}
}

// CommentsQuery is the preferred query for the comments of postID, oldest
// first.
func CommentsQuery(postID string) models.Query {
	return models.Query{
		Collection: models.CollectionComments,
		Filters:    []models.Filter{{Field: models.FieldPostID, Value: postID}},
		OrderBy:    &models.Order{Field: models.FieldDate, Direction: models.Ascending},
	}
}
