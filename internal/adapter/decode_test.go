package adapter

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-blog-sync/models"
)

func postDoc(fields map[string]any) models.Document {
	base := map[string]any{
		"title":   "Hello",
		"content": "World",
		"date":    "2026-03-01T10:00:00Z",
	}
	for k, v := range fields {
		if v == nil {
			delete(base, k)
			continue
		}
		base[k] = v
	}
	return models.Document{ID: "p1", Fields: base}
}

func TestDecodePost_Defaults(t *testing.T) {
	post, err := DecodePost(postDoc(nil))
	require.NoError(t, err)

	assert.Equal(t, "p1", post.ID)
	assert.Equal(t, "Hello", post.Title)
	assert.Equal(t, time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC), post.Date)
	assert.Equal(t, models.MoodNeutral, post.Mood)
	assert.NotNil(t, post.Tags)
	assert.Empty(t, post.Tags)
	assert.NotNil(t, post.Likes)
	assert.Zero(t, post.LikeCount())
}

func TestDecodePost_FullDocument(t *testing.T) {
	post, err := DecodePost(postDoc(map[string]any{
		"tags":      []any{"go", "sync"},
		"mood":      "ambitious",
		"likes":     []any{"u1", "u2", "u1"},
		"likeCount": 99.0,
		"date":      map[string]any{"_seconds": 1772359200.0, "_nanoseconds": 5e8},
	}))
	require.NoError(t, err)

	assert.Equal(t, []string{"go", "sync"}, post.Tags)
	assert.Equal(t, models.MoodAmbitious, post.Mood)
	assert.Equal(t, []string{"u1", "u2"}, post.Likes)
	assert.Equal(t, 2, post.LikeCount(), "stored likeCount is ignored")
	assert.Equal(t, time.Unix(1772359200, 500000000).UTC(), post.Date)
}

func TestDecodePost_Errors(t *testing.T) {
	tests := []struct {
		name   string
		fields map[string]any
		id     string
	}{
		{name: "missing title", fields: map[string]any{"title": nil}},
		{name: "missing date", fields: map[string]any{"date": nil}},
		{name: "numeric content", fields: map[string]any{"content": 42.0}},
		{name: "bad date string", fields: map[string]any{"date": "yesterday"}},
		{name: "bad date object", fields: map[string]any{"date": map[string]any{"nanos": 1.0}}},
		{name: "unknown mood", fields: map[string]any{"mood": "furious"}},
		{name: "tags not array", fields: map[string]any{"tags": "go"}},
		{name: "likes with numbers", fields: map[string]any{"likes": []any{"u1", 7.0}}},
		{name: "empty id", id: "-"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := postDoc(tt.fields)
			if tt.id == "-" {
				doc.ID = ""
			}
			_, err := DecodePost(doc)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrDecode)
		})
	}
}

func TestDecodePosts_FirstFailureFailsBatch(t *testing.T) {
	docs := []models.Document{postDoc(nil), postDoc(map[string]any{"title": nil})}

	posts, err := DecodePosts(docs)
	assert.ErrorIs(t, err, ErrDecode)
	assert.Nil(t, posts)

	posts, err = DecodePosts(docs[:1])
	require.NoError(t, err)
	assert.Len(t, posts, 1)
}

func TestDecodeComment(t *testing.T) {
	doc := models.Document{ID: "c1", Fields: map[string]any{
		"postId":     "p1",
		"authorId":   "u1",
		"authorName": "Ana",
		"content":    "nice",
		"date":       "2026-03-01T10:00:00.123Z",
	}}

	c, err := DecodeComment(doc)
	require.NoError(t, err)
	assert.Equal(t, "p1", c.PostID)
	assert.Equal(t, "Ana", c.AuthorName)
	assert.Empty(t, c.AuthorPhoto)
	assert.Equal(t, 123*time.Millisecond, time.Duration(c.Date.Nanosecond()))

	doc.Fields["authorPhoto"] = "https://example.com/a.png"
	c, err = DecodeComment(doc)
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/a.png", c.AuthorPhoto)

	delete(doc.Fields, "authorId")
	_, err = DecodeComments([]models.Document{doc})
	assert.ErrorIs(t, err, ErrDecode)
}
