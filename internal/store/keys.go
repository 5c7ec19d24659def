package store

// PostsKey is the cache key of the posts collection snapshot.
const PostsKey = "posts"

// CommentsKey returns the cache key of the comment thread of postID.
func CommentsKey(postID string) string {
	return "comments/" + postID
}
