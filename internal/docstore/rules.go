package docstore

import (
	"fmt"
	"strings"

	"github.com/MKhiriev/go-blog-sync/models"
)

// Rules authorizes writes. actor is nil for anonymous requests; current is
// the stored document for updates and deletes. Reads are always allowed.
type Rules interface {
	CanCreate(actor *models.Identity, collection string, w models.Write) error
	CanUpdate(actor *models.Identity, collection string, current models.Document, w models.Write) error
	CanDelete(actor *models.Identity, collection string, current models.Document) error
}

// OpenRules allows every write.
type OpenRules struct{}

func (OpenRules) CanCreate(*models.Identity, string, models.Write) error { return nil }
func (OpenRules) CanUpdate(*models.Identity, string, models.Document, models.Write) error {
	return nil
}
func (OpenRules) CanDelete(*models.Identity, string, models.Document) error { return nil }

// BlogRules guards the blog collections:
//   - posts are created, edited and deleted by the owner only;
//   - any signed-in user may add or remove their own id in a post's likes;
//   - comments are created by signed-in users in their own name;
//   - comments are deleted by their author or by the owner.
//
// Writes to any other collection are reserved to the owner.
type BlogRules struct {
	OwnerEmail string
}

func (r BlogRules) isOwner(actor *models.Identity) bool {
	return r.OwnerEmail != "" && strings.EqualFold(actor.Email, r.OwnerEmail)
}

func (r BlogRules) CanCreate(actor *models.Identity, collection string, w models.Write) error {
	if actor == nil {
		return ErrUnauthenticated
	}

	if collection == models.CollectionComments {
		if authorID, _ := w.Fields["authorId"].(string); authorID != actor.UserID {
			return fmt.Errorf("%w: comments must be written as yourself", ErrPermissionDenied)
		}
		if postID, _ := w.Fields[models.FieldPostID].(string); postID == "" {
			return fmt.Errorf("%w: %s is required", ErrInvalidWrite, models.FieldPostID)
		}
		return nil
	}

	if !r.isOwner(actor) {
		return fmt.Errorf("%w: only the blog owner may create in %q", ErrPermissionDenied, collection)
	}
	return nil
}

func (r BlogRules) CanUpdate(actor *models.Identity, collection string, _ models.Document, w models.Write) error {
	if actor == nil {
		return ErrUnauthenticated
	}
	if r.isOwner(actor) {
		return nil
	}
	if collection == models.CollectionPosts && isOwnLike(actor, w) {
		return nil
	}
	return fmt.Errorf("%w: only the blog owner may edit %q", ErrPermissionDenied, collection)
}

func (r BlogRules) CanDelete(actor *models.Identity, collection string, current models.Document) error {
	if actor == nil {
		return ErrUnauthenticated
	}
	if r.isOwner(actor) {
		return nil
	}
	if collection == models.CollectionComments {
		if authorID, _ := current.Fields["authorId"].(string); authorID == actor.UserID {
			return nil
		}
	}
	return fmt.Errorf("%w: cannot delete from %q", ErrPermissionDenied, collection)
}

// isOwnLike reports whether w only adds or removes the actor's own id in
// the likes array.
func isOwnLike(actor *models.Identity, w models.Write) bool {
	if len(w.Fields) != 0 || len(w.ServerTimestamps) != 0 {
		return false
	}
	if len(w.ArrayUnion)+len(w.ArrayRemove) != 1 {
		return false
	}

	values, ok := w.ArrayUnion[models.FieldLikes]
	if !ok {
		values, ok = w.ArrayRemove[models.FieldLikes]
	}
	if !ok || len(values) != 1 {
		return false
	}
	id, _ := values[0].(string)
	return id != "" && id == actor.UserID
}
