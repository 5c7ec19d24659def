package tui

import (
	"github.com/MKhiriev/go-blog-sync/models"
)

type postsStateMsg struct {
	state models.SyncState[models.Post]
}

type commentsStateMsg struct {
	postID string
	state  models.SyncState[models.Comment]
}

// watchClosedMsg is produced when a state feed ends, after the engine was
// closed or the screen stopped watching.
type watchClosedMsg struct{}

type actionDoneMsg struct {
	action string
	err    error
}

type copiedMsg struct {
	id  string
	err error
}

type clearStatusMsg struct{}
