package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/MKhiriev/go-blog-sync/models"
)

func waitForPosts(ch <-chan models.SyncState[models.Post]) tea.Cmd {
	return func() tea.Msg {
		state, ok := <-ch
		if !ok {
			return watchClosedMsg{}
		}
		return postsStateMsg{state: state}
	}
}

func waitForComments(postID string, ch <-chan models.SyncState[models.Comment]) tea.Cmd {
	return func() tea.Msg {
		state, ok := <-ch
		if !ok {
			return watchClosedMsg{}
		}
		return commentsStateMsg{postID: postID, state: state}
	}
}
