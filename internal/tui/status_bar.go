package tui

import (
	"strings"

	"github.com/MKhiriev/go-blog-sync/models"
)

// connectionStatus is what the status bar shows for one engine.
type connectionStatus int

const (
	statusOnline connectionStatus = iota
	statusOffline
	statusSyncing
	statusError
)

func statusOf[T any](s models.SyncState[T]) connectionStatus {
	switch {
	case !s.Online:
		return statusOffline
	case s.Loading || s.Syncing:
		return statusSyncing
	case s.LastError != nil:
		return statusError
	default:
		return statusOnline
	}
}

// renderStatusBar mirrors the connection banner: offline, syncing (with a
// spinner), error with the retry hint, or online with the engine mode.
func renderStatusBar[T any](s models.SyncState[T], spin string) string {
	var b strings.Builder

	switch statusOf(s) {
	case statusOffline:
		b.WriteString(statusOfflineStyle.Render("● offline"))
		b.WriteString(helpStyle.Render("  showing saved content"))
	case statusSyncing:
		b.WriteString(statusSyncingStyle.Render(spin + " syncing"))
	case statusError:
		b.WriteString(statusErrorStyle.Render("● " + fitText(s.ErrorMessage(), 60)))
		b.WriteString(helpStyle.Render("  r: retry"))
	default:
		b.WriteString(statusOnlineStyle.Render("● online"))
		b.WriteString(helpStyle.Render("  " + s.Mode.String()))
		if s.Mode == models.ModeDegradedLocal {
			b.WriteString(helpStyle.Render("  r: retry live updates"))
		}
	}

	return b.String()
}
