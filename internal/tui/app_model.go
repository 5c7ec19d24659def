package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/MKhiriev/go-blog-sync/internal/identity"
	"github.com/MKhiriev/go-blog-sync/internal/service"
	"github.com/MKhiriev/go-blog-sync/models"
)

type screen int

const (
	screenPosts screen = iota
	screenPost
	screenPostForm
	screenCommentForm
	screenAbout
)

// commentThreads opens and releases per-post comment engines.
type commentThreads interface {
	Open(ctx context.Context, postID string) service.CommentsService
	Release(postID string)
}

type deleteTarget struct {
	postID    string
	commentID string
}

type appModel struct {
	ctx       context.Context
	posts     service.PostsService
	threads   commentThreads
	caps      identity.Capabilities
	buildInfo models.AppBuildInfo
	copyText  func(string) error

	screen  screen
	spinner spinner.Model

	postsCh    <-chan models.SyncState[models.Post]
	stopPosts  func()
	postsState models.SyncState[models.Post]
	postIdx    int

	thread        service.CommentsService
	commentsCh    <-chan models.SyncState[models.Comment]
	stopComments  func()
	commentsState models.SyncState[models.Comment]
	commentIdx    int

	postForm    postFormModel
	commentForm commentFormModel

	status        string
	showError     bool
	errorOverlay  errorOverlayModel
	showConfirm   bool
	confirm       confirmModel
	pendingDelete deleteTarget
}

func newAppModel(ctx context.Context, posts service.PostsService, threads commentThreads, caps identity.Capabilities,
	buildInfo models.AppBuildInfo, copyText func(string) error) appModel {
	ch, stop := posts.Watch()

	return appModel{
		ctx:       ctx,
		posts:     posts,
		threads:   threads,
		caps:      caps,
		buildInfo: buildInfo,
		copyText:  copyText,
		screen:    screenPosts,
		spinner:   spinner.New(spinner.WithSpinner(spinner.Dot)),
		postsCh:   ch,
		stopPosts: stop,
		postsState: models.SyncState[models.Post]{
			Mode:    models.ModeInitializing,
			Loading: true,
		},
	}
}

func (m appModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, waitForPosts(m.postsCh))
}

// stop releases the state feeds and the open comment thread.
func (m appModel) stop() {
	m.stopPosts()
	m.closeThread()
}

func (m *appModel) closeThread() {
	if m.thread == nil {
		return
	}
	m.stopComments()
	m.threads.Release(m.thread.PostID())
	m.thread = nil
	m.commentsCh = nil
	m.commentsState = models.SyncState[models.Comment]{}
	m.commentIdx = 0
}

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if m.showError {
			if key.Matches(msg, keys.enter) || key.Matches(msg, keys.esc) {
				m.showError = false
				m.errorOverlay.message = ""
			}
			return m, nil
		}
		if m.showConfirm {
			return m.updateConfirm(msg)
		}
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case postsStateMsg:
		m.postsState = msg.state
		m.postIdx = clampIndex(m.postIdx, len(msg.state.Items))
		return m, waitForPosts(m.postsCh)
	case commentsStateMsg:
		if m.thread == nil || m.thread.PostID() != msg.postID {
			return m, nil
		}
		m.commentsState = msg.state
		m.commentIdx = clampIndex(m.commentIdx, len(msg.state.Items))
		return m, waitForComments(msg.postID, m.commentsCh)
	case watchClosedMsg:
		return m, nil
	case actionDoneMsg:
		if msg.err != nil {
			// resync failures are already on the status bar
			if msg.action != "resync" {
				m.showErrorf("%s: %v", msg.action, msg.err)
			}
			return m, nil
		}
		m.status = msg.action + ": done"
		return m, cmdClearStatus()
	case copiedMsg:
		if msg.err != nil {
			m.showErrorf("copy: %v", msg.err)
			return m, nil
		}
		m.status = "Copied " + msg.id
		return m, cmdClearStatus()
	case clearStatusMsg:
		m.status = ""
		return m, nil
	}

	switch m.screen {
	case screenPost:
		return m.updatePost(msg)
	case screenPostForm:
		return m.updatePostForm(msg)
	case screenCommentForm:
		return m.updateCommentForm(msg)
	case screenAbout:
		if k, ok := msg.(tea.KeyMsg); ok && (key.Matches(k, keys.esc) || key.Matches(k, keys.version)) {
			m.screen = screenPosts
		}
		return m, nil
	default:
		return m.updatePosts(msg)
	}
}

func (m appModel) updatePosts(msg tea.Msg) (tea.Model, tea.Cmd) {
	k, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	post, selected := m.selectedPost()

	switch {
	case key.Matches(k, keys.quit):
		return m, tea.Quit
	case key.Matches(k, keys.up):
		m.postIdx = clampIndex(m.postIdx-1, len(m.postsState.Items))
	case key.Matches(k, keys.down):
		m.postIdx = clampIndex(m.postIdx+1, len(m.postsState.Items))
	case key.Matches(k, keys.resync):
		return m, m.cmdResync(m.posts)
	case key.Matches(k, keys.version):
		m.screen = screenAbout
	case key.Matches(k, keys.newPost):
		if !m.caps.IsAuthorized() {
			m.showErrorf("only the blog author can write posts")
			return m, nil
		}
		m.postForm = newPostForm()
		m.screen = screenPostForm
		return m, nil
	case !selected:
		return m, nil
	case key.Matches(k, keys.enter):
		return m.openThread(post)
	case key.Matches(k, keys.like):
		return m, m.cmdToggleLike(post)
	case key.Matches(k, keys.copy):
		return m, m.cmdCopy(post.ID)
	case key.Matches(k, keys.delete):
		if !m.caps.IsAuthorized() {
			m.showErrorf("only the blog author can delete posts")
			return m, nil
		}
		m.askDelete(deleteTarget{postID: post.ID}, post.Title)
	}
	return m, nil
}

func (m appModel) openThread(post models.Post) (tea.Model, tea.Cmd) {
	m.thread = m.threads.Open(m.ctx, post.ID)
	m.commentsCh, m.stopComments = m.thread.Watch()
	m.commentsState = models.SyncState[models.Comment]{Mode: models.ModeInitializing, Loading: true}
	m.commentIdx = 0
	m.screen = screenPost
	return m, waitForComments(post.ID, m.commentsCh)
}

func (m appModel) updatePost(msg tea.Msg) (tea.Model, tea.Cmd) {
	k, ok := msg.(tea.KeyMsg)
	if !ok || m.thread == nil {
		return m, nil
	}
	post, found := m.currentPost()

	switch {
	case key.Matches(k, keys.esc):
		m.closeThread()
		m.screen = screenPosts
	case key.Matches(k, keys.quit):
		return m, tea.Quit
	case key.Matches(k, keys.up):
		m.commentIdx = clampIndex(m.commentIdx-1, len(m.commentsState.Items))
	case key.Matches(k, keys.down):
		m.commentIdx = clampIndex(m.commentIdx+1, len(m.commentsState.Items))
	case key.Matches(k, keys.resync):
		return m, m.cmdResync(m.thread)
	case key.Matches(k, keys.comment):
		if !m.caps.IsAuthenticated() {
			m.showErrorf("sign in to comment")
			return m, nil
		}
		m.commentForm = newCommentForm(m.thread.PostID())
		m.screen = screenCommentForm
	case key.Matches(k, keys.like) && found:
		return m, m.cmdToggleLike(post)
	case key.Matches(k, keys.copy):
		return m, m.cmdCopy(m.thread.PostID())
	case key.Matches(k, keys.delete):
		if m.commentIdx < len(m.commentsState.Items) {
			c := m.commentsState.Items[m.commentIdx]
			m.askDelete(deleteTarget{postID: c.PostID, commentID: c.ID}, fitText(c.Content, 40))
		}
	}
	return m, nil
}

func (m appModel) updatePostForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok && key.Matches(k, keys.esc) {
		m.screen = screenPosts
		return m, nil
	}

	form, cmd, submitted := m.postForm.Update(msg)
	m.postForm = form
	if !submitted {
		return m, cmd
	}

	m.screen = screenPosts
	input := form.Input()
	return m, func() tea.Msg {
		_, err := m.posts.Create(m.ctx, input)
		return actionDoneMsg{action: "publish", err: err}
	}
}

func (m appModel) updateCommentForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok && key.Matches(k, keys.esc) {
		m.screen = screenPost
		return m, nil
	}

	form, cmd, submitted := m.commentForm.Update(msg)
	m.commentForm = form
	if !submitted {
		return m, cmd
	}

	m.screen = screenPost
	thread, input := m.thread, form.Input()
	if thread == nil {
		return m, nil
	}
	return m, func() tea.Msg {
		_, err := thread.Create(m.ctx, input)
		return actionDoneMsg{action: "comment", err: err}
	}
}

func (m appModel) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.yes):
		m.showConfirm = false
		target := m.pendingDelete
		m.pendingDelete = deleteTarget{}
		return m, m.cmdDelete(target)
	case key.Matches(msg, keys.no) || key.Matches(msg, keys.esc):
		m.showConfirm = false
		m.pendingDelete = deleteTarget{}
	}
	return m, nil
}

func (m *appModel) askDelete(target deleteTarget, label string) {
	m.pendingDelete = target
	m.confirm = confirmModel{message: label}
	m.showConfirm = true
}

func (m *appModel) showErrorf(format string, args ...any) {
	m.errorOverlay = errorOverlayModel{message: fmt.Sprintf(format, args...)}
	m.showError = true
}

func (m appModel) selectedPost() (models.Post, bool) {
	if m.postIdx < 0 || m.postIdx >= len(m.postsState.Items) {
		return models.Post{}, false
	}
	return m.postsState.Items[m.postIdx], true
}

// currentPost is the post whose thread is open, looked up by id since the
// list may have changed since it was opened.
func (m appModel) currentPost() (models.Post, bool) {
	if m.thread == nil {
		return models.Post{}, false
	}
	for _, p := range m.postsState.Items {
		if p.ID == m.thread.PostID() {
			return p, true
		}
	}
	return models.Post{}, false
}

func (m appModel) cmdResync(engine interface{ Resync(context.Context) error }) tea.Cmd {
	return func() tea.Msg {
		return actionDoneMsg{action: "resync", err: engine.Resync(m.ctx)}
	}
}

func (m appModel) cmdToggleLike(post models.Post) tea.Cmd {
	user, ok := m.caps.Identity()
	if !ok || !m.caps.IsAuthenticated() {
		return func() tea.Msg {
			return actionDoneMsg{action: "like", err: service.ErrUnauthorized}
		}
	}
	liked := post.LikedBy(user.UserID)
	return func() tea.Msg {
		return actionDoneMsg{action: "like", err: m.posts.ToggleLike(m.ctx, post.ID, user.UserID, liked)}
	}
}

func (m appModel) cmdCopy(id string) tea.Cmd {
	return func() tea.Msg {
		return copiedMsg{id: id, err: m.copyText(id)}
	}
}

func (m appModel) cmdDelete(target deleteTarget) tea.Cmd {
	switch {
	case target.commentID != "":
		thread := m.thread
		if thread == nil || thread.PostID() != target.postID {
			return nil
		}
		return func() tea.Msg {
			return actionDoneMsg{action: "delete comment", err: thread.Delete(m.ctx, target.commentID)}
		}
	case target.postID != "":
		return func() tea.Msg {
			return actionDoneMsg{action: "delete post", err: m.posts.Delete(m.ctx, target.postID)}
		}
	default:
		return nil
	}
}

func cmdClearStatus() tea.Cmd {
	return tea.Tick(2*time.Second, func(time.Time) tea.Msg { return clearStatusMsg{} })
}

func clampIndex(i, n int) int {
	if n == 0 || i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}

func (m appModel) View() string {
	var body string
	switch m.screen {
	case screenPost:
		body = m.viewPost()
	case screenPostForm:
		body = m.postForm.View()
	case screenCommentForm:
		body = m.commentForm.View()
	case screenAbout:
		body = renderBuildInfoWindow(m.buildInfo)
	default:
		body = m.viewPosts()
	}

	if m.showError {
		body += "\n\n" + m.errorOverlay.View()
	} else if m.showConfirm {
		body += "\n\n" + m.confirm.View()
	}
	return appStyle.Render(body)
}

func (m appModel) viewPosts() string {
	var b strings.Builder
	b.WriteString(renderStatusBar(m.postsState, m.spinner.View()))
	b.WriteString("\n\n")

	user, signedIn := m.caps.Identity()
	if len(m.postsState.Items) == 0 {
		b.WriteString(helpStyle.Render("no posts yet"))
	}
	for i, p := range m.postsState.Items {
		heart := "♡"
		if signedIn && p.LikedBy(user.UserID) {
			heart = "♥"
		}
		line := fmt.Sprintf("%s  %s %d  %s", p.Date.Local().Format("2006-01-02"), heart, p.LikeCount(), fitText(p.Title, 50))
		if i == m.postIdx {
			line = selectedStyle.Render("▸ " + line)
		} else {
			line = "  " + line
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	if m.status != "" {
		b.WriteString("\n")
		b.WriteString(helpStyle.Render(m.status))
	}

	hotKeys := "↑/↓: move  enter: open  r: resync  l: like  y: copy id  v: about"
	if m.caps.IsAuthorized() {
		hotKeys += "  n: new post  d: delete"
	}
	return renderPage("POSTS", b.String(), hotKeys)
}

func (m appModel) viewPost() string {
	var b strings.Builder
	b.WriteString(renderStatusBar(m.commentsState, m.spinner.View()))
	b.WriteString("\n\n")

	post, found := m.currentPost()
	if !found {
		b.WriteString(helpStyle.Render("this post is no longer available"))
		b.WriteString("\n")
	} else {
		b.WriteString(titleStyle.Render(post.Title))
		b.WriteString("\n")
		b.WriteString(helpStyle.Render(fmt.Sprintf("%s  %s  %d likes  #%s",
			post.Date.Local().Format("2006-01-02 15:04"), post.Mood, post.LikeCount(), strings.Join(post.Tags, " #"))))
		b.WriteString("\n\n")
		b.WriteString(post.Content)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(titleStyle.Render(fmt.Sprintf("Comments (%d)", len(m.commentsState.Items))))
	b.WriteString("\n")
	for i, c := range m.commentsState.Items {
		line := fmt.Sprintf("%s: %s", c.AuthorName, fitText(firstLine(c.Content), 70))
		if i == m.commentIdx {
			line = selectedStyle.Render("▸ " + line)
		} else {
			line = "  " + line
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	if m.status != "" {
		b.WriteString("\n")
		b.WriteString(helpStyle.Render(m.status))
	}

	return renderPage("POST", b.String(), "esc: back  r: resync  l: like  c: comment  d: delete comment  y: copy id")
}
