package tui

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-blog-sync/internal/service"
	"github.com/MKhiriev/go-blog-sync/models"
)

type fakeEngine[T any] struct {
	mu        sync.Mutex
	state     models.SyncState[T]
	resyncErr error
	resyncs   int
	stopped   bool
}

func (f *fakeEngine[T]) Start(context.Context) {}
func (f *fakeEngine[T]) Close()                {}
func (f *fakeEngine[T]) Name() string          { return "fake" }
func (f *fakeEngine[T]) Mode() models.SyncMode { return f.state.Mode }

func (f *fakeEngine[T]) State() models.SyncState[T] {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

func (f *fakeEngine[T]) Watch() (<-chan models.SyncState[T], func()) {
	ch := make(chan models.SyncState[T], 1)
	ch <- f.State()
	return ch, func() {
		f.mu.Lock()
		defer f.mu.Unlock()
		f.stopped = true
	}
}

func (f *fakeEngine[T]) Resync(context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.resyncs++
	return f.resyncErr
}

type likeCall struct {
	postID, userID string
	liked          bool
}

type fakePosts struct {
	fakeEngine[models.Post]

	created []models.PostInput
	deleted []string
	likes   []likeCall
	err     error
}

func (f *fakePosts) Create(_ context.Context, input models.PostInput) (string, error) {
	f.created = append(f.created, input)
	return "new", f.err
}

func (f *fakePosts) Update(context.Context, string, models.PostPatch) error { return f.err }

func (f *fakePosts) Delete(_ context.Context, id string) error {
	f.deleted = append(f.deleted, id)
	return f.err
}

func (f *fakePosts) ToggleLike(_ context.Context, postID, userID string, liked bool) error {
	f.likes = append(f.likes, likeCall{postID: postID, userID: userID, liked: liked})
	return f.err
}

type fakeComments struct {
	fakeEngine[models.Comment]

	postID  string
	created []models.CommentInput
	deleted []string
}

func (f *fakeComments) PostID() string { return f.postID }

func (f *fakeComments) Create(_ context.Context, input models.CommentInput) (string, error) {
	f.created = append(f.created, input)
	return "c-new", nil
}

func (f *fakeComments) Delete(_ context.Context, id string) error {
	f.deleted = append(f.deleted, id)
	return nil
}

type fakeThreads struct {
	opened   map[string]*fakeComments
	released []string
}

func (f *fakeThreads) Open(_ context.Context, postID string) service.CommentsService {
	if f.opened == nil {
		f.opened = make(map[string]*fakeComments)
	}
	thread := &fakeComments{postID: postID}
	f.opened[postID] = thread
	return thread
}

func (f *fakeThreads) Release(postID string) {
	f.released = append(f.released, postID)
}

type stubCaps struct {
	authenticated bool
	authorized    bool
	identity      models.Identity
}

func (s stubCaps) IsAuthenticated() bool { return s.authenticated }
func (s stubCaps) IsAuthorized() bool    { return s.authorized }
func (s stubCaps) Identity() (models.Identity, bool) {
	return s.identity, s.authenticated
}

var (
	ownerCaps  = stubCaps{authenticated: true, authorized: true, identity: models.Identity{UserID: "owner"}}
	readerCaps = stubCaps{authenticated: true, identity: models.Identity{UserID: "reader"}}
)

var testPosts = []models.Post{
	{ID: "p2", Title: "second", Date: time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC), Likes: []string{"reader"}},
	{ID: "p1", Title: "first", Date: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)},
}

type testApp struct {
	model   appModel
	posts   *fakePosts
	threads *fakeThreads
	copied  []string
}

func newTestApp(t *testing.T, caps stubCaps) *testApp {
	t.Helper()

	app := &testApp{posts: &fakePosts{}, threads: &fakeThreads{}}
	app.model = newAppModel(context.Background(), app.posts, app.threads, caps, models.NewAppBuildInfo("v1", "", ""),
		func(s string) error {
			app.copied = append(app.copied, s)
			return nil
		})
	app.send(postsStateMsg{state: models.SyncState[models.Post]{Items: testPosts, Mode: models.ModeLive, Online: true}})
	return app
}

// send feeds msg to the model and returns the command it produced.
func (a *testApp) send(msg tea.Msg) tea.Cmd {
	next, cmd := a.model.Update(msg)
	a.model = next.(appModel)
	return cmd
}

func (a *testApp) press(keys ...string) tea.Cmd {
	var cmd tea.Cmd
	for _, k := range keys {
		cmd = a.send(keyMsg(k))
	}
	return cmd
}

// run executes cmd and feeds its message back into the model.
func (a *testApp) run(t *testing.T, cmd tea.Cmd) tea.Msg {
	t.Helper()
	require.NotNil(t, cmd)
	msg := cmd()
	a.send(msg)
	return msg
}

func keyMsg(k string) tea.KeyMsg {
	switch k {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
	}
}

func typeText(a *testApp, s string) {
	for _, r := range s {
		a.send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

func TestAppModel_PostsStateAndSelection(t *testing.T) {
	app := newTestApp(t, readerCaps)

	assert.Len(t, app.model.postsState.Items, 2)
	assert.Contains(t, app.model.View(), "second")
	assert.Contains(t, app.model.View(), "online")

	app.press("down", "down", "down")
	assert.Equal(t, 1, app.model.postIdx, "selection stops at the last post")

	app.send(postsStateMsg{state: models.SyncState[models.Post]{Items: testPosts[:1], Online: true}})
	assert.Equal(t, 0, app.model.postIdx, "selection is clamped when the list shrinks")

	app.press("up")
	assert.Equal(t, 0, app.model.postIdx)
}

func TestAppModel_ToggleLikeUsesCurrentLikeState(t *testing.T) {
	app := newTestApp(t, readerCaps)

	app.run(t, app.press("l"))
	app.press("down")
	app.run(t, app.press("l"))

	assert.Equal(t, []likeCall{
		{postID: "p2", userID: "reader", liked: true},
		{postID: "p1", userID: "reader", liked: false},
	}, app.posts.likes)
	assert.Equal(t, "like: done", app.model.status)
}

func TestAppModel_AnonymousCannotLike(t *testing.T) {
	app := newTestApp(t, stubCaps{})

	msg := app.run(t, app.press("l"))

	assert.ErrorIs(t, msg.(actionDoneMsg).err, service.ErrUnauthorized)
	assert.Empty(t, app.posts.likes)
	assert.True(t, app.model.showError)
}

func TestAppModel_NewPostRequiresAuthor(t *testing.T) {
	app := newTestApp(t, readerCaps)
	app.press("n")
	assert.Equal(t, screenPosts, app.model.screen)
	assert.True(t, app.model.showError)

	app.press("esc")
	assert.False(t, app.model.showError)
}

func TestAppModel_PublishPost(t *testing.T) {
	app := newTestApp(t, ownerCaps)

	app.press("n")
	require.Equal(t, screenPostForm, app.model.screen)

	typeText(app, "Hello")
	app.press("enter")
	typeText(app, "Body")
	app.press("enter")
	typeText(app, "go, sync ,")
	app.press("enter")
	typeText(app, "positive")
	cmd := app.press("enter")

	assert.Equal(t, screenPosts, app.model.screen)
	app.run(t, cmd)
	require.Len(t, app.posts.created, 1)
	assert.Equal(t, models.PostInput{
		Title:   "Hello",
		Content: "Body",
		Tags:    []string{"go", "sync"},
		Mood:    models.MoodPositive,
	}, app.posts.created[0])
}

func TestAppModel_DeletePostAsksFirst(t *testing.T) {
	app := newTestApp(t, ownerCaps)

	app.press("d")
	require.True(t, app.model.showConfirm)
	assert.Contains(t, app.model.View(), "second")

	app.press("n")
	assert.False(t, app.model.showConfirm)
	assert.Empty(t, app.posts.deleted)

	app.press("d")
	app.run(t, app.press("y"))
	assert.Equal(t, []string{"p2"}, app.posts.deleted)
	assert.Empty(t, app.copied, "y confirms instead of copying while asking")
}

func TestAppModel_ActionErrors(t *testing.T) {
	app := newTestApp(t, ownerCaps)

	app.send(actionDoneMsg{action: "resync", err: errors.New("boom")})
	assert.False(t, app.model.showError, "resync failures stay on the status bar")

	app.send(actionDoneMsg{action: "delete post", err: errors.New("boom")})
	assert.True(t, app.model.showError)
	assert.Contains(t, app.model.View(), "delete post: boom")

	app.press("d")
	assert.False(t, app.model.showConfirm, "keys are swallowed while the error is shown")
}

func TestAppModel_ResyncAndCopy(t *testing.T) {
	app := newTestApp(t, readerCaps)

	app.run(t, app.press("r"))
	assert.Equal(t, 1, app.posts.resyncs)

	app.run(t, app.press("y"))
	assert.Equal(t, []string{"p2"}, app.copied)
	assert.Equal(t, "Copied p2", app.model.status)

	app.send(clearStatusMsg{})
	assert.Empty(t, app.model.status)
}

func TestAppModel_CommentThreadLifecycle(t *testing.T) {
	app := newTestApp(t, readerCaps)

	cmd := app.press("enter")
	require.Equal(t, screenPost, app.model.screen)
	thread := app.threads.opened["p2"]
	require.NotNil(t, thread)

	app.run(t, cmd)
	app.send(commentsStateMsg{postID: "p2", state: models.SyncState[models.Comment]{
		Items:  []models.Comment{{ID: "c1", PostID: "p2", AuthorName: "Ann", Content: "nice post"}},
		Online: true,
		Mode:   models.ModeLive,
	}})
	assert.Contains(t, app.model.View(), "Ann: nice post")

	app.send(commentsStateMsg{postID: "p1", state: models.SyncState[models.Comment]{}})
	assert.Len(t, app.model.commentsState.Items, 1, "states of another thread are ignored")

	app.press("c")
	require.Equal(t, screenCommentForm, app.model.screen)
	typeText(app, "thanks")
	app.run(t, app.press("enter"))
	assert.Equal(t, []models.CommentInput{{Content: "thanks"}}, thread.created)
	assert.Equal(t, screenPost, app.model.screen)

	app.press("d")
	app.run(t, app.press("y"))
	assert.Equal(t, []string{"c1"}, thread.deleted)

	app.press("esc")
	assert.Equal(t, screenPosts, app.model.screen)
	assert.Equal(t, []string{"p2"}, app.threads.released)
	assert.True(t, thread.stopped)
	assert.Nil(t, app.model.thread)
}

func TestAppModel_AnonymousCannotComment(t *testing.T) {
	app := newTestApp(t, stubCaps{})

	app.press("enter", "c")

	assert.Equal(t, screenPost, app.model.screen)
	assert.True(t, app.model.showError)
}

func TestAppModel_AboutScreen(t *testing.T) {
	app := newTestApp(t, stubCaps{})

	app.press("v")
	assert.Equal(t, screenAbout, app.model.screen)
	assert.Contains(t, app.model.View(), "v1")

	app.press("esc")
	assert.Equal(t, screenPosts, app.model.screen)
}

func TestAppModel_StopReleasesFeeds(t *testing.T) {
	app := newTestApp(t, readerCaps)
	app.press("enter")

	app.model.stop()

	assert.True(t, app.posts.stopped)
	assert.Equal(t, []string{"p2"}, app.threads.released)
}
