package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/MKhiriev/go-blog-sync/internal/validators"
	"github.com/MKhiriev/go-blog-sync/models"
)

const (
	fieldTitle = iota
	fieldContent
	fieldTags
	fieldMood
)

// postFormModel collects a new post. Tags are comma separated; an empty
// mood means the default one.
type postFormModel struct {
	inputs []textinput.Model
	focus  int
}

func newPostForm() postFormModel {
	placeholders := []string{"Title", "Content", "Tags (comma separated)", "Mood: " + moodChoices()}

	inputs := make([]textinput.Model, len(placeholders))
	for i, placeholder := range placeholders {
		in := textinput.New()
		in.Placeholder = placeholder
		in.Prompt = "> "
		in.CharLimit = 2000
		inputs[i] = in
	}
	inputs[fieldTitle].CharLimit = validators.MaxTitleLength
	inputs[fieldTitle].Focus()

	return postFormModel{inputs: inputs}
}

func moodChoices() string {
	return strings.Join([]string{
		string(models.MoodPositive),
		string(models.MoodNeutral),
		string(models.MoodContemplative),
		string(models.MoodAmbitious),
	}, "|")
}

// Update moves focus on tab/shift+tab and enter. submitted is true when
// enter is pressed on the last field.
func (f postFormModel) Update(msg tea.Msg) (postFormModel, tea.Cmd, bool) {
	if k, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(k, keys.enter):
			if f.focus == len(f.inputs)-1 {
				return f, nil, true
			}
			return f.setFocus(f.focus + 1), nil, false
		case key.Matches(k, keys.tab):
			return f.setFocus((f.focus + 1) % len(f.inputs)), nil, false
		case key.Matches(k, keys.backtab):
			return f.setFocus((f.focus + len(f.inputs) - 1) % len(f.inputs)), nil, false
		}
	}

	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return f, cmd, false
}

func (f postFormModel) setFocus(i int) postFormModel {
	f.inputs[f.focus].Blur()
	f.focus = i
	f.inputs[f.focus].Focus()
	return f
}

// Input converts the form into a post. The mood is passed through as typed;
// the posts service rejects unknown values.
func (f postFormModel) Input() models.PostInput {
	var tags []string
	for _, tag := range strings.Split(f.inputs[fieldTags].Value(), ",") {
		if tag = strings.TrimSpace(tag); tag != "" {
			tags = append(tags, tag)
		}
	}

	return models.PostInput{
		Title:   f.inputs[fieldTitle].Value(),
		Content: f.inputs[fieldContent].Value(),
		Tags:    tags,
		Mood:    models.Mood(strings.TrimSpace(f.inputs[fieldMood].Value())),
	}
}

func (f postFormModel) View() string {
	var b strings.Builder
	for _, in := range f.inputs {
		b.WriteString(in.View())
		b.WriteString("\n")
	}
	return renderPage("NEW POST", b.String(), "tab: next field  enter: next / publish  esc: cancel")
}

type commentFormModel struct {
	input  textinput.Model
	postID string
}

func newCommentForm(postID string) commentFormModel {
	in := textinput.New()
	in.Placeholder = "Write a comment"
	in.Prompt = "> "
	in.CharLimit = models.MaxCommentLength
	in.Focus()
	return commentFormModel{input: in, postID: postID}
}

func (f commentFormModel) Update(msg tea.Msg) (commentFormModel, tea.Cmd, bool) {
	if k, ok := msg.(tea.KeyMsg); ok && key.Matches(k, keys.enter) {
		return f, nil, true
	}

	var cmd tea.Cmd
	f.input, cmd = f.input.Update(msg)
	return f, cmd, false
}

func (f commentFormModel) Input() models.CommentInput {
	return models.CommentInput{Content: f.input.Value()}
}

func (f commentFormModel) View() string {
	return renderPage("NEW COMMENT", f.input.View(), "enter: send  esc: cancel")
}
