package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	up      key.Binding
	down    key.Binding
	enter   key.Binding
	esc     key.Binding
	tab     key.Binding
	backtab key.Binding
	quit    key.Binding
	resync  key.Binding
	like    key.Binding
	copy    key.Binding
	newPost key.Binding
	comment key.Binding
	delete  key.Binding
	version key.Binding
	yes     key.Binding
	no      key.Binding
}

var keys = keyMap{
	up:      key.NewBinding(key.WithKeys("up", "k")),
	down:    key.NewBinding(key.WithKeys("down", "j")),
	enter:   key.NewBinding(key.WithKeys("enter")),
	esc:     key.NewBinding(key.WithKeys("esc")),
	tab:     key.NewBinding(key.WithKeys("tab")),
	backtab: key.NewBinding(key.WithKeys("shift+tab")),
	quit:    key.NewBinding(key.WithKeys("q", "ctrl+c")),
	resync:  key.NewBinding(key.WithKeys("r")),
	like:    key.NewBinding(key.WithKeys("l")),
	copy:    key.NewBinding(key.WithKeys("y")),
	newPost: key.NewBinding(key.WithKeys("n")),
	comment: key.NewBinding(key.WithKeys("c")),
	delete:  key.NewBinding(key.WithKeys("d")),
	version: key.NewBinding(key.WithKeys("v")),
	yes:     key.NewBinding(key.WithKeys("y")),
	no:      key.NewBinding(key.WithKeys("n")),
}
