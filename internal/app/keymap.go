package app

import "github.com/charmbracelet/bubbles/key"

// keyMap declares the review-screen bindings.
type keyMap struct {
	Quit      key.Binding
	Cancel    key.Binding
	Confirm   key.Binding
	Prev      key.Binding
	Next      key.Binding
	Accept    key.Binding
	Reject    key.Binding
	Confirmed key.Binding
	Edit      key.Binding
	Play      key.Binding
	Rows      key.Binding
	Select    key.Binding
	Export    key.Binding
	Reload    key.Binding
	AcceptAll key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		Cancel:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel batch")),
		Confirm:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "confirm row")),
		Prev:      key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←", "previous")),
		Next:      key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→", "next")),
		Accept:    key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "accept")),
		Reject:    key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "reject")),
		Confirmed: key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "toggle confirmed")),
		Edit:      key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit")),
		Play:      key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "play audio")),
		Rows:      key.NewBinding(key.WithKeys("g"), key.WithHelp("g", "pick row")),
		Select:    key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "select")),
		Export:    key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "export")),
		Reload:    key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),
		AcceptAll: key.NewBinding(key.WithKeys("A"), key.WithHelp("A", "accept all")),
	}
}
