package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines the application key bindings.
type keyMap struct {
	Up           key.Binding
	Down         key.Binding
	Top          key.Binding
	Bottom       key.Binding
	Open         key.Binding
	Back         key.Binding
	Search       key.Binding
	CycleStatus  key.Binding
	CycleTag     key.Binding
	CycleSort    key.Binding
	HideReleased key.Binding
	Refresh      key.Binding
	Quit         key.Binding
}

var keys = keyMap{
	Up:           key.NewBinding(key.WithKeys("up", "k")),
	Down:         key.NewBinding(key.WithKeys("down", "j")),
	Top:          key.NewBinding(key.WithKeys("home", "g")),
	Bottom:       key.NewBinding(key.WithKeys("end", "G")),
	Open:         key.NewBinding(key.WithKeys("enter")),
	Back:         key.NewBinding(key.WithKeys("esc")),
	Search:       key.NewBinding(key.WithKeys("/")),
	CycleStatus:  key.NewBinding(key.WithKeys("s")),
	CycleTag:     key.NewBinding(key.WithKeys("t")),
	CycleSort:    key.NewBinding(key.WithKeys("o")),
	HideReleased: key.NewBinding(key.WithKeys("h")),
	Refresh:      key.NewBinding(key.WithKeys("r")),
	Quit:         key.NewBinding(key.WithKeys("q", "ctrl+c")),
}
