// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	up       key.Binding
	down     key.Binding
	left     key.Binding
	right    key.Binding
	enter    key.Binding
	esc      key.Binding
	tab      key.Binding
	backtab  key.Binding
	quit     key.Binding
	logout   key.Binding
	buildInf key.Binding
	jump     key.Binding
	newItem  key.Binding
	reload   key.Binding
	search   key.Binding
	delete   key.Binding
	copy     key.Binding
	generate key.Binding
	save     key.Binding
	yes      key.Binding
	no       key.Binding
}

var keys = keyMap{
	up:       key.NewBinding(key.WithKeys("up", "k")),
	down:     key.NewBinding(key.WithKeys("down", "j")),
	left:     key.NewBinding(key.WithKeys("left", "h")),
	right:    key.NewBinding(key.WithKeys("right", "l")),
	enter:    key.NewBinding(key.WithKeys("enter")),
	esc:      key.NewBinding(key.WithKeys("esc")),
	tab:      key.NewBinding(key.WithKeys("tab")),
	backtab:  key.NewBinding(key.WithKeys("shift+tab")),
	quit:     key.NewBinding(key.WithKeys("q")),
	logout:   key.NewBinding(key.WithKeys("o")),
	buildInf: key.NewBinding(key.WithKeys("v")),
	jump:     key.NewBinding(key.WithKeys(":")),
	newItem:  key.NewBinding(key.WithKeys("n")),
	reload:   key.NewBinding(key.WithKeys("r")),
	search:   key.NewBinding(key.WithKeys("/")),
	delete:   key.NewBinding(key.WithKeys("d")),
	copy:     key.NewBinding(key.WithKeys("c")),
	generate: key.NewBinding(key.WithKeys("g")),
	save:     key.NewBinding(key.WithKeys("ctrl+s")),
	yes:      key.NewBinding(key.WithKeys("y")),
	no:       key.NewBinding(key.WithKeys("n")),
}
