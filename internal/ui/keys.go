package ui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Open       key.Binding
	Favorite   key.Binding
	Comments   key.Binding
	Down       key.Binding
	Up         key.Binding
	Top        key.Binding
	Bottom     key.Binding
	FrontPage  key.Binding
	Info       key.Binding
	TopStories key.Binding
	Favorites  key.Binding
	NextTab    key.Binding
	MarkRead   key.Binding
	Lower      key.Binding
	Raise      key.Binding
	LowerMore  key.Binding
	RaiseMore  key.Binding
	Refresh    key.Binding
	Debug      key.Binding
	Escape     key.Binding
	Quit       key.Binding
}

var keys = keyMap{
	Open:       key.NewBinding(key.WithKeys("enter", "o"), key.WithHelp("enter", "open")),
	Favorite:   key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "favorite")),
	Comments:   key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "comments")),
	Down:       key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("j/k", "move")),
	Up:         key.NewBinding(key.WithKeys("k", "up")),
	Top:        key.NewBinding(key.WithKeys("g", "home")),
	Bottom:     key.NewBinding(key.WithKeys("G", "end")),
	FrontPage:  key.NewBinding(key.WithKeys("H"), key.WithHelp("H", "front page")),
	Info:       key.NewBinding(key.WithKeys("i"), key.WithHelp("i", "info")),
	TopStories: key.NewBinding(key.WithKeys("1")),
	Favorites:  key.NewBinding(key.WithKeys("2")),
	NextTab:    key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next tab")),
	MarkRead:   key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "mark read")),
	Lower:      key.NewBinding(key.WithKeys("h", "left"), key.WithHelp("h/l", "score ±10")),
	Raise:      key.NewBinding(key.WithKeys("l", "right")),
	LowerMore:  key.NewBinding(key.WithKeys("[")),
	RaiseMore:  key.NewBinding(key.WithKeys("]"), key.WithHelp("[/]", "±100")),
	Refresh:    key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
	Debug:      key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "debug")),
	Escape:     key.NewBinding(key.WithKeys("esc")),
	Quit:       key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Open, k.Favorite, k.Comments, k.Down, k.NextTab, k.MarkRead, k.Lower, k.RaiseMore, k.Refresh, k.Debug, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Open, k.Favorite, k.Comments, k.FrontPage},
		{k.Down, k.NextTab, k.Info},
		{k.MarkRead, k.Lower, k.RaiseMore},
		{k.Refresh, k.Debug, k.Quit},
	}
}
