package view

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/abelbrown/hnbar/internal/state"
)

// Target is a clickable element of the story screen.
type Target int

const (
	TargetNone Target = iota
	TargetTitle
	TargetInfoButton
	TargetTab
	TargetRow
	TargetInfoLink
	TargetMarkAllRead
	TargetSlider
	TargetQuit
)

// Hit is the element under a screen cell. Tab is set for TargetTab, Index
// for TargetRow and TargetInfoLink, Value for TargetSlider.
type Hit struct {
	Target Target
	Tab    state.Tab
	Index  int
	Value  int
}

// ContentTop is the screen line where the tab content starts.
const ContentTop = 2

// HitTest returns the element drawn at column x of line y by Render(vp).
func (v StoryView) HitTest(vp Viewport, x, y int) Hit {
	s := v.store.State()
	if x < 0 || y < 0 || x >= vp.Width {
		return Hit{}
	}
	height := vp.ContentHeight(s)

	switch {
	case y == 0:
		return hitHeader(x)
	case y == 1:
		return hitTabs(x)
	case y < ContentTop+height:
		return hitContent(s, vp, x, y-ContentTop, height)
	case y == ContentTop+height:
		return hitFooter(s, vp.Width, x)
	}
	return Hit{}
}

func hitHeader(x int) Hit {
	title := lipgloss.Width(TitleStyle.Render(titleLabel))
	switch {
	case x < title:
		return Hit{Target: TargetTitle}
	case x < title+lipgloss.Width(InfoButtonStyle.Render(infoButtonLabel)):
		return Hit{Target: TargetInfoButton}
	}
	return Hit{}
}

func hitTabs(x int) Hit {
	left := 0
	for _, b := range tabButtons {
		// Active and inactive buttons share padding, so widths match.
		w := lipgloss.Width(TabStyle.Render(b.label))
		if x >= left && x < left+w {
			return Hit{Target: TargetTab, Tab: b.tab}
		}
		left += w + 1
	}
	return Hit{}
}

func hitContent(s state.AppState, vp Viewport, x, line, height int) Hit {
	switch s.Filter.ActiveTab {
	case state.TabTopStories, state.TabFavorites:
		rows := rowsFor(s)
		i := ScrollOffset(vp.Cursor, len(rows), height) + line
		if i < len(rows) {
			return Hit{Target: TargetRow, Index: i}
		}
	case state.TabInfo:
		i := line - infoLinkLine(vp.Width)
		if i >= 0 && i < len(InfoLinks) {
			return Hit{Target: TargetInfoLink, Index: i}
		}
	}
	return Hit{}
}

func hitFooter(s state.AppState, width, x int) Hit {
	if x >= width-lipgloss.Width(ButtonStyle.Render(quitLabel)) {
		return Hit{Target: TargetQuit}
	}
	if s.Filter.ActiveTab != state.TabTopStories {
		return Hit{}
	}

	button := lipgloss.Width(ButtonStyle.Render(markReadLabel))
	if x < button {
		return Hit{Target: TargetMarkAllRead}
	}
	start := button + 1 + lipgloss.Width(sliderLabel(s.Filter.ScoreLimit))
	bar := sliderWidth(width)
	if x >= start && x < start+bar {
		return Hit{Target: TargetSlider, Value: (x - start) * state.MaxScoreLimit / (bar - 1)}
	}
	return Hit{}
}
