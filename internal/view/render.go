package view

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/abelbrown/hnbar/internal/state"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/dustin/go-humanize"
)

// chromeLines is the number of lines taken by the header, the tab bar and
// the footer.
const chromeLines = 3

// Viewport carries what the renderer needs that is not application state:
// terminal size, the cursor, and transient decorations owned by the ui.
type Viewport struct {
	Width  int
	Height int

	// Cursor is the selected row of the active tab's list, or the selected
	// link in the info tab.
	Cursor int

	Spinner string    // spinner frame shown next to the loading count
	Notice  string    // transient message shown in the header
	Now     time.Time // reference for story ages; zero means time.Now
}

// ContentHeight returns how many lines the tab content gets.
func (vp Viewport) ContentHeight(s state.AppState) int {
	h := vp.Height - chromeLines
	if s.Err != nil {
		h--
	}
	if h < 1 {
		h = 1
	}
	return h
}

// Render draws the whole screen for the current state.
func (v StoryView) Render(vp Viewport) string {
	s := v.store.State()
	if vp.Now.IsZero() {
		vp.Now = time.Now()
	}

	contentHeight := vp.ContentHeight(s)
	var content string
	switch s.Filter.ActiveTab {
	case state.TabTopStories:
		content = renderList(s, s.FilteredStories(), vp, contentHeight,
			"No stories at or above this score yet.")
	case state.TabFavorites:
		content = renderList(s, s.FavoriteStories(), vp, contentHeight,
			"No favorites yet. Press f on a story to add it.")
	case state.TabInfo:
		content = renderInfo(vp.Width, vp.Cursor)
	}
	content = lipgloss.NewStyle().
		Height(contentHeight).
		MaxHeight(contentHeight).
		Render(content)

	sections := []string{
		renderHeader(s, vp),
		renderTabs(s.Filter.ActiveTab, vp.Width),
		content,
		v.renderFooter(s, vp.Width),
	}
	if s.Err != nil {
		sections = append(sections, ErrorStyle.Width(vp.Width).Render(
			ansi.Truncate("Error: "+s.Err.Error(), max(vp.Width-2, 1), "…")))
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func renderHeader(s state.AppState, vp Viewport) string {
	left := TitleStyle.Render(titleLabel) + InfoButtonStyle.Render(infoButtonLabel)

	var right string
	if n := s.LoadingCount(); n > 0 {
		right = UpdatingStyle.Render(fmt.Sprintf("%s updating %d stories ", vp.Spinner, n))
	} else if vp.Notice != "" {
		right = NoticeStyle.Render(vp.Notice + " ")
	}

	gap := vp.Width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		right = ansi.Truncate(right, max(vp.Width-lipgloss.Width(left)-1, 0), "…")
		gap = 1
	}
	return HeaderStyle.Width(vp.Width).Render(left + strings.Repeat(" ", gap) + right)
}

// Labels of the clickable chrome.
const (
	titleLabel      = "Hacker News"
	infoButtonLabel = "[i] info"
	markReadLabel   = "[m] Mark all as read"
	quitLabel       = "[q] Quit App"
)

var tabButtons = []struct {
	tab   state.Tab
	label string
}{
	{state.TabTopStories, "[1] Top stories"},
	{state.TabFavorites, "[2] Favorites"},
}

func renderTabs(active state.Tab, width int) string {
	var parts []string
	for _, b := range tabButtons {
		style := TabStyle
		if b.tab == active {
			style = ActiveTabStyle
		}
		parts = append(parts, style.Render(b.label))
	}
	return lipgloss.NewStyle().Width(width).Render(strings.Join(parts, " "))
}

// ScrollOffset returns the first visible row so that cursor stays on screen.
func ScrollOffset(cursor, rows, height int) int {
	if rows == 0 || height <= 0 {
		return 0
	}
	if cursor >= rows {
		cursor = rows - 1
	}
	if cursor >= height {
		return cursor - height + 1
	}
	return 0
}

func renderList(s state.AppState, rows []state.Story, vp Viewport, height int, empty string) string {
	if len(rows) == 0 {
		if s.LoadingCount() > 0 {
			return EmptyStyle.Render("Loading stories…")
		}
		return EmptyStyle.Render(empty)
	}

	offset := ScrollOffset(vp.Cursor, len(rows), height)
	var b strings.Builder
	for i := offset; i < len(rows) && i < offset+height; i++ {
		if i > offset {
			b.WriteString("\n")
		}
		b.WriteString(renderRow(rows[i], s.Favorites.Has(rows[i].ID), i == vp.Cursor, vp))
	}
	return b.String()
}

func renderRow(st state.Story, favorite, selected bool, vp Viewport) string {
	marker := "  "
	if selected {
		marker = "▸ "
	}
	star := "☆"
	if favorite {
		star = "★"
	}

	title := st.Title
	if title == "" {
		title = "loading…"
	}

	meta := storyMeta(st, vp.Now)
	width := max(vp.Width, 20)

	if selected {
		line := fmt.Sprintf("%s%4d %s %s  %s", marker, st.Score, star, title, meta)
		return SelectedRow.Width(width).Render(ansi.Truncate(line, width, "…"))
	}

	titleStyle := NormalRow
	if st.Read {
		titleStyle = ReadRow
	}
	line := marker +
		ScoreStyle.Render(fmt.Sprintf("%4d", st.Score)) + " " +
		FavoriteMark.Render(star) + " " +
		titleStyle.Render(title) + "  " +
		MetaStyle.Render(meta)
	return ansi.Truncate(line, width, "…")
}

func storyMeta(st state.Story, now time.Time) string {
	var parts []string
	if host := Domain(st.URL); host != "" && host != "news.ycombinator.com" {
		parts = append(parts, host)
	}
	if st.By != "" {
		parts = append(parts, "by "+st.By)
	}
	if !st.Posted.IsZero() {
		parts = append(parts, humanize.RelTime(st.Posted, now, "ago", "from now"))
	}
	if st.Loaded {
		parts = append(parts, fmt.Sprintf("%d comments", st.Comments))
	}
	return strings.Join(parts, " · ")
}

// Domain returns the host of raw without a leading "www.".
func Domain(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	return strings.TrimPrefix(u.Hostname(), "www.")
}

const infoLead = "Hacker News is a social news website focusing on computer science and " +
	"entrepreneurship, run by the startup incubator Y Combinator. Anything that " +
	"gratifies one's intellectual curiosity can be submitted."

const infoBody = "hnbar is an unofficial Hacker News reader for the terminal. Set the " +
	"minimum number of upvotes and get a notice when a story passes the threshold. " +
	"Favorite stories to read later. Favorites and read stories are kept between runs."

// infoText renders the two paragraphs above the info panel links.
func infoText(width int) (lead, body string) {
	w := max(width-4, 20)
	return InfoLeadStyle.Width(w).Render(infoLead), lipgloss.NewStyle().Width(w).Render(infoBody)
}

// infoLinkLine returns the line of the info panel, relative to the top of
// the tab content, that holds the first link.
func infoLinkLine(width int) int {
	lead, body := infoText(width)
	return InfoStyle.GetPaddingTop() + lipgloss.Height(lead) + 1 + lipgloss.Height(body) + 1
}

func renderInfo(width, cursor int) string {
	lead, body := infoText(width)
	var b strings.Builder
	b.WriteString(lead)
	b.WriteString("\n\n")
	b.WriteString(body)
	b.WriteString("\n\n")
	for i, l := range InfoLinks {
		style := LinkStyle
		if i == cursor {
			style = SelectedLinkStyle
		}
		b.WriteString(fmt.Sprintf("  %s  %s\n", style.Render(l.Label), MetaStyle.Render(l.URL)))
	}
	return InfoStyle.Render(b.String())
}

func (v StoryView) renderFooter(s state.AppState, width int) string {
	quit := ButtonStyle.Render(quitLabel)

	var left string
	if s.Filter.ActiveTab == state.TabTopStories {
		left = ButtonStyle.Render(markReadLabel) + " " +
			sliderLabel(s.Filter.ScoreLimit) +
			v.slider.view(s.Filter.ScoreLimit, sliderWidth(width))
	}

	gap := width - lipgloss.Width(left) - lipgloss.Width(quit)
	if gap < 1 {
		gap = 1
	}
	return FooterStyle.Width(width).Render(left + strings.Repeat(" ", gap) + quit)
}

func sliderLabel(limit int) string {
	return fmt.Sprintf("score ≥ %-4d ", limit)
}

func sliderWidth(width int) int {
	return max(width/3, 10)
}

// sliderBar draws the score limit as a filled bar.
type sliderBar struct {
	bar progress.Model
}

func newSliderBar() sliderBar {
	return sliderBar{bar: progress.New(
		progress.WithSolidFill(string(colorOrange)),
		progress.WithoutPercentage(),
	)}
}

func (s sliderBar) view(limit, width int) string {
	s.bar.Width = width
	return s.bar.ViewAs(float64(limit) / float64(state.MaxScoreLimit))
}
