package ui

import (
	"fmt"
	"strings"

	"github.com/abelbrown/gamewatch/internal/countdown"
	"github.com/abelbrown/gamewatch/internal/model"
	"github.com/abelbrown/gamewatch/internal/timeutil"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// View renders the active screen.
func (a App) View() string {
	if !a.ready {
		return "Loading..."
	}
	if a.mode == modeDetail {
		return a.viewDetail()
	}
	return a.viewList()
}

func (a App) viewList() string {
	var b strings.Builder

	b.WriteString(a.renderHeader())
	b.WriteString("\n")

	if a.mode == modeSearch || a.query != "" {
		b.WriteString(a.search.View())
		b.WriteString("\n")
	}

	b.WriteString(a.renderFilterBar())
	b.WriteString("\n")

	switch {
	case a.err != nil && a.doc == nil:
		b.WriteString(ErrorStyle.Render("Error: " + a.err.Error()))
		b.WriteString("\n")
	case a.loading && a.doc == nil:
		b.WriteString(NormalRow.Render(a.spin.View() + " fetching games..."))
		b.WriteString("\n")
	case a.doc == nil:
		b.WriteString(NormalRow.Render("No document loaded."))
		b.WriteString("\n")
	default:
		b.WriteString(a.renderRows())
	}

	b.WriteString(a.renderStatusBar())
	return b.String()
}

func (a App) renderHeader() string {
	title := HeaderStyle.Render("GAMEWATCH")
	if a.doc == nil {
		return title
	}
	info := StatusBarText.Render(fmt.Sprintf("as of %s", a.doc.EffectiveAsOf().Format("2006-01-02 15:04 MST")))
	if a.fromCache {
		info += " " + StaleStyle.Render("[cached]")
	}
	if a.loading {
		info += " " + a.spin.View()
	}
	return lipgloss.JoinHorizontal(lipgloss.Center, title, " ", info)
}

func (a App) renderFilterBar() string {
	parts := []string{
		"status:" + statusCycle[a.statusIdx],
		"tag:" + a.currentTag(),
		"sort:" + string(a.sortKey),
	}
	if a.hideReleased {
		parts = append(parts, "hiding released")
	}
	count := FilterBarCount.Render(fmt.Sprintf(" %d shown", len(a.visible())))
	return FilterBar.Render(strings.Join(parts, "  ")) + count
}

// maxRows is how many games fit between the chrome lines.
func (a App) maxRows() int {
	rows := a.height - 5
	if a.mode == modeSearch || a.query != "" {
		rows--
	}
	if rows < 1 {
		rows = 1
	}
	return rows
}

func (a App) renderRows() string {
	games := a.visible()
	if len(games) == 0 {
		return NormalRow.Render("Nothing matches the current filters.") + "\n"
	}

	// Scroll window around the cursor
	maxRows := a.maxRows()
	start := 0
	if a.cursor >= maxRows {
		start = a.cursor - maxRows + 1
	}
	end := start + maxRows
	if end > len(games) {
		end = len(games)
	}

	var b strings.Builder
	for i := start; i < end; i++ {
		b.WriteString(a.renderRow(games[i], i == a.cursor))
		b.WriteString("\n")
	}
	return b.String()
}

func (a App) renderRow(g model.Game, selected bool) string {
	badge := StatusBadge.Foreground(statusColor(g.Release.Status)).Render(string(g.Release.Status))

	nameWidth := a.width - 44
	if nameWidth < 12 {
		nameWidth = 12
	}
	name := runewidth.Truncate(g.Name, nameWidth, "…")
	name = runewidth.FillRight(name, nameWidth)

	clock := a.formatRemaining(g)

	row := fmt.Sprintf("%s%s %s", badge, name, clock)
	switch {
	case selected:
		return SelectedRow.Render(row)
	case isPassed(g, a):
		return PassedRow.Render(row)
	default:
		return NormalRow.Render(row)
	}
}

// formatRemaining renders a game's countdown column. Games with nothing to
// count down to show their meta label instead.
func (a App) formatRemaining(g model.Game) string {
	rem, ok := countdown.Remaining(g, a.now)
	if !ok {
		return MetaText.Render(g.Release.MetaLabel())
	}
	if rem < 0 {
		// Past announced date: the resolver reports it un-clamped and the
		// display decides what to do with it.
		return MetaText.Render("out now")
	}
	p := timeutil.Split(rem)
	return CountdownDigits.Render(fmt.Sprintf("%3dd %s:%s:%s",
		p.Days, timeutil.Pad2(p.Hours), timeutil.Pad2(p.Minutes), timeutil.Pad2(p.Seconds)))
}

func isPassed(g model.Game, a App) bool {
	rem, ok := countdown.Remaining(g, a.now)
	return ok && rem < 0
}

func (a App) renderStatusBar() string {
	hints := []string{
		StatusBarKey.Render("/") + StatusBarText.Render(" search"),
		StatusBarKey.Render("s") + StatusBarText.Render(" status"),
		StatusBarKey.Render("t") + StatusBarText.Render(" tag"),
		StatusBarKey.Render("o") + StatusBarText.Render(" sort"),
		StatusBarKey.Render("h") + StatusBarText.Render(" hide released"),
		StatusBarKey.Render("r") + StatusBarText.Render(" refresh"),
		StatusBarKey.Render("q") + StatusBarText.Render(" quit"),
	}
	bar := strings.Join(hints, "  ")
	if n := len(a.diags); n > 0 {
		bar += "  " + ErrorStyle.Render(fmt.Sprintf("%d invalid item(s) dropped", n))
	}
	if a.err != nil && a.doc != nil {
		bar += "  " + StaleStyle.Render("refresh failed, showing last good document")
	}
	return StatusBar.Width(a.width).Render(bar)
}
