package ui

import (
	"fmt"
	"strings"

	"github.com/abelbrown/gamewatch/internal/countdown"
	"github.com/abelbrown/gamewatch/internal/model"
	"github.com/abelbrown/gamewatch/internal/timeutil"
)

func (a App) viewDetail() string {
	var b strings.Builder
	b.WriteString(a.detail.View())
	b.WriteString("\n")
	b.WriteString(StatusBar.Width(a.width).Render(
		StatusBarKey.Render("esc") + StatusBarText.Render(" back  ") +
			StatusBarKey.Render("j/k") + StatusBarText.Render(" scroll  ") +
			StatusBarKey.Render("q") + StatusBarText.Render(" quit")))
	return b.String()
}

// detailContent builds the full detail page for the selected game. It is
// re-rendered on every countdown tick while the detail view is open.
func (a App) detailContent() string {
	g, ok := a.selected()
	if !ok {
		return ErrorStyle.Render("This game is no longer in the document.")
	}

	var b strings.Builder

	b.WriteString(DetailTitle.Render(g.Name))
	b.WriteString("\n")
	if g.Title != "" && g.Title != g.Name {
		b.WriteString(DetailLabel.Render("part of ") + g.Title)
		b.WriteString("\n")
	}
	b.WriteString("\n")

	// Countdown block
	badge := StatusBadge.Foreground(statusColor(g.Release.Status)).Render(string(g.Release.Status))
	b.WriteString(badge + MetaText.Render(g.Release.MetaLabel()))
	b.WriteString("\n")
	if rem, ok := countdown.Remaining(g, a.now); ok {
		if rem < 0 {
			b.WriteString(StaleStyle.Render("The announced date has passed."))
		} else {
			p := timeutil.Split(rem)
			b.WriteString(CountdownDigits.Render(fmt.Sprintf("%dd %s:%s:%s",
				p.Days, timeutil.Pad2(p.Hours), timeutil.Pad2(p.Minutes), timeutil.Pad2(p.Seconds))))
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")

	a.writeSeason(&b, g)
	writeFacts(&b, g)
	writeAttribution(&b, g)

	return b.String()
}

// writeSeason renders the "time left in current season" block, which is a
// separate countdown from the item's own next event.
func (a App) writeSeason(b *strings.Builder, g model.Game) {
	rem, ok := countdown.SeasonRemaining(g, a.now)
	if !ok {
		return
	}

	label := "Current season"
	if g.SeasonWindow.Current.Label != "" {
		label = g.SeasonWindow.Current.Label
	}
	b.WriteString(DetailLabel.Render(label))
	b.WriteString("\n")

	if rem < 0 {
		b.WriteString(StaleStyle.Render("Season has ended."))
		b.WriteString("\n")
	} else {
		p := timeutil.Split(rem)
		b.WriteString(fmt.Sprintf("ends in %dd %s:%s:%s\n",
			p.Days, timeutil.Pad2(p.Hours), timeutil.Pad2(p.Minutes), timeutil.Pad2(p.Seconds)))
	}
	if frac, ok := countdown.SeasonProgress(g, a.now); ok {
		b.WriteString(a.bar.ViewAs(frac))
		b.WriteString("\n")
	}
	b.WriteString("\n")
}

func writeFacts(b *strings.Builder, g model.Game) {
	fact := func(label, value string) {
		if value != "" {
			b.WriteString(DetailLabel.Render(label+": ") + value + "\n")
		}
	}

	fact("category", string(g.Category.Type))
	fact("franchise", g.Category.Franchise)
	if len(g.Platforms) > 0 {
		names := make([]string, len(g.Platforms))
		for i, p := range g.Platforms {
			names[i] = string(p)
		}
		fact("platforms", strings.Join(names, ", "))
	}
	if len(g.Tags) > 0 {
		fact("tags", strings.Join(g.Tags, ", "))
	}
	if g.Studio != nil && g.Studio.Name != "" {
		studio := g.Studio.Name
		if g.Studio.Location != nil && g.Studio.Location.Country != "" {
			studio += " (" + g.Studio.Location.Country + ")"
		}
		fact("studio", studio)
	}
	if g.DLC != nil {
		dlc := g.DLC.Name
		if g.DLC.RequiresBaseGame {
			dlc += " (requires base game)"
		}
		fact("dlc", dlc)
	}
	if g.Media != nil {
		for _, tr := range g.Media.Trailers {
			label := tr.Label
			if label == "" {
				label = "trailer"
			}
			fact(label, tr.URL)
		}
	}
	b.WriteString("\n")
}

func writeAttribution(b *strings.Builder, g model.Game) {
	official := "unofficial"
	if g.Release.IsOfficial {
		official = "official"
	}
	b.WriteString(DetailLabel.Render("timing: ") +
		fmt.Sprintf("%s, %s confidence\n", official, g.Release.Confidence))

	sources := g.Release.Sources
	if len(sources) == 0 {
		sources = g.Sources
	}
	for _, s := range sources {
		line := s.Name
		if s.URL != "" {
			line += " " + MetaText.Render(s.URL)
		}
		b.WriteString(DetailLabel.Render("source: ") + line + "\n")
	}
}
