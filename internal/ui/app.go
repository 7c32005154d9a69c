package ui

import (
	"time"

	"github.com/abelbrown/gamewatch/internal/model"
	"github.com/abelbrown/gamewatch/internal/rank"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

// viewMode selects which screen is active.
type viewMode int

const (
	modeList viewMode = iota
	modeDetail
	modeSearch
)

// statusCycle is the order the status filter steps through.
var statusCycle = []string{
	rank.All,
	string(model.StatusAnnouncedDate),
	string(model.StatusRecurringDaily),
	string(model.StatusRecurringWeekly),
	string(model.StatusAnnouncedWindow),
	string(model.StatusDelayed),
	string(model.StatusTBA),
	string(model.StatusReleased),
	string(model.StatusCancelled),
}

// sortCycle is the order the sort key steps through.
var sortCycle = []rank.SortKey{rank.SortSoonest, rank.SortLatest, rank.SortAZ, rank.SortDailyFirst}

// App is the root Bubble Tea model.
// App does not fetch or persist anything itself: it receives documents via
// messages and derives everything else from (document, now, filters) with
// pure functions on every frame.
type App struct {
	loadDocument func() tea.Cmd
	tickEvery    time.Duration
	refreshEvery time.Duration // 0 disables auto-refresh

	doc       *model.Document
	diags     []*model.SchemaError
	fromCache bool
	fetchedAt time.Time
	err       error

	now     time.Time
	width   int
	height  int
	ready   bool
	loading bool

	mode       viewMode
	cursor     int
	selectedID string

	search       textinput.Model
	query        string
	statusIdx    int
	tagIdx       int // 0 = all, otherwise index+1 into tags()
	sortKey      rank.SortKey
	hideReleased bool

	spin   spinner.Model
	bar    progress.Model
	detail viewport.Model
}

// Options configures the initial App state.
type Options struct {
	// LoadDocument returns a Cmd that produces a DocumentLoaded message.
	LoadDocument func() tea.Cmd

	// TickEvery is the countdown redraw interval.
	TickEvery time.Duration

	// RefreshEvery is the automatic document re-fetch interval; 0 disables.
	RefreshEvery time.Duration

	// DefaultSort is the initial sort key.
	DefaultSort rank.SortKey

	// HideReleased drops released/cancelled games from the list initially.
	HideReleased bool
}

// New creates the root App model.
func New(opts Options) App {
	if opts.TickEvery <= 0 {
		opts.TickEvery = 250 * time.Millisecond
	}
	if opts.DefaultSort == "" {
		opts.DefaultSort = rank.SortSoonest
	}

	search := textinput.New()
	search.Placeholder = "search name or tag"
	search.Prompt = "/"
	search.PromptStyle = FilterBarPrompt
	search.CharLimit = 64

	spin := spinner.New()
	spin.Spinner = spinner.Dot

	return App{
		loadDocument: opts.LoadDocument,
		tickEvery:    opts.TickEvery,
		refreshEvery: opts.RefreshEvery,
		now:          time.Now(),
		sortKey:      opts.DefaultSort,
		hideReleased: opts.HideReleased,
		search:       search,
		spin:         spin,
		bar:          progress.New(progress.WithDefaultGradient()),
		detail:       viewport.New(0, 0),
	}
}

// Init starts the countdown tick, the loading spinner and the first fetch.
func (a App) Init() tea.Cmd {
	cmds := []tea.Cmd{a.tickCmd(), a.spin.Tick}
	if a.loadDocument != nil {
		a.loading = true
		cmds = append(cmds, a.loadDocument())
	}
	if a.refreshEvery > 0 {
		cmds = append(cmds, a.refreshCmd())
	}
	return tea.Batch(cmds...)
}

func (a App) tickCmd() tea.Cmd {
	return tea.Tick(a.tickEvery, func(t time.Time) tea.Msg {
		return CountdownTick{Now: t}
	})
}

func (a App) refreshCmd() tea.Cmd {
	return tea.Tick(a.refreshEvery, func(time.Time) tea.Msg {
		return RefreshTick{}
	})
}

// Update handles messages and returns the updated model and any commands.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return a.handleKey(msg)

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.ready = true
		a.detail.Width = msg.Width
		a.detail.Height = msg.Height - 2
		a.bar.Width = min(msg.Width-8, 60)
		if a.mode == modeDetail {
			a.detail.SetContent(a.detailContent())
		}
		return a, nil

	case CountdownTick:
		a.now = msg.Now
		if a.mode == modeDetail {
			a.detail.SetContent(a.detailContent())
		}
		return a, a.tickCmd()

	case RefreshTick:
		var cmd tea.Cmd
		if a.loadDocument != nil {
			cmd = a.loadDocument()
		}
		return a, tea.Batch(cmd, a.refreshCmd())

	case DocumentLoaded:
		// A failed refresh may still carry a document (the cached fallback);
		// keep whatever document we have and surface the error alongside it.
		a.loading = false
		a.err = msg.Err
		if msg.Doc != nil {
			a.doc = msg.Doc
			a.diags = msg.Diags
			a.fromCache = msg.FromCache
			a.fetchedAt = msg.FetchedAt
			a.clampCursor()
		}
		return a, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		a.spin, cmd = a.spin.Update(msg)
		return a, cmd
	}

	if a.mode == modeSearch {
		var cmd tea.Cmd
		a.search, cmd = a.search.Update(msg)
		a.query = a.search.Value()
		return a, cmd
	}
	if a.mode == modeDetail {
		var cmd tea.Cmd
		a.detail, cmd = a.detail.Update(msg)
		return a, cmd
	}
	return a, nil
}

func (a App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Search mode grabs every key except its exits.
	if a.mode == modeSearch {
		switch {
		case key.Matches(msg, keys.Back):
			a.mode = modeList
			a.search.Blur()
			a.search.SetValue("")
			a.query = ""
			a.clampCursor()
			return a, nil
		case msg.Type == tea.KeyEnter:
			a.mode = modeList
			a.search.Blur()
			a.clampCursor()
			return a, nil
		}
		var cmd tea.Cmd
		a.search, cmd = a.search.Update(msg)
		a.query = a.search.Value()
		a.clampCursor()
		return a, cmd
	}

	switch {
	case key.Matches(msg, keys.Quit):
		return a, tea.Quit

	case key.Matches(msg, keys.Back):
		if a.mode == modeDetail {
			a.mode = modeList
			return a, nil
		}
		if a.query != "" {
			a.search.SetValue("")
			a.query = ""
			a.clampCursor()
		}
		return a, nil

	case key.Matches(msg, keys.Up):
		if a.mode == modeDetail {
			var cmd tea.Cmd
			a.detail, cmd = a.detail.Update(msg)
			return a, cmd
		}
		if a.cursor > 0 {
			a.cursor--
		}
		return a, nil

	case key.Matches(msg, keys.Down):
		if a.mode == modeDetail {
			var cmd tea.Cmd
			a.detail, cmd = a.detail.Update(msg)
			return a, cmd
		}
		if a.cursor < len(a.visible())-1 {
			a.cursor++
		}
		return a, nil

	case key.Matches(msg, keys.Top):
		a.cursor = 0
		return a, nil

	case key.Matches(msg, keys.Bottom):
		if n := len(a.visible()); n > 0 {
			a.cursor = n - 1
		}
		return a, nil

	case key.Matches(msg, keys.Open):
		if a.mode == modeList {
			if games := a.visible(); a.cursor < len(games) {
				a.selectedID = games[a.cursor].ID
				a.mode = modeDetail
				a.detail.GotoTop()
				a.detail.SetContent(a.detailContent())
			}
		}
		return a, nil

	case key.Matches(msg, keys.Search):
		a.mode = modeSearch
		a.search.Focus()
		return a, textinput.Blink

	case key.Matches(msg, keys.CycleStatus):
		a.statusIdx = (a.statusIdx + 1) % len(statusCycle)
		a.clampCursor()
		return a, nil

	case key.Matches(msg, keys.CycleTag):
		a.tagIdx = (a.tagIdx + 1) % (len(a.tags()) + 1)
		a.clampCursor()
		return a, nil

	case key.Matches(msg, keys.CycleSort):
		for i, k := range sortCycle {
			if k == a.sortKey {
				a.sortKey = sortCycle[(i+1)%len(sortCycle)]
				break
			}
		}
		return a, nil

	case key.Matches(msg, keys.HideReleased):
		a.hideReleased = !a.hideReleased
		a.clampCursor()
		return a, nil

	case key.Matches(msg, keys.Refresh):
		if a.loadDocument != nil && !a.loading {
			a.loading = true
			return a, a.loadDocument()
		}
		return a, nil
	}

	return a, nil
}

// tags returns the distinct tags of the loaded document.
func (a App) tags() []string {
	if a.doc == nil {
		return nil
	}
	return rank.Tags(a.doc.Games)
}

// currentTag resolves the tag filter value ("all" or a concrete tag).
func (a App) currentTag() string {
	if a.tagIdx == 0 {
		return rank.All
	}
	tags := a.tags()
	if a.tagIdx-1 >= len(tags) {
		return rank.All
	}
	return tags[a.tagIdx-1]
}

// visible derives the displayed games: filter, then sort, both pure
// functions of (document, now, filter state). Recomputed every frame.
func (a App) visible() []model.Game {
	if a.doc == nil {
		return nil
	}
	filtered := rank.Filter(a.doc.Games, rank.Options{
		Query:        a.query,
		Status:       statusCycle[a.statusIdx],
		Tag:          a.currentTag(),
		HideReleased: a.hideReleased,
		AsOf:         a.doc.EffectiveAsOf(),
	})
	return rank.Sort(filtered, a.sortKey, a.now)
}

func (a *App) clampCursor() {
	n := len(a.visible())
	if n == 0 {
		a.cursor = 0
		return
	}
	if a.cursor >= n {
		a.cursor = n - 1
	}
	if a.cursor < 0 {
		a.cursor = 0
	}
}

// selected finds the game the detail view is showing. Absence (the game
// vanished on reload) is reported via ok, not an error.
func (a App) selected() (model.Game, bool) {
	if a.doc == nil {
		return model.Game{}, false
	}
	return a.doc.ByID(a.selectedID)
}
