package ui

import (
	"context"
	"path/filepath"
	"strconv"

	bubblesprogress "github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"mediagrab/internal/model"
	"mediagrab/internal/progress"
	"mediagrab/internal/ytdlp"
)

// Notify forwards one event and the counters after it was tallied.
type Notify func(progress.Event, progress.Stats)

// StartFunc runs the download, calling notify for every event. It blocks
// until the transfer is over.
type StartFunc func(ctx context.Context, notify Notify) (*ytdlp.Info, progress.Stats, error)

type itemRow struct {
	name       string
	percent    float64 // -1 means unknown
	downloaded int64
	pp         string
	done       bool
	err        string
	bar        bubblesprogress.Model
}

type Model struct {
	ctx    context.Context
	cancel context.CancelFunc

	req   model.Request
	start StartFunc

	rows  map[string]*itemRow
	order []string
	stats progress.Stats

	done bool
	info *ytdlp.Info
	err  error

	width   int
	styles  Styles
	spinner spinner.Model

	eventCh chan tea.Msg
}

func NewModel(ctx context.Context, req model.Request, start StartFunc) Model {
	c, cancel := context.WithCancel(ctx)
	sty := defaultStyles()
	sp := spinner.New()
	sp.Style = sty.Spinner

	return Model{
		ctx:     c,
		cancel:  cancel,
		req:     req,
		start:   start,
		rows:    make(map[string]*itemRow),
		styles:  sty,
		spinner: sp,
		eventCh: make(chan tea.Msg, 256),
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.listenEventsCmd(), m.startCmd())
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.cancel()
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width

	case eventMsg:
		m.stats = msg.Stats
		m.apply(msg.Ev)
		return m, m.listenEventsCmd()

	case doneMsg:
		m.done = true
		m.info = msg.Info
		m.stats = msg.Stats
		m.err = msg.Err
		return m, tea.Quit

	case canceledMsg:
		return m, nil
	}

	var cmd tea.Cmd
	m.spinner, cmd = m.spinner.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	return m.viewHeader() + "\n\n" + m.viewItems() + "\n" + m.viewFooter()
}

// apply folds ev into the row of its item. Post-processor events update the
// row of the item they belong to.
func (m *Model) apply(ev progress.Event) {
	key := ev.ItemID
	if key == "" {
		key = ev.Filename
	}
	if key == "" {
		if ev.Status == progress.StatusError {
			key = "error-" + strconv.Itoa(len(m.order))
		} else {
			return
		}
	}

	row, ok := m.rows[key]
	if !ok {
		row = &itemRow{
			name:    key,
			percent: -1,
			bar: bubblesprogress.New(
				bubblesprogress.WithDefaultGradient(),
				bubblesprogress.WithWidth(40),
			),
		}
		m.rows[key] = row
		m.order = append(m.order, key)
	}
	if ev.Filename != "" {
		row.name = filepath.Base(ev.Filename)
	}

	switch ev.Status {
	case progress.StatusDownloading:
		if ev.Postprocessor != "" {
			row.pp = ev.Postprocessor
			return
		}
		row.downloaded = ev.DownloadedBytes
		row.percent = ev.Percent()
	case progress.StatusFinished:
		if ev.Postprocessor != "" {
			row.pp = ""
			row.done = true
			return
		}
		row.percent = 100
		if ev.DownloadedBytes > 0 {
			row.downloaded = ev.DownloadedBytes
		}
		row.done = true
	case progress.StatusError:
		row.err = ev.Detail
		row.percent = -1
	}
}

func (m Model) listenEventsCmd() tea.Cmd {
	return func() tea.Msg {
		select {
		case <-m.ctx.Done():
			return canceledMsg{}
		case msg := <-m.eventCh:
			return msg
		}
	}
}

func (m Model) startCmd() tea.Cmd {
	return func() tea.Msg {
		info, stats, err := m.start(m.ctx, m.notify)
		return doneMsg{Info: info, Stats: stats, Err: err}
	}
}

// notify drops intermediate progress when the UI falls behind but never
// drops a finished or error event.
func (m Model) notify(ev progress.Event, st progress.Stats) {
	msg := eventMsg{Ev: ev, Stats: st}
	if ev.Status == progress.StatusDownloading {
		select {
		case m.eventCh <- msg:
		default:
		}
		return
	}
	select {
	case m.eventCh <- msg:
	case <-m.ctx.Done():
	}
}
