package ui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"mediagrab/internal/model"
	"mediagrab/internal/progress"
	"mediagrab/internal/ytdlp"
)

// Run renders the download started by start until it finishes or the user
// quits. Quitting early cancels the download and returns context.Canceled.
func Run(ctx context.Context, req model.Request, start StartFunc) (*ytdlp.Info, progress.Stats, error) {
	m := NewModel(ctx, req, start)
	final, err := tea.NewProgram(m, tea.WithContext(ctx)).Run()
	fm, _ := final.(Model)
	if ctx.Err() != nil {
		return nil, fm.stats, ctx.Err()
	}
	if err != nil {
		return nil, fm.stats, err
	}
	if !fm.done {
		return nil, fm.stats, context.Canceled
	}
	return fm.info, fm.stats, fm.err
}
