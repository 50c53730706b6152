package ui

import (
	"mediagrab/internal/progress"
	"mediagrab/internal/ytdlp"
)

type eventMsg struct {
	Ev    progress.Event
	Stats progress.Stats
}

type doneMsg struct {
	Info  *ytdlp.Info
	Stats progress.Stats
	Err   error
}

type canceledMsg struct{}
