package progress

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"sync"

	"mediagrab/internal/util"
	"mediagrab/internal/util/format"
)

const (
	maxNameRunes = 50
	ruleWidth    = 50
)

// Reporter prints human-readable progress and tallies Stats.
// It is safe for concurrent use.
type Reporter struct {
	mu      sync.Mutex
	w       io.Writer
	live    bool
	midLine bool
	stats   Stats
	counted map[string]bool
}

// NewReporter returns a Reporter writing to w. Intermediate progress lines
// are only drawn when w is a terminal.
func NewReporter(w io.Writer) *Reporter {
	return &Reporter{
		w:       w,
		live:    util.IsTerminal(w),
		counted: make(map[string]bool),
	}
}

// SetLive forces intermediate progress lines on or off.
func (r *Reporter) SetLive(live bool) {
	r.mu.Lock()
	r.live = live
	r.mu.Unlock()
}

// SetTotal records the number of items discovered by the probe.
func (r *Reporter) SetTotal(n int) {
	r.mu.Lock()
	r.stats.TotalFiles = n
	r.mu.Unlock()
}

// Stats returns a snapshot of the counters.
func (r *Reporter) Stats() Stats {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.stats
}

// AddError reports a failure that did not come through an event, such as
// the engine exiting abnormally.
func (r *Reporter) AddError(detail string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.endLine()
	fmt.Fprintf(r.w, "Download failed: %s\n", detail)
	r.stats.Errors++
}

// Printf writes a message line without touching the counters.
func (r *Reporter) Printf(format string, args ...any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.endLine()
	fmt.Fprintf(r.w, format+"\n", args...)
}

// Handle consumes one event. It satisfies Hook.
func (r *Reporter) Handle(ev Event) {
	r.mu.Lock()
	defer r.mu.Unlock()

	name := displayName(ev.Filename)
	switch ev.Status {
	case StatusDownloading:
		if ev.Postprocessor != "" || !r.live {
			return
		}
		if ev.TotalBytes > 0 {
			fmt.Fprintf(r.w, "\r %s... — %.1f%% (%s/%s MB)", name, ev.Percent(),
				format.MB(ev.DownloadedBytes), format.MB(ev.TotalBytes))
		} else {
			fmt.Fprintf(r.w, "\r %s... — %s downloaded", name, format.Bytes(ev.DownloadedBytes))
		}
		r.midLine = true

	case StatusFinished:
		r.endLine()
		if ev.Postprocessor != "" {
			fmt.Fprintf(r.w, "Converted (%s): %s\n", ev.Postprocessor, name)
			return
		}
		fmt.Fprintf(r.w, "Download finished: %s\n", name)
		fmt.Fprintln(r.w, "Post-processing...")
		if ev.DownloadedBytes > 0 {
			r.stats.Bytes += ev.DownloadedBytes
		} else {
			r.stats.Bytes += ev.TotalBytes
		}
		// Merged formats finish once per stream; count the item once.
		key := ev.ItemID
		if key == "" {
			key = ev.Filename
		}
		if key == "" || !r.counted[key] {
			if key != "" {
				r.counted[key] = true
			}
			r.stats.Completed++
		}

	case StatusError:
		r.endLine()
		if ev.Filename != "" {
			fmt.Fprintf(r.w, "Download error: %s\n", name)
		} else {
			fmt.Fprintln(r.w, "Download error")
		}
		if ev.Detail != "" {
			fmt.Fprintf(r.w, "   Details: %s\n", ev.Detail)
		}
		r.stats.Errors++
	}
}

// endLine terminates an overwritten progress line. Callers hold mu.
func (r *Reporter) endLine() {
	if r.midLine {
		fmt.Fprintln(r.w)
		r.midLine = false
	}
}

// PrintSummary writes the end-of-run summary block.
func PrintSummary(w io.Writer, s Stats) {
	rule := strings.Repeat("=", ruleWidth)
	fmt.Fprintf(w, "\n%s\n", rule)
	fmt.Fprintln(w, " DOWNLOAD SUMMARY")
	fmt.Fprintln(w, rule)
	fmt.Fprintf(w, " Total files: %d\n", s.TotalFiles)
	fmt.Fprintf(w, " Completed: %d\n", s.Completed)
	fmt.Fprintf(w, " Errors: %d\n", s.Errors)
	if s.Bytes > 0 {
		fmt.Fprintf(w, " Transferred: %s\n", format.Bytes(s.Bytes))
	}
	if rate, ok := s.SuccessRate(); ok {
		fmt.Fprintf(w, " Success rate: %.1f%%\n", rate)
	}
	fmt.Fprintf(w, "%s\n\n", rule)
}

func displayName(path string) string {
	if path == "" {
		return "unknown file"
	}
	name := filepath.Base(path)
	if runes := []rune(name); len(runes) > maxNameRunes {
		name = string(runes[:maxNameRunes])
	}
	return name
}
