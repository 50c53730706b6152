package ytdlp

import (
	"encoding/json"
	"strconv"
	"strings"

	"mediagrab/internal/progress"
)

// Line prefixes written by the templates passed in TransferArgs.
const (
	DownloadPrefix    = "[mediagrab:download] "
	PostprocessPrefix = "[mediagrab:postprocess] "
	ItemPrefix        = "[mediagrab:item] "
	ErrorPrefix       = "ERROR:"
)

// Fields are separated by '|'. The path comes last so a '|' inside it
// survives SplitN.
const (
	downloadTemplate    = DownloadPrefix + "%(progress.status)s|%(progress.downloaded_bytes)s|%(progress.total_bytes)s|%(progress.total_bytes_estimate)s|%(info.id)s|%(progress.filename)s"
	postprocessTemplate = PostprocessPrefix + "%(progress.status)s|%(progress.postprocessor)s|%(info.id)s|%(info.filepath)s"
	itemTemplate        = ItemPrefix + "%(.{id,title,ext,filepath})j"
)

// LineKind classifies one line of transfer output.
type LineKind int

const (
	LineOther LineKind = iota
	LineProgress
	LineItem
	LineError
)

// Line is a parsed line of transfer output. Event is set for LineProgress
// and LineError, Item for LineItem.
type Line struct {
	Kind  LineKind
	Event progress.Event
	Item  Item
}

// ParseLine classifies a transfer output line. ok is false for lines that
// carry nothing this program acts on. Both streams are accepted: with
// --print yt-dlp runs quiet and post-processor progress moves to stderr.
func ParseLine(line string) (Line, bool) {
	line = strings.TrimRight(line, "\r\n")
	switch {
	case strings.HasPrefix(line, DownloadPrefix):
		if ev, ok := parseDownload(strings.TrimPrefix(line, DownloadPrefix)); ok {
			return Line{Kind: LineProgress, Event: ev}, true
		}
	case strings.HasPrefix(line, PostprocessPrefix):
		if ev, ok := parsePostprocess(strings.TrimPrefix(line, PostprocessPrefix)); ok {
			return Line{Kind: LineProgress, Event: ev}, true
		}
	case strings.HasPrefix(line, ItemPrefix):
		var it Item
		if err := json.Unmarshal([]byte(strings.TrimPrefix(line, ItemPrefix)), &it); err == nil && it.Path != "" {
			return Line{Kind: LineItem, Item: it}, true
		}
	default:
		if ev, ok := ParseError(line); ok {
			return Line{Kind: LineError, Event: ev}, true
		}
	}
	return Line{}, false
}

// ParseError parses lines like
//
//	ERROR: [youtube] dQw4w9WgXcQ: Video unavailable
//
// into an error event. The item id is filled when the line names one.
func ParseError(line string) (progress.Event, bool) {
	line = strings.TrimSpace(line)
	if !strings.HasPrefix(line, ErrorPrefix) {
		return progress.Event{}, false
	}
	detail := strings.TrimSpace(strings.TrimPrefix(line, ErrorPrefix))
	ev := progress.Event{Status: progress.StatusError, Detail: detail}

	if strings.HasPrefix(detail, "[") {
		if end := strings.Index(detail, "] "); end > 0 {
			rest := detail[end+2:]
			if colon := strings.Index(rest, ": "); colon > 0 && !strings.ContainsAny(rest[:colon], " /") {
				ev.ItemID = rest[:colon]
			}
		}
	}
	return ev, true
}

func parseDownload(s string) (progress.Event, bool) {
	parts := strings.SplitN(s, "|", 6)
	if len(parts) != 6 {
		return progress.Event{}, false
	}
	st, ok := parseStatus(parts[0])
	if !ok {
		return progress.Event{}, false
	}
	total := parseBytes(parts[2])
	if total == 0 {
		total = parseBytes(parts[3])
	}
	return progress.Event{
		Status:          st,
		DownloadedBytes: parseBytes(parts[1]),
		TotalBytes:      total,
		ItemID:          na(parts[4]),
		Filename:        na(parts[5]),
	}, true
}

func parsePostprocess(s string) (progress.Event, bool) {
	parts := strings.SplitN(s, "|", 4)
	if len(parts) != 4 {
		return progress.Event{}, false
	}
	pp := na(parts[1])
	if pp == "" {
		return progress.Event{}, false
	}
	// yt-dlp reports started and processing before finished.
	st := progress.StatusDownloading
	if strings.TrimSpace(parts[0]) == "finished" {
		st = progress.StatusFinished
	}
	return progress.Event{
		Status:        st,
		Postprocessor: pp,
		ItemID:        na(parts[2]),
		Filename:      na(parts[3]),
	}, true
}

func parseStatus(s string) (progress.Status, bool) {
	switch progress.Status(strings.TrimSpace(s)) {
	case progress.StatusDownloading:
		return progress.StatusDownloading, true
	case progress.StatusFinished:
		return progress.StatusFinished, true
	case progress.StatusError:
		return progress.StatusError, true
	}
	return "", false
}

// parseBytes accepts integers and floats; yt-dlp prints "NA" for missing values.
func parseBytes(s string) int64 {
	s = na(s)
	if s == "" {
		return 0
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return n
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f < 0 {
		return 0
	}
	return int64(f)
}

func na(s string) string {
	s = strings.TrimSpace(s)
	if s == "NA" || s == "None" {
		return ""
	}
	return s
}
