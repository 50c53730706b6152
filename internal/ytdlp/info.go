package ytdlp

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// Info mirrors the fields of yt-dlp -J output that we care about.
// Items and Failures are filled by the transfer, not by the probe.
type Info struct {
	ID         string   `json:"id"`
	Title      string   `json:"title"`
	Type       string   `json:"_type"`
	Uploader   string   `json:"uploader"`
	Duration   float64  `json:"duration"`
	WebpageURL string   `json:"webpage_url"`
	Extractor  string   `json:"extractor"`
	Entries    []*Entry `json:"entries"`

	Items    []Item   `json:"-"`
	Failures []string `json:"-"`
}

// Entry is one flat playlist entry. Unavailable entries decode as nil.
type Entry struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	URL   string `json:"url"`
}

// Item is one finished file as printed by the after_move template.
type Item struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Ext   string `json:"ext"`
	Path  string `json:"filepath"`
	MIME  string `json:"mime,omitempty"`
}

// IsPlaylist reports whether the probe resolved to a collection.
func (i *Info) IsPlaylist() bool {
	return i.Entries != nil || i.Type == "playlist"
}

// CountEntries returns the number of non-empty entries.
func (i *Info) CountEntries() int {
	n := 0
	for _, e := range i.Entries {
		if e != nil {
			n++
		}
	}
	return n
}

// ParseInfo decodes probe output. yt-dlp may print other lines around the
// JSON document, in which case the last line that decodes is used.
func ParseInfo(data []byte) (*Info, error) {
	s := strings.TrimSpace(string(data))
	if s == "" {
		return nil, errors.New("empty metadata output")
	}

	var info Info
	err := json.NewDecoder(strings.NewReader(s)).Decode(&info)
	if err == nil {
		return &info, nil
	}

	lines := strings.Split(s, "\n")
	for i := len(lines) - 1; i >= 0; i-- {
		line := strings.TrimSpace(lines[i])
		if !strings.HasPrefix(line, "{") {
			continue
		}
		var tmp Info
		if json.Unmarshal([]byte(line), &tmp) == nil && (tmp.ID != "" || tmp.Entries != nil) {
			return &tmp, nil
		}
	}
	return nil, fmt.Errorf("parse metadata JSON: %w", err)
}
