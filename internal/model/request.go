package model

import (
	"strconv"
	"strings"
)

// Defaults applied to empty Request fields.
const (
	DefaultOutFolder    = "downloads"
	DefaultAudioFormat  = "mp3"
	DefaultVideoFormat  = "mp4"
	DefaultAudioQuality = "192"
	DefaultVideoQuality = "best"
	DefaultTemplate     = "%(title)s - %(id)s.%(ext)s"
)

// Request holds the user-supplied parameters of one invocation.
type Request struct {
	URL       string
	OutFolder string
	Format    string
	Quality   string // Audio: bitrate in kbps. Video: best, worst, 720 or 720p.
	IsVideo   bool
	Template  string // yt-dlp output template, relative to OutFolder.
}

// WithDefaults returns a copy of r with empty fields set to their defaults.
func (r Request) WithDefaults() Request {
	if strings.TrimSpace(r.OutFolder) == "" {
		r.OutFolder = DefaultOutFolder
	}
	if strings.TrimSpace(r.Format) == "" {
		r.Format = DefaultAudioFormat
		if r.IsVideo {
			r.Format = DefaultVideoFormat
		}
	}
	if strings.TrimSpace(r.Quality) == "" {
		r.Quality = DefaultAudioQuality
		if r.IsVideo {
			r.Quality = DefaultVideoQuality
		}
	}
	if strings.TrimSpace(r.Template) == "" {
		r.Template = DefaultTemplate
	}
	return r
}

// Mode returns "video" or "audio".
func (r Request) Mode() string {
	if r.IsVideo {
		return "video"
	}
	return "audio"
}

// Quality is a validated quality value. Video is set in video mode,
// AudioKbps in audio mode.
type Quality struct {
	Video     string // best, worst or <N>p
	AudioKbps int
}

// Height returns the numeric cap of a "<N>p" video quality, or "" for best/worst.
func (q Quality) Height() string {
	if !strings.HasSuffix(q.Video, "p") {
		return ""
	}
	return strings.TrimSuffix(q.Video, "p")
}

func (q Quality) String() string {
	if q.Video != "" {
		return q.Video
	}
	return strconv.Itoa(q.AudioKbps) + " kbps"
}
