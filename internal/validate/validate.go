// Package validate normalizes user-supplied format and quality values
// against fixed allow-lists. Invalid input never fails: it is replaced by a
// default and reported through a warning callback.
package validate

import (
	"slices"
	"strconv"
	"strings"

	"mediagrab/internal/model"
)

var (
	AudioFormats = []string{"mp3", "wav", "ogg", "m4a", "aac", "flac"}
	VideoFormats = []string{"mp4", "webm", "mkv", "avi", "mov", "flv"}
)

const (
	MinAudioKbps     = 64
	MaxAudioKbps     = 320
	DefaultAudioKbps = 192
)

// Warnf receives a message each time an input is replaced by a default.
type Warnf func(format string, args ...any)

// Format returns the lower-cased format if it is supported for the mode,
// otherwise the mode default (mp3 or mp4).
func Format(raw string, isVideo bool, warn Warnf) string {
	f := strings.ToLower(strings.TrimSpace(raw))
	if isVideo {
		if !slices.Contains(VideoFormats, f) {
			emit(warn, "video format %q is not supported, using %s", raw, model.DefaultVideoFormat)
			return model.DefaultVideoFormat
		}
		return f
	}
	if !slices.Contains(AudioFormats, f) {
		emit(warn, "audio format %q is not supported, using %s", raw, model.DefaultAudioFormat)
		return model.DefaultAudioFormat
	}
	return f
}

// Quality normalizes a quality value.
//
// Video accepts best, worst, <N> and <N>p and yields best, worst or <N>p.
// Audio accepts a bitrate in kbps, clamped to [MinAudioKbps, MaxAudioKbps].
func Quality(raw string, isVideo bool, warn Warnf) model.Quality {
	q := strings.ToLower(strings.TrimSpace(raw))
	if isVideo {
		return model.Quality{Video: videoQuality(raw, q, warn)}
	}

	if !isDigits(q) {
		emit(warn, "audio quality %q is invalid, using %d kbps", raw, DefaultAudioKbps)
		return model.Quality{AudioKbps: DefaultAudioKbps}
	}
	kbps, err := strconv.Atoi(q)
	if err != nil {
		// Only digits reach here, so the value overflowed.
		kbps = MaxAudioKbps
	}
	return model.Quality{AudioKbps: clamp(kbps, MinAudioKbps, MaxAudioKbps)}
}

func videoQuality(raw, q string, warn Warnf) string {
	switch {
	case q == "best" || q == "worst":
		return q
	case isDigits(q):
		return q + "p"
	case strings.HasSuffix(q, "p") && isDigits(strings.TrimSuffix(q, "p")):
		return q
	}
	emit(warn, "video quality %q is invalid, using %s", raw, model.DefaultVideoQuality)
	return model.DefaultVideoQuality
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func emit(warn Warnf, format string, args ...any) {
	if warn != nil {
		warn(format, args...)
	}
}
