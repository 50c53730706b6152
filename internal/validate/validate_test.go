package validate

import (
	"fmt"
	"testing"

	"mediagrab/internal/model"
)

type warnRecorder struct {
	msgs []string
}

func (w *warnRecorder) warn(format string, args ...any) {
	w.msgs = append(w.msgs, fmt.Sprintf(format, args...))
}

func TestFormat(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		isVideo  bool
		want     string
		wantWarn bool
	}{
		{name: "audio mp3", raw: "mp3", want: "mp3"},
		{name: "audio upper case", raw: "FLAC", want: "flac"},
		{name: "audio with spaces", raw: " ogg ", want: "ogg"},
		{name: "audio unsupported", raw: "wma", want: "mp3", wantWarn: true},
		{name: "audio given a video format", raw: "mp4", want: "mp3", wantWarn: true},
		{name: "audio empty", raw: "", want: "mp3", wantWarn: true},
		{name: "video mkv", raw: "mkv", isVideo: true, want: "mkv"},
		{name: "video upper case", raw: "WebM", isVideo: true, want: "webm"},
		{name: "video unsupported", raw: "wmv", isVideo: true, want: "mp4", wantWarn: true},
		{name: "video given an audio format", raw: "mp3", isVideo: true, want: "mp4", wantWarn: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := &warnRecorder{}
			got := Format(tt.raw, tt.isVideo, rec.warn)
			if got != tt.want {
				t.Errorf("Format(%q, %v) = %q, want %q", tt.raw, tt.isVideo, got, tt.want)
			}
			if (len(rec.msgs) > 0) != tt.wantWarn {
				t.Errorf("Format(%q, %v) warnings = %v, wantWarn %v", tt.raw, tt.isVideo, rec.msgs, tt.wantWarn)
			}
		})
	}
}

func TestFormat_NilWarn(t *testing.T) {
	if got := Format("bogus", false, nil); got != "mp3" {
		t.Errorf("Format() = %q, want mp3", got)
	}
}

func TestQuality_Audio(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		want     int
		wantWarn bool
	}{
		{name: "default bitrate", raw: "192", want: 192},
		{name: "lower bound", raw: "64", want: 64},
		{name: "upper bound", raw: "320", want: 320},
		{name: "below range clamps", raw: "32", want: 64},
		{name: "zero clamps", raw: "0", want: 64},
		{name: "above range clamps", raw: "1000", want: 320},
		{name: "overflow clamps", raw: "99999999999999999999999", want: 320},
		{name: "non numeric", raw: "high", want: 192, wantWarn: true},
		{name: "negative is not numeric", raw: "-128", want: 192, wantWarn: true},
		{name: "decimal is not numeric", raw: "128.5", want: 192, wantWarn: true},
		{name: "video style value", raw: "720p", want: 192, wantWarn: true},
		{name: "empty", raw: "", want: 192, wantWarn: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := &warnRecorder{}
			got := Quality(tt.raw, false, rec.warn)
			if got.AudioKbps != tt.want {
				t.Errorf("Quality(%q) AudioKbps = %d, want %d", tt.raw, got.AudioKbps, tt.want)
			}
			if got.Video != "" {
				t.Errorf("Quality(%q) Video = %q, want empty in audio mode", tt.raw, got.Video)
			}
			if got.AudioKbps < MinAudioKbps || got.AudioKbps > MaxAudioKbps {
				t.Errorf("Quality(%q) AudioKbps = %d outside [%d, %d]", tt.raw, got.AudioKbps, MinAudioKbps, MaxAudioKbps)
			}
			if (len(rec.msgs) > 0) != tt.wantWarn {
				t.Errorf("Quality(%q) warnings = %v, wantWarn %v", tt.raw, rec.msgs, tt.wantWarn)
			}
		})
	}
}

func TestQuality_Video(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		want     string
		wantWarn bool
	}{
		{name: "best", raw: "best", want: "best"},
		{name: "worst", raw: "worst", want: "worst"},
		{name: "best upper case", raw: "BEST", want: "best"},
		{name: "digits", raw: "720", want: "720p"},
		{name: "digits with p", raw: "1080p", want: "1080p"},
		{name: "upper case P", raw: "480P", want: "480p"},
		{name: "audio default value", raw: "192", want: "192p"},
		{name: "garbage", raw: "hd", want: "best", wantWarn: true},
		{name: "p only", raw: "p", want: "best", wantWarn: true},
		{name: "double p", raw: "720pp", want: "best", wantWarn: true},
		{name: "empty", raw: "", want: "best", wantWarn: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := &warnRecorder{}
			got := Quality(tt.raw, true, rec.warn)
			if got.Video != tt.want {
				t.Errorf("Quality(%q, video) = %q, want %q", tt.raw, got.Video, tt.want)
			}
			if (len(rec.msgs) > 0) != tt.wantWarn {
				t.Errorf("Quality(%q, video) warnings = %v, wantWarn %v", tt.raw, rec.msgs, tt.wantWarn)
			}
		})
	}
}

func TestQuality_String(t *testing.T) {
	if got := (model.Quality{AudioKbps: 192}).String(); got != "192 kbps" {
		t.Errorf("audio String() = %q", got)
	}
	if got := (model.Quality{Video: "720p"}).String(); got != "720p" {
		t.Errorf("video String() = %q", got)
	}
	if got := (model.Quality{Video: "1080p"}).Height(); got != "1080" {
		t.Errorf("Height() = %q, want 1080", got)
	}
	if got := (model.Quality{Video: "best"}).Height(); got != "" {
		t.Errorf("Height() for best = %q, want empty", got)
	}
}
