package model

import "testing"

func TestRequestWithDefaults(t *testing.T) {
	tests := []struct {
		name string
		in   Request
		want Request
	}{
		{
			name: "audio",
			in:   Request{URL: "u"},
			want: Request{URL: "u", OutFolder: DefaultOutFolder, Format: "mp3", Quality: "192", Template: DefaultTemplate},
		},
		{
			name: "video",
			in:   Request{URL: "u", IsVideo: true, OutFolder: "  "},
			want: Request{URL: "u", OutFolder: DefaultOutFolder, Format: "mp4", Quality: "best", IsVideo: true, Template: DefaultTemplate},
		},
		{
			name: "explicit values kept",
			in:   Request{URL: "u", OutFolder: "o", Format: "flac", Quality: "320", Template: "%(id)s.%(ext)s"},
			want: Request{URL: "u", OutFolder: "o", Format: "flac", Quality: "320", Template: "%(id)s.%(ext)s"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.in.WithDefaults(); got != tt.want {
				t.Errorf("WithDefaults() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestQuality(t *testing.T) {
	tests := []struct {
		q          Quality
		wantHeight string
		wantString string
	}{
		{Quality{Video: "720p"}, "720", "720p"},
		{Quality{Video: "best"}, "", "best"},
		{Quality{AudioKbps: 192}, "", "192 kbps"},
	}
	for _, tt := range tests {
		if got := tt.q.Height(); got != tt.wantHeight {
			t.Errorf("%+v.Height() = %q, want %q", tt.q, got, tt.wantHeight)
		}
		if got := tt.q.String(); got != tt.wantString {
			t.Errorf("%+v.String() = %q, want %q", tt.q, got, tt.wantString)
		}
	}
}
