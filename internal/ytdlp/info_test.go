package ytdlp

import "testing"

func TestParseInfo(t *testing.T) {
	tests := []struct {
		name         string
		data         string
		wantErr      bool
		wantID       string
		wantPlaylist bool
		wantEntries  int
	}{
		{
			name:   "single video",
			data:   `{"id": "abc", "title": "Song", "_type": "video", "duration": 212.5}`,
			wantID: "abc",
		},
		{
			name:         "playlist with null entries",
			data:         `{"id": "PL1", "_type": "playlist", "entries": [{"id": "a"}, null, {"id": "b"}, null, {"id": "c"}]}`,
			wantID:       "PL1",
			wantPlaylist: true,
			wantEntries:  3,
		},
		{
			name:         "empty playlist",
			data:         `{"id": "PL2", "entries": []}`,
			wantID:       "PL2",
			wantPlaylist: true,
		},
		{
			name:   "warning before JSON",
			data:   "WARNING: something odd\n{\"id\": \"abc\", \"title\": \"Song\"}\n",
			wantID: "abc",
		},
		{
			name:    "garbage",
			data:    "not json at all",
			wantErr: true,
		},
		{
			name:    "empty",
			data:    "  \n",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info, err := ParseInfo([]byte(tt.data))
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseInfo() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if info.ID != tt.wantID {
				t.Errorf("ID = %q, want %q", info.ID, tt.wantID)
			}
			if info.IsPlaylist() != tt.wantPlaylist {
				t.Errorf("IsPlaylist() = %v, want %v", info.IsPlaylist(), tt.wantPlaylist)
			}
			if got := info.CountEntries(); got != tt.wantEntries {
				t.Errorf("CountEntries() = %d, want %d", got, tt.wantEntries)
			}
		})
	}
}
