package deps

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
)

// ErrNotFound is wrapped by lookup failures.
var ErrNotFound = errors.New("dependency not found")

// FindDownloader returns the path to yt-dlp or youtube-dl.
// If customPath is non-empty, it tries that path or looks it up in PATH.
func FindDownloader(customPath string) (string, error) {
	if customPath != "" {
		if _, err := os.Stat(customPath); err == nil {
			return customPath, nil
		}
		if p, err := exec.LookPath(customPath); err == nil {
			return p, nil
		}
		return "", fmt.Errorf("could not find downloader at %q: %w", customPath, ErrNotFound)
	}
	for _, name := range []string{"yt-dlp", "youtube-dl"} {
		if p, err := exec.LookPath(name); err == nil {
			return p, nil
		}
	}
	return "", fmt.Errorf("could not find yt-dlp or youtube-dl in PATH, please install yt-dlp: %w", ErrNotFound)
}

// FindFFmpeg returns the ffmpeg binary. location may be the binary itself or
// the directory holding it, as accepted by yt-dlp --ffmpeg-location.
func FindFFmpeg(location string) (string, error) {
	if location != "" {
		fi, err := os.Stat(location)
		if err != nil {
			return "", fmt.Errorf("could not find ffmpeg at %q: %w", location, ErrNotFound)
		}
		if !fi.IsDir() {
			return location, nil
		}
		p := filepath.Join(location, "ffmpeg")
		if _, err := os.Stat(p); err == nil {
			return p, nil
		}
		if _, err := os.Stat(p + ".exe"); err == nil {
			return p + ".exe", nil
		}
		return "", fmt.Errorf("no ffmpeg binary in %q: %w", location, ErrNotFound)
	}
	if p, err := exec.LookPath("ffmpeg"); err == nil {
		return p, nil
	}
	return "", fmt.Errorf("could not find ffmpeg in PATH, please install ffmpeg: %w", ErrNotFound)
}
