// Package mediagrab downloads audio or video from a URL with yt-dlp.
//
//	info, err := mediagrab.DownloadMedia(ctx, "https://youtu.be/abc", "", "mp3", "320", false, "")
//	if err != nil {
//		return err
//	}
//	for _, it := range info.Items {
//		fmt.Println(it.Path)
//	}
package mediagrab

import (
	"context"

	"mediagrab/internal/downloader"
	"mediagrab/internal/model"
	"mediagrab/internal/progress"
	"mediagrab/internal/ytdlp"
)

type (
	Request = model.Request
	Info    = ytdlp.Info
	Item    = ytdlp.Item
	Stats   = progress.Stats
	Event   = progress.Event
	Option  = downloader.Option
)

var (
	ErrEngine       = downloader.ErrEngine
	ErrNoDownloader = downloader.ErrNoDownloader
)

var (
	WithDownloaderPath = downloader.WithDownloaderPath
	WithFFmpegLocation = downloader.WithFFmpegLocation
	WithArchive        = downloader.WithArchive
	WithOutput         = downloader.WithOutput
	WithLogger         = downloader.WithLogger
	WithHook           = downloader.WithHook
	WithVerbose        = downloader.WithVerbose
)

// DownloadMedia fetches url into outFolder. Empty strings take the command
// line defaults for the chosen mode. Invalid formats and qualities fall back
// to the defaults with a warning. The returned Info is nil on failure.
func DownloadMedia(ctx context.Context, url, outFolder, format, quality string, isVideo bool, template string, opts ...Option) (*Info, error) {
	req := Request{
		URL:       url,
		OutFolder: outFolder,
		Format:    format,
		Quality:   quality,
		IsVideo:   isVideo,
		Template:  template,
	}
	info, err := downloader.DownloadMedia(ctx, req, opts...)
	if err != nil {
		return nil, err
	}
	return info, nil
}
