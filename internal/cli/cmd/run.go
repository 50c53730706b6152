package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"mediagrab/internal/clipboard"
	"mediagrab/internal/downloader"
	"mediagrab/internal/logging"
	"mediagrab/internal/model"
	"mediagrab/internal/progress"
	"mediagrab/internal/util"
	"mediagrab/internal/util/deps"
	"mediagrab/internal/ytdlp"
)

// readClipboard is swapped in tests.
var readClipboard = clipboard.ReadURL

var errNoURL = errors.New("--url is required (or pass --clipboard to read it from the clipboard)")

// assembleRequest reads the request from flags, env and config.
// Precedence: flag > env/config > default.
func assembleRequest() (model.Request, error) {
	req := model.Request{
		URL:       strings.TrimSpace(viper.GetString("url")),
		OutFolder: viper.GetString("outfolder"),
		Format:    viper.GetString("format"),
		Quality:   viper.GetString("quality"),
		IsVideo:   viper.GetBool("video"),
		Template:  viper.GetString("template"),
	}
	// The flag defaults describe audio mode; video mode falls back to its own.
	if req.IsVideo {
		if !viper.IsSet("format") {
			req.Format = ""
		}
		if !viper.IsSet("quality") {
			req.Quality = ""
		}
	}
	req = req.WithDefaults()

	if req.URL == "" && viper.GetBool("clipboard") {
		u, err := readClipboard()
		if err != nil {
			return req, fmt.Errorf("--clipboard: %w", err)
		}
		req.URL = u
	}
	if req.URL == "" {
		return req, errNoURL
	}
	u, err := util.NormalizeURL(req.URL)
	if err != nil {
		return req, err
	}
	req.URL = u
	return req, nil
}

func newLogger(cmd *cobra.Command) zerolog.Logger {
	return logging.New(cmd.ErrOrStderr(), viper.GetBool("verbose"))
}

// downloaderOptions resolves yt-dlp and translates the persistent flags.
func downloaderOptions(log zerolog.Logger) ([]downloader.Option, error) {
	dlPath, err := deps.FindDownloader(viper.GetString("dl_binary"))
	if err != nil {
		return nil, err
	}
	ffmpegLocation := viper.GetString("ffmpeg_location")
	if _, err := deps.FindFFmpeg(ffmpegLocation); err != nil {
		log.Warn().Err(err).Msg("conversion steps will fail without ffmpeg")
	}
	return []downloader.Option{
		downloader.WithDownloaderPath(dlPath),
		downloader.WithLogger(log),
		downloader.WithFFmpegLocation(ffmpegLocation),
		downloader.WithArchive(viper.GetString("archive")),
	}, nil
}

func runExecute(cmd *cobra.Command) error {
	req, err := assembleRequest()
	if err != nil {
		return &ExitError{Code: ExitFailure, Err: err}
	}
	log := newLogger(cmd)
	opts, err := downloaderOptions(log)
	if err != nil {
		return &ExitError{Code: ExitFailure, Err: err}
	}

	d := downloader.New(append(opts,
		downloader.WithOutput(cmd.OutOrStdout()),
		downloader.WithVerbose(viper.GetBool("verbose")),
	)...)
	info, err := d.DownloadMedia(cmd.Context(), req)
	return finish(cmd, d.Stats(), info, err)
}

// finish prints the summary and the outcome, and maps it to an exit code.
func finish(cmd *cobra.Command, stats progress.Stats, info *ytdlp.Info, err error) error {
	out := cmd.OutOrStdout()
	if interrupted(cmd.Context(), err) {
		fmt.Fprintln(out, "\n\nDownload interrupted by user.")
		return &ExitError{Code: ExitInterrupted}
	}

	progress.PrintSummary(out, stats)
	if err != nil || info == nil {
		fmt.Fprintln(out, "Download failed!")
		return &ExitError{Code: ExitFailure, Err: err}
	}
	printItems(out, info)
	fmt.Fprintln(out, "Download finished successfully!")
	return nil
}

func printItems(w io.Writer, info *ytdlp.Info) {
	for _, it := range info.Items {
		if it.MIME != "" {
			fmt.Fprintf(w, "Saved: %s (%s)\n", it.Path, it.MIME)
		} else {
			fmt.Fprintf(w, "Saved: %s\n", it.Path)
		}
	}
	for _, f := range info.Failures {
		fmt.Fprintf(w, "Failed: %s\n", f)
	}
}

func interrupted(ctx context.Context, err error) bool {
	return (ctx != nil && ctx.Err() != nil) || errors.Is(err, context.Canceled)
}
