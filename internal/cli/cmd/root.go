package cmd

import (
	"context"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"mediagrab/internal/config"
	"mediagrab/internal/model"
)

const (
	ExitOK          = 0
	ExitFailure     = 1
	ExitInterrupted = 130
)

// ExitError wraps an error with a process exit code.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	if e.Err == nil {
		return ""
	}
	return e.Err.Error()
}

func (e *ExitError) Unwrap() error { return e.Err }

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "mediagrab",
		Short: "Download audio or video from a URL with yt-dlp and ffmpeg",
		Long: `mediagrab downloads a single video or a whole playlist through yt-dlp and
converts it with ffmpeg. Audio mode extracts the audio track to the requested
codec and bitrate; video mode merges the best streams into the requested
container, optionally capped to a resolution.

Audio formats: mp3, wav, ogg, m4a, aac, flac
Video formats: mp4, webm, mkv, avi, mov, flv`,
		Example: `  mediagrab --url "https://www.youtube.com/watch?v=dQw4w9WgXcQ" --format mp3 --quality 192
  mediagrab --url "https://www.youtube.com/playlist?list=..." --format ogg --quality 320
  mediagrab --url "https://www.youtube.com/watch?v=..." --video --format mp4 --quality 1080p
  mediagrab --clipboard --video --quality best`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfgFile, _ := cmd.Flags().GetString("config")
			if err := config.Init(cmd.Root(), cfgFile); err != nil {
				return &ExitError{Code: ExitFailure, Err: err}
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runExecute(cmd)
		},
	}

	// Persistent flags available to all subcommands
	pf := root.PersistentFlags()
	pf.String("config", "", "Config file (default: <config dir>/mediagrab/config.{yaml,toml,json})")
	pf.String("dl-binary", "", "Path to yt-dlp or youtube-dl")
	pf.String("ffmpeg-location", "", "Path to ffmpeg or the directory containing it")
	pf.String("archive", "", "yt-dlp download archive; items recorded in it are skipped")
	pf.BoolP("verbose", "v", false, "Show engine commands and output")
	bindRequestFlags(pf)

	root.AddCommand(newProbeCmd())
	root.AddCommand(newTuiCmd())
	root.AddCommand(newDoctorCmd())
	root.AddCommand(newCompletionCmd())

	return root
}

func bindRequestFlags(fs *pflag.FlagSet) {
	fs.String("url", "", "Video or playlist URL (required unless --clipboard)")
	fs.String("outfolder", model.DefaultOutFolder, "Output folder")
	fs.String("format", model.DefaultAudioFormat, "Output format (video mode defaults to mp4)")
	fs.String("quality", model.DefaultAudioQuality, `Audio: bitrate in kbps (64-320). Video: 360p, 720p, 1080p, "best" or "worst"`)
	fs.Bool("video", false, "Download the full video instead of audio only")
	fs.String("template", model.DefaultTemplate, "yt-dlp output filename template")
	fs.Bool("clipboard", false, "Read the URL from the clipboard when --url is not given")
}

// Execute runs the CLI with the provided context.
func Execute(ctx context.Context) error {
	root := newRootCmd()
	return root.ExecuteContext(ctx)
}
