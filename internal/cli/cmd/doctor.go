package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"mediagrab/internal/config"
	"mediagrab/internal/dirs"
	"mediagrab/internal/util/deps"
)

func newDoctorCmd() *cobra.Command {
	return &cobra.Command{
		Use:           "doctor",
		Short:         "Diagnose external dependencies (yt-dlp/youtube-dl, ffmpeg)",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			if used := config.Used(); used != "" {
				fmt.Fprintf(out, "Config:     %s\n", used)
			} else if dir, err := dirs.ConfigDir(); err == nil {
				fmt.Fprintf(out, "Config:     none (looked in %s)\n", dir)
			}

			dl, derr := deps.FindDownloader(viper.GetString("dl_binary"))
			if derr != nil {
				return &ExitError{Code: ExitFailure, Err: derr}
			}
			ff, ferr := deps.FindFFmpeg(viper.GetString("ffmpeg_location"))
			if ferr != nil {
				return &ExitError{Code: ExitFailure, Err: ferr}
			}
			fmt.Fprintf(out, "Downloader: %s\n", dl)
			fmt.Fprintf(out, "FFmpeg:     %s\n", ff)
			return nil
		},
	}
}
