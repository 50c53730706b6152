package cmd

import (
	"context"
	"errors"
	"io"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"mediagrab/internal/downloader"
	"mediagrab/internal/progress"
	"mediagrab/internal/ui"
	"mediagrab/internal/util"
	"mediagrab/internal/ytdlp"
)

func newTuiCmd() *cobra.Command {
	return &cobra.Command{
		Use:           "tui",
		Short:         "Download with an interactive progress view",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !util.IsTerminal(cmd.OutOrStdout()) {
				return &ExitError{Code: ExitFailure, Err: errors.New("tui needs a terminal; run without the tui subcommand instead")}
			}
			req, err := assembleRequest()
			if err != nil {
				return &ExitError{Code: ExitFailure, Err: err}
			}
			// Log lines would tear the rendered view.
			opts, err := downloaderOptions(zerolog.Nop())
			if err != nil {
				return &ExitError{Code: ExitFailure, Err: err}
			}

			start := func(ctx context.Context, notify ui.Notify) (*ytdlp.Info, progress.Stats, error) {
				var d *downloader.Downloader
				d = downloader.New(append(opts,
					downloader.WithOutput(io.Discard),
					downloader.WithHook(func(ev progress.Event) { notify(ev, d.Stats()) }),
				)...)
				info, err := d.DownloadMedia(ctx, req)
				return info, d.Stats(), err
			}
			info, stats, err := ui.Run(cmd.Context(), req, start)
			return finish(cmd, stats, info, err)
		},
	}
}
