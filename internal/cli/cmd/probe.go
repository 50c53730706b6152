package cmd

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"mediagrab/internal/downloader"
	"mediagrab/internal/ytdlp"
)

func newProbeCmd() *cobra.Command {
	return &cobra.Command{
		Use:           "probe",
		Short:         "Resolve the URL and list its items without downloading",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			req, err := assembleRequest()
			if err != nil {
				return &ExitError{Code: ExitFailure, Err: err}
			}
			opts, err := downloaderOptions(newLogger(cmd))
			if err != nil {
				return &ExitError{Code: ExitFailure, Err: err}
			}
			d := downloader.New(append(opts, downloader.WithOutput(cmd.OutOrStdout()))...)
			info, err := d.Probe(cmd.Context(), req)
			if interrupted(cmd.Context(), err) {
				return &ExitError{Code: ExitInterrupted}
			}
			if err != nil {
				return &ExitError{Code: ExitFailure, Err: err}
			}
			printProbe(cmd.OutOrStdout(), req.URL, info)
			return nil
		},
	}
}

// printProbe outputs what a download of url would fetch.
func printProbe(w io.Writer, url string, info *ytdlp.Info) {
	fmt.Fprintln(w, "Probe:")
	fmt.Fprintf(w, "- URL:        %s\n", url)
	if info.Title != "" {
		fmt.Fprintf(w, "- Title:      %s\n", info.Title)
	}
	if info.Uploader != "" {
		fmt.Fprintf(w, "- Uploader:   %s\n", info.Uploader)
	}
	if info.Extractor != "" {
		fmt.Fprintf(w, "- Extractor:  %s\n", info.Extractor)
	}
	if !info.IsPlaylist() {
		fmt.Fprintln(w, "- Type:       single video")
		if info.Duration > 0 {
			fmt.Fprintf(w, "- Duration:   %s\n", (time.Duration(info.Duration) * time.Second).String())
		}
		return
	}
	fmt.Fprintf(w, "- Type:       playlist (%d items)\n", info.CountEntries())
	n := 0
	for _, e := range info.Entries {
		if e == nil {
			continue
		}
		n++
		title := e.Title
		if title == "" {
			title = e.URL
		}
		fmt.Fprintf(w, "  %3d. %s [%s]\n", n, title, e.ID)
	}
}
