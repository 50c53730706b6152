// Package downloader runs one download request through yt-dlp: validate,
// probe, transfer, and tally the results.
package downloader

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/h2non/filetype"
	"github.com/rs/zerolog"

	"mediagrab/internal/archive"
	"mediagrab/internal/model"
	"mediagrab/internal/progress"
	"mediagrab/internal/util"
	"mediagrab/internal/util/deps"
	"mediagrab/internal/validate"
	"mediagrab/internal/ytdlp"
)

var (
	// ErrEngine wraps every failure reported by the engine itself.
	ErrEngine = errors.New("engine failed")
	// ErrNoDownloader is returned when no yt-dlp binary can be found.
	ErrNoDownloader = errors.New("downloader not found")
)

// Downloader owns the statistics of one run. It is not meant to be reused
// across unrelated requests.
type Downloader struct {
	dlPath         string
	ffmpegLocation string
	archivePath    string
	verbose        bool

	runner   util.CmdRunner
	out      io.Writer
	log      zerolog.Logger
	hooks    []progress.Hook
	reporter *progress.Reporter
	runID    string
}

// Option configures a Downloader.
type Option func(*Downloader)

// WithDownloaderPath sets the yt-dlp binary. When unset it is looked up in PATH.
func WithDownloaderPath(p string) Option {
	return func(d *Downloader) {
		d.dlPath = p
	}
}

// WithRunner injects a custom command runner (useful for testing).
func WithRunner(r util.CmdRunner) Option {
	return func(d *Downloader) {
		d.runner = r
	}
}

// WithOutput sets where progress and the summary are printed. Defaults to stdout.
func WithOutput(w io.Writer) Option {
	return func(d *Downloader) {
		d.out = w
	}
}

// WithLogger sets the diagnostic logger.
func WithLogger(l zerolog.Logger) Option {
	return func(d *Downloader) {
		d.log = l
	}
}

// WithHook adds an observer called after the built-in reporter for every event.
func WithHook(h progress.Hook) Option {
	return func(d *Downloader) {
		if h != nil {
			d.hooks = append(d.hooks, h)
		}
	}
}

// WithArchive enables a yt-dlp download archive at path.
func WithArchive(path string) Option {
	return func(d *Downloader) {
		d.archivePath = path
	}
}

// WithFFmpegLocation passes --ffmpeg-location to yt-dlp.
func WithFFmpegLocation(p string) Option {
	return func(d *Downloader) {
		d.ffmpegLocation = p
	}
}

// WithVerbose echoes raw engine output.
func WithVerbose(v bool) Option {
	return func(d *Downloader) {
		d.verbose = v
	}
}

// New constructs a Downloader with the provided options.
func New(opts ...Option) *Downloader {
	d := &Downloader{
		out:   os.Stdout,
		log:   zerolog.Nop(),
		runID: uuid.NewString(),
	}
	for _, o := range opts {
		o(d)
	}
	d.log = d.log.With().Str("run", d.runID).Logger()
	if d.runner == nil {
		d.runner = util.NewExecRunner(d.log)
	}
	d.reporter = progress.NewReporter(d.out)
	return d
}

// RunID identifies this downloader in log lines.
func (d *Downloader) RunID() string { return d.runID }

// Stats returns a snapshot of the run counters.
func (d *Downloader) Stats() progress.Stats { return d.reporter.Stats() }

// PrintSummary writes the summary block to the configured output.
func (d *Downloader) PrintSummary() { progress.PrintSummary(d.out, d.Stats()) }

// SetLive forces the overwritten progress line on or off.
func (d *Downloader) SetLive(live bool) { d.reporter.SetLive(live) }

// DownloadMedia validates req, probes the URL, and transfers every item.
// It returns the probe metadata enriched with the finished items, or a nil
// Info and an error when the engine fails. Failed items inside a playlist do
// not fail the run; they are listed in Info.Failures.
func (d *Downloader) DownloadMedia(ctx context.Context, req model.Request) (*ytdlp.Info, error) {
	req, q := d.prepare(req)

	if err := util.EnsureDir(req.OutFolder); err != nil {
		return nil, fmt.Errorf("create output folder: %w", err)
	}
	if err := d.resolveDownloader(); err != nil {
		return nil, err
	}

	opts := d.options(req, q)
	if d.archivePath != "" {
		release, err := archive.Lock(d.archivePath)
		if err != nil {
			return nil, err
		}
		defer func() {
			if err := release(); err != nil {
				d.log.Warn().Err(err).Msg("release archive lock")
			}
		}()
	}

	d.printHeader(req, q)
	d.log.Debug().Str("url", req.URL).Str("mode", req.Mode()).Str("format", req.Format).Stringer("quality", q).Msg("request")

	info, err := d.probe(ctx, req.URL, opts)
	if err != nil {
		return nil, d.fail(ctx, "probe", err, false)
	}
	if info.IsPlaylist() {
		n := info.CountEntries()
		d.reporter.SetTotal(n)
		d.reporter.Printf(" Playlist detected: %d files\n", n)
	} else {
		d.reporter.SetTotal(1)
		d.reporter.Printf(" Single video detected\n")
	}

	items, failures, err := d.transfer(ctx, req.URL, opts)
	if err != nil {
		return nil, d.fail(ctx, "transfer", err, len(failures) > 0)
	}
	info.Items = items
	info.Failures = failures
	d.log.Info().Int("items", len(items)).Int("failures", len(failures)).Msg("transfer complete")
	return info, nil
}

// Probe runs only the metadata step for req and records the item count.
func (d *Downloader) Probe(ctx context.Context, req model.Request) (*ytdlp.Info, error) {
	req, q := d.prepare(req)
	if err := d.resolveDownloader(); err != nil {
		return nil, err
	}
	info, err := d.probe(ctx, req.URL, d.options(req, q))
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("%w: probe: %v", ErrEngine, err)
	}
	if info.IsPlaylist() {
		d.reporter.SetTotal(info.CountEntries())
	} else {
		d.reporter.SetTotal(1)
	}
	return info, nil
}

func (d *Downloader) prepare(req model.Request) (model.Request, model.Quality) {
	req = req.WithDefaults()
	warn := func(format string, args ...any) {
		d.log.Warn().Msgf(format, args...)
	}
	req.Format = validate.Format(req.Format, req.IsVideo, warn)
	q := validate.Quality(req.Quality, req.IsVideo, warn)
	return req, q
}

func (d *Downloader) options(req model.Request, q model.Quality) ytdlp.Options {
	opts := ytdlp.BuildOptions(req, q)
	opts.DownloadArchive = d.archivePath
	opts.FFmpegLocation = d.ffmpegLocation
	return opts
}

func (d *Downloader) resolveDownloader() error {
	if d.dlPath != "" {
		return nil
	}
	p, err := deps.FindDownloader("")
	if err != nil {
		return fmt.Errorf("%w: %v", ErrNoDownloader, err)
	}
	d.dlPath = p
	return nil
}

func (d *Downloader) printHeader(req model.Request, q model.Quality) {
	fmt.Fprintf(d.out, "Starting %s download...\n", req.Mode())
	fmt.Fprintf(d.out, "Output folder: %s\n", req.OutFolder)
	fmt.Fprintf(d.out, "Format: %s\n", req.Format)
	fmt.Fprintf(d.out, "Quality: %s\n", q)
	fmt.Fprintf(d.out, "URL: %s\n\n", req.URL)
}

func (d *Downloader) probe(ctx context.Context, url string, opts ytdlp.Options) (*ytdlp.Info, error) {
	res, runErr := d.runner.Run(ctx, util.CmdSpec{
		Path:          d.dlPath,
		Args:          opts.ProbeArgs(url),
		CaptureStdout: true,
	})
	// With --ignore-errors a playlist with broken entries still prints JSON
	// and exits non-zero.
	if runErr != nil && len(strings.TrimSpace(string(res.Stdout))) == 0 {
		return nil, withEngineError(runErr, res.Stderr)
	}
	info, err := ytdlp.ParseInfo(res.Stdout)
	if err != nil {
		return nil, err
	}
	if runErr != nil {
		d.log.Warn().Err(runErr).Msg("probe exited with errors, using partial metadata")
	}
	return info, nil
}

func (d *Downloader) transfer(ctx context.Context, url string, opts ytdlp.Options) ([]ytdlp.Item, []string, error) {
	var (
		mu       sync.Mutex
		items    []ytdlp.Item
		failures []string
	)
	handle := func(s string) {
		ln, ok := ytdlp.ParseLine(s)
		if !ok {
			return
		}
		switch ln.Kind {
		case ytdlp.LineProgress:
			d.emit(ln.Event)
		case ytdlp.LineError:
			mu.Lock()
			failures = append(failures, ln.Event.Detail)
			mu.Unlock()
			d.emit(ln.Event)
		case ytdlp.LineItem:
			it := ln.Item
			it.MIME = sniffMIME(it.Path)
			mu.Lock()
			items = append(items, it)
			mu.Unlock()
			d.log.Info().Str("path", it.Path).Str("mime", it.MIME).Msg("saved")
		}
	}

	res, runErr := d.runner.Run(ctx, util.CmdSpec{
		Path:       d.dlPath,
		Args:       opts.TransferArgs(url),
		Verbose:    d.verbose,
		StdoutLine: handle,
		StderrLine: handle,
	})

	mu.Lock()
	defer mu.Unlock()
	if runErr != nil {
		// yt-dlp exits 1 when any item of a batch failed; finished items
		// make that a partial success.
		if len(items) > 0 && ctx.Err() == nil {
			d.log.Warn().Err(runErr).Int("failures", len(failures)).Msg("some items failed")
			return items, failures, nil
		}
		return items, failures, withEngineError(runErr, res.Stderr)
	}
	return items, failures, nil
}

func (d *Downloader) emit(ev progress.Event) {
	d.reporter.Handle(ev)
	for _, h := range d.hooks {
		h(ev)
	}
}

// fail reports an engine failure and wraps it in ErrEngine. Cancellation is
// returned as is. counted is set when error events already tallied it.
func (d *Downloader) fail(ctx context.Context, stage string, err error, counted bool) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}
	if counted {
		d.reporter.Printf("Download failed: %v", err)
	} else {
		d.reporter.AddError(err.Error())
	}
	d.log.Debug().Err(err).Str("stage", stage).Msg("engine failed")
	return fmt.Errorf("%w: %s: %v", ErrEngine, stage, err)
}

// withEngineError appends the last ERROR line of stderr to err, if any.
func withEngineError(err error, stderr []byte) error {
	lines := strings.Split(strings.TrimSpace(string(stderr)), "\n")
	for i := len(lines) - 1; i >= 0; i-- {
		if ev, ok := ytdlp.ParseError(lines[i]); ok {
			return fmt.Errorf("%s: %w", ev.Detail, err)
		}
	}
	return err
}

func sniffMIME(path string) string {
	kind, err := filetype.MatchFile(path)
	if err != nil || kind == filetype.Unknown {
		return ""
	}
	return kind.MIME.Value
}

// DownloadMedia runs req with a fresh Downloader built from opts.
func DownloadMedia(ctx context.Context, req model.Request, opts ...Option) (*ytdlp.Info, error) {
	return New(opts...).DownloadMedia(ctx, req)
}
