package util

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"sync"

	"github.com/rs/zerolog"
)

// CmdSpec describes a subprocess to run.
type CmdSpec struct {
	Path    string   // Binary path
	Args    []string // Arguments
	Env     []string // Optional environment variables (KEY=VALUE). If nil, inherit.
	Dir     string   // Working directory; empty = inherit.
	Verbose bool     // Echo stdout/stderr to the terminal while capturing

	// Per-line callbacks. They are never invoked concurrently.
	StdoutLine    func(string)
	StderrLine    func(string)
	CaptureStdout bool // When false and StdoutLine is set, stdout is not buffered
}

// CmdResult contains captured output and exit status.
type CmdResult struct {
	Stdout []byte
	Stderr []byte
	Code   int
	Err    error
}

// CmdRunner runs subprocesses. Tests substitute a fake.
type CmdRunner interface {
	Run(ctx context.Context, spec CmdSpec) (CmdResult, error)
}

// ExecRunner runs commands with os/exec.
type ExecRunner struct {
	Log zerolog.Logger
}

// NewExecRunner returns a runner that logs each command line at debug level.
func NewExecRunner(log zerolog.Logger) *ExecRunner {
	return &ExecRunner{Log: log}
}

// Run executes the command. It always captures stderr; stdout capture can be
// disabled with CaptureStdout=false when StdoutLine is set. On non-zero exit
// it returns an error describing the exit code, while also populating
// CmdResult.Code and the captured buffers.
func (r *ExecRunner) Run(ctx context.Context, spec CmdSpec) (CmdResult, error) {
	var stdoutBuf, stderrBuf bytes.Buffer

	cmd := exec.CommandContext(ctx, spec.Path, spec.Args...)
	if spec.Dir != "" {
		cmd.Dir = spec.Dir
	}
	if spec.Env != nil {
		cmd.Env = append(os.Environ(), spec.Env...)
	}

	stdoutPipe, err := cmd.StdoutPipe()
	if err != nil {
		return CmdResult{Code: -1, Err: err}, err
	}
	stderrPipe, err := cmd.StderrPipe()
	if err != nil {
		return CmdResult{Code: -1, Err: err}, err
	}

	r.Log.Debug().Str("cmd", shellQuote(spec.Path, spec.Args)).Msg("exec")

	if err := cmd.Start(); err != nil {
		return CmdResult{Code: -1, Err: err}, err
	}

	var (
		wg     sync.WaitGroup
		lineMu sync.Mutex
	)
	wg.Add(2)

	go func() {
		defer wg.Done()
		readLines(stdoutPipe, func(line string) {
			lineMu.Lock()
			if spec.StdoutLine != nil {
				spec.StdoutLine(line)
			}
			lineMu.Unlock()
			if spec.Verbose {
				fmt.Fprintln(os.Stdout, line)
			}
			if spec.CaptureStdout || spec.StdoutLine == nil {
				stdoutBuf.WriteString(line)
				stdoutBuf.WriteByte('\n')
			}
		})
	}()

	go func() {
		defer wg.Done()
		readLines(stderrPipe, func(line string) {
			lineMu.Lock()
			if spec.StderrLine != nil {
				spec.StderrLine(line)
			}
			lineMu.Unlock()
			if spec.Verbose {
				fmt.Fprintln(os.Stderr, line)
			}
			stderrBuf.WriteString(line)
			stderrBuf.WriteByte('\n')
		})
	}()

	// Readers must drain before Wait closes the pipes.
	wg.Wait()
	waitErr := cmd.Wait()

	code := 0
	if waitErr != nil {
		var exitErr *exec.ExitError
		if errors.As(waitErr, &exitErr) {
			code = exitErr.ExitCode()
		} else {
			code = -1
		}
	}

	res := CmdResult{
		Stdout: stdoutBuf.Bytes(),
		Stderr: stderrBuf.Bytes(),
		Code:   code,
		Err:    waitErr,
	}

	if waitErr != nil {
		r.Log.Debug().Int("code", code).Err(waitErr).Msg("exec failed")
		return res, fmt.Errorf("command failed (exit %d): %w", code, waitErr)
	}
	return res, nil
}

// readLines calls fn for each line of rd without a length limit; yt-dlp -J
// prints whole playlists on one line.
func readLines(rd io.Reader, fn func(string)) {
	br := bufio.NewReader(rd)
	for {
		line, err := br.ReadString('\n')
		if line != "" {
			fn(strings.TrimRight(line, "\r\n"))
		}
		if err != nil {
			return
		}
	}
}

// shellQuote returns a printable shell-like command string for logging.
func shellQuote(path string, args []string) string {
	b := &strings.Builder{}
	b.WriteString(quote(path))
	for _, a := range args {
		b.WriteByte(' ')
		b.WriteString(quote(a))
	}
	return b.String()
}

func quote(s string) string {
	if s == "" {
		return "''"
	}
	if strings.ContainsAny(s, " \t\n\"'\\$`(){}[]*&;|<>?!%") {
		return "'" + strings.ReplaceAll(s, "'", "'\\''") + "'"
	}
	return s
}
