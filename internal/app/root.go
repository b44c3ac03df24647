package app

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/mattn/go-isatty"

	"github.com/oshokin/oneshot/internal/config"
	"github.com/oshokin/oneshot/internal/constants"
	"github.com/oshokin/oneshot/internal/engine"
	"github.com/oshokin/oneshot/internal/executor"
	"github.com/oshokin/oneshot/internal/logger"
	transport "github.com/oshokin/oneshot/internal/transport/http"
	"github.com/oshokin/oneshot/internal/utils"
)

// RootOptions describe the request given on the command line.
type RootOptions struct {
	// URL is the target URL.
	URL string
	// Method is the request method.
	Method string
	// Headers are sent in the order given.
	Headers []executor.Header
	// Body is the request body, nil for none.
	Body []byte
	// IncludeStatus prints the status line before the body.
	IncludeStatus bool
	// OutputFilename is the file receiving the body. Empty or "-" means stdout.
	OutputFilename string
}

// ExecuteRootCommand performs the request and writes the response to stdout or to the output file.
// An HTTP error status is not an error: the body is written as usual.
func ExecuteRootCommand(ctx context.Context, cfg *config.Config, opts *RootOptions) error {
	var progressOutput io.Writer
	if cfg.ShowProgress && isatty.IsTerminal(os.Stderr.Fd()) {
		progressOutput = os.Stderr
	}

	return run(ctx, cfg, opts, os.Stdout, progressOutput)
}

// run is ExecuteRootCommand with its outputs injected.
// A nil progressOutput disables the progress bar.
func run(ctx context.Context, cfg *config.Config, opts *RootOptions, stdout, progressOutput io.Writer) error {
	eng := newEngine(cfg)
	if err := eng.Init(); err != nil {
		return fmt.Errorf("failed to initialize transport engine: %w", err)
	}

	defer func() {
		if err := eng.Teardown(); err != nil {
			logger.Warnf(ctx, "Failed to tear down transport engine: %v", err)
		}
	}()

	isFileOutput := opts.OutputFilename != "" && opts.OutputFilename != constants.StdoutFilename
	execOpts := newExecutorOptions(cfg)

	var progress *progressTracker
	if isFileOutput && progressOutput != nil {
		progress = newProgressTracker(progressOutput)
		execOpts.Progress = progress.Update
	}

	request := executor.NewRequestBuilder(opts.URL).WithMethod(opts.Method).WithBody(opts.Body)
	for _, header := range opts.Headers {
		request.WithHeader(header.Name, header.Value)
	}

	result, info, err := executor.New(eng, execOpts).Execute(ctx, request.Build())

	progress.Finish()

	if err != nil {
		return err
	}

	var statusLine string
	if opts.IncludeStatus {
		statusLine = formatStatusLine(info)
	}

	if !isFileOutput {
		return writeResponse(stdout, statusLine, result.Body)
	}

	if err = saveResponse(opts.OutputFilename, statusLine, result.Body); err != nil {
		return err
	}

	logger.InfoKV(ctx, "Response saved",
		"file", opts.OutputFilename,
		"status", info.StatusCode,
		"size", humanize.Bytes(uint64(result.Length)), //nolint:gosec // Length is never negative.
		"duration", info.TotalTime.Round(time.Millisecond))

	return nil
}

// newEngine creates an engine whose transports log traffic at debug level and fall back
// to the configured User-Agent when no other one was set.
func newEngine(cfg *config.Config) *engine.NetEngine {
	userAgent := cfg.UserAgent
	if userAgent == "" {
		userAgent = config.DefaultUserAgent()
	}

	userAgentProvider := utils.NewSimpleUserAgentProvider(userAgent)

	return engine.New(engine.Config{
		Wrap: func(next http.RoundTripper) http.RoundTripper {
			return transport.NewUserAgentInjector(
				transport.NewLogTransport(next, cfg.ParsedMaxLogLength),
				userAgentProvider)
		},
	})
}

func newExecutorOptions(cfg *config.Config) executor.Options {
	return executor.Options{
		Timeout:         cfg.ParsedTimeout,
		FollowRedirects: cfg.FollowRedirects,
		MaxRedirects:    cfg.MaxRedirects,
		UserAgent:       cfg.UserAgent,
		CABundle:        cfg.CABundle,
		MaxResponseSize: cfg.ParsedMaxResponseSize,
	}
}

func formatStatusLine(info *engine.Info) string {
	return fmt.Sprintf("%s %d %s\r\n\r\n", info.Protocol, info.StatusCode, http.StatusText(info.StatusCode))
}

func writeResponse(w io.Writer, statusLine string, body []byte) error {
	if statusLine != "" {
		if _, err := io.WriteString(w, statusLine); err != nil {
			return fmt.Errorf("failed to write status line: %w", err)
		}
	}

	if _, err := w.Write(body); err != nil {
		return fmt.Errorf("failed to write response body: %w", err)
	}

	return nil
}

// saveResponse writes the response into filename, creating missing folders.
func saveResponse(filename, statusLine string, body []byte) error {
	if dir := filepath.Dir(filename); dir != "." {
		if err := os.MkdirAll(dir, constants.DefaultFolderPermissions); err != nil {
			return fmt.Errorf("failed to create output folder: %w", err)
		}
	}

	//nolint:gosec // The output path comes from the user.
	f, err := os.OpenFile(filename, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, constants.DefaultFilePermissions)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}

	writeErr := writeResponse(f, statusLine, body)

	if closeErr := f.Close(); closeErr != nil && writeErr == nil {
		return fmt.Errorf("failed to close output file: %w", closeErr)
	}

	return writeErr
}
