package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap/zapcore"

	"github.com/oshokin/oneshot/internal/app"
	"github.com/oshokin/oneshot/internal/config"
	"github.com/oshokin/oneshot/internal/executor"
	"github.com/oshokin/oneshot/internal/logger"
	"github.com/oshokin/oneshot/internal/utils"
	"github.com/oshokin/oneshot/internal/version"
)

// dataFilePrefix marks a data value read from a file, as in "@body.json".
const dataFilePrefix = "@"

// ErrEmptyDataFilename indicates a data value consisting of the file prefix only.
var ErrEmptyDataFilename = errors.New("data file name is empty")

var (
	//nolint:gochecknoglobals // It is required for configuration initialization before the application starts.
	configFilenameFromFlag string

	//nolint:gochecknoglobals,lll // It is initialized once during the application's startup and shared across the command execution logic.
	appConfig *config.Config

	//nolint:gochecknoglobals,lll // Cobra command requires a global definition for proper command-line parsing and execution.
	rootCmd = &cobra.Command{
		Use:   "oneshot [flags] URL",
		Short: "Perform a single HTTP request and print the response body.",
		Long: `oneshot performs exactly one HTTP/1.1 request and buffers the whole response
before writing it to stdout or to a file.

TLS peer and host verification are always enabled. HTTP error statuses are not
failures: the body is printed and the command exits successfully. Only transport
failures, such as unresolvable hosts, timeouts or certificate errors, fail the command.`,
		Args:             cobra.ExactArgs(1),
		Version:          version.Short(),
		PersistentPreRun: initConfig,
		Run: func(cmd *cobra.Command, args []string) {
			ctx := cmd.Context()

			if err := bindFlagsToConfig(cmd.Flags(), appConfig); err != nil {
				logger.Fatalf(ctx, "Failed to parse flags: %v", err)
			}

			logger.SetLevel(appConfig.ParsedLogLevel)

			opts, err := newRootOptions(cmd.Flags(), args[0])
			if err != nil {
				logger.Fatalf(ctx, "Failed to parse request flags: %v", err)
			}

			if err = app.ExecuteRootCommand(ctx, appConfig, opts); err != nil {
				logger.Fatalf(ctx, "Request failed: %v", err)
			}
		},
	}
)

// Execute executes the root command.
func Execute() {
	signals := []os.Signal{syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM}
	ctx, stop := signal.NotifyContext(context.Background(), signals...)

	defer func() {
		_ = logger.Logger().Sync()
	}()

	defer stop()

	go func() {
		defer stop()

		err := rootCmd.ExecuteContext(ctx)
		cobra.CheckErr(err)
	}()

	<-ctx.Done()
}

//nolint:gochecknoinits // Cobra requires the init function to set up flags before the command is executed.
func init() {
	rootCmd.PersistentFlags().StringVarP(
		&configFilenameFromFlag,
		"config",
		"c",
		"",
		fmt.Sprintf("path to the configuration file (default is '%s')",
			config.DefaultConfigFilename))

	addRootFlags(rootCmd.Flags())
	rootCmd.MarkFlagsMutuallyExclusive("data", "data-binary")

	rootCmd.AddCommand(configCmd, versionCmd)
}

func addRootFlags(flags *pflag.FlagSet) {
	flags.StringP(
		"request",
		"X",
		"",
		"request method (default GET, or POST when data is given).")

	flags.StringArrayP(
		"header",
		"H",
		nil,
		"request header \"Name: value\", repeatable. Use \"Name;\" to send an empty value.")

	flags.StringP(
		"data",
		"d",
		"",
		"request body; \"@file\" reads it from a file and strips line breaks.")

	flags.String(
		"data-binary",
		"",
		"request body sent as is; \"@file\" reads it from a file byte for byte.")

	flags.BoolP(
		"include",
		"i",
		false,
		"print the status line before the body.")

	flags.StringP(
		"output",
		"o",
		"",
		"write the body to a file instead of stdout (missing folders are created).")

	flags.BoolP(
		"location",
		"L",
		false,
		"follow redirects.")

	flags.Int64(
		"max-redirs",
		0,
		"maximum number of redirects to follow, -1 means unlimited.")

	flags.StringP(
		"max-time",
		"m",
		"",
		"maximum time for the whole request, in seconds or as a duration, for example: 30, 2.5, 1m.")

	flags.StringP(
		"user-agent",
		"A",
		"",
		"User-Agent sent when no User-Agent header is given.")

	flags.String(
		"max-filesize",
		"",
		"largest response body to accept, for example: 10MB, 1GiB.")

	flags.String(
		"cacert",
		"",
		"PEM file with the certificates to trust instead of the system ones.")

	flags.BoolP(
		"verbose",
		"v",
		false,
		"log request and response dumps to stderr.")
}

func initConfig(cmd *cobra.Command, _ []string) {
	var err error

	appConfig, err = config.LoadConfig(configFilenameFromFlag)
	if err != nil {
		logger.Fatalf(cmd.Context(), "Failed to load configuration: %v", err)
	}

	if level, ok := logger.ParseLogLevel(appConfig.LogLevel); ok {
		logger.SetLevel(level)
	}
}

//nolint:cyclop // One branch per flag.
func bindFlagsToConfig(flags *pflag.FlagSet, cfg *config.Config) error {
	if flag := flags.Lookup("max-time"); flag != nil && flag.Changed {
		maxTime, _ := flags.GetString("max-time")
		cfg.Timeout = normalizeMaxTime(maxTime)
	}

	if flag := flags.Lookup("user-agent"); flag != nil && flag.Changed {
		cfg.UserAgent, _ = flags.GetString("user-agent")
	}

	if flag := flags.Lookup("location"); flag != nil && flag.Changed {
		cfg.FollowRedirects, _ = flags.GetBool("location")
	}

	if flag := flags.Lookup("max-redirs"); flag != nil && flag.Changed {
		cfg.MaxRedirects, _ = flags.GetInt64("max-redirs")
	}

	if flag := flags.Lookup("max-filesize"); flag != nil && flag.Changed {
		cfg.MaxResponseSize, _ = flags.GetString("max-filesize")
	}

	if flag := flags.Lookup("cacert"); flag != nil && flag.Changed {
		cfg.CABundle, _ = flags.GetString("cacert")
	}

	if flag := flags.Lookup("verbose"); flag != nil && flag.Changed {
		if verbose, _ := flags.GetBool("verbose"); verbose {
			cfg.LogLevel = zapcore.DebugLevel.String()
		}
	}

	return config.ValidateConfig(cfg)
}

// normalizeMaxTime turns a plain number of seconds into a duration string.
func normalizeMaxTime(value string) string {
	value = strings.TrimSpace(value)

	seconds, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return value
	}

	return strconv.FormatFloat(seconds, 'f', -1, 64) + "s"
}

// newRootOptions collects the request described by the flags.
func newRootOptions(flags *pflag.FlagSet, url string) (*app.RootOptions, error) {
	opts := &app.RootOptions{URL: url}

	rawHeaders, _ := flags.GetStringArray("header")
	for _, rawHeader := range rawHeaders {
		name, value, err := utils.ParseHeaderLine(rawHeader)
		if err != nil {
			return nil, err
		}

		opts.Headers = append(opts.Headers, executor.Header{Name: name, Value: value})
	}

	body, err := readBodyFlags(flags)
	if err != nil {
		return nil, err
	}

	opts.Body = body

	opts.Method, _ = flags.GetString("request")
	if opts.Method = strings.TrimSpace(opts.Method); opts.Method == "" {
		opts.Method = "GET"
		if opts.Body != nil {
			opts.Method = "POST"
		}
	}

	opts.IncludeStatus, _ = flags.GetBool("include")
	opts.OutputFilename, _ = flags.GetString("output")

	return opts, nil
}

// readBodyFlags returns the request body, or nil when no data flag was given.
func readBodyFlags(flags *pflag.FlagSet) ([]byte, error) {
	if flag := flags.Lookup("data-binary"); flag != nil && flag.Changed {
		value, _ := flags.GetString("data-binary")

		return readData(value, false)
	}

	if flag := flags.Lookup("data"); flag != nil && flag.Changed {
		value, _ := flags.GetString("data")

		return readData(value, true)
	}

	return nil, nil
}

// readData returns value itself, or the content of the file it names with the "@" prefix.
func readData(value string, stripLineBreaks bool) ([]byte, error) {
	filename, isFile := strings.CutPrefix(value, dataFilePrefix)
	if !isFile {
		// A non-nil slice, so that an empty value is still sent as a zero-length body.
		return append([]byte{}, value...), nil
	}

	if filename == "" {
		return nil, ErrEmptyDataFilename
	}

	data, err := os.ReadFile(filename) //nolint:gosec // The file is named by the user.
	if err != nil {
		return nil, fmt.Errorf("failed to read data file: %w", err)
	}

	if stripLineBreaks {
		data = []byte(strings.NewReplacer("\r", "", "\n", "").Replace(string(data)))
	}

	return data, nil
}
