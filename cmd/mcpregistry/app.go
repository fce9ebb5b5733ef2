package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/atlanticdynamic/mcpregistry/internal/config"
	"github.com/atlanticdynamic/mcpregistry/internal/interpolation"
	"github.com/atlanticdynamic/mcpregistry/internal/logging"
	"github.com/atlanticdynamic/mcpregistry/internal/mcptools"
	"github.com/atlanticdynamic/mcpregistry/internal/registry"
	"github.com/urfave/cli/v3"
)

const usageText = `Usage: mcpregistry <key>
   or: mcpregistry --all [--format json|tree|toml]
   or: mcpregistry --set <value> <key>
   or: mcpregistry --delete <key>
   or: mcpregistry --mcp`

// silentError ends the process with exit code 1 after printing msg as-is, without the
// "Error: " prefix used for real failures.
type silentError struct {
	msg string
}

func (e *silentError) Error() string {
	return e.msg
}

func notFound(key string) error {
	return &silentError{msg: fmt.Sprintf("Key '%s' not found in registry", key)}
}

// app carries the process streams and environment so the command can run under test.
type app struct {
	stdout io.Writer
	stderr io.Writer
	lookup interpolation.LookupFunc
}

// run executes the command line and returns the process exit code.
func run(ctx context.Context, args []string, stdout, stderr io.Writer, lookup interpolation.LookupFunc) int {
	a := &app{stdout: stdout, stderr: stderr, lookup: lookup}

	err := a.command().Run(ctx, args)
	if err == nil {
		return 0
	}

	var silent *silentError
	if errors.As(err, &silent) {
		if silent.msg != "" {
			fmt.Fprintln(stderr, silent.msg)
		}
		return 1
	}

	fmt.Fprintf(stderr, "Error: %v\n", err)
	return 1
}

func (a *app) command() *cli.Command {
	return &cli.Command{
		Name:            "mcpregistry",
		Version:         Version,
		Usage:           "Read values from the MCP instance data registry",
		ArgsUsage:       "<key>",
		HideHelpCommand: true,
		Writer:          a.stdout,
		ErrWriter:       a.stderr,
		OnUsageError:    usageError,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "all",
				Usage: "Print every key/value pair stored for this instance",
			},
			&cli.StringFlag{
				Name:    "format",
				Usage:   "Output format for --all: json, tree or toml",
				Aliases: []string{"f"},
				Value:   formatJSON,
			},
			&cli.StringFlag{
				Name:  "set",
				Usage: "Store `VALUE` under <key> instead of reading it",
			},
			&cli.BoolFlag{
				Name:  "delete",
				Usage: "Delete <key> instead of reading it",
			},
			&cli.BoolFlag{
				Name:  "mcp",
				Usage: "Serve the registry as MCP tools over stdio",
			},
			&cli.StringFlag{
				Name:    "config",
				Usage:   "Path to a TOML settings file; environment variables take precedence",
				Aliases: []string{"c"},
			},
			&cli.DurationFlag{
				Name:    "timeout",
				Usage:   "Timeout for each registry request; overrides the file and environment",
				Aliases: []string{"t"},
				Value:   registry.DefaultTimeout,
			},
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "Log level: debug, info, warn or error",
				Value:   "warn",
				Sources: cli.EnvVars("MCPREGISTRY_LOG_LEVEL"),
			},
			&cli.StringFlag{
				Name:    "log-format",
				Usage:   "Log format: text or json",
				Value:   string(logging.FormatText),
				Sources: cli.EnvVars("MCPREGISTRY_LOG_FORMAT"),
			},
		},
		Action: a.action,
	}
}

// usageError hands flag parsing errors back to run without printing help, which would land on
// stdout.
func usageError(_ context.Context, _ *cli.Command, err error, _ bool) error {
	return err
}

func (a *app) action(ctx context.Context, cmd *cli.Command) error {
	logger, err := logging.SetupLogger(logging.Format(cmd.String("log-format")), cmd.String("log-level"), a.stderr)
	if err != nil {
		return err
	}

	modes := 0
	for _, name := range []string{"all", "set", "delete", "mcp"} {
		if cmd.IsSet(name) {
			modes++
		}
	}
	if modes > 1 {
		return fmt.Errorf("only one of --all, --set, --delete or --mcp may be given")
	}

	serveAll := cmd.Bool("all") || cmd.Bool("mcp")
	switch {
	case serveAll && cmd.Args().Len() > 0:
		return fmt.Errorf("unexpected argument: %s", cmd.Args().First())
	case !serveAll && cmd.Args().Len() == 0:
		fmt.Fprintln(a.stderr, usageText)
		return &silentError{}
	case cmd.Args().Len() > 1:
		return fmt.Errorf("expected a single key, got %d arguments", cmd.Args().Len())
	}

	format := cmd.String("format")
	if cmd.Bool("all") && !validFormat(format) {
		return fmt.Errorf("unsupported output format: %s", format)
	}

	opts := []config.Option{
		config.WithFile(cmd.String("config")),
		config.WithLookupEnv(a.lookup),
		config.WithLogger(logger),
		config.WithUserAgent(userAgent()),
	}
	if cmd.IsSet("timeout") {
		opts = append(opts, config.WithTimeout(cmd.Duration("timeout")))
	}

	cfg, err := config.Load(opts...)
	if err != nil {
		return err
	}
	client := registry.New(cfg)
	key := cmd.Args().First()

	switch {
	case cmd.Bool("mcp"):
		logger.Info("Serving registry tools over stdio")
		return mcptools.Serve(ctx, mcptools.NewServer(client, Version))

	case cmd.Bool("all"):
		values, err := client.GetAllValues(ctx)
		if err != nil {
			return err
		}
		return writeValues(a.stdout, format, values)

	case cmd.IsSet("set"):
		if err := client.SetValue(ctx, key, cmd.String("set")); err != nil {
			return err
		}
		logger.Info("Value stored", "key", key)
		return nil

	case cmd.Bool("delete"):
		deleted, err := client.DeleteValue(ctx, key)
		if err != nil {
			return err
		}
		if !deleted {
			return notFound(key)
		}
		logger.Info("Value deleted", "key", key)
		return nil

	default:
		value, found, err := client.GetValue(ctx, key)
		if err != nil {
			return err
		}
		if !found {
			return notFound(key)
		}
		return writeValue(a.stdout, value)
	}
}
