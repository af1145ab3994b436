package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/aerissecure/tablexlsx"
	"github.com/aerissecure/tablexlsx/config"
	"github.com/aerissecure/tablexlsx/state"
	"github.com/aerissecure/tablexlsx/xlsx"
)

// initializeAppContext prepares application context after command line has
// been parsed.
func initializeAppContext(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	var err error

	if cmd.NArg() == 0 {
		return ctx, nil
	}

	env := state.EnvFromContext(ctx)

	configFile := cmd.String("config")
	if env.Cfg, err = config.LoadConfiguration(configFile); err != nil {
		return ctx, fmt.Errorf("unable to prepare configuration: %w", err)
	}
	if cmd.Bool("debug") {
		env.Cfg.Logging.ConsoleLogger.Level = "debug"
	}
	if env.Log, err = env.Cfg.Logging.Prepare(); err != nil {
		return ctx, fmt.Errorf("unable to prepare logs: %w", err)
	}
	env.RedirectStdLog()

	env.Log.Debug("Program started", zap.Strings("args", os.Args), zap.String("runtime", runtime.Version()))
	if len(configFile) == 0 {
		env.Log.Debug("Using defaults (no configuration file)")
	}
	return ctx, nil
}

func destroyAppContext(ctx context.Context, cmd *cli.Command) error {
	env := state.EnvFromContext(ctx)
	env.Log.Debug("Program ended", zap.Duration("elapsed", env.Uptime()), zap.Strings("parsed args", cmd.Args().Slice()))
	env.RestoreStdLog()
	return nil
}

var errWasHandled bool

// exitErrHandler logs subcommand errors before the context is destroyed.
func exitErrHandler(ctx context.Context, _ *cli.Command, err error) {
	env := state.EnvFromContext(ctx)
	if env.Cfg != nil {
		env.Log.Error("Program ended with error", zap.Error(err))
		errWasHandled = true
	}
}

func usageErrorHandler(_ context.Context, _ *cli.Command, err error, _ bool) error {
	return err
}

func main() {
	ctx, stop := signal.NotifyContext(state.ContextWithEnv(context.Background()), os.Interrupt, syscall.SIGTERM)

	app := &cli.Command{
		Name:            config.AppName,
		Usage:           "converts styled HTML tables to XLSX workbooks",
		HideHelpCommand: true,
		Before:          initializeAppContext,
		After:           destroyAppContext,
		OnUsageError:    usageErrorHandler,
		ExitErrHandler:  exitErrHandler,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Usage: "load configuration from `FILE` (YAML)"},
			&cli.BoolFlag{Name: "debug", Aliases: []string{"d"}, Usage: "log debug messages to the console"},
		},
		Commands: []*cli.Command{
			{
				Name:         "convert",
				Usage:        "Converts a table of an HTML file to an XLSX workbook",
				OnUsageError: usageErrorHandler,
				Action:       runConvert,
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "class", Usage: "convert the table with class `NAME`"},
					&cli.BoolFlag{Name: "all", Usage: "convert every matching table, one sheet per table"},
					&cli.StringFlag{Name: "sheet", Usage: "name the worksheet `NAME`"},
					&cli.StringFlag{Name: "preview", Usage: "also write an HTML preview to `FILE`"},
				},
				ArgsUsage: "SOURCE DESTINATION",
			},
			{
				Name:         "inspect",
				Usage:        "Prints the cells, merges and formatting of an XLSX workbook",
				OnUsageError: usageErrorHandler,
				Action:       runInspect,
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "html", Usage: "print an HTML rendering instead of a listing"},
				},
				ArgsUsage: "FILE",
			},
			{
				Name:  "dumpconfig",
				Usage: "Dumps either default or actual configuration (YAML)",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "default", Usage: "output default embedded configuration"},
				},
				OnUsageError: usageErrorHandler,
				Action:       outputConfiguration,
				ArgsUsage:    "DESTINATION",
			},
		},
	}

	var err error
	// os.Exit skips deferred calls, nothing may be deferred after this one
	defer func() {
		stop()
		if err != nil {
			if !errWasHandled {
				fmt.Fprintf(os.Stderr, "Program ended with error: %v\n", err)
			}
			os.Exit(1)
		}
	}()
	err = app.Run(ctx, os.Args)
}

func runConvert(ctx context.Context, cmd *cli.Command) error {
	env := state.EnvFromContext(ctx)
	if cmd.Args().Len() != 2 {
		return fmt.Errorf("expected SOURCE and DESTINATION, got %d arguments", cmd.Args().Len())
	}
	src, dst := cmd.Args().Get(0), cmd.Args().Get(1)

	opts := tablexlsx.OptionsFromConfig(env.Cfg.Conversion)
	if cmd.IsSet("class") {
		opts.TableClass = cmd.String("class")
	}
	if cmd.IsSet("all") {
		opts.AllTables = cmd.Bool("all")
	}
	if cmd.IsSet("sheet") {
		opts.SheetName = cmd.String("sheet")
	}

	c := tablexlsx.New(env.Log, opts)
	err := c.ConvertFile(ctx, src, dst)
	if preview := cmd.String("preview"); err == nil && preview != "" {
		err = multierr.Append(err, c.PreviewFile(ctx, src, preview))
	}
	return err
}

func runInspect(ctx context.Context, cmd *cli.Command) error {
	env := state.EnvFromContext(ctx)
	if cmd.Args().Len() != 1 {
		return fmt.Errorf("expected FILE, got %d arguments", cmd.Args().Len())
	}
	m, err := xlsx.InspectFile(cmd.Args().First())
	if err != nil {
		return err
	}
	if cmd.Bool("html") {
		return xlsx.WriteHTML(os.Stdout, m)
	}
	for _, sheet := range m.Sheets {
		fmt.Fprintln(os.Stdout, sheet)
		for _, row := range sheet.Rows {
			for _, cell := range row.Cells {
				if cell != nil {
					fmt.Fprintln(os.Stdout, "  ", cell)
				}
			}
		}
	}
	env.Log.Debug("Workbook inspected", zap.Int("sheets", len(m.Sheets)))
	return nil
}

func outputConfiguration(ctx context.Context, cmd *cli.Command) (err error) {
	env := state.EnvFromContext(ctx)
	if cmd.Args().Len() > 1 {
		env.Log.Warn("Malformed command line, too many destinations", zap.Strings("ignoring", cmd.Args().Slice()[1:]))
	}

	fname := cmd.Args().Get(0)

	var (
		data []byte
		kind string
	)

	out := os.Stdout
	if len(fname) > 0 {
		if out, err = os.Create(fname); err != nil {
			return fmt.Errorf("unable to create destination file '%s': %w", fname, err)
		}
		defer func() {
			err = multierr.Append(err, out.Close())
		}()
	}

	if cmd.Bool("default") {
		kind = "default"
		data, err = config.Prepare()
	} else {
		kind = "actual"
		data, err = config.Dump(env.Cfg)
	}
	if err != nil {
		return fmt.Errorf("unable to get configuration: %w", err)
	}

	if len(fname) == 0 {
		fname = "STDOUT"
	}
	env.Log.Info("Outputing configuration", zap.String("state", kind), zap.String("file", fname))

	if _, err = out.Write(data); err != nil {
		return fmt.Errorf("unable to write configuration: %w", err)
	}
	return nil
}
