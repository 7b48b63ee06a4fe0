package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/rdb2csv/rdb2csv/adapters"
	"github.com/rdb2csv/rdb2csv/core"
	"github.com/rdb2csv/rdb2csv/handler"
	"github.com/rdb2csv/rdb2csv/internal/config"
	"github.com/rdb2csv/rdb2csv/internal/logging"
)

// app is shared by all commands and set up before any of them runs.
type app struct {
	v       *viper.Viper
	cfgFile string

	cfg     *config.Cfg
	log     *logrus.Logger
	handler *handler.Handler
}

func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(a.v, a.cfgFile)
	if err != nil {
		return fmt.Errorf("config.Load: %w", err)
	}
	a.cfg = cfg

	a.log = logging.NewLogger(cfg.Log.Level, cfg.Log.Format, cmd.ErrOrStderr())

	reader, err := adapters.NewReader(cfg.Adapter,
		core.ReaderWithTable(cfg.Table),
		core.ReaderWithLogger(a.log),
	)
	if err != nil {
		return fmt.Errorf("adapters.NewReader: %w", err)
	}

	// validated by config.Load
	comma, _ := cfg.CSV.Comma()

	a.handler = handler.New(reader,
		handler.WithLogger(a.log),
		handler.WithOutput(cmd.OutOrStdout()),
		handler.WithExtension(cfg.Extension),
		handler.WithNullText(cfg.NullText),
		handler.WithComma(comma),
		handler.WithParallelReads(cfg.Parallel),
		handler.WithAllowEmpty(cfg.Export.AllowEmpty),
	)

	return nil
}

// bind binds a flag to a config key, so the flag overrides the config when set.
func (a *app) bind(flags *pflag.FlagSet, key, flag string) {
	if err := a.v.BindPFlag(key, flags.Lookup(flag)); err != nil {
		panic(fmt.Sprintf("binding flag %q: %s", flag, err))
	}
}

// NewRootCmd returns the rdb2csv command with all subcommands.
func NewRootCmd() *cobra.Command {
	a := &app{
		v: viper.New(),
	}

	root := &cobra.Command{
		Use:   "rdb2csv",
		Short: "Combine logdata tables of many database files into one table",
		Long: `rdb2csv reads the logdata table of every given database file, combines
the rows under the union of all columns and shows or exports the result.
Files that can't be read are reported and skipped.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.cfgFile, "config", "", "config file (default: rdb2csv.{yaml,json,toml} in . or $HOME/.config/rdb2csv)")
	flags.String("table", "logdata", "table to read from every source")
	flags.String("adapter", "sqlite", "database adapter used to open sources ("+strings.Join(adapters.Types(), ", ")+")")
	flags.String("extension", ".rdb", "extension of files picked from directories")
	flags.Int("parallel", 1, "number of sources read at the same time")
	flags.String("null-text", core.NullText, "text shown for missing values")
	flags.String("delimiter", ",", "csv field delimiter")
	flags.String("log-level", "info", "log level (debug, info, warn, error)")
	flags.String("log-format", "text", "log format (text, json)")

	for key, flag := range map[string]string{
		"table":         "table",
		"adapter":       "adapter",
		"extension":     "extension",
		"parallel":      "parallel",
		"null_text":     "null-text",
		"csv.delimiter": "delimiter",
		"log.level":     "log-level",
		"log.format":    "log-format",
	} {
		a.bind(flags, key, flag)
	}

	root.AddCommand(
		newExportCmd(a),
		newViewCmd(a),
		newColumnsCmd(a),
	)

	return root
}

// Execute runs the root command and returns the process exit code.
func Execute() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	root := NewRootCmd()

	err := root.ExecuteContext(ctx)
	if err != nil {
		fmt.Fprintf(root.ErrOrStderr(), "Error: %s\n", userMessage(err))
		return 1
	}

	return 0
}

func userMessage(err error) string {
	switch {
	case errors.Is(err, core.ErrEmptyDataset):
		return "no data to export"
	case errors.Is(err, core.ErrDestinationUnwritable):
		return fmt.Sprintf("could not write the output file: %s", err)
	default:
		return err.Error()
	}
}

// reportFaults prints a notice for every source that was skipped.
func (a *app) reportFaults(cmd *cobra.Command, faults []core.LoadFault) {
	for _, f := range faults {
		fmt.Fprintf(cmd.ErrOrStderr(), "skipped %s: %s\n", f.Source, a.faultReason(f))
	}
}

func (a *app) faultReason(f core.LoadFault) string {
	switch {
	case errors.Is(f, core.ErrTableMissing):
		return fmt.Sprintf("no %s table", a.cfg.Table)
	case errors.Is(f, os.ErrNotExist):
		return "file does not exist"
	default:
		return f.Err.Error()
	}
}
