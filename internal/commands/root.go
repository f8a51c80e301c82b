// Package commands holds the utools command line: the terminal UI and
// one-shot subcommands, all talking to the API through toolapi.
package commands

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/GregMSThompson/utools/internal/catalog"
	"github.com/GregMSThompson/utools/internal/config"
	"github.com/GregMSThompson/utools/internal/toolapi"
	"github.com/GregMSThompson/utools/pkg/logger"
)

var (
	successText = color.New(color.FgGreen).SprintFunc()
	failureText = color.New(color.FgRed).SprintFunc()
	headerText  = color.New(color.Bold).SprintFunc()
)

// app is the state shared by every subcommand once flags are parsed.
type app struct {
	v       *viper.Viper
	cfgFile string
	logFile string

	cfg     *config.Config
	log     *slog.Logger
	logSink io.Closer
	catalog *catalog.Catalog
}

func NewRootCmd() *cobra.Command {
	a := &app{v: viper.New(), catalog: catalog.Default()}

	root := &cobra.Command{
		Use:           "utools",
		Short:         "utools: small developer tools backed by the u-tools API",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.load()
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if a.logSink != nil {
				return a.logSink.Close()
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runUI(cmd, a)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVarP(&a.cfgFile, "config", "c", "", "config file (yaml)")
	flags.StringVar(&a.logFile, "log-file", "", "append JSON logs to this file")
	flags.String("api-url", "", "base URL of the u-tools API")
	flags.String("log-level", "", "log level (debug, info, warn, error)")
	_ = a.v.BindPFlag("api_base_url", flags.Lookup("api-url"))
	_ = a.v.BindPFlag("log_level", flags.Lookup("log-level"))

	root.AddCommand(
		newUICmd(a),
		newConvertCmd(a),
		newPingCmd(a),
		newToolsCmd(a),
	)
	return root
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	root := NewRootCmd()
	if err := root.Execute(); err != nil {
		fmt.Fprintln(root.ErrOrStderr(), failureText("Error:"), err)
		os.Exit(1)
	}
}

func (a *app) load() error {
	cfg, err := config.Load(a.v, a.cfgFile)
	if err != nil {
		return err
	}
	a.cfg = cfg

	// stdout belongs to the UI; logs go to a file or nowhere
	var sink io.Writer = io.Discard
	if a.logFile != "" {
		f, err := os.OpenFile(a.logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		a.logSink = f
		sink = f
	}
	a.log = logger.New(cfg.LogLevel, logger.NewSeverityHandlerTo(sink))
	return nil
}

// client returns an API client scoped to the REST group of tool id.
func (a *app) client(id string) (*toolapi.Client, error) {
	tool, ok := a.catalog.Get(id)
	if !ok {
		return nil, fmt.Errorf("tool %q is not in the catalog", id)
	}
	return toolapi.New(a.cfg.APIBaseURL, tool.BasePath, toolapi.WithLogger(a.log)), nil
}
