// Package cli is the tasktracker command line: the TUI by default, plus
// subcommands to manage the session and tasks from scripts.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/td0m/tasktracker/internal/app"
	"github.com/td0m/tasktracker/internal/config"
	"github.com/td0m/tasktracker/internal/logging"
	"github.com/td0m/tasktracker/pkg/kv"
	"go.uber.org/zap"
)

// options are the global flags
type options struct {
	configPath string
	backend    string
	path       string
	ephemeral  bool
	verbose    bool
}

func NewRootCmd(version string) *cobra.Command {
	o := &options{}
	root := &cobra.Command{
		Use:   "tasktracker",
		Short: "A personal task tracker",
		Long: `tasktracker keeps a list of tasks with priorities, categories and due dates.

Run without a command to open the interactive UI.`,
		RunE:          func(cmd *cobra.Command, args []string) error { return runUI(cmd, o) },
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       version,
	}

	flags := root.PersistentFlags()
	flags.StringVar(&o.configPath, "config", "", "config file (default: user and project config.yaml)")
	flags.StringVar(&o.backend, "backend", "", "store backend: file, sqlite, redis or memory")
	flags.StringVar(&o.path, "path", "", "store file for the file and sqlite backends")
	flags.BoolVar(&o.ephemeral, "ephemeral", false, "keep everything in memory, nothing is saved")
	flags.BoolVarP(&o.verbose, "verbose", "v", false, "log to stderr")

	root.AddCommand(
		newUICmd(o),
		newLoginCmd(o),
		newLogoutCmd(o),
		newWhoamiCmd(o),
		newAddCmd(o),
		newListCmd(o),
		newEditCmd(o),
		newToggleCmd(o),
		newRmCmd(o),
		newSeedCmd(o),
		newClearCmd(o),
		newConfigCmd(o),
	)
	return root
}

// Execute runs the command line and prints any error
func Execute(version string) error {
	if err := NewRootCmd(version).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return err
	}
	return nil
}

// loadConfig reads the configuration and applies the global flags over it
func (o *options) loadConfig() (*config.Config, error) {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return nil, err
	}
	if o.backend != "" {
		cfg.Store.Backend = o.backend
	}
	if o.path != "" {
		cfg.Store.Path = o.path
	}
	if o.ephemeral {
		cfg.Store.Backend = string(kv.BackendMemory)
	}
	if o.verbose {
		cfg.Log.Development = true
		cfg.Log.Level = "debug"
	}
	return cfg, nil
}

// logger logs to stderr with --verbose, to the configured file otherwise,
// or nowhere. The TUI always logs to a file since it owns the terminal.
func (o *options) logger(cfg *config.Config, tui bool) (*zap.Logger, error) {
	c := cfg.Log
	switch {
	case tui:
		if c.File == "" {
			c.File = config.DefaultLogFile()
		}
	case o.verbose:
		c.File = ""
	case c.File == "":
		return zap.NewNop(), nil
	}
	return logging.New(c)
}

// open builds the app for one command; done must be called afterwards
func (o *options) open(cmd *cobra.Command, tui bool) (a *app.App, done func(), err error) {
	cfg, err := o.loadConfig()
	if err != nil {
		return nil, nil, err
	}
	log, err := o.logger(cfg, tui)
	if err != nil {
		return nil, nil, err
	}
	a, err = app.New(cfg, log)
	if err != nil {
		logging.Sync(log)
		return nil, nil, err
	}
	if !tui {
		for _, d := range a.Diagnostics() {
			fmt.Fprintf(cmd.ErrOrStderr(), "warning: could not read %s, using defaults: %v\n", d.Key, d.Err)
		}
	}
	return a, func() {
		if err := a.Close(); err != nil {
			log.Warn("closing store", zap.Error(err))
		}
		logging.Sync(log)
	}, nil
}
