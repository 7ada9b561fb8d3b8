// Package cli holds the tui-smartlist command line: the interactive
// editor and presenter plus scriptable subcommands.
package cli

import (
	"fmt"
	"strings"

	"github.com/pstuifzand/tui-smartlist/internal/app"
	"github.com/pstuifzand/tui-smartlist/internal/config"
	"github.com/pstuifzand/tui-smartlist/internal/iconset"
	"github.com/pstuifzand/tui-smartlist/internal/model"
	"github.com/pstuifzand/tui-smartlist/internal/storage"
	"github.com/pstuifzand/tui-smartlist/internal/ui"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// Options are the flags shared by every command
type Options struct {
	ConfigPath string
	LogLevel   string
	Sets       map[string]string
}

// NewRootCmd builds the command tree
func NewRootCmd() *cobra.Command {
	opts := &Options{}
	var present, debug, noSocket, noWatch bool

	cmd := &cobra.Command{
		Use:          "tui-smartlist [file]",
		Short:        "Edit and present hierarchical smart lists in the terminal",
		Version:      ui.Version,
		SilenceUsage: true,
		Args:         cobra.MaximumNArgs(1),
		Example: strings.TrimSpace(`
  # Edit a list
  tui-smartlist plan.json

  # Present it step by step
  tui-smartlist --present --set reveal_mode=one-by-one-focus plan.json

  # Print the list with numbering
  tui-smartlist render --set show_numbering=true plan.json
`),
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setLogLevel(opts.LogLevel)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ""
			if len(args) > 0 {
				path = args[0]
			}
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			application, err := app.NewApp(app.Options{
				FilePath: path,
				Present:  present,
				Config:   cfg,
				Socket:   !noSocket,
				Watch:    !noWatch,
			})
			if err != nil {
				return err
			}
			application.SetDebugMode(debug)
			return application.Run()
		},
	}

	cmd.PersistentFlags().StringVar(&opts.ConfigPath, "config", "", "Path to config.toml (default: ~/.config/tui-smartlist/config.toml)")
	cmd.PersistentFlags().StringVar(&opts.LogLevel, "log-level", "", "Log level (debug|info|warn|error)")
	cmd.PersistentFlags().StringToStringVar(&opts.Sets, "set", nil, "Override a list setting for this run (key=value)")
	cmd.Flags().BoolVarP(&present, "present", "p", false, "Start in present mode")
	cmd.Flags().BoolVar(&debug, "debug", false, "Show key events in the status line")
	cmd.Flags().BoolVar(&noSocket, "no-socket", false, "Do not listen on the control socket")
	cmd.Flags().BoolVar(&noWatch, "no-watch", false, "Do not reload the file when it changes on disk")

	cmd.AddCommand(newRenderCmd(opts))
	cmd.AddCommand(newProgressCmd(opts))
	cmd.AddCommand(newSearchCmd(opts))
	cmd.AddCommand(newExportCmd(opts))
	cmd.AddCommand(newImportCmd(opts))
	cmd.AddCommand(NewDiffCmd())
	cmd.AddCommand(newSendCmd())

	return cmd
}

// Execute runs the root command
func Execute() error {
	return NewRootCmd().Execute()
}

func setLogLevel(level string) error {
	if level == "" {
		return nil
	}
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("invalid log level: %w", err)
	}
	logrus.SetLevel(lvl)
	return nil
}

// loadConfig reads the config file and applies --set overrides
func (o *Options) loadConfig() (*config.Config, error) {
	var cfg *config.Config
	var err error
	if o.ConfigPath != "" {
		cfg, err = config.LoadFromFile(o.ConfigPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if o.LogLevel == "" && cfg.LogLevel != "" {
		if err := setLogLevel(cfg.LogLevel); err != nil {
			logrus.Warnf("Ignoring log_level from config: %v", err)
		}
	}
	for key, value := range o.Sets {
		cfg.Set(key, value)
	}
	return cfg, nil
}

// listFile is a list loaded for a one-shot command
type listFile struct {
	store    *storage.FileStore
	doc      *model.Document
	config   model.Config
	registry *iconset.MapRegistry
}

// loadList reads path, which may be a backup, and resolves its settings
func (o *Options) loadList(path string) (*listFile, error) {
	cfg, err := o.loadConfig()
	if err != nil {
		return nil, err
	}
	lf := &listFile{registry: iconset.Builtin(), store: storage.NewStore(path)}
	iconset.LoadUserSets(lf.registry)

	if !storage.IsBackupFile(path) && !lf.store.FileExists() {
		return nil, fmt.Errorf("file not found: %s", path)
	}
	if lf.doc, err = lf.store.Load(); err != nil {
		return nil, fmt.Errorf("failed to load list: %w", err)
	}

	lf.config, err = cfg.ApplyTo(cfg.List.Merge(lf.doc.Config))
	if err != nil {
		return nil, err
	}
	return lf, nil
}
