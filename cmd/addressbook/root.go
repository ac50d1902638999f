// Root command for the addressbook CLI.
package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mesh-intelligence/addressbook/internal/logging"
	"github.com/mesh-intelligence/addressbook/internal/paths"
	"github.com/mesh-intelligence/addressbook/pkg/types"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// exitError attaches a process exit code to a command failure.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }
func (e *exitError) Unwrap() error { return e.err }

func userError(err error) error { return &exitError{code: exitUserError, err: err} }
func sysError(err error) error  { return &exitError{code: exitSysError, err: err} }

// rootFlags holds global flag values accessible to all subcommands.
type rootFlags struct {
	configDir string
	dataDir   string
	backend   string
	verbose   bool
}

// app is the state built by the root command before any subcommand runs.
type app struct {
	flags     rootFlags
	configDir string
	cfg       types.Config
	logLevel  string
	logger    *zap.Logger
	store     types.Store
	in        io.Reader
}

// newRootCmd creates the top-level "addressbook" command with global flags
// and all subcommands registered. Without a subcommand it runs an
// interactive session reading commands from in.
func newRootCmd(in io.Reader, out io.Writer) *cobra.Command {
	a := &app{in: in, logger: zap.NewNop()}

	root := &cobra.Command{
		Use:   "addressbook",
		Short: "A command-line contact manager",
		Long: `addressbook stores names, phone numbers and birthdays, reports upcoming
birthdays, and keeps its contacts on disk between sessions.

Run without arguments to start an interactive session.`,
		Version:       Version,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Name() == "version" {
				return nil
			}
			return a.setup()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = a.logger.Sync()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runSession(cmd.OutOrStdout())
		},
	}
	root.SetOut(out)
	root.SetIn(in)

	// Global persistent flags.
	root.PersistentFlags().StringVar(&a.flags.configDir, "config-dir", "", "configuration directory (default: platform config dir)")
	root.PersistentFlags().StringVar(&a.flags.dataDir, "data-dir", "", "data directory (default: platform data dir)")
	root.PersistentFlags().StringVar(&a.flags.backend, "backend", "", "storage backend: jsonl or sqlite (overrides config.yaml)")
	root.PersistentFlags().BoolVarP(&a.flags.verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(newVersionCmd())
	root.AddCommand(newInitCmd(a))
	root.AddCommand(newExecCmd(a))

	return root
}

// setup resolves directories, loads config.yaml, and builds the logger and
// store.
func (a *app) setup() error {
	configDir, err := paths.ResolveConfigDir(a.flags.configDir)
	if err != nil {
		return sysError(fmt.Errorf("resolve config dir: %w", err))
	}
	a.configDir = configDir

	v, err := loadConfig(configDir)
	if err != nil {
		return sysError(fmt.Errorf("load config: %w", err))
	}

	cfg := types.Config{
		Backend:        v.GetString(cfgKeyBackend),
		BirthdayWindow: v.GetInt(cfgKeyBirthdayWindow),
	}
	if a.flags.backend != "" {
		cfg.Backend = a.flags.backend
	}
	cfg.DataDir, err = paths.ResolveDataDir(a.flags.dataDir, v.GetString(cfgKeyDataDir))
	if err != nil {
		return sysError(fmt.Errorf("resolve data dir: %w", err))
	}
	if err := cfg.Validate(); err != nil {
		return userError(fmt.Errorf("invalid config: %w", err))
	}
	a.cfg = cfg
	a.logLevel = v.GetString(cfgKeyLogLevel)

	logger, err := logging.New(a.logLevel, a.flags.verbose)
	if err != nil {
		return userError(err)
	}
	a.logger = logger
	a.logger.Debug("configuration loaded",
		zap.String("config_dir", configDir),
		zap.String("data_dir", cfg.DataDir),
		zap.String("backend", cfg.Backend),
		zap.Int("birthday_window", cfg.BirthdayWindow))

	a.store = openStore(cfg, logger)
	return nil
}
