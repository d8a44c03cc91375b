package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/steipete/shopsetup/internal/config"
	"github.com/steipete/shopsetup/internal/deps"
	"github.com/steipete/shopsetup/internal/prompt"
	"github.com/steipete/shopsetup/internal/sampledata"
	"github.com/steipete/shopsetup/internal/setup"
)

// cfg is populated from the environment in Execute and overridden by flags.
var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "shopsetup",
	Short: "Interactive setup for the Telegram shop bot backend",
	Long: `shopsetup prepares a checkout of the Telegram shop bot backend.

It asks for the bot token, a JWT secret and the HTTP port, writes them to
.env (an existing .env is never overwritten), installs dependencies when
node_modules is missing, and can seed the database with sample products.`,
	Version:       version,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runSetup,
}

func bindFlags() {
	rootCmd.PersistentFlags().StringVar(&cfg.Dir, "dir", cfg.Dir, "backend checkout directory")
	rootCmd.PersistentFlags().StringVar(&cfg.EnvFile, "env-file", cfg.EnvFile, "environment file, relative to --dir")
	rootCmd.PersistentFlags().StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level (debug, info, warn, error)")
	rootCmd.Flags().StringVar(&cfg.DepsDir, "deps-dir", cfg.DepsDir, "installed-dependencies marker directory, relative to --dir")
	rootCmd.Flags().StringVar(&cfg.InstallCmd, "install-cmd", cfg.InstallCmd, "command that installs dependencies")

	rootCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		initLogger(cfg.LogLevel)
	}

	bindCheckFlags()
	bindSeedFlags()

	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(seedCmd)
}

// Execute is the entry point called by main.
func Execute() {
	cfg = config.Load()
	bindFlags()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, rootCmd, os.Stderr)
	stop()
	if code != 0 {
		os.Exit(code)
	}
}

// run executes root and maps the outcome, including a panic, to an exit code.
func run(ctx context.Context, root *cobra.Command, stderr io.Writer) (code int) {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(stderr, "❌ Setup failed: %v\n", r)
			code = 1
		}
	}()

	cmd, err := root.ExecuteContextC(ctx)
	return exitCode(root, cmd, err, stderr)
}

// exitCode prints at most one diagnostic line for err. A *setup.FatalError
// has already been reported by the wizard and is not printed again.
func exitCode(root, cmd *cobra.Command, err error, stderr io.Writer) int {
	if err == nil {
		return 0
	}
	var fatal *setup.FatalError
	switch {
	case errors.As(err, &fatal):
	case cmd == nil || cmd == root:
		fmt.Fprintf(stderr, "❌ Setup failed: %v\n", err)
	default:
		fmt.Fprintf(stderr, "❌ %s failed: %v\n", cmd.Name(), err)
	}
	return 1
}

func runSetup(cmd *cobra.Command, args []string) error {
	argv, err := deps.ParseCommand(cfg.InstallCmd)
	if err != nil {
		return err
	}

	b, err := setup.New(setup.Options{
		EnvPath:  cfg.EnvPath(),
		DepsPath: cfg.DepsPath(),
		Prompter: prompt.New(os.Stdin, os.Stdout),
		Installer: &deps.Installer{
			Command: argv,
			Dir:     cfg.Dir,
			Stdout:  os.Stdout,
			Stderr:  os.Stderr,
		},
		Seeder: &sampledata.EnvSeeder{
			EnvFile: cfg.EnvPath(),
			BaseDir: cfg.Dir,
			Logger:  slog.Default(),
		},
		Out:    cmd.OutOrStdout(),
		Err:    cmd.ErrOrStderr(),
		Logger: slog.Default(),
	})
	if err != nil {
		return err
	}
	return b.Run(cmd.Context())
}

func initLogger(level string) {
	var lvl slog.Level
	switch strings.ToLower(level) {
	case "debug":
		lvl = slog.LevelDebug
	case "info":
		lvl = slog.LevelInfo
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelWarn
	}

	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl})
	slog.SetDefault(slog.New(handler))
}
