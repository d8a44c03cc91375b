package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/steipete/shopsetup/internal/deps"
	"github.com/steipete/shopsetup/internal/envfile"
	"github.com/steipete/shopsetup/internal/telegram"
)

var (
	probeToken  bool
	botEndpoint string
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Verify an existing setup",
	Long: `Check reads the environment file back and reports any required keys
that are missing, and whether dependencies are installed.

With --probe it also calls the Telegram Bot API getMe method with the
configured token. Setup itself never validates the token.`,
	Args: cobra.NoArgs,
	RunE: runCheck,
}

func bindCheckFlags() {
	checkCmd.Flags().BoolVar(&probeToken, "probe", false, "verify the bot token with the Telegram Bot API")
	checkCmd.Flags().StringVar(&botEndpoint, "bot-api", "", "Bot API endpoint format (default: public Telegram API)")
	checkCmd.Flags().StringVar(&cfg.DepsDir, "deps-dir", cfg.DepsDir, "installed-dependencies marker directory, relative to --dir")
}

func runCheck(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	path := cfg.EnvPath()

	values, err := envfile.Read(path)
	if err != nil {
		return err
	}
	if missing := envfile.Missing(values); len(missing) > 0 {
		return fmt.Errorf("%s is missing %s", path, strings.Join(missing, ", "))
	}
	fmt.Fprintf(out, "✅ %s has all %d required keys\n", path, len(envfile.RequiredKeys))

	installed, err := deps.Installed(cfg.DepsPath())
	if err != nil {
		return err
	}
	if installed {
		fmt.Fprintln(out, "✅ Dependencies installed")
	} else {
		fmt.Fprintf(out, "📦 Dependencies not installed (%s missing)\n", cfg.DepsDir)
	}

	if !probeToken {
		return nil
	}
	info, err := telegram.Probe(values[envfile.KeyBotToken], botEndpoint)
	if err != nil {
		return fmt.Errorf("bot token check failed: %w", err)
	}
	fmt.Fprintf(out, "🤖 Bot token belongs to @%s (id %d)\n", info.UserName, info.ID)
	return nil
}
