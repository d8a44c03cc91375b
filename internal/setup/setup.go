// Package setup runs the shop backend's first-time setup wizard.
//
// A run moves through fixed stages in order:
//
//	ConfigCheck -> [CollectInput -> PersistConfig] -> DependencyCheck ->
//	[Install] -> SeedPrompt -> [Seed] -> Report
//
// Only a config write failure or an install failure aborts the run. A
// seeding failure is reported as a warning and the run still succeeds.
package setup

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/steipete/shopsetup/internal/deps"
	"github.com/steipete/shopsetup/internal/envfile"
)

type Stage string

const (
	StageConfigCheck     Stage = "config_check"
	StageCollectInput    Stage = "collect_input"
	StagePersistConfig   Stage = "persist_config"
	StageDependencyCheck Stage = "dependency_check"
	StageInstall         Stage = "install"
	StageSeedPrompt      Stage = "seed_prompt"
	StageSeed            Stage = "seed"
	StageReport          Stage = "report"
)

const (
	PromptBotToken  = "🤖 Enter your Telegram Bot Token (from @BotFather): "
	PromptJWTSecret = "🔐 Enter a JWT secret (or press Enter for default): "
	PromptPort      = "🌐 Enter port number (or press Enter for 3000): "
	PromptSeed      = "\n🌱 Would you like to populate the database with sample products? (y/n): "
)

// Prompter is the interactive channel. The Bootstrapper closes it when Run
// returns.
type Prompter interface {
	Ask(question string) (string, error)
	AskSecret(question string) (string, error)
	Close() error
}

// Installer runs the dependency installation command.
type Installer interface {
	Install(ctx context.Context) (deps.Result, error)
}

// Seeder populates the database with sample data.
type Seeder interface {
	Populate(ctx context.Context) error
}

// SeederFunc adapts a function to Seeder.
type SeederFunc func(ctx context.Context) error

func (f SeederFunc) Populate(ctx context.Context) error { return f(ctx) }

type Options struct {
	EnvPath   string
	DepsPath  string
	Prompter  Prompter
	Installer Installer
	Seeder    Seeder
	Out       io.Writer
	Err       io.Writer
	Logger    *slog.Logger
}

type Bootstrapper struct {
	opts Options
	log  *slog.Logger
}

func New(opts Options) (*Bootstrapper, error) {
	if opts.EnvPath == "" {
		return nil, errors.New("env path is required")
	}
	if opts.DepsPath == "" {
		return nil, errors.New("dependency marker path is required")
	}
	if opts.Prompter == nil {
		return nil, errors.New("prompter is required")
	}
	if opts.Installer == nil {
		return nil, errors.New("installer is required")
	}
	if opts.Out == nil {
		opts.Out = io.Discard
	}
	if opts.Err == nil {
		opts.Err = io.Discard
	}
	log := opts.Logger
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Bootstrapper{opts: opts, log: log}, nil
}

// FatalError marks a failure that has already been reported to the
// operator. Callers should exit non-zero without printing it again.
type FatalError struct {
	Stage Stage
	Err   error
}

func (e *FatalError) Error() string {
	return fmt.Sprintf("%s: %v", e.Stage, e.Err)
}

func (e *FatalError) Unwrap() error { return e.Err }

// Run executes the wizard once. The prompter is closed on every return path.
func (b *Bootstrapper) Run(ctx context.Context) error {
	defer b.opts.Prompter.Close()

	b.say("🛍️ Welcome to Telegram Bot Shop Setup!\n")

	if err := b.ensureConfig(); err != nil {
		return err
	}
	if err := b.ensureDependencies(ctx); err != nil {
		return err
	}
	if err := b.maybeSeed(ctx); err != nil {
		return err
	}
	b.report()
	return nil
}

func (b *Bootstrapper) ensureConfig() error {
	b.enter(StageConfigCheck)
	exists, err := envfile.Exists(b.opts.EnvPath)
	if err != nil {
		return b.fatal(StageConfigCheck, "Error checking environment file", err)
	}
	if exists {
		b.say("✅ Environment file (.env) already exists")
		return nil
	}

	b.say("📝 Creating environment file...")
	b.enter(StageCollectInput)
	settings, err := b.collect()
	if err != nil {
		return err
	}

	b.enter(StagePersistConfig)
	if err := envfile.Write(b.opts.EnvPath, settings); err != nil {
		return b.fatal(StagePersistConfig, "Error creating environment file", err)
	}
	b.say("✅ Environment file created successfully")
	return nil
}

func (b *Bootstrapper) collect() (envfile.Settings, error) {
	token, err := b.opts.Prompter.Ask(PromptBotToken)
	if err != nil {
		return envfile.Settings{}, err
	}
	secret, err := b.opts.Prompter.AskSecret(PromptJWTSecret)
	if err != nil {
		return envfile.Settings{}, err
	}
	port, err := b.opts.Prompter.Ask(PromptPort)
	if err != nil {
		return envfile.Settings{}, err
	}
	return envfile.NewSettings(
		envfile.BotTokenValue(token),
		envfile.JWTSecretOrDefault(secret),
		envfile.PortOrDefault(port),
	), nil
}

func (b *Bootstrapper) ensureDependencies(ctx context.Context) error {
	b.enter(StageDependencyCheck)
	installed, err := deps.Installed(b.opts.DepsPath)
	if err != nil {
		return b.fatal(StageDependencyCheck, "Error checking dependencies", err)
	}
	if installed {
		b.say("✅ Dependencies already installed")
		return nil
	}

	b.enter(StageInstall)
	b.say("\n📦 Installing dependencies...")
	res, err := b.opts.Installer.Install(ctx)
	if err == nil {
		err = res.Err()
	}
	if err != nil {
		return b.fatal(StageInstall, "Error installing dependencies", err)
	}
	b.log.Debug("dependencies installed", "duration", res.Duration)
	b.say("✅ Dependencies installed successfully")
	return nil
}

func (b *Bootstrapper) maybeSeed(ctx context.Context) error {
	b.enter(StageSeedPrompt)
	answer, err := b.opts.Prompter.Ask(PromptSeed)
	if err != nil {
		return err
	}
	if !IsAffirmative(answer) {
		return nil
	}

	b.enter(StageSeed)
	b.say("\n📊 Populating database with sample data...")
	if b.opts.Seeder == nil {
		b.warn("Error populating sample data", errors.New("no sample data routine configured"))
		return nil
	}
	if err := b.populate(ctx); err != nil {
		b.warn("Error populating sample data", err)
		return nil
	}
	b.say("✅ Sample data populated successfully")
	return nil
}

// populate turns a panicking seeder into an ordinary error.
func (b *Bootstrapper) populate(ctx context.Context) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return b.opts.Seeder.Populate(ctx)
}

func (b *Bootstrapper) report() {
	b.enter(StageReport)
	b.say("\n🎉 Setup completed successfully!")
	b.say("\n📋 Next steps:")
	b.say("1. Start the bot: npm run dev")
	b.say("2. Access admin panel: http://localhost:3000/admin")
	b.say("3. Test your bot on Telegram")
	b.say("\n📚 For more information, check the README.md file")
}

// IsAffirmative accepts "y" or "yes" in any letter case.
func IsAffirmative(answer string) bool {
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true
	}
	return false
}

func (b *Bootstrapper) enter(s Stage) {
	b.log.Debug("setup stage", "stage", string(s))
}

func (b *Bootstrapper) say(line string) {
	fmt.Fprintln(b.opts.Out, line)
}

func (b *Bootstrapper) warn(msg string, err error) {
	b.log.Debug("sample data failed", "err", err)
	fmt.Fprintf(b.opts.Err, "❌ %s: %v\n", msg, err)
}

func (b *Bootstrapper) fatal(s Stage, msg string, err error) error {
	fmt.Fprintf(b.opts.Err, "❌ %s: %v\n", msg, err)
	return &FatalError{Stage: s, Err: err}
}
