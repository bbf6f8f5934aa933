// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the datafix CLI.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/datafix/internal/effects"
	"github.com/pdiddy/datafix/internal/secrets"
	"github.com/pdiddy/datafix/internal/store"
	"github.com/pdiddy/datafix/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// loadedSecrets holds credentials loaded from the secrets directory at startup.
var loadedSecrets map[string]string

const (
	defaultServerURL = "http://localhost:5000"
	defaultUserAgent = "datafix/0.1"
)

// rootCmd is the base command for the datafix CLI.
var rootCmd = &cobra.Command{
	Use:   "datafix",
	Short: "Submit datafix packages and download the generated scripts",
	Long: `datafix sends .pkg datafix packages to the conversion service, saves the
generated script it returns, and keeps a local history of submissions.

Use "upload" to convert packages, "feedback" to send comments to the service
owners, and "theme" to switch between dark and light output.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		s, err := secrets.Load(viper.GetString("secrets.dir"))
		if err != nil {
			return err
		}
		loadedSecrets = s
		if len(s) > 0 && viper.GetBool("verbose") {
			keys := make([]string, 0, len(s))
			for k := range s {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			fmt.Fprintf(os.Stderr, "Loaded secrets: %v\n", keys)
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "config file (default: ./datafix.yaml or ~/.config/datafix/datafix.yaml)")
	pf.String("server", defaultServerURL, "base URL of the conversion service")
	pf.String("state-dir", "", "directory for preferences and history (default ~/.config/datafix)")
	pf.String("secrets-dir", ".secrets", "directory of secret files")
	pf.Duration("timeout", 0, "HTTP request timeout (default none)")
	pf.Int("max-retries", 0, "retries on HTTP 429 (default none)")
	pf.Bool("no-effects", false, "disable spinner and typing effects")
	pf.BoolP("verbose", "v", false, "log debug detail to stderr")

	bindFlag("server.url", "server")
	bindFlag("state.dir", "state-dir")
	bindFlag("secrets.dir", "secrets-dir")
	bindFlag("http.timeout", "timeout")
	bindFlag("http.max_retries", "max-retries")
	bindFlag("no_effects", "no-effects")
	bindFlag("verbose", "verbose")

	viper.SetDefault("http.user_agent", defaultUserAgent)
}

func bindFlag(key, flag string) {
	if err := viper.BindPFlag(key, rootCmd.PersistentFlags().Lookup(flag)); err != nil {
		panic(err)
	}
}

func initConfig() {
	// A .env file is optional.
	_ = godotenv.Load()

	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("datafix")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "datafix"))
		}
	}

	viper.SetEnvPrefix("DATAFIX")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil && viper.GetBool("verbose") {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// loadConfig decodes the merged flag, env and file settings.
func loadConfig(v *viper.Viper) (types.Config, error) {
	var cfg types.Config
	if err := v.Unmarshal(&cfg); err != nil {
		return types.Config{}, fmt.Errorf("decoding config: %w", err)
	}
	if cfg.State.Dir == "" {
		cfg.State.Dir = defaultStateDir()
	}
	if cfg.Output.Dir == "" {
		cfg.Output.Dir = "."
	}
	return cfg, nil
}

// clientConfig assembles the service client settings from cfg and secrets.
func clientConfig(cfg types.Config) types.ClientConfig {
	return cfg.Client(secrets.Lookup(loadedSecrets, secrets.TokenKey, cfg.Token))
}

func defaultStateDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".datafix"
	}
	return filepath.Join(home, ".config", "datafix")
}

func openStore(cfg types.Config) (*store.Store, error) {
	return store.NewStore(cfg.State)
}

// newLogger returns the logger for errors the user is not shown directly.
func newLogger(w io.Writer) *slog.Logger {
	level := slog.LevelError
	if viper.GetBool("verbose") {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// chooseEffects picks decorative output for the saved theme.
func chooseEffects(ctx context.Context, st *store.Store) effects.Effects {
	if viper.GetBool("no_effects") || !isTerminal(os.Stdout) {
		return effects.None()
	}
	theme, err := st.Theme(ctx)
	if err != nil {
		theme = store.DefaultTheme
	}
	return effects.Terminal(theme == store.ThemeDark)
}

func isTerminal(f *os.File) bool {
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice != 0
}

const welcomeText = `Welcome to datafix. Packages you upload are converted by the service and the
generated script is saved locally. Always review a script before running it.`

// showWelcomeOnce prints the welcome notice the first time any command that
// talks to the service runs, then remembers that it was seen.
func showWelcomeOnce(ctx context.Context, st *store.Store, fx effects.Effects, w io.Writer, logger *slog.Logger) {
	seen, err := st.ModalSeen(ctx)
	if err != nil {
		logger.Debug("reading welcome flag", "error", err)
		return
	}
	if seen {
		return
	}
	fx.Type(w, welcomeText)
	fmt.Fprintln(w)
	if err := st.MarkModalSeen(ctx); err != nil {
		logger.Debug("marking welcome seen", "error", err)
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
