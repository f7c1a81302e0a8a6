package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/gofrs/flock"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"hermannm.dev/devlog"

	"github.com/redeauxlabs/passvault/internal/config"
	"github.com/redeauxlabs/passvault/internal/entry"
	"github.com/redeauxlabs/passvault/internal/promptpass"
	"github.com/redeauxlabs/passvault/internal/vault"
	"github.com/redeauxlabs/passvault/internal/vaulterr"
)

var (
	logLevel slog.LevelVar
	v        = viper.New()
)

var rootCmd = &cobra.Command{
	Use:   "passvault",
	Short: "A local, encrypted password vault",
	Long: `passvault stores space/key/value entries under per-entry AES
encryption and HMAC integrity protection, all keyed off one main
passphrase. It never talks to the network.`,
	CompletionOptions: cobra.CompletionOptions{DisableDefaultCmd: true},
}

func init() {
	slog.SetDefault(slog.New(devlog.NewHandler(os.Stderr, &devlog.Options{
		Level: &logLevel,
	})))

	if err := config.BindFlags(v, rootCmd.PersistentFlags()); err != nil {
		fmt.Fprintln(os.Stderr, "binding flags:", err)
		os.Exit(1)
	}
}

// Execute runs the command tree. It is called once from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadConfig resolves the shared configuration and raises the log
// level to debug when requested.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(v)
	if err != nil {
		return nil, err
	}
	if cfg.Debug {
		logLevel.Set(slog.LevelDebug)
	}
	return cfg, nil
}

// openVault acquires a filesystem lock on cfg's data file (shared for
// read-only commands, exclusive for anything that may write), opens
// it, and returns a closer that must run before the process exits.
func openVault(cfg *config.Config, exclusive bool) (*vault.Vault, []*entry.Entry, func(), error) {
	lock := flock.New(cfg.DataPath + ".lock")

	var lockErr error
	if exclusive {
		lockErr = lock.Lock()
	} else {
		lockErr = lock.RLock()
	}
	if lockErr != nil {
		return nil, nil, func() {}, lockErr
	}

	closer := func() {
		if err := lock.Unlock(); err != nil {
			slog.Warn("releasing vault lock", "error", err)
		}
	}

	vlt := &vault.Vault{Path: cfg.DataPath, Jobs: cfg.Jobs, WorkFactor: cfg.WorkFactor}
	entries, err := vlt.Open()
	if err != nil {
		closer()
		return nil, nil, func() {}, err
	}
	return vlt, entries, closer, nil
}

// mainPassphrase prompts for the main passphrase, honoring
// --allow-env-passphrase.
func mainPassphrase(cfg *config.Config) (string, error) {
	return promptpass.Prompt("master password: ", cfg.AllowEnvPass)
}

// reportErr logs err with operation context via slog and translates it
// into the CLI's exit code.
func reportErr(operation string, err error) error {
	slog.Error(operation+" failed", "kind", vaulterr.KindOf(err).String(), "error", err)
	return err
}
