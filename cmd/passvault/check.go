package main

import (
	"errors"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/redeauxlabs/passvault/internal/audit"
	"github.com/redeauxlabs/passvault/internal/vault"
)

var checkCmd = &cobra.Command{
	Use:   "check [space] [key]",
	Short: "Scan the vault for weak or breached passwords",
	Args:  cobra.MaximumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		vlt, entries, closer, err := openVault(cfg, false)
		if err != nil {
			return reportErr("check", err)
		}
		defer closer()

		main, err := mainPassphrase(cfg)
		if err != nil {
			return reportErr("check", err)
		}

		var space, key string
		if len(args) > 0 {
			space = args[0]
		}
		if len(args) > 1 {
			key = args[1]
		}

		dict, err := audit.LoadDictionary(cfg.DictPath)
		if err != nil {
			slog.Debug("dictionary unavailable, falling back to built-in list", "path", cfg.DictPath, "error", err)
			dict, err = audit.LoadDictionary("")
			if err != nil {
				return reportErr("check", err)
			}
		}

		results, skipped, foundWeak, err := vlt.Check(entries, main, space, key, dict, audit.NoopBreachChecker{})
		if err != nil {
			return reportErr("check", err)
		}
		for _, s := range skipped {
			slog.Warn("entry could not be decrypted, skipping", "index", s.EntryIndex, "error", s.Err)
		}

		report := vault.NewCheckReport(space, key, results, skipped)
		if _, err := report.WriteTo(os.Stdout, results); err != nil {
			return reportErr("check", err)
		}

		if foundWeak {
			return errors.New("one or more weak passwords found")
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
}
