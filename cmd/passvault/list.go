package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Print every space/key pair in the vault",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		vlt, entries, closer, err := openVault(cfg, false)
		if err != nil {
			return reportErr("list", err)
		}
		defer closer()

		main, err := mainPassphrase(cfg)
		if err != nil {
			return reportErr("list", err)
		}

		skipped, err := vlt.List(entries, main, func(space, key string) {
			fmt.Printf("%s/%s\n", space, key)
		})
		if err != nil {
			return reportErr("list", err)
		}
		for _, s := range skipped {
			slog.Warn("entry could not be decrypted, skipping", "index", s.EntryIndex, "error", s.Err)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
}
