package main

import (
	"github.com/spf13/cobra"
)

var updateCmd = &cobra.Command{
	Use:   "update <space> <key> <value>",
	Short: "Replace the value of an existing space/key entry",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		vlt, entries, closer, err := openVault(cfg, true)
		if err != nil {
			return reportErr("update", err)
		}
		defer closer()

		main, err := mainPassphrase(cfg)
		if err != nil {
			return reportErr("update", err)
		}

		if err := vlt.Update(entries, main, args[0], args[1], args[2]); err != nil {
			return reportErr("update", err)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(updateCmd)
}
