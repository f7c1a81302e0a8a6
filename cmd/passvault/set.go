package main

import (
	"github.com/spf13/cobra"
)

var setCmd = &cobra.Command{
	Use:   "set <space> <key> <value>",
	Short: "Create a new space/key entry",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		vlt, entries, closer, err := openVault(cfg, true)
		if err != nil {
			return reportErr("set", err)
		}
		defer closer()

		main, err := mainPassphrase(cfg)
		if err != nil {
			return reportErr("set", err)
		}

		if err := vlt.Set(entries, main, args[0], args[1], args[2]); err != nil {
			return reportErr("set", err)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(setCmd)
}
