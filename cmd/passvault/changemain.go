package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/redeauxlabs/passvault/internal/promptpass"
)

var changeMainCmd = &cobra.Command{
	Use:   "change-main",
	Short: "Re-encrypt the whole vault under a new main passphrase",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		vlt, entries, closer, err := openVault(cfg, true)
		if err != nil {
			return reportErr("change-main", err)
		}
		defer closer()

		oldMain, err := promptpass.Prompt("current master password: ", cfg.AllowEnvPass)
		if err != nil {
			return reportErr("change-main", err)
		}
		newMain, err := promptpass.Prompt("new master password: ", false)
		if err != nil {
			return reportErr("change-main", err)
		}
		confirmMain, err := promptpass.Prompt("confirm new master password: ", false)
		if err != nil {
			return reportErr("change-main", err)
		}
		if newMain != confirmMain {
			return reportErr("change-main", fmt.Errorf("new master passwords did not match"))
		}

		if err := vlt.ChangeMain(entries, oldMain, newMain); err != nil {
			return reportErr("change-main", err)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(changeMainCmd)
}
