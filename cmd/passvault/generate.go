package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/redeauxlabs/passvault/internal/genpass"
)

var generateLength int

var generateCmd = &cobra.Command{
	Use:   "generate <space> <key>",
	Short: "Create a new entry with a freshly generated random value",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		vlt, entries, closer, err := openVault(cfg, true)
		if err != nil {
			return reportErr("generate", err)
		}
		defer closer()

		main, err := mainPassphrase(cfg)
		if err != nil {
			return reportErr("generate", err)
		}

		value, err := vlt.Generate(entries, main, args[0], args[1], generateLength)
		if err != nil {
			return reportErr("generate", err)
		}
		fmt.Println(value)
		return nil
	},
}

func init() {
	generateCmd.Flags().IntVar(&generateLength, "length", genpass.DefaultLength, "length of the generated password")
	rootCmd.AddCommand(generateCmd)
}
