package main

import (
	"github.com/spf13/cobra"
)

type RandcodeRow struct {
	Identifier string `json:"identifier"`
	RandCode   string `json:"rand_code"`
	ReceivedAt string `json:"received_at"`
}

var callbackURL string

var codeCmd = &cobra.Command{
	Use:   "code",
	Short: "Query the verification-code callback receiver",
}

var codeGetCmd = &cobra.Command{
	Use:   "get <identifier>",
	Short: "Show the code the platform delivered for a send identifier",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		row, err := NewCallbackClient(callbackURL).Randcode(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		return printResult(cmd.OutOrStdout(), *row)
	},
}

func init() {
	codeCmd.PersistentFlags().StringVar(&callbackURL, "callback-url", "http://localhost:8080", "Callback receiver URL")
	codeCmd.AddCommand(codeGetCmd)
	rootCmd.AddCommand(codeCmd)
}
