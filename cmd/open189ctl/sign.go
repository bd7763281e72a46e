package main

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/lzjever/open189/internal/config"
	"github.com/lzjever/open189/pkg/sig"
)

type SignRow struct {
	Canonical string            `json:"canonical"`
	Hex       string            `json:"hex"`
	Base64    string            `json:"base64"`
	Params    map[string]string `json:"params,omitempty"`
}

var (
	signSecret  string
	signPrepare bool
)

var signCmd = &cobra.Command{
	Use:   "sign [key=value ...]",
	Short: "Compute the request signature of a parameter set",
	Long: `Compute the HMAC-SHA1 signature of the given parameters. The secret is
--secret, or OPEN189_APP_SECRET. With --prepare the parameters are first
completed with app_id, access_token and timestamp as a signed call would be.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		values, err := parseKV(args)
		if err != nil {
			return err
		}
		params := sig.FromMap(values)

		secret, err := resolveSecret()
		if err != nil {
			return err
		}

		var row SignRow
		if signPrepare {
			// The client signs with the same secret as the lines below.
			c, log, err := newAPIClientWithSecret(secret)
			if err != nil {
				return err
			}
			defer log.Sync()
			params = c.Prepare(params)
			row.Params = params.Present()
		}

		unsigned := params.Without(sig.KeySign)
		row.Canonical = string(sig.Canonicalize(unsigned))
		row.Hex = sig.SignHex(unsigned, secret)
		row.Base64 = sig.Sign(unsigned, secret)
		return printResult(cmd.OutOrStdout(), row)
	},
}

func resolveSecret() ([]byte, error) {
	if signSecret != "" {
		return []byte(signSecret), nil
	}
	if err := config.LoadEnvFile(envFile); err != nil {
		return nil, err
	}
	if s := os.Getenv("OPEN189_APP_SECRET"); s != "" {
		return []byte(s), nil
	}
	return nil, fmt.Errorf("no secret: pass --secret or set OPEN189_APP_SECRET")
}

// parseKV parses key=value arguments. The value may contain '='; later
// duplicates win.
func parseKV(args []string) (map[string]string, error) {
	out := make(map[string]string, len(args))
	for _, arg := range args {
		k, v, ok := strings.Cut(arg, "=")
		if !ok || k == "" {
			return nil, fmt.Errorf("invalid parameter %q: want key=value", arg)
		}
		out[k] = v
	}
	return out, nil
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func init() {
	signCmd.Flags().StringVar(&signSecret, "secret", "", "Signing secret, overrides OPEN189_APP_SECRET")
	signCmd.Flags().BoolVar(&signPrepare, "prepare", false, "Add app_id, access_token and timestamp before signing")
	rootCmd.AddCommand(signCmd)
}
