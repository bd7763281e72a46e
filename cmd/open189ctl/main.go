package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/lzjever/open189/internal/config"
	"github.com/lzjever/open189/internal/observability"
	"github.com/lzjever/open189/pkg/open189"
)

var (
	envFile     string
	output      string
	logLevel    string
	accessToken string
)

var rootCmd = &cobra.Command{
	Use:   "open189ctl",
	Short: "open189ctl - command line client for the open.189.cn API",
	Long: `open189ctl calls the open.189.cn platform: OAuth tokens, verification and
template SMS, request signing, and the verification-code callback receiver.

Credentials are read from OPEN189_* environment variables, after the file
named by --env-file.`,
	SilenceUsage: true,
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "Environment file loaded before OPEN189_* variables are read")
	rootCmd.PersistentFlags().StringVarP(&output, "output", "o", "table", "Output format (table, json)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level, overrides OPEN189_LOG_LEVEL")
	rootCmd.PersistentFlags().StringVar(&accessToken, "access-token", "", "Access token, overrides OPEN189_ACCESS_TOKEN")
}

// newAPIClient builds a platform client from the environment and flags.
func newAPIClient() (*open189.Client, *zap.Logger, error) {
	return newAPIClientWithSecret(nil)
}

// newAPIClientWithSecret is newAPIClient with the configured secret
// replaced by secret when it is non-nil.
func newAPIClientWithSecret(secret []byte) (*open189.Client, *zap.Logger, error) {
	cfg, err := config.LoadClient(envFile)
	if err != nil {
		return nil, nil, fmt.Errorf("config: %w", err)
	}

	level := cfg.LogLevel
	if logLevel != "" {
		level = logLevel
	}
	log, err := observability.NewLogger(level)
	if err != nil {
		return nil, nil, fmt.Errorf("logger: %w", err)
	}

	opts := []open189.Option{
		open189.WithEndpoints(cfg.Endpoints()),
		open189.WithTimeout(cfg.HTTPTimeout),
		open189.WithLogger(log),
	}
	token := cfg.AccessToken
	if accessToken != "" {
		token = accessToken
	}
	if token != "" {
		opts = append(opts, open189.WithAccessToken(token))
	}
	if secret == nil {
		secret = []byte(cfg.AppSecret)
	}
	return open189.New(cfg.AppID, secret, opts...), log, nil
}

// runAPI runs fn against a configured client and prints its result.
func runAPI(cmd *cobra.Command, fn func(ctx context.Context, c *open189.Client) (interface{}, error)) error {
	c, log, err := newAPIClient()
	if err != nil {
		return err
	}
	defer log.Sync()

	res, err := fn(cmd.Context(), c)
	if err != nil {
		if pe, ok := open189.IsProtocolError(err); ok {
			return fmt.Errorf("platform rejected request (HTTP %d, res_code %d): %s", pe.StatusCode, pe.ResCode, pe.Message)
		}
		return err
	}
	return printResult(cmd.OutOrStdout(), res)
}
