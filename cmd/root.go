// ABOUTME: Root command for the dexshare CLI
// ABOUTME: Handles global flags, configuration, and client construction

package cmd

import (
	"github.com/spf13/cobra"

	"github.com/loopnlearn/dexshare/config"
	"github.com/loopnlearn/dexshare/share"
)

var (
	serverURL  string
	region     string
	jsonOutput bool
)

// rootCmd is the base command
var rootCmd = &cobra.Command{
	Use:   "dexshare",
	Short: "CLI for Dexcom Share glucose monitoring",
	Long: `dexshare fetches glucose readings from the Dexcom Share web service.

Credentials and settings come from the environment (or a .env file):
  SHARE_USERNAME      Share account name
  SHARE_PASSWORD      Share account password
  SHARE_REGION        us or ous (default: us)
  SHARE_SERVER_URL    Explicit server base URL (overrides SHARE_REGION)
  SHARE_HTTP_TIMEOUT  Request timeout in seconds (default: 30)
  SHARE_MAX_RETRIES   Re-login retries per fetch (default: 2)
  SHARE_ALL_PROXY     Optional ssh+socks5 proxy URL

Missing credentials are prompted for interactively.`,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", "", "Share server base URL (overrides SHARE_SERVER_URL)")
	rootCmd.PersistentFlags().StringVar(&region, "region", "", "Share region: us or ous (overrides SHARE_REGION)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output JSON instead of human-readable text")
}

// IsJSONOutput returns whether JSON output is requested
func IsJSONOutput() bool {
	return jsonOutput
}

// resolveServerURL picks the server from flag, env URL, or region constant
// (in priority order)
func resolveServerURL(cfg *config.Config) string {
	if serverURL != "" {
		return serverURL
	}
	if cfg.ServerURL != "" {
		return cfg.ServerURL
	}
	r := cfg.Region
	if region != "" {
		r = region
	}
	if r == config.RegionNonUS {
		return share.NonUSServerURL
	}
	return share.USServerURL
}

// newShareClient loads configuration, prompts for missing credentials,
// and constructs a configured Share client.
func newShareClient() (*share.Client, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	if !cfg.HasCredentials() {
		if err := promptCredentials(cfg); err != nil {
			return nil, err
		}
	}

	c, err := share.NewClient(resolveServerURL(cfg), cfg.Username, cfg.Password)
	if err != nil {
		return nil, err
	}
	c.SetTimeout(cfg.Timeout())
	c.SetMaxRetries(cfg.MaxRetries)
	return c, nil
}
