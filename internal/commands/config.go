package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"taskdeck/internal/config"
	"taskdeck/internal/exitcode"
)

func init() {
	Register(&ConfigCmd{})
}

// ConfigCmd shows the effective configuration or persists new endpoints.
type ConfigCmd struct {
	api  string
	auth string
}

func (c *ConfigCmd) Name() string      { return "config" }
func (c *ConfigCmd) Aliases() []string { return nil }
func (c *ConfigCmd) Synopsis() string  { return "Show or change remote endpoints" }
func (c *ConfigCmd) Usage() string     { return "taskdeck config [--api <url>] [--auth <url>]" }
func (c *ConfigCmd) NeedsAuth() bool   { return false }

func (c *ConfigCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.api, "api", "", "task API base URL to save")
	fs.StringVar(&c.auth, "auth", "", "identity provider base URL to save")
}

func (c *ConfigCmd) Run(ctx context.Context, cfg *config.Config, env *Env, args []string, out, errOut io.Writer) int {
	if c.api == "" && c.auth == "" {
		credential := "none"
		if cfg.HasToken() {
			credential = "stored"
		}
		fmt.Fprintf(out, "config:     %s\n", cfg.Dir)
		fmt.Fprintf(out, "api_url:    %s\n", cfg.APIURL)
		fmt.Fprintf(out, "auth_url:   %s\n", cfg.AuthURL)
		fmt.Fprintf(out, "credential: %s\n", credential)
		return exitcode.Success
	}

	if c.api != "" {
		cfg.APIURL = c.api
	}
	if c.auth != "" {
		cfg.AuthURL = c.auth
	}
	if err := cfg.SaveSettings(); err != nil {
		fmt.Fprintf(errOut, "error: failed to save settings: %v\n", err)
		return exitcode.UserError
	}

	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}
