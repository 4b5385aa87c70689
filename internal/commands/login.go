package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"taskdeck/internal/config"
	"taskdeck/internal/exitcode"
)

func init() {
	Register(&LoginCmd{})
	Register(&SignupCmd{})
}

// LoginCmd implements the login command.
type LoginCmd struct {
	email    string
	password string
}

// SetCredentials sets email and password (for testing).
func (c *LoginCmd) SetCredentials(email, password string) {
	c.email = email
	c.password = password
}

func (c *LoginCmd) Name() string      { return "login" }
func (c *LoginCmd) Aliases() []string { return nil }
func (c *LoginCmd) Synopsis() string  { return "Sign in to the task store" }
func (c *LoginCmd) Usage() string {
	return "taskdeck login [common flags] --email <email> [--password <password>]"
}
func (c *LoginCmd) NeedsAuth() bool { return false }

func (c *LoginCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.email, "email", "", "")
	fs.StringVar(&c.email, "e", "", "")
	fs.StringVar(&c.password, "password", "", "")
	fs.StringVar(&c.password, "p", "", "")
}

func (c *LoginCmd) Run(ctx context.Context, cfg *config.Config, env *Env, args []string, out, errOut io.Writer) int {
	email, password, code := credentials(c.email, c.password, errOut)
	if code != exitcode.Success {
		return code
	}

	if err := cfg.EnsureDir(); err != nil {
		fmt.Fprintf(errOut, "error: failed to create config directory: %v\n", err)
		return exitcode.AuthError
	}

	session, err := env.Sessions.SignIn(ctx, email, password)
	if err != nil {
		fmt.Fprintf(errOut, "error: sign-in failed: %v\n", err)
		return exitcode.AuthError
	}

	if !cfg.Quiet {
		fmt.Fprintf(out, "signed in as %s\n", session.Email)
	}
	return exitcode.Success
}

// SignupCmd implements the signup command.
type SignupCmd struct {
	email    string
	password string
}

// SetCredentials sets email and password (for testing).
func (c *SignupCmd) SetCredentials(email, password string) {
	c.email = email
	c.password = password
}

func (c *SignupCmd) Name() string      { return "signup" }
func (c *SignupCmd) Aliases() []string { return []string{"register"} }
func (c *SignupCmd) Synopsis() string  { return "Create an account and sign in" }
func (c *SignupCmd) Usage() string {
	return "taskdeck signup [common flags] --email <email> [--password <password>]"
}
func (c *SignupCmd) NeedsAuth() bool { return false }

func (c *SignupCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.email, "email", "", "")
	fs.StringVar(&c.email, "e", "", "")
	fs.StringVar(&c.password, "password", "", "")
	fs.StringVar(&c.password, "p", "", "")
}

func (c *SignupCmd) Run(ctx context.Context, cfg *config.Config, env *Env, args []string, out, errOut io.Writer) int {
	email, password, code := credentials(c.email, c.password, errOut)
	if code != exitcode.Success {
		return code
	}

	if err := cfg.EnsureDir(); err != nil {
		fmt.Fprintf(errOut, "error: failed to create config directory: %v\n", err)
		return exitcode.AuthError
	}

	session, err := env.Sessions.SignUp(ctx, email, password)
	if err != nil {
		fmt.Fprintf(errOut, "error: sign-up failed: %v\n", err)
		return exitcode.AuthError
	}

	if !cfg.Quiet {
		fmt.Fprintf(out, "signed in as %s\n", session.Email)
	}
	return exitcode.Success
}

// credentials validates the email/password pair, reading the password from
// TASKDECK_PASSWORD when the flag is absent so it stays out of shell
// history.
func credentials(email, password string, errOut io.Writer) (string, string, int) {
	email = strings.TrimSpace(email)
	if email == "" {
		fmt.Fprintln(errOut, "error: --email required")
		return "", "", exitcode.UserError
	}
	if password == "" {
		password = os.Getenv("TASKDECK_PASSWORD")
	}
	if password == "" {
		fmt.Fprintln(errOut, "error: --password or TASKDECK_PASSWORD required")
		return "", "", exitcode.UserError
	}
	return email, password, exitcode.Success
}
