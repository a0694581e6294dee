package commands

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"passvault/internal/app"
	"passvault/internal/domain"
)

// options are the global flags shared by every subcommand.
type options struct {
	home       string
	configFile string
	logLevel   string
	username   string
	password   string
}

// cli carries state from the root command to its subcommands.
type cli struct {
	opts   options
	app    *app.App
	in     io.Reader
	reader *bufio.Reader
	out    io.Writer
	errOut io.Writer
}

// Execute runs the CLI against the process arguments and returns the exit code.
func Execute() int {
	root := NewRootCmd(os.Stdin, os.Stdout, os.Stderr)
	if err := root.Execute(); err != nil {
		printError(os.Stderr, err)
		return ExitCode(err)
	}
	return 0
}

// NewRootCmd builds the command tree reading from in and writing to out and errOut.
func NewRootCmd(in io.Reader, out, errOut io.Writer) *cobra.Command {
	c := &cli{in: in, out: out, errOut: errOut}

	root := &cobra.Command{
		Use:           "passvault",
		Short:         "Local credential vault",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			v := viper.New()
			err := app.BindFlags(v, cmd.Flags(), map[string]string{
				"home":      "home",
				"log.level": "log-level",
			})
			if err != nil {
				return err
			}
			cfg, err := app.LoadConfig(v, c.opts.configFile)
			if err != nil {
				return err
			}
			c.app, err = app.New(cfg)
			return err
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if c.app != nil {
				c.app.Close()
			}
		},
	}
	root.SetIn(in)
	root.SetOut(out)
	root.SetErr(errOut)

	pf := root.PersistentFlags()
	pf.StringVar(&c.opts.home, "home", "", "data directory (default ~/.passvault)")
	pf.StringVar(&c.opts.configFile, "config", "", "config file (default <home>/passvault.yaml)")
	pf.StringVar(&c.opts.logLevel, "log-level", "", "log level: debug, info, warn, error")
	pf.StringVarP(&c.opts.username, "user", "u", "", "account to act as")
	pf.StringVarP(&c.opts.password, "password", "p", "", "account password (prompted when omitted)")

	root.AddCommand(
		c.usersCmd(),
		c.registerCmd(),
		c.unregisterCmd(),
		c.setEmailCmd(),
		c.passwdCmd(),
		c.addCmd(),
		c.getCmd(),
		c.rmCmd(),
		c.listCmd(),
		c.exportCmd(),
		c.whoamiCmd(),
	)
	return root
}

// login authenticates --user and returns the session.
func (c *cli) login() (*domain.Session, error) {
	if c.opts.username == "" {
		return nil, errors.WithHint(
			errors.Wrap(domain.ErrInvalidArgument, "--user required"),
			"pass the account name with --user or -u",
		)
	}
	password, err := c.accountPassword("Password: ")
	if err != nil {
		return nil, err
	}
	sess, err := c.app.Registry.Authenticate(domain.Username(c.opts.username), password)
	if err != nil {
		return nil, errors.WithHint(err, "check --user and --password")
	}
	return sess, nil
}

// withSession runs fn with a freshly authenticated session and logs it out afterwards.
func (c *cli) withSession(fn func(sess *domain.Session) error) error {
	sess, err := c.login()
	if err != nil {
		return err
	}
	defer c.app.Vault.Logout(sess)
	return fn(sess)
}

func (c *cli) accountPassword(prompt string) (string, error) {
	if c.opts.password != "" {
		return c.opts.password, nil
	}
	return c.readSecret(prompt)
}

func printError(w io.Writer, err error) {
	fmt.Fprintf(w, "Error: %v\n", err)
	if hint := errors.FlattenHints(err); hint != "" {
		fmt.Fprintf(w, "Hint: %s\n", hint)
	}
}

// ExitCode maps err to a process exit status: 2 for rejected input or
// credentials, 1 for everything else.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.IsAny(err,
		domain.ErrDuplicateUser,
		domain.ErrUnknownUser,
		domain.ErrInvalidCredentials,
		domain.ErrIncorrectPassword,
		domain.ErrNoActiveSession,
		domain.ErrEntryNotFound,
		domain.ErrInvalidArgument,
	):
		return 2
	default:
		return 1
	}
}
