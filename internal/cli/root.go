// Package cli implements the hetznerctl command tree: a root command that
// owns the global flags and the session lifecycle, plus one leaf command
// per server operation. Leaf handlers receive the session by parameter and
// never retain it beyond their own invocation.
package cli

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"hetznerctl/internal/config"
	"hetznerctl/internal/robot"
	"hetznerctl/internal/session"
	"hetznerctl/internal/theme"
)

var (
	cfgFile  string
	flagUser string
	flagPass string
	debug    bool
	noColor  bool

	// sess is owned by the dispatcher: constructed in openSession once
	// credentials resolve, closed exactly once in Execute.
	sess *session.Session

	// Build information, set via ldflags.
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "hetznerctl",
		Short: "Manage dedicated servers through the Robot webservice",
		Long: `hetznerctl manages dedicated servers through the hosting provider's
administrative (Robot) API: list and inspect servers, reboot them, boot the
rescue system and maintain reverse DNS entries.

Credentials come from --username/--password or from the [login] section of
the config file; flags always win. On the first run with flag-supplied
credentials the config file is created for you.`,
		Args:          cobra.ArbitraryArgs,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if debug {
				logrus.SetLevel(logrus.DebugLevel)
			}
			theme.Init(noColor)
			if !needsSession(cmd.Name()) {
				return nil
			}
			return openSession()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return usageErrorf("No command specified")
			}
			return &UnknownCommandError{Name: args[0]}
		},
	}

	root.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default ~/.config/hetznerctl/config.toml)")
	root.PersistentFlags().StringVarP(&flagUser, "username", "u", "", "Robot username (overrides the config file)")
	root.PersistentFlags().StringVarP(&flagPass, "password", "p", "", "Robot password (overrides the config file)")
	root.PersistentFlags().BoolVar(&debug, "debug", false, "log API requests to stderr")
	root.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")

	// Unknown or malformed flags are user-fixable input errors.
	root.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return usageErrorf("%v", err)
	})

	registerCommands(root,
		newListCmd(),
		newShowCmd(),
		newSetNameCmd(),
		newRebootCmd(),
		newRescueCmd(),
		newRdnsCmd(),
		newLoginCmd(),
		newVersionCmd(),
	)
	return root
}

// needsSession reports whether a command talks to the Robot API and
// therefore needs resolved credentials. Everything else (help, completion,
// login, version, the bare root) runs without a session, so an unknown
// command never constructs one.
func needsSession(name string) bool {
	switch name {
	case "list", "show", "set-name", "reboot", "rescue", "rdns":
		return true
	}
	return false
}

// openSession resolves credentials and builds the session for this
// invocation. Precedence: explicit flags over config values; if the config
// file previously had no login section and flags supplied one, the file is
// bootstrapped immediately so the next run works without flags.
func openSession() error {
	store, err := config.Load(cfgFile)
	if err != nil {
		return &ConfigError{msg: "loading config", err: err}
	}

	user, pass := store.Credentials()
	if flagUser != "" {
		user = flagUser
	}
	if flagPass != "" {
		pass = flagPass
	}
	if user == "" || pass == "" {
		return configErrorf("no credentials: pass --username/--password or add a [login] section to %s (or run \"hetznerctl login\")", store.Path())
	}

	// Flag overrides are for this invocation only. Credentials are written
	// to the file only when it had none, so the next run works without
	// flags and an existing login section is never clobbered.
	if !store.HasLogin() {
		store.SetCredentials(user, pass)
		if err := store.Save(); err != nil {
			return &ConfigError{msg: "writing config", err: err}
		}
	}

	baseURL := os.Getenv("HETZNERCTL_API_URL")
	if baseURL == "" {
		baseURL = robot.DefaultBaseURL
	}
	sess = session.New(robot.NewWithBaseURL(user, pass, baseURL), store)
	return nil
}

// validated marks a command as past its argument validation so that later
// failures (remote errors) do not dump usage text.
func validated(cmd *cobra.Command) {
	cmd.SilenceUsage = true
}

// Execute runs one invocation and returns the process exit code. The
// session, if one was opened, is closed on both the success and the error
// path, flushing the config exactly once.
func Execute() int {
	err := rootCmd.Execute()

	if sess != nil {
		if closeErr := sess.Close(); closeErr != nil {
			fmt.Fprintln(os.Stderr, "Error:", closeErr)
			if err == nil {
				err = closeErr
			}
		}
	}

	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
	}
	return exitCode(err)
}
