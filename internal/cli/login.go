package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"hetznerctl/internal/config"
)

func newLoginCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "login",
		Short: "Store Robot credentials in the config file",
		Long: `Prompt for the Robot webservice username and password and write them to
the config file. Subsequent invocations then work without the
--username and --password flags.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) != 0 {
				return usageErrorf("login takes no arguments")
			}
			validated(cmd)
			return runLogin(cmd)
		},
	}
}

func runLogin(cmd *cobra.Command) error {
	store, err := config.Load(cfgFile)
	if err != nil {
		return &ConfigError{msg: "loading config", err: err}
	}

	user := flagUser
	pass := flagPass
	in := bufio.NewReader(cmd.InOrStdin())
	w := cmd.OutOrStdout()

	if user == "" {
		fmt.Fprint(w, "Robot username: ")
		line, err := in.ReadString('\n')
		if err != nil {
			return fmt.Errorf("reading username: %w", err)
		}
		user = strings.TrimSpace(line)
	}
	if pass == "" {
		fmt.Fprint(w, "Robot password: ")
		if isatty.IsTerminal(os.Stdin.Fd()) {
			raw, err := term.ReadPassword(int(os.Stdin.Fd()))
			fmt.Fprintln(w)
			if err != nil {
				return fmt.Errorf("reading password: %w", err)
			}
			pass = string(raw)
		} else {
			line, err := in.ReadString('\n')
			if err != nil {
				return fmt.Errorf("reading password: %w", err)
			}
			pass = strings.TrimRight(line, "\r\n")
		}
	}
	if user == "" || pass == "" {
		return usageErrorf("username and password must not be empty")
	}

	store.SetCredentials(user, pass)
	if err := store.Save(); err != nil {
		return &ConfigError{msg: "writing config", err: err}
	}
	fmt.Fprintf(w, "Credentials saved to %s\n", store.Path())
	return nil
}
