package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"taskboard/pkg/taskclient"
)

func registerCmd(a *app) *cobra.Command {
	var name, email, password string

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account and sign in",
		RunE: func(cmd *cobra.Command, args []string) error {
			user, err := a.session.Register(cmd.Context(), name, email, passwordOrEnv(password))
			if err != nil {
				return describe(err)
			}
			return a.printUser(cmd, user, "Registered as")
		},
	}

	cmd.Flags().StringVarP(&name, "name", "n", "", "display name")
	cmd.Flags().StringVarP(&email, "email", "e", "", "email address")
	cmd.Flags().StringVarP(&password, "password", "p", "", "password (or TASKBOARD_PASSWORD)")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("email")

	return cmd
}

func loginCmd(a *app) *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and store the session token",
		RunE: func(cmd *cobra.Command, args []string) error {
			user, err := a.session.Login(cmd.Context(), email, passwordOrEnv(password))
			if err != nil {
				return describe(err)
			}
			return a.printUser(cmd, user, "Logged in as")
		},
	}

	cmd.Flags().StringVarP(&email, "email", "e", "", "email address")
	cmd.Flags().StringVarP(&password, "password", "p", "", "password (or TASKBOARD_PASSWORD)")
	_ = cmd.MarkFlagRequired("email")

	return cmd
}

func logoutCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Sign out and forget the session token",
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := a.session.Init(cmd.Context()); err != nil {
				return describe(err)
			}
			if err := a.session.Logout(cmd.Context()); err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "warning: %v\n", describe(err))
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Logged out.")
			return nil
		},
	}
}

func whoamiCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in user",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.authenticated(cmd.Context()); err != nil {
				return describe(err)
			}
			user, _ := a.session.User()
			return a.printUser(cmd, user, "Signed in as")
		},
	}
}

func (a *app) printUser(cmd *cobra.Command, user taskclient.User, prefix string) error {
	if a.jsonOut {
		return printJSON(cmd.OutOrStdout(), user)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s %s <%s>\n", prefix, user.Name, user.Email)
	return nil
}

func passwordOrEnv(password string) string {
	if password != "" {
		return password
	}
	return os.Getenv("TASKBOARD_PASSWORD")
}

// describe turns validation failures into one readable error.
func describe(err error) error {
	var apiErr *taskclient.Error
	if !errors.As(err, &apiErr) || len(apiErr.Fields) == 0 {
		return err
	}
	msg := apiErr.Message
	for _, field := range sortedKeys(apiErr.Fields) {
		for _, m := range apiErr.Fields[field] {
			msg += fmt.Sprintf("\n  %s: %s", field, m)
		}
	}
	return errors.New(msg)
}
