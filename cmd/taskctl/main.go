package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"taskboard/pkg/taskclient"
)

var Version = "dev"

const defaultURL = "http://localhost:8080"

type app struct {
	baseURL   string
	tokenFile string
	language  string
	jsonOut   bool

	session *taskclient.Session
}

func main() {
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCmd(&app{}).ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd(a *app) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "taskctl",
		Short:         "Command-line client for the taskboard API",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			client := taskclient.New(a.baseURL, taskclient.WithLanguage(a.language))
			a.session = taskclient.NewSession(client, taskclient.FileTokenStore{Path: a.tokenFile})
		},
	}

	rootCmd.PersistentFlags().StringVar(&a.baseURL, "url", envOr("TASKBOARD_URL", defaultURL), "API base URL")
	rootCmd.PersistentFlags().StringVar(&a.tokenFile, "token-file", envOr("TASKBOARD_TOKEN_FILE", defaultTokenFile()), "where the session token is kept")
	rootCmd.PersistentFlags().StringVar(&a.language, "lang", os.Getenv("TASKBOARD_LANG"), "language of server messages (en, fr)")
	rootCmd.PersistentFlags().BoolVar(&a.jsonOut, "json", false, "output as JSON")

	rootCmd.AddCommand(registerCmd(a))
	rootCmd.AddCommand(loginCmd(a))
	rootCmd.AddCommand(logoutCmd(a))
	rootCmd.AddCommand(whoamiCmd(a))
	rootCmd.AddCommand(listCmd(a))
	rootCmd.AddCommand(createCmd(a))
	rootCmd.AddCommand(updateCmd(a))
	rootCmd.AddCommand(deleteCmd(a))
	rootCmd.AddCommand(statsCmd(a))

	return rootCmd
}

var errNotLoggedIn = errors.New("not logged in, run `taskctl login` first")

// authenticated restores the stored session or fails.
func (a *app) authenticated(ctx context.Context) error {
	ok, err := a.session.Init(ctx)
	if err != nil {
		return err
	}
	if !ok {
		return errNotLoggedIn
	}
	return nil
}

func envOr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func defaultTokenFile() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ".taskboard-token"
	}
	return filepath.Join(dir, "taskboard", "token")
}
