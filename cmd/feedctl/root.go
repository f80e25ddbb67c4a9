package main

import (
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

const (
	envServer = "EVENTFEED_URL"
	envToken  = "EVENTFEED_TOKEN"
)

type rootOptions struct {
	server  string
	token   string
	verbose bool
}

func (o *rootOptions) logger(w io.Writer) *slog.Logger {
	level := slog.LevelWarn
	if o.verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func newRootCommand() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:           "feedctl",
		Short:         "Event feed client",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&opts.server, "server", envOr(envServer, "http://localhost:8080"), "Server base URL ($"+envServer+")")
	root.PersistentFlags().StringVar(&opts.token, "token", os.Getenv(envToken), "Bearer access token ($"+envToken+")")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Log fetches to stderr")

	root.AddCommand(newEventsCommand(opts))
	return root
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
