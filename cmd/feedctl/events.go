package main

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/heartmarshall/eventfeed-backend/internal/client/feed"
	"github.com/heartmarshall/eventfeed-backend/internal/client/feedhttp"
)

type eventsOptions struct {
	query  feedhttp.Query
	limit  int
	all    bool
	output string
}

func newEventsCommand(root *rootOptions) *cobra.Command {
	opts := &eventsOptions{}

	cmd := &cobra.Command{
		Use:   "events",
		Short: "Page through the team event feed",
		Long: "Prints the first page of the feed, then one more page each time Enter is pressed.\n" +
			"With --all every page is fetched without waiting.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if root.token == "" {
				return fmt.Errorf("an access token is required (--token or $%s)", envToken)
			}
			if opts.output != "table" && opts.output != "json" {
				return fmt.Errorf("invalid --output %q; expected table or json", opts.output)
			}
			if opts.limit <= 0 {
				return fmt.Errorf("--limit must be positive")
			}
			return runEvents(cmd, root, opts)
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.query.DocumentID, "document", "", "Document id or url id")
	f.BoolVar(&opts.query.AuditLog, "audit", false, "Show the audit log instead of activity")
	f.StringVar(&opts.query.Sort, "sort", "createdAt", "Sort field: createdAt|name")
	f.StringVar(&opts.query.Direction, "direction", "DESC", "Sort direction: ASC|DESC")
	f.IntVar(&opts.limit, "limit", 25, "Page size")
	f.BoolVar(&opts.all, "all", false, "Fetch every page without prompting")
	f.StringVarP(&opts.output, "output", "o", "table", "Output format: table|json")
	return cmd
}

func runEvents(cmd *cobra.Command, root *rootOptions, opts *eventsOptions) error {
	logger := root.logger(cmd.ErrOrStderr())
	client := feedhttp.NewClient(root.server, root.token, opts.query, logger)

	loader := feed.NewLoader[feedhttp.Event](cmd.Context(), client, opts.limit, feed.WithLogger(logger))
	defer loader.Dispose()

	printer := newEventPrinter(cmd.OutOrStdout(), opts.output, opts.query.AuditLog)
	unsubscribe := loader.Subscribe(printer.onState)
	defer unsubscribe()

	if _, err := loader.Mount(); err != nil {
		return err
	}

	prompt := bufio.NewScanner(cmd.InOrStdin())
	for {
		if printer.err != nil {
			return printer.err
		}
		sentinel, ok := loader.Sentinel()
		if !ok {
			return nil
		}
		if !opts.all {
			fmt.Fprint(cmd.ErrOrStderr(), "-- more (Enter) --")
			if !prompt.Scan() {
				fmt.Fprintln(cmd.ErrOrStderr())
				return prompt.Err()
			}
		}
		if _, err := loader.Enter(sentinel); err != nil {
			if errors.Is(err, feed.ErrDisposed) {
				return cmd.Context().Err()
			}
			return err
		}
	}
}

// eventPrinter writes every item once, as pages are appended to the feed.
type eventPrinter struct {
	w       io.Writer
	format  string
	audit   bool
	printed int
	err     error
}

func newEventPrinter(w io.Writer, format string, audit bool) *eventPrinter {
	return &eventPrinter{w: w, format: format, audit: audit}
}

func (p *eventPrinter) onState(s feed.State[feedhttp.Event]) {
	if p.err != nil || len(s.Items) <= p.printed {
		return
	}
	p.err = p.print(s.Items[p.printed:])
	p.printed = len(s.Items)
}

func (p *eventPrinter) print(events []feedhttp.Event) error {
	if p.format == "json" {
		enc := json.NewEncoder(p.w)
		for _, e := range events {
			if err := enc.Encode(e); err != nil {
				return err
			}
		}
		return nil
	}

	tw := tabwriter.NewWriter(p.w, 0, 4, 2, ' ', 0)
	for _, e := range events {
		actor := e.ActorID.String()
		if e.Actor != nil {
			actor = e.Actor.Name
			if e.Actor.IsDeleted {
				actor += " (deleted)"
			}
		}
		line := fmt.Sprintf("%s\t%s\t%s", e.CreatedAt.Format(time.RFC3339), e.Name, actor)
		if p.audit && e.ActorIPAddress != nil {
			line += "\t" + *e.ActorIPAddress
		}
		fmt.Fprintln(tw, line)
	}
	return tw.Flush()
}
