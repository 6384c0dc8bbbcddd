package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"blog-publishing-be/pkg/events"
	pktNats "blog-publishing-be/pkg/nats"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var eventColors = map[string]*color.Color{
	events.PostPublished:   color.New(color.FgGreen),
	events.PostUpdated:     color.New(color.FgYellow),
	events.PostUnpublished: color.New(color.FgMagenta),
	events.PostDeleted:     color.New(color.FgRed),
}

func newEventsCmd(a *app) *cobra.Command {
	var (
		natsURL   string
		eventType string
		durable   string
	)

	cmd := &cobra.Command{
		Use:   "events",
		Short: "Tail post lifecycle events from NATS",
		RunE: func(cmd *cobra.Command, args []string) error {
			if natsURL == "" {
				natsURL = os.Getenv("NATS_URL")
			}
			if natsURL == "" {
				natsURL = "nats://localhost:4222"
			}

			sub, err := pktNats.NewSubscriber(natsURL)
			if err != nil {
				return err
			}
			defer sub.Close()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			w := cmd.OutOrStdout()
			err = sub.Subscribe(ctx, eventType, durable, func(_ context.Context, evt events.Event) error {
				a.logger.Debug("blogctl", "Received event", map[string]interface{}{"type": evt.EventType()})
				return writeEvent(w, evt)
			})
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.ErrOrStderr(), "Listening on %s (ctrl-c to stop)\n", pktNats.Subject(eventType))
			<-ctx.Done()
			return nil
		},
	}

	cmd.Flags().StringVar(&natsURL, "nats-url", "", "NATS server URL (defaults to NATS_URL)")
	cmd.Flags().StringVar(&eventType, "type", ">", "Event type to follow, e.g. POST_PUBLISHED")
	cmd.Flags().StringVar(&durable, "durable", "", "Durable consumer name; empty for ephemeral")

	return cmd
}

func writeEvent(w io.Writer, evt events.Event) error {
	label := evt.EventType()
	if c, ok := eventColors[label]; ok {
		label = c.Sprint(label)
	}

	payload := evt.Payload()
	_, err := fmt.Fprintf(w, "%s %s slug=%v post=%v author=%v\n",
		evt.Timestamp().Format(time.RFC3339),
		label,
		payload["slug"],
		payload["post_id"],
		payload["author_id"],
	)
	return err
}
