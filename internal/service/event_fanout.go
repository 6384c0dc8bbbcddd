package service

import (
	"context"
	"errors"

	"blog-publishing-be/pkg/events"
)

type eventFanout []EventPublisher

// NewEventFanout publishes every event to each non-nil publisher. It returns
// nil when there is nothing to publish to.
func NewEventFanout(publishers ...EventPublisher) EventPublisher {
	var f eventFanout
	for _, p := range publishers {
		if p != nil {
			f = append(f, p)
		}
	}
	if len(f) == 0 {
		return nil
	}
	return f
}

func (f eventFanout) Publish(ctx context.Context, event events.Event) error {
	var errs []error
	for _, p := range f {
		if err := p.Publish(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
