package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"blog-publishing-be/pkg/events"

	"github.com/stretchr/testify/assert"
)

type publisherFunc func(ctx context.Context, event events.Event) error

func (f publisherFunc) Publish(ctx context.Context, event events.Event) error { return f(ctx, event) }

func TestEventFanout(t *testing.T) {
	assert.Nil(t, NewEventFanout())
	assert.Nil(t, NewEventFanout(nil, nil))

	var seen []string
	ok := publisherFunc(func(_ context.Context, e events.Event) error {
		seen = append(seen, e.EventType())
		return nil
	})
	boom := errors.New("broker down")
	failing := publisherFunc(func(context.Context, events.Event) error { return boom })

	fanout := NewEventFanout(failing, nil, ok)
	err := fanout.Publish(t.Context(), events.NewPostEvent(events.PostDeleted, "p", "s", "a", time.Now()))

	assert.ErrorIs(t, err, boom)
	assert.Equal(t, []string{events.PostDeleted}, seen, "a failing publisher must not stop the others")
}
