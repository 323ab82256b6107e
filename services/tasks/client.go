package tasks

import (
	"context"
	"time"

	"jetset/models"

	"github.com/hibiken/asynq"
)

// Client enqueues assistant background tasks.
type Client struct {
	inner *asynq.Client
}

func NewClient(opt asynq.RedisClientOpt) *Client {
	return &Client{inner: asynq.NewClient(opt)}
}

// EnqueueSummary queues a conversation summary for background generation.
func (c *Client) EnqueueSummary(ctx context.Context, payload models.SummaryPayload) error {
	task, err := NewSummarizeTask(payload)
	if err != nil {
		return err
	}
	_, err = c.inner.EnqueueContext(ctx, task)
	return err
}

// ScheduleReminder queues a tour reminder to fire at the given time.
func (c *Client) ScheduleReminder(ctx context.Context, payload models.ReminderPayload, fireAt time.Time) error {
	task, opts, err := NewReminderTask(payload, fireAt)
	if err != nil {
		return err
	}
	_, err = c.inner.EnqueueContext(ctx, task, opts...)
	return err
}

func (c *Client) Close() error {
	return c.inner.Close()
}
