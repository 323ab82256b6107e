package tasks

import (
	"encoding/json"
	"time"

	"jetset/models"

	"github.com/hibiken/asynq"
)

const (
	TypeSummarizeConversation = "assistant:summarize"
	TypeTourReminder          = "booking:reminder"
)

// NewSummarizeTask builds the best-effort conversation summary task.
func NewSummarizeTask(payload models.SummaryPayload) (*asynq.Task, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeSummarizeConversation, b), nil
}

// NewReminderTask builds a tour reminder scheduled at fireAt.
func NewReminderTask(payload models.ReminderPayload, fireAt time.Time) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeTourReminder, b)
	opts := []asynq.Option{asynq.ProcessAt(fireAt)}
	return task, opts, nil
}
