package cron

import (
	"context"
	"encoding/json"
	"time"

	"jetset/config"
	"jetset/models"
	"jetset/services/intelligence"
	"jetset/services/tasks"
	"jetset/utils"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// Summarizer condenses a transcript into a short booking context note.
type Summarizer interface {
	Summarize(ctx context.Context, transcript []string) (string, error)
}

// InitAssistantWorker runs the background asynq worker handling the
// best-effort side activities: conversation summaries and tour reminders.
// Neither task may affect booking correctness, so handler failures are
// logged and dropped rather than retried forever.
func InitAssistantWorker(summarizer Summarizer, store *intelligence.SummaryStore) {
	logger := utils.GetLogger()

	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}

	srv := asynq.NewServer(
		redisOpts,
		asynq.Config{
			Concurrency: 5,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeSummarizeConversation, handleSummarizeTask(summarizer, store, logger))
	mux.HandleFunc(tasks.TypeTourReminder, handleReminderTask(logger))

	go func() {
		logger.Info("starting assistant background worker")
		const maxAttempts = 5
		for attempt := 1; attempt <= maxAttempts; attempt++ {
			if err := srv.Run(mux); err != nil {
				logger.Error("assistant worker failed to start",
					zap.Int("attempt", attempt), zap.Error(err))
				if attempt == maxAttempts {
					logger.Error("assistant worker giving up")
					return
				}
				time.Sleep(time.Duration(attempt*2) * time.Second)
				continue
			}
			return
		}
	}()
}

func handleSummarizeTask(summarizer Summarizer, store *intelligence.SummaryStore, logger *zap.Logger) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		if summarizer == nil || store == nil {
			return nil
		}
		var p models.SummaryPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			logger.Warn("invalid summary payload", zap.Error(err))
			return nil
		}
		summary, err := summarizer.Summarize(ctx, p.Transcript)
		if err != nil {
			// Summaries are a side activity; never fail the queue over them.
			logger.Warn("conversation summary failed", zap.String("userID", p.UserID), zap.Error(err))
			return nil
		}
		if summary == "" {
			return nil
		}
		if err := store.AppendSummary(ctx, p.UserID, summary); err != nil {
			logger.Warn("failed to store summary", zap.String("userID", p.UserID), zap.Error(err))
		}
		return nil
	}
}

func handleReminderTask(logger *zap.Logger) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p models.ReminderPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			logger.Warn("invalid reminder payload", zap.Error(err))
			return nil
		}
		// Message delivery is the channel collaborator's job; the worker
		// records that the reminder came due.
		logger.Info("tour reminder due",
			zap.String("domain", p.Domain),
			zap.String("userID", p.UserID),
			zap.String("bookingRef", p.BookingRef),
			zap.String("start", p.StartISO))
		return nil
	}
}
