package jobs

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"

	"github.com/ap-collections/backoffice/internal/delivery"
	"github.com/ap-collections/backoffice/internal/reports"
)

const (
	// QueueDefault is the default queue name for background jobs.
	QueueDefault = "default"
	// TaskReportsWarmup precomputes today's dashboard into the cache.
	TaskReportsWarmup = "reports:warmup"
	// TaskDeliveryOverdueScan surfaces overdue undelivered orders.
	TaskDeliveryOverdueScan = "delivery:overdue_scan"
)

// ReportsWarmupPayload selects the day to warm; zero Date means today.
type ReportsWarmupPayload struct {
	Date time.Time `json:"date"`
}

// NewReportsWarmupTask constructs the warmup task.
func NewReportsWarmupTask(payload ReportsWarmupPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskReportsWarmup, data), nil
}

// NewDeliveryOverdueScanTask constructs the overdue-scan task.
func NewDeliveryOverdueScanTask() *asynq.Task {
	return asynq.NewTask(TaskDeliveryOverdueScan, nil)
}

// ReportsWarmupHandler refreshes the report cache and precomputes the
// dashboard so the first morning request is served hot.
func ReportsWarmupHandler(svc *reports.Service, logger *slog.Logger) asynq.HandlerFunc {
	return func(ctx context.Context, t *asynq.Task) error {
		var payload ReportsWarmupPayload
		if len(t.Payload()) > 0 {
			if err := json.Unmarshal(t.Payload(), &payload); err != nil {
				return asynq.SkipRetry
			}
		}
		date := payload.Date
		if date.IsZero() {
			date = time.Now()
		}
		if err := svc.InvalidateCache(ctx); err != nil {
			return err
		}
		if err := svc.Warm(ctx, date); err != nil {
			return err
		}
		logger.Info("report cache warmed", slog.String("date", date.Format("2006-01-02")))
		return nil
	}
}

// DeliveryOverdueScanHandler logs how many undelivered orders are past due.
func DeliveryOverdueScanHandler(svc *delivery.Service, logger *slog.Logger) asynq.HandlerFunc {
	return func(ctx context.Context, t *asynq.Task) error {
		overdue, err := svc.Overdue(ctx)
		if err != nil {
			return err
		}
		if len(overdue) == 0 {
			logger.Info("no overdue deliveries")
			return nil
		}
		logger.Warn("overdue deliveries found", slog.Int("count", len(overdue)))
		for _, o := range overdue {
			logger.Warn("overdue delivery",
				slog.String("order_no", o.OrderNo),
				slog.String("customer", o.CustomerName),
				slog.String("due", o.DeliveryDate.Format("2006-01-02")))
		}
		return nil
	}
}
