package worker

import (
	"context"
	"encoding/json"

	"github.com/naseej-app/internal/logger"
	"github.com/naseej-app/internal/provider"
	"github.com/naseej-app/internal/queue"

	"github.com/hibiken/asynq"
)

// Consumer handles queued tasks against the service layer.
type Consumer struct {
	*provider.Container
}

// NewConsumer creates the consumer.
func NewConsumer(c *provider.Container) *Consumer {
	return &Consumer{Container: c}
}

// Register binds task handlers onto the mux.
func (c *Consumer) Register(mux *asynq.ServeMux) {
	if c == nil || mux == nil {
		logger.Debugw("worker_register_skip_nil", "consumer_nil", c == nil, "mux_nil", mux == nil)
		return
	}
	mux.HandleFunc(queue.TaskRequestStatusChanged, c.handleRequestStatusChanged)
}

func (c *Consumer) handleRequestStatusChanged(_ context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_request_status_changed_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	var payload queue.RequestStatusChangedPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_request_status_changed_unmarshal_failed", "error", err)
		return err
	}
	if payload.RequestID == 0 {
		logger.Debugw("worker_request_status_changed_skip_invalid_payload", "request_id", payload.RequestID)
		return nil
	}
	if err := c.NotificationService.RecordStatusChange(payload); err != nil {
		logger.Warnw("worker_request_status_changed_record_failed",
			"request_id", payload.RequestID,
			"order_no", payload.OrderNo,
			"new_status", payload.NewStatus,
			"error", err,
		)
		return err
	}
	return nil
}
