package worker

import (
	"context"
	"encoding/json"

	"github.com/souq-next/internal/logger"
	"github.com/souq-next/internal/provider"
	"github.com/souq-next/internal/queue"

	"github.com/hibiken/asynq"
)

// Consumer processes async tasks.
type Consumer struct {
	*provider.Container
}

// NewConsumer creates a consumer.
func NewConsumer(c *provider.Container) *Consumer {
	return &Consumer{
		Container: c,
	}
}

// Register attaches task handlers.
func (c *Consumer) Register(mux *asynq.ServeMux) {
	if c == nil || mux == nil {
		logger.Debugw("worker_register_skip_nil", "consumer_nil", c == nil, "mux_nil", mux == nil)
		return
	}
	mux.HandleFunc(queue.TaskOrderExpireCancel, c.handleOrderExpireCancel)
}

func (c *Consumer) handleOrderExpireCancel(_ context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_order_expire_cancel_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	var payload queue.OrderExpireCancelPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_order_expire_cancel_unmarshal_failed", "error", err)
		return err
	}
	if payload.OrderID == 0 {
		logger.Debugw("worker_order_expire_cancel_skip_invalid_payload", "order_id", payload.OrderID)
		return nil
	}

	order, err := c.OrderService.CancelExpiredOrder(payload.OrderID)
	if err != nil {
		logger.Warnw("worker_order_expire_cancel_failed", "order_id", payload.OrderID, "error", err)
		return err
	}
	if order == nil {
		logger.Debugw("worker_order_expire_cancel_skip_order_not_found", "order_id", payload.OrderID)
		return nil
	}
	logger.Infow("worker_order_expire_cancel_done",
		"order_id", order.ID,
		"order_no", order.OrderNo,
		"status", order.Status,
	)
	return nil
}
