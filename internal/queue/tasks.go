package queue

import (
	"encoding/json"

	"github.com/souq-next/internal/constants"

	"github.com/hibiken/asynq"
)

const (
	// TaskOrderExpireCancel cancels pending orders left unconfirmed.
	TaskOrderExpireCancel = constants.TaskOrderExpireCancel
)

// OrderExpireCancelPayload carries the expiry cancellation task body.
type OrderExpireCancelPayload struct {
	OrderID uint `json:"order_id"`
}

// NewOrderExpireCancelTask creates an expiry cancellation task.
func NewOrderExpireCancelTask(payload OrderExpireCancelPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskOrderExpireCancel, body), nil
}
