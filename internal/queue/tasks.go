package queue

import (
	"encoding/json"

	"github.com/naseej-app/internal/constants"

	"github.com/hibiken/asynq"
)

const (
	// TaskRequestStatusChanged fires after every committed request
	// transition.
	TaskRequestStatusChanged = constants.TaskRequestStatusChanged
)

// RequestStatusChangedPayload carries one committed transition.
type RequestStatusChangedPayload struct {
	RequestID      uint   `json:"request_id"`
	OrderNo        string `json:"order_no"`
	PreviousStatus string `json:"previous_status"`
	NewStatus      string `json:"new_status"`
	ActorUserID    uint   `json:"actor_user_id"`
	Note           string `json:"note,omitempty"`
}

// NewRequestStatusChangedTask builds the asynq task.
func NewRequestStatusChangedTask(payload RequestStatusChangedPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskRequestStatusChanged, body), nil
}
