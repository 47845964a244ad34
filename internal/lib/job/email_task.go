package job

import (
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"
)

const (
	// TaskEmailChanged is the job type name stored in Redis.
	TaskEmailChanged = "email:changed"
)

// EmailChangedPayload is the JSON payload of the email changed task.
type EmailChangedPayload struct {
	To   string `json:"to"`
	Name string `json:"name"`
}

// NewEmailChangedTask constructs the task notifying a user that their
// profile email changed. It is retried up to 3 times on the default queue.
func NewEmailChangedTask(to, name string) (*asynq.Task, error) {
	payload, err := json.Marshal(EmailChangedPayload{
		To:   to,
		Name: name,
	})
	if err != nil {
		return nil, err
	}

	return asynq.NewTask(
		TaskEmailChanged,
		payload,
		asynq.MaxRetry(3),
		asynq.Queue("default"),
		asynq.Timeout(30*time.Second),
	), nil
}
