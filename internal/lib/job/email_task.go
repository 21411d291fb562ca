package job

import (
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"
)

const TaskWelcome = "email:welcome"

type WelcomeEmailPayload struct {
	To       string `json:"to"`
	Username string `json:"username"`
}

// NewWelcomeEmailTask builds the task sent after a successful registration.
// The task ID is keyed on the address so a user is greeted once.
func NewWelcomeEmailTask(to, username string) (*asynq.Task, error) {
	payload, err := json.Marshal(WelcomeEmailPayload{
		To:       to,
		Username: username,
	})
	if err != nil {
		return nil, err
	}

	return asynq.NewTask(
		TaskWelcome,
		payload,
		asynq.MaxRetry(3),
		asynq.Queue("low"),
		asynq.TaskID("welcome:"+to),
		asynq.Timeout(30*time.Second),
	), nil
}
