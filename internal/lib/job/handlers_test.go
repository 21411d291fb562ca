package job

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type welcomeCall struct {
	to, username string
}

type fakeMailer struct {
	calls []welcomeCall
	err   error
}

func (m *fakeMailer) SendWelcomeEmail(_ context.Context, to, username string) error {
	m.calls = append(m.calls, welcomeCall{to, username})
	return m.err
}

func newTestService(mailer WelcomeMailer) *JobService {
	logger := zerolog.Nop()
	return &JobService{logger: &logger, mailer: mailer}
}

func TestNewWelcomeEmailTask(t *testing.T) {
	task, err := NewWelcomeEmailTask("user@example.com", "validUser1")
	require.NoError(t, err)

	assert.Equal(t, TaskWelcome, task.Type())

	var payload WelcomeEmailPayload
	require.NoError(t, json.Unmarshal(task.Payload(), &payload))
	assert.Equal(t, WelcomeEmailPayload{To: "user@example.com", Username: "validUser1"}, payload)
}

func TestHandleWelcomeEmailTask_Sends(t *testing.T) {
	mailer := &fakeMailer{}
	task, err := NewWelcomeEmailTask("user@example.com", "validUser1")
	require.NoError(t, err)

	require.NoError(t, newTestService(mailer).Mux().ProcessTask(context.Background(), task))

	assert.Equal(t, []welcomeCall{{"user@example.com", "validUser1"}}, mailer.calls)
}

func TestHandleWelcomeEmailTask_PropagatesSendError(t *testing.T) {
	mailer := &fakeMailer{err: errors.New("provider down")}
	task, err := NewWelcomeEmailTask("user@example.com", "validUser1")
	require.NoError(t, err)

	err = newTestService(mailer).handleWelcomeEmailTask(context.Background(), task)
	assert.EqualError(t, err, "provider down")
}

func TestHandleWelcomeEmailTask_BadPayloadSkipsRetry(t *testing.T) {
	task := asynq.NewTask(TaskWelcome, []byte("{"))

	err := newTestService(&fakeMailer{}).handleWelcomeEmailTask(context.Background(), task)
	assert.ErrorIs(t, err, asynq.SkipRetry)
}

func TestHandleWelcomeEmailTask_DisabledMailer(t *testing.T) {
	task, err := NewWelcomeEmailTask("user@example.com", "validUser1")
	require.NoError(t, err)

	assert.NoError(t, newTestService(nil).handleWelcomeEmailTask(context.Background(), task))
}
