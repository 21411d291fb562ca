package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"

	"github.com/hibiken/asynq"
	"github.com/newrelic/go-agent/v3/integrations/nrpkgerrors"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/deppfellow/go-registration/internal/config"
	"github.com/deppfellow/go-registration/internal/errs"
	"github.com/deppfellow/go-registration/internal/lib/job"
	"github.com/deppfellow/go-registration/internal/model"
	"github.com/deppfellow/go-registration/internal/repository"
	"github.com/deppfellow/go-registration/internal/sqlerr"
)

// bcryptMaxPasswordBytes is the input limit of bcrypt.
const bcryptMaxPasswordBytes = 72

type UserStore interface {
	CreateUser(ctx context.Context, params repository.CreateUserParams) (*model.User, error)
}

// TaskEnqueuer is satisfied by *asynq.Client.
type TaskEnqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// RegistrationService stores new users. It implements registration.Registrar.
type RegistrationService struct {
	users  UserStore
	jobs   TaskEnqueuer
	cfg    *config.RegistrationConfig
	logger *zerolog.Logger
}

// NewRegistrationService builds the service. jobs may be nil, in which case
// no welcome e-mail is scheduled.
func NewRegistrationService(users UserStore, jobs TaskEnqueuer, cfg *config.RegistrationConfig, logger *zerolog.Logger) *RegistrationService {
	if cfg == nil {
		cfg = config.DefaultRegistrationConfig()
	}
	return &RegistrationService{
		users:  users,
		jobs:   jobs,
		cfg:    cfg,
		logger: logger,
	}
}

// RegisterUser hashes the password and creates the user. It returns false
// when the store refuses the user; the reason is logged, not returned.
func (s *RegistrationService) RegisterUser(ctx context.Context, username, email, password string) bool {
	txn := newrelic.FromContext(ctx)
	defer txn.StartSegment("RegistrationService.RegisterUser").End()

	logger := s.logger.With().Str("username", username).Logger()

	hash, err := hashPassword(password, s.cfg.BcryptCost)
	if err != nil {
		logger.Error().Err(err).Msg("failed to hash password")
		txn.NoticeError(nrpkgerrors.Wrap(err))
		return false
	}

	user, err := s.users.CreateUser(ctx, repository.CreateUserParams{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
	})
	if err != nil {
		s.reportStoreError(ctx, &logger, err)
		return false
	}

	logger.Info().
		Str("user_id", user.ID.String()).
		Msg("user created")

	s.scheduleWelcomeEmail(ctx, &logger, user)
	return true
}

func (s *RegistrationService) reportStoreError(ctx context.Context, logger *zerolog.Logger, err error) {
	var httpErr *errs.HTTPError
	if !errors.As(sqlerr.HandleError(err), &httpErr) {
		logger.Error().Err(err).Str("sql_code", string(sqlerr.ErrCode(err))).Msg("failed to create user")
		return
	}

	event := logger.Error()
	if httpErr.Status < 500 {
		// Constraint violations (duplicates mostly) are expected traffic.
		event = logger.Warn()
	} else {
		newrelic.FromContext(ctx).NoticeError(nrpkgerrors.Wrap(err))
	}

	if len(httpErr.Errors) > 0 {
		event = event.Str("field", httpErr.Errors[0].Field)
	}

	event.
		Err(err).
		Str("sql_code", string(sqlerr.ErrCode(err))).
		Str("code", httpErr.Code).
		Str("reason", httpErr.Message).
		Msg("user store refused registration")
}

// scheduleWelcomeEmail is best effort: a failed enqueue never undoes the
// registration.
func (s *RegistrationService) scheduleWelcomeEmail(ctx context.Context, logger *zerolog.Logger, user *model.User) {
	if !s.cfg.WelcomeEmail || s.jobs == nil {
		return
	}

	task, err := job.NewWelcomeEmailTask(user.Email, user.Username)
	if err != nil {
		logger.Error().Err(err).Msg("failed to build welcome email task")
		return
	}

	info, err := s.jobs.EnqueueContext(ctx, task)
	if err != nil {
		logger.Warn().Err(err).Msg("failed to enqueue welcome email")
		return
	}

	logger.Debug().
		Str("task_id", info.ID).
		Str("queue", info.Queue).
		Msg("welcome email enqueued")
}

// hashPassword bcrypt-hashes password. Inputs past bcrypt's 72 byte limit
// are reduced to their hex SHA-256 digest first.
func hashPassword(password string, cost int) (string, error) {
	input := []byte(password)
	if len(input) > bcryptMaxPasswordBytes {
		sum := sha256.Sum256(input)
		input = []byte(hex.EncodeToString(sum[:]))
	}

	hash, err := bcrypt.GenerateFromPassword(input, cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
