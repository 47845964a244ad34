package service

import (
	"context"
	"errors"

	"github.com/deppfellow/go-profile/internal/lib/job"
	"github.com/deppfellow/go-profile/internal/model"
	"github.com/deppfellow/go-profile/internal/request"
	"github.com/hibiken/asynq"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
)

// UserStore is the persistence ProfileService needs.
type UserStore interface {
	GetByID(ctx context.Context, id string) (*model.User, error)
	Create(ctx context.Context, user *model.User) (*model.User, error)
	UpdateProfile(ctx context.Context, user *model.User) (*model.User, error)
}

// TaskEnqueuer is satisfied by *asynq.Client.
type TaskEnqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// ProfileService reads and updates the profile of the authenticated user.
type ProfileService struct {
	users      UserStore
	identities IdentityProvider
	tasks      TaskEnqueuer
	logger     *zerolog.Logger
}

// NewProfileService builds a ProfileService.
//
// identities may be nil, in which case a user without a row is not found.
// tasks may be nil, in which case email change notifications are skipped.
func NewProfileService(users UserStore, identities IdentityProvider, tasks TaskEnqueuer, logger *zerolog.Logger) *ProfileService {
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}
	return &ProfileService{
		users:      users,
		identities: identities,
		tasks:      tasks,
		logger:     logger,
	}
}

// Get returns the profile of userID, creating it on first access.
func (s *ProfileService) Get(ctx context.Context, userID string) (*model.User, error) {
	return s.ensureUser(ctx, userID)
}

// ensureUser loads userID, provisioning the row from the identity provider
// when the user signed up but never reached this service before.
func (s *ProfileService) ensureUser(ctx context.Context, userID string) (*model.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err == nil || !errors.Is(err, pgx.ErrNoRows) || s.identities == nil {
		return user, err
	}

	identity, err := s.identities.Lookup(ctx, userID)
	if err != nil {
		return nil, err
	}

	created, err := s.users.Create(ctx, identity)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("user_id", created.ID).Msg("provisioned user on first access")
	return created, nil
}

// Update applies a validated profile update to userID.
//
// Changing the email clears its verification and queues a notification to
// the new address. A failed enqueue is logged and does not fail the update.
func (s *ProfileService) Update(ctx context.Context, userID string, req *request.ProfileUpdateRequest) (*model.User, error) {
	user, err := s.ensureUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	req.Normalize()

	emailChanged := user.Email != req.Email

	user.Name = req.Name
	user.Email = req.Email
	if emailChanged {
		user.EmailVerifiedAt = nil
	}

	updated, err := s.users.UpdateProfile(ctx, user)
	if err != nil {
		return nil, err
	}

	if emailChanged {
		s.notifyEmailChanged(ctx, updated)
	}

	return updated, nil
}

func (s *ProfileService) notifyEmailChanged(ctx context.Context, user *model.User) {
	if s.tasks == nil {
		return
	}

	logger := s.logger.With().
		Str("user_id", user.ID).
		Str("task", job.TaskEmailChanged).
		Logger()

	task, err := job.NewEmailChangedTask(user.Email, user.Name)
	if err != nil {
		logger.Error().Err(err).Msg("failed to build email changed task")
		return
	}

	info, err := s.tasks.EnqueueContext(ctx, task)
	if err != nil {
		logger.Error().Err(err).Msg("failed to enqueue email changed task")
		return
	}

	logger.Info().Str("task_id", info.ID).Msg("enqueued email changed task")
}
