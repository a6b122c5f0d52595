package services

import (
	"context"
	"time"

	"github.com/avolkov/miniclub/internal/client/backend"
	"github.com/avolkov/miniclub/internal/client/models"
	"github.com/avolkov/miniclub/internal/client/session"
)

// ActivityService exposes the club schedule and enrollment actions.
type ActivityService interface {
	List(ctx context.Context) ([]models.Activity, error)
	Enroll(ctx context.Context, activityID int64) error
	Cancel(ctx context.Context, activityID int64) error
}

type activityService struct {
	client  backend.Client
	store   *session.Store
	timeout time.Duration
}

func NewActivityService(client backend.Client, store *session.Store) ActivityService {
	return &activityService{client: client, store: store, timeout: defaultTimeout}
}

func (s *activityService) List(ctx context.Context) ([]models.Activity, error) {
	credential, err := currentCredential(s.store)
	if err != nil {
		return nil, err
	}

	callCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	activities, err := s.client.ListActivities(callCtx, credential)
	if err != nil {
		return nil, signOutOnUnauthorized(ctx, s.store, err)
	}
	return activities, nil
}

func (s *activityService) Enroll(ctx context.Context, activityID int64) error {
	credential, err := currentCredential(s.store)
	if err != nil {
		return err
	}

	callCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	if err := s.client.EnrollActivity(callCtx, credential, activityID); err != nil {
		return signOutOnUnauthorized(ctx, s.store, err)
	}
	return nil
}

func (s *activityService) Cancel(ctx context.Context, activityID int64) error {
	credential, err := currentCredential(s.store)
	if err != nil {
		return err
	}

	callCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	if err := s.client.CancelActivity(callCtx, credential, activityID); err != nil {
		return signOutOnUnauthorized(ctx, s.store, err)
	}
	return nil
}
