package services

import (
	"context"
	"time"

	"github.com/avolkov/miniclub/internal/client/backend"
	"github.com/avolkov/miniclub/internal/client/models"
	"github.com/avolkov/miniclub/internal/client/session"
)

// AchievementService exposes the achievement catalogue.
type AchievementService interface {
	// Mine returns only unlocked achievements.
	Mine(ctx context.Context) ([]models.Achievement, error)
	// All returns the full catalogue, unlocked entries first.
	All(ctx context.Context) ([]models.Achievement, error)
}

type achievementService struct {
	client  backend.Client
	store   *session.Store
	timeout time.Duration
}

func NewAchievementService(client backend.Client, store *session.Store) AchievementService {
	return &achievementService{client: client, store: store, timeout: defaultTimeout}
}

func (s *achievementService) Mine(ctx context.Context) ([]models.Achievement, error) {
	credential, err := currentCredential(s.store)
	if err != nil {
		return nil, err
	}

	callCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	achievements, err := s.client.MyAchievements(callCtx, credential)
	if err != nil {
		return nil, signOutOnUnauthorized(ctx, s.store, err)
	}
	return achievements, nil
}

func (s *achievementService) All(ctx context.Context) ([]models.Achievement, error) {
	credential, err := currentCredential(s.store)
	if err != nil {
		return nil, err
	}

	callCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	achievements, err := s.client.AllAchievements(callCtx, credential)
	if err != nil {
		return nil, signOutOnUnauthorized(ctx, s.store, err)
	}
	return achievements, nil
}
