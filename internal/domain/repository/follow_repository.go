package repository

import (
	"context"

	"socialconnect/internal/domain/entity"
)

type FollowRepository interface {
	// Set writes the edge document under its deterministic id; writing an
	// existing edge is a no-op at the data level.
	Set(ctx context.Context, follow *entity.Follow) error
	Delete(ctx context.Context, id string) error
	Exists(ctx context.Context, id string) (bool, error)
	CountFollowers(ctx context.Context, userID string) (int64, error)
	CountFollowing(ctx context.Context, userID string) (int64, error)
	ListFollowing(ctx context.Context, userID string) ([]*entity.Follow, error)
	SubscribeFollowing(ctx context.Context, userID string, fn func([]*entity.Follow)) Subscription
}
