package repository

import (
	"context"

	"socialconnect/internal/domain/entity"
)

type FriendRepository interface {
	CreateRequest(ctx context.Context, request *entity.FriendRequest) error
	GetRequest(ctx context.Context, id string) (*entity.FriendRequest, error)
	DeleteRequest(ctx context.Context, id string) error
	ListPendingRequests(ctx context.Context, toUID string) ([]*entity.FriendRequest, error)
	SubscribePendingRequests(ctx context.Context, toUID string, fn func([]*entity.FriendRequest)) Subscription

	CreateFriendship(ctx context.Context, friendship *entity.Friendship) error
	HasFriendship(ctx context.Context, id string) (bool, error)
	ListFriends(ctx context.Context, uid string) ([]*entity.Friendship, error)
}
