package repository

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"socialconnect/internal/domain/entity"
	"socialconnect/internal/domain/repository"
	"socialconnect/pkg/errors"
	"socialconnect/pkg/logger"
)

type firestoreFollowRepository struct {
	client *firestore.Client
}

func NewFirestoreFollowRepository(client *firestore.Client) repository.FollowRepository {
	return &firestoreFollowRepository{
		client: client,
	}
}

func (r *firestoreFollowRepository) Set(ctx context.Context, follow *entity.Follow) error {
	if follow.CreatedAt.IsZero() {
		follow.CreatedAt = time.Now()
	}

	_, err := r.client.Collection("follows").Doc(follow.ID).Set(ctx, follow)
	if err != nil {
		return errors.Internal("Failed to create follow edge", err)
	}
	return nil
}

func (r *firestoreFollowRepository) Delete(ctx context.Context, id string) error {
	_, err := r.client.Collection("follows").Doc(id).Delete(ctx)
	if err != nil {
		return errors.Internal("Failed to delete follow edge", err)
	}
	return nil
}

func (r *firestoreFollowRepository) Exists(ctx context.Context, id string) (bool, error) {
	_, err := r.client.Collection("follows").Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return false, nil
		}
		return false, errors.Internal("Failed to check follow edge", err)
	}
	return true, nil
}

// CountFollowers and CountFollowing are independent reads; under concurrent
// edge mutation the two counts may reflect different snapshots.
func (r *firestoreFollowRepository) CountFollowers(ctx context.Context, userID string) (int64, error) {
	return r.count(ctx, "followingId", userID)
}

func (r *firestoreFollowRepository) CountFollowing(ctx context.Context, userID string) (int64, error) {
	return r.count(ctx, "followerId", userID)
}

func (r *firestoreFollowRepository) count(ctx context.Context, field, userID string) (int64, error) {
	docs, err := r.client.Collection("follows").Where(field, "==", userID).Documents(ctx).GetAll()
	if err != nil {
		return 0, errors.Internal("Failed to count follow edges", err)
	}
	return int64(len(docs)), nil
}

func (r *firestoreFollowRepository) ListFollowing(ctx context.Context, userID string) ([]*entity.Follow, error) {
	docs, err := r.client.Collection("follows").Where("followerId", "==", userID).Documents(ctx).GetAll()
	if err != nil {
		return nil, errors.Internal("Failed to list follow edges", err)
	}
	return decodeFollows(docs), nil
}

func (r *firestoreFollowRepository) SubscribeFollowing(ctx context.Context, userID string, fn func([]*entity.Follow)) repository.Subscription {
	query := r.client.Collection("follows").Where("followerId", "==", userID)

	return listenQuery(ctx, query, func(snap *firestore.QuerySnapshot) {
		docs, err := snap.Documents.GetAll()
		if err != nil {
			logger.Error("Failed to read follow snapshot for %s: %v", userID, err)
			return
		}
		fn(decodeFollows(docs))
	})
}

func decodeFollows(docs []*firestore.DocumentSnapshot) []*entity.Follow {
	follows := make([]*entity.Follow, 0, len(docs))
	for _, doc := range docs {
		var follow entity.Follow
		if err := doc.DataTo(&follow); err != nil {
			logger.Warn("Skipping malformed follow document %s: %v", doc.Ref.ID, err)
			continue
		}
		follow.ID = doc.Ref.ID
		follows = append(follows, &follow)
	}
	return follows
}
