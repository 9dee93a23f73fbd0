package repository

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"socialconnect/internal/domain/entity"
	"socialconnect/internal/domain/repository"
	"socialconnect/pkg/errors"
	"socialconnect/pkg/logger"
)

// prefixSentinel is the highest code point in the private-use area; a range
// query [term, term+prefixSentinel] matches every string with that prefix.
const prefixSentinel = "\uf8ff"

type firestoreUserRepository struct {
	client *firestore.Client
}

func NewFirestoreUserRepository(client *firestore.Client) repository.UserRepository {
	return &firestoreUserRepository{
		client: client,
	}
}

func (r *firestoreUserRepository) Create(ctx context.Context, user *entity.UserProfile) error {
	_, err := r.client.Collection("users").Doc(user.ID).Set(ctx, user)
	if err != nil {
		return errors.Internal("Failed to create user profile", err)
	}
	return nil
}

func (r *firestoreUserRepository) Upsert(ctx context.Context, id string, fields map[string]interface{}) error {
	fields["updatedAt"] = time.Now()

	_, err := r.client.Collection("users").Doc(id).Set(ctx, fields, firestore.MergeAll)
	if err != nil {
		return errors.Internal("Failed to upsert user profile", err)
	}
	return nil
}

func (r *firestoreUserRepository) GetByID(ctx context.Context, id string) (*entity.UserProfile, error) {
	doc, err := r.client.Collection("users").Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.NotFound("User", err)
		}
		return nil, errors.Internal("Failed to get user profile", err)
	}

	var user entity.UserProfile
	if err := doc.DataTo(&user); err != nil {
		return nil, errors.Internal("Failed to parse user data", err)
	}
	user.ID = doc.Ref.ID

	return &user, nil
}

func (r *firestoreUserRepository) GetByEmail(ctx context.Context, email string) (*entity.UserProfile, error) {
	query := r.client.Collection("users").Where("email", "==", email).Limit(1)
	iter := query.Documents(ctx)
	doc, err := iter.Next()
	if err != nil {
		if err == iterator.Done {
			return nil, errors.NotFound("User", nil)
		}
		return nil, errors.Internal("Failed to query user by email", err)
	}

	var user entity.UserProfile
	if err := doc.DataTo(&user); err != nil {
		return nil, errors.Internal("Failed to parse user data", err)
	}
	user.ID = doc.Ref.ID

	return &user, nil
}

func (r *firestoreUserRepository) PrefixSearch(ctx context.Context, field, term string, limit int) ([]*entity.UserProfile, error) {
	query := r.client.Collection("users").
		Where(field, ">=", term).
		Where(field, "<=", term+prefixSentinel).
		Limit(limit)

	docs, err := query.Documents(ctx).GetAll()
	if err != nil {
		return nil, errors.Internal("Failed to search users", err)
	}

	var users []*entity.UserProfile
	for _, doc := range docs {
		var user entity.UserProfile
		if err := doc.DataTo(&user); err != nil {
			logger.Warn("Skipping malformed user document %s: %v", doc.Ref.ID, err)
			continue
		}
		user.ID = doc.Ref.ID
		users = append(users, &user)
	}

	return users, nil
}

func (r *firestoreUserRepository) Subscribe(ctx context.Context, id string, fn func(*entity.UserProfile)) repository.Subscription {
	ref := r.client.Collection("users").Doc(id)

	return listenDocument(ctx, ref, func(snap *firestore.DocumentSnapshot) {
		if !snap.Exists() {
			fn(nil)
			return
		}

		var user entity.UserProfile
		if err := snap.DataTo(&user); err != nil {
			logger.Error("Failed to parse user snapshot %s: %v", id, err)
			return
		}
		user.ID = snap.Ref.ID
		fn(&user)
	})
}
