package repository

import (
	"context"

	"socialconnect/internal/domain/entity"
)

type UserRepository interface {
	Create(ctx context.Context, user *entity.UserProfile) error
	// Upsert merges fields into the profile document, creating it if absent.
	Upsert(ctx context.Context, id string, fields map[string]interface{}) error
	GetByID(ctx context.Context, id string) (*entity.UserProfile, error)
	GetByEmail(ctx context.Context, email string) (*entity.UserProfile, error)
	// PrefixSearch runs a lexicographic range query [term, term+sentinel) on
	// the given field.
	PrefixSearch(ctx context.Context, field, term string, limit int) ([]*entity.UserProfile, error)
	// Subscribe registers a point listener on a profile document. The callback
	// receives nil while the document does not exist.
	Subscribe(ctx context.Context, id string, fn func(*entity.UserProfile)) Subscription
}
