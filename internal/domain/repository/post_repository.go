package repository

import (
	"context"

	"socialconnect/internal/domain/entity"
)

type PostRepository interface {
	Create(ctx context.Context, post *entity.Post) error
	GetByID(ctx context.Context, id string) (*entity.Post, error)
	UpdateText(ctx context.Context, id, text, textLower string) error
	Delete(ctx context.Context, id string) error
	// ApplyLike issues the counter increment and liker-set mutation as two
	// atomic field operations in a single update call.
	ApplyLike(ctx context.Context, postID, userID string, liked bool) error

	List(ctx context.Context, limit int) ([]*entity.Post, error)
	ListByAuthor(ctx context.Context, authorID string, limit int) ([]*entity.Post, error)
	ListByAuthors(ctx context.Context, authorIDs []string, limit int) ([]*entity.Post, error)
	PrefixSearch(ctx context.Context, term string, limit int) ([]*entity.Post, error)

	CreateComment(ctx context.Context, comment *entity.Comment) error
	ListComments(ctx context.Context, postID string, limit int) ([]*entity.Comment, error)

	SubscribeAll(ctx context.Context, limit int, fn func([]*entity.Post)) Subscription
	SubscribeByAuthor(ctx context.Context, authorID string, fn func([]*entity.Post)) Subscription
	SubscribeByAuthors(ctx context.Context, authorIDs []string, limit int, fn func([]*entity.Post)) Subscription
	SubscribeComments(ctx context.Context, postID string, fn func([]*entity.Comment)) Subscription
}
