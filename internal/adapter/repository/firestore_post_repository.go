package repository

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"socialconnect/internal/domain/entity"
	"socialconnect/internal/domain/repository"
	"socialconnect/pkg/errors"
	"socialconnect/pkg/logger"
)

type firestorePostRepository struct {
	client *firestore.Client
}

func NewFirestorePostRepository(client *firestore.Client) repository.PostRepository {
	return &firestorePostRepository{
		client: client,
	}
}

func (r *firestorePostRepository) Create(ctx context.Context, post *entity.Post) error {
	if post.ID == "" {
		post.ID = uuid.New().String()
	}

	now := time.Now()
	post.CreatedAt = now
	post.UpdatedAt = now
	if post.LikedBy == nil {
		post.LikedBy = []string{}
	}

	_, err := r.client.Collection("posts").Doc(post.ID).Set(ctx, post)
	if err != nil {
		return err
	}

	return nil
}

func (r *firestorePostRepository) GetByID(ctx context.Context, id string) (*entity.Post, error) {
	doc, err := r.client.Collection("posts").Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.NotFound("Post", err)
		}
		return nil, errors.Internal("Failed to get post", err)
	}

	var post entity.Post
	if err := doc.DataTo(&post); err != nil {
		return nil, errors.Internal("Failed to parse post data", err)
	}
	post.ID = doc.Ref.ID

	return &post, nil
}

func (r *firestorePostRepository) UpdateText(ctx context.Context, id, text, textLower string) error {
	_, err := r.client.Collection("posts").Doc(id).Update(ctx, []firestore.Update{
		{Path: "text", Value: text},
		{Path: "textLower", Value: textLower},
		{Path: "updatedAt", Value: time.Now()},
	})
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return errors.NotFound("Post", err)
		}
		return errors.Internal("Failed to update post", err)
	}
	return nil
}

func (r *firestorePostRepository) Delete(ctx context.Context, id string) error {
	_, err := r.client.Collection("posts").Doc(id).Delete(ctx)
	if err != nil {
		return errors.Internal("Failed to delete post", err)
	}
	return nil
}

// ApplyLike issues the counter increment and liker-set mutation in one update
// call. The two field operations are individually atomic but not transactional
// across fields.
func (r *firestorePostRepository) ApplyLike(ctx context.Context, postID, userID string, liked bool) error {
	var updates []firestore.Update
	if liked {
		updates = []firestore.Update{
			{Path: "likes", Value: firestore.Increment(1)},
			{Path: "likedBy", Value: firestore.ArrayUnion(userID)},
		}
	} else {
		updates = []firestore.Update{
			{Path: "likes", Value: firestore.Increment(-1)},
			{Path: "likedBy", Value: firestore.ArrayRemove(userID)},
		}
	}

	_, err := r.client.Collection("posts").Doc(postID).Update(ctx, updates)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return errors.NotFound("Post", err)
		}
		return errors.Internal("Failed to update like", err)
	}
	return nil
}

func (r *firestorePostRepository) List(ctx context.Context, limit int) ([]*entity.Post, error) {
	query := r.client.Collection("posts").OrderBy("createdAt", firestore.Desc).Limit(limit)
	return r.getPosts(ctx, query)
}

func (r *firestorePostRepository) ListByAuthor(ctx context.Context, authorID string, limit int) ([]*entity.Post, error) {
	query := r.client.Collection("posts").
		Where("userId", "==", authorID).
		OrderBy("createdAt", firestore.Desc).
		Limit(limit)
	return r.getPosts(ctx, query)
}

func (r *firestorePostRepository) ListByAuthors(ctx context.Context, authorIDs []string, limit int) ([]*entity.Post, error) {
	query := r.client.Collection("posts").
		Where("userId", "in", authorIDs).
		OrderBy("createdAt", firestore.Desc).
		Limit(limit)
	return r.getPosts(ctx, query)
}

func (r *firestorePostRepository) PrefixSearch(ctx context.Context, term string, limit int) ([]*entity.Post, error) {
	query := r.client.Collection("posts").
		Where("textLower", ">=", term).
		Where("textLower", "<=", term+prefixSentinel).
		Limit(limit)
	return r.getPosts(ctx, query)
}

func (r *firestorePostRepository) CreateComment(ctx context.Context, comment *entity.Comment) error {
	if comment.ID == "" {
		comment.ID = uuid.New().String()
	}
	comment.CreatedAt = time.Now()

	_, err := r.client.Collection("posts").Doc(comment.PostID).Collection("comments").Doc(comment.ID).Set(ctx, comment)
	if err != nil {
		return errors.Internal("Failed to create comment", err)
	}
	return nil
}

func (r *firestorePostRepository) ListComments(ctx context.Context, postID string, limit int) ([]*entity.Comment, error) {
	query := r.client.Collection("posts").Doc(postID).Collection("comments").
		OrderBy("createdAt", firestore.Desc)
	if limit > 0 {
		query = query.Limit(limit)
	}

	docs, err := query.Documents(ctx).GetAll()
	if err != nil {
		return nil, errors.Internal("Failed to list comments", err)
	}

	var comments []*entity.Comment
	for _, doc := range docs {
		var comment entity.Comment
		if err := doc.DataTo(&comment); err != nil {
			logger.Warn("Skipping malformed comment document %s: %v", doc.Ref.ID, err)
			continue
		}
		comment.ID = doc.Ref.ID
		comments = append(comments, &comment)
	}

	return comments, nil
}

func (r *firestorePostRepository) SubscribeAll(ctx context.Context, limit int, fn func([]*entity.Post)) repository.Subscription {
	query := r.client.Collection("posts").OrderBy("createdAt", firestore.Desc).Limit(limit)
	return r.listenPosts(ctx, query, fn)
}

func (r *firestorePostRepository) SubscribeByAuthor(ctx context.Context, authorID string, fn func([]*entity.Post)) repository.Subscription {
	query := r.client.Collection("posts").
		Where("userId", "==", authorID).
		OrderBy("createdAt", firestore.Desc)
	return r.listenPosts(ctx, query, fn)
}

func (r *firestorePostRepository) SubscribeByAuthors(ctx context.Context, authorIDs []string, limit int, fn func([]*entity.Post)) repository.Subscription {
	query := r.client.Collection("posts").
		Where("userId", "in", authorIDs).
		OrderBy("createdAt", firestore.Desc).
		Limit(limit)
	return r.listenPosts(ctx, query, fn)
}

func (r *firestorePostRepository) SubscribeComments(ctx context.Context, postID string, fn func([]*entity.Comment)) repository.Subscription {
	query := r.client.Collection("posts").Doc(postID).Collection("comments").
		OrderBy("createdAt", firestore.Desc)

	return listenQuery(ctx, query, func(snap *firestore.QuerySnapshot) {
		docs, err := snap.Documents.GetAll()
		if err != nil {
			logger.Error("Failed to read comment snapshot for post %s: %v", postID, err)
			return
		}

		comments := make([]*entity.Comment, 0, len(docs))
		for _, doc := range docs {
			var comment entity.Comment
			if err := doc.DataTo(&comment); err != nil {
				logger.Warn("Skipping malformed comment document %s: %v", doc.Ref.ID, err)
				continue
			}
			comment.ID = doc.Ref.ID
			comments = append(comments, &comment)
		}
		fn(comments)
	})
}

func (r *firestorePostRepository) listenPosts(ctx context.Context, query firestore.Query, fn func([]*entity.Post)) repository.Subscription {
	return listenQuery(ctx, query, func(snap *firestore.QuerySnapshot) {
		docs, err := snap.Documents.GetAll()
		if err != nil {
			logger.Error("Failed to read post snapshot: %v", err)
			return
		}
		fn(decodePosts(docs))
	})
}

func (r *firestorePostRepository) getPosts(ctx context.Context, query firestore.Query) ([]*entity.Post, error) {
	docs, err := query.Documents(ctx).GetAll()
	if err != nil {
		return nil, errors.Internal("Failed to fetch posts", err)
	}
	return decodePosts(docs), nil
}

func decodePosts(docs []*firestore.DocumentSnapshot) []*entity.Post {
	posts := make([]*entity.Post, 0, len(docs))
	for _, doc := range docs {
		var post entity.Post
		if err := doc.DataTo(&post); err != nil {
			logger.Warn("Skipping malformed post document %s: %v", doc.Ref.ID, err)
			continue
		}
		post.ID = doc.Ref.ID
		posts = append(posts, &post)
	}
	return posts
}
