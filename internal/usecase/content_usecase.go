package usecase

import (
	"context"
	"strings"
	"sync"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"socialconnect/internal/domain/entity"
	"socialconnect/internal/domain/repository"
	"socialconnect/pkg/errors"
	"socialconnect/pkg/utils"
)

const (
	// defaultFeedPageSize caps the global and following feeds when no page
	// size is configured.
	defaultFeedPageSize = 50

	// followingQueryCeiling is the backend's limit on the number of ids an
	// "in" filter may carry. The caller's own id takes one slot.
	followingQueryCeiling = 10
)

type ContentUseCase struct {
	postRepo     repository.PostRepository
	userRepo     repository.UserRepository
	followRepo   repository.FollowRepository
	feedPageSize int
}

func NewContentUseCase(
	postRepo repository.PostRepository,
	userRepo repository.UserRepository,
	followRepo repository.FollowRepository,
	feedPageSize int,
) *ContentUseCase {
	if feedPageSize <= 0 {
		feedPageSize = defaultFeedPageSize
	}
	return &ContentUseCase{
		postRepo:     postRepo,
		userRepo:     userRepo,
		followRepo:   followRepo,
		feedPageSize: feedPageSize,
	}
}

// CreatePost snapshots the author's display name and photo at write time. The
// snapshot is never refreshed if the profile changes later. This is the one
// path that rewrites backend permission and size errors into user-facing
// messages.
func (uc *ContentUseCase) CreatePost(ctx context.Context, uid, text string, image []byte) (*entity.Post, error) {
	if uid == "" {
		return nil, errors.Unauthorized("You must be signed in to post", nil)
	}

	author, err := uc.userRepo.GetByID(ctx, uid)
	if err != nil {
		return nil, err
	}

	authorName := author.DisplayName
	if authorName == "" {
		authorName = "Anonymous"
	}

	imageURL := ""
	if len(image) > 0 {
		imageURL, err = utils.EncodeInlineImage(image)
		if err != nil {
			return nil, err
		}
	}

	post := &entity.Post{
		UserID:     uid,
		UserName:   authorName,
		UserAvatar: author.PhotoURL,
		Text:       text,
		TextLower:  strings.ToLower(text),
		ImageURL:   imageURL,
		Likes:      0,
		LikedBy:    []string{},
	}

	if err := uc.postRepo.Create(ctx, post); err != nil {
		switch status.Code(err) {
		case codes.PermissionDenied:
			return nil, errors.Forbidden("You do not have permission to create posts", err)
		case codes.InvalidArgument, codes.ResourceExhausted:
			return nil, errors.PayloadTooLarge("Post is too large to save", err)
		default:
			return nil, errors.Internal("Failed to create post", err)
		}
	}

	return post, nil
}

// UpdatePost rewrites the text and its lowercase derivative. Authorship is not
// checked here; backend security rules are the authority.
func (uc *ContentUseCase) UpdatePost(ctx context.Context, id, text string) error {
	return uc.postRepo.UpdateText(ctx, id, text, strings.ToLower(text))
}

func (uc *ContentUseCase) DeletePost(ctx context.Context, id string) error {
	return uc.postRepo.Delete(ctx, id)
}

// ToggleLike applies the inverse of the caller's current state: a counter
// increment or decrement plus a liker-set add or remove, as two atomic field
// operations in one call.
func (uc *ContentUseCase) ToggleLike(ctx context.Context, uid, postID string, currentlyLiked bool) error {
	if uid == "" {
		return errors.Unauthorized("You must be signed in to like posts", nil)
	}
	return uc.postRepo.ApplyLike(ctx, postID, uid, !currentlyLiked)
}

func (uc *ContentUseCase) AddComment(ctx context.Context, uid, postID, text string) (*entity.Comment, error) {
	if uid == "" {
		return nil, errors.Unauthorized("You must be signed in to comment", nil)
	}

	author, err := uc.userRepo.GetByID(ctx, uid)
	if err != nil {
		return nil, err
	}

	authorName := author.DisplayName
	if authorName == "" {
		authorName = "Anonymous"
	}

	comment := &entity.Comment{
		PostID:     postID,
		UserID:     uid,
		UserName:   authorName,
		UserAvatar: author.PhotoURL,
		Text:       text,
	}

	if err := uc.postRepo.CreateComment(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

func (uc *ContentUseCase) GetPost(ctx context.Context, id string) (*entity.Post, error) {
	return uc.postRepo.GetByID(ctx, id)
}

func (uc *ContentUseCase) ListFeed(ctx context.Context) ([]*entity.Post, error) {
	return uc.postRepo.List(ctx, uc.feedPageSize)
}

func (uc *ContentUseCase) ListUserPosts(ctx context.Context, authorID string) ([]*entity.Post, error) {
	return uc.postRepo.ListByAuthor(ctx, authorID, uc.feedPageSize)
}

func (uc *ContentUseCase) ListFollowingFeed(ctx context.Context, uid string) ([]*entity.Post, error) {
	follows, err := uc.followRepo.ListFollowing(ctx, uid)
	if err != nil {
		return nil, err
	}
	return uc.postRepo.ListByAuthors(ctx, feedAuthorIDs(uid, follows), uc.feedPageSize)
}

func (uc *ContentUseCase) ListComments(ctx context.Context, postID string) ([]*entity.Comment, error) {
	return uc.postRepo.ListComments(ctx, postID, 0)
}

// SearchPosts is a prefix match on the lowercase text field. Unlike the user
// directory search it has no fallback.
func (uc *ContentUseCase) SearchPosts(ctx context.Context, term string) ([]*entity.Post, error) {
	trimmed := strings.TrimSpace(term)
	if trimmed == "" {
		return nil, nil
	}
	return uc.postRepo.PrefixSearch(ctx, strings.ToLower(trimmed), searchPageSize)
}

func (uc *ContentUseCase) SubscribeFeed(ctx context.Context, fn func([]*entity.Post)) repository.Subscription {
	return uc.postRepo.SubscribeAll(ctx, uc.feedPageSize, fn)
}

func (uc *ContentUseCase) SubscribeUserPosts(ctx context.Context, authorID string, fn func([]*entity.Post)) repository.Subscription {
	return uc.postRepo.SubscribeByAuthor(ctx, authorID, fn)
}

func (uc *ContentUseCase) SubscribeComments(ctx context.Context, postID string, fn func([]*entity.Comment)) repository.Subscription {
	return uc.postRepo.SubscribeComments(ctx, postID, fn)
}

// SubscribeFollowingFeed chains two listeners: an outer one on the caller's
// outgoing follow edges and an inner one on posts by the followed authors.
// Every change to the edge set tears the inner listener down and re-creates
// it with the new author list. The inner listener's lifetime is owned by the
// outer one.
func (uc *ContentUseCase) SubscribeFollowingFeed(ctx context.Context, uid string, fn func([]*entity.Post)) repository.Subscription {
	sub := &followingFeedSubscription{}

	sub.outer = uc.followRepo.SubscribeFollowing(ctx, uid, func(follows []*entity.Follow) {
		authorIDs := feedAuthorIDs(uid, follows)
		sub.replaceInner(func() repository.Subscription {
			return uc.postRepo.SubscribeByAuthors(ctx, authorIDs, uc.feedPageSize, fn)
		})
	})

	return sub
}

// feedAuthorIDs is the follow list truncated to fit the query ceiling, with
// the caller's own id always included.
func feedAuthorIDs(uid string, follows []*entity.Follow) []string {
	authorIDs := make([]string, 0, followingQueryCeiling)
	for _, follow := range follows {
		if len(authorIDs) == followingQueryCeiling-1 {
			break
		}
		authorIDs = append(authorIDs, follow.FollowingID)
	}
	return append(authorIDs, uid)
}

type followingFeedSubscription struct {
	mu      sync.Mutex
	stopped bool
	outer   repository.Subscription
	inner   repository.Subscription
}

// replaceInner fully disposes the current inner listener before creating its
// replacement, so a stale listener can never keep firing alongside the new
// one. It runs on the outer listener's goroutine.
func (s *followingFeedSubscription) replaceInner(open func() repository.Subscription) {
	s.mu.Lock()
	if s.stopped {
		s.mu.Unlock()
		return
	}
	inner := s.inner
	s.inner = nil
	s.mu.Unlock()

	if inner != nil {
		inner.Stop()
	}

	replacement := open()

	s.mu.Lock()
	if s.stopped {
		s.mu.Unlock()
		replacement.Stop()
		return
	}
	s.inner = replacement
	s.mu.Unlock()
}

func (s *followingFeedSubscription) Stop() {
	s.mu.Lock()
	if s.stopped {
		s.mu.Unlock()
		return
	}
	s.stopped = true
	inner := s.inner
	s.inner = nil
	outer := s.outer
	s.mu.Unlock()

	// Outer first: once it has stopped, no replacement can be created. Any
	// replacement racing with this teardown is stopped by replaceInner itself.
	if outer != nil {
		outer.Stop()
	}
	if inner != nil {
		inner.Stop()
	}
}
