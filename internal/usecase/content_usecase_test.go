package usecase

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"socialconnect/internal/domain/entity"
	"socialconnect/pkg/errors"
)

func newContentFixture() (*ContentUseCase, *fakePostRepo, *fakeUserRepo, *fakeFollowRepo) {
	postRepo := newFakePostRepo()
	userRepo := newFakeUserRepo()
	followRepo := newFakeFollowRepo()
	uc := NewContentUseCase(postRepo, userRepo, followRepo, 0)
	return uc, postRepo, userRepo, followRepo
}

func TestFeedPageSizeFromConfig(t *testing.T) {
	postRepo := newFakePostRepo()
	uc := NewContentUseCase(postRepo, newFakeUserRepo(), newFakeFollowRepo(), 25)

	_, err := uc.ListFeed(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []int{25}, postRepo.listLimits)
}

func TestFeedPageSizeDefaultsWhenUnset(t *testing.T) {
	uc, postRepo, _, _ := newContentFixture()

	_, err := uc.ListFeed(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []int{defaultFeedPageSize}, postRepo.listLimits)
}

func TestCreatePostSnapshotsAuthor(t *testing.T) {
	uc, postRepo, userRepo, _ := newContentFixture()

	userRepo.users["u1"] = &entity.UserProfile{
		ID:          "u1",
		DisplayName: "Alice",
		PhotoURL:    "data:image/jpeg;base64,xx",
	}

	post, err := uc.CreatePost(context.Background(), "u1", "Hello World", nil)
	require.NoError(t, err)

	assert.Equal(t, "u1", post.UserID)
	assert.Equal(t, "Alice", post.UserName)
	assert.Equal(t, "data:image/jpeg;base64,xx", post.UserAvatar)
	assert.Equal(t, "hello world", post.TextLower)
	assert.Equal(t, int64(0), post.Likes)
	assert.NotNil(t, post.LikedBy)
	assert.Len(t, postRepo.created, 1)
}

func TestCreatePostRequiresIdentity(t *testing.T) {
	uc, _, _, _ := newContentFixture()

	_, err := uc.CreatePost(context.Background(), "", "hi", nil)

	assert.True(t, errors.Is(err, "UNAUTHORIZED"))
}

func TestCreatePostAnonymousFallback(t *testing.T) {
	uc, _, userRepo, _ := newContentFixture()

	userRepo.users["u1"] = &entity.UserProfile{ID: "u1"}

	post, err := uc.CreatePost(context.Background(), "u1", "hi", nil)
	require.NoError(t, err)

	assert.Equal(t, "Anonymous", post.UserName)
}

func TestCreatePostRewritesBackendErrors(t *testing.T) {
	cases := []struct {
		backend codes.Code
		want    string
	}{
		{codes.PermissionDenied, "FORBIDDEN"},
		{codes.InvalidArgument, "PAYLOAD_TOO_LARGE"},
		{codes.ResourceExhausted, "PAYLOAD_TOO_LARGE"},
		{codes.Unavailable, "INTERNAL_ERROR"},
	}

	for _, tc := range cases {
		t.Run(tc.want, func(t *testing.T) {
			uc, postRepo, userRepo, _ := newContentFixture()
			userRepo.users["u1"] = &entity.UserProfile{ID: "u1", DisplayName: "Alice"}
			postRepo.createErr = status.Error(tc.backend, "backend said no")

			_, err := uc.CreatePost(context.Background(), "u1", "hi", nil)

			assert.True(t, errors.Is(err, tc.want), "got %v", err)
		})
	}
}

func TestUpdatePostDerivesLowercase(t *testing.T) {
	uc, postRepo, _, _ := newContentFixture()

	postRepo.posts["p1"] = &entity.Post{ID: "p1", Text: "old"}

	require.NoError(t, uc.UpdatePost(context.Background(), "p1", "New TEXT"))

	assert.Equal(t, "New TEXT", postRepo.posts["p1"].Text)
	assert.Equal(t, "new text", postRepo.posts["p1"].TextLower)
}

func TestToggleLikeAppliesInverse(t *testing.T) {
	uc, postRepo, _, _ := newContentFixture()
	ctx := context.Background()

	require.NoError(t, uc.ToggleLike(ctx, "u1", "p1", false))
	require.NoError(t, uc.ToggleLike(ctx, "u1", "p1", true))

	require.Len(t, postRepo.likes, 2)
	assert.True(t, postRepo.likes[0].liked)
	assert.False(t, postRepo.likes[1].liked)
	assert.Equal(t, "u1", postRepo.likes[0].userID)
}

func TestToggleLikeRequiresIdentity(t *testing.T) {
	uc, _, _, _ := newContentFixture()

	err := uc.ToggleLike(context.Background(), "", "p1", false)

	assert.True(t, errors.Is(err, "UNAUTHORIZED"))
}

func TestSearchPostsNormalizesTerm(t *testing.T) {
	uc, postRepo, _, _ := newContentFixture()
	ctx := context.Background()

	_, err := uc.SearchPosts(ctx, "  GoLang  ")
	require.NoError(t, err)

	require.Len(t, postRepo.searchTerms, 1)
	assert.Equal(t, "golang", postRepo.searchTerms[0])
	assert.Equal(t, searchPageSize, postRepo.searchLimits[0])
}

func TestSearchPostsEmptyTermShortCircuits(t *testing.T) {
	uc, postRepo, _, _ := newContentFixture()

	posts, err := uc.SearchPosts(context.Background(), "   ")
	require.NoError(t, err)

	assert.Nil(t, posts)
	assert.Empty(t, postRepo.searchTerms)
}

func TestFollowingFeedCapsAuthorList(t *testing.T) {
	uc, postRepo, _, followRepo := newContentFixture()

	for i := 0; i < 12; i++ {
		followRepo.following = append(followRepo.following, &entity.Follow{
			FollowerID:  "me",
			FollowingID: fmt.Sprintf("f%02d", i),
		})
	}

	_, err := uc.ListFollowingFeed(context.Background(), "me")
	require.NoError(t, err)

	require.Len(t, postRepo.listByAuthorsID, 1)
	authorIDs := postRepo.listByAuthorsID[0]
	require.Len(t, authorIDs, followingQueryCeiling)
	assert.Equal(t, "me", authorIDs[len(authorIDs)-1])
	assert.Equal(t, "f00", authorIDs[0])
	assert.Equal(t, "f08", authorIDs[len(authorIDs)-2])
}

func TestFollowingFeedIncludesSelfWithNoFollows(t *testing.T) {
	uc, postRepo, _, _ := newContentFixture()

	_, err := uc.ListFollowingFeed(context.Background(), "me")
	require.NoError(t, err)

	require.Len(t, postRepo.listByAuthorsID, 1)
	assert.Equal(t, []string{"me"}, postRepo.listByAuthorsID[0])
}

func TestFollowingFeedSubscriptionReplacesInner(t *testing.T) {
	uc, postRepo, _, followRepo := newContentFixture()

	var log []string
	postRepo.openLog = &log

	sub := uc.SubscribeFollowingFeed(context.Background(), "me", func([]*entity.Post) {})
	require.NotNil(t, followRepo.outerFn)

	followRepo.outerFn([]*entity.Follow{{FollowingID: "a"}})
	followRepo.outerFn([]*entity.Follow{{FollowingID: "a"}, {FollowingID: "b"}})

	// The first inner listener must be fully disposed before its
	// replacement is created.
	assert.Equal(t, []string{"open:a,me", "stop-inner", "open:a,b,me"}, log)

	sub.Stop()
	assert.True(t, followRepo.outerSub.stopped)
	assert.Equal(t, "stop-inner", log[len(log)-1])
}

func TestFollowingFeedSubscriptionStopBeforeFirstEmission(t *testing.T) {
	uc, postRepo, _, followRepo := newContentFixture()

	var log []string
	postRepo.openLog = &log

	sub := uc.SubscribeFollowingFeed(context.Background(), "me", func([]*entity.Post) {})
	sub.Stop()

	// A late emission after Stop must not leave a live inner listener.
	followRepo.outerFn([]*entity.Follow{{FollowingID: "a"}})

	assert.True(t, followRepo.outerSub.stopped)
	assert.Empty(t, log)
}
