package usecase

import (
	"context"
	"strings"
	"time"

	"socialconnect/internal/domain/entity"
	"socialconnect/internal/domain/repository"
	"socialconnect/pkg/errors"
)

type fakeSubscription struct {
	stopped bool
	onStop  func()
}

func (s *fakeSubscription) Stop() {
	s.stopped = true
	if s.onStop != nil {
		s.onStop()
	}
}

type fakeUserRepo struct {
	users         map[string]*entity.UserProfile
	upserts       []map[string]interface{}
	emailErr      error
	searchResults map[string][]*entity.UserProfile
	searchFields  []string
	searchTerms   []string
	searchLimits  []int
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		users:         make(map[string]*entity.UserProfile),
		searchResults: make(map[string][]*entity.UserProfile),
	}
}

func (f *fakeUserRepo) Create(ctx context.Context, user *entity.UserProfile) error {
	f.users[user.ID] = user
	return nil
}

func (f *fakeUserRepo) Upsert(ctx context.Context, id string, fields map[string]interface{}) error {
	f.upserts = append(f.upserts, fields)

	user, ok := f.users[id]
	if !ok {
		user = &entity.UserProfile{ID: id}
		f.users[id] = user
	}
	if v, ok := fields["displayName"].(string); ok {
		user.DisplayName = v
	}
	if v, ok := fields["displayNameLower"].(string); ok {
		user.DisplayNameLower = v
	}
	if v, ok := fields["bio"].(string); ok {
		user.Bio = v
	}
	if v, ok := fields["photoURL"].(string); ok {
		user.PhotoURL = v
	}
	if v, ok := fields["deviceToken"].(string); ok {
		user.DeviceToken = v
	}
	return nil
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id string) (*entity.UserProfile, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, errors.NotFound("User", nil)
	}
	return user, nil
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*entity.UserProfile, error) {
	if f.emailErr != nil {
		return nil, f.emailErr
	}
	for _, user := range f.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, errors.NotFound("User", nil)
}

func (f *fakeUserRepo) PrefixSearch(ctx context.Context, field, term string, limit int) ([]*entity.UserProfile, error) {
	f.searchFields = append(f.searchFields, field)
	f.searchTerms = append(f.searchTerms, term)
	f.searchLimits = append(f.searchLimits, limit)
	return f.searchResults[field], nil
}

func (f *fakeUserRepo) Subscribe(ctx context.Context, id string, fn func(*entity.UserProfile)) repository.Subscription {
	return &fakeSubscription{}
}

type fakeFollowRepo struct {
	edges     map[string]*entity.Follow
	following []*entity.Follow
	outerFn   func([]*entity.Follow)
	outerSub  *fakeSubscription
}

func newFakeFollowRepo() *fakeFollowRepo {
	return &fakeFollowRepo{edges: make(map[string]*entity.Follow)}
}

func (f *fakeFollowRepo) Set(ctx context.Context, follow *entity.Follow) error {
	f.edges[follow.ID] = follow
	return nil
}

func (f *fakeFollowRepo) Delete(ctx context.Context, id string) error {
	delete(f.edges, id)
	return nil
}

func (f *fakeFollowRepo) Exists(ctx context.Context, id string) (bool, error) {
	_, ok := f.edges[id]
	return ok, nil
}

func (f *fakeFollowRepo) CountFollowers(ctx context.Context, userID string) (int64, error) {
	var n int64
	for _, edge := range f.edges {
		if edge.FollowingID == userID {
			n++
		}
	}
	return n, nil
}

func (f *fakeFollowRepo) CountFollowing(ctx context.Context, userID string) (int64, error) {
	var n int64
	for _, edge := range f.edges {
		if edge.FollowerID == userID {
			n++
		}
	}
	return n, nil
}

func (f *fakeFollowRepo) ListFollowing(ctx context.Context, userID string) ([]*entity.Follow, error) {
	return f.following, nil
}

func (f *fakeFollowRepo) SubscribeFollowing(ctx context.Context, userID string, fn func([]*entity.Follow)) repository.Subscription {
	f.outerFn = fn
	f.outerSub = &fakeSubscription{}
	return f.outerSub
}

type fakeFriendRepo struct {
	requests    map[string]*entity.FriendRequest
	friendships map[string]*entity.Friendship
}

func newFakeFriendRepo() *fakeFriendRepo {
	return &fakeFriendRepo{
		requests:    make(map[string]*entity.FriendRequest),
		friendships: make(map[string]*entity.Friendship),
	}
}

func (f *fakeFriendRepo) CreateRequest(ctx context.Context, request *entity.FriendRequest) error {
	f.requests[request.ID] = request
	return nil
}

func (f *fakeFriendRepo) GetRequest(ctx context.Context, id string) (*entity.FriendRequest, error) {
	request, ok := f.requests[id]
	if !ok {
		return nil, errors.NotFound("Friend request", nil)
	}
	return request, nil
}

func (f *fakeFriendRepo) DeleteRequest(ctx context.Context, id string) error {
	delete(f.requests, id)
	return nil
}

func (f *fakeFriendRepo) ListPendingRequests(ctx context.Context, toUID string) ([]*entity.FriendRequest, error) {
	var pending []*entity.FriendRequest
	for _, request := range f.requests {
		if request.ToUID == toUID && request.Status == entity.FriendRequestPending {
			pending = append(pending, request)
		}
	}
	return pending, nil
}

func (f *fakeFriendRepo) SubscribePendingRequests(ctx context.Context, toUID string, fn func([]*entity.FriendRequest)) repository.Subscription {
	return &fakeSubscription{}
}

func (f *fakeFriendRepo) CreateFriendship(ctx context.Context, friendship *entity.Friendship) error {
	f.friendships[friendship.ID] = friendship
	return nil
}

func (f *fakeFriendRepo) HasFriendship(ctx context.Context, id string) (bool, error) {
	_, ok := f.friendships[id]
	return ok, nil
}

func (f *fakeFriendRepo) ListFriends(ctx context.Context, uid string) ([]*entity.Friendship, error) {
	var friends []*entity.Friendship
	for _, friendship := range f.friendships {
		if friendship.UID == uid {
			friends = append(friends, friendship)
		}
	}
	return friends, nil
}

type likeCall struct {
	postID string
	userID string
	liked  bool
}

type fakePostRepo struct {
	posts           map[string]*entity.Post
	created         []*entity.Post
	createErr       error
	listLimits      []int
	likes           []likeCall
	listByAuthorsID [][]string
	searchTerms     []string
	searchLimits    []int
	comments        []*entity.Comment

	// openLog records inner listener lifecycle for the following feed.
	openLog *[]string
}

func newFakePostRepo() *fakePostRepo {
	return &fakePostRepo{posts: make(map[string]*entity.Post)}
}

func (f *fakePostRepo) Create(ctx context.Context, post *entity.Post) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.created = append(f.created, post)
	f.posts[post.ID] = post
	return nil
}

func (f *fakePostRepo) GetByID(ctx context.Context, id string) (*entity.Post, error) {
	post, ok := f.posts[id]
	if !ok {
		return nil, errors.NotFound("Post", nil)
	}
	return post, nil
}

func (f *fakePostRepo) UpdateText(ctx context.Context, id, text, textLower string) error {
	post, ok := f.posts[id]
	if !ok {
		return errors.NotFound("Post", nil)
	}
	post.Text = text
	post.TextLower = textLower
	return nil
}

func (f *fakePostRepo) Delete(ctx context.Context, id string) error {
	delete(f.posts, id)
	return nil
}

func (f *fakePostRepo) ApplyLike(ctx context.Context, postID, userID string, liked bool) error {
	f.likes = append(f.likes, likeCall{postID: postID, userID: userID, liked: liked})
	return nil
}

func (f *fakePostRepo) List(ctx context.Context, limit int) ([]*entity.Post, error) {
	f.listLimits = append(f.listLimits, limit)
	return nil, nil
}

func (f *fakePostRepo) ListByAuthor(ctx context.Context, authorID string, limit int) ([]*entity.Post, error) {
	return nil, nil
}

func (f *fakePostRepo) ListByAuthors(ctx context.Context, authorIDs []string, limit int) ([]*entity.Post, error) {
	f.listByAuthorsID = append(f.listByAuthorsID, authorIDs)
	return nil, nil
}

func (f *fakePostRepo) PrefixSearch(ctx context.Context, term string, limit int) ([]*entity.Post, error) {
	f.searchTerms = append(f.searchTerms, term)
	f.searchLimits = append(f.searchLimits, limit)
	return nil, nil
}

func (f *fakePostRepo) CreateComment(ctx context.Context, comment *entity.Comment) error {
	f.comments = append(f.comments, comment)
	return nil
}

func (f *fakePostRepo) ListComments(ctx context.Context, postID string, limit int) ([]*entity.Comment, error) {
	return nil, nil
}

func (f *fakePostRepo) SubscribeAll(ctx context.Context, limit int, fn func([]*entity.Post)) repository.Subscription {
	return &fakeSubscription{}
}

func (f *fakePostRepo) SubscribeByAuthor(ctx context.Context, authorID string, fn func([]*entity.Post)) repository.Subscription {
	return &fakeSubscription{}
}

func (f *fakePostRepo) SubscribeByAuthors(ctx context.Context, authorIDs []string, limit int, fn func([]*entity.Post)) repository.Subscription {
	if f.openLog != nil {
		*f.openLog = append(*f.openLog, "open:"+strings.Join(authorIDs, ","))
		log := f.openLog
		return &fakeSubscription{onStop: func() {
			*log = append(*log, "stop-inner")
		}}
	}
	return &fakeSubscription{}
}

func (f *fakePostRepo) SubscribeComments(ctx context.Context, postID string, fn func([]*entity.Comment)) repository.Subscription {
	return &fakeSubscription{}
}

type lastMessageCall struct {
	roomID string
	text   string
	at     time.Time
}

type listMessagesCall struct {
	limit  int
	offset int
}

type fakeChatRepo struct {
	rooms        map[string]*entity.ChatRoom
	messages     []*entity.ChatMessage
	lastMessages []lastMessageCall
	listCalls    []listMessagesCall
}

func newFakeChatRepo() *fakeChatRepo {
	return &fakeChatRepo{rooms: make(map[string]*entity.ChatRoom)}
}

func (f *fakeChatRepo) GetRoom(ctx context.Context, id string) (*entity.ChatRoom, error) {
	room, ok := f.rooms[id]
	if !ok {
		return nil, errors.NotFound("Chat room", nil)
	}
	return room, nil
}

func (f *fakeChatRepo) CreateRoom(ctx context.Context, room *entity.ChatRoom) error {
	f.rooms[room.ID] = room
	return nil
}

func (f *fakeChatRepo) ListRooms(ctx context.Context, userID string) ([]*entity.ChatRoom, error) {
	var rooms []*entity.ChatRoom
	for _, room := range f.rooms {
		for _, p := range room.Participants {
			if p == userID {
				rooms = append(rooms, room)
				break
			}
		}
	}
	return rooms, nil
}

func (f *fakeChatRepo) SubscribeRooms(ctx context.Context, userID string, fn func([]*entity.ChatRoom)) repository.Subscription {
	return &fakeSubscription{}
}

func (f *fakeChatRepo) CreateMessage(ctx context.Context, message *entity.ChatMessage) error {
	f.messages = append(f.messages, message)
	return nil
}

func (f *fakeChatRepo) SetLastMessage(ctx context.Context, roomID, text string, at time.Time) error {
	f.lastMessages = append(f.lastMessages, lastMessageCall{roomID: roomID, text: text, at: at})
	return nil
}

func (f *fakeChatRepo) ListMessages(ctx context.Context, roomID string, limit, offset int) ([]*entity.ChatMessage, error) {
	f.listCalls = append(f.listCalls, listMessagesCall{limit: limit, offset: offset})

	var messages []*entity.ChatMessage
	for _, message := range f.messages {
		if message.RoomID == roomID {
			messages = append(messages, message)
		}
	}
	if offset >= len(messages) {
		return nil, nil
	}
	messages = messages[offset:]
	if limit > 0 && len(messages) > limit {
		messages = messages[:limit]
	}
	return messages, nil
}

func (f *fakeChatRepo) CountMessages(ctx context.Context, roomID string) (int64, error) {
	var n int64
	for _, message := range f.messages {
		if message.RoomID == roomID {
			n++
		}
	}
	return n, nil
}

func (f *fakeChatRepo) SubscribeMessages(ctx context.Context, roomID string, limit int, fn func([]*entity.ChatMessage)) repository.Subscription {
	return &fakeSubscription{}
}

type pushCall struct {
	token string
	title string
	body  string
	data  map[string]string
}

type fakeMessenger struct {
	sent    []pushCall
	sendErr error
}

func (f *fakeMessenger) SendToDevice(ctx context.Context, token, title, body string, data map[string]string) error {
	if f.sendErr != nil {
		return f.sendErr
	}
	f.sent = append(f.sent, pushCall{token: token, title: title, body: body, data: data})
	return nil
}

type fakeAuthClient struct {
	nextUID     string
	tokens      map[string]string
	signInErr   error
	resetEmails []string
	updates     []string
}

func newFakeAuthClient() *fakeAuthClient {
	return &fakeAuthClient{tokens: make(map[string]string)}
}

func (f *fakeAuthClient) CreateUser(ctx context.Context, email, password, displayName string) (string, error) {
	return f.nextUID, nil
}

func (f *fakeAuthClient) VerifyToken(ctx context.Context, token string) (string, error) {
	uid, ok := f.tokens[token]
	if !ok {
		return "", errors.Unauthorized("Invalid or expired token", nil)
	}
	return uid, nil
}

func (f *fakeAuthClient) SignInWithEmailPassword(email, password string) (string, error) {
	if f.signInErr != nil {
		return "", f.signInErr
	}
	return "token-" + email, nil
}

func (f *fakeAuthClient) SendPasswordResetEmail(email string) error {
	f.resetEmails = append(f.resetEmails, email)
	return nil
}

func (f *fakeAuthClient) UpdateUserProfile(ctx context.Context, uid, displayName, photoURL string) error {
	f.updates = append(f.updates, uid)
	return nil
}
