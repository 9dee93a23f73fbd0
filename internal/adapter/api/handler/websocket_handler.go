package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"

	gorillaws "github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	"socialconnect/internal/adapter/api/middleware"
	"socialconnect/internal/domain/entity"
	"socialconnect/internal/domain/repository"
	ws "socialconnect/internal/infrastructure/websocket"
	"socialconnect/internal/usecase"
	"socialconnect/pkg/errors"
	"socialconnect/pkg/logger"
)

var upgrader = gorillaws.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // You should restrict this in production
	},
}

// WebSocketHandler is the live-subscription gateway. Each connection owns a
// set of named streams; every stream is one Firestore listener, disposed on
// unsubscribe and when the connection closes. This mirrors the screen-owns-
// listener lifecycle of the mobile client.
type WebSocketHandler struct {
	wsManager      *ws.Manager
	authMiddleware *middleware.AuthMiddleware
	profileUseCase *usecase.ProfileUseCase
	contentUseCase *usecase.ContentUseCase
	socialUseCase  *usecase.SocialUseCase
	chatUseCase    *usecase.ChatUseCase

	mu      sync.Mutex
	streams map[*ws.Client]map[string]repository.Subscription
}

func NewWebSocketHandler(
	wsManager *ws.Manager,
	authMiddleware *middleware.AuthMiddleware,
	profileUseCase *usecase.ProfileUseCase,
	contentUseCase *usecase.ContentUseCase,
	socialUseCase *usecase.SocialUseCase,
	chatUseCase *usecase.ChatUseCase,
) *WebSocketHandler {
	handler := &WebSocketHandler{
		wsManager:      wsManager,
		authMiddleware: authMiddleware,
		profileUseCase: profileUseCase,
		contentUseCase: contentUseCase,
		socialUseCase:  socialUseCase,
		chatUseCase:    chatUseCase,
		streams:        make(map[*ws.Client]map[string]repository.Subscription),
	}
	wsManager.SetMessageHandler(handler)
	return handler
}

type streamCommand struct {
	Action string `json:"action"`
	Stream string `json:"stream"`
	ID     string `json:"id,omitempty"`
}

type streamFrame struct {
	Stream string      `json:"stream"`
	ID     string      `json:"id,omitempty"`
	Data   interface{} `json:"data,omitempty"`
	Error  string      `json:"error,omitempty"`
}

// HandleWebSocket upgrades the connection. The token arrives as a query
// parameter because browsers cannot set headers on WebSocket upgrades.
func (h *WebSocketHandler) HandleWebSocket(c echo.Context) error {
	token := c.QueryParam("token")
	if token == "" {
		return errors.Unauthorized("Authentication required", nil)
	}

	userID, err := h.authMiddleware.GetUIDFromToken(c.Request().Context(), token)
	if err != nil {
		return errors.Unauthorized("Invalid or expired token", err)
	}

	conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return errors.Internal("Failed to upgrade connection", err)
	}

	client := &ws.Client{
		UserID: userID,
		Conn:   conn,
		Send:   make(chan []byte, 256),
	}

	h.wsManager.Register <- client

	go client.ReadPump(h.wsManager)
	go client.WritePump()

	return nil
}

func (h *WebSocketHandler) HandleClientMessage(client *ws.Client, data []byte) {
	var cmd streamCommand
	if err := json.Unmarshal(data, &cmd); err != nil {
		h.sendError(client, "", "", "malformed command")
		return
	}

	key := cmd.Stream
	if cmd.ID != "" {
		key += "/" + cmd.ID
	}

	switch cmd.Action {
	case "subscribe":
		h.subscribe(client, key, cmd)
	case "unsubscribe":
		h.unsubscribe(client, key)
	default:
		h.sendError(client, cmd.Stream, cmd.ID, "unknown action")
	}
}

func (h *WebSocketHandler) HandleClientDisconnect(client *ws.Client) {
	h.mu.Lock()
	subs := h.streams[client]
	delete(h.streams, client)
	h.mu.Unlock()

	// Stop blocks until each listener goroutine exits; keep the manager loop
	// responsive by tearing down off to the side.
	go func() {
		for _, sub := range subs {
			sub.Stop()
		}
	}()
}

func (h *WebSocketHandler) subscribe(client *ws.Client, key string, cmd streamCommand) {
	h.mu.Lock()
	if _, exists := h.streams[client][key]; exists {
		h.mu.Unlock()
		h.sendError(client, cmd.Stream, cmd.ID, "already subscribed")
		return
	}
	h.mu.Unlock()

	sub, err := h.openStream(client, cmd)
	if err != nil {
		h.sendError(client, cmd.Stream, cmd.ID, err.Error())
		return
	}

	h.mu.Lock()
	if h.streams[client] == nil {
		h.streams[client] = make(map[string]repository.Subscription)
	}
	if _, exists := h.streams[client][key]; exists {
		h.mu.Unlock()
		go sub.Stop()
		return
	}
	h.streams[client][key] = sub
	h.mu.Unlock()
}

func (h *WebSocketHandler) unsubscribe(client *ws.Client, key string) {
	h.mu.Lock()
	sub, ok := h.streams[client][key]
	if ok {
		delete(h.streams[client], key)
	}
	h.mu.Unlock()

	if ok {
		go sub.Stop()
	}
}

// openStream creates the Firestore listener backing a named stream. Listener
// lifetime is owned by the connection, not by any request context.
func (h *WebSocketHandler) openStream(client *ws.Client, cmd streamCommand) (repository.Subscription, error) {
	ctx := context.Background()
	uid := client.UserID

	push := func(data interface{}) {
		h.push(client, cmd.Stream, cmd.ID, data)
	}

	switch cmd.Stream {
	case "feed":
		return h.contentUseCase.SubscribeFeed(ctx, func(posts []*entity.Post) { push(posts) }), nil

	case "following":
		return h.contentUseCase.SubscribeFollowingFeed(ctx, uid, func(posts []*entity.Post) { push(posts) }), nil

	case "user_posts":
		if cmd.ID == "" {
			return nil, errors.BadRequest("user_posts requires an id", nil)
		}
		return h.contentUseCase.SubscribeUserPosts(ctx, cmd.ID, func(posts []*entity.Post) { push(posts) }), nil

	case "comments":
		if cmd.ID == "" {
			return nil, errors.BadRequest("comments requires a post id", nil)
		}
		return h.contentUseCase.SubscribeComments(ctx, cmd.ID, func(comments []*entity.Comment) { push(comments) }), nil

	case "messages":
		if cmd.ID == "" {
			return nil, errors.BadRequest("messages requires a room id", nil)
		}
		return h.chatUseCase.SubscribeMessages(ctx, cmd.ID, func(messages []*entity.ChatMessage) { push(messages) }), nil

	case "rooms":
		return h.chatUseCase.SubscribeRooms(ctx, uid, func(rooms []*usecase.RoomView) { push(rooms) }), nil

	case "requests":
		return h.socialUseCase.SubscribePendingRequests(ctx, uid, func(requests []*entity.FriendRequest) { push(requests) }), nil

	case "profile":
		target := cmd.ID
		if target == "" {
			target = uid
		}
		return h.profileUseCase.SubscribeProfile(ctx, target, func(profile *entity.UserProfile) { push(profile) }), nil

	default:
		return nil, errors.BadRequest("unknown stream", nil)
	}
}

// push delivers a stream frame to the connection that owns the stream.
// Delivery bypasses the user registry: after a reconnect the registry points
// at the new connection while this stream still belongs to the old one.
func (h *WebSocketHandler) push(client *ws.Client, stream, id string, data interface{}) {
	payload, err := json.Marshal(streamFrame{Stream: stream, ID: id, Data: data})
	if err != nil {
		logger.Error("Failed to marshal frame for stream %s: %v", stream, err)
		return
	}
	h.wsManager.SendToClient(client, payload)
}

func (h *WebSocketHandler) sendError(client *ws.Client, stream, id, message string) {
	payload, err := json.Marshal(streamFrame{Stream: stream, ID: id, Error: message})
	if err != nil {
		return
	}
	h.wsManager.SendToClient(client, payload)
}
