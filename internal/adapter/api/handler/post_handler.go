package handler

import (
	"encoding/base64"

	"github.com/labstack/echo/v4"

	"socialconnect/internal/usecase"
	"socialconnect/pkg/errors"
	"socialconnect/pkg/response"
)

type PostHandler struct {
	contentUseCase *usecase.ContentUseCase
}

func NewPostHandler(contentUseCase *usecase.ContentUseCase) *PostHandler {
	return &PostHandler{
		contentUseCase: contentUseCase,
	}
}

type createPostRequest struct {
	Text string `json:"text"`
	// Image carries the raw image bytes base64-encoded.
	Image string `json:"image"`
}

type updatePostRequest struct {
	Text string `json:"text" validate:"required"`
}

type likeRequest struct {
	// Liked is the caller's current state; the toggle applies its inverse.
	Liked bool `json:"liked"`
}

type commentRequest struct {
	Text string `json:"text" validate:"required"`
}

func (h *PostHandler) CreatePost(c echo.Context) error {
	var req createPostRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	if req.Text == "" && req.Image == "" {
		return response.Error(c, errors.BadRequest("Please add some text or an image", nil))
	}

	var image []byte
	if req.Image != "" {
		decoded, err := base64.StdEncoding.DecodeString(req.Image)
		if err != nil {
			return response.Error(c, errors.BadRequest("Image must be base64 encoded", err))
		}
		image = decoded
	}

	uid := c.Get("uid").(string)

	post, err := h.contentUseCase.CreatePost(c.Request().Context(), uid, req.Text, image)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, post)
}

func (h *PostHandler) GetFeed(c echo.Context) error {
	posts, err := h.contentUseCase.ListFeed(c.Request().Context())
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, posts)
}

func (h *PostHandler) GetFollowingFeed(c echo.Context) error {
	uid := c.Get("uid").(string)

	posts, err := h.contentUseCase.ListFollowingFeed(c.Request().Context(), uid)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, posts)
}

func (h *PostHandler) GetUserPosts(c echo.Context) error {
	posts, err := h.contentUseCase.ListUserPosts(c.Request().Context(), c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, posts)
}

func (h *PostHandler) SearchPosts(c echo.Context) error {
	posts, err := h.contentUseCase.SearchPosts(c.Request().Context(), c.QueryParam("q"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, posts)
}

func (h *PostHandler) UpdatePost(c echo.Context) error {
	var req updatePostRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	if err := h.contentUseCase.UpdatePost(c.Request().Context(), c.Param("id"), req.Text); err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]string{"status": "updated"})
}

func (h *PostHandler) DeletePost(c echo.Context) error {
	if err := h.contentUseCase.DeletePost(c.Request().Context(), c.Param("id")); err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]string{"status": "deleted"})
}

func (h *PostHandler) ToggleLike(c echo.Context) error {
	var req likeRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	uid := c.Get("uid").(string)

	if err := h.contentUseCase.ToggleLike(c.Request().Context(), uid, c.Param("id"), req.Liked); err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]bool{"liked": !req.Liked})
}

func (h *PostHandler) AddComment(c echo.Context) error {
	var req commentRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	uid := c.Get("uid").(string)

	comment, err := h.contentUseCase.AddComment(c.Request().Context(), uid, c.Param("id"), req.Text)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, comment)
}

func (h *PostHandler) GetComments(c echo.Context) error {
	comments, err := h.contentUseCase.ListComments(c.Request().Context(), c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, comments)
}
