package handler

import (
	"github.com/labstack/echo/v4"

	"socialconnect/internal/usecase"
	"socialconnect/pkg/response"
)

type SocialHandler struct {
	socialUseCase *usecase.SocialUseCase
}

func NewSocialHandler(socialUseCase *usecase.SocialUseCase) *SocialHandler {
	return &SocialHandler{
		socialUseCase: socialUseCase,
	}
}

type friendRequestRequest struct {
	ToUID  string `json:"to_uid" validate:"required"`
	ToName string `json:"to_name"`
}

type respondRequest struct {
	Action string `json:"action" validate:"required,oneof=accept reject"`
}

func (h *SocialHandler) Follow(c echo.Context) error {
	uid := c.Get("uid").(string)

	if err := h.socialUseCase.Follow(c.Request().Context(), uid, c.Param("id")); err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]bool{"following": true})
}

func (h *SocialHandler) Unfollow(c echo.Context) error {
	uid := c.Get("uid").(string)

	if err := h.socialUseCase.Unfollow(c.Request().Context(), uid, c.Param("id")); err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]bool{"following": false})
}

func (h *SocialHandler) GetFollowState(c echo.Context) error {
	uid := c.Get("uid").(string)

	following, err := h.socialUseCase.IsFollowing(c.Request().Context(), uid, c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]bool{"following": following})
}

func (h *SocialHandler) GetStats(c echo.Context) error {
	stats, err := h.socialUseCase.GetStats(c.Request().Context(), c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, stats)
}

func (h *SocialHandler) GetRelationship(c echo.Context) error {
	uid := c.Get("uid").(string)

	relationship, err := h.socialUseCase.GetRelationshipStatus(c.Request().Context(), uid, c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]string{"status": string(relationship)})
}

func (h *SocialHandler) SendFriendRequest(c echo.Context) error {
	var req friendRequestRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	uid := c.Get("uid").(string)

	request, err := h.socialUseCase.SendFriendRequest(c.Request().Context(), uid, req.ToUID, req.ToName)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, request)
}

func (h *SocialHandler) RespondToRequest(c echo.Context) error {
	var req respondRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	uid := c.Get("uid").(string)

	if err := h.socialUseCase.RespondToRequest(c.Request().Context(), uid, c.Param("id"), req.Action == "accept"); err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]string{"status": req.Action + "ed"})
}

func (h *SocialHandler) ListPendingRequests(c echo.Context) error {
	uid := c.Get("uid").(string)

	requests, err := h.socialUseCase.ListPendingRequests(c.Request().Context(), uid)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, requests)
}

func (h *SocialHandler) ListFriends(c echo.Context) error {
	uid := c.Get("uid").(string)

	friends, err := h.socialUseCase.ListFriends(c.Request().Context(), uid)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, friends)
}
