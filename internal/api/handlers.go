package api

import (
	"context"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"github.com/salesguard/internal/combat"
	"github.com/salesguard/internal/llm"
	"github.com/salesguard/internal/review"
)

// combatRequest models the incoming POST payload for a combat turn.
type combatRequest struct {
	Industry       string `json:"industry"`
	ProductName    string `json:"productName"`
	Role           string `json:"role"`
	Stage          string `json:"stage"`
	TriggerValue   string `json:"triggerValue"`
	ProblemType    string `json:"problemType"`
	Query          string `json:"query"`
	ConversationID string `json:"conversationId"`
	UserID         string `json:"userId"`
}

// combatResponse returns the card together with the conversation id the
// client must persist for the next turn.
type combatResponse struct {
	Data           combat.TacticalCard `json:"data"`
	ConversationID string              `json:"conversation_id"`
}

// reviewRequest models the incoming POST payload for a screenshot review.
type reviewRequest struct {
	Image    string `json:"image"`
	Industry string `json:"industry"`
	Product  string `json:"product"`
	Role     string `json:"role"`
}

// handleCombat serves one combat turn. Always 200: degraded and fallback
// cards are valid payloads, not errors.
func (s *Server) handleCombat(c echo.Context) error {
	var req combatRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), s.combatTimeout)
	defer cancel()

	result := s.combat.Engage(ctx, combat.Request{
		Setup: llm.Setup{
			Industry:    req.Industry,
			ProductName: req.ProductName,
			Role:        req.Role,
		},
		Stage:          req.Stage,
		ProblemType:    req.ProblemType,
		TriggerValue:   req.TriggerValue,
		Query:          req.Query,
		ConversationID: req.ConversationID,
		UserID:         req.UserID,
	})

	return c.JSON(http.StatusOK, combatResponse{
		Data:           result.Card,
		ConversationID: result.ConversationID,
	})
}

// handleReview scores one screenshot. A missing image is rejected before
// any provider call; internal failures surface as a coarse 500.
func (s *Server) handleReview(c echo.Context) error {
	var req reviewRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}
	if strings.TrimSpace(req.Image) == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "image is required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), s.reviewTimeout)
	defer cancel()

	result, err := s.review.Score(ctx, review.Request{
		Setup: llm.Setup{
			Industry:    req.Industry,
			ProductName: req.Product,
			Role:        req.Role,
		},
		Image: req.Image,
	})
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Msg("review scoring failed")
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "internal server error"})
	}

	return c.JSON(http.StatusOK, result)
}

// handleStages serves the static stage/trigger script library.
func (s *Server) handleStages(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"stages": s.catalog.Stages(),
	})
}
