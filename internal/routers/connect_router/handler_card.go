package connect_router

import (
	"encoding/json"

	"github.com/ankibridge/ankibridge-service/internal/dto"

	"github.com/gin-gonic/gin"
)

func (h *Handler) findCards(c *gin.Context, raw json.RawMessage) (interface{}, error) {
	var params dto.FindCardsParams
	if err := bindParams(c, raw, &params); err != nil {
		return nil, err
	}
	return h.svc.FindCards(c.Request.Context(), params.Query)
}

func (h *Handler) cardsInfo(c *gin.Context, raw json.RawMessage) (interface{}, error) {
	var params dto.CardsParams
	if err := bindParams(c, raw, &params); err != nil {
		return nil, err
	}
	return h.svc.CardsInfo(c.Request.Context(), params.Cards)
}

func (h *Handler) cardsToNotes(c *gin.Context, raw json.RawMessage) (interface{}, error) {
	var params dto.CardsParams
	if err := bindParams(c, raw, &params); err != nil {
		return nil, err
	}
	return h.svc.CardsToNotes(c.Request.Context(), params.Cards)
}

func (h *Handler) suspend(c *gin.Context, raw json.RawMessage) (interface{}, error) {
	var params dto.CardsParams
	if err := bindParams(c, raw, &params); err != nil {
		return nil, err
	}
	return h.svc.Suspend(c.Request.Context(), params.Cards)
}

func (h *Handler) unsuspend(c *gin.Context, raw json.RawMessage) (interface{}, error) {
	var params dto.CardsParams
	if err := bindParams(c, raw, &params); err != nil {
		return nil, err
	}
	return h.svc.Unsuspend(c.Request.Context(), params.Cards)
}

func (h *Handler) areSuspended(c *gin.Context, raw json.RawMessage) (interface{}, error) {
	var params dto.CardsParams
	if err := bindParams(c, raw, &params); err != nil {
		return nil, err
	}
	return h.svc.AreSuspended(c.Request.Context(), params.Cards)
}

func (h *Handler) answerCards(c *gin.Context, raw json.RawMessage) (interface{}, error) {
	var params dto.AnswerCardsParams
	if err := bindParams(c, raw, &params); err != nil {
		return nil, err
	}
	return h.svc.AnswerCards(c.Request.Context(), params.Answers)
}
