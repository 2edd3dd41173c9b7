package connect_router

import (
	"encoding/json"

	"github.com/ankibridge/ankibridge-service/internal/dto"

	"github.com/gin-gonic/gin"
)

func (h *Handler) deckNames(c *gin.Context, _ json.RawMessage) (interface{}, error) {
	return h.svc.DeckNames(c.Request.Context())
}

func (h *Handler) deckNamesAndIds(c *gin.Context, _ json.RawMessage) (interface{}, error) {
	return h.svc.DeckNamesAndIds(c.Request.Context())
}

func (h *Handler) createDeck(c *gin.Context, raw json.RawMessage) (interface{}, error) {
	var params dto.CreateDeckParams
	if err := bindParams(c, raw, &params); err != nil {
		return nil, err
	}
	return h.svc.CreateDeck(c.Request.Context(), params.Deck)
}

func (h *Handler) deleteDecks(c *gin.Context, raw json.RawMessage) (interface{}, error) {
	var params dto.DeleteDecksParams
	if err := bindParams(c, raw, &params); err != nil {
		return nil, err
	}
	return nil, h.svc.DeleteDecks(c.Request.Context(), params.Decks, params.CardsToo)
}

func (h *Handler) changeDeck(c *gin.Context, raw json.RawMessage) (interface{}, error) {
	var params dto.ChangeDeckParams
	if err := bindParams(c, raw, &params); err != nil {
		return nil, err
	}
	return nil, h.svc.ChangeDeck(c.Request.Context(), params.Cards, params.Deck)
}

func (h *Handler) getDeckStats(c *gin.Context, raw json.RawMessage) (interface{}, error) {
	var params dto.GetDeckStatsParams
	if err := bindParams(c, raw, &params); err != nil {
		return nil, err
	}
	return h.svc.GetDeckStats(c.Request.Context(), params.Decks)
}
