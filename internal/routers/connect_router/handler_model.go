package connect_router

import (
	"encoding/json"

	"github.com/ankibridge/ankibridge-service/internal/dto"

	"github.com/gin-gonic/gin"
)

func (h *Handler) modelNames(c *gin.Context, _ json.RawMessage) (interface{}, error) {
	return h.svc.ModelNames(c.Request.Context())
}

func (h *Handler) modelNamesAndIds(c *gin.Context, _ json.RawMessage) (interface{}, error) {
	return h.svc.ModelNamesAndIds(c.Request.Context())
}

func (h *Handler) createModel(c *gin.Context, raw json.RawMessage) (interface{}, error) {
	var params dto.CreateModelParams
	if err := bindParams(c, raw, &params); err != nil {
		return nil, err
	}
	return h.svc.CreateModel(c.Request.Context(), &params)
}

func (h *Handler) modelFieldNames(c *gin.Context, raw json.RawMessage) (interface{}, error) {
	var params dto.ModelFieldNamesParams
	if err := bindParams(c, raw, &params); err != nil {
		return nil, err
	}
	return h.svc.ModelFieldNames(c.Request.Context(), params.ModelName)
}

func (h *Handler) modelTemplates(c *gin.Context, raw json.RawMessage) (interface{}, error) {
	var params dto.ModelTemplatesParams
	if err := bindParams(c, raw, &params); err != nil {
		return nil, err
	}
	return h.svc.ModelTemplates(c.Request.Context(), params.ModelName)
}
