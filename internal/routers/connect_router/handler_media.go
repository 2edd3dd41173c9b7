package connect_router

import (
	"encoding/json"

	"github.com/ankibridge/ankibridge-service/internal/dto"
	"github.com/ankibridge/ankibridge-service/pkg/code"
	pkgerrors "github.com/ankibridge/ankibridge-service/pkg/errors"

	"github.com/gin-gonic/gin"
)

func (h *Handler) storeMediaFile(c *gin.Context, raw json.RawMessage) (interface{}, error) {
	var params dto.StoreMediaFileParams
	if err := bindParams(c, raw, &params); err != nil {
		return nil, err
	}
	return h.svc.StoreMediaFile(c.Request.Context(), params.Filename, params.Data, params.ReplaceExisting())
}

// retrieveMediaFile returns false instead of an error for a missing file,
// matching what clients poll for.
func (h *Handler) retrieveMediaFile(c *gin.Context, raw json.RawMessage) (interface{}, error) {
	var params dto.RetrieveMediaFileParams
	if err := bindParams(c, raw, &params); err != nil {
		return nil, err
	}
	data, err := h.svc.RetrieveMediaFile(c.Request.Context(), params.Filename)
	if err != nil {
		if appErr := pkgerrors.GetAppError(err); appErr != nil && appErr.Code == code.ErrorMediaNotFound.Code() {
			return false, nil
		}
		return nil, err
	}
	return data, nil
}

func (h *Handler) getMediaFilesNames(c *gin.Context, raw json.RawMessage) (interface{}, error) {
	var params dto.GetMediaFilesNamesParams
	if err := bindParams(c, raw, &params); err != nil {
		return nil, err
	}
	return h.svc.GetMediaFilesNames(c.Request.Context(), params.Pattern)
}

func (h *Handler) deleteMediaFile(c *gin.Context, raw json.RawMessage) (interface{}, error) {
	var params dto.DeleteMediaFileParams
	if err := bindParams(c, raw, &params); err != nil {
		return nil, err
	}
	return nil, h.svc.DeleteMediaFile(c.Request.Context(), params.Filename)
}
