package connect_router

import (
	"encoding/json"
	"sort"

	"github.com/ankibridge/ankibridge-service/internal/dto"
	"github.com/ankibridge/ankibridge-service/internal/middleware"
	"github.com/ankibridge/ankibridge-service/pkg/app"

	"github.com/gin-gonic/gin"
)

func (h *Handler) getVersion(c *gin.Context, _ json.RawMessage) (interface{}, error) {
	return app.APIVersion, nil
}

// requestPermission answers instead of rejecting so browser clients can
// find out whether their origin is welcome.
func (h *Handler) requestPermission(c *gin.Context, _ json.RawMessage) (interface{}, error) {
	cfg := h.config()
	permission := "granted"
	if !middleware.OriginAllowed(c, cfg.CORSOrigins) {
		permission = "denied"
	}
	return &dto.RequestPermissionResult{
		Permission:    permission,
		RequireAPIKey: cfg.APIKey != "",
		Version:       app.APIVersion,
	}, nil
}

func (h *Handler) apiReflect(c *gin.Context, raw json.RawMessage) (interface{}, error) {
	var params dto.APIReflectParams
	if err := bindParams(c, raw, &params); err != nil {
		return nil, err
	}

	scoped := false
	for _, scope := range params.Scopes {
		if scope == "actions" {
			scoped = true
		}
	}
	result := &dto.APIReflectResult{Scopes: []string{"actions"}, Actions: []string{}}
	if !scoped {
		return result, nil
	}

	if params.Actions == nil {
		result.Actions = h.ActionNames()
	} else {
		for _, name := range params.Actions {
			if _, ok := h.actions[name]; ok {
				result.Actions = append(result.Actions, name)
			}
		}
	}
	sort.Strings(result.Actions)
	return result, nil
}

func (h *Handler) isFsrsActive(c *gin.Context, _ json.RawMessage) (interface{}, error) {
	return h.svc.IsFsrsActive(c.Request.Context())
}
