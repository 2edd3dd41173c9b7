// Package connect_router dispatches the single-endpoint JSON protocol:
// POST / with {action, version, params, key}.
package connect_router

import (
	"encoding/json"
	"io"
	"sync"
	"time"

	"github.com/ankibridge/ankibridge-service/internal/middleware"
	"github.com/ankibridge/ankibridge-service/internal/service"
	"github.com/ankibridge/ankibridge-service/pkg/app"
	"github.com/ankibridge/ankibridge-service/pkg/code"
	pkgerrors "github.com/ankibridge/ankibridge-service/pkg/errors"
	"github.com/ankibridge/ankibridge-service/pkg/logger"

	"github.com/bytedance/sonic"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Config dispatcher settings.
type Config struct {
	// APIKey empty disables the key check
	APIKey string
	// CORSOrigins the origin allow-list
	CORSOrigins []string
}

// connectRequest the request envelope.
type connectRequest struct {
	Action  string          `json:"action"`
	Version int             `json:"version"`
	Key     string          `json:"key"`
	Params  json.RawMessage `json:"params"`
}

// actionFunc handles one action. It returns the result value to wrap in
// the envelope.
type actionFunc func(c *gin.Context, params json.RawMessage) (interface{}, error)

// Handler owns the action table.
type Handler struct {
	svc    *service.Service
	logger *zap.Logger

	// cfg is swapped on config hot reload
	cfgMu sync.RWMutex
	cfg   Config

	actions map[string]actionFunc
	// exempt actions skip the key and origin checks so clients can query
	// the server before configuring credentials
	exempt map[string]bool
}

// UpdateConfig applies a hot-reloaded dispatcher config.
func (h *Handler) UpdateConfig(cfg Config) {
	h.cfgMu.Lock()
	defer h.cfgMu.Unlock()
	h.cfg = cfg
}

func (h *Handler) config() Config {
	h.cfgMu.RLock()
	defer h.cfgMu.RUnlock()
	return h.cfg
}

// NewHandler builds the dispatcher with every action registered.
func NewHandler(svc *service.Service, cfg Config, lg *zap.Logger) *Handler {
	if lg == nil {
		lg = zap.NewNop()
	}
	h := &Handler{
		svc:    svc,
		cfg:    cfg,
		logger: lg,
		exempt: map[string]bool{
			"getVersion":        true,
			"requestPermission": true,
		},
	}
	h.actions = map[string]actionFunc{
		"getVersion":        h.getVersion,
		"requestPermission": h.requestPermission,
		"apiReflect":        h.apiReflect,
		"isFsrsActive":      h.isFsrsActive,

		"deckNames":       h.deckNames,
		"deckNamesAndIds": h.deckNamesAndIds,
		"createDeck":      h.createDeck,
		"deleteDecks":     h.deleteDecks,
		"changeDeck":      h.changeDeck,
		"getDeckStats":    h.getDeckStats,

		"modelNames":       h.modelNames,
		"modelNamesAndIds": h.modelNamesAndIds,
		"createModel":      h.createModel,
		"modelFieldNames":  h.modelFieldNames,
		"modelTemplates":   h.modelTemplates,

		"addNote":          h.addNote,
		"addNotes":         h.addNotes,
		"canAddNotes":      h.canAddNotes,
		"updateNoteFields": h.updateNoteFields,
		"addTags":          h.addTags,
		"removeTags":       h.removeTags,
		"deleteNotes":      h.deleteNotes,
		"findNotes":        h.findNotes,
		"notesInfo":        h.notesInfo,
		"notesModTime":     h.notesModTime,

		"findCards":    h.findCards,
		"cardsInfo":    h.cardsInfo,
		"cardsToNotes": h.cardsToNotes,
		"suspend":      h.suspend,
		"unsuspend":    h.unsuspend,
		"areSuspended": h.areSuspended,
		"answerCards":  h.answerCards,

		"storeMediaFile":     h.storeMediaFile,
		"retrieveMediaFile":  h.retrieveMediaFile,
		"getMediaFilesNames": h.getMediaFilesNames,
		"deleteMediaFile":    h.deleteMediaFile,
	}
	return h
}

// ActionNames returns every registered action.
func (h *Handler) ActionNames() []string {
	names := make([]string, 0, len(h.actions))
	for name := range h.actions {
		names = append(names, name)
	}
	return names
}

// Dispatch is the single POST endpoint.
func (h *Handler) Dispatch(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		app.NewResponse(c).ToError(code.ErrorMalformedBody.Msg())
		return
	}

	var req connectRequest
	if err := sonic.Unmarshal(body, &req); err != nil {
		app.NewResponse(c).ToError(code.ErrorMalformedBody.Msg())
		return
	}

	if req.Version <= 0 {
		req.Version = app.APIVersion
	}
	c.Set(app.ProtoVersionKey, req.Version)

	response := app.NewResponse(c)

	cfg := h.config()
	if !h.exempt[req.Action] {
		if !middleware.OriginAllowed(c, cfg.CORSOrigins) {
			actionCounter(req.Action, "denied")
			response.ToError(code.ErrorOriginDenied.Msg())
			return
		}
		if cfg.APIKey != "" && req.Key != cfg.APIKey {
			actionCounter(req.Action, "denied")
			response.ToError(code.ErrorInvalidAPIKey.Msg())
			return
		}
	}

	fn, ok := h.actions[req.Action]
	if !ok {
		actionCounter(req.Action, "unknown")
		response.ToError(code.ErrorNotFoundAction.Msg())
		return
	}

	begin := time.Now()
	result, err := fn(c, req.Params)
	observeActionDuration(req.Action, time.Since(begin))
	if err != nil {
		actionCounter(req.Action, "error")
		h.logger.Warn("action failed",
			zap.String(logger.FieldAction, req.Action),
			zap.String(logger.FieldTraceID, middleware.GetTraceIDFromGin(c)),
			zap.Error(err),
		)
		pkgerrors.ErrorResponse(c, err)
		return
	}
	actionCounter(req.Action, "ok")
	response.ToResult(result)
}

// bindParams decodes and validates an action's params struct.
func bindParams(c *gin.Context, raw json.RawMessage, out interface{}) error {
	if len(raw) == 0 {
		raw = []byte("{}")
	}
	if err := sonic.Unmarshal(raw, out); err != nil {
		return pkgerrors.NewAppError(code.ErrorInvalidParams, err).WithDetails(err.Error())
	}
	if ok, errs := app.ValidStruct(c, out); !ok {
		return pkgerrors.NewAppError(code.ErrorInvalidParams, errs).WithDetails(errs.ErrorsToString())
	}
	return nil
}
