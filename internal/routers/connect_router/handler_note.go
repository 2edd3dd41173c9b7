package connect_router

import (
	"encoding/json"

	"github.com/ankibridge/ankibridge-service/internal/dto"

	"github.com/gin-gonic/gin"
)

func (h *Handler) addNote(c *gin.Context, raw json.RawMessage) (interface{}, error) {
	var params dto.AddNoteParams
	if err := bindParams(c, raw, &params); err != nil {
		return nil, err
	}
	return h.svc.AddNote(c.Request.Context(), params.Note)
}

func (h *Handler) addNotes(c *gin.Context, raw json.RawMessage) (interface{}, error) {
	var params dto.AddNotesParams
	if err := bindParams(c, raw, &params); err != nil {
		return nil, err
	}
	return h.svc.AddNotes(c.Request.Context(), params.Notes)
}

func (h *Handler) canAddNotes(c *gin.Context, raw json.RawMessage) (interface{}, error) {
	var params dto.AddNotesParams
	if err := bindParams(c, raw, &params); err != nil {
		return nil, err
	}
	return h.svc.CanAddNotes(c.Request.Context(), params.Notes)
}

func (h *Handler) updateNoteFields(c *gin.Context, raw json.RawMessage) (interface{}, error) {
	var params dto.UpdateNoteFieldsParams
	if err := bindParams(c, raw, &params); err != nil {
		return nil, err
	}
	return nil, h.svc.UpdateNoteFields(c.Request.Context(), params.Note)
}

func (h *Handler) addTags(c *gin.Context, raw json.RawMessage) (interface{}, error) {
	var params dto.NoteTagsParams
	if err := bindParams(c, raw, &params); err != nil {
		return nil, err
	}
	return nil, h.svc.AddTags(c.Request.Context(), params.Notes, params.Tags)
}

func (h *Handler) removeTags(c *gin.Context, raw json.RawMessage) (interface{}, error) {
	var params dto.NoteTagsParams
	if err := bindParams(c, raw, &params); err != nil {
		return nil, err
	}
	return nil, h.svc.RemoveTags(c.Request.Context(), params.Notes, params.Tags)
}

func (h *Handler) deleteNotes(c *gin.Context, raw json.RawMessage) (interface{}, error) {
	var params dto.NotesParams
	if err := bindParams(c, raw, &params); err != nil {
		return nil, err
	}
	return nil, h.svc.DeleteNotes(c.Request.Context(), params.Notes)
}

func (h *Handler) findNotes(c *gin.Context, raw json.RawMessage) (interface{}, error) {
	var params dto.FindNotesParams
	if err := bindParams(c, raw, &params); err != nil {
		return nil, err
	}
	return h.svc.FindNotes(c.Request.Context(), params.Query)
}

func (h *Handler) notesInfo(c *gin.Context, raw json.RawMessage) (interface{}, error) {
	var params dto.NotesParams
	if err := bindParams(c, raw, &params); err != nil {
		return nil, err
	}
	return h.svc.NotesInfo(c.Request.Context(), params.Notes)
}

func (h *Handler) notesModTime(c *gin.Context, raw json.RawMessage) (interface{}, error) {
	var params dto.NotesParams
	if err := bindParams(c, raw, &params); err != nil {
		return nil, err
	}
	return h.svc.NotesModTime(c.Request.Context(), params.Notes)
}
