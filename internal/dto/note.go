package dto

// NoteOptions per-note creation options.
type NoteOptions struct {
	AllowDuplicate bool `json:"allowDuplicate"`
}

// NoteInput one note in addNote, addNotes and canAddNotes.
type NoteInput struct {
	DeckName  string            `json:"deckName" binding:"required"`
	ModelName string            `json:"modelName" binding:"required"`
	Fields    map[string]string `json:"fields" binding:"required"`
	Tags      []string          `json:"tags"`
	Options   *NoteOptions      `json:"options"`
}

// AllowDuplicate reports the effective duplicate policy.
func (n *NoteInput) AllowDuplicate() bool {
	return n.Options != nil && n.Options.AllowDuplicate
}

// AddNoteParams params for addNote.
type AddNoteParams struct {
	Note *NoteInput `json:"note" binding:"required"`
}

// AddNotesParams params for addNotes and canAddNotes.
type AddNotesParams struct {
	Notes []*NoteInput `json:"notes" binding:"required"`
}

// UpdateNoteInput the note payload of updateNoteFields. Only the supplied
// fields change; absent fields keep their value.
type UpdateNoteInput struct {
	ID     int64             `json:"id" binding:"required"`
	Fields map[string]string `json:"fields" binding:"required"`
}

// UpdateNoteFieldsParams params for updateNoteFields.
type UpdateNoteFieldsParams struct {
	Note *UpdateNoteInput `json:"note" binding:"required"`
}

// NoteTagsParams params for addTags and removeTags. Tags is space
// separated.
type NoteTagsParams struct {
	Notes []int64 `json:"notes" binding:"required"`
	Tags  string  `json:"tags" binding:"required"`
}

// NotesParams params for actions taking a bare list of note IDs.
type NotesParams struct {
	Notes []int64 `json:"notes" binding:"required"`
}

// FindNotesParams params for findNotes.
type FindNotesParams struct {
	Query string `json:"query"`
}

// NoteInfoField one field in a notesInfo reply.
type NoteInfoField struct {
	Value string `json:"value"`
	Order int    `json:"order"`
}

// NoteInfoResult one note in a notesInfo reply. Mod is the note's last
// modification time in unix seconds.
type NoteInfoResult struct {
	NoteID    int64                    `json:"noteId"`
	ModelName string                   `json:"modelName"`
	Tags      []string                 `json:"tags"`
	Fields    map[string]NoteInfoField `json:"fields"`
	Mod       int64                    `json:"mod"`
	Cards     []int64                  `json:"cards"`
}

// NoteModTimeResult one note in a notesModTime reply.
type NoteModTimeResult struct {
	NoteID int64 `json:"noteId"`
	Mod    int64 `json:"mod"`
}
