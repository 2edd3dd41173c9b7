package service

import (
	"context"

	"github.com/ankibridge/ankibridge-service/internal/domain"
	"github.com/ankibridge/ankibridge-service/internal/dto"
	"github.com/ankibridge/ankibridge-service/internal/model"
	"github.com/ankibridge/ankibridge-service/internal/search"
	"github.com/ankibridge/ankibridge-service/pkg/code"
	"github.com/ankibridge/ankibridge-service/pkg/errors"
	"github.com/ankibridge/ankibridge-service/pkg/logger"
	"github.com/ankibridge/ankibridge-service/pkg/util"

	"go.uber.org/zap"
)

// AddNote creates one note plus its cards and returns the note ID.
func (s *Service) AddNote(ctx context.Context, input *dto.NoteInput) (int64, error) {
	m, err := s.GetModelByName(ctx, input.ModelName)
	if err != nil {
		return 0, err
	}
	deck, err := s.GetOrCreateDeck(ctx, input.DeckName)
	if err != nil {
		return 0, err
	}

	fields, err := orderedFields(m, input.Fields)
	if err != nil {
		return 0, err
	}
	if util.StripHTML(fields[0]) == "" {
		return 0, errors.NewAppError(code.ErrorNoteEmpty, nil)
	}

	checksum := util.FieldChecksum(fields[0])
	if !input.AllowDuplicate() {
		dupes, err := s.notes.ListByChecksum(ctx, m.ID, checksum)
		if err != nil {
			return 0, errors.NewAppError(code.ErrorServerInternal, err)
		}
		if len(dupes) > 0 {
			return 0, errors.NewAppError(code.ErrorNoteDuplicate, nil)
		}
	}

	now := nowUnix()
	note := &domain.Note{
		ID:       util.NewID(),
		ModelID:  m.ID,
		Fields:   fields,
		Tags:     input.Tags,
		Checksum: checksum,
		Mod:      now,
	}
	note, err = s.notes.Create(ctx, note)
	if err != nil {
		return 0, errors.NewAppError(code.ErrorServerInternal, err)
	}

	for _, t := range m.Templates {
		card := &domain.Card{
			ID:     util.NewID(),
			NoteID: note.ID,
			DeckID: deck.ID,
			Ord:    t.Ord,
			Type:   model.TypeNew,
			Queue:  model.QueueNew,
			Factor: model.InitialFactor,
			Mod:    now,
		}
		if _, err := s.cards.Create(ctx, card); err != nil {
			return 0, errors.NewAppError(code.ErrorServerInternal, err)
		}
	}

	s.logger.Info("note added",
		zap.Int64(logger.FieldNoteID, note.ID),
		zap.String(logger.FieldModel, m.Name),
		zap.String(logger.FieldDeck, deck.Name),
	)
	return note.ID, nil
}

// AddNotes creates several notes. The reply holds one entry per input, the
// new note ID on success and nil where creation failed.
func (s *Service) AddNotes(ctx context.Context, inputs []*dto.NoteInput) ([]*int64, error) {
	out := make([]*int64, 0, len(inputs))
	for _, input := range inputs {
		id, err := s.AddNote(ctx, input)
		if err != nil {
			s.logger.Warn("note skipped", zap.Error(err))
			out = append(out, nil)
			continue
		}
		out = append(out, &id)
	}
	return out, nil
}

// CanAddNotes reports per input whether AddNote would accept it.
func (s *Service) CanAddNotes(ctx context.Context, inputs []*dto.NoteInput) ([]bool, error) {
	out := make([]bool, 0, len(inputs))
	for _, input := range inputs {
		out = append(out, s.canAddNote(ctx, input) == nil)
	}
	return out, nil
}

func (s *Service) canAddNote(ctx context.Context, input *dto.NoteInput) error {
	m, err := s.GetModelByName(ctx, input.ModelName)
	if err != nil {
		return err
	}
	fields, err := orderedFields(m, input.Fields)
	if err != nil {
		return err
	}
	if util.StripHTML(fields[0]) == "" {
		return errors.NewAppError(code.ErrorNoteEmpty, nil)
	}
	if !input.AllowDuplicate() {
		dupes, err := s.notes.ListByChecksum(ctx, m.ID, util.FieldChecksum(fields[0]))
		if err != nil {
			return errors.NewAppError(code.ErrorServerInternal, err)
		}
		if len(dupes) > 0 {
			return errors.NewAppError(code.ErrorNoteDuplicate, nil)
		}
	}
	return nil
}

// UpdateNoteFields overwrites the supplied fields of an existing note and
// records a revision of the previous state.
func (s *Service) UpdateNoteFields(ctx context.Context, input *dto.UpdateNoteInput) error {
	note, err := s.notes.GetByID(ctx, input.ID)
	if err != nil {
		return errors.NewAppError(code.ErrorServerInternal, err)
	}
	if note == nil {
		return errors.NewAppError(code.ErrorNoteNotFound, nil).WithDetails(formatID(input.ID))
	}
	m, err := s.models.GetByID(ctx, note.ModelID)
	if err != nil {
		return errors.NewAppError(code.ErrorServerInternal, err)
	}
	if m == nil {
		return errors.NewAppError(code.ErrorModelNotFound, nil)
	}

	before := append([]string(nil), note.Fields...)
	changed := false
	for name, value := range input.Fields {
		ord := -1
		for _, f := range m.Fields {
			if f.Name == name {
				ord = f.Ord
				break
			}
		}
		if ord < 0 || ord >= len(note.Fields) {
			return errors.NewAppError(code.ErrorNoteFields, nil).WithDetails(name)
		}
		if note.Fields[ord] != value {
			note.Fields[ord] = value
			changed = true
		}
	}
	if !changed {
		return nil
	}

	note.Checksum = util.FieldChecksum(note.FirstField())
	note.Mod = nowUnix()
	if err := s.notes.Update(ctx, note); err != nil {
		return errors.NewAppError(code.ErrorServerInternal, err)
	}

	s.recordRevisionAsync(note.ID, before, note.Fields)
	return nil
}

// AddTags attaches the space separated tags to the given notes.
func (s *Service) AddTags(ctx context.Context, noteIDs []int64, tags string) error {
	newTags := model.SplitTags(tags)
	if len(newTags) == 0 {
		return nil
	}
	notes, err := s.notes.ListByIDs(ctx, noteIDs)
	if err != nil {
		return errors.NewAppError(code.ErrorServerInternal, err)
	}
	for _, note := range notes {
		merged := append(append([]string(nil), note.Tags...), newTags...)
		joined := model.JoinTags(merged)
		if joined == model.JoinTags(note.Tags) {
			continue
		}
		note.Tags = model.SplitTags(joined)
		note.Mod = nowUnix()
		if err := s.notes.Update(ctx, note); err != nil {
			return errors.NewAppError(code.ErrorServerInternal, err)
		}
	}
	return nil
}

// RemoveTags detaches the space separated tags from the given notes.
func (s *Service) RemoveTags(ctx context.Context, noteIDs []int64, tags string) error {
	drop := map[string]bool{}
	for _, t := range model.SplitTags(tags) {
		drop[t] = true
	}
	if len(drop) == 0 {
		return nil
	}
	notes, err := s.notes.ListByIDs(ctx, noteIDs)
	if err != nil {
		return errors.NewAppError(code.ErrorServerInternal, err)
	}
	for _, note := range notes {
		var kept []string
		for _, t := range note.Tags {
			if !drop[t] {
				kept = append(kept, t)
			}
		}
		if len(kept) == len(note.Tags) {
			continue
		}
		note.Tags = kept
		note.Mod = nowUnix()
		if err := s.notes.Update(ctx, note); err != nil {
			return errors.NewAppError(code.ErrorServerInternal, err)
		}
	}
	return nil
}

// DeleteNotes removes notes together with their cards and revisions.
// Unknown IDs are ignored.
func (s *Service) DeleteNotes(ctx context.Context, noteIDs []int64) error {
	if len(noteIDs) == 0 {
		return nil
	}
	if err := s.cards.DeleteByNoteIDs(ctx, noteIDs); err != nil {
		return errors.NewAppError(code.ErrorServerInternal, err)
	}
	if err := s.revisions.DeleteByNoteIDs(ctx, noteIDs); err != nil {
		return errors.NewAppError(code.ErrorServerInternal, err)
	}
	if err := s.notes.Delete(ctx, noteIDs); err != nil {
		return errors.NewAppError(code.ErrorServerInternal, err)
	}
	s.logger.Info("notes deleted", zap.Int("count", len(noteIDs)))
	return nil
}

// FindNotes returns the IDs of notes matching the query. An empty query
// matches the whole collection.
func (s *Service) FindNotes(ctx context.Context, query string) ([]int64, error) {
	q, err := search.Parse(query)
	if err != nil {
		return nil, errors.NewAppError(code.ErrorSearchSyntax, err).WithDetails(err.Error())
	}

	notes, err := s.notes.ListAll(ctx)
	if err != nil {
		return nil, errors.NewAppError(code.ErrorServerInternal, err)
	}

	ids := make([]int64, 0, len(notes))
	if q.IsEmpty() {
		for _, n := range notes {
			ids = append(ids, n.ID)
		}
		return ids, nil
	}

	env, err := s.buildSearchEnv(ctx, notes)
	if err != nil {
		return nil, err
	}
	for _, n := range notes {
		if q.Matches(env.contextFor(n)) {
			ids = append(ids, n.ID)
		}
	}
	return ids, nil
}

// NotesInfo returns the full payload of each note. Unknown IDs are
// silently skipped.
func (s *Service) NotesInfo(ctx context.Context, noteIDs []int64) ([]*dto.NoteInfoResult, error) {
	notes, err := s.notes.ListByIDs(ctx, noteIDs)
	if err != nil {
		return nil, errors.NewAppError(code.ErrorServerInternal, err)
	}

	out := make([]*dto.NoteInfoResult, 0, len(notes))
	for _, note := range notes {
		m, err := s.models.GetByID(ctx, note.ModelID)
		if err != nil {
			return nil, errors.NewAppError(code.ErrorServerInternal, err)
		}
		modelName := ""
		fieldNames := []string{}
		if m != nil {
			modelName = m.Name
			fieldNames = m.FieldNames()
		}

		cards, err := s.cards.ListByNoteIDs(ctx, []int64{note.ID})
		if err != nil {
			return nil, errors.NewAppError(code.ErrorServerInternal, err)
		}

		info := &dto.NoteInfoResult{
			NoteID:    note.ID,
			ModelName: modelName,
			Tags:      note.Tags,
			Fields:    map[string]dto.NoteInfoField{},
			Mod:       note.Mod,
			Cards:     cardIDs(cards),
		}
		if info.Tags == nil {
			info.Tags = []string{}
		}
		for i, name := range fieldNames {
			if i >= len(note.Fields) {
				break
			}
			info.Fields[name] = dto.NoteInfoField{Value: note.Fields[i], Order: i}
		}
		out = append(out, info)
	}
	return out, nil
}

// NotesModTime returns each note's last modification time in unix seconds.
// Unknown IDs are silently skipped.
func (s *Service) NotesModTime(ctx context.Context, noteIDs []int64) ([]*dto.NoteModTimeResult, error) {
	notes, err := s.notes.ListByIDs(ctx, noteIDs)
	if err != nil {
		return nil, errors.NewAppError(code.ErrorServerInternal, err)
	}
	out := make([]*dto.NoteModTimeResult, 0, len(notes))
	for _, note := range notes {
		out = append(out, &dto.NoteModTimeResult{NoteID: note.ID, Mod: note.Mod})
	}
	return out, nil
}

// orderedFields lays the field map out in the model's ordinal order.
// Unknown field names are rejected; absent fields stay empty.
func orderedFields(m *domain.NoteType, fields map[string]string) ([]string, error) {
	out := make([]string, len(m.Fields))
	for name, value := range fields {
		ord := -1
		for _, f := range m.Fields {
			if f.Name == name {
				ord = f.Ord
				break
			}
		}
		if ord < 0 || ord >= len(out) {
			return nil, errors.NewAppError(code.ErrorNoteFields, nil).WithDetails(name)
		}
		out[ord] = value
	}
	return out, nil
}

// searchEnv caches the lookups shared by every note while matching one
// query.
type searchEnv struct {
	modelNames  map[int64]string
	modelFields map[int64][]string
	deckNames   map[int64]string
	cardsByNote map[int64][]*domain.Card
	now         int64
}

func (s *Service) buildSearchEnv(ctx context.Context, notes []*domain.Note) (*searchEnv, error) {
	env := &searchEnv{
		modelNames:  map[int64]string{},
		modelFields: map[int64][]string{},
		deckNames:   map[int64]string{},
		cardsByNote: map[int64][]*domain.Card{},
		now:         nowUnix(),
	}

	models, err := s.models.List(ctx)
	if err != nil {
		return nil, errors.NewAppError(code.ErrorServerInternal, err)
	}
	for _, m := range models {
		env.modelNames[m.ID] = m.Name
		env.modelFields[m.ID] = m.FieldNames()
	}

	decks, err := s.decks.List(ctx)
	if err != nil {
		return nil, errors.NewAppError(code.ErrorServerInternal, err)
	}
	for _, d := range decks {
		env.deckNames[d.ID] = d.Name
	}

	noteIDs := make([]int64, 0, len(notes))
	for _, n := range notes {
		noteIDs = append(noteIDs, n.ID)
	}
	cards, err := s.cards.ListByNoteIDs(ctx, noteIDs)
	if err != nil {
		return nil, errors.NewAppError(code.ErrorServerInternal, err)
	}
	for _, c := range cards {
		env.cardsByNote[c.NoteID] = append(env.cardsByNote[c.NoteID], c)
	}
	return env, nil
}

func (e *searchEnv) contextFor(n *domain.Note) *search.NoteContext {
	cards := e.cardsByNote[n.ID]
	deckSeen := map[string]bool{}
	var deckNames []string
	for _, c := range cards {
		if name, ok := e.deckNames[c.DeckID]; ok && !deckSeen[name] {
			deckSeen[name] = true
			deckNames = append(deckNames, name)
		}
	}
	return &search.NoteContext{
		Note:       n,
		ModelName:  e.modelNames[n.ModelID],
		FieldNames: e.modelFields[n.ModelID],
		DeckNames:  deckNames,
		Cards:      cards,
		Now:        e.now,
	}
}
