package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/ankibridge/ankibridge-service/internal/domain"
	"github.com/ankibridge/ankibridge-service/internal/dto"
	"github.com/ankibridge/ankibridge-service/pkg/code"
	"github.com/ankibridge/ankibridge-service/pkg/errors"
	"github.com/ankibridge/ankibridge-service/pkg/logger"
	"github.com/ankibridge/ankibridge-service/pkg/util"

	"github.com/patrickmn/go-cache"
	"go.uber.org/zap"
)

// DefaultCSS the stylesheet new models start with.
const DefaultCSS = ".card {\n font-family: arial;\n font-size: 20px;\n text-align: center;\n color: black;\n background-color: white;\n}\n"

// ModelNames returns every note type name.
func (s *Service) ModelNames(ctx context.Context) ([]string, error) {
	models, err := s.models.List(ctx)
	if err != nil {
		return nil, errors.NewAppError(code.ErrorServerInternal, err)
	}
	names := make([]string, 0, len(models))
	for _, m := range models {
		names = append(names, m.Name)
	}
	return names, nil
}

// ModelNamesAndIds returns note type names mapped to their IDs.
func (s *Service) ModelNamesAndIds(ctx context.Context) (map[string]int64, error) {
	models, err := s.models.List(ctx)
	if err != nil {
		return nil, errors.NewAppError(code.ErrorServerInternal, err)
	}
	out := make(map[string]int64, len(models))
	for _, m := range models {
		out[m.Name] = m.ID
	}
	return out, nil
}

// GetModelByName resolves a note type, serving repeated lookups from cache.
func (s *Service) GetModelByName(ctx context.Context, name string) (*domain.NoteType, error) {
	if cached, ok := s.modelCache.Get(name); ok {
		return cached.(*domain.NoteType), nil
	}
	m, err := s.models.GetByName(ctx, name)
	if err != nil {
		return nil, errors.NewAppError(code.ErrorServerInternal, err)
	}
	if m == nil {
		return nil, errors.NewAppError(code.ErrorModelNotFound, nil).WithDetails(name)
	}
	s.modelCache.Set(name, m, cache.DefaultExpiration)
	return m, nil
}

// CreateModel creates a note type from an ordered field list and a set of
// card templates.
func (s *Service) CreateModel(ctx context.Context, params *dto.CreateModelParams) (*dto.CreateModelResult, error) {
	if len(params.InOrderFields) == 0 {
		return nil, errors.NewAppError(code.ErrorModelNoFields, nil)
	}
	if len(params.CardTemplates) == 0 {
		return nil, errors.NewAppError(code.ErrorModelNoTemplates, nil)
	}

	existing, err := s.models.GetByName(ctx, params.ModelName)
	if err != nil {
		return nil, errors.NewAppError(code.ErrorServerInternal, err)
	}
	if existing != nil {
		return nil, errors.NewAppError(code.ErrorModelExists, nil).WithDetails(params.ModelName)
	}

	fields := make([]domain.Field, 0, len(params.InOrderFields))
	for i, name := range params.InOrderFields {
		fields = append(fields, domain.Field{
			Name:      name,
			Ord:       i,
			Collapsed: params.CollapsedField(name),
		})
	}

	templates := make([]domain.Template, 0, len(params.CardTemplates))
	for i, t := range params.CardTemplates {
		name := t.Name
		if name == "" {
			name = fmt.Sprintf("Card %d", i+1)
		}
		templates = append(templates, domain.Template{
			Name: name,
			Ord:  i,
			Qfmt: t.Front,
			Afmt: t.Back,
		})
	}

	css := params.CSS
	if css == "" {
		css = DefaultCSS
	}

	m := &domain.NoteType{
		ID:        util.NewID(),
		Name:      params.ModelName,
		Fields:    fields,
		Templates: templates,
		CSS:       css,
		IsCloze:   params.IsCloze,
		Mod:       nowUnix(),
	}
	m, err = s.models.Create(ctx, m)
	if err != nil {
		return nil, errors.NewAppError(code.ErrorServerInternal, err)
	}
	s.modelCache.Delete(m.Name)
	s.logger.Info("model created",
		zap.String(logger.FieldModel, m.Name),
		zap.Int("fields", len(m.Fields)),
		zap.Int("templates", len(m.Templates)),
	)

	return modelToResult(m), nil
}

// ModelFieldNames returns a note type's field names in ordinal order.
func (s *Service) ModelFieldNames(ctx context.Context, modelName string) ([]string, error) {
	m, err := s.GetModelByName(ctx, modelName)
	if err != nil {
		return nil, err
	}
	return m.FieldNames(), nil
}

// ModelTemplates returns a note type's templates keyed by template name.
func (s *Service) ModelTemplates(ctx context.Context, modelName string) (map[string]dto.ModelTemplateResult, error) {
	m, err := s.GetModelByName(ctx, modelName)
	if err != nil {
		return nil, err
	}
	out := make(map[string]dto.ModelTemplateResult, len(m.Templates))
	for _, t := range m.Templates {
		out[t.Name] = dto.ModelTemplateResult{Front: t.Qfmt, Back: t.Afmt}
	}
	return out, nil
}

func modelToResult(m *domain.NoteType) *dto.CreateModelResult {
	res := &dto.CreateModelResult{
		ID:      m.ID,
		Name:    m.Name,
		CSS:     m.CSS,
		IsCloze: m.IsCloze,
		Mod:     m.Mod,
	}
	for _, f := range m.Fields {
		res.Fields = append(res.Fields, dto.ModelFieldResult{
			Name:      f.Name,
			Ord:       f.Ord,
			Collapsed: f.Collapsed,
		})
	}
	for _, t := range m.Templates {
		res.Templates = append(res.Templates, dto.TemplateResult{
			Name: t.Name,
			Ord:  t.Ord,
			Qfmt: t.Qfmt,
			Afmt: t.Afmt,
		})
	}
	return res
}

// renderTemplate substitutes {{Field}} references with the note's values.
// The answer side may reference {{FrontSide}}.
func renderTemplate(format string, fieldNames []string, fieldValues []string, frontSide string) string {
	out := format
	if frontSide != "" {
		out = strings.ReplaceAll(out, "{{FrontSide}}", frontSide)
	}
	for i, name := range fieldNames {
		if i >= len(fieldValues) {
			break
		}
		out = strings.ReplaceAll(out, "{{"+name+"}}", fieldValues[i])
	}
	return out
}
