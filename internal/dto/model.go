package dto

// CardTemplateParam one template in createModel. The template name is
// optional; unnamed templates become "Card 1", "Card 2" and so on.
type CardTemplateParam struct {
	Name  string `json:"Name"`
	Front string `json:"Front" binding:"required"`
	Back  string `json:"Back" binding:"required"`
}

// CreateModelOptions optional createModel settings. CollapsedFields names
// the fields that start collapsed in editors.
type CreateModelOptions struct {
	CollapsedFields []string `json:"collapsedFields"`
}

// CreateModelParams params for createModel.
type CreateModelParams struct {
	ModelName     string              `json:"modelName" binding:"required"`
	InOrderFields []string            `json:"inOrderFields" binding:"required,min=1"`
	CSS           string              `json:"css"`
	IsCloze       bool                `json:"isCloze"`
	CardTemplates []CardTemplateParam `json:"cardTemplates" binding:"required,min=1"`
	Options       *CreateModelOptions `json:"options"`
}

// CollapsedField reports whether name is listed in options.collapsedFields.
func (p *CreateModelParams) CollapsedField(name string) bool {
	if p.Options == nil {
		return false
	}
	for _, f := range p.Options.CollapsedFields {
		if f == name {
			return true
		}
	}
	return false
}

// ModelFieldNamesParams params for modelFieldNames.
type ModelFieldNamesParams struct {
	ModelName string `json:"modelName" binding:"required"`
}

// ModelTemplatesParams params for modelTemplates.
type ModelTemplatesParams struct {
	ModelName string `json:"modelName" binding:"required"`
}

// ModelTemplateResult one template in the modelTemplates reply, keyed by
// template name.
type ModelTemplateResult struct {
	Front string `json:"Front"`
	Back  string `json:"Back"`
}

// ModelFieldResult one field in the createModel reply.
type ModelFieldResult struct {
	Name      string `json:"name"`
	Ord       int    `json:"ord"`
	Collapsed bool   `json:"collapsed"`
}

// TemplateResult one template in the createModel reply.
type TemplateResult struct {
	Name string `json:"name"`
	Ord  int    `json:"ord"`
	Qfmt string `json:"qfmt"`
	Afmt string `json:"afmt"`
}

// CreateModelResult reply for createModel.
type CreateModelResult struct {
	ID        int64              `json:"id"`
	Name      string             `json:"name"`
	Fields    []ModelFieldResult `json:"flds"`
	CSS       string             `json:"css"`
	IsCloze   bool               `json:"isCloze"`
	Mod       int64              `json:"mod"`
	Templates []TemplateResult   `json:"tmpls"`
}
