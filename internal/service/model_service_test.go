package service

import (
	"testing"

	"github.com/ankibridge/ankibridge-service/internal/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func basicModelParams(name string) *dto.CreateModelParams {
	return &dto.CreateModelParams{
		ModelName:     name,
		InOrderFields: []string{"Front", "Back"},
		CardTemplates: []dto.CardTemplateParam{
			{Front: "{{Front}}", Back: "{{FrontSide}}<hr>{{Back}}"},
		},
	}
}

func basicNote(deck string, front string, back string) *dto.NoteInput {
	return &dto.NoteInput{
		DeckName:  deck,
		ModelName: "Basic",
		Fields:    map[string]string{"Front": front, "Back": back},
	}
}

func TestCreateModel(t *testing.T) {
	svc, ctx := newTestService(t, Config{})

	res, err := svc.CreateModel(ctx, basicModelParams("Basic"))
	require.NoError(t, err)
	assert.NotZero(t, res.ID)
	assert.Equal(t, "Basic", res.Name)
	assert.NotZero(t, res.Mod)

	require.Len(t, res.Fields, 2)
	assert.Equal(t, "Front", res.Fields[0].Name)
	assert.Equal(t, 0, res.Fields[0].Ord)
	assert.False(t, res.Fields[0].Collapsed)
	assert.Equal(t, "Back", res.Fields[1].Name)
	assert.Equal(t, 1, res.Fields[1].Ord)

	require.Len(t, res.Templates, 1)
	assert.Equal(t, "Card 1", res.Templates[0].Name)
	assert.Equal(t, "{{Front}}", res.Templates[0].Qfmt)

	names, err := svc.ModelNames(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Basic"}, names)
}

func TestCreateModelCollapsedFields(t *testing.T) {
	svc, ctx := newTestService(t, Config{})

	params := basicModelParams("Basic")
	params.Options = &dto.CreateModelOptions{CollapsedFields: []string{"Back", "NoSuchField"}}

	res, err := svc.CreateModel(ctx, params)
	require.NoError(t, err)
	require.Len(t, res.Fields, 2)
	assert.False(t, res.Fields[0].Collapsed)
	assert.True(t, res.Fields[1].Collapsed)

	// The flag is persisted with the schema, not just echoed back.
	m, err := svc.GetModelByName(ctx, "Basic")
	require.NoError(t, err)
	require.Len(t, m.Fields, 2)
	assert.False(t, m.Fields[0].Collapsed)
	assert.True(t, m.Fields[1].Collapsed)
}

func TestCreateModelRejectsDuplicateName(t *testing.T) {
	svc, ctx := newTestService(t, Config{})

	_, err := svc.CreateModel(ctx, basicModelParams("Basic"))
	require.NoError(t, err)
	_, err = svc.CreateModel(ctx, basicModelParams("Basic"))
	require.Error(t, err)
}

func TestModelFieldNamesAndTemplates(t *testing.T) {
	svc, ctx := newTestService(t, Config{})
	_, err := svc.CreateModel(ctx, basicModelParams("Basic"))
	require.NoError(t, err)

	fields, err := svc.ModelFieldNames(ctx, "Basic")
	require.NoError(t, err)
	assert.Equal(t, []string{"Front", "Back"}, fields)

	templates, err := svc.ModelTemplates(ctx, "Basic")
	require.NoError(t, err)
	require.Contains(t, templates, "Card 1")
	assert.Equal(t, "{{Front}}", templates["Card 1"].Front)

	_, err = svc.ModelFieldNames(ctx, "Missing")
	require.Error(t, err)
}

func TestModelNamesAndIds(t *testing.T) {
	svc, ctx := newTestService(t, Config{})
	res, err := svc.CreateModel(ctx, basicModelParams("Basic"))
	require.NoError(t, err)

	byName, err := svc.ModelNamesAndIds(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string]int64{"Basic": res.ID}, byName)
}

func TestRenderTemplate(t *testing.T) {
	names := []string{"Front", "Back"}
	values := []string{"der Hund", "the dog"}

	q := renderTemplate("{{Front}}", names, values, "")
	assert.Equal(t, "der Hund", q)

	a := renderTemplate("{{FrontSide}}<hr>{{Back}}", names, values, q)
	assert.Equal(t, "der Hund<hr>the dog", a)
}
