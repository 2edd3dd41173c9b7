package connect_router

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sort"
	"testing"

	"github.com/ankibridge/ankibridge-service/internal/dao"
	"github.com/ankibridge/ankibridge-service/internal/dto"
	"github.com/ankibridge/ankibridge-service/internal/service"
	"github.com/ankibridge/ankibridge-service/pkg/app"
	"github.com/ankibridge/ankibridge-service/pkg/storage"

	"github.com/bytedance/sonic"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type envelope struct {
	Result json.RawMessage `json:"result"`
	Error  *string         `json:"error"`
}

func newTestHandler(t *testing.T, cfg Config) *Handler {
	t.Helper()
	dir := t.TempDir()

	db, err := dao.NewDBEngineWithConfig(dao.DatabaseConfig{
		Type:         "sqlite",
		Path:         filepath.Join(dir, "collection.db"),
		TablePrefix:  "ab_",
		AutoMigrate:  true,
		MaxIdleConns: 1,
		MaxOpenConns: 1,
	}, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	store, err := storage.NewClient(&storage.Config{
		Type:     storage.LOCAL,
		SavePath: filepath.Join(dir, "media"),
	})
	require.NoError(t, err)

	svc := service.New(dao.New(db), store, nil, service.Config{}, zap.NewNop())
	require.NoError(t, svc.EnsureDefaultDeck(context.Background()))

	return NewHandler(svc, cfg, zap.NewNop())
}

func newTestRouter(t *testing.T, cfg Config) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.POST("/", newTestHandler(t, cfg).Dispatch)
	return engine
}

// post sends one raw protocol request and decodes the envelope.
func post(t *testing.T, engine *gin.Engine, body string, headers map[string]string) (envelope, *httptest.ResponseRecorder) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var env envelope
	require.NoError(t, sonic.Unmarshal(w.Body.Bytes(), &env))
	return env, w
}

// call invokes an action with params and fails the test on a protocol error.
func call(t *testing.T, engine *gin.Engine, action string, params interface{}, out interface{}) {
	t.Helper()
	req := map[string]interface{}{"action": action, "version": app.APIVersion}
	if params != nil {
		req["params"] = params
	}
	body, err := sonic.Marshal(req)
	require.NoError(t, err)

	env, _ := post(t, engine, string(body), nil)
	require.Nil(t, env.Error, "action %s: %v", action, env.Error)
	if out != nil {
		require.NoError(t, sonic.Unmarshal(env.Result, out))
	}
}

func TestGetVersion(t *testing.T) {
	engine := newTestRouter(t, Config{})

	var version int
	call(t, engine, "getVersion", nil, &version)
	assert.Equal(t, app.APIVersion, version)
}

func TestGetVersionSkipsAPIKeyCheck(t *testing.T) {
	engine := newTestRouter(t, Config{APIKey: "secret"})

	env, _ := post(t, engine, `{"action":"getVersion","version":6}`, nil)
	assert.Nil(t, env.Error)
	assert.Equal(t, "6", string(env.Result))
}

func TestLegacyVersionGetsBareResult(t *testing.T) {
	engine := newTestRouter(t, Config{})

	req := httptest.NewRequest(http.MethodPost, "/",
		bytes.NewBufferString(`{"action":"getVersion","version":4}`))
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "6", w.Body.String())
}

func TestUnknownAction(t *testing.T) {
	engine := newTestRouter(t, Config{})

	env, _ := post(t, engine, `{"action":"explodeCollection","version":6}`, nil)
	require.NotNil(t, env.Error)
	assert.Equal(t, "unsupported action", *env.Error)
	assert.Equal(t, "null", string(env.Result))
}

func TestMalformedBody(t *testing.T) {
	engine := newTestRouter(t, Config{})

	env, _ := post(t, engine, `{"action":`, nil)
	require.NotNil(t, env.Error)
	assert.Equal(t, "request body is not valid json", *env.Error)
}

func TestAPIKeyRequired(t *testing.T) {
	engine := newTestRouter(t, Config{APIKey: "secret"})

	env, _ := post(t, engine, `{"action":"deckNames","version":6}`, nil)
	require.NotNil(t, env.Error)
	assert.Equal(t, "valid api key must be provided", *env.Error)

	env, _ = post(t, engine, `{"action":"deckNames","version":6,"key":"wrong"}`, nil)
	require.NotNil(t, env.Error)
	assert.Equal(t, "valid api key must be provided", *env.Error)

	env, _ = post(t, engine, `{"action":"deckNames","version":6,"key":"secret"}`, nil)
	assert.Nil(t, env.Error)
}

func TestOriginDenied(t *testing.T) {
	engine := newTestRouter(t, Config{CORSOrigins: []string{"http://localhost"}})

	headers := map[string]string{"Origin": "https://evil.example"}
	env, _ := post(t, engine, `{"action":"deckNames","version":6}`, headers)
	require.NotNil(t, env.Error)
	assert.Equal(t, "origin not allowed", *env.Error)

	// Allowed origin and absent origin both pass.
	env, _ = post(t, engine, `{"action":"deckNames","version":6}`,
		map[string]string{"Origin": "http://localhost"})
	assert.Nil(t, env.Error)
	env, _ = post(t, engine, `{"action":"deckNames","version":6}`, nil)
	assert.Nil(t, env.Error)
}

func TestRequestPermission(t *testing.T) {
	engine := newTestRouter(t, Config{APIKey: "secret", CORSOrigins: []string{"http://localhost"}})

	env, _ := post(t, engine,
		`{"action":"requestPermission","version":6}`,
		map[string]string{"Origin": "http://localhost"})
	require.Nil(t, env.Error)
	var granted dto.RequestPermissionResult
	require.NoError(t, sonic.Unmarshal(env.Result, &granted))
	assert.Equal(t, "granted", granted.Permission)
	assert.True(t, granted.RequireAPIKey)
	assert.Equal(t, app.APIVersion, granted.Version)

	env, _ = post(t, engine,
		`{"action":"requestPermission","version":6}`,
		map[string]string{"Origin": "https://evil.example"})
	require.Nil(t, env.Error)
	var denied dto.RequestPermissionResult
	require.NoError(t, sonic.Unmarshal(env.Result, &denied))
	assert.Equal(t, "denied", denied.Permission)
}

func TestInvalidParamsRejected(t *testing.T) {
	engine := newTestRouter(t, Config{})

	env, _ := post(t, engine, `{"action":"createDeck","version":6,"params":{}}`, nil)
	require.NotNil(t, env.Error)
	assert.Contains(t, *env.Error, "invalid request parameters")
}

func TestNoteLifecycleOverTheWire(t *testing.T) {
	engine := newTestRouter(t, Config{})

	var model dto.CreateModelResult
	call(t, engine, "createModel", dto.CreateModelParams{
		ModelName:     "Basic",
		InOrderFields: []string{"Front", "Back"},
		CardTemplates: []dto.CardTemplateParam{
			{Name: "Card 1", Front: "{{Front}}", Back: "{{FrontSide}}<hr>{{Back}}"},
		},
		Options: &dto.CreateModelOptions{CollapsedFields: []string{"Back"}},
	}, &model)
	assert.Equal(t, "Basic", model.Name)
	require.Len(t, model.Fields, 2)
	assert.False(t, model.Fields[0].Collapsed)
	assert.True(t, model.Fields[1].Collapsed)

	var noteID int64
	call(t, engine, "addNote", dto.AddNoteParams{Note: &dto.NoteInput{
		DeckName:  "Default",
		ModelName: "Basic",
		Fields:    map[string]string{"Front": "der Hund", "Back": "the dog"},
		Tags:      []string{"german"},
	}}, &noteID)
	require.NotZero(t, noteID)

	var found []int64
	call(t, engine, "findNotes", dto.FindNotesParams{Query: "tag:german"}, &found)
	require.Equal(t, []int64{noteID}, found)

	var modTimes []dto.NoteModTimeResult
	call(t, engine, "notesModTime", dto.NotesParams{Notes: []int64{noteID}}, &modTimes)
	require.Len(t, modTimes, 1)
	assert.Equal(t, noteID, modTimes[0].NoteID)
	assert.NotZero(t, modTimes[0].Mod)

	var infos []dto.NoteInfoResult
	call(t, engine, "notesInfo", dto.NotesParams{Notes: []int64{noteID}}, &infos)
	require.Len(t, infos, 1)
	assert.Equal(t, "Basic", infos[0].ModelName)
	assert.Equal(t, []string{"german"}, infos[0].Tags)
	assert.Equal(t, "der Hund", infos[0].Fields["Front"].Value)
	assert.Equal(t, modTimes[0].Mod, infos[0].Mod)

	var cardIDs []int64
	call(t, engine, "findCards", dto.FindCardsParams{Query: "deck:Default"}, &cardIDs)
	require.Len(t, cardIDs, 1)

	var answered []bool
	call(t, engine, "answerCards", dto.AnswerCardsParams{
		Answers: []dto.CardAnswer{{CardID: cardIDs[0], Ease: 3}},
	}, &answered)
	assert.Equal(t, []bool{true}, answered)
}

func TestRetrieveMissingMediaReturnsFalse(t *testing.T) {
	engine := newTestRouter(t, Config{})

	env, _ := post(t, engine,
		`{"action":"retrieveMediaFile","version":6,"params":{"filename":"nope.png"}}`, nil)
	require.Nil(t, env.Error)
	assert.Equal(t, "false", string(env.Result))
}

func TestAPIReflect(t *testing.T) {
	engine := newTestRouter(t, Config{})

	var result dto.APIReflectResult
	call(t, engine, "apiReflect", dto.APIReflectParams{
		Scopes:  []string{"actions"},
		Actions: []string{"getVersion", "explodeCollection"},
	}, &result)
	assert.Equal(t, []string{"actions"}, result.Scopes)
	assert.Equal(t, []string{"getVersion"}, result.Actions)

	// Nil actions filter reflects the whole table.
	var all dto.APIReflectResult
	call(t, engine, "apiReflect", map[string]interface{}{"scopes": []string{"actions"}}, &all)
	assert.Contains(t, all.Actions, "notesModTime")
	assert.Contains(t, all.Actions, "isFsrsActive")
	assert.True(t, sort.StringsAreSorted(all.Actions))
}

func TestIsFsrsActiveOverTheWire(t *testing.T) {
	engine := newTestRouter(t, Config{})

	var active bool
	call(t, engine, "isFsrsActive", nil, &active)
	assert.False(t, active)
}
