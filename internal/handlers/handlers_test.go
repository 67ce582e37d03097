package handlers_test

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"zeny-ai-backend/internal/agents"
	"zeny-ai-backend/internal/api"
	"zeny-ai-backend/internal/api/routes"
	"zeny-ai-backend/internal/llm"
	"zeny-ai-backend/internal/models"
	"zeny-ai-backend/internal/repo"
)

// scriptedAgent returns a fixed result and records the prompts it saw.
type scriptedAgent struct {
	result  *agents.Result
	caps    []string
	prompts []string
}

func (a *scriptedAgent) Execute(_ context.Context, prompt string) (*agents.Result, error) {
	a.prompts = append(a.prompts, prompt)
	return a.result, nil
}

func (a *scriptedAgent) Capabilities() []string { return a.caps }

type testEnv struct {
	app    *fiber.App
	db     *gorm.DB
	chat   *scriptedAgent
	search *scriptedAgent
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(
		&models.StatusCheck{},
		&models.Avatar{},
		&models.TrainingDocument{},
		&models.Conversation{},
	))

	chat := &scriptedAgent{
		result: &agents.Result{Success: true, Content: "Nice to meet you!", Metadata: map[string]interface{}{}},
		caps:   []string{"conversation", "persona_chat"},
	}
	search := &scriptedAgent{
		result: &agents.Result{
			Success:  true,
			Content:  "summary of findings",
			Metadata: map[string]interface{}{"tool_run_count": 2},
		},
		caps: []string{"web_search", "tool_use"},
	}

	cache := agents.NewCache(llm.Config{Provider: llm.ProviderLangChain})
	cache.Register(agents.TypeChat, chat)
	cache.Register(agents.TypeSearch, search)

	app := api.NewServer()
	routes.Register(app, routes.Deps{DB: db, Agents: cache})

	return &testEnv{app: app, db: db, chat: chat, search: search}
}

func (e *testEnv) request(t *testing.T, method, path string, body interface{}) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeMap(t *testing.T, resp *http.Response) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func decodeList(t *testing.T, resp *http.Response) []map[string]interface{} {
	t.Helper()
	var out []map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func (e *testEnv) createAvatar(t *testing.T) map[string]interface{} {
	t.Helper()
	resp := e.request(t, http.MethodPost, "/api/avatars", map[string]string{
		"name":                    "TestBot",
		"personality_description": "A friendly and helpful AI assistant.",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	return decodeMap(t, resp)
}

func (e *testEnv) uploadDocument(t *testing.T, avatarID, text string) map[string]interface{} {
	t.Helper()
	resp := e.request(t, http.MethodPost, "/api/avatars/"+avatarID+"/documents", map[string]string{
		"filename":       "info.txt",
		"content_base64": base64.StdEncoding.EncodeToString([]byte(text)),
		"content_type":   "text/plain",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	return decodeMap(t, resp)
}

func TestHealthCheck(t *testing.T) {
	env := newTestEnv(t)

	resp := env.request(t, http.MethodGet, "/api/", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Hello World", decodeMap(t, resp)["message"])
}

func TestStatusCheckRoundTrip(t *testing.T) {
	env := newTestEnv(t)

	resp := env.request(t, http.MethodPost, "/api/status", map[string]string{"client_name": "probe"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	created := decodeMap(t, resp)
	assert.Equal(t, "probe", created["client_name"])
	assert.NotEmpty(t, created["id"])

	resp = env.request(t, http.MethodGet, "/api/status", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, decodeList(t, resp), 1)
}

func TestCreateAndFetchAvatar(t *testing.T) {
	env := newTestEnv(t)

	created := env.createAvatar(t)
	assert.Equal(t, "TestBot", created["name"])
	assert.Equal(t, "A friendly and helpful AI assistant.", created["personality_description"])
	assert.Equal(t, true, created["is_active"])

	other := env.createAvatar(t)
	assert.NotEqual(t, created["id"], other["id"])

	resp := env.request(t, http.MethodGet, "/api/avatars/"+created["id"].(string), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	fetched := decodeMap(t, resp)
	assert.Equal(t, created["id"], fetched["id"])
	assert.Equal(t, "TestBot", fetched["name"])
}

func TestGetMissingAvatar(t *testing.T) {
	env := newTestEnv(t)

	resp := env.request(t, http.MethodGet, "/api/avatars/"+uuid.NewString(), nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = env.request(t, http.MethodGet, "/api/avatars/not-a-uuid", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestUpdateAvatarPartial(t *testing.T) {
	env := newTestEnv(t)
	created := env.createAvatar(t)

	resp := env.request(t, http.MethodPut, "/api/avatars/"+created["id"].(string), map[string]interface{}{
		"name": "UpdatedBot",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	updated := decodeMap(t, resp)
	assert.Equal(t, "UpdatedBot", updated["name"])
	assert.Equal(t, created["personality_description"], updated["personality_description"])

	resp = env.request(t, http.MethodPut, "/api/avatars/"+uuid.NewString(), map[string]interface{}{"name": "x"})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestDeleteAvatarThenFetch(t *testing.T) {
	env := newTestEnv(t)
	created := env.createAvatar(t)
	avatarID := created["id"].(string)

	doc := env.uploadDocument(t, avatarID, "some text")

	resp := env.request(t, http.MethodDelete, "/api/avatars/"+avatarID, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, true, decodeMap(t, resp)["success"])

	resp = env.request(t, http.MethodDelete, "/api/documents/"+doc["id"].(string), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = env.request(t, http.MethodGet, "/api/avatars/"+avatarID, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = env.request(t, http.MethodDelete, "/api/documents/"+doc["id"].(string), nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestUploadDocumentToMissingAvatar(t *testing.T) {
	env := newTestEnv(t)

	resp := env.request(t, http.MethodPost, "/api/avatars/"+uuid.NewString()+"/documents", map[string]string{
		"filename":       "info.txt",
		"content_base64": base64.StdEncoding.EncodeToString([]byte("text")),
		"content_type":   "text/plain",
	})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	// nothing was persisted
	var count int64
	require.NoError(t, env.db.Model(&models.TrainingDocument{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestListDocuments(t *testing.T) {
	env := newTestEnv(t)
	created := env.createAvatar(t)
	avatarID := created["id"].(string)

	doc := env.uploadDocument(t, avatarID, "Product: TechWidget Pro")
	assert.Equal(t, avatarID, doc["avatar_id"])

	resp := env.request(t, http.MethodGet, "/api/avatars/"+avatarID+"/documents", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	docs := decodeList(t, resp)
	require.Len(t, docs, 1)
	assert.Equal(t, doc["id"], docs[0]["id"])
}

func TestAvatarChatCreatesConversation(t *testing.T) {
	env := newTestEnv(t)
	created := env.createAvatar(t)
	avatarID := created["id"].(string)
	env.uploadDocument(t, avatarID, "Product: TechWidget Pro. Pricing: $99/month.")

	resp := env.request(t, http.MethodPost, "/api/chat/avatar", map[string]string{
		"avatar_id":  avatarID,
		"visitor_id": "v1",
		"message":    "Hello",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeMap(t, resp)
	assert.Equal(t, true, body["success"])
	assert.NotEmpty(t, body["response"])
	conversationID := body["conversation_id"].(string)
	require.NotEmpty(t, conversationID)

	// the persona, document excerpt and visitor message all reach the agent
	require.Len(t, env.chat.prompts, 1)
	assert.Contains(t, env.chat.prompts[0], "You are TestBot")
	assert.Contains(t, env.chat.prompts[0], "TechWidget Pro")
	assert.Contains(t, env.chat.prompts[0], "Visitor: Hello")

	convRepo := repo.NewConversationRepository(env.db)
	conv, err := convRepo.GetByID(uuid.MustParse(conversationID))
	require.NoError(t, err)
	require.Len(t, conv.Messages, 2)
	assert.Equal(t, models.RoleVisitor, conv.Messages[0].Role)
	assert.Equal(t, "Hello", conv.Messages[0].Content)
	assert.Equal(t, models.RoleAvatar, conv.Messages[1].Role)

	// follow-up appends to the same conversation
	resp = env.request(t, http.MethodPost, "/api/chat/avatar", map[string]string{
		"avatar_id":       avatarID,
		"visitor_id":      "v1",
		"message":         "What about pricing?",
		"conversation_id": conversationID,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body = decodeMap(t, resp)
	assert.Equal(t, conversationID, body["conversation_id"])

	conv, err = convRepo.GetByID(uuid.MustParse(conversationID))
	require.NoError(t, err)
	assert.Len(t, conv.Messages, 4)

	// exactly one conversation exists for the avatar
	convs, err := convRepo.ListByAvatar(uuid.MustParse(avatarID))
	require.NoError(t, err)
	assert.Len(t, convs, 1)
}

func TestAvatarChatMissingOrInactiveAvatar(t *testing.T) {
	env := newTestEnv(t)

	resp := env.request(t, http.MethodPost, "/api/chat/avatar", map[string]string{
		"avatar_id":  "nonexistent_avatar_id",
		"visitor_id": "v1",
		"message":    "Hello",
	})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	created := env.createAvatar(t)
	avatarID := created["id"].(string)
	resp = env.request(t, http.MethodPut, "/api/avatars/"+avatarID, map[string]interface{}{"is_active": false})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = env.request(t, http.MethodPost, "/api/chat/avatar", map[string]string{
		"avatar_id":  avatarID,
		"visitor_id": "v1",
		"message":    "Hello",
	})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	// no conversations were created on either failure
	var count int64
	require.NoError(t, env.db.Model(&models.Conversation{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestAvatarChatMissingConversation(t *testing.T) {
	env := newTestEnv(t)
	created := env.createAvatar(t)

	resp := env.request(t, http.MethodPost, "/api/chat/avatar", map[string]string{
		"avatar_id":       created["id"].(string),
		"visitor_id":      "v1",
		"message":         "Hello",
		"conversation_id": uuid.NewString(),
	})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestAvatarChatAgentFailureIs500(t *testing.T) {
	env := newTestEnv(t)
	created := env.createAvatar(t)
	env.chat.result = &agents.Result{Success: false, Error: "model exploded"}

	resp := env.request(t, http.MethodPost, "/api/chat/avatar", map[string]string{
		"avatar_id":  created["id"].(string),
		"visitor_id": "v1",
		"message":    "Hello",
	})
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, "model exploded", decodeMap(t, resp)["error"])
}

func TestSummarizeConversation(t *testing.T) {
	env := newTestEnv(t)
	created := env.createAvatar(t)
	avatarID := created["id"].(string)

	resp := env.request(t, http.MethodPost, "/api/chat/avatar", map[string]string{
		"avatar_id":  avatarID,
		"visitor_id": "v1",
		"message":    "Hello",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	conversationID := decodeMap(t, resp)["conversation_id"].(string)

	env.chat.result = &agents.Result{Success: true, Content: "The visitor said hello."}
	resp = env.request(t, http.MethodPost, "/api/conversations/"+conversationID+"/summarize", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeMap(t, resp)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "The visitor said hello.", body["summary"])

	convRepo := repo.NewConversationRepository(env.db)
	conv, err := convRepo.GetByID(uuid.MustParse(conversationID))
	require.NoError(t, err)
	require.NotNil(t, conv.Summary)
	assert.Equal(t, "The visitor said hello.", *conv.Summary)
	require.NotNil(t, conv.EndedAt)

	// summarizing again overwrites
	env.chat.result = &agents.Result{Success: true, Content: "A short greeting exchange."}
	resp = env.request(t, http.MethodPost, "/api/conversations/"+conversationID+"/summarize", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	conv, err = convRepo.GetByID(uuid.MustParse(conversationID))
	require.NoError(t, err)
	assert.Equal(t, "A short greeting exchange.", *conv.Summary)

	// the conversation still accepts chat turns after being summarized
	env.chat.result = &agents.Result{Success: true, Content: "Welcome back!"}
	resp = env.request(t, http.MethodPost, "/api/chat/avatar", map[string]string{
		"avatar_id":       avatarID,
		"visitor_id":      "v1",
		"message":         "Still there?",
		"conversation_id": conversationID,
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestSummarizeMissingConversation(t *testing.T) {
	env := newTestEnv(t)

	resp := env.request(t, http.MethodPost, "/api/conversations/"+uuid.NewString()+"/summarize", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestSummarizeAgentFailureIs500(t *testing.T) {
	env := newTestEnv(t)
	created := env.createAvatar(t)

	resp := env.request(t, http.MethodPost, "/api/chat/avatar", map[string]string{
		"avatar_id":  created["id"].(string),
		"visitor_id": "v1",
		"message":    "Hello",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	conversationID := decodeMap(t, resp)["conversation_id"].(string)

	env.chat.result = &agents.Result{Success: false, Error: "summarizer down"}
	resp = env.request(t, http.MethodPost, "/api/conversations/"+conversationID+"/summarize", nil)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
}

func TestGetAvatarConversations(t *testing.T) {
	env := newTestEnv(t)
	created := env.createAvatar(t)
	avatarID := created["id"].(string)

	resp := env.request(t, http.MethodPost, "/api/chat/avatar", map[string]string{
		"avatar_id":  avatarID,
		"visitor_id": "v1",
		"message":    "Hello",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	conversationID := decodeMap(t, resp)["conversation_id"].(string)

	resp = env.request(t, http.MethodGet, "/api/avatars/"+avatarID+"/conversations", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	convs := decodeList(t, resp)
	require.Len(t, convs, 1)
	assert.Equal(t, conversationID, convs[0]["id"])
}

func TestGenericChatEndpoint(t *testing.T) {
	env := newTestEnv(t)
	env.chat.result = &agents.Result{Success: true, Content: "hi!", Metadata: map[string]interface{}{"model": "test"}}

	resp := env.request(t, http.MethodPost, "/api/chat", map[string]string{"message": "hello"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeMap(t, resp)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "hi!", body["response"])
	assert.Equal(t, "chat", body["agent_type"])
	assert.NotEmpty(t, body["capabilities"])
}

func TestGenericChatAgentFailureStays200(t *testing.T) {
	env := newTestEnv(t)
	env.chat.result = &agents.Result{Success: false, Error: "provider down"}

	resp := env.request(t, http.MethodPost, "/api/chat", map[string]string{"message": "hello"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeMap(t, resp)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "provider down", body["error"])
}

func TestGenericChatUnknownAgentType(t *testing.T) {
	env := newTestEnv(t)

	resp := env.request(t, http.MethodPost, "/api/chat", map[string]string{
		"message":    "hello",
		"agent_type": "oracle",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestSearchEndpoint(t *testing.T) {
	env := newTestEnv(t)

	resp := env.request(t, http.MethodPost, "/api/search", map[string]interface{}{
		"query": "golang generics",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeMap(t, resp)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "golang generics", body["query"])
	assert.Equal(t, "summary of findings", body["summary"])
	assert.Equal(t, float64(2), body["sources_count"])

	require.Len(t, env.search.prompts, 1)
	assert.Contains(t, env.search.prompts[0], "Search for information about: golang generics")
}

func TestSearchAgentFailureStays200(t *testing.T) {
	env := newTestEnv(t)
	env.search.result = &agents.Result{Success: false, Error: "search backend down"}

	resp := env.request(t, http.MethodPost, "/api/search", map[string]interface{}{"query": "anything"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeMap(t, resp)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "search backend down", body["error"])
	assert.Equal(t, float64(0), body["sources_count"])
}

func TestCapabilitiesEndpoint(t *testing.T) {
	env := newTestEnv(t)

	resp := env.request(t, http.MethodGet, "/api/agents/capabilities", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeMap(t, resp)
	assert.Equal(t, true, body["success"])
	caps := body["capabilities"].(map[string]interface{})
	assert.NotEmpty(t, caps["chat_agent"])
	assert.NotEmpty(t, caps["search_agent"])
}

func TestEndToEndScenario(t *testing.T) {
	env := newTestEnv(t)

	created := env.createAvatar(t)
	avatarID := created["id"].(string)
	env.uploadDocument(t, avatarID, "Product: TechWidget Pro\nPricing: $99/month")

	resp := env.request(t, http.MethodPost, "/api/chat/avatar", map[string]string{
		"avatar_id":  avatarID,
		"visitor_id": "v1",
		"message":    "Hello",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	first := decodeMap(t, resp)
	assert.Equal(t, true, first["success"])
	assert.NotEmpty(t, first["response"])
	conversationID := first["conversation_id"].(string)

	resp = env.request(t, http.MethodPost, "/api/chat/avatar", map[string]string{
		"avatar_id":       avatarID,
		"visitor_id":      "v1",
		"message":         "What are the features?",
		"conversation_id": conversationID,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	second := decodeMap(t, resp)
	assert.Equal(t, conversationID, second["conversation_id"])

	conv, err := repo.NewConversationRepository(env.db).GetByID(uuid.MustParse(conversationID))
	require.NoError(t, err)
	assert.Len(t, conv.Messages, 4)
}
