package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yuki-mtmr/SystemPromptDiagnoser/internal/diagnosis"
	"github.com/yuki-mtmr/SystemPromptDiagnoser/internal/session"
)

func newTestServer(t *testing.T) (*Server, session.Store) {
	t.Helper()
	store := session.NewMemoryStore(time.Minute)
	controller := diagnosis.NewController(store, nil)
	return New(DefaultConfig(), controller, store, nil), store
}

func doJSON(t *testing.T, handler http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	return w
}

func TestHealth(t *testing.T) {
	s, _ := newTestServer(t)
	w := doJSON(t, s.Handler(), http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestQuestionsEndpoint(t *testing.T) {
	s, _ := newTestServer(t)

	w := doJSON(t, s.Handler(), http.MethodGet, "/api/v2/questions", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var catalog diagnosis.QuestionCatalog
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &catalog))
	assert.Len(t, catalog.Initial, 2)
	assert.Len(t, catalog.Scenarios, 4)
	assert.Equal(t, "What would you like AI to help you with?", catalog.Initial[0].Question)

	wja := doJSON(t, s.Handler(), http.MethodGet, "/api/v2/questions?lang=ja", nil)
	require.Equal(t, http.StatusOK, wja.Code)
	var catalogJA diagnosis.QuestionCatalog
	require.NoError(t, json.Unmarshal(wja.Body.Bytes(), &catalogJA))
	assert.Equal(t, "AIに何をしてもらいたいですか？", catalogJA.Initial[0].Question)
}

func TestStartReturnsSessionAndPhase(t *testing.T) {
	s, _ := newTestServer(t)

	w := doJSON(t, s.Handler(), http.MethodPost, "/api/v2/diagnose/start", map[string]any{
		"initial_answers": map[string]any{
			"purpose":  "quick test",
			"autonomy": "obedient",
		},
	})
	require.Equal(t, http.StatusOK, w.Code)

	var resp diagnosis.StepResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.SessionID)
	assert.Equal(t, diagnosis.PhaseComplete, resp.Phase)
	require.NotNil(t, resp.Result)
	assert.Len(t, resp.Result.Variants, 3)
}

func TestStartValidation(t *testing.T) {
	s, _ := newTestServer(t)

	// Enum violation caught by binding.
	w := doJSON(t, s.Handler(), http.MethodPost, "/api/v2/diagnose/start", map[string]any{
		"initial_answers": map[string]any{
			"purpose":  "test",
			"autonomy": "invalid_value",
		},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Missing purpose.
	w = doJSON(t, s.Handler(), http.MethodPost, "/api/v2/diagnose/start", map[string]any{
		"initial_answers": map[string]any{
			"autonomy": "collaborative",
		},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Malformed JSON body.
	req := httptest.NewRequest(http.MethodPost, "/api/v2/diagnose/start", bytes.NewBufferString("{"))
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestFullFlowFollowupToComplete(t *testing.T) {
	s, _ := newTestServer(t)

	start := doJSON(t, s.Handler(), http.MethodPost, "/api/v2/diagnose/start", map[string]any{
		"initial_answers": map[string]any{
			"purpose":  "help with writing",
			"autonomy": "collaborative",
		},
	})
	require.Equal(t, http.StatusOK, start.Code)

	var startResp diagnosis.StepResponse
	require.NoError(t, json.Unmarshal(start.Body.Bytes(), &startResp))
	require.Equal(t, diagnosis.PhaseFollowup, startResp.Phase)
	require.NotEmpty(t, startResp.FollowupQuestions)

	cont := doJSON(t, s.Handler(), http.MethodPost, "/api/v2/diagnose/continue", map[string]any{
		"session_id": startResp.SessionID,
		"answers": []map[string]string{
			{"question_id": "fq1", "answer": "detailed"},
		},
	})
	require.Equal(t, http.StatusOK, cont.Code)

	var contResp diagnosis.StepResponse
	require.NoError(t, json.Unmarshal(cont.Body.Bytes(), &contResp))
	assert.Equal(t, diagnosis.PhaseComplete, contResp.Phase)
	require.NotNil(t, contResp.Result)
	assert.Equal(t, diagnosis.StyleStandard, contResp.Result.RecommendedStyle)
	assert.Equal(t, diagnosis.SourceFallback, contResp.Result.Source)
}

func TestContinueUnknownSessionIs404(t *testing.T) {
	s, _ := newTestServer(t)

	w := doJSON(t, s.Handler(), http.MethodPost, "/api/v2/diagnose/continue", map[string]any{
		"session_id": "sess-missing",
		"answers":    []map[string]string{},
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeleteSession(t *testing.T) {
	s, store := newTestServer(t)

	sess, err := store.Create(context.Background())
	require.NoError(t, err)

	w := doJSON(t, s.Handler(), http.MethodDelete, "/api/v2/sessions/"+sess.ID, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, s.Handler(), http.MethodDelete, "/api/v2/sessions/"+sess.ID, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
