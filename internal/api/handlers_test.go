package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/salesguard/internal/catalog"
	"github.com/salesguard/internal/combat"
	"github.com/salesguard/internal/review"
)

type combatEngineStub struct {
	lastReq combat.Request
	result  combat.Result
}

func (s *combatEngineStub) Engage(_ context.Context, req combat.Request) combat.Result {
	s.lastReq = req
	return s.result
}

type reviewEngineStub struct {
	result *review.ReviewResult
	err    error
	calls  int
}

func (s *reviewEngineStub) Score(_ context.Context, _ review.Request) (*review.ReviewResult, error) {
	s.calls++
	return s.result, s.err
}

func newTestServer(ce CombatEngine, re ReviewEngine) *Server {
	return newServer(0, ce, re, catalog.Default(), 5*time.Second, 5*time.Second)
}

func doJSON(s *Server, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.echo.ServeHTTP(rec, req)
	return rec
}

func TestHandleCombat(t *testing.T) {
	engine := &combatEngineStub{result: combat.Result{
		Card: combat.TacticalCard{
			Diagnosis: "d",
			Tags:      []string{"#x"},
			Scripts:   []combat.Script{{Type: combat.ScriptSoft, Content: "c"}},
			Files:     []combat.Attachment{},
		},
		ConversationID: "conv-1",
	}}
	s := newTestServer(engine, &reviewEngineStub{})

	rec := doJSON(s, http.MethodPost, "/api/v1/combat", `{
		"industry": "saas",
		"productName": "Acme CRM",
		"role": "AE",
		"stage": "S3",
		"triggerValue": "t_price",
		"problemType": "PriceObjection",
		"conversationId": "conv-0",
		"userId": "u1"
	}`)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Data           combat.TacticalCard `json:"data"`
		ConversationID string              `json:"conversation_id"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "d", resp.Data.Diagnosis)
	assert.Equal(t, "conv-1", resp.ConversationID)

	assert.Equal(t, "saas", engine.lastReq.Setup.Industry)
	assert.Equal(t, "Acme CRM", engine.lastReq.Setup.ProductName)
	assert.Equal(t, "S3", engine.lastReq.Stage)
	assert.Equal(t, "conv-0", engine.lastReq.ConversationID)
	assert.Equal(t, "u1", engine.lastReq.UserID)
}

func TestHandleCombat_InvalidBody(t *testing.T) {
	s := newTestServer(&combatEngineStub{}, &reviewEngineStub{})

	rec := doJSON(s, http.MethodPost, "/api/v1/combat", `{not json`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleReview_MissingImage(t *testing.T) {
	re := &reviewEngineStub{}
	s := newTestServer(&combatEngineStub{}, re)

	rec := doJSON(s, http.MethodPost, "/api/v1/review", `{"industry": "saas", "product": "Acme", "role": "AE"}`)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "image is required")
	assert.Equal(t, 0, re.calls, "no provider work for malformed input")
}

func TestHandleReview_Success(t *testing.T) {
	re := &reviewEngineStub{result: review.DemoResult()}
	s := newTestServer(&combatEngineStub{}, re)

	rec := doJSON(s, http.MethodPost, "/api/v1/review", `{"image": "base64", "industry": "saas"}`)

	require.Equal(t, http.StatusOK, rec.Code)

	var result review.ReviewResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, 72, result.OverallScore)
	assert.Len(t, result.StageScores, 6)
}

func TestHandleReview_InternalFailure(t *testing.T) {
	re := &reviewEngineStub{err: errors.New("workflow exploded")}
	s := newTestServer(&combatEngineStub{}, re)

	rec := doJSON(s, http.MethodPost, "/api/v1/review", `{"image": "base64"}`)

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	// The boundary converts failures to a coarse error payload; internals
	// never leak to the caller.
	assert.NotContains(t, rec.Body.String(), "exploded")
	assert.Contains(t, rec.Body.String(), "internal server error")
}

func TestHandleStages(t *testing.T) {
	s := newTestServer(&combatEngineStub{}, &reviewEngineStub{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/stages", nil)
	rec := httptest.NewRecorder()
	s.echo.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Stages []catalog.Stage `json:"stages"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Stages, 6)
	assert.Equal(t, "S0", resp.Stages[0].ID)
	assert.NotEmpty(t, resp.Stages[0].Triggers)
}

func TestHealth(t *testing.T) {
	s := newTestServer(&combatEngineStub{}, &reviewEngineStub{})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	s.echo.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "healthy")
}

func TestRequestIDHeader(t *testing.T) {
	s := newTestServer(&combatEngineStub{}, &reviewEngineStub{})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	s.echo.ServeHTTP(rec, req)

	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}
