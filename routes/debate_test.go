package routes

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"debatesim/internal/debate"
	"debatesim/utils"

	"github.com/gin-gonic/gin"
)

// testRouter builds the API against a gateway with no generator configured
// and a pacing cadence far beyond the test horizon, so handlers can be
// exercised without AI turns interfering.
func testRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	pacing := debate.PacingConfig{
		UserReplyDelay:    time.Hour,
		Speeds:            []debate.Speed{{Label: "1x", Delay: time.Hour}},
		DefaultSpeedIndex: 0,
		FallbackDelay:     time.Hour,
		TickInterval:      time.Hour,
	}
	manager := debate.NewManager(debate.NewGateway(nil), pacing, 30)
	router := gin.New()
	Setup(router, manager, utils.SeedTopics())
	return router
}

func doJSON(t *testing.T, router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("{}")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func createSession(t *testing.T, router *gin.Engine) string {
	t.Helper()
	w := doJSON(t, router, http.MethodPost, "/sessions", `{"topicId": 1}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("Expected 201 creating session, got %d: %s", w.Code, w.Body.String())
	}
	var resp struct {
		SessionID string `json:"sessionId"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Invalid create response: %v", err)
	}
	if resp.SessionID == "" {
		t.Fatalf("Expected a session id")
	}
	return resp.SessionID
}

func TestGetTopics(t *testing.T) {
	router := testRouter()
	w := doJSON(t, router, http.MethodGet, "/topics", "")
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}
	var resp struct {
		Topics []struct {
			ID    int    `json:"id"`
			Title string `json:"title"`
		} `json:"topics"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Invalid topics response: %v", err)
	}
	if len(resp.Topics) != 3 {
		t.Errorf("Expected 3 topics, got %d", len(resp.Topics))
	}
}

func TestCreateSessionUnknownTopic(t *testing.T) {
	router := testRouter()
	w := doJSON(t, router, http.MethodPost, "/sessions", `{"topicId": 99}`)
	if w.Code != http.StatusNotFound {
		t.Errorf("Expected 404 for unknown topic, got %d", w.Code)
	}
}

func TestSessionLifecycle(t *testing.T) {
	router := testRouter()
	id := createSession(t, router)

	w := doJSON(t, router, http.MethodGet, "/sessions/"+id, "")
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200 fetching session, got %d", w.Code)
	}

	w = doJSON(t, router, http.MethodPost, "/sessions/"+id+"/messages", `{"content": "What about medication?"}`)
	if w.Code != http.StatusCreated {
		t.Errorf("Expected 201 sending message, got %d: %s", w.Code, w.Body.String())
	}

	w = doJSON(t, router, http.MethodPost, "/sessions/"+id+"/messages", `{"content": "   "}`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for blank message, got %d", w.Code)
	}

	w = doJSON(t, router, http.MethodDelete, "/sessions/"+id, "")
	if w.Code != http.StatusOK {
		t.Errorf("Expected 200 deleting session, got %d", w.Code)
	}
	w = doJSON(t, router, http.MethodGet, "/sessions/"+id, "")
	if w.Code != http.StatusNotFound {
		t.Errorf("Expected 404 after deletion, got %d", w.Code)
	}
}

func TestSessionControls(t *testing.T) {
	router := testRouter()
	id := createSession(t, router)

	w := doJSON(t, router, http.MethodPost, "/sessions/"+id+"/pause", "")
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200 pausing, got %d", w.Code)
	}
	var stateResp struct {
		State struct {
			Paused bool `json:"paused"`
		} `json:"state"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &stateResp); err != nil {
		t.Fatalf("Invalid pause response: %v", err)
	}
	if !stateResp.State.Paused {
		t.Errorf("Expected paused state")
	}

	w = doJSON(t, router, http.MethodPost, "/sessions/"+id+"/resume", "")
	if w.Code != http.StatusOK {
		t.Errorf("Expected 200 resuming, got %d", w.Code)
	}

	w = doJSON(t, router, http.MethodPost, "/sessions/"+id+"/speed", "")
	if w.Code != http.StatusOK {
		t.Errorf("Expected 200 toggling speed, got %d", w.Code)
	}

	w = doJSON(t, router, http.MethodPost, "/sessions/"+id+"/speed", `{"index": 42}`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for out-of-range speed, got %d", w.Code)
	}

	w = doJSON(t, router, http.MethodPost, "/sessions/"+id+"/modal", `{"modal": "export", "open": true}`)
	if w.Code != http.StatusOK {
		t.Errorf("Expected 200 opening modal, got %d", w.Code)
	}
	w = doJSON(t, router, http.MethodPost, "/sessions/"+id+"/modal", `{"modal": "settings", "open": true}`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for unknown modal, got %d", w.Code)
	}
}

func TestSessionRestartAndChangeTopic(t *testing.T) {
	router := testRouter()
	id := createSession(t, router)

	doJSON(t, router, http.MethodPost, "/sessions/"+id+"/messages", `{"content": "hello"}`)

	w := doJSON(t, router, http.MethodPost, "/sessions/"+id+"/restart", "{}")
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200 restarting, got %d", w.Code)
	}
	var resp struct {
		Messages []json.RawMessage `json:"messages"`
		Topic    struct {
			ID int `json:"id"`
		} `json:"topic"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Invalid restart response: %v", err)
	}
	if len(resp.Messages) != 1 {
		t.Errorf("Expected reseeded transcript, got %d messages", len(resp.Messages))
	}

	w = doJSON(t, router, http.MethodPost, "/sessions/"+id+"/restart", `{"topicId": 2}`)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200 changing topic, got %d", w.Code)
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Invalid change-topic response: %v", err)
	}
	if resp.Topic.ID != 2 {
		t.Errorf("Expected topic 2, got %d", resp.Topic.ID)
	}
}

func TestSessionStatsAndExport(t *testing.T) {
	router := testRouter()
	id := createSession(t, router)
	doJSON(t, router, http.MethodPost, "/sessions/"+id+"/messages", `{"content": "hello"}`)

	w := doJSON(t, router, http.MethodGet, "/sessions/"+id+"/stats", "")
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200 for stats, got %d", w.Code)
	}
	var stats struct {
		TotalMessages int `json:"totalMessages"`
		UserMessages  int `json:"userMessages"`
		Engagement    int `json:"engagement"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &stats); err != nil {
		t.Fatalf("Invalid stats response: %v", err)
	}
	if stats.TotalMessages != 2 || stats.UserMessages != 1 || stats.Engagement != 50 {
		t.Errorf("Unexpected stats: %+v", stats)
	}

	w = doJSON(t, router, http.MethodGet, "/sessions/"+id+"/export?format=txt", "")
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200 for export, got %d", w.Code)
	}
	if !strings.Contains(w.Header().Get("Content-Disposition"), "attachment") {
		t.Errorf("Expected attachment disposition, got %q", w.Header().Get("Content-Disposition"))
	}
	if !strings.Contains(w.Body.String(), "Topic: Best Approaches for Treating Anxiety") {
		t.Errorf("Expected transcript content in export")
	}

	w = doJSON(t, router, http.MethodGet, "/sessions/"+id+"/export?format=pdf", "")
	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for unknown export format, got %d", w.Code)
	}
}
