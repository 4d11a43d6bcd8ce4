package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-qa-backend/internal/config"
	"github.com/tbourn/go-qa-backend/internal/domain"
	"github.com/tbourn/go-qa-backend/internal/memstore"
	"github.com/tbourn/go-qa-backend/internal/moderation"
	"github.com/tbourn/go-qa-backend/internal/repo"
	"github.com/tbourn/go-qa-backend/internal/services"
)

func baseConfig() config.Config {
	return config.Config{
		APIBasePath:    "/",
		RequestTimeout: 5 * time.Second,
		LogRedact:      true,
		RateRPS:        100,
		RateBurst:      50,
		OTEL:           config.OTELConfig{ServiceName: "test-svc"},
	}
}

func newRouter(t *testing.T, store services.Store, censor services.Censor, cfg config.Config) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	RegisterRoutes(r, store, censor, cfg)
	return r
}

func do(r http.Handler, method, target, body string, hdr map[string]string) *httptest.ResponseRecorder {
	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, rd)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range hdr {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func seedQuestions(t *testing.T, s services.Store, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		if _, err := s.CreateQuestion(context.Background(), domain.NewQuestion{Title: "t", Content: "c"}); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}
}

func TestRegisterRoutes_Health_Metrics_Fallbacks(t *testing.T) {
	r := newRouter(t, memstore.New(), moderation.Noop{}, baseConfig())

	w := do(r, http.MethodGet, "/health", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("GET /health = %d", w.Code)
	}
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Fatalf("allow-all CORS expected '*', got %q", got)
	}
	if w.Header().Get("X-Request-ID") == "" {
		t.Fatalf("expected X-Request-ID header")
	}

	w = do(r, http.MethodGet, "/metrics", "", nil)
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), "http_requests_total") {
		t.Fatalf("GET /metrics bad: code=%d", w.Code)
	}

	w = do(r, http.MethodGet, "/nope", "", nil)
	if w.Code != http.StatusNotFound || !strings.Contains(w.Body.String(), `"not_found"`) {
		t.Fatalf("GET /nope = %d %s", w.Code, w.Body.String())
	}

	w = do(r, http.MethodPost, "/health", "", nil)
	if w.Code != http.StatusMethodNotAllowed {
		t.Fatalf("POST /health expected 405, got %d", w.Code)
	}

	// Swagger is off by default.
	if w = do(r, http.MethodGet, "/swagger/doc.json", "", nil); w.Code != http.StatusNotFound {
		t.Fatalf("swagger should be disabled, got %d", w.Code)
	}
}

func TestListQuestions_LimitOffsetWindow(t *testing.T) {
	st := memstore.New()
	seedQuestions(t, st, 5)
	r := newRouter(t, st, moderation.Noop{}, baseConfig())

	w := do(r, http.MethodGet, "/questions?limit=2&offset=0", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d body=%s", w.Code, w.Body.String())
	}
	var got []domain.Question
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(got) != 2 || got[0].ID != 1 || got[1].ID != 2 {
		t.Fatalf("unexpected page: %+v", got)
	}

	w = do(r, http.MethodGet, "/questions?limit=2", "", nil)
	if w.Code != http.StatusBadRequest || !strings.Contains(w.Body.String(), `"missing_parameters"`) {
		t.Fatalf("lone limit: %d %s", w.Code, w.Body.String())
	}
}

func TestAddQuestion_ThenVisible(t *testing.T) {
	st := memstore.New()
	r := newRouter(t, st, moderation.Noop{}, baseConfig())

	w := do(r, http.MethodPost, "/questions", `{"title":"hello","content":"world"}`, nil)
	if w.Code != http.StatusOK || w.Body.String() != "Question added" {
		t.Fatalf("POST /questions = %d %q", w.Code, w.Body.String())
	}
	w = do(r, http.MethodGet, "/questions/1", "", nil)
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), `"hello"`) {
		t.Fatalf("GET /questions/1 = %d %s", w.Code, w.Body.String())
	}
}

func TestAddQuestion_ModerationUnavailable_NoRecord(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte(`{"message":"down for maintenance"}`))
	}))
	defer upstream.Close()

	st := memstore.New()
	censor := moderation.New(moderation.Config{URL: upstream.URL, APIKey: "k", Timeout: time.Second})
	r := newRouter(t, st, censor, baseConfig())

	w := do(r, http.MethodPost, "/questions", `{"title":"hello","content":"world"}`, nil)
	if w.Code != http.StatusServiceUnavailable || !strings.Contains(w.Body.String(), `"moderation_server_error"`) {
		t.Fatalf("expected 503 moderation_server_error, got %d %s", w.Code, w.Body.String())
	}
	qs, _ := st.ListQuestions(context.Background(), domain.Pagination{})
	if len(qs) != 0 {
		t.Fatalf("no record may be stored on moderation failure, got %d", len(qs))
	}
}

func TestCORS_Allowlist(t *testing.T) {
	// httptest requests carry Host example.com, so the allowed origin must differ
	// from it or cors treats the request as same-origin and omits ACAO.
	cfg := baseConfig()
	cfg.CORS.AllowedOrigins = []string{"http://app.test"}
	r := newRouter(t, memstore.New(), moderation.Noop{}, cfg)

	w := do(r, http.MethodGet, "/questions", "", map[string]string{"Origin": "http://app.test"})
	if w.Code != http.StatusOK {
		t.Fatalf("allowed origin = %d", w.Code)
	}
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "http://app.test" {
		t.Fatalf("expected ACAO echo, got %q", got)
	}

	w = do(r, http.MethodGet, "/questions", "", map[string]string{"Origin": "http://evil.test"})
	if w.Code != http.StatusForbidden || !strings.Contains(w.Body.String(), `"forbidden"`) {
		t.Fatalf("disallowed origin = %d %s", w.Code, w.Body.String())
	}
}

func TestRegisterRoutes_BasePathAndSwagger(t *testing.T) {
	cfg := baseConfig()
	cfg.APIBasePath = "/api/v1"
	cfg.SwaggerEnabled = true
	r := newRouter(t, memstore.New(), moderation.Noop{}, cfg)

	if w := do(r, http.MethodGet, "/api/v1/questions", "", nil); w.Code != http.StatusOK {
		t.Fatalf("GET /api/v1/questions = %d", w.Code)
	}
	if w := do(r, http.MethodGet, "/questions", "", nil); w.Code != http.StatusNotFound {
		t.Fatalf("root mount should be absent, got %d", w.Code)
	}
	w := do(r, http.MethodGet, "/swagger/doc.json", "", nil)
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), "/questions/{id}/answers") {
		t.Fatalf("swagger doc = %d", w.Code)
	}
}

func TestRegisterRoutes_RelationalStore(t *testing.T) {
	db, err := repo.OpenSQLite(filepath.Join(t.TempDir(), "router.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := repo.AutoMigrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	r := newRouter(t, repo.NewStore(db, time.Second), moderation.Noop{}, baseConfig())

	if w := do(r, http.MethodGet, "/questions/7", "", nil); w.Code != http.StatusNotFound {
		t.Fatalf("missing question = %d %s", w.Code, w.Body.String())
	}
	if w := do(r, http.MethodPost, "/questions", `{"title":"a","content":"b"}`, nil); w.Code != http.StatusOK {
		t.Fatalf("create = %d %s", w.Code, w.Body.String())
	}
	if w := do(r, http.MethodPost, "/answers", `{"content":"yes","question_id":1}`, nil); w.Code != http.StatusOK {
		t.Fatalf("answer = %d %s", w.Code, w.Body.String())
	}
	w := do(r, http.MethodGet, "/questions/1/answers", "", nil)
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), `"yes"`) {
		t.Fatalf("answers = %d %s", w.Code, w.Body.String())
	}
}

func Test_limitBody_Middleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(limitBody(10))
	r.POST("/echo", func(c *gin.Context) {
		if _, err := io.ReadAll(c.Request.Body); err != nil {
			c.String(http.StatusRequestEntityTooLarge, "too big")
			return
		}
		c.String(http.StatusOK, "ok")
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/echo", bytes.NewBufferString("0123456789AB")))
	if w.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("expected 413 from limitBody, got %d", w.Code)
	}
}

func Test_groupWithPrefix(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	groupWithPrefix(r, "/").GET("/one", func(c *gin.Context) { c.String(http.StatusOK, "one") })
	groupWithPrefix(r, "").GET("/two", func(c *gin.Context) { c.String(http.StatusOK, "two") })
	groupWithPrefix(r, "/api").GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })

	for path, want := range map[string]string{"/one": "one", "/two": "two", "/api/ping": "pong"} {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		if rec.Code != http.StatusOK || rec.Body.String() != want {
			t.Fatalf("GET %s got %d %q", path, rec.Code, rec.Body.String())
		}
	}
}
