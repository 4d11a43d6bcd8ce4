package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestRedactingLogger_MasksCredentialsAndEmails(t *testing.T) {
	gin.SetMode(gin.TestMode)
	buf := captureLogger(t)

	r := gin.New()
	r.Use(RequestID())
	r.Use(RedactingLogger(RedactOptions{MaskHeaders: []string{"X-Session"}}))
	r.GET("/questions", func(c *gin.Context) {
		LoggerFrom(c).Info().Msg("inside")
		c.String(http.StatusOK, "ok")
	})

	req := httptest.NewRequest(http.MethodGet, "/questions?limit=2&apikey=sekret&contact=a.b@example.com", nil)
	req.Header.Set("Apikey", "topsecret")
	req.Header.Set("Authorization", "Bearer abc")
	req.Header.Set("X-Session", "s1")
	req.Header.Set("X-Note", "mail me at x@y.org")
	req.Header.Set(requestIDHeader, "rid-1")
	r.ServeHTTP(httptest.NewRecorder(), req)

	out := buf.String()
	for _, leak := range []string{"sekret", "topsecret", "Bearer abc", "s1\"", "a.b@example.com", "x@y.org"} {
		if strings.Contains(out, leak) {
			t.Fatalf("log leaked %q:\n%s", leak, out)
		}
	}

	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected scoped line + access line, got:\n%s", out)
	}
	if !strings.Contains(lines[0], `"request_id":"rid-1"`) {
		t.Fatalf("scoped logger missing request id: %s", lines[0])
	}

	var access map[string]any
	if err := json.Unmarshal([]byte(lines[1]), &access); err != nil {
		t.Fatal(err)
	}
	if access["message"] != "http_request" || access["level"] != "info" || access["path"] != "/questions" {
		t.Fatalf("unexpected access line: %v", access)
	}
	if q := access["query"]; q != "apikey=[REDACTED]&contact=[REDACTED:email]&limit=2" {
		t.Fatalf("unexpected redacted query: %v", q)
	}
	hdrs, _ := access["headers"].(map[string]any)
	if hdrs["Apikey"] != redacted || hdrs["X-Session"] != redacted {
		t.Fatalf("headers not masked: %v", hdrs)
	}
}

func TestRedactingLogger_LevelByStatus(t *testing.T) {
	gin.SetMode(gin.TestMode)
	buf := captureLogger(t)

	r := gin.New()
	r.Use(RedactingLogger(RedactOptions{}))
	r.GET("/bad", func(c *gin.Context) { c.Status(http.StatusBadRequest) })
	r.GET("/boom", func(c *gin.Context) { c.Status(http.StatusBadGateway) })

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/bad", nil))
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/boom", nil))

	out := buf.String()
	if !strings.Contains(out, `"level":"warn"`) || !strings.Contains(out, `"level":"error"`) {
		t.Fatalf("expected warn and error lines:\n%s", out)
	}
}

func TestRedactQuery(t *testing.T) {
	mask := toSet([]string{"token"}, nil)
	cases := map[string]string{
		"":                   "",
		"token=abc&b=1":      "b=1&token=[REDACTED]",
		"TOKEN=abc":          "TOKEN=[REDACTED]",
		"q=me@x.io":          "q=[REDACTED:email]",
		"%zz=me%40x.io":      "%zz=[REDACTED:email]",
		"start=1&end=3":      "end=3&start=1",
	}
	for in, want := range cases {
		if got := redactQuery(in, mask); got != want {
			t.Errorf("redactQuery(%q) = %q, want %q", in, got, want)
		}
	}
}
