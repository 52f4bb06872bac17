package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"tnved-api/internal/auditlog"
	"tnved-api/internal/domain"
	"tnved-api/internal/llm"
	"tnved-api/internal/service"
)

func newTestRouter(mock *llm.MockClient) *gin.Engine {
	gin.SetMode(gin.TestMode)
	logger := zap.NewNop()
	detector := service.NewDetectService(mock, nil, logger)
	audit := auditlog.NewAppender(nil, logger)
	return NewRouter(logger, NewDetectHandler(logger, detector, audit))
}

func postDetect(t *testing.T, router *gin.Engine, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/tnved/detect", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestDetect_EndToEndSingleLineReply(t *testing.T) {
	mock := &llm.MockClient{Response: "Widget ; 8471300000; 5%; 20%"}
	router := newTestRouter(mock)

	w := postDetect(t, router, `{"manufacturer":"Acme","product":"Widget","extra":null}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var res domain.ClassificationResult
	if err := json.Unmarshal(w.Body.Bytes(), &res); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if res.Code != "8471300000" || res.Duty != "5%" || res.Vat != "20%" {
		t.Fatalf("unexpected result: %+v", res)
	}
	if res.Alternatives == nil || res.Requirements == nil {
		t.Fatal("list fields must be present even when empty")
	}
}

func TestDetect_EmptyCompositionRejected(t *testing.T) {
	router := newTestRouter(&llm.MockClient{Response: "unused"})

	w := postDetect(t, router, `{"manufacturer":"null","product":"   ","extra":"null"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "fields empty") {
		t.Fatalf("expected fields-empty diagnostic, got %s", w.Body.String())
	}
}

func TestDetect_ProviderFailureIsBadGateway(t *testing.T) {
	router := newTestRouter(&llm.MockClient{Err: errors.New("upstream unreachable")})

	w := postDetect(t, router, `{"manufacturer":"Acme","product":"Widget"}`)
	if w.Code != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d", w.Code)
	}
}

func TestDetect_MalformedBodyRejected(t *testing.T) {
	router := newTestRouter(&llm.MockClient{Response: "unused"})

	w := postDetect(t, router, `{not json`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestHealth_ReportsService(t *testing.T) {
	router := newTestRouter(&llm.MockClient{})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if body["status"] != "ok" || body["service"] != "tnved-api" || body["time"] == "" {
		t.Fatalf("unexpected health body: %v", body)
	}
}

func TestRouter_SetsRequestIDAndCORS(t *testing.T) {
	router := newTestRouter(&llm.MockClient{})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "https://example.org")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Header().Get("X-Request-ID") == "" {
		t.Fatal("expected X-Request-ID header")
	}
	if w.Header().Get("Access-Control-Allow-Origin") != "*" {
		t.Fatalf("expected wide-open CORS, got %q", w.Header().Get("Access-Control-Allow-Origin"))
	}
}
