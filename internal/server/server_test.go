package server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vaporsyndicate/LinkedIn-Company-Post-Display/internal/command"
	mock_command "github.com/vaporsyndicate/LinkedIn-Company-Post-Display/internal/command/mocks"
	"github.com/vaporsyndicate/LinkedIn-Company-Post-Display/internal/domain"
	"github.com/vaporsyndicate/LinkedIn-Company-Post-Display/internal/metrics"
	"github.com/vaporsyndicate/LinkedIn-Company-Post-Display/internal/ratelimit"
	"github.com/vaporsyndicate/LinkedIn-Company-Post-Display/pkg/config"
	"github.com/vaporsyndicate/LinkedIn-Company-Post-Display/pkg/errors"
	"github.com/vaporsyndicate/LinkedIn-Company-Post-Display/pkg/logger"
	"go.uber.org/mock/gomock"
)

var testNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

type fixture struct {
	server  *Server
	command *mock_command.MockClient
}

func newFixture(t *testing.T, limiter ratelimit.Limiter) fixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{}
	cfg.App.Port = 0
	cfg.HTTP.AllowedOrigins = []string{"https://www.linkedin.com"}

	cmd := mock_command.NewMockClient(gomock.NewController(t))
	s := New(Opts{
		Command: cmd,
		Limiter: limiter,
		Metrics: metrics.New(),
		Logger:  logger.NewNop(),
		Config:  cfg,
		Clock:   clockwork.NewFakeClockAt(testNow),
	})
	return fixture{server: s, command: cmd}
}

func (f fixture) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	f.server.Handler().ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func sampleResult() domain.ExtractionResult {
	post := domain.NewPost("urn:li:activity:1", "Hello #world", "Acme Corp", testNow.Add(-2*time.Hour), domain.MediaBundle{})
	return domain.ExtractionResult{
		Posts:       []domain.Post{post},
		Source:      domain.SourceInfo{IsEligible: true, SourceID: "acme", DisplayName: "Acme Corp"},
		ExtractedAt: testNow,
		TotalFound:  1,
	}
}

func TestHealth(t *testing.T) {
	f := newFixture(t, nil)
	w := f.do(t, http.MethodGet, "/healthz", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", w.Body.String())
}

func TestExtract(t *testing.T) {
	t.Run("returns posts with relative time", func(t *testing.T) {
		f := newFixture(t, nil)
		f.command.EXPECT().
			ExtractPosts(gomock.Any(), command.ExtractRequest{URL: "https://www.linkedin.com/company/acme/posts", MaxPosts: 3}).
			Return(sampleResult(), nil)

		w := f.do(t, http.MethodPost, "/api/v1/extract", gin.H{"url": "https://www.linkedin.com/company/acme/posts", "maxPosts": 3})
		require.Equal(t, http.StatusOK, w.Code)

		body := decode(t, w)
		assert.Equal(t, true, body["success"])
		assert.Equal(t, float64(1), body["totalFound"])
		posts := body["posts"].([]any)
		require.Len(t, posts, 1)
		assert.Equal(t, "2h ago", posts[0].(map[string]any)["postedAgo"])
		assert.Equal(t, "acme", body["companyInfo"].(map[string]any)["sourceId"])
		assert.NotContains(t, body, "warning")
	})

	t.Run("text stays plain with an escaped html copy", func(t *testing.T) {
		f := newFixture(t, nil)
		res := sampleResult()
		res.Posts[0].Text = "Tom & Jerry's <3 launch"
		f.command.EXPECT().ExtractPosts(gomock.Any(), gomock.Any()).Return(res, nil)

		w := f.do(t, http.MethodPost, "/api/v1/extract", gin.H{"url": "https://www.linkedin.com/company/acme"})
		require.Equal(t, http.StatusOK, w.Code)
		post := decode(t, w)["posts"].([]any)[0].(map[string]any)
		assert.Equal(t, "Tom & Jerry's <3 launch", post["text"])
		assert.Equal(t, "Tom &amp; Jerry&#39;s &lt;3 launch", post["textHtml"])
	})

	t.Run("refresh bypasses the cache", func(t *testing.T) {
		f := newFixture(t, nil)
		f.command.EXPECT().RefreshPosts(gomock.Any(), gomock.Any()).Return(sampleResult(), nil)

		w := f.do(t, http.MethodPost, "/api/v1/extract", gin.H{"url": "https://www.linkedin.com/company/acme", "refresh": true})
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("missing url", func(t *testing.T) {
		f := newFixture(t, nil)
		w := f.do(t, http.MethodPost, "/api/v1/extract", gin.H{"html": "<html></html>"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, errors.CodeInvalidInput, decode(t, w)["code"])
	})

	t.Run("storage failure still returns posts", func(t *testing.T) {
		f := newFixture(t, nil)
		f.command.EXPECT().ExtractPosts(gomock.Any(), gomock.Any()).
			Return(sampleResult(), errors.Storage(fmt.Errorf("disk full"), "failed to cache posts"))

		w := f.do(t, http.MethodPost, "/api/v1/extract", gin.H{"url": "https://www.linkedin.com/company/acme"})
		require.Equal(t, http.StatusOK, w.Code)
		body := decode(t, w)
		assert.Contains(t, body["warning"], "disk full")
		assert.Len(t, body["posts"], 1)
	})

	t.Run("storage failure without posts", func(t *testing.T) {
		f := newFixture(t, nil)
		f.command.EXPECT().ExtractPosts(gomock.Any(), gomock.Any()).
			Return(domain.ExtractionResult{}, errors.Storage(fmt.Errorf("disk full"), "failed to read cache"))

		w := f.do(t, http.MethodPost, "/api/v1/extract", gin.H{"url": "https://www.linkedin.com/company/acme"})
		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Equal(t, errors.CodeStorageFailure, decode(t, w)["code"])
	})

	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"not eligible", errors.NotEligible("https://example.com"), http.StatusUnprocessableEntity},
		{"in progress", errors.InProgress("acme"), http.StatusConflict},
		{"no content", errors.NoContent("acme"), http.StatusNotFound},
		{"invalid", errors.InvalidInput("maxPosts must be between 1 and 20"), http.StatusBadRequest},
		{"unavailable", errors.Unavailable(fmt.Errorf("browser disabled"), "no renderer"), http.StatusServiceUnavailable},
		{"unexpected", fmt.Errorf("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, nil)
			f.command.EXPECT().ExtractPosts(gomock.Any(), gomock.Any()).Return(domain.ExtractionResult{}, tt.err)

			w := f.do(t, http.MethodPost, "/api/v1/extract", gin.H{"url": "https://www.linkedin.com/company/acme"})
			assert.Equal(t, tt.status, w.Code)
			body := decode(t, w)
			assert.Equal(t, false, body["success"])
			assert.Equal(t, tt.err.Error(), body["error"])
		})
	}
}

func TestExtractRateLimited(t *testing.T) {
	f := newFixture(t, ratelimit.NewInMemoryLimiter(1, time.Hour, 1))
	f.command.EXPECT().ExtractPosts(gomock.Any(), gomock.Any()).Return(sampleResult(), nil).Times(1)

	body := gin.H{"url": "https://www.linkedin.com/company/acme"}
	assert.Equal(t, http.StatusOK, f.do(t, http.MethodPost, "/api/v1/extract", body).Code)

	w := f.do(t, http.MethodPost, "/api/v1/extract", body)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, errors.CodeRateLimited, decode(t, w)["code"])
}

func TestPrefetch(t *testing.T) {
	f := newFixture(t, nil)
	urls := []string{"https://www.linkedin.com/company/acme", "https://www.linkedin.com/company/globex"}
	f.command.EXPECT().Prefetch(gomock.Any(), urls, 3).Return([]command.PrefetchResult{
		{URL: urls[0], Posts: 3},
		{URL: urls[1], Error: "extraction for \"globex\": no suitable posts found, try again", Code: errors.CodeNoContentFound},
	}, nil)

	w := f.do(t, http.MethodPost, "/api/v1/prefetch", gin.H{"urls": urls, "maxPosts": 3})
	require.Equal(t, http.StatusOK, w.Code)
	results := decode(t, w)["results"].([]any)
	require.Len(t, results, 2)
	assert.Equal(t, errors.CodeNoContentFound, results[1].(map[string]any)["code"])

	w = f.do(t, http.MethodPost, "/api/v1/prefetch", gin.H{"urls": []string{}})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCheckSource(t *testing.T) {
	f := newFixture(t, nil)
	f.command.EXPECT().
		CheckSource(gomock.Any(), command.SourceRequest{URL: "https://www.linkedin.com/company/acme", HTML: "<html></html>"}).
		Return(domain.SourceInfo{IsEligible: true, SourceID: "acme"}, nil)

	w := f.do(t, http.MethodPost, "/api/v1/sources/check", gin.H{"url": "https://www.linkedin.com/company/acme", "html": "<html></html>"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, decode(t, w)["source"].(map[string]any)["isEligible"])
}

func TestCachedPosts(t *testing.T) {
	t.Run("hit", func(t *testing.T) {
		f := newFixture(t, nil)
		f.command.EXPECT().GetCachedData(gomock.Any(), "acme").Return(sampleResult().Posts, true, nil)

		w := f.do(t, http.MethodGet, "/api/v1/sources/acme/posts", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Len(t, decode(t, w)["posts"], 1)
	})

	t.Run("miss", func(t *testing.T) {
		f := newFixture(t, nil)
		f.command.EXPECT().GetCachedData(gomock.Any(), "acme").Return(nil, false, nil)

		w := f.do(t, http.MethodGet, "/api/v1/sources/acme/posts", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, errors.CodeNotFound, decode(t, w)["code"])
	})
}

func TestContentChanged(t *testing.T) {
	f := newFixture(t, nil)
	f.command.EXPECT().NotifyContentChanged(gomock.Any(), "acme").Return(nil)

	w := f.do(t, http.MethodPost, "/api/v1/sources/acme/changed", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestStorage(t *testing.T) {
	f := newFixture(t, nil)
	f.command.EXPECT().ClearCache(gomock.Any()).Return(int64(4), nil)
	f.command.EXPECT().GetStorageUsage(gomock.Any()).
		Return(domain.StorageUsage{Used: 250, Total: 1000, Percentage: 25, UsedHuman: "250 B", TotalHuman: "1.0 kB"}, nil)

	w := f.do(t, http.MethodDelete, "/api/v1/cache", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(4), decode(t, w)["removed"])

	w = f.do(t, http.MethodGet, "/api/v1/storage", nil)
	require.Equal(t, http.StatusOK, w.Code)
	usage := decode(t, w)["usage"].(map[string]any)
	assert.Equal(t, float64(25), usage["percentage"])
	assert.Equal(t, "250 B", usage["usedHuman"])
}

func TestSessions(t *testing.T) {
	t.Run("open with default settings", func(t *testing.T) {
		f := newFixture(t, nil)
		f.command.EXPECT().OpenOverlay(gomock.Any(), gomock.Any(), domain.DefaultSettings()).
			Return("session_1748779200000", nil)

		w := f.do(t, http.MethodPost, "/api/v1/sessions", gin.H{"result": sampleResult()})
		require.Equal(t, http.StatusCreated, w.Code)
		assert.Equal(t, "session_1748779200000", decode(t, w)["sessionKey"])
	})

	t.Run("open with explicit settings", func(t *testing.T) {
		f := newFixture(t, nil)
		settings := domain.Settings{PostCount: 3, SlideDuration: 10, TextSize: 1.5}
		f.command.EXPECT().OpenOverlay(gomock.Any(), gomock.Any(), settings).
			Return("", errors.InvalidInput("postCount must be between 1 and 20"))

		w := f.do(t, http.MethodPost, "/api/v1/sessions", gin.H{"result": sampleResult(), "settings": settings})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("consume", func(t *testing.T) {
		f := newFixture(t, nil)
		res := sampleResult()
		f.command.EXPECT().ConsumeSession(gomock.Any(), "session_1748779200000").Return(domain.Handoff{
			Posts:    res.Posts,
			Metadata: domain.SessionMetadata{Source: res.Source, ExtractedAt: testNow, TotalFound: 1},
			Settings: domain.DefaultSettings(),
		}, nil)

		w := f.do(t, http.MethodPost, "/api/v1/sessions/session_1748779200000/consume", nil)
		require.Equal(t, http.StatusOK, w.Code)
		body := decode(t, w)
		assert.Len(t, body["posts"], 1)
		assert.Equal(t, float64(45), body["settings"].(map[string]any)["slideDuration"])
	})

	t.Run("consume twice", func(t *testing.T) {
		f := newFixture(t, nil)
		f.command.EXPECT().ConsumeSession(gomock.Any(), "session_1").
			Return(domain.Handoff{}, errors.WrapWithCode(errors.ErrNotFound, errors.CodeNotFound, "session_1"))

		w := f.do(t, http.MethodPost, "/api/v1/sessions/session_1/consume", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestCORS(t *testing.T) {
	f := newFixture(t, nil)
	req := httptest.NewRequest(http.MethodOptions, "/api/v1/extract", nil)
	req.Header.Set("Origin", "https://www.linkedin.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	w := httptest.NewRecorder()
	f.server.Handler().ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "https://www.linkedin.com", w.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodOptions, "/api/v1/extract", nil)
	req.Header.Set("Origin", "https://evil.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	w = httptest.NewRecorder()
	f.server.Handler().ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestMetricsEndpoint(t *testing.T) {
	f := newFixture(t, nil)
	f.do(t, http.MethodGet, "/healthz", nil)

	w := f.do(t, http.MethodGet, "/metrics", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, strings.Contains(w.Body.String(), `linkedin_carousel_http_requests_total{route="/healthz"`))
}

func TestStartStop(t *testing.T) {
	f := newFixture(t, nil)
	f.server.http.Addr = "127.0.0.1:0"

	ctx := context.Background()
	require.NoError(t, f.server.Start(ctx))
	require.NoError(t, f.server.Stop(ctx))
}
