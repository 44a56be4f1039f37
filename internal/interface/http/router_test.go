package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"github.com/calvarezg/recipe-search/internal/domain/clicks"
	"github.com/calvarezg/recipe-search/internal/domain/ingest"
	"github.com/calvarezg/recipe-search/internal/domain/search"
	"github.com/calvarezg/recipe-search/internal/infra/config"
	apperrors "github.com/calvarezg/recipe-search/pkg/errors"
)

const testAdminSecret = "router-test-secret"

func TestRouter_Health(t *testing.T) {
	recorder := performGet(t, "/health", newRouterUnderTest(t, routerStubs{}))
	require.Equal(t, http.StatusOK, recorder.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	require.Equal(t, "healthy", body["status"])
}

func TestRouter_SearchSuccess(t *testing.T) {
	resp := search.Response{
		Query: "chicken soup",
		Page:  1,
		Results: []search.RecipeResult{
			{Title: "Chicken Soup", Link: "http://recipes.test/1"},
		},
		HasMore: false,
	}
	stub := &stubSearchService{
		searchFn: func(_ context.Context, req search.Request) (search.Response, error) {
			require.Equal(t, "chicken soup", req.Query)
			require.Equal(t, 2, req.Page)
			return resp, nil
		},
	}

	recorder := performGet(t, "/recipes?query=chicken+soup&page=2", newRouterUnderTest(t, routerStubs{search: stub}))
	require.Equal(t, http.StatusOK, recorder.Code)

	var got search.Response
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &got))
	require.Equal(t, resp, got)
}

func TestRouter_SearchDefaultsPage(t *testing.T) {
	stub := &stubSearchService{
		searchFn: func(_ context.Context, req search.Request) (search.Response, error) {
			require.Equal(t, 1, req.Page)
			return search.Response{Query: req.Query, Page: req.Page}, nil
		},
	}

	recorder := performGet(t, "/recipes?query=pie", newRouterUnderTest(t, routerStubs{search: stub}))
	require.Equal(t, http.StatusOK, recorder.Code)
}

func TestRouter_SearchInvalidPageParam(t *testing.T) {
	recorder := performGet(t, "/recipes?query=pie&page=abc", newRouterUnderTest(t, routerStubs{}))
	require.Equal(t, http.StatusBadRequest, recorder.Code)

	errBody := decodeErrorBody(t, recorder.Body.Bytes())
	require.Equal(t, "invalid_request", errBody["error"]["code"])
}

func TestRouter_SearchInvalidInput(t *testing.T) {
	stub := &stubSearchService{
		searchFn: func(context.Context, search.Request) (search.Response, error) {
			return search.Response{}, apperrors.Wrap("invalid_input", "page number must be greater than 0", nil)
		},
	}

	recorder := performGet(t, "/recipes?query=pie&page=0", newRouterUnderTest(t, routerStubs{search: stub}))
	require.Equal(t, http.StatusBadRequest, recorder.Code)

	errBody := decodeErrorBody(t, recorder.Body.Bytes())
	require.Equal(t, "invalid_request", errBody["error"]["code"])
	require.Contains(t, errBody["error"]["message"], "greater than 0")
}

func TestRouter_SearchEmbeddingFailure(t *testing.T) {
	stub := &stubSearchService{
		searchFn: func(context.Context, search.Request) (search.Response, error) {
			return search.Response{}, apperrors.Wrap("embedding_error", "query embedding failed", nil)
		},
	}

	recorder := performGet(t, "/recipes?query=pie&page=1", newRouterUnderTest(t, routerStubs{search: stub}))
	require.Equal(t, http.StatusBadGateway, recorder.Code)

	errBody := decodeErrorBody(t, recorder.Body.Bytes())
	require.Equal(t, "embedding_error", errBody["error"]["code"])
}

func TestRouter_ClickSuccess(t *testing.T) {
	var recorded clicks.Click
	stub := &stubClickService{
		recordFn: func(_ context.Context, click clicks.Click) error {
			recorded = click
			return nil
		},
	}

	recorder := performPost(t, "/click", `{"query":"chicken","link":"http://recipes.test/1"}`, newRouterUnderTest(t, routerStubs{clicks: stub}))
	require.Equal(t, http.StatusOK, recorder.Code)
	require.Equal(t, clicks.Click{Query: "chicken", Link: "http://recipes.test/1"}, recorded)

	var body map[string]string
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	require.Equal(t, "success", body["status"])
	require.Equal(t, "Click data recorded", body["message"])
}

func TestRouter_ClickInvalidJSON(t *testing.T) {
	recorder := performPost(t, "/click", `{"query":123}`, newRouterUnderTest(t, routerStubs{}))
	require.Equal(t, http.StatusBadRequest, recorder.Code)

	errBody := decodeErrorBody(t, recorder.Body.Bytes())
	require.Equal(t, "invalid_request", errBody["error"]["code"])
}

func TestRouter_ClickMissingField(t *testing.T) {
	stub := &stubClickService{
		recordFn: func(context.Context, clicks.Click) error {
			return apperrors.Wrap("invalid_input", "link cannot be empty", nil)
		},
	}

	recorder := performPost(t, "/click", `{"query":"chicken"}`, newRouterUnderTest(t, routerStubs{clicks: stub}))
	require.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestRouter_TopClicks(t *testing.T) {
	stub := &stubClickService{
		topFn: func(context.Context) ([]clicks.TopLink, error) {
			return []clicks.TopLink{{Link: "http://recipes.test/1", Count: 7}}, nil
		},
	}

	recorder := performGet(t, "/clicks/top", newRouterUnderTest(t, routerStubs{clicks: stub}))
	require.Equal(t, http.StatusOK, recorder.Code)

	var body map[string][]clicks.TopLink
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	require.Equal(t, int64(7), body["links"][0].Count)
}

func TestRouter_IngestRequiresAuth(t *testing.T) {
	recorder := performPost(t, "/admin/ingest", ``, newRouterUnderTest(t, routerStubs{}))
	require.Equal(t, http.StatusUnauthorized, recorder.Code)
}

func TestRouter_IngestWithToken(t *testing.T) {
	stub := &stubIngestService{
		runFn: func(context.Context) (ingest.Summary, error) {
			return ingest.Summary{Loaded: 12, Indexed: 12}, nil
		},
	}
	server := newRouterUnderTest(t, routerStubs{ingest: stub})

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "ops",
		"exp": time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte(testAdminSecret))
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/admin/ingest", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	recorder := httptest.NewRecorder()
	server.Handler.ServeHTTP(recorder, req)

	require.Equal(t, http.StatusOK, recorder.Code)

	var summary ingest.Summary
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &summary))
	require.Equal(t, 12, summary.Indexed)
}

func performGet(t *testing.T, path string, server *http.Server) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	server.Handler.ServeHTTP(rec, req)
	return rec
}

func performPost(t *testing.T, path, body string, server *http.Server) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	server.Handler.ServeHTTP(rec, req)
	return rec
}

type routerStubs struct {
	search search.Service
	clicks clicks.Service
	ingest ingest.Service
}

func newRouterUnderTest(t *testing.T, stubs routerStubs) *http.Server {
	t.Helper()
	if stubs.search == nil {
		stubs.search = &stubSearchService{}
	}
	if stubs.clicks == nil {
		stubs.clicks = &stubClickService{}
	}
	if stubs.ingest == nil {
		stubs.ingest = &stubIngestService{}
	}
	logger := newTestLogger()
	handler := NewHandler(stubs.search, stubs.clicks, stubs.ingest, logger)
	cfg := &config.Config{
		HTTP: config.HTTPConfig{
			Address:      ":0",
			ReadTimeout:  time.Second,
			WriteTimeout: time.Second,
		},
		Admin: config.AdminConfig{TokenSecret: testAdminSecret},
	}
	return NewRouter(cfg, handler, logger)
}

func decodeErrorBody(t *testing.T, raw []byte) map[string]map[string]string {
	t.Helper()
	var body map[string]map[string]string
	require.NoError(t, json.Unmarshal(raw, &body))
	return body
}

func newTestLogger() *slog.Logger {
	handler := slog.NewTextHandler(io.Discard, nil)
	return slog.New(handler)
}

type stubSearchService struct {
	searchFn func(ctx context.Context, req search.Request) (search.Response, error)
}

func (s *stubSearchService) Search(ctx context.Context, req search.Request) (search.Response, error) {
	if s.searchFn != nil {
		return s.searchFn(ctx, req)
	}
	return search.Response{}, nil
}

type stubClickService struct {
	recordFn func(ctx context.Context, click clicks.Click) error
	topFn    func(ctx context.Context) ([]clicks.TopLink, error)
}

func (s *stubClickService) Record(ctx context.Context, click clicks.Click) error {
	if s.recordFn != nil {
		return s.recordFn(ctx, click)
	}
	return nil
}

func (s *stubClickService) TopLinks(ctx context.Context) ([]clicks.TopLink, error) {
	if s.topFn != nil {
		return s.topFn(ctx)
	}
	return nil, nil
}

type stubIngestService struct {
	runFn func(ctx context.Context) (ingest.Summary, error)
}

func (s *stubIngestService) Run(ctx context.Context) (ingest.Summary, error) {
	if s.runFn != nil {
		return s.runFn(ctx)
	}
	return ingest.Summary{}, nil
}
