package web_test

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-wishform/internal/apitest"
	"github.com/goliatone/go-wishform/internal/metrics"
	"github.com/goliatone/go-wishform/internal/web"
	"github.com/goliatone/go-wishform/pkg/client"
	"github.com/goliatone/go-wishform/pkg/form"
	"github.com/goliatone/go-wishform/pkg/orchestrator"
	"github.com/goliatone/go-wishform/pkg/render"
	"github.com/goliatone/go-wishform/pkg/renderers/html"
)

type fixture struct {
	api     *apitest.Server
	orch    *orchestrator.Orchestrator
	metrics *metrics.Metrics
	handler http.Handler
}

func newFixture(t *testing.T, opts ...web.Option) *fixture {
	t.Helper()
	api := apitest.New()
	t.Cleanup(api.Close)

	renderer, err := html.New(html.WithStylesheet("/assets/" + html.StylesheetName))
	require.NoError(t, err)
	registry := render.NewRegistry()
	registry.MustRegister(renderer)

	m := metrics.New(false)
	orch := orchestrator.New(
		client.New(client.WithBaseURL(api.URL), client.WithObserver(m)),
		orchestrator.WithRegistry(registry),
	)
	server := web.New(orch, append([]web.Option{web.WithMetrics(m)}, opts...)...)
	return &fixture{api: api, orch: orch, metrics: m, handler: server.Handler()}
}

func (f *fixture) do(t *testing.T, method, target string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	var body *strings.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	} else {
		body = strings.NewReader("")
	}
	req := httptest.NewRequest(method, target, body)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	rec := httptest.NewRecorder()
	f.handler.ServeHTTP(rec, req)
	return rec
}

func TestPageRendersConsole(t *testing.T) {
	f := newFixture(t)

	rec := f.do(t, http.MethodGet, "/", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))
	body := rec.Body.String()
	assert.Contains(t, body, `id="group-wishlist"`)
	assert.Contains(t, body, `id="group-product"`)
	assert.Contains(t, body, `formaction="/wishlist/create"`)
	assert.Contains(t, body, `href="/assets/wishform.css"`)

	_, err := uuid.Parse(rec.Header().Get(web.RequestIDHeader))
	assert.NoError(t, err)
}

func TestActionCreatesWishlist(t *testing.T) {
	f := newFixture(t)

	rec := f.do(t, http.MethodPost, "/wishlist/create", url.Values{
		form.WishlistName:  {"Birthday"},
		form.WishlistOwner: {"alice"},
		"action":           {"wishlist.create"},
	})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `>Success</p>`)
	assert.Contains(t, rec.Body.String(), `value="Birthday"`)
	assert.NotEmpty(t, f.orch.State().Value(form.WishlistID))
	assert.Equal(t, http.MethodPost, f.api.LastRequest().Method)

	scrape := f.do(t, http.MethodGet, "/metrics", nil)
	require.Equal(t, http.StatusOK, scrape.Code)
	assert.Contains(t, scrape.Body.String(), `wishform_console_actions_total{action="create",resource="wishlist",result="ok"} 1`)
	assert.Contains(t, scrape.Body.String(), `wishform_api_requests_total{operation="createWishlist",status="201"} 1`)
}

func TestActionFailureStillRendersPage(t *testing.T) {
	f := newFixture(t)

	rec := f.do(t, http.MethodPost, "/wishlist/retrieve", url.Values{form.WishlistID: {"404"}})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "was not found.")

	scrape := f.do(t, http.MethodGet, "/metrics", nil)
	assert.Contains(t, scrape.Body.String(), `wishform_console_actions_total{action="retrieve",resource="wishlist",result="failed"} 1`)
}

func TestUnknownTargetsAreNotFound(t *testing.T) {
	f := newFixture(t)

	assert.Equal(t, http.StatusNotFound, f.do(t, http.MethodPost, "/basket/create", url.Values{}).Code)
	assert.Equal(t, http.StatusNotFound, f.do(t, http.MethodPost, "/product/copy", url.Values{}).Code)
}

func TestHealthAndAssets(t *testing.T) {
	f := newFixture(t)

	health := f.do(t, http.MethodGet, "/healthz", nil)
	require.Equal(t, http.StatusOK, health.Code)
	assert.Equal(t, "ok", health.Body.String())

	css := f.do(t, http.MethodGet, "/assets/"+html.StylesheetName, nil)
	require.Equal(t, http.StatusOK, css.Code)
	assert.Contains(t, css.Body.String(), "--wf-")
}

func TestRequestIDIsPropagated(t *testing.T) {
	f := newFixture(t)
	id := uuid.NewString()

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set(web.RequestIDHeader, id)
	rec := httptest.NewRecorder()
	f.handler.ServeHTTP(rec, req)
	assert.Equal(t, id, rec.Header().Get(web.RequestIDHeader))

	req = httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set(web.RequestIDHeader, "not-a-uuid")
	rec = httptest.NewRecorder()
	f.handler.ServeHTTP(rec, req)
	assert.NotEqual(t, "not-a-uuid", rec.Header().Get(web.RequestIDHeader))
}

func TestCORSPreflight(t *testing.T) {
	f := newFixture(t, web.WithAllowedOrigins("http://console.example"))

	req := httptest.NewRequest(http.MethodOptions, "/wishlist/list", nil)
	req.Header.Set("Origin", "http://console.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	f.handler.ServeHTTP(rec, req)

	assert.Equal(t, "http://console.example", rec.Header().Get("Access-Control-Allow-Origin"))
}
