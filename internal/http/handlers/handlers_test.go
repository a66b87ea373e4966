package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/phambaophuc/studio-site/internal/content"
	"github.com/phambaophuc/studio-site/internal/http/middleware"
	"github.com/phambaophuc/studio-site/internal/models"
	"github.com/phambaophuc/studio-site/internal/services/storage"
	"github.com/phambaophuc/studio-site/pkg/cloudinary"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const heroSrc = "https://res.cloudinary.com/dxqzby6fc/image/upload/v1760463003/About_Us_tgzrww.jpg"

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeRenderer struct {
	renders int
	err     error
}

func (f *fakeRenderer) RenderPage(slug string) ([]byte, error) {
	if f.err != nil {
		return nil, f.err
	}
	if slug == "missing" {
		return nil, content.ErrPageNotFound
	}
	f.renders++
	return []byte("<html>" + slug + "</html>"), nil
}

func (f *fakeRenderer) RenderNotFound() ([]byte, error) {
	return []byte("<html>not found</html>"), nil
}

type fakeQueue struct {
	submitted []models.DerivativeRequest
	err       error
	health    string
}

func (f *fakeQueue) Submit(_ context.Context, req models.DerivativeRequest) (*models.DerivativeJob, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.submitted = append(f.submitted, req)
	return &models.DerivativeJob{ID: "job-1", Request: req, Status: models.StatusPending}, nil
}

func (f *fakeQueue) HealthCheck() string { return f.health }

func (f *fakeQueue) GetQueueStats() (map[string]interface{}, error) {
	return map[string]interface{}{"messages": 0}, nil
}

func newTestStorage(t *testing.T) (*storage.StorageService, *miniredis.Miniredis) {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return storage.NewWithClients(nil, client, "site-media", time.Hour), mr
}

func decode(t *testing.T, w *httptest.ResponseRecorder, data interface{}) models.APIResponse {
	t.Helper()

	resp := models.APIResponse{Data: data}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func get(router http.Handler, target string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, target, nil))
	return w
}

func TestPageHandlerCachesRenderedPages(t *testing.T) {
	store, _ := newTestStorage(t)
	renderer := &fakeRenderer{}
	h := NewPageHandler(renderer, store, time.Minute, "dxqzby6fc", zap.NewNop())

	router := gin.New()
	router.GET("/about", h.Page("about"))

	w := get(router, "/about")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "MISS", w.Header().Get("X-Cache"))
	assert.Equal(t, "<html>about</html>", w.Body.String())
	assert.Contains(t, w.Header().Get("Content-Type"), "text/html")

	w = get(router, "/about")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "HIT", w.Header().Get("X-Cache"))
	assert.Equal(t, "<html>about</html>", w.Body.String())
	assert.Equal(t, 1, renderer.renders)
}

func TestPageHandlerWithoutCache(t *testing.T) {
	renderer := &fakeRenderer{}
	h := NewPageHandler(renderer, nil, time.Minute, "", zap.NewNop())

	router := gin.New()
	router.GET("/", h.Page("home"))

	for i := 0; i < 2; i++ {
		w := get(router, "/")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "MISS", w.Header().Get("X-Cache"))
	}
	assert.Equal(t, 2, renderer.renders)
}

func TestPageHandlerSurvivesCacheOutage(t *testing.T) {
	store, mr := newTestStorage(t)
	mr.Close()

	h := NewPageHandler(&fakeRenderer{}, store, time.Minute, "", zap.NewNop())
	router := gin.New()
	router.GET("/schedule", h.Page("schedule"))

	w := get(router, "/schedule")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "<html>schedule</html>", w.Body.String())
}

func TestPageHandlerErrors(t *testing.T) {
	router := gin.New()
	router.Use(middleware.CacheControl("public, max-age=300"))
	missing := NewPageHandler(&fakeRenderer{}, nil, 0, "", zap.NewNop())
	broken := NewPageHandler(&fakeRenderer{err: errors.New("template exploded")}, nil, 0, "", zap.NewNop())
	router.GET("/missing", missing.Page("missing"))
	router.GET("/broken", broken.Page("broken"))
	router.NoRoute(missing.NotFound)

	w := get(router, "/missing")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "<html>not found</html>", w.Body.String())

	assert.Equal(t, "no-store", w.Header().Get("Cache-Control"))

	w = get(router, "/broken")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "no-store", w.Header().Get("Cache-Control"))

	w = get(router, "/nowhere")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/html")

	w = get(router, "/api/v1/nowhere")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"success":false,"error":"Resource not found"}`, w.Body.String())
}

func imageRouter() *gin.Engine {
	h := NewImageHandler(cloudinary.New(""), zap.NewNop())

	router := gin.New()
	images := router.Group("/api/v1/images")
	images.GET("/url", h.URL)
	images.GET("/responsive", h.Responsive)
	images.GET("/srcset", h.SrcSet)
	images.GET("/sizes", h.Sizes)
	images.GET("/props", h.Props)
	images.GET("/background", h.Background)
	return router
}

func TestImageURL(t *testing.T) {
	router := imageRouter()

	q := url.Values{}
	q.Set("src", heroSrc)
	q.Set("width", "800")
	q.Set("crop", "fill")
	q.Add("t", "e_sharpen")

	w := get(router, "/api/v1/images/url?"+q.Encode())
	require.Equal(t, http.StatusOK, w.Code)

	var data models.ImageURLResponse
	resp := decode(t, w, &data)
	assert.True(t, resp.Success)
	assert.Equal(t, "About_Us_tgzrww", data.PublicID)
	assert.Equal(t,
		"https://res.cloudinary.com/dxqzby6fc/image/upload/w_800,c_fill,q_auto,f_auto,e_sharpen/About_Us_tgzrww",
		data.URL)
}

func TestImageURLRequiresSrc(t *testing.T) {
	w := get(imageRouter(), "/api/v1/images/url?width=800")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	resp := decode(t, w, nil)
	assert.False(t, resp.Success)
	assert.NotEmpty(t, resp.Error)
}

func TestImageURLPassesThroughForeignSources(t *testing.T) {
	src := "https://images.unsplash.com/photo-1520523839897-bd0b52f945a0"
	w := get(imageRouter(), "/api/v1/images/url?src="+url.QueryEscape(src)+"&width=400")
	require.Equal(t, http.StatusOK, w.Code)

	var data models.ImageURLResponse
	decode(t, w, &data)
	assert.Equal(t, src, data.URL)
}

func TestImageResponsiveAndBackground(t *testing.T) {
	router := imageRouter()
	query := "?src=" + url.QueryEscape(heroSrc) + "&mobile=640"

	w := get(router, "/api/v1/images/responsive"+query)
	require.Equal(t, http.StatusOK, w.Code)

	var urls cloudinary.ResponsiveURLs
	decode(t, w, &urls)
	assert.Contains(t, urls.Mobile, "w_640,")
	assert.Contains(t, urls.Tablet, "w_1536,")
	assert.Contains(t, urls.Desktop, "w_2048,")
	assert.Contains(t, urls.Desktop, "dpr_auto")

	w = get(router, "/api/v1/images/background"+query)
	require.Equal(t, http.StatusOK, w.Code)

	var bg cloudinary.ResponsiveURLs
	decode(t, w, &bg)
	assert.Equal(t, "url("+urls.Mobile+")", bg.Mobile)
	assert.Equal(t, "url("+urls.Desktop+")", bg.Desktop)
}

func TestImageResponsiveRejectsInvalidWidths(t *testing.T) {
	w := get(imageRouter(), "/api/v1/images/responsive?src="+url.QueryEscape(heroSrc)+"&tablet=-5")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestImageSrcSet(t *testing.T) {
	router := imageRouter()
	query := "?src=" + url.QueryEscape(heroSrc)

	w := get(router, "/api/v1/images/srcset"+query)
	require.Equal(t, http.StatusOK, w.Code)

	var data models.SrcSetResponse
	decode(t, w, &data)
	assert.Len(t, strings.Split(data.SrcSet, ", "), 6)
	assert.Contains(t, data.SrcSet, " 4096w")

	w = get(router, "/api/v1/images/srcset"+query+"&disable_dpr=true")
	require.Equal(t, http.StatusOK, w.Code)

	decode(t, w, &data)
	assert.Len(t, strings.Split(data.SrcSet, ", "), 3)
	assert.NotContains(t, data.SrcSet, "dpr_2.0")
}

func TestImageSizes(t *testing.T) {
	w := get(imageRouter(), "/api/v1/images/sizes?tablet_size=50vw&desktop_size=33vw")
	require.Equal(t, http.StatusOK, w.Code)

	var data models.SizesResponse
	decode(t, w, &data)
	assert.Equal(t, "(max-width: 767px) 100vw, (max-width: 1023px) 50vw, 33vw", data.Sizes)
}

func TestImageProps(t *testing.T) {
	w := get(imageRouter(), "/api/v1/images/props?src="+url.QueryEscape(heroSrc)+"&desktop_size=50vw")
	require.Equal(t, http.StatusOK, w.Code)

	var props cloudinary.ImageProps
	decode(t, w, &props)
	assert.Contains(t, props.Src, "w_2048,")
	assert.Equal(t, "lazy", props.Loading)
	assert.Equal(t, "async", props.Decoding)
	assert.Equal(t, "(max-width: 767px) 100vw, (max-width: 1023px) 100vw, 50vw", props.Sizes)
	assert.NotEmpty(t, props.SrcSet)
}

func derivativeRouter(queue DerivativeQueue, jobs JobStore) *gin.Engine {
	h := NewDerivativeHandler(queue, jobs, zap.NewNop())

	router := gin.New()
	router.POST("/api/v1/derivatives", h.Create)
	router.GET("/api/v1/derivatives/:id", h.Get)
	return router
}

func post(router http.Handler, target, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	return w
}

func TestDerivativeCreate(t *testing.T) {
	store, _ := newTestStorage(t)
	queue := &fakeQueue{}
	router := derivativeRouter(queue, store)

	w := post(router, "/api/v1/derivatives", `{"image_url":"https://example.com/studio.jpg","widths":[400,800]}`)
	require.Equal(t, http.StatusAccepted, w.Code)
	assert.Equal(t, "/api/v1/derivatives/job-1", w.Header().Get("Location"))

	var job models.DerivativeJob
	resp := decode(t, w, &job)
	assert.True(t, resp.Success)
	assert.Equal(t, "job-1", job.ID)
	assert.Equal(t, models.StatusPending, job.Status)

	require.Len(t, queue.submitted, 1)
	assert.Equal(t, []int{400, 800}, queue.submitted[0].Widths)
}

func TestDerivativeCreateFailures(t *testing.T) {
	store, _ := newTestStorage(t)

	tests := []struct {
		name   string
		queue  DerivativeQueue
		body   string
		status int
	}{
		{"missing url", &fakeQueue{}, `{}`, http.StatusBadRequest},
		{"bad format", &fakeQueue{}, `{"image_url":"https://example.com/a.jpg","format":"gif"}`, http.StatusBadRequest},
		{"too wide", &fakeQueue{}, `{"image_url":"https://example.com/a.jpg","widths":[9000]}`, http.StatusBadRequest},
		{"publish error", &fakeQueue{err: errors.New("channel closed")}, `{"image_url":"https://example.com/a.jpg"}`, http.StatusInternalServerError},
		{"no queue", nil, `{"image_url":"https://example.com/a.jpg"}`, http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := post(derivativeRouter(tt.queue, store), "/api/v1/derivatives", tt.body)
			assert.Equal(t, tt.status, w.Code)

			resp := decode(t, w, nil)
			assert.False(t, resp.Success)
		})
	}
}

func TestDerivativeGet(t *testing.T) {
	store, _ := newTestStorage(t)
	router := derivativeRouter(&fakeQueue{}, store)

	w := get(router, "/api/v1/derivatives/unknown")
	assert.Equal(t, http.StatusNotFound, w.Code)

	require.NoError(t, store.SaveJob(context.Background(), &models.DerivativeJob{
		ID:     "job-42",
		Status: models.StatusCompleted,
		Results: []models.Derivative{
			{Width: 800, Height: 533, Format: models.FormatJPEG, URL: "https://cdn.example.com/derivatives/job-42_800w.jpeg"},
		},
	}))

	w = get(router, "/api/v1/derivatives/job-42")
	require.Equal(t, http.StatusOK, w.Code)

	var job models.DerivativeJob
	decode(t, w, &job)
	assert.Equal(t, models.StatusCompleted, job.Status)
	require.Len(t, job.Results, 1)
	assert.Equal(t, 800, job.Results[0].Width)
}

func TestHealthCheck(t *testing.T) {
	store, mr := newTestStorage(t)

	router := gin.New()
	router.GET("/ok", NewSystemHandler(store, nil, zap.NewNop()).HealthCheck)
	router.GET("/queue-down", NewSystemHandler(store, &fakeQueue{health: "unhealthy: connection closed"}, zap.NewNop()).HealthCheck)

	w := get(router, "/ok")
	require.Equal(t, http.StatusOK, w.Code)

	var health models.HealthCheck
	resp := decode(t, w, &health)
	assert.True(t, resp.Success)
	assert.Equal(t, "healthy", health.Status)
	assert.Equal(t, "healthy", health.Services["redis"])
	assert.Equal(t, "not configured", health.Services["supabase"])
	assert.Equal(t, "not configured", health.Services["rabbitmq"])

	w = get(router, "/queue-down")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	mr.Close()
	w = get(router, "/ok")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestGetStats(t *testing.T) {
	store, _ := newTestStorage(t)

	router := gin.New()
	router.GET("/stats", NewSystemHandler(store, &fakeQueue{health: "healthy"}, zap.NewNop()).GetStats)

	w := get(router, "/stats")
	require.Equal(t, http.StatusOK, w.Code)

	var stats map[string]interface{}
	decode(t, w, &stats)
	assert.Contains(t, stats, "cache")
	assert.Contains(t, stats, "queue")
}

func TestCalculateOverallHealth(t *testing.T) {
	assert.Equal(t, "healthy", calculateOverallHealth(map[string]string{"redis": "healthy", "supabase": "not configured"}))
	assert.Equal(t, "unhealthy", calculateOverallHealth(map[string]string{"redis": "unhealthy: dial tcp", "supabase": "healthy"}))
}
