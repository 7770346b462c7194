package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/emicklei/go-restful/v3"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestFilter_CountsByRouteTemplate(t *testing.T) {
	ws := new(restful.WebService)
	ws.Path("/api")
	ws.Route(ws.GET("/things/{id}").To(func(req *restful.Request, resp *restful.Response) {
		resp.WriteHeader(http.StatusNoContent)
	}))

	container := restful.NewContainer()
	container.Filter(Filter)
	container.Add(ws)

	counter := httpRequestsTotal.WithLabelValues(http.MethodGet, "/api/things/{id}", "204")
	before := testutil.ToFloat64(counter)

	for _, id := range []string{"1", "2"} {
		rec := httptest.NewRecorder()
		container.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/things/"+id, nil))
		if rec.Code != http.StatusNoContent {
			t.Fatalf("Expected 204, got %d", rec.Code)
		}
	}

	if got := testutil.ToFloat64(counter) - before; got != 2 {
		t.Errorf("Expected 2 requests recorded under the template path, got %v", got)
	}
}

func TestNormalizePath(t *testing.T) {
	if normalizePath("") != "unknown" {
		t.Error("Expected empty path to normalize to unknown")
	}
	if normalizePath("/api/query") != "/api/query" {
		t.Error("Expected route path to pass through")
	}
}

func TestHandler_ExposesCampusMetrics(t *testing.T) {
	RepliesTotal.WithLabelValues("templated").Inc()

	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if !strings.Contains(rec.Body.String(), "campus_replies_total") {
		t.Error("Expected campus_replies_total in exposition")
	}
}
