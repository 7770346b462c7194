package middleware

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/emicklei/go-restful/v3"
)

func newContainer(handler restful.RouteFunction) *restful.Container {
	container := restful.NewContainer()
	container.Filter(Logger)
	container.Filter(RecoverPanic)

	ws := new(restful.WebService)
	ws.Path("/test").Produces(restful.MIME_JSON)
	ws.Route(ws.GET("").To(handler))
	container.Add(ws)
	return container
}

func decode(t *testing.T, recorder *httptest.ResponseRecorder) ErrorResponse {
	t.Helper()
	var response ErrorResponse
	if err := json.Unmarshal(recorder.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to parse error response: %v (%s)", err, recorder.Body.String())
	}
	return response
}

func TestHandleError_ClientError(t *testing.T) {
	container := newContainer(func(req *restful.Request, resp *restful.Response) {
		HandleError(resp, fmt.Errorf("query request: %w", ErrEmptyMessage), http.StatusBadRequest)
	})

	recorder := httptest.NewRecorder()
	container.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/test", nil))

	if recorder.Code != http.StatusBadRequest {
		t.Errorf("Expected 400, got %d", recorder.Code)
	}
	response := decode(t, recorder)
	if response.Error != ErrEmptyMessage.Error() {
		t.Errorf("Error: %q", response.Error)
	}
	if response.Code != http.StatusBadRequest {
		t.Errorf("Code: %d", response.Code)
	}
	if response.Details != "query request: message is required" {
		t.Errorf("Details: %q", response.Details)
	}
}

func TestHandleError_ServerErrorHidesCause(t *testing.T) {
	container := newContainer(func(req *restful.Request, resp *restful.Response) {
		HandleError(resp, fmt.Errorf("dial tcp 10.0.0.1: secret host"), http.StatusInternalServerError)
	})

	recorder := httptest.NewRecorder()
	container.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/test", nil))

	response := decode(t, recorder)
	if response.Error != ErrInternal.Error() {
		t.Errorf("Expected generic error, got %q", response.Error)
	}
}

func TestRecoverPanic(t *testing.T) {
	container := newContainer(func(req *restful.Request, resp *restful.Response) {
		panic("boom")
	})

	recorder := httptest.NewRecorder()
	container.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/test", nil))

	if recorder.Code != http.StatusInternalServerError {
		t.Errorf("Expected 500, got %d", recorder.Code)
	}
	if decode(t, recorder).Code != http.StatusInternalServerError {
		t.Error("Expected error body with code 500")
	}
}

func TestLogger_RequestID(t *testing.T) {
	container := newContainer(func(req *restful.Request, resp *restful.Response) {
		resp.WriteHeaderAndEntity(http.StatusOK, map[string]string{"id": req.Attribute("request_id").(string)})
	})

	tests := []struct {
		name     string
		incoming string
	}{
		{name: "generated", incoming: ""},
		{name: "propagated", incoming: "abc-123"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/test", nil)
			if tt.incoming != "" {
				req.Header.Set(RequestIDHeader, tt.incoming)
			}

			recorder := httptest.NewRecorder()
			container.ServeHTTP(recorder, req)

			got := recorder.Header().Get(RequestIDHeader)
			if got == "" {
				t.Fatal("Expected request id header")
			}
			if tt.incoming != "" && got != tt.incoming {
				t.Errorf("Expected %q, got %q", tt.incoming, got)
			}
		})
	}
}
