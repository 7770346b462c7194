package api

import (
	restfulspec "github.com/emicklei/go-restful-openapi/v2"
	"github.com/emicklei/go-restful/v3"
	"github.com/go-openapi/spec"
	"github.com/povarna/generative-ai-agents/campus-agent/internal/middleware"
)

const OpenAPIPath = "/api/openapi.json"

func RegisterRoutes(container *restful.Container, handler *Handler) {
	ws := new(restful.WebService)

	ws.
		Path("/api").
		Consumes(restful.MIME_JSON).
		Produces(restful.MIME_JSON)

	// Health endpoint
	ws.
		Route(ws.GET("health").
			To(handler.Health).
			Doc("Health check").
			Metadata(restfulspec.KeyOpenAPITags, []string{"health"}).
			Writes(HealthResponse{}).
			Returns(200, "OK", HealthResponse{}))

	ws.
		Route(ws.POST("/query").
			To(handler.Query).
			Doc("Answer a campus question").
			Metadata(restfulspec.KeyOpenAPITags, []string{"query"}).
			Reads(QueryRequest{}).
			Writes(QueryResponse{}).
			Returns(200, "OK", QueryResponse{}).
			Returns(400, "Bad Request", middleware.ErrorResponse{}).
			Returns(500, "Internal Server Error", middleware.ErrorResponse{}))

	ws.
		Route(ws.GET("/search").
			To(handler.Search).
			Doc("Search every campus collection").
			Metadata(restfulspec.KeyOpenAPITags, []string{"query"}).
			Param(ws.QueryParameter("q", "Substring to match, empty matches everything").DataType("string").Required(false)).
			Writes(SearchResponse{}).
			Returns(200, "OK", SearchResponse{}).
			Returns(500, "Internal Server Error", middleware.ErrorResponse{}))

	ws.
		Route(ws.POST("/admin/facilities").
			To(handler.AddFacility).
			Doc("Add a facility").
			Metadata(restfulspec.KeyOpenAPITags, []string{"admin"}).
			Reads(FacilityRequest{}).
			Writes(FacilityResponse{}).
			Returns(200, "OK", FacilityResponse{}).
			Returns(400, "Bad Request", middleware.ErrorResponse{}).
			Returns(500, "Internal Server Error", middleware.ErrorResponse{}))

	container.Add(ws)
}

// RegisterOpenAPI serves the OpenAPI document for every web service registered so far.
func RegisterOpenAPI(container *restful.Container) {
	config := restfulspec.Config{
		WebServices:                   container.RegisteredWebServices(),
		APIPath:                       OpenAPIPath,
		PostBuildSwaggerObjectHandler: enrichSwaggerObject,
	}

	container.Add(restfulspec.NewOpenAPIService(config))
}

func enrichSwaggerObject(swo *spec.Swagger) {
	swo.Info = &spec.Info{
		InfoProps: spec.InfoProps{
			Title:       "Campus Agent API",
			Description: "Campus information assistant over schedules, facilities, dining, library and admin offices",
			Version:     Version,
		},
	}
	swo.Tags = []spec.Tag{
		{TagProps: spec.TagProps{Name: "health", Description: "Health checks"}},
		{TagProps: spec.TagProps{Name: "query", Description: "Search and question answering"}},
		{TagProps: spec.TagProps{Name: "admin", Description: "Record administration"}},
	}
}
