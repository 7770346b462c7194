package api

import (
	"fmt"
	"strings"

	"github.com/povarna/generative-ai-agents/campus-agent/internal/middleware"
	"github.com/povarna/generative-ai-agents/campus-agent/internal/records"
)

const Version = "1.0.0"

type QueryRequest struct {
	Message string `json:"message" description:"Free-text question about campus"`
	UseLLM  bool   `json:"useLLM,omitempty" description:"Polish the reply with the language model when configured"`
}

type QueryResponse struct {
	Reply string       `json:"reply" description:"Reply shown to the user"`
	Hits  records.Hits `json:"hits" description:"Matching records per collection"`
}

type SearchResponse struct {
	Hits records.Hits `json:"hits" description:"Matching records per collection"`
}

type FacilityRequest struct {
	Name     string `json:"name" description:"Facility name (required)"`
	Category string `json:"category,omitempty"`
	Location string `json:"location,omitempty"`
	Hours    string `json:"hours,omitempty"`
	Details  string `json:"details,omitempty"`
}

type FacilityResponse struct {
	ID int64 `json:"id" description:"Identity of the inserted facility"`
}

type HealthResponse struct {
	Status  string `json:"status" description:"Service status"`
	Version string `json:"version" description:"API version"`
}

func (q *QueryRequest) Validate() error {
	if strings.TrimSpace(q.Message) == "" {
		return fmt.Errorf("invalid query: %w", middleware.ErrEmptyMessage)
	}
	return nil
}

func (f FacilityRequest) Facility() records.Facility {
	return records.Facility{
		Name:     f.Name,
		Category: f.Category,
		Location: f.Location,
		Hours:    f.Hours,
		Details:  f.Details,
	}
}
