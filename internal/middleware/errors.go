package middleware

import (
	"errors"
	"net/http"

	"github.com/emicklei/go-restful/v3"
	"github.com/rs/zerolog/log"
)

var (
	ErrEmptyMessage = errors.New("message is required")
	ErrMissingName  = errors.New("name is required")
	ErrInvalidBody  = errors.New("request body is not valid JSON")
	ErrInternal     = errors.New("internal server error")
	ErrStoreFailure = errors.New("record store failure")
)

type ErrorResponse struct {
	Error   string `json:"error" description:"Error message"`
	Code    int    `json:"code" description:"HTTP status code"`
	Details string `json:"details,omitempty" description:"Additional error details"`
}

// HandleError writes err as an ErrorResponse. Server errors hide the cause behind a generic message.
func HandleError(resp *restful.Response, err error, status int) {
	response := ErrorResponse{
		Error: err.Error(),
		Code:  status,
	}

	if status >= http.StatusInternalServerError {
		response.Error = ErrInternal.Error()
		if errors.Is(err, ErrStoreFailure) {
			response.Error = ErrStoreFailure.Error()
		}
		log.Error().Err(err).Int("status", status).Msg("Request failed")
	} else if unwrapped := errors.Unwrap(err); unwrapped != nil {
		response.Error = unwrapped.Error()
		response.Details = err.Error()
	}

	if writeErr := resp.WriteHeaderAndEntity(status, response); writeErr != nil {
		log.Error().Err(writeErr).Msg("Failed to write error response")
	}
}
