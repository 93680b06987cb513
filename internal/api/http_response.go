package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi"
	logger "github.com/rs/zerolog"

	"github.com/babylonchain/staking-ledger-service/internal/api/handlers"
	"github.com/babylonchain/staking-ledger-service/internal/observability/metrics"
	"github.com/babylonchain/staking-ledger-service/internal/types"
)

const internalErrorMessage = "Internal service error"

type ErrorResponse struct {
	ErrorCode string `json:"errorCode"`
	Message   string `json:"message"`
}

func newErrorResponse(err *types.Error) *ErrorResponse {
	if err.StatusCode >= http.StatusInternalServerError {
		// Ledger internals stay in the logs.
		return &ErrorResponse{ErrorCode: types.InternalServiceError.String(), Message: internalErrorMessage}
	}
	return &ErrorResponse{ErrorCode: err.ErrorCode.String(), Message: err.Err.Error()}
}

// metricsEndpoint labels requests by route pattern so path parameters and
// unknown paths do not blow up the label space.
func metricsEndpoint(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		if pattern := rctx.RoutePattern(); pattern != "" {
			return pattern
		}
	}
	return r.URL.Path
}

func registerHandler(handlerFunc func(*http.Request) (*handlers.Result, *types.Error)) func(http.ResponseWriter, *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		timer := metrics.StartHttpRequestDurationTimer(metricsEndpoint(r))

		result, err := handlerFunc(r)

		if err != nil {
			if http.StatusText(err.StatusCode) == "" {
				logger.Ctx(r.Context()).Error().Err(err).Int("status_code", err.StatusCode).Msg("invalid status code")
				err.StatusCode = http.StatusInternalServerError
			}
			if err.StatusCode >= http.StatusInternalServerError {
				logger.Ctx(r.Context()).Error().Err(err).Str("errorCode", err.ErrorCode.String()).Msg("request failed with 5xx error")
			} else {
				logger.Ctx(r.Context()).Debug().Err(err).Str("errorCode", err.ErrorCode.String()).Msg("request rejected")
			}
			timer(err.StatusCode)
			writeResponse(w, r, err.StatusCode, newErrorResponse(err))
			return
		}

		if result == nil || http.StatusText(result.Status) == "" {
			logger.Ctx(r.Context()).Error().Msg("invalid success response, error returned")
			timer(http.StatusInternalServerError)
			writeResponse(w, r, http.StatusInternalServerError, &ErrorResponse{
				ErrorCode: types.InternalServiceError.String(),
				Message:   internalErrorMessage,
			})
			return
		}

		defer timer(result.Status)
		writeResponse(w, r, result.Status, result.Data)
	}
}

// Write and return response
func writeResponse(w http.ResponseWriter, r *http.Request, statusCode int, res interface{}) {
	respBytes, err := json.Marshal(res)

	if err != nil {
		logger.Ctx(r.Context()).Err(err).Msg("failed to marshal response")
		http.Error(w, "Failed to process the request. Please try again later.", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	w.Write(respBytes) // nolint:errcheck
}
