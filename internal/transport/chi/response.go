package chi

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/kailas-cloud/restodex/internal/domain"
	"github.com/kailas-cloud/restodex/internal/domain/search/page"
	"github.com/kailas-cloud/restodex/internal/domain/search/result"
	"github.com/kailas-cloud/restodex/internal/logger"
)

// envelope is the uniform success body.
type envelope struct {
	Success        bool            `json:"success"`
	Message        string          `json:"message,omitempty"`
	Data           any             `json:"data"`
	Count          *int            `json:"count,omitempty"`
	Pagination     *page.Meta      `json:"pagination,omitempty"`
	FiltersApplied *map[string]any `json:"filters_applied,omitempty"`
	SearchMetadata any             `json:"search_metadata,omitempty"`
	SearchCriteria any             `json:"search_criteria,omitempty"`
	Criteria       any             `json:"criteria,omitempty"`
	Suggestions    any             `json:"suggestions,omitempty"`
}

// ErrorResponse is the uniform failure body.
type ErrorResponse struct {
	Success bool                `json:"success"`
	Error   string              `json:"error"`
	Message string              `json:"message,omitempty"`
	Details []domain.FieldError `json:"details,omitempty"`
}

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error) bool

func defaultErrorHandlers() []errorHandler {
	return []errorHandler{
		validationHandler,
		notFoundHandler,
		sentinelHandler(domain.ErrInvalidID, http.StatusBadRequest, "Invalid restaurant ID"),
	}
}

func validationHandler(w http.ResponseWriter, err error) bool {
	if !errors.Is(err, domain.ErrValidation) {
		return false
	}
	resp := ErrorResponse{Error: "Validation failed"}
	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		resp.Details = ve.Fields
	} else {
		resp.Message = err.Error()
	}
	writeJSON(w, http.StatusBadRequest, resp)
	return true
}

func notFoundHandler(w http.ResponseWriter, err error) bool {
	if !errors.Is(err, domain.ErrNotFound) {
		return false
	}
	msg := domain.ErrNotFound.Error()
	var nf *domain.NotFoundError
	if errors.As(err, &nf) {
		msg = nf.Error()
	}
	writeError(w, http.StatusNotFound, "Restaurant not found", msg)
	return true
}

func sentinelHandler(sentinel error, status int, title string) errorHandler {
	return func(w http.ResponseWriter, err error) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, title, sentinel.Error())
		return true
	}
}

// handleError writes the first matching handler's response, or a 500 titled
// with failure when nothing matched. Store internals never reach the client.
func (s *Server) handleError(w http.ResponseWriter, r *http.Request, err error, failure string) {
	for _, h := range s.errorHandlers {
		if h(w, err) {
			s.log(r).Debug("request rejected", zap.Error(err))
			return
		}
	}
	s.log(r).Error(failure, zap.Error(err))
	writeError(w, http.StatusInternalServerError, failure, "internal error")
}

func (s *Server) log(r *http.Request) *zap.Logger {
	return logger.FromContextOr(r.Context(), s.logger)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, title, message string) {
	writeJSON(w, status, ErrorResponse{Error: title, Message: message})
}

func writeData(w http.ResponseWriter, status int, env envelope) {
	env.Success = true
	writeJSON(w, status, env)
}

// hitsOrEmpty keeps "data" an array on the wire.
func hitsOrEmpty(hits []result.Hit) []result.Hit {
	if hits == nil {
		return []result.Hit{}
	}
	return hits
}
