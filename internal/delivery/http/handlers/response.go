package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/LavaJover/shvark-payout-service/internal/domain"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

type errorBody struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

type errorResponse struct {
	Success bool      `json:"success"`
	Error   errorBody `json:"error"`
	// Withdraw is set when a transition committed but the e-mail failed.
	Withdraw any `json:"withdraw,omitempty"`
}

func statusFor(kind domain.ErrorKind) int {
	switch kind {
	case domain.KindValidation:
		return http.StatusBadRequest
	case domain.KindNotFound:
		return http.StatusNotFound
	case domain.KindAuthorization:
		return http.StatusForbidden
	case domain.KindInsufficientBalance:
		return http.StatusPaymentRequired
	case domain.KindNotification:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

type responder struct {
	logger *zap.Logger
}

func (rs responder) fail(w http.ResponseWriter, r *http.Request, err error, withdraw any) {
	kind := domain.KindOf(err)
	message := domain.MessageOf(err)
	if kind == domain.KindInternal {
		rs.logger.Error("request failed",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Error(err))
	} else if kind == domain.KindNotification {
		message = err.Error()
	}

	writeJSON(w, statusFor(kind), errorResponse{
		Error:    errorBody{Kind: string(kind), Message: message},
		Withdraw: withdraw,
	})
}

func (rs responder) unauthorized(w http.ResponseWriter, _ *http.Request, err error) {
	writeJSON(w, http.StatusUnauthorized, errorResponse{
		Error: errorBody{Kind: string(domain.KindAuthorization), Message: err.Error()},
	})
}

// decode reads a JSON body and runs the struct validation tags on it.
func decode(r *http.Request, v *validator.Validate, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return domain.NewValidationError("invalid request body: %v", err)
	}
	if err := v.Struct(dst); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return domain.NewValidationError("field %s failed on %s", fe.Field(), fe.Tag())
		}
		return domain.NewValidationError("invalid request: %v", err)
	}
	return nil
}
