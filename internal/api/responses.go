package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/nikolayk812/pdv-demo/internal/domain"
	"github.com/nikolayk812/pdv-demo/internal/logger"
)

type envelope struct {
	Data         any              `json:"data,omitempty"`
	Notification *notificationDTO `json:"notification,omitempty"`
	Error        *errorDTO        `json:"error,omitempty"`
}

type errorDTO struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Details map[string]string `json:"details,omitempty"`
}

type notificationDTO struct {
	Level       string `json:"level"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
}

func newNotificationDTO(n domain.Notification) *notificationDTO {
	return &notificationDTO{
		Level:       string(n.Level),
		Title:       n.Title,
		Description: n.Description,
	}
}

func writeSuccess(w http.ResponseWriter, status int, data any, n *domain.Notification) {
	payload := envelope{Data: data}
	if n != nil {
		payload.Notification = newNotificationDTO(*n)
	}
	writeJSON(w, status, payload)
}

func writeError(ctx context.Context, logg *logger.Logger, w http.ResponseWriter, err error, n *domain.Notification) {
	if err == nil {
		err = errors.New("unknown error")
	}

	status, code := classify(err)

	payload := envelope{Error: &errorDTO{Code: code, Message: err.Error()}}
	if status >= http.StatusInternalServerError {
		payload.Error.Message = "internal error"
	}

	var reqErr *requestError
	if errors.As(err, &reqErr) {
		payload.Error.Details = reqErr.details
	}

	if n != nil {
		payload.Notification = newNotificationDTO(*n)
	}

	if logg != nil {
		ctx = logg.WithFields(ctx, map[string]any{
			"status":     status,
			"error_code": code,
		})
		if status >= http.StatusInternalServerError {
			logg.Error(ctx, "request.error", err)
		} else {
			logg.Info(ctx, "request.rejected: "+err.Error())
		}
	}

	writeJSON(w, status, payload)
}

// classify maps an error to its HTTP status and public code.
func classify(err error) (int, string) {
	var reqErr *requestError

	switch {
	case errors.As(err, &reqErr):
		return http.StatusBadRequest, "bad_request"
	case errors.Is(err, domain.ErrProductNotFound),
		errors.Is(err, domain.ErrProductNotInCart),
		errors.Is(err, domain.ErrSaleNotFound):
		return http.StatusNotFound, "not_found"
	case errors.Is(err, domain.ErrInsufficientStock),
		errors.Is(err, domain.ErrSaleExists),
		errors.Is(err, domain.ErrProductCodeTaken),
		errors.Is(err, ErrRegisterLimit):
		return http.StatusConflict, "conflict"
	case errors.Is(err, domain.ErrEmptyCart),
		errors.Is(err, domain.ErrInvalidQuantity),
		errors.Is(err, domain.ErrInvalidPaymentMethod),
		errors.Is(err, domain.ErrCurrencyMismatch),
		errors.Is(err, domain.ErrInvalidProduct):
		return http.StatusUnprocessableEntity, "unprocessable"
	}

	return http.StatusInternalServerError, "internal"
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
