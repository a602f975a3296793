package handlers

import (
	"errors"
	"net/http"

	"projectease/internal/domain/entities"
	"projectease/internal/usecase"
	"projectease/internal/usecase/interfaces"
	"projectease/pkg"
)

var (
	errInvalidPayload = pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)
)

func mapError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrRequestNotFound):
		return pkg.NewDomainErrorSimple("REQUEST_NOT_FOUND", "Request not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrProjectNotFound):
		return pkg.NewDomainErrorSimple("PROJECT_NOT_FOUND", "Project not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrPaymentNotFound):
		return pkg.NewDomainErrorSimple("PAYMENT_NOT_FOUND", "Payment not found", http.StatusNotFound)
	case errors.Is(err, entities.ErrNotFound):
		return pkg.NewDomainErrorSimple("NOT_FOUND", "Resource not found", http.StatusNotFound)
	case errors.Is(err, entities.ErrSignatureMismatch):
		return pkg.NewDomainErrorSimple("SIGNATURE_MISMATCH", "Payment verification failed", http.StatusBadRequest)
	case errors.Is(err, entities.ErrValidation):
		return pkg.NewDomainError("INVALID_REQUEST", "Invalid request", err, http.StatusBadRequest)
	case errors.Is(err, entities.ErrAuthenticationRequired):
		return pkg.NewDomainErrorSimple("AUTHENTICATION_REQUIRED", "Authentication required", http.StatusUnauthorized)
	case errors.Is(err, entities.ErrAuthorization):
		return pkg.NewDomainErrorSimple("FORBIDDEN", "Not authorized to access this resource", http.StatusForbidden)
	case errors.Is(err, entities.ErrInvalidTransition):
		return pkg.NewDomainError("INVALID_TRANSITION", "Status transition not allowed", err, http.StatusConflict)
	case errors.Is(err, entities.ErrInvalidState):
		return pkg.NewDomainError("INVALID_STATE", "Operation not allowed in the current state", err, http.StatusConflict)
	case errors.Is(err, entities.ErrDuplicateAttempt):
		return pkg.NewDomainErrorSimple("DUPLICATE_PAYMENT", "Payment attempt already exists", http.StatusConflict)
	case errors.Is(err, interfaces.ErrConcurrentUpdate):
		return pkg.NewDomainErrorSimple("CONCURRENT_UPDATE", "Request was modified concurrently, retry", http.StatusConflict)
	case errors.Is(err, entities.ErrPriceNotSet):
		return pkg.NewDomainErrorSimple("PRICE_NOT_SET", "Request price is not set", http.StatusUnprocessableEntity)
	case errors.Is(err, entities.ErrNothingOwed):
		return pkg.NewDomainErrorSimple("NOTHING_OWED", "Nothing left to pay", http.StatusUnprocessableEntity)
	case errors.Is(err, entities.ErrInvalidPrice):
		return pkg.NewDomainErrorSimple("INVALID_PRICE", "Invalid price", http.StatusUnprocessableEntity)
	case errors.Is(err, usecase.ErrPaymentGatewayNotEnabled):
		return pkg.NewDomainErrorSimple("PAYMENT_GATEWAY_DISABLED", "Payment gateway not configured", http.StatusServiceUnavailable)
	case errors.Is(err, usecase.ErrPaymentGateway):
		return pkg.NewDomainError("PAYMENT_PROVIDER_ERROR", "Payment provider error", err, http.StatusBadGateway)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}
