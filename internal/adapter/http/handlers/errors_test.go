package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"projectease/internal/domain/entities"
	"projectease/internal/usecase"
	"projectease/internal/usecase/interfaces"
)

func TestMapError(t *testing.T) {
	cases := []struct {
		err    error
		status int
		code   string
	}{
		{usecase.ErrRequestNotFound, http.StatusNotFound, "REQUEST_NOT_FOUND"},
		{usecase.ErrPaymentNotFound, http.StatusNotFound, "PAYMENT_NOT_FOUND"},
		{usecase.ErrInvalidRequestID, http.StatusBadRequest, "INVALID_REQUEST"},
		{entities.ErrSignatureMismatch, http.StatusBadRequest, "SIGNATURE_MISMATCH"},
		{entities.ErrAuthenticationRequired, http.StatusUnauthorized, "AUTHENTICATION_REQUIRED"},
		{entities.ErrAuthorization, http.StatusForbidden, "FORBIDDEN"},
		{fmt.Errorf("%w: pending -> completed", entities.ErrInvalidTransition), http.StatusConflict, "INVALID_TRANSITION"},
		{interfaces.ErrConcurrentUpdate, http.StatusConflict, "CONCURRENT_UPDATE"},
		{entities.ErrPriceNotSet, http.StatusUnprocessableEntity, "PRICE_NOT_SET"},
		{usecase.ErrPaymentGatewayNotEnabled, http.StatusServiceUnavailable, "PAYMENT_GATEWAY_DISABLED"},
		{fmt.Errorf("%w: timeout", usecase.ErrPaymentGateway), http.StatusBadGateway, "PAYMENT_PROVIDER_ERROR"},
		{errors.New("boom"), http.StatusInternalServerError, "INTERNAL_ERROR"},
	}
	for _, tc := range cases {
		t.Run(tc.code, func(t *testing.T) {
			got := mapError(tc.err)
			if got.HTTPStatus != tc.status || got.Code != tc.code {
				t.Fatalf("mapError(%v) = %d %s, want %d %s", tc.err, got.HTTPStatus, got.Code, tc.status, tc.code)
			}
		})
	}
}
