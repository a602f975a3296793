package usecase

import (
	"errors"
	"fmt"

	"projectease/internal/domain/entities"
)

var (
	ErrRequestNotFound = fmt.Errorf("request %w", entities.ErrNotFound)
	ErrProjectNotFound = fmt.Errorf("project %w", entities.ErrNotFound)
	ErrPaymentNotFound = fmt.Errorf("payment %w", entities.ErrNotFound)

	ErrInvalidRequestID = fmt.Errorf("%w: invalid request id", entities.ErrValidation)
	ErrInvalidPaymentID = fmt.Errorf("%w: invalid payment id", entities.ErrValidation)

	ErrPaymentGateway           = errors.New("payment gateway error")
	ErrPaymentGatewayNotEnabled = errors.New("payment gateway not configured")
)
