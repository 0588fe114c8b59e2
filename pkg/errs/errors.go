package errs

import (
	"errors"
	"net/http"
)

const (
	ErrStatusInternalServer = http.StatusInternalServerError
	ErrStatusClient         = http.StatusBadRequest
	ErrStatusNotLoggedIn    = http.StatusUnauthorized
	ErrStatusNoPermission   = http.StatusForbidden
	ErrStatusNotFound       = http.StatusNotFound
	ErrStatusConflict       = http.StatusConflict
	ErrStatusBadGateway     = http.StatusBadGateway
)

var (
	ErrInternalServer     = errors.New("Internal server error")
	ErrClient             = errors.New("Bad request")
	ErrNotLoggedIn        = errors.New("Unauthorized access")
	ErrUnauthorized       = errors.New("Forbidden access")
	ErrNotFound           = errors.New("Resource not found")
	ErrConflict           = errors.New("Conflicting concurrent update, please retry")
	ErrOutOfStock         = errors.New("Product is out of stock")
	ErrOrderAlreadyPlaced = errors.New("Order has already been placed")
	ErrEmptyOrder         = errors.New("Order has no products in it")
	ErrAmountMismatch     = errors.New("Payment amount does not match the cart total")
	ErrPaymentExpired     = errors.New("Payment for this order has expired")
	ErrPaymentGateway     = errors.New("Payment gateway request failed")
)

var errorMap = map[error]int{
	ErrInternalServer:     ErrStatusInternalServer,
	ErrClient:             ErrStatusClient,
	ErrNotLoggedIn:        ErrStatusNotLoggedIn,
	ErrUnauthorized:       ErrStatusNoPermission,
	ErrNotFound:           ErrStatusNotFound,
	ErrConflict:           ErrStatusConflict,
	ErrOutOfStock:         ErrStatusConflict,
	ErrOrderAlreadyPlaced: ErrStatusConflict,
	ErrEmptyOrder:         ErrStatusClient,
	ErrAmountMismatch:     ErrStatusClient,
	ErrPaymentExpired:     ErrStatusNoPermission,
	ErrPaymentGateway:     ErrStatusBadGateway,
}

func GetErrorStatusCode(err error) int {
	errStatusCode, ok := errorMap[err]
	if !ok {
		errStatusCode = errorMap[ErrInternalServer]
	}
	return errStatusCode
}
