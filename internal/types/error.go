package types

import (
	"errors"
	"fmt"
	"net/http"
)

type ErrorCode string

const (
	GatewayUnavailable   ErrorCode = "GATEWAY_UNAVAILABLE"
	PriceUnavailable     ErrorCode = "PRICE_UNAVAILABLE"
	ArithmeticOverflow   ErrorCode = "ARITHMETIC_OVERFLOW"
	InvalidChain         ErrorCode = "INVALID_CHAIN"
	PositionNotFound     ErrorCode = "POSITION_NOT_FOUND"
	BadRequest           ErrorCode = "BAD_REQUEST"
	InternalServiceError ErrorCode = "INTERNAL_SERVICE_ERROR"
)

func (c ErrorCode) String() string {
	return string(c)
}

// Sentinels for errors.Is. Any *Error carrying the same code matches.
var (
	ErrGatewayUnavailable = &Error{StatusCode: http.StatusServiceUnavailable, ErrorCode: GatewayUnavailable}
	ErrPriceUnavailable   = &Error{StatusCode: http.StatusServiceUnavailable, ErrorCode: PriceUnavailable}
	ErrArithmeticOverflow = &Error{StatusCode: http.StatusInternalServerError, ErrorCode: ArithmeticOverflow}
	ErrInvalidChain       = &Error{StatusCode: http.StatusBadRequest, ErrorCode: InvalidChain}
	ErrPositionNotFound   = &Error{StatusCode: http.StatusNotFound, ErrorCode: PositionNotFound}
)

// Error is the error type shared by every layer of the engine. StatusCode is
// the HTTP status the api layer answers with.
type Error struct {
	StatusCode int
	ErrorCode  ErrorCode
	Err        error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return e.ErrorCode.String()
	}
	return fmt.Sprintf("%s: %s", e.ErrorCode, e.Err.Error())
}

func (e *Error) Unwrap() error {
	return e.Err
}

func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.ErrorCode == e.ErrorCode
}

func NewError(statusCode int, errorCode ErrorCode, err error) *Error {
	return &Error{
		StatusCode: statusCode,
		ErrorCode:  errorCode,
		Err:        err,
	}
}

func NewErrorWithMsg(statusCode int, errorCode ErrorCode, msg string) *Error {
	return NewError(statusCode, errorCode, errors.New(msg))
}

func NewGatewayUnavailableError(err error) *Error {
	return NewError(http.StatusServiceUnavailable, GatewayUnavailable, err)
}

func NewPriceUnavailableError(err error) *Error {
	return NewError(http.StatusServiceUnavailable, PriceUnavailable, err)
}

func NewArithmeticOverflowError(op string) *Error {
	return NewErrorWithMsg(http.StatusInternalServerError, ArithmeticOverflow, op+" overflows 256 bits")
}

func NewInvalidChainError(chainID uint64) *Error {
	return NewError(http.StatusBadRequest, InvalidChain, fmt.Errorf("no gateway configured for chain %d", chainID))
}

func NewPositionNotFoundError(chainID, positionID uint64) *Error {
	return NewError(http.StatusNotFound, PositionNotFound, fmt.Errorf("position %d has no escrow on chain %d", positionID, chainID))
}

// IsErrorCode reports whether err (or anything it wraps) is an *Error with the given code.
func IsErrorCode(err error, code ErrorCode) bool {
	var e *Error
	if !errors.As(err, &e) {
		return false
	}
	return e.ErrorCode == code
}
