// Package rpcerr defines the categorised, user-facing errors returned by the peg engine.
package rpcerr

import (
	"errors"
	"fmt"

	"github.com/btcsuite/btcd/btcjson"
)

// Category is the stable class of a user-facing failure.
type Category string

const (
	Malformed        Category = "malformed"
	Type             Category = "type"
	InvalidParameter Category = "invalid_parameter"
	InvalidAddress   Category = "invalid_address"
	InvalidProof     Category = "invalid_proof"
	NotFound         Category = "not_found"
	Internal         Category = "internal"
)

// Sentinels usable with errors.Is to match on category alone.
var (
	ErrMalformed        = &Error{Category: Malformed}
	ErrType             = &Error{Category: Type}
	ErrInvalidParameter = &Error{Category: InvalidParameter}
	ErrInvalidAddress   = &Error{Category: InvalidAddress}
	ErrInvalidProof     = &Error{Category: InvalidProof}
	ErrNotFound         = &Error{Category: NotFound}
	ErrInternal         = &Error{Category: Internal}
)

// Error is a failure carrying a category and a human readable message.
type Error struct {
	Category Category
	Message  string
}

// New creates an Error of the given category.
func New(category Category, message string) *Error {
	return &Error{Category: category, Message: message}
}

// Newf creates an Error of the given category with a formatted message.
func Newf(category Category, format string, args ...any) *Error {
	return &Error{Category: category, Message: fmt.Sprintf(format, args...)}
}

func (e *Error) Error() string {
	return e.Message
}

// Is matches another *Error with the same category. A target with a message
// only matches an identical message.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	if t.Category != e.Category {
		return false
	}
	return t.Message == "" || t.Message == e.Message
}

// CategoryOf extracts the category of err, if it is (or wraps) an *Error.
func CategoryOf(err error) (Category, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Category, true
	}
	return "", false
}

// Code maps err onto the JSON-RPC error code reported to callers.
func Code(err error) btcjson.RPCErrorCode {
	category, ok := CategoryOf(err)
	if !ok {
		return btcjson.ErrRPCMisc
	}
	switch category {
	case Malformed:
		return btcjson.ErrRPCDeserialization
	case Type:
		return btcjson.ErrRPCType
	case InvalidAddress:
		return btcjson.ErrRPCInvalidAddressOrKey
	case InvalidParameter, InvalidProof, NotFound:
		return btcjson.ErrRPCInvalidParameter
	case Internal:
		return btcjson.ErrRPCInternal.Code
	default:
		return btcjson.ErrRPCMisc
	}
}

// ToRPC converts err into the btcjson error object sent over the wire.
func ToRPC(err error) *btcjson.RPCError {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return btcjson.NewRPCError(Code(err), e.Message)
	}
	return btcjson.NewRPCError(btcjson.ErrRPCMisc, err.Error())
}
