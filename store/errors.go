package store

import (
	"fmt"

	errorsmod "cosmossdk.io/errors"
)

const codespace = "store"

var (
	ErrQueryFailed   = errorsmod.Register(codespace, 2, "API Node Unavailable. Could not perform query")
	ErrMissingWallet = errorsmod.Register(codespace, 3, "Could not initialize signing client. Wallet is required.")
	ErrBroadcast     = errorsmod.Register(codespace, 4, "Could not broadcast Tx")
	ErrCreateMessage = errorsmod.Register(codespace, 5, "Could not create message")
	ErrSubscription  = errorsmod.Register(codespace, 6, "Could not replay subscription")
	ErrUnknownAction = errorsmod.Register(codespace, 7, "no action registered under this name")
)

// ActionError labels a failed store action, e.g. "QueryClient:QueryParams"
// or "TxClient:MsgVote:Send". Err wraps both the error kind and the cause.
type ActionError struct {
	Label string
	Err   error
}

func (e *ActionError) Error() string {
	return e.Label + ": " + e.Err.Error()
}

func (e *ActionError) Unwrap() error {
	return e.Err
}

func actionError(label string, kind *errorsmod.Error, cause error) *ActionError {
	return &ActionError{Label: label, Err: fmt.Errorf("%w: %w", kind, cause)}
}

// QueryError is the error of a failed query action.
func QueryError(query string, cause error) error {
	return actionError("QueryClient:"+query, ErrQueryFailed, cause)
}

// InitError is returned when a Tx action runs without a signing client.
func InitError(msg string, cause error) error {
	return actionError("TxClient:"+msg+":Init", ErrMissingWallet, cause)
}

// SendError is returned when signing or broadcasting a message fails.
func SendError(msg string, cause error) error {
	return actionError("TxClient:"+msg+":Send", ErrBroadcast, cause)
}

// CreateError is returned when a message cannot be built from its input.
func CreateError(msg string, cause error) error {
	return actionError("TxClient:"+msg+":Create", ErrCreateMessage, cause)
}
