package ledger

import (
	"errors"
)

type ErrorKind string

func (k ErrorKind) String() string {
	return string(k)
}

const (
	KindArithmetic        ErrorKind = "ARITHMETIC"
	KindPaused            ErrorKind = "PAUSED"
	KindUnauthorized      ErrorKind = "UNAUTHORIZED"
	KindNoFunds           ErrorKind = "NO_FUNDS"
	KindNoRecord          ErrorKind = "NO_RECORD"
	KindZeroAmount        ErrorKind = "ZERO_AMOUNT"
	KindInsufficientFunds ErrorKind = "INSUFFICIENT_FUNDS"
	KindBondedStake       ErrorKind = "BONDED_STAKE"
	KindInvalidState      ErrorKind = "INVALID_STATE"
	KindNoRewards         ErrorKind = "NO_REWARDS"
)

// Error is a rejected ledger operation. Nothing is written when one is
// returned. errors.Is matches two Errors of the same Kind, so callers can
// compare against the sentinels below.
type Error struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

var (
	ErrArithmetic        = &Error{Kind: KindArithmetic, Message: "numerical"}
	ErrPaused            = &Error{Kind: KindPaused, Message: "the ledger is paused"}
	ErrUnauthorized      = &Error{Kind: KindUnauthorized, Message: "unauthorized"}
	ErrNoFunds           = &Error{Kind: KindNoFunds, Message: "no funds available"}
	ErrNoRecord          = &Error{Kind: KindNoRecord, Message: "no stake record available"}
	ErrZeroAmount        = &Error{Kind: KindZeroAmount, Message: "cannot unbond a zero amount"}
	ErrInsufficientFunds = &Error{Kind: KindInsufficientFunds, Message: "insufficient funds"}
	ErrBondedStake       = &Error{Kind: KindBondedStake, Message: "no unbonded stake, unbond and wait for the unbonding period before withdrawing"}
	ErrInvalidState      = &Error{Kind: KindInvalidState, Message: "invalid state"}
	ErrNoRewards         = &Error{Kind: KindNoRewards, Message: "no rewards available"}
)

func arithmeticError(err error) error {
	return &Error{Kind: KindArithmetic, Message: ErrArithmetic.Message, Err: err}
}

func invalidStateError(msg string) error {
	return &Error{Kind: KindInvalidState, Message: ErrInvalidState.Message, Err: errors.New(msg)}
}

// KindOf reports the ledger error kind carried by err, if any.
func KindOf(err error) (ErrorKind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return "", false
}
