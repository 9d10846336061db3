package types

import (
	"github.com/pkg/errors"
)

// ErrorKind classifies why a ledger transaction was rejected
type ErrorKind int

const (
	KindNone ErrorKind = iota
	KindNotFound
	KindAlreadyResolved
	KindDeadlinePassed
	KindInsufficientBalance
	KindNoStake
	KindLosingStake
	KindNotResolved
	KindAlreadyClaimed
	KindInvalidAmount
	KindInvalidInput
	KindUnknown
)

var kindNames = map[ErrorKind]string{
	KindNone:                "none",
	KindNotFound:            "not_found",
	KindAlreadyResolved:     "already_resolved",
	KindDeadlinePassed:      "deadline_passed",
	KindInsufficientBalance: "insufficient_balance",
	KindNoStake:             "no_stake",
	KindLosingStake:         "losing_stake",
	KindNotResolved:         "not_resolved",
	KindAlreadyClaimed:      "already_claimed",
	KindInvalidAmount:       "invalid_amount",
	KindInvalidInput:        "invalid_input",
	KindUnknown:             "unknown",
}

func (k ErrorKind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

func (k ErrorKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

var (
	ErrMarketNotFound      = errors.New("market not found")
	ErrAlreadyResolved     = errors.New("market already resolved")
	ErrDeadlinePassed      = errors.New("market deadline passed")
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrNoStake             = errors.New("no stake for market")
	ErrLosingStake         = errors.New("stake is on the losing outcome")
	ErrNotResolved         = errors.New("market not resolved")
	ErrAlreadyClaimed      = errors.New("reward already claimed")
	ErrInvalidAmount       = errors.New("invalid amount")
	ErrInvalidInput        = errors.New("invalid input")
)

// sentinelKinds is checked in order by KindOf
var sentinelKinds = []struct {
	err  error
	kind ErrorKind
}{
	{ErrMarketNotFound, KindNotFound},
	{ErrAlreadyResolved, KindAlreadyResolved},
	{ErrDeadlinePassed, KindDeadlinePassed},
	{ErrInsufficientBalance, KindInsufficientBalance},
	{ErrNoStake, KindNoStake},
	{ErrLosingStake, KindLosingStake},
	{ErrNotResolved, KindNotResolved},
	{ErrAlreadyClaimed, KindAlreadyClaimed},
	{ErrInvalidAmount, KindInvalidAmount},
	{ErrInvalidInput, KindInvalidInput},
}

// KindOf returns the ErrorKind of err, looking through any wrapping.
// A nil error is KindNone; an error outside the ledger's set is KindUnknown.
func KindOf(err error) ErrorKind {
	if err == nil {
		return KindNone
	}
	var unknownAction *UnknownActionError
	if errors.As(err, &unknownAction) {
		return KindInvalidInput
	}
	for _, s := range sentinelKinds {
		if errors.Is(err, s.err) {
			return s.kind
		}
	}
	return KindUnknown
}
