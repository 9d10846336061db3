package types

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
)

// Transaction is a single ledger call as submitted by the host
type Transaction struct {
	Action string  `validate:"required"` // One of the ActionRegistry names
	Sender Address // Caller; ignored by create_market and resolve_market
	Height int64   // Height at which the host evaluates the transaction
	Args   []any   // Positional arguments, see ActionInfo.Args
}

// Validate checks the envelope and the argument count
func (t *Transaction) Validate() error {
	if err := validator.New().Struct(t); err != nil {
		return errors.Wrap(err, "action is required")
	}
	info := GetActionInfo(t.Action)
	if info == nil {
		return &UnknownActionError{Name: t.Action}
	}
	if len(t.Args) != len(info.Args) {
		return fmt.Errorf("%s expects %d args %v, got %d", t.Action, len(info.Args), info.Args, len(t.Args))
	}
	return nil
}

// Receipt is the tagged result of applying a Transaction.
// Value holds the new MarketID for create_market and true for every other
// successful action; it is false on failure.
type Receipt struct {
	Action  string    `json:"action"`
	Sender  Address   `json:"sender,omitempty"`
	Height  int64     `json:"height"`
	Success bool      `json:"success"`
	Value   any       `json:"value"`
	Kind    ErrorKind `json:"kind"`
	Error   string    `json:"error,omitempty"`
}

// Err rebuilds a comparable error from the receipt, nil on success
func (r Receipt) Err() error {
	if r.Success {
		return nil
	}
	for _, s := range sentinelKinds {
		if s.kind == r.Kind {
			return s.err
		}
	}
	return fmt.Errorf("%s", r.Error)
}
