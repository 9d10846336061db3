package types

import (
	"fmt"

	"github.com/cockroachdb/apd/v3"
	"github.com/pkg/errors"
)

// ═══════════════════════════════════════════════════════════════
// INTERFACES
// ═══════════════════════════════════════════════════════════════

// ILedger is the transaction surface of a credit prediction market ledger.
// Implementations are not safe for concurrent use; the host serializes calls.
type ILedger interface {
	// ═══════════════════════════════════════════════════════════════
	// STATE TRANSITIONS
	// ═══════════════════════════════════════════════════════════════

	// CreateMarket opens a new market against a borrower and returns its id
	CreateMarket(input CreateMarketInput) (MarketID, error)

	// Deposit credits an account, creating it on first use
	Deposit(sender Address, amount *apd.Decimal) (bool, error)

	// Stake commits part of the sender's balance to one side of an open market
	Stake(input StakeInput) (bool, error)

	// ResolveMarket fixes the outcome of an open market before its deadline
	ResolveMarket(input ResolveMarketInput) (bool, error)

	// ClaimReward pays out a winning stake on a resolved market
	ClaimReward(sender Address, marketID MarketID) (bool, error)

	// ═══════════════════════════════════════════════════════════════
	// QUERIES
	// ═══════════════════════════════════════════════════════════════

	// Balance returns the account balance, zero for unknown accounts
	Balance(addr Address) *apd.Decimal

	// GetMarket returns a copy of the market
	GetMarket(id MarketID) (*Market, error)

	// GetStake returns a copy of the stake the address holds on a market
	GetStake(id MarketID, addr Address) (*Stake, error)

	// ListMarkets returns markets ordered by id with optional filtering
	ListMarkets(input ListMarketsInput) ([]Market, error)
}

// ═══════════════════════════════════════════════════════════════
// DOMAIN TYPES
// ═══════════════════════════════════════════════════════════════

// Address is an opaque account identifier
type Address string

func (a Address) String() string {
	return string(a)
}

// MarketID identifies a market; ids are allocated from 1 upward
type MarketID uint64

// Market is a binary-outcome proposition tied to a borrower and a deadline height
type Market struct {
	ID         MarketID `json:"id"`
	Borrower   Address  `json:"borrower"`
	Deadline   int64    `json:"deadline"`              // Stake and resolve require height < deadline
	Resolved   bool     `json:"resolved"`              // Terminal once true
	Outcome    *bool    `json:"outcome,omitempty"`     // nil until resolved
	CreatedAt  int64    `json:"created_at"`            // Height supplied at creation, 0 if unknown
	ResolvedAt *int64   `json:"resolved_at,omitempty"` // Height supplied at resolution
}

// IsOpen reports whether the market still accepts stakes at height
func (m *Market) IsOpen(height int64) bool {
	return !m.Resolved && height < m.Deadline
}

// Stake is one account's committed amount and side on a market
type Stake struct {
	MarketID MarketID     `json:"market_id"`
	Staker   Address      `json:"staker"`
	Outcome  bool         `json:"outcome"`
	Amount   *apd.Decimal `json:"amount"`
	StakedAt int64        `json:"staked_at"`
	Claimed  bool         `json:"claimed"` // Set by the first successful claim
}

// StakeKey is the (market, staker) pair a stake is stored under
type StakeKey struct {
	MarketID MarketID
	Staker   Address
}

func (k StakeKey) String() string {
	return fmt.Sprintf("%d:%s", k.MarketID, k.Staker)
}

// ═══════════════════════════════════════════════════════════════
// INPUT TYPES
// ═══════════════════════════════════════════════════════════════

// CreateMarketInput contains parameters for opening a market
type CreateMarketInput struct {
	Borrower Address // Borrower the market is about
	Deadline int64   // Height before which stakes and resolution are accepted; not validated
	Height   int64   // Current height, recorded as CreatedAt
}

// StakeInput contains parameters for staking on a market
type StakeInput struct {
	Sender   Address
	MarketID MarketID
	Outcome  bool         // TRUE for yes, FALSE for no
	Amount   *apd.Decimal // Non-negative integer
	Height   int64        // Current height, must be < deadline
}

// Validate checks if StakeInput is valid
func (s *StakeInput) Validate() error {
	return ValidateAmount(s.Amount)
}

// ResolveMarketInput contains parameters for resolving a market
type ResolveMarketInput struct {
	MarketID MarketID
	Outcome  bool
	Height   int64 // Current height, must be < deadline
}

// ListMarketsInput contains parameters for listing markets
type ListMarketsInput struct {
	ResolvedFilter *bool // nil=all, true=resolved only, false=open only
	Limit          *int  // Max results (default 100, max 100)
	Offset         *int  // Skip N results (default 0)
}

const (
	DefaultListLimit = 100
	MaxListLimit     = 100
)

// Validate checks if ListMarketsInput is valid
func (l *ListMarketsInput) Validate() error {
	if l.Limit != nil && (*l.Limit < 1 || *l.Limit > MaxListLimit) {
		return errors.Wrapf(ErrInvalidInput, "limit must be between 1 and %d, got %d", MaxListLimit, *l.Limit)
	}
	if l.Offset != nil && *l.Offset < 0 {
		return errors.Wrapf(ErrInvalidInput, "offset must be non-negative, got %d", *l.Offset)
	}
	return nil
}
