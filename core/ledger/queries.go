package ledger

import (
	"cmp"
	"slices"

	"github.com/cockroachdb/apd/v3"
	"github.com/pkg/errors"
	"github.com/trufnetwork/credit-market/core/types"
)

// ═══════════════════════════════════════════════════════════════
// QUERIES
// ═══════════════════════════════════════════════════════════════

// Balance returns a copy of the account balance, zero for unknown accounts
func (l *MarketLedger) Balance(addr types.Address) *apd.Decimal {
	return types.CopyAmount(l.balanceOf(addr))
}

// Admin returns the recorded admin address
func (l *MarketLedger) Admin() types.Address {
	return l.admin
}

// NextMarketID returns the id the next CreateMarket will allocate
func (l *MarketLedger) NextMarketID() types.MarketID {
	return l.nextMarketID
}

// GetMarket returns a copy of the market
func (l *MarketLedger) GetMarket(id types.MarketID) (*types.Market, error) {
	market, ok := l.markets[id]
	if !ok {
		return nil, errors.Wrapf(types.ErrMarketNotFound, "market %d", id)
	}
	return copyMarket(market), nil
}

// GetStake returns a copy of the stake addr holds on market id
func (l *MarketLedger) GetStake(id types.MarketID, addr types.Address) (*types.Stake, error) {
	if _, ok := l.markets[id]; !ok {
		return nil, errors.Wrapf(types.ErrMarketNotFound, "market %d", id)
	}
	stake, ok := l.stakes[types.StakeKey{MarketID: id, Staker: addr}]
	if !ok {
		return nil, errors.Wrapf(types.ErrNoStake, "market %d, staker %s", id, addr)
	}
	return copyStake(stake), nil
}

// ListMarkets returns markets ordered by id
func (l *MarketLedger) ListMarkets(input types.ListMarketsInput) ([]types.Market, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	limit := types.DefaultListLimit
	if input.Limit != nil {
		limit = *input.Limit
	}
	offset := 0
	if input.Offset != nil {
		offset = *input.Offset
	}

	ids := l.sortedMarketIDs()
	markets := make([]types.Market, 0, min(limit, len(ids)))
	skipped := 0
	for _, id := range ids {
		market := l.markets[id]
		if input.ResolvedFilter != nil && market.Resolved != *input.ResolvedFilter {
			continue
		}
		if skipped < offset {
			skipped++
			continue
		}
		if len(markets) == limit {
			break
		}
		markets = append(markets, *copyMarket(market))
	}
	return markets, nil
}

// TotalSupply returns the sum of all account balances
func (l *MarketLedger) TotalSupply() (*apd.Decimal, error) {
	total := types.NewAmount(0)
	for addr, balance := range l.accounts {
		if _, err := arith.Add(total, total, balance); err != nil {
			return nil, errors.Wrapf(err, "summing balance of %s", addr)
		}
	}
	return total, nil
}

// ═══════════════════════════════════════════════════════════════
// SNAPSHOT
// ═══════════════════════════════════════════════════════════════

// Snapshot is a detached copy of the full ledger state. Amounts are
// rendered as base-10 integer strings so the snapshot encodes losslessly.
type Snapshot struct {
	Admin        types.Address            `json:"admin,omitempty"`
	NextMarketID types.MarketID           `json:"next_market_id"`
	Accounts     map[types.Address]string `json:"accounts"`
	Markets      []types.Market           `json:"markets"`
	Stakes       []types.Stake            `json:"stakes"`
}

// Snapshot copies the current state; markets and stakes are ordered by
// market id, then staker
func (l *MarketLedger) Snapshot() Snapshot {
	snap := Snapshot{
		Admin:        l.admin,
		NextMarketID: l.nextMarketID,
		Accounts:     make(map[types.Address]string, len(l.accounts)),
		Markets:      make([]types.Market, 0, len(l.markets)),
		Stakes:       make([]types.Stake, 0, len(l.stakes)),
	}

	for addr, balance := range l.accounts {
		snap.Accounts[addr] = types.FormatAmount(balance)
	}
	for _, id := range l.sortedMarketIDs() {
		snap.Markets = append(snap.Markets, *copyMarket(l.markets[id]))
	}
	for _, stake := range l.stakes {
		snap.Stakes = append(snap.Stakes, *copyStake(stake))
	}
	slices.SortFunc(snap.Stakes, func(a, b types.Stake) int {
		if c := cmp.Compare(a.MarketID, b.MarketID); c != 0 {
			return c
		}
		return cmp.Compare(a.Staker, b.Staker)
	})
	return snap
}

func (l *MarketLedger) sortedMarketIDs() []types.MarketID {
	ids := make([]types.MarketID, 0, len(l.markets))
	for id := range l.markets {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

func copyMarket(m *types.Market) *types.Market {
	cp := *m
	if m.Outcome != nil {
		outcome := *m.Outcome
		cp.Outcome = &outcome
	}
	if m.ResolvedAt != nil {
		at := *m.ResolvedAt
		cp.ResolvedAt = &at
	}
	return &cp
}

func copyStake(s *types.Stake) *types.Stake {
	cp := *s
	cp.Amount = types.CopyAmount(s.Amount)
	return &cp
}
