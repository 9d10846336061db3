package ledger

import (
	"github.com/cockroachdb/apd/v3"
	"github.com/pkg/errors"
	"github.com/trufnetwork/credit-market/core/types"
	"go.uber.org/zap"
)

// arith performs exact integer arithmetic; precision 0 disables rounding
// for Add, Sub and Mul.
var arith = apd.BaseContext

// MarketLedger holds accounts, markets and stakes of one credit prediction
// market. It is a sequential state machine: every method runs to completion
// and no method is safe to call concurrently with another.
type MarketLedger struct {
	accounts     map[types.Address]*apd.Decimal
	markets      map[types.MarketID]*types.Market
	stakes       map[types.StakeKey]*types.Stake
	nextMarketID types.MarketID

	admin      types.Address
	multiplier *apd.Decimal
	logger     *zap.Logger
}

// Compile-time check that MarketLedger implements ILedger
var _ types.ILedger = (*MarketLedger)(nil)

// New creates an empty ledger whose first market id is 1
func New(opts ...Option) (*MarketLedger, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if err := o.Validate(); err != nil {
		return nil, errors.WithStack(err)
	}

	return &MarketLedger{
		accounts:     make(map[types.Address]*apd.Decimal),
		markets:      make(map[types.MarketID]*types.Market),
		stakes:       make(map[types.StakeKey]*types.Stake),
		nextMarketID: 1,
		admin:        o.Admin,
		multiplier:   apd.New(o.RewardMultiplier, 0),
		logger:       o.Logger.Named("ledger"),
	}, nil
}

// ═══════════════════════════════════════════════════════════════
// STATE TRANSITIONS
// ═══════════════════════════════════════════════════════════════

// CreateMarket opens a market. The deadline is not validated: a market
// whose deadline already passed simply never accepts stakes.
func (l *MarketLedger) CreateMarket(input types.CreateMarketInput) (types.MarketID, error) {
	id := l.nextMarketID
	l.nextMarketID++

	l.markets[id] = &types.Market{
		ID:        id,
		Borrower:  input.Borrower,
		Deadline:  input.Deadline,
		CreatedAt: input.Height,
	}

	l.logger.Debug("market created",
		zap.Uint64("marketId", uint64(id)),
		zap.String("borrower", input.Borrower.String()),
		zap.Int64("deadline", input.Deadline))
	return id, nil
}

// Deposit adds amount to the sender's balance
func (l *MarketLedger) Deposit(sender types.Address, amount *apd.Decimal) (bool, error) {
	amount, err := types.NormalizeAmount(amount)
	if err != nil {
		return l.reject(types.ActionDeposit, err, zap.String("sender", sender.String()))
	}

	next := new(apd.Decimal)
	if _, err := arith.Add(next, l.balanceOf(sender), amount); err != nil {
		return false, errors.Wrapf(err, "deposit for %s", sender)
	}
	l.accounts[sender] = next

	l.logger.Debug("deposit",
		zap.String("sender", sender.String()),
		zap.String("amount", types.FormatAmount(amount)),
		zap.String("balance", types.FormatAmount(next)))
	return true, nil
}

// Stake records the sender's side and amount on an open market and deducts
// the amount from the sender's balance.
//
// Checks, in order: amount, market exists, market unresolved,
// height < deadline, balance >= amount. Nothing is written unless all of
// them pass, so a rejected stake never leaves a stake record behind.
// Staking again on the same market replaces the earlier record; the amount
// deducted for it is not returned.
func (l *MarketLedger) Stake(input types.StakeInput) (bool, error) {
	fields := []zap.Field{
		zap.String("sender", input.Sender.String()),
		zap.Uint64("marketId", uint64(input.MarketID)),
	}
	if err := input.Validate(); err != nil {
		return l.reject(types.ActionStake, err, fields...)
	}
	amount, err := types.NormalizeAmount(input.Amount)
	if err != nil {
		return l.reject(types.ActionStake, err, fields...)
	}

	if _, err := l.openMarket(input.MarketID, input.Height); err != nil {
		return l.reject(types.ActionStake, err, fields...)
	}

	balance := l.balanceOf(input.Sender)
	if balance.Cmp(amount) < 0 {
		err := errors.Wrapf(types.ErrInsufficientBalance, "balance %s, stake %s",
			types.FormatAmount(balance), types.FormatAmount(amount))
		return l.reject(types.ActionStake, err, fields...)
	}

	remaining := new(apd.Decimal)
	if _, err := arith.Sub(remaining, balance, amount); err != nil {
		return false, errors.Wrapf(err, "stake for %s", input.Sender)
	}

	key := types.StakeKey{MarketID: input.MarketID, Staker: input.Sender}
	l.stakes[key] = &types.Stake{
		MarketID: input.MarketID,
		Staker:   input.Sender,
		Outcome:  input.Outcome,
		Amount:   amount,
		StakedAt: input.Height,
	}
	l.accounts[input.Sender] = remaining

	l.logger.Debug("stake recorded",
		append(fields,
			zap.Bool("outcome", input.Outcome),
			zap.String("amount", types.FormatAmount(amount)),
			zap.Int64("height", input.Height))...)
	return true, nil
}

// ResolveMarket fixes the outcome of an open market. Any caller may resolve;
// the admin address is not consulted.
func (l *MarketLedger) ResolveMarket(input types.ResolveMarketInput) (bool, error) {
	market, err := l.openMarket(input.MarketID, input.Height)
	if err != nil {
		return l.reject(types.ActionResolveMarket, err, zap.Uint64("marketId", uint64(input.MarketID)))
	}

	outcome := input.Outcome
	height := input.Height
	market.Resolved = true
	market.Outcome = &outcome
	market.ResolvedAt = &height

	l.logger.Debug("market resolved",
		zap.Uint64("marketId", uint64(input.MarketID)),
		zap.Bool("outcome", outcome),
		zap.Int64("height", height))
	return true, nil
}

// ClaimReward credits the sender with amount * multiplier when their stake
// is on the winning side. A stake pays out once; a losing stake is kept
// as-is and pays nothing.
func (l *MarketLedger) ClaimReward(sender types.Address, marketID types.MarketID) (bool, error) {
	fields := []zap.Field{
		zap.String("sender", sender.String()),
		zap.Uint64("marketId", uint64(marketID)),
	}

	market, ok := l.markets[marketID]
	if !ok {
		return l.reject(types.ActionClaimReward, errors.Wrapf(types.ErrMarketNotFound, "market %d", marketID), fields...)
	}
	if !market.Resolved {
		return l.reject(types.ActionClaimReward, errors.Wrapf(types.ErrNotResolved, "market %d", marketID), fields...)
	}

	stake, ok := l.stakes[types.StakeKey{MarketID: marketID, Staker: sender}]
	if !ok {
		return l.reject(types.ActionClaimReward, errors.Wrapf(types.ErrNoStake, "market %d", marketID), fields...)
	}
	if stake.Claimed {
		return l.reject(types.ActionClaimReward, errors.Wrapf(types.ErrAlreadyClaimed, "market %d", marketID), fields...)
	}
	if stake.Outcome != *market.Outcome {
		return l.reject(types.ActionClaimReward, errors.Wrapf(types.ErrLosingStake, "market %d", marketID), fields...)
	}

	reward := new(apd.Decimal)
	if _, err := arith.Mul(reward, stake.Amount, l.multiplier); err != nil {
		return false, errors.Wrapf(err, "reward for %s", sender)
	}
	next := new(apd.Decimal)
	if _, err := arith.Add(next, l.balanceOf(sender), reward); err != nil {
		return false, errors.Wrapf(err, "reward for %s", sender)
	}
	l.accounts[sender] = next
	stake.Claimed = true

	l.logger.Debug("reward claimed",
		append(fields, zap.String("reward", types.FormatAmount(reward)))...)
	return true, nil
}

// ═══════════════════════════════════════════════════════════════
// HELPER METHODS
// ═══════════════════════════════════════════════════════════════

// openMarket returns the market if it exists, is unresolved and height is
// strictly before its deadline
func (l *MarketLedger) openMarket(id types.MarketID, height int64) (*types.Market, error) {
	market, ok := l.markets[id]
	if !ok {
		return nil, errors.Wrapf(types.ErrMarketNotFound, "market %d", id)
	}
	if market.Resolved {
		return nil, errors.Wrapf(types.ErrAlreadyResolved, "market %d", id)
	}
	if !market.IsOpen(height) {
		return nil, errors.Wrapf(types.ErrDeadlinePassed, "market %d: height %d, deadline %d", id, height, market.Deadline)
	}
	return market, nil
}

// balanceOf returns the stored balance without copying, zero when missing
func (l *MarketLedger) balanceOf(addr types.Address) *apd.Decimal {
	if b, ok := l.accounts[addr]; ok {
		return b
	}
	return types.NewAmount(0)
}

func (l *MarketLedger) reject(action string, err error, fields ...zap.Field) (bool, error) {
	l.logger.Debug("transaction rejected",
		append(fields,
			zap.String("action", action),
			zap.Stringer("kind", types.KindOf(err)),
			zap.Error(err))...)
	return false, err
}
