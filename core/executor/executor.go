package executor

import (
	"github.com/pkg/errors"
	"github.com/trufnetwork/credit-market/core/logging"
	"github.com/trufnetwork/credit-market/core/types"
	"go.uber.org/zap"
)

// Executor applies host transactions to a ledger one at a time and turns
// every outcome into a Receipt. It adds no locking: the host must not call
// Execute concurrently.
type Executor struct {
	ledger types.ILedger
	logger *zap.Logger
}

type Option func(*Executor)

func WithLogger(logger *zap.Logger) Option {
	return func(e *Executor) {
		e.logger = logger
	}
}

// New creates an Executor over the given ledger
func New(ledger types.ILedger, options ...Option) (*Executor, error) {
	if ledger == nil {
		return nil, errors.New("ledger is required")
	}
	e := &Executor{ledger: ledger, logger: logging.Logger}
	for _, option := range options {
		option(e)
	}
	if e.logger == nil {
		return nil, errors.New("logger is required")
	}
	e.logger = e.logger.Named("executor")
	return e, nil
}

// Execute applies a single transaction. It never panics and always returns
// a receipt; Success is false whenever the ledger or the decoder rejected it.
func (e *Executor) Execute(tx types.Transaction) types.Receipt {
	receipt := types.Receipt{
		Action: tx.Action,
		Sender: tx.Sender,
		Height: tx.Height,
		Value:  false,
	}

	value, err := e.apply(tx)
	if err != nil {
		receipt.Kind = types.KindOf(err)
		receipt.Error = err.Error()
		e.logger.Debug("transaction failed",
			zap.String("action", tx.Action),
			zap.String("sender", tx.Sender.String()),
			zap.Int64("height", tx.Height),
			zap.Stringer("kind", receipt.Kind),
			zap.Error(err))
		return receipt
	}

	receipt.Success = true
	receipt.Value = value
	e.logger.Debug("transaction applied",
		zap.String("action", tx.Action),
		zap.String("sender", tx.Sender.String()),
		zap.Int64("height", tx.Height),
		zap.Any("value", value))
	return receipt
}

// ExecuteBatch applies transactions in order, as a block would. A failed
// transaction does not stop the ones after it.
func (e *Executor) ExecuteBatch(txs []types.Transaction) []types.Receipt {
	receipts := make([]types.Receipt, 0, len(txs))
	failed := 0
	for _, tx := range txs {
		receipt := e.Execute(tx)
		if !receipt.Success {
			failed++
		}
		receipts = append(receipts, receipt)
	}
	e.logger.Info("batch applied",
		zap.Int("transactions", len(txs)),
		zap.Int("failed", failed))
	return receipts
}

func (e *Executor) apply(tx types.Transaction) (any, error) {
	if err := tx.Validate(); err != nil {
		var unknown *types.UnknownActionError
		if errors.As(err, &unknown) {
			return nil, errors.WithStack(err)
		}
		return nil, errors.Wrap(types.ErrInvalidInput, err.Error())
	}

	switch tx.Action {
	case types.ActionCreateMarket:
		return e.createMarket(tx)
	case types.ActionDeposit:
		return e.deposit(tx)
	case types.ActionStake:
		return e.stake(tx)
	case types.ActionResolveMarket:
		return e.resolveMarket(tx)
	case types.ActionClaimReward:
		return e.claimReward(tx)
	}
	return nil, errors.WithStack(&types.UnknownActionError{Name: tx.Action})
}

// ═══════════════════════════════════════════════════════════════
// ACTIONS
// ═══════════════════════════════════════════════════════════════

func (e *Executor) createMarket(tx types.Transaction) (any, error) {
	borrower, err := extractAddressArg(tx.Args[0], 0, "borrower")
	if err != nil {
		return nil, err
	}
	deadline, err := extractInt64Arg(tx.Args[1], 1, "deadline")
	if err != nil {
		return nil, err
	}
	return e.ledger.CreateMarket(types.CreateMarketInput{
		Borrower: borrower,
		Deadline: deadline,
		Height:   tx.Height,
	})
}

func (e *Executor) deposit(tx types.Transaction) (any, error) {
	amount, err := extractAmountArg(tx.Args[0], 0)
	if err != nil {
		return nil, err
	}
	return e.ledger.Deposit(tx.Sender, amount)
}

func (e *Executor) stake(tx types.Transaction) (any, error) {
	marketID, err := extractMarketIDArg(tx.Args[0], 0)
	if err != nil {
		return nil, err
	}
	outcome, err := extractBoolArg(tx.Args[1], 1, "outcome")
	if err != nil {
		return nil, err
	}
	amount, err := extractAmountArg(tx.Args[2], 2)
	if err != nil {
		return nil, err
	}
	return e.ledger.Stake(types.StakeInput{
		Sender:   tx.Sender,
		MarketID: marketID,
		Outcome:  outcome,
		Amount:   amount,
		Height:   tx.Height,
	})
}

func (e *Executor) resolveMarket(tx types.Transaction) (any, error) {
	marketID, err := extractMarketIDArg(tx.Args[0], 0)
	if err != nil {
		return nil, err
	}
	outcome, err := extractBoolArg(tx.Args[1], 1, "outcome")
	if err != nil {
		return nil, err
	}
	return e.ledger.ResolveMarket(types.ResolveMarketInput{
		MarketID: marketID,
		Outcome:  outcome,
		Height:   tx.Height,
	})
}

func (e *Executor) claimReward(tx types.Transaction) (any, error) {
	marketID, err := extractMarketIDArg(tx.Args[0], 0)
	if err != nil {
		return nil, err
	}
	return e.ledger.ClaimReward(tx.Sender, marketID)
}
