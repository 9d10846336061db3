package ledger

import (
	"github.com/go-playground/validator/v10"
	"github.com/trufnetwork/credit-market/core/logging"
	"github.com/trufnetwork/credit-market/core/types"
	"go.uber.org/zap"
)

// DefaultRewardMultiplier is the payout factor applied to a winning stake
const DefaultRewardMultiplier = 2

// Options holds the construction parameters of a MarketLedger
type Options struct {
	// Admin is recorded and reported but never checked against callers
	Admin            types.Address
	RewardMultiplier int64       `validate:"gte=1"`
	Logger           *zap.Logger `validate:"required"`
}

type Option func(*Options)

func defaultOptions() Options {
	return Options{
		RewardMultiplier: DefaultRewardMultiplier,
		Logger:           logging.Logger,
	}
}

// Validate checks the assembled options
func (o *Options) Validate() error {
	validate := validator.New()
	return validate.Struct(o)
}

func WithAdmin(admin types.Address) Option {
	return func(o *Options) {
		o.Admin = admin
	}
}

func WithRewardMultiplier(multiplier int64) Option {
	return func(o *Options) {
		o.RewardMultiplier = multiplier
	}
}

func WithLogger(logger *zap.Logger) Option {
	return func(o *Options) {
		o.Logger = logger
	}
}
