package types

// ActionInfo contains metadata about a ledger action
type ActionInfo struct {
	ID          uint16   // Unique action ID
	Name        string   // Action name as carried in a Transaction
	Args        []string // Positional argument names, in order
	Description string   // Human-readable description
}

const (
	ActionCreateMarket  = "create_market"
	ActionDeposit       = "deposit"
	ActionStake         = "stake"
	ActionResolveMarket = "resolve_market"
	ActionClaimReward   = "claim_reward"
)

// ActionRegistry maps action names to their metadata.
// Sender and height are carried by the transaction envelope, not the args.
var ActionRegistry = map[string]ActionInfo{
	ActionCreateMarket: {
		ID:          1,
		Name:        ActionCreateMarket,
		Args:        []string{"borrower", "deadline"},
		Description: "Open a market against a borrower, returns the market id",
	},
	ActionDeposit: {
		ID:          2,
		Name:        ActionDeposit,
		Args:        []string{"amount"},
		Description: "Credit the sender's balance",
	},
	ActionStake: {
		ID:          3,
		Name:        ActionStake,
		Args:        []string{"market_id", "outcome", "amount"},
		Description: "Stake part of the sender's balance on one outcome",
	},
	ActionResolveMarket: {
		ID:          4,
		Name:        ActionResolveMarket,
		Args:        []string{"market_id", "outcome"},
		Description: "Fix the outcome of an open market before its deadline",
	},
	ActionClaimReward: {
		ID:          5,
		Name:        ActionClaimReward,
		Args:        []string{"market_id"},
		Description: "Redeem a winning stake for the fixed-multiplier reward",
	},
}

// ActionByID maps action IDs to their metadata
var ActionByID = map[uint16]ActionInfo{}

func init() {
	for _, info := range ActionRegistry {
		ActionByID[info.ID] = info
	}
}

// GetActionInfo returns the ActionInfo for a given action name, or nil if not found
func GetActionInfo(name string) *ActionInfo {
	if info, ok := ActionRegistry[name]; ok {
		return &info
	}
	return nil
}

// GetActionInfoByID returns the ActionInfo for a given action ID, or nil if not found
func GetActionInfoByID(id uint16) *ActionInfo {
	if info, ok := ActionByID[id]; ok {
		return &info
	}
	return nil
}

// ValidateActionName returns an error if the action name is not recognized
func ValidateActionName(name string) error {
	if _, ok := ActionRegistry[name]; !ok {
		return &UnknownActionError{Name: name}
	}
	return nil
}

// UnknownActionError is returned when an unrecognized action name is used
type UnknownActionError struct {
	Name string
}

func (e *UnknownActionError) Error() string {
	return "unknown action: " + e.Name
}
