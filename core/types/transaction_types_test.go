package types

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestActionRegistry_Consistent(t *testing.T) {
	require.Len(t, ActionRegistry, 5)
	for name, info := range ActionRegistry {
		assert.Equal(t, name, info.Name)
		byID := GetActionInfoByID(info.ID)
		require.NotNil(t, byID, name)
		assert.Equal(t, name, byID.Name)
	}

	assert.Nil(t, GetActionInfo("withdraw"))
	assert.Nil(t, GetActionInfoByID(0))
	assert.Equal(t, []string{"market_id", "outcome", "amount"}, GetActionInfo(ActionStake).Args)
}

func TestValidateActionName(t *testing.T) {
	require.NoError(t, ValidateActionName(ActionClaimReward))

	err := ValidateActionName("withdraw")
	require.Error(t, err)
	assert.Equal(t, "unknown action: withdraw", err.Error())
	assert.Equal(t, KindInvalidInput, KindOf(err))
}

func TestTransaction_Validate(t *testing.T) {
	tests := []struct {
		name          string
		tx            Transaction
		expectedError string
	}{
		{
			name: "Valid deposit",
			tx:   Transaction{Action: ActionDeposit, Sender: "STU1", Args: []any{"10"}},
		},
		{
			name:          "Missing action",
			tx:            Transaction{Sender: "STU1"},
			expectedError: "action is required",
		},
		{
			name:          "Unknown action",
			tx:            Transaction{Action: "withdraw", Args: []any{"10"}},
			expectedError: "unknown action",
		},
		{
			name:          "Too few args",
			tx:            Transaction{Action: ActionStake, Args: []any{1, true}},
			expectedError: "stake expects 3 args",
		},
		{
			name:          "Too many args",
			tx:            Transaction{Action: ActionClaimReward, Args: []any{1, 2}},
			expectedError: "claim_reward expects 1 args",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.tx.Validate()
			if tt.expectedError == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			require.Contains(t, err.Error(), tt.expectedError)
		})
	}
}

func TestTransaction_ValidateUsesStructTags(t *testing.T) {
	tx := Transaction{Sender: "STU1", Args: []any{"10"}}
	err := tx.Validate()
	require.Error(t, err)

	var verrs validator.ValidationErrors
	require.True(t, errors.As(err, &verrs))
	require.Len(t, verrs, 1)
	assert.Equal(t, "Action", verrs[0].Field())
	assert.Equal(t, "required", verrs[0].Tag())
}

func TestReceipt_Err(t *testing.T) {
	ok := Receipt{Action: ActionDeposit, Success: true, Value: true}
	require.NoError(t, ok.Err())

	failed := Receipt{Action: ActionStake, Kind: KindDeadlinePassed, Error: "market 1: height 2000, deadline 2000: market deadline passed"}
	require.ErrorIs(t, failed.Err(), ErrDeadlinePassed)

	other := Receipt{Action: ActionStake, Kind: KindUnknown, Error: "boom"}
	require.EqualError(t, other.Err(), "boom")
}
