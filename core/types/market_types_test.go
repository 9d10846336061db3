package types

import (
	"fmt"
	"testing"

	"github.com/cockroachdb/apd/v3"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ═══════════════════════════════════════════════════════════════
// AMOUNT TESTS
// ═══════════════════════════════════════════════════════════════

func TestParseAmount(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		expected  string
		expectErr bool
	}{
		{name: "Zero", input: "0", expected: "0"},
		{name: "Plain integer", input: "1000", expected: "1000"},
		{name: "Exponent form", input: "5e3", expected: "5000"},
		{name: "Beyond int64", input: "99999999999999999999999999999", expected: "99999999999999999999999999999"},
		{name: "Trailing zero fraction", input: "12.00", expected: "12"},
		{name: "Negative zero", input: "-0.00", expected: "0"},
		{name: "Negative", input: "-1", expectErr: true},
		{name: "Fraction", input: "0.5", expectErr: true},
		{name: "Garbage", input: "ten", expectErr: true},
		{name: "Empty", input: "", expectErr: true},
		{name: "NaN", input: "NaN", expectErr: true},
		{name: "Infinity", input: "Infinity", expectErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := ParseAmount(tt.input)
			if tt.expectErr {
				require.Error(t, err)
				require.Equal(t, KindInvalidAmount, KindOf(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, FormatAmount(d))
		})
	}
}

func TestCopyAmount(t *testing.T) {
	orig := NewAmount(42)
	cp := CopyAmount(orig)
	cp.SetInt64(7)
	assert.Equal(t, "42", FormatAmount(orig))

	assert.Equal(t, "0", FormatAmount(CopyAmount(nil)))
	assert.Equal(t, "0", FormatAmount(nil))
}

func TestNormalizeAmount(t *testing.T) {
	d, err := NormalizeAmount(apd.New(100000, -2))
	require.NoError(t, err)
	assert.Equal(t, int32(0), d.Exponent)
	assert.Equal(t, "1000", FormatAmount(d))

	d, err = NormalizeAmount(apd.New(5, 3))
	require.NoError(t, err)
	assert.Equal(t, int32(0), d.Exponent)
	assert.Equal(t, "5000", FormatAmount(d))

	_, err = NormalizeAmount(apd.New(25, -1))
	require.Equal(t, KindInvalidAmount, KindOf(err))
}

func TestValidateAmount(t *testing.T) {
	require.NoError(t, ValidateAmount(NewAmount(0)))
	require.NoError(t, ValidateAmount(apd.New(3, 2)))
	require.Equal(t, KindInvalidAmount, KindOf(ValidateAmount(nil)))
	require.Equal(t, KindInvalidAmount, KindOf(ValidateAmount(apd.New(-3, 0))))
	require.Equal(t, KindInvalidAmount, KindOf(ValidateAmount(apd.New(25, -1))))
}

// ═══════════════════════════════════════════════════════════════
// ERROR KIND TESTS
// ═══════════════════════════════════════════════════════════════

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		kind ErrorKind
	}{
		{name: "Nil", err: nil, kind: KindNone},
		{name: "Bare sentinel", err: ErrDeadlinePassed, kind: KindDeadlinePassed},
		{name: "Wrapped", err: errors.Wrapf(ErrMarketNotFound, "market %d", 3), kind: KindNotFound},
		{name: "Double wrapped", err: errors.WithStack(errors.Wrap(ErrAlreadyClaimed, "claim")), kind: KindAlreadyClaimed},
		{name: "fmt wrapped", err: fmt.Errorf("outer: %w", ErrLosingStake), kind: KindLosingStake},
		{name: "Unknown action", err: errors.WithStack(&UnknownActionError{Name: "mint"}), kind: KindInvalidInput},
		{name: "Foreign error", err: errors.New("disk on fire"), kind: KindUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.kind, KindOf(tt.err))
		})
	}
}

func TestErrorKind_String(t *testing.T) {
	assert.Equal(t, "insufficient_balance", KindInsufficientBalance.String())
	assert.Equal(t, "none", KindNone.String())
	assert.Equal(t, "unknown", ErrorKind(999).String())

	text, err := KindNoStake.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "no_stake", string(text))
}

// ═══════════════════════════════════════════════════════════════
// INPUT VALIDATION TESTS
// ═══════════════════════════════════════════════════════════════

func TestListMarketsInput_Validate(t *testing.T) {
	intPtr := func(v int) *int { return &v }

	tests := []struct {
		name      string
		input     ListMarketsInput
		expectErr bool
	}{
		{name: "Empty", input: ListMarketsInput{}},
		{name: "Limit lower bound", input: ListMarketsInput{Limit: intPtr(1)}},
		{name: "Limit upper bound", input: ListMarketsInput{Limit: intPtr(100)}},
		{name: "Limit zero", input: ListMarketsInput{Limit: intPtr(0)}, expectErr: true},
		{name: "Limit too large", input: ListMarketsInput{Limit: intPtr(101)}, expectErr: true},
		{name: "Negative offset", input: ListMarketsInput{Offset: intPtr(-1)}, expectErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.input.Validate()
			if tt.expectErr {
				require.Error(t, err)
				require.Equal(t, KindInvalidInput, KindOf(err))
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestStakeInput_Validate(t *testing.T) {
	valid := StakeInput{Sender: "STU1", MarketID: 1, Outcome: true, Amount: NewAmount(10), Height: 5}
	require.NoError(t, valid.Validate())

	missing := StakeInput{Sender: "STU1", MarketID: 1}
	require.Equal(t, KindInvalidAmount, KindOf(missing.Validate()))
}

func TestMarket_IsOpen(t *testing.T) {
	m := Market{ID: 1, Deadline: 100}
	assert.True(t, m.IsOpen(99))
	assert.False(t, m.IsOpen(100))
	assert.False(t, m.IsOpen(101))

	m.Resolved = true
	assert.False(t, m.IsOpen(0))
}

func TestStakeKey_String(t *testing.T) {
	assert.Equal(t, "3:STU1", StakeKey{MarketID: 3, Staker: "STU1"}.String())
}
