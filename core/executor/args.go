package executor

import (
	"fmt"
	"math"
	"strconv"

	"github.com/cockroachdb/apd/v3"
	"github.com/pkg/errors"
	"github.com/trufnetwork/credit-market/core/types"
)

// ═══════════════════════════════════════════════════════════════
// ARGUMENT DECODING
// ═══════════════════════════════════════════════════════════════
//
// Hosts hand arguments over in whatever shape their codec produced:
// JSON numbers arrive as float64, SQL-ish gateways send strings.

// extractInt64Arg decodes a signed integer argument
func extractInt64Arg(val any, argIdx int, argName string) (int64, error) {
	switch v := val.(type) {
	case int:
		return int64(v), nil
	case int64:
		return v, nil
	case int32:
		return int64(v), nil
	case uint64:
		if v > math.MaxInt64 {
			return 0, invalidArg(argIdx, argName, "%d overflows int64", v)
		}
		return int64(v), nil
	case float64:
		if v != math.Trunc(v) || v >= math.MaxInt64 || v < math.MinInt64 {
			return 0, invalidArg(argIdx, argName, "%v is not an integer", v)
		}
		return int64(v), nil
	case string:
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return 0, invalidArg(argIdx, argName, "cannot parse %q: %v", v, err)
		}
		return n, nil
	default:
		return 0, invalidArg(argIdx, argName, "unsupported type %T", val)
	}
}

// extractMarketIDArg decodes a market id, which must be positive
func extractMarketIDArg(val any, argIdx int) (types.MarketID, error) {
	if v, ok := val.(types.MarketID); ok {
		if v == 0 {
			return 0, invalidArg(argIdx, "market_id", "must be positive, got 0")
		}
		return v, nil
	}
	if v, ok := val.(uint64); ok && v > 0 {
		return types.MarketID(v), nil
	}
	n, err := extractInt64Arg(val, argIdx, "market_id")
	if err != nil {
		return 0, err
	}
	if n < 1 {
		return 0, invalidArg(argIdx, "market_id", "must be positive, got %d", n)
	}
	return types.MarketID(n), nil
}

// extractBoolArg decodes an outcome flag
func extractBoolArg(val any, argIdx int, argName string) (bool, error) {
	switch v := val.(type) {
	case bool:
		return v, nil
	case string:
		parsed, err := strconv.ParseBool(v)
		if err != nil {
			return false, invalidArg(argIdx, argName, "cannot parse %q: %v", v, err)
		}
		return parsed, nil
	default:
		return false, invalidArg(argIdx, argName, "unsupported type %T", val)
	}
}

// extractAddressArg decodes an address
func extractAddressArg(val any, argIdx int, argName string) (types.Address, error) {
	switch v := val.(type) {
	case types.Address:
		return v, nil
	case string:
		return types.Address(v), nil
	default:
		return "", invalidArg(argIdx, argName, "unsupported type %T", val)
	}
}

// extractAmountArg decodes an amount. Strings carry amounts beyond int64.
// Range and integrality are checked by the ledger, so a negative amount
// surfaces as KindInvalidAmount rather than a decoding failure.
func extractAmountArg(val any, argIdx int) (*apd.Decimal, error) {
	switch v := val.(type) {
	case *apd.Decimal:
		if v == nil {
			return nil, invalidArg(argIdx, "amount", "nil decimal")
		}
		return v, nil
	case apd.Decimal:
		return new(apd.Decimal).Set(&v), nil
	case int:
		return types.NewAmount(int64(v)), nil
	case int64:
		return types.NewAmount(v), nil
	case uint64:
		d, _, err := apd.NewFromString(strconv.FormatUint(v, 10))
		if err != nil {
			return nil, invalidArg(argIdx, "amount", "%v", err)
		}
		return d, nil
	case float64:
		if v != math.Trunc(v) || math.IsInf(v, 0) {
			return nil, errors.Wrapf(types.ErrInvalidAmount, "arg %d (amount): %v is not an integer", argIdx, v)
		}
		d := new(apd.Decimal)
		if _, err := d.SetFloat64(v); err != nil {
			return nil, invalidArg(argIdx, "amount", "%v", err)
		}
		return d, nil
	case string:
		d, _, err := apd.NewFromString(v)
		if err != nil {
			return nil, errors.Wrapf(types.ErrInvalidAmount, "arg %d (amount): cannot parse %q", argIdx, v)
		}
		return d, nil
	default:
		return nil, invalidArg(argIdx, "amount", "unsupported type %T", val)
	}
}

func invalidArg(argIdx int, argName string, format string, args ...any) error {
	return errors.Wrapf(types.ErrInvalidInput, "arg %d (%s): %s", argIdx, argName, fmt.Sprintf(format, args...))
}
