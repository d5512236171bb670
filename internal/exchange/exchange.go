package exchange

import "errors"

var ErrZeroBaseRate = errors.New("base rate is zero")

// Convert computes amount * (targetRate / baseRate). Both rates are quoted
// against the same base currency. The provider never returns a zero rate for
// a known currency; a zero base rate is rejected rather than divided by.
func Convert(amount, baseRate, targetRate float64) (float64, error) {
	if baseRate == 0 {
		return 0, ErrZeroBaseRate
	}

	return amount * (targetRate / baseRate), nil
}
