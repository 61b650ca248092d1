package service

import (
	"math/big"

	"github.com/allisson/serials/internal/codec/domain"
	apperrors "github.com/allisson/serials/internal/errors"
)

var ten = big.NewInt(10)

// forwardShift returns how many all-numeric strings must be skipped so that offset e,
// counted from the all-zero pivot in the excluding numbering, lands on the matching
// position in the full numbering. n is the string length minus one.
func (c *Creator) forwardShift(n int, e *big.Int) *big.Int {
	shift := new(big.Int)
	rem := new(big.Int).Set(e)
	gap := new(big.Int)
	gaps := new(big.Int)

	for ; n > 0; n-- {
		gap.Sub(c.radixPowers[n], c.tenPowers[n])
		gaps.Quo(rem, gap)
		if gaps.Cmp(ten) >= 0 {
			return shift.Add(shift, c.tenPowers[n+1])
		}
		shift.Add(shift, new(big.Int).Mul(gaps, c.tenPowers[n]))
		rem.Sub(rem, gap.Mul(gaps, gap))
	}
	return shift.Add(shift, ten)
}

// reverseShift is the inverse of forwardShift for offset w in the full numbering. It fails
// when w itself denotes an all-numeric string.
func (c *Creator) reverseShift(n int, w *big.Int) (*big.Int, error) {
	shift := new(big.Int)
	rem := new(big.Int).Set(w)
	gaps := new(big.Int)

	for ; n > 0; n-- {
		gap := c.radixPowers[n]
		gaps.Quo(rem, gap)
		if gaps.Cmp(ten) >= 0 {
			return shift.Add(shift, c.tenPowers[n+1]), nil
		}
		shift.Add(shift, new(big.Int).Mul(gaps, c.tenPowers[n]))
		rem.Sub(rem, new(big.Int).Mul(gaps, gap))
	}
	if rem.Cmp(ten) < 0 {
		return nil, apperrors.NewKindError(domain.KindAllNumeric, nil)
	}
	return shift.Add(shift, ten), nil
}
