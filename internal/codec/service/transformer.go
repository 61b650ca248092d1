// Package service implements the identifier codec: a domain-bounded reversible integer
// transformer and the character-set validator and creator built on top of it.
package service

import (
	"iter"
	"math/big"

	"github.com/allisson/serials/internal/codec/domain"
	apperrors "github.com/allisson/serials/internal/errors"
)

// Kind selects how a Transformer maps values.
type Kind int

const (
	// KindIdentity maps every value to itself.
	KindIdentity Kind = iota
	// KindEncryption maps values through a tweak-keyed permutation of the domain.
	KindEncryption
)

// String returns the string representation of the kind.
func (k Kind) String() string {
	switch k {
	case KindIdentity:
		return "identity"
	case KindEncryption:
		return "encryption"
	default:
		return "unknown"
	}
}

// Transformer is a reversible map of [0, domain) onto itself. Instances are immutable
// and safe for concurrent use.
type Transformer struct {
	kind   Kind
	domain *big.Int
	enc    *encryption
}

// NewTransformer builds a transformer without caching. A nil tweak selects the identity
// variant; any other tweak, including zero, selects the encryption variant.
func NewTransformer(d, tweak *big.Int) (*Transformer, error) {
	if d == nil || d.Sign() <= 0 {
		return nil, apperrors.NewKindError(domain.KindDomainNotPositive, apperrors.Params{"domain": bigParam(d)})
	}
	if tweak == nil {
		return &Transformer{kind: KindIdentity, domain: new(big.Int).Set(d)}, nil
	}
	if tweak.Sign() < 0 {
		return nil, apperrors.NewKindError(domain.KindTweakNegative, apperrors.Params{"tweak": tweak.String()})
	}

	t := &Transformer{kind: KindEncryption, domain: new(big.Int).Set(d)}
	t.enc = newEncryption(t.domain, tweak)
	return t, nil
}

// Kind returns the variant.
func (t *Transformer) Kind() Kind {
	return t.kind
}

// Domain returns a copy of the exclusive upper bound.
func (t *Transformer) Domain() *big.Int {
	return new(big.Int).Set(t.domain)
}

// Forward transforms a value in [0, domain).
func (t *Transformer) Forward(v *big.Int) (*big.Int, error) {
	if err := t.checkValue(v); err != nil {
		return nil, err
	}
	return t.forward(v), nil
}

// Reverse undoes Forward.
func (t *Transformer) Reverse(v *big.Int) (*big.Int, error) {
	if err := t.checkValue(v); err != nil {
		return nil, err
	}

	switch t.kind {
	case KindEncryption:
		return t.enc.reverse(v), nil
	default:
		return new(big.Int).Set(v), nil
	}
}

// ForwardRange checks the bounds of r once and returns a lazy sequence of
// (index, transformed value) pairs. The sequence can be traversed repeatedly.
func (t *Transformer) ForwardRange(r domain.Range) (iter.Seq2[int, *big.Int], error) {
	if lo := r.Min(); lo.Sign() < 0 {
		return nil, apperrors.NewKindError(domain.KindMinimumValueNegative, apperrors.Params{
			"minimum_value": lo.String(),
		})
	}
	if hi := r.Max(); hi.Cmp(t.domain) >= 0 {
		return nil, apperrors.NewKindError(domain.KindMaximumValueTooLarge, apperrors.Params{
			"maximum_value": hi.String(),
			"domain":        t.domain.String(),
		})
	}

	return func(yield func(int, *big.Int) bool) {
		for i, v := range r.All() {
			if !yield(i, t.forward(v)) {
				return
			}
		}
	}, nil
}

// ForwardAll transforms values as they are pulled from seq. Each value is checked on its
// own; the first failure is yielded with a nil value and ends the sequence.
func (t *Transformer) ForwardAll(seq iter.Seq[*big.Int]) iter.Seq2[*big.Int, error] {
	return func(yield func(*big.Int, error) bool) {
		for v := range seq {
			out, err := t.Forward(v)
			if err != nil {
				yield(nil, err)
				return
			}
			if !yield(out, nil) {
				return
			}
		}
	}
}

// MapIndexed applies fn to every (index, value) pair of seq, keeping the index.
func MapIndexed[T any](seq iter.Seq2[int, *big.Int], fn func(v *big.Int, index int) T) iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		for i, v := range seq {
			if !yield(i, fn(v, i)) {
				return
			}
		}
	}
}

func (t *Transformer) forward(v *big.Int) *big.Int {
	switch t.kind {
	case KindEncryption:
		return t.enc.forward(v)
	default:
		return new(big.Int).Set(v)
	}
}

func (t *Transformer) checkValue(v *big.Int) error {
	if v == nil || v.Sign() < 0 {
		return apperrors.NewKindError(domain.KindValueNegative, apperrors.Params{"value": bigParam(v)})
	}
	if v.Cmp(t.domain) >= 0 {
		return apperrors.NewKindError(domain.KindValueTooLarge, apperrors.Params{
			"value":  v.String(),
			"domain": t.domain.String(),
		})
	}
	return nil
}

func bigParam(v *big.Int) string {
	if v == nil {
		return "<nil>"
	}
	return v.String()
}
