package service

import (
	"iter"
	"math/big"

	"github.com/allisson/serials/internal/codec/domain"
	apperrors "github.com/allisson/serials/internal/errors"
)

// CreateOptions configures Create, CreateRange, CreateAll and ValueFor.
type CreateOptions struct {
	Exclusion domain.Exclusion
	// Tweak keys the permutation. Nil keeps values in order.
	Tweak *big.Int
	// Finish post-processes each rendered string with its index in the batch. It is
	// ignored by ValueFor.
	Finish func(s string, index int) string
}

// Creator converts integers to and from fixed-length strings over an alphabet.
type Creator struct {
	*Validator

	registry    *Registry
	radix       *big.Int
	domains     map[domain.Exclusion][]*big.Int
	allZeros    []*big.Int
	radixPowers []*big.Int
	tenPowers   []*big.Int
}

// NewCreator builds a creator and precomputes its domain tables for every length up to
// domain.MaxStringLength. A nil registry gets a private one.
func NewCreator(alphabet *domain.Alphabet, registry *Registry, exclusions ...domain.Exclusion) (*Creator, error) {
	validator, err := NewValidator(alphabet, exclusions...)
	if err != nil {
		return nil, err
	}
	if registry == nil {
		registry = NewRegistry(0)
	}

	c := &Creator{
		Validator: validator,
		registry:  registry,
		radix:     big.NewInt(int64(alphabet.Size())),
		domains:   make(map[domain.Exclusion][]*big.Int),
	}

	c.radixPowers = make([]*big.Int, domain.MaxStringLength+1)
	c.tenPowers = make([]*big.Int, domain.MaxStringLength+1)
	c.radixPowers[0], c.tenPowers[0] = big.NewInt(1), big.NewInt(1)
	for i := 1; i <= domain.MaxStringLength; i++ {
		c.radixPowers[i] = new(big.Int).Mul(c.radixPowers[i-1], c.radix)
		c.tenPowers[i] = new(big.Int).Mul(c.tenPowers[i-1], ten)
	}

	for _, e := range validator.exclusions {
		table := make([]*big.Int, domain.MaxStringLength+1)
		for n := range table {
			switch e {
			case domain.ExclusionFirstZero:
				table[n] = new(big.Int)
				if n > 0 {
					table[n].Mul(c.radixPowers[n-1], big.NewInt(int64(alphabet.Size()-1)))
				}
			case domain.ExclusionAllNumeric:
				table[n] = new(big.Int).Sub(c.radixPowers[n], c.tenPowers[n])
			default:
				table[n] = c.radixPowers[n]
			}
		}
		c.domains[e] = table
	}

	if validator.SupportsExclusion(domain.ExclusionAllNumeric) {
		zero := big.NewInt(int64(alphabet.ZeroIndex()))
		c.allZeros = make([]*big.Int, domain.MaxStringLength+1)
		acc := new(big.Int)
		for n := range c.allZeros {
			c.allZeros[n] = new(big.Int).Set(acc)
			acc.Mul(acc, c.radix).Add(acc, zero)
		}
	}

	return c, nil
}

// Domain returns the number of admissible strings of the given length under exclusion.
func (c *Creator) Domain(length int, exclusion domain.Exclusion) (*big.Int, error) {
	if err := c.validateRequest(length, exclusion); err != nil {
		return nil, err
	}
	return new(big.Int).Set(c.domains[exclusion][length]), nil
}

// Create renders value as a string of the given length.
func (c *Creator) Create(length int, value *big.Int, opts CreateOptions) (string, error) {
	t, err := c.transformer(length, opts)
	if err != nil {
		return "", err
	}
	transformed, err := t.Forward(value)
	if err != nil {
		return "", err
	}
	return c.finish(c.render(length, transformed, opts.Exclusion), 0, opts), nil
}

// CreateRange checks the bounds of r once and returns a lazy, restartable sequence of
// (index, string) pairs.
func (c *Creator) CreateRange(length int, r domain.Range, opts CreateOptions) (iter.Seq2[int, string], error) {
	t, err := c.transformer(length, opts)
	if err != nil {
		return nil, err
	}
	transformed, err := t.ForwardRange(r)
	if err != nil {
		return nil, err
	}
	return MapIndexed(transformed, func(v *big.Int, index int) string {
		return c.finish(c.render(length, v, opts.Exclusion), index, opts)
	}), nil
}

// CreateAll renders values as they are pulled from seq. The first failure is yielded
// with an empty string and ends the sequence.
func (c *Creator) CreateAll(length int, seq iter.Seq[*big.Int], opts CreateOptions) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		t, err := c.transformer(length, opts)
		if err != nil {
			yield("", err)
			return
		}
		index := 0
		for v, err := range t.ForwardAll(seq) {
			if err != nil {
				yield("", err)
				return
			}
			if !yield(c.finish(c.render(length, v, opts.Exclusion), index, opts), nil) {
				return
			}
			index++
		}
	}
}

// ValueFor decodes s back into the value it was created from.
func (c *Creator) ValueFor(s string, opts CreateOptions) (*big.Int, error) {
	runes := []rune(s)
	t, err := c.transformer(len(runes), opts)
	if err != nil {
		return nil, err
	}

	digits, err := c.indexes(runes, ValidateOptions{})
	if err != nil {
		return nil, err
	}

	v := new(big.Int)
	for i, d := range digits {
		if i == 0 && opts.Exclusion == domain.ExclusionFirstZero {
			if d == 0 {
				return nil, firstZeroError(ValidateOptions{}, runes[0])
			}
			d--
		}
		v.Mul(v, c.radix).Add(v, big.NewInt(int64(d)))
	}

	if opts.Exclusion == domain.ExclusionAllNumeric {
		if pivot := c.allZeros[len(runes)]; v.Cmp(pivot) >= 0 {
			shift, err := c.reverseShift(len(runes)-1, new(big.Int).Sub(v, pivot))
			if err != nil {
				return nil, err
			}
			v.Sub(v, shift)
		}
	}

	return t.Reverse(v)
}

func (c *Creator) validateRequest(length int, exclusion domain.Exclusion) error {
	if length < 0 {
		return apperrors.NewKindError(domain.KindLengthTooShort, apperrors.Params{
			"length":         length,
			"minimum_length": 0,
		})
	}
	if length > domain.MaxStringLength {
		return apperrors.NewKindError(domain.KindLengthTooLong, apperrors.Params{
			"length":         length,
			"maximum_length": domain.MaxStringLength,
		})
	}
	return c.ValidateExclusion(exclusion)
}

func (c *Creator) transformer(length int, opts CreateOptions) (*Transformer, error) {
	if err := c.validateRequest(length, opts.Exclusion); err != nil {
		return nil, err
	}
	return c.registry.Get(c.domains[opts.Exclusion][length], opts.Tweak)
}

// render writes v in the alphabet's radix, least significant digit last. Under
// ExclusionFirstZero the leading digit skips the zero glyph; under ExclusionAllNumeric
// values at or past the pivot are shifted over the all-numeric strings first.
func (c *Creator) render(length int, v *big.Int, exclusion domain.Exclusion) string {
	t := new(big.Int).Set(v)
	if exclusion == domain.ExclusionAllNumeric {
		if pivot := c.allZeros[length]; t.Cmp(pivot) >= 0 {
			t.Add(t, c.forwardShift(length-1, new(big.Int).Sub(t, pivot)))
		}
	}

	out := make([]rune, length)
	digit := new(big.Int)
	firstZeroRadix := new(big.Int).Sub(c.radix, big.NewInt(1))
	for i := length - 1; i >= 0; i-- {
		if i == 0 && exclusion == domain.ExclusionFirstZero {
			t.QuoRem(t, firstZeroRadix, digit)
			out[i] = c.Character(int(digit.Int64()) + 1)
			continue
		}
		t.QuoRem(t, c.radix, digit)
		out[i] = c.Character(int(digit.Int64()))
	}
	return string(out)
}

func (c *Creator) finish(s string, index int, opts CreateOptions) string {
	if opts.Finish == nil {
		return s
	}
	return opts.Finish(s, index)
}
