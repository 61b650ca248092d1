package service

import (
	"math/big"
	"slices"
)

// keyPrime spreads domain*tweak so that non-trivial inputs yield at least four key bytes.
var keyPrime = big.NewInt(603868999)

// encryption is a small byte-oriented permutation network over [0, domain). Each round
// reorders bytes by a single selector bit and then runs a chained xor across them. Values
// that land outside the domain are cycle-walked through the full round sequence again.
type encryption struct {
	domain      *big.Int
	domainBytes int
	xorBytes    []byte
	bits        []byte
	rounds      int
}

func newEncryption(d, tweak *big.Int) *encryption {
	e := &encryption{
		domain:      d,
		domainBytes: (new(big.Int).Sub(d, big.NewInt(1)).BitLen() + 7) / 8,
	}

	key := new(big.Int).Mul(d, tweak)
	key.Mul(key, keyPrime)

	var extracted []byte
	for key.Sign() > 0 {
		b := byte(key.Bits()[0])
		extracted = append(extracted, b)
		e.bits = append(e.bits, 1<<(b&7))
		key.Rsh(key, 8)
	}
	// xor bytes are consumed most significant first.
	e.xorBytes = slices.Clone(extracted)
	slices.Reverse(e.xorBytes)
	e.rounds = len(e.xorBytes)

	if e.domainBytes == 1 {
		var mask byte
		for i := range 8 {
			if int64(1)<<i < d.Int64() {
				mask |= 1 << i
			}
		}
		var folded byte
		for _, b := range extracted {
			folded ^= b
		}
		// A single byte has no positions to reorder, so the shuffle bit is arbitrary.
		e.xorBytes = []byte{folded & mask}
		e.bits = []byte{1 << 4}
		e.rounds = 1
	}

	return e
}

func (e *encryption) forward(v *big.Int) *big.Int {
	b := v.FillBytes(make([]byte, e.domainBytes))
	for {
		for r := 0; r < e.rounds; r++ {
			b = e.xor(e.shuffle(b, r, true), r, true)
		}
		if out := new(big.Int).SetBytes(b); out.Cmp(e.domain) < 0 {
			return out
		}
	}
}

func (e *encryption) reverse(v *big.Int) *big.Int {
	b := v.FillBytes(make([]byte, e.domainBytes))
	for {
		for r := e.rounds - 1; r >= 0; r-- {
			b = e.shuffle(e.xor(b, r, false), r, false)
		}
		if out := new(big.Int).SetBytes(b); out.Cmp(e.domain) < 0 {
			return out
		}
	}
}

// shuffle moves the bytes that have the round bit set to the front, keeping the bit
// itself in place so the reordering can be recovered.
func (e *encryption) shuffle(in []byte, round int, forward bool) []byte {
	bit := e.bits[round]
	inv := ^bit

	order := make([]int, 0, len(in))
	for i, b := range in {
		if b&bit != 0 {
			order = append(order, i)
		}
	}
	for i, b := range in {
		if b&bit == 0 {
			order = append(order, i)
		}
	}

	out := make([]byte, len(in))
	for idx, src := range order {
		if forward {
			out[idx] = in[src]&inv | in[idx]&bit
		} else {
			out[src] = in[idx]&inv | in[src]&bit
		}
	}
	return out
}

func (e *encryption) xor(in []byte, round int, forward bool) []byte {
	chain := e.xorBytes[round]
	out := make([]byte, len(in))
	for i, b := range in {
		out[i] = b ^ chain
		if forward {
			chain = out[i]
		} else {
			chain = b
		}
	}
	return out
}
