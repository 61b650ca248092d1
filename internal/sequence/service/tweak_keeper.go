// Package service provides the sequence-level collaborators of the use case: sealing of
// tweaks at rest and shared codec instances per alphabet.
package service

import (
	"context"
	"fmt"
	"math/big"

	"gocloud.dev/secrets"

	apperrors "github.com/allisson/serials/internal/errors"
	sequenceDomain "github.com/allisson/serials/internal/sequence/domain"

	// Register all KMS provider drivers
	_ "gocloud.dev/secrets/awskms"
	_ "gocloud.dev/secrets/azurekeyvault"
	_ "gocloud.dev/secrets/gcpkms"
	_ "gocloud.dev/secrets/hashivault"
	_ "gocloud.dev/secrets/localsecrets"
)

// Keeper is the subset of *secrets.Keeper used to seal tweaks.
type Keeper interface {
	Encrypt(ctx context.Context, plaintext []byte) ([]byte, error)
	Decrypt(ctx context.Context, ciphertext []byte) ([]byte, error)
	Close() error
}

// TweakKeeper seals tweaks before they are persisted and unseals them on load.
type TweakKeeper interface {
	// Seal encrypts tweak. A nil tweak seals to nil.
	Seal(ctx context.Context, tweak *big.Int) ([]byte, error)
	// Unseal decrypts a sealed tweak. Empty input unseals to nil.
	Unseal(ctx context.Context, sealed []byte) (*big.Int, error)
	Close() error
}

// OpenTweakKeeper opens a keeper for the given gocloud.dev/secrets URL.
// Supports: base64key://, hashivault://, awskms://, gcpkms://, azurekeyvault://.
// An empty URL returns a keeper that only accepts sequences without a tweak.
func OpenTweakKeeper(ctx context.Context, keeperURI string) (TweakKeeper, error) {
	if keeperURI == "" {
		return disabledTweakKeeper{}, nil
	}
	keeper, err := secrets.OpenKeeper(ctx, keeperURI)
	if err != nil {
		return nil, fmt.Errorf("failed to open tweak keeper: %w", err)
	}
	return NewTweakKeeper(keeper), nil
}

// NewTweakKeeper wraps an already opened keeper.
func NewTweakKeeper(keeper Keeper) TweakKeeper {
	return &tweakKeeper{keeper: keeper}
}

type tweakKeeper struct {
	keeper Keeper
}

func (k *tweakKeeper) Seal(ctx context.Context, tweak *big.Int) ([]byte, error) {
	if tweak == nil {
		return nil, nil
	}
	sealed, err := k.keeper.Encrypt(ctx, []byte(tweak.String()))
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to seal tweak")
	}
	return sealed, nil
}

func (k *tweakKeeper) Unseal(ctx context.Context, sealed []byte) (*big.Int, error) {
	if len(sealed) == 0 {
		return nil, nil
	}
	plaintext, err := k.keeper.Decrypt(ctx, sealed)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to unseal tweak")
	}
	tweak, ok := new(big.Int).SetString(string(plaintext), 10)
	if !ok {
		return nil, apperrors.Wrap(sequenceDomain.ErrInvalidTweak, "unsealed tweak is not an integer")
	}
	return tweak, nil
}

func (k *tweakKeeper) Close() error {
	return k.keeper.Close()
}

type disabledTweakKeeper struct{}

func (disabledTweakKeeper) Seal(_ context.Context, tweak *big.Int) ([]byte, error) {
	if tweak == nil {
		return nil, nil
	}
	return nil, sequenceDomain.ErrTweakKeeperNotConfigured
}

func (disabledTweakKeeper) Unseal(_ context.Context, sealed []byte) (*big.Int, error) {
	if len(sealed) == 0 {
		return nil, nil
	}
	return nil, sequenceDomain.ErrTweakKeeperNotConfigured
}

func (disabledTweakKeeper) Close() error {
	return nil
}
