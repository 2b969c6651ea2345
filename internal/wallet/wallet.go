package wallet

import (
	"context"
	"errors"
	"fmt"

	"github.com/Klingon-tech/klingnet-keys/internal/log"
	"github.com/Klingon-tech/klingnet-keys/pkg/hdkey"
)

// BIP-44 derivation path constants.
// Full path: m/44'/CoinType'/account'/change/index
const (
	// PurposeBIP44 is the BIP-44 purpose field (hardened in paths).
	PurposeBIP44 uint32 = 44

	CoinTypeBitcoin uint32 = 0
	CoinTypeTestnet uint32 = 1

	// CoinTypeKlingnet is our registered (placeholder) coin type.
	CoinTypeKlingnet uint32 = 8888

	// ChangeExternal is for receiving addresses.
	ChangeExternal uint32 = 0

	// ChangeInternal is for change addresses.
	ChangeInternal uint32 = 1
)

var ErrInvalidChange = errors.New("change must be 0 (external) or 1 (internal)")

// Wallet derives BIP-44 keys for one coin type from a master key.
type Wallet struct {
	master   *hdkey.ExtendedKey
	coinType uint32
}

// New creates a wallet from a seed. The master key serializes as mainnet
// xprv.
func New(seed []byte, coinType uint32) (*Wallet, error) {
	return NewWithVersion(seed, coinType, hdkey.VersionMainnetPrivate)
}

// NewWithVersion creates a wallet whose keys serialize with version.
func NewWithVersion(seed []byte, coinType uint32, version uint32) (*Wallet, error) {
	if coinType > hdkey.MaxIndex {
		return nil, fmt.Errorf("coin type: %w: %d", hdkey.ErrIndexOutOfRange, coinType)
	}
	master, err := hdkey.NewMasterKeyWithVersion(seed, version)
	if err != nil {
		return nil, fmt.Errorf("create master key: %w", err)
	}

	fp := master.Fingerprint()
	log.Wallet.Debug().
		Uint32("coin_type", coinType).
		Hex("fingerprint", fp[:]).
		Msg("Opened wallet")

	return &Wallet{master: master, coinType: coinType}, nil
}

// Master returns the root key.
func (w *Wallet) Master() *hdkey.ExtendedKey {
	return w.master
}

// CoinType returns the BIP-44 coin type of the wallet.
func (w *Wallet) CoinType() uint32 {
	return w.coinType
}

// Account derives the account key at m/44'/coin'/account'.
func (w *Wallet) Account(account uint32) (*hdkey.ExtendedKey, error) {
	path, err := AccountPath(w.coinType, account)
	if err != nil {
		return nil, err
	}
	return w.derive(path)
}

// Key derives the key at m/44'/coin'/account'/change/index.
func (w *Wallet) Key(account, change, index uint32) (*hdkey.ExtendedKey, error) {
	path, err := BIP44Path(w.coinType, account, change, index)
	if err != nil {
		return nil, err
	}
	return w.derive(path)
}

// Keys derives count consecutive keys on one chain of an account, starting
// at index first. The leaf keys are derived concurrently.
func (w *Wallet) Keys(ctx context.Context, account, change, first, count uint32) ([]*hdkey.ExtendedKey, error) {
	path, err := BIP44Path(w.coinType, account, change, first)
	if err != nil {
		return nil, err
	}
	chain, err := w.derive(path[:len(path)-1])
	if err != nil {
		return nil, err
	}
	defer chain.Zero()

	done := log.Benchmark("wallet.keys")
	defer done()

	keys, err := chain.DeriveRange(ctx, first, count, false)
	if err != nil {
		return nil, fmt.Errorf("derive %s/%d..: %w", path[:len(path)-1], first, err)
	}
	return keys, nil
}

// DerivePath derives an arbitrary path from the master key.
func (w *Wallet) DerivePath(path hdkey.Path) (*hdkey.ExtendedKey, error) {
	return w.derive(path)
}

func (w *Wallet) derive(path hdkey.Path) (*hdkey.ExtendedKey, error) {
	key, err := w.master.DerivePath(path)
	if err != nil {
		return nil, fmt.Errorf("derive %s: %w", path, err)
	}
	log.Wallet.Debug().Stringer("path", path).Msg("Derived key")
	return key, nil
}

// Zero wipes the master key. The wallet must not be used afterwards.
func (w *Wallet) Zero() {
	w.master.Zero()
}

// AccountPath returns m/44'/coinType'/account'.
func AccountPath(coinType, account uint32) (hdkey.Path, error) {
	coin, err := hdkey.NewChildNumber(coinType, true)
	if err != nil {
		return nil, fmt.Errorf("coin type: %w", err)
	}
	acct, err := hdkey.NewChildNumber(account, true)
	if err != nil {
		return nil, fmt.Errorf("account: %w", err)
	}
	return hdkey.Path{hdkey.Hardened(PurposeBIP44), coin, acct}, nil
}

// BIP44Path returns m/44'/coinType'/account'/change/index.
func BIP44Path(coinType, account, change, index uint32) (hdkey.Path, error) {
	if change != ChangeExternal && change != ChangeInternal {
		return nil, fmt.Errorf("%w: %d", ErrInvalidChange, change)
	}
	path, err := AccountPath(coinType, account)
	if err != nil {
		return nil, err
	}
	idx, err := hdkey.NewChildNumber(index, false)
	if err != nil {
		return nil, fmt.Errorf("index: %w", err)
	}
	return append(path, hdkey.Normal(change), idx), nil
}
