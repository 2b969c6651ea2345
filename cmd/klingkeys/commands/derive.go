package commands

import (
	"encoding/hex"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/Klingon-tech/klingnet-keys/internal/log"
	"github.com/Klingon-tech/klingnet-keys/internal/wallet"
	"github.com/Klingon-tech/klingnet-keys/pkg/hdkey"
)

// maxDeriveCount caps a single derive invocation.
const maxDeriveCount = 10000

func deriveCmd(a *app) *cobra.Command {
	var (
		pass     passphraseFlags
		account  uint32
		change   uint32
		first    uint32
		count    uint32
		hardened bool
	)

	cmd := &cobra.Command{
		Use:   "derive [word...]",
		Short: "Derive child keys of a mnemonic",
		Long: `Derive count consecutive child keys starting at index --first.

Without --path the keys are BIP-44 leaves m/44'/<coin-type>'/<account>'/<change>/i.
With --path the keys are children of that path, hardened with --hardened.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if count == 0 || count > maxDeriveCount {
				return fmt.Errorf("--count must be in range [1, %d]", maxDeriveCount)
			}
			parent, err := a.cfg.DerivationPath()
			if err != nil {
				return err
			}
			if hardened && parent == nil {
				return fmt.Errorf("--hardened requires --path")
			}

			phrase, err := readPhrase(cmd, args)
			if err != nil {
				return err
			}
			passphrase, err := pass.resolve(cmd, a)
			if err != nil {
				return err
			}
			seed, err := wallet.SeedFromMnemonic(phrase, passphrase, a.lang)
			if err != nil {
				return err
			}

			w, err := wallet.NewWithVersion(seed[:], a.cfg.CoinType, a.cfg.KeyVersion())
			if err != nil {
				return err
			}
			defer w.Zero()

			var keys []*hdkey.ExtendedKey
			if parent == nil {
				if parent, err = wallet.BIP44Path(a.cfg.CoinType, account, change, 0); err != nil {
					return err
				}
				parent = parent[:len(parent)-1]
				keys, err = w.Keys(cmd.Context(), account, change, first, count)
			} else {
				var base *hdkey.ExtendedKey
				if base, err = w.DerivePath(parent); err != nil {
					return err
				}
				defer base.Zero()
				keys, err = base.DeriveRange(cmd.Context(), first, count, hardened)
			}
			if err != nil {
				return err
			}

			log.CLI.Debug().
				Stringer("parent", parent).
				Uint32("first", first).
				Int("count", len(keys)).
				Msg("Derived keys")

			out := cmd.OutOrStdout()
			for _, k := range keys {
				printKey(out, parent.Child(k.ChildNumber()), k)
			}
			return nil
		},
	}

	pass.bind(cmd)
	cmd.Flags().Uint32Var(&account, "account", 0, "BIP-44 account (ignored with --path)")
	cmd.Flags().Uint32Var(&change, "change", wallet.ChangeExternal, "BIP-44 chain: 0 external, 1 internal (ignored with --path)")
	cmd.Flags().Uint32Var(&first, "first", 0, "First child index")
	cmd.Flags().Uint32VarP(&count, "count", "n", 1, "Number of consecutive keys")
	cmd.Flags().BoolVar(&hardened, "hardened", false, "Derive hardened children of --path")
	return cmd
}

func printKey(w io.Writer, path hdkey.Path, k *hdkey.ExtendedKey) {
	fp := k.Fingerprint()
	fmt.Fprintf(w, "%s\n", path)
	fmt.Fprintf(w, "  xprv:        %s\n", k)
	fmt.Fprintf(w, "  xpub:        %s\n", k.PublicString())
	fmt.Fprintf(w, "  public key:  %s\n", hex.EncodeToString(k.PublicKeyBytes()))
	fmt.Fprintf(w, "  fingerprint: %s\n", hex.EncodeToString(fp[:]))
}
