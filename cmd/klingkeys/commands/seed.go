package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Klingon-tech/klingnet-keys/internal/wallet"
)

func seedCmd(a *app) *cobra.Command {
	var pass passphraseFlags
	cmd := &cobra.Command{
		Use:   "seed [word...]",
		Short: "Derive the 64-byte BIP-39 seed of a mnemonic",
		RunE: func(cmd *cobra.Command, args []string) error {
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
			fmt.Fprintln(cmd.OutOrStdout(), seed)
			return nil
		},
	}
	pass.bind(cmd)
	return cmd
}
