package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Klingon-tech/klingnet-keys/internal/wallet"
	"github.com/Klingon-tech/klingnet-keys/pkg/mnemonic"
)

func mnemonicCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mnemonic",
		Short: "Generate, validate and complete BIP-39 mnemonics",
	}
	cmd.AddCommand(mnemonicNewCmd(a), mnemonicValidateCmd(a), mnemonicWordsCmd(a))
	return cmd
}

func mnemonicNewCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "new",
		Short: "Generate a new mnemonic (--bits, --lang)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			phrase, err := wallet.GenerateMnemonic(a.cfg.EntropyBits, a.lang)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), phrase)
			return nil
		},
	}
}

func mnemonicValidateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "validate [word...]",
		Short: "Check word count, words and checksum of a mnemonic",
		RunE: func(cmd *cobra.Command, args []string) error {
			phrase, err := readPhrase(cmd, args)
			if err != nil {
				return err
			}
			m, err := mnemonic.FromPhrase(phrase, a.lang)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "valid: %d words, %d bits of entropy, %s\n",
				m.WordCount(), len(m.Entropy())*8, m.Language())
			return nil
		},
	}
}

func mnemonicWordsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "words <prefix>",
		Short: "List wordlist entries starting with prefix",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			list, err := mnemonic.WordListFor(a.lang)
			if err != nil {
				return err
			}
			words := list.WordsByPrefix(args[0])
			if len(words) == 0 {
				return fmt.Errorf("no %s words start with %q", a.lang, args[0])
			}
			for _, w := range words {
				fmt.Fprintln(cmd.OutOrStdout(), w)
			}
			return nil
		},
	}
}
