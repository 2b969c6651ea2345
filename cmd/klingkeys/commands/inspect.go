package commands

import (
	"encoding/hex"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Klingon-tech/klingnet-keys/pkg/hdkey"
)

func inspectCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <xprv>",
		Short: "Decode an extended private key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			k, err := hdkey.ParseExtendedKey(args[0])
			if err != nil {
				return err
			}
			defer k.Zero()

			parent := k.ParentFingerprint()
			fp := k.Fingerprint()
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "version:            0x%08x (%s)\n", k.Version(), versionName(k.Version()))
			fmt.Fprintf(out, "depth:              %d\n", k.Depth())
			fmt.Fprintf(out, "child number:       %s\n", k.ChildNumber())
			fmt.Fprintf(out, "parent fingerprint: %s\n", hex.EncodeToString(parent[:]))
			fmt.Fprintf(out, "fingerprint:        %s\n", hex.EncodeToString(fp[:]))
			fmt.Fprintf(out, "public key:         %s\n", hex.EncodeToString(k.PublicKeyBytes()))
			fmt.Fprintf(out, "xpub:               %s\n", k.PublicString())
			return nil
		},
	}
}

func versionName(v uint32) string {
	switch v {
	case hdkey.VersionMainnetPrivate:
		return "mainnet"
	case hdkey.VersionTestnetPrivate:
		return "testnet"
	default:
		return "unknown"
	}
}
