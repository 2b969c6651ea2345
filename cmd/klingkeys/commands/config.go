package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/Klingon-tech/klingnet-keys/config"
)

func configCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or initialize the configuration file",
	}
	cmd.AddCommand(configShowCmd(a), configInitCmd(a))
	return cmd
}

func configShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the resolved configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c := a.cfg
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "network = %s\n", c.Network)
			fmt.Fprintf(out, "language = %s\n", c.Language)
			fmt.Fprintf(out, "mnemonic.bits = %d\n", c.EntropyBits)
			fmt.Fprintf(out, "coin_type = %d\n", c.CoinType)
			fmt.Fprintf(out, "path = %s\n", c.Path)
			fmt.Fprintf(out, "log.level = %s\n", c.Log.Level)
			fmt.Fprintf(out, "log.file = %s\n", c.Log.File)
			fmt.Fprintf(out, "log.json = %t\n", c.Log.JSON)
			return nil
		},
	}
}

func configInitCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Write a default configuration file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := a.flags.Config
			if path == "" {
				path = config.DefaultConfigFile()
			}
			if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
				return fmt.Errorf("create config dir: %w", err)
			}
			if err := config.WriteDefaultConfig(path, a.cfg.Network); err != nil {
				return fmt.Errorf("write config: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
			return nil
		},
	}
}
