// Package commands implements the klingkeys command tree.
package commands

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/Klingon-tech/klingnet-keys/config"
	"github.com/Klingon-tech/klingnet-keys/internal/log"
	"github.com/Klingon-tech/klingnet-keys/pkg/mnemonic"
)

// app carries the resolved configuration from the root pre-run hook to the
// subcommands.
type app struct {
	flags *config.Flags
	cfg   *config.Config
	lang  mnemonic.Language

	// readPassword reads a line without echo; replaced in tests.
	readPassword func(prompt string) ([]byte, error)
}

// NewRootCommand builds the klingkeys command tree.
func NewRootCommand() *cobra.Command {
	return newRootCommand(&app{readPassword: readTerminalPassword})
}

func newRootCommand(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:           "klingkeys",
		Short:         "BIP-39 mnemonics and BIP-32/BIP-44 key derivation",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.flags.Load()
			if err != nil {
				return err
			}
			if err := log.Init(cfg.Log.Level, cfg.Log.JSON, cfg.Log.File); err != nil {
				return fmt.Errorf("init logging: %w", err)
			}
			lang, err := cfg.MnemonicLanguage()
			if err != nil {
				return err
			}
			a.cfg, a.lang = cfg, lang

			log.CLI.Debug().
				Str("command", cmd.CommandPath()).
				Str("network", string(cfg.Network)).
				Stringer("language", lang).
				Msg("Running command")
			return nil
		},
	}

	a.flags = config.BindFlags(root.PersistentFlags())

	root.AddCommand(
		mnemonicCmd(a),
		seedCmd(a),
		deriveCmd(a),
		inspectCmd(a),
		configCmd(a),
	)
	return root
}

// Execute runs the root command and prints any error to stderr.
func Execute(ctx context.Context) error {
	root := NewRootCommand()
	err := root.ExecuteContext(ctx)
	if err != nil {
		fmt.Fprintf(root.ErrOrStderr(), "Error: %v\n", err)
	}
	return err
}

// readPhrase returns the mnemonic from the positional arguments, or reads
// one line from stdin when none are given so the phrase stays out of shell
// history.
func readPhrase(cmd *cobra.Command, args []string) (string, error) {
	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}
	line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", fmt.Errorf("read mnemonic from stdin: %w", err)
	}
	phrase := strings.TrimSpace(line)
	if phrase == "" {
		return "", fmt.Errorf("no mnemonic given")
	}
	return phrase, nil
}

// passphraseFlags are shared by every command that derives a seed.
type passphraseFlags struct {
	value  string
	prompt bool
}

func (p *passphraseFlags) bind(cmd *cobra.Command) {
	cmd.Flags().StringVar(&p.value, "passphrase", "", "BIP-39 passphrase (default: $"+config.PassphraseEnv+")")
	cmd.Flags().BoolVar(&p.prompt, "prompt", false, "Prompt for the BIP-39 passphrase without echo")
	cmd.MarkFlagsMutuallyExclusive("passphrase", "prompt")
}

// resolve picks the passphrase: --passphrase, then --prompt, then the
// environment, then empty.
func (p *passphraseFlags) resolve(cmd *cobra.Command, a *app) (string, error) {
	if cmd.Flags().Changed("passphrase") {
		return p.value, nil
	}
	if p.prompt {
		pass, err := a.readPassword("Enter passphrase: ")
		if err != nil {
			return "", fmt.Errorf("read passphrase: %w", err)
		}
		confirm, err := a.readPassword("Confirm passphrase: ")
		if err != nil {
			return "", fmt.Errorf("read passphrase: %w", err)
		}
		if string(pass) != string(confirm) {
			return "", fmt.Errorf("passphrases do not match")
		}
		return string(pass), nil
	}
	return os.Getenv(config.PassphraseEnv), nil
}

func readTerminalPassword(prompt string) ([]byte, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return nil, fmt.Errorf("stdin is not a terminal")
	}
	fmt.Fprint(os.Stderr, prompt)
	password, err := term.ReadPassword(fd)
	fmt.Fprintln(os.Stderr) // newline after hidden input
	if err != nil {
		return nil, err
	}
	return password, nil
}
