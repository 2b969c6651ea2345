// klingkeys generates BIP-39 mnemonics and derives BIP-32/BIP-44 keys.
package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/Klingon-tech/klingnet-keys/cmd/klingkeys/commands"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := commands.Execute(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}
