// Command qswallet serves and maintains a local quantum-safe wallet.
//
// @title        Quantum-safe wallet API
// @version      1.0
// @description  Local key management and encrypted storage for a quantum-safe wallet.
// @BasePath     /
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCommand().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func rootCommand() *cobra.Command {
	c := &cobra.Command{
		Use:           "qswallet",
		Short:         "Quantum-safe wallet key management",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	c.AddCommand(serveCommand(), statusCommand(), rekeyCommand())
	return c
}
