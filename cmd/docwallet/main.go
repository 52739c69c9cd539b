// @title        DocuChain wallet session API
// @version      1.0
// @description  Local control API over the wallet session tracker and the account wallet multiplexer.
// @host         localhost:8080
// @BasePath     /
package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:           "docwallet",
	Short:         "DocuChain wallet session daemon and tools",
	SilenceUsage:  true,
	SilenceErrors: false,
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}
