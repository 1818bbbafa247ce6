package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "vitelink",
	Short: "Serve a Vite-built frontend with manifest-resolved asset references",
	Long: `vitelink serves the output of a Vite production build. It loads the build
manifest once at startup and renders pages whose script and stylesheet tags
point at the hashed asset filenames. In dev-server mode it proxies to Vite
instead.`,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(NewServeCmd())
	rootCmd.AddCommand(NewVersionCmd())
}
