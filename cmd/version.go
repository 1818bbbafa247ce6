package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/perch-labs/vitelink/internal/build"
)

// NewVersionCmd returns the "version" subcommand.
func NewVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(*cobra.Command, []string) {
			fmt.Println("vitelink " + build.String())
		},
	}
}
