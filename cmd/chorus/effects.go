package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/lixenwraith/chorus/audio"
)

var effectsCmd = &cobra.Command{
	Use:   "effects",
	Short: "List the preloaded sound effects",
	Args:  cobra.NoArgs,
	RunE:  runEffects,
}

func init() {
	rootCmd.AddCommand(effectsCmd)
}

func runEffects(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tARCHIVE KEY")
	for _, e := range audio.Effects() {
		fmt.Fprintf(w, "%s\t%s\n", e, e.Key())
	}
	return w.Flush()
}
