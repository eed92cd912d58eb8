package cli

import (
	"fmt"
	"strings"

	"placement-tutor/internal/catalog"
	"placement-tutor/internal/platform/config"

	"github.com/spf13/cobra"
)

var topicsCmd = &cobra.Command{
	Use:   "topics [name]",
	Short: "List the placement topic catalog, or the subtopics of one topic",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		_ = config.Load(envFile)
		cat, err := catalog.Load(config.GetEnv("CATALOG_PATH", ""))
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		if len(args) == 1 {
			t, ok := cat.Find(args[0])
			if !ok {
				return fmt.Errorf("topic %q is not in the catalog", args[0])
			}
			for _, s := range t.Subtopics {
				fmt.Fprintln(out, s)
			}
			return nil
		}
		for _, t := range cat.Topics() {
			fmt.Fprintln(out, t.Name)
			if len(t.Subtopics) > 0 {
				fmt.Fprintln(out, "  "+strings.Join(t.Subtopics, ", "))
			}
		}
		return nil
	},
}
