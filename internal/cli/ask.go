package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"placement-tutor/internal/app"
	"placement-tutor/internal/orchestrator"
	"placement-tutor/internal/platform/config"
	"placement-tutor/internal/platform/logger"

	"github.com/spf13/cobra"
)

var (
	askDuration int
	askJSON     bool
)

var askCmd = &cobra.Command{
	Use:   "ask <query>",
	Short: "Run one query through the pipeline",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		_ = config.Load(envFile)
		settings := config.FromEnv()
		log := logger.NewWithWriter(cmd.ErrOrStderr(), settings.LogLevel, "text")

		tutor, err := app.New(cmd.Context(), settings, log, nil)
		if err != nil {
			return err
		}
		defer tutor.Close()

		st, err := tutor.Service.Invoke(cmd.Context(), strings.Join(args, " "), askDuration)
		if err != nil {
			return fmt.Errorf("ask: %w", err)
		}
		if askJSON {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(st)
		}
		printState(cmd, st)
		return nil
	},
}

func printState(cmd *cobra.Command, st *orchestrator.PipelineState) {
	out := cmd.OutOrStdout()
	if st.Rejected {
		fmt.Fprintln(out, st.RejectionReason)
		return
	}
	fmt.Fprintln(out, st.Markdown)
	fmt.Fprintln(out)
	if st.ImageURL != "" {
		fmt.Fprintf(out, "Study card: %s\n", truncate(st.ImageURL, 60))
	}
	if st.AudioText != "" {
		fmt.Fprintln(out, "Narration:")
		fmt.Fprintln(out, st.AudioText)
	}
	for _, f := range st.Errors {
		cmd.PrintErrf("warning: %s: %s\n", f.Stage, f.Message)
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

func init() {
	askCmd.Flags().IntVarP(&askDuration, "duration", "d", orchestrator.DefaultDuration, "reading time in minutes (2-5)")
	askCmd.Flags().BoolVar(&askJSON, "json", false, "print the full pipeline state as JSON")
}
