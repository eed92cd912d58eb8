package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"placement-tutor/internal/artifact"
	"placement-tutor/internal/render"

	"github.com/spf13/cobra"
)

var (
	renderMetadata string
	renderOutput   string
	renderTopic    string
	renderDataURI  bool
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render a study card from a metadata JSON file",
	Long: `render draws the SVG study card for a metadata file shaped like
{"title", "subtitle", "category", "keyConcepts", "codeSnippet", "interviewTip"}.
Without --metadata the default card for --topic is rendered.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		meta := render.DefaultMetadata(renderTopic)
		if renderMetadata != "" {
			data, err := os.ReadFile(renderMetadata)
			if err != nil {
				return fmt.Errorf("reading metadata: %w", err)
			}
			var m render.ImageMetadata
			if err := json.Unmarshal(data, &m); err != nil {
				return fmt.Errorf("parsing metadata: %w", err)
			}
			meta = m.Normalize(renderTopic)
		}

		svg := render.Render(meta)
		if renderDataURI {
			svg = []byte(artifact.DataURI(render.ContentType, svg))
		}
		if renderOutput == "" || renderOutput == "-" {
			_, err := cmd.OutOrStdout().Write(svg)
			return err
		}
		if err := os.WriteFile(renderOutput, svg, 0o644); err != nil {
			return fmt.Errorf("writing card: %w", err)
		}
		cmd.Printf("wrote %s (%d bytes)\n", renderOutput, len(svg))
		return nil
	},
}

func init() {
	renderCmd.Flags().StringVarP(&renderMetadata, "metadata", "m", "", "path to metadata JSON")
	renderCmd.Flags().StringVarP(&renderOutput, "output", "o", "", "output file (default stdout)")
	renderCmd.Flags().StringVar(&renderTopic, "topic", "Placement Preparation", "topic used for defaults")
	renderCmd.Flags().BoolVar(&renderDataURI, "data-uri", false, "print a data URI instead of raw SVG")
}
