package cli

import (
	"github.com/spf13/cobra"
)

var version = "dev"

func SetVersion(v string) {
	version = v
}

var envFile string

var rootCmd = &cobra.Command{
	Use:   "tutor",
	Short: "tutor — placement preparation notes, study cards and narration",
	Long: `tutor runs the placement-preparation pipeline from the command line.

A query is classified, answered with Markdown study notes and paired with an SVG
study card and a narration script. Provider settings are read from the
environment (LLM_PROVIDER, LLM_API_KEY, LLM_MODEL, ...) and an optional .env file.`,
	SilenceUsage: true,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the tutor version",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Println("tutor " + version)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file to load before reading the environment")
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(askCmd)
	rootCmd.AddCommand(topicsCmd)
	rootCmd.AddCommand(renderCmd)
}
