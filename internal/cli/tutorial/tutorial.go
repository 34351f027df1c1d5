// Package tutorial prints the madboard workflow guide
package tutorial

import (
	_ "embed"

	"github.com/spf13/cobra"

	"github.com/madhankd/madhanboard-v2/internal/cli/styles"
)

//go:embed tutorial.md
var tutorialContent string

// renderWidth is the wrap width of the rendered guide
const renderWidth = 80

// TutorialCmd returns the tutorial command
func TutorialCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tutorial",
		Short: "Show the madboard workflow guide",
		Long: `Show a short guide to boards, lists and items.

Use --raw for the plain markdown, e.g. to feed it to another tool.`,
		Run: func(cmd *cobra.Command, args []string) {
			raw, _ := cmd.Flags().GetBool("raw")
			if raw {
				cmd.Print(tutorialContent)
				return
			}
			cmd.Print(styles.RenderMarkdown(tutorialContent, renderWidth))
		},
	}

	cmd.Flags().Bool("raw", false, "Print the markdown source")

	return cmd
}
