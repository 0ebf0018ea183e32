package cli

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/schematic/pkg/diagrams/catalog"
)

func (c *CLI) listCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the catalog diagrams",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			nameStyle := StyleHighlight.Width(18)
			typeStyle := lipgloss.NewStyle().Foreground(colorGray).Width(10)
			w := cmd.OutOrStdout()
			for _, d := range catalog.All {
				fmt.Fprintln(w, nameStyle.Render(d.Name)+typeStyle.Render(string(d.Type))+StyleDim.Render(d.Description))
			}
			return nil
		},
	}
}
