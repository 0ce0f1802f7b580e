package cli

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	lgtable "github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/stickfigures/pkg/render/table"
)

// tableCommand creates the table command for printing the data table.
func (c *CLI) tableCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "table <source>",
		Short: "Print the data table",
		Long: `Print the loaded entities as a table with one row per entity and the
columns ID, X1, Y1, X2, Y2, X3, Y3.

The source is a local JSON file or an http(s) URL.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			coll, err := loadEntities(cmd.Context(), cmd.ErrOrStderr(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(table.Build(coll)))
			return nil
		},
	}
}

// tableHeight is the number of terminal lines renderTable uses for rows
// data rows: top border, header, separator and bottom border.
func tableHeight(rows int) int {
	return rows + 4
}

// renderTable draws t with a rounded border. The ID column is left-aligned
// and values are right-aligned.
func renderTable(t table.Table) string {
	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true).Padding(0, 1)
	idStyle := lipgloss.NewStyle().Foreground(colorCyan).Padding(0, 1)
	valueStyle := lipgloss.NewStyle().Foreground(colorWhite).Padding(0, 1).Align(lipgloss.Right)

	return lgtable.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers(t.Headers...).
		Rows(t.Rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == -1:
				return headerStyle
			case col == 0:
				return idStyle
			default:
				return valueStyle
			}
		}).
		Render()
}
