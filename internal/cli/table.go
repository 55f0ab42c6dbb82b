package cli

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/trinitycontents/reportgen/internal/pipeline"
)

// renderTally renders the final batch summary as a terminal table.
func renderTally(result pipeline.Result, outputDir string) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)

	tw.AppendHeader(table.Row{"Batch Complete", ""})
	tw.AppendRow(table.Row{"Total claims", fmt.Sprintf("%d", result.Total)})
	tw.AppendRow(table.Row{"Reports generated", fmt.Sprintf("%d", result.Succeeded)})
	tw.AppendRow(table.Row{"Rows skipped", fmt.Sprintf("%d", len(result.Failures))})
	tw.AppendRow(table.Row{"Output folder", outputDir})

	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignLeft, AlignHeader: text.AlignLeft},
		{Number: 2, Align: text.AlignRight, AlignHeader: text.AlignLeft},
	})

	return tw.Render()
}
