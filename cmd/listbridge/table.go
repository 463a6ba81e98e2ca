package main

import (
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// column is one table column. The zero Align uses go-pretty defaults.
type column struct {
	Title string
	Align text.Align
}

// renderTable draws rows under cols. Short rows are padded, extra cells dropped.
func renderTable(cols []column, rows []table.Row) string {
	if len(cols) == 0 {
		return ""
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)

	header := make(table.Row, len(cols))
	configs := make([]table.ColumnConfig, len(cols))
	for i, c := range cols {
		header[i] = c.Title
		configs[i] = table.ColumnConfig{Number: i + 1, Align: c.Align, AlignHeader: text.AlignLeft}
	}
	tw.AppendHeader(header)
	tw.SetColumnConfigs(configs)

	for _, row := range rows {
		r := make(table.Row, len(cols))
		copy(r, row)
		for i := len(row); i < len(cols); i++ {
			r[i] = ""
		}
		tw.AppendRow(r)
	}
	return tw.Render()
}
