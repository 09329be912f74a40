package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"setlist/internal/assemble"
	"setlist/internal/songs"
)

// column describes one table column; Right aligns numeric cells.
type column struct {
	Title string
	Right bool
}

func renderTable(columns []column, rows [][]string) string {
	if len(columns) == 0 {
		return ""
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)

	header := make(table.Row, len(columns))
	configs := make([]table.ColumnConfig, len(columns))
	for i, col := range columns {
		header[i] = col.Title
		align := text.AlignLeft
		if col.Right {
			align = text.AlignRight
		}
		configs[i] = table.ColumnConfig{Number: i + 1, Align: align, AlignHeader: text.AlignLeft}
	}
	tw.AppendHeader(header)
	tw.SetColumnConfigs(configs)

	for _, row := range rows {
		r := make(table.Row, len(columns))
		for i := range r {
			r[i] = ""
			if i < len(row) {
				r[i] = row[i]
			}
		}
		tw.AppendRow(r)
	}
	return tw.Render()
}

// renderSummaryTable lists resolved tracks with paths shown relative to the
// library when they live inside it.
func renderSummaryTable(summary assemble.Summary) string {
	rows := make([][]string, 0, len(summary.Tracks))
	for i, track := range summary.Tracks {
		file := track.Paths.TrackFile
		if rel, err := filepath.Rel(summary.LibraryDir, file); err == nil && !strings.HasPrefix(rel, "..") {
			file = rel
		}
		rows = append(rows, []string{
			fmt.Sprintf("%d", i+1),
			track.Request.Name,
			track.Request.Artist,
			songs.FormatDuration(track.Request.Duration),
			file,
		})
	}
	return renderTable([]column{
		{Title: "#", Right: true},
		{Title: "Song"},
		{Title: "Artist"},
		{Title: "Length", Right: true},
		{Title: "File"},
	}, rows)
}
