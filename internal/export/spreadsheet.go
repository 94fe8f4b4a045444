package export

import (
	"bytes"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/nerrad567/device-timeline/internal/device"
	"github.com/nerrad567/device-timeline/internal/timeline"
)

const (
	timelineSheet = "timeline"
	summarySheet  = "summary"
)

var timelineHeader = []any{"Year", "Name", "Category", "Period", "Description", "Notes", "Wiki URL"}

// RenderSpreadsheet writes the collection as an XLSX workbook with a
// timeline sheet (one row per device) and a summary sheet.
func (r *Renderer) RenderSpreadsheet(devices []device.Device) (out []byte, err error) {
	start := time.Now()
	defer func() { r.recorder.ObserveExport(FormatSpreadsheet, len(devices), time.Since(start), err) }()

	ordered := timeline.Sorted(devices, r.opts.SpreadsheetOrder)

	f := excelize.NewFile()
	defer f.Close() //nolint:errcheck // In-memory workbook

	if err := f.SetSheetName("Sheet1", timelineSheet); err != nil {
		return nil, fmt.Errorf("naming sheet: %w", err)
	}
	if _, err := f.NewSheet(summarySheet); err != nil {
		return nil, fmt.Errorf("creating summary sheet: %w", err)
	}

	if err := writeTimelineSheet(f, ordered); err != nil {
		return nil, err
	}
	if err := writeSummarySheet(f, timeline.Summary(ordered)); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("writing spreadsheet: %w", err)
	}
	return buf.Bytes(), nil
}

func writeTimelineSheet(f *excelize.File, devices []device.Device) error {
	if err := f.SetSheetRow(timelineSheet, "A1", &timelineHeader); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("creating header style: %w", err)
	}
	_ = f.SetCellStyle(timelineSheet, "A1", "G1", bold)
	_ = f.SetColWidth(timelineSheet, "B", "B", 32)
	_ = f.SetColWidth(timelineSheet, "D", "D", 16)
	_ = f.SetColWidth(timelineSheet, "E", "F", 48)

	for i, d := range devices {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("addressing row %d: %w", i+2, err)
		}
		row := []any{d.StartYear, d.Name, d.Category.Label(), d.Period(), d.Description, d.Notes, d.WikiURL}
		if err := f.SetSheetRow(timelineSheet, cell, &row); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	return nil
}

func writeSummarySheet(f *excelize.File, s timeline.Stats) error {
	rows := [][]any{
		{timeline.CountLabel(s.Total)},
		{},
		{"First year", s.FirstYear},
		{"Latest year", s.LatestYear},
		{"Still in use", s.InUse},
		{},
		{"Category", "Devices"},
	}
	for _, c := range device.Categories() {
		if n := s.ByCategory[c]; n > 0 {
			rows = append(rows, []any{c.Label(), n})
		}
	}

	for i, row := range rows {
		if len(row) == 0 {
			continue
		}
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow(summarySheet, cell, &row); err != nil {
			return fmt.Errorf("writing summary row %d: %w", i+1, err)
		}
	}
	_ = f.SetColWidth(summarySheet, "A", "A", 28)
	return nil
}
