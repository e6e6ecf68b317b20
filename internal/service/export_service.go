package service

import (
	"fmt"
	"log"
	"strconv"

	"github.com/xuri/excelize/v2"
)

var weekdayHeaders = []string{"周日", "周一", "周二", "周三", "周四", "周五", "周六"}

var listHeaders = []string{"员工姓名", "部门", "职位", "工作日期", "班次类型", "备注"}

const (
	weekendColor  = "#FF0000"
	gridLineColor = "#E0E0E0"
)

// MonthSheetName 月历工作表名称，例如 2025年6月
func MonthSheetName(grid MonthGrid) string {
	return fmt.Sprintf("%d年%d月", grid.Year, int(grid.Month))
}

// ExportMonth 将月历网格导出为 xlsx：第 1 行标题，第 2 行星期，之后每个日历行占一行。
func ExportMonth(grid MonthGrid) ([]byte, error) {
	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			log.Printf("[EXPORT] close workbook: %v", err)
		}
	}()

	sheet := MonthSheetName(grid)
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	if err := f.SetCellValue(sheet, "A1", sheet+"排班表"); err != nil {
		return nil, err
	}
	if err := f.MergeCell(sheet, "A1", "G1"); err != nil {
		return nil, err
	}
	if titleStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 14},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	}); err == nil {
		_ = f.SetCellStyle(sheet, "A1", "A1", titleStyle)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#F5F5F5"}, Pattern: 1},
		Border:    gridBorder(),
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return nil, fmt.Errorf("header style: %w", err)
	}
	for col, label := range weekdayHeaders {
		cell, _ := excelize.CoordinatesToCellName(col+1, 2)
		if err := f.SetCellValue(sheet, cell, label); err != nil {
			return nil, err
		}
	}
	_ = f.SetCellStyle(sheet, "A2", "G2", headerStyle)
	_ = f.SetColWidth(sheet, "A", "G", 22)

	styles := make(map[string]int)
	cellStyle := func(background string) (int, error) {
		if id, ok := styles[background]; ok {
			return id, nil
		}
		style := &excelize.Style{
			Border:    gridBorder(),
			Alignment: &excelize.Alignment{Vertical: "top", WrapText: true},
		}
		if background != "" {
			style.Fill = excelize.Fill{Type: "pattern", Color: []string{background}, Pattern: 1}
		}
		id, err := f.NewStyle(style)
		if err != nil {
			return 0, err
		}
		styles[background] = id
		return id, nil
	}

	for r, row := range grid.Cells {
		sheetRow := r + 3
		_ = f.SetRowHeight(sheet, sheetRow, 90)

		for c, day := range row {
			cell, _ := excelize.CoordinatesToCellName(c+1, sheetRow)

			background := ""
			if day != nil {
				background = day.Background
				if err := f.SetCellRichText(sheet, cell, dayRichText(day)); err != nil {
					return nil, fmt.Errorf("write %s: %w", cell, err)
				}
			}

			id, err := cellStyle(background)
			if err != nil {
				return nil, fmt.Errorf("cell style: %w", err)
			}
			if err := f.SetCellStyle(sheet, cell, cell, id); err != nil {
				return nil, err
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// ExportList 导出列表视图，列顺序与界面一致
func ExportList(rows []ListRow) ([]byte, error) {
	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			log.Printf("[EXPORT] close workbook: %v", err)
		}
	}()

	const sheet = "排班列表"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	header := make([]interface{}, len(listHeaders))
	for i, label := range listHeaders {
		header[i] = label
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return nil, err
	}
	if headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E0E0E0"}, Pattern: 1},
	}); err == nil {
		_ = f.SetCellStyle(sheet, "A1", "F1", headerStyle)
	}

	styles := make(map[string]int)
	for i, row := range rows {
		line := strconv.Itoa(i + 2)
		values := []interface{}{row.EmployeeName, row.Department, row.Position, row.WorkDate, row.ShiftType, row.Remarks}
		if err := f.SetSheetRow(sheet, "A"+line, &values); err != nil {
			return nil, err
		}

		if row.Color == "" {
			continue
		}
		id, ok := styles[row.Color]
		if !ok {
			var err error
			id, err = f.NewStyle(&excelize.Style{Fill: excelize.Fill{Type: "pattern", Color: []string{row.Color}, Pattern: 1}})
			if err != nil {
				return nil, fmt.Errorf("row style: %w", err)
			}
			styles[row.Color] = id
		}
		// 姓名、部门、职位三列着色
		if err := f.SetCellStyle(sheet, "A"+line, "C"+line, id); err != nil {
			return nil, err
		}
	}
	_ = f.SetColWidth(sheet, "A", "F", 16)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func dayRichText(day *DayCell) []excelize.RichTextRun {
	dayFont := &excelize.Font{Bold: true}
	if day.Weekend {
		dayFont.Color = weekendColor
	}

	runs := []excelize.RichTextRun{{Text: strconv.Itoa(day.Day), Font: dayFont}}
	for _, entry := range day.Entries {
		runs = append(runs, excelize.RichTextRun{
			Text: fmt.Sprintf("\n%s(%s)\n%s", entry.EmployeeName, entry.Department, entry.ShiftType),
		})
	}
	return runs
}

func gridBorder() []excelize.Border {
	return []excelize.Border{
		{Type: "top", Color: gridLineColor, Style: 1},
		{Type: "bottom", Color: gridLineColor, Style: 1},
		{Type: "left", Color: gridLineColor, Style: 1},
		{Type: "right", Color: gridLineColor, Style: 1},
	}
}
