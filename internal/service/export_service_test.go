package service

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/schedulemanager/internal/db"
	"github.com/xuri/excelize/v2"
)

func TestExportMonthWorkbook(t *testing.T) {
	entries := []db.Schedule{
		{ID: 1, EmployeeName: "张三", Department: "技术部", WorkDate: "2025-06-01", ShiftType: "早班 (08:00-16:00)"},
		{ID: 2, EmployeeName: "李四", Department: "销售部", WorkDate: "2025-06-03", ShiftType: "晚班 (00:00-08:00)"},
	}
	grid := BuildMonthGrid(2025, time.June, entries, NewColorRegistry())

	data, err := ExportMonth(grid)
	if err != nil {
		t.Fatalf("ExportMonth returned error: %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("failed to open exported workbook: %v", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) != 1 || sheets[0] != "2025年6月" {
		t.Fatalf("unexpected sheets %v", sheets)
	}

	header, _ := f.GetCellValue("2025年6月", "A2")
	if header != "周日" {
		t.Fatalf("expected 周日 header, got %q", header)
	}

	// 2025-06-01 是周日，位于第一行第一列
	first, _ := f.GetCellValue("2025年6月", "A3")
	if !strings.HasPrefix(first, "1") || !strings.Contains(first, "张三(技术部)") {
		t.Fatalf("unexpected first day cell %q", first)
	}
	third, _ := f.GetCellValue("2025年6月", "C3")
	if !strings.Contains(third, "李四(销售部)") || !strings.Contains(third, "晚班") {
		t.Fatalf("unexpected third day cell %q", third)
	}

	rows, _ := f.GetRows("2025年6月")
	if len(rows) != 2+grid.Rows {
		t.Fatalf("expected %d rows, got %d", 2+grid.Rows, len(rows))
	}
}

func TestExportListWorkbook(t *testing.T) {
	rows := []ListRow{
		{Schedule: db.Schedule{ID: 1, EmployeeName: "张三", Department: "技术部", Position: "工程师", WorkDate: "2025-06-01", ShiftType: "早班", Remarks: "备注"}, Color: Palette[0]},
		{Schedule: db.Schedule{ID: 2, EmployeeName: "李四", Department: "销售部", Position: "销售", WorkDate: "2025-06-02", ShiftType: "中班"}, Color: Palette[1]},
	}

	data, err := ExportList(rows)
	if err != nil {
		t.Fatalf("ExportList returned error: %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("failed to open exported workbook: %v", err)
	}
	defer f.Close()

	got, err := f.GetRows("排班列表")
	if err != nil {
		t.Fatalf("GetRows returned error: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected header plus 2 rows, got %d", len(got))
	}
	if strings.Join(got[0], ",") != strings.Join(listHeaders, ",") {
		t.Fatalf("unexpected header %v", got[0])
	}
	if got[1][0] != "张三" || got[1][5] != "备注" || got[2][3] != "2025-06-02" {
		t.Fatalf("unexpected data rows %v", got[1:])
	}
}
