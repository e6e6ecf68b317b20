package service

import (
	"fmt"
	"testing"
	"time"

	"github.com/schedulemanager/internal/db"
)

func TestBuildMonthGridShape(t *testing.T) {
	cases := []struct {
		year   int
		month  time.Month
		offset int
		days   int
		rows   int
	}{
		{year: 2025, month: time.June, offset: 0, days: 30, rows: 5},
		{year: 2026, month: time.February, offset: 0, days: 28, rows: 4},
		{year: 2025, month: time.August, offset: 5, days: 31, rows: 6},
		{year: 2024, month: time.February, offset: 4, days: 29, rows: 5},
		{year: 2025, month: time.March, offset: 6, days: 31, rows: 6},
	}

	for _, tc := range cases {
		t.Run(fmt.Sprintf("%d-%02d", tc.year, tc.month), func(t *testing.T) {
			grid := BuildMonthGrid(tc.year, tc.month, nil, NewColorRegistry())
			if grid.FirstWeekday != tc.offset || grid.Days != tc.days || grid.Rows != tc.rows {
				t.Fatalf("got offset=%d days=%d rows=%d", grid.FirstWeekday, grid.Days, grid.Rows)
			}
			if len(grid.Cells) != tc.rows {
				t.Fatalf("expected %d rows of cells, got %d", tc.rows, len(grid.Cells))
			}

			seen := make(map[int]bool)
			for r, row := range grid.Cells {
				if len(row) != 7 {
					t.Fatalf("row %d has %d columns", r, len(row))
				}
				for c, cell := range row {
					if cell == nil {
						continue
					}
					if seen[cell.Day] {
						t.Fatalf("day %d appears twice", cell.Day)
					}
					seen[cell.Day] = true
					if c != (tc.offset+cell.Day-1)%7 || r != (tc.offset+cell.Day-1)/7 {
						t.Fatalf("day %d placed at (%d,%d)", cell.Day, r, c)
					}
					if cell.Weekend != (c == 0 || c == 6) {
						t.Fatalf("day %d weekend flag %t in column %d", cell.Day, cell.Weekend, c)
					}
				}
			}
			if len(seen) != tc.days {
				t.Fatalf("expected %d days, saw %d", tc.days, len(seen))
			}
		})
	}
}

func TestBuildMonthGridEntriesAndBackground(t *testing.T) {
	entries := []db.Schedule{
		{ID: 1, EmployeeName: "王五", Department: "销售部", WorkDate: "2025-06-10", ShiftType: "早班"},
		{ID: 2, EmployeeName: "李四", Department: "技术部", WorkDate: "2025-06-10", ShiftType: "晚班"},
		{ID: 3, EmployeeName: "王五", Department: "销售部", WorkDate: "2025-06-11", ShiftType: "中班"},
		{ID: 4, EmployeeName: "外月", Department: "技术部", WorkDate: "2025-07-01", ShiftType: "中班"},
	}

	colors := NewColorRegistry()
	colors.Seed([]string{"李四", "王五"})

	grid := BuildMonthGrid(2025, time.June, entries, colors)

	day10 := grid.Day(10)
	if day10 == nil || len(day10.Entries) != 2 {
		t.Fatalf("expected two entries on the 10th, got %+v", day10)
	}
	if day10.Entries[0].EmployeeName != "李四" {
		t.Fatalf("entries should be sorted by department, got %+v", day10.Entries)
	}
	if day10.Background != Palette[0] {
		t.Fatalf("background should follow first sorted entry, got %q", day10.Background)
	}

	day11 := grid.Day(11)
	if day11.Background != Palette[1] {
		t.Fatalf("expected 王五's color on the 11th, got %q", day11.Background)
	}

	if empty := grid.Day(12); empty.Background != "" || len(empty.Entries) != 0 {
		t.Fatalf("expected empty day, got %+v", empty)
	}
	if grid.Day(0) != nil || grid.Day(31) != nil {
		t.Fatal("out of range days should be nil")
	}

	for _, assignment := range colors.Legend() {
		if assignment.EmployeeName == "外月" {
			t.Fatal("entries outside the month should be ignored")
		}
	}
}

func TestColorRegistryAssignment(t *testing.T) {
	colors := NewColorRegistry()

	a := colors.ColorFor("A")
	b := colors.ColorFor("B")
	if colors.ColorFor("A") != a {
		t.Fatal("color should be stable for the same name")
	}
	c := colors.ColorFor("C")
	if a != Palette[0] || b != Palette[1] || c != Palette[2] {
		t.Fatalf("unexpected first-seen colors %s %s %s", a, b, c)
	}

	for i := 3; i < len(Palette); i++ {
		colors.ColorFor(fmt.Sprintf("N%d", i))
	}
	if wrapped := colors.ColorFor("thirteenth"); wrapped != Palette[0] {
		t.Fatalf("13th name should wrap to the first color, got %s", wrapped)
	}

	legend := colors.Legend()
	if len(legend) != len(Palette)+1 || legend[0].EmployeeName != "A" {
		t.Fatalf("unexpected legend %+v", legend)
	}

	colors.Reset()
	if colors.ColorFor("C") != Palette[0] {
		t.Fatal("reset should restart assignment")
	}
}

func TestColorRegistryCustomPalette(t *testing.T) {
	colors := NewColorRegistryWithPalette([]string{"#111111", "#222222"})
	colors.Seed([]string{"x", "y", "z"})
	if got := colors.ColorFor("z"); got != "#111111" {
		t.Fatalf("expected wrap on custom palette, got %s", got)
	}

	if fallback := NewColorRegistryWithPalette(nil); fallback.ColorFor("x") != Palette[0] {
		t.Fatal("empty palette should fall back to default")
	}
}
