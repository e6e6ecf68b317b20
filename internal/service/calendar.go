package service

import (
	"cmp"
	"slices"
	"time"

	"github.com/schedulemanager/internal/db"
)

// CellEntry 日历格中的一条排班
type CellEntry struct {
	ID           uint   `json:"id"`
	EmployeeName string `json:"employee_name"`
	Department   string `json:"department"`
	ShiftType    string `json:"shift_type"`
}

// DayCell 日历中的一天；Background 为当天第一条记录所属员工的颜色，无记录时为空。
type DayCell struct {
	Day        int         `json:"day"`
	Date       string      `json:"date"`
	Weekday    int         `json:"weekday"`
	Weekend    bool        `json:"weekend"`
	Background string      `json:"background,omitempty"`
	Entries    []CellEntry `json:"entries"`
}

// MonthGrid rows×7 的月历网格，列 0 为周日；不属于本月的格子为 nil。
type MonthGrid struct {
	Year         int          `json:"year"`
	Month        time.Month   `json:"month"`
	FirstWeekday int          `json:"first_weekday"`
	Days         int          `json:"days"`
	Rows         int          `json:"rows"`
	Cells        [][]*DayCell `json:"cells"`
}

// MonthRange 返回某月第一天到最后一天的闭区间
func MonthRange(year int, month time.Month) DateRange {
	start := time.Date(year, month, 1, 0, 0, 0, 0, time.Local)
	return DateRange{Start: start, End: start.AddDate(0, 1, -1)}
}

// DaysIn 返回某月天数
func DaysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// BuildMonthGrid 将一个月的排班记录投影为月历网格。
// colors 应事先用 DistinctEmployees 的结果 Seed，未登记的姓名会在遍历时补充分配。
func BuildMonthGrid(year int, month time.Month, entries []db.Schedule, colors *ColorRegistry) MonthGrid {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	offset := int(first.Weekday())
	days := DaysIn(year, month)
	rows := (offset + days + 6) / 7

	grid := MonthGrid{
		Year:         first.Year(),
		Month:        first.Month(),
		FirstWeekday: offset,
		Days:         days,
		Rows:         rows,
		Cells:        make([][]*DayCell, rows),
	}
	for i := range grid.Cells {
		grid.Cells[i] = make([]*DayCell, 7)
	}

	byDate := make(map[string][]db.Schedule)
	for _, entry := range entries {
		byDate[entry.WorkDate] = append(byDate[entry.WorkDate], entry)
	}

	for day := 1; day <= days; day++ {
		date := first.AddDate(0, 0, day-1)
		position := offset + day - 1
		column := position % 7

		cell := &DayCell{
			Day:     day,
			Date:    date.Format(DateFormat),
			Weekday: column,
			Weekend: column == 0 || column == 6,
			Entries: []CellEntry{},
		}

		dayEntries := byDate[cell.Date]
		slices.SortStableFunc(dayEntries, func(a, b db.Schedule) int {
			if diff := cmp.Compare(a.Department, b.Department); diff != 0 {
				return diff
			}
			return cmp.Compare(a.EmployeeName, b.EmployeeName)
		})

		for _, entry := range dayEntries {
			color := colors.ColorFor(entry.EmployeeName)
			if cell.Background == "" {
				cell.Background = color
			}
			cell.Entries = append(cell.Entries, CellEntry{
				ID:           entry.ID,
				EmployeeName: entry.EmployeeName,
				Department:   entry.Department,
				ShiftType:    entry.ShiftType,
			})
		}

		grid.Cells[position/7][column] = cell
	}

	return grid
}

// Day 返回指定日期的格子，越界返回 nil
func (g MonthGrid) Day(day int) *DayCell {
	if day < 1 || day > g.Days {
		return nil
	}
	position := g.FirstWeekday + day - 1
	return g.Cells[position/7][position%7]
}
