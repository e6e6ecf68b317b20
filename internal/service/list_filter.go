package service

import (
	"time"

	"github.com/schedulemanager/internal/db"
)

// ListFilter 列表视图的过滤条件，日期为空时按 today 前后各一个月补齐。
type ListFilter struct {
	Start      *time.Time
	End        *time.Time
	Search     string
	Department string
}

// ListRow 列表中的一行，附带员工颜色。
type ListRow struct {
	db.Schedule
	Color string `json:"color"`
}

// Resolve 组合出最终的查询条件，各条件之间为 AND 关系
func (f ListFilter) Resolve(today time.Time) EntryQuery {
	today = normalizeToDate(today)

	start := today.AddDate(0, -1, 0)
	if f.Start != nil {
		start = normalizeToDate(*f.Start)
	}
	end := today.AddDate(0, 1, 0)
	if f.End != nil {
		end = normalizeToDate(*f.End)
	}

	return EntryQuery{
		Range:      DateRange{Start: start, End: end},
		Search:     f.Search,
		Department: f.Department,
	}
}

// FilterEntries 执行列表查询并为每行着色
func FilterEntries(store *ScheduleService, colors *ColorRegistry, filter ListFilter, today time.Time) ([]ListRow, error) {
	entries, err := store.QueryEntries(filter.Resolve(today))
	if err != nil {
		return nil, err
	}

	rows := make([]ListRow, 0, len(entries))
	for _, entry := range entries {
		rows = append(rows, ListRow{Schedule: entry, Color: colors.ColorFor(entry.EmployeeName)})
	}
	return rows, nil
}
