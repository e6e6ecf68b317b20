package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/schedulemanager/internal/db"
	"github.com/schedulemanager/internal/metrics"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// DateFormat 是 work_date 的存储格式。
const DateFormat = "2006-01-02"

// DateRange 闭区间日期范围。
type DateRange struct {
	Start time.Time
	End   time.Time
}

func (r DateRange) bounds() (string, string) {
	return r.Start.Format(DateFormat), r.End.Format(DateFormat)
}

// EntryFields 已校验、规范化后的排班字段。
type EntryFields struct {
	EmployeeName string
	Department   string
	Position     string
	WorkDate     string
	ShiftType    string
	Remarks      string
}

// EntryQuery 列表查询条件，Search 与 Department 为空时不参与过滤。
type EntryQuery struct {
	Range      DateRange
	Search     string
	Department string
}

// ScheduleService 封装单个账户排班库的读写，每个方法是一次独立提交。
type ScheduleService struct {
	db *gorm.DB
}

// NewScheduleService 构造 ScheduleService
func NewScheduleService(gdb *gorm.DB) *ScheduleService {
	return &ScheduleService{db: gdb}
}

// ListDepartments 按名称返回全部部门
func (s *ScheduleService) ListDepartments() ([]db.Department, error) {
	var departments []db.Department
	if err := s.db.Order("name ASC").Find(&departments).Error; err != nil {
		return nil, fmt.Errorf("list departments: %w", err)
	}
	return departments, nil
}

// UpsertDepartment 按名称插入或替换部门
func (s *ScheduleService) UpsertDepartment(name string) (*db.Department, error) {
	department := db.Department{Name: name}
	err := s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoUpdates: clause.AssignmentColumns([]string{"name"}),
	}).Create(&department).Error
	metrics.ObserveStore(metrics.StoreSchedule, "upsert_department", err)
	if err != nil {
		return nil, fmt.Errorf("upsert department: %w", err)
	}

	if err := s.db.Where("name = ?", name).First(&department).Error; err != nil {
		return nil, fmt.Errorf("reload department: %w", err)
	}
	return &department, nil
}

// ListShifts 按班次名称返回全部班次
func (s *ScheduleService) ListShifts() ([]db.CustomShift, error) {
	var shifts []db.CustomShift
	if err := s.db.Order("shift_name ASC").Find(&shifts).Error; err != nil {
		return nil, fmt.Errorf("list shifts: %w", err)
	}
	return shifts, nil
}

// GetShift 根据名称读取班次
func (s *ScheduleService) GetShift(name string) (*db.CustomShift, error) {
	var shift db.CustomShift
	if err := s.db.Where("shift_name = ?", name).First(&shift).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrShiftNotFound
		}
		return nil, fmt.Errorf("get shift: %w", err)
	}
	return &shift, nil
}

// UpsertShift 按名称插入或替换班次起止时间
func (s *ScheduleService) UpsertShift(name, start, end string) (*db.CustomShift, error) {
	shift := db.CustomShift{ShiftName: name, StartTime: start, EndTime: end}
	err := s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "shift_name"}},
		DoUpdates: clause.AssignmentColumns([]string{"start_time", "end_time"}),
	}).Create(&shift).Error
	metrics.ObserveStore(metrics.StoreSchedule, "upsert_shift", err)
	if err != nil {
		return nil, fmt.Errorf("upsert shift: %w", err)
	}

	return s.GetShift(name)
}

// CreateEntry 新建排班记录
func (s *ScheduleService) CreateEntry(fields EntryFields) (*db.Schedule, error) {
	entry := scheduleFromFields(fields)
	err := s.db.Create(&entry).Error
	metrics.ObserveStore(metrics.StoreSchedule, "create_entry", err)
	if err != nil {
		return nil, fmt.Errorf("create entry: %w", err)
	}
	return &entry, nil
}

// GetEntry 根据 ID 读取排班记录
func (s *ScheduleService) GetEntry(id uint) (*db.Schedule, error) {
	var entry db.Schedule
	if err := s.db.First(&entry, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEntryNotFound
		}
		return nil, fmt.Errorf("get entry: %w", err)
	}
	return &entry, nil
}

// UpdateEntry 覆盖指定记录的全部字段
func (s *ScheduleService) UpdateEntry(id uint, fields EntryFields) (*db.Schedule, error) {
	existing, err := s.GetEntry(id)
	if err != nil {
		return nil, err
	}

	updated := scheduleFromFields(fields)
	updated.ID = existing.ID

	err = s.db.Save(&updated).Error
	metrics.ObserveStore(metrics.StoreSchedule, "update_entry", err)
	if err != nil {
		return nil, fmt.Errorf("update entry: %w", err)
	}
	return &updated, nil
}

// DeleteEntry 删除指定记录
func (s *ScheduleService) DeleteEntry(id uint) error {
	result := s.db.Delete(&db.Schedule{}, id)
	metrics.ObserveStore(metrics.StoreSchedule, "delete_entry", result.Error)
	if result.Error != nil {
		return fmt.Errorf("delete entry: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrEntryNotFound
	}
	return nil
}

// QueryEntries 按日期闭区间、姓名/部门关键字与部门精确值过滤，
// 结果按 (work_date, department, employee_name) 排序。
func (s *ScheduleService) QueryEntries(q EntryQuery) ([]db.Schedule, error) {
	start, end := q.Range.bounds()
	query := s.db.Model(&db.Schedule{}).Where("work_date BETWEEN ? AND ?", start, end)

	if search := strings.TrimSpace(q.Search); search != "" {
		like := likePattern(search)
		// SQLite 的 LIKE 只对 ASCII 忽略大小写，其余字符按原样比较
		query = query.Where(`(employee_name LIKE ? ESCAPE '\' OR department LIKE ? ESCAPE '\')`, like, like)
	}
	if department := strings.TrimSpace(q.Department); department != "" {
		query = query.Where("department = ?", department)
	}

	var entries []db.Schedule
	if err := query.Order("work_date ASC, department ASC, employee_name ASC, id ASC").Find(&entries).Error; err != nil {
		return nil, fmt.Errorf("query entries: %w", err)
	}
	return entries, nil
}

// EntriesOn 返回某一天的记录，按部门、姓名排序
func (s *ScheduleService) EntriesOn(date time.Time) ([]db.Schedule, error) {
	return s.QueryEntries(EntryQuery{Range: DateRange{Start: date, End: date}})
}

// DistinctEmployees 返回区间内出现过的员工姓名，按字典序
func (s *ScheduleService) DistinctEmployees(r DateRange) ([]string, error) {
	start, end := r.bounds()

	var names []string
	if err := s.db.Model(&db.Schedule{}).
		Where("work_date BETWEEN ? AND ?", start, end).
		Distinct().
		Order("employee_name ASC").
		Pluck("employee_name", &names).Error; err != nil {
		return nil, fmt.Errorf("distinct employees: %w", err)
	}
	return names, nil
}

// UsedDepartments 返回排班记录中实际出现过的部门，用于列表过滤下拉框
func (s *ScheduleService) UsedDepartments() ([]string, error) {
	var departments []string
	if err := s.db.Model(&db.Schedule{}).
		Distinct().
		Order("department ASC").
		Pluck("department", &departments).Error; err != nil {
		return nil, fmt.Errorf("used departments: %w", err)
	}
	return departments, nil
}

func scheduleFromFields(fields EntryFields) db.Schedule {
	return db.Schedule{
		EmployeeName: fields.EmployeeName,
		Department:   fields.Department,
		Position:     fields.Position,
		WorkDate:     fields.WorkDate,
		ShiftType:    fields.ShiftType,
		Remarks:      fields.Remarks,
	}
}

func likePattern(search string) string {
	replacer := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + replacer.Replace(search) + "%"
}

// ParseDate 解析 YYYY-MM-DD，返回本地时区零点。
func ParseDate(value string) (time.Time, error) {
	return time.ParseInLocation(DateFormat, strings.TrimSpace(value), time.Local)
}

func normalizeToDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
