package service

import (
	"regexp"
	"strings"
	"time"

	"github.com/schedulemanager/internal/db"
)

// 新建表单在没有上次选择时默认选中的班次关键字
var fullDayShiftKeywords = []string{"全天班", "full-day", "full day"}

var clockPattern = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d$|^24:00$`)

// EditorDefaults 新建记录时沿用的上次部门与班次，仅在新建成功后更新。
type EditorDefaults struct {
	LastDepartment string `json:"last_department"`
	LastShiftType  string `json:"last_shift_type"`
}

// RecordForm 表单原始字段，WorkDate 为 YYYY-MM-DD。
type RecordForm struct {
	EmployeeName string `json:"employee_name"`
	Department   string `json:"department"`
	Position     string `json:"position"`
	WorkDate     string `json:"work_date"`
	ShiftType    string `json:"shift_type"`
	Remarks      string `json:"remarks"`
}

// RecordEditor 负责表单预填、校验和写入，默认值由调用方显式传入。
type RecordEditor struct {
	store    *ScheduleService
	defaults EditorDefaults
}

// NewRecordEditor 构造 RecordEditor
func NewRecordEditor(store *ScheduleService, defaults EditorDefaults) *RecordEditor {
	return &RecordEditor{store: store, defaults: defaults}
}

// Defaults 返回当前记住的默认值
func (e *RecordEditor) Defaults() EditorDefaults {
	return e.defaults
}

// NewForm 生成新建表单：优先沿用上次的部门与班次，否则默认选中全天班。
func (e *RecordEditor) NewForm(date time.Time, shiftLabels []string) RecordForm {
	form := RecordForm{
		WorkDate:   date.Format(DateFormat),
		Department: e.defaults.LastDepartment,
		ShiftType:  e.defaults.LastShiftType,
	}

	if form.ShiftType == "" {
		form.ShiftType = fullDayShift(shiftLabels)
	}
	return form
}

// EditForm 用已有记录填充表单，不影响默认值
func (e *RecordEditor) EditForm(entry db.Schedule) RecordForm {
	return RecordForm{
		EmployeeName: entry.EmployeeName,
		Department:   entry.Department,
		Position:     entry.Position,
		WorkDate:     entry.WorkDate,
		ShiftType:    entry.ShiftType,
		Remarks:      entry.Remarks,
	}
}

// Validate 去除首尾空白，检查必填字段和日期；其余内容原样保存
func (e *RecordEditor) Validate(form RecordForm) (EntryFields, error) {
	fields := EntryFields{
		EmployeeName: strings.TrimSpace(form.EmployeeName),
		Department:   strings.TrimSpace(form.Department),
		Position:     strings.TrimSpace(form.Position),
		ShiftType:    strings.TrimSpace(form.ShiftType),
		Remarks:      strings.TrimSpace(form.Remarks),
	}

	var missing []string
	if fields.EmployeeName == "" {
		missing = append(missing, "employee_name")
	}
	if fields.Department == "" {
		missing = append(missing, "department")
	}
	if fields.Position == "" {
		missing = append(missing, "position")
	}
	if len(missing) > 0 {
		return EntryFields{}, validationError("required field is empty", missing...)
	}

	date, err := ParseDate(form.WorkDate)
	if err != nil {
		return EntryFields{}, validationError("work date must be YYYY-MM-DD", "work_date")
	}
	fields.WorkDate = date.Format(DateFormat)

	return fields, nil
}

// Create 校验并新建记录，成功后记住本次的部门与班次
func (e *RecordEditor) Create(form RecordForm) (*db.Schedule, error) {
	fields, err := e.Validate(form)
	if err != nil {
		return nil, err
	}

	entry, err := e.store.CreateEntry(fields)
	if err != nil {
		return nil, err
	}

	e.defaults = EditorDefaults{LastDepartment: fields.Department, LastShiftType: fields.ShiftType}
	return entry, nil
}

// Update 校验并更新记录
func (e *RecordEditor) Update(id uint, form RecordForm) (*db.Schedule, error) {
	fields, err := e.Validate(form)
	if err != nil {
		return nil, err
	}
	return e.store.UpdateEntry(id, fields)
}

// AddDepartment 新增自定义部门，已存在时直接返回
func (e *RecordEditor) AddDepartment(name string) (*db.Department, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, validationError("department name is required", "name")
	}
	return e.store.UpsertDepartment(name)
}

// AddShift 新增或替换班次；起止时间可留空表示模糊班次
func (e *RecordEditor) AddShift(name, start, end string) (*db.CustomShift, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, validationError("shift name is required", "shift_name")
	}

	start = strings.TrimSpace(start)
	end = strings.TrimSpace(end)
	var invalid []string
	if start != "" && !clockPattern.MatchString(start) {
		invalid = append(invalid, "start_time")
	}
	if end != "" && !clockPattern.MatchString(end) {
		invalid = append(invalid, "end_time")
	}
	if len(invalid) > 0 {
		return nil, validationError("time must be HH:MM", invalid...)
	}

	return e.store.UpsertShift(name, start, end)
}

func fullDayShift(labels []string) string {
	for _, label := range labels {
		lower := strings.ToLower(label)
		for _, keyword := range fullDayShiftKeywords {
			if strings.Contains(lower, keyword) {
				return label
			}
		}
	}
	return ""
}
