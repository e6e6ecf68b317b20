package db

import (
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Department 部门，名称在单个账户库内唯一。
type Department struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"uniqueIndex;not null" json:"name"`
}

// TableName 固定表名 departments。
func (Department) TableName() string {
	return "departments"
}

// CustomShift 班次定义；StartTime/EndTime 均为空时表示模糊班次。
type CustomShift struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	ShiftName string `gorm:"uniqueIndex;not null" json:"shift_name"`
	StartTime string `gorm:"not null" json:"start_time"`
	EndTime   string `gorm:"not null" json:"end_time"`
}

// TableName 固定表名 custom_shifts。
func (CustomShift) TableName() string {
	return "custom_shifts"
}

// Fuzzy 表示班次没有固定起止时间。
func (s CustomShift) Fuzzy() bool {
	return s.StartTime == "" && s.EndTime == ""
}

// Label 返回表单中展示和写入 shift_type 的文本。
func (s CustomShift) Label() string {
	if s.Fuzzy() {
		return s.ShiftName
	}
	return fmt.Sprintf("%s (%s-%s)", s.ShiftName, s.StartTime, s.EndTime)
}

// Schedule 一条排班记录。Department 只是文本引用，不做外键约束；
// WorkDate 以 YYYY-MM-DD 字符串存储，便于区间比较。
type Schedule struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	EmployeeName string `gorm:"not null;index" json:"employee_name"`
	Department   string `gorm:"not null" json:"department"`
	Position     string `gorm:"not null" json:"position"`
	WorkDate     string `gorm:"not null;index" json:"work_date"`
	ShiftType    string `gorm:"not null" json:"shift_type"`
	Remarks      string `json:"remarks"`
}

// TableName 固定表名 schedules。
func (Schedule) TableName() string {
	return "schedules"
}

// DefaultDepartments 新库初始化时写入的部门。
var DefaultDepartments = []string{"销售部", "技术部", "人事部", "财务部", "市场部", "客服部"}

// DefaultShifts 新库初始化时写入的班次，最后两个为模糊班次。
var DefaultShifts = []CustomShift{
	{ShiftName: "早班", StartTime: "08:00", EndTime: "16:00"},
	{ShiftName: "中班", StartTime: "16:00", EndTime: "24:00"},
	{ShiftName: "晚班", StartTime: "00:00", EndTime: "08:00"},
	{ShiftName: "全天班", StartTime: "08:00", EndTime: "20:00"},
	{ShiftName: "早班(模糊)"},
	{ShiftName: "晚班(模糊)"},
}

// SeedScheduleDefaults 以“已存在则跳过”的方式写入默认部门与班次，不覆盖用户修改。
func SeedScheduleDefaults(gdb *gorm.DB) error {
	departments := make([]Department, 0, len(DefaultDepartments))
	for _, name := range DefaultDepartments {
		departments = append(departments, Department{Name: name})
	}
	if err := gdb.Clauses(clause.OnConflict{DoNothing: true}).Create(&departments).Error; err != nil {
		return fmt.Errorf("seed departments: %w", err)
	}

	shifts := make([]CustomShift, len(DefaultShifts))
	copy(shifts, DefaultShifts)
	if err := gdb.Clauses(clause.OnConflict{DoNothing: true}).Create(&shifts).Error; err != nil {
		return fmt.Errorf("seed shifts: %w", err)
	}

	return nil
}
