package service

import (
	"fmt"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/schedulemanager/internal/db"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var testDBSeq int64

func setupAccountService(t *testing.T) *AccountService {
	t.Helper()

	name := fmt.Sprintf("file:accounts-%d?mode=memory&cache=shared", atomic.AddInt64(&testDBSeq, 1))
	gdb, err := gorm.Open(sqlite.Open(name), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := gdb.AutoMigrate(&db.Account{}); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	t.Cleanup(func() { _ = db.Close(gdb) })

	return NewAccountService(gdb, t.TempDir())
}

func setupScheduleService(t *testing.T) *ScheduleService {
	t.Helper()

	gdb, err := db.OpenSchedule(filepath.Join(t.TempDir(), "user_test.db"))
	if err != nil {
		t.Fatalf("failed to open schedule store: %v", err)
	}
	t.Cleanup(func() { _ = db.Close(gdb) })

	return NewScheduleService(gdb)
}

func mustCreateEntry(t *testing.T, svc *ScheduleService, name, department, date string) *db.Schedule {
	t.Helper()

	entry, err := svc.CreateEntry(EntryFields{
		EmployeeName: name,
		Department:   department,
		Position:     "职员",
		WorkDate:     date,
		ShiftType:    "早班 (08:00-16:00)",
	})
	if err != nil {
		t.Fatalf("CreateEntry returned error: %v", err)
	}
	return entry
}

func mustDate(t *testing.T, value string) time.Time {
	t.Helper()

	parsed, err := ParseDate(value)
	if err != nil {
		t.Fatalf("invalid test date %q: %v", value, err)
	}
	return parsed
}
