package db

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// DB 是共享账户库（users.db）的全局连接，进程启动时初始化一次。
var DB *gorm.DB

// DefaultAccountsPath 为账户库的默认文件名。
const DefaultAccountsPath = "users.db"

// Init 打开账户库并确保 users 表存在，可重复调用。
// databasePath 为空时回退到 users.db。
func Init(databasePath string) error {
	gdb, err := open(databasePath, DefaultAccountsPath)
	if err != nil {
		return err
	}

	if err := gdb.AutoMigrate(&Account{}); err != nil {
		_ = Close(gdb)
		return fmt.Errorf("migrate accounts: %w", err)
	}

	if DB != nil && DB != gdb {
		_ = Close(DB)
	}
	DB = gdb
	return nil
}

// OpenSchedule 打开某个账户的排班库，建表并写入默认部门与班次。
// 调用方独占返回的连接，切换账户前必须 Close。
func OpenSchedule(path string) (*gorm.DB, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("schedule database path is required")
	}

	gdb, err := open(path, "")
	if err != nil {
		return nil, err
	}

	if err := gdb.AutoMigrate(&Department{}, &CustomShift{}, &Schedule{}); err != nil {
		_ = Close(gdb)
		return nil, fmt.Errorf("migrate schedule store: %w", err)
	}

	if err := SeedScheduleDefaults(gdb); err != nil {
		_ = Close(gdb)
		return nil, err
	}

	return gdb, nil
}

// Close 关闭底层 sql.DB。
func Close(gdb *gorm.DB) error {
	if gdb == nil {
		return nil
	}

	sqlDB, err := gdb.DB()
	if err != nil {
		return fmt.Errorf("get underlying sql.DB: %w", err)
	}
	return sqlDB.Close()
}

func open(path, fallback string) (*gorm.DB, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		path = fallback
	}

	if err := ensureParentDir(path); err != nil {
		return nil, err
	}

	gdb, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, err
	}

	// 单写者模型，一个连接即可，也避免内存库在多个连接间不可见
	if sqlDB, err := gdb.DB(); err == nil {
		sqlDB.SetMaxOpenConns(1)
	}

	return gdb, nil
}

func ensureParentDir(path string) error {
	if strings.HasPrefix(path, "file:") {
		return nil
	}

	dir := filepath.Dir(path)
	if dir == "." || dir == "" {
		return nil
	}

	info, err := os.Stat(dir)
	if err == nil {
		if !info.IsDir() {
			return errors.New("database path parent is not a directory")
		}
		return nil
	}

	if os.IsNotExist(err) {
		return os.MkdirAll(dir, 0o755)
	}

	return err
}
