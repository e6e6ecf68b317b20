package service

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/schedulemanager/internal/db"
	"github.com/schedulemanager/internal/metrics"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// bcrypt 只处理前 72 字节，更长的密码无法做到逐字节比较
const maxPasswordBytes = 72

// AccountService 管理共享账户库：注册、登录校验、删除与列表。
// 每个账户对应 dataDir 下独立的 user_<username>.db 文件。
type AccountService struct {
	db      *gorm.DB
	dataDir string
	now     func() time.Time
}

// NewAccountService 构造 AccountService，dataDir 为空时使用当前目录。
func NewAccountService(gdb *gorm.DB, dataDir string) *AccountService {
	return &AccountService{db: gdb, dataDir: strings.TrimSpace(dataDir), now: time.Now}
}

// DataFileFor 返回用户名对应的排班库路径。
func (s *AccountService) DataFileFor(username string) string {
	name := fmt.Sprintf("user_%s.db", username)
	if s.dataDir == "" {
		return name
	}
	return filepath.Join(s.dataDir, name)
}

// Register 创建账户及其空的排班库文件。password 为空表示无需密码登录。
func (s *AccountService) Register(username, password string) (*db.Account, error) {
	account, err := s.register(username, password)
	metrics.ObserveStore(metrics.StoreAccounts, "register", err)
	return account, err
}

func (s *AccountService) register(username, password string) (*db.Account, error) {
	username = strings.TrimSpace(username)
	if err := validateUsername(username); err != nil {
		return nil, err
	}
	if len(password) > maxPasswordBytes {
		return nil, validationError("password longer than 72 bytes", "password")
	}

	var count int64
	if err := s.db.Model(&db.Account{}).Where("username = ?", username).Count(&count).Error; err != nil {
		return nil, fmt.Errorf("check username: %w", err)
	}
	if count > 0 {
		return nil, ErrDuplicateUsername
	}

	dataFile := s.DataFileFor(username)
	if err := s.db.Model(&db.Account{}).Where("LOWER(db_file) = LOWER(?)", dataFile).Count(&count).Error; err != nil {
		return nil, fmt.Errorf("check data file: %w", err)
	}
	if count > 0 {
		return nil, fmt.Errorf("%w: %s", ErrDuplicateDataFile, dataFile)
	}

	created, err := createEmptyFile(dataFile)
	if err != nil {
		return nil, fmt.Errorf("%w: create data file: %v", ErrStorageUnavailable, err)
	}

	stored := ""
	if password != "" {
		hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			removeCreated(dataFile, created)
			return nil, fmt.Errorf("hash password: %w", err)
		}
		stored = string(hashed)
	}

	account := db.Account{
		Username:    username,
		Password:    stored,
		DBFile:      dataFile,
		HasPassword: password != "",
	}
	if err := s.db.Create(&account).Error; err != nil {
		removeCreated(dataFile, created)
		return nil, fmt.Errorf("create account: %w", err)
	}

	log.Printf("[ACCOUNT] registered %q (password=%t)", username, account.HasPassword)
	return &account, nil
}

// Authenticate 校验密码并返回排班库路径，成功后刷新 last_login。
func (s *AccountService) Authenticate(username, password string) (string, error) {
	path, err := s.authenticate(username, password)
	metrics.ObserveStore(metrics.StoreAccounts, "authenticate", err)
	return path, err
}

func (s *AccountService) authenticate(username, password string) (string, error) {
	account, err := s.VerifyPassword(username, password)
	if err != nil {
		return "", err
	}

	now := s.now()
	if err := s.db.Model(&db.Account{}).Where("id = ?", account.ID).Update("last_login", now).Error; err != nil {
		return "", fmt.Errorf("update last login: %w", err)
	}

	return account.DBFile, nil
}

// VerifyPassword 与 Authenticate 相同的校验规则，但不更新 last_login。
func (s *AccountService) VerifyPassword(username, password string) (*db.Account, error) {
	account, err := s.Get(username)
	if err != nil {
		return nil, err
	}

	if account.HasPassword && (password == "" || !passwordMatches(account.Password, password)) {
		return nil, ErrAuthDenied
	}

	return account, nil
}

// Get 根据用户名读取账户。
func (s *AccountService) Get(username string) (*db.Account, error) {
	var account db.Account
	if err := s.db.Where("username = ?", strings.TrimSpace(username)).First(&account).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, fmt.Errorf("get account: %w", err)
	}
	return &account, nil
}

// Delete 删除账户记录并尽力删除其数据文件。
// 文件删除失败只记录日志，不回滚账户记录。
func (s *AccountService) Delete(username string) error {
	err := s.delete(username)
	metrics.ObserveStore(metrics.StoreAccounts, "delete", err)
	return err
}

func (s *AccountService) delete(username string) error {
	account, err := s.Get(username)
	if err != nil {
		return err
	}

	if err := s.db.Delete(&db.Account{}, account.ID).Error; err != nil {
		return fmt.Errorf("delete account: %w", err)
	}

	if err := os.Remove(account.DBFile); err != nil && !os.IsNotExist(err) {
		log.Printf("[ACCOUNT] account %q deleted but data file %s was kept: %v", account.Username, account.DBFile, err)
		return nil
	}

	log.Printf("[ACCOUNT] deleted %q", account.Username)
	return nil
}

// ListUsernames 按字典序返回全部用户名。
func (s *AccountService) ListUsernames() ([]string, error) {
	var names []string
	if err := s.db.Model(&db.Account{}).Order("username ASC").Pluck("username", &names).Error; err != nil {
		return nil, fmt.Errorf("list usernames: %w", err)
	}
	return names, nil
}

// UpgradeLegacyPasswords 将旧版明文密码改写为 bcrypt 哈希，返回改写的账户数。
// 超过 72 字节的明文保持原样，仍按逐字节比较。
func (s *AccountService) UpgradeLegacyPasswords() (int, error) {
	var accounts []db.Account
	if err := s.db.Where("has_password = ? AND password NOT LIKE ?", true, "$2%").Find(&accounts).Error; err != nil {
		return 0, fmt.Errorf("list legacy passwords: %w", err)
	}

	upgraded := 0
	for _, account := range accounts {
		if account.Password == "" || len(account.Password) > maxPasswordBytes {
			log.Printf("[ACCOUNT] %q keeps its legacy password", account.Username)
			continue
		}

		hashed, err := bcrypt.GenerateFromPassword([]byte(account.Password), bcrypt.DefaultCost)
		if err != nil {
			return upgraded, fmt.Errorf("hash password for %q: %w", account.Username, err)
		}
		if err := s.db.Model(&db.Account{}).Where("id = ?", account.ID).Update("password", string(hashed)).Error; err != nil {
			return upgraded, fmt.Errorf("update password for %q: %w", account.Username, err)
		}
		upgraded++
	}

	metrics.ObserveStore(metrics.StoreAccounts, "upgrade_passwords", nil)
	return upgraded, nil
}

func validateUsername(username string) error {
	if username == "" {
		return validationError("username is required", "username")
	}
	if username == "." || username == ".." || strings.ContainsAny(username, `/\:*?"<>|`) {
		return validationError("username contains characters not allowed in file names", "username")
	}
	return nil
}

// 哈希以 $2 开头；其余视为旧版明文，逐字节比较
func passwordMatches(stored, supplied string) bool {
	if len(supplied) > maxPasswordBytes {
		return false
	}
	if strings.HasPrefix(stored, "$2") {
		return bcrypt.CompareHashAndPassword([]byte(stored), []byte(supplied)) == nil
	}
	return stored == supplied
}

func createEmptyFile(path string) (bool, error) {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return false, err
		}
	}

	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		if os.IsExist(err) {
			return false, nil
		}
		return false, err
	}
	return true, f.Close()
}

func removeCreated(path string, created bool) {
	if !created {
		return
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		log.Printf("[ACCOUNT] failed to clean up %s: %v", path, err)
	}
}
