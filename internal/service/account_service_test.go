package service

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/schedulemanager/internal/db"
)

func TestAccountServiceRegisterCreatesDataFile(t *testing.T) {
	svc := setupAccountService(t)

	account, err := svc.Register("  alice ", "secret")
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if account.Username != "alice" {
		t.Fatalf("expected trimmed username, got %q", account.Username)
	}
	if !account.HasPassword {
		t.Fatal("expected has_password to be true")
	}
	if account.Password == "secret" || !strings.HasPrefix(account.Password, "$2") {
		t.Fatalf("expected bcrypt hash to be stored, got %q", account.Password)
	}
	if filepath.Base(account.DBFile) != "user_alice.db" {
		t.Fatalf("unexpected data file %q", account.DBFile)
	}
	if _, err := os.Stat(account.DBFile); err != nil {
		t.Fatalf("expected data file to exist: %v", err)
	}

	open, err := svc.Register("bob", "")
	if err != nil {
		t.Fatalf("Register without password returned error: %v", err)
	}
	if open.HasPassword || open.Password != "" {
		t.Fatalf("expected passwordless account, got %+v", open)
	}
}

func TestAccountServiceRegisterValidation(t *testing.T) {
	svc := setupAccountService(t)

	for _, name := range []string{"", "   ", "../evil", "a/b", ".."} {
		if _, err := svc.Register(name, ""); !errors.Is(err, ErrValidationFailed) {
			t.Fatalf("Register(%q) expected ErrValidationFailed, got %v", name, err)
		}
	}

	if _, err := svc.Register("carol", strings.Repeat("x", 73)); !errors.Is(err, ErrValidationFailed) {
		t.Fatalf("expected long password to be rejected, got %v", err)
	}

	names, err := svc.ListUsernames()
	if err != nil {
		t.Fatalf("ListUsernames returned error: %v", err)
	}
	if len(names) != 0 {
		t.Fatalf("expected no accounts after failed registrations, got %v", names)
	}
}

func TestAccountServiceRegisterDuplicates(t *testing.T) {
	svc := setupAccountService(t)

	if _, err := svc.Register("Dave", ""); err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if _, err := svc.Register("Dave", "other"); !errors.Is(err, ErrDuplicateUsername) {
		t.Fatalf("expected ErrDuplicateUsername, got %v", err)
	}
	if _, err := svc.Register("dave", ""); !errors.Is(err, ErrDuplicateDataFile) {
		t.Fatalf("expected ErrDuplicateDataFile for case-folded file name, got %v", err)
	}
}

func TestAccountServiceRegisterReusesStrayFile(t *testing.T) {
	svc := setupAccountService(t)

	path := svc.DataFileFor("erin")
	if err := os.WriteFile(path, nil, 0o644); err != nil {
		t.Fatalf("failed to write stray file: %v", err)
	}

	account, err := svc.Register("erin", "")
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if account.DBFile != path {
		t.Fatalf("expected %q, got %q", path, account.DBFile)
	}
}

func TestAccountServiceAuthenticate(t *testing.T) {
	svc := setupAccountService(t)
	fixed := time.Date(2025, 6, 1, 9, 30, 0, 0, time.Local)
	svc.now = func() time.Time { return fixed }

	if _, err := svc.Register("frank", "Pa55"); err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if _, err := svc.Register("grace", ""); err != nil {
		t.Fatalf("Register returned error: %v", err)
	}

	cases := []struct {
		username string
		password string
		want     error
	}{
		{username: "frank", password: "Pa55"},
		{username: "frank", password: "pa55", want: ErrAuthDenied},
		{username: "frank", password: "", want: ErrAuthDenied},
		{username: "frank", password: "Pa55 ", want: ErrAuthDenied},
		{username: "grace", password: ""},
		{username: "grace", password: "anything"},
		{username: "nobody", password: "", want: ErrAccountNotFound},
	}

	for _, tc := range cases {
		path, err := svc.Authenticate(tc.username, tc.password)
		if tc.want != nil {
			if !errors.Is(err, tc.want) {
				t.Fatalf("Authenticate(%q, %q) expected %v, got %v", tc.username, tc.password, tc.want, err)
			}
			continue
		}
		if err != nil {
			t.Fatalf("Authenticate(%q, %q) returned error: %v", tc.username, tc.password, err)
		}
		if path != svc.DataFileFor(tc.username) {
			t.Fatalf("unexpected data path %q", path)
		}
	}

	account, err := svc.Get("frank")
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if account.LastLogin == nil || !account.LastLogin.Equal(fixed) {
		t.Fatalf("expected last_login %v, got %v", fixed, account.LastLogin)
	}
}

func TestAccountServiceLegacyPlaintextPasswords(t *testing.T) {
	svc := setupAccountService(t)

	legacy := db.Account{Username: "henry", Password: "OldPass", DBFile: svc.DataFileFor("henry"), HasPassword: true}
	if err := svc.db.Create(&legacy).Error; err != nil {
		t.Fatalf("failed to insert legacy account: %v", err)
	}

	if _, err := svc.Authenticate("henry", "OldPass"); err != nil {
		t.Fatalf("legacy plaintext password should authenticate: %v", err)
	}
	if _, err := svc.Authenticate("henry", "oldpass"); !errors.Is(err, ErrAuthDenied) {
		t.Fatalf("expected case-sensitive comparison, got %v", err)
	}

	upgraded, err := svc.UpgradeLegacyPasswords()
	if err != nil {
		t.Fatalf("UpgradeLegacyPasswords returned error: %v", err)
	}
	if upgraded != 1 {
		t.Fatalf("expected 1 upgraded account, got %d", upgraded)
	}

	account, _ := svc.Get("henry")
	if !strings.HasPrefix(account.Password, "$2") {
		t.Fatalf("expected hashed password after upgrade, got %q", account.Password)
	}
	if _, err := svc.Authenticate("henry", "OldPass"); err != nil {
		t.Fatalf("upgraded password should still authenticate: %v", err)
	}

	again, err := svc.UpgradeLegacyPasswords()
	if err != nil || again != 0 {
		t.Fatalf("second upgrade should be a no-op, got %d, %v", again, err)
	}
}

func TestAccountServiceDelete(t *testing.T) {
	svc := setupAccountService(t)

	account, err := svc.Register("ivy", "")
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}

	if err := svc.Delete("ivy"); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if _, err := os.Stat(account.DBFile); !os.IsNotExist(err) {
		t.Fatalf("expected data file to be removed, stat err=%v", err)
	}
	if _, err := svc.Get("ivy"); !errors.Is(err, ErrAccountNotFound) {
		t.Fatalf("expected ErrAccountNotFound, got %v", err)
	}
	if err := svc.Delete("ivy"); !errors.Is(err, ErrAccountNotFound) {
		t.Fatalf("expected ErrAccountNotFound on second delete, got %v", err)
	}

	// 文件已被手动删除时仍然可以删除账户
	other, _ := svc.Register("jack", "")
	if err := os.Remove(other.DBFile); err != nil {
		t.Fatalf("failed to remove file: %v", err)
	}
	if err := svc.Delete("jack"); err != nil {
		t.Fatalf("Delete with missing file returned error: %v", err)
	}
}

func TestAccountServiceListUsernamesSorted(t *testing.T) {
	svc := setupAccountService(t)

	for _, name := range []string{"zoe", "adam", "mia"} {
		if _, err := svc.Register(name, ""); err != nil {
			t.Fatalf("Register(%q) returned error: %v", name, err)
		}
	}

	names, err := svc.ListUsernames()
	if err != nil {
		t.Fatalf("ListUsernames returned error: %v", err)
	}
	want := []string{"adam", "mia", "zoe"}
	if strings.Join(names, ",") != strings.Join(want, ",") {
		t.Fatalf("expected %v, got %v", want, names)
	}
}
