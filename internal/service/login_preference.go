package service

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// DefaultLoginConfigPath 登录偏好文件默认路径
const DefaultLoginConfigPath = "user_config.ini"

// LoginPreference 登录界面的预填信息。Password 仅在 Remember 为 true 时保存。
type LoginPreference struct {
	Username string `json:"username"`
	Password string `json:"password,omitempty"`
	Remember bool   `json:"remember"`
}

// LoginPreferenceStore 读写 INI 格式的登录偏好文件（[LOGIN] 段）。
type LoginPreferenceStore struct {
	path string
}

// NewLoginPreferenceStore 构造 LoginPreferenceStore，path 为空时使用 user_config.ini
func NewLoginPreferenceStore(path string) *LoginPreferenceStore {
	path = strings.TrimSpace(path)
	if path == "" {
		path = DefaultLoginConfigPath
	}
	return &LoginPreferenceStore{path: path}
}

// Path 返回偏好文件路径
func (s *LoginPreferenceStore) Path() string {
	return s.path
}

// Load 读取偏好，文件不存在时返回零值
func (s *LoginPreferenceStore) Load() (LoginPreference, error) {
	if _, err := os.Stat(s.path); err != nil {
		if os.IsNotExist(err) {
			return LoginPreference{}, nil
		}
		return LoginPreference{}, fmt.Errorf("stat login config: %w", err)
	}

	v := viper.New()
	v.SetConfigFile(s.path)
	v.SetConfigType("ini")
	if err := v.ReadInConfig(); err != nil {
		return LoginPreference{}, fmt.Errorf("read login config: %w", err)
	}

	pref := LoginPreference{
		Username: v.GetString("login.username"),
		Remember: v.GetBool("login.remember"),
	}
	if pref.Remember {
		pref.Password = v.GetString("login.password")
	}
	return pref, nil
}

// Save 总是保存用户名，仅在 remember 为 true 时保存密码
func (s *LoginPreferenceStore) Save(username, password string, remember bool) error {
	if !remember {
		password = ""
	}

	if dir := filepath.Dir(s.path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create login config dir: %w", err)
		}
	}

	v := viper.New()
	v.SetConfigType("ini")
	v.Set("login.username", username)
	v.Set("login.password", password)
	v.Set("login.remember", remember)

	if err := v.WriteConfigAs(s.path); err != nil {
		return fmt.Errorf("write login config: %w", err)
	}
	return nil
}
