package service

import (
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/schedulemanager/internal/db"
	"github.com/schedulemanager/internal/metrics"
	"gorm.io/gorm"
)

// Workspace 当前登录账户可用的全部组件，只能在 Session.Do 回调内使用。
type Workspace struct {
	Schedules *ScheduleService
	Colors    *ColorRegistry
	Editor    *RecordEditor
	now       func() time.Time
}

// ShiftOption 班次及其表单展示文本
type ShiftOption struct {
	db.CustomShift
	Label string `json:"label"`
	Fuzzy bool   `json:"fuzzy"`
}

// Session 持有唯一打开的排班库连接。切换账户时先关闭旧连接再打开新连接，
// 所有读写都在同一把锁内串行执行。
type Session struct {
	mu       sync.Mutex
	accounts *AccountService
	open     func(path string) (*gorm.DB, error)
	now      func() time.Time

	username string
	token    string
	store    *gorm.DB
	ws       *Workspace
}

// NewSession 构造尚未登录的会话
func NewSession(accounts *AccountService) *Session {
	return &Session{accounts: accounts, open: db.OpenSchedule, now: time.Now}
}

// Accounts 返回账户服务
func (s *Session) Accounts() *AccountService {
	return s.accounts
}

// Login 校验账户后切换到其排班库，返回本次登录的令牌。
// 颜色分配与表单默认值随切换重置。
func (s *Session) Login(username, password string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	username = strings.TrimSpace(username)
	path, err := s.accounts.Authenticate(username, password)
	if err != nil {
		return "", err
	}

	if err := s.closeLocked(); err != nil {
		log.Printf("[SESSION] close previous store: %v", err)
	}

	store, err := s.open(path)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}

	schedules := NewScheduleService(store)
	s.store = store
	s.username = username
	s.token = uuid.NewString()
	s.ws = &Workspace{
		Schedules: schedules,
		Colors:    NewColorRegistry(),
		Editor:    NewRecordEditor(schedules, EditorDefaults{}),
		now:       s.now,
	}
	metrics.SessionOpened()

	log.Printf("[SESSION] %q opened %s", username, path)
	return s.token, nil
}

// Logout 关闭当前排班库
func (s *Session) Logout() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closeLocked()
}

// Close 在进程退出时调用
func (s *Session) Close() error {
	return s.Logout()
}

// Current 返回当前登录的用户名与令牌
func (s *Session) Current() (string, string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.username, s.token, s.ws != nil
}

// Authorized 判断 cookie 中的用户名与令牌是否属于当前会话
func (s *Session) Authorized(username, token string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ws != nil && username == s.username && token != "" && token == s.token
}

// Do 在会话锁内执行 fn，未登录时返回 ErrNoActiveSession
func (s *Session) Do(fn func(ws *Workspace) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.ws == nil {
		return ErrNoActiveSession
	}
	return fn(s.ws)
}

// DeleteAccount 验证密码后删除账户；删除的是当前账户时先关闭其排班库。
func (s *Session) DeleteAccount(username, password string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	account, err := s.accounts.VerifyPassword(username, password)
	if err != nil {
		return err
	}

	if s.ws != nil && s.username == account.Username {
		if err := s.closeLocked(); err != nil {
			log.Printf("[SESSION] close store before delete: %v", err)
		}
	}

	return s.accounts.Delete(account.Username)
}

func (s *Session) closeLocked() error {
	if s.store == nil {
		return nil
	}

	err := db.Close(s.store)
	log.Printf("[SESSION] %q closed", s.username)

	s.store = nil
	s.ws = nil
	s.username = ""
	s.token = ""
	metrics.SessionClosed()
	return err
}

// Today 返回会话时钟下的当天零点
func (ws *Workspace) Today() time.Time {
	return normalizeToDate(ws.now())
}

// Shifts 返回全部班次及其展示文本
func (ws *Workspace) Shifts() ([]ShiftOption, error) {
	shifts, err := ws.Schedules.ListShifts()
	if err != nil {
		return nil, err
	}

	options := make([]ShiftOption, 0, len(shifts))
	for _, shift := range shifts {
		options = append(options, ShiftOption{CustomShift: shift, Label: shift.Label(), Fuzzy: shift.Fuzzy()})
	}
	return options, nil
}

// MonthView 生成月历：先按姓名顺序登记本月员工颜色，再投影网格
func (ws *Workspace) MonthView(year int, month time.Month) (MonthGrid, error) {
	r := MonthRange(year, month)

	names, err := ws.Schedules.DistinctEmployees(r)
	if err != nil {
		return MonthGrid{}, err
	}
	ws.Colors.Seed(names)

	entries, err := ws.Schedules.QueryEntries(EntryQuery{Range: r})
	if err != nil {
		return MonthGrid{}, err
	}

	return BuildMonthGrid(year, month, entries, ws.Colors), nil
}

// List 列表视图查询
func (ws *Workspace) List(filter ListFilter) ([]ListRow, error) {
	return FilterEntries(ws.Schedules, ws.Colors, filter, ws.Today())
}

// NewRecordForm 新建表单，date 为空时使用今天
func (ws *Workspace) NewRecordForm(date *time.Time) (RecordForm, error) {
	shifts, err := ws.Shifts()
	if err != nil {
		return RecordForm{}, err
	}

	labels := make([]string, 0, len(shifts))
	for _, shift := range shifts {
		labels = append(labels, shift.Label)
	}

	day := ws.Today()
	if date != nil {
		day = *date
	}
	return ws.Editor.NewForm(day, labels), nil
}
