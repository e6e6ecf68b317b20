package handler

import "github.com/schedulemanager/internal/locale"

const (
	msgValidation = iota
	msgAuthDenied
	msgNoSession
	msgAccountNotFound
	msgEntryNotFound
	msgShiftNotFound
	msgDuplicateUsername
	msgDuplicateDataFile
	msgOperationFailed
	msgInvalidPayload
	msgInvalidID
	msgInvalidDate
	msgInvalidMonth
)

var messages = map[int][2]string{
	msgValidation:        {"Please check the highlighted fields", "请检查填写的字段"},
	msgAuthDenied:        {"Invalid username or password", "用户名或密码错误"},
	msgNoSession:         {"Please log in first", "请先登录"},
	msgAccountNotFound:   {"Account not found", "账户不存在"},
	msgEntryNotFound:     {"Schedule entry not found", "排班记录不存在"},
	msgShiftNotFound:     {"Shift not found", "班次不存在"},
	msgDuplicateUsername: {"Username already exists", "用户名已存在"},
	msgDuplicateDataFile: {"User data file already exists", "用户数据文件已存在"},
	msgOperationFailed:   {"Operation failed", "操作失败"},
	msgInvalidPayload:    {"Invalid request payload", "请求数据格式错误"},
	msgInvalidID:         {"Invalid id", "无效的记录编号"},
	msgInvalidDate:       {"Date must be YYYY-MM-DD", "日期格式应为 YYYY-MM-DD"},
	msgInvalidMonth:      {"Month must be YYYY-MM", "月份格式应为 YYYY-MM"},
}

func message(language string, key int) string {
	text := messages[key]
	return locale.Pick(language, text[0], text[1])
}
