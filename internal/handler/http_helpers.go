package handler

import (
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/schedulemanager/internal/service"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"error": message})
}

func bindJSON(c *gin.Context, dst interface{}, message string) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		respondError(c, http.StatusBadRequest, message)
		return false
	}
	return true
}

// bindOptionalJSON 与 bindJSON 相同，但允许请求体为空
func bindOptionalJSON(c *gin.Context, dst interface{}, message string) bool {
	if c.Request.Body == nil {
		return true
	}
	if err := c.ShouldBindJSON(dst); err != nil && !errors.Is(err, io.EOF) {
		respondError(c, http.StatusBadRequest, message)
		return false
	}
	return true
}

func parseUintParam(c *gin.Context, key string) (uint, error) {
	raw := c.Param(key)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid %s", key)
	}
	return uint(id), nil
}

// parseOptionalDate 解析 YYYY-MM-DD，空值返回 nil
func parseOptionalDate(raw string) (*time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	parsed, err := service.ParseDate(raw)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}

// parseMonth 解析 YYYY-MM，空值时使用 today 所在月份
func parseMonth(raw string, today time.Time) (int, time.Month, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return today.Year(), today.Month(), nil
	}
	parsed, err := time.ParseInLocation("2006-01", raw, time.Local)
	if err != nil {
		return 0, 0, err
	}
	return parsed.Year(), parsed.Month(), nil
}

func sendWorkbook(c *gin.Context, filename string, data []byte) {
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q; filename*=UTF-8''%s", "export.xlsx", url.PathEscape(filename)))
	c.Data(http.StatusOK, xlsxContentType, data)
}

// handleServiceError 将服务层错误映射为 HTTP 状态码与本地化提示
func handleServiceError(c *gin.Context, err error) {
	language := requestLanguage(c)

	var validation *service.ValidationError
	switch {
	case errors.As(err, &validation):
		c.JSON(http.StatusBadRequest, gin.H{
			"error":  message(language, msgValidation),
			"fields": validation.Fields,
			"reason": validation.Reason,
		})
	case errors.Is(err, service.ErrValidationFailed):
		respondError(c, http.StatusBadRequest, message(language, msgValidation))
	case errors.Is(err, service.ErrAuthDenied):
		respondError(c, http.StatusUnauthorized, message(language, msgAuthDenied))
	case errors.Is(err, service.ErrNoActiveSession):
		respondError(c, http.StatusUnauthorized, message(language, msgNoSession))
	case errors.Is(err, service.ErrAccountNotFound):
		respondError(c, http.StatusNotFound, message(language, msgAccountNotFound))
	case errors.Is(err, service.ErrEntryNotFound):
		respondError(c, http.StatusNotFound, message(language, msgEntryNotFound))
	case errors.Is(err, service.ErrShiftNotFound):
		respondError(c, http.StatusNotFound, message(language, msgShiftNotFound))
	case errors.Is(err, service.ErrDuplicateUsername):
		respondError(c, http.StatusConflict, message(language, msgDuplicateUsername))
	case errors.Is(err, service.ErrDuplicateDataFile):
		respondError(c, http.StatusConflict, message(language, msgDuplicateDataFile))
	default:
		log.Printf("[HTTP] %s %s: %v", c.Request.Method, c.FullPath(), err)
		respondError(c, http.StatusInternalServerError, message(language, msgOperationFailed))
	}
}
