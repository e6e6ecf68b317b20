package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/schedulemanager/internal/service"
)

// ExportMonth 导出 month=YYYY-MM 的月历为 xlsx
func (a *API) ExportMonth(c *gin.Context) {
	var (
		data     []byte
		filename string
	)
	err := a.session.Do(func(ws *service.Workspace) error {
		year, month, err := parseMonth(c.Query("month"), ws.Today())
		if err != nil {
			return errInvalidMonth
		}
		grid, err := ws.MonthView(year, month)
		if err != nil {
			return err
		}
		data, err = service.ExportMonth(grid)
		filename = "排班表_" + service.MonthSheetName(grid) + ".xlsx"
		return err
	})
	if errors.Is(err, errInvalidMonth) {
		respondError(c, http.StatusBadRequest, message(requestLanguage(c), msgInvalidMonth))
		return
	}
	if err != nil {
		handleServiceError(c, err)
		return
	}
	sendWorkbook(c, filename, data)
}

// ExportList 按列表视图的过滤条件导出 xlsx
func (a *API) ExportList(c *gin.Context) {
	filter, ok := listFilterFromQuery(c)
	if !ok {
		return
	}

	var data []byte
	err := a.session.Do(func(ws *service.Workspace) error {
		rows, err := ws.List(filter)
		if err != nil {
			return err
		}
		data, err = service.ExportList(rows)
		return err
	})
	if err != nil {
		handleServiceError(c, err)
		return
	}
	sendWorkbook(c, "排班列表.xlsx", data)
}
