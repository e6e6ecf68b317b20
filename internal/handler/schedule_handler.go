package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/schedulemanager/internal/db"
	"github.com/schedulemanager/internal/service"
)

var errInvalidMonth = errors.New("invalid month")

type departmentPayload struct {
	Name string `json:"name"`
}

type shiftPayload struct {
	ShiftName string `json:"shift_name"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

type calendarPayload struct {
	Grid   service.MonthGrid         `json:"grid"`
	Legend []service.ColorAssignment `json:"legend"`
}

type dayPayload struct {
	Date    string            `json:"date"`
	Entries []service.ListRow `json:"entries"`
}

type entryPayload struct {
	Entry *db.Schedule       `json:"entry"`
	Form  service.RecordForm `json:"form"`
}

// ListDepartments 返回部门列表
func (a *API) ListDepartments(c *gin.Context) {
	var departments []db.Department
	err := a.session.Do(func(ws *service.Workspace) error {
		var err error
		departments, err = ws.Schedules.ListDepartments()
		return err
	})
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, departments)
}

// CreateDepartment 新增自定义部门
func (a *API) CreateDepartment(c *gin.Context) {
	var payload departmentPayload
	if !bindJSON(c, &payload, message(requestLanguage(c), msgInvalidPayload)) {
		return
	}

	var department *db.Department
	err := a.session.Do(func(ws *service.Workspace) error {
		var err error
		department, err = ws.Editor.AddDepartment(payload.Name)
		return err
	})
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, department)
}

// ListUsedDepartments 返回排班记录中出现过的部门，供列表筛选使用
func (a *API) ListUsedDepartments(c *gin.Context) {
	var names []string
	err := a.session.Do(func(ws *service.Workspace) error {
		var err error
		names, err = ws.Schedules.UsedDepartments()
		return err
	})
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"departments": names})
}

// ListShifts 返回班次及其展示文本
func (a *API) ListShifts(c *gin.Context) {
	var shifts []service.ShiftOption
	err := a.session.Do(func(ws *service.Workspace) error {
		var err error
		shifts, err = ws.Shifts()
		return err
	})
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, shifts)
}

// CreateShift 新增或替换班次
func (a *API) CreateShift(c *gin.Context) {
	var payload shiftPayload
	if !bindJSON(c, &payload, message(requestLanguage(c), msgInvalidPayload)) {
		return
	}

	var shift *db.CustomShift
	err := a.session.Do(func(ws *service.Workspace) error {
		var err error
		shift, err = ws.Editor.AddShift(payload.ShiftName, payload.StartTime, payload.EndTime)
		return err
	})
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, service.ShiftOption{CustomShift: *shift, Label: shift.Label(), Fuzzy: shift.Fuzzy()})
}

// GetCalendar 返回 month=YYYY-MM 的月历网格与颜色图例，默认本月
func (a *API) GetCalendar(c *gin.Context) {
	var payload calendarPayload
	err := a.session.Do(func(ws *service.Workspace) error {
		year, month, err := parseMonth(c.Query("month"), ws.Today())
		if err != nil {
			return errInvalidMonth
		}
		grid, err := ws.MonthView(year, month)
		if err != nil {
			return err
		}
		payload = calendarPayload{Grid: grid, Legend: ws.Colors.Legend()}
		return nil
	})
	if errors.Is(err, errInvalidMonth) {
		respondError(c, http.StatusBadRequest, message(requestLanguage(c), msgInvalidMonth))
		return
	}
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, payload)
}

// GetCalendarDay 返回某天的全部记录
func (a *API) GetCalendarDay(c *gin.Context) {
	date, err := parseOptionalDate(c.Param("date"))
	if err != nil || date == nil {
		respondError(c, http.StatusBadRequest, message(requestLanguage(c), msgInvalidDate))
		return
	}

	var payload dayPayload
	err = a.session.Do(func(ws *service.Workspace) error {
		entries, err := ws.Schedules.EntriesOn(*date)
		if err != nil {
			return err
		}
		rows := make([]service.ListRow, 0, len(entries))
		for _, entry := range entries {
			rows = append(rows, service.ListRow{Schedule: entry, Color: ws.Colors.ColorFor(entry.EmployeeName)})
		}
		payload = dayPayload{Date: date.Format(service.DateFormat), Entries: rows}
		return nil
	})
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, payload)
}

// ListEntries 列表视图：start、end、search、department 均可选
func (a *API) ListEntries(c *gin.Context) {
	filter, ok := listFilterFromQuery(c)
	if !ok {
		return
	}

	var rows []service.ListRow
	err := a.session.Do(func(ws *service.Workspace) error {
		var err error
		rows, err = ws.List(filter)
		return err
	})
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

// NewEntryForm 返回预填好的新建表单
func (a *API) NewEntryForm(c *gin.Context) {
	date, err := parseOptionalDate(c.Query("date"))
	if err != nil {
		respondError(c, http.StatusBadRequest, message(requestLanguage(c), msgInvalidDate))
		return
	}

	var form service.RecordForm
	err = a.session.Do(func(ws *service.Workspace) error {
		var err error
		form, err = ws.NewRecordForm(date)
		return err
	})
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, form)
}

// GetEntry 返回记录及其编辑表单
func (a *API) GetEntry(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, message(requestLanguage(c), msgInvalidID))
		return
	}

	var payload entryPayload
	err = a.session.Do(func(ws *service.Workspace) error {
		entry, err := ws.Schedules.GetEntry(id)
		if err != nil {
			return err
		}
		payload = entryPayload{Entry: entry, Form: ws.Editor.EditForm(*entry)}
		return nil
	})
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, payload)
}

// CreateEntry 新建排班记录
func (a *API) CreateEntry(c *gin.Context) {
	var form service.RecordForm
	if !bindJSON(c, &form, message(requestLanguage(c), msgInvalidPayload)) {
		return
	}

	var entry *db.Schedule
	err := a.session.Do(func(ws *service.Workspace) error {
		var err error
		entry, err = ws.Editor.Create(form)
		return err
	})
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, entry)
}

// UpdateEntry 更新排班记录
func (a *API) UpdateEntry(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, message(requestLanguage(c), msgInvalidID))
		return
	}

	var form service.RecordForm
	if !bindJSON(c, &form, message(requestLanguage(c), msgInvalidPayload)) {
		return
	}

	var entry *db.Schedule
	err = a.session.Do(func(ws *service.Workspace) error {
		var err error
		entry, err = ws.Editor.Update(id, form)
		return err
	})
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, entry)
}

// DeleteEntry 删除排班记录
func (a *API) DeleteEntry(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, message(requestLanguage(c), msgInvalidID))
		return
	}

	err = a.session.Do(func(ws *service.Workspace) error {
		return ws.Schedules.DeleteEntry(id)
	})
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func listFilterFromQuery(c *gin.Context) (service.ListFilter, bool) {
	start, err := parseOptionalDate(c.Query("start"))
	if err != nil {
		respondError(c, http.StatusBadRequest, message(requestLanguage(c), msgInvalidDate))
		return service.ListFilter{}, false
	}
	end, err := parseOptionalDate(c.Query("end"))
	if err != nil {
		respondError(c, http.StatusBadRequest, message(requestLanguage(c), msgInvalidDate))
		return service.ListFilter{}, false
	}

	return service.ListFilter{
		Start:      start,
		End:        end,
		Search:     strings.TrimSpace(c.Query("search")),
		Department: strings.TrimSpace(c.Query("department")),
	}, true
}
