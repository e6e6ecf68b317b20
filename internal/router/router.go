package router

import (
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/rs/cors"
	"github.com/schedulemanager/internal/handler"
	"github.com/schedulemanager/internal/metrics"
)

// SetupRouter 配置 Gin 引擎和路由
func SetupRouter(api *handler.API, sessionSecret string) *gin.Engine {
	r := gin.Default()

	// 配置会话中间件
	store := cookie.NewStore([]byte(sessionSecret))
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   7 * 24 * 60 * 60,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	r.Use(sessions.Sessions("schedulemanager_session", store))
	r.Use(handler.LocaleMiddleware())

	r.GET("/ping", handler.Ping)
	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	apiGroup := r.Group("/api")
	{
		apiGroup.GET("/about", api.GetAbout)

		apiGroup.GET("/accounts", api.ListAccounts)
		apiGroup.POST("/accounts", api.RegisterAccount)
		apiGroup.DELETE("/accounts/:username", api.DeleteAccount)

		apiGroup.GET("/login-preference", api.GetLoginPreference)
		apiGroup.POST("/login", api.Login)
		apiGroup.POST("/logout", api.Logout)
		apiGroup.GET("/session", api.CurrentSession)

		// 需要登录的路由
		auth := apiGroup.Group("")
		auth.Use(api.AuthRequired())
		{
			auth.GET("/departments", api.ListDepartments)
			auth.POST("/departments", api.CreateDepartment)
			auth.GET("/departments/used", api.ListUsedDepartments)

			auth.GET("/shifts", api.ListShifts)
			auth.POST("/shifts", api.CreateShift)

			auth.GET("/calendar", api.GetCalendar)
			auth.GET("/calendar/:date", api.GetCalendarDay)

			auth.GET("/entries", api.ListEntries)
			auth.GET("/entries/new", api.NewEntryForm)
			auth.POST("/entries", api.CreateEntry)
			auth.GET("/entries/:id", api.GetEntry)
			auth.PUT("/entries/:id", api.UpdateEntry)
			auth.DELETE("/entries/:id", api.DeleteEntry)

			auth.GET("/export/month", api.ExportMonth)
			auth.GET("/export/list", api.ExportList)
		}
	}

	return r
}

// WithCORS 为本机前端开发服务器放行跨域请求，origins 为空时原样返回。
func WithCORS(h http.Handler, origins []string) http.Handler {
	if len(origins) == 0 {
		return h
	}
	return cors.New(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Content-Type", "Accept-Language"},
		ExposedHeaders:   []string{"Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           300,
	}).Handler(h)
}
