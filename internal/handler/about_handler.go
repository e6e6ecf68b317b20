package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/schedulemanager/internal/service"
)

// Ping 健康检查
func Ping(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "pong"})
}

// GetAbout 返回程序信息与帮助文本
func (a *API) GetAbout(c *gin.Context) {
	about, err := service.LoadAbout()
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, about)
}
