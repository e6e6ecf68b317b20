package handler

import (
	"log"
	"net/http"
	"strings"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

const (
	sessionUsernameKey = "username"
	sessionTokenKey    = "token"
	usernameContextKey = "__username"
)

type registerPayload struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginPayload struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Remember bool   `json:"remember"`
}

type deleteAccountPayload struct {
	Password string `json:"password"`
}

// AuthRequired 只放行 cookie 中的用户名与令牌和当前会话一致的请求
func (a *API) AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		username, _ := session.Get(sessionUsernameKey).(string)
		token, _ := session.Get(sessionTokenKey).(string)

		if !a.session.Authorized(username, token) {
			respondError(c, http.StatusUnauthorized, message(requestLanguage(c), msgNoSession))
			c.Abort()
			return
		}
		c.Set(usernameContextKey, username)
		c.Next()
	}
}

// ListAccounts 返回全部用户名，供登录框下拉使用
func (a *API) ListAccounts(c *gin.Context) {
	names, err := a.session.Accounts().ListUsernames()
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"usernames": names})
}

// RegisterAccount 注册新账户并创建其排班库文件
func (a *API) RegisterAccount(c *gin.Context) {
	var payload registerPayload
	if !bindJSON(c, &payload, message(requestLanguage(c), msgInvalidPayload)) {
		return
	}

	account, err := a.session.Accounts().Register(payload.Username, payload.Password)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, account)
}

// DeleteAccount 校验密码后删除账户，删除的是当前账户时同时清除 cookie
func (a *API) DeleteAccount(c *gin.Context) {
	var payload deleteAccountPayload
	if !bindOptionalJSON(c, &payload, message(requestLanguage(c), msgInvalidPayload)) {
		return
	}

	username := strings.TrimSpace(c.Param("username"))
	current, _, _ := a.session.Current()

	if err := a.session.DeleteAccount(username, payload.Password); err != nil {
		handleServiceError(c, err)
		return
	}

	if current != "" && current == username {
		clearSessionCookie(c)
	}
	c.Status(http.StatusNoContent)
}

// GetLoginPreference 返回登录框预填信息
func (a *API) GetLoginPreference(c *gin.Context) {
	pref, err := a.prefs.Load()
	if err != nil {
		log.Printf("[HTTP] load login preference: %v", err)
		c.JSON(http.StatusOK, gin.H{"username": "", "remember": false})
		return
	}
	c.JSON(http.StatusOK, pref)
}

// Login 切换到指定账户；登录成功后写入登录偏好与会话 cookie
func (a *API) Login(c *gin.Context) {
	var payload loginPayload
	if !bindJSON(c, &payload, message(requestLanguage(c), msgInvalidPayload)) {
		return
	}

	token, err := a.session.Login(payload.Username, payload.Password)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	username := strings.TrimSpace(payload.Username)
	if err := a.prefs.Save(username, payload.Password, payload.Remember); err != nil {
		log.Printf("[HTTP] save login preference: %v", err)
	}

	session := sessions.Default(c)
	session.Set(sessionUsernameKey, username)
	session.Set(sessionTokenKey, token)
	if err := session.Save(); err != nil {
		respondError(c, http.StatusInternalServerError, message(requestLanguage(c), msgOperationFailed))
		return
	}

	c.JSON(http.StatusOK, gin.H{"username": username})
}

// Logout 关闭当前排班库并清除 cookie
func (a *API) Logout(c *gin.Context) {
	if err := a.session.Logout(); err != nil {
		log.Printf("[HTTP] logout: %v", err)
	}
	clearSessionCookie(c)
	c.Status(http.StatusNoContent)
}

// CurrentSession 返回当前登录状态
func (a *API) CurrentSession(c *gin.Context) {
	session := sessions.Default(c)
	username, _ := session.Get(sessionUsernameKey).(string)
	token, _ := session.Get(sessionTokenKey).(string)

	if !a.session.Authorized(username, token) {
		c.JSON(http.StatusOK, gin.H{"logged_in": false})
		return
	}
	c.JSON(http.StatusOK, gin.H{"logged_in": true, "username": username})
}

func clearSessionCookie(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	if err := session.Save(); err != nil {
		log.Printf("[HTTP] clear session: %v", err)
	}
}
