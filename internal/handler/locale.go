package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/schedulemanager/internal/locale"
)

const (
	localeContextKey   = "__request_locale"
	languageCookieName = "sm_lang"
)

// LocaleMiddleware resolves the request language for error messages.
func LocaleMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		pref := requestLocale(c)
		c.Header("Content-Language", pref.HTMLLang)
		c.Header("Vary", "Accept-Language")
		c.Next()
	}
}

func requestLanguage(c *gin.Context) string {
	return requestLocale(c).Language
}

func requestLocale(c *gin.Context) locale.Preference {
	if cached, exists := c.Get(localeContextKey); exists {
		if pref, ok := cached.(locale.Preference); ok {
			return pref
		}
	}
	pref := locale.PreferenceForLanguage(resolveLanguage(c))
	c.Set(localeContextKey, pref)
	return pref
}

func resolveLanguage(c *gin.Context) string {
	if override := locale.NormalizeLanguage(c.Query("lang")); override != "" {
		return override
	}
	if cookie, err := c.Cookie(languageCookieName); err == nil {
		if language := locale.NormalizeLanguage(cookie); language != "" {
			return language
		}
	}
	if fromHeader := locale.LanguageFromAcceptLanguage(c.GetHeader("Accept-Language")); fromHeader != "" {
		return fromHeader
	}
	return locale.LanguageChinese
}
