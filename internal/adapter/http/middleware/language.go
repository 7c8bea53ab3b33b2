package middleware

import (
	"taskboard/pkg/translator"

	"github.com/gin-gonic/gin"
)

const langKey = "lang"

// LanguageMiddleware picks the response language from the Accept-Language header.
func LanguageMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(langKey, translator.MatchLanguage(c.GetHeader("Accept-Language")))
		c.Next()
	}
}

func GetLang(c *gin.Context) string {
	if lang, exists := c.Get(langKey); exists {
		if s, ok := lang.(string); ok {
			return s
		}
	}
	return translator.LanguageEn
}
