package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/locales/en"
	"github.com/go-playground/locales/zh"
	ut "github.com/go-playground/universal-translator"
	val "github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
	zh_translations "github.com/go-playground/validator/v10/translations/zh"
)

// Translations picks a validator message translator from Accept-Language
// and stores it under "trans" for the form binding helpers.
func Translations() gin.HandlerFunc {
	uni := ut.New(en.New(), en.New(), zh.New())
	return func(c *gin.Context) {
		locale := parseLocale(c.GetHeader("Accept-Language"))
		trans, _ := uni.GetTranslator(locale)
		if v, ok := binding.Validator.Engine().(*val.Validate); ok {
			switch locale {
			case "zh":
				_ = zh_translations.RegisterDefaultTranslations(v, trans)
			default:
				_ = en_translations.RegisterDefaultTranslations(v, trans)
			}
			c.Set("trans", trans)
		}
		c.Set("locale", locale)
		c.Next()
	}
}

func parseLocale(header string) string {
	header = strings.TrimSpace(header)
	if header == "" {
		return "en"
	}
	first := strings.Split(header, ",")[0]
	first = strings.Split(first, ";")[0]
	first = strings.ToLower(strings.TrimSpace(first))
	if strings.HasPrefix(first, "zh") {
		return "zh"
	}
	return "en"
}
