package app

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	ut "github.com/go-playground/universal-translator"
	val "github.com/go-playground/validator/v10"
)

// ValidError a single field validation failure.
type ValidError struct {
	Key     string
	Message string
}

type ValidErrors []*ValidError

func (v *ValidError) Error() string {
	return v.Message
}

func (v ValidErrors) Error() string {
	return strings.Join(v.Errors(), ",")
}

func (v ValidErrors) Errors() []string {
	var errs []string
	for _, err := range v {
		errs = append(errs, err.Error())
	}
	return errs
}

func (v ValidErrors) ErrorsToString() string {
	return strings.Join(v.Errors(), ", ")
}

func (v ValidErrors) Maps() map[string]string {
	m := map[string]string{}
	for _, err := range v {
		m[err.Key] = err.Message
	}
	return m
}

// ValidStruct validates an already-decoded params struct with the shared
// validator engine, translating messages with the translator the lang
// middleware stored on the context.
func ValidStruct(c *gin.Context, v interface{}) (bool, ValidErrors) {
	var errs ValidErrors

	validator, ok := binding.Validator.Engine().(*val.Validate)
	if !ok {
		return true, nil
	}

	err := validator.Struct(v)
	if err == nil {
		return true, nil
	}

	verrs, ok := err.(val.ValidationErrors)
	if !ok {
		errs = append(errs, &ValidError{Key: "params", Message: err.Error()})
		return false, errs
	}

	var trans ut.Translator
	if t, exists := c.Get("trans"); exists {
		trans, _ = t.(ut.Translator)
	}

	for _, verr := range verrs {
		if trans != nil {
			errs = append(errs, &ValidError{
				Key:     verr.Field(),
				Message: verr.Translate(trans),
			})
		} else {
			errs = append(errs, &ValidError{
				Key:     verr.Field(),
				Message: verr.Error(),
			})
		}
	}

	return false, errs
}
