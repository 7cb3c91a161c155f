package handler

import (
	"fmt"
	"sync"

	"taskboard/internal/model"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var registerOnce sync.Once

// RegisterValidators adds the board's custom binding tags to gin's validator.
// It panics if the tags cannot be registered.
//
//	category: the field must name one of the three board columns
func RegisterValidators() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			panic(fmt.Sprintf("handler: unexpected binding engine %T", binding.Validator.Engine()))
		}
		if err := registerCategory(v); err != nil {
			panic(fmt.Sprintf("handler: register validators: %v", err))
		}
	})
}

func registerCategory(v *validator.Validate) error {
	return v.RegisterValidation("category", func(fl validator.FieldLevel) bool {
		_, ok := model.ParseCategory(fl.Field().String())
		return ok
	})
}
