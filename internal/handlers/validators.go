package handlers

import (
	"errors"

	"github.com/SscSPs/client_ledger/internal/core/domain"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// RegisterValidators adds the domain enum validators to gin's binding engine.
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return errors.New("gin binding engine is not go-playground/validator")
	}
	if err := v.RegisterValidation("particular_type", func(fl validator.FieldLevel) bool {
		return domain.ParticularType(fl.Field().String()).IsValid()
	}); err != nil {
		return err
	}
	return v.RegisterValidation("client_status", func(fl validator.FieldLevel) bool {
		return domain.ClientStatus(fl.Field().String()).IsValid()
	})
}
