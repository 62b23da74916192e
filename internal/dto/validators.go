package dto

import (
	"github.com/SscSPs/referral_pipeline/internal/core/domain"
	"github.com/go-playground/validator/v10"
)

// RegisterValidators adds the custom binding tags used by the request DTOs.
// An empty risk answer is accepted and clears the answer.
func RegisterValidators(v *validator.Validate) error {
	return v.RegisterValidation("riskanswer", func(fl validator.FieldLevel) bool {
		return domain.RiskAnswer(fl.Field().String()).Valid()
	})
}
