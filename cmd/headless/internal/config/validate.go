package config

import (
	stderrors "errors"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/go-drift/headless/pkg/errors"
	"github.com/go-drift/headless/pkg/overlay"
)

var (
	validatorOnce sync.Once
	validateInst  *validator.Validate
)

func validatorInstance() *validator.Validate {
	validatorOnce.Do(func() {
		v := validator.New()
		_ = v.RegisterValidation("preset", func(fl validator.FieldLevel) bool {
			return slices.Contains(overlay.PresetNames(), fl.Field().String())
		})
		validateInst = v
	})
	return validateInst
}

// Validate checks field constraints on cfg.
func Validate(cfg *Config) error {
	if cfg == nil {
		return errors.New("config.Validate", errors.KindConfig, stderrors.New("configuration is nil"))
	}
	if err := validatorInstance().Struct(cfg); err != nil {
		return errors.New("config.Validate", errors.KindConfig, convertValidationError(err))
	}
	return nil
}

func convertValidationError(err error) error {
	var verrs validator.ValidationErrors
	if !stderrors.As(err, &verrs) {
		return err
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		field := strings.TrimPrefix(fe.Namespace(), "Config.")
		switch fe.Tag() {
		case "oneof":
			msgs = append(msgs, fmt.Sprintf("%s: must be one of [%s]", field, fe.Param()))
		case "preset":
			msgs = append(msgs, fmt.Sprintf("%s: unknown preset %q (want one of %s)", field, fe.Value(), strings.Join(overlay.PresetNames(), ", ")))
		case "min":
			msgs = append(msgs, fmt.Sprintf("%s: must be at least %s", field, fe.Param()))
		default:
			msgs = append(msgs, fmt.Sprintf("%s: failed %q", field, fe.Tag()))
		}
	}
	return stderrors.New(strings.Join(msgs, "; "))
}
