// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/locales/id"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	id_translations "github.com/go-playground/validator/v10/translations/id"
)

// clockTag validates "HH:MM" lesson times.
const clockTag = "clock"

type structValidator struct {
	v     *validator.Validate
	trans ut.Translator
}

// NewStructValidator returns a [Validator] driven by `validate` tags.
func NewStructValidator() Validator {
	v := validator.New(validator.WithRequiredStructEnabled())

	locale := id.New()
	uni := ut.New(locale, locale)
	trans, _ := uni.GetTranslator("id")
	_ = id_translations.RegisterDefaultTranslations(v, trans)

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	_ = v.RegisterValidation(clockTag, validateClock)
	_ = v.RegisterTranslation(clockTag, trans,
		func(t ut.Translator) error {
			return t.Add(clockTag, "{0} harus berformat JJ:MM", false)
		},
		func(t ut.Translator, fe validator.FieldError) string {
			msg, _ := t.T(clockTag, fe.Field())
			return msg
		},
	)

	return &structValidator{v: v, trans: trans}
}

func validateClock(fl validator.FieldLevel) bool {
	_, err := time.Parse("15:04", fl.Field().String())
	return err == nil
}

func (s *structValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	var err error
	if len(fields) > 0 {
		err = s.v.StructPartialCtx(ctx, obj, fields...)
	} else {
		err = s.v.StructCtx(ctx, obj)
	}
	if err == nil {
		return nil
	}

	var invalid *validator.InvalidValidationError
	if errors.As(err, &invalid) {
		return ErrUnsupportedType
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	out := &ValidationError{Fields: make([]FieldError, 0, len(verrs))}
	for _, fe := range verrs {
		out.Fields = append(out.Fields, FieldError{
			Field:   fe.Field(),
			Tag:     fe.Tag(),
			Message: fe.Translate(s.trans),
		})
	}
	return out
}
