package helper

import (
	"errors"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/locales/id"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	id_translations "github.com/go-playground/validator/v10/translations/id"
	"github.com/gofiber/fiber/v2"

	"tahfidz_backend/internals/constants"
)

var (
	Validate   *validator.Validate
	Translator ut.Translator
)

const (
	notBlankTag = "notblank"
	roleTag     = "role"
	tanggalTag  = "tanggal"
)

func init() {
	Validate = validator.New()

	// pesan error bawaan dalam Bahasa Indonesia
	_id := id.New()
	uni := ut.New(_id, _id)
	Translator, _ = uni.GetTranslator("id")
	_ = id_translations.RegisterDefaultTranslations(Validate, Translator)

	// nama field pakai tag json, bukan nama struct Go
	Validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	_ = Validate.RegisterValidation(notBlankTag, func(fl validator.FieldLevel) bool {
		if s, ok := fl.Field().Interface().(string); ok {
			return strings.TrimSpace(s) != ""
		}
		return false
	})
	_ = Validate.RegisterValidation(roleTag, func(fl validator.FieldLevel) bool {
		s, ok := fl.Field().Interface().(string)
		return ok && constants.IsValidRole(s)
	})

	_ = Validate.RegisterValidation(tanggalTag, func(fl validator.FieldLevel) bool {
		s, ok := fl.Field().Interface().(string)
		if !ok {
			return false
		}
		_, err := time.Parse(constants.DateLayout, strings.TrimSpace(s))
		return err == nil
	})

	noop := func(ut.Translator) error { return nil }
	for _, tag := range []string{notBlankTag, roleTag, tanggalTag} {
		_ = Validate.RegisterTranslation(tag, Translator, noop, translateCustom)
	}
}

func translateCustom(_ ut.Translator, fe validator.FieldError) string {
	switch fe.Tag() {
	case notBlankTag:
		return fe.Field() + " tidak boleh kosong"
	case roleTag:
		return fe.Field() + " harus salah satu dari Admin, Asatidz, WaliSantri"
	case tanggalTag:
		return fe.Field() + " harus berformat YYYY-MM-DD"
	}
	return fe.Field() + " tidak valid"
}

// ValidateStruct mengembalikan error per field (nil bila valid).
func ValidateStruct(v any) map[string][]string {
	err := Validate.Struct(v)
	if err == nil {
		return nil
	}
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return map[string][]string{"_": {err.Error()}}
	}
	out := make(map[string][]string, len(ve))
	for _, fe := range ve {
		out[fe.Field()] = append(out[fe.Field()], fe.Translate(Translator))
	}
	return out
}

// BindAndValidate: BodyParser + Normalize (bila ada) + validasi. Bila gagal, response sudah dikirim
// dan ok=false; handler cukup `return err`.
func BindAndValidate(c *fiber.Ctx, dst any) (ok bool, err error) {
	if err := c.BodyParser(dst); err != nil {
		return false, JsonError(c, fiber.StatusBadRequest, "Format request tidak valid")
	}
	if n, ok := dst.(interface{ Normalize() }); ok {
		n.Normalize()
	}
	if fields := ValidateStruct(dst); fields != nil {
		return false, JsonValidationError(c, fields)
	}
	return true, nil
}
