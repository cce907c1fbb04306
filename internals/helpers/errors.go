package helper

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"tahfidz_backend/internals/store"
)

// Error domain yang dipakai service. Controller memetakan ke status HTTP
// lewat JsonFailure.
var (
	ErrReferenceMissing   = errors.New("data rujukan tidak ditemukan")
	ErrInUse              = errors.New("data masih dipakai oleh data lain")
	ErrDuplicate          = errors.New("data sudah ada")
	ErrForbidden          = errors.New("akses ditolak")
	ErrInvalidCredentials = errors.New("username atau password salah")
	ErrInvalidState       = errors.New("aksi tidak diizinkan pada kondisi saat ini")
)

// FieldError menempelkan nama field ke error domain (untuk respons 422).
type FieldError struct {
	Field   string
	Message string
	Err     error
}

func (e *FieldError) Error() string { return fmt.Sprintf("%s: %s", e.Field, e.Message) }
func (e *FieldError) Unwrap() error { return e.Err }

func RefMissing(field, message string) error {
	return &FieldError{Field: field, Message: message, Err: ErrReferenceMissing}
}

func Duplicate(field, message string) error {
	return &FieldError{Field: field, Message: message, Err: ErrDuplicate}
}

func InvalidState(field, message string) error {
	return &FieldError{Field: field, Message: message, Err: ErrInvalidState}
}

// Generic message ke client; detail hanya di log.
const (
	MsgSaveFailed   = "Gagal menyimpan data"
	MsgDeleteFailed = "Gagal menghapus data"
	MsgLoadFailed   = "Gagal memuat data"
)

// JsonFailure memetakan error service ke response standar. Error yang tidak
// dikenal dicatat dan dijawab 500 dengan pesan generik.
func JsonFailure(c *fiber.Ctx, log *zap.Logger, err error, generic string) error {
	var fe *FieldError
	if errors.As(err, &fe) {
		if errors.Is(err, ErrDuplicate) {
			return c.Status(fiber.StatusConflict).JSON(ErrorResponse{
				Success:   false,
				Message:   "Data sudah ada",
				ErrorCode: statusToErrorCode(fiber.StatusConflict),
				Errors:    map[string][]string{fe.Field: {fe.Message}},
			})
		}
		return JsonValidationError(c, map[string][]string{fe.Field: {fe.Message}})
	}

	switch {
	case errors.Is(err, store.ErrNotFound):
		return JsonError(c, fiber.StatusNotFound, "Data tidak ditemukan")
	case errors.Is(err, ErrForbidden):
		return JsonError(c, fiber.StatusForbidden, "Anda tidak memiliki akses ke data ini")
	case errors.Is(err, ErrInvalidCredentials):
		return JsonError(c, fiber.StatusUnauthorized, ErrInvalidCredentials.Error())
	case errors.Is(err, ErrInUse):
		return JsonError(c, fiber.StatusConflict, "Data masih dipakai oleh data lain")
	case errors.Is(err, ErrDuplicate), errors.Is(err, store.ErrConflict):
		return JsonError(c, fiber.StatusConflict, "Data sudah ada")
	case errors.Is(err, store.ErrUnknownColumn):
		return JsonError(c, fiber.StatusBadRequest, "Parameter query tidak valid")
	}

	log.Error(generic,
		zap.String("path", c.Path()),
		zap.Any("request_id", c.Locals("reqid")),
		zap.Error(err),
	)
	return JsonError(c, fiber.StatusInternalServerError, generic)
}

// ErrorHandler: error handler global fiber, semua error jadi envelope standar.
// Hanya *fiber.Error yang pesannya diteruskan; sisanya (termasuk panic yang
// di-recover) dicatat dan dijawab pesan generik.
func ErrorHandler(log *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var fe *fiber.Error
		if errors.As(err, &fe) {
			return JsonError(c, fe.Code, fe.Message)
		}
		log.Error("unhandled error",
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Any("request_id", c.Locals("reqid")),
			zap.Error(err),
		)
		return JsonError(c, fiber.StatusInternalServerError, MsgLoadFailed)
	}
}

// FromFiberError: ErrorHandler dengan logger global zap.
func FromFiberError(c *fiber.Ctx, err error) error {
	return ErrorHandler(zap.L())(c, err)
}
