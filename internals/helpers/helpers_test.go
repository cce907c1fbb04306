package helper

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"tahfidz_backend/internals/store"
)

type setoranForm struct {
	Nama  string  `json:"nama" validate:"notblank"`
	Nilai float64 `json:"nilai" validate:"gte=0,lte=100"`
	Role  string  `json:"role" validate:"required,role"`
}

func TestValidateStruct(t *testing.T) {
	assert.Nil(t, ValidateStruct(setoranForm{Nama: "Ahmad", Nilai: 88, Role: "Asatidz"}))

	errs := ValidateStruct(setoranForm{Nama: "  ", Nilai: 101, Role: "Guru"})
	require.NotNil(t, errs)
	assert.Contains(t, errs, "nama")
	assert.Contains(t, errs, "nilai")
	assert.Contains(t, errs, "role")

	errs = ValidateStruct(setoranForm{Nama: "Ahmad", Nilai: -1, Role: "Admin"})
	assert.Len(t, errs, 1)
	assert.Contains(t, errs, "nilai")
}

func TestValidateTanggal(t *testing.T) {
	type form struct {
		Tanggal string `json:"tanggal" validate:"required,tanggal"`
	}
	assert.Nil(t, ValidateStruct(form{Tanggal: "2025-02-28"}))
	for _, bad := range []string{"2025-02-30", "28-02-2025", "kemarin"} {
		errs := ValidateStruct(form{Tanggal: bad})
		assert.Contains(t, errs, "tanggal", bad)
	}
}

func TestSlugify(t *testing.T) {
	cases := map[string]string{
		"Libur Idul Fitri 1446 H": "libur-idul-fitri-1446-h",
		"  Café -- Ṣalāh  ":       "cafe-salah",
		"!!!":                     "item",
	}
	for in, want := range cases {
		assert.Equal(t, want, Slugify(in, 0), in)
	}
	assert.Equal(t, "abc", Slugify("abc-def", 4))
}

func TestUniqueSlug(t *testing.T) {
	used := map[string]bool{"ujian": true, "ujian-2": true}
	taken := func(_ context.Context, s string) (bool, error) { return used[s], nil }

	slug, err := UniqueSlug(context.Background(), "ujian", 0, taken)
	require.NoError(t, err)
	assert.Equal(t, "ujian-3", slug)

	slug, err = UniqueSlug(context.Background(), "baru", 0, taken)
	require.NoError(t, err)
	assert.Equal(t, "baru", slug)
}

func TestBuildPaginationFromPage(t *testing.T) {
	p := BuildPaginationFromPage(45, 2, 20)
	assert.Equal(t, 3, p.TotalPages)
	assert.True(t, p.HasNext)
	assert.True(t, p.HasPrev)

	p = BuildPaginationFromPage(0, 1, 20)
	assert.Equal(t, 1, p.TotalPages)
	assert.False(t, p.HasNext)
}

func TestParseFiberQuery(t *testing.T) {
	app := fiber.New()
	var got store.Query
	app.Get("/", func(c *fiber.Ctx) error {
		p := ParseFiber(c, "nama", "asc", DefaultOpts)
		got = p.Query(map[string]string{"nama": "nama", "nis": "nis"}, "nama", "nama", "nis")
		return c.SendStatus(fiber.StatusNoContent)
	})

	_, err := app.Test(httptest.NewRequest("GET", "/?page=3&per_page=500&sort_by=nis&order=desc&q=ali", nil))
	require.NoError(t, err)
	assert.Equal(t, "nis", got.OrderBy)
	assert.True(t, got.Desc)
	assert.Equal(t, 100, got.Limit)
	assert.Equal(t, 200, got.Offset)
	require.NotNil(t, got.Search)
	assert.Equal(t, "ali", got.Search.Term)

	_, err = app.Test(httptest.NewRequest("GET", "/?sort_by=password_hash", nil))
	require.NoError(t, err)
	assert.Equal(t, "nama", got.OrderBy)
	assert.Nil(t, got.Search)
}

func TestJsonFailureMapping(t *testing.T) {
	cases := []struct {
		err    error
		status int
	}{
		{store.ErrNotFound, fiber.StatusNotFound},
		{fmt.Errorf("hapus halaqoh: %w", ErrInUse), fiber.StatusConflict},
		{store.ErrConflict, fiber.StatusConflict},
		{ErrForbidden, fiber.StatusForbidden},
		{ErrInvalidCredentials, fiber.StatusUnauthorized},
		{RefMissing("id_halaqoh", "halaqoh tidak ditemukan"), fiber.StatusUnprocessableEntity},
		{io.ErrUnexpectedEOF, fiber.StatusInternalServerError},
	}

	for _, tc := range cases {
		app := fiber.New()
		app.Get("/", func(c *fiber.Ctx) error {
			return JsonFailure(c, zap.NewNop(), tc.err, MsgSaveFailed)
		})
		resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
		require.NoError(t, err)
		assert.Equal(t, tc.status, resp.StatusCode, tc.err.Error())

		var body ErrorResponse
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.False(t, body.Success)
		if tc.status == fiber.StatusInternalServerError {
			assert.Equal(t, MsgSaveFailed, body.Message)
		}
	}
}

func TestGetActor(t *testing.T) {
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		c.Locals(LocUserID, "8d3b7f1e-2c8b-4a7e-9d7e-0b2b6a1c9f10")
		c.Locals(LocUserRole, "Asatidz")
		a, err := GetActor(c)
		if err != nil {
			return err
		}
		return c.SendString(a.Role)
	})
	app.Get("/anon", func(c *fiber.Ctx) error {
		_, err := GetActor(c)
		return err
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest("GET", "/anon", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}
