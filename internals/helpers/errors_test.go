package helper

import (
	"encoding/json"
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestErrorHandler_HidesInternalText(t *testing.T) {
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler(zap.NewNop())})
	app.Use(recover.New())
	app.Get("/driver", func(c *fiber.Ctx) error {
		return errors.New("pq: relation \"santri\" does not exist")
	})
	app.Get("/panic", func(c *fiber.Ctx) error {
		var rows []int
		return c.JSON(rows[5:])
	})
	app.Get("/fiber", func(c *fiber.Ctx) error {
		return fiber.NewError(fiber.StatusBadRequest, "Format tanggal tidak valid")
	})

	cases := []struct {
		path    string
		status  int
		message string
	}{
		{"/driver", fiber.StatusInternalServerError, MsgLoadFailed},
		{"/panic", fiber.StatusInternalServerError, MsgLoadFailed},
		{"/fiber", fiber.StatusBadRequest, "Format tanggal tidak valid"},
	}
	for _, tc := range cases {
		t.Run(tc.path, func(t *testing.T) {
			resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, tc.path, nil), -1)
			require.NoError(t, err)
			assert.Equal(t, tc.status, resp.StatusCode)

			var body ErrorResponse
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
			assert.False(t, body.Success)
			assert.Equal(t, tc.message, body.Message)
		})
	}
}

func TestParseFiber_PageCapped(t *testing.T) {
	app := fiber.New()
	var got Params
	app.Get("/", func(c *fiber.Ctx) error {
		got = ParseFiber(c, "nama", "asc", AdminOpts)
		return c.SendStatus(fiber.StatusNoContent)
	})

	_, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/?page=500000000000000001&per_page=500", nil))
	require.NoError(t, err)
	assert.Equal(t, MaxPage, got.Page)
	assert.Positive(t, got.Offset())
	assert.Equal(t, (MaxPage-1)*500, got.Offset())
}
