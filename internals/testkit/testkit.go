// Package testkit berisi fixture bersama untuk test service & controller:
// tabel memory, user per role, dan app fiber dengan actor palsu.
package testkit

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"

	"tahfidz_backend/internals/constants"
	halaqohModel "tahfidz_backend/internals/features/tahfidz/halaqoh/model"
	kelasModel "tahfidz_backend/internals/features/tahfidz/kelas/model"
	santriModel "tahfidz_backend/internals/features/tahfidz/santri/model"
	logService "tahfidz_backend/internals/features/users/log_aktivitas/service"
	userModel "tahfidz_backend/internals/features/users/user/model"
	helper "tahfidz_backend/internals/helpers"
	"tahfidz_backend/internals/metrics"
	"tahfidz_backend/internals/repositories"
)

const Password = "rahasia123"

type Env struct {
	Ctx     context.Context
	Tables  *repositories.Tables
	Metrics *metrics.Metrics
	Audit   *logService.LogAktivitasService
	Log     *zap.Logger
}

func NewEnv(t *testing.T) *Env {
	t.Helper()
	tables := repositories.NewMemoryTables()
	m := metrics.New()
	log := zap.NewNop()
	return &Env{
		Ctx:     context.Background(),
		Tables:  tables,
		Metrics: m,
		Audit:   logService.NewLogAktivitasService(tables, m, log),
		Log:     log,
	}
}

// User membuat user aktif dengan password testkit.Password.
func (e *Env) User(t *testing.T, role, username string) userModel.UserModel {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(Password), bcrypt.MinCost)
	require.NoError(t, err)
	u, err := e.Tables.Users.Create(e.Ctx, userModel.UserModel{
		Username:     username,
		Nama:         "Nama " + username,
		PasswordHash: string(hash),
		Role:         role,
		IsActive:     true,
	})
	require.NoError(t, err)
	return u
}

func (e *Env) Halaqoh(t *testing.T, nama string, asatidzID uuid.UUID) halaqohModel.HalaqohModel {
	t.Helper()
	h, err := e.Tables.Halaqoh.Create(e.Ctx, halaqohModel.HalaqohModel{Nama: nama, AsatidzID: asatidzID})
	require.NoError(t, err)
	return h
}

func (e *Env) Kelas(t *testing.T, nama string) kelasModel.KelasModel {
	t.Helper()
	k, err := e.Tables.Kelas.Create(e.Ctx, kelasModel.KelasModel{
		Nama:     nama,
		Kategori: constants.KelasIkhwan,
		Program:  constants.ProgramReguler,
	})
	require.NoError(t, err)
	return k
}

func (e *Env) Santri(t *testing.T, nis string, halaqohID, kelasID uuid.UUID, waliID *uuid.UUID) santriModel.SantriModel {
	t.Helper()
	s, err := e.Tables.Santri.Create(e.Ctx, santriModel.SantriModel{
		NIS:          nis,
		Nama:         "Santri " + nis,
		JenisKelamin: "L",
		HalaqohID:    halaqohID,
		KelasID:      kelasID,
		WaliID:       waliID,
		TanggalMasuk: datatypes.Date(time.Date(2024, 7, 15, 0, 0, 0, 0, time.UTC)),
		Status:       constants.SantriAktif,
	})
	require.NoError(t, err)
	return s
}

func ActorOf(u userModel.UserModel) helper.Actor {
	return helper.Actor{ID: u.ID, Role: u.Role, Nama: u.Nama}
}

// World: satu pondok kecil untuk test scoping.
//
//	admin, ustadz1 → halaqoh1 → santri1 (wali1), santri2
//	       ustadz2 → halaqoh2 → santri3 (wali2)
type World struct {
	Admin, Ustadz1, Ustadz2, Wali1, Wali2 userModel.UserModel
	Halaqoh1, Halaqoh2                    halaqohModel.HalaqohModel
	Kelas                                 kelasModel.KelasModel
	Santri1, Santri2, Santri3             santriModel.SantriModel
}

func (e *Env) World(t *testing.T) World {
	t.Helper()
	var w World
	w.Admin = e.User(t, constants.RoleAdmin, "admin")
	w.Ustadz1 = e.User(t, constants.RoleAsatidz, "ustadz1")
	w.Ustadz2 = e.User(t, constants.RoleAsatidz, "ustadz2")
	w.Wali1 = e.User(t, constants.RoleWaliSantri, "wali1")
	w.Wali2 = e.User(t, constants.RoleWaliSantri, "wali2")
	w.Halaqoh1 = e.Halaqoh(t, "Halaqoh Abu Bakar", w.Ustadz1.ID)
	w.Halaqoh2 = e.Halaqoh(t, "Halaqoh Umar", w.Ustadz2.ID)
	w.Kelas = e.Kelas(t, "Kelas 7A")
	w.Santri1 = e.Santri(t, "S001", w.Halaqoh1.ID, w.Kelas.ID, &w.Wali1.ID)
	w.Santri2 = e.Santri(t, "S002", w.Halaqoh1.ID, w.Kelas.ID, nil)
	w.Santri3 = e.Santri(t, "S003", w.Halaqoh2.ID, w.Kelas.ID, &w.Wali2.ID)
	return w
}

// App membuat fiber app dengan locals actor sudah terisi, meniru
// AuthMiddleware tanpa JWT.
func App(actor helper.Actor) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: helper.FromFiberError})
	app.Use(func(c *fiber.Ctx) error {
		c.Locals(helper.LocUserID, actor.ID.String())
		c.Locals(helper.LocUserRole, actor.Role)
		c.Locals(helper.LocUserName, actor.Nama)
		return c.Next()
	})
	return app
}

// Do mengirim request JSON dan mengembalikan status + body ter-decode.
func Do(t *testing.T, app *fiber.App, method, path string, body any) (int, map[string]any) {
	t.Helper()
	var rdr io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		rdr = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, rdr)
	if body != nil {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	out := map[string]any{}
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &out), string(raw))
	}
	return resp.StatusCode, out
}
