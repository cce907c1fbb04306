// Package seeds memuat data awal dari file YAML ke store yang sedang dipakai.
// Record yang sudah ada (username / nama / NIS / slug sama) dilewati,
// jadi seed aman dijalankan berulang.
package seeds

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"tahfidz_backend/internals/constants"
	pengumumanModel "tahfidz_backend/internals/features/home/pengumuman/model"
	halaqohModel "tahfidz_backend/internals/features/tahfidz/halaqoh/model"
	kelasModel "tahfidz_backend/internals/features/tahfidz/kelas/model"
	santriModel "tahfidz_backend/internals/features/tahfidz/santri/model"
	userModel "tahfidz_backend/internals/features/users/user/model"
	userService "tahfidz_backend/internals/features/users/user/service"
	helper "tahfidz_backend/internals/helpers"
	"tahfidz_backend/internals/helpers/dbtime"
	"tahfidz_backend/internals/repositories"
	"tahfidz_backend/internals/store"
)

type UserSeed struct {
	Username string `yaml:"username"`
	Nama     string `yaml:"nama"`
	Password string `yaml:"password"`
	Role     string `yaml:"role"`
}

type KelasSeed struct {
	Nama     string `yaml:"nama"`
	Kategori string `yaml:"kategori"`
	Program  string `yaml:"program"`
}

type HalaqohSeed struct {
	Nama       string `yaml:"nama"`
	Asatidz    string `yaml:"asatidz"` // username
	Keterangan string `yaml:"keterangan"`
}

type SantriSeed struct {
	NIS          string `yaml:"nis"`
	Nama         string `yaml:"nama"`
	JenisKelamin string `yaml:"jenis_kelamin"`
	Halaqoh      string `yaml:"halaqoh"` // nama halaqoh
	Kelas        string `yaml:"kelas"`   // nama kelas
	Wali         string `yaml:"wali"`    // username, opsional
	TanggalMasuk string `yaml:"tanggal_masuk"`
}

type PengumumanSeed struct {
	Judul         string   `yaml:"judul"`
	Isi           string   `yaml:"isi"`
	Kategori      string   `yaml:"kategori"`
	Penulis       string   `yaml:"penulis"` // username
	TanggalTerbit string   `yaml:"tanggal_terbit"`
	TargetRoles   []string `yaml:"target_roles"`
}

type File struct {
	Users      []UserSeed       `yaml:"users"`
	Kelas      []KelasSeed      `yaml:"kelas"`
	Halaqoh    []HalaqohSeed    `yaml:"halaqoh"`
	Santri     []SantriSeed     `yaml:"santri"`
	Pengumuman []PengumumanSeed `yaml:"pengumuman"`
}

// Result: jumlah record baru per tabel.
type Result map[string]int

func LoadFile(path string) (File, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return File{}, fmt.Errorf("baca seed %s: %w", path, err)
	}
	return Parse(raw)
}

func Parse(raw []byte) (File, error) {
	var f File
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return File{}, fmt.Errorf("parse seed: %w", err)
	}
	return f, nil
}

type seeder struct {
	t   *repositories.Tables
	log *zap.Logger

	users   map[string]uuid.UUID
	kelas   map[string]uuid.UUID
	halaqoh map[string]uuid.UUID
	res     Result
}

// Apply menulis isi seed dengan urutan users → kelas → halaqoh → santri →
// pengumuman. Berhenti pada error pertama.
func Apply(ctx context.Context, t *repositories.Tables, f File, log *zap.Logger) (Result, error) {
	s := &seeder{
		t:       t,
		log:     log,
		users:   map[string]uuid.UUID{},
		kelas:   map[string]uuid.UUID{},
		halaqoh: map[string]uuid.UUID{},
		res:     Result{},
	}
	steps := []func(context.Context, File) error{s.seedUsers, s.seedKelas, s.seedHalaqoh, s.seedSantri, s.seedPengumuman}
	for _, step := range steps {
		if err := step(ctx, f); err != nil {
			return s.res, err
		}
	}
	return s.res, nil
}

func (s *seeder) seedUsers(ctx context.Context, f File) error {
	for _, u := range f.Users {
		username := strings.ToLower(strings.TrimSpace(u.Username))
		if !constants.IsValidRole(u.Role) {
			return fmt.Errorf("user %q: role tidak dikenal %q", username, u.Role)
		}
		existing, err := store.First(ctx, s.t.Users, store.Eq{Column: "username", Value: username})
		if err == nil {
			s.log.Info("ℹ️ User sudah ada, dilewati", zap.String("username", username))
			s.users[username] = existing.ID
			continue
		}
		if !errors.Is(err, store.ErrNotFound) {
			return err
		}
		hash, err := userService.HashPassword(u.Password)
		if err != nil {
			return fmt.Errorf("hash password %q: %w", username, err)
		}
		created, err := s.t.Users.Create(ctx, userModel.UserModel{
			Username:     username,
			Nama:         strings.TrimSpace(u.Nama),
			PasswordHash: hash,
			Role:         u.Role,
			IsActive:     true,
		})
		if err != nil {
			return fmt.Errorf("insert user %q: %w", username, err)
		}
		s.users[username] = created.ID
		s.res["users"]++
		s.log.Info("✅ User ditambahkan", zap.String("username", username), zap.String("role", u.Role))
	}
	return nil
}

// user mencari id user dari username, dari cache seed atau store.
func (s *seeder) user(ctx context.Context, username string) (uuid.UUID, error) {
	username = strings.ToLower(strings.TrimSpace(username))
	if id, ok := s.users[username]; ok {
		return id, nil
	}
	u, err := store.First(ctx, s.t.Users, store.Eq{Column: "username", Value: username})
	if err != nil {
		return uuid.Nil, fmt.Errorf("user %q: %w", username, err)
	}
	s.users[username] = u.ID
	return u.ID, nil
}

func (s *seeder) seedKelas(ctx context.Context, f File) error {
	for _, k := range f.Kelas {
		existing, err := store.First(ctx, s.t.Kelas, store.Eq{Column: "nama_kelas", Value: k.Nama})
		if err == nil {
			s.kelas[k.Nama] = existing.ID
			continue
		}
		if !errors.Is(err, store.ErrNotFound) {
			return err
		}
		m := kelasModel.KelasModel{Nama: k.Nama, Kategori: k.Kategori, Program: k.Program}
		if m.Kategori == "" {
			m.Kategori = constants.KelasIkhwan
		}
		if m.Program == "" {
			m.Program = constants.ProgramReguler
		}
		created, err := s.t.Kelas.Create(ctx, m)
		if err != nil {
			return fmt.Errorf("insert kelas %q: %w", k.Nama, err)
		}
		s.kelas[k.Nama] = created.ID
		s.res["kelas"]++
	}
	return nil
}

func (s *seeder) seedHalaqoh(ctx context.Context, f File) error {
	for _, h := range f.Halaqoh {
		existing, err := store.First(ctx, s.t.Halaqoh, store.Eq{Column: "nama_halaqoh", Value: h.Nama})
		if err == nil {
			s.halaqoh[h.Nama] = existing.ID
			continue
		}
		if !errors.Is(err, store.ErrNotFound) {
			return err
		}
		asatidz, err := s.user(ctx, h.Asatidz)
		if err != nil {
			return fmt.Errorf("halaqoh %q: %w", h.Nama, err)
		}
		m := halaqohModel.HalaqohModel{Nama: h.Nama, AsatidzID: asatidz}
		if h.Keterangan != "" {
			m.Keterangan = &h.Keterangan
		}
		created, err := s.t.Halaqoh.Create(ctx, m)
		if err != nil {
			return fmt.Errorf("insert halaqoh %q: %w", h.Nama, err)
		}
		s.halaqoh[h.Nama] = created.ID
		s.res["halaqoh"]++
	}
	return nil
}

func (s *seeder) lookup(ctx context.Context, cache map[string]uuid.UUID, nama string, find func(context.Context, string) (uuid.UUID, error)) (uuid.UUID, error) {
	if id, ok := cache[nama]; ok {
		return id, nil
	}
	id, err := find(ctx, nama)
	if err != nil {
		return uuid.Nil, err
	}
	cache[nama] = id
	return id, nil
}

func (s *seeder) seedSantri(ctx context.Context, f File) error {
	findHalaqoh := func(ctx context.Context, nama string) (uuid.UUID, error) {
		h, err := store.First(ctx, s.t.Halaqoh, store.Eq{Column: "nama_halaqoh", Value: nama})
		return h.ID, err
	}
	findKelas := func(ctx context.Context, nama string) (uuid.UUID, error) {
		k, err := store.First(ctx, s.t.Kelas, store.Eq{Column: "nama_kelas", Value: nama})
		return k.ID, err
	}

	for _, r := range f.Santri {
		exists, err := store.Exists(ctx, s.t.Santri, store.Eq{Column: "nis", Value: r.NIS})
		if err != nil {
			return err
		}
		if exists {
			continue
		}
		halaqohID, err := s.lookup(ctx, s.halaqoh, r.Halaqoh, findHalaqoh)
		if err != nil {
			return fmt.Errorf("santri %s: halaqoh %q: %w", r.NIS, r.Halaqoh, err)
		}
		kelasID, err := s.lookup(ctx, s.kelas, r.Kelas, findKelas)
		if err != nil {
			return fmt.Errorf("santri %s: kelas %q: %w", r.NIS, r.Kelas, err)
		}
		m := santriModel.SantriModel{
			NIS:          r.NIS,
			Nama:         r.Nama,
			JenisKelamin: strings.ToUpper(r.JenisKelamin),
			HalaqohID:    halaqohID,
			KelasID:      kelasID,
			TanggalMasuk: dbtime.Today(),
			Status:       constants.SantriAktif,
		}
		if r.TanggalMasuk != "" {
			if m.TanggalMasuk, err = dbtime.ParseDate(r.TanggalMasuk); err != nil {
				return fmt.Errorf("santri %s: tanggal_masuk: %w", r.NIS, err)
			}
		}
		if r.Wali != "" {
			wali, err := s.user(ctx, r.Wali)
			if err != nil {
				return fmt.Errorf("santri %s: %w", r.NIS, err)
			}
			m.WaliID = &wali
		}
		if _, err := s.t.Santri.Create(ctx, m); err != nil {
			return fmt.Errorf("insert santri %s: %w", r.NIS, err)
		}
		s.res["santri"]++
	}
	return nil
}

func (s *seeder) seedPengumuman(ctx context.Context, f File) error {
	for _, p := range f.Pengumuman {
		slug := helper.Slugify(p.Judul, 200)
		exists, err := store.Exists(ctx, s.t.Pengumuman, store.Eq{Column: "slug", Value: slug})
		if err != nil {
			return err
		}
		if exists {
			continue
		}
		penulis, err := s.user(ctx, p.Penulis)
		if err != nil {
			return fmt.Errorf("pengumuman %q: %w", p.Judul, err)
		}
		m := pengumumanModel.PengumumanModel{
			Judul:         p.Judul,
			Slug:          slug,
			Isi:           p.Isi,
			Kategori:      p.Kategori,
			PenulisID:     penulis,
			TanggalTerbit: dbtime.Today(),
			TargetRoles:   pq.StringArray(p.TargetRoles),
		}
		if m.Kategori == "" {
			m.Kategori = constants.PengumumanUmum
		}
		if p.TanggalTerbit != "" {
			if m.TanggalTerbit, err = dbtime.ParseDate(p.TanggalTerbit); err != nil {
				return fmt.Errorf("pengumuman %q: tanggal_terbit: %w", p.Judul, err)
			}
		}
		if _, err := s.t.Pengumuman.Create(ctx, m); err != nil {
			return fmt.Errorf("insert pengumuman %q: %w", p.Judul, err)
		}
		s.res["pengumuman"]++
	}
	return nil
}
