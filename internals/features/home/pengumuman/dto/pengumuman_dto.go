package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"tahfidz_backend/internals/constants"
	"tahfidz_backend/internals/features/home/pengumuman/model"
	"tahfidz_backend/internals/helpers/dbtime"
)

type CreatePengumumanRequest struct {
	Judul         string   `json:"judul" validate:"notblank,max=200"`
	Isi           string   `json:"isi" validate:"notblank"`
	Kategori      string   `json:"kategori,omitempty" validate:"omitempty,oneof=Umum Akademik Kegiatan Libur"`
	TanggalTerbit string   `json:"tanggal_terbit,omitempty" validate:"omitempty,tanggal"`
	TargetRoles   []string `json:"target_roles,omitempty" validate:"omitempty,max=3,dive,role"`
}

func (r *CreatePengumumanRequest) Normalize() {
	r.Judul = strings.TrimSpace(r.Judul)
	r.Isi = strings.TrimSpace(r.Isi)
	r.Kategori = strings.TrimSpace(r.Kategori)
	if r.Kategori == "" {
		r.Kategori = constants.PengumumanUmum
	}
	r.TanggalTerbit = strings.TrimSpace(r.TanggalTerbit)
	r.TargetRoles = dedupe(r.TargetRoles)
}

func dedupe(roles []string) []string {
	if len(roles) == 0 {
		return nil
	}
	seen := make(map[string]bool, len(roles))
	out := make([]string, 0, len(roles))
	for _, r := range roles {
		r = strings.TrimSpace(r)
		if r == "" || seen[r] {
			continue
		}
		seen[r] = true
		out = append(out, r)
	}
	return out
}

// ToModel: slug & penulis diisi service.
func (r *CreatePengumumanRequest) ToModel() model.PengumumanModel {
	tgl := dbtime.Today()
	if r.TanggalTerbit != "" {
		tgl, _ = dbtime.ParseDate(r.TanggalTerbit)
	}
	return model.PengumumanModel{
		Judul:         r.Judul,
		Isi:           r.Isi,
		Kategori:      r.Kategori,
		TanggalTerbit: tgl,
		TargetRoles:   pq.StringArray(r.TargetRoles),
	}
}

type UpdatePengumumanRequest struct {
	Judul         *string   `json:"judul,omitempty" validate:"omitempty,notblank,max=200"`
	Isi           *string   `json:"isi,omitempty" validate:"omitempty,notblank"`
	Kategori      *string   `json:"kategori,omitempty" validate:"omitempty,oneof=Umum Akademik Kegiatan Libur"`
	TanggalTerbit *string   `json:"tanggal_terbit,omitempty" validate:"omitempty,tanggal"`
	TargetRoles   *[]string `json:"target_roles,omitempty" validate:"omitempty,max=3,dive,role"`
}

func (r *UpdatePengumumanRequest) Normalize() {
	if r.Judul != nil {
		v := strings.TrimSpace(*r.Judul)
		r.Judul = &v
	}
	if r.TargetRoles != nil {
		v := dedupe(*r.TargetRoles)
		r.TargetRoles = &v
	}
}

func (r *UpdatePengumumanRequest) ApplyToModel(m *model.PengumumanModel) {
	if r.Judul != nil {
		m.Judul = *r.Judul
	}
	if r.Isi != nil {
		m.Isi = strings.TrimSpace(*r.Isi)
	}
	if r.Kategori != nil {
		m.Kategori = *r.Kategori
	}
	if r.TanggalTerbit != nil {
		if tgl, err := dbtime.ParseDate(*r.TanggalTerbit); err == nil {
			m.TanggalTerbit = tgl
		}
	}
	if r.TargetRoles != nil {
		m.TargetRoles = pq.StringArray(*r.TargetRoles)
	}
}

type PengumumanResponse struct {
	ID            uuid.UUID `json:"id"`
	Judul         string    `json:"judul"`
	Slug          string    `json:"slug"`
	Isi           string    `json:"isi"`
	Kategori      string    `json:"kategori"`
	PenulisID     uuid.UUID `json:"id_penulis"`
	NamaPenulis   string    `json:"nama_penulis,omitempty"`
	TanggalTerbit string    `json:"tanggal_terbit"`
	TargetRoles   []string  `json:"target_roles"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func FromModel(m model.PengumumanModel, namaPenulis string) PengumumanResponse {
	roles := []string(m.TargetRoles)
	if roles == nil {
		roles = []string{}
	}
	return PengumumanResponse{
		ID:            m.ID,
		Judul:         m.Judul,
		Slug:          m.Slug,
		Isi:           m.Isi,
		Kategori:      m.Kategori,
		PenulisID:     m.PenulisID,
		NamaPenulis:   namaPenulis,
		TanggalTerbit: dbtime.FormatDate(m.TanggalTerbit),
		TargetRoles:   roles,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}
