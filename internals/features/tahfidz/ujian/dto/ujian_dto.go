package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"tahfidz_backend/internals/constants"
	"tahfidz_backend/internals/features/tahfidz/ujian/model"
	"tahfidz_backend/internals/helpers/dbtime"
)

type CreateUjianRequest struct {
	SantriID        uuid.UUID  `json:"id_santri" validate:"required"`
	PengujiID       *uuid.UUID `json:"id_penguji,omitempty"`
	Jenis           string     `json:"jenis" validate:"required,oneof=tahapan manzil tasmi"`
	Tahap           int        `json:"tahap" validate:"required,min=1,max=30"`
	Tanggal         string     `json:"tanggal,omitempty" validate:"omitempty,tanggal"`
	NilaiTajwid     *float64   `json:"nilai_tajwid" validate:"required,gte=0,lte=100"`
	NilaiFashahah   *float64   `json:"nilai_fashahah" validate:"required,gte=0,lte=100"`
	NilaiKelancaran *float64   `json:"nilai_kelancaran" validate:"required,gte=0,lte=100"`
	Catatan         *string    `json:"catatan,omitempty" validate:"omitempty,max=1000"`
}

func (r *CreateUjianRequest) Normalize() {
	r.Jenis = strings.ToLower(strings.TrimSpace(r.Jenis))
	r.Tanggal = strings.TrimSpace(r.Tanggal)
}

// ToModel: nilai akhir & status diisi service dari tabel ambang.
func (r *CreateUjianRequest) ToModel() model.UjianModel {
	tgl := dbtime.Today()
	if r.Tanggal != "" {
		tgl, _ = dbtime.ParseDate(r.Tanggal)
	}
	return model.UjianModel{
		SantriID:        r.SantriID,
		Jenis:           r.Jenis,
		Tahap:           r.Tahap,
		Tanggal:         tgl,
		NilaiTajwid:     *r.NilaiTajwid,
		NilaiFashahah:   *r.NilaiFashahah,
		NilaiKelancaran: *r.NilaiKelancaran,
		Catatan:         r.Catatan,
	}
}

// UpdateUjianRequest: jenis & tahap tidak bisa diubah; hapus lalu buat baru.
type UpdateUjianRequest struct {
	Tanggal         *string  `json:"tanggal,omitempty" validate:"omitempty,tanggal"`
	NilaiTajwid     *float64 `json:"nilai_tajwid,omitempty" validate:"omitempty,gte=0,lte=100"`
	NilaiFashahah   *float64 `json:"nilai_fashahah,omitempty" validate:"omitempty,gte=0,lte=100"`
	NilaiKelancaran *float64 `json:"nilai_kelancaran,omitempty" validate:"omitempty,gte=0,lte=100"`
	Catatan         *string  `json:"catatan,omitempty" validate:"omitempty,max=1000"`
}

func (r *UpdateUjianRequest) ApplyToModel(m *model.UjianModel) {
	if r.Tanggal != nil {
		if tgl, err := dbtime.ParseDate(*r.Tanggal); err == nil {
			m.Tanggal = tgl
		}
	}
	if r.NilaiTajwid != nil {
		m.NilaiTajwid = *r.NilaiTajwid
	}
	if r.NilaiFashahah != nil {
		m.NilaiFashahah = *r.NilaiFashahah
	}
	if r.NilaiKelancaran != nil {
		m.NilaiKelancaran = *r.NilaiKelancaran
	}
	if r.Catatan != nil {
		m.Catatan = r.Catatan
	}
}

type UjianResponse struct {
	ID              uuid.UUID `json:"id"`
	SantriID        uuid.UUID `json:"id_santri"`
	NamaSantri      string    `json:"nama_santri,omitempty"`
	PengujiID       uuid.UUID `json:"id_penguji"`
	Jenis           string    `json:"jenis"`
	Tahap           int       `json:"tahap"`
	Tanggal         string    `json:"tanggal"`
	NilaiTajwid     float64   `json:"nilai_tajwid"`
	NilaiFashahah   float64   `json:"nilai_fashahah"`
	NilaiKelancaran float64   `json:"nilai_kelancaran"`
	NilaiAkhir      float64   `json:"nilai_akhir"`
	Lulus           bool      `json:"lulus"`
	Status          string    `json:"status"`
	Catatan         *string   `json:"catatan,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func FromModel(m model.UjianModel, namaSantri string) UjianResponse {
	return UjianResponse{
		ID:              m.ID,
		SantriID:        m.SantriID,
		NamaSantri:      namaSantri,
		PengujiID:       m.PengujiID,
		Jenis:           m.Jenis,
		Tahap:           m.Tahap,
		Tanggal:         dbtime.FormatDate(m.Tanggal),
		NilaiTajwid:     m.NilaiTajwid,
		NilaiFashahah:   m.NilaiFashahah,
		NilaiKelancaran: m.NilaiKelancaran,
		NilaiAkhir:      m.NilaiAkhir,
		Lulus:           m.Lulus,
		Status:          m.Status,
		Catatan:         m.Catatan,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
}

// JenisProgress: tahap tertinggi yang sudah lulus untuk satu jenis ujian.
type JenisProgress struct {
	TahapLulus      int `json:"tahap_lulus"`
	TahapBerikutnya int `json:"tahap_berikutnya"`
	JumlahUjian     int `json:"jumlah_ujian"`
}

type ProgressResponse struct {
	SantriID   uuid.UUID                `json:"id_santri"`
	NamaSantri string                   `json:"nama_santri"`
	Jenis      map[string]JenisProgress `json:"jenis"`
}

type ThresholdResponse struct {
	Rule string `json:"rule"`
	constants.ThresholdRule
}
