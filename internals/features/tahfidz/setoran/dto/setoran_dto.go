package dto

import (
	"math"
	"strings"
	"time"

	"github.com/google/uuid"

	"tahfidz_backend/internals/features/tahfidz/setoran/model"
	"tahfidz_backend/internals/helpers/dbtime"
)

// CreateSetoranRequest: nilai pakai pointer supaya 0 tetap sah dan field
// yang tidak dikirim tertangkap "required".
type CreateSetoranRequest struct {
	SantriID        uuid.UUID  `json:"id_santri" validate:"required"`
	AsatidzID       *uuid.UUID `json:"id_asatidz,omitempty"`
	Tanggal         string     `json:"tanggal,omitempty" validate:"omitempty,tanggal"`
	Juz             int        `json:"juz" validate:"required,min=1,max=30"`
	Surah           string     `json:"surah" validate:"notblank,max=50"`
	AyatMulai       int        `json:"ayat_mulai" validate:"required,min=1,max=286"`
	AyatSelesai     int        `json:"ayat_selesai" validate:"required,max=286,gtefield=AyatMulai"`
	NilaiKelancaran *float64   `json:"nilai_kelancaran" validate:"required,gte=0,lte=100"`
	NilaiTajwid     *float64   `json:"nilai_tajwid" validate:"required,gte=0,lte=100"`
	NilaiMakharij   *float64   `json:"nilai_makharij" validate:"required,gte=0,lte=100"`
	Status          string     `json:"status,omitempty" validate:"omitempty,oneof=Lancar Ulangi Salah Lulus"`
	Catatan         *string    `json:"catatan,omitempty" validate:"omitempty,max=1000"`
}

func (r *CreateSetoranRequest) Normalize() {
	r.Surah = strings.TrimSpace(r.Surah)
	r.Tanggal = strings.TrimSpace(r.Tanggal)
	r.Status = strings.TrimSpace(r.Status)
}

// ToModel: tanggal kosong = hari ini (WIB). Status & asatidz diisi service.
func (r *CreateSetoranRequest) ToModel() model.SetoranModel {
	tgl := dbtime.Today()
	if r.Tanggal != "" {
		tgl, _ = dbtime.ParseDate(r.Tanggal)
	}
	return model.SetoranModel{
		SantriID:        r.SantriID,
		Tanggal:         tgl,
		Juz:             r.Juz,
		Surah:           r.Surah,
		AyatMulai:       r.AyatMulai,
		AyatSelesai:     r.AyatSelesai,
		NilaiKelancaran: deref(r.NilaiKelancaran),
		NilaiTajwid:     deref(r.NilaiTajwid),
		NilaiMakharij:   deref(r.NilaiMakharij),
		Status:          r.Status,
		Catatan:         r.Catatan,
	}
}

func deref(p *float64) float64 {
	if p == nil {
		return 0
	}
	return *p
}

type UpdateSetoranRequest struct {
	Tanggal         *string  `json:"tanggal,omitempty" validate:"omitempty,tanggal"`
	Juz             *int     `json:"juz,omitempty" validate:"omitempty,min=1,max=30"`
	Surah           *string  `json:"surah,omitempty" validate:"omitempty,notblank,max=50"`
	AyatMulai       *int     `json:"ayat_mulai,omitempty" validate:"omitempty,min=1,max=286"`
	AyatSelesai     *int     `json:"ayat_selesai,omitempty" validate:"omitempty,min=1,max=286"`
	NilaiKelancaran *float64 `json:"nilai_kelancaran,omitempty" validate:"omitempty,gte=0,lte=100"`
	NilaiTajwid     *float64 `json:"nilai_tajwid,omitempty" validate:"omitempty,gte=0,lte=100"`
	NilaiMakharij   *float64 `json:"nilai_makharij,omitempty" validate:"omitempty,gte=0,lte=100"`
	Status          *string  `json:"status,omitempty" validate:"omitempty,oneof=Lancar Ulangi Salah Lulus"`
	Catatan         *string  `json:"catatan,omitempty" validate:"omitempty,max=1000"`
}

// ScoresChanged true bila salah satu nilai dikirim.
func (r *UpdateSetoranRequest) ScoresChanged() bool {
	return r.NilaiKelancaran != nil || r.NilaiTajwid != nil || r.NilaiMakharij != nil
}

func (r *UpdateSetoranRequest) ApplyToModel(m *model.SetoranModel) {
	if r.Tanggal != nil {
		if tgl, err := dbtime.ParseDate(*r.Tanggal); err == nil {
			m.Tanggal = tgl
		}
	}
	if r.Juz != nil {
		m.Juz = *r.Juz
	}
	if r.Surah != nil {
		m.Surah = strings.TrimSpace(*r.Surah)
	}
	if r.AyatMulai != nil {
		m.AyatMulai = *r.AyatMulai
	}
	if r.AyatSelesai != nil {
		m.AyatSelesai = *r.AyatSelesai
	}
	if r.NilaiKelancaran != nil {
		m.NilaiKelancaran = *r.NilaiKelancaran
	}
	if r.NilaiTajwid != nil {
		m.NilaiTajwid = *r.NilaiTajwid
	}
	if r.NilaiMakharij != nil {
		m.NilaiMakharij = *r.NilaiMakharij
	}
	if r.Status != nil {
		m.Status = *r.Status
	}
	if r.Catatan != nil {
		m.Catatan = r.Catatan
	}
}

type SetoranResponse struct {
	ID              uuid.UUID `json:"id"`
	SantriID        uuid.UUID `json:"id_santri"`
	NamaSantri      string    `json:"nama_santri,omitempty"`
	AsatidzID       uuid.UUID `json:"id_asatidz"`
	Tanggal         string    `json:"tanggal"`
	Juz             int       `json:"juz"`
	Surah           string    `json:"surah"`
	AyatMulai       int       `json:"ayat_mulai"`
	AyatSelesai     int       `json:"ayat_selesai"`
	NilaiKelancaran float64   `json:"nilai_kelancaran"`
	NilaiTajwid     float64   `json:"nilai_tajwid"`
	NilaiMakharij   float64   `json:"nilai_makharij"`
	RataRata        float64   `json:"rata_rata"`
	Status          string    `json:"status"`
	Catatan         *string   `json:"catatan,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func FromModel(m model.SetoranModel, namaSantri string) SetoranResponse {
	return SetoranResponse{
		ID:              m.ID,
		SantriID:        m.SantriID,
		NamaSantri:      namaSantri,
		AsatidzID:       m.AsatidzID,
		Tanggal:         dbtime.FormatDate(m.Tanggal),
		Juz:             m.Juz,
		Surah:           m.Surah,
		AyatMulai:       m.AyatMulai,
		AyatSelesai:     m.AyatSelesai,
		NilaiKelancaran: m.NilaiKelancaran,
		NilaiTajwid:     m.NilaiTajwid,
		NilaiMakharij:   m.NilaiMakharij,
		RataRata:        math.Round(m.RataRata()*100) / 100,
		Status:          m.Status,
		Catatan:         m.Catatan,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
}
