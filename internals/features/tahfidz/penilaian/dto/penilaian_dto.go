package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"tahfidz_backend/internals/features/tahfidz/penilaian/model"
)

type CreatePenilaianRequest struct {
	SantriID   uuid.UUID `json:"id_santri" validate:"required"`
	Periode    string    `json:"periode" validate:"notblank,max=30"`
	Tajwid     *float64  `json:"tajwid" validate:"required,gte=0,lte=100"`
	Fashahah   *float64  `json:"fashahah" validate:"required,gte=0,lte=100"`
	Kelancaran *float64  `json:"kelancaran" validate:"required,gte=0,lte=100"`
	Catatan    *string   `json:"catatan,omitempty" validate:"omitempty,max=1000"`
}

func (r *CreatePenilaianRequest) Normalize() {
	r.Periode = strings.TrimSpace(r.Periode)
}

// ToModel: rata-rata & predikat dihitung service.
func (r *CreatePenilaianRequest) ToModel() model.PenilaianModel {
	return model.PenilaianModel{
		SantriID:   r.SantriID,
		Periode:    r.Periode,
		Tajwid:     *r.Tajwid,
		Fashahah:   *r.Fashahah,
		Kelancaran: *r.Kelancaran,
		Catatan:    r.Catatan,
	}
}

type UpdatePenilaianRequest struct {
	Periode    *string  `json:"periode,omitempty" validate:"omitempty,notblank,max=30"`
	Tajwid     *float64 `json:"tajwid,omitempty" validate:"omitempty,gte=0,lte=100"`
	Fashahah   *float64 `json:"fashahah,omitempty" validate:"omitempty,gte=0,lte=100"`
	Kelancaran *float64 `json:"kelancaran,omitempty" validate:"omitempty,gte=0,lte=100"`
	Catatan    *string  `json:"catatan,omitempty" validate:"omitempty,max=1000"`
}

func (r *UpdatePenilaianRequest) ApplyToModel(m *model.PenilaianModel) {
	if r.Periode != nil {
		m.Periode = strings.TrimSpace(*r.Periode)
	}
	if r.Tajwid != nil {
		m.Tajwid = *r.Tajwid
	}
	if r.Fashahah != nil {
		m.Fashahah = *r.Fashahah
	}
	if r.Kelancaran != nil {
		m.Kelancaran = *r.Kelancaran
	}
	if r.Catatan != nil {
		m.Catatan = r.Catatan
	}
}

type PenilaianResponse struct {
	ID         uuid.UUID `json:"id"`
	SantriID   uuid.UUID `json:"id_santri"`
	NamaSantri string    `json:"nama_santri,omitempty"`
	PenilaiID  uuid.UUID `json:"id_penilai"`
	Periode    string    `json:"periode"`
	Tajwid     float64   `json:"tajwid"`
	Fashahah   float64   `json:"fashahah"`
	Kelancaran float64   `json:"kelancaran"`
	RataRata   float64   `json:"rata_rata"`
	Predikat   string    `json:"predikat"`
	Catatan    *string   `json:"catatan,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func FromModel(m model.PenilaianModel, namaSantri string) PenilaianResponse {
	return PenilaianResponse{
		ID:         m.ID,
		SantriID:   m.SantriID,
		NamaSantri: namaSantri,
		PenilaiID:  m.PenilaiID,
		Periode:    m.Periode,
		Tajwid:     m.Tajwid,
		Fashahah:   m.Fashahah,
		Kelancaran: m.Kelancaran,
		RataRata:   m.RataRata,
		Predikat:   m.Predikat,
		Catatan:    m.Catatan,
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
	}
}
