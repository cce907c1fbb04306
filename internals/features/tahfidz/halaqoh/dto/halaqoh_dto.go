package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"tahfidz_backend/internals/features/tahfidz/halaqoh/model"
)

type CreateHalaqohRequest struct {
	Nama       string    `json:"nama_halaqoh" validate:"notblank,max=100"`
	AsatidzID  uuid.UUID `json:"id_asatidz" validate:"required"`
	Keterangan *string   `json:"keterangan,omitempty" validate:"omitempty,max=500"`
}

func (r *CreateHalaqohRequest) Normalize() {
	r.Nama = strings.TrimSpace(r.Nama)
	r.Keterangan = trimOptional(r.Keterangan)
}

func (r *CreateHalaqohRequest) ToModel() model.HalaqohModel {
	return model.HalaqohModel{Nama: r.Nama, AsatidzID: r.AsatidzID, Keterangan: r.Keterangan}
}

type UpdateHalaqohRequest struct {
	Nama       *string    `json:"nama_halaqoh,omitempty" validate:"omitempty,notblank,max=100"`
	AsatidzID  *uuid.UUID `json:"id_asatidz,omitempty"`
	Keterangan *string    `json:"keterangan,omitempty" validate:"omitempty,max=500"`
}

func (r *UpdateHalaqohRequest) Normalize() {
	if r.Nama != nil {
		v := strings.TrimSpace(*r.Nama)
		r.Nama = &v
	}
}

func (r *UpdateHalaqohRequest) ApplyToModel(m *model.HalaqohModel) {
	if r.Nama != nil {
		m.Nama = *r.Nama
	}
	if r.AsatidzID != nil {
		m.AsatidzID = *r.AsatidzID
	}
	if r.Keterangan != nil {
		m.Keterangan = trimOptional(r.Keterangan)
	}
}

// string kosong = hapus keterangan
func trimOptional(p *string) *string {
	if p == nil {
		return nil
	}
	v := strings.TrimSpace(*p)
	if v == "" {
		return nil
	}
	return &v
}

type HalaqohResponse struct {
	ID           uuid.UUID `json:"id"`
	Nama         string    `json:"nama_halaqoh"`
	AsatidzID    uuid.UUID `json:"id_asatidz"`
	NamaAsatidz  string    `json:"nama_asatidz,omitempty"`
	Keterangan   *string   `json:"keterangan,omitempty"`
	JumlahSantri int64     `json:"jumlah_santri"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func FromModel(m model.HalaqohModel, namaAsatidz string, jumlahSantri int64) HalaqohResponse {
	return HalaqohResponse{
		ID:           m.ID,
		Nama:         m.Nama,
		AsatidzID:    m.AsatidzID,
		NamaAsatidz:  namaAsatidz,
		Keterangan:   m.Keterangan,
		JumlahSantri: jumlahSantri,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}
