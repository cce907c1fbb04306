package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"tahfidz_backend/internals/features/tahfidz/kelas/model"
)

type CreateKelasRequest struct {
	Nama       string  `json:"nama_kelas" validate:"notblank,max=100"`
	Kategori   string  `json:"kategori" validate:"required,oneof=Ikhwan Akhwat"`
	Program    string  `json:"program" validate:"required,oneof=Reguler Takhassus Tahsin"`
	Keterangan *string `json:"keterangan,omitempty" validate:"omitempty,max=500"`
}

func (r *CreateKelasRequest) Normalize() {
	r.Nama = strings.TrimSpace(r.Nama)
	r.Kategori = strings.TrimSpace(r.Kategori)
	r.Program = strings.TrimSpace(r.Program)
}

func (r *CreateKelasRequest) ToModel() model.KelasModel {
	return model.KelasModel{
		Nama:       r.Nama,
		Kategori:   r.Kategori,
		Program:    r.Program,
		Keterangan: r.Keterangan,
	}
}

type UpdateKelasRequest struct {
	Nama       *string `json:"nama_kelas,omitempty" validate:"omitempty,notblank,max=100"`
	Kategori   *string `json:"kategori,omitempty" validate:"omitempty,oneof=Ikhwan Akhwat"`
	Program    *string `json:"program,omitempty" validate:"omitempty,oneof=Reguler Takhassus Tahsin"`
	Keterangan *string `json:"keterangan,omitempty" validate:"omitempty,max=500"`
}

func (r *UpdateKelasRequest) ApplyToModel(m *model.KelasModel) {
	if r.Nama != nil {
		m.Nama = strings.TrimSpace(*r.Nama)
	}
	if r.Kategori != nil {
		m.Kategori = *r.Kategori
	}
	if r.Program != nil {
		m.Program = *r.Program
	}
	if r.Keterangan != nil {
		if v := strings.TrimSpace(*r.Keterangan); v != "" {
			m.Keterangan = &v
		} else {
			m.Keterangan = nil
		}
	}
}

type KelasResponse struct {
	ID           uuid.UUID `json:"id"`
	Nama         string    `json:"nama_kelas"`
	Kategori     string    `json:"kategori"`
	Program      string    `json:"program"`
	Keterangan   *string   `json:"keterangan,omitempty"`
	JumlahSantri int64     `json:"jumlah_santri"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func FromModel(m model.KelasModel, jumlahSantri int64) KelasResponse {
	return KelasResponse{
		ID:           m.ID,
		Nama:         m.Nama,
		Kategori:     m.Kategori,
		Program:      m.Program,
		Keterangan:   m.Keterangan,
		JumlahSantri: jumlahSantri,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}
