package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"tahfidz_backend/internals/constants"
	"tahfidz_backend/internals/features/tahfidz/santri/model"
	"tahfidz_backend/internals/helpers/dbtime"
)

/* =======================================================
   REQUEST DTOs
   ======================================================= */

type CreateSantriRequest struct {
	NIS          string     `json:"nis" validate:"notblank,max=30"`
	Nama         string     `json:"nama" validate:"notblank,max=100"`
	JenisKelamin string     `json:"jenis_kelamin" validate:"required,oneof=L P"`
	HalaqohID    uuid.UUID  `json:"id_halaqoh" validate:"required"`
	KelasID      uuid.UUID  `json:"id_kelas" validate:"required"`
	WaliID       *uuid.UUID `json:"id_wali,omitempty"`
	TanggalMasuk string     `json:"tanggal_masuk" validate:"required,tanggal"`
	Status       string     `json:"status,omitempty" validate:"omitempty,oneof=Aktif NonAktif"`
}

func (r *CreateSantriRequest) Normalize() {
	r.NIS = strings.TrimSpace(r.NIS)
	r.Nama = strings.TrimSpace(r.Nama)
	r.JenisKelamin = strings.ToUpper(strings.TrimSpace(r.JenisKelamin))
	r.TanggalMasuk = strings.TrimSpace(r.TanggalMasuk)
	r.Status = strings.TrimSpace(r.Status)
	if r.Status == "" {
		r.Status = constants.SantriAktif
	}
	if r.WaliID != nil && *r.WaliID == uuid.Nil {
		r.WaliID = nil
	}
}

// ToModel dipanggil setelah validasi, jadi tanggal sudah pasti valid.
func (r *CreateSantriRequest) ToModel() model.SantriModel {
	tgl, _ := dbtime.ParseDate(r.TanggalMasuk)
	return model.SantriModel{
		NIS:          r.NIS,
		Nama:         r.Nama,
		JenisKelamin: r.JenisKelamin,
		HalaqohID:    r.HalaqohID,
		KelasID:      r.KelasID,
		WaliID:       r.WaliID,
		TanggalMasuk: tgl,
		Status:       r.Status,
	}
}

// UpdateSantriRequest: partial; id_wali "00000000-0000-0000-0000-000000000000" melepas wali
type UpdateSantriRequest struct {
	NIS          *string    `json:"nis,omitempty" validate:"omitempty,notblank,max=30"`
	Nama         *string    `json:"nama,omitempty" validate:"omitempty,notblank,max=100"`
	JenisKelamin *string    `json:"jenis_kelamin,omitempty" validate:"omitempty,oneof=L P"`
	HalaqohID    *uuid.UUID `json:"id_halaqoh,omitempty"`
	KelasID      *uuid.UUID `json:"id_kelas,omitempty"`
	WaliID       *uuid.UUID `json:"id_wali,omitempty"`
	TanggalMasuk *string    `json:"tanggal_masuk,omitempty" validate:"omitempty,tanggal"`
	Status       *string    `json:"status,omitempty" validate:"omitempty,oneof=Aktif NonAktif"`
}

func (r *UpdateSantriRequest) Normalize() {
	if r.NIS != nil {
		v := strings.TrimSpace(*r.NIS)
		r.NIS = &v
	}
	if r.Nama != nil {
		v := strings.TrimSpace(*r.Nama)
		r.Nama = &v
	}
	if r.JenisKelamin != nil {
		v := strings.ToUpper(strings.TrimSpace(*r.JenisKelamin))
		r.JenisKelamin = &v
	}
}

func (r *UpdateSantriRequest) ApplyToModel(m *model.SantriModel) {
	if r.NIS != nil {
		m.NIS = *r.NIS
	}
	if r.Nama != nil {
		m.Nama = *r.Nama
	}
	if r.JenisKelamin != nil {
		m.JenisKelamin = *r.JenisKelamin
	}
	if r.HalaqohID != nil {
		m.HalaqohID = *r.HalaqohID
	}
	if r.KelasID != nil {
		m.KelasID = *r.KelasID
	}
	if r.WaliID != nil {
		if *r.WaliID == uuid.Nil {
			m.WaliID = nil
		} else {
			v := *r.WaliID
			m.WaliID = &v
		}
	}
	if r.TanggalMasuk != nil {
		if tgl, err := dbtime.ParseDate(*r.TanggalMasuk); err == nil {
			m.TanggalMasuk = tgl
		}
	}
	if r.Status != nil {
		m.Status = *r.Status
	}
}

/* =======================================================
   RESPONSE DTOs
   ======================================================= */

type SantriResponse struct {
	ID           uuid.UUID  `json:"id"`
	NIS          string     `json:"nis"`
	Nama         string     `json:"nama"`
	JenisKelamin string     `json:"jenis_kelamin"`
	HalaqohID    uuid.UUID  `json:"id_halaqoh"`
	NamaHalaqoh  string     `json:"nama_halaqoh,omitempty"`
	KelasID      uuid.UUID  `json:"id_kelas"`
	NamaKelas    string     `json:"nama_kelas,omitempty"`
	WaliID       *uuid.UUID `json:"id_wali,omitempty"`
	TanggalMasuk string     `json:"tanggal_masuk"`
	Status       string     `json:"status"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

func FromModel(m model.SantriModel) SantriResponse {
	return SantriResponse{
		ID:           m.ID,
		NIS:          m.NIS,
		Nama:         m.Nama,
		JenisKelamin: m.JenisKelamin,
		HalaqohID:    m.HalaqohID,
		KelasID:      m.KelasID,
		WaliID:       m.WaliID,
		TanggalMasuk: dbtime.FormatDate(m.TanggalMasuk),
		Status:       m.Status,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}
