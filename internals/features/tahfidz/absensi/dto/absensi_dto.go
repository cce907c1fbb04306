package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"tahfidz_backend/internals/features/tahfidz/absensi/model"
	"tahfidz_backend/internals/helpers/dbtime"
)

type CreateAbsensiRequest struct {
	SantriID   uuid.UUID `json:"id_santri" validate:"required"`
	Tanggal    string    `json:"tanggal,omitempty" validate:"omitempty,tanggal"`
	Status     string    `json:"status" validate:"required,oneof=Hadir Sakit Izin Alpha"`
	Keterangan *string   `json:"keterangan,omitempty" validate:"omitempty,max=500"`
}

func (r *CreateAbsensiRequest) Normalize() {
	r.Tanggal = strings.TrimSpace(r.Tanggal)
	r.Status = normalizeStatus(r.Status)
}

// normalizeStatus: "hadir" → "Hadir"
func normalizeStatus(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + strings.ToLower(s[1:])
}

func (r *CreateAbsensiRequest) ToModel() model.AbsensiModel {
	tgl := dbtime.Today()
	if r.Tanggal != "" {
		tgl, _ = dbtime.ParseDate(r.Tanggal)
	}
	return model.AbsensiModel{
		SantriID:   r.SantriID,
		Tanggal:    tgl,
		Status:     r.Status,
		Keterangan: r.Keterangan,
	}
}

type UpdateAbsensiRequest struct {
	Status     *string `json:"status,omitempty" validate:"omitempty,oneof=Hadir Sakit Izin Alpha"`
	Keterangan *string `json:"keterangan,omitempty" validate:"omitempty,max=500"`
}

func (r *UpdateAbsensiRequest) Normalize() {
	if r.Status != nil {
		s := normalizeStatus(*r.Status)
		r.Status = &s
	}
}

func (r *UpdateAbsensiRequest) ApplyToModel(m *model.AbsensiModel) {
	if r.Status != nil {
		m.Status = *r.Status
	}
	if r.Keterangan != nil {
		m.Keterangan = r.Keterangan
	}
}

// BulkAbsensiRequest: absensi satu halaqoh untuk satu tanggal. Record yang
// sudah ada pada tanggal itu diperbarui, sisanya dibuat.
type BulkAbsensiRequest struct {
	Tanggal string            `json:"tanggal,omitempty" validate:"omitempty,tanggal"`
	Items   []BulkAbsensiItem `json:"items" validate:"required,min=1,max=200,dive"`
}

type BulkAbsensiItem struct {
	SantriID   uuid.UUID `json:"id_santri" validate:"required"`
	Status     string    `json:"status" validate:"required,oneof=Hadir Sakit Izin Alpha"`
	Keterangan *string   `json:"keterangan,omitempty" validate:"omitempty,max=500"`
}

func (r *BulkAbsensiRequest) Normalize() {
	r.Tanggal = strings.TrimSpace(r.Tanggal)
	for i := range r.Items {
		r.Items[i].Status = normalizeStatus(r.Items[i].Status)
	}
}

type AbsensiResponse struct {
	ID         uuid.UUID `json:"id"`
	SantriID   uuid.UUID `json:"id_santri"`
	NamaSantri string    `json:"nama_santri,omitempty"`
	Tanggal    string    `json:"tanggal"`
	Status     string    `json:"status"`
	Keterangan *string   `json:"keterangan,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func FromModel(m model.AbsensiModel, namaSantri string) AbsensiResponse {
	return AbsensiResponse{
		ID:         m.ID,
		SantriID:   m.SantriID,
		NamaSantri: namaSantri,
		Tanggal:    dbtime.FormatDate(m.Tanggal),
		Status:     m.Status,
		Keterangan: m.Keterangan,
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
	}
}

// RekapResponse: jumlah per status pada satu tanggal.
type RekapResponse struct {
	Tanggal      string           `json:"tanggal"`
	HalaqohID    *uuid.UUID       `json:"id_halaqoh,omitempty"`
	JumlahSantri int64            `json:"jumlah_santri"`
	BelumDiisi   int64            `json:"belum_diisi"`
	PerStatus    map[string]int64 `json:"per_status"`
}
