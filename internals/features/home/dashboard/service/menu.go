package service

import (
	"slices"

	"tahfidz_backend/internals/constants"
)

type MenuItem struct {
	Label string `json:"label"`
	Path  string `json:"path"`
}

type MenuGroup struct {
	Title string     `json:"title"`
	Roles []string   `json:"-"`
	Items []MenuItem `json:"items"`
}

// Menu sidebar. Urutan grup = urutan tampil.
var menuGroups = []MenuGroup{
	{
		Title: "Dashboard",
		Roles: []string{constants.RoleAdmin, constants.RoleWaliSantri},
		Items: []MenuItem{
			{Label: "Ringkasan", Path: "/dashboard"},
		},
	},
	{
		Title: "Manajemen Data",
		Roles: []string{constants.RoleAdmin},
		Items: []MenuItem{
			{Label: "Data Santri", Path: "/santri"},
			{Label: "Data Halaqoh", Path: "/halaqoh"},
			{Label: "Data Kelas", Path: "/kelas"},
			{Label: "Data User", Path: "/users"},
		},
	},
	{
		Title: "Manajemen Tahfidz",
		Roles: []string{constants.RoleAdmin, constants.RoleAsatidz},
		Items: []MenuItem{
			{Label: "Setoran Hafalan", Path: "/setoran"},
			{Label: "Absensi", Path: "/absensi"},
			{Label: "Penilaian", Path: "/penilaian"},
			{Label: "Ujian Tahapan", Path: "/ujian?jenis=tahapan"},
			{Label: "Ujian Manzil", Path: "/ujian?jenis=manzil"},
			{Label: "Ujian Tasmi'", Path: "/ujian?jenis=tasmi"},
		},
	},
	{
		Title: "Informasi",
		Roles: []string{constants.RoleAdmin},
		Items: []MenuItem{
			{Label: "Pengumuman", Path: "/pengumuman"},
			{Label: "Log Aktivitas", Path: "/log-aktivitas"},
		},
	},
	{
		Title: "Wali Santri",
		Roles: []string{constants.RoleAdmin, constants.RoleWaliSantri},
		Items: []MenuItem{
			{Label: "Perkembangan Anak", Path: "/wali/santri"},
			{Label: "Pengumuman", Path: "/wali/pengumuman"},
		},
	},
}

// MenuFor mengembalikan grup menu yang boleh dilihat role. Role tidak
// dikenal mendapat slice kosong.
func MenuFor(role string) []MenuGroup {
	out := make([]MenuGroup, 0, len(menuGroups))
	for _, g := range menuGroups {
		if slices.Contains(g.Roles, role) {
			out = append(out, g)
		}
	}
	return out
}
