package constants

// Status santri
const (
	SantriAktif    = "Aktif"
	SantriNonAktif = "NonAktif"
)

// Status setoran hafalan
const (
	SetoranLancar = "Lancar"
	SetoranUlangi = "Ulangi"
	SetoranSalah  = "Salah"
	SetoranLulus  = "Lulus"
)

// Status kehadiran
const (
	AbsensiHadir = "Hadir"
	AbsensiSakit = "Sakit"
	AbsensiIzin  = "Izin"
	AbsensiAlpha = "Alpha"
)

var AbsensiStatuses = []string{AbsensiHadir, AbsensiSakit, AbsensiIzin, AbsensiAlpha}

// Jenis ujian bertahap
const (
	UjianTahapan = "tahapan"
	UjianManzil  = "manzil"
	UjianTasmi   = "tasmi"
)

// Label hasil ujian
const (
	StatusLulus      = "Lulus"
	StatusTidakLulus = "Tidak Lulus"
)

// Kategori kelas & program
const (
	KelasIkhwan = "Ikhwan"
	KelasAkhwat = "Akhwat"

	ProgramReguler   = "Reguler"
	ProgramTakhassus = "Takhassus"
	ProgramTahsin    = "Tahsin"
)

// Jenis kelamin santri
const (
	LakiLaki  = "L"
	Perempuan = "P"
)

// Kategori pengumuman
const (
	PengumumanUmum     = "Umum"
	PengumumanAkademik = "Akademik"
	PengumumanKegiatan = "Kegiatan"
	PengumumanLibur    = "Libur"
)

// Format tanggal yang diterima dari form (YYYY-MM-DD)
const DateLayout = "2006-01-02"
