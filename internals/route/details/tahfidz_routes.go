package details

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	AbsensiRoutes "tahfidz_backend/internals/features/tahfidz/absensi/route"
	absensiService "tahfidz_backend/internals/features/tahfidz/absensi/service"
	HalaqohRoutes "tahfidz_backend/internals/features/tahfidz/halaqoh/route"
	halaqohService "tahfidz_backend/internals/features/tahfidz/halaqoh/service"
	KelasRoutes "tahfidz_backend/internals/features/tahfidz/kelas/route"
	kelasService "tahfidz_backend/internals/features/tahfidz/kelas/service"
	PenilaianRoutes "tahfidz_backend/internals/features/tahfidz/penilaian/route"
	penilaianService "tahfidz_backend/internals/features/tahfidz/penilaian/service"
	SantriRoutes "tahfidz_backend/internals/features/tahfidz/santri/route"
	santriService "tahfidz_backend/internals/features/tahfidz/santri/service"
	SetoranRoutes "tahfidz_backend/internals/features/tahfidz/setoran/route"
	setoranService "tahfidz_backend/internals/features/tahfidz/setoran/service"
	UjianRoutes "tahfidz_backend/internals/features/tahfidz/ujian/route"
	ujianService "tahfidz_backend/internals/features/tahfidz/ujian/service"
)

type TahfidzServices struct {
	Halaqoh   *halaqohService.HalaqohService
	Kelas     *kelasService.KelasService
	Santri    *santriService.SantriService
	Setoran   *setoranService.SetoranService
	Absensi   *absensiService.AbsensiService
	Penilaian *penilaianService.PenilaianService
	Ujian     *ujianService.UjianService
}

// Master data (halaqoh, kelas, santri) lalu data harian (setoran, absensi,
// penilaian, ujian). Semua di bawah /api dengan token.
func TahfidzPrivateRoutes(api fiber.Router, s TahfidzServices, log *zap.Logger) {
	HalaqohRoutes.HalaqohRoutes(api, s.Halaqoh, log)
	KelasRoutes.KelasRoutes(api, s.Kelas, log)
	SantriRoutes.SantriRoutes(api, s.Santri, log)

	SetoranRoutes.SetoranRoutes(api, s.Setoran, log)
	AbsensiRoutes.AbsensiRoutes(api, s.Absensi, log)
	PenilaianRoutes.PenilaianRoutes(api, s.Penilaian, log)
	UjianRoutes.UjianRoutes(api, s.Ujian, log)
}
