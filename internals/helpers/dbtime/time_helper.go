// file: internals/helpers/dbtime/time_helper.go
package dbtime

import (
	"strings"
	"time"

	"gorm.io/datatypes"

	"tahfidz_backend/internals/constants"
)

var jakarta = loadJakarta()

func loadJakarta() *time.Location {
	if loc, err := time.LoadLocation("Asia/Jakarta"); err == nil {
		return loc
	}
	// tzdata tidak tersedia di image minimal
	return time.FixedZone("WIB", 7*60*60)
}

// Location: zona waktu operasional pondok (WIB).
func Location() *time.Location { return jakarta }

// Today: tanggal hari ini menurut WIB, jam 00:00 UTC.
func Today() datatypes.Date {
	return DateOf(time.Now())
}

// DateOf memotong t ke tanggal WIB-nya.
func DateOf(t time.Time) datatypes.Date {
	y, m, d := t.In(jakarta).Date()
	return datatypes.Date(time.Date(y, m, d, 0, 0, 0, 0, time.UTC))
}

// ParseDate menerima "YYYY-MM-DD".
func ParseDate(s string) (datatypes.Date, error) {
	t, err := time.Parse(constants.DateLayout, strings.TrimSpace(s))
	if err != nil {
		return datatypes.Date{}, err
	}
	return datatypes.Date(t), nil
}

func FormatDate(d datatypes.Date) string {
	return time.Time(d).Format(constants.DateLayout)
}
