package constants

import "fmt"

const (
	RoleAdmin      = "Admin"
	RoleAsatidz    = "Asatidz"
	RoleWaliSantri = "WaliSantri"
)

// Template pesan error role
const (
	ErrOnlyAdminsCanAccess  = "❌ Hanya admin yang boleh mengakses fitur %s."
	ErrOnlyStaffCanAccess   = "❌ Hanya admin atau asatidz yang boleh mengakses fitur %s."
	ErrOnlyMembersCanAccess = "❌ Anda tidak memiliki akses ke fitur %s."
)

func RoleErrorAdmin(feature string) string {
	return fmt.Sprintf(ErrOnlyAdminsCanAccess, feature)
}

func RoleErrorStaff(feature string) string {
	return fmt.Sprintf(ErrOnlyStaffCanAccess, feature)
}

func RoleErrorMember(feature string) string {
	return fmt.Sprintf(ErrOnlyMembersCanAccess, feature)
}

// ==========================
// ✅ Grouped Role Slices
// ==========================
var (
	AllRoles = []string{
		RoleAdmin,
		RoleAsatidz,
		RoleWaliSantri,
	}

	StaffRoles = []string{
		RoleAdmin,
		RoleAsatidz,
	}

	AdminOnly = []string{
		RoleAdmin,
	}
)

func IsValidRole(role string) bool {
	for _, r := range AllRoles {
		if r == role {
			return true
		}
	}
	return false
}
