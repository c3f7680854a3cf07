package constants

// Role global pada token (bukan role keanggotaan sekolah —
// role per sekolah hidup di school_memberships).
const (
	RoleUser  = "user"
	RoleOwner = "owner"
)

// Role keanggotaan (school_memberships & subject_memberships)
const (
	MemberRoleAdmin   = "admin"
	MemberRoleTeacher = "teacher"
)
