package service

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"sekolahku_backend/internals/features/school/schools/model"
)

/* =========================
   Resource kinds
========================= */

type ResourceKind string

const (
	ResourceMembers      ResourceKind = "members"
	ResourceClasses      ResourceKind = "classes"
	ResourceSubjects     ResourceKind = "subjects"
	ResourceTotalStorage ResourceKind = "total_storage"
)

/* =========================
   Plan table
========================= */

// PlanLimits adalah ceiling per plan. Semua angka published tier hidup
// DI SINI — call site tidak boleh hard-code angka limit.
type PlanLimits struct {
	MaxMembers      int
	MaxClasses      int
	MaxSubjects     int
	MaxStorageBytes int64
}

const (
	freeStorageBytes       = int64(16_106_127_360)     // 15 GiB
	premiumStorageBytes    = int64(107_374_182_400)    // 100 GiB
	enterpriseStorageBytes = int64(10_737_418_240_000) // 10 TiB
	enterpriseClassCap     = 9999
	enterpriseSubjectCap   = 9999
)

var planTable = map[model.SchoolPlan]PlanLimits{
	model.SchoolPlanFree: {
		MaxMembers:      2,
		MaxClasses:      3,
		MaxSubjects:     3,
		MaxStorageBytes: freeStorageBytes,
	},
	model.SchoolPlanPremium: {
		MaxMembers:      3,
		MaxClasses:      20,
		MaxSubjects:     30,
		MaxStorageBytes: premiumStorageBytes,
	},
	// Enterprise: MaxMembers diisi caller saat upgrade (per kontrak).
	model.SchoolPlanEnterprise: {
		MaxClasses:      enterpriseClassCap,
		MaxSubjects:     enterpriseSubjectCap,
		MaxStorageBytes: enterpriseStorageBytes,
	},
}

// LimitsFor mengembalikan ceiling untuk sebuah plan.
// enterpriseMaxMembers hanya dipakai untuk plan enterprise.
func LimitsFor(plan model.SchoolPlan, enterpriseMaxMembers int) PlanLimits {
	l, ok := planTable[plan]
	if !ok {
		l = planTable[model.SchoolPlanFree]
	}
	if plan == model.SchoolPlanEnterprise {
		l.MaxMembers = enterpriseMaxMembers
	}
	return l
}

/* =========================
   Quota validation
========================= */

// Pesan QuotaExceeded per resource kind (dibedakan supaya UI bisa
// menampilkan guidance yang tepat).
const (
	ErrMsgMemberQuotaExceeded  = "member limit reached for the current plan"
	ErrMsgClassQuotaExceeded   = "class limit reached for the current plan"
	ErrMsgSubjectQuotaExceeded = "subject limit reached for the current plan"
	ErrMsgStorageQuotaExceeded = "storage limit reached for the current plan"
)

// ValidateLimit membandingkan prospectiveCount (count SETELAH operasi,
// yaitu existing+1 atau kumulatif bytes) terhadap limit di school.
// Fail closed: lewat limit → error, tidak pernah clamp diam-diam.
func ValidateLimit(s *model.SchoolModel, kind ResourceKind, prospectiveCount int64) error {
	switch kind {
	case ResourceMembers:
		if prospectiveCount > int64(s.SchoolLimitMemberNumber) {
			return fiber.NewError(fiber.StatusForbidden, ErrMsgMemberQuotaExceeded)
		}
	case ResourceClasses:
		if prospectiveCount > int64(s.SchoolLimitClassNumber) {
			return fiber.NewError(fiber.StatusForbidden, ErrMsgClassQuotaExceeded)
		}
	case ResourceSubjects:
		if prospectiveCount > int64(s.SchoolLimitSubjectNumber) {
			return fiber.NewError(fiber.StatusForbidden, ErrMsgSubjectQuotaExceeded)
		}
	case ResourceTotalStorage:
		if prospectiveCount > s.SchoolLimitStorageBytes {
			return fiber.NewError(fiber.StatusForbidden, ErrMsgStorageQuotaExceeded)
		}
	default:
		return fiber.NewError(fiber.StatusBadRequest, "unknown resource kind")
	}
	return nil
}

/* =========================
   Plan transitions
========================= */

// applyLimits menyalin ceiling plan ke record school.
// Keempat field limit selalu di-set bersama tier + billing metadata —
// tidak ada partial update.
func applyLimits(s *model.SchoolModel, plan model.SchoolPlan, limits PlanLimits) {
	s.SchoolPlan = plan
	s.SchoolLimitMemberNumber = limits.MaxMembers
	s.SchoolLimitClassNumber = limits.MaxClasses
	s.SchoolLimitSubjectNumber = limits.MaxSubjects
	s.SchoolLimitStorageBytes = limits.MaxStorageBytes
}

func ApplyPremiumPlan(s *model.SchoolModel, priceID, subscriptionID string, expiresAt time.Time) {
	applyLimits(s, model.SchoolPlanPremium, LimitsFor(model.SchoolPlanPremium, 0))
	s.SchoolPlanPriceID = &priceID
	s.SchoolPlanSubscriptionID = &subscriptionID
	s.SchoolPlanExpiresAt = &expiresAt
}

func ApplyEnterprisePlan(s *model.SchoolModel, maxMembers int, priceID, subscriptionID string, expiresAt time.Time) {
	applyLimits(s, model.SchoolPlanEnterprise, LimitsFor(model.SchoolPlanEnterprise, maxMembers))
	s.SchoolPlanPriceID = &priceID
	s.SchoolPlanSubscriptionID = &subscriptionID
	s.SchoolPlanExpiresAt = &expiresAt
}

func ApplyFreePlan(s *model.SchoolModel) {
	applyLimits(s, model.SchoolPlanFree, LimitsFor(model.SchoolPlanFree, 0))
	s.SchoolPlanPriceID = nil
	s.SchoolPlanSubscriptionID = nil
	s.SchoolPlanExpiresAt = nil
}
