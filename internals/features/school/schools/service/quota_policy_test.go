package service

import (
	"errors"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sekolahku_backend/internals/features/school/schools/model"
)

func freeSchool() *model.SchoolModel {
	s := &model.SchoolModel{SchoolName: "SD Harapan", SchoolSlug: "sd-harapan"}
	ApplyFreePlan(s)
	return s
}

func TestLimitsFor(t *testing.T) {
	free := LimitsFor(model.SchoolPlanFree, 0)
	assert.Equal(t, 2, free.MaxMembers)
	assert.Equal(t, 3, free.MaxClasses)
	assert.Equal(t, 3, free.MaxSubjects)
	assert.Equal(t, int64(16_106_127_360), free.MaxStorageBytes)

	premium := LimitsFor(model.SchoolPlanPremium, 0)
	assert.Equal(t, 3, premium.MaxMembers)
	assert.Equal(t, 20, premium.MaxClasses)
	assert.Equal(t, 30, premium.MaxSubjects)
	assert.Equal(t, int64(107_374_182_400), premium.MaxStorageBytes)

	ent := LimitsFor(model.SchoolPlanEnterprise, 250)
	assert.Equal(t, 250, ent.MaxMembers)
	assert.Equal(t, 9999, ent.MaxClasses)
	assert.Equal(t, 9999, ent.MaxSubjects)
	assert.Equal(t, int64(10_737_418_240_000), ent.MaxStorageBytes)
}

func TestLimitsFor_UnknownPlanFallsBackToFree(t *testing.T) {
	got := LimitsFor(model.SchoolPlan("platinum"), 0)
	assert.Equal(t, LimitsFor(model.SchoolPlanFree, 0), got)
}

// Boundary: kelas ke-3 di FREE masih boleh, kelas ke-4 ditolak.
func TestValidateLimit_ClassBoundaryOnFree(t *testing.T) {
	s := freeSchool()

	require.NoError(t, ValidateLimit(s, ResourceClasses, 3))

	err := ValidateLimit(s, ResourceClasses, 4)
	require.Error(t, err)

	var fe *fiber.Error
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, fiber.StatusForbidden, fe.Code)
	assert.Equal(t, ErrMsgClassQuotaExceeded, fe.Message)
}

func TestValidateLimit_PerKindMessages(t *testing.T) {
	s := freeSchool()

	cases := []struct {
		kind    ResourceKind
		over    int64
		wantMsg string
	}{
		{ResourceMembers, 3, ErrMsgMemberQuotaExceeded},
		{ResourceClasses, 4, ErrMsgClassQuotaExceeded},
		{ResourceSubjects, 4, ErrMsgSubjectQuotaExceeded},
		{ResourceTotalStorage, 16_106_127_361, ErrMsgStorageQuotaExceeded},
	}
	for _, tc := range cases {
		err := ValidateLimit(s, tc.kind, tc.over)
		require.Error(t, err, string(tc.kind))

		var fe *fiber.Error
		require.True(t, errors.As(err, &fe))
		assert.Equal(t, fiber.StatusForbidden, fe.Code)
		assert.Equal(t, tc.wantMsg, fe.Message)
	}
}

func TestValidateLimit_UnknownKindFailsClosed(t *testing.T) {
	err := ValidateLimit(freeSchool(), ResourceKind("gpu_hours"), 1)
	require.Error(t, err)
}

// Transisi plan selalu atomik: tier + 4 limit + metadata billing
// berubah bersama.
func TestPlanTransitions(t *testing.T) {
	s := freeSchool()
	exp := time.Now().Add(30 * 24 * time.Hour)

	ApplyPremiumPlan(s, "price_premium_monthly", "sub-123", exp)
	assert.Equal(t, model.SchoolPlanPremium, s.SchoolPlan)
	assert.Equal(t, 3, s.SchoolLimitMemberNumber)
	assert.Equal(t, 20, s.SchoolLimitClassNumber)
	assert.Equal(t, 30, s.SchoolLimitSubjectNumber)
	assert.Equal(t, int64(107_374_182_400), s.SchoolLimitStorageBytes)
	require.NotNil(t, s.SchoolPlanSubscriptionID)
	assert.Equal(t, "sub-123", *s.SchoolPlanSubscriptionID)

	ApplyEnterprisePlan(s, 500, "price_ent", "sub-456", exp)
	assert.Equal(t, model.SchoolPlanEnterprise, s.SchoolPlan)
	assert.Equal(t, 500, s.SchoolLimitMemberNumber)
	assert.Equal(t, 9999, s.SchoolLimitClassNumber)
	assert.Equal(t, int64(10_737_418_240_000), s.SchoolLimitStorageBytes)

	ApplyFreePlan(s)
	assert.Equal(t, model.SchoolPlanFree, s.SchoolPlan)
	assert.Equal(t, 2, s.SchoolLimitMemberNumber)
	assert.Nil(t, s.SchoolPlanPriceID)
	assert.Nil(t, s.SchoolPlanSubscriptionID)
	assert.Nil(t, s.SchoolPlanExpiresAt)
}
