package repositories

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/padhaihub/padhai_backend/models"
)

func TestCollectionForRole(t *testing.T) {
	tests := []struct {
		role       models.Role
		collection string
	}{
		{models.RoleCoordinator, "coordinators"},
		{models.RoleDistrictCoordinator, "districtCoordinators"},
		{models.RoleTeamLeader, "teamLeaders"},
		{models.RoleFieldEmployee, "fieldEmployees"},
	}

	for _, tc := range tests {
		t.Run(string(tc.role), func(t *testing.T) {
			coll, err := CollectionForRole(tc.role)
			require.NoError(t, err)
			assert.Equal(t, tc.collection, coll)
		})
	}
}

func TestCollectionForRole_RejectsNonWalletRoles(t *testing.T) {
	for _, role := range []models.Role{models.RoleAdmin, models.RoleStudent, models.Role("manager"), ""} {
		_, err := CollectionForRole(role)
		assert.ErrorIs(t, err, ErrUnknownRole, "role %q should not resolve", role)
	}
}

func TestRoleForReferralCode(t *testing.T) {
	tests := []struct {
		code string
		role models.Role
	}{
		{"CO-ABC123", models.RoleCoordinator},
		{"DC-XYZ789", models.RoleDistrictCoordinator},
		{"TL-DEF456", models.RoleTeamLeader},
		{"FE-GHI234", models.RoleFieldEmployee},
	}

	for _, tc := range tests {
		t.Run(tc.code, func(t *testing.T) {
			role, err := RoleForReferralCode(tc.code)
			require.NoError(t, err)
			assert.Equal(t, tc.role, role)
		})
	}
}

func TestRoleForReferralCode_Malformed(t *testing.T) {
	for _, code := range []string{"", "ABC123", "XX-ABC123", "fe-abc123"} {
		_, err := RoleForReferralCode(code)
		assert.Error(t, err, "code %q should not resolve", code)
	}
}
