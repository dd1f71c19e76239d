package utils

import (
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var referralCodePattern = regexp.MustCompile(`^(CO|DC|TL|FE)-[A-Z0-9]{6}$`)

func TestGenerateReferralCode_Format(t *testing.T) {
	for _, entityType := range []ReferralType{CoordinatorType, DistrictCoordinatorType, TeamLeaderType, FieldEmployeeType} {
		t.Run(string(entityType), func(t *testing.T) {
			code, err := GenerateReferralCode(entityType)
			require.NoError(t, err)
			assert.True(t, referralCodePattern.MatchString(code), "unexpected code format: %s", code)
			assert.True(t, strings.HasPrefix(code, string(entityType)+"-"))
		})
	}
}

func TestGenerateReferralCode_Varies(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		code, err := GenerateReferralCode(FieldEmployeeType)
		require.NoError(t, err)
		seen[code] = true
	}
	// 4 random bytes make collisions across 50 draws vanishingly unlikely
	assert.Greater(t, len(seen), 45)
}

func TestRoleSpecificGenerators(t *testing.T) {
	feCode, err := GenerateFieldEmployeeReferralCode()
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(feCode, "FE-"))

	tlCode, err := GenerateTeamLeaderReferralCode()
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(tlCode, "TL-"))

	dcCode, err := GenerateDistrictCoordinatorReferralCode()
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(dcCode, "DC-"))

	coCode, err := GenerateCoordinatorReferralCode()
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(coCode, "CO-"))
}
