package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestPercentageFor(t *testing.T) {
	p := CommissionPercentages{
		Coordinator:         40,
		DistrictCoordinator: 10,
		TeamLeader:          5,
		FieldEmployee:       15,
	}

	assert.Equal(t, 40.0, p.PercentageFor(RoleCoordinator))
	assert.Equal(t, 10.0, p.PercentageFor(RoleDistrictCoordinator))
	assert.Equal(t, 5.0, p.PercentageFor(RoleTeamLeader))
	assert.Equal(t, 15.0, p.PercentageFor(RoleFieldEmployee))
	assert.Zero(t, p.PercentageFor(RoleAdmin))
	assert.Zero(t, p.PercentageFor(RoleStudent))
}

func TestRefFor(t *testing.T) {
	fe, tl := primitive.NewObjectID(), primitive.NewObjectID()
	h := &ReferralHierarchy{
		ReferringFieldEmployee: &fe,
		TeamLeader:             &tl,
	}

	assert.Equal(t, &fe, h.RefFor(RoleFieldEmployee))
	assert.Equal(t, &tl, h.RefFor(RoleTeamLeader))
	assert.Nil(t, h.RefFor(RoleDistrictCoordinator))
	assert.Nil(t, h.RefFor(RoleCoordinator))
	assert.Nil(t, h.RefFor(RoleAdmin))
}

func TestRefFor_NilHierarchy(t *testing.T) {
	var h *ReferralHierarchy
	for _, role := range CommissionRoles {
		assert.Nil(t, h.RefFor(role))
	}
}
