package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CommissionPercentages holds the configured split per role, each in [0,100].
type CommissionPercentages struct {
	Coordinator         float64 `bson:"coordinatorPercentage" json:"coordinatorPercentage"`
	DistrictCoordinator float64 `bson:"districtCoordinatorPercentage" json:"districtCoordinatorPercentage"`
	TeamLeader          float64 `bson:"teamLeaderPercentage" json:"teamLeaderPercentage"`
	FieldEmployee       float64 `bson:"fieldEmployeePercentage" json:"fieldEmployeePercentage"`
}

// DefaultCommissionSettings applies when no settings record has been created.
var DefaultCommissionSettings = CommissionPercentages{
	Coordinator:         40,
	DistrictCoordinator: 10,
	TeamLeader:          10,
	FieldEmployee:       10,
}

// CommissionSettings is a versioned settings record. Updates never mutate in
// place: the active record is deactivated and a new active one is inserted.
// A partial unique index keeps at most one record with isActive=true.
type CommissionSettings struct {
	ID                    primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	CommissionPercentages `bson:",inline"`
	UpdatedBy             primitive.ObjectID `bson:"updatedBy" json:"updatedBy"`
	IsActive              bool               `bson:"isActive" json:"isActive"`
	CreatedAt             time.Time          `bson:"createdAt" json:"createdAt"`
}

// UpdateCommissionSettingsRequest carries a partial update; omitted fields
// inherit the previous active record's values.
type UpdateCommissionSettingsRequest struct {
	Coordinator         *float64 `json:"coordinatorPercentage,omitempty"`
	DistrictCoordinator *float64 `json:"districtCoordinatorPercentage,omitempty"`
	TeamLeader          *float64 `json:"teamLeaderPercentage,omitempty"`
	FieldEmployee       *float64 `json:"fieldEmployeePercentage,omitempty"`
}

// PercentageFor returns the configured cut for a commission role.
func (p CommissionPercentages) PercentageFor(role Role) float64 {
	switch role {
	case RoleCoordinator:
		return p.Coordinator
	case RoleDistrictCoordinator:
		return p.DistrictCoordinator
	case RoleTeamLeader:
		return p.TeamLeader
	case RoleFieldEmployee:
		return p.FieldEmployee
	}
	return 0
}
