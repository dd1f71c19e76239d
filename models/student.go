package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ReferralHierarchy is the chain of accounts that recruited a student,
// captured once at signup from the referring field employee's creator chain.
// The distribution engine trusts it as-is and never re-derives it.
type ReferralHierarchy struct {
	ReferringFieldEmployee *primitive.ObjectID `json:"referringFieldEmployee,omitempty" bson:"referringFieldEmployee,omitempty"`
	TeamLeader             *primitive.ObjectID `json:"teamLeader,omitempty" bson:"teamLeader,omitempty"`
	DistrictCoordinator    *primitive.ObjectID `json:"districtCoordinator,omitempty" bson:"districtCoordinator,omitempty"`
	Coordinator            *primitive.ObjectID `json:"coordinator,omitempty" bson:"coordinator,omitempty"`
	Admin                  *primitive.ObjectID `json:"admin,omitempty" bson:"admin,omitempty"`
}

// RefFor returns the stored reference for a commission role, if any.
func (h *ReferralHierarchy) RefFor(role Role) *primitive.ObjectID {
	if h == nil {
		return nil
	}
	switch role {
	case RoleFieldEmployee:
		return h.ReferringFieldEmployee
	case RoleTeamLeader:
		return h.TeamLeader
	case RoleDistrictCoordinator:
		return h.DistrictCoordinator
	case RoleCoordinator:
		return h.Coordinator
	}
	return nil
}

type Student struct {
	ID                primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	FullName          string             `json:"fullName" bson:"fullName"`
	Email             string             `json:"email" bson:"email"`
	Password          string             `json:"password,omitempty" bson:"password"`
	PhoneNumber       string             `json:"phoneNumber" bson:"phoneNumber"`
	ReferralHierarchy *ReferralHierarchy `json:"referralHierarchy,omitempty" bson:"referralHierarchy,omitempty"`
	IsActive          bool               `json:"isActive" bson:"isActive"`
	CreatedAt         time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt         time.Time          `json:"updatedAt" bson:"updatedAt"`
}

type StudentSignupRequest struct {
	FullName     string `json:"fullName" validate:"required"`
	Email        string `json:"email" validate:"required,email"`
	Password     string `json:"password" validate:"required,min=8"`
	PhoneNumber  string `json:"phoneNumber" validate:"required"`
	ReferralCode string `json:"referralCode,omitempty"`
}
