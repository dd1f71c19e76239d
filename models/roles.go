package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Role identifies which collection a commission-eligible account lives in.
type Role string

const (
	RoleSuperAdmin          Role = "superAdmin"
	RoleAdmin               Role = "admin"
	RoleCoordinator         Role = "coordinator"
	RoleDistrictCoordinator Role = "districtCoordinator"
	RoleTeamLeader          Role = "teamLeader"
	RoleFieldEmployee       Role = "fieldEmployee"
	RoleStudent             Role = "student"
)

// CommissionRoles lists the roles that own a wallet, ordered from the bottom
// of the referral chain upward. Distribution credits them in this order.
var CommissionRoles = []Role{
	RoleFieldEmployee,
	RoleTeamLeader,
	RoleDistrictCoordinator,
	RoleCoordinator,
}

// Wallet holds the running commission balance embedded in each eligible account.
// Invariant: Balance == TotalEarned - TotalWithdrawn.
type Wallet struct {
	Balance        float64 `bson:"balance" json:"balance"`
	TotalEarned    float64 `bson:"totalEarned" json:"totalEarned"`
	TotalWithdrawn float64 `bson:"totalWithdrawn" json:"totalWithdrawn"`
}

// RoleAccount is the shared document shape of the coordinator, district
// coordinator, team leader and field employee collections. CreatedBy points at
// the account one level up (a field employee's CreatedBy is its team leader,
// and so on), which is what the referral hierarchy is built from at signup.
type RoleAccount struct {
	ID             primitive.ObjectID  `json:"id,omitempty" bson:"_id,omitempty"`
	FullName       string              `json:"fullName" bson:"fullName"`
	Email          string              `json:"email" bson:"email"`
	Password       string              `json:"password,omitempty" bson:"password"`
	PhoneNumber    string              `json:"phoneNumber" bson:"phoneNumber"`
	District       string              `json:"district,omitempty" bson:"district,omitempty"`
	ReferralCode   string              `json:"referralCode,omitempty" bson:"referralCode,omitempty"`
	CreatedBy      *primitive.ObjectID `json:"createdBy,omitempty" bson:"createdBy,omitempty"`
	CreatedByModel Role                `json:"createdByModel,omitempty" bson:"createdByModel,omitempty"`
	IsActive       bool                `json:"isActive" bson:"isActive"`
	Wallet         Wallet              `json:"wallet" bson:"wallet"`
	CreatedAt      time.Time           `json:"createdAt" bson:"createdAt"`
	UpdatedAt      time.Time           `json:"updatedAt" bson:"updatedAt"`
}

type Admin struct {
	ID          primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	FullName    string             `json:"fullName" bson:"fullName"`
	Email       string             `json:"email" bson:"email"`
	Password    string             `json:"password,omitempty" bson:"password"`
	PhoneNumber string             `json:"phoneNumber" bson:"phoneNumber"`
	IsActive    bool               `json:"isActive" bson:"isActive"`
	CreatedAt   time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt   time.Time          `json:"updatedAt" bson:"updatedAt"`
}
