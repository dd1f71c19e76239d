// repositories/hierarchy_repository.go
package repositories

import (
	"context"
	"errors"
	"fmt"
	"log"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/padhaihub/padhai_backend/models"
)

var ErrStudentNotFound = errors.New("student not found")

// ResolvedHierarchy pairs a student's stored referral chain with the accounts
// those references point at. A reference with no account in Accounts means
// the pointed-at document no longer exists.
type ResolvedHierarchy struct {
	Student  *models.Student
	Chain    *models.ReferralHierarchy
	Accounts map[models.Role]*models.RoleAccount
}

type HierarchyRepository struct {
	DB    *mongo.Database
	Roles *RoleRepository
}

func NewHierarchyRepository(db *mongo.Database) *HierarchyRepository {
	return &HierarchyRepository{DB: db, Roles: NewRoleRepository(db)}
}

// ResolveHierarchy loads a student and fetches every account the stored
// referral chain references. Pure lookup, one fetch per populated field;
// nothing is mutated and the chain is never re-derived.
func (r *HierarchyRepository) ResolveHierarchy(ctx context.Context, studentID primitive.ObjectID) (*ResolvedHierarchy, error) {
	var student models.Student
	err := r.DB.Collection("students").FindOne(ctx, bson.M{"_id": studentID}).Decode(&student)
	if err == mongo.ErrNoDocuments {
		return nil, ErrStudentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load student %s: %w", studentID.Hex(), err)
	}

	resolved := &ResolvedHierarchy{
		Student:  &student,
		Chain:    student.ReferralHierarchy,
		Accounts: make(map[models.Role]*models.RoleAccount),
	}

	if student.ReferralHierarchy == nil {
		return resolved, nil
	}

	for _, role := range models.CommissionRoles {
		ref := student.ReferralHierarchy.RefFor(role)
		if ref == nil {
			continue
		}
		account, err := r.Roles.FindByID(ctx, role, *ref)
		if err == mongo.ErrNoDocuments {
			log.Printf("Referral hierarchy of student %s points at missing %s %s", studentID.Hex(), role, ref.Hex())
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to resolve %s %s: %w", role, ref.Hex(), err)
		}
		resolved.Accounts[role] = account
	}

	return resolved, nil
}

// BuildHierarchyFromFieldEmployee walks the creator chain upward from a
// referring field employee and returns the hierarchy to store on a new
// student. Broken links end the walk early rather than failing signup.
func (r *HierarchyRepository) BuildHierarchyFromFieldEmployee(ctx context.Context, fieldEmployee *models.RoleAccount) *models.ReferralHierarchy {
	hierarchy := &models.ReferralHierarchy{
		ReferringFieldEmployee: &fieldEmployee.ID,
	}

	current := fieldEmployee
	for current.CreatedBy != nil {
		parentRole := current.CreatedByModel
		if parentRole == models.RoleAdmin || parentRole == models.RoleSuperAdmin {
			hierarchy.Admin = current.CreatedBy
			break
		}

		parent, err := r.Roles.FindByID(ctx, parentRole, *current.CreatedBy)
		if err != nil {
			log.Printf("Creator chain of %s broken at %s %s: %v", fieldEmployee.ID.Hex(), parentRole, current.CreatedBy.Hex(), err)
			break
		}

		switch parentRole {
		case models.RoleTeamLeader:
			hierarchy.TeamLeader = &parent.ID
		case models.RoleDistrictCoordinator:
			hierarchy.DistrictCoordinator = &parent.ID
		case models.RoleCoordinator:
			hierarchy.Coordinator = &parent.ID
		default:
			log.Printf("Unexpected creator role %s in chain of %s", parentRole, fieldEmployee.ID.Hex())
			return hierarchy
		}
		current = parent
	}

	return hierarchy
}
