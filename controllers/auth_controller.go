// controllers/auth_controller.go
package controllers

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/padhaihub/padhai_backend/middleware"
	"github.com/padhaihub/padhai_backend/models"
	"github.com/padhaihub/padhai_backend/repositories"
	"github.com/padhaihub/padhai_backend/utils"
)

// AuthController handles signup and login for every principal type
type AuthController struct {
	DB        *mongo.Database
	Roles     *repositories.RoleRepository
	Hierarchy *repositories.HierarchyRepository
}

// NewAuthController creates a new auth controller
func NewAuthController(db *mongo.Database) *AuthController {
	return &AuthController{
		DB:        db,
		Roles:     repositories.NewRoleRepository(db),
		Hierarchy: repositories.NewHierarchyRepository(db),
	}
}

// principalCollections maps a login userType to its collection.
var principalCollections = map[string]string{
	string(models.RoleStudent):             "students",
	string(models.RoleAdmin):               "admins",
	string(models.RoleCoordinator):         "coordinators",
	string(models.RoleDistrictCoordinator): "districtCoordinators",
	string(models.RoleTeamLeader):          "teamLeaders",
	string(models.RoleFieldEmployee):       "fieldEmployees",
}

// childRoles maps a creator's role to the role it is allowed to create.
var childRoles = map[string]models.Role{
	string(models.RoleAdmin):               models.RoleCoordinator,
	string(models.RoleCoordinator):         models.RoleDistrictCoordinator,
	string(models.RoleDistrictCoordinator): models.RoleTeamLeader,
	string(models.RoleTeamLeader):          models.RoleFieldEmployee,
}

var referralTypeForRole = map[models.Role]utils.ReferralType{
	models.RoleCoordinator:         utils.CoordinatorType,
	models.RoleDistrictCoordinator: utils.DistrictCoordinatorType,
	models.RoleTeamLeader:          utils.TeamLeaderType,
	models.RoleFieldEmployee:       utils.FieldEmployeeType,
}

// Login authenticates any principal type against its collection
func (ac *AuthController) Login(c echo.Context) error {
	var req models.LoginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Email, password and userType are required",
		})
	}

	collName, ok := principalCollections[req.UserType]
	if !ok {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Unknown user type",
		})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var doc struct {
		ID       primitive.ObjectID `bson:"_id"`
		Email    string             `bson:"email"`
		Password string             `bson:"password"`
		IsActive bool               `bson:"isActive"`
	}
	err := ac.DB.Collection(collName).FindOne(ctx, bson.M{"email": req.Email}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return c.JSON(http.StatusUnauthorized, models.Response{
			Status:  http.StatusUnauthorized,
			Message: "Invalid email or password",
		})
	}
	if err != nil {
		log.Printf("Login lookup failed for %s: %v", req.Email, err)
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to process login",
		})
	}

	if !utils.CheckPassword(doc.Password, req.Password) {
		return c.JSON(http.StatusUnauthorized, models.Response{
			Status:  http.StatusUnauthorized,
			Message: "Invalid email or password",
		})
	}

	if !doc.IsActive {
		return c.JSON(http.StatusForbidden, models.Response{
			Status:  http.StatusForbidden,
			Message: "Account is deactivated",
		})
	}

	token, err := utils.GenerateJWT(doc.ID.Hex(), doc.Email, models.Role(req.UserType))
	if err != nil {
		log.Printf("Failed to generate token for %s: %v", req.Email, err)
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to generate token",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Login successful",
		Data: models.LoginResponse{
			Token:    token,
			UserType: req.UserType,
		},
	})
}

// StudentSignup registers a student. A referral code, when present, pins the
// student's referral hierarchy from the referring field employee's creator
// chain; signups without a code simply carry no hierarchy.
func (ac *AuthController) StudentSignup(c echo.Context) error {
	var req models.StudentSignupRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Full name, email, phone number and a password of at least 8 characters are required",
		})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var hierarchy *models.ReferralHierarchy
	if req.ReferralCode != "" {
		role, referrer, err := ac.Roles.FindByReferralCode(ctx, req.ReferralCode)
		if err != nil {
			return c.JSON(http.StatusBadRequest, models.Response{
				Status:  http.StatusBadRequest,
				Message: "Invalid referral code",
			})
		}
		if role != models.RoleFieldEmployee {
			return c.JSON(http.StatusBadRequest, models.Response{
				Status:  http.StatusBadRequest,
				Message: "Student referrals must come from a field employee",
			})
		}
		if !referrer.IsActive {
			return c.JSON(http.StatusBadRequest, models.Response{
				Status:  http.StatusBadRequest,
				Message: "Referral code belongs to a deactivated account",
			})
		}
		hierarchy = ac.Hierarchy.BuildHierarchyFromFieldEmployee(ctx, referrer)
	}

	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to process password",
		})
	}

	student := models.Student{
		ID:                primitive.NewObjectID(),
		FullName:          req.FullName,
		Email:             req.Email,
		Password:          hashedPassword,
		PhoneNumber:       req.PhoneNumber,
		ReferralHierarchy: hierarchy,
		IsActive:          true,
		CreatedAt:         time.Now(),
		UpdatedAt:         time.Now(),
	}

	_, err = ac.DB.Collection("students").InsertOne(ctx, student)
	if mongo.IsDuplicateKeyError(err) {
		return c.JSON(http.StatusConflict, models.Response{
			Status:  http.StatusConflict,
			Message: "An account with this email already exists",
		})
	}
	if err != nil {
		log.Printf("Failed to create student %s: %v", req.Email, err)
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to create account",
		})
	}

	student.Password = ""
	return c.JSON(http.StatusCreated, models.Response{
		Status:  http.StatusCreated,
		Message: "Student account created",
		Data:    student,
	})
}

// CreateRoleAccount lets an authenticated principal create the account one
// level below it in the hierarchy (admin -> coordinator -> district
// coordinator -> team leader -> field employee).
func (ac *AuthController) CreateRoleAccount(c echo.Context) error {
	creatorType := middleware.ExtractUserType(c)
	childRole, ok := childRoles[creatorType]
	if !ok {
		return c.JSON(http.StatusForbidden, models.Response{
			Status:  http.StatusForbidden,
			Message: "Your user type cannot create subordinate accounts",
		})
	}

	creatorID, err := middleware.GetUserIDFromToken(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, models.Response{
			Status:  http.StatusUnauthorized,
			Message: "Invalid authentication token",
		})
	}

	var req models.CreateRoleAccountRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Full name, email, phone number and a password of at least 8 characters are required",
		})
	}

	referralCode, err := utils.GenerateReferralCode(referralTypeForRole[childRole])
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to generate referral code",
		})
	}

	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to process password",
		})
	}

	account := models.RoleAccount{
		ID:             primitive.NewObjectID(),
		FullName:       req.FullName,
		Email:          req.Email,
		Password:       hashedPassword,
		PhoneNumber:    req.PhoneNumber,
		District:       req.District,
		ReferralCode:   referralCode,
		CreatedBy:      &creatorID,
		CreatedByModel: models.Role(creatorType),
		IsActive:       true,
		Wallet:         models.Wallet{},
		CreatedAt:      time.Now(),
		UpdatedAt:      time.Now(),
	}

	collName, err := repositories.CollectionForRole(childRole)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to resolve account collection",
		})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err = ac.DB.Collection(collName).InsertOne(ctx, account)
	if mongo.IsDuplicateKeyError(err) {
		return c.JSON(http.StatusConflict, models.Response{
			Status:  http.StatusConflict,
			Message: "An account with this email already exists",
		})
	}
	if err != nil {
		log.Printf("Failed to create %s account %s: %v", childRole, req.Email, err)
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to create account",
		})
	}

	account.Password = ""
	return c.JSON(http.StatusCreated, models.Response{
		Status:  http.StatusCreated,
		Message: "Account created",
		Data:    account,
	})
}
