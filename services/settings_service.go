// services/settings_service.go
package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"math"
	"time"

	"github.com/go-redis/redis/v8"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/padhaihub/padhai_backend/models"
)

const settingsCacheKey = "commission:settings:active"
const settingsCacheTTL = 5 * time.Minute

// ErrInvalidPercentage rejects settings updates outside [0,100].
var ErrInvalidPercentage = errors.New("commission percentage must be between 0 and 100")

// SettingsService serves the active commission split. Reads go through Redis
// when available; a missing settings record falls back to
// models.DefaultCommissionSettings rather than erroring.
type SettingsService struct {
	DB    *mongo.Database
	Redis *redis.Client
}

func NewSettingsService(db *mongo.Database, rdb *redis.Client) *SettingsService {
	return &SettingsService{DB: db, Redis: rdb}
}

// GetActiveSettings returns the current percentage split per role.
func (s *SettingsService) GetActiveSettings(ctx context.Context) (models.CommissionPercentages, error) {
	if s.Redis != nil {
		cached, err := s.Redis.Get(ctx, settingsCacheKey).Result()
		if err == nil {
			var percentages models.CommissionPercentages
			if err := json.Unmarshal([]byte(cached), &percentages); err == nil {
				return percentages, nil
			}
		}
	}

	var settings models.CommissionSettings
	err := s.DB.Collection("commissionSettings").FindOne(ctx, bson.M{"isActive": true}).Decode(&settings)
	if err == mongo.ErrNoDocuments {
		return models.DefaultCommissionSettings, nil
	}
	if err != nil {
		return models.CommissionPercentages{}, fmt.Errorf("failed to load commission settings: %w", err)
	}

	s.cache(ctx, settings.CommissionPercentages)
	return settings.CommissionPercentages, nil
}

// ReplaceSettings deactivates the current record and inserts a new active one
// with the provided values merged over the previous ones. Append-only: the
// old record stays behind as history.
func (s *SettingsService) ReplaceSettings(ctx context.Context, req models.UpdateCommissionSettingsRequest, actor primitive.ObjectID) (*models.CommissionSettings, error) {
	current, err := s.GetActiveSettings(ctx)
	if err != nil {
		return nil, err
	}

	merged := current
	if req.Coordinator != nil {
		merged.Coordinator = *req.Coordinator
	}
	if req.DistrictCoordinator != nil {
		merged.DistrictCoordinator = *req.DistrictCoordinator
	}
	if req.TeamLeader != nil {
		merged.TeamLeader = *req.TeamLeader
	}
	if req.FieldEmployee != nil {
		merged.FieldEmployee = *req.FieldEmployee
	}

	if err := ValidatePercentages(merged); err != nil {
		return nil, err
	}

	coll := s.DB.Collection("commissionSettings")

	_, err = coll.UpdateMany(ctx, bson.M{"isActive": true}, bson.M{"$set": bson.M{"isActive": false}})
	if err != nil {
		return nil, fmt.Errorf("failed to deactivate commission settings: %w", err)
	}

	settings := models.CommissionSettings{
		ID:                    primitive.NewObjectID(),
		CommissionPercentages: merged,
		UpdatedBy:             actor,
		IsActive:              true,
		CreatedAt:             time.Now(),
	}

	_, err = coll.InsertOne(ctx, settings)
	if err != nil {
		return nil, fmt.Errorf("failed to insert commission settings: %w", err)
	}

	s.invalidate(ctx)
	s.cache(ctx, merged)

	log.Printf("Commission settings replaced by %s: FE=%.1f%% TL=%.1f%% DC=%.1f%% CO=%.1f%%",
		actor.Hex(), merged.FieldEmployee, merged.TeamLeader, merged.DistrictCoordinator, merged.Coordinator)
	return &settings, nil
}

// ValidatePercentages checks every configured cut is a finite value in [0,100].
func ValidatePercentages(p models.CommissionPercentages) error {
	for _, pct := range []float64{p.Coordinator, p.DistrictCoordinator, p.TeamLeader, p.FieldEmployee} {
		if math.IsNaN(pct) || math.IsInf(pct, 0) || pct < 0 || pct > 100 {
			return fmt.Errorf("%w: got %v", ErrInvalidPercentage, pct)
		}
	}
	return nil
}

func (s *SettingsService) cache(ctx context.Context, p models.CommissionPercentages) {
	if s.Redis == nil {
		return
	}
	payload, err := json.Marshal(p)
	if err != nil {
		return
	}
	if err := s.Redis.Set(ctx, settingsCacheKey, payload, settingsCacheTTL).Err(); err != nil {
		log.Printf("Failed to cache commission settings: %v", err)
	}
}

func (s *SettingsService) invalidate(ctx context.Context) {
	if s.Redis == nil {
		return
	}
	if err := s.Redis.Del(ctx, settingsCacheKey).Err(); err != nil {
		log.Printf("Failed to invalidate commission settings cache: %v", err)
	}
}
