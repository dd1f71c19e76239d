package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Category struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name        string             `bson:"name" json:"name" validate:"required"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	IsActive    bool               `bson:"isActive" json:"isActive"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}

type Subject struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Category  primitive.ObjectID `bson:"category" json:"category"`
	Name      string             `bson:"name" json:"name" validate:"required"`
	IsActive  bool               `bson:"isActive" json:"isActive"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}

type Chapter struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Subject   primitive.ObjectID `bson:"subject" json:"subject"`
	Name      string             `bson:"name" json:"name" validate:"required"`
	Order     int                `bson:"order" json:"order"`
	IsActive  bool               `bson:"isActive" json:"isActive"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}

type Course struct {
	ID          primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Title       string               `bson:"title" json:"title" validate:"required"`
	Description string               `bson:"description,omitempty" json:"description,omitempty"`
	Category    primitive.ObjectID   `bson:"category" json:"category"`
	Subjects    []primitive.ObjectID `bson:"subjects,omitempty" json:"subjects,omitempty"`
	Price       float64              `bson:"price" json:"price" validate:"gte=0"`
	IsActive    bool                 `bson:"isActive" json:"isActive"`
	CreatedAt   time.Time            `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time            `bson:"updatedAt" json:"updatedAt"`
}
