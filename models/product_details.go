package models

import (
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Category-specific attribute payloads. Each product row owns at most one of
// these, selected by Product.Category.

type ApparelDetails struct {
	ID               uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	ProductID        uuid.UUID `gorm:"type:uuid;not null;uniqueIndex" json:"product_id"`
	Material         string    `json:"material"`
	Gender           string    `json:"gender"` // Men, Women, Unisex
	Fit              string    `json:"fit"`
	CareInstructions []string  `gorm:"serializer:json" json:"care_instructions"`
}

func (a *ApparelDetails) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

func (a *ApparelDetails) Validate() error {
	switch a.Gender {
	case "", "Men", "Women", "Unisex":
		return nil
	}
	return fmt.Errorf("invalid gender '%s'; must be Men, Women or Unisex", a.Gender)
}

type EquipmentDetails struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	ProductID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex" json:"product_id"`
	Weight      string    `json:"weight"`
	Dimensions  string    `json:"dimensions"`
	Material    string    `json:"material"`
	Usage       string    `json:"usage"`
	Subcategory string    `json:"subcategory"`
}

func (e *EquipmentDetails) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}

type NutritionDetails struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	ProductID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex" json:"product_id"`
	ServingSize string    `json:"serving_size"`
	Calories    string    `json:"calories"`
	Protein     string    `json:"protein"`
	Carbs       string    `json:"carbs"`
	Fat         string    `json:"fat"`
	Ingredients []string  `gorm:"serializer:json" json:"ingredients"`
	Allergens   []string  `gorm:"serializer:json" json:"allergens"`
}

func (n *NutritionDetails) BeforeCreate(tx *gorm.DB) error {
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	return nil
}
