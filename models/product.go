package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Product categories. The category selects which detail payload applies.
const (
	CategoryApparel   = "Apparel"
	CategoryEquipment = "Equipment"
	CategoryNutrition = "Nutrition"
)

type Product struct {
	ID          uuid.UUID      `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Name        string         `gorm:"not null" json:"name"`
	Brand       string         `gorm:"not null" json:"brand"`
	Category    string         `gorm:"not null;index" json:"category"` // Apparel, Equipment, Nutrition
	Description string         `gorm:"not null" json:"description"`
	Discount    string         `json:"discount"`
	Tags        []string       `gorm:"serializer:json" json:"tags"`
	Variants    []Variant      `gorm:"foreignKey:ProductID" json:"variants"`
	Images      []ProductImage `gorm:"foreignKey:ProductID" json:"images,omitempty"`

	Apparel   *ApparelDetails   `gorm:"foreignKey:ProductID" json:"apparel_details,omitempty"`
	Equipment *EquipmentDetails `gorm:"foreignKey:ProductID" json:"equipment_details,omitempty"`
	Nutrition *NutritionDetails `gorm:"foreignKey:ProductID" json:"nutrition_details,omitempty"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// Variant is one purchasable configuration of a product with its own stock.
type Variant struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	ProductID uuid.UUID `gorm:"type:uuid;not null;index" json:"product_id"`
	SKU       string    `json:"sku"`
	Size      string    `gorm:"not null" json:"size"`
	Color     []string  `gorm:"serializer:json" json:"color"`
	Flavor    string    `json:"flavor"`
	Price     float64   `gorm:"not null" json:"price"`
	Discount  float64   `gorm:"default:0" json:"discount"`
	Stock     int       `gorm:"default:0" json:"stock"` // never negative
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (v *Variant) BeforeCreate(tx *gorm.DB) error {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	return nil
}

type ProductImage struct {
	ID        uuid.UUID      `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	ProductID uuid.UUID      `gorm:"type:uuid;not null;index" json:"product_id"`
	ImageURL  string         `gorm:"not null" json:"image_url"`
	IsPrimary bool           `gorm:"default:false" json:"is_primary"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (p *ProductImage) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// Validate enforces the category/payload union and variant integrity.
// Exactly one detail payload may be present and it must match the category.
// Duplicate variant sizes are rejected so a stock decrement keyed by
// (product, size) always targets a single variant.
func (p *Product) Validate() error {
	switch p.Category {
	case CategoryApparel, CategoryEquipment, CategoryNutrition:
	default:
		return fmt.Errorf("invalid product category '%s'", p.Category)
	}

	present := 0
	if p.Apparel != nil {
		present++
	}
	if p.Equipment != nil {
		present++
	}
	if p.Nutrition != nil {
		present++
	}
	if present != 1 {
		return fmt.Errorf("exactly one category detail payload is required, got %d", present)
	}

	switch p.Category {
	case CategoryApparel:
		if p.Apparel == nil {
			return fmt.Errorf("apparel_details is required for category Apparel")
		}
		if err := p.Apparel.Validate(); err != nil {
			return err
		}
	case CategoryEquipment:
		if p.Equipment == nil {
			return fmt.Errorf("equipment_details is required for category Equipment")
		}
	case CategoryNutrition:
		if p.Nutrition == nil {
			return fmt.Errorf("nutrition_details is required for category Nutrition")
		}
	}

	if len(p.Variants) == 0 {
		return fmt.Errorf("at least one variant is required")
	}

	seen := make(map[string]bool, len(p.Variants))
	for i := range p.Variants {
		v := &p.Variants[i]
		if v.Size == "" {
			return fmt.Errorf("variant size is required")
		}
		if seen[v.Size] {
			return fmt.Errorf("duplicate variant size '%s'", v.Size)
		}
		seen[v.Size] = true
		if v.Price <= 0 {
			return fmt.Errorf("variant price is required for size '%s'", v.Size)
		}
		if v.Stock < 0 {
			return fmt.Errorf("variant stock cannot be negative for size '%s'", v.Size)
		}
	}

	return nil
}
