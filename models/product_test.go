package models

import "testing"

func validApparel() *Product {
	return &Product{
		Name:        "Training Tee",
		Brand:       "FitStore",
		Category:    CategoryApparel,
		Description: "Lightweight training tee",
		Apparel:     &ApparelDetails{Material: "Cotton", Gender: "Unisex"},
		Variants: []Variant{
			{Size: "M", Color: []string{"red"}, Price: 19.99, Stock: 10},
			{Size: "L", Color: []string{"red"}, Price: 19.99, Stock: 5},
		},
	}
}

func TestProductValidateOK(t *testing.T) {
	if err := validApparel().Validate(); err != nil {
		t.Fatalf("expected valid product, got %v", err)
	}
}

func TestProductValidateInvalidCategory(t *testing.T) {
	p := validApparel()
	p.Category = "Footwear"
	if err := p.Validate(); err == nil {
		t.Error("expected error for unknown category")
	}
}

func TestProductValidatePayloadMustMatchCategory(t *testing.T) {
	p := validApparel()
	p.Apparel = nil
	p.Nutrition = &NutritionDetails{ServingSize: "30g"}
	if err := p.Validate(); err == nil {
		t.Error("expected error when payload does not match category")
	}
}

func TestProductValidateExactlyOnePayload(t *testing.T) {
	p := validApparel()
	p.Equipment = &EquipmentDetails{Weight: "2kg"}
	if err := p.Validate(); err == nil {
		t.Error("expected error when two payloads are present")
	}

	p = validApparel()
	p.Apparel = nil
	if err := p.Validate(); err == nil {
		t.Error("expected error when no payload is present")
	}
}

func TestProductValidateDuplicateVariantSizes(t *testing.T) {
	p := validApparel()
	p.Variants = append(p.Variants, Variant{Size: "M", Price: 21.99})
	if err := p.Validate(); err == nil {
		t.Error("expected error for duplicate variant size")
	}
}

func TestProductValidateRequiresVariants(t *testing.T) {
	p := validApparel()
	p.Variants = nil
	if err := p.Validate(); err == nil {
		t.Error("expected error when no variants are present")
	}
}

func TestProductValidateRejectsNegativeStock(t *testing.T) {
	p := validApparel()
	p.Variants[0].Stock = -1
	if err := p.Validate(); err == nil {
		t.Error("expected error for negative stock")
	}
}

func TestApparelDetailsGender(t *testing.T) {
	a := &ApparelDetails{Gender: "Kids"}
	if err := a.Validate(); err == nil {
		t.Error("expected error for invalid gender")
	}
	a.Gender = "Women"
	if err := a.Validate(); err != nil {
		t.Errorf("expected Women to be valid, got %v", err)
	}
}
