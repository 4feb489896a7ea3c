package dtos

// ProductImportRequest is a parsed bulk catalog import. File parsing happens
// upstream; the API takes rows as JSON.
type ProductImportRequest struct {
	Products []ProductImportItem `json:"products" binding:"required,min=1,max=5000,dive"`
}

// ProductImportItem is one catalog row in a bulk import. A row whose
// name+brand matches an existing product updates it, otherwise a new
// product is created.
type ProductImportItem struct {
	Name        string                `json:"name" binding:"required"`
	Brand       string                `json:"brand" binding:"required"`
	Category    string                `json:"category" binding:"required,oneof=Apparel Equipment Nutrition"`
	Description string                `json:"description" binding:"required"`
	Discount    string                `json:"discount"`
	Tags        []string              `json:"tags"`
	ImageURLs   []string              `json:"image_urls"`
	Variants    []VariantImportItem   `json:"variants" binding:"required,min=1,dive"`
	Apparel     *ApparelImportItem    `json:"apparel_details"`
	Equipment   *EquipmentImportItem  `json:"equipment_details"`
	Nutrition   *NutritionImportItem  `json:"nutrition_details"`
}

type VariantImportItem struct {
	SKU      string   `json:"sku"`
	Size     string   `json:"size" binding:"required"`
	Color    []string `json:"color"`
	Flavor   string   `json:"flavor"`
	Price    float64  `json:"price" binding:"required,gt=0"`
	Discount float64  `json:"discount"`
	Stock    int      `json:"stock" binding:"min=0"`
}

type ApparelImportItem struct {
	Material         string   `json:"material"`
	Gender           string   `json:"gender" binding:"omitempty,oneof=Men Women Unisex"`
	Fit              string   `json:"fit"`
	CareInstructions []string `json:"care_instructions"`
}

type EquipmentImportItem struct {
	Weight      string `json:"weight"`
	Dimensions  string `json:"dimensions"`
	Material    string `json:"material"`
	Usage       string `json:"usage"`
	Subcategory string `json:"subcategory"`
}

type NutritionImportItem struct {
	ServingSize string   `json:"serving_size"`
	Calories    string   `json:"calories"`
	Protein     string   `json:"protein"`
	Carbs       string   `json:"carbs"`
	Fat         string   `json:"fat"`
	Ingredients []string `json:"ingredients"`
	Allergens   []string `json:"allergens"`
}
