package handlers

import (
	"encoding/json"
	"log"
	"math"
	"net/http"
	"strconv"
	"strings"

	"fitstore-backend/firebase"
	"fitstore-backend/models"
	"fitstore-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProductHandler struct {
	DB      *gorm.DB
	Storage firebase.StorageClient
}

// parseProductForm fills a product from multipart form fields. Structured
// fields (variants, tags, detail payloads) arrive as JSON strings.
func parseProductForm(c *gin.Context, product *models.Product) error {
	product.Name = c.PostForm("name")
	product.Brand = c.PostForm("brand")
	product.Category = c.PostForm("category")
	product.Description = c.PostForm("description")
	product.Discount = c.PostForm("discount")

	if tags := c.PostForm("tags"); tags != "" {
		if err := json.Unmarshal([]byte(tags), &product.Tags); err != nil {
			// Also accept a plain comma-separated list
			product.Tags = nil
			for _, t := range strings.Split(tags, ",") {
				if t = strings.TrimSpace(t); t != "" {
					product.Tags = append(product.Tags, t)
				}
			}
		}
	}

	if variants := c.PostForm("variants"); variants != "" {
		if err := json.Unmarshal([]byte(variants), &product.Variants); err != nil {
			return err
		}
	}

	if details := c.PostForm("apparel_details"); details != "" {
		product.Apparel = &models.ApparelDetails{}
		if err := json.Unmarshal([]byte(details), product.Apparel); err != nil {
			return err
		}
	}
	if details := c.PostForm("equipment_details"); details != "" {
		product.Equipment = &models.EquipmentDetails{}
		if err := json.Unmarshal([]byte(details), product.Equipment); err != nil {
			return err
		}
	}
	if details := c.PostForm("nutrition_details"); details != "" {
		product.Nutrition = &models.NutritionDetails{}
		if err := json.Unmarshal([]byte(details), product.Nutrition); err != nil {
			return err
		}
	}

	return nil
}

func (h *ProductHandler) CreateProduct(c *gin.Context) {
	var product models.Product

	if err := parseProductForm(c, &product); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON in form field: " + err.Error()})
		return
	}

	if product.Name == "" || product.Brand == "" || product.Description == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name, brand and description are required"})
		return
	}

	if err := product.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	product.ID = uuid.New()

	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to parse form"})
		return
	}

	files := form.File["images"]
	if len(files) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "At least one image is required"})
		return
	}

	// Validate all uploads up front so we never create a half-finished product
	for _, fileHeader := range files {
		if err := utils.ValidateFileUpload(fileHeader); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	if err := h.DB.Create(&product).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create product"})
		return
	}

	var productImages []models.ProductImage
	for i, fileHeader := range files {
		file, err := fileHeader.Open()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid image"})
			return
		}

		imageURL, err := h.Storage.UploadProductImage(
			file,
			fileHeader.Filename,
			fileHeader.Header.Get("Content-Type"),
		)
		file.Close()

		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Image upload failed"})
			return
		}

		productImages = append(productImages, models.ProductImage{
			ProductID: product.ID,
			ImageURL:  imageURL,
			IsPrimary: i == 0,
		})
	}

	if err := h.DB.Create(&productImages).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save product images"})
		return
	}

	h.preload().First(&product, product.ID)
	c.JSON(http.StatusCreated, product)
}

func (h *ProductHandler) preload() *gorm.DB {
	return h.DB.Preload("Variants").Preload("Images").
		Preload("Apparel").Preload("Equipment").Preload("Nutrition")
}

func (h *ProductHandler) GetProduct(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
		return
	}

	var product models.Product
	if err := h.preload().Where("id = ?", id).First(&product).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}
	c.JSON(http.StatusOK, product)
}

func (h *ProductHandler) GetProducts(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	itemsPerPage, _ := strconv.Atoi(c.DefaultQuery("itemsPerPage", "20"))
	if page < 1 {
		page = 1
	}
	if itemsPerPage < 1 || itemsPerPage > 100 {
		itemsPerPage = 20
	}
	offset := (page - 1) * itemsPerPage

	query := h.preload()
	if category := c.Query("category"); category != "" {
		query = query.Where("category = ?", category)
	}

	var total int64
	query.Model(&models.Product{}).Count(&total)

	var products []models.Product
	if err := query.
		Order("created_at DESC").Offset(offset).Limit(itemsPerPage).
		Find(&products).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch products"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"products":       products,
		"total_products": total,
		"current_page":   page,
		"total_pages":    int(math.Ceil(float64(total) / float64(itemsPerPage))),
	})
}

func (h *ProductHandler) UpdateProduct(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
		return
	}

	var product models.Product
	if err := h.preload().Where("id = ?", id).First(&product).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}

	updated := product
	if err := parseProductForm(c, &updated); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON in form field: " + err.Error()})
		return
	}

	// Blank form fields keep their current values
	if updated.Name == "" {
		updated.Name = product.Name
	}
	if updated.Brand == "" {
		updated.Brand = product.Brand
	}
	if updated.Category == "" {
		updated.Category = product.Category
	}
	if updated.Description == "" {
		updated.Description = product.Description
	}

	if err := updated.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	err := h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&product).Updates(map[string]interface{}{
			"name":        updated.Name,
			"brand":       updated.Brand,
			"category":    updated.Category,
			"description": updated.Description,
			"discount":    updated.Discount,
		}).Error; err != nil {
			return err
		}
		if err := tx.Model(&product).Update("tags", updated.Tags).Error; err != nil {
			return err
		}

		// Replace the variant set when new variants were submitted
		if c.PostForm("variants") != "" {
			if err := tx.Where("product_id = ?", product.ID).Delete(&models.Variant{}).Error; err != nil {
				return err
			}
			for i := range updated.Variants {
				updated.Variants[i].ID = uuid.Nil
				updated.Variants[i].ProductID = product.ID
			}
			if err := tx.Create(&updated.Variants).Error; err != nil {
				return err
			}
		}

		// Replace the detail payload when one was submitted
		if updated.Apparel != nil && c.PostForm("apparel_details") != "" {
			if err := tx.Where("product_id = ?", product.ID).Delete(&models.ApparelDetails{}).Error; err != nil {
				return err
			}
			updated.Apparel.ID = uuid.Nil
			updated.Apparel.ProductID = product.ID
			if err := tx.Create(updated.Apparel).Error; err != nil {
				return err
			}
		}
		if updated.Equipment != nil && c.PostForm("equipment_details") != "" {
			if err := tx.Where("product_id = ?", product.ID).Delete(&models.EquipmentDetails{}).Error; err != nil {
				return err
			}
			updated.Equipment.ID = uuid.Nil
			updated.Equipment.ProductID = product.ID
			if err := tx.Create(updated.Equipment).Error; err != nil {
				return err
			}
		}
		if updated.Nutrition != nil && c.PostForm("nutrition_details") != "" {
			if err := tx.Where("product_id = ?", product.ID).Delete(&models.NutritionDetails{}).Error; err != nil {
				return err
			}
			updated.Nutrition.ID = uuid.Nil
			updated.Nutrition.ProductID = product.ID
			if err := tx.Create(updated.Nutrition).Error; err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update product"})
		return
	}

	// Optional new images
	if form, err := c.MultipartForm(); err == nil {
		files := form.File["images"]
		imagesToDelete := form.Value["delete_images"]

		for _, imageID := range imagesToDelete {
			var productImage models.ProductImage
			if err := h.DB.Where("id = ? AND product_id = ?", imageID, product.ID).First(&productImage).Error; err == nil {
				objectPath, err := utils.ExtractObjectPath(productImage.ImageURL)
				if err == nil && objectPath != "" {
					if err := h.Storage.DeleteFile(objectPath); err != nil {
						log.Println("Failed to delete image from storage:", err)
					}
				}
				h.DB.Delete(&productImage)
			}
		}

		if len(files) > 0 {
			var newImages []models.ProductImage
			for i, fileHeader := range files {
				if err := utils.ValidateFileUpload(fileHeader); err != nil {
					c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
					return
				}

				file, err := fileHeader.Open()
				if err != nil {
					c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid image"})
					return
				}

				imageURL, err := h.Storage.UploadProductImage(
					file,
					fileHeader.Filename,
					fileHeader.Header.Get("Content-Type"),
				)
				file.Close()

				if err != nil {
					c.JSON(http.StatusInternalServerError, gin.H{"error": "Image upload failed"})
					return
				}

				newImages = append(newImages, models.ProductImage{
					ProductID: product.ID,
					ImageURL:  imageURL,
					IsPrimary: len(product.Images) == 0 && i == 0,
				})
			}

			if err := h.DB.Create(&newImages).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save product images"})
				return
			}
		}
	}

	h.preload().First(&product, product.ID)
	c.JSON(http.StatusOK, product)
}

func (h *ProductHandler) DeleteProduct(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
		return
	}

	var product models.Product
	if err := h.DB.Preload("Images").First(&product, "id = ?", id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}

	for _, productImage := range product.Images {
		// Feedback may reference the same URL; only delete unreferenced objects
		var refCount int64
		h.DB.Model(&models.Feedback{}).
			Where("images LIKE ?", "%"+productImage.ImageURL+"%").
			Count(&refCount)

		if refCount > 0 {
			log.Printf("Image %s is referenced by feedback - keeping in storage", productImage.ImageURL)
		} else {
			objectPath, err := utils.ExtractObjectPath(productImage.ImageURL)
			if err == nil && objectPath != "" {
				if err := h.Storage.DeleteFile(objectPath); err != nil {
					log.Printf("Failed to delete image %s from storage: %v", productImage.ImageURL, err)
				}
			}
		}

		if err := h.DB.Delete(&productImage).Error; err != nil {
			log.Printf("Failed to delete product image record %s: %v", productImage.ID, err)
		}
	}

	// Variant and detail rows go with the product; a deleted product must not
	// keep decrementable stock behind.
	err := h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("product_id = ?", id).Delete(&models.Variant{}).Error; err != nil {
			return err
		}
		if err := tx.Where("product_id = ?", id).Delete(&models.ApparelDetails{}).Error; err != nil {
			return err
		}
		if err := tx.Where("product_id = ?", id).Delete(&models.EquipmentDetails{}).Error; err != nil {
			return err
		}
		if err := tx.Where("product_id = ?", id).Delete(&models.NutritionDetails{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Product{}, "id = ?", id).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete product"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Product deleted successfully"})
}

// SearchProducts builds a filter from query params. At least one filter is
// required; an unfiltered search is rejected rather than dumping the catalog.
func (h *ProductHandler) SearchProducts(c *gin.Context) {
	query := h.DB.Model(&models.Product{})
	filtered := false

	if name := c.Query("name"); name != "" {
		query = query.Where("LOWER(products.name) LIKE LOWER(?)", "%"+name+"%")
		filtered = true
	}
	if brand := c.Query("brand"); brand != "" {
		query = query.Where("LOWER(products.brand) LIKE LOWER(?)", "%"+brand+"%")
		filtered = true
	}
	if category := c.Query("category"); category != "" {
		query = query.Where("products.category = ?", category)
		filtered = true
	}
	if tag := c.Query("tag"); tag != "" {
		// Tags are stored JSON-serialized; match the quoted element so "pro"
		// does not match a "protein" tag.
		query = query.Where("products.tags LIKE ?", "%\""+tag+"\"%")
		filtered = true
	}
	if q := c.Query("q"); q != "" {
		like := "%" + q + "%"
		query = query.Where(
			"LOWER(products.name) LIKE LOWER(?) OR LOWER(products.brand) LIKE LOWER(?) OR LOWER(products.category) LIKE LOWER(?) OR products.tags LIKE ?",
			like, like, like, like,
		)
		filtered = true
	}

	// Variant-level filters
	joinedVariants := false
	joinVariants := func() {
		if !joinedVariants {
			query = query.Joins("JOIN variants ON variants.product_id = products.id")
			joinedVariants = true
		}
	}
	if minPrice := c.Query("min_price"); minPrice != "" {
		if v, err := strconv.ParseFloat(minPrice, 64); err == nil {
			joinVariants()
			query = query.Where("variants.price >= ?", v)
			filtered = true
		}
	}
	if maxPrice := c.Query("max_price"); maxPrice != "" {
		if v, err := strconv.ParseFloat(maxPrice, 64); err == nil {
			joinVariants()
			query = query.Where("variants.price <= ?", v)
			filtered = true
		}
	}
	if color := c.Query("color"); color != "" {
		joinVariants()
		query = query.Where("variants.color LIKE ?", "%"+color+"%")
		filtered = true
	}

	// Category-specific attribute filters
	if servingSize := c.Query("serving_size"); servingSize != "" {
		query = query.Joins("JOIN nutrition_details ON nutrition_details.product_id = products.id").
			Where("nutrition_details.serving_size = ?", servingSize)
		filtered = true
	}
	if weight := c.Query("weight"); weight != "" {
		query = query.Joins("JOIN equipment_details ON equipment_details.product_id = products.id").
			Where("equipment_details.weight = ?", weight)
		filtered = true
	}
	if material := c.Query("material"); material != "" {
		query = query.Joins("JOIN equipment_details ed ON ed.product_id = products.id").
			Where("ed.material LIKE ?", "%"+material+"%")
		filtered = true
	}
	joinedApparel := false
	joinApparel := func() {
		if !joinedApparel {
			query = query.Joins("JOIN apparel_details ON apparel_details.product_id = products.id")
			joinedApparel = true
		}
	}
	if gender := c.Query("gender"); gender != "" {
		joinApparel()
		query = query.Where("apparel_details.gender = ?", gender)
		filtered = true
	}
	if fit := c.Query("fit"); fit != "" {
		joinApparel()
		query = query.Where("apparel_details.fit = ?", fit)
		filtered = true
	}

	if !filtered {
		c.JSON(http.StatusBadRequest, gin.H{"error": "At least one search filter is required"})
		return
	}

	var ids []uuid.UUID
	if err := query.Distinct("products.id").Pluck("products.id", &ids).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Search failed"})
		return
	}

	products := []models.Product{}
	if len(ids) > 0 {
		if err := h.preload().Where("id IN ?", ids).Order("created_at DESC").Find(&products).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Search failed"})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"products": products,
		"total":    len(products),
	})
}
