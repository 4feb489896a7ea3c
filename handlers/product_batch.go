package handlers

import (
	"log"
	"net/http"
	"strings"
	"sync"

	"fitstore-backend/dtos"
	"fitstore-backend/firebase"
	"fitstore-backend/models"
	"fitstore-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// mirrorImagesConcurrently downloads remote image URLs and re-uploads them to
// the bucket, bounded by a semaphore. Results keep the submitted order so the
// first URL stays the primary image.
func mirrorImagesConcurrently(storage firebase.StorageClient, productID string, imageURLs []string) ([]models.ProductImage, []error) {
	const maxConcurrent = 3
	var wg sync.WaitGroup
	semaphore := make(chan struct{}, maxConcurrent)

	type imageResult struct {
		index int
		url   string
		err   error
	}

	results := make(chan imageResult, len(imageURLs))

	for i, url := range imageURLs {
		wg.Add(1)
		semaphore <- struct{}{}

		go func(idx int, imageURL string) {
			defer wg.Done()
			defer func() { <-semaphore }()

			mirroredURL, err := storage.DownloadAndUploadImage(imageURL, productID)
			results <- imageResult{index: idx, url: mirroredURL, err: err}
		}(i, url)
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	productImages := make([]models.ProductImage, len(imageURLs))
	errs := make([]error, len(imageURLs))
	for result := range results {
		if result.err == nil {
			productImages[result.index] = models.ProductImage{
				ProductID: uuid.MustParse(productID),
				ImageURL:  result.url,
				IsPrimary: result.index == 0,
			}
		} else {
			errs[result.index] = result.err
		}
	}

	return productImages, errs
}

// BatchImportProducts accepts a JSON batch of catalog rows and processes it
// in the background. Responds immediately with a job id for polling.
func (h *ProductHandler) BatchImportProducts(c *gin.Context) {
	var req dtos.ProductImportRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": utils.SanitizeValidationError(err)})
		return
	}

	job := utils.Store.CreateJob(len(req.Products))

	go h.processBatchImport(job, req.Products)

	c.JSON(http.StatusAccepted, gin.H{
		"job_id": job.ID.String(),
		"status": "processing",
		"total":  job.Total,
	})
}

// GetBatchJobStatus returns the status of a bulk import job.
func (h *ProductHandler) GetBatchJobStatus(c *gin.Context) {
	id := c.Param("id")
	jobUUID, err := uuid.Parse(id)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid job ID"})
		return
	}

	job, exists := utils.Store.GetJob(jobUUID)
	if !exists {
		c.JSON(http.StatusNotFound, gin.H{"error": "Job not found"})
		return
	}

	c.JSON(http.StatusOK, job)
}

func (h *ProductHandler) processBatchImport(job *dtos.ImportJob, rows []dtos.ProductImportItem) {
	utils.Store.SetProcessing(job.ID)

	total := len(rows)
	for i, row := range rows {
		created, err := h.importRow(row)

		utils.Store.UpdateJob(job.ID, func(j *dtos.ImportJob) {
			j.Processed++
			j.Progress = j.Processed * 100 / total
			if err != nil {
				j.Failed++
				j.Errors = append(j.Errors, dtos.JobError{
					Row:     i + 1,
					Product: row.Name,
					Message: err.Error(),
				})
			} else if created {
				j.Created++
			} else {
				j.Updated++
			}
		})

		if err != nil {
			log.Printf("Bulk import row %d (%s) failed: %v", i+1, row.Name, err)
		}
	}

	utils.Store.CompleteJob(job.ID, dtos.JobStatusCompleted)
	log.Printf("Bulk import job %s finished: %d rows", job.ID, total)
}

// importRow upserts one catalog row. Returns true when a new product was
// created, false when an existing one was updated.
func (h *ProductHandler) importRow(row dtos.ProductImportItem) (bool, error) {
	product := models.Product{
		Name:        row.Name,
		Brand:       row.Brand,
		Category:    row.Category,
		Description: row.Description,
		Discount:    row.Discount,
		Tags:        row.Tags,
	}

	for _, v := range row.Variants {
		product.Variants = append(product.Variants, models.Variant{
			SKU:      v.SKU,
			Size:     v.Size,
			Color:    models.NormalizeColors(v.Color),
			Flavor:   strings.TrimSpace(v.Flavor),
			Price:    v.Price,
			Discount: v.Discount,
			Stock:    v.Stock,
		})
	}

	if row.Apparel != nil {
		product.Apparel = &models.ApparelDetails{
			Material:         row.Apparel.Material,
			Gender:           row.Apparel.Gender,
			Fit:              row.Apparel.Fit,
			CareInstructions: row.Apparel.CareInstructions,
		}
	}
	if row.Equipment != nil {
		product.Equipment = &models.EquipmentDetails{
			Weight:      row.Equipment.Weight,
			Dimensions:  row.Equipment.Dimensions,
			Material:    row.Equipment.Material,
			Usage:       row.Equipment.Usage,
			Subcategory: row.Equipment.Subcategory,
		}
	}
	if row.Nutrition != nil {
		product.Nutrition = &models.NutritionDetails{
			ServingSize: row.Nutrition.ServingSize,
			Calories:    row.Nutrition.Calories,
			Protein:     row.Nutrition.Protein,
			Carbs:       row.Nutrition.Carbs,
			Fat:         row.Nutrition.Fat,
			Ingredients: row.Nutrition.Ingredients,
			Allergens:   row.Nutrition.Allergens,
		}
	}

	if err := product.Validate(); err != nil {
		return false, err
	}

	var existing models.Product
	err := h.DB.Where("name = ? AND brand = ?", row.Name, row.Brand).First(&existing).Error

	if err != nil {
		// New product
		product.ID = uuid.New()
		if err := h.DB.Create(&product).Error; err != nil {
			return false, err
		}
		h.mirrorRowImages(product.ID, row.ImageURLs)
		return true, nil
	}

	// Update: replace scalar fields, variant set and detail payload
	product.ID = existing.ID
	txErr := h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&existing).Updates(map[string]interface{}{
			"category":    product.Category,
			"description": product.Description,
			"discount":    product.Discount,
		}).Error; err != nil {
			return err
		}
		if err := tx.Model(&existing).Update("tags", product.Tags).Error; err != nil {
			return err
		}

		if err := tx.Where("product_id = ?", existing.ID).Delete(&models.Variant{}).Error; err != nil {
			return err
		}
		for i := range product.Variants {
			product.Variants[i].ProductID = existing.ID
		}
		if err := tx.Create(&product.Variants).Error; err != nil {
			return err
		}

		if err := tx.Where("product_id = ?", existing.ID).Delete(&models.ApparelDetails{}).Error; err != nil {
			return err
		}
		if err := tx.Where("product_id = ?", existing.ID).Delete(&models.EquipmentDetails{}).Error; err != nil {
			return err
		}
		if err := tx.Where("product_id = ?", existing.ID).Delete(&models.NutritionDetails{}).Error; err != nil {
			return err
		}
		if product.Apparel != nil {
			product.Apparel.ProductID = existing.ID
			if err := tx.Create(product.Apparel).Error; err != nil {
				return err
			}
		}
		if product.Equipment != nil {
			product.Equipment.ProductID = existing.ID
			if err := tx.Create(product.Equipment).Error; err != nil {
				return err
			}
		}
		if product.Nutrition != nil {
			product.Nutrition.ProductID = existing.ID
			if err := tx.Create(product.Nutrition).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if txErr != nil {
		return false, txErr
	}

	if len(row.ImageURLs) > 0 {
		h.mirrorRowImages(existing.ID, row.ImageURLs)
	}
	return false, nil
}

// mirrorRowImages best-effort mirrors external image URLs into the bucket and
// records the successful ones. Failed URLs are logged, not fatal.
func (h *ProductHandler) mirrorRowImages(productID uuid.UUID, urls []string) {
	cleaned := make([]string, 0, len(urls))
	for _, u := range urls {
		if u = strings.TrimSpace(u); u != "" {
			cleaned = append(cleaned, u)
		}
	}
	if len(cleaned) == 0 {
		return
	}

	mirrored, errs := mirrorImagesConcurrently(h.Storage, productID.String(), cleaned)
	for i, err := range errs {
		if err != nil {
			log.Printf("Failed to mirror image %s: %v", cleaned[i], err)
		}
	}

	var toSave []models.ProductImage
	for _, img := range mirrored {
		if img.ImageURL != "" {
			toSave = append(toSave, img)
		}
	}
	if len(toSave) > 0 {
		if err := h.DB.Create(&toSave).Error; err != nil {
			log.Printf("Failed to save mirrored images for product %s: %v", productID, err)
		}
	}
}
