package handlers

import (
	"math"
	"net/http"
	"strconv"

	"fitstore-backend/firebase"
	"fitstore-backend/models"
	"fitstore-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type FeedbackHandler struct {
	DB      *gorm.DB
	Storage firebase.StorageClient
}

const maxCommentLength = 1000

// CreateFeedback records a rating for a product. The author identity always
// comes from the token, never from the payload. Photos are optional.
func (h *FeedbackHandler) CreateFeedback(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	productIDStr := c.PostForm("product_id")
	productID, err := uuid.Parse(productIDStr)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
		return
	}

	rating, err := strconv.Atoi(c.PostForm("rating"))
	if err != nil || rating < 1 || rating > 5 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Rating must be between 1 and 5"})
		return
	}

	comment := c.PostForm("comment")
	if len(comment) > maxCommentLength {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Comment must be at most 1000 characters"})
		return
	}

	var product models.Product
	if err := h.DB.Where("id = ?", productID).First(&product).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}

	feedback := models.Feedback{
		ID:        uuid.New(),
		UserID:    userID.(uuid.UUID),
		ProductID: productID,
		Rating:    rating,
		Comment:   comment,
	}

	if form, err := c.MultipartForm(); err == nil {
		for _, fileHeader := range form.File["images"] {
			if err := utils.ValidateFileUpload(fileHeader); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}

			file, err := fileHeader.Open()
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid image"})
				return
			}

			imageURL, err := h.Storage.UploadFeedbackImage(
				file,
				fileHeader.Filename,
				fileHeader.Header.Get("Content-Type"),
			)
			file.Close()

			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Image upload failed"})
				return
			}

			feedback.Images = append(feedback.Images, imageURL)
		}
	}

	if err := h.DB.Create(&feedback).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save feedback"})
		return
	}

	c.JSON(http.StatusCreated, feedback)
}

// ListFeedbackByProduct returns a product's feedback newest first, paginated.
func (h *FeedbackHandler) ListFeedbackByProduct(c *gin.Context) {
	productIDStr := c.Param("productId")
	productID, err := uuid.Parse(productIDStr)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 10
	}
	offset := (page - 1) * limit

	var total int64
	h.DB.Model(&models.Feedback{}).Where("product_id = ?", productID).Count(&total)

	var feedback []models.Feedback
	if err := h.DB.Where("product_id = ?", productID).
		Order("created_at DESC").Offset(offset).Limit(limit).
		Find(&feedback).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch feedback"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"feedback":    feedback,
		"total":       total,
		"page":        page,
		"limit":       limit,
		"total_pages": int(math.Ceil(float64(total) / float64(limit))),
	})
}
