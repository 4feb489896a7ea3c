package handlers

import (
	"log"
	"net/http"

	"fitstore-backend/firebase"
	"fitstore-backend/models"
	"fitstore-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BannerHandler struct {
	DB      *gorm.DB
	Storage firebase.StorageClient
}

func (h *BannerHandler) GetBanners(c *gin.Context) {
	var banners []models.Banner
	if err := h.DB.Order("created_at DESC").Find(&banners).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch banners"})
		return
	}
	c.JSON(http.StatusOK, banners)
}

// UploadBanner creates a banner for a category. Each category holds at most
// one banner; a second upload for the same category is rejected.
func (h *BannerHandler) UploadBanner(c *gin.Context) {
	var banner models.Banner

	banner.Title = c.PostForm("title")
	banner.Category = c.PostForm("category")
	banner.Subtitle = c.PostForm("subtitle")
	banner.Offer = c.PostForm("offer")

	if banner.Title == "" || banner.Category == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "title and category are required"})
		return
	}

	var existing models.Banner
	if err := h.DB.Where("category = ?", banner.Category).First(&existing).Error; err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "A banner already exists for this category"})
		return
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Image is required"})
		return
	}

	if err := utils.ValidateFileUpload(fileHeader); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to open uploaded file"})
		return
	}
	defer file.Close()

	imageURL, err := h.Storage.UploadBannerImage(
		file,
		fileHeader.Filename,
		fileHeader.Header.Get("Content-Type"),
	)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Image upload failed"})
		return
	}

	banner.ID = uuid.New()
	banner.ImageURL = imageURL

	if err := h.DB.Create(&banner).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create banner"})
		return
	}

	c.JSON(http.StatusCreated, banner)
}

// EditBanner replaces banner fields; a new image also deletes the old object.
func (h *BannerHandler) EditBanner(c *gin.Context) {
	id := c.Param("id")
	var banner models.Banner

	if err := h.DB.Where("id = ?", id).First(&banner).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Banner not found"})
		return
	}

	if title := c.PostForm("title"); title != "" {
		banner.Title = title
	}
	if subtitle := c.PostForm("subtitle"); subtitle != "" {
		banner.Subtitle = subtitle
	}
	if offer := c.PostForm("offer"); offer != "" {
		banner.Offer = offer
	}
	if category := c.PostForm("category"); category != "" && category != banner.Category {
		var existing models.Banner
		if err := h.DB.Where("category = ? AND id <> ?", category, banner.ID).First(&existing).Error; err == nil {
			c.JSON(http.StatusConflict, gin.H{"error": "A banner already exists for this category"})
			return
		}
		banner.Category = category
	}

	if fileHeader, err := c.FormFile("image"); err == nil {
		if err := utils.ValidateFileUpload(fileHeader); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		file, err := fileHeader.Open()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to open uploaded file"})
			return
		}
		defer file.Close()

		imageURL, err := h.Storage.UploadBannerImage(
			file,
			fileHeader.Filename,
			fileHeader.Header.Get("Content-Type"),
		)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Image upload failed"})
			return
		}

		// Old object is orphaned once replaced
		if oldPath, err := utils.ExtractObjectPath(banner.ImageURL); err == nil && oldPath != "" {
			if err := h.Storage.DeleteFile(oldPath); err != nil {
				log.Printf("Failed to delete old banner image: %v", err)
			}
		}

		banner.ImageURL = imageURL
	}

	if err := h.DB.Save(&banner).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update banner"})
		return
	}

	c.JSON(http.StatusOK, banner)
}

func (h *BannerHandler) DeleteBanner(c *gin.Context) {
	id := c.Param("id")
	var banner models.Banner

	if err := h.DB.Where("id = ?", id).First(&banner).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Banner not found"})
		return
	}

	if objectPath, err := utils.ExtractObjectPath(banner.ImageURL); err == nil && objectPath != "" {
		if err := h.Storage.DeleteFile(objectPath); err != nil {
			log.Printf("Failed to delete banner image from storage: %v", err)
		}
	}

	if err := h.DB.Delete(&banner).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete banner"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Banner deleted successfully"})
}
