package handlers

import (
	"net/http"

	"fitstore-backend/models"
	"fitstore-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type StockHandler struct {
	DB *gorm.DB
}

type stockDecrementItem struct {
	ProductID uuid.UUID `json:"product_id" binding:"required"`
	Size      string    `json:"size" binding:"required"`
	Quantity  int       `json:"quantity" binding:"required,min=1"`
}

// DecrementStock applies a batch of stock decrements, one conditional update
// per item. An item only takes effect when the variant exists and has enough
// stock; the rest of the batch still proceeds. The response reports how many
// items actually modified a row.
func (h *StockHandler) DecrementStock(c *gin.Context) {
	var req struct {
		Items []stockDecrementItem `json:"items" binding:"required,min=1,dive"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": utils.SanitizeValidationError(err)})
		return
	}

	modified := 0
	for _, item := range req.Items {
		result := h.DB.Model(&models.Variant{}).
			Where("product_id = ? AND size = ? AND stock >= ?", item.ProductID, item.Size, item.Quantity).
			UpdateColumn("stock", gorm.Expr("stock - ?", item.Quantity))
		if result.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update stock"})
			return
		}
		if result.RowsAffected > 0 {
			modified++
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"message":        "Stock update completed",
		"requested":      len(req.Items),
		"modified_count": modified,
	})
}
