package handlers

import (
	"net/http"

	"fitstore-backend/models"
	"fitstore-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CartHandler struct {
	DB *gorm.DB
}

type cartItemRequest struct {
	ProductID   uuid.UUID `json:"product_id" binding:"required"`
	Size        string    `json:"size" binding:"required"`
	Color       []string  `json:"color" binding:"required,min=1"`
	Flavor      string    `json:"flavor"`
	Quantity    *int      `json:"quantity" binding:"required"`
	Price       *float64  `json:"price" binding:"required"`
	Category    string    `json:"category"`
	Discount    float64   `json:"discount"`
	ProductName string    `json:"product_name"`
}

func (r *cartItemRequest) delta() models.CartDelta {
	return models.CartDelta{
		ProductID:   r.ProductID,
		Size:        r.Size,
		Color:       r.Color,
		Flavor:      r.Flavor,
		Quantity:    *r.Quantity,
		Price:       *r.Price,
		Category:    r.Category,
		Discount:    r.Discount,
		ProductName: r.ProductName,
	}
}

// ReconcileCart folds the submitted item deltas into the caller's cart:
// positive quantities add or extend lines, negative quantities remove them.
// A cart reconciled down to zero lines is deleted rather than kept empty.
func (h *CartHandler) ReconcileCart(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req struct {
		Items []cartItemRequest `json:"items" binding:"required,min=1,dive"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": utils.SanitizeValidationError(err)})
		return
	}

	deltas := make([]models.CartDelta, 0, len(req.Items))
	for i := range req.Items {
		deltas = append(deltas, req.Items[i].delta())
	}

	var cart models.Cart
	err := h.DB.Preload("Lines").Where("user_id = ?", userID).First(&cart).Error

	if err != nil {
		if err != gorm.ErrRecordNotFound {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cart"})
			return
		}

		lines := models.ApplyDeltas(nil, deltas)
		if len(lines) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "No items with a positive quantity to add"})
			return
		}

		cart = models.Cart{
			ID:     uuid.New(),
			UserID: userID.(uuid.UUID),
			Lines:  lines,
		}
		if err := h.DB.Create(&cart).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create cart"})
			return
		}

		h.DB.Preload("Lines").First(&cart, cart.ID)
		c.JSON(http.StatusCreated, cart)
		return
	}

	lines := models.ApplyDeltas(cart.Lines, deltas)

	if len(lines) == 0 {
		err := h.DB.Transaction(func(tx *gorm.DB) error {
			if err := tx.Where("cart_id = ?", cart.ID).Delete(&models.CartLine{}).Error; err != nil {
				return err
			}
			return tx.Delete(&cart).Error
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete cart"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Cart is empty and has been removed"})
		return
	}

	// Replace the line set wholesale; the fold already merged duplicates.
	err = h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("cart_id = ?", cart.ID).Delete(&models.CartLine{}).Error; err != nil {
			return err
		}
		for i := range lines {
			lines[i].ID = uuid.Nil
			lines[i].CartID = cart.ID
		}
		return tx.Create(&lines).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update cart"})
		return
	}

	h.DB.Preload("Lines").First(&cart, cart.ID)
	c.JSON(http.StatusOK, cart)
}

func (h *CartHandler) GetCart(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var cart models.Cart
	if err := h.DB.Preload("Lines").Where("user_id = ?", userID).First(&cart).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Cart not found"})
		return
	}

	if len(cart.Lines) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Cart not found"})
		return
	}

	c.JSON(http.StatusOK, cart)
}
