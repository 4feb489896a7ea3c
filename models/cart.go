package models

import (
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Cart holds the current line set for one user. A cart with zero lines is
// never persisted; reconciliation deletes it instead.
type Cart struct {
	ID        uuid.UUID  `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	UserID    uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex" json:"user_id"`
	Lines     []CartLine `gorm:"foreignKey:CartID" json:"lines"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

func (c *Cart) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// CartLine is one distinct purchasable combination. Category, discount and
// product name are snapshots taken at add time, not live references.
// Within a cart the identity key (product, size, sorted colors, trimmed
// flavor) is unique.
type CartLine struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	CartID      uuid.UUID `gorm:"type:uuid;not null;index" json:"cart_id"`
	ProductID   uuid.UUID `gorm:"type:uuid;not null" json:"product_id"`
	Size        string    `gorm:"not null" json:"size"`
	Color       []string  `gorm:"serializer:json" json:"color"`
	Flavor      string    `json:"flavor"`
	Quantity    int       `gorm:"not null" json:"quantity"`
	Price       float64   `gorm:"not null" json:"price"`
	Category    string    `json:"category"`
	Discount    float64   `gorm:"default:0" json:"discount"`
	ProductName string    `json:"product_name"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (l *CartLine) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}

// CartDelta is a requested change to one line: positive quantity adds,
// negative removes.
type CartDelta struct {
	ProductID   uuid.UUID
	Size        string
	Color       []string
	Flavor      string
	Quantity    int
	Price       float64
	Category    string
	Discount    float64
	ProductName string
}

// NormalizeColors returns a sorted copy so that color-set identity is
// order-insensitive.
func NormalizeColors(colors []string) []string {
	out := make([]string, len(colors))
	copy(out, colors)
	sort.Strings(out)
	return out
}

// lineKey identifies "the same" purchasable item across lines and deltas.
type lineKey struct {
	productID string
	size      string
	colors    string
	flavor    string
}

func makeKey(productID uuid.UUID, size string, colors []string, flavor string) lineKey {
	return lineKey{
		productID: productID.String(),
		size:      size,
		colors:    strings.Join(NormalizeColors(colors), "|"),
		flavor:    strings.TrimSpace(flavor),
	}
}

func (l *CartLine) key() lineKey {
	return makeKey(l.ProductID, l.Size, l.Color, l.Flavor)
}

func (d *CartDelta) key() lineKey {
	return makeKey(d.ProductID, d.Size, d.Color, d.Flavor)
}

// Line materializes a delta as a new cart line with a normalized identity.
func (d *CartDelta) Line() CartLine {
	return CartLine{
		ProductID:   d.ProductID,
		Size:        d.Size,
		Color:       NormalizeColors(d.Color),
		Flavor:      strings.TrimSpace(d.Flavor),
		Quantity:    d.Quantity,
		Price:       d.Price,
		Category:    d.Category,
		Discount:    d.Discount,
		ProductName: d.ProductName,
	}
}

// ApplyDeltas folds deltas into an existing line set sequentially, so later
// deltas observe the effects of earlier ones within the same call.
// A delta matching an existing line adds its signed quantity and overwrites
// the price; a line driven to zero or below is dropped. An unmatched delta
// appends a new line only when its quantity is positive.
// Passing nil lines covers the new-cart case: non-positive deltas are
// filtered out and same-key deltas merge.
func ApplyDeltas(lines []CartLine, deltas []CartDelta) []CartLine {
	out := make([]CartLine, len(lines))
	copy(out, lines)

	for i := range deltas {
		d := &deltas[i]
		k := d.key()

		idx := -1
		for j := range out {
			if out[j].key() == k {
				idx = j
				break
			}
		}

		if idx >= 0 {
			out[idx].Quantity += d.Quantity
			out[idx].Price = d.Price
			if out[idx].Quantity <= 0 {
				out = append(out[:idx], out[idx+1:]...)
			}
		} else if d.Quantity > 0 {
			out = append(out, d.Line())
		}
	}

	return out
}
