package catalog

import (
	"errors"

	"github.com/shopspring/decimal"
)

// Product is a catalog record. Price and DiscountPercent are what the cart
// snapshots at add-to-cart time; they are never re-read afterwards.
type Product struct {
	ID               string          `json:"id"`
	Name             string          `json:"name"`
	Category         string          `json:"category"`
	Image            string          `json:"image"`
	ShortDescription string          `json:"short_description"`
	Price            decimal.Decimal `json:"price"`
	DiscountPercent  decimal.Decimal `json:"discount_percent"`
	Rating           float64         `json:"rating"`
	Stock            int             `json:"stock"`
}

// ErrNotFound is returned when a product id is not in the catalog.
var ErrNotFound = errors.New("product not found")

// products is the static mock catalog backing the storefront. There is no
// inventory system behind it; Stock is display-only.
var products = []Product{
	{
		ID:               "prod-1001",
		Name:             "Wireless Noise-Cancelling Headphones",
		Category:         "audio",
		Image:            "/images/products/headphones.jpg",
		ShortDescription: "Over-ear headphones with 30-hour battery life.",
		Price:            decimal.RequireFromString("89.99"),
		DiscountPercent:  decimal.RequireFromString("10"),
		Rating:           4.6,
		Stock:            42,
	},
	{
		ID:               "prod-1002",
		Name:             "Smart Fitness Watch",
		Category:         "wearables",
		Image:            "/images/products/fitness-watch.jpg",
		ShortDescription: "Heart-rate, sleep and workout tracking.",
		Price:            decimal.RequireFromString("59.00"),
		DiscountPercent:  decimal.Zero,
		Rating:           4.2,
		Stock:            118,
	},
	{
		ID:               "prod-1003",
		Name:             "Portable Bluetooth Speaker",
		Category:         "audio",
		Image:            "/images/products/speaker.jpg",
		ShortDescription: "Waterproof speaker with 12-hour playtime.",
		Price:            decimal.RequireFromString("25.00"),
		DiscountPercent:  decimal.RequireFromString("20"),
		Rating:           4.4,
		Stock:            75,
	},
	{
		ID:               "prod-1004",
		Name:             "USB-C Fast Charger 65W",
		Category:         "accessories",
		Image:            "/images/products/charger.jpg",
		ShortDescription: "GaN charger for laptops and phones.",
		Price:            decimal.RequireFromString("34.50"),
		DiscountPercent:  decimal.RequireFromString("5"),
		Rating:           4.8,
		Stock:            200,
	},
	{
		ID:               "prod-1005",
		Name:             "Mechanical Keyboard TKL",
		Category:         "accessories",
		Image:            "/images/products/keyboard.jpg",
		ShortDescription: "Hot-swappable switches, white backlight.",
		Price:            decimal.RequireFromString("120.00"),
		DiscountPercent:  decimal.RequireFromString("15"),
		Rating:           4.5,
		Stock:            31,
	},
	{
		ID:               "prod-1006",
		Name:             "4K Action Camera",
		Category:         "cameras",
		Image:            "/images/products/action-cam.jpg",
		ShortDescription: "Stabilized 4K60 video, dive case included.",
		Price:            decimal.RequireFromString("149.99"),
		DiscountPercent:  decimal.Zero,
		Rating:           4.1,
		Stock:            17,
	},
}

// Get returns the product with the given id, or ErrNotFound.
func Get(id string) (Product, error) {
	for _, p := range products {
		if p.ID == id {
			return p, nil
		}
	}
	return Product{}, ErrNotFound
}

// List returns all catalog products in display order.
func List() []Product {
	out := make([]Product, len(products))
	copy(out, products)
	return out
}
