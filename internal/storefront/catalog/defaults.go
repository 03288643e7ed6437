package catalog

import "metromobiles/internal/domain/catalog"

// DefaultProducts is the last-resort listing shown when both the API and the
// cached snapshot are unavailable, so the storefront never renders empty.
func DefaultProducts() []catalog.Product {
	return []catalog.Product{
		{
			ID:          "iphone-15-pro",
			Slug:        "iphone-15-pro",
			Name:        "iPhone 15 Pro",
			Brand:       "Apple",
			PriceCents:  99999,
			Description: "Latest iPhone with A17 Pro chip, titanium design, and advanced camera system",
			Image:       "products/images/iphone-15-pro.jpg",
			Stock:       25,
		},
		{
			ID:          "samsung-galaxy-s24-ultra",
			Slug:        "samsung-galaxy-s24-ultra",
			Name:        "Samsung Galaxy S24 Ultra",
			Brand:       "Samsung",
			PriceCents:  119999,
			Description: "Premium Android flagship with S Pen, incredible camera zoom, and powerful performance",
			Image:       "products/images/samsung-s24-ultra.jpg",
			Stock:       30,
		},
		{
			ID:          "google-pixel-8-pro",
			Slug:        "google-pixel-8-pro",
			Name:        "Google Pixel 8 Pro",
			Brand:       "Google",
			PriceCents:  89999,
			Description: "Best-in-class AI features, exceptional camera, and pure Android experience",
			Image:       "products/images/google-pixel-8-pro.jpg",
			Stock:       20,
		},
		{
			ID:          "oneplus-12",
			Slug:        "oneplus-12",
			Name:        "OnePlus 12",
			Brand:       "OnePlus",
			PriceCents:  79999,
			Description: "Fast charging, smooth display, and flagship performance at competitive price",
			Image:       "products/images/oneplus-12.jpg",
			Stock:       15,
		},
		{
			ID:          "xiaomi-14-pro",
			Slug:        "xiaomi-14-pro",
			Name:        "Xiaomi 14 Pro",
			Brand:       "Xiaomi",
			PriceCents:  69999,
			Description: "Leica-engineered cameras, powerful Snapdragon processor, great value",
			Image:       "products/images/xiaomi-14-pro.jpg",
			Stock:       18,
		},
		{
			ID:          "iphone-14",
			Slug:        "iphone-14",
			Name:        "iPhone 14",
			Brand:       "Apple",
			PriceCents:  69999,
			Description: "Reliable iPhone with excellent performance and camera capabilities",
			Image:       "products/images/iphone-14.jpg",
			Stock:       35,
		},
	}
}
