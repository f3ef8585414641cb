package models

type Product struct {
	ID           int      `json:"id"`
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	Price        float64  `json:"price"`
	Category     string   `json:"category"`
	Subcategory  string   `json:"subcategory"`
	ImageURL     string   `json:"image_url"`
	Colors       []string `json:"colors"`
	Sizes        []string `json:"sizes"`
	StyleTags    []string `json:"style_tags"`
	Brand        string   `json:"brand"`
	Material     string   `json:"material"`
	Rating       float64  `json:"rating"`
	InStock      bool     `json:"in_stock"`
	DeliveryDays int      `json:"delivery_days"`
	Discount     int      `json:"discount"`
}

// ProductRef is the short form used in the category listing.
type ProductRef struct {
	ID       int     `json:"id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	ImageURL string  `json:"image_url"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}
