package models

import (
	"regexp"
	"strings"
	"time"
)

type Category string

const (
	CategoryMen   Category = "men"
	CategoryWomen Category = "women"
	CategoryKids  Category = "kids"
	CategoryUnset Category = ""
)

// ParseCategory accepts one of the catalog categories or the empty string.
func ParseCategory(s string) (Category, bool) {
	switch c := Category(strings.ToLower(strings.TrimSpace(s))); c {
	case CategoryMen, CategoryWomen, CategoryKids, CategoryUnset:
		return c, true
	default:
		return CategoryUnset, false
	}
}

// DisplayName is the label shown next to a product.
func (c Category) DisplayName() string {
	switch c {
	case CategoryMen:
		return "Men"
	case CategoryWomen:
		return "Women"
	case CategoryKids:
		return "Kids"
	default:
		return "General"
	}
}

// Product prices are always stored in USD.
type Product struct {
	ID           string     `json:"id"`
	Name         string     `json:"name"`
	Price        float64    `json:"price"`
	Image        string     `json:"image"`
	Description  string     `json:"description"`
	Category     Category   `json:"category"`
	DateAdded    time.Time  `json:"dateAdded"`
	LastModified *time.Time `json:"lastModified,omitempty"`
}

// ImagePrefix is the directory every uploaded product image lives under.
const ImagePrefix = "images/"

// ImageExtensions lists the accepted image formats.
var ImageExtensions = []string{".jpg", ".jpeg", ".png", ".webp", ".gif", ".svg"}

var imagesDir = regexp.MustCompile(`[\\/]images[\\/]`)

// NormalizeImagePath turns whatever the admin typed (often an absolute path
// copied from a file browser) into a path relative to the images directory.
func NormalizeImagePath(raw string) string {
	path := strings.TrimSpace(raw)
	if imagesDir.MatchString(path) {
		parts := imagesDir.Split(path, -1)
		path = ImagePrefix + parts[len(parts)-1]
	}
	if path != "" && !strings.HasPrefix(path, ImagePrefix) {
		path = ImagePrefix + path
	}
	return path
}

func hasImageExtension(path string) bool {
	lower := strings.ToLower(path)
	for _, ext := range ImageExtensions {
		if strings.HasSuffix(lower, ext) {
			return true
		}
	}
	return false
}

// ProductInput is the admin-submitted form for creating or editing a product.
// Price is in USD.
type ProductInput struct {
	Name        string
	Price       float64
	Image       string
	Description string
	Category    string
}

// ProductFields is a validated, normalized ProductInput.
type ProductFields struct {
	Name        string
	Price       float64
	Image       string
	Description string
	Category    Category
}

// Validate normalizes the input and checks it in the order the admin form
// reports problems: required fields, price, image path, image format,
// category.
func (in ProductInput) Validate() (ProductFields, error) {
	f := ProductFields{
		Name:        strings.TrimSpace(in.Name),
		Price:       in.Price,
		Image:       NormalizeImagePath(in.Image),
		Description: strings.TrimSpace(in.Description),
	}

	switch {
	case f.Name == "":
		return ProductFields{}, invalid("name", "please fill in all required fields (name, price, image path)")
	case f.Image == "":
		return ProductFields{}, invalid("image", "please fill in all required fields (name, price, image path)")
	case !(f.Price > 0):
		return ProductFields{}, invalid("price", "price must be greater than 0")
	case !strings.HasPrefix(f.Image, ImagePrefix):
		return ProductFields{}, invalid("image", `image path must start with "images/" (e.g., images/product1.jpg)`)
	case !hasImageExtension(f.Image):
		return ProductFields{}, invalid("image", "please use a valid image format: JPG, JPEG, PNG, WebP, GIF, or SVG")
	}

	category, ok := ParseCategory(in.Category)
	if !ok {
		return ProductFields{}, invalid("category", "category must be one of men, women, kids")
	}
	f.Category = category
	return f, nil
}
