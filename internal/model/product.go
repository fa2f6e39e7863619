package model

import (
	"io"
	"math"
	"strconv"
	"strings"
	"time"
)

// Product represents an item in the catalogue.
type Product struct {
	ID          string    `json:"id" db:"id"`
	Category    string    `json:"categoria" db:"category"`
	Name        string    `json:"nome" db:"name"`
	Description *string   `json:"descricao" db:"description"`
	Value       float64   `json:"valor" db:"value"`
	Image       *string   `json:"imagem" db:"image"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time `json:"updatedAt" db:"updated_at"`
}

// Upload is a binary image received with a request.
type Upload struct {
	Filename string
	Size     int64
	Content  io.Reader
}

// ImageInput holds whatever image data accompanied a create or update.
// Reference is an externally supplied URL or path; Upload is a file part.
type ImageInput struct {
	Reference string
	Upload    *Upload
}

// IsEmpty reports whether no image data was supplied.
func (in ImageInput) IsEmpty() bool {
	return strings.TrimSpace(in.Reference) == "" && in.Upload == nil
}

// ProductInput carries the fields of a create request.
type ProductInput struct {
	Category    string
	Name        string
	Description *string
	Value       string
	Image       ImageInput
}

// Build validates the input and returns the product to insert.
// ID, Image and timestamps are left for the caller.
func (in ProductInput) Build() (Product, error) {
	if strings.TrimSpace(in.Category) == "" {
		return Product{}, ErrMissingCategory
	}

	value, err := ParseValue(in.Value)
	if err != nil {
		return Product{}, err
	}

	return Product{
		Category:    in.Category,
		Name:        in.Name,
		Description: normaliseDescription(in.Description),
		Value:       value,
	}, nil
}

// ProductUpdate carries only the fields a client explicitly supplied.
// A nil pointer means the field was absent from the request.
type ProductUpdate struct {
	Category    *string
	Name        *string
	Description *string
	Value       *string
	Image       ImageInput
}

// Apply merges the update over existing and returns the result.
// existing is not modified. Image is not touched here.
//
// Category and name are replaced only by non-blank text. Value is parsed
// only when non-blank. A present description always replaces the stored
// one, and an empty description clears it.
func (u ProductUpdate) Apply(existing Product) (Product, error) {
	merged := existing

	if u.Category != nil && strings.TrimSpace(*u.Category) != "" {
		merged.Category = *u.Category
	}

	if u.Name != nil && strings.TrimSpace(*u.Name) != "" {
		merged.Name = *u.Name
	}

	if u.Description != nil {
		merged.Description = normaliseDescription(u.Description)
	}

	if u.Value != nil && strings.TrimSpace(*u.Value) != "" {
		value, err := ParseValue(*u.Value)
		if err != nil {
			return Product{}, err
		}
		merged.Value = value
	}

	return merged, nil
}

// ParseValue converts numeric text into a product value.
// The whole trimmed string must be a finite decimal number.
func ParseValue(raw string) (float64, error) {
	text := strings.TrimSpace(raw)
	if text == "" {
		return 0, ErrMissingValue
	}

	value, err := strconv.ParseFloat(text, 64)
	if err != nil || math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, ErrInvalidValue
	}

	return value, nil
}

func normaliseDescription(description *string) *string {
	if description == nil || *description == "" {
		return nil
	}
	d := *description
	return &d
}
