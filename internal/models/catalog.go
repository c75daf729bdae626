package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Category struct {
	ID          string    `gorm:"type:uuid;primaryKey" json:"id"`
	Name        string    `gorm:"uniqueIndex;not null" json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (c *Category) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}

type Subcategory struct {
	ID          string    `gorm:"type:uuid;primaryKey" json:"id"`
	Name        string    `gorm:"not null" json:"name"`
	Description string    `json:"description"`
	CategoryID  string    `gorm:"type:uuid;index;not null" json:"category_id"`
	Category    Category  `gorm:"foreignKey:CategoryID" json:"category"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (s *Subcategory) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return nil
}

// Concentration is a dosage strength, e.g. value "500" unit "mg".
type Concentration struct {
	ID        string    `gorm:"type:uuid;primaryKey" json:"id"`
	Value     string    `gorm:"not null" json:"value"`
	Unit      string    `gorm:"not null" json:"unit"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (c *Concentration) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}

// PharmaceuticalForm is a presentation such as tablet, capsule or syrup.
type PharmaceuticalForm struct {
	ID          string    `gorm:"type:uuid;primaryKey" json:"id"`
	Name        string    `gorm:"uniqueIndex;not null" json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (f *PharmaceuticalForm) BeforeCreate(tx *gorm.DB) error {
	if f.ID == "" {
		f.ID = uuid.NewString()
	}
	return nil
}

type ActiveIngredient struct {
	ID          string    `gorm:"type:uuid;primaryKey" json:"id"`
	Name        string    `gorm:"uniqueIndex;not null" json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (a *ActiveIngredient) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}

type Product struct {
	ID                   string             `gorm:"type:uuid;primaryKey" json:"id"`
	TradeName            string             `gorm:"not null" json:"trade_name"`
	GenericName          string             `gorm:"not null" json:"generic_name"`
	ActiveIngredientID   string             `gorm:"type:uuid;not null" json:"active_ingredient_id"`
	ActiveIngredient     ActiveIngredient   `gorm:"foreignKey:ActiveIngredientID" json:"active_ingredient"`
	ConcentrationID      string             `gorm:"type:uuid;not null" json:"concentration_id"`
	Concentration        Concentration      `gorm:"foreignKey:ConcentrationID" json:"concentration"`
	PharmaceuticalFormID string             `gorm:"type:uuid;not null" json:"pharmaceutical_form_id"`
	PharmaceuticalForm   PharmaceuticalForm `gorm:"foreignKey:PharmaceuticalFormID" json:"pharmaceutical_form"`
	SubcategoryID        string             `gorm:"type:uuid;not null" json:"subcategory_id"`
	Subcategory          Subcategory        `gorm:"foreignKey:SubcategoryID" json:"subcategory"`
	Barcode              string             `gorm:"uniqueIndex" json:"barcode"`
	MinimumStock         int                `gorm:"not null;default:0" json:"minimum_stock"`
	CreatedAt            time.Time          `json:"created_at"`
	UpdatedAt            time.Time          `json:"updated_at"`
}

func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}
