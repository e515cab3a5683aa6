package model

import (
	"time"

	"github.com/google/uuid"
)

// AcronymModel mirrors the 'acronyms' table. Every acronym references its
// owning user; deleting the user removes the acronym by cascade.
type AcronymModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`
	Short     string    `gorm:"type:varchar(100);not null;index"`
	Long      string    `gorm:"type:text;not null"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Categories []CategoryModel `gorm:"many2many:acronym_categories;joinForeignKey:AcronymID;joinReferences:CategoryID"`
}

// TableName explicitly sets the table name for GORM.
func (AcronymModel) TableName() string {
	return "acronyms"
}

// CategoryModel mirrors the 'categories' table. Names are unique, matching
// the later schema revision that deduplicated tags.
type CategoryModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`
	Name      string    `gorm:"type:varchar(100);unique;not null"`
	CreatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (CategoryModel) TableName() string {
	return "categories"
}

// AcronymCategoryModel mirrors the 'acronym_categories' pivot table. The
// composite unique index is the store-level backstop for the service layer's
// read-then-check attach, closing the race between two concurrent attaches.
type AcronymCategoryModel struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`
	AcronymID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_acronym_category_pair"`
	CategoryID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_acronym_category_pair"`
	CreatedAt  time.Time
}

// TableName explicitly sets the table name for GORM.
func (AcronymCategoryModel) TableName() string {
	return "acronym_categories"
}
