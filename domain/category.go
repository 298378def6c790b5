package domain

import "time"

// CREATE TABLE public.categories (
//     id           VARCHAR(64) PRIMARY KEY,
//     name         TEXT NOT NULL,
//     order_index  INT NOT NULL DEFAULT 0,
//     created_at   TIMESTAMPTZ DEFAULT NOW(),
//     updated_at   TIMESTAMPTZ DEFAULT NOW()
// );
//
// CREATE TABLE public.category_cases (
//     category_id  VARCHAR(64) NOT NULL REFERENCES categories(id) ON DELETE CASCADE,
//     case_id      VARCHAR(64) NOT NULL REFERENCES cases(id) ON DELETE CASCADE,
//     PRIMARY KEY (category_id, case_id)
// );

type Category struct {
	ID         string    `gorm:"primaryKey;column:id;type:varchar(64)" json:"id"`
	Name       string    `gorm:"column:name;type:text;not null" json:"name"`
	OrderIndex int       `gorm:"column:order_index;not null;default:0" json:"orderIndex"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt  time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`

	Cases []CaseSummary `gorm:"-" json:"cases"`
}

func (Category) TableName() string {
	return "categories"
}

type CategoryCase struct {
	CategoryID string `gorm:"column:category_id;primaryKey"`
	CaseID     string `gorm:"column:case_id;primaryKey"`
}

func (CategoryCase) TableName() string {
	return "category_cases"
}

// CaseSummary is the card shown for a case inside a category.
type CaseSummary struct {
	ID     string  `json:"id"`
	Title  string  `json:"title"`
	Poster string  `json:"poster,omitempty"`
	Rating float64 `json:"rating"`
	Year   int     `json:"year"`
	Status string  `json:"status"`
}

// CategoryInput creates a category. An empty ID gets a generated one.
type CategoryInput struct {
	ID         string `json:"id" validate:"omitempty,max=64"`
	Name       string `json:"name" validate:"required,max=100"`
	OrderIndex int    `json:"orderIndex"`
}

// CategoryUpdate is a partial update; nil fields are left alone.
type CategoryUpdate struct {
	Name       *string `json:"name" validate:"omitnil,min=1,max=100"`
	OrderIndex *int    `json:"orderIndex"`
}
