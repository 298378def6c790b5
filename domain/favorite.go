package domain

import "time"

// CREATE TABLE public.user_favorites (
//     user_id     BIGINT NOT NULL,
//     case_id     VARCHAR(64) NOT NULL REFERENCES cases(id) ON DELETE CASCADE,
//     created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW(),
//     PRIMARY KEY (user_id, case_id)
// );

type Favorite struct {
	UserID    uint      `gorm:"column:user_id;primaryKey" json:"user_id"`
	CaseID    string    `gorm:"column:case_id;primaryKey" json:"case_id"`
	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`
}

func (Favorite) TableName() string {
	return "user_favorites"
}
