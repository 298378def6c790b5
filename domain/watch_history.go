package domain

import "time"

// CREATE TABLE public.user_history (
//     user_id       BIGINT NOT NULL,
//     case_id       VARCHAR(64) NOT NULL REFERENCES cases(id) ON DELETE CASCADE,
//     progress      INT NOT NULL DEFAULT 0,
//     last_watched  TIMESTAMPTZ NOT NULL DEFAULT NOW(),
//     PRIMARY KEY (user_id, case_id)
// );

type WatchHistory struct {
	UserID      uint      `gorm:"column:user_id;primaryKey" json:"user_id"`
	CaseID      string    `gorm:"column:case_id;primaryKey" json:"case_id"`
	Progress    int       `gorm:"column:progress;not null" json:"progress"`
	LastWatched time.Time `gorm:"column:last_watched" json:"last_watched"`
}

func (WatchHistory) TableName() string {
	return "user_history"
}

// HistoryItem is a watched case together with the viewer's progress.
type HistoryItem struct {
	Case
	Progress    int       `json:"progress"`
	LastWatched time.Time `json:"lastWatched"`
}
