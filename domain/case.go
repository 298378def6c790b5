package domain

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
)

// CREATE TABLE public.cases (
//     id           VARCHAR(64) PRIMARY KEY,
//     title        TEXT NOT NULL,
//     description  TEXT NOT NULL,
//     poster       TEXT,
//     backdrop     TEXT,
//     rating       NUMERIC NOT NULL DEFAULT 0,
//     year         INT NOT NULL,
//     duration     TEXT,
//     country      TEXT NOT NULL,
//     crime_type   JSONB,
//     tags         JSONB,
//     timeline     JSONB,
//     facts        JSONB,
//     status       TEXT NOT NULL,
//     victims      INT,
//     video_url    TEXT,
//     created_at   TIMESTAMPTZ DEFAULT NOW(),
//     updated_at   TIMESTAMPTZ DEFAULT NOW()
// );

const (
	CaseStatusSolved   = "Solved"
	CaseStatusUnsolved = "Unsolved"
	CaseStatusColdCase = "Cold Case"
)

type Case struct {
	ID          string         `gorm:"primaryKey;column:id;type:varchar(64)" json:"id"`
	Title       string         `gorm:"column:title;type:text;not null" json:"title"`
	Description string         `gorm:"column:description;type:text;not null" json:"description"`
	Poster      string         `gorm:"column:poster;type:text" json:"poster,omitempty"`
	Backdrop    string         `gorm:"column:backdrop;type:text" json:"backdrop,omitempty"`
	Rating      float64        `gorm:"column:rating;type:numeric" json:"rating"`
	Year        int            `gorm:"column:year" json:"year"`
	Duration    string         `gorm:"column:duration;type:text" json:"duration"`
	Country     string         `gorm:"column:country;type:text" json:"country"`
	CrimeType   datatypes.JSON `gorm:"column:crime_type;type:jsonb" json:"crimeType"`
	Tags        datatypes.JSON `gorm:"column:tags;type:jsonb" json:"tags"`
	Timeline    datatypes.JSON `gorm:"column:timeline;type:jsonb" json:"timeline,omitempty"`
	Facts       datatypes.JSON `gorm:"column:facts;type:jsonb" json:"facts,omitempty"`
	Status      string         `gorm:"column:status;type:text" json:"status"`
	Victims     *int           `gorm:"column:victims" json:"victims,omitempty"`
	VideoURL    string         `gorm:"column:video_url;type:text" json:"videoUrl,omitempty"`
	CreatedAt   time.Time      `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt   time.Time      `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}

func (Case) TableName() string {
	return "cases"
}

type TimelineEvent struct {
	Date  string `json:"date"`
	Event string `json:"event"`
}

// CrimeTypes decodes the crime_type column. An empty column is an empty list.
func (c Case) CrimeTypes() ([]string, error) {
	return DecodeLabels(c.CrimeType)
}

// TagList decodes the tags column. An empty column is an empty list.
func (c Case) TagList() ([]string, error) {
	return DecodeLabels(c.Tags)
}

// DecodeLabels parses a JSON array of strings. null and empty input decode to nil.
func DecodeLabels(raw datatypes.JSON) ([]string, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, nil
	}

	var labels []string
	if err := json.Unmarshal(raw, &labels); err != nil {
		return nil, err
	}

	return labels, nil
}

// EncodeLabels is the inverse of DecodeLabels. A nil slice encodes to [].
func EncodeLabels(labels []string) datatypes.JSON {
	if labels == nil {
		labels = []string{}
	}
	raw, _ := json.Marshal(labels)
	return datatypes.JSON(raw)
}

type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"totalPages"`
}
