package domain

import "time"

// CREATE TABLE public.recommendation_config (
//     config_key         TEXT PRIMARY KEY,
//     country_weight     NUMERIC NOT NULL,
//     crime_type_weight  NUMERIC NOT NULL,
//     tag_weight         NUMERIC NOT NULL,
//     rating_weight      NUMERIC NOT NULL,
//     completion_high    NUMERIC NOT NULL,
//     completion_mid     NUMERIC NOT NULL,
//     high_threshold     INT NOT NULL,
//     mid_threshold      INT NOT NULL,
//     updated_at         TIMESTAMPTZ DEFAULT NOW()
// );

type RecommendationConfig struct {
	Key string `json:"key" gorm:"column:config_key;primaryKey"`

	//  facet multipliers applied while scoring
	CountryWeight   float64 `json:"country_weight" gorm:"column:country_weight"`
	CrimeTypeWeight float64 `json:"crime_type_weight" gorm:"column:crime_type_weight"`
	TagWeight       float64 `json:"tag_weight" gorm:"column:tag_weight"`
	RatingWeight    float64 `json:"rating_weight" gorm:"column:rating_weight"`

	//  completion multipliers applied while building the profile
	CompletionHigh float64 `json:"completion_high" gorm:"column:completion_high"`
	CompletionMid  float64 `json:"completion_mid" gorm:"column:completion_mid"`
	HighThreshold  int     `json:"high_threshold" gorm:"column:high_threshold"`
	MidThreshold   int     `json:"mid_threshold" gorm:"column:mid_threshold"`

	UpdatedAt time.Time `json:"updated_at" gorm:"column:updated_at;autoUpdateTime"`
}

func (RecommendationConfig) TableName() string {
	return "recommendation_config"
}

type DebugRecommendation struct {
	CaseID         string  `json:"case_id"`
	Title          string  `json:"title"`
	Rating         float64 `json:"rating"`
	CountryScore   float64 `json:"country_score"`    // profile.countries[c] * wCountry
	CrimeTypeScore float64 `json:"crime_type_score"` // Σ profile.crimeTypes[t] * wCrimeType
	TagScore       float64 `json:"tag_score"`        // Σ profile.tags[t] * wTag
	RatingScore    float64 `json:"rating_score"`     // rating * wRating
	FinalScore     float64 `json:"final_score"`
	Padded         bool    `json:"padded"` // appended by the popularity fallback
}
