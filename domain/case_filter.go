package domain

const (
	SortByDate       = "date"
	SortByRating     = "rating"
	SortByPopularity = "popularity"
)

// CaseFilter drives the paginated catalog listing.
type CaseFilter struct {
	Page      int    `query:"page"`
	Limit     int    `query:"limit"`
	Country   string `query:"country"`
	Status    string `query:"status"`
	CrimeType string `query:"crimeType"`
	Search    string `query:"search"`
}

type SearchFilter struct {
	Q         string `query:"q"`
	Country   string `query:"country"`
	Status    string `query:"status"`
	CrimeType string `query:"crimeType"`
	YearFrom  int    `query:"yearFrom"`
	YearTo    int    `query:"yearTo"`
	SortBy    string `query:"sortBy"`
	SortOrder string `query:"sortOrder"`
	Limit     int    `query:"limit"`
}

// CaseInput is the admin payload for creating or replacing a case.
type CaseInput struct {
	Title       string          `json:"title" validate:"required,min=1,max=200"`
	Description string          `json:"description" validate:"required"`
	Poster      string          `json:"poster"`
	Backdrop    string          `json:"backdrop"`
	Rating      float64         `json:"rating" validate:"gte=0,lte=10"`
	Year        int             `json:"year" validate:"required,gte=1900,lte=2100"`
	Duration    string          `json:"duration"`
	Country     string          `json:"country" validate:"required"`
	CrimeType   []string        `json:"crimeType"`
	Tags        []string        `json:"tags"`
	Timeline    []TimelineEvent `json:"timeline"`
	Facts       []string        `json:"facts"`
	Status      string          `json:"status" validate:"required,oneof=Solved Unsolved 'Cold Case'"`
	Victims     *int            `json:"victims" validate:"omitempty,gte=0"`
	VideoURL    string          `json:"videoUrl"`
}
