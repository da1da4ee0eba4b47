package dto

type SearchRequest struct {
	UserId int64  `json:"user_id" validate:"required,gt=0"`
	Prompt string `json:"prompt" validate:"required,notblank"`
}

type SearchResultResponse struct {
	Name        string  `json:"name"`
	Phone       string  `json:"phone"`
	Score       float64 `json:"score"`
	Confidence  float64 `json:"confidence"`
	Reason      string  `json:"reason"`
	ProfileText string  `json:"profile_text"`
}

type ReferralSearchRequest struct {
	UserId int64  `json:"user_id" validate:"required,gt=0"`
	Prompt string `json:"prompt" validate:"required,notblank"`
}

type ReferralResponse struct {
	Name       string   `json:"name"`
	Phone      string   `json:"phone"`
	Confidence *float64 `json:"confidence,omitempty"`
}
