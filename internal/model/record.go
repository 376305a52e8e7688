package model

// UserProfile is collected once per session after analysis succeeds
type UserProfile struct {
	Name    string `json:"name" bson:"name" validate:"required"`
	Email   string `json:"email" bson:"email" validate:"required,email"`
	Phone   string `json:"phone" bson:"phone" validate:"required"`
	Consent bool   `json:"consent" bson:"consent"`
}

// StorageRecord is the immutable artifact committed for each completed session
type StorageRecord struct {
	UserProfile `bson:",inline"`
	ID          string      `json:"id" bson:"_id"`
	Date        string      `json:"date" bson:"date"` // RFC3339, UTC
	RiasecCode  string      `json:"riasecCode" bson:"riasecCode"`
	Scores      ScoreVector `json:"scores" bson:"scores"`
}
