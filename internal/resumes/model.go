package resumes

import (
	"time"

	"jobmatch-backend/match/model"
)

// Resume is a stored candidate snapshot owned by a user. Profile is the
// structured form the scoring engine consumes. The Source fields describe
// the uploaded file a profile was derived from and stay empty for profiles
// submitted as JSON.
type Resume struct {
	ID             string
	UserID         string
	Name           string
	Profile        model.ResumeProfile
	SourceKey      string
	SourceFileName string
	MimeType       string
	SizeBytes      int64
	CreatedAt      time.Time
}
