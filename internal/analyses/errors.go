package analyses

import "errors"

// MaxBatchJobs caps one batch-score request.
const MaxBatchJobs = 50

var (
	// ErrResumeRequired rejects requests carrying neither a resumeId nor
	// an inline resume.
	ErrResumeRequired = errors.New("resumeId or resume is required")
	// ErrJobDescriptionRequired rejects a direct analysis without job text.
	ErrJobDescriptionRequired = errors.New("jobDescription is required")
	// ErrJobRequired rejects a quick score without a posting.
	ErrJobRequired = errors.New("job is required")
	// ErrBatchTooLarge rejects batch requests beyond MaxBatchJobs.
	ErrBatchTooLarge = errors.New("too many jobs in one batch")
	// ErrNoJobs rejects an empty batch.
	ErrNoJobs = errors.New("jobs are required")
)
