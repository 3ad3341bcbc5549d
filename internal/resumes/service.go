package resumes

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"

	"jobmatch-backend/internal/extract"
	"jobmatch-backend/internal/shared/storage/object"
	"jobmatch-backend/match/model"
)

// Service contains business logic for resumes.
type Service struct {
	Repo  Repo
	Store object.ObjectStore
}

// Create validates and stores a profile submitted as structured JSON.
func (s *Service) Create(ctx context.Context, userId, name string, profile model.ResumeProfile) (Resume, error) {
	if err := validateProfile(profile); err != nil {
		return Resume{}, err
	}

	rec := Resume{
		ID:        uuid.NewString(),
		UserID:    userId,
		Name:      strings.TrimSpace(name),
		Profile:   normalizeProfile(profile),
		CreatedAt: time.Now().UTC(),
	}

	if err := s.Repo.Create(ctx, rec); err != nil {
		return Resume{}, err
	}

	return rec, nil
}

// Upload saves the file to object storage, extracts its text, and stores a
// profile derived from it.
func (s *Service) Upload(ctx context.Context, userId, fileName string, r io.Reader) (Resume, error) {
	if fileName == "" {
		return Resume{}, fmt.Errorf("%w: file name is required", ErrInvalidInput)
	}

	storageKey, size, mimeType, err := s.Store.Save(ctx, userId, fileName, r)
	if err != nil {
		return Resume{}, err
	}

	text, err := extract.ExtractText(ctx, s.Store, storageKey, mimeType, fileName)
	if err != nil {
		if errors.Is(err, extract.ErrUnsupported) {
			return Resume{}, fmt.Errorf("%w: %s", ErrInvalidInput, err)
		}
		return Resume{}, err
	}
	if strings.TrimSpace(text) == "" {
		return Resume{}, fmt.Errorf("%w: no text could be extracted from %s", ErrInvalidInput, fileName)
	}

	rec := Resume{
		ID:             uuid.NewString(),
		UserID:         userId,
		Name:           fileName,
		Profile:        DeriveProfile(text),
		SourceKey:      storageKey,
		SourceFileName: fileName,
		MimeType:       mimeType,
		SizeBytes:      size,
		CreatedAt:      time.Now().UTC(),
	}

	if err := s.Repo.Create(ctx, rec); err != nil {
		return Resume{}, err
	}

	return rec, nil
}

// Get returns a resume by ID for a user.
func (s *Service) Get(ctx context.Context, userId, resumeID string) (Resume, error) {
	if resumeID == "" {
		return Resume{}, fmt.Errorf("%w: resume id is required", ErrInvalidInput)
	}
	return s.Repo.GetByID(ctx, userId, resumeID)
}

// List returns resumes for a user, newest first.
func (s *Service) List(ctx context.Context, userId string, limit, offset int) ([]Resume, error) {
	return s.Repo.ListByUser(ctx, userId, limit, offset)
}

func validateProfile(p model.ResumeProfile) error {
	if p.YearsOfExperience < 0 {
		return fmt.Errorf("%w: yearsOfExperience must be non-negative", ErrInvalidInput)
	}
	if len(p.Skills) == 0 && len(p.WorkHistory) == 0 && strings.TrimSpace(p.Summary) == "" {
		return fmt.Errorf("%w: profile needs skills, work history, or a summary", ErrInvalidInput)
	}
	return nil
}

func normalizeProfile(p model.ResumeProfile) model.ResumeProfile {
	p.Skills = cleanStrings(p.Skills)
	p.WorkHistory = cleanStrings(p.WorkHistory)
	p.Projects = cleanStrings(p.Projects)
	p.Education = cleanStrings(p.Education)
	p.Certifications = cleanStrings(p.Certifications)
	p.Summary = strings.TrimSpace(p.Summary)
	p.HighestDegree = strings.TrimSpace(p.HighestDegree)
	p.WorkAuthorization = strings.TrimSpace(p.WorkAuthorization)
	return p
}

func cleanStrings(in []string) []string {
	out := make([]string, 0, len(in))
	for _, v := range in {
		v = strings.TrimSpace(v)
		if v != "" {
			out = append(out, v)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
