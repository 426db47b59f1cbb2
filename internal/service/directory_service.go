package service

import (
	"context"

	"choosecare-bff/internal/imagecache"
	"choosecare-bff/internal/models"
	"choosecare-bff/internal/normalize"
	"choosecare-bff/internal/screen"

	"github.com/rs/zerolog"
)

// DirectoryAPI is the read side of the upstream client.
type DirectoryAPI interface {
	ListHospitals(ctx context.Context, token string) ([]models.Hospital, error)
	GetHospital(ctx context.Context, token, id string) (models.Hospital, error)
	ListDepartments(ctx context.Context, token, hospitalID string) ([]models.Department, error)
	ListDoctors(ctx context.Context, token, departmentID string) ([]models.Doctor, error)
	GetDoctor(ctx context.Context, token, id string) (models.Doctor, error)
}

// DirectoryService serves the patient-facing hospital → department → doctor
// browsing screens. Requests go out without a token.
type DirectoryService struct {
	api    DirectoryAPI
	cache  *imagecache.Cache
	logger zerolog.Logger
}

func NewDirectoryService(api DirectoryAPI, cache *imagecache.Cache, logger zerolog.Logger) *DirectoryService {
	return &DirectoryService{
		api:    api,
		cache:  cache,
		logger: logger.With().Str("component", "directory").Logger(),
	}
}

// Hospitals fetches all hospitals, fills in cached pictures and filters by
// search. On failure the list is empty and the error is returned with it.
func (s *DirectoryService) Hospitals(ctx context.Context, search string) ([]models.Hospital, error) {
	hospitals, err := s.api.ListHospitals(ctx, "")
	if err != nil {
		s.logger.Warn().Err(err).Msg("hospital fetch failed")
		return []models.Hospital{}, err
	}
	return screen.Filter(normalize.All(ctx, s.cache, hospitals), search), nil
}

// Hospital fetches one hospital's details.
func (s *DirectoryService) Hospital(ctx context.Context, id string) (models.Hospital, error) {
	hospital, err := s.api.GetHospital(ctx, "", id)
	if err != nil {
		s.logger.Warn().Err(err).Str("hospital_id", id).Msg("hospital fetch failed")
		return models.Hospital{}, err
	}
	return normalize.One(ctx, s.cache, hospital), nil
}

func (s *DirectoryService) Departments(ctx context.Context, hospitalID, search string) ([]models.Department, error) {
	departments, err := s.api.ListDepartments(ctx, "", hospitalID)
	if err != nil {
		s.logger.Warn().Err(err).Str("hospital_id", hospitalID).Msg("department fetch failed")
		return []models.Department{}, err
	}
	return screen.Filter(departments, search), nil
}

func (s *DirectoryService) Doctors(ctx context.Context, departmentID, search string) ([]models.Doctor, error) {
	doctors, err := s.api.ListDoctors(ctx, "", departmentID)
	if err != nil {
		s.logger.Warn().Err(err).Str("department_id", departmentID).Msg("doctor fetch failed")
		return []models.Doctor{}, err
	}
	return screen.Filter(normalize.All(ctx, s.cache, doctors), search), nil
}

// Doctor fetches one doctor's profile.
func (s *DirectoryService) Doctor(ctx context.Context, token, id string) (models.Doctor, error) {
	doctor, err := s.api.GetDoctor(ctx, token, id)
	if err != nil {
		return models.Doctor{}, err
	}
	return normalize.One(ctx, s.cache, doctor), nil
}
