package service

import (
	"context"
	"errors"
	"fmt"

	"choosecare-bff/internal/forms"
	"choosecare-bff/internal/imagecache"
	"choosecare-bff/internal/models"
	"choosecare-bff/internal/normalize"
	"choosecare-bff/internal/screen"
	"choosecare-bff/internal/upstream"

	"github.com/rs/zerolog"
)

// Screen names accepted by the admin screen endpoints.
const (
	ScreenHospitals   = "hospitals"
	ScreenDepartments = "departments"
	ScreenDoctors     = "doctors"
)

var ErrUnknownScreen = errors.New("unknown screen")

// AdminAPI is the part of the upstream client the admin screens use.
type AdminAPI interface {
	ListHospitals(ctx context.Context, token string) ([]models.Hospital, error)
	CreateHospital(ctx context.Context, token string, h models.Hospital, img *upstream.Image) (models.Hospital, error)
	UpdateHospital(ctx context.Context, token string, h models.Hospital, img *upstream.Image) (models.Hospital, error)
	DeleteHospital(ctx context.Context, token, id string) error

	ListDepartments(ctx context.Context, token, hospitalID string) ([]models.Department, error)
	CreateDepartment(ctx context.Context, token string, d models.Department) (models.Department, error)
	UpdateDepartment(ctx context.Context, token string, d models.Department) (models.Department, error)
	DeleteDepartment(ctx context.Context, token, id string) error

	ListDoctors(ctx context.Context, token, departmentID string) ([]models.Doctor, error)
	CreateDoctor(ctx context.Context, token string, d models.Doctor, img *upstream.Image) (models.Doctor, error)
	UpdateDoctor(ctx context.Context, token string, d models.Doctor, img *upstream.Image) (models.Doctor, error)
	DeleteDoctor(ctx context.Context, token, id string) error

	SignupStaff(ctx context.Context, token string, s models.StaffSignup) (models.Staff, error)
}

// AdminService runs the hospital, department and doctor management screens
// of every device: list refetches, and the validate → submit → write-through
// → list update flow of the add/edit/delete modals.
type AdminService struct {
	api         AdminAPI
	cache       *imagecache.Cache
	auth        *AuthService
	hospitals   *screen.Registry[models.Hospital]
	departments *screen.Registry[models.Department]
	doctors     *screen.Registry[models.Doctor]
	logger      zerolog.Logger
}

func NewAdminService(api AdminAPI, cache *imagecache.Cache, auth *AuthService, logger zerolog.Logger) *AdminService {
	return &AdminService{
		api:         api,
		cache:       cache,
		auth:        auth,
		hospitals:   screen.NewRegistry[models.Hospital](),
		departments: screen.NewRegistry[models.Department](),
		doctors:     screen.NewRegistry[models.Doctor](),
		logger:      logger.With().Str("component", "admin").Logger(),
	}
}

// Screen returns the current state of a named screen.
func (s *AdminService) Screen(deviceID, name string) (any, error) {
	switch name {
	case ScreenHospitals:
		return s.hospitals.Get(deviceID), nil
	case ScreenDepartments:
		return s.departments.Get(deviceID), nil
	case ScreenDoctors:
		return s.doctors.Get(deviceID), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownScreen, name)
	}
}

// OpenForm shows the add/edit modal of a screen.
func (s *AdminService) OpenForm(deviceID, name string) (any, error) {
	switch name {
	case ScreenHospitals:
		return s.hospitals.Apply(deviceID, screen.Open[models.Hospital]), nil
	case ScreenDepartments:
		return s.departments.Apply(deviceID, screen.Open[models.Department]), nil
	case ScreenDoctors:
		return s.doctors.Apply(deviceID, screen.Open[models.Doctor]), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownScreen, name)
	}
}

// CloseForm dismisses the modal of a screen.
func (s *AdminService) CloseForm(deviceID, name string) (any, error) {
	switch name {
	case ScreenHospitals:
		return s.hospitals.Apply(deviceID, screen.Close[models.Hospital]), nil
	case ScreenDepartments:
		return s.departments.Apply(deviceID, screen.Close[models.Department]), nil
	case ScreenDoctors:
		return s.doctors.Apply(deviceID, screen.Close[models.Doctor]), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownScreen, name)
	}
}

// writeThrough settles the picture of a record the server just returned:
// the server's picture, else the one the form held, else whatever is cached.
func writeThrough[T any, P normalize.Record[T]](ctx context.Context, cache *imagecache.Cache, rec T, formPicture *string) T {
	p := P(&rec)
	picture := p.PictureURL()
	if picture == nil || *picture == "" {
		picture = formPicture
	}
	p.SetPicture(cache.Reconcile(ctx, p.EntityType(), p.RecordID(), picture))
	return rec
}

func missingID(op string) error {
	return &upstream.MutationError{Op: op, Message: "The server did not return the saved record", Err: errors.New("empty id in response")}
}

// ---- hospitals ----

// LoadHospitals refetches the hospital list and replaces the screen's list.
// A failed fetch leaves the screen with an empty list.
func (s *AdminService) LoadHospitals(ctx context.Context, deviceID, token string) (screen.State[models.Hospital], error) {
	hospitals, err := s.api.ListHospitals(ctx, token)
	if err != nil {
		st := s.hospitals.Apply(deviceID, func(st screen.State[models.Hospital]) screen.State[models.Hospital] {
			return screen.Loaded(st, hospitals)
		})
		return st, s.auth.logoutOnUnauthorized(ctx, deviceID, token, err)
	}
	hospitals = normalize.All(ctx, s.cache, hospitals)
	return s.hospitals.Apply(deviceID, func(st screen.State[models.Hospital]) screen.State[models.Hospital] {
		return screen.Loaded(st, hospitals)
	}), nil
}

func (s *AdminService) AddHospital(ctx context.Context, deviceID, token string, form forms.HospitalForm, img *upstream.Image) (screen.State[models.Hospital], error) {
	if err := form.Validate(); err != nil {
		return s.hospitals.Get(deviceID), err
	}
	payload := form.Hospital("")
	return s.hospitals.Submit(ctx, deviceID, func(ctx context.Context) (func(screen.State[models.Hospital]) screen.State[models.Hospital], error) {
		created, err := s.api.CreateHospital(ctx, token, payload, img)
		if err != nil {
			return nil, s.auth.logoutOnUnauthorized(ctx, deviceID, token, err)
		}
		if created.ID == "" {
			return nil, missingID("add hospital")
		}
		created = writeThrough(ctx, s.cache, created, payload.Picture)
		s.logger.Info().Str("device", deviceID).Str("hospital_id", string(created.ID)).Msg("hospital added")
		return func(st screen.State[models.Hospital]) screen.State[models.Hospital] {
			return screen.Added(st, created)
		}, nil
	})
}

func (s *AdminService) UpdateHospital(ctx context.Context, deviceID, token, id string, form forms.HospitalForm, img *upstream.Image) (screen.State[models.Hospital], error) {
	if err := form.Validate(); err != nil {
		return s.hospitals.Get(deviceID), err
	}
	payload := form.Hospital(id)
	return s.hospitals.Submit(ctx, deviceID, func(ctx context.Context) (func(screen.State[models.Hospital]) screen.State[models.Hospital], error) {
		updated, err := s.api.UpdateHospital(ctx, token, payload, img)
		if err != nil {
			return nil, s.auth.logoutOnUnauthorized(ctx, deviceID, token, err)
		}
		if updated.ID == "" {
			updated = payload
		}
		updated = writeThrough(ctx, s.cache, updated, payload.Picture)
		s.logger.Info().Str("device", deviceID).Str("hospital_id", string(updated.ID)).Msg("hospital updated")
		return func(st screen.State[models.Hospital]) screen.State[models.Hospital] {
			return screen.Edited(st, updated)
		}, nil
	})
}

func (s *AdminService) DeleteHospital(ctx context.Context, deviceID, token, id string) (screen.State[models.Hospital], error) {
	return s.hospitals.Submit(ctx, deviceID, func(ctx context.Context) (func(screen.State[models.Hospital]) screen.State[models.Hospital], error) {
		if err := s.api.DeleteHospital(ctx, token, id); err != nil {
			return nil, s.auth.logoutOnUnauthorized(ctx, deviceID, token, err)
		}
		s.cache.Remove(ctx, models.EntityHospital, id)
		s.logger.Info().Str("device", deviceID).Str("hospital_id", id).Msg("hospital deleted")
		return func(st screen.State[models.Hospital]) screen.State[models.Hospital] {
			return screen.Deleted(st, id)
		}, nil
	})
}

// ---- departments ----

func (s *AdminService) LoadDepartments(ctx context.Context, deviceID, token, hospitalID string) (screen.State[models.Department], error) {
	departments, err := s.api.ListDepartments(ctx, token, hospitalID)
	st := s.departments.Apply(deviceID, func(st screen.State[models.Department]) screen.State[models.Department] {
		return screen.Loaded(st, departments)
	})
	if err != nil {
		return st, s.auth.logoutOnUnauthorized(ctx, deviceID, token, err)
	}
	return st, nil
}

func (s *AdminService) AddDepartment(ctx context.Context, deviceID, token string, form forms.DepartmentForm) (screen.State[models.Department], error) {
	if err := form.Validate(); err != nil {
		return s.departments.Get(deviceID), err
	}
	payload := form.Department("")
	return s.departments.Submit(ctx, deviceID, func(ctx context.Context) (func(screen.State[models.Department]) screen.State[models.Department], error) {
		created, err := s.api.CreateDepartment(ctx, token, payload)
		if err != nil {
			return nil, s.auth.logoutOnUnauthorized(ctx, deviceID, token, err)
		}
		if created.ID == "" {
			return nil, missingID("add department")
		}
		s.logger.Info().Str("device", deviceID).Str("department_id", string(created.ID)).Msg("department added")
		return func(st screen.State[models.Department]) screen.State[models.Department] {
			return screen.Added(st, created)
		}, nil
	})
}

func (s *AdminService) UpdateDepartment(ctx context.Context, deviceID, token, id string, form forms.DepartmentForm) (screen.State[models.Department], error) {
	if err := form.Validate(); err != nil {
		return s.departments.Get(deviceID), err
	}
	payload := form.Department(id)
	return s.departments.Submit(ctx, deviceID, func(ctx context.Context) (func(screen.State[models.Department]) screen.State[models.Department], error) {
		updated, err := s.api.UpdateDepartment(ctx, token, payload)
		if err != nil {
			return nil, s.auth.logoutOnUnauthorized(ctx, deviceID, token, err)
		}
		if updated.ID == "" {
			updated = payload
		}
		return func(st screen.State[models.Department]) screen.State[models.Department] {
			return screen.Edited(st, updated)
		}, nil
	})
}

func (s *AdminService) DeleteDepartment(ctx context.Context, deviceID, token, id string) (screen.State[models.Department], error) {
	return s.departments.Submit(ctx, deviceID, func(ctx context.Context) (func(screen.State[models.Department]) screen.State[models.Department], error) {
		if err := s.api.DeleteDepartment(ctx, token, id); err != nil {
			return nil, s.auth.logoutOnUnauthorized(ctx, deviceID, token, err)
		}
		s.logger.Info().Str("device", deviceID).Str("department_id", id).Msg("department deleted")
		return func(st screen.State[models.Department]) screen.State[models.Department] {
			return screen.Deleted(st, id)
		}, nil
	})
}

// ---- doctors ----

func (s *AdminService) LoadDoctors(ctx context.Context, deviceID, token, departmentID string) (screen.State[models.Doctor], error) {
	doctors, err := s.api.ListDoctors(ctx, token, departmentID)
	if err != nil {
		st := s.doctors.Apply(deviceID, func(st screen.State[models.Doctor]) screen.State[models.Doctor] {
			return screen.Loaded(st, doctors)
		})
		return st, s.auth.logoutOnUnauthorized(ctx, deviceID, token, err)
	}
	doctors = normalize.All(ctx, s.cache, doctors)
	return s.doctors.Apply(deviceID, func(st screen.State[models.Doctor]) screen.State[models.Doctor] {
		return screen.Loaded(st, doctors)
	}), nil
}

func (s *AdminService) AddDoctor(ctx context.Context, deviceID, token string, form forms.DoctorForm, img *upstream.Image) (screen.State[models.Doctor], error) {
	if err := form.Validate(); err != nil {
		return s.doctors.Get(deviceID), err
	}
	payload := form.Doctor("")
	return s.doctors.Submit(ctx, deviceID, func(ctx context.Context) (func(screen.State[models.Doctor]) screen.State[models.Doctor], error) {
		created, err := s.api.CreateDoctor(ctx, token, payload, img)
		if err != nil {
			return nil, s.auth.logoutOnUnauthorized(ctx, deviceID, token, err)
		}
		if created.ID == "" {
			return nil, missingID("add doctor")
		}
		created = writeThrough(ctx, s.cache, created, payload.Picture)
		s.logger.Info().Str("device", deviceID).Str("doctor_id", string(created.ID)).Msg("doctor added")
		return func(st screen.State[models.Doctor]) screen.State[models.Doctor] {
			return screen.Added(st, created)
		}, nil
	})
}

func (s *AdminService) UpdateDoctor(ctx context.Context, deviceID, token, id string, form forms.DoctorForm, img *upstream.Image) (screen.State[models.Doctor], error) {
	if err := form.Validate(); err != nil {
		return s.doctors.Get(deviceID), err
	}
	payload := form.Doctor(id)
	return s.doctors.Submit(ctx, deviceID, func(ctx context.Context) (func(screen.State[models.Doctor]) screen.State[models.Doctor], error) {
		updated, err := s.api.UpdateDoctor(ctx, token, payload, img)
		if err != nil {
			return nil, s.auth.logoutOnUnauthorized(ctx, deviceID, token, err)
		}
		if updated.ID == "" {
			updated = payload
		}
		updated = writeThrough(ctx, s.cache, updated, payload.Picture)
		return func(st screen.State[models.Doctor]) screen.State[models.Doctor] {
			return screen.Edited(st, updated)
		}, nil
	})
}

func (s *AdminService) DeleteDoctor(ctx context.Context, deviceID, token, id string) (screen.State[models.Doctor], error) {
	return s.doctors.Submit(ctx, deviceID, func(ctx context.Context) (func(screen.State[models.Doctor]) screen.State[models.Doctor], error) {
		if err := s.api.DeleteDoctor(ctx, token, id); err != nil {
			return nil, s.auth.logoutOnUnauthorized(ctx, deviceID, token, err)
		}
		s.cache.Remove(ctx, models.EntityDoctor, id)
		s.logger.Info().Str("device", deviceID).Str("doctor_id", id).Msg("doctor deleted")
		return func(st screen.State[models.Doctor]) screen.State[models.Doctor] {
			return screen.Deleted(st, id)
		}, nil
	})
}

// ---- staff ----

// SignupStaff registers a receptionist or hospital admin with the identity service.
func (s *AdminService) SignupStaff(ctx context.Context, deviceID, token string, form forms.StaffSignupForm) (models.Staff, error) {
	if err := form.Validate(); err != nil {
		return models.Staff{}, err
	}
	staff, err := s.api.SignupStaff(ctx, token, form.Signup())
	if err != nil {
		return models.Staff{}, s.auth.logoutOnUnauthorized(ctx, deviceID, token, err)
	}
	s.logger.Info().Str("device", deviceID).Str("role", staff.Role).Msg("staff signed up")
	return staff, nil
}
