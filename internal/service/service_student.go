package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/blerimk/schoolroster/internal/logger"
	"github.com/blerimk/schoolroster/internal/store"
	"github.com/blerimk/schoolroster/models"
)

// studentService is the concrete implementation of [StudentService].
type studentService struct {
	studentRepository store.StudentRepository
	logger            *logger.Logger
}

// NewStudentService constructs a StudentService wired to the given
// StudentRepository.
func NewStudentService(studentRepository store.StudentRepository, logger *logger.Logger) StudentService {
	return &studentService{
		studentRepository: studentRepository,
		logger:            logger,
	}
}

// List returns the full roster, newest first.
func (s *studentService) List(ctx context.Context) ([]models.Student, error) {
	students, err := s.studentRepository.ListAll(ctx)
	if err != nil {
		logger.FromContext(ctx).Err(err).Msg("roster listing ended with error")
		return nil, fmt.Errorf("roster listing ended with error: %w", err)
	}
	return students, nil
}

// Search returns students matching the filter, newest first. A zero filter
// behaves like List.
func (s *studentService) Search(ctx context.Context, filter models.StudentFilter) ([]models.Student, error) {
	students, err := s.studentRepository.Search(ctx, filter)
	if err != nil {
		logger.FromContext(ctx).Err(err).Msg("roster search ended with error")
		return nil, fmt.Errorf("roster search ended with error: %w", err)
	}
	return students, nil
}

// Get fetches one student by ID. Missing IDs surface as
// store.ErrStudentNotFound, matchable with errors.Is.
func (s *studentService) Get(ctx context.Context, id int64) (models.Student, error) {
	student, err := s.studentRepository.GetByID(ctx, id)
	if err != nil {
		return models.Student{}, fmt.Errorf("student lookup ended with error: %w", err)
	}
	return student, nil
}

// Create validates the required fields, normalizes whitespace and stores a
// new student. The paternal name and photo stay optional.
func (s *studentService) Create(ctx context.Context, student models.Student) (int64, error) {
	log := logger.FromContext(ctx)

	normalizeStudent(&student)
	if err := checkRequiredFields(student); err != nil {
		log.Error().Err(err).Msg("student creation rejected")
		return 0, err
	}

	id, err := s.studentRepository.Insert(ctx, student)
	if err != nil {
		log.Err(err).Msg("student creation ended with error")
		return 0, fmt.Errorf("student creation ended with error: %w", err)
	}

	return id, nil
}

// Update validates the required fields and overwrites the row identified by
// student.ID. An ID that matches no row is a silent no-op, mirroring Delete.
func (s *studentService) Update(ctx context.Context, student models.Student) error {
	log := logger.FromContext(ctx)

	normalizeStudent(&student)
	if err := checkRequiredFields(student); err != nil {
		log.Error().Err(err).Int64("id", student.ID).Msg("student update rejected")
		return err
	}

	if err := s.studentRepository.Update(ctx, student); err != nil {
		log.Err(err).Int64("id", student.ID).Msg("student update ended with error")
		return fmt.Errorf("student update ended with error: %w", err)
	}

	return nil
}

// Delete removes the row identified by id. Deleting a missing ID is not an
// error.
func (s *studentService) Delete(ctx context.Context, id int64) error {
	if err := s.studentRepository.Delete(ctx, id); err != nil {
		logger.FromContext(ctx).Err(err).Int64("id", id).Msg("student deletion ended with error")
		return fmt.Errorf("student deletion ended with error: %w", err)
	}
	return nil
}

// normalizeStudent trims surrounding whitespace on the text fields so that
// a blank paternal name reliably collapses to the absent value.
func normalizeStudent(student *models.Student) {
	student.GivenName = strings.TrimSpace(student.GivenName)
	student.PaternalName = strings.TrimSpace(student.PaternalName)
	student.FamilyName = strings.TrimSpace(student.FamilyName)
	student.ClassLabel = strings.TrimSpace(student.ClassLabel)
	student.HomeroomTeacher = strings.TrimSpace(student.HomeroomTeacher)
}

// checkRequiredFields enforces the mandatory roster fields. The paternal
// name is intentionally exempt.
func checkRequiredFields(student models.Student) error {
	if student.GivenName == "" || student.FamilyName == "" ||
		student.ClassLabel == "" || student.HomeroomTeacher == "" {
		return ErrMissingRequiredFields
	}
	return nil
}
