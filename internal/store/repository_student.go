package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/blerimk/schoolroster/internal/logger"
	"github.com/blerimk/schoolroster/models"
)

// studentRepository is the SQL-backed implementation of [StudentRepository].
// It executes all roster CRUD operations directly against the "students"
// table using the embedded [*DB] connection.
//
// Photo bytes pass through the repository opaquely: they are never decoded,
// resized, or validated here. That happens upstream in the presentation
// layer before the record reaches the store.
type studentRepository struct {
	*DB
	logger *logger.Logger
}

// NewStudentRepository constructs a [StudentRepository] backed by the
// provided database connection and logger.
func NewStudentRepository(db *DB, logger *logger.Logger) StudentRepository {
	logger.Debug().Msg("creating student repository")
	return &studentRepository{
		DB:     db,
		logger: logger,
	}
}

// ListAll retrieves every roster record ordered by identifier descending,
// so the most recently created student comes first. There is no paging;
// an empty roster yields an empty slice.
func (r *studentRepository) ListAll(ctx context.Context) ([]models.Student, error) {
	log := logger.FromContext(ctx)

	rows, queryErr := r.DB.QueryContext(ctx, listAllStudents)
	if queryErr != nil {
		log.Err(queryErr).
			Str("func", "studentRepository.ListAll").
			Bool("retryable", r.errorClassificator.Classify(queryErr) == Retryable).
			Msg("failed to execute query for listing students")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, queryErr)
	}
	defer rows.Close()

	return r.collectStudents(ctx, rows)
}

// Search retrieves roster records matching the filter, most recent first.
// A zero filter is equivalent to [studentRepository.ListAll].
func (r *studentRepository) Search(ctx context.Context, filter models.StudentFilter) ([]models.Student, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildStudentSearchQuery(r.driver, filter)
	if err != nil {
		log.Err(err).
			Str("func", "studentRepository.Search").
			Msg("failed to build search query")
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, queryErr := r.DB.QueryContext(ctx, query, args...)
	if queryErr != nil {
		log.Err(queryErr).
			Str("func", "studentRepository.Search").
			Bool("retryable", r.errorClassificator.Classify(queryErr) == Retryable).
			Msg("failed to execute search query")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, queryErr)
	}
	defer rows.Close()

	return r.collectStudents(ctx, rows)
}

// GetByID retrieves a single roster record or [ErrStudentNotFound].
func (r *studentRepository) GetByID(ctx context.Context, id int64) (models.Student, error) {
	log := logger.FromContext(ctx)

	row := r.DB.QueryRowContext(ctx, getStudentByID, id)

	student, err := scanStudent(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Student{}, ErrStudentNotFound
		}
		log.Err(err).
			Str("func", "studentRepository.GetByID").
			Int64("id", id).
			Msg("failed to scan student row")
		return models.Student{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return student, nil
}

// Insert persists a new roster record and returns the database-assigned
// identifier. A blank paternal name and absent photo fields are stored as
// SQL NULL; no validation is performed here, so callers violating the
// NOT NULL constraints get the backend's constraint error.
func (r *studentRepository) Insert(ctx context.Context, student models.Student) (int64, error) {
	log := logger.FromContext(ctx)

	row := r.DB.QueryRowContext(ctx, insertStudent,
		student.GivenName,
		nullIfBlank(student.PaternalName),
		student.FamilyName,
		student.ClassLabel,
		student.HomeroomTeacher,
		student.Photo,
		nullIfBlank(student.PhotoMIME),
		nullIfBlank(student.PhotoFilename),
	)

	var id int64
	if err := row.Scan(&id); err != nil {
		log.Err(err).
			Str("func", "studentRepository.Insert").
			Bool("retryable", r.errorClassificator.Classify(err) == Retryable).
			Msg("failed to insert student")
		return 0, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	log.Debug().
		Str("func", "studentRepository.Insert").
		Int64("id", id).
		Msg("student inserted")

	return id, nil
}

// Update overwrites all mutable fields of the record with student.ID,
// applying the same NULL normalization as Insert. Targeting a non-existent
// identifier affects zero rows and returns nil; the row count is only
// logged at debug level.
func (r *studentRepository) Update(ctx context.Context, student models.Student) error {
	log := logger.FromContext(ctx)

	result, err := r.DB.ExecContext(ctx, updateStudent,
		student.GivenName,
		nullIfBlank(student.PaternalName),
		student.FamilyName,
		student.ClassLabel,
		student.HomeroomTeacher,
		student.Photo,
		nullIfBlank(student.PhotoMIME),
		nullIfBlank(student.PhotoFilename),
		student.ID,
	)
	if err != nil {
		log.Err(err).
			Str("func", "studentRepository.Update").
			Int64("id", student.ID).
			Bool("retryable", r.errorClassificator.Classify(err) == Retryable).
			Msg("failed to update student")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	if affected, raErr := result.RowsAffected(); raErr == nil {
		log.Debug().
			Str("func", "studentRepository.Update").
			Int64("id", student.ID).
			Int64("rows_affected", affected).
			Msg("student updated")
	}

	return nil
}

// Delete removes the record with the given identifier. Deleting a
// non-existent identifier affects zero rows and returns nil.
func (r *studentRepository) Delete(ctx context.Context, id int64) error {
	log := logger.FromContext(ctx)

	result, err := r.DB.ExecContext(ctx, deleteStudent, id)
	if err != nil {
		log.Err(err).
			Str("func", "studentRepository.Delete").
			Int64("id", id).
			Bool("retryable", r.errorClassificator.Classify(err) == Retryable).
			Msg("failed to delete student")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	if affected, raErr := result.RowsAffected(); raErr == nil {
		log.Debug().
			Str("func", "studentRepository.Delete").
			Int64("id", id).
			Int64("rows_affected", affected).
			Msg("student deleted")
	}

	return nil
}

// collectStudents drains rows into a slice, converting scan and iteration
// failures into the package's low-level sentinels.
func (r *studentRepository) collectStudents(ctx context.Context, rows *sql.Rows) ([]models.Student, error) {
	log := logger.FromContext(ctx)

	students := make([]models.Student, 0, 50)

	for rows.Next() {
		student, scanErr := scanStudent(rows.Scan)
		if scanErr != nil {
			log.Err(scanErr).
				Str("func", "studentRepository.collectStudents").
				Msg("failed to scan student row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}

		students = append(students, student)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).
			Str("func", "studentRepository.collectStudents").
			Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
	}

	return students, nil
}

// scanStudent maps one row in [studentColumns] order onto a model,
// normalizing NULL optional columns to Go zero values.
func scanStudent(scan func(dest ...any) error) (models.Student, error) {
	var (
		student       models.Student
		paternal      sql.NullString
		photoMIME     sql.NullString
		photoFilename sql.NullString
	)

	err := scan(
		&student.ID,
		&student.GivenName,
		&paternal,
		&student.FamilyName,
		&student.ClassLabel,
		&student.HomeroomTeacher,
		&student.Photo,
		&photoMIME,
		&photoFilename,
		&student.CreatedAt,
	)
	if err != nil {
		return models.Student{}, err
	}

	student.PaternalName = paternal.String
	student.PhotoMIME = photoMIME.String
	student.PhotoFilename = photoFilename.String

	return student, nil
}

// nullIfBlank converts the empty string to SQL NULL so optional text
// columns are stored as absent rather than as "".
func nullIfBlank(s string) any {
	if s == "" {
		return nil
	}
	return s
}
