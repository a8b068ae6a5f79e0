package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrUsernameAlreadyExists is returned when an attempt to create an
	// account fails because the username is already taken. It is kept
	// distinct from generic DB failures so the UI can show a specific
	// message.
	ErrUsernameAlreadyExists = errors.New("username already exists")

	// ErrNoAccountFound is returned when the credential-triple lookup
	// matches zero rows. Wrong username, wrong password, and wrong role
	// are deliberately indistinguishable.
	ErrNoAccountFound = errors.New("no account was found")

	// ErrStudentNotFound is returned when a lookup by identifier matches
	// zero rows.
	ErrStudentNotFound = errors.New("student was not found")
)

// Low-level database operation errors. These are returned (or wrapped) by
// repository methods when a SQL-level operation fails before any domain logic
// can be applied.
var (
	// ErrBuildingSQLQuery is returned when constructing a parameterised SQL
	// query fails (e.g. invalid argument count or unsupported type).
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a SELECT or similar
	// read-only query against the database fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrExecutingStatement is returned when executing a DML statement
	// (INSERT, UPDATE, DELETE) fails.
	ErrExecutingStatement = errors.New("failed to executing statement")

	// ErrScanningRow is returned when scanning column values from a single
	// result row into a destination struct fails.
	ErrScanningRow = errors.New("failed to scan row")

	// ErrScanningRows is returned when scanning column values during
	// multi-row iteration fails, typically mid-result-set.
	ErrScanningRows = errors.New("failed to scan rows")
)
