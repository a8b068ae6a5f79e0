package store

import (
	"github.com/Masterminds/squirrel"
	"github.com/blerimk/schoolroster/internal/config"
	"github.com/blerimk/schoolroster/models"
)

const (
	createUser = `INSERT INTO users (username, password_hash, role)
    VALUES ($1, $2, $3)
    RETURNING id, username, password_hash, role, created_at;`

	findUserByCredentials = `SELECT id, username, password_hash, role, created_at
    FROM users
    WHERE username = $1 AND password_hash = $2 AND role = $3;`

	countAdminUsers = `SELECT COUNT(*) FROM users WHERE role = 'ADMIN';`

	listAllStudents = `SELECT
			id,
			given_name,
			paternal_name,
			family_name,
			class_label,
			homeroom_teacher,
			photo,
			photo_mime,
			photo_filename,
			created_at
		FROM students
		ORDER BY id DESC;`

	getStudentByID = `SELECT
			id,
			given_name,
			paternal_name,
			family_name,
			class_label,
			homeroom_teacher,
			photo,
			photo_mime,
			photo_filename,
			created_at
		FROM students
		WHERE id = $1;`

	insertStudent = `INSERT INTO students (
			given_name,
			paternal_name,
			family_name,
			class_label,
			homeroom_teacher,
			photo,
			photo_mime,
			photo_filename
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id;`

	updateStudent = `UPDATE students SET
			given_name       = $1,
			paternal_name    = $2,
			family_name      = $3,
			class_label      = $4,
			homeroom_teacher = $5,
			photo            = $6,
			photo_mime       = $7,
			photo_filename   = $8
		WHERE id = $9;`

	deleteStudent = `DELETE FROM students WHERE id = $1;`
)

// studentColumns is the canonical column order shared by the static queries
// above and the search builder below. Scan calls depend on it.
var studentColumns = []string{
	"id",
	"given_name",
	"paternal_name",
	"family_name",
	"class_label",
	"homeroom_teacher",
	"photo",
	"photo_mime",
	"photo_filename",
	"created_at",
}

// buildStudentSearchQuery builds the roster search SELECT for the given
// driver. The name predicate matches given or family name, case-insensitively;
// postgres gets ILIKE, sqlite relies on LIKE being case-insensitive for ASCII.
// A zero filter produces the same shape as [listAllStudents].
func buildStudentSearchQuery(driver string, filter models.StudentFilter) (string, []any, error) {
	builder := squirrel.
		Select(studentColumns...).
		From("students").
		OrderBy("id DESC").
		PlaceholderFormat(squirrel.Dollar)

	if filter.Name != "" {
		like := "LIKE"
		if driver == config.DriverPostgres {
			like = "ILIKE"
		}
		pattern := "%" + filter.Name + "%"
		builder = builder.Where(squirrel.Or{
			squirrel.Expr("given_name "+like+" ?", pattern),
			squirrel.Expr("family_name "+like+" ?", pattern),
		})
	}

	if filter.ClassLabel != "" {
		builder = builder.Where(squirrel.Eq{"class_label": filter.ClassLabel})
	}

	return builder.ToSql()
}
