package models

import "time"

// Student is a single roster record. The application holds disconnected
// copies only: every list/view/edit re-reads the row from the database.
type Student struct {
	// ID is the unique identifier assigned by the database on insert.
	ID int64

	// GivenName is the student's first name. Required.
	GivenName string

	// PaternalName is the father's name. Optional: the empty string means
	// absent, and the store persists it as SQL NULL.
	PaternalName string

	// FamilyName is the student's last name. Required.
	FamilyName string

	// ClassLabel is the class/section label, e.g. "10A". Required.
	ClassLabel string

	// HomeroomTeacher is the name of the homeroom teacher. Required.
	HomeroomTeacher string

	// Photo holds the raw thumbnail bytes exactly as supplied by the
	// presentation layer. The store never inspects or decodes them.
	// nil means no photo.
	Photo []byte

	// PhotoMIME is the MIME type of Photo, e.g. "image/jpeg".
	// Empty when there is no photo.
	PhotoMIME string

	// PhotoFilename is the original filename the photo was loaded from.
	// Empty when there is no photo.
	PhotoFilename string

	// CreatedAt is assigned by the database.
	CreatedAt time.Time
}

// HasPhoto reports whether the record carries photo bytes.
func (s Student) HasPhoto() bool {
	return len(s.Photo) > 0
}

// FullName renders the display name used by list and detail screens.
func (s Student) FullName() string {
	if s.PaternalName == "" {
		return s.GivenName + " " + s.FamilyName
	}
	return s.GivenName + " " + s.PaternalName + " " + s.FamilyName
}

// TableName returns the name of the database table
// associated with the Student model.
func (s Student) TableName() string {
	return "students"
}

// StudentFilter narrows a roster search. Zero-value fields are ignored;
// a completely zero filter matches every record.
type StudentFilter struct {
	// Name matches against both given and family name, case-insensitively.
	Name string

	// ClassLabel matches the class/section label exactly.
	ClassLabel string
}

// IsZero reports whether no filter criteria are set.
func (f StudentFilter) IsZero() bool {
	return f.Name == "" && f.ClassLabel == ""
}
