package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/blerimk/schoolroster/internal/service"
	"github.com/blerimk/schoolroster/models"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// Indices into rosterModel.formInputs.
const (
	formGivenName = iota
	formPaternalName
	formFamilyName
	formClassLabel
	formHomeroomTeacher
	formPhotoPath
	formFieldCount
)

type rosterModel struct {
	ctx       context.Context
	services  *service.Services
	user      models.User
	exportDir string

	items   []models.Student
	idx     int
	loading bool
	status  string
	errMsg  string
	detail  bool

	filter       models.StudentFilter
	filtering    bool
	filterInputs []textinput.Model
	filterFocus  int

	formActive     bool
	formCreating   bool
	formInputs     []textinput.Model
	formFocus      int
	formSubmitting bool
	formStudent    models.Student

	confirmingDelete bool

	addingStaff     bool
	staffInputs     []textinput.Model
	staffFocus      int
	staffSubmitting bool

	logout bool
}

func newRosterModel(ctx context.Context, services *service.Services, user models.User, exportDir string) rosterModel {
	return rosterModel{
		ctx:       ctx,
		services:  services,
		user:      user,
		exportDir: exportDir,
		loading:   true,
	}
}

func (m rosterModel) Init() tea.Cmd {
	return m.cmdLoadRoster()
}

func (m rosterModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case rosterLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.errMsg = humanizeError(msg.err)
			return m, nil
		}
		m.errMsg = ""
		m.items = msg.students
		if m.idx >= len(m.items) {
			m.idx = len(m.items) - 1
		}
		if m.idx < 0 {
			m.idx = 0
		}
		return m, nil
	case studentSavedMsg:
		m.formSubmitting = false
		if msg.err != nil {
			m.errMsg = humanizeError(msg.err)
			return m, nil
		}
		m.resetForm()
		if msg.created {
			m.status = "Student added"
		} else {
			m.status = "Student updated"
		}
		m.errMsg = ""
		m.loading = true
		return m, m.cmdLoadRoster()
	case studentDeletedMsg:
		if msg.err != nil {
			m.errMsg = humanizeError(msg.err)
			return m, nil
		}
		m.detail = false
		m.status = "Student deleted"
		m.errMsg = ""
		m.loading = true
		return m, m.cmdLoadRoster()
	case staffAddedMsg:
		m.staffSubmitting = false
		if msg.err != nil {
			m.errMsg = humanizeError(msg.err)
			return m, nil
		}
		m.resetStaffForm()
		m.status = "Staff account " + msg.username + " created"
		m.errMsg = ""
		return m, nil
	case photoExportedMsg:
		if msg.err != nil {
			m.errMsg = humanizeError(msg.err)
			return m, nil
		}
		m.status = "Photo saved to " + msg.path
		m.errMsg = ""
		return m, nil
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		switch {
		case m.formActive:
			return m.updateForm(msg)
		case m.filtering:
			return m.updateFilter(msg)
		case m.addingStaff:
			return m.updateStaffForm(msg)
		}
		return m, nil
	}

	if keyMsg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	switch {
	case m.formActive:
		return m.updateForm(msg)
	case m.filtering:
		return m.updateFilter(msg)
	case m.addingStaff:
		return m.updateStaffForm(msg)
	case m.confirmingDelete:
		return m.updateConfirmDelete(keyMsg)
	case m.detail:
		return m.updateDetail(keyMsg)
	}

	return m.updateList(keyMsg)
}

func (m rosterModel) updateList(keyMsg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch keyMsg.String() {
	case "q":
		return m, tea.Quit
	case "up", "k":
		if m.idx > 0 {
			m.idx--
		}
	case "down", "j":
		if m.idx < len(m.items)-1 {
			m.idx++
		}
	case "enter":
		if _, ok := m.current(); !ok {
			m.status = "No students"
			return m, nil
		}
		m.detail = true
	case "n":
		m.startForm(models.Student{}, true)
		return m, nil
	case "e":
		student, ok := m.current()
		if !ok {
			m.status = "No students"
			return m, nil
		}
		m.startForm(student, false)
		return m, nil
	case "ctrl+d":
		if _, ok := m.current(); !ok {
			m.status = "No students"
			return m, nil
		}
		m.confirmingDelete = true
		return m, nil
	case "f":
		m.startFilter()
		return m, nil
	case "c":
		student, ok := m.current()
		if !ok {
			m.status = "Nothing to copy"
			return m, nil
		}
		return m.copyStudentRow(student)
	case "u":
		if m.user.Role != models.RoleAdmin {
			m.status = "Administrators only"
			return m, nil
		}
		m.startStaffForm()
		return m, nil
	case "r":
		m.loading = true
		m.status = ""
		return m, m.cmdLoadRoster()
	case "l":
		m.logout = true
		return m, tea.Quit
	}

	return m, nil
}

func (m rosterModel) updateDetail(keyMsg tea.KeyMsg) (tea.Model, tea.Cmd) {
	student, ok := m.current()
	if !ok {
		m.detail = false
		return m, nil
	}

	switch keyMsg.String() {
	case "q":
		return m, tea.Quit
	case "esc":
		m.detail = false
	case "e":
		m.detail = false
		m.startForm(student, false)
		return m, nil
	case "ctrl+d":
		m.confirmingDelete = true
		return m, nil
	case "c":
		return m.copyStudentRow(student)
	case "x":
		if !student.HasPhoto() {
			m.status = "No photo to export"
			return m, nil
		}
		return m, m.cmdExportPhoto(student)
	}

	return m, nil
}

func (m rosterModel) updateConfirmDelete(keyMsg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch keyMsg.String() {
	case "y":
		student, ok := m.current()
		m.confirmingDelete = false
		if !ok {
			return m, nil
		}
		return m, m.cmdDelete(student.ID)
	case "n", "esc":
		m.confirmingDelete = false
	}
	return m, nil
}

func (m rosterModel) copyStudentRow(student models.Student) (tea.Model, tea.Cmd) {
	row := fmt.Sprintf("%d\t%s\t%s\t%s",
		student.ID, student.FullName(), student.ClassLabel, student.HomeroomTeacher)
	if err := clipboard.WriteAll(row); err != nil {
		m.errMsg = fmt.Sprintf("Copy failed: %v", err)
		return m, nil
	}
	m.status = "Copied"
	return m, nil
}

// ── student form (create and edit share it) ──────────────────────────────────

func (m *rosterModel) startForm(student models.Student, creating bool) {
	labels := [formFieldCount]string{
		"given name", "paternal name (optional)", "family name",
		"class", "homeroom teacher", "photo path (optional)",
	}
	values := [formFieldCount]string{
		student.GivenName, student.PaternalName, student.FamilyName,
		student.ClassLabel, student.HomeroomTeacher, "",
	}

	inputs := make([]textinput.Model, formFieldCount)
	for i := range inputs {
		in := textinput.New()
		in.Placeholder = labels[i]
		in.Width = 40
		in.SetValue(values[i])
		inputs[i] = in
	}
	inputs[formGivenName].Focus()

	m.formInputs = inputs
	m.formFocus = 0
	m.formSubmitting = false
	m.formStudent = student
	m.formCreating = creating
	m.formActive = true
	m.errMsg = ""
}

func (m *rosterModel) resetForm() {
	m.formActive = false
	m.formCreating = false
	m.formInputs = nil
	m.formFocus = 0
	m.formSubmitting = false
	m.formStudent = models.Student{}
}

func (m rosterModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if ok {
		switch keyMsg.String() {
		case "esc":
			m.resetForm()
			m.errMsg = ""
			return m, nil
		case "tab":
			m.formInputs[m.formFocus].Blur()
			m.formFocus = (m.formFocus + 1) % len(m.formInputs)
			m.formInputs[m.formFocus].Focus()
			return m, nil
		case "shift+tab":
			m.formInputs[m.formFocus].Blur()
			m.formFocus = (m.formFocus - 1 + len(m.formInputs)) % len(m.formInputs)
			m.formInputs[m.formFocus].Focus()
			return m, nil
		case "enter":
			if m.formSubmitting {
				return m, nil
			}

			student, err := m.collectFormStudent()
			if err != nil {
				m.errMsg = err.Error()
				return m, nil
			}

			m.errMsg = ""
			m.formSubmitting = true
			return m, m.cmdSave(student, m.formCreating)
		}
	}

	var cmd tea.Cmd
	m.formInputs[m.formFocus], cmd = m.formInputs[m.formFocus].Update(msg)
	return m, cmd
}

// collectFormStudent assembles a student from the form. An existing photo
// survives an edit untouched unless a new path is given; required-field
// checks stay in the service layer.
func (m *rosterModel) collectFormStudent() (models.Student, error) {
	student := m.formStudent
	student.GivenName = strings.TrimSpace(m.formInputs[formGivenName].Value())
	student.PaternalName = strings.TrimSpace(m.formInputs[formPaternalName].Value())
	student.FamilyName = strings.TrimSpace(m.formInputs[formFamilyName].Value())
	student.ClassLabel = strings.TrimSpace(m.formInputs[formClassLabel].Value())
	student.HomeroomTeacher = strings.TrimSpace(m.formInputs[formHomeroomTeacher].Value())

	if path := strings.TrimSpace(m.formInputs[formPhotoPath].Value()); path != "" {
		data, mime, filename, err := loadPhoto(path)
		if err != nil {
			return models.Student{}, err
		}
		student.Photo = data
		student.PhotoMIME = mime
		student.PhotoFilename = filename
	}

	return student, nil
}

// ── roster filter ────────────────────────────────────────────────────────────

func (m *rosterModel) startFilter() {
	name := textinput.New()
	name.Placeholder = "name contains"
	name.Width = 40
	name.SetValue(m.filter.Name)
	name.Focus()

	class := textinput.New()
	class.Placeholder = "class"
	class.Width = 40
	class.SetValue(m.filter.ClassLabel)

	m.filterInputs = []textinput.Model{name, class}
	m.filterFocus = 0
	m.filtering = true
	m.errMsg = ""
}

func (m rosterModel) updateFilter(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if ok {
		switch keyMsg.String() {
		case "esc":
			m.filtering = false
			m.filterInputs = nil
			return m, nil
		case "tab", "shift+tab":
			m.filterInputs[m.filterFocus].Blur()
			m.filterFocus = (m.filterFocus + 1) % len(m.filterInputs)
			m.filterInputs[m.filterFocus].Focus()
			return m, nil
		case "enter":
			m.filter = models.StudentFilter{
				Name:       strings.TrimSpace(m.filterInputs[0].Value()),
				ClassLabel: strings.TrimSpace(m.filterInputs[1].Value()),
			}
			m.filtering = false
			m.filterInputs = nil
			m.loading = true
			m.status = ""
			return m, m.cmdLoadRoster()
		}
	}

	var cmd tea.Cmd
	m.filterInputs[m.filterFocus], cmd = m.filterInputs[m.filterFocus].Update(msg)
	return m, cmd
}

// ── staff form (admin only) ──────────────────────────────────────────────────

func (m *rosterModel) startStaffForm() {
	username := textinput.New()
	username.Placeholder = "username"
	username.CharLimit = 64
	username.Width = 40
	username.Focus()

	password := textinput.New()
	password.Placeholder = "password"
	password.CharLimit = 256
	password.Width = 40
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '*'

	m.staffInputs = []textinput.Model{username, password}
	m.staffFocus = 0
	m.staffSubmitting = false
	m.addingStaff = true
	m.errMsg = ""
}

func (m *rosterModel) resetStaffForm() {
	m.addingStaff = false
	m.staffInputs = nil
	m.staffFocus = 0
	m.staffSubmitting = false
}

func (m rosterModel) updateStaffForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if ok {
		switch keyMsg.String() {
		case "esc":
			m.resetStaffForm()
			m.errMsg = ""
			return m, nil
		case "tab", "shift+tab":
			m.staffInputs[m.staffFocus].Blur()
			m.staffFocus = (m.staffFocus + 1) % len(m.staffInputs)
			m.staffInputs[m.staffFocus].Focus()
			return m, nil
		case "enter":
			if m.staffSubmitting {
				return m, nil
			}

			username := strings.TrimSpace(m.staffInputs[0].Value())
			password := m.staffInputs[1].Value()
			if username == "" || password == "" {
				m.errMsg = "Username and password are required"
				return m, nil
			}

			m.errMsg = ""
			m.staffSubmitting = true
			return m, m.cmdAddStaff(username, password)
		}
	}

	var cmd tea.Cmd
	m.staffInputs[m.staffFocus], cmd = m.staffInputs[m.staffFocus].Update(msg)
	return m, cmd
}

// ── async commands ───────────────────────────────────────────────────────────

func (m rosterModel) cmdLoadRoster() tea.Cmd {
	ctx := m.ctx
	svc := m.services.StudentService
	filter := m.filter

	return func() tea.Msg {
		if filter.IsZero() {
			students, err := svc.List(ctx)
			return rosterLoadedMsg{students: students, err: err}
		}
		students, err := svc.Search(ctx, filter)
		return rosterLoadedMsg{students: students, err: err}
	}
}

func (m rosterModel) cmdSave(student models.Student, creating bool) tea.Cmd {
	ctx := m.ctx
	svc := m.services.StudentService

	return func() tea.Msg {
		if creating {
			_, err := svc.Create(ctx, student)
			return studentSavedMsg{created: true, err: err}
		}
		err := svc.Update(ctx, student)
		return studentSavedMsg{created: false, err: err}
	}
}

func (m rosterModel) cmdDelete(id int64) tea.Cmd {
	ctx := m.ctx
	svc := m.services.StudentService

	return func() tea.Msg {
		return studentDeletedMsg{err: svc.Delete(ctx, id)}
	}
}

func (m rosterModel) cmdAddStaff(username, password string) tea.Cmd {
	ctx := m.ctx
	svc := m.services.AuthService

	return func() tea.Msg {
		created, err := svc.AddStaff(ctx, username, password)
		return staffAddedMsg{username: created.Username, err: err}
	}
}

func (m rosterModel) cmdExportPhoto(student models.Student) tea.Cmd {
	dir := m.exportDir

	return func() tea.Msg {
		path, err := exportPhoto(dir, student)
		return photoExportedMsg{path: path, err: err}
	}
}

func (m rosterModel) current() (models.Student, bool) {
	if len(m.items) == 0 || m.idx < 0 || m.idx >= len(m.items) {
		return models.Student{}, false
	}
	return m.items[m.idx], true
}

// ── views ────────────────────────────────────────────────────────────────────

func (m rosterModel) View() string {
	switch {
	case m.formActive:
		return m.viewForm()
	case m.filtering:
		return m.viewFilter()
	case m.addingStaff:
		return m.viewStaffForm()
	case m.confirmingDelete:
		return m.viewConfirmDelete()
	case m.detail:
		return m.viewDetail()
	}
	return m.viewList()
}

func (m rosterModel) viewList() string {
	out := ""

	if m.loading {
		return renderPage("STUDENT ROSTER", "Loading roster...", m.listHotKeys())
	}

	if m.errMsg != "" {
		out += errorStyle.Render("Error: "+m.errMsg) + "\n"
	}
	if m.status != "" {
		out += okStyle.Render("Status: "+m.status) + "\n"
	}
	if !m.filter.IsZero() {
		out += fmt.Sprintf("Filter: name=%s class=%s (f: change, then empty fields clear)\n",
			valueOrDash(m.filter.Name), valueOrDash(m.filter.ClassLabel))
	}

	if len(m.items) == 0 {
		if out != "" {
			out += "\n"
		}
		out += "No students\n"
	} else {
		if out != "" {
			out += "\n"
		}
		out += "ID    │ Name                         │ Class  │ Homeroom teacher\n"
		out += "──────┼──────────────────────────────┼────────┼──────────────────────\n"
		for i, student := range m.items {
			cursor := " "
			if i == m.idx {
				cursor = ">"
			}
			out += fmt.Sprintf(
				"%s %-4d│ %-28s │ %-6s │ %s\n",
				cursor,
				student.ID,
				fitText(student.FullName(), 28),
				fitText(student.ClassLabel, 6),
				fitText(student.HomeroomTeacher, 22),
			)
		}
	}

	return renderPage("STUDENT ROSTER", strings.TrimRight(out, "\n"), m.listHotKeys())
}

func (m rosterModel) listHotKeys() string {
	keys := "n: add │ enter: open │ e: edit │ ctrl+d: delete │ f: filter │ r: refresh │ ↑/↓: nav │ l: log out"
	if m.user.Role == models.RoleAdmin {
		keys = "u: add staff │ " + keys
	}
	return keys
}

func (m rosterModel) viewDetail() string {
	student, ok := m.current()
	if !ok {
		return renderPage("STUDENT", "Record not found", "esc: back")
	}

	var b strings.Builder
	b.WriteString("[ STUDENT ]\n")
	b.WriteString("ID              : " + fmt.Sprintf("%d", student.ID) + "\n")
	b.WriteString("Given name      : " + student.GivenName + "\n")
	b.WriteString("Paternal name   : " + valueOrDash(student.PaternalName) + "\n")
	b.WriteString("Family name     : " + student.FamilyName + "\n")
	b.WriteString("Class           : " + student.ClassLabel + "\n")
	b.WriteString("Homeroom teacher: " + student.HomeroomTeacher + "\n\n")

	b.WriteString("[ PHOTO ]\n")
	if student.HasPhoto() {
		b.WriteString("File : " + valueOrDash(student.PhotoFilename) + "\n")
		b.WriteString("Type : " + valueOrDash(student.PhotoMIME) + "\n")
		b.WriteString("Size : " + formatSize(int64(len(student.Photo))) + "\n")
	} else {
		b.WriteString("(none)\n")
	}

	if m.errMsg != "" {
		b.WriteString("\n" + errorStyle.Render("Error: "+m.errMsg) + "\n")
	}
	if m.status != "" {
		b.WriteString("\n" + okStyle.Render(m.status) + "\n")
	}

	title := "STUDENT: " + student.FullName()
	hotKeys := "e: edit │ c: copy row │ x: export photo │ ctrl+d: delete │ esc: back"
	return renderPage(title, strings.TrimRight(b.String(), "\n"), hotKeys)
}

func (m rosterModel) viewForm() string {
	title := "EDIT STUDENT"
	action := "[Save]"
	if m.formCreating {
		title = "NEW STUDENT"
	}
	if m.formSubmitting {
		action = "[Saving...]"
	}

	labels := [formFieldCount]string{
		"Given name      ", "Paternal name   ", "Family name     ",
		"Class           ", "Homeroom teacher", "Photo path      ",
	}

	out := "Field            │ Value\n"
	out += "─────────────────┼──────────────────────────────────────────\n"
	for i, label := range labels {
		out += label + " │ [" + m.formInputs[i].View() + "]\n"
	}

	if path := strings.TrimSpace(m.formInputs[formPhotoPath].Value()); path != "" {
		out += "\nPhoto file: " + photoPreview(path) + "\n"
	} else if !m.formCreating && m.formStudent.HasPhoto() {
		out += "\nPhoto file: keeping current photo (" + valueOrDash(m.formStudent.PhotoFilename) + ")\n"
	}

	out += "\n" + action + "\n"
	if m.errMsg != "" {
		out += "\n" + errorStyle.Render("Error: "+m.errMsg) + "\n"
	}

	return renderPage(title, strings.TrimRight(out, "\n"), "tab: next field │ enter: save │ esc: cancel")
}

func (m rosterModel) viewFilter() string {
	out := "[ FILTER ]\n"
	out += "Name contains : [ " + m.filterInputs[0].View() + " ]\n"
	out += "Class         : [ " + m.filterInputs[1].View() + " ]\n\n"
	out += "Leave both empty to show the whole roster.\n"

	return renderPage("FILTER ROSTER", strings.TrimRight(out, "\n"), "tab: next field │ enter: apply │ esc: cancel")
}

func (m rosterModel) viewStaffForm() string {
	action := "[Create]"
	if m.staffSubmitting {
		action = "[Creating...]"
	}

	out := "Field    │ Value\n"
	out += "─────────┼────────────────────────────────────────────\n"
	out += "Username │ [" + m.staffInputs[0].View() + "]\n"
	out += "Password │ [" + m.staffInputs[1].View() + "]\n"
	out += "Role     │ STAFF\n"
	out += "\n" + action + "\n"

	if m.errMsg != "" {
		out += "\n" + errorStyle.Render("Error: "+m.errMsg) + "\n"
	}

	return renderPage("ADD STAFF ACCOUNT", strings.TrimRight(out, "\n"), "tab: next field │ enter: create │ esc: cancel")
}

func (m rosterModel) viewConfirmDelete() string {
	student, ok := m.current()
	if !ok {
		return renderPage("DELETE STUDENT", "Record not found", "esc: back")
	}

	out := fmt.Sprintf("Delete %s (ID %d)?\n", student.FullName(), student.ID)
	return renderPage("DELETE STUDENT", strings.TrimRight(out, "\n"), "y: delete │ n/esc: cancel")
}
