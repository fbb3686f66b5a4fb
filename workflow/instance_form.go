package workflow

import (
	"context"
	"errors"
	"strings"

	"github.com/lokiedu/yoga_admin/gateway"
	"github.com/lokiedu/yoga_admin/models"
	"github.com/lokiedu/yoga_admin/utils"
)

type InstanceMode string

const (
	InstanceModeCreate InstanceMode = "create"
	InstanceModeEdit   InstanceMode = "edit"
)

var (
	ErrInstanceValidation = errors.New("instance details failed validation")
	ErrNotEditMode        = errors.New("delete is only available when editing an existing instance")
)

// InstanceFieldErrors are the per-field flags for the instance form. Notes
// are required here, same as title, date and instructor.
type InstanceFieldErrors struct {
	Title           bool `json:"title"`
	Date            bool `json:"date"`
	Instructor      bool `json:"instructor"`
	Notes           bool `json:"notes"`
	DateBeforeClass bool `json:"date_before_class"`
}

func (e InstanceFieldErrors) Any() bool {
	return e.Title || e.Date || e.Instructor || e.Notes || e.DateBeforeClass
}

// InstanceDetails are the editable fields of the form.
type InstanceDetails struct {
	Title        string `json:"title"`
	Description  string `json:"description"`
	InstanceDate string `json:"instance_date"`
	InstructorID string `json:"instructor_id"`
	Notes        string `json:"notes"`
}

// InstanceForm handles scheduling a single class occurrence, in either
// create or edit mode. Saving and deleting are gated behind an explicit
// confirmation; a failed remote call leaves the form state untouched.
type InstanceForm struct {
	gw gateway.Gateway

	mode       InstanceMode
	classID    string
	instanceID string
	class      *models.YogaClass

	Details   InstanceDetails
	fieldErrs InstanceFieldErrors
}

func NewInstanceCreate(gw gateway.Gateway, classID string) *InstanceForm {
	return &InstanceForm{gw: gw, mode: InstanceModeCreate, classID: classID}
}

func NewInstanceEdit(gw gateway.Gateway, inst models.YogaClassInstance) *InstanceForm {
	f := &InstanceForm{gw: gw, mode: InstanceModeEdit, classID: inst.ClassID, instanceID: inst.ID}
	f.Details = InstanceDetails{
		Title:        inst.Title,
		Description:  inst.Description,
		InstanceDate: inst.InstanceDate,
		InstructorID: inst.InstructorID,
	}
	if inst.Notes != nil {
		f.Details.Notes = *inst.Notes
	}
	return f
}

func (f *InstanceForm) Mode() InstanceMode                { return f.mode }
func (f *InstanceForm) Class() *models.YogaClass          { return f.class }
func (f *InstanceForm) FieldErrors() InstanceFieldErrors  { return f.fieldErrs }

// LoadClass fetches the owning class, both for read-only display in edit
// mode and for the instance-date lower bound.
func (f *InstanceForm) LoadClass(ctx context.Context) error {
	class, err := f.gw.GetClass(ctx, f.classID)
	if err != nil {
		return err
	}
	f.class = class
	return nil
}

// Instructors lists the users selectable in the instructor dropdown.
func (f *InstanceForm) Instructors(ctx context.Context) ([]models.User, error) {
	return f.gw.ListUsersByRole(ctx, models.RoleInstructor)
}

// Validate marks the per-field flags. An instance may not be scheduled
// before its class's own date.
func (f *InstanceForm) Validate() InstanceFieldErrors {
	errs := InstanceFieldErrors{
		Title:      strings.TrimSpace(f.Details.Title) == "",
		Date:       strings.TrimSpace(f.Details.InstanceDate) == "",
		Instructor: f.Details.InstructorID == "",
		Notes:      strings.TrimSpace(f.Details.Notes) == "",
	}
	if !errs.Date && f.class != nil && f.Details.InstanceDate < f.class.Date {
		errs.DateBeforeClass = true
	}
	f.fieldErrs = errs
	return errs
}

// Save validates and writes the instance. In create mode a timestamp id is
// generated; in edit mode the existing id is kept.
func (f *InstanceForm) Save(ctx context.Context, confirmed bool) (*models.YogaClassInstance, error) {
	if errs := f.Validate(); errs.Any() {
		return nil, ErrInstanceValidation
	}
	if !confirmed {
		return nil, ErrNotConfirmed
	}

	id := f.instanceID
	if id == "" {
		id = utils.GenerateInstanceID()
	}

	notes := f.Details.Notes
	inst := models.YogaClassInstance{
		ID:           id,
		ClassID:      f.classID,
		Title:        f.Details.Title,
		Description:  f.Details.Description,
		InstanceDate: f.Details.InstanceDate,
		InstructorID: f.Details.InstructorID,
		Notes:        &notes,
	}

	if err := f.gw.PutInstance(ctx, inst); err != nil {
		return nil, err
	}
	f.instanceID = inst.ID
	return &inst, nil
}

// Delete removes the edited instance, behind its own destructive
// confirmation.
func (f *InstanceForm) Delete(ctx context.Context, confirmed bool) error {
	if f.mode != InstanceModeEdit {
		return ErrNotEditMode
	}
	if !confirmed {
		return ErrNotConfirmed
	}
	return f.gw.DeleteInstance(ctx, f.instanceID)
}
