package workflow

import (
	"context"
	"errors"
	"log"
	"regexp"

	"github.com/lokiedu/yoga_admin/draftcache"
	"github.com/lokiedu/yoga_admin/gateway"
	"github.com/lokiedu/yoga_admin/models"
	"github.com/lokiedu/yoga_admin/utils"
)

type Stage string

const (
	StageDetails      Stage = "details"
	StageConfirmation Stage = "confirmation"
	StageCommitted    Stage = "committed"
)

type ImageState string

const (
	ImageNone      ImageState = "none"
	ImageUploading ImageState = "uploading"
	ImageUploaded  ImageState = "uploaded"
)

var (
	ErrValidationFailed = errors.New("class details failed validation")
	ErrInvalidStage     = errors.New("operation not allowed in current stage")
	ErrNotConfirmed     = errors.New("commit requires explicit confirmation")
)

var titlePattern = regexp.MustCompile(`^[a-zA-Z0-9 _-]*$`)

// FieldErrors are the per-field validation flags for the details stage.
type FieldErrors struct {
	Title    bool `json:"title"`
	Date     bool `json:"date"`
	Time     bool `json:"time"`
	Price    bool `json:"price"`
	Capacity bool `json:"capacity"`
}

func (e FieldErrors) Any() bool {
	return e.Title || e.Date || e.Time || e.Price || e.Capacity
}

// ValidateDetails checks the details stage fields. Pure: the same draft
// always yields the same flags.
func ValidateDetails(d models.ClassDraft) FieldErrors {
	return FieldErrors{
		Title:    len(d.Title) < 6 || !titlePattern.MatchString(d.Title),
		Date:     d.Date == "",
		Time:     d.Time == "",
		Price:    d.Price <= 0,
		Capacity: d.Capacity <= 0,
	}
}

// DetailsUpdate carries a partial edit of the details stage. Nil fields are
// left untouched.
type DetailsUpdate struct {
	Title       *string  `json:"title"`
	Description *string  `json:"description"`
	Date        *string  `json:"date"`
	Time        *string  `json:"time"`
	Capacity    *int     `json:"capacity"`
	ClassTypeID *string  `json:"class_type_id"`
	Price       *float64 `json:"price"`
}

// ClassCreation is the staged create-class machine:
// DETAILS -> CONFIRMATION -> COMMITTED, with a back-edge to DETAILS.
// Every field commit is written through to the draft store, so the machine
// can be resumed after a restart from wherever it was.
type ClassCreation struct {
	gw     gateway.Gateway
	drafts draftcache.Store
	blobs  gateway.BlobStore

	draft      models.ClassDraft
	stage      Stage
	imageState ImageState
	fieldErrs  FieldErrors
}

func NewClassCreation(gw gateway.Gateway, drafts draftcache.Store, blobs gateway.BlobStore) *ClassCreation {
	return &ClassCreation{gw: gw, drafts: drafts, blobs: blobs, stage: StageDetails, imageState: ImageNone}
}

// Resume hydrates the machine from a previously abandoned draft, or starts a
// fresh one. The class id is fixed here, before any remote write, so that a
// retried commit upserts the same document instead of creating a duplicate.
func (w *ClassCreation) Resume(ctx context.Context) error {
	existing, err := w.drafts.GetFirstDraft(ctx)
	if err != nil {
		return err
	}

	if existing != nil {
		w.draft = *existing
		w.stage = Stage(existing.Stage)
		if existing.ImageURL != nil && *existing.ImageURL != "" {
			w.imageState = ImageUploaded
		}
		return nil
	}

	w.draft = models.ClassDraft{
		ID:    utils.GenerateClassID(),
		Stage: models.DraftStageDetails,
	}
	w.stage = StageDetails
	return w.drafts.Upsert(ctx, w.draft)
}

func (w *ClassCreation) Stage() Stage             { return w.stage }
func (w *ClassCreation) Draft() models.ClassDraft { return w.draft }
func (w *ClassCreation) FieldErrors() FieldErrors { return w.fieldErrs }
func (w *ClassCreation) ImageState() ImageState   { return w.imageState }

// UpdateDetails applies a partial edit and persists the draft durably.
func (w *ClassCreation) UpdateDetails(ctx context.Context, upd DetailsUpdate) error {
	if w.stage != StageDetails {
		return ErrInvalidStage
	}

	if upd.Title != nil {
		w.draft.Title = *upd.Title
	}
	if upd.Description != nil {
		w.draft.Description = *upd.Description
	}
	if upd.Date != nil {
		w.draft.Date = *upd.Date
	}
	if upd.Time != nil {
		w.draft.Time = *upd.Time
	}
	if upd.Capacity != nil {
		w.draft.Capacity = *upd.Capacity
	}
	if upd.ClassTypeID != nil {
		w.draft.ClassTypeID = *upd.ClassTypeID
	}
	if upd.Price != nil {
		w.draft.Price = *upd.Price
	}

	return w.drafts.Upsert(ctx, w.draft)
}

// Next advances DETAILS -> CONFIRMATION. Blocked while any field flag is set.
func (w *ClassCreation) Next(ctx context.Context) error {
	if w.stage != StageDetails {
		return ErrInvalidStage
	}

	w.fieldErrs = ValidateDetails(w.draft)
	if w.fieldErrs.Any() {
		return ErrValidationFailed
	}

	w.draft.Stage = models.DraftStageConfirmation
	if err := w.drafts.Upsert(ctx, w.draft); err != nil {
		w.draft.Stage = models.DraftStageDetails
		return err
	}
	w.stage = StageConfirmation
	return nil
}

// Back returns CONFIRMATION -> DETAILS. Nothing is discarded.
func (w *ClassCreation) Back(ctx context.Context) error {
	if w.stage != StageConfirmation {
		return ErrInvalidStage
	}

	w.draft.Stage = models.DraftStageDetails
	if err := w.drafts.Upsert(ctx, w.draft); err != nil {
		w.draft.Stage = models.DraftStageConfirmation
		return err
	}
	w.stage = StageDetails
	return nil
}

// AttachImage uploads an image for the draft. A previously uploaded image is
// deleted first; failure to delete the old blob is reported but never blocks
// the new upload. Upload failure is non-fatal: the draft keeps no image and
// the caller may retry or proceed without one.
func (w *ClassCreation) AttachImage(ctx context.Context, data []byte, filename string) error {
	if w.stage != StageDetails {
		return ErrInvalidStage
	}

	if w.draft.ImageURL != nil && *w.draft.ImageURL != "" {
		if err := w.blobs.Delete(ctx, *w.draft.ImageURL); err != nil {
			log.Printf("⚠️ Failed to delete previous class image %s: %v", *w.draft.ImageURL, err)
		}
		w.draft.ImageURL = nil
		w.imageState = ImageNone
		if err := w.drafts.Upsert(ctx, w.draft); err != nil {
			return err
		}
	}

	w.imageState = ImageUploading
	url, err := w.blobs.Upload(ctx, data, filename)
	if err != nil {
		w.imageState = ImageNone
		return err
	}

	w.draft.ImageURL = &url
	if err := w.drafts.Upsert(ctx, w.draft); err != nil {
		return err
	}
	w.imageState = ImageUploaded
	return nil
}

// RemoveImage detaches the draft image. The blob delete is best-effort.
func (w *ClassCreation) RemoveImage(ctx context.Context) error {
	if w.draft.ImageURL == nil || *w.draft.ImageURL == "" {
		return nil
	}

	if err := w.blobs.Delete(ctx, *w.draft.ImageURL); err != nil {
		log.Printf("⚠️ Failed to delete class image %s: %v", *w.draft.ImageURL, err)
	}
	w.draft.ImageURL = nil
	w.imageState = ImageNone
	return w.drafts.Upsert(ctx, w.draft)
}

// Commit writes the draft to the classes collection and clears the staging
// row. Only valid in CONFIRMATION, and only with the caller's explicit
// confirmation: commit is irreversible from the app's point of view. On
// failure the machine stays in CONFIRMATION and the commit may be retried;
// the fixed class id makes the retry an upsert.
func (w *ClassCreation) Commit(ctx context.Context, confirmed bool) (*models.YogaClass, error) {
	if w.stage != StageConfirmation {
		return nil, ErrInvalidStage
	}
	if !confirmed {
		return nil, ErrNotConfirmed
	}

	class := w.draft.ToClass()
	if err := w.gw.PutClass(ctx, class); err != nil {
		return nil, err
	}

	if err := w.drafts.Delete(ctx, w.draft.ID); err != nil {
		// The class is committed; a stale staging row only means the next
		// Resume offers it again. Report and move on.
		log.Printf("⚠️ Failed to clear draft %s after commit: %v", w.draft.ID, err)
	}

	w.stage = StageCommitted
	return &class, nil
}

// Discard abandons the draft and removes the staging row.
func (w *ClassCreation) Discard(ctx context.Context) error {
	if err := w.drafts.ClearAll(ctx); err != nil {
		return err
	}
	w.draft = models.ClassDraft{}
	w.stage = StageDetails
	w.imageState = ImageNone
	w.fieldErrs = FieldErrors{}
	return nil
}
