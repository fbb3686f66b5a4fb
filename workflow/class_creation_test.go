package workflow

import (
	"context"
	"errors"
	"testing"

	"github.com/lokiedu/yoga_admin/models"
)

func validDraftUpdate() DetailsUpdate {
	title := "Morning Flow"
	date := "2025-01-01"
	tm := "09:00"
	capacity := 5
	classType := "ct-1"
	price := 250000.0
	return DetailsUpdate{
		Title:       &title,
		Date:        &date,
		Time:        &tm,
		Capacity:    &capacity,
		ClassTypeID: &classType,
		Price:       &price,
	}
}

func newCreation() (*ClassCreation, *fakeGateway, *memDrafts, *memBlobs) {
	gw := newFakeGateway()
	drafts := &memDrafts{}
	blobs := &memBlobs{}
	return NewClassCreation(gw, drafts, blobs), gw, drafts, blobs
}

func TestValidateDetailsTitleLength(t *testing.T) {
	d := models.ClassDraft{Title: "Yoga", Date: "2025-01-01", Time: "09:00", Price: 10, Capacity: 5}
	errs := ValidateDetails(d)
	if !errs.Title {
		t.Fatalf("title shorter than 6 chars must set the title flag")
	}
	if errs.Date || errs.Time || errs.Price || errs.Capacity {
		t.Fatalf("only the title flag should be set, got %+v", errs)
	}
}

func TestValidateDetailsTitlePattern(t *testing.T) {
	base := models.ClassDraft{Date: "2025-01-01", Time: "09:00", Price: 10, Capacity: 5}

	base.Title = "Yoga 1"
	if errs := ValidateDetails(base); errs.Title {
		t.Fatalf("%q should pass the pattern check", base.Title)
	}

	base.Title = "Yoga!!"
	if errs := ValidateDetails(base); !errs.Title {
		t.Fatalf("%q should fail the pattern check", base.Title)
	}
}

func TestValidateDetailsNegativePrice(t *testing.T) {
	d := models.ClassDraft{Title: "Morning Flow", Date: "2025-01-01", Time: "09:00", Price: -1, Capacity: 5}
	errs := ValidateDetails(d)
	if !errs.Price {
		t.Fatalf("price <= 0 must set the price flag")
	}
	if errs.Title || errs.Date || errs.Time || errs.Capacity {
		t.Fatalf("validation should fail solely on price, got %+v", errs)
	}
}

func TestResumeStartsFreshDraftWithFixedID(t *testing.T) {
	w, _, drafts, _ := newCreation()
	if err := w.Resume(context.Background()); err != nil {
		t.Fatalf("resume: %v", err)
	}

	if w.Stage() != StageDetails {
		t.Fatalf("fresh flow must start in details, got %s", w.Stage())
	}
	if w.Draft().ID == "" {
		t.Fatalf("draft id must be assigned at creation")
	}
	if drafts.draft == nil || drafts.draft.ID != w.Draft().ID {
		t.Fatalf("fresh draft must be persisted immediately")
	}
}

func TestResumeHydratesAbandonedDraft(t *testing.T) {
	_, gw, drafts, blobs := newCreation()
	img := "https://blobs.example/class_images/old.jpg"
	drafts.draft = &models.ClassDraft{
		ID: "20250101120000000", Title: "Evening Stretch", Date: "2025-02-01", Time: "18:00",
		Capacity: 8, Price: 150000, ImageURL: &img, Stage: models.DraftStageConfirmation,
	}

	w := NewClassCreation(gw, drafts, blobs)
	if err := w.Resume(context.Background()); err != nil {
		t.Fatalf("resume: %v", err)
	}

	if w.Draft().ID != "20250101120000000" {
		t.Fatalf("resume must keep the existing draft id, got %s", w.Draft().ID)
	}
	if w.Stage() != StageConfirmation {
		t.Fatalf("resume must restore the persisted stage, got %s", w.Stage())
	}
	if w.ImageState() != ImageUploaded {
		t.Fatalf("a draft with an image must resume as uploaded, got %s", w.ImageState())
	}
}

func TestUpdateDetailsPersistsEveryEdit(t *testing.T) {
	w, _, drafts, _ := newCreation()
	if err := w.Resume(context.Background()); err != nil {
		t.Fatalf("resume: %v", err)
	}

	title := "Sunrise Vinyasa"
	if err := w.UpdateDetails(context.Background(), DetailsUpdate{Title: &title}); err != nil {
		t.Fatalf("update: %v", err)
	}

	if drafts.draft.Title != "Sunrise Vinyasa" {
		t.Fatalf("field edit must be written through to the cache, got %q", drafts.draft.Title)
	}
	if drafts.draft.Date != "" {
		t.Fatalf("partial update must not touch other fields")
	}
}

func TestNextBlockedWhileInvalid(t *testing.T) {
	w, _, _, _ := newCreation()
	if err := w.Resume(context.Background()); err != nil {
		t.Fatalf("resume: %v", err)
	}

	err := w.Next(context.Background())
	if !errors.Is(err, ErrValidationFailed) {
		t.Fatalf("expected ErrValidationFailed, got %v", err)
	}
	if w.Stage() != StageDetails {
		t.Fatalf("invalid draft must stay in details, got %s", w.Stage())
	}
	if !w.FieldErrors().Any() {
		t.Fatalf("field flags must be set after a blocked advance")
	}
}

func TestNextAndBackKeepDraft(t *testing.T) {
	w, _, drafts, _ := newCreation()
	ctx := context.Background()
	if err := w.Resume(ctx); err != nil {
		t.Fatalf("resume: %v", err)
	}
	if err := w.UpdateDetails(ctx, validDraftUpdate()); err != nil {
		t.Fatalf("update: %v", err)
	}

	if err := w.Next(ctx); err != nil {
		t.Fatalf("next: %v", err)
	}
	if w.Stage() != StageConfirmation {
		t.Fatalf("expected confirmation stage, got %s", w.Stage())
	}
	if drafts.draft.Stage != models.DraftStageConfirmation {
		t.Fatalf("stage must be persisted, got %s", drafts.draft.Stage)
	}

	if err := w.Back(ctx); err != nil {
		t.Fatalf("back: %v", err)
	}
	if w.Stage() != StageDetails {
		t.Fatalf("expected details stage after back, got %s", w.Stage())
	}
	if drafts.draft == nil || drafts.draft.Title != "Morning Flow" {
		t.Fatalf("going back must not discard the draft")
	}
}

func TestCommitRequiresConfirmation(t *testing.T) {
	w, gw, _, _ := newCreation()
	ctx := context.Background()
	if err := w.Resume(ctx); err != nil {
		t.Fatalf("resume: %v", err)
	}
	if err := w.UpdateDetails(ctx, validDraftUpdate()); err != nil {
		t.Fatalf("update: %v", err)
	}
	if err := w.Next(ctx); err != nil {
		t.Fatalf("next: %v", err)
	}

	if _, err := w.Commit(ctx, false); !errors.Is(err, ErrNotConfirmed) {
		t.Fatalf("expected ErrNotConfirmed, got %v", err)
	}
	if len(gw.classes) != 0 {
		t.Fatalf("unconfirmed commit must not write anything")
	}
}

func TestCommitClearsDraftAndUsesFixedID(t *testing.T) {
	w, gw, drafts, _ := newCreation()
	ctx := context.Background()
	if err := w.Resume(ctx); err != nil {
		t.Fatalf("resume: %v", err)
	}
	draftID := w.Draft().ID
	if err := w.UpdateDetails(ctx, validDraftUpdate()); err != nil {
		t.Fatalf("update: %v", err)
	}
	if err := w.Next(ctx); err != nil {
		t.Fatalf("next: %v", err)
	}

	class, err := w.Commit(ctx, true)
	if err != nil {
		t.Fatalf("commit: %v", err)
	}

	if class.ID != draftID {
		t.Fatalf("committed class id %s must equal the draft id %s", class.ID, draftID)
	}
	if w.Stage() != StageCommitted {
		t.Fatalf("expected committed stage, got %s", w.Stage())
	}
	if drafts.draft != nil {
		t.Fatalf("commit must clear the staging row")
	}
	if _, ok := gw.classes[draftID]; !ok {
		t.Fatalf("class must exist remotely under the draft id")
	}
}

// A commit retried after a transient failure must not create a second class:
// the id is fixed before the first attempt and the write is an upsert.
func TestCommitRetryDoesNotDuplicate(t *testing.T) {
	w, gw, _, _ := newCreation()
	ctx := context.Background()
	if err := w.Resume(ctx); err != nil {
		t.Fatalf("resume: %v", err)
	}
	if err := w.UpdateDetails(ctx, validDraftUpdate()); err != nil {
		t.Fatalf("update: %v", err)
	}
	if err := w.Next(ctx); err != nil {
		t.Fatalf("next: %v", err)
	}

	gw.putClassErr = errors.New("deadline exceeded")
	if _, err := w.Commit(ctx, true); err == nil {
		t.Fatalf("expected commit failure")
	}
	if w.Stage() != StageConfirmation {
		t.Fatalf("failed commit must stay in confirmation, got %s", w.Stage())
	}

	gw.putClassErr = nil
	if _, err := w.Commit(ctx, true); err != nil {
		t.Fatalf("retry: %v", err)
	}

	if len(gw.classes) != 1 {
		t.Fatalf("retried commit created %d classes, want 1", len(gw.classes))
	}
	puts := 0
	for _, call := range gw.callLog {
		if call == "put_class:"+w.Draft().ID {
			puts++
		}
	}
	if puts != 2 {
		t.Fatalf("both attempts must target the same id, got call log %v", gw.callLog)
	}
}

func TestAttachImageReplacesPreviousBlob(t *testing.T) {
	w, _, _, blobs := newCreation()
	ctx := context.Background()
	if err := w.Resume(ctx); err != nil {
		t.Fatalf("resume: %v", err)
	}

	if err := w.AttachImage(ctx, []byte("img1"), "a.jpg"); err != nil {
		t.Fatalf("first attach: %v", err)
	}
	first := *w.Draft().ImageURL

	if err := w.AttachImage(ctx, []byte("img2"), "b.jpg"); err != nil {
		t.Fatalf("second attach: %v", err)
	}

	if len(blobs.deleted) != 1 || blobs.deleted[0] != first {
		t.Fatalf("replacing must delete the previous blob first, deleted: %v", blobs.deleted)
	}
	if w.ImageState() != ImageUploaded {
		t.Fatalf("expected uploaded state, got %s", w.ImageState())
	}
}

func TestAttachImageFailureIsNonFatal(t *testing.T) {
	w, _, drafts, blobs := newCreation()
	ctx := context.Background()
	if err := w.Resume(ctx); err != nil {
		t.Fatalf("resume: %v", err)
	}

	blobs.failUpload = true
	if err := w.AttachImage(ctx, []byte("img"), "a.jpg"); err == nil {
		t.Fatalf("expected upload failure")
	}

	if w.ImageState() != ImageNone {
		t.Fatalf("failed upload must return to no-image, got %s", w.ImageState())
	}
	if drafts.draft.ImageURL != nil {
		t.Fatalf("failed upload must not set the draft image url")
	}

	// The flow proceeds without an image.
	if err := w.UpdateDetails(ctx, validDraftUpdate()); err != nil {
		t.Fatalf("update after failed upload: %v", err)
	}
	if err := w.Next(ctx); err != nil {
		t.Fatalf("advance after failed upload: %v", err)
	}
}

func TestRemoveImageSurvivesBlobDeleteFailure(t *testing.T) {
	w, _, drafts, blobs := newCreation()
	ctx := context.Background()
	if err := w.Resume(ctx); err != nil {
		t.Fatalf("resume: %v", err)
	}
	if err := w.AttachImage(ctx, []byte("img"), "a.jpg"); err != nil {
		t.Fatalf("attach: %v", err)
	}

	blobs.failDelete = true
	if err := w.RemoveImage(ctx); err != nil {
		t.Fatalf("remove must not fail on a blob delete error: %v", err)
	}
	if drafts.draft.ImageURL != nil {
		t.Fatalf("remove must clear the draft image url regardless")
	}
}

func TestDiscardClearsCache(t *testing.T) {
	w, _, drafts, _ := newCreation()
	ctx := context.Background()
	if err := w.Resume(ctx); err != nil {
		t.Fatalf("resume: %v", err)
	}
	if err := w.UpdateDetails(ctx, validDraftUpdate()); err != nil {
		t.Fatalf("update: %v", err)
	}

	if err := w.Discard(ctx); err != nil {
		t.Fatalf("discard: %v", err)
	}
	if drafts.draft != nil {
		t.Fatalf("discard must remove the staging row")
	}
	if w.Stage() != StageDetails {
		t.Fatalf("discard must reset to details, got %s", w.Stage())
	}
}

// Upsert followed by GetFirstDraft returns an equal draft in every field.
func TestDraftCacheRoundTrip(t *testing.T) {
	drafts := &memDrafts{}
	ctx := context.Background()

	img := "https://blobs.example/class_images/x.jpg"
	in := models.ClassDraft{
		ID: "20250101120000000", Title: "Morning Flow", Description: "Slow start",
		Date: "2025-01-01", Time: "09:00", Capacity: 5, ClassTypeID: "ct-1",
		Price: 250000, ImageURL: &img, Stage: models.DraftStageDetails,
	}
	if err := drafts.Upsert(ctx, in); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	out, err := drafts.GetFirstDraft(ctx)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if out == nil {
		t.Fatalf("expected a draft back")
	}
	if out.ID != in.ID || out.Title != in.Title || out.Description != in.Description ||
		out.Date != in.Date || out.Time != in.Time || out.Capacity != in.Capacity ||
		out.ClassTypeID != in.ClassTypeID || out.Price != in.Price || *out.ImageURL != *in.ImageURL ||
		out.Stage != in.Stage {
		t.Fatalf("round trip mismatch: got %+v want %+v", out, in)
	}
}
