package workflow

import (
	"context"
	"fmt"
	"sort"

	"github.com/lokiedu/yoga_admin/gateway"
	"github.com/lokiedu/yoga_admin/models"
)

// memDrafts is an in-memory single-slot draft store.
type memDrafts struct {
	draft *models.ClassDraft
}

func (m *memDrafts) GetFirstDraft(ctx context.Context) (*models.ClassDraft, error) {
	if m.draft == nil {
		return nil, nil
	}
	d := *m.draft
	return &d, nil
}

func (m *memDrafts) Upsert(ctx context.Context, draft models.ClassDraft) error {
	d := draft
	m.draft = &d
	return nil
}

func (m *memDrafts) Delete(ctx context.Context, draftID string) error {
	if m.draft != nil && m.draft.ID == draftID {
		m.draft = nil
	}
	return nil
}

func (m *memDrafts) ClearAll(ctx context.Context) error {
	m.draft = nil
	return nil
}

// memBlobs records blob operations and can be told to fail.
type memBlobs struct {
	uploads    int
	deleted    []string
	failUpload bool
	failDelete bool
}

func (m *memBlobs) Upload(ctx context.Context, data []byte, filename string) (string, error) {
	if m.failUpload {
		return "", fmt.Errorf("upload of %s failed: connection reset", filename)
	}
	m.uploads++
	return fmt.Sprintf("https://blobs.example/class_images/img-%d.jpg", m.uploads), nil
}

func (m *memBlobs) Delete(ctx context.Context, url string) error {
	m.deleted = append(m.deleted, url)
	if m.failDelete {
		return fmt.Errorf("failed to delete %s: permission denied", url)
	}
	return nil
}

// fakeGateway implements the subset of the gateway the workflows touch and
// logs calls, so tests can assert ordering. Untouched methods panic via the
// embedded nil interface.
type fakeGateway struct {
	gateway.Gateway

	classes   map[string]models.YogaClass
	instances map[string]models.YogaClassInstance
	users     []models.User

	putClassErr    error
	deleteClassErr error
	callLog        []string
}

func newFakeGateway() *fakeGateway {
	return &fakeGateway{
		classes:   make(map[string]models.YogaClass),
		instances: make(map[string]models.YogaClassInstance),
	}
}

func (f *fakeGateway) PutClass(ctx context.Context, class models.YogaClass) error {
	f.callLog = append(f.callLog, "put_class:"+class.ID)
	if f.putClassErr != nil {
		return f.putClassErr
	}
	f.classes[class.ID] = class
	return nil
}

func (f *fakeGateway) GetClass(ctx context.Context, id string) (*models.YogaClass, error) {
	if class, ok := f.classes[id]; ok {
		return &class, nil
	}
	return nil, gateway.ErrNotFound
}

func (f *fakeGateway) DeleteClass(ctx context.Context, id string) error {
	f.callLog = append(f.callLog, "delete_class:"+id)
	if f.deleteClassErr != nil {
		return f.deleteClassErr
	}
	if _, ok := f.classes[id]; !ok {
		return gateway.ErrNotFound
	}
	delete(f.classes, id)
	return nil
}

func (f *fakeGateway) ListInstancesByClass(ctx context.Context, classID string) ([]models.YogaClassInstance, error) {
	var out []models.YogaClassInstance
	for _, inst := range f.instances {
		if inst.ClassID == classID {
			out = append(out, inst)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeGateway) GetInstance(ctx context.Context, id string) (*models.YogaClassInstance, error) {
	if inst, ok := f.instances[id]; ok {
		return &inst, nil
	}
	return nil, gateway.ErrNotFound
}

func (f *fakeGateway) PutInstance(ctx context.Context, inst models.YogaClassInstance) error {
	f.callLog = append(f.callLog, "put_instance:"+inst.ID)
	f.instances[inst.ID] = inst
	return nil
}

func (f *fakeGateway) DeleteInstance(ctx context.Context, id string) error {
	f.callLog = append(f.callLog, "delete_instance:"+id)
	delete(f.instances, id)
	return nil
}

func (f *fakeGateway) ListUsersByRole(ctx context.Context, role string) ([]models.User, error) {
	var out []models.User
	for _, u := range f.users {
		if u.Role == role {
			out = append(out, u)
		}
	}
	return out, nil
}
