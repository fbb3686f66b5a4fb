package workflow

import (
	"context"
	"errors"
	"testing"

	"github.com/lokiedu/yoga_admin/models"
)

func TestCascadeDeletesInstancesBeforeClass(t *testing.T) {
	gw := newFakeGateway()
	class := seededClass(gw)
	gw.instances["20250301090000"] = models.YogaClassInstance{ID: "20250301090000", ClassID: class.ID}
	gw.instances["20250308090000"] = models.YogaClassInstance{ID: "20250308090000", ClassID: class.ID}

	if err := DeleteClassCascade(context.Background(), gw, class.ID); err != nil {
		t.Fatalf("cascade: %v", err)
	}

	want := []string{
		"delete_instance:20250301090000",
		"delete_instance:20250308090000",
		"delete_class:" + class.ID,
	}
	if len(gw.callLog) != len(want) {
		t.Fatalf("call log %v, want %v", gw.callLog, want)
	}
	for i := range want {
		if gw.callLog[i] != want[i] {
			t.Fatalf("call %d = %s, want %s (full log %v)", i, gw.callLog[i], want[i], gw.callLog)
		}
	}
}

func TestCascadeRetryAfterPartialFailure(t *testing.T) {
	gw := newFakeGateway()
	class := seededClass(gw)
	gw.instances["20250301090000"] = models.YogaClassInstance{ID: "20250301090000", ClassID: class.ID}

	gw.deleteClassErr = errors.New("deadline exceeded")
	if err := DeleteClassCascade(context.Background(), gw, class.ID); err == nil {
		t.Fatalf("expected cascade failure on the class delete")
	}
	if len(gw.instances) != 0 {
		t.Fatalf("children should already be gone after the first attempt")
	}

	// Instance deletion is idempotent, so the retry reaches the class again.
	gw.deleteClassErr = nil
	if err := DeleteClassCascade(context.Background(), gw, class.ID); err != nil {
		t.Fatalf("retry: %v", err)
	}
	if _, ok := gw.classes[class.ID]; ok {
		t.Fatalf("class must be deleted after the retry")
	}
}
