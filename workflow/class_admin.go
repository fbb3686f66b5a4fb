package workflow

import (
	"context"
	"fmt"

	"github.com/lokiedu/yoga_admin/gateway"
)

// DeleteClassCascade removes a class and everything scheduled under it:
// every instance is deleted first, then the class itself. There is no
// transaction behind this; a failure partway through can leave the class
// with fewer children. Instance deletion is idempotent, so rerunning the
// cascade after a partial failure is safe, and the orphan sweeper cleans up
// instances left behind when the final class delete succeeded earlier.
func DeleteClassCascade(ctx context.Context, gw gateway.Gateway, classID string) error {
	instances, err := gw.ListInstancesByClass(ctx, classID)
	if err != nil {
		return fmt.Errorf("failed to list instances of class %s: %w", classID, err)
	}

	for _, inst := range instances {
		if err := gw.DeleteInstance(ctx, inst.ID); err != nil {
			return fmt.Errorf("failed to delete instance %s: %w", inst.ID, err)
		}
	}

	if err := gw.DeleteClass(ctx, classID); err != nil {
		return fmt.Errorf("failed to delete class %s: %w", classID, err)
	}
	return nil
}
