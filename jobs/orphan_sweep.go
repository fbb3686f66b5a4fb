package jobs

import (
	"log"

	"github.com/lokiedu/yoga_admin/models"
	"gorm.io/gorm"
)

// SweepOrphanInstances deletes instances whose owning class no longer
// exists. A cascade delete is not transactional: if the instance deletes
// succeed but the final class delete fails, a retry finishes the job, and if
// the class delete succeeded on an earlier partial run, this sweep picks up
// whatever was left behind.
func SweepOrphanInstances(db *gorm.DB) {
	res := db.Where("class_id NOT IN (?)",
		db.Model(&models.YogaClass{}).Select("id"),
	).Delete(&models.YogaClassInstance{})

	if res.Error != nil {
		log.Printf("🔥 Orphan instance sweep failed: %v", res.Error)
		return
	}
	if res.RowsAffected > 0 {
		log.Printf("✅ Orphan instance sweep removed %d instance(s)", res.RowsAffected)
	}
}
