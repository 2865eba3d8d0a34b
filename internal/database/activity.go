package database

import "conformo/internal/models"

// LogActivity appends to the activity journal. Best-effort: a failed write
// never blocks the action that triggered it.
func LogActivity(orgID, userID uint, entity string, entityID uint, action, details string) {
	if DB == nil {
		return
	}
	record := models.ActivityLog{
		OrganizationID: orgID,
		UserID:         userID,
		Entity:         entity,
		EntityID:       entityID,
		Action:         action,
		Details:        details,
	}
	_ = DB.Create(&record).Error
}
