package domain

import "time"

// AuditFields holds standard audit information for domain entities.
type AuditFields struct {
	CreatedAt     time.Time `json:"createdAt"`
	LastUpdatedAt time.Time `json:"updatedAt"`
}

// Touch sets both timestamps on a new entity.
func (a *AuditFields) Touch(now time.Time) {
	if a.CreatedAt.IsZero() {
		a.CreatedAt = now
	}
	a.LastUpdatedAt = now
}
