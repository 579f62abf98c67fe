// Package domain holds the persisted entities of the service. The
// description pipeline itself is request-scoped and stores nothing;
// only the optional audit trail lives here.
package domain

import "time"

// Audit modes, matching the two description endpoints.
const (
	ModeText  = "text"
	ModeAudio = "audio"
)

// RequestAudit is one completed description request, recorded after the
// response has been written. It never sits on the request's critical path.
type RequestAudit struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	RequestID  string    `gorm:"size:36;index" json:"request_id"`
	Mode       string    `gorm:"size:8;index" json:"mode"`
	Language   string    `gorm:"size:8" json:"language"`
	Voice      string    `gorm:"size:32" json:"voice"`
	Status     int       `json:"status"`
	DurationMs int64     `json:"duration_ms"`
	Error      string    `gorm:"size:512" json:"error,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// TableName overrides the default gorm pluralization.
func (RequestAudit) TableName() string {
	return "request_audits"
}
