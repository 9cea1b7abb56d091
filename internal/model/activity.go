package model

import "time"

// Action tags for activity records.
const (
	ActionRegister       = "REGISTER"
	ActionLogin          = "LOGIN"
	ActionUpload         = "UPLOAD"
	ActionDelete         = "DELETE"
	ActionCreateFolder   = "CREATE_FOLDER"
	ActionMove           = "MOVE"
	ActionSecurityUpdate = "SECURITY_UPDATE"
	ActionUpgrade        = "UPGRADE"
	ActionPasswordReset  = "PASSWORD_RESET"
)

// ActivityRecord is one append-only audit trail entry. Records are never
// mutated or deleted; they are queried newest-first with a small cap.
type ActivityRecord struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Action    string    `json:"action"`
	Details   string    `json:"details"`
	IPAddress string    `json:"ip_address,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
