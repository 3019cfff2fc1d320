package models

// AuditLog records underwriting decisions and sensitive user operations
// for security and compliance.
type AuditLog struct {
	Base
	UserID        uint   `gorm:"not null;index" json:"user_id"`
	Action        string `gorm:"not null" json:"action"`
	ResourceType  string `gorm:"not null" json:"resource_type"`
	ResourceID    uint   `json:"resource_id"`
	IPAddress     string `json:"ip_address"`
	CorrelationID string `gorm:"size:36" json:"correlation_id"`
	Changes       string `json:"changes,omitempty"`
}
