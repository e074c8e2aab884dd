package models

import "time"

// MessageLog is the audit copy of one scripted inter-participant message.
// Display and audit only; never read back into negotiation logic.
type MessageLog struct {
	ID        uint   `gorm:"primaryKey;autoIncrement"`
	RunID     string `gorm:"size:36;index"`
	MessageID string `gorm:"size:16"`
	Round     int
	FromAgent string `gorm:"size:32"`
	ToAgent   string `gorm:"size:32"`
	Type      string `gorm:"size:16"`
	Body      string `gorm:"type:text"`
	CreatedAt time.Time
}
