package models

import "time"

// RoundRecord is the resolved aggregate of one round within a stored run.
type RoundRecord struct {
	ID            uint   `gorm:"primaryKey;autoIncrement"`
	RunID         string `gorm:"size:36;index"`
	Round         int
	Price         float64
	DeliveryDays  int
	Margin        float64
	ShippingMode  string `gorm:"size:16"`
	OvertimeHours int
	Converged     bool
	Approvals     int // how many of the five participants approved
	CreatedAt     time.Time
}
