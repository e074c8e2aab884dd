// Package models defines the GORM schema for persisted negotiations.
package models

import "time"

// NegotiationRun is one completed negotiation: the order as submitted plus
// the terminal decision. Cancelled negotiations are never written.
type NegotiationRun struct {
	ID                    string `gorm:"primaryKey;size:36"`
	OrderID               string `gorm:"size:64;index"`
	Customer              string `gorm:"size:128"`
	Product               string `gorm:"size:64"`
	Quantity              int
	RequestedPrice        float64
	RequestedDeliveryDays int
	Priority              string `gorm:"size:16"`
	Approved              bool   `gorm:"index"`
	FinalPrice            float64
	FinalDeliveryDays     int
	FinalMargin           float64
	ShippingMode          string `gorm:"size:16"`
	OvertimeHours         int
	RiskScore             string `gorm:"size:8"`
	Confidence            int
	Supplier              string `gorm:"size:64"`
	RejectionReason       string `gorm:"type:text"`
	Summary               string `gorm:"type:text"`
	Backend               string `gorm:"size:32"`
	Rounds                int
	CreatedAt             time.Time

	RoundRecords []RoundRecord `gorm:"foreignKey:RunID"`
	MessageLogs  []MessageLog  `gorm:"foreignKey:RunID"`
}
