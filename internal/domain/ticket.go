package domain

import "time"

type TicketStatus string

// A ticket is created active and can only move to expired. The source system
// had a second "no active" label for the same state; "expired" is the one
// canonical value here.
const (
	TicketActive  TicketStatus = "active"
	TicketExpired TicketStatus = "expired"
)

// Ticket is a visitor's bearer credential for the audio guide. The code is
// the value encoded into the QR image handed to the visitor.
type Ticket struct {
	ID             int64        `json:"id" gorm:"column:id;primaryKey"`
	MuseumID       int64        `json:"museum_id" gorm:"column:museum_id;index" validate:"required"`
	Code           string       `json:"code" gorm:"column:code;size:10;uniqueIndex"`
	PurchaseTime   time.Time    `json:"purchase_time" gorm:"column:purchase_time"`
	ExpirationTime time.Time    `json:"expiration_time" gorm:"column:expiration_time"`
	Status         TicketStatus `json:"status" gorm:"column:status;default:active"`
	CreatedAt      time.Time    `json:"created_at" gorm:"column:created_at"`
	UpdatedAt      time.Time    `json:"updated_at" gorm:"column:updated_at"`

	Museum *Museum `json:"museum,omitempty" gorm:"foreignKey:MuseumID;constraint:OnDelete:CASCADE"`
}

func (Ticket) TableName() string { return "tickets" }
