package ticket

import "time"

type CreateTicketRequest struct {
	MuseumID int64 `json:"museum_id" binding:"required"`
}

// UpdateTicketRequest replaces the whole ticket; all fields required, same as
// the dashboard's edit form submits.
type UpdateTicketRequest struct {
	MuseumID       int64     `json:"museum_id" binding:"required"`
	Code           string    `json:"code" binding:"required"`
	Status         string    `json:"status" binding:"required"`
	PurchaseTime   time.Time `json:"purchase_time" binding:"required"`
	ExpirationTime time.Time `json:"expiration_time" binding:"required"`
}
