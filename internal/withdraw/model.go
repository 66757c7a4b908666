package withdraw

import "time"

type Status string

const (
	StatusPending   Status = "pending"
	StatusValidated Status = "validated"
	StatusRefused   Status = "refused"
)

// WithdrawalRequest is a payout request awaiting moderation. Both
// admin transitions out of pending are terminal.
type WithdrawalRequest struct {
	ID           string    `json:"id"`
	UserID       int64     `json:"user_id"`
	Provider     string    `json:"provider"`
	MobileNumber string    `json:"mobile_number"`
	FullName     string    `json:"wu_fullname,omitempty"`
	Country      string    `json:"wu_country,omitempty"`
	Status       Status    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
}
