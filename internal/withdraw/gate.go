package withdraw

import (
	"errors"
	"fmt"
)

// WireTransferProvider is the one channel that needs recipient details
// beyond a mobile/reference number.
const WireTransferProvider = "Western Union"

// Providers is the fixed payout channel set offered to users.
var Providers = []string{
	"MTN MoMo",
	"Airtel Money",
	"Orange Money",
	"Moov Money",
	"Wave",
	WireTransferProvider,
}

const minMobileLen = 6

var (
	ErrUnknownProvider     = errors.New("unknown payout provider")
	ErrIncompleteWireInfo  = errors.New("full name, country and reference number are required for wire transfers")
	ErrInvalidMobileNumber = errors.New("mobile number must be at least 6 characters")
)

// InsufficientBuyersError reports how far the caller is from the
// withdrawal threshold, for display.
type InsufficientBuyersError struct {
	Buyers    int
	Threshold int
}

func (e *InsufficientBuyersError) Error() string {
	return fmt.Sprintf("you have %d buying referrals, %d are required to withdraw", e.Buyers, e.Threshold)
}

// Request carries the channel-specific fields of a payout request.
type Request struct {
	Provider string `json:"provider"`
	Mobile   string `json:"mobile_number"`
	FullName string `json:"wu_fullname"`
	Country  string `json:"wu_country"`
}

// CheckEligibility enforces the minimum-buyer threshold.
func CheckEligibility(buyers, threshold int) error {
	if buyers < threshold {
		return &InsufficientBuyersError{Buyers: buyers, Threshold: threshold}
	}
	return nil
}

// ValidateRequest checks the channel-specific fields of a request.
func ValidateRequest(r Request) error {
	known := false
	for _, p := range Providers {
		if r.Provider == p {
			known = true
			break
		}
	}
	if !known {
		return ErrUnknownProvider
	}

	if r.Provider == WireTransferProvider {
		if r.FullName == "" || r.Country == "" || len(r.Mobile) < minMobileLen {
			return ErrIncompleteWireInfo
		}
		return nil
	}
	if len(r.Mobile) < minMobileLen {
		return ErrInvalidMobileNumber
	}
	return nil
}

// Gate runs the full eligibility check in order; the first failure
// wins. Buyer count is re-derived by the caller on every submission,
// never cached.
func Gate(buyers, threshold int, r Request) error {
	if err := CheckEligibility(buyers, threshold); err != nil {
		return err
	}
	return ValidateRequest(r)
}
