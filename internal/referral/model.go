package referral

// Summary is the commission engine output for one referral code.
type Summary struct {
	TotalReferrals int     `json:"total_referrals"`
	Buyers         int     `json:"buyers"`
	Rate           float64 `json:"rate"`
	PayableAmount  int64   `json:"payable_amount"`
}
