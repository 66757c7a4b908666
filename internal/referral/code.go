package referral

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// GenerateCode derives a referral code from an account's numeric id
// plus a short random salt. The id part keeps codes unique across
// accounts; the salt keeps them unguessable from the id alone.
func GenerateCode(userID int64) (string, error) {
	salt := make([]byte, 2)
	if _, err := rand.Read(salt); err != nil {
		return "", err
	}
	return fmt.Sprintf("U%06d%s", userID, hex.EncodeToString(salt)), nil
}
