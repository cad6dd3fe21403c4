package utils

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// GenerateTicketToken builds the opaque string stored in the qr_code column
// and embedded in the QR image. The uuid suffix makes the token unguessable;
// the prefix keeps it traceable to the purchase during reconciliation.
func GenerateTicketToken(userID, funcionID int64, cantidad int, issuedAt time.Time) string {
	return fmt.Sprintf("TKT-%d-%d-%d-%s-%s",
		userID, funcionID, cantidad,
		issuedAt.UTC().Format("20060102T150405"),
		uuid.New().String(),
	)
}
