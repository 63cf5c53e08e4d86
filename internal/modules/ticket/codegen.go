package ticket

import (
	"context"
	"fmt"
	"math/rand"
)

// code space: [1, 9_999_999_999], rendered as ten digits with leading zeros
const codeMax = 9_999_999_999

// GenerateCode samples a ticket code uniformly from the ten-digit space and
// re-samples until the code is not already issued. The existence pre-check is
// an optimization; the unique index on tickets.code is the authoritative
// guard and Create retries on a constraint violation.
func GenerateCode(ctx context.Context, tickets TicketRepository) (string, error) {
	for {
		code := fmt.Sprintf("%010d", 1+rand.Int63n(codeMax))
		exists, err := tickets.CodeExists(ctx, code)
		if err != nil {
			return "", err
		}
		if !exists {
			return code, nil
		}
	}
}
