// utils/response.go
package utils

import (
	"crypto/rand"
	"math/big"

	"github.com/gin-gonic/gin"
)

// RespondWithError sends a uniform error payload. Status codes follow the
// error kinds of the API: 400 bad input, 404 unknown id, 409 conflict or
// illegal state transition, 500 store failure.
func RespondWithError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"error": message})
}

const randomCharset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// GenerateRandomString returns a short random reference code, used for
// human-readable ticket numbers.
func GenerateRandomString(length int) string {
	b := make([]byte, length)
	for i := range b {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(randomCharset))))
		if err != nil {
			b[i] = randomCharset[0]
			continue
		}
		b[i] = randomCharset[n.Int64()]
	}
	return string(b)
}
