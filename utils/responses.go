// utils/responses.go
package utils

import (
	"math/rand"

	"github.com/gin-gonic/gin"
)

func RespondWithError(c *gin.Context, code int, message string) {
	c.AbortWithStatusJSON(code, gin.H{"error": message})
}

// GenerateRepairNumber returns a random 5-digit human-facing ticket
// number. Uniqueness is enforced by the caller against the database.
func GenerateRepairNumber() int {
	return rand.Intn(90000) + 10000
}
