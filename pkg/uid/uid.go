package uid

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// orderPrefix marks storefront order numbers ("commande").
const orderPrefix = "CMD"

// New generates a new unique identifier.
func New() string {
	return uuid.New().String()
}

// IsValid checks if a string is a valid UUID.
func IsValid(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

// OrderNumber generates a short human-readable order number, stamped on
// orders created locally before the backend assigns one.
func OrderNumber() string {
	id := uuid.New().String()
	return fmt.Sprintf("%s-%s", orderPrefix, strings.ToUpper(id[:8]))
}
