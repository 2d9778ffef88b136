package postgres

import "github.com/google/uuid"

// ValidShopID reports whether id can be compared with a UUID column. Anything
// else makes postgres fail the whole statement with invalid_text_representation.
// Only the canonical form is accepted since uuid.Parse also takes urn and
// brace forms postgres rejects.
func ValidShopID(id string) bool {
	if len(id) != 36 {
		return false
	}
	_, err := uuid.Parse(id)
	return err == nil
}
