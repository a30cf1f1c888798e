package content

import "regexp"

// Canonical 8-4-4-4-12 hex form only. Slugs that merely look UUID-ish (wrong
// characters, wrong grouping) must still route to the slug lookup.
var uuidPattern = regexp.MustCompile(`^[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}$`)

// IsUUID classifies a path parameter as an id (canonical UUID) or a slug.
func IsUUID(param string) bool {
	return uuidPattern.MatchString(param)
}
