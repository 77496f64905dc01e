package school

import "time"

// School is the tenant boundary: every plan row belongs to exactly one
// school. Provisioning lives elsewhere; this service only resolves and
// scopes.
type School struct {
	ID        string
	Domain    string
	Name      string
	Status    string
	CreatedAt time.Time
}
