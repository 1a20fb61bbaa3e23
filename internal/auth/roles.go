package auth

import (
	"strings"

	"github.com/ticketchain/ticketchain/internal/models"
)

// roleRule maps an identifier marker to a role. Rules are checked in order
// against the local part of an email identifier; the first hit wins.
type roleRule struct {
	marker string
	role   string
}

var roleRules = []roleRule{
	{"admin", models.RoleAdmin},
	{"organizer", models.RoleOrganizer},
	{"inspector", models.RoleInspector},
	{"artist", models.RoleArtist},
	{"promoter", models.RolePromoter},
}

// ResolveRole maps a login identifier to a role via the static pattern
// table. Phone identifiers and unmarked emails resolve to buyer.
func ResolveRole(identifier string) string {
	normalized := strings.ToLower(strings.TrimSpace(identifier))
	at := strings.Index(normalized, "@")
	if at < 0 {
		return models.RoleBuyer
	}

	local := normalized[:at]
	for _, rule := range roleRules {
		if strings.Contains(local, rule.marker) {
			return rule.role
		}
	}
	return models.RoleBuyer
}
