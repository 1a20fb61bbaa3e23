package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ticketchain/ticketchain/internal/models"
)

func TestResolveRole(t *testing.T) {
	tests := []struct {
		identifier string
		want       string
	}{
		{"admin@ticketchain.io", models.RoleAdmin},
		{"organizer-jakarta@events.com", models.RoleOrganizer},
		{"gate.inspector@venue.com", models.RoleInspector},
		{"artist.rara@label.com", models.RoleArtist},
		{"promoter01@agency.com", models.RolePromoter},
		{"alice@example.com", models.RoleBuyer},
		{"+628123456789", models.RoleBuyer},
		{"ADMIN@ticketchain.io", models.RoleAdmin},
		{"  organizer@events.com  ", models.RoleOrganizer},
	}

	for _, tt := range tests {
		t.Run(tt.identifier, func(t *testing.T) {
			assert.Equal(t, tt.want, ResolveRole(tt.identifier))
		})
	}
}

func TestResolveRoleMarkerOnlyInLocalPart(t *testing.T) {
	// A marker in the domain must not grant the role.
	assert.Equal(t, models.RoleBuyer, ResolveRole("alice@admin-mail.com"))
}

func TestResolveRoleFirstMarkerWins(t *testing.T) {
	assert.Equal(t, models.RoleAdmin, ResolveRole("admin.organizer@site.com"))
}
