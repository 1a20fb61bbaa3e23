package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ticketchain/ticketchain/internal/models"
)

func TestAllowedAdminHasEveryCapability(t *testing.T) {
	capabilities := []Capability{
		CapEventCreate, CapEventCancel, CapEventModerate,
		CapTicketPurchase, CapTicketResell, CapTicketCheckIn,
		CapGoldenCreate, CapGoldenPurchase, CapReferralManage,
		CapArtistVerify, CapDashboardView, CapSupplyCorrect,
	}

	for _, capability := range capabilities {
		assert.True(t, Allowed(models.RoleAdmin, capability), "admin missing %s", capability)
	}
}

func TestAllowedRoleGrants(t *testing.T) {
	tests := []struct {
		role       string
		capability Capability
		want       bool
	}{
		{models.RoleOrganizer, CapEventCreate, true},
		{models.RoleOrganizer, CapEventModerate, false},
		{models.RoleBuyer, CapTicketPurchase, true},
		{models.RoleBuyer, CapTicketResell, true},
		{models.RoleBuyer, CapGoldenPurchase, true},
		{models.RoleBuyer, CapTicketCheckIn, false},
		{models.RoleInspector, CapTicketCheckIn, true},
		{models.RoleInspector, CapTicketPurchase, false},
		{models.RoleArtist, CapGoldenCreate, true},
		{models.RoleArtist, CapArtistVerify, false},
		{models.RolePromoter, CapReferralManage, true},
		{models.RolePromoter, CapEventCreate, false},
	}

	for _, tt := range tests {
		t.Run(tt.role+"/"+string(tt.capability), func(t *testing.T) {
			assert.Equal(t, tt.want, Allowed(tt.role, tt.capability))
		})
	}
}

func TestAllowedUnknownRole(t *testing.T) {
	assert.False(t, Allowed("ghost", CapTicketPurchase))
}
