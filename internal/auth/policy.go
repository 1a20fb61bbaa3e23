package auth

import "github.com/ticketchain/ticketchain/internal/models"

// Capability names an operation a route requires. The policy table below is
// the single place role-to-capability grants live; handlers never compare
// role strings themselves.
type Capability string

const (
	CapEventCreate    Capability = "event:create"
	CapEventCancel    Capability = "event:cancel"
	CapEventModerate  Capability = "event:moderate"
	CapTicketPurchase Capability = "ticket:purchase"
	CapTicketResell   Capability = "ticket:resell"
	CapTicketCheckIn  Capability = "ticket:checkin"
	CapGoldenCreate   Capability = "golden:create"
	CapGoldenPurchase Capability = "golden:purchase"
	CapReferralManage Capability = "referral:manage"
	CapArtistVerify   Capability = "artist:verify"
	CapDashboardView  Capability = "dashboard:view"
	CapSupplyCorrect  Capability = "supply:correct"
)

var grants = map[string][]Capability{
	models.RoleOrganizer: {CapEventCreate, CapEventCancel},
	models.RoleBuyer:     {CapTicketPurchase, CapTicketResell, CapGoldenPurchase},
	models.RoleInspector: {CapTicketCheckIn},
	models.RoleArtist:    {CapGoldenCreate, CapTicketPurchase, CapTicketResell},
	models.RolePromoter:  {CapReferralManage, CapTicketPurchase},
}

// Allowed evaluates (role, capability). Admin is a universal grant.
func Allowed(role string, capability Capability) bool {
	if role == models.RoleAdmin {
		return true
	}
	for _, granted := range grants[role] {
		if granted == capability {
			return true
		}
	}
	return false
}
