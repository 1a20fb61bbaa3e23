package settlement

import (
	"context"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/ticketchain/ticketchain/internal/chain"
	"github.com/ticketchain/ticketchain/internal/models"
)

// These tests run the lifecycle flows against a real Postgres, since the
// FOR UPDATE locks and conditional updates they depend on have no
// equivalent on lighter stand-ins. They skip unless TEST_DATABASE_DSN
// points at a disposable database, e.g.
//
//	TEST_DATABASE_DSN="host=localhost user=postgres dbname=ticketchain_test port=5432 sslmode=disable"

func integrationEngine(t *testing.T) (*Engine, *gorm.DB) {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_DSN")
	if dsn == "" {
		t.Skip("TEST_DATABASE_DSN not set")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Event{},
		&models.TicketType{},
		&models.Ticket{},
		&models.Listing{},
		&models.Transaction{},
		&models.Referral{},
	))

	return NewEngine(db, chain.NewMock(nil), d("0.05"), nil), db
}

func seedUser(t *testing.T, db *gorm.DB, role string) models.User {
	t.Helper()
	user := models.User{
		Identifier:    uuid.NewString() + "@" + role + ".test",
		Role:          role,
		WalletAddress: "0x" + uuid.NewString(),
	}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func seedApprovedEvent(t *testing.T, db *gorm.DB, royalty models.RoyaltySplit) models.Event {
	t.Helper()
	organizer := seedUser(t, db, models.RoleOrganizer)
	event := models.Event{
		Title:       "Integration Night",
		Description: "lifecycle test event",
		Venue:       "Test Arena",
		City:        "Jakarta",
		StartTime:   time.Now().Add(24 * time.Hour),
		EndTime:     time.Now().Add(28 * time.Hour),
		Status:      models.EventApproved,
		Royalty:     royalty,
		OrganizerID: organizer.ID,
	}
	require.NoError(t, db.Create(&event).Error)
	return event
}

func seedTicketType(t *testing.T, db *gorm.DB, eventID uuid.UUID, price decimal.Decimal, supply, maxPerWallet int) models.TicketType {
	t.Helper()
	tt := models.TicketType{
		Name:            "GA",
		Price:           price,
		TotalSupply:     supply,
		AvailableSupply: supply,
		MaxPerWallet:    maxPerWallet,
		OnSale:          true,
		EventID:         eventID,
	}
	require.NoError(t, db.Create(&tt).Error)
	return tt
}

func buyOne(t *testing.T, engine *Engine, buyer models.User, ticketTypeID uuid.UUID) models.Ticket {
	t.Helper()
	result, err := engine.Purchase(context.Background(), PurchaseInput{
		BuyerID:      buyer.ID,
		BuyerAddress: buyer.WalletAddress,
		TicketTypeID: ticketTypeID,
		Quantity:     1,
	})
	require.NoError(t, err)
	require.Len(t, result.Tickets, 1)
	return result.Tickets[0]
}

func TestPurchaseSupplyAndWalletLimit(t *testing.T) {
	engine, db := integrationEngine(t)
	ctx := context.Background()

	event := seedApprovedEvent(t, db, models.RoyaltySplit{})
	tt := seedTicketType(t, db, event.ID, d("100"), 2, 1)
	buyerA := seedUser(t, db, models.RoleBuyer)
	buyerB := seedUser(t, db, models.RoleBuyer)

	_, err := engine.Purchase(ctx, PurchaseInput{
		BuyerID: buyerA.ID, BuyerAddress: buyerA.WalletAddress,
		TicketTypeID: tt.ID, Quantity: 1,
	})
	require.NoError(t, err)

	var reloaded models.TicketType
	require.NoError(t, db.First(&reloaded, "id = ?", tt.ID).Error)
	assert.Equal(t, 1, reloaded.AvailableSupply)

	_, err = engine.Purchase(ctx, PurchaseInput{
		BuyerID: buyerA.ID, BuyerAddress: buyerA.WalletAddress,
		TicketTypeID: tt.ID, Quantity: 1,
	})
	assert.ErrorIs(t, err, ErrWalletLimitExceeded)

	_, err = engine.Purchase(ctx, PurchaseInput{
		BuyerID: buyerB.ID, BuyerAddress: buyerB.WalletAddress,
		TicketTypeID: tt.ID, Quantity: 2,
	})
	assert.ErrorIs(t, err, ErrInsufficientSupply)
}

func TestConcurrentPurchasesNeverOversell(t *testing.T) {
	engine, db := integrationEngine(t)

	event := seedApprovedEvent(t, db, models.RoyaltySplit{})
	tt := seedTicketType(t, db, event.ID, d("100"), 1, 1)
	buyers := []models.User{
		seedUser(t, db, models.RoleBuyer),
		seedUser(t, db, models.RoleBuyer),
	}

	errs := make([]error, len(buyers))
	var wg sync.WaitGroup
	for i, buyer := range buyers {
		wg.Add(1)
		go func(i int, buyer models.User) {
			defer wg.Done()
			_, errs[i] = engine.Purchase(context.Background(), PurchaseInput{
				BuyerID: buyer.ID, BuyerAddress: buyer.WalletAddress,
				TicketTypeID: tt.ID, Quantity: 1,
			})
		}(i, buyer)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
		} else {
			assert.ErrorIs(t, err, ErrInsufficientSupply)
		}
	}
	assert.Equal(t, 1, succeeded)

	var reloaded models.TicketType
	require.NoError(t, db.First(&reloaded, "id = ?", tt.ID).Error)
	assert.Equal(t, 0, reloaded.AvailableSupply)

	var minted int64
	require.NoError(t, db.Model(&models.Ticket{}).
		Where("ticket_type_id = ?", tt.ID).Count(&minted).Error)
	assert.EqualValues(t, 1, minted)
}

func TestResaleRoundTrip(t *testing.T) {
	engine, db := integrationEngine(t)
	ctx := context.Background()

	event := seedApprovedEvent(t, db, models.RoyaltySplit{OrganizerPct: 5, ArtistPct: 3, VenuePct: 2})
	tt := seedTicketType(t, db, event.ID, d("100"), 2, 2)
	seller := seedUser(t, db, models.RoleBuyer)
	buyer := seedUser(t, db, models.RoleBuyer)

	ticket := buyOne(t, engine, seller, tt.ID)

	listing, err := engine.List(ctx, ListInput{
		SellerID: seller.ID, TicketID: ticket.ID, Price: d("150"),
	})
	require.NoError(t, err)
	assert.Equal(t, models.ListingActive, listing.Status)

	var listed models.Ticket
	require.NoError(t, db.First(&listed, "id = ?", ticket.ID).Error)
	assert.Equal(t, models.TicketListed, listed.Status)

	result, err := engine.PurchaseListing(ctx, ResalePurchaseInput{
		BuyerID: buyer.ID, BuyerAddress: buyer.WalletAddress, ListingID: listing.ID,
	})
	require.NoError(t, err)

	assert.Equal(t, models.TicketActive, result.Ticket.Status)
	assert.Equal(t, buyer.ID, result.Ticket.BuyerID)
	assert.Equal(t, buyer.WalletAddress, result.Ticket.OwnerAddress)
	assert.True(t, result.Ticket.PricePaid.Equal(d("150")))
	assert.Equal(t, models.ListingSold, result.Listing.Status)
	assert.NotNil(t, result.Listing.SoldAt)

	txn := result.Transaction
	assert.True(t, txn.IsResale)
	sum := txn.PlatformFee.Add(txn.RoyaltyAmount).Add(txn.SellerAmount)
	assert.True(t, sum.Equal(d("150")), "fee split sums to %s", sum)
}

func TestCancelThenRelistReusesListingRow(t *testing.T) {
	engine, db := integrationEngine(t)
	ctx := context.Background()

	event := seedApprovedEvent(t, db, models.RoyaltySplit{})
	tt := seedTicketType(t, db, event.ID, d("100"), 1, 1)
	seller := seedUser(t, db, models.RoleBuyer)

	ticket := buyOne(t, engine, seller, tt.ID)

	first, err := engine.List(ctx, ListInput{SellerID: seller.ID, TicketID: ticket.ID, Price: d("150")})
	require.NoError(t, err)
	require.NoError(t, engine.CancelListing(ctx, seller.ID, first.ID))

	var cancelled models.Ticket
	require.NoError(t, db.First(&cancelled, "id = ?", ticket.ID).Error)
	assert.Equal(t, models.TicketActive, cancelled.Status)

	second, err := engine.List(ctx, ListInput{SellerID: seller.ID, TicketID: ticket.ID, Price: d("175")})
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, models.ListingActive, second.Status)
	assert.True(t, second.Price.Equal(d("175")))
	assert.Nil(t, second.SoldAt)
}

func TestListRejectsSecondActiveListing(t *testing.T) {
	engine, db := integrationEngine(t)
	ctx := context.Background()

	event := seedApprovedEvent(t, db, models.RoyaltySplit{})
	tt := seedTicketType(t, db, event.ID, d("100"), 1, 1)
	seller := seedUser(t, db, models.RoleBuyer)

	ticket := buyOne(t, engine, seller, tt.ID)

	_, err := engine.List(ctx, ListInput{SellerID: seller.ID, TicketID: ticket.ID, Price: d("150")})
	require.NoError(t, err)

	_, err = engine.List(ctx, ListInput{SellerID: seller.ID, TicketID: ticket.ID, Price: d("200")})
	assert.ErrorIs(t, err, ErrAlreadyListed)

	var active int64
	require.NoError(t, db.Model(&models.Listing{}).
		Where("ticket_id = ? AND status = ?", ticket.ID, models.ListingActive).
		Count(&active).Error)
	assert.EqualValues(t, 1, active)
}

func TestCheckInIsIdempotent(t *testing.T) {
	engine, db := integrationEngine(t)
	ctx := context.Background()

	event := seedApprovedEvent(t, db, models.RoyaltySplit{})
	tt := seedTicketType(t, db, event.ID, d("100"), 1, 1)
	buyer := seedUser(t, db, models.RoleBuyer)
	inspector := seedUser(t, db, models.RoleInspector)

	ticket := buyOne(t, engine, buyer, tt.ID)

	first, err := engine.CheckIn(ctx, CheckInInput{InspectorID: inspector.ID, TicketID: ticket.ID})
	require.NoError(t, err)
	assert.Equal(t, models.TicketUsed, first.Ticket.Status)
	require.NotNil(t, first.UsedAt)

	second, err := engine.CheckIn(ctx, CheckInInput{InspectorID: uuid.New(), TicketID: ticket.ID})
	assert.ErrorIs(t, err, ErrTicketUsed)
	require.NotNil(t, second.UsedAt)
	require.NotNil(t, second.CheckedInBy)
	assert.Equal(t, inspector.ID, *second.CheckedInBy)

	var reloaded models.Ticket
	require.NoError(t, db.First(&reloaded, "id = ?", ticket.ID).Error)
	assert.Equal(t, models.TicketUsed, reloaded.Status)
}

func TestCheckInRejectsListedTicket(t *testing.T) {
	engine, db := integrationEngine(t)
	ctx := context.Background()

	event := seedApprovedEvent(t, db, models.RoyaltySplit{})
	tt := seedTicketType(t, db, event.ID, d("100"), 1, 1)
	seller := seedUser(t, db, models.RoleBuyer)
	inspector := seedUser(t, db, models.RoleInspector)

	ticket := buyOne(t, engine, seller, tt.ID)
	_, err := engine.List(ctx, ListInput{SellerID: seller.ID, TicketID: ticket.ID, Price: d("150")})
	require.NoError(t, err)

	_, err = engine.CheckIn(ctx, CheckInInput{InspectorID: inspector.ID, TicketID: ticket.ID})
	assert.ErrorIs(t, err, ErrTicketListed)
}

func TestCancelListingFailsOnBrokenTicketState(t *testing.T) {
	engine, db := integrationEngine(t)
	ctx := context.Background()

	event := seedApprovedEvent(t, db, models.RoyaltySplit{})
	tt := seedTicketType(t, db, event.ID, d("100"), 1, 1)
	seller := seedUser(t, db, models.RoleBuyer)

	ticket := buyOne(t, engine, seller, tt.ID)
	listing, err := engine.List(ctx, ListInput{SellerID: seller.ID, TicketID: ticket.ID, Price: d("150")})
	require.NoError(t, err)

	// Force the ticket out of LISTED behind the listing's back; the cancel
	// must refuse to touch the pair and roll back.
	require.NoError(t, db.Model(&models.Ticket{}).
		Where("id = ?", ticket.ID).
		Update("status", models.TicketActive).Error)

	err = engine.CancelListing(ctx, seller.ID, listing.ID)
	assert.ErrorIs(t, err, ErrInvalidState)

	var reloaded models.Listing
	require.NoError(t, db.First(&reloaded, "id = ?", listing.ID).Error)
	assert.Equal(t, models.ListingActive, reloaded.Status)
}
