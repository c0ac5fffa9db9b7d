package services

import (
	"fmt"
	"testing"

	"github.com/ahmetcoskunkizilkaya/apartment-backend/internal/dto"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnnouncements(t *testing.T) {
	e := newEnv(t)
	svc := NewAnnouncementService(e.db)
	tenant := e.user(t, "Lan", "0912345678")

	_, err := svc.Create(tenant, &dto.CreateAnnouncementRequest{Title: "Hi", Content: "x"})
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = svc.Create(e.admin, &dto.CreateAnnouncementRequest{Title: "Pool", Content: "Closed", MediaType: "image"})
	assert.ErrorIs(t, err, ErrValidation)

	a, err := svc.Create(e.admin, &dto.CreateAnnouncementRequest{
		Title:    "Water outage",
		Content:  "Saturday 8-12",
		Type:     "urgent",
		MediaURL: "https://example.com/ignored.png",
	})
	require.NoError(t, err)
	assert.Equal(t, "none", a.MediaType)
	assert.Empty(t, a.MediaURL)
	assert.Equal(t, "Admin", a.CreatedBy)

	for i := 0; i < 11; i++ {
		_, err := svc.Create(e.admin, &dto.CreateAnnouncementRequest{Title: fmt.Sprintf("Notice %d", i), Content: "..."})
		require.NoError(t, err)
	}
	feed, err := svc.List(tenant)
	require.NoError(t, err)
	assert.Len(t, feed, 10)

	require.NoError(t, svc.Delete(e.admin, a.ID))
	assert.ErrorIs(t, svc.Delete(e.admin, a.ID), ErrNotFound)
}

func TestMarketListings(t *testing.T) {
	e := newEnv(t)
	_, err := e.residents().AddResident(e.admin, "503", &dto.ResidentRequest{Name: "Lan", Phone: "0912345678"})
	require.NoError(t, err)
	svc := NewMarketService(e.db, e.building, NewContentFilter())
	seller := e.user(t, "Lan", "0912345678")
	buyer := e.user(t, "Minh", "0987654321")

	item, err := svc.Create(seller, &dto.CreateMarketItemRequest{Title: "Rice cooker", Price: 350000})
	require.NoError(t, err)
	assert.Equal(t, "503", item.RoomName)
	assert.Equal(t, "0912345678", item.ContactPhone)
	assert.Equal(t, seller.AccountID, item.CreatedBy)

	other, err := svc.Create(buyer, &dto.CreateMarketItemRequest{Title: "Desk", ContactPhone: "098-111-2222"})
	require.NoError(t, err)
	assert.Empty(t, other.RoomName)
	assert.Equal(t, "0981112222", other.ContactPhone)

	_, err = svc.Create(seller, &dto.CreateMarketItemRequest{Title: "Phone", Description: "not a scam"})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.Create(seller, &dto.CreateMarketItemRequest{Title: "Lamp", Price: -1})
	assert.ErrorIs(t, err, ErrValidation)

	items, err := svc.List(buyer)
	require.NoError(t, err)
	assert.Len(t, items, 2)

	assert.ErrorIs(t, svc.Delete(buyer, item.ID), ErrForbidden)
	require.NoError(t, svc.Delete(seller, item.ID))
	require.NoError(t, svc.Delete(e.admin, other.ID))
	assert.ErrorIs(t, svc.Delete(e.admin, uuid.New()), ErrNotFound)
}
