// internal/domain/order/entity_test.go
package order

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cartdom "vergilius/internal/domain/cart"
)

func sampleItems() []cartdom.LineItem {
	return []cartdom.LineItem{
		{ID: "idromele-07l", Name: "Idromele Classico", Variant: "0.7l", Price: 25.00, Quantity: 2},
		{ID: "idromele-speziato-05l", Name: "Idromele Speziato", Variant: "0.5l", Price: 22.00, Quantity: 1},
	}
}

func TestNew(t *testing.T) {
	o, err := New("ord-1", "buyer-1", "Laura", sampleItems())
	require.NoError(t, err)

	assert.Equal(t, "ord-1", o.ID)
	assert.Equal(t, "buyer-1", o.UserID)
	assert.Equal(t, "Laura", o.UserName)
	assert.Equal(t, StatusPending, o.Status)
	assert.Equal(t, 2*25.00+22.00, o.Total)
	assert.True(t, o.CreatedAt.IsZero(), "createdAt is store-assigned")
}

func TestNew_Validation(t *testing.T) {
	_, err := New("", "buyer-1", "", sampleItems())
	assert.ErrorIs(t, err, ErrInvalidID)

	_, err = New("ord-1", " ", "", sampleItems())
	assert.ErrorIs(t, err, ErrInvalidUserID)

	_, err = New("ord-1", "buyer-1", "", nil)
	assert.ErrorIs(t, err, ErrInvalidItems)

	_, err = New("ord-1", "buyer-1", "", []cartdom.LineItem{{ID: "", Quantity: 1}})
	assert.ErrorIs(t, err, ErrInvalidItem)

	_, err = New("ord-1", "buyer-1", "", []cartdom.LineItem{{ID: "x", Quantity: 0}})
	assert.ErrorIs(t, err, ErrInvalidItem)

	_, err = New("ord-1", "buyer-1", "", []cartdom.LineItem{{ID: "x", Quantity: 1, Price: -0.01}})
	assert.ErrorIs(t, err, ErrInvalidItem)
}

func TestNew_ItemsAreCopied(t *testing.T) {
	items := sampleItems()
	o, err := New("ord-1", "buyer-1", "", items)
	require.NoError(t, err)

	items[0].Quantity = 99
	assert.Equal(t, 2, o.Items[0].Quantity)
}

func TestNew_TotalDerivedNotTrusted(t *testing.T) {
	o, err := New("ord-1", "buyer-1", "", []cartdom.LineItem{
		{ID: "idromele-barrique-07l", Price: 38.00, Quantity: 3},
	})
	require.NoError(t, err)
	assert.Equal(t, 114.00, o.Total)
}
