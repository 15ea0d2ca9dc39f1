package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BoxScheduler/pkg/ptr"
)

func TestOpenCart_SeedsOfferingAtRecordedPrice(t *testing.T) {
	offering := &Offering{ID: 7, Name: "Massage", Price: 6000, Kind: OfferingTopLevel}
	appointment := &Appointment{ID: 1, OfferingID: ptr.Ptr(int64(7)), Price: 5000, ClientID: ptr.Ptr(int64(3))}

	cart, err := OpenCart(appointment, offering)
	require.NoError(t, err)

	require.Len(t, cart.Items, 1)
	assert.Equal(t, LineOffering, cart.Items[0].Line.Kind())
	assert.Equal(t, int64(7), cart.Items[0].Line.RefID())
	assert.Equal(t, 1, cart.Items[0].Quantity)
	assert.Equal(t, Money(5000), cart.Items[0].UnitPrice)
	assert.Equal(t, Money(5000), cart.CartTotal())
	assert.Equal(t, ptr.Ptr(int64(3)), cart.ClientID)
}

func TestOpenCart_SubOfferingLine(t *testing.T) {
	offering := &Offering{ID: 8, Name: "Hot stones", Kind: OfferingSub, ParentID: ptr.Ptr(int64(7))}

	cart, err := OpenCart(&Appointment{ID: 1, Price: 1500}, offering)
	require.NoError(t, err)

	require.Len(t, cart.Items, 1)
	line, ok := cart.Items[0].Line.(SubOfferingLine)
	require.True(t, ok)
	assert.Equal(t, int64(7), line.ParentID)
}

func TestOpenCart_WithoutOffering(t *testing.T) {
	cart, err := OpenCart(&Appointment{ID: 1}, nil)
	require.NoError(t, err)

	assert.Empty(t, cart.Items)
	assert.Equal(t, Money(0), cart.CartTotal())
}

func TestCart_SetQuantity(t *testing.T) {
	cart := &Cart{}
	require.NoError(t, cart.AddItem(ProductLine{ProductID: 1, ProductName: "Oil", Price: 1000}))
	require.NoError(t, cart.AddItem(ProductLine{ProductID: 2, ProductName: "Towel", Price: 250}))

	require.NoError(t, cart.SetQuantity(0, 3))

	assert.Equal(t, Money(3000), cart.Items[0].Subtotal())
	assert.Equal(t, Money(3250), cart.CartTotal())
}

func TestCart_SetQuantityRejectsInvalid(t *testing.T) {
	cart := &Cart{}
	require.NoError(t, cart.AddItem(ProductLine{ProductID: 1, Price: 1000}))

	err := cart.SetQuantity(0, 0)
	assert.True(t, errors.Is(err, ErrValidation))

	err = cart.SetQuantity(1, 2)
	assert.True(t, errors.Is(err, ErrValidation))

	assert.Equal(t, 1, cart.Items[0].Quantity)
}

func TestCart_Payments(t *testing.T) {
	cart := &Cart{}

	require.NoError(t, cart.AddPayment(Payment{MethodID: 1, Amount: 3000}))
	require.NoError(t, cart.AddPayment(Payment{MethodID: 2, Amount: 2000}))
	assert.Equal(t, Money(5000), cart.PaymentsTotal())

	assert.ErrorIs(t, cart.AddPayment(Payment{MethodID: 1, Amount: 0}), ErrValidation)
	assert.ErrorIs(t, cart.AddPayment(Payment{MethodID: 1, Amount: -5}), ErrValidation)

	require.NoError(t, cart.RemovePayment(0))
	assert.Equal(t, Money(2000), cart.PaymentsTotal())
	assert.ErrorIs(t, cart.RemovePayment(5), ErrValidation)
}

func TestCart_CheckBalanceIsStrict(t *testing.T) {
	cart := &Cart{}
	require.NoError(t, cart.AddItem(OfferingLine{OfferingID: 1, Price: 5000}))
	require.NoError(t, cart.AddPayment(Payment{MethodID: 1, Amount: 4999}))

	err := cart.CheckBalance()
	var unbalanced *UnbalancedSettlementError
	require.ErrorAs(t, err, &unbalanced)
	assert.Equal(t, Money(5000), unbalanced.CartTotal)
	assert.Equal(t, Money(4999), unbalanced.PaymentsTotal)
	assert.ErrorIs(t, err, ErrUnbalancedSettlement)

	require.NoError(t, cart.AddPayment(Payment{MethodID: 1, Amount: 1}))
	assert.NoError(t, cart.CheckBalance())
}

func TestNewSale_Snapshot(t *testing.T) {
	cart := &Cart{AppointmentID: 4, ClientID: ptr.Ptr(int64(2))}
	require.NoError(t, cart.AddItem(OfferingLine{OfferingID: 1, OfferingName: "Massage", Price: 4000}))
	require.NoError(t, cart.AddItem(ProductLine{ProductID: 9, ProductName: "Oil", Price: 500}))
	require.NoError(t, cart.SetQuantity(1, 2))
	require.NoError(t, cart.AddPayment(Payment{MethodID: 1, Amount: 5000}))

	sale := NewSale(cart, "R-1")

	assert.Equal(t, int64(4), sale.AppointmentID)
	assert.Equal(t, Money(5000), sale.Total)
	require.Len(t, sale.Items, 2)
	assert.Equal(t, SaleItem{Kind: LineProduct, RefID: 9, Name: "Oil", Quantity: 2, UnitPrice: 500, Subtotal: 1000}, sale.Items[1])

	// the snapshot does not follow later cart edits
	cart.Payments[0].Amount = 1
	assert.Equal(t, Money(5000), sale.Payments[0].Amount)
}

func TestNewSale_DetachesPaymentReferences(t *testing.T) {
	cart := &Cart{AppointmentID: 4, ClientID: ptr.Ptr(int64(2))}
	require.NoError(t, cart.AddItem(ProductLine{ProductID: 9, Price: 500}))
	require.NoError(t, cart.AddPayment(Payment{MethodID: 1, Amount: 500, Reference: ptr.Ptr("TX-1")}))

	sale := NewSale(cart, "R-2")

	*cart.Payments[0].Reference = "TX-2"
	*cart.ClientID = 99

	require.NotNil(t, sale.Payments[0].Reference)
	assert.Equal(t, "TX-1", *sale.Payments[0].Reference)
	assert.Equal(t, int64(2), *sale.ClientID)
}

func TestCart_RejectsAmountsThatWouldOverflow(t *testing.T) {
	t.Run("quantity on a large price", func(t *testing.T) {
		cart := &Cart{}
		require.NoError(t, cart.AddItem(ProductLine{ProductID: 1, Price: 1 << 34}))

		err := cart.SetQuantity(0, 1<<30)

		var validationErr *ValidationError
		require.ErrorAs(t, err, &validationErr)
		assert.Equal(t, "quantity", validationErr.Field)
		assert.Equal(t, 1, cart.Items[0].Quantity)
		assert.Equal(t, Money(1<<34), cart.CartTotal())
		assert.Error(t, cart.CheckBalance())
	})

	t.Run("quantity above the line limit", func(t *testing.T) {
		cart := &Cart{}
		require.NoError(t, cart.AddItem(ProductLine{ProductID: 1, Price: 100}))

		assert.ErrorIs(t, cart.SetQuantity(0, MaxQuantity+1), ErrValidation)
		assert.NoError(t, cart.SetQuantity(0, MaxQuantity))
	})

	t.Run("cart total above the limit", func(t *testing.T) {
		cart := &Cart{}
		require.NoError(t, cart.AddItem(ProductLine{ProductID: 1, Price: MaxAmount}))
		require.NoError(t, cart.AddItem(ProductLine{ProductID: 2, Price: MaxAmount}))

		require.NoError(t, cart.SetQuantity(0, int(MaxCartTotal/MaxAmount)-1))
		assert.Equal(t, MaxCartTotal, cart.CartTotal())

		assert.ErrorIs(t, cart.SetQuantity(1, 2), ErrValidation)
		assert.ErrorIs(t, cart.AddItem(ProductLine{ProductID: 3, Price: 1}), ErrValidation)
		assert.Equal(t, MaxCartTotal, cart.CartTotal())
	})

	t.Run("unit price", func(t *testing.T) {
		cart := &Cart{}

		assert.ErrorIs(t, cart.AddItem(ProductLine{ProductID: 1, Price: MaxAmount + 1}), ErrValidation)
		assert.ErrorIs(t, cart.AddItem(ProductLine{ProductID: 1, Price: -1}), ErrValidation)
		assert.Empty(t, cart.Items)
	})

	t.Run("payment", func(t *testing.T) {
		cart := &Cart{}

		assert.ErrorIs(t, cart.AddPayment(Payment{MethodID: 1, Amount: MaxAmount + 1}), ErrValidation)
		assert.ErrorIs(t, cart.AddPayment(Payment{MethodID: 1, Amount: 1 << 62}), ErrValidation)
		assert.Empty(t, cart.Payments)
	})

	t.Run("seed price", func(t *testing.T) {
		offering := &Offering{ID: 7, Kind: OfferingTopLevel}

		_, err := OpenCart(&Appointment{ID: 1, Price: MaxAmount + 1}, offering)

		assert.ErrorIs(t, err, ErrValidation)
	})
}

func TestMoney_String(t *testing.T) {
	assert.Equal(t, "50.00", Money(5000).String())
	assert.Equal(t, "0.05", Money(5).String())
	assert.Equal(t, "-12.34", Money(-1234).String())
}
