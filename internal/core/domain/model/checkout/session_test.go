package checkout_test

import (
	"testing"
	"time"

	"checkout/internal/core/domain/model/cart"
	"checkout/internal/core/domain/model/checkout"
	"checkout/internal/core/domain/model/kernel"
	"checkout/internal/core/domain/validation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func snapshotWithItems(t *testing.T) cart.Snapshot {
	t.Helper()
	c, err := cart.NewCart(kernel.NewUUID())
	require.NoError(t, err)
	price, err := kernel.NewMoneyFromString("2.500")
	require.NoError(t, err)
	require.NoError(t, c.AddItem(kernel.NewUUID(), price, 2, ""))
	snapshot, err := c.Snapshot()
	require.NoError(t, err)
	return snapshot
}

func emptySnapshot(t *testing.T) cart.Snapshot {
	t.Helper()
	c, err := cart.NewCart(kernel.NewUUID())
	require.NoError(t, err)
	snapshot, err := c.Snapshot()
	require.NoError(t, err)
	return snapshot
}

func validContact(t *testing.T) checkout.ContactInfo {
	t.Helper()
	contact, err := checkout.NewContactInfo("Fatima", "+973 33123456", "fatima@example.com")
	require.NoError(t, err)
	return contact
}

func validAddressFulfillment(t *testing.T) checkout.Fulfillment {
	t.Helper()
	address, err := checkout.NewAddressInfo("Road 2831", "Building 120", "Seef", "", "", "", "")
	require.NoError(t, err)
	fulfillment, err := checkout.NewDeliveryFulfillment(address, checkout.ImmediateTime())
	require.NoError(t, err)
	return fulfillment
}

func validPickupFulfillment(t *testing.T) checkout.Fulfillment {
	t.Helper()
	branch, err := checkout.NewBranch(kernel.NewUUID(), "City Centre", "Sheikh Khalifa Highway", "+973 17000000", "15-20 minutes")
	require.NoError(t, err)
	fulfillment, err := checkout.NewPickupFulfillment(branch, checkout.ImmediateTime())
	require.NoError(t, err)
	return fulfillment
}

func sessionAtPayment(t *testing.T) *checkout.Session {
	t.Helper()
	session, err := checkout.NewSession(kernel.NewUUID(), kernel.NewUUID(), snapshotWithItems(t))
	require.NoError(t, err)
	require.NoError(t, session.SubmitContact(validContact(t)))
	require.NoError(t, session.SubmitFulfillment(validAddressFulfillment(t)))
	require.NoError(t, session.SubmitPayment(checkout.NewCashPayment()))
	return session
}

func TestNewSession(t *testing.T) {
	t.Run("starts at contact with delivery preselected", func(t *testing.T) {
		cartID := kernel.NewUUID()

		session, err := checkout.NewSession(kernel.NewUUID(), cartID, snapshotWithItems(t))

		require.NoError(t, err)
		require.NoError(t, session.Validate())
		assert.Equal(t, checkout.StepContact, session.Step())
		assert.Equal(t, checkout.FulfillmentTypeDelivery, session.FulfillmentType())
		assert.Equal(t, checkout.SubmissionNotSubmitted, session.SubmissionStatus())
		assert.Equal(t, cartID, session.CartID())
		assert.NoError(t, session.Token().Validate())
	})

	t.Run("allows starting with an empty snapshot", func(t *testing.T) {
		session, err := checkout.NewSession(kernel.NewUUID(), kernel.NewUUID(), emptySnapshot(t))

		require.NoError(t, err)
		assert.True(t, session.Snapshot().IsEmpty())
	})

	t.Run("fails with invalid ids", func(t *testing.T) {
		_, err := checkout.NewSession(kernel.UUID{}, kernel.NewUUID(), snapshotWithItems(t))

		require.Error(t, err)
	})

	t.Run("zero value fails validation", func(t *testing.T) {
		var s checkout.Session

		assert.Equal(t, checkout.ErrSessionIsNotConstructed, s.Validate())
	})
}

func TestSession_SubmitContact(t *testing.T) {
	t.Run("advances to the address step for delivery", func(t *testing.T) {
		session, _ := checkout.NewSession(kernel.NewUUID(), kernel.NewUUID(), snapshotWithItems(t))

		err := session.SubmitContact(validContact(t))

		require.NoError(t, err)
		assert.Equal(t, checkout.StepAddress, session.Step())
		contact, ok := session.Contact()
		require.True(t, ok)
		assert.Equal(t, "Fatima", contact.Name())
	})

	t.Run("rejected outside the contact step", func(t *testing.T) {
		session, _ := checkout.NewSession(kernel.NewUUID(), kernel.NewUUID(), snapshotWithItems(t))
		require.NoError(t, session.SubmitContact(validContact(t)))

		err := session.SubmitContact(validContact(t))

		require.Error(t, err)
	})

	t.Run("invalid contact surfaces field errors", func(t *testing.T) {
		_, err := checkout.NewContactInfo("", "", "bad")

		require.Error(t, err)
		var fieldErrors validation.FieldErrors
		require.ErrorAs(t, err, &fieldErrors)
		assert.Contains(t, fieldErrors, "name")
		assert.Contains(t, fieldErrors, "phone")
		assert.Contains(t, fieldErrors, "email")
	})
}

func TestSession_ChooseFulfillmentType(t *testing.T) {
	t.Run("switching the type discards the captured payload", func(t *testing.T) {
		session, _ := checkout.NewSession(kernel.NewUUID(), kernel.NewUUID(), snapshotWithItems(t))
		require.NoError(t, session.SubmitContact(validContact(t)))
		require.NoError(t, session.SubmitFulfillment(validAddressFulfillment(t)))
		require.NoError(t, session.GoBack())

		err := session.ChooseFulfillmentType(checkout.FulfillmentTypePickup)

		require.NoError(t, err)
		assert.Equal(t, checkout.StepBranch, session.Step())
		_, ok := session.Fulfillment()
		assert.False(t, ok, "address payload must be discarded on switch")
	})

	t.Run("re-choosing the same type keeps the payload", func(t *testing.T) {
		session, _ := checkout.NewSession(kernel.NewUUID(), kernel.NewUUID(), snapshotWithItems(t))
		require.NoError(t, session.SubmitContact(validContact(t)))
		require.NoError(t, session.SubmitFulfillment(validAddressFulfillment(t)))
		require.NoError(t, session.GoBack())

		err := session.ChooseFulfillmentType(checkout.FulfillmentTypeDelivery)

		require.NoError(t, err)
		_, ok := session.Fulfillment()
		assert.True(t, ok)
	})

	t.Run("rejected outside the fulfillment phase", func(t *testing.T) {
		session, _ := checkout.NewSession(kernel.NewUUID(), kernel.NewUUID(), snapshotWithItems(t))

		err := session.ChooseFulfillmentType(checkout.FulfillmentTypePickup)

		require.Error(t, err)
	})
}

func TestSession_SubmitFulfillment(t *testing.T) {
	t.Run("advances to payment", func(t *testing.T) {
		session, _ := checkout.NewSession(kernel.NewUUID(), kernel.NewUUID(), snapshotWithItems(t))
		require.NoError(t, session.SubmitContact(validContact(t)))

		err := session.SubmitFulfillment(validAddressFulfillment(t))

		require.NoError(t, err)
		assert.Equal(t, checkout.StepPayment, session.Step())
	})

	t.Run("payload type must match the chosen type", func(t *testing.T) {
		session, _ := checkout.NewSession(kernel.NewUUID(), kernel.NewUUID(), snapshotWithItems(t))
		require.NoError(t, session.SubmitContact(validContact(t)))

		err := session.SubmitFulfillment(validPickupFulfillment(t))

		require.Error(t, err)
		assert.Equal(t, checkout.StepAddress, session.Step())
	})

	t.Run("pickup works after choosing pickup", func(t *testing.T) {
		session, _ := checkout.NewSession(kernel.NewUUID(), kernel.NewUUID(), snapshotWithItems(t))
		require.NoError(t, session.SubmitContact(validContact(t)))
		require.NoError(t, session.ChooseFulfillmentType(checkout.FulfillmentTypePickup))

		err := session.SubmitFulfillment(validPickupFulfillment(t))

		require.NoError(t, err)
		assert.Equal(t, checkout.StepPayment, session.Step())
	})
}

func TestSession_GoBack(t *testing.T) {
	t.Run("data survives backward navigation", func(t *testing.T) {
		session := sessionAtPayment(t)

		require.NoError(t, session.GoBack()) // Payment -> Address
		assert.Equal(t, checkout.StepAddress, session.Step())
		_, ok := session.Fulfillment()
		assert.True(t, ok)

		require.NoError(t, session.GoBack()) // Address -> Contact
		assert.Equal(t, checkout.StepContact, session.Step())
		_, ok = session.Contact()
		assert.True(t, ok)

		require.NoError(t, session.GoBack()) // Contact -> Contact (no-op)
		assert.Equal(t, checkout.StepContact, session.Step())
	})

	t.Run("forward again without re-entering data", func(t *testing.T) {
		session := sessionAtPayment(t)
		require.NoError(t, session.GoBack())
		require.NoError(t, session.GoBack())

		require.NoError(t, session.SubmitContact(validContact(t)))
		require.NoError(t, session.SubmitFulfillment(validAddressFulfillment(t)))

		assert.Equal(t, checkout.StepPayment, session.Step())
		_, ok := session.Payment()
		assert.True(t, ok, "payment selection survives the round trip")
	})
}

func TestSession_Submission(t *testing.T) {
	t.Run("begin, confirm reaches confirmation exactly once", func(t *testing.T) {
		session := sessionAtPayment(t)
		orderID := kernel.NewUUID()

		require.NoError(t, session.BeginSubmission())
		assert.Equal(t, checkout.SubmissionInFlight, session.SubmissionStatus())

		require.NoError(t, session.ConfirmSubmission(orderID))
		assert.Equal(t, checkout.StepConfirmation, session.Step())
		assert.Equal(t, checkout.SubmissionConsumed, session.SubmissionStatus())
		got, ok := session.OrderID()
		require.True(t, ok)
		assert.Equal(t, orderID, got)

		err := session.BeginSubmission()
		assert.ErrorIs(t, err, checkout.ErrSessionConsumed)
	})

	t.Run("second begin while in flight is rejected", func(t *testing.T) {
		session := sessionAtPayment(t)
		require.NoError(t, session.BeginSubmission())

		err := session.BeginSubmission()

		assert.ErrorIs(t, err, checkout.ErrSubmissionInFlight)
	})

	t.Run("in-flight session rejects edits", func(t *testing.T) {
		session := sessionAtPayment(t)
		require.NoError(t, session.BeginSubmission())

		assert.ErrorIs(t, session.GoBack(), checkout.ErrSubmissionInFlight)
		assert.ErrorIs(t, session.SubmitPayment(checkout.NewCashPayment()), checkout.ErrSubmissionInFlight)
	})

	t.Run("failed submission unlocks with data intact", func(t *testing.T) {
		session := sessionAtPayment(t)
		require.NoError(t, session.BeginSubmission())

		require.NoError(t, session.FailSubmission())

		assert.Equal(t, checkout.SubmissionNotSubmitted, session.SubmissionStatus())
		assert.Equal(t, checkout.StepPayment, session.Step())
		_, ok := session.Payment()
		assert.True(t, ok)

		require.NoError(t, session.BeginSubmission(), "retry allowed after failure")
	})

	t.Run("token never changes across attempts", func(t *testing.T) {
		session := sessionAtPayment(t)
		token := session.Token()

		require.NoError(t, session.BeginSubmission())
		require.NoError(t, session.FailSubmission())
		require.NoError(t, session.BeginSubmission())

		assert.Equal(t, token, session.Token())
	})

	t.Run("begin without completed payment step fails", func(t *testing.T) {
		session, _ := checkout.NewSession(kernel.NewUUID(), kernel.NewUUID(), snapshotWithItems(t))

		err := session.BeginSubmission()

		require.Error(t, err)
		assert.Equal(t, checkout.SubmissionNotSubmitted, session.SubmissionStatus())
	})

	t.Run("empty cart resets to contact", func(t *testing.T) {
		session := sessionAtPayment(t)
		require.NoError(t, session.RefreshSnapshot(emptySnapshot(t)))

		err := session.BeginSubmission()

		assert.ErrorIs(t, err, checkout.ErrEmptyCart)
		assert.Equal(t, checkout.StepContact, session.Step())
		assert.Equal(t, checkout.SubmissionNotSubmitted, session.SubmissionStatus())
	})
}

func TestSession_Abandon(t *testing.T) {
	t.Run("allowed at any non-terminal step", func(t *testing.T) {
		session := sessionAtPayment(t)

		assert.NoError(t, session.Abandon())
	})

	t.Run("rejected once consumed", func(t *testing.T) {
		session := sessionAtPayment(t)
		require.NoError(t, session.BeginSubmission())
		require.NoError(t, session.ConfirmSubmission(kernel.NewUUID()))

		assert.ErrorIs(t, session.Abandon(), checkout.ErrSessionConsumed)
	})
}

func TestRestoreSession(t *testing.T) {
	t.Run("round trips a mid-flow session", func(t *testing.T) {
		original := sessionAtPayment(t)
		contact, _ := original.Contact()
		fulfillment, _ := original.Fulfillment()
		payment, _ := original.Payment()

		restored, err := checkout.RestoreSession(
			original.ID(),
			original.CartID(),
			original.Token(),
			original.Snapshot(),
			&contact,
			original.FulfillmentType(),
			&fulfillment,
			&payment,
			nil,
			original.Step(),
			original.SubmissionStatus(),
		)

		require.NoError(t, err)
		assert.Equal(t, original.Token(), restored.Token())
		assert.Equal(t, checkout.StepPayment, restored.Step())
		require.NoError(t, restored.BeginSubmission())
	})

	t.Run("fails with invalid step", func(t *testing.T) {
		_, err := checkout.RestoreSession(
			kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), snapshotWithItems(t),
			nil, checkout.FulfillmentTypeDelivery, nil, nil, nil,
			checkout.StepUnknown, checkout.SubmissionNotSubmitted,
		)

		require.Error(t, err)
	})
}

func TestFulfillment_EstimatedTime(t *testing.T) {
	t.Run("immediate delivery uses the delivery band", func(t *testing.T) {
		assert.Equal(t, checkout.DeliveryEstimateBand, validAddressFulfillment(t).EstimatedTime())
	})

	t.Run("immediate pickup uses the branch estimate", func(t *testing.T) {
		assert.Equal(t, "15-20 minutes", validPickupFulfillment(t).EstimatedTime())
	})

	t.Run("scheduled fulfillment uses the scheduled timestamp", func(t *testing.T) {
		now := time.Date(2025, time.June, 15, 12, 0, 0, 0, time.UTC)
		at := now.Add(2 * time.Hour)
		selection, err := checkout.NewScheduledTime(at, now)
		require.NoError(t, err)
		address, err := checkout.NewAddressInfo("Road 2831", "Building 120", "Seef", "", "", "", "")
		require.NoError(t, err)
		fulfillment, err := checkout.NewDeliveryFulfillment(address, selection)
		require.NoError(t, err)

		assert.Equal(t, at.Format(time.RFC3339), fulfillment.EstimatedTime())
	})
}

func TestNewScheduledTime(t *testing.T) {
	now := time.Date(2025, time.June, 15, 12, 0, 0, 0, time.UTC)

	t.Run("rejects times inside the lead window", func(t *testing.T) {
		_, err := checkout.NewScheduledTime(now.Add(10*time.Minute), now)

		assert.ErrorIs(t, err, checkout.ErrInvalidScheduleTime)
	})

	t.Run("accepts the exact lead boundary", func(t *testing.T) {
		_, err := checkout.NewScheduledTime(now.Add(checkout.MinimumScheduleLead), now)

		assert.NoError(t, err)
	})

	t.Run("rejects past times", func(t *testing.T) {
		_, err := checkout.NewScheduledTime(now.Add(-time.Hour), now)

		assert.ErrorIs(t, err, checkout.ErrInvalidScheduleTime)
	})
}

func TestCard(t *testing.T) {
	now := time.Date(2025, time.June, 15, 12, 0, 0, 0, time.UTC)

	t.Run("normalizes and masks the number", func(t *testing.T) {
		card, err := checkout.NewCard("4111-1111-1111-1111", "FATIMA", "12/27", "123", now)

		require.NoError(t, err)
		assert.Equal(t, "4111111111111111", card.Number())
		assert.Equal(t, "**** **** **** 1111", card.MaskedNumber())
	})

	t.Run("expired card surfaces a field error", func(t *testing.T) {
		_, err := checkout.NewCard("4111111111111111", "FATIMA", "01/20", "123", now)

		require.Error(t, err)
		var fieldErrors validation.FieldErrors
		require.ErrorAs(t, err, &fieldErrors)
		assert.Contains(t, fieldErrors, "expiryDate")
	})
}

func TestPaymentSelection_Summary(t *testing.T) {
	now := time.Date(2025, time.June, 15, 12, 0, 0, 0, time.UTC)

	t.Run("cash", func(t *testing.T) {
		assert.Equal(t, "Cash", checkout.NewCashPayment().Summary())
	})

	t.Run("card ending in last four digits", func(t *testing.T) {
		card, err := checkout.NewCard("4111111111111111", "FATIMA", "12/27", "123", now)
		require.NoError(t, err)
		payment, err := checkout.NewCardPayment(card)
		require.NoError(t, err)

		assert.Equal(t, "Card ending 1111", payment.Summary())
		_, hasCard := payment.Card()
		assert.True(t, hasCard)
	})

	t.Run("cash carries no card data", func(t *testing.T) {
		_, hasCard := checkout.NewCashPayment().Card()

		assert.False(t, hasCard)
	})
}
