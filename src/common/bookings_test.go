package common

import (
	"testing"
	"time"

	"tps/src/db"
	"tps/src/types"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

func TestDerivePaymentState(t *testing.T) {
	state := DerivePaymentState(1000, 0)
	assert.Equal(t, types.PAYMENT_PENDING, state.PaymentStatus)
	assert.Equal(t, float64(1000), state.RemainingBalance)

	state = DerivePaymentState(1000, 300)
	assert.Equal(t, types.PAYMENT_PARTIAL, state.PaymentStatus)
	assert.Equal(t, float64(700), state.RemainingBalance)

	state = DerivePaymentState(1000, 1000)
	assert.Equal(t, types.PAYMENT_PAID, state.PaymentStatus)
	assert.Equal(t, float64(0), state.RemainingBalance)

	// Overpayment never drives the balance negative.
	state = DerivePaymentState(1000, 1500)
	assert.Equal(t, types.PAYMENT_PAID, state.PaymentStatus)
	assert.Equal(t, float64(0), state.RemainingBalance)

	// A zero-amount booking is settled from the start.
	state = DerivePaymentState(0, 0)
	assert.Equal(t, types.PAYMENT_PAID, state.PaymentStatus)
	assert.Equal(t, float64(0), state.RemainingBalance)
}

func TestBookingNumberFormat(t *testing.T) {
	assert.Equal(t, "BK-001", FormatBookingNumber(1))
	assert.Equal(t, "BK-042", FormatBookingNumber(42))
	assert.Equal(t, "BK-999", FormatBookingNumber(999))
	assert.Equal(t, "BK-1000", FormatBookingNumber(1000))
}

func TestParseBookingNumber(t *testing.T) {
	n, ok := ParseBookingNumber("BK-042")
	assert.True(t, ok)
	assert.Equal(t, 42, n)

	n, ok = ParseBookingNumber("BK-1000")
	assert.True(t, ok)
	assert.Equal(t, 1000, n)

	_, ok = ParseBookingNumber("XX-001")
	assert.False(t, ok)

	_, ok = ParseBookingNumber("BK-abc")
	assert.False(t, ok)

	_, ok = ParseBookingNumber("")
	assert.False(t, ok)
}

func TestFormatGuests(t *testing.T) {
	assert.Equal(t, "2 Adults, 1 Child", FormatGuests(2, 1))
	assert.Equal(t, "1 Adult", FormatGuests(1, 0))
	assert.Equal(t, "1 Adult, 2 Children", FormatGuests(1, 2))
	assert.Equal(t, "3 Children", FormatGuests(0, 3))
	assert.Equal(t, "1 Adult", FormatGuests(0, 0))
}

func TestIsAllowedTransition(t *testing.T) {
	known := []types.BookingStatus{
		types.BOOKING_PENDING,
		types.BOOKING_CONFIRMED,
		types.BOOKING_CANCELLED,
		types.BOOKING_COMPLETED,
	}
	for _, from := range known {
		for _, to := range known {
			assert.Truef(t, IsAllowedTransition(from, to), "%s -> %s", from, to)
		}
	}
	assert.False(t, IsAllowedTransition("archived", types.BOOKING_PENDING))
	assert.False(t, IsAllowedTransition(types.BOOKING_PENDING, "archived"))
	assert.False(t, IsAllowedTransition("", types.BOOKING_CONFIRMED))
}

func TestUpdateBookingStatusConfirmBooksSlot(t *testing.T) {
	gormDB, mock := newMockDB(t)
	db.NewDB(gormDB)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT (.+) FROM "bookings"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "booking_number", "deal_id", "status", "payment_status"}).
			AddRow(5, "BK-005", 2, "pending", "paid"))
	mock.ExpectExec(`UPDATE "bookings" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE "deals" SET "slots_booked"=slots_booked \+ \$1 WHERE id = \$2`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	booking, err := UpdateBookingStatus(5, types.BOOKING_CONFIRMED)
	assert.Nil(t, err)
	assert.Equal(t, types.BOOKING_CONFIRMED, booking.Status)
	assert.Nil(t, mock.ExpectationsWereMet())
}

func TestUpdateBookingStatusCancelReleasesSlot(t *testing.T) {
	gormDB, mock := newMockDB(t)
	db.NewDB(gormDB)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT (.+) FROM "bookings"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "booking_number", "deal_id", "status", "payment_status"}).
			AddRow(5, "BK-005", 2, "confirmed", "partial"))
	mock.ExpectExec(`UPDATE "bookings" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	// The decrement is floored at zero by the conditional UPDATE.
	mock.ExpectExec(`UPDATE "deals" SET "slots_booked"=slots_booked - \$1 WHERE id = \$2 AND slots_booked > 0`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	booking, err := UpdateBookingStatus(5, types.BOOKING_CANCELLED)
	assert.Nil(t, err)
	assert.Equal(t, types.BOOKING_CANCELLED, booking.Status)
	assert.Nil(t, mock.ExpectationsWereMet())
}

func TestUpdateBookingStatusWithoutDealTouchesNoSlots(t *testing.T) {
	gormDB, mock := newMockDB(t)
	db.NewDB(gormDB)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT (.+) FROM "bookings"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "booking_number", "status", "payment_status"}).
			AddRow(6, "BK-006", "pending", "pending"))
	mock.ExpectExec(`UPDATE "bookings" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	booking, err := UpdateBookingStatus(6, types.BOOKING_CONFIRMED)
	assert.Nil(t, err)
	assert.Equal(t, types.BOOKING_CONFIRMED, booking.Status)
	assert.Nil(t, mock.ExpectationsWereMet())
}

func TestPastPaymentDeadline(t *testing.T) {
	now := time.Now()
	assert.True(t, PastPaymentDeadline(now.AddDate(0, 0, 44), now))
	assert.True(t, PastPaymentDeadline(now.AddDate(0, 0, 45), now))
	assert.False(t, PastPaymentDeadline(now.AddDate(0, 0, 46), now))
	assert.True(t, PastPaymentDeadline(now.AddDate(0, 0, -1), now))
}
