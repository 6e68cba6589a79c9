package common

import (
	"errors"
	"testing"

	"tps/src/db"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

func TestAutoCancelSweep(t *testing.T) {
	gormDB, mock := newMockDB(t)
	db.NewDB(gormDB)

	mock.ExpectQuery(`SELECT (.+) FROM "bookings" WHERE status IN`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "booking_number", "user_id", "deal_id", "status", "remaining_balance"}).
			AddRow(11, "BK-011", 3, 5, "confirmed", 400.0).
			AddRow(12, "BK-012", 4, nil, "pending", 1000.0))

	// BK-011 was confirmed against a deal, so cancelling gives the slot back.
	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "bookings" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE "deals" SET "slots_booked"=slots_booked - \$1 WHERE id = \$2 AND slots_booked > 0`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	// BK-012 fails inside its own transaction; the sweep records the error
	// and keeps going.
	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "bookings" SET`).
		WillReturnError(errors.New("connection reset"))
	mock.ExpectRollback()

	report, err := AutoCancelExpiredBookings()
	assert.Nil(t, err)
	assert.Equal(t, 1, report.CancelledCount)
	assert.Len(t, report.Results, 2)
	assert.True(t, report.Results[0].Cancelled)
	assert.Equal(t, "BK-011", report.Results[0].BookingNumber)
	assert.False(t, report.Results[1].Cancelled)
	assert.Contains(t, report.Results[1].Error, "connection reset")
	assert.Nil(t, mock.ExpectationsWereMet())
}
