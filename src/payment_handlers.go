package main

import (
	"fmt"
	"log"
	"net/http"

	"tps/src/common"
	"tps/src/lib"
	"tps/src/types"

	"github.com/gin-gonic/gin"
)

func checkoutHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		POST("/bookings/:id/checkout", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			booking, err := common.GetBookingByID(params.ID)
			if err != nil {
				ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
				return
			}
			userId := ctx.GetUint("id")
			if booking.UserID != userId {
				ctx.Status(http.StatusForbidden)
				return
			}
			if booking.Status == types.BOOKING_CANCELLED {
				ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": "booking is cancelled"})
				return
			}
			if booking.RemainingBalance <= 0 {
				ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": "booking is fully paid"})
				return
			}
			metadata := map[string]string{
				"booking_id":     fmt.Sprint(booking.ID),
				"booking_number": booking.BookingNumber,
			}
			session, err := lib.CreateBalanceCheckout(booking.ID, booking.BookingNumber, booking.RemainingBalance, "usd", metadata)
			if err != nil {
				log.Printf("Could not create checkout session for Booking[%d]: %s\n", booking.ID, err.Error())
				ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Error while processing request"})
				return
			}
			ctx.JSON(http.StatusCreated, gin.H{"data": gin.H{
				"checkout_url": session.URL,
				"session_id":   session.ID,
				"amount":       booking.RemainingBalance,
			}})
		})
	return g
}
