package main

import (
	"encoding/json"
	"io"
	"log"
	"net/http"
	"os"
	"strconv"

	"tps/src/common"
	"tps/src/types"
	"tps/src/utils"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/webhook"
)

func stripeWebhookRoute(g *gin.Engine) *gin.RouterGroup {
	apiv1 := apiv1Group(g)
	apiv1.POST("/webhook/stripe", func(ctx *gin.Context) {
		payload, err := io.ReadAll(ctx.Request.Body)
		if err != nil {
			log.Printf("Error reading request body: %s\n", err.Error())
			ctx.Status(http.StatusServiceUnavailable)
			return
		}
		whsecret := os.Getenv("STRIPE_WEBHOOK_SECRET")
		event, err := webhook.ConstructEvent(payload, ctx.GetHeader("Stripe-Signature"), whsecret)
		if err != nil {
			log.Printf("Error verifying webhook signature: %s\n", err.Error())
			ctx.Status(http.StatusBadRequest)
			return
		}
		log.Printf("[StripeEvent] %s\n", event.Type)
		switch event.Type {
		case "checkout.session.completed":
			var cs stripe.CheckoutSession
			err := json.Unmarshal(event.Data.Raw, &cs)
			if err != nil {
				log.Printf("[Stripe] Error parsing CheckoutSession: %s\n", err.Error())
				break
			}
			id := cs.Metadata["booking_id"]
			atoi, err := strconv.Atoi(id)
			if err != nil {
				log.Printf("Could not retrieve booking id for session %s: %s\n", cs.ID, err.Error())
				break
			}
			bookingId := uint(atoi)
			transactionId := cs.ID
			if cs.PaymentIntent != nil {
				transactionId = cs.PaymentIntent.ID
			}
			amount := float64(cs.AmountTotal) / 100
			booking, _, alreadyProcessed, err := common.ProcessPayment(bookingId, &types.ProcessPaymentRequestBody{
				Amount:        amount,
				Method:        "card",
				TransactionID: transactionId,
			})
			if err != nil {
				log.Printf("Error applying payment for Booking[%d]: %s\n", bookingId, err.Error())
				break
			}
			if alreadyProcessed {
				log.Printf("Payment %s already applied to Booking[%d]\n", transactionId, bookingId)
				break
			}
			go utils.NotifyPaymentReceived(booking, amount)
		default:
			log.Printf("Unhandled event type: %s\n", event.Type)
		}
		ctx.Status(http.StatusOK)
	})
	return apiv1
}
