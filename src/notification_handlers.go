package main

import (
	"net/http"
	"time"

	"tps/src/db"
	"tps/src/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

func notificationHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		GET("/notifications", func(ctx *gin.Context) {
			userId := ctx.GetUint("id")
			conn := db.GetDb()
			var notifications []models.Notification
			err := conn.
				Model(&models.Notification{}).
				Where(&models.Notification{UserID: userId}).
				Order("created_at DESC").
				Limit(50).
				Find(&notifications).
				Error
			if err != nil {
				ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": notifications, "count": len(notifications)})
		}).
		PUT("/notifications/:id/read", func(ctx *gin.Context) {
			idParam := ctx.Params.ByName("id")
			nid, err := uuid.Parse(idParam)
			if err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			userId := ctx.GetUint("id")
			conn := db.GetDb()
			err = conn.Transaction(func(tx *gorm.DB) error {
				return tx.
					Model(&models.Notification{}).
					Where(&models.Notification{ID: nid, UserID: userId}).
					Updates(map[string]any{"read": true, "updated_at": time.Now()}).
					Error
			})
			if err != nil {
				ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
				return
			}
			ctx.Status(http.StatusNoContent)
		})
	return g
}
