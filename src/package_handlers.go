package main

import (
	"log"
	"net/http"

	"tps/src/common"
	"tps/src/types"

	"github.com/gin-gonic/gin"
)

func packageHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		GET("/packages", func(ctx *gin.Context) {
			packages, err := common.ListPackages()
			if err != nil {
				ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": packages, "count": len(packages)})
		}).
		GET("/packages/:slug", func(ctx *gin.Context) {
			var params types.PackageSlugURIParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.Status(http.StatusBadRequest)
				return
			}
			pkg, err := common.GetPackageBySlug(params.Slug)
			if err != nil {
				ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": pkg})
		})
	return g
}

func adminPackageHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		POST("/packages", func(ctx *gin.Context) {
			var body types.CreatePackageRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			pkg, err := common.CreatePackage(&body)
			if err != nil {
				log.Printf("Could not create package: %s\n", err.Error())
				ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusCreated, gin.H{"data": pkg})
		}).
		POST("/packages/:id/deals", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			var body types.CreateDealRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			deal, err := common.CreateDeal(params.ID, &body)
			if err != nil {
				log.Printf("Could not create deal: %s\n", err.Error())
				ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusCreated, gin.H{"data": deal})
		})
	return g
}
