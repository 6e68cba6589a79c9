package common

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"tps/src/config"
	"tps/src/db"
	"tps/src/lib"
	"tps/src/models"
	"tps/src/types"

	"github.com/gosimple/slug"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const packagesCacheKey = "catalog:packages"

func CreatePackage(body *types.CreatePackageRequestBody) (*models.Package, error) {
	pkg := models.Package{
		Title:       body.Title,
		Slug:        slug.Make(body.Title),
		Location:    body.Location,
		Description: body.Description,
		Images:      body.Images,
		Featured:    body.Featured,
	}
	for _, d := range body.Details {
		pkg.Details = append(pkg.Details, models.PackageDetail{
			Section: d.Section,
			Items:   d.Items,
		})
	}
	for _, it := range body.Itinerary {
		pkg.Itinerary = append(pkg.Itinerary, models.ItineraryItem{
			Day:         it.Day,
			Title:       it.Title,
			Description: it.Description,
		})
	}
	conn := db.GetDb()
	err := conn.Transaction(func(tx *gorm.DB) error {
		return tx.Create(&pkg).Error
	})
	if err != nil {
		log.Printf("Error creating package %q: %s\n", body.Title, err.Error())
		return nil, err
	}
	InvalidatePackagesCache()
	return &pkg, nil
}

func CreateDeal(packageId uint, body *types.CreateDealRequestBody) (*models.Deal, error) {
	startDate, err := time.Parse(config.TIME_PARSE_FORMAT, body.StartDate)
	if err != nil {
		return nil, err
	}
	endDate, err := time.Parse(config.TIME_PARSE_FORMAT, body.EndDate)
	if err != nil {
		return nil, err
	}
	deal := models.Deal{
		PackageID:      packageId,
		StartDate:      startDate,
		EndDate:        endDate,
		Price:          body.Price,
		SlotsAvailable: body.SlotsAvailable,
	}
	conn := db.GetDb()
	err = conn.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Package{}).Where("id = ?", packageId).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return gorm.ErrRecordNotFound
		}
		return tx.Create(&deal).Error
	})
	if err != nil {
		log.Printf("Error creating deal for package %d: %s\n", packageId, err.Error())
		return nil, err
	}
	InvalidatePackagesCache()
	return &deal, nil
}

// ListPackages serves the public catalog, cache-aside through redis. A cache
// failure falls through to the database.
func ListPackages() ([]models.Package, error) {
	rd := lib.GetRedisClient()
	if rd != nil {
		cached, err := rd.Get(context.Background(), packagesCacheKey).Result()
		if err == nil && cached != "" {
			var pkgs []models.Package
			if err := json.Unmarshal([]byte(cached), &pkgs); err == nil {
				return pkgs, nil
			}
		} else if err != nil && err != redis.Nil {
			log.Printf("[redis] Error reading packages cache: %s\n", err.Error())
		}
	}

	var pkgs []models.Package
	conn := db.GetDb()
	err := conn.
		Model(&models.Package{}).
		Preload("Deals").
		Order("featured desc, created_at desc").
		Find(&pkgs).
		Error
	if err != nil {
		return nil, err
	}

	if rd != nil {
		if b, err := json.Marshal(&pkgs); err == nil {
			if err := rd.SetEx(context.Background(), packagesCacheKey, string(b), 5*time.Minute).Err(); err != nil {
				log.Printf("[redis] Error caching packages: %s\n", err.Error())
			}
		}
	}
	return pkgs, nil
}

func GetPackageBySlug(pkgSlug string) (*models.Package, error) {
	var pkg models.Package
	conn := db.GetDb()
	err := conn.
		Model(&models.Package{}).
		Where(&models.Package{Slug: pkgSlug}).
		Preload("Details").
		Preload("Itinerary").
		Preload("Deals").
		First(&pkg).
		Error
	if err != nil {
		return nil, err
	}
	return &pkg, nil
}

func InvalidatePackagesCache() {
	rd := lib.GetRedisClient()
	if rd == nil {
		return
	}
	if err := rd.Del(context.Background(), packagesCacheKey).Err(); err != nil {
		log.Printf("[redis] Error invalidating packages cache: %s\n", err.Error())
	}
}
