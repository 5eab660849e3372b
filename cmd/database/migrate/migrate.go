package migration

import (
	"MangaVerse-Backend/entities"
	"fmt"
	"log"

	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	db.Exec("CREATE EXTENSION IF NOT EXISTS \"uuid-ossp\";")

	if err := db.AutoMigrate(&entities.User{}); err != nil {
		log.Fatalf("Error migrating user database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.Manga{}); err != nil {
		log.Fatalf("Error migrating manga database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.Chapter{}); err != nil {
		log.Fatalf("Error migrating chapter database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.Wallet{}); err != nil {
		log.Fatalf("Error migrating wallet database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.WalletTransaction{}); err != nil {
		log.Fatalf("Error migrating wallet transaction database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.Purchase{}); err != nil {
		log.Fatalf("Error migrating purchase database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.Subscription{}); err != nil {
		log.Fatalf("Error migrating subscription database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.TokenPackage{}); err != nil {
		log.Fatalf("Error migrating token package database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.PaymentTransaction{}); err != nil {
		log.Fatalf("Error migrating payment transaction database: %v", err)
		return err
	}

	seedTokenPackages(db)

	fmt.Println("Database migration complete")
	return nil
}

// seedTokenPackages inserts the default packages once; reruns are no-ops.
func seedTokenPackages(db *gorm.DB) {
	var count int64
	db.Model(&entities.TokenPackage{}).Count(&count)
	if count > 0 {
		return
	}

	packages := []entities.TokenPackage{
		{Name: "Starter", Amount: 50, Price: 30000, Currency: "IDR", IsActive: true},
		{Name: "Reader", Amount: 130, Price: 75000, Currency: "IDR", IsPopular: true, IsActive: true},
		{Name: "Collector", Amount: 300, Price: 160000, Currency: "IDR", IsActive: true},
		{Name: "Whale", Amount: 1000, Price: 500000, Currency: "IDR", IsActive: true},
	}
	if err := db.Create(&packages).Error; err != nil {
		log.Printf("Error seeding token packages: %v", err)
	}
}
