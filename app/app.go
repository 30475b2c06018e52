package app

import (
	"fmt"
	"log"
	"os"

	"event-cards-me/app/controller"
	"event-cards-me/app/router"
	"event-cards-me/db"
	"event-cards-me/repository"
	"event-cards-me/service"
)

// Initialize initializes the application
func Initialize() error {
	// Initialize database connection
	if err := db.InitDB(); err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}

	if err := service.EnsureCacheDir(); err != nil {
		return err
	}

	baseURL := os.Getenv("BASE_URL")
	if baseURL == "" {
		port := os.Getenv("PORT")
		if port == "" {
			port = "8080"
		}
		baseURL = "http://localhost:" + port
	}

	// QR images stored as relative paths resolve against this base
	qrBaseURL := os.Getenv("QR_BASE_URL")
	if qrBaseURL == "" {
		qrBaseURL = baseURL
	}

	// Initialize repositories
	cardTypeRepo := repository.NewCardTypeRepository()
	guestRepo := repository.NewGuestRepository()
	templateRepo := repository.NewTemplateRepository()

	// Initialize services
	templateService := service.NewTemplateService(templateRepo)
	qrService := service.NewQRService(qrBaseURL)
	cardService := service.NewCardService(guestRepo, cardTypeRepo, templateRepo, qrService)
	batchService := service.NewBatchService(guestRepo, cardService)
	sheetService := service.NewSheetService(guestRepo, cardService, baseURL)

	// The Drive design library is optional: without credentials the sync
	// endpoint reports the missing configuration
	var syncService service.SyncServiceInterface
	credentialsPath := os.Getenv("GOOGLE_APPLICATION_CREDENTIALS")
	if credentialsPath != "" {
		driveService, err := service.NewDriveService(credentialsPath)
		if err != nil {
			return err
		}
		syncService = service.NewSyncService(driveService, templateService, templateRepo)
	} else {
		log.Printf("⚠️  GOOGLE_APPLICATION_CREDENTIALS not set, design library sync disabled")
		syncService = service.NewSyncService(nil, templateService, templateRepo)
	}

	// Create controllers
	controllers := &router.Controllers{
		CardType: controller.NewCardTypeController(cardTypeRepo),
		Guest:    controller.NewGuestController(guestRepo, qrService),
		Template: controller.NewTemplateController(templateService, templateRepo),
		Card:     controller.NewCardController(cardService, batchService),
		Sheet:    controller.NewSheetController(sheetService),
		Design:   controller.NewDesignController(syncService),
	}

	// Setup routes using standard http router
	router.SetupRoutes(controllers)

	return nil
}
