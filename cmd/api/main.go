package main

import (
	"context"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/sunflowertrip/tour-booking-backend/internal/config"
	"github.com/sunflowertrip/tour-booking-backend/internal/logging"
	"github.com/sunflowertrip/tour-booking-backend/internal/media"
	miniorepo "github.com/sunflowertrip/tour-booking-backend/internal/repository/minio"
	"github.com/sunflowertrip/tour-booking-backend/internal/repository/postgres"
	"github.com/sunflowertrip/tour-booking-backend/internal/scheduler"
	"github.com/sunflowertrip/tour-booking-backend/internal/service"
	httptransport "github.com/sunflowertrip/tour-booking-backend/internal/transport/http"
	"github.com/sunflowertrip/tour-booking-backend/internal/transport/mail"
	"github.com/sunflowertrip/tour-booking-backend/internal/util"
)

func main() {
	cfg := config.Load()

	if cfg.LogstashTCPAddr != "" {
		writer, err := logging.NewLogstashWriter(cfg.LogstashTCPAddr)
		if err != nil {
			log.Printf("logstash writer disabled: %v", err)
		} else {
			defer writer.Close()
			log.SetOutput(io.MultiWriter(os.Stdout, writer))
		}
	}

	db, err := postgres.New(cfg.DatabaseURL, cfg.DBMaxConns)
	if err != nil {
		log.Fatalf("connect database: %v", err)
	}
	defer db.Close()

	tourRepo := postgres.NewTourRepo(db)
	destinationRepo := postgres.NewDestinationRepo(db)
	contactRepo := postgres.NewContactRepo(db)
	enquiryRepo := postgres.NewEnquiryRepo(db)
	bookingRepo := postgres.NewBookingRepo(db)
	itineraryRepo := postgres.NewItineraryRepo(db)
	tripLeadRepo := postgres.NewTripLeadRepo(db)
	settingRepo := postgres.NewSettingRepo(db)
	userRepo := postgres.NewUserRepo(db)

	jwtManager := util.NewJWTManager(cfg.JWTSecret, cfg.AccessTokenTTL, cfg.RefreshTokenTTL)

	tourService := service.NewTourService(tourRepo)
	destinationService := service.NewDestinationService(destinationRepo, tourService)
	contactService := service.NewContactService(contactRepo)
	bookingService := service.NewBookingService(bookingRepo, enquiryRepo, tourRepo)
	itineraryService := service.NewItineraryService(itineraryRepo)
	tripLeadService := service.NewTripLeadService(tripLeadRepo)
	settingService := service.NewSettingService(settingRepo)
	authService := service.NewAuthService(userRepo, jwtManager, cfg.GoogleAudience)
	userService := service.NewUserService(userRepo)

	e := httptransport.NewRouter(cfg.AllowOrigins)
	httptransport.RegisterSwagger(e)
	httptransport.RegisterAuth(e, jwtManager, authService)
	httptransport.RegisterUsers(e, jwtManager, userService)
	httptransport.RegisterTours(e, jwtManager, tourService)
	httptransport.RegisterDestinations(e, jwtManager, destinationService)
	httptransport.RegisterBookings(e, jwtManager, bookingService)
	httptransport.RegisterContacts(e, jwtManager, contactService)
	httptransport.RegisterItineraries(e, jwtManager, itineraryService)
	httptransport.RegisterTripLeads(e, jwtManager, tripLeadService)
	httptransport.RegisterSettings(e, jwtManager, settingService)

	if cfg.MinIOEndpoint != "" {
		client, err := miniorepo.NewClient(cfg.MinIOEndpoint, cfg.MinIOAccessKey, cfg.MinIOSecretKey, cfg.MinIOUseSSL)
		if err != nil {
			log.Fatalf("connect minio: %v", err)
		}
		storage := miniorepo.NewStorage(client, cfg.MinIOPublicURL)
		processor := media.NewFFmpegProcessor(cfg.FFmpegPath, media.DefaultMaxDimension)
		uploadService := service.NewUploadService(processor, storage, cfg.MinIOBucketTours, cfg.ImageMaxBytes)
		httptransport.RegisterUploads(e, jwtManager, uploadService)
	} else {
		log.Println("minio not configured, image uploads disabled")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if len(cfg.ReportTo) > 0 && cfg.SMTPHost != "" {
		mailer := mail.NewReportMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword, cfg.SMTPFrom)
		reportService := service.NewReportService(contactRepo, mailer, cfg.ReportTo)
		scheduler.New(reportService, cfg.ReportInterval, log.Default()).Run(ctx)
	} else {
		log.Println("contact reports disabled, SMTP or recipients not configured")
	}

	go func() {
		<-ctx.Done()
		if err := e.Shutdown(context.Background()); err != nil {
			log.Printf("shutdown: %v", err)
		}
	}()

	e.Logger.Fatal(e.Start(":" + cfg.Port))
}
