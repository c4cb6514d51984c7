package main

import (
	"fmt"
	"net/http"

	"kvltransport/config"
	"kvltransport/db"
	"kvltransport/db/mongo"
	"kvltransport/db/postgres"
	"kvltransport/handlers"
	"kvltransport/notify"
	"kvltransport/repository"
	"kvltransport/routes"
)

func main() {
	// Load config from .env or config file
	cfg := config.LoadConfig()

	var (
		consignmentRepo repository.ConsignmentRepository
		vehicleRepo     repository.VehicleRepository
		driverRepo      repository.DriverRepository
		customerRepo    repository.CustomerRepository
		billRepo        repository.FreightBillRepository
		chalanRepo      repository.ChalanRepository
		companyRepo     repository.CompanyRepository
		userRepo        repository.UserRepository
		sequenceRepo    repository.SequenceRepository
	)

	switch cfg.DBType {
	case "postgres":
		// Migrations apply only on the Postgres backend
		db.RunMigrations(cfg.PostgresURL)

		pg := postgres.NewPostgresDB(cfg.PostgresURL)
		if err := pg.Connect(); err != nil {
			panic(err)
		}
		defer pg.Disconnect()

		consignmentRepo = repository.NewPostgresConsignmentRepo(pg.Conn)
		vehicleRepo = repository.NewPostgresVehicleRepo(pg.Conn)
		driverRepo = repository.NewPostgresDriverRepo(pg.Conn)
		customerRepo = repository.NewPostgresCustomerRepo(pg.Conn)
		billRepo = repository.NewPostgresFreightBillRepo(pg.Conn)
		chalanRepo = repository.NewPostgresChalanRepo(pg.Conn)
		companyRepo = repository.NewPostgresCompanyRepo(pg.Conn)
		userRepo = repository.NewPostgresUserRepo(pg.Conn)
		sequenceRepo = repository.NewPostgresSequenceRepo(pg.Conn)

	case "mongo":
		mg := mongo.NewMongoDB(cfg.MongoURL)
		if err := mg.Connect(); err != nil {
			panic(err)
		}
		defer mg.Disconnect()

		database := mg.Database(cfg.MongoDBName)
		consignmentRepo = repository.NewMongoConsignmentRepo(database)
		vehicleRepo = repository.NewMongoVehicleRepo(database)
		driverRepo = repository.NewMongoDriverRepo(database)
		customerRepo = repository.NewMongoCustomerRepo(database)
		billRepo = repository.NewMongoFreightBillRepo(database)
		chalanRepo = repository.NewMongoChalanRepo(database)
		companyRepo = repository.NewMongoCompanyRepo(database)
		userRepo = repository.NewMongoUserRepo(database)
		sequenceRepo = repository.NewMongoSequenceRepo(database)

	default:
		panic("DB_TYPE not supported")
	}

	notifier := notify.FromConfig(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass, cfg.SMTPFrom)

	// Handlers
	userHandler := &handlers.UserHandler{Repo: userRepo, JWTSecret: cfg.JWTSecret}
	consignmentHandler := &handlers.ConsignmentHandler{
		Repo:      consignmentRepo,
		Vehicles:  vehicleRepo,
		Drivers:   driverRepo,
		Sequences: sequenceRepo,
		Notifier:  notifier,
	}
	fleetHandler := &handlers.FleetHandler{
		Vehicles: vehicleRepo,
		Drivers:  driverRepo,
	}
	billingHandler := &handlers.BillingHandler{
		Bills:        billRepo,
		Consignments: consignmentRepo,
		Customers:    customerRepo,
		Sequences:    sequenceRepo,
	}
	chalanHandler := &handlers.ChalanHandler{
		Chalans:      chalanRepo,
		Consignments: consignmentRepo,
		Vehicles:     vehicleRepo,
		Drivers:      driverRepo,
	}
	customerHandler := &handlers.CustomerHandler{Repo: customerRepo}
	companyHandler := &handlers.CompanyHandler{Repo: companyRepo}

	// PDF handler with combined repository
	pdfRepo := repository.NewPDFRepository(consignmentRepo, billRepo, chalanRepo, companyRepo)
	pdfHandler := &handlers.PDFHandler{Repo: pdfRepo, SavePath: cfg.PDFSavePath}

	routes.SetupRoutes(
		userHandler,
		consignmentHandler,
		fleetHandler,
		billingHandler,
		chalanHandler,
		customerHandler,
		companyHandler,
		pdfHandler,
	)

	port := cfg.Port
	fmt.Printf("Server running on port %s\n", port)
	if err := http.ListenAndServe(":"+port, nil); err != nil {
		panic(err)
	}
}
