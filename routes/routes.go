package routes

import (
	"net/http"
	"strings"

	"kvltransport/handlers"
)

// CORS middleware
func withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*") // Replace * with your domain in production
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		// Handle preflight request
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func wrap(h http.HandlerFunc) http.Handler {
	return withCORS(http.HandlerFunc(handlers.RecoverWrapper(h)))
}

// splitPath trims the prefix and returns the remaining segments, so
// "/consignments/42/assign-vehicle" under "/consignments/" yields
// ["42", "assign-vehicle"].
func splitPath(path, prefix string) []string {
	rest := strings.Trim(strings.TrimPrefix(path, prefix), "/")
	if rest == "" {
		return nil
	}
	return strings.Split(rest, "/")
}

func SetupRoutes(
	userHandler *handlers.UserHandler,
	consignmentHandler *handlers.ConsignmentHandler,
	fleetHandler *handlers.FleetHandler,
	billingHandler *handlers.BillingHandler,
	chalanHandler *handlers.ChalanHandler,
	customerHandler *handlers.CustomerHandler,
	companyHandler *handlers.CompanyHandler,
	pdfHandler *handlers.PDFHandler,
) {
	// User routes
	http.Handle("/signup", wrap(userHandler.Signup))
	http.Handle("/login", wrap(userHandler.Login))

	// Public tracking, by consignment number: /track?number=X or /track/X
	trackRoute := wrap(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		number := r.URL.Query().Get("number")
		if number == "" {
			number = strings.Trim(strings.TrimPrefix(r.URL.Path, "/track"), "/")
		}
		if number == "" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		consignmentHandler.Track(w, r, number)
	})
	http.Handle("/track", trackRoute)
	http.Handle("/track/", trackRoute)

	// Consignment routes
	http.Handle("/consignments", wrap(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost:
			consignmentHandler.Create(w, r)
		case http.MethodGet:
			consignmentHandler.List(w, r)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	}))

	http.Handle("/consignments/", wrap(func(w http.ResponseWriter, r *http.Request) {
		parts := splitPath(r.URL.Path, "/consignments/")
		switch {
		case len(parts) == 2 && parts[0] == "number":
			consignmentHandler.GetByNumber(w, r, parts[1])
		case len(parts) == 1:
			id := parts[0]
			switch r.Method {
			case http.MethodPut, http.MethodPatch:
				consignmentHandler.Update(w, r, id)
			case http.MethodDelete:
				consignmentHandler.Delete(w, r, id)
			default:
				w.WriteHeader(http.StatusMethodNotAllowed)
			}
		case len(parts) == 2 && r.Method == http.MethodPost:
			id := parts[0]
			switch parts[1] {
			case "assign-vehicle":
				consignmentHandler.AssignVehicle(w, r, id)
			case "assign-driver":
				consignmentHandler.AssignDriver(w, r, id)
			case "schedule-pickup":
				consignmentHandler.SchedulePickup(w, r, id)
			case "status":
				consignmentHandler.UpdateStatus(w, r, id)
			case "confirm-delivery":
				consignmentHandler.ConfirmDelivery(w, r, id)
			default:
				w.WriteHeader(http.StatusNotFound)
			}
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))

	// Vehicle routes
	http.Handle("/vehicles", wrap(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost:
			fleetHandler.CreateVehicle(w, r)
		case http.MethodGet:
			fleetHandler.ListVehicles(w, r)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	}))

	http.Handle("/vehicles/", wrap(func(w http.ResponseWriter, r *http.Request) {
		parts := splitPath(r.URL.Path, "/vehicles/")
		switch {
		case len(parts) == 1:
			id := parts[0]
			switch r.Method {
			case http.MethodGet:
				fleetHandler.GetVehicle(w, r, id)
			case http.MethodPut, http.MethodPatch:
				fleetHandler.UpdateVehicle(w, r, id)
			default:
				w.WriteHeader(http.StatusMethodNotAllowed)
			}
		case len(parts) == 2 && parts[1] == "status" && r.Method == http.MethodPost:
			fleetHandler.SetVehicleStatus(w, r, parts[0])
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))

	// Driver routes
	http.Handle("/drivers", wrap(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost:
			fleetHandler.CreateDriver(w, r)
		case http.MethodGet:
			fleetHandler.ListDrivers(w, r)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	}))

	http.Handle("/drivers/", wrap(func(w http.ResponseWriter, r *http.Request) {
		parts := splitPath(r.URL.Path, "/drivers/")
		switch {
		case len(parts) == 1:
			id := parts[0]
			switch r.Method {
			case http.MethodGet:
				fleetHandler.GetDriver(w, r, id)
			case http.MethodPut, http.MethodPatch:
				fleetHandler.UpdateDriver(w, r, id)
			default:
				w.WriteHeader(http.StatusMethodNotAllowed)
			}
		case len(parts) == 2 && parts[1] == "status" && r.Method == http.MethodPost:
			fleetHandler.SetDriverStatus(w, r, parts[0])
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))

	// Customer routes
	http.Handle("/customers", wrap(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost:
			customerHandler.Create(w, r)
		case http.MethodGet:
			customerHandler.List(w, r)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	}))

	http.Handle("/customers/", wrap(func(w http.ResponseWriter, r *http.Request) {
		parts := splitPath(r.URL.Path, "/customers/")
		if len(parts) != 1 {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		id := parts[0]
		switch r.Method {
		case http.MethodGet:
			customerHandler.Get(w, r, id)
		case http.MethodPut, http.MethodPatch:
			customerHandler.Update(w, r, id)
		case http.MethodDelete:
			customerHandler.Delete(w, r, id)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	}))

	// Freight bill routes
	http.Handle("/bills", wrap(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost:
			billingHandler.Create(w, r)
		case http.MethodGet:
			billingHandler.List(w, r)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	}))

	http.Handle("/bills/", wrap(func(w http.ResponseWriter, r *http.Request) {
		parts := splitPath(r.URL.Path, "/bills/")
		switch {
		case len(parts) == 1:
			id := parts[0]
			switch r.Method {
			case http.MethodGet:
				billingHandler.Get(w, r, id)
			case http.MethodDelete:
				billingHandler.Delete(w, r, id)
			default:
				w.WriteHeader(http.StatusMethodNotAllowed)
			}
		case len(parts) == 2 && r.Method == http.MethodPost:
			id := parts[0]
			switch parts[1] {
			case "status":
				billingHandler.UpdateStatus(w, r, id)
			case "mark-paid":
				billingHandler.MarkAsPaid(w, r, id)
			default:
				w.WriteHeader(http.StatusNotFound)
			}
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))

	// Load chalan routes
	http.Handle("/chalans", wrap(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost:
			chalanHandler.Create(w, r)
		case http.MethodGet:
			chalanHandler.List(w, r)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	}))

	http.Handle("/chalans/", wrap(func(w http.ResponseWriter, r *http.Request) {
		parts := splitPath(r.URL.Path, "/chalans/")
		if len(parts) == 2 && parts[0] == "number" {
			chalanHandler.GetByNumber(w, r, parts[1])
			return
		}
		if len(parts) != 1 {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		id := parts[0]
		switch r.Method {
		case http.MethodGet:
			chalanHandler.Get(w, r, id)
		case http.MethodPut, http.MethodPatch:
			chalanHandler.Update(w, r, id)
		case http.MethodDelete:
			chalanHandler.Delete(w, r, id)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	}))

	// Company profile routes
	http.Handle("/company", wrap(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost:
			companyHandler.Save(w, r)
		case http.MethodGet:
			companyHandler.Get(w, r)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	}))

	// PDF routes
	http.Handle("/pdf/consignment/", wrap(func(w http.ResponseWriter, r *http.Request) {
		id := strings.Trim(strings.TrimPrefix(r.URL.Path, "/pdf/consignment/"), "/")
		if id == "" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		pdfHandler.ConsignmentNote(w, r, id)
	}))

	http.Handle("/pdf/bill/", wrap(func(w http.ResponseWriter, r *http.Request) {
		id := strings.Trim(strings.TrimPrefix(r.URL.Path, "/pdf/bill/"), "/")
		if id == "" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		pdfHandler.FreightBill(w, r, id)
	}))

	http.Handle("/pdf/chalan/", wrap(func(w http.ResponseWriter, r *http.Request) {
		id := strings.Trim(strings.TrimPrefix(r.URL.Path, "/pdf/chalan/"), "/")
		if id == "" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		pdfHandler.LoadChalan(w, r, id)
	}))
}
