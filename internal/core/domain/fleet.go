package domain

import "time"

// VehicleStatus mirrors the fleet module's status strings.
type VehicleStatus string

const (
	VehicleAvailable   VehicleStatus = "available"
	VehicleInUse       VehicleStatus = "in-use"
	VehicleReserved    VehicleStatus = "reserved"
	VehicleMaintenance VehicleStatus = "maintenance"
)

// Vehicle matches the REST shape under /frotas/vehicles.
type Vehicle struct {
	ID           int64         `json:"id"`
	Name         string        `json:"name"`
	Model        *string       `json:"model"`
	LicensePlate string        `json:"license_plate"`
	ImageURL     *string       `json:"image_url"`
	Status       VehicleStatus `json:"status"`
	Passengers   *int          `json:"passengers"`
	Features     *string       `json:"features"`
	CreatedAt    *time.Time    `json:"created_at"`
}

// VehicleCreate is the request body for POST /frotas/vehicles/.
type VehicleCreate struct {
	Name         string  `json:"name"`
	Model        *string `json:"model,omitempty"`
	LicensePlate string  `json:"license_plate"`
	ImageURL     *string `json:"image_url,omitempty"`
	Passengers   *int    `json:"passengers,omitempty"`
	Features     *string `json:"features,omitempty"`
}

// Booking is a checkout or schedule record for a vehicle.
type Booking struct {
	ID              int64      `json:"id"`
	VehicleID       int64      `json:"vehicle_id"`
	UserID          int64      `json:"user_id"`
	Type            string     `json:"type"`
	Status          string     `json:"status"`
	Purpose         *string    `json:"purpose"`
	Observation     *string    `json:"observation"`
	StartTime       time.Time  `json:"start_time"`
	EndTime         *time.Time `json:"end_time"`
	StartMileage    *int       `json:"start_mileage"`
	EndMileage      *int       `json:"end_mileage"`
	ParkingLocation *string    `json:"parking_location"`
	CreatedAt       time.Time  `json:"created_at"`
	Vehicle         *Vehicle   `json:"vehicle"`
}

// BookingCheckout is the request body for POST /frotas/bookings/checkout.
type BookingCheckout struct {
	VehicleID    int64      `json:"vehicle_id"`
	Purpose      *string    `json:"purpose,omitempty"`
	Observation  *string    `json:"observation,omitempty"`
	StartMileage *int       `json:"start_mileage,omitempty"`
	StartTime    *time.Time `json:"start_time,omitempty"`
}

// BookingSchedule is the request body for POST /frotas/bookings/schedule.
type BookingSchedule struct {
	VehicleID   int64     `json:"vehicle_id"`
	Purpose     *string   `json:"purpose,omitempty"`
	Observation *string   `json:"observation,omitempty"`
	StartTime   time.Time `json:"start_time"`
	EndTime     time.Time `json:"end_time"`
}

// BookingReturn is the request body for POST /frotas/bookings/{id}/return.
type BookingReturn struct {
	EndMileage      *int    `json:"end_mileage,omitempty"`
	ParkingLocation *string `json:"parking_location,omitempty"`
	Observation     *string `json:"observation,omitempty"`
}

// FuelSupply is one refuelling record under /frota/fuel-supplies.
type FuelSupply struct {
	ID              int64     `json:"id"`
	VehicleID       int64     `json:"vehicle_id"`
	UserID          int64     `json:"user_id"`
	DepartureDate   string    `json:"departure_date"`
	DepartureTime   string    `json:"departure_time"`
	DepartureKM     int       `json:"departure_km"`
	DepartureAmount float64   `json:"departure_amount"`
	ReturnDate      string    `json:"return_date"`
	ReturnTime      string    `json:"return_time"`
	ReturnKM        int       `json:"return_km"`
	ReturnAmount    float64   `json:"return_amount"`
	CreatedAt       time.Time `json:"created_at"`
}

// FuelSupplyCreate is the request body for POST /frota/fuel-supplies.
type FuelSupplyCreate struct {
	VehicleID       int64   `json:"vehicle_id"`
	UserID          int64   `json:"user_id"`
	DepartureDate   string  `json:"departure_date"`
	DepartureTime   string  `json:"departure_time"`
	DepartureKM     int     `json:"departure_km"`
	DepartureAmount float64 `json:"departure_amount"`
	ReturnDate      string  `json:"return_date"`
	ReturnTime      string  `json:"return_time"`
	ReturnKM        int     `json:"return_km"`
	ReturnAmount    float64 `json:"return_amount"`
}
