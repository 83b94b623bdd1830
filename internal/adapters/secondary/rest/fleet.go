package rest

import (
	"context"
	"fmt"
	"net/http"

	"github.com/alexandreCDB/sistema-de-ticket-frota-sub000/internal/core/domain"
)

// ListVehicles fetches the whole fleet. Pass a status to filter, or the
// empty string for everything; the backend has no status filter, so it is
// applied client side.
func (c *Client) ListVehicles(ctx context.Context, status domain.VehicleStatus) ([]domain.Vehicle, error) {
	var vehicles []domain.Vehicle
	if err := c.doJSON(ctx, http.MethodGet, "/frotas/vehicles/", nil, &vehicles); err != nil {
		return nil, err
	}
	if status == "" {
		return vehicles, nil
	}

	filtered := vehicles[:0]
	for _, v := range vehicles {
		if v.Status == status {
			filtered = append(filtered, v)
		}
	}
	return filtered, nil
}

// GetVehicle fetches one vehicle by id.
func (c *Client) GetVehicle(ctx context.Context, vehicleID int64) (*domain.Vehicle, error) {
	var vehicle domain.Vehicle
	path := fmt.Sprintf("/frotas/vehicles/%d", vehicleID)
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &vehicle); err != nil {
		return nil, err
	}
	return &vehicle, nil
}

// CreateVehicle registers a new vehicle. Admin only.
func (c *Client) CreateVehicle(ctx context.Context, create domain.VehicleCreate) (*domain.Vehicle, error) {
	var vehicle domain.Vehicle
	if err := c.doJSON(ctx, http.MethodPost, "/frotas/vehicles/", create, &vehicle); err != nil {
		return nil, err
	}
	return &vehicle, nil
}

// ListBookings lists bookings. The backend scopes the result by role: an
// admin sees everything, other users only their own.
func (c *Client) ListBookings(ctx context.Context) ([]domain.Booking, error) {
	var bookings []domain.Booking
	if err := c.doJSON(ctx, http.MethodGet, "/frotas/bookings/", nil, &bookings); err != nil {
		return nil, err
	}
	return bookings, nil
}

// GetBooking fetches one booking by id.
func (c *Client) GetBooking(ctx context.Context, bookingID int64) (*domain.Booking, error) {
	var booking domain.Booking
	path := fmt.Sprintf("/frotas/bookings/%d", bookingID)
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &booking); err != nil {
		return nil, err
	}
	return &booking, nil
}

// Checkout takes a vehicle out immediately.
func (c *Client) Checkout(ctx context.Context, checkout domain.BookingCheckout) (*domain.Booking, error) {
	var booking domain.Booking
	if err := c.doJSON(ctx, http.MethodPost, "/frotas/bookings/checkout", checkout, &booking); err != nil {
		return nil, err
	}
	return &booking, nil
}

// Schedule reserves a vehicle for a future window. The request stays
// pending until an admin approves or denies it.
func (c *Client) Schedule(ctx context.Context, schedule domain.BookingSchedule) (*domain.Booking, error) {
	var booking domain.Booking
	if err := c.doJSON(ctx, http.MethodPost, "/frotas/bookings/schedule", schedule, &booking); err != nil {
		return nil, err
	}
	return &booking, nil
}

// ApproveBooking approves a pending schedule request. Admin only.
func (c *Client) ApproveBooking(ctx context.Context, bookingID int64) (*domain.Booking, error) {
	var booking domain.Booking
	path := fmt.Sprintf("/frotas/bookings/%d/approve", bookingID)
	if err := c.doJSON(ctx, http.MethodPatch, path, nil, &booking); err != nil {
		return nil, err
	}
	return &booking, nil
}

// DenyBooking denies a pending schedule request. Admin only.
func (c *Client) DenyBooking(ctx context.Context, bookingID int64) (*domain.Booking, error) {
	var booking domain.Booking
	path := fmt.Sprintf("/frotas/bookings/%d/deny", bookingID)
	if err := c.doJSON(ctx, http.MethodPatch, path, nil, &booking); err != nil {
		return nil, err
	}
	return &booking, nil
}

// Return hands a vehicle back and closes the active booking.
func (c *Client) Return(ctx context.Context, bookingID int64, ret domain.BookingReturn) (*domain.Booking, error) {
	var booking domain.Booking
	path := fmt.Sprintf("/frotas/bookings/%d/return", bookingID)
	if err := c.doJSON(ctx, http.MethodPost, path, ret, &booking); err != nil {
		return nil, err
	}
	return &booking, nil
}

// ListFuelSupplies lists every refuelling record. Admin only.
func (c *Client) ListFuelSupplies(ctx context.Context) ([]domain.FuelSupply, error) {
	var supplies []domain.FuelSupply
	if err := c.doJSON(ctx, http.MethodGet, "/frota/fuel-supplies", nil, &supplies); err != nil {
		return nil, err
	}
	return supplies, nil
}

// MyFuelSupplies lists the current user's refuelling records.
func (c *Client) MyFuelSupplies(ctx context.Context) ([]domain.FuelSupply, error) {
	var supplies []domain.FuelSupply
	if err := c.doJSON(ctx, http.MethodGet, "/frota/fuel-supplies/my-supplies", nil, &supplies); err != nil {
		return nil, err
	}
	return supplies, nil
}

// FuelSuppliesByVehicle lists the refuelling records of one vehicle.
func (c *Client) FuelSuppliesByVehicle(ctx context.Context, vehicleID int64) ([]domain.FuelSupply, error) {
	var supplies []domain.FuelSupply
	path := fmt.Sprintf("/frota/fuel-supplies/vehicle/%d", vehicleID)
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &supplies); err != nil {
		return nil, err
	}
	return supplies, nil
}

// CreateFuelSupply records a refuelling.
func (c *Client) CreateFuelSupply(ctx context.Context, create domain.FuelSupplyCreate) (*domain.FuelSupply, error) {
	var supply domain.FuelSupply
	if err := c.doJSON(ctx, http.MethodPost, "/frota/fuel-supplies", create, &supply); err != nil {
		return nil, err
	}
	return &supply, nil
}

// DeleteFuelSupply removes a refuelling record.
func (c *Client) DeleteFuelSupply(ctx context.Context, fuelSupplyID int64) error {
	path := fmt.Sprintf("/frota/fuel-supplies/%d", fuelSupplyID)
	return c.doJSON(ctx, http.MethodDelete, path, nil, nil)
}
