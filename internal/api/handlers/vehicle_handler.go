// internal/api/handlers/vehicle_handler.go
package handlers

import (
	"net/http"
	"time"

	"prestige-motors-api-server/internal/database"
	"prestige-motors-api-server/internal/models"

	"github.com/gin-gonic/gin"
)

type VehicleHandler struct {
	Repo *database.Repository
}

type CreateVehiclePayload struct {
	Make         string   `json:"make" binding:"required"`
	Model        string   `json:"model" binding:"required"`
	Year         int      `json:"year" binding:"required,gte=1900"`
	Price        float64  `json:"price" binding:"gte=0"`
	Mileage      float64  `json:"mileage" binding:"gte=0"`
	Color        string   `json:"color" binding:"required"`
	Transmission string   `json:"transmission" binding:"required,oneof=automatic manual"`
	FuelType     string   `json:"fuelType" binding:"required,oneof=petrol diesel electric hybrid"`
	Description  string   `json:"description" binding:"required"`
	Features     []string `json:"features"`
	Images       []string `json:"images"`
	InStock      *bool    `json:"inStock" binding:"required"`
}

// ListVehicles returns the catalog, newest activity first, optionally
// narrowed by the storefront's filter parameters.
func (h *VehicleHandler) ListVehicles(c *gin.Context) {
	vehicles := h.Repo.ListVehicles(c.Request.Context())

	makeFilter := c.Query("make")
	fuelType := c.Query("fuelType")
	transmission := c.Query("transmission")
	inStock := c.Query("inStock")

	filtered := make([]models.Vehicle, 0, len(vehicles))
	for _, v := range vehicles {
		if makeFilter != "" && v.Make != makeFilter {
			continue
		}
		if fuelType != "" && v.FuelType != fuelType {
			continue
		}
		if transmission != "" && v.Transmission != transmission {
			continue
		}
		if inStock == "true" && !v.InStock {
			continue
		}
		filtered = append(filtered, v)
	}

	c.JSON(http.StatusOK, filtered)
}

// GetVehicle returns a single catalog entry.
func (h *VehicleHandler) GetVehicle(c *gin.Context) {
	vehicle := h.Repo.GetVehicle(c.Request.Context(), c.Param("id"))
	if vehicle == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Vehicle not found"})
		return
	}
	c.JSON(http.StatusOK, vehicle)
}

// CreateVehicle adds a new catalog entry (admin only).
func (h *VehicleHandler) CreateVehicle(c *gin.Context) {
	var payload CreateVehiclePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if payload.Year > time.Now().Year()+1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Year is too far in the future"})
		return
	}

	vehicle := h.Repo.InsertVehicle(c.Request.Context(), models.Vehicle{
		Make:         payload.Make,
		Model:        payload.Model,
		Year:         payload.Year,
		Price:        payload.Price,
		Mileage:      payload.Mileage,
		Color:        payload.Color,
		Transmission: payload.Transmission,
		FuelType:     payload.FuelType,
		Description:  payload.Description,
		Features:     payload.Features,
		Images:       payload.Images,
		InStock:      *payload.InStock,
	})

	c.JSON(http.StatusCreated, vehicle)
}

// UpdateVehicle applies a partial update to a catalog entry (admin only).
func (h *VehicleHandler) UpdateVehicle(c *gin.Context) {
	var patch models.VehiclePatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if patch.Transmission != nil && *patch.Transmission != models.TransmissionAutomatic && *patch.Transmission != models.TransmissionManual {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid transmission"})
		return
	}
	if patch.FuelType != nil {
		switch *patch.FuelType {
		case models.FuelPetrol, models.FuelDiesel, models.FuelElectric, models.FuelHybrid:
		default:
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid fuel type"})
			return
		}
	}

	vehicle := h.Repo.UpdateVehicle(c.Request.Context(), c.Param("id"), patch)
	if vehicle == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Vehicle not found"})
		return
	}

	c.JSON(http.StatusOK, vehicle)
}

// DeleteVehicle removes a catalog entry (admin only).
func (h *VehicleHandler) DeleteVehicle(c *gin.Context) {
	if !h.Repo.DeleteVehicle(c.Request.Context(), c.Param("id")) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Vehicle not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Vehicle deleted successfully"})
}
