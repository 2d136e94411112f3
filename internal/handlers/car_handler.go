package handlers

import (
	"strconv"

	"steeraway/internal/models"
	"steeraway/internal/repositories/interfaces"
	"steeraway/internal/services"
	"steeraway/internal/utils"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type CarHandler struct {
	carService services.CarService
}

func NewCarHandler(carService services.CarService) *CarHandler {
	return &CarHandler{
		carService: carService,
	}
}

// ListCars is the public catalog listing with search and filters.
func (h *CarHandler) ListCars(c *gin.Context) {
	params := utils.GetPaginationParams(c)
	filter := carFilterFromQuery(c)

	cars, total, err := h.carService.ListCars(c.Request.Context(), filter, params)
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.SuccessResponseWithMeta(c, "Cars retrieved successfully", cars, &utils.Meta{
		Pagination: utils.CreatePaginationMeta(params, total),
	})
}

// GetCar returns one car plus related cars of the same brand.
func (h *CarHandler) GetCar(c *gin.Context) {
	carID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid car ID")
		return
	}

	detail, err := h.carService.GetCar(c.Request.Context(), carID)
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, "Car retrieved successfully", detail)
}

func (h *CarHandler) CreateCar(c *gin.Context) {
	var request services.CreateCarRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	car, err := h.carService.CreateCar(c.Request.Context(), &request)
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.CreatedResponse(c, "Car created successfully", car)
}

func (h *CarHandler) UpdateCar(c *gin.Context) {
	carID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid car ID")
		return
	}

	var request services.UpdateCarRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	car, err := h.carService.UpdateCar(c.Request.Context(), carID, &request)
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, "Car updated successfully", car)
}

// UpdatePricing replaces the car's whole rate sheet.
func (h *CarHandler) UpdatePricing(c *gin.Context) {
	carID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid car ID")
		return
	}

	var sheet models.PricingSheet
	if err := c.ShouldBindJSON(&sheet); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	car, err := h.carService.UpdatePricing(c.Request.Context(), carID, sheet)
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, "Pricing updated successfully", car)
}

func (h *CarHandler) DeleteCar(c *gin.Context) {
	carID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid car ID")
		return
	}

	if err := h.carService.DeleteCar(c.Request.Context(), carID); err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, "Car deleted successfully", nil)
}

func (h *CarHandler) Brands(c *gin.Context) {
	brands, err := h.carService.Brands(c.Request.Context())
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, "Brands retrieved successfully", brands)
}

func (h *CarHandler) FeaturedCars(c *gin.Context) {
	cars, err := h.carService.FeaturedCars(c.Request.Context())
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, "Featured cars retrieved successfully", cars)
}

func carFilterFromQuery(c *gin.Context) *interfaces.CarFilter {
	filter := &interfaces.CarFilter{
		Brand:  c.Query("brand"),
		Status: models.CarStatus(c.Query("status")),
	}

	if v := c.Query("is_electric"); v != "" {
		if electric, err := strconv.ParseBool(v); err == nil {
			filter.IsElectric = &electric
		}
	}
	if v := c.Query("min_price"); v != "" {
		if price, err := strconv.ParseFloat(v, 64); err == nil {
			filter.MinPrice = &price
		}
	}
	if v := c.Query("max_price"); v != "" {
		if price, err := strconv.ParseFloat(v, 64); err == nil {
			filter.MaxPrice = &price
		}
	}
	if v := c.Query("min_rating"); v != "" {
		if rating, err := strconv.ParseFloat(v, 64); err == nil {
			filter.MinRating = &rating
		}
	}

	return filter
}
