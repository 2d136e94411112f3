package handlers

import (
	"steeraway/internal/middleware"
	"steeraway/internal/services"
	"steeraway/internal/utils"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ReviewHandler struct {
	reviewService services.ReviewService
}

func NewReviewHandler(reviewService services.ReviewService) *ReviewHandler {
	return &ReviewHandler{
		reviewService: reviewService,
	}
}

// CreateReview records a review and folds it into the car's rating.
func (h *ReviewHandler) CreateReview(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		utils.UnauthorizedResponse(c)
		return
	}

	var request services.CreateReviewRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	review, err := h.reviewService.RecordReview(c.Request.Context(), userID, &request)
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.CreatedResponse(c, "Review recorded successfully", review)
}

func (h *ReviewHandler) GetCarReviews(c *gin.Context) {
	carID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid car ID")
		return
	}

	params := utils.GetPaginationParams(c)
	reviews, total, err := h.reviewService.ListCarReviews(c.Request.Context(), carID, params)
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.SuccessResponseWithMeta(c, "Reviews retrieved successfully", reviews, &utils.Meta{
		Pagination: utils.CreatePaginationMeta(params, total),
	})
}

func (h *ReviewHandler) RecentReviews(c *gin.Context) {
	reviews, err := h.reviewService.RecentReviews(c.Request.Context(), utils.RecentBookingsLimit)
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, "Recent reviews retrieved successfully", reviews)
}
