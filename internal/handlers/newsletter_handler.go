package handlers

import (
	"steeraway/internal/services"
	"steeraway/internal/utils"

	"github.com/gin-gonic/gin"
)

type NewsletterHandler struct {
	newsletterService services.NewsletterService
}

func NewNewsletterHandler(newsletterService services.NewsletterService) *NewsletterHandler {
	return &NewsletterHandler{
		newsletterService: newsletterService,
	}
}

func (h *NewsletterHandler) Subscribe(c *gin.Context) {
	var request services.SubscribeRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	subscriber, err := h.newsletterService.Subscribe(c.Request.Context(), &request)
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, "Subscribed successfully", subscriber)
}

func (h *NewsletterHandler) Unsubscribe(c *gin.Context) {
	var request services.SubscribeRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	if err := h.newsletterService.Unsubscribe(c.Request.Context(), request.Email); err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, "Unsubscribed successfully", nil)
}

// ListSubscribers is admin only.
func (h *NewsletterHandler) ListSubscribers(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	subscribers, total, err := h.newsletterService.ListSubscribers(c.Request.Context(), params)
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.SuccessResponseWithMeta(c, "Subscribers retrieved successfully", subscribers, &utils.Meta{
		Pagination: utils.CreatePaginationMeta(params, total),
	})
}
