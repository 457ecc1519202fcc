package controllers

import (
	"foodhub/pkg/resp"
	"foodhub/services"
	"foodhub/utils"

	"github.com/gin-gonic/gin"
)

type ReviewController struct{ Svc *services.ReviewService }

func NewReviewController(s *services.ReviewService) *ReviewController {
	return &ReviewController{Svc: s}
}

// POST /reviews — gated on a prior Delivered order containing the food
func (h *ReviewController) Create(c *gin.Context) {
	uid := utils.CurrentUserID(c)

	var body struct {
		FoodID   uint   `json:"foodId" binding:"required"`
		Rating   int    `json:"rating" binding:"required,min=1,max=5"`
		Comments string `json:"comments"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	rev, err := h.Svc.Create(uid, body.FoodID, body.Rating, body.Comments)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	resp.Created(c, rev)
}

// GET /foods/:id/reviews
func (h *ReviewController) ListForFood(c *gin.Context) {
	reviews, err := h.Svc.ListForFood(utils.ParamUint(c, "id"))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	resp.OK(c, gin.H{"items": reviews})
}
