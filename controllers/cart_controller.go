package controllers

import (
	"strconv"

	"foodhub/pkg/resp"
	"foodhub/services"
	"foodhub/utils"

	"github.com/gin-gonic/gin"
)

type CartController struct{ Svc *services.CartService }

func NewCartController(s *services.CartService) *CartController { return &CartController{Svc: s} }

// GET /cart
func (h *CartController) Get(c *gin.Context) {
	uid := utils.CurrentUserID(c)
	if uid == 0 {
		resp.Unauthorized(c, "unauthorized")
		return
	}

	cart, err := h.Svc.Get(uid)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	resp.OK(c, cart)
}

// POST /cart/add
func (h *CartController) Add(c *gin.Context) {
	uid := utils.CurrentUserID(c)
	if uid == 0 {
		resp.Unauthorized(c, "unauthorized")
		return
	}

	var body struct {
		FoodID uint `json:"foodId" binding:"required"`
		Qty    int  `json:"quantity"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	if err := h.Svc.Add(uid, body.FoodID, body.Qty); err != nil {
		writeServiceError(c, err)
		return
	}
	resp.Created(c, gin.H{"added": true})
}

// PUT /cart/updateQuantity
func (h *CartController) UpdateQty(c *gin.Context) {
	uid := utils.CurrentUserID(c)
	if uid == 0 {
		resp.Unauthorized(c, "unauthorized")
		return
	}

	var body struct {
		FoodID uint `json:"foodId" binding:"required"`
		Qty    int  `json:"quantity"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	if err := h.Svc.UpdateQty(uid, body.FoodID, body.Qty); err != nil {
		writeServiceError(c, err)
		return
	}
	resp.OK(c, gin.H{"updated": true})
}

// GET /cart/contains/:foodId
func (h *CartController) Contains(c *gin.Context) {
	uid := utils.CurrentUserID(c)
	if uid == 0 {
		resp.Unauthorized(c, "unauthorized")
		return
	}

	foodID, _ := strconv.Atoi(c.Param("foodId"))
	inCart, qty, err := h.Svc.Contains(uid, uint(foodID))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	resp.OK(c, gin.H{"inCart": inCart, "quantity": qty})
}

// DELETE /cart/item
func (h *CartController) RemoveItem(c *gin.Context) {
	uid := utils.CurrentUserID(c)
	if uid == 0 {
		resp.Unauthorized(c, "unauthorized")
		return
	}

	var body struct {
		FoodID uint `json:"foodId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	if err := h.Svc.RemoveItem(uid, body.FoodID); err != nil {
		writeServiceError(c, err)
		return
	}
	resp.OK(c, gin.H{"removed": true})
}

// DELETE /cart/clear
func (h *CartController) Clear(c *gin.Context) {
	uid := utils.CurrentUserID(c)
	if uid == 0 {
		resp.Unauthorized(c, "unauthorized")
		return
	}

	if err := h.Svc.Clear(uid); err != nil {
		writeServiceError(c, err)
		return
	}
	resp.OK(c, gin.H{"cleared": true})
}
