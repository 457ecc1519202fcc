package controllers

import (
	"errors"
	"io"
	"strconv"

	"foodhub/pkg/resp"
	"foodhub/services"
	"foodhub/utils"

	"github.com/gin-gonic/gin"
)

type OrderController struct{ Svc *services.OrderService }

func NewOrderController(s *services.OrderService) *OrderController { return &OrderController{Svc: s} }

// POST /order/create
func (h *OrderController) Create(c *gin.Context) {
	uid := utils.CurrentUserID(c)

	// addressIndex is optional; an absent body means the first address
	var body struct {
		AddressIndex int `json:"addressIndex"`
	}
	if err := c.ShouldBindJSON(&body); err != nil && !errors.Is(err, io.EOF) {
		resp.BadRequest(c, err.Error())
		return
	}

	order, err := h.Svc.CreateFromCart(uid, body.AddressIndex)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	resp.Created(c, order)
}

// GET /order/my
func (h *OrderController) ListForMe(c *gin.Context) {
	uid := utils.CurrentUserID(c)
	items, err := h.Svc.ListForUser(uid, 50)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	resp.OK(c, gin.H{"items": items})
}

// GET /order/:id
func (h *OrderController) Detail(c *gin.Context) {
	uid := utils.CurrentUserID(c)
	id, _ := strconv.Atoi(c.Param("id"))

	order, err := h.Svc.DetailForUser(uid, uint(id))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	resp.OK(c, order)
}

// PUT /order/cancel
func (h *OrderController) Cancel(c *gin.Context) {
	uid := utils.CurrentUserID(c)

	var body struct {
		OrderID uint `json:"orderId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	if err := h.Svc.CancelAsCustomer(uid, body.OrderID); err != nil {
		writeServiceError(c, err)
		return
	}
	resp.OK(c, gin.H{"status": "Cancelled"})
}

// DELETE /order/:id — owner or admin, orthogonal to the status lifecycle
func (h *OrderController) Delete(c *gin.Context) {
	uid := utils.CurrentUserID(c)
	id, _ := strconv.Atoi(c.Param("id"))

	isAdmin := utils.CurrentRole(c) == "admin"
	if err := h.Svc.Delete(uid, isAdmin, uint(id)); err != nil {
		writeServiceError(c, err)
		return
	}
	resp.OK(c, gin.H{"deleted": true})
}

type updateStatusReq struct {
	OrderID uint   `json:"orderId" binding:"required"`
	Status  string `json:"status" binding:"required"`
}

// PUT /partner/orders/status
func (h *OrderController) UpdateStatusAsRestaurant(c *gin.Context) {
	uid := utils.CurrentUserID(c)

	var body updateStatusReq
	if err := c.ShouldBindJSON(&body); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	if err := h.Svc.UpdateStatusAsRestaurant(uid, body.OrderID, body.Status); err != nil {
		writeServiceError(c, err)
		return
	}
	resp.OK(c, gin.H{"status": body.Status})
}

// PUT /admin/orders/status
func (h *OrderController) UpdateStatusAsAdmin(c *gin.Context) {
	var body updateStatusReq
	if err := c.ShouldBindJSON(&body); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	if err := h.Svc.UpdateStatusAsAdmin(body.OrderID, body.Status); err != nil {
		writeServiceError(c, err)
		return
	}
	resp.OK(c, gin.H{"status": body.Status})
}

// GET /partner/orders
func (h *OrderController) ListForRestaurant(c *gin.Context) {
	uid := utils.CurrentUserID(c)
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	var statusID *uint
	if sid, err := strconv.Atoi(c.Query("statusId")); err == nil && sid > 0 {
		v := uint(sid)
		statusID = &v
	}

	out, err := h.Svc.ListForRestaurant(uid, statusID, page, limit)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	resp.OK(c, out)
}

// GET /partner/orders/:id
func (h *OrderController) DetailForRestaurant(c *gin.Context) {
	uid := utils.CurrentUserID(c)
	id, _ := strconv.Atoi(c.Param("id"))

	order, err := h.Svc.DetailForRestaurant(uid, uint(id))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	resp.OK(c, order)
}

// GET /admin/orders
func (h *OrderController) ListAll(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	var statusID *uint
	if sid, err := strconv.Atoi(c.Query("statusId")); err == nil && sid > 0 {
		v := uint(sid)
		statusID = &v
	}

	out, err := h.Svc.ListAll(statusID, page, limit)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	resp.OK(c, out)
}
