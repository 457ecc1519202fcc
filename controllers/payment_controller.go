package controllers

import (
	"foodhub/pkg/resp"
	"foodhub/services"
	"foodhub/utils"

	"github.com/gin-gonic/gin"
)

type PaymentController struct{ Svc *services.PaymentService }

func NewPaymentController(s *services.PaymentService) *PaymentController {
	return &PaymentController{Svc: s}
}

// PUT /payment/method
func (h *PaymentController) UpdateMethod(c *gin.Context) {
	uid := utils.CurrentUserID(c)

	var body struct {
		PaymentID uint   `json:"paymentId" binding:"required"`
		Method    string `json:"method" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	if err := h.Svc.UpdateMethod(uid, body.PaymentID, body.Method); err != nil {
		writeServiceError(c, err)
		return
	}
	resp.OK(c, gin.H{"method": body.Method})
}

// POST /payment/createCheckoutSession
func (h *PaymentController) CreateCheckoutSession(c *gin.Context) {
	uid := utils.CurrentUserID(c)

	var body struct {
		PaymentID uint `json:"paymentId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	out, err := h.Svc.CreateCheckoutSession(c.Request.Context(), uid, body.PaymentID)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	resp.OK(c, out)
}

// POST /payment/verify — digital sends paymentId, cash sends orderId
func (h *PaymentController) Verify(c *gin.Context) {
	uid := utils.CurrentUserID(c)

	var body struct {
		PaymentID uint `json:"paymentId"`
		OrderID   uint `json:"orderId"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	switch {
	case body.PaymentID != 0:
		if err := h.Svc.VerifyDigital(c.Request.Context(), uid, body.PaymentID); err != nil {
			writeServiceError(c, err)
			return
		}
	case body.OrderID != 0:
		if err := h.Svc.VerifyCOD(uid, body.OrderID); err != nil {
			writeServiceError(c, err)
			return
		}
	default:
		resp.BadRequest(c, "paymentId or orderId is required")
		return
	}
	resp.OK(c, gin.H{"verified": true})
}

// GET /payment/order/:orderId
func (h *PaymentController) GetForOrder(c *gin.Context) {
	uid := utils.CurrentUserID(c)
	orderID := utils.ParamUint(c, "orderId")

	p, err := h.Svc.GetForOrder(uid, orderID)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	resp.OK(c, p)
}
