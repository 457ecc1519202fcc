package controllers

import (
	"foodhub/pkg/resp"
	"foodhub/services"
	"foodhub/utils"

	"github.com/gin-gonic/gin"
)

type AuthController struct{ Svc *services.AuthService }

func NewAuthController(s *services.AuthService) *AuthController { return &AuthController{Svc: s} }

// POST /auth/register
func (h *AuthController) Register(c *gin.Context) {
	var body struct {
		Email       string `json:"email" binding:"required,email"`
		Password    string `json:"password" binding:"required,min=6"`
		FirstName   string `json:"firstName"`
		LastName    string `json:"lastName"`
		PhoneNumber string `json:"phoneNumber"`
		Role        string `json:"role"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	user, err := h.Svc.Register(body.Email, body.Password, body.FirstName, body.LastName, body.PhoneNumber, body.Role)
	if err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	resp.Created(c, user)
}

// POST /auth/login
func (h *AuthController) Login(c *gin.Context) {
	var body struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	token, user, err := h.Svc.Login(body.Email, body.Password)
	if err != nil {
		resp.Unauthorized(c, err.Error())
		return
	}
	resp.OK(c, gin.H{"token": token, "user": user})
}

// GET /auth/me
func (h *AuthController) Me(c *gin.Context) {
	uid := utils.CurrentUserID(c)
	user, err := h.Svc.GetProfile(uid)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	resp.OK(c, user)
}

// GET /profile/address
func (h *AuthController) ListAddresses(c *gin.Context) {
	uid := utils.CurrentUserID(c)
	addrs, err := h.Svc.ListAddresses(uid)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	resp.OK(c, gin.H{"items": addrs})
}

// POST /profile/address
func (h *AuthController) AddAddress(c *gin.Context) {
	uid := utils.CurrentUserID(c)

	var body struct {
		Label   string `json:"label" binding:"required"`
		Details string `json:"details" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	addr, err := h.Svc.AddAddress(uid, body.Label, body.Details)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	resp.Created(c, addr)
}

// DELETE /profile/address/:id
func (h *AuthController) DeleteAddress(c *gin.Context) {
	uid := utils.CurrentUserID(c)
	if err := h.Svc.DeleteAddress(uid, utils.ParamUint(c, "id")); err != nil {
		writeServiceError(c, err)
		return
	}
	resp.OK(c, gin.H{"deleted": true})
}
