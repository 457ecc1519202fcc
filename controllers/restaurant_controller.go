package controllers

import (
	"errors"

	"foodhub/entity"
	"foodhub/pkg/resp"
	"foodhub/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type RestaurantController struct{ DB *gorm.DB }

func NewRestaurantController(db *gorm.DB) *RestaurantController {
	return &RestaurantController{DB: db}
}

// GET /restaurants
func (h *RestaurantController) List(c *gin.Context) {
	var items []entity.Restaurant
	if err := h.DB.Order("id ASC").Find(&items).Error; err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, gin.H{"items": items})
}

// GET /restaurants/:id
func (h *RestaurantController) Detail(c *gin.Context) {
	var r entity.Restaurant
	if err := h.DB.Preload("Foods").First(&r, utils.ParamUint(c, "id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			resp.NotFound(c, "restaurant not found")
			return
		}
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, r)
}

// POST /partner/restaurant — one restaurant per partner account
func (h *RestaurantController) Create(c *gin.Context) {
	uid := utils.CurrentUserID(c)

	var count int64
	h.DB.Model(&entity.Restaurant{}).Where("user_id = ?", uid).Count(&count)
	if count > 0 {
		resp.Conflict(c, "restaurant already exists for this account")
		return
	}

	var body struct {
		Name        string `json:"name" binding:"required"`
		Address     string `json:"address"`
		Description string `json:"description"`
		Picture     string `json:"picture"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	r := entity.Restaurant{
		Name:        body.Name,
		Address:     body.Address,
		Description: body.Description,
		Picture:     body.Picture,
		UserID:      uid,
	}
	if err := h.DB.Create(&r).Error; err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.Created(c, r)
}

// GET /partner/restaurant
func (h *RestaurantController) Mine(c *gin.Context) {
	uid := utils.CurrentUserID(c)
	var r entity.Restaurant
	if err := h.DB.Where("user_id = ?", uid).First(&r).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			resp.NotFound(c, "no restaurant for this account")
			return
		}
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, r)
}
