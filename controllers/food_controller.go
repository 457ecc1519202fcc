package controllers

import (
	"errors"
	"strconv"

	"foodhub/entity"
	"foodhub/pkg/resp"
	"foodhub/repository"
	"foodhub/utils"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type FoodController struct {
	FoodRepo *repository.FoodRepository
	UserRepo *repository.UserRepository
}

func NewFoodController(fr *repository.FoodRepository, ur *repository.UserRepository) *FoodController {
	return &FoodController{FoodRepo: fr, UserRepo: ur}
}

// GET /foods?categoryId=&restaurantId=
func (h *FoodController) List(c *gin.Context) {
	categoryID, _ := strconv.Atoi(c.Query("categoryId"))
	restaurantID, _ := strconv.Atoi(c.Query("restaurantId"))

	foods, err := h.FoodRepo.List(uint(categoryID), uint(restaurantID))
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, gin.H{"items": foods})
}

// GET /foods/:id
func (h *FoodController) Detail(c *gin.Context) {
	f, err := h.FoodRepo.GetByID(utils.ParamUint(c, "id"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			resp.NotFound(c, "food not found")
			return
		}
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, f)
}

// GET /categories
func (h *FoodController) Categories(c *gin.Context) {
	cats, err := h.FoodRepo.ListCategories()
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, gin.H{"items": cats})
}

type foodReq struct {
	Name        string          `json:"name" binding:"required"`
	Description string          `json:"description"`
	Picture     string          `json:"picture"`
	Price       decimal.Decimal `json:"price" binding:"required"`
	Stock       int             `json:"stock"`
	IsAvailable *bool           `json:"isAvailable"`
	CategoryID  uint            `json:"categoryId"`
}

// POST /partner/foods
func (h *FoodController) Create(c *gin.Context) {
	uid := utils.CurrentUserID(c)
	rest, err := h.UserRepo.FindRestaurantByUserID(uid)
	if err != nil {
		resp.Forbidden(c, "no restaurant for this account")
		return
	}

	var body foodReq
	if err := c.ShouldBindJSON(&body); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	if body.Price.IsNegative() {
		resp.BadRequest(c, "price must not be negative")
		return
	}

	f := entity.Food{
		Name:         body.Name,
		Description:  body.Description,
		Picture:      body.Picture,
		Price:        body.Price,
		Stock:        body.Stock,
		IsAvailable:  body.IsAvailable == nil || *body.IsAvailable,
		CategoryID:   body.CategoryID,
		RestaurantID: rest.ID,
	}
	if err := h.FoodRepo.Create(&f); err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.Created(c, f)
}

// PATCH /partner/foods/:id
func (h *FoodController) Update(c *gin.Context) {
	uid := utils.CurrentUserID(c)
	rest, err := h.UserRepo.FindRestaurantByUserID(uid)
	if err != nil {
		resp.Forbidden(c, "no restaurant for this account")
		return
	}

	foodID := utils.ParamUint(c, "id")
	owned, err := h.FoodRepo.BelongsToRestaurant(foodID, rest.ID)
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	if !owned {
		resp.NotFound(c, "food not found")
		return
	}

	var body struct {
		Name        *string          `json:"name"`
		Description *string          `json:"description"`
		Picture     *string          `json:"picture"`
		Price       *decimal.Decimal `json:"price"`
		Stock       *int             `json:"stock"`
		IsAvailable *bool            `json:"isAvailable"`
		CategoryID  *uint            `json:"categoryId"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	updates := map[string]any{}
	if body.Name != nil {
		updates["name"] = *body.Name
	}
	if body.Description != nil {
		updates["description"] = *body.Description
	}
	if body.Picture != nil {
		updates["picture"] = *body.Picture
	}
	if body.Price != nil {
		if body.Price.IsNegative() {
			resp.BadRequest(c, "price must not be negative")
			return
		}
		updates["price"] = *body.Price
	}
	if body.Stock != nil {
		updates["stock"] = *body.Stock
	}
	if body.IsAvailable != nil {
		updates["is_available"] = *body.IsAvailable
	}
	if body.CategoryID != nil {
		updates["category_id"] = *body.CategoryID
	}
	if len(updates) == 0 {
		resp.BadRequest(c, "nothing to update")
		return
	}

	if err := h.FoodRepo.Update(foodID, updates); err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, gin.H{"updated": true})
}

// DELETE /partner/foods/:id
func (h *FoodController) Delete(c *gin.Context) {
	uid := utils.CurrentUserID(c)
	rest, err := h.UserRepo.FindRestaurantByUserID(uid)
	if err != nil {
		resp.Forbidden(c, "no restaurant for this account")
		return
	}

	foodID := utils.ParamUint(c, "id")
	owned, err := h.FoodRepo.BelongsToRestaurant(foodID, rest.ID)
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	if !owned {
		resp.NotFound(c, "food not found")
		return
	}

	if err := h.FoodRepo.Delete(foodID); err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, gin.H{"deleted": true})
}
