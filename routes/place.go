package routes

import (
	"encoding/json"
	"strconv"

	"github.com/kataras/iris/v12"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/adya-r/travelgo/models"
	"github.com/adya-r/travelgo/utils"
)

type PlaceHandler struct {
	DB *gorm.DB
}

func NewPlaceHandler(db *gorm.DB) *PlaceHandler {
	return &PlaceHandler{DB: db}
}

// PlaceInput carries the mutable fields of a place, shared by create
// and update. Photo names come from the upload endpoints.
type PlaceInput struct {
	Title       string   `json:"title" validate:"required,max=256"`
	Address     string   `json:"address" validate:"required,max=512"`
	AddedPhotos []string `json:"addedPhotos"`
	Description string   `json:"description"`
	Perks       []string `json:"perks"`
	ExtraInfo   string   `json:"extraInfo"`
	CheckIn     string   `json:"checkIn" validate:"max=10"`
	CheckOut    string   `json:"checkOut" validate:"max=10"`
	MaxGuests   int      `json:"maxGuests" validate:"min=0"`
	Price       float32  `json:"price" validate:"min=0"`
}

type UpdatePlaceInput struct {
	ID uint `json:"id" validate:"required"`
	PlaceInput
}

func (h *PlaceHandler) Create(ctx iris.Context) {
	var input PlaceInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	claims := utils.GetSession(ctx)

	place := models.Place{
		OwnerID:     claims.ID,
		Title:       input.Title,
		Address:     input.Address,
		Photos:      marshalStringList(input.AddedPhotos),
		Description: input.Description,
		Perks:       marshalStringList(input.Perks),
		ExtraInfo:   input.ExtraInfo,
		CheckIn:     input.CheckIn,
		CheckOut:    input.CheckOut,
		MaxGuests:   input.MaxGuests,
		Price:       input.Price,
	}

	if err := h.DB.Omit(clause.Associations).Create(&place).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(&place)
}

// GetByID answers null rather than 404 for unknown ids; the client
// treats an empty response as "nothing to show".
func (h *PlaceHandler) GetByID(ctx iris.Context) {
	id, err := strconv.ParseUint(ctx.Params().Get("id"), 10, 64)
	if err != nil {
		ctx.JSON(nil)
		return
	}

	var place models.Place
	result := h.DB.Where("id = ?", id).Limit(1).Find(&place)
	if result.Error != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	if result.RowsAffected == 0 {
		ctx.JSON(nil)
		return
	}

	ctx.JSON(&place)
}

func (h *PlaceHandler) List(ctx iris.Context) {
	var places []models.Place
	if err := h.DB.Find(&places).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(places)
}

func (h *PlaceHandler) ListOwn(ctx iris.Context) {
	claims := utils.GetSession(ctx)

	var places []models.Place
	if err := h.DB.Where("owner_id = ?", claims.ID).Find(&places).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(places)
}

func (h *PlaceHandler) Update(ctx iris.Context) {
	var input UpdatePlaceInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	claims := utils.GetSession(ctx)

	var place models.Place
	result := h.DB.Where("id = ?", input.ID).Limit(1).Find(&place)
	if result.Error != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	if result.RowsAffected == 0 {
		utils.CreateNotFound(ctx)
		return
	}

	if place.OwnerID != claims.ID {
		utils.CreateForbidden(ctx)
		return
	}

	place.Title = input.Title
	place.Address = input.Address
	place.Photos = marshalStringList(input.AddedPhotos)
	place.Description = input.Description
	place.Perks = marshalStringList(input.Perks)
	place.ExtraInfo = input.ExtraInfo
	place.CheckIn = input.CheckIn
	place.CheckOut = input.CheckOut
	place.MaxGuests = input.MaxGuests
	place.Price = input.Price

	if err := h.DB.Omit(clause.Associations).Save(&place).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON("ok")
}

// marshalStringList never stores null so the JSON columns always read
// back as arrays.
func marshalStringList(list []string) datatypes.JSON {
	if list == nil {
		list = []string{}
	}
	data, _ := json.Marshal(list)
	return datatypes.JSON(data)
}
