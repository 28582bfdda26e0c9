package routes

import (
	"github.com/kataras/iris/v12"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/adya-r/travelgo/models"
	"github.com/adya-r/travelgo/utils"
)

type BookingHandler struct {
	DB *gorm.DB
}

func NewBookingHandler(db *gorm.DB) *BookingHandler {
	return &BookingHandler{DB: db}
}

type CreateBookingInput struct {
	Place          uint    `json:"place" validate:"required"`
	CheckIn        string  `json:"checkIn" validate:"required"`
	CheckOut       string  `json:"checkOut" validate:"required"`
	NumberOfGuests int     `json:"numberOfGuests" validate:"min=0"`
	Name           string  `json:"name" validate:"required"`
	Phone          string  `json:"phone" validate:"required"`
	Price          float32 `json:"price" validate:"min=0"`
}

// Create records a reservation for the authenticated identity. The
// referenced place and the date interval are taken as given: no
// existence, ordering or overlap checks happen here.
func (h *BookingHandler) Create(ctx iris.Context) {
	var input CreateBookingInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	claims := utils.GetSession(ctx)

	booking := models.Booking{
		PlaceID:        input.Place,
		UserID:         claims.ID,
		CheckIn:        input.CheckIn,
		CheckOut:       input.CheckOut,
		NumberOfGuests: input.NumberOfGuests,
		Name:           input.Name,
		Phone:          input.Phone,
		Price:          input.Price,
	}

	if err := h.DB.Omit(clause.Associations).Create(&booking).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(&booking)
}

// ListOwn returns the identity's bookings with each referenced place
// joined in, which is what the bookings page renders.
func (h *BookingHandler) ListOwn(ctx iris.Context) {
	claims := utils.GetSession(ctx)

	var bookings []models.Booking
	err := h.DB.Preload("Place").Where("user_id = ?", claims.ID).Find(&bookings).Error
	if err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(bookings)
}
