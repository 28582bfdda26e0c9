package routes

import (
	"errors"
	"strings"

	"github.com/kataras/iris/v12"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/adya-r/travelgo/models"
	"github.com/adya-r/travelgo/utils"
)

// UserHandler owns the credential endpoints and the session lifecycle.
type UserHandler struct {
	DB     *gorm.DB
	Tokens *utils.TokenService
}

func NewUserHandler(db *gorm.DB, tokens *utils.TokenService) *UserHandler {
	return &UserHandler{DB: db, Tokens: tokens}
}

type RegisterUserInput struct {
	Name     string `json:"name" validate:"required,max=256"`
	Email    string `json:"email" validate:"required,email,max=256"`
	Password string `json:"password" validate:"required,max=256"`
}

type LoginUserInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (h *UserHandler) Register(ctx iris.Context) {
	var userInput RegisterUserInput
	if err := ctx.ReadJSON(&userInput); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	var existingUser models.User
	userExists, userExistsErr := h.getAndHandleUserExists(&existingUser, userInput.Email)
	if userExistsErr != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	if userExists {
		utils.CreateEmailAlreadyRegistered(ctx)
		return
	}

	hashedPassword, hashErr := hashAndSaltPassword(userInput.Password)
	if hashErr != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	newUser := models.User{
		Name:     userInput.Name,
		Email:    strings.ToLower(userInput.Email),
		Password: hashedPassword,
	}

	if err := h.DB.Create(&newUser).Error; err != nil {
		// the unique index can still fire between the pre-check and here
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			utils.CreateEmailAlreadyRegistered(ctx)
			return
		}
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(newUser)
}

func (h *UserHandler) Login(ctx iris.Context) {
	var userInput LoginUserInput
	if err := ctx.ReadJSON(&userInput); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	var existingUser models.User
	userExists, userExistsErr := h.getAndHandleUserExists(&existingUser, userInput.Email)
	if userExistsErr != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	if !userExists {
		utils.CreateInvalidCredentials(ctx)
		return
	}

	passwordErr := bcrypt.CompareHashAndPassword([]byte(existingUser.Password), []byte(userInput.Password))
	if passwordErr != nil {
		utils.CreateInvalidCredentials(ctx)
		return
	}

	token, tokenErr := h.Tokens.Issue(existingUser.ID, existingUser.Email)
	if tokenErr != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.SetCookieKV(utils.SessionCookieName, token, iris.CookiePath("/"), iris.CookieHTTPOnly(true))
	ctx.JSON(existingUser)
}

func (h *UserHandler) Logout(ctx iris.Context) {
	ctx.RemoveCookie(utils.SessionCookieName)
	ctx.JSON(true)
}

// Profile personalizes its output when a valid session cookie is
// present and answers null otherwise, so the client can probe its login
// state without triggering an auth failure.
func (h *UserHandler) Profile(ctx iris.Context) {
	raw := ctx.GetCookie(utils.SessionCookieName)
	if raw == "" {
		ctx.JSON(nil)
		return
	}

	claims, err := h.Tokens.Verify(raw)
	if err != nil {
		ctx.JSON(nil)
		return
	}

	var user models.User
	result := h.DB.Where("id = ?", claims.ID).Limit(1).Find(&user)
	if result.Error != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	if result.RowsAffected == 0 {
		ctx.JSON(nil)
		return
	}

	ctx.JSON(iris.Map{"id": user.ID, "name": user.Name, "email": user.Email})
}

func (h *UserHandler) getAndHandleUserExists(user *models.User, email string) (exists bool, err error) {
	userExistsQuery := h.DB.Where("email = ?", strings.ToLower(email)).Limit(1).Find(user)

	if userExistsQuery.Error != nil {
		return false, userExistsQuery.Error
	}

	return userExistsQuery.RowsAffected > 0, nil
}

func hashAndSaltPassword(password string) (hashedPassword string, err error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}

	return string(bytes), nil
}
