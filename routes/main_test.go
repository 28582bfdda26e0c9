package routes

import (
	"log"
	"net/http"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-playground/validator/v10"
	"github.com/kataras/iris/v12"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/adya-r/travelgo/utils"
)

const testSecret = "testsecret"

// newMockDB returns a gorm handle backed by sqlmock so handler tests
// can run without a real Postgres.
func newMockDB() (*gorm.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	if err != nil {
		log.Fatalf("An error '%s' was not expected when opening a stub database connection", err)
	}

	gormDB, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{
		TranslateError: true,
	})
	if err != nil {
		log.Fatalf("An error '%s' was not expected when opening gorm database", err)
	}

	return gormDB, mock
}

// buildTestApp wires the API routes exactly as main does, minus the
// static file handlers.
func buildTestApp(db *gorm.DB, uploadsDir string) (*iris.Application, *utils.TokenService) {
	tokens := utils.NewTokenService(testSecret)

	app := iris.New()
	app.Validator = validator.New()

	users := NewUserHandler(db, tokens)
	places := NewPlaceHandler(db)
	bookings := NewBookingHandler(db)
	uploads := NewUploadHandler(uploadsDir)

	auth := tokens.Auth()

	app.Post("/register", users.Register)
	app.Post("/login", users.Login)
	app.Post("/logout", users.Logout)
	app.Get("/profile", users.Profile)

	app.Post("/upload-by-link", uploads.ByLink)
	app.Post("/upload", uploads.Photos)

	app.Get("/places", places.List)
	app.Get("/places/{id}", places.GetByID)
	app.Post("/places", auth, places.Create)
	app.Put("/places", auth, places.Update)
	app.Get("/user-places", auth, places.ListOwn)

	app.Post("/bookings", auth, bookings.Create)
	app.Get("/bookings", auth, bookings.ListOwn)

	if err := app.Build(); err != nil {
		log.Fatalf("An error '%s' was not expected when building the test app", err)
	}

	return app, tokens
}

// sessionCookie signs a token for the given identity and wraps it in
// the cookie the auth gate reads.
func sessionCookie(tokens *utils.TokenService, id uint, email string) *http.Cookie {
	token, err := tokens.Issue(id, email)
	if err != nil {
		log.Fatalf("An error '%s' was not expected when signing a test token", err)
	}
	return &http.Cookie{Name: utils.SessionCookieName, Value: token}
}
