package main

import (
	"log"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/kataras/iris/v12"
	"gorm.io/gorm"

	"github.com/adya-r/travelgo/config"
	"github.com/adya-r/travelgo/routes"
	"github.com/adya-r/travelgo/storage"
	"github.com/adya-r/travelgo/utils"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	db := storage.ConnectWithRetry(cfg.DatabaseURL, 5*time.Second)
	defer storage.Close(db)

	if err := storage.Migrate(db); err != nil {
		log.Fatal("error running migrations: ", err)
	}

	tokens := utils.NewTokenService(cfg.JWTSecret)

	app := newApp(db, tokens, cfg)
	if err := app.Listen(cfg.Addr); err != nil {
		log.Fatal(err)
	}
}

func newApp(db *gorm.DB, tokens *utils.TokenService, cfg *config.Config) *iris.Application {
	app := iris.New()
	app.Validator = validator.New()

	app.AllowMethods(iris.MethodOptions)
	app.UseRouter(corsMiddleware(cfg.ClientOrigin))

	// uploaded photos are public; the client is a static single page
	app.HandleDir("/uploads", iris.Dir(cfg.UploadsDir))
	app.HandleDir("/", iris.Dir(cfg.ClientDir))

	users := routes.NewUserHandler(db, tokens)
	places := routes.NewPlaceHandler(db)
	bookings := routes.NewBookingHandler(db)
	uploads := routes.NewUploadHandler(cfg.UploadsDir)

	auth := tokens.Auth()

	app.Get("/test", connectivityProbe(db))

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

	return app
}

func corsMiddleware(origin string) iris.Handler {
	return func(ctx iris.Context) {
		ctx.Header("Access-Control-Allow-Origin", origin)
		ctx.Header("Vary", "Origin")
		ctx.Header("Access-Control-Allow-Credentials", "true")
		ctx.Header("Access-Control-Allow-Headers", "Authorization, Content-Type")
		ctx.Header("Access-Control-Allow-Methods", "GET,POST,PUT,DELETE,OPTIONS")
		if ctx.Method() == iris.MethodOptions {
			ctx.StatusCode(iris.StatusNoContent)
			return
		}
		ctx.Next()
	}
}

func connectivityProbe(db *gorm.DB) iris.Handler {
	return func(ctx iris.Context) {
		sqlDB, err := db.DB()
		if err == nil {
			err = sqlDB.Ping()
		}
		if err != nil {
			ctx.JSON("Connection failed")
			return
		}
		ctx.JSON("test ok")
	}
}
