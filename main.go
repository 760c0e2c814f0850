package main

import (
	"crypto/rand"
	"encoding/base64"
	"net/http"
	"time"

	"sealife/constants"

	"github.com/fatih/color"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var db *gorm.DB

func main() {
	initConfig()
	initLogging()
	initDatabase(viper.GetString("db.path"))
	if err := bootstrapAdmin(); err != nil {
		log.Fatalf("bootstrapping admin: %v", err)
	}

	r := initRouter()
	addr := viper.GetString("server.addr")
	log.Infof("Running on http://localhost%s", addr)
	log.Fatal(http.ListenAndServe(addr, r))
}

func initConfig() {
	viper.SetDefault("server.addr", ":5050")
	viper.SetDefault("db.path", "sealife.db")
	viper.SetDefault("uploads.dir", "static/uploads")
	viper.SetDefault("admin.username", "admin")
	viper.SetDefault("admin.initial_password", "")
	viper.SetDefault("smtp.port", "587")
	viper.SetDefault("log.level", "info")

	viper.SetConfigName("config")
	viper.SetConfigType("toml")
	viper.AddConfigPath(".")
	if err := viper.ReadInConfig(); err != nil {
		if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound {
			log.Fatalf("reading config: %v", err)
		}
	}

	viper.SetEnvPrefix("SEALIFE")
	viper.AutomaticEnv()
}

func initLogging() {
	level, err := log.ParseLevel(viper.GetString("log.level"))
	if err != nil {
		level = log.InfoLevel
	}
	log.SetLevel(level)
}

func initDatabase(path string) {
	var err error
	db, err = gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	err = db.AutoMigrate(&Admin{}, &Trip{}, &BlogPost{}, &GalleryItem{}, &ContactRequest{}, &Session{})
	if err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}
}

// bootstrapAdmin creates the single admin account on first run. The initial
// password comes from config; when unset a random one is generated and
// printed once, never persisted in clear.
func bootstrapAdmin() error {
	var count int64
	if err := db.Model(&Admin{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	password := viper.GetString("admin.initial_password")
	generated := false
	if password == "" {
		password = generatePassword()
		generated = true
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := Admin{
		Username:     viper.GetString("admin.username"),
		PasswordHash: string(hash),
	}
	if err := db.Create(&admin).Error; err != nil {
		return err
	}

	if generated {
		color.Yellow("Admin %q created with generated password: %s", admin.Username, password)
		color.Yellow("Set admin.initial_password in config.toml to control this on a fresh database.")
	} else {
		log.Infof("Admin %q created with the configured initial password", admin.Username)
	}
	return nil
}

func generatePassword() string {
	buf := make([]byte, 12)
	if _, err := rand.Read(buf); err != nil {
		log.Fatalf("generating admin password: %v", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf)
}

func initRouter() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestSize(constants.MAX_UPLOAD_BYTES))
	r.Use(SessionMiddleware)

	r.Get("/", HomePage)
	r.Get("/about", AboutPage)
	r.Get("/trips", TripsPage)
	r.Get("/trip/{tripID}", TripDetailPage)
	r.Get("/blog", BlogPage)
	r.Get("/blog/{slug}", BlogPostPage)
	r.Get("/gallery", GalleryPage)
	r.Get("/contact", ContactPage)
	r.With(httprate.LimitByIP(10, time.Minute)).Post("/contact", ContactSubmit)
	r.Get("/set-lang/{lang}", SetLangPage)

	r.Route("/admin", func(r chi.Router) {
		r.Get("/login", AdminLogin)
		r.Post("/login", AdminLogin)

		r.Group(func(r chi.Router) {
			r.Use(AdminAuthMiddleware)
			r.Get("/", AdminDashboard)
			r.Get("/logout", AdminLogout)

			r.Get("/trips", AdminTripList)
			r.Get("/trips/add", AdminTripAdd)
			r.Post("/trips/add", AdminTripAdd)
			r.Get("/trips/edit/{tripID}", AdminTripEdit)
			r.Post("/trips/edit/{tripID}", AdminTripEdit)
			r.Post("/trips/delete/{tripID}", AdminTripDelete)

			r.Get("/blog", AdminBlogList)
			r.Get("/blog/add", AdminBlogAdd)
			r.Post("/blog/add", AdminBlogAdd)
			r.Get("/blog/edit/{postID}", AdminBlogEdit)
			r.Post("/blog/edit/{postID}", AdminBlogEdit)
			r.Post("/blog/delete/{postID}", AdminBlogDelete)

			r.Get("/gallery", AdminGalleryList)
			r.Get("/gallery/add", AdminGalleryAdd)
			r.Post("/gallery/add", AdminGalleryAdd)
			r.Post("/gallery/delete/{itemID}", AdminGalleryDelete)

			r.Get("/contacts", AdminContactList)
			r.Post("/contacts/mark-read/{contactID}", AdminContactMarkRead)
		})
	})

	// Uploaded images are served with a permissive CORS policy so they can
	// be embedded anywhere.
	r.Route("/static", func(r chi.Router) {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: []string{"*"},
			AllowedMethods: []string{"GET", "HEAD"},
		}))
		uploads := http.StripPrefix("/static/uploads/", http.FileServer(http.Dir(viper.GetString("uploads.dir"))))
		r.Get("/uploads/*", uploads.ServeHTTP)

		assets := http.StripPrefix("/static/", http.FileServer(http.Dir("static")))
		r.Get("/css/*", assets.ServeHTTP)
	})

	return r
}
