package main

import (
	"blog-backend/config"
	"blog-backend/internal/api/comment"
	"blog-backend/internal/api/post"
	"blog-backend/internal/api/user"
	"blog-backend/internal/middleware"
	"blog-backend/internal/repository/sqlite"
	"blog-backend/internal/service"
	"blog-backend/internal/util"
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/golang-migrate/migrate/v4"
	migratesqlite "github.com/golang-migrate/migrate/v4/database/sqlite3"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"
)

func main() {
	config.Init()

	util.InitLogger(config.AppConfig.LogLevel)
	defer util.Logger.Sync()

	util.Logger.Info("application starting")

	db, err := sql.Open("sqlite3", config.AppConfig.DBPath+"?_foreign_keys=on")
	if err != nil {
		util.Logger.Fatal("failed to open database", zap.Error(err))
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		util.Logger.Fatal("database ping failed", zap.Error(err))
	}

	// sqlite allows a single writer, so keep the pool small
	db.SetMaxOpenConns(1)
	db.SetConnMaxLifetime(5 * time.Minute)

	util.Logger.Info("database connected", zap.String("path", config.AppConfig.DBPath))

	if err := runMigrations(db); err != nil {
		util.Logger.Fatal("migrations failed", zap.Error(err))
	}

	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterValidation("post_status", util.ValidatePostStatus)
	}

	userRepo := sqlite.NewUserRepository(db)
	postRepo := sqlite.NewPostRepository(db)
	commentRepo := sqlite.NewCommentRepository(db)

	userService := service.NewUserService(userRepo, postRepo)
	postService := service.NewPostService(postRepo, userRepo, commentRepo)
	commentService := service.NewCommentService(commentRepo, postRepo, userRepo)

	authHandler := user.NewAuthHandler(userService)
	userHandler := user.NewUserHandler(userService)
	postHandler := post.NewPostHandler(postService)
	commentHandler := comment.NewCommentHandler(commentService)

	errorMonitor := middleware.NewErrorMonitor()

	r := gin.New()
	r.Use(gin.Logger())
	r.Use(middleware.RecoveryMiddleware())
	r.Use(middleware.ErrorMonitorMiddleware(errorMonitor))

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{config.AppConfig.FrontendURL}
	corsConfig.AllowCredentials = true
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"}
	corsConfig.AllowHeaders = []string{
		"Origin",
		"Content-Length",
		"Content-Type",
		"Authorization",
	}
	r.Use(cors.New(corsConfig))

	auth := middleware.AuthMiddleware(userService)

	api := r.Group("/api")
	{
		api.POST("/users", authHandler.Register)
		api.POST("/login", authHandler.Login)
		api.POST("/logout", auth, authHandler.Logout)
		api.POST("/refresh-token", auth, authHandler.RefreshToken)

		api.GET("/users", userHandler.ListUsers)
		api.GET("/users/:id", userHandler.GetUser)
		api.PUT("/users/:id", auth, userHandler.UpdateUser)
		api.DELETE("/users/:id", auth, userHandler.DeleteUser)

		api.POST("/posts", auth, postHandler.CreatePost)
		api.GET("/posts", postHandler.ListPosts)
		api.GET("/posts/:id", postHandler.GetPost)
		api.PATCH("/posts/:id", auth, postHandler.UpdatePost)
		api.DELETE("/posts/:id", auth, postHandler.DeletePost)

		api.POST("/posts/:id/comments", auth, commentHandler.CreateComment)
		api.GET("/posts/:id/comments", commentHandler.ListComments)
		api.DELETE("/comments/:comment_id", auth, commentHandler.DeleteComment)
	}

	srv := &http.Server{
		Addr:    config.AppConfig.ListenAddr,
		Handler: r,
	}

	go func() {
		util.Logger.Info("server listening", zap.String("addr", config.AppConfig.ListenAddr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			util.Logger.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	util.Logger.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		util.Logger.Fatal("forced server shutdown", zap.Error(err))
	}

	util.Logger.Info("server stopped")
}

func runMigrations(db *sql.DB) error {
	driver, err := migratesqlite.WithInstance(db, &migratesqlite.Config{})
	if err != nil {
		return err
	}

	m, err := migrate.NewWithDatabaseInstance(
		"file://"+config.AppConfig.MigrationsPath, "sqlite3", driver)
	if err != nil {
		return err
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}

	util.Logger.Info("migrations applied")
	return nil
}
