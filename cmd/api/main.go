package main

import (
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"

	"github.com/confidence-group/hr-analytics-go/internal/config"
	appHTTP "github.com/confidence-group/hr-analytics-go/internal/handler/http"
	"github.com/confidence-group/hr-analytics-go/internal/pkg/database"
	"github.com/confidence-group/hr-analytics-go/internal/pkg/jwt"
	"github.com/confidence-group/hr-analytics-go/internal/pkg/oauth"
	"github.com/confidence-group/hr-analytics-go/internal/pkg/storage"
	"github.com/confidence-group/hr-analytics-go/internal/repository/postgresql"
	analyticsService "github.com/confidence-group/hr-analytics-go/internal/service/analytics"
	configService "github.com/confidence-group/hr-analytics-go/internal/service/appconfig"
	authService "github.com/confidence-group/hr-analytics-go/internal/service/auth"
	cxoService "github.com/confidence-group/hr-analytics-go/internal/service/cxo"
	hierarchyService "github.com/confidence-group/hr-analytics-go/internal/service/hierarchy"
	licenseService "github.com/confidence-group/hr-analytics-go/internal/service/license"
	roleService "github.com/confidence-group/hr-analytics-go/internal/service/role"
	uploadService "github.com/confidence-group/hr-analytics-go/internal/service/upload"
	userService "github.com/confidence-group/hr-analytics-go/internal/service/user"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil)).With(
		slog.String("app", "hr-analytics"),
	)

	dsn := cfg.DatabaseURL()
	db, err := database.NewPostgreSQLDB(dsn)
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}

	userRepo := postgresql.NewUserRepository(db)
	roleRepo := postgresql.NewRoleRepository(db)
	uploadRepo := postgresql.NewUploadRepository(db)
	configRepo := postgresql.NewConfigRepository(db)
	cxoRepo := postgresql.NewCXORepository(db)
	licenseRepo := postgresql.NewLicenseRepository(db)

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.RefreshExpiration)
	GoogleService := oauth.NewGoogleService(cfg.OAuth2Google.ClientID, cfg.OAuth2Google.ClientSecret, cfg.OAuth2Google.RedirectURL, cfg.OAuth2Google.Scopes)
	fileStorage, err := storage.NewLocalStorage(cfg.Storage.BasePath)
	if err != nil {
		log.Fatal("Failed to initialize local storage:", err)
	}

	hierarchySvc := hierarchyService.NewHierarchyService(uploadRepo, cfg.Analytics, logger)
	roleSvc := roleService.NewRoleService(roleRepo)
	userSvc := userService.NewUserService(userRepo, roleSvc, hierarchySvc)
	authSvc := authService.NewAuthService(userRepo, JWTService, GoogleService, cfg.OAuth2Google)
	uploadSvc := uploadService.NewUploadService(uploadRepo, userRepo, hierarchySvc, fileStorage)
	analyticsSvc := analyticsService.NewAnalyticsService(uploadRepo, userRepo, hierarchySvc, cfg.Analytics)
	configSvc := configService.NewConfigService(configRepo)
	cxoSvc := cxoService.NewCXOService(cxoRepo)
	licenseSvc := licenseService.NewLicenseService(licenseRepo)

	authHandler := appHTTP.NewAuthHandler(JWTService, authSvc, cfg.App.FrontendURL)
	userHandler := appHTTP.NewUserHandler(userSvc)
	roleHandler := appHTTP.NewRoleHandler(roleSvc)
	fileHandler := appHTTP.NewFileHandler(uploadSvc)
	employeeHandler := appHTTP.NewEmployeeHandler(hierarchySvc, userRepo, cxoSvc)
	analyticsHandler := appHTTP.NewAnalyticsHandler(analyticsSvc)
	settingsHandler := appHTTP.NewSettingsHandler(configSvc, cxoSvc, licenseSvc)

	router := appHTTP.NewRouter(
		JWTService,
		authHandler,
		userHandler,
		roleHandler,
		fileHandler,
		employeeHandler,
		analyticsHandler,
		settingsHandler,
		cfg.App.FrontendURL,
		cfg.App.Env,
	)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
