package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/maprecruit/platform/pkg/iam/auth"
	"github.com/maprecruit/platform/pkg/iam/hierarchy"
	"github.com/maprecruit/platform/pkg/iam/hierarchy/hierarchyinfra"
	"github.com/maprecruit/platform/pkg/iam/hierarchy/hierarchysrv"
	"github.com/maprecruit/platform/pkg/iam/permission/permissionapi"
	"github.com/maprecruit/platform/pkg/iam/permission/permissioninfra"
	"github.com/maprecruit/platform/pkg/iam/permission/permissionsrv"
	"github.com/maprecruit/platform/pkg/iam/sharing"
	"github.com/maprecruit/platform/pkg/iam/sharing/sharingapi"
	"github.com/maprecruit/platform/pkg/iam/sharing/sharinginfra"
	"github.com/maprecruit/platform/pkg/iam/sharing/sharingsrv"
	"github.com/maprecruit/platform/pkg/iam/tenancy"
	"github.com/maprecruit/platform/pkg/iam/tenancy/tenancyapi"
	"github.com/maprecruit/platform/pkg/iam/tenancy/tenancyinfra"
	"github.com/maprecruit/platform/pkg/iam/tenancy/tenancysrv"
	"github.com/maprecruit/platform/pkg/iam/user"
	"github.com/maprecruit/platform/pkg/iam/user/userinfra"
	"github.com/maprecruit/platform/pkg/iam/user/usersrv"
	"github.com/maprecruit/platform/pkg/logx"
	"github.com/maprecruit/platform/recruitment/campaign/campaignapi"
	"github.com/maprecruit/platform/recruitment/campaign/campaigninfra"
	"github.com/maprecruit/platform/recruitment/campaign/campaignsrv"
)

// Container holds all application dependencies
type Container struct {
	// Config
	AuthConfig auth.Config

	// Infrastructure
	DB    *sqlx.DB
	Redis *redis.Client

	// Repositories shared across handlers
	UserRepo user.UserRepository

	// Core IAM Services
	TokenService      auth.TokenService
	AuthService       *auth.AuthHandlers
	UserService       *usersrv.UserService
	SharingService    *sharingsrv.SharingService
	PermissionService *permissionsrv.PermissionService
	HierarchyService  *hierarchysrv.HierarchyService
	TenancyService    *tenancysrv.TenancyService

	// Recruitment Services
	CampaignService *campaignsrv.CampaignService

	// API Handlers
	SharingHandlers    *sharingapi.Handlers
	PermissionHandlers *permissionapi.Handlers
	TenancyHandlers    *tenancyapi.Handlers
	CampaignHandlers   *campaignapi.Handlers

	// Middleware
	AuthMiddleware *auth.TokenMiddleware
}

// NewContainer initializes the dependency injection container
func NewContainer() *Container {
	c := &Container{}
	c.initInfrastructure()
	c.initServices()
	return c
}

func (c *Container) initInfrastructure() {
	// 1. Database Connection
	dbHost := os.Getenv("DB_HOST")
	dbPort := os.Getenv("DB_PORT")
	dbUser := os.Getenv("DB_USER")
	dbPass := os.Getenv("DB_PASS")
	dbName := os.Getenv("DB_NAME")
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		dbHost, dbPort, dbUser, dbPass, dbName)

	db, err := sqlx.Connect("postgres", dsn)
	if err != nil {
		logx.Fatalf("Failed to connect to database: %v", err)
	}
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)
	c.DB = db

	// 2. Redis Connection
	redisAddr := os.Getenv("REDIS_ADDR")
	redisPass := os.Getenv("REDIS_PASS")
	c.Redis = redis.NewClient(&redis.Options{
		Addr:     redisAddr,
		Password: redisPass,
		DB:       0,
	})
	if _, err := c.Redis.Ping(context.Background()).Result(); err != nil {
		logx.Warnf("Failed to connect to Redis: %v", err)
	}

	// 3. Auth Config
	c.AuthConfig = auth.DefaultConfig()
	c.AuthConfig.JWT.SecretKey = os.Getenv("JWT_SECRET")
	if c.AuthConfig.JWT.SecretKey == "" {
		logx.Warn("JWT_SECRET is not set, using default (unsafe for production)")
		c.AuthConfig.JWT.SecretKey = "super-secret-key-please-change-me-in-production"
	}
}

func (c *Container) initServices() {
	// --- Repositories ---
	userRepo := userinfra.NewPostgresUserRepository(c.DB)
	sharingRepo := sharinginfra.NewPostgresSharingRepository(c.DB)
	permissionRepo := permissioninfra.NewPostgresPermissionRepository(c.DB)
	orgRepo := tenancyinfra.NewPostgresOrgRepository(c.DB)
	campaignRepo := campaigninfra.NewPostgresCampaignRepository(c.DB)
	c.UserRepo = userRepo

	// --- Infrastructure Services ---
	sessionStore := tenancyinfra.NewRedisSessionStore(c.Redis, c.AuthConfig.JWT.RefreshTokenTTL)

	hierarchyBaseURL := os.Getenv("HIERARCHY_BASE_URL")
	var fetcher hierarchy.Fetcher = hierarchyinfra.NewHTTPFetcher(hierarchyBaseURL)
	fetcher = hierarchyinfra.NewCachedFetcher(fetcher, c.Redis, 10*time.Minute)

	// Token Service
	c.TokenService = auth.NewJWTService(
		c.AuthConfig.JWT.SecretKey,
		c.AuthConfig.JWT.AccessTokenTTL,
		c.AuthConfig.JWT.Issuer,
	)

	// --- Domain Services ---
	c.UserService = usersrv.NewUserService(userRepo)
	c.SharingService = sharingsrv.NewSharingService(sharingRepo, userRepo, sharing.DefaultPolicy())
	c.PermissionService = permissionsrv.NewPermissionService(permissionRepo)
	c.HierarchyService = hierarchysrv.NewHierarchyService(fetcher)
	c.TenancyService = tenancysrv.NewTenancyService(
		orgRepo,
		userRepo,
		c.HierarchyService,
		sessionStore,
		tenancy.LogReporter{},
	)
	c.CampaignService = campaignsrv.NewCampaignService(
		campaignRepo,
		userRepo,
		sharing.DefaultPolicy(),
		c.TenancyService,
	)

	// --- Handlers ---
	c.AuthService = auth.NewAuthHandlers(userRepo, c.TokenService)
	c.SharingHandlers = sharingapi.NewHandlers(c.SharingService)
	c.PermissionHandlers = permissionapi.NewHandlers(c.PermissionService)
	c.TenancyHandlers = tenancyapi.NewHandlers(c.TenancyService, userRepo)
	c.CampaignHandlers = campaignapi.NewHandlers(c.CampaignService)

	// --- Middleware ---
	c.AuthMiddleware = auth.NewAuthMiddleware(c.TokenService)
}
