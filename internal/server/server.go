package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"taskboard/docs"
	"taskboard/internal/auth"
	"taskboard/internal/board"
	"taskboard/internal/config"
	"taskboard/internal/handler"
	"taskboard/internal/middleware"
	"taskboard/internal/repository"
	"taskboard/internal/session"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

const sessionSweepInterval = time.Minute

type Server struct {
	Engine   *gin.Engine
	DB       *gorm.DB
	Redis    *redis.Client
	Sessions *session.Manager
	Config   *config.Config

	stopSweep context.CancelFunc
}

// Deps are the collaborators the router needs. Init builds them from the
// config; tests assemble them directly.
type Deps struct {
	Issuer        *auth.Issuer
	Authenticator handler.Authenticator
	Sessions      *session.Manager
	Evaluator     board.Evaluator
}

func Init(cfg *config.Config) (*Server, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("❌ invalid configuration: %w", err)
	}

	if cfg.Debug {
		log.SetLevel(log.DebugLevel)
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	s := &Server{Config: cfg}
	issuer := auth.NewIssuer(cfg.JWTSecret, cfg.TokenTTL())

	verifier, err := s.credentialVerifier()
	if err != nil {
		return nil, err
	}

	store, err := s.tokenStore()
	if err != nil {
		return nil, err
	}

	s.Sessions = session.NewManager(store)
	sweepCtx, cancel := context.WithCancel(context.Background())
	s.stopSweep = cancel
	go s.Sessions.Run(sweepCtx, sessionSweepInterval)
	s.Engine = NewRouter(Deps{
		Issuer:        issuer,
		Authenticator: auth.NewService(verifier, issuer),
		Sessions:      s.Sessions,
		Evaluator:     board.Evaluator{Now: time.Now},
	})

	return s, nil
}

func (s *Server) credentialVerifier() (auth.CredentialVerifier, error) {
	if s.Config.AuthBackend != config.AuthBackendDatabase {
		log.Infof("🔑 Using static credentials for %q", s.Config.AuthUsername)
		return auth.StaticVerifier{Username: s.Config.AuthUsername, Password: s.Config.AuthPassword}, nil
	}

	db, err := OpenDB(s.Config)
	if err != nil {
		return nil, err
	}
	s.DB = db

	userRepo := repository.NewUserRepository(db)
	if err := userRepo.Migrate(context.Background()); err != nil {
		return nil, fmt.Errorf("❌ failed to migrate users table: %w", err)
	}
	return auth.NewUserStoreVerifier(userRepo), nil
}

func (s *Server) tokenStore() (session.TokenStore, error) {
	if s.Config.RedisURL == "" {
		log.Info("🗂️  Tracking sessions in memory")
		return session.NewMemoryTokenStore(), nil
	}

	opts, err := redis.ParseURL(s.Config.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("❌ invalid REDIS_URL: %w", err)
	}
	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("❌ failed to connect to redis: %w", err)
	}
	log.Info("✅ Connected to redis")

	s.Redis = client
	return session.NewRedisTokenStore(client), nil
}

// OpenDB connects to the postgres credential store.
func OpenDB(cfg *config.Config) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("❌ failed to connect to DB: %w", err)
	}
	log.Info("✅ Connected to database")
	return db, nil
}

func NewRouter(deps Deps) *gin.Engine {
	handler.RegisterValidators()

	r := gin.New()
	r.Use(gin.Recovery(), requestLogger())

	sessionHandler := handler.NewSessionHandler(deps.Authenticator, deps.Sessions)
	taskHandler := handler.NewTaskHandler(deps.Evaluator)

	// Public routes
	r.POST("/login", sessionHandler.Login)
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.InstanceName(docs.SwaggerInfo.InstanceName())))

	// Protected routes - require a live session
	authorized := r.Group("/")
	authorized.Use(middleware.JWTAuthMiddleware(deps.Issuer, deps.Sessions))
	{
		authorized.POST("/logout", sessionHandler.Logout)
		authorized.GET("/session", sessionHandler.Current)

		// Task routes
		authorized.POST("/tasks", taskHandler.Create)
		authorized.GET("/tasks/:id", taskHandler.GetByID)

		// Board routes
		authorized.GET("/board", taskHandler.Board)
		authorized.GET("/board/:category", taskHandler.Column)
		authorized.POST("/board/move", taskHandler.Move)
	}

	return r
}

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.WithFields(log.Fields{
			"method":   c.Request.Method,
			"path":     c.FullPath(),
			"status":   c.Writer.Status(),
			"duration": time.Since(start),
		}).Debug("request")
	}
}

func (s *Server) Run() {
	srv := &http.Server{
		Addr:    ":" + s.Config.ServerPort,
		Handler: s.Engine,
	}

	go func() {
		log.Infof("🚀 Server running on port %s", s.Config.ServerPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("❌ Failed to listen: %s", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("🛑 Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("❌ Server forced to shutdown: %s", err)
	}
	s.Close()

	log.Info("✅ Server exited properly")
}

// Close stops the session sweeper and releases the backing stores.
func (s *Server) Close() {
	if s.stopSweep != nil {
		s.stopSweep()
	}
	if s.Redis != nil {
		if err := s.Redis.Close(); err != nil {
			log.WithError(err).Warn("⚠️  failed to close redis client")
		}
	}
	if s.DB != nil {
		sqlDB, err := s.DB.DB()
		if err == nil {
			err = sqlDB.Close()
		}
		if err != nil {
			log.WithError(err).Warn("⚠️  failed to close database connection")
		}
	}
}
