package router

import (
	"time"

	"libreria/internal/config"
	"libreria/internal/handler"
	"libreria/internal/infra"
	"libreria/internal/middleware"
	"libreria/internal/repository"
	"libreria/internal/service"
	"libreria/internal/worker"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
// The metadata service and the dispatcher are built in main because the
// worker pool shares them.
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client, metadataCB *infra.CircuitBreaker, metadataSvc service.MetadataService, dispatcher *worker.Dispatcher) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(1000, time.Minute)) // 1000 req/min per IP

	// ── Repositories ─────────────────────────────────────────────────────────
	credencialRepo := repository.NewCredencialRepository(db)
	cajaRepo := repository.NewCajaRepository(db)
	libroRepo := repository.NewLibroRepository(db)
	pedidoRepo := repository.NewPedidoRepository(db)
	faltanteRepo := repository.NewFaltanteRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	credencialSvc := service.NewCredencialService(credencialRepo, cfg.JWTSecret, cfg.JWTExpirationHours)
	cajaSvc := service.NewCajaService(cajaRepo, credencialSvc, dispatcher)
	historialSvc := service.NewHistorialService(cajaRepo)
	libroSvc := service.NewLibroService(libroRepo)
	pedidoSvc := service.NewPedidoService(pedidoRepo)
	faltanteSvc := service.NewFaltanteService(faltanteRepo, dispatcher)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(credencialSvc)
	cajaH := handler.NewCajaHandler(cajaSvc)
	historialH := handler.NewHistorialHandler(historialSvc)
	librosH := handler.NewLibrosHandler(libroSvc)
	pedidosH := handler.NewPedidosHandler(pedidoSvc)
	faltantesH := handler.NewFaltantesHandler(faltanteSvc)
	metadataH := handler.NewMetadataHandler(metadataSvc)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb, metadataCB))

	// Auth — credential proofs travel in the body, so every endpoint sits
	// behind the login rate limiter to keep PINs brute-force resistant.
	loginRL := middleware.LoginRateLimiter()
	auth := r.Group("/v1/auth")
	{
		auth.POST("/login", loginRL, authH.Login)
		auth.POST("/verificar", loginRL, authH.Verificar)
		auth.POST("/rotar", loginRL, authH.Rotar)
		auth.POST("/reset", loginRL, authH.Reset)
	}

	// Protected routes
	jwtMW := middleware.JWTAuth(cfg.JWTSecret)
	v1 := r.Group("/v1", jwtMW)
	{
		caja := v1.Group("/caja")
		{
			caja.POST("/abrir", loginRL, cajaH.Abrir)
			caja.POST("/cerrar", loginRL, cajaH.Cerrar)
			caja.GET("/estado", cajaH.Estado)
			caja.POST("/movimientos", loginRL, cajaH.RegistrarMovimiento)
			caja.PUT("/movimientos/:id", loginRL, cajaH.EditarMovimiento)
			caja.DELETE("/movimientos/:id", loginRL, cajaH.AnularMovimiento)
		}

		hist := v1.Group("/historial", middleware.RequireRole("admin"))
		{
			hist.GET("", historialH.Listar)
			hist.GET("/:id", historialH.Detalle)
		}

		libros := v1.Group("/libros")
		{
			libros.POST("", librosH.Crear)
			libros.GET("", librosH.Listar)
			libros.GET("/bajas", librosH.Bajas)
			libros.GET("/:id", librosH.Obtener)
			libros.PUT("/:id", librosH.Actualizar)
			libros.PATCH("/:id/stock", librosH.AjustarStock)
		}

		pedidos := v1.Group("/pedidos")
		{
			pedidos.POST("", pedidosH.Crear)
			pedidos.GET("", pedidosH.Listar)
			pedidos.GET("/:id", pedidosH.Obtener)
			pedidos.PUT("/:id", pedidosH.Actualizar)
			pedidos.PATCH("/:id/estado", pedidosH.CambiarEstado)
		}

		faltantes := v1.Group("/faltantes")
		{
			faltantes.POST("", faltantesH.Crear)
			faltantes.GET("", faltantesH.Listar)
			faltantes.DELETE("/:id", faltantesH.Eliminar)
		}

		v1.GET("/metadata/:isbn", metadataH.Buscar)
	}

	// Swagger UI — only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
