package router

import (
	"time"

	"github.com/aluenvelas/Back-aluen/internal/config"
	"github.com/aluenvelas/Back-aluen/internal/handler"
	"github.com/aluenvelas/Back-aluen/internal/middleware"
	"github.com/aluenvelas/Back-aluen/internal/repository"
	"github.com/aluenvelas/Back-aluen/internal/service"
	"github.com/aluenvelas/Back-aluen/internal/worker"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client, dispatcher *worker.Dispatcher) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS(cfg.CORSOrigin))
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(1000, time.Minute)) // 1000 req/min per IP

	// ── Repositories ─────────────────────────────────────────────────────────
	usuarioRepo := repository.NewUsuarioRepository(db)
	materialRepo := repository.NewMaterialRepository(db)
	frascoRepo := repository.NewFrascoRepository(db)
	recetaRepo := repository.NewRecetaRepository(db)
	inventarioRepo := repository.NewInventarioRepository(db)
	ventaRepo := repository.NewVentaRepository(db)
	nombreVelaRepo := repository.NewNombreVelaRepository(db)
	puntoVentaRepo := repository.NewPuntoVentaRepository(db)
	activoRepo := repository.NewActivoFijoRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	authSvc := service.NewAuthService(usuarioRepo, cfg)
	materialSvc := service.NewMaterialService(materialRepo)
	frascoSvc := service.NewFrascoService(frascoRepo)
	recetaSvc := service.NewRecetaService(recetaRepo, materialRepo, frascoRepo, inventarioRepo, dispatcher)
	inventarioSvc := service.NewInventarioService(inventarioRepo, dispatcher)
	ventaSvc := service.NewVentaService(ventaRepo, recetaRepo, inventarioRepo, puntoVentaRepo, dispatcher)
	nombreVelaSvc := service.NewNombreVelaService(nombreVelaRepo, frascoRepo, materialRepo)
	reporteSvc := service.NewReporteService(ventaRepo, inventarioRepo, dispatcher, cfg)
	precioSvc := service.NewPrecioService(recetaRepo, inventarioRepo, rdb)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	usuariosH := handler.NewUsuariosHandler(authSvc)
	materialesH := handler.NewMaterialesHandler(materialSvc)
	frascosH := handler.NewFrascosHandler(frascoSvc)
	recetasH := handler.NewRecetasHandler(recetaSvc)
	inventarioH := handler.NewInventarioHandler(inventarioSvc)
	ventasH := handler.NewVentasHandler(ventaSvc)
	nombresH := handler.NewNombresVelasHandler(nombreVelaSvc)
	puntosH := handler.NewPuntosVentaHandler(puntoVentaRepo)
	activosH := handler.NewActivosHandler(activoRepo)
	reportesH := handler.NewReportesHandler(reporteSvc)
	precioH := handler.NewPrecioHandler(precioSvc)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb))
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Auth (public)
	auth := r.Group("/api/auth")
	{
		auth.POST("/login", middleware.LoginRateLimiter(), authH.Login)
		auth.POST("/refresh", authH.Refresh)
	}

	// Price check — consumed by the public catalog, no auth required
	r.GET("/api/precio/:codigo", precioH.Consultar)

	// Protected routes
	jwtMW := middleware.JWTAuth(cfg.JWTSecret)
	api := r.Group("/api", jwtMW)
	{
		api.GET("/auth/perfil", authH.Perfil)
		api.PUT("/auth/perfil", authH.ActualizarPerfil)

		// Producciones y catalogo de recetas — empleado y admin
		api.POST("/recetas", recetasH.Producir)
		api.GET("/recetas", recetasH.Listar)
		api.GET("/recetas/codigo/:codigo", recetasH.ObtenerPorCodigo)
		api.GET("/recetas/:id", recetasH.Obtener)
		api.PUT("/recetas/:id", recetasH.Actualizar)
		api.PATCH("/recetas/:id/toggle-visibilidad", recetasH.ToggleVisibilidad)
		api.DELETE("/recetas/:id", middleware.RequireRole("admin"), recetasH.Desactivar)

		// Materias primas
		api.POST("/materiales", materialesH.Crear)
		api.GET("/materiales", materialesH.Listar)
		api.GET("/materiales/:id", materialesH.Obtener)
		api.PUT("/materiales/:id", materialesH.Actualizar)
		api.PATCH("/materiales/:id/stock", materialesH.AjustarStock)
		api.DELETE("/materiales/:id", middleware.RequireRole("admin"), materialesH.Desactivar)

		// Frascos
		api.POST("/frascos", frascosH.Crear)
		api.GET("/frascos", frascosH.Listar)
		api.GET("/frascos/:id", frascosH.Obtener)
		api.PUT("/frascos/:id", frascosH.Actualizar)
		api.PATCH("/frascos/:id/stock", frascosH.AjustarStock)
		api.DELETE("/frascos/:id", middleware.RequireRole("admin"), frascosH.Desactivar)

		// Inventario de velas terminadas
		api.GET("/inventario", inventarioH.Listar)
		api.GET("/inventario/alertas", inventarioH.Alertas)
		api.GET("/inventario/:id", inventarioH.Obtener)
		api.PUT("/inventario/:id", inventarioH.Actualizar)

		// Ventas
		api.POST("/ventas", ventasH.Registrar)
		api.GET("/ventas", ventasH.Listar)
		api.GET("/ventas/estadisticas", ventasH.Estadisticas)
		api.GET("/ventas/:id", ventasH.Obtener)
		api.PATCH("/ventas/:id/estado", ventasH.CambiarEstado)
		api.DELETE("/ventas/:id", middleware.RequireRole("admin"), ventasH.Eliminar)

		// Nombres de velas
		api.POST("/nombres-velas", nombresH.Crear)
		api.GET("/nombres-velas", nombresH.Listar)
		api.DELETE("/nombres-velas/:id", middleware.RequireRole("admin"), nombresH.Desactivar)

		// Puntos de venta
		api.POST("/puntos-venta", puntosH.Crear)
		api.GET("/puntos-venta", puntosH.Listar)
		api.PUT("/puntos-venta/:id", puntosH.Actualizar)
		api.DELETE("/puntos-venta/:id", middleware.RequireRole("admin"), puntosH.Desactivar)

		// Activos fijos — solo admin
		activos := api.Group("/activos", middleware.RequireRole("admin"))
		{
			activos.POST("", activosH.Crear)
			activos.GET("", activosH.Listar)
			activos.PUT("/:id", activosH.Actualizar)
			activos.DELETE("/:id", activosH.Desactivar)
		}

		// Reportes
		api.GET("/reportes/pdf/ventas", reportesH.VentasPDF)
		api.GET("/reportes/pdf/inventario", reportesH.InventarioPDF)
		api.GET("/reportes/excel/inventario", reportesH.InventarioExcel)

		// Usuarios — solo admin
		usuarios := api.Group("/usuarios", middleware.RequireRole("admin"))
		{
			usuarios.POST("", usuariosH.Crear)
			usuarios.GET("", usuariosH.Listar)
			usuarios.GET("/:id", usuariosH.Obtener)
			usuarios.PUT("/:id", usuariosH.Actualizar)
			usuarios.DELETE("/:id", usuariosH.Desactivar)
			usuarios.PATCH("/:id/reactivar", usuariosH.Reactivar)
		}
	}

	// Swagger UI — only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
