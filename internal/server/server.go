// Package server wires services, controllers and middleware into a fiber app.
package server

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/websocket/v2"
	"github.com/rs/zerolog"

	"github.com/benbeisheim/chess-backend/internal/config"
	"github.com/benbeisheim/chess-backend/internal/controller"
	"github.com/benbeisheim/chess-backend/internal/middleware"
	"github.com/benbeisheim/chess-backend/internal/service"
)

// Server is the HTTP application together with the registries it serves.
type Server struct {
	App         *fiber.App
	UserService *service.UserService
	GameService *service.GameService
}

func New(cfg config.Config, log zerolog.Logger) *Server {
	app := fiber.New(fiber.Config{
		AppName:               "chess-backend",
		DisableStartupMessage: true,
	})

	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowOrigins,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowMethods:     "GET, POST, PUT, DELETE, OPTIONS",
		AllowCredentials: cfg.AllowOrigins != "*",
	}))
	app.Use(middleware.RequestLogger(log.With().Str("component", "http").Logger()))

	// Initialize services
	userService := service.NewUserService(log)
	gameService := service.NewGameService(service.NewGameManager(log))

	// Initialize controllers
	userController := controller.NewUserController(userService)
	gameController := controller.NewGameController(gameService)
	dbController := controller.NewDBController(userService, gameService, log)
	wsController := controller.NewWebSocketController(gameService, log)

	requireAuth := middleware.RequireAuth(userService)

	// Account routes
	app.Post("/user", userController.Register)
	app.Post("/session", userController.Login)
	app.Delete("/session", requireAuth, userController.Logout)
	app.Delete("/db", dbController.Clear)

	// Game routes
	game := app.Group("/game", requireAuth)
	game.Get("/", gameController.ListGames)
	game.Post("/", gameController.CreateGame)
	game.Put("/", gameController.JoinGame)
	game.Get("/:gameId", gameController.GetGameState)
	game.Get("/:gameId/moves", gameController.GetLegalMoves)
	game.Post("/:gameId/move", gameController.MakeMove)
	game.Put("/:gameId/board", gameController.LoadPosition)

	// Live game channel
	app.Get("/ws/game/:gameId", requireAuth, middleware.WebSocketUpgrade(), websocket.New(wsController.HandleConnection, websocket.Config{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
	}))

	app.Static("/", cfg.WebDir)

	return &Server{
		App:         app,
		UserService: userService,
		GameService: gameService,
	}
}
