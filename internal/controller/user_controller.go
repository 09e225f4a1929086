package controller

import (
	"github.com/gofiber/fiber/v2"

	"github.com/benbeisheim/chess-backend/internal/service"
)

type UserController struct {
	userService *service.UserService
}

func NewUserController(userService *service.UserService) *UserController {
	return &UserController{userService: userService}
}

type registerRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Email    string `json:"email"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (uc *UserController) Register(c *fiber.Ctx) error {
	var req registerRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c)
	}

	auth, err := uc.userService.Register(req.Username, req.Password, req.Email)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(auth)
}

func (uc *UserController) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c)
	}

	auth, err := uc.userService.Login(req.Username, req.Password)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(auth)
}

// Logout ends the session of the token resolved by RequireAuth.
func (uc *UserController) Logout(c *fiber.Ctx) error {
	token, _ := c.Locals("authToken").(string)
	if err := uc.userService.Logout(token); err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(fiber.Map{})
}
