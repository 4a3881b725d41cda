// Package httpapi exposes the user directory and authentication endpoints
// over Fiber. Success bodies and error bodies both go through the shared
// schema wire shapes, so the client and server cannot drift apart.
package httpapi

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/rosterhq/roster/internal/common"
	"github.com/rosterhq/roster/internal/logging"
	"github.com/rosterhq/roster/internal/schema"
	"github.com/rosterhq/roster/internal/server/models"
	"github.com/rosterhq/roster/internal/server/services"
)

// Handler holds the HTTP handlers for the user directory and auth endpoints.
type Handler struct {
	users  *services.UserService
	logger logging.Logger
}

// NewHandler constructs a Handler backed by the given service.
func NewHandler(users *services.UserService, logger logging.Logger) *Handler {
	return &Handler{users: users, logger: logger}
}

// Health reports liveness.
func (h *Handler) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

// Register creates a new account. Public.
func (h *Handler) Register(c *fiber.Ctx) error {
	var in schema.CreateUserInput
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	u, err := h.users.Register(c.UserContext(), in)
	if err != nil {
		return h.serviceError(c, err)
	}
	h.logger.Info(c.UserContext(), "user registered", "id", u.ID)
	return c.Status(fiber.StatusCreated).JSON(payloadFromModel(u))
}

// Login exchanges credentials for a token pair. Public.
func (h *Handler) Login(c *fiber.Ctx) error {
	var in schema.LoginPayload
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	pair, err := h.users.Login(c.UserContext(), in.Email, in.Password)
	if err != nil {
		return h.serviceError(c, err)
	}
	return c.JSON(schema.TokenPairPayload{AccessToken: pair.AccessToken, RefreshToken: pair.RefreshToken})
}

// Refresh rotates a refresh token into a fresh token pair. Public.
func (h *Handler) Refresh(c *fiber.Ctx) error {
	var in schema.RefreshPayload
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	pair, err := h.users.RefreshToken(c.UserContext(), in.RefreshToken)
	if err != nil {
		return h.serviceError(c, err)
	}
	return c.JSON(schema.TokenPairPayload{AccessToken: pair.AccessToken, RefreshToken: pair.RefreshToken})
}

// List returns every live user in insertion order.
func (h *Handler) List(c *fiber.Ctx) error {
	users, err := h.users.List(c.UserContext())
	if err != nil {
		return h.serviceError(c, err)
	}
	payloads := make([]schema.UserPayload, 0, len(users))
	for i := range users {
		payloads = append(payloads, payloadFromModel(&users[i]))
	}
	return c.JSON(payloads)
}

// GetByID returns one user.
func (h *Handler) GetByID(c *fiber.Ctx) error {
	u, err := h.users.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return h.serviceError(c, err)
	}
	return c.JSON(payloadFromModel(u))
}

// Create adds a user to the directory. Same semantics as Register, behind
// authentication.
func (h *Handler) Create(c *fiber.Ctx) error {
	var in schema.CreateUserInput
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	u, err := h.users.Register(c.UserContext(), in)
	if err != nil {
		return h.serviceError(c, err)
	}
	h.logger.Info(c.UserContext(), "user created", "id", u.ID, "actor", UserID(c))
	return c.Status(fiber.StatusCreated).JSON(payloadFromModel(u))
}

// Update applies the set fields of the body to a user.
func (h *Handler) Update(c *fiber.Ctx) error {
	var in schema.UpdateUserInput
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	u, err := h.users.Update(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return h.serviceError(c, err)
	}
	return c.JSON(payloadFromModel(u))
}

// Delete soft-deletes a user and revokes their sessions.
func (h *Handler) Delete(c *fiber.Ctx) error {
	id := c.Params("id")
	if err := h.users.Delete(c.UserContext(), id); err != nil {
		return h.serviceError(c, err)
	}
	h.logger.Info(c.UserContext(), "user deleted", "id", id, "actor", UserID(c))
	return c.SendStatus(fiber.StatusNoContent)
}

// payloadFromModel strips the persistence-only fields and serializes the
// rest through the shared wire shape.
func payloadFromModel(u *models.User) schema.UserPayload {
	return schema.PayloadFromUser(schema.User{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
		DeletedAt: u.DeletedAt,
	})
}

func invalidBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(schema.ErrorPayload{
		Code:    common.CodeInvalidBody,
		Message: "request body is not valid JSON",
	})
}

// serviceError maps service-layer errors onto wire status codes and bodies.
// Anything unrecognized is logged and reported as a plain 500.
func (h *Handler) serviceError(c *fiber.Ctx, err error) error {
	if ve, ok := schema.AsValidation(err); ok {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(schema.ErrorPayload{
			Code:    common.CodeValidation,
			Message: "validation failed",
			Fields:  ve.Fields,
		})
	}
	switch {
	case errors.Is(err, common.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(schema.ErrorPayload{
			Code:    common.CodeNotFound,
			Message: "user not found",
		})
	case errors.Is(err, common.ErrEmailTaken):
		return c.Status(fiber.StatusConflict).JSON(schema.ErrorPayload{
			Code:    common.CodeEmailExists,
			Message: "email already registered",
		})
	case errors.Is(err, common.ErrRefreshTokenExpired):
		return c.Status(fiber.StatusUnauthorized).JSON(schema.ErrorPayload{
			Code:    common.CodeTokenExpired,
			Message: "refresh token expired",
		})
	case errors.Is(err, common.ErrUnauthorized):
		return c.Status(fiber.StatusUnauthorized).JSON(schema.ErrorPayload{
			Code:    common.CodeUnauthorized,
			Message: "invalid credentials",
		})
	default:
		h.logger.Error(c.UserContext(), "request failed", "method", c.Method(), "path", c.Path(), "error", err.Error())
		return c.Status(fiber.StatusInternalServerError).JSON(schema.ErrorPayload{
			Code:    common.CodeInternal,
			Message: "internal error",
		})
	}
}
