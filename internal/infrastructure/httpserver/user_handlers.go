package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/cloudnative-labs/microservices/internal/core/domain/user"
)

type userListResponse struct {
	Success  bool         `json:"success"`
	Count    int          `json:"count"`
	Data     []*user.User `json:"data"`
	Cached   bool         `json:"cached"`
	Instance string       `json:"instance"`
}

type dataResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data"`
}

func (s *Server) listUsers(c echo.Context) error {
	users, cached, err := s.userService.ListUsers(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, userListResponse{
		Success:  true,
		Count:    len(users),
		Data:     users,
		Cached:   cached,
		Instance: s.config.InstanceID,
	})
}

func (s *Server) getUser(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	u, err := s.userService.GetUser(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dataResponse{Success: true, Data: u})
}

func (s *Server) createUser(c echo.Context) error {
	var req user.CreateUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	req.Normalize()
	if err := c.Validate(&req); err != nil {
		return err
	}

	created, err := s.userService.CreateUser(c.Request().Context(), &req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, dataResponse{Success: true, Message: "user created", Data: created})
}

func (s *Server) deleteUser(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	deleted, err := s.userService.DeleteUser(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dataResponse{Success: true, Message: "user deleted", Data: deleted})
}
