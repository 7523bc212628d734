package httpapi

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/i474232898/weather-forecast-view/internal/session"
	"github.com/i474232898/weather-forecast-view/internal/store"
)

var validate = validator.New()

// Sessions is the session registry the handlers operate on.
type Sessions interface {
	Create() (string, *session.State)
	Get(id string) (*session.State, error)
	Delete(id string) error
}

// RegisterRoutes wires the HTTP handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, sessions Sessions) {
	v1 := app.Group("/api/v1")

	v1.Post("/sessions", func(c *fiber.Ctx) error {
		id, state := sessions.Create()
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"id":   id,
			"view": state.View(),
		})
	})

	v1.Get("/sessions/:id", func(c *fiber.Ctx) error {
		state, err := lookupSession(c, sessions)
		if err != nil {
			return err
		}
		return c.JSON(state.View())
	})

	v1.Delete("/sessions/:id", func(c *fiber.Ctx) error {
		var p sessionPath
		if err := p.bind(c); err != nil {
			return err
		}
		if err := sessions.Delete(p.ID); err != nil {
			return sessionError(err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	})

	v1.Put("/sessions/:id/query", func(c *fiber.Ctx) error {
		state, err := lookupSession(c, sessions)
		if err != nil {
			return err
		}
		var req queryRequest
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}
		state.SetQuery(req.Query)
		return c.JSON(state.View())
	})

	v1.Post("/sessions/:id/search", func(c *fiber.Ctx) error {
		state, err := lookupSession(c, sessions)
		if err != nil {
			return err
		}

		var req searchRequest
		if len(c.Body()) > 0 {
			if err := c.BodyParser(&req); err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
			}
		}
		city := req.City
		if city == "" {
			city = state.Query()
		}
		if strings.TrimSpace(city) == "" {
			return fiber.NewError(fiber.StatusBadRequest, "city is required")
		}

		if applied := state.Submit(c.UserContext(), city); !applied {
			return fiber.NewError(fiber.StatusConflict, "search superseded by a newer search")
		}
		return c.JSON(state.View())
	})

	v1.Post("/sessions/:id/toggle", func(c *fiber.Ctx) error {
		state, err := lookupSession(c, sessions)
		if err != nil {
			return err
		}

		var req toggleRequest
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}
		if err := validate.Struct(req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		state.Toggle(req.Date)
		return c.JSON(state.View())
	})
}

// sessionPath holds the session id path parameter.
type sessionPath struct {
	ID string `validate:"required,uuid4"`
}

func (p *sessionPath) bind(c *fiber.Ctx) error {
	p.ID = c.Params("id")
	if err := validate.Struct(p); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	return nil
}

type queryRequest struct {
	Query string `json:"query"`
}

// searchRequest carries the city text verbatim; its format is left to the
// remote API.
type searchRequest struct {
	City string `json:"city"`
}

type toggleRequest struct {
	Date string `json:"date" validate:"required"`
}

func lookupSession(c *fiber.Ctx, sessions Sessions) (*session.State, error) {
	var p sessionPath
	if err := p.bind(c); err != nil {
		return nil, err
	}
	state, err := sessions.Get(p.ID)
	if err != nil {
		return nil, sessionError(err)
	}
	return state, nil
}

func sessionError(err error) error {
	if errors.Is(err, store.ErrNotFound) {
		return fiber.NewError(fiber.StatusNotFound, "unknown session")
	}
	return fiber.NewError(fiber.StatusInternalServerError, "failed to load session")
}
