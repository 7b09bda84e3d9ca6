package web

import (
	"crypto/subtle"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/dmitrijs2005/learningjournal/internal/common"
	"github.com/dmitrijs2005/learningjournal/internal/dbx"
	"github.com/dmitrijs2005/learningjournal/internal/logging"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/csrf"
	"github.com/google/uuid"
)

const requestIDHeader = "X-Request-ID"

const (
	csrfFormField = "csrf_token"
	csrfTTL       = 12 * time.Hour
)

type (
	connKey struct{}
	csrfKey struct{}
)

// withConn checks one connection out of the pool for the request and
// returns it when the handler chain is done, whatever the outcome.
func (s *Server) withConn() fiber.Handler {
	return func(c *fiber.Ctx) error {
		conn, err := s.db.Connx(c.UserContext())
		if err != nil {
			return fmt.Errorf("acquire connection: %w", err)
		}
		defer func() {
			if err := conn.Close(); err != nil {
				s.logger.Warn(c.UserContext(), "release connection", "error", err)
			}
		}()

		c.Locals(connKey{}, conn)
		return c.Next()
	}
}

// csrfGuard checks the double-submitted token on every unsafe request and
// hands a token to the page being rendered.
func (s *Server) csrfGuard() fiber.Handler {
	return csrf.New(csrf.Config{
		KeyLookup:         "form:" + csrfFormField,
		CookieName:        common.CSRFCookieName,
		CookiePath:        "/",
		CookieHTTPOnly:    true,
		CookieSecure:      s.gate.SecureCookies(),
		CookieSameSite:    fiber.CookieSameSiteLaxMode,
		CookieSessionOnly: true,
		Expiration:        csrfTTL,
		ContextKey:        csrfKey{},
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			s.logger.Warn(c.UserContext(), "csrf check failed", "path", c.Path(), "error", err)
			return fiber.ErrForbidden
		},
	})
}

func csrfToken(c *fiber.Ctx) string {
	tok, _ := c.Locals(csrfKey{}).(string)
	return tok
}

// queryTokenValid checks the CSRF token carried by a state-changing GET link.
func queryTokenValid(c *fiber.Ctx) bool {
	want := csrfToken(c)
	got := c.Query(csrfFormField)
	return want != "" && subtle.ConstantTimeCompare([]byte(want), []byte(got)) == 1
}

func requestConn(c *fiber.Ctx) dbx.Conn {
	conn, ok := c.Locals(connKey{}).(dbx.Conn)
	if !ok {
		panic("web: no database connection on request")
	}
	return conn
}

// accessLog tags the request with an id and logs one line for it. Errors
// are rendered here so the logged status is the one the client gets.
func (s *Server) accessLog() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		id := uuid.NewString()
		c.Set(requestIDHeader, id)
		c.SetUserContext(logging.ContextWith(c.UserContext(), "request_id", id))

		if err := c.Next(); err != nil {
			if herr := c.App().Config().ErrorHandler(c, err); herr != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}

		s.logger.Info(c.UserContext(), "request",
			"method", c.Method(),
			"path", c.Path(),
			"status", c.Response().StatusCode(),
			"latency", time.Since(start).String(),
		)
		return nil
	}
}

func setFlash(c *fiber.Ctx, msg string) {
	c.Cookie(&fiber.Cookie{
		Name:     common.FlashCookieName,
		Value:    url.QueryEscape(msg),
		Path:     "/",
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

// popFlash returns the pending flash message and clears it.
func popFlash(c *fiber.Ctx) string {
	raw := c.Cookies(common.FlashCookieName)
	if raw == "" {
		return ""
	}
	c.Cookie(&fiber.Cookie{
		Name:     common.FlashCookieName,
		Value:    "",
		Path:     "/",
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
		Expires:  time.Unix(0, 0).UTC(),
	})

	msg, err := url.QueryUnescape(raw)
	if err != nil {
		return ""
	}
	return msg
}

func (s *Server) errorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error

	switch {
	case errors.Is(err, common.ErrorNotFound):
		return s.render(c, fiber.StatusNotFound, "notfound.html", &pageData{Title: "Not found"})
	case errors.Is(err, common.ErrorAuthorizationRequired):
		return c.Redirect(loginURL(c), fiber.StatusFound)
	case errors.As(err, &fe):
		if fe.Code == fiber.StatusNotFound {
			return s.render(c, fiber.StatusNotFound, "notfound.html", &pageData{Title: "Not found"})
		}
		return s.render(c, fe.Code, "error.html", &pageData{Title: "Error", Message: fe.Message})
	}

	s.logger.Error(c.UserContext(), "request failed", "method", c.Method(), "path", c.Path(), "error", err)
	return s.render(c, fiber.StatusInternalServerError, "error.html", &pageData{
		Title:   "Error",
		Message: "Something went wrong. Please try again.",
	})
}
