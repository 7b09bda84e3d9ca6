package auth

import (
	"net/url"
	"time"

	"github.com/dmitrijs2005/learningjournal/internal/common"
	"github.com/dmitrijs2005/learningjournal/internal/logging"
	"github.com/dmitrijs2005/learningjournal/internal/server/models"
	"github.com/gofiber/fiber/v2"
)

type localsKey struct{}

// Gate establishes and checks login sessions.
type Gate struct {
	secret      []byte
	sessionTTL  time.Duration
	rememberTTL time.Duration
	secure      bool
	log         logging.Logger
}

func NewGate(secret []byte, sessionTTL, rememberTTL time.Duration, secure bool, log logging.Logger) *Gate {
	return &Gate{
		secret:      secret,
		sessionTTL:  sessionTTL,
		rememberTTL: rememberTTL,
		secure:      secure,
		log:         log,
	}
}

// SecureCookies reports whether cookies set for this site need HTTPS.
func (g *Gate) SecureCookies() bool {
	return g.secure
}

// StartSession issues a token for user and sets the session cookie. Without
// remember the cookie has no expiry and ends with the browser session.
func (g *Gate) StartSession(c *fiber.Ctx, user *models.User, remember bool) error {
	ttl := g.sessionTTL
	if remember {
		ttl = g.rememberTTL
	}

	token, err := GenerateToken(user.ID, user.UserName, g.secret, ttl)
	if err != nil {
		return err
	}

	cookie := &fiber.Cookie{
		Name:        common.SessionCookieName,
		Value:       token,
		Path:        "/",
		HTTPOnly:    true,
		Secure:      g.secure,
		SameSite:    fiber.CookieSameSiteLaxMode,
		SessionOnly: !remember,
	}
	if remember {
		cookie.Expires = time.Now().Add(ttl)
		cookie.MaxAge = int(ttl.Seconds())
	}
	c.Cookie(cookie)

	setIdentity(c, Identity{UserID: user.ID, UserName: user.UserName})
	return nil
}

// EndSession expires the session cookie.
func (g *Gate) EndSession(c *fiber.Ctx) {
	if c.Cookies(common.SessionCookieName) == "" {
		return
	}
	g.clearCookie(c)
	c.Locals(localsKey{}, nil)
}

func (g *Gate) clearCookie(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     common.SessionCookieName,
		Value:    "",
		Path:     "/",
		HTTPOnly: true,
		Secure:   g.secure,
		SameSite: fiber.CookieSameSiteLaxMode,
		Expires:  time.Unix(0, 0).UTC(),
	})
}

// Identify resolves the session cookie into an Identity stored in the fiber
// locals and the request context. Bad or expired tokens leave the request
// anonymous and clear the cookie.
func (g *Gate) Identify() fiber.Handler {
	return func(c *fiber.Ctx) error {
		raw := c.Cookies(common.SessionCookieName)
		if raw == "" {
			return c.Next()
		}

		claims, err := ParseToken(raw, g.secret)
		if err != nil {
			g.log.Debug(c.UserContext(), "dropping session cookie", "error", err)
			g.clearCookie(c)
			return c.Next()
		}

		setIdentity(c, Identity{UserID: claims.Subject, UserName: claims.Username})
		return c.Next()
	}
}

// RequireAuthenticated redirects anonymous requests to the login page,
// remembering where they were going.
func (g *Gate) RequireAuthenticated() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, ok := Current(c); ok {
			return c.Next()
		}
		return c.Redirect(LoginURL(c.OriginalURL()), fiber.StatusFound)
	}
}

// LoginURL is the login page that resumes at next after success.
func LoginURL(next string) string {
	return "/login?next=" + url.QueryEscape(next)
}

// Current returns the identity resolved for this request.
func Current(c *fiber.Ctx) (Identity, bool) {
	id, ok := c.Locals(localsKey{}).(Identity)
	return id, ok
}

func setIdentity(c *fiber.Ctx, id Identity) {
	c.Locals(localsKey{}, id)
	c.SetUserContext(WithIdentity(c.UserContext(), id))
}
