package web

import (
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/dmitrijs2005/learningjournal/internal/common"
	"github.com/dmitrijs2005/learningjournal/internal/datex"
	"github.com/dmitrijs2005/learningjournal/internal/server/auth"
	"github.com/dmitrijs2005/learningjournal/internal/server/services"
	"github.com/gofiber/fiber/v2"
)

const invalidLoginMessage = "Invalid username or password"

func (s *Server) entryService(c *fiber.Ctx) *services.EntryService {
	return services.NewEntryService(requestConn(c), s.repos, s.archiver, s.logger)
}

func (s *Server) userService(c *fiber.Ctx) *services.UserService {
	return services.NewUserService(requestConn(c), s.repos)
}

func loginURL(c *fiber.Ctx) string {
	return auth.LoginURL(c.OriginalURL())
}

func entryURL(slug string) string {
	return "/entries/" + slug
}

func (s *Server) index(c *fiber.Ctx) error {
	tag := strings.TrimSpace(c.Query("tag"))

	entries, err := s.entryService(c).List(c.UserContext(), tag)
	if err != nil {
		return err
	}

	return s.render(c, fiber.StatusOK, "index.html", &pageData{Title: "Entries", Entries: entries, Tag: tag})
}

func (s *Server) detail(c *fiber.Ctx) error {
	entry, err := s.entryService(c).GetBySlug(c.UserContext(), c.Params("slug"))
	if err != nil {
		return err
	}

	return s.render(c, fiber.StatusOK, "detail.html", &pageData{Title: entry.Title, Entry: entry})
}

func (s *Server) loginForm(c *fiber.Ctx) error {
	if _, ok := auth.Current(c); ok {
		return c.Redirect("/", fiber.StatusFound)
	}

	return s.render(c, fiber.StatusOK, "login.html", &pageData{Title: "Sign In", Next: c.Query("next")})
}

func (s *Server) loginSubmit(c *fiber.Ctx) error {
	if _, ok := auth.Current(c); ok {
		return c.Redirect("/", fiber.StatusFound)
	}

	next := c.Query("next", c.FormValue("next"))
	username := strings.TrimSpace(c.FormValue("username"))
	password := c.FormValue("password")

	problems := map[string]string{}
	if username == "" {
		problems["username"] = "This field is required."
	}
	if password == "" {
		problems["password"] = "This field is required."
	}
	if len(problems) > 0 {
		return s.render(c, fiber.StatusBadRequest, "login.html", &pageData{
			Title: "Sign In", Errors: problems, Username: username, Next: next,
		})
	}

	user, err := s.userService(c).Verify(c.UserContext(), username, password)
	if err != nil {
		if errors.Is(err, common.ErrorUnauthorized) {
			s.logger.Info(c.UserContext(), "login failed", "username", username)
			setFlash(c, invalidLoginMessage)
			target := "/login"
			if next != "" {
				target = auth.LoginURL(next)
			}
			return c.Redirect(target, fiber.StatusFound)
		}
		return err
	}

	if err := s.gate.StartSession(c, user, rememberChecked(c.FormValue("remember_me"))); err != nil {
		return err
	}
	s.logger.Info(c.UserContext(), "login", "username", user.UserName)

	return c.Redirect(auth.SafeNext(next), fiber.StatusFound)
}

func rememberChecked(v string) bool {
	switch strings.ToLower(v) {
	case "y", "yes", "on", "true", "1":
		return true
	}
	return false
}

func (s *Server) logout(c *fiber.Ctx) error {
	s.gate.EndSession(c)
	return c.Redirect("/", fiber.StatusFound)
}

func entryFields(c *fiber.Ctx) services.EntryFields {
	return services.EntryFields{
		Title:     c.FormValue("title"),
		Date:      c.FormValue("date"),
		TimeSpent: c.FormValue("time_spent"),
		Learned:   c.FormValue("learned"),
		Resources: c.FormValue("resources"),
		Tags:      c.FormValue("tags"),
	}
}

func (s *Server) newForm(c *fiber.Ctx) error {
	return s.render(c, fiber.StatusOK, "new.html", &pageData{
		Title:  "New Entry",
		Action: "/entries/new",
		Form:   services.EntryFields{Date: datex.Format(time.Now())},
	})
}

func (s *Server) newSubmit(c *fiber.Ctx) error {
	f := entryFields(c)

	entry, err := s.entryService(c).Create(c.UserContext(), f)
	if err != nil {
		var ve *services.ValidationError
		if errors.As(err, &ve) {
			return s.render(c, fiber.StatusBadRequest, "new.html", &pageData{
				Title: "New Entry", Action: "/entries/new", Form: f, Errors: ve.Fields,
			})
		}
		return err
	}

	return c.Redirect(entryURL(entry.Slug), fiber.StatusFound)
}

func (s *Server) editForm(c *fiber.Ctx) error {
	entry, err := s.entryService(c).GetBySlug(c.UserContext(), c.Params("slug"))
	if err != nil {
		return err
	}

	return s.render(c, fiber.StatusOK, "edit.html", &pageData{
		Title:  "Edit " + entry.Title,
		Action: entryURL(entry.Slug) + "/edit",
		Entry:  entry,
		Form:   services.FieldsOf(entry),
	})
}

func (s *Server) editSubmit(c *fiber.Ctx) error {
	slug := c.Params("slug")
	f := entryFields(c)

	entry, err := s.entryService(c).Update(c.UserContext(), slug, f)
	if err != nil {
		var ve *services.ValidationError
		if errors.As(err, &ve) {
			return s.render(c, fiber.StatusBadRequest, "edit.html", &pageData{
				Title: "Edit Entry", Action: entryURL(slug) + "/edit", Form: f, Errors: ve.Fields,
			})
		}
		return err
	}

	return c.Redirect(entryURL(entry.Slug), fiber.StatusFound)
}

func (s *Server) delete(c *fiber.Ctx) error {
	if !queryTokenValid(c) {
		s.logger.Warn(c.UserContext(), "delete without csrf token", "slug", c.Params("slug"))
		return fiber.ErrForbidden
	}

	if err := s.entryService(c).Delete(c.UserContext(), c.Params("slug")); err != nil {
		return err
	}

	setFlash(c, "Entry deleted.")
	return c.Redirect("/", fiber.StatusFound)
}

type exportedEntry struct {
	ID        int64    `json:"id"`
	Slug      string   `json:"slug"`
	Title     string   `json:"title"`
	Date      string   `json:"date"`
	TimeSpent *int64   `json:"time_spent"`
	Learned   string   `json:"learned"`
	Resources string   `json:"resources"`
	Tags      []string `json:"tags"`
}

// export dumps entries as JSON for backups.
func (s *Server) export(c *fiber.Ctx) error {
	entries, err := s.entryService(c).List(c.UserContext(), c.Query("tag"))
	if err != nil {
		return err
	}

	out := make([]exportedEntry, 0, len(entries))
	for _, e := range entries {
		tags := e.TagList()
		if tags == nil {
			tags = []string{}
		}
		out = append(out, exportedEntry{
			ID:        e.ID,
			Slug:      e.Slug,
			Title:     e.Title,
			Date:      datex.Format(e.Date),
			TimeSpent: e.TimeSpent,
			Learned:   e.Learned,
			Resources: e.Resources,
			Tags:      tags,
		})
	}

	body, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return err
	}
	c.Type("json", "utf-8")
	return c.Send(append(body, '\n'))
}

func (s *Server) healthz(c *fiber.Ctx) error {
	if err := s.db.PingContext(c.UserContext()); err != nil {
		s.logger.Error(c.UserContext(), "health check failed", "error", err)
		return c.Status(fiber.StatusServiceUnavailable).SendString("unavailable")
	}
	return c.SendString("ok")
}
