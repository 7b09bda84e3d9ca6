package web

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"path"
	"strconv"
	"time"

	"github.com/dmitrijs2005/learningjournal/internal/datex"
	"github.com/dmitrijs2005/learningjournal/internal/server/auth"
	"github.com/dmitrijs2005/learningjournal/internal/server/models"
	"github.com/dmitrijs2005/learningjournal/internal/server/services"
	"github.com/gofiber/fiber/v2"
)

//go:embed templates
var templatesFS embed.FS

const (
	layoutFile   = "templates/layout.html"
	partialsGlob = "templates/partials/*.html"
	pagesGlob    = "templates/pages/*.html"
)

// pageData is what every template receives.
type pageData struct {
	Title   string
	User    *auth.Identity
	Flash   string
	Message string
	CSRF    string

	Entries []*models.Entry
	Entry   *models.Entry
	Tag     string

	Form   services.EntryFields
	Errors map[string]string
	Action string

	Username string
	Next     string
}

type views struct {
	pages map[string]*template.Template
}

var funcs = template.FuncMap{
	"longDate": func(t time.Time) string { return t.Format("January 2, 2006") },
	"isoDate":  datex.Format,
	"minutes": func(v *int64) string {
		if v == nil {
			return "Not recorded"
		}
		return strconv.FormatInt(*v, 10) + " minutes"
	},
}

func loadViews() (*views, error) {
	names, err := fs.Glob(templatesFS, pagesGlob)
	if err != nil {
		return nil, err
	}

	v := &views{pages: make(map[string]*template.Template)}
	for _, name := range names {
		t, err := template.New("layout.html").Funcs(funcs).ParseFS(templatesFS, layoutFile, partialsGlob, name)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", name, err)
		}
		v.pages[path.Base(name)] = t
	}
	return v, nil
}

func (s *Server) render(c *fiber.Ctx, status int, page string, data *pageData) error {
	t, ok := s.views.pages[page]
	if !ok {
		return fmt.Errorf("unknown page %q", page)
	}

	if id, ok := auth.Current(c); ok {
		data.User = &id
	}
	data.CSRF = csrfToken(c)
	if data.Flash == "" {
		data.Flash = popFlash(c)
	}

	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout.html", data); err != nil {
		return fmt.Errorf("render %s: %w", page, err)
	}

	c.Status(status)
	c.Type("html", "utf-8")
	return c.Send(buf.Bytes())
}
