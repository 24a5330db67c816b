package main

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"strings"

	"github.com/dmitrymomot/waypoint"
	"github.com/dmitrymomot/waypoint/core/binder"
	"github.com/dmitrymomot/waypoint/core/handler"
	"github.com/dmitrymomot/waypoint/core/health"
	"github.com/dmitrymomot/waypoint/core/response"
	"github.com/dmitrymomot/waypoint/core/router"
	"github.com/dmitrymomot/waypoint/core/static"
	"github.com/dmitrymomot/waypoint/middleware"
)

type Ctx = handler.Context[*State]

//go:embed public
var public embed.FS

func publicFS() fs.FS {
	sub, err := fs.Sub(public, "public")
	if err != nil {
		panic(err)
	}
	return sub
}

var errNoteNotFound = errors.New("note not found")

type createNoteRequest struct {
	Title string   `json:"title"`
	Body  string   `json:"body"`
	Tags  []string `json:"tags"`
}

type listNotesRequest struct {
	Tag   string `query:"tag"`
	Limit int    `query:"limit"`
}

type noteRequest struct {
	ID int64 `path:"id"`
}

func registerRoutes(app *waypoint.App[*State], cfg AppConfig, log *slog.Logger, checks map[string]health.Check) {
	if len(cfg.APITokens) > 0 {
		tokens := make(map[string]any, len(cfg.APITokens))
		for i, tok := range cfg.APITokens {
			tokens[tok] = fmt.Sprintf("client-%d", i+1)
		}
		app.Use(middleware.BearerAuthWithConfig[*State](middleware.BearerAuthConfig{
			Validator: middleware.StaticTokens(tokens),
			// reads stay public
			Skip: func(ctx handler.RequestContext) bool {
				r := ctx.Request()
				return r.Method == http.MethodGet || r.Method == http.MethodHead || r.Method == http.MethodOptions ||
					!strings.HasPrefix(ctx.Pattern(), "/api/")
			},
		}))
	}

	app.At("/").Get(home)
	app.At("/health").Nest(func(h *router.Route[*State]) {
		h.At("/live").Get(health.Liveness[*State])
		h.At("/ready").Get(health.Readiness[*State](log, checks))
	})
	app.At("/ws").Get(func(*Ctx) handler.Response {
		return response.EchoWebSocket()
	})
	app.At("/assets/*path").Get(static.FS[*State](publicFS(), static.WithMaxAge(3600)))

	app.At("/api").Nest(func(api *router.Route[*State]) {
		api.At("/notes").Get(listNotes).Post(createNote)
		api.At("/notes/:id").Get(getNote).Delete(deleteNote)
		api.At("/events").Get(listEvents).Post(trackEvent)
	})
}

func home(ctx *Ctx) handler.Response {
	return response.Templ(homePage(ctx.State().List("", 10)))
}

func listNotes(ctx *Ctx) handler.Response {
	var req listNotesRequest
	if err := binder.Bind(ctx.Request(), &req, binder.Query()); err != nil {
		return response.Error(err)
	}
	return response.JSON(ctx.State().List(req.Tag, req.Limit))
}

func createNote(ctx *Ctx) handler.Response {
	var req createNoteRequest
	if err := binder.Bind(ctx.Request(), &req, binder.JSON()); err != nil {
		return response.Error(err)
	}
	if strings.TrimSpace(req.Title) == "" {
		return response.Error(response.ErrUnprocessableEntity.WithDetails(map[string]any{"title": "required"}))
	}

	note := ctx.State().Add(Note{Title: req.Title, Body: req.Body, Tags: req.Tags})
	return response.WithHeader(
		response.JSONWithStatus(note, http.StatusCreated),
		"Location", fmt.Sprintf("/api/notes/%d", note.ID),
	)
}

func getNote(ctx *Ctx) handler.Response {
	var req noteRequest
	if err := binder.Bind(ctx.Request(), &req, binder.Path(ctx)); err != nil {
		return response.Error(err)
	}
	note, ok := ctx.State().Get(req.ID)
	if !ok {
		return response.Error(handler.ClientError{Status: http.StatusNotFound, Err: errNoteNotFound})
	}
	return response.JSON(note)
}

func deleteNote(ctx *Ctx) handler.Response {
	id, err := handler.ParamAs[int64](ctx, "id")
	if err != nil {
		return response.Error(err)
	}
	if !ctx.State().Delete(id) {
		return response.Error(handler.ClientError{Status: http.StatusNotFound, Err: errNoteNotFound})
	}
	return response.NoContent()
}

// trackEvent counts events by their "type" field without decoding the payload.
func trackEvent(ctx *Ctx) handler.Response {
	kind, err := binder.Field(ctx.Request(), "type")
	if err != nil {
		return response.Error(err)
	}
	if kind.String() == "" {
		return response.Error(response.ErrBadRequest.WithMessage("event type is required"))
	}
	total := ctx.State().Track(kind.String())
	return response.JSONWithStatus(map[string]any{"type": kind.String(), "total": total}, http.StatusAccepted)
}

func listEvents(ctx *Ctx) handler.Response {
	return response.JSON(ctx.State().Events())
}
