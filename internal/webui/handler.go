package webui

import (
	"context"
	"errors"
	"html/template"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"user-console/internal/user"
	"user-console/internal/webui/apiclient"
	"user-console/internal/webui/session"
	"user-console/internal/webui/view"
	"user-console/pkg/utils"
)

const sessionCookie = "sid"

// Handler drives the console: every request loads the session State,
// dispatches reducer actions (running API effects in between), saves the
// State back, and either renders it or redirects to GET /.
type Handler struct {
	api      *apiclient.Client
	sessions session.Store
	log      *zap.Logger
	tmpl     *template.Template
}

func NewHandler(api *apiclient.Client, sessions session.Store, log *zap.Logger) (*Handler, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/*.tmpl")
	if err != nil {
		return nil, err
	}
	return &Handler{api: api, sessions: sessions, log: log, tmpl: tmpl}, nil
}

func (h *Handler) Index(c *gin.Context) {
	sid, st := h.load(c)

	// first paint of a fresh session: one list fetch, success or failure
	// recorded in the State rather than swallowed
	if st.Loading {
		st = h.fetchUsers(c.Request.Context(), st)
	}

	h.save(c, sid, st)
	c.Header("Content-Type", "text/html; charset=utf-8")
	c.Status(http.StatusOK)
	if err := h.tmpl.ExecuteTemplate(c.Writer, "index.tmpl", st); err != nil {
		h.log.Error("render", zap.Error(err))
	}
}

func (h *Handler) Refresh(c *gin.Context) {
	h.dispatch(c, func(ctx context.Context, st view.State) view.State {
		return h.fetchUsers(ctx, st)
	})
}

func (h *Handler) OpenCreate(c *gin.Context) {
	h.dispatch(c, func(_ context.Context, st view.State) view.State {
		return view.Reduce(st, view.OpenCreate{})
	})
}

func (h *Handler) OpenEdit(c *gin.Context) {
	id, _ := strconv.ParseInt(c.Param("id"), 10, 64)
	h.dispatch(c, func(_ context.Context, st view.State) view.State {
		for _, u := range st.Users {
			if u.ID == id {
				return view.Reduce(st, view.OpenEdit{User: u})
			}
		}
		return view.Reduce(st, view.MutationFailed{Message: "That user is no longer in the list."})
	})
}

func (h *Handler) CloseModal(c *gin.Context) {
	h.dispatch(c, func(_ context.Context, st view.State) view.State {
		return view.Reduce(st, view.CloseModal{})
	})
}

// Submit handles both create and edit; a non-zero draft id means edit.
// Validation failure is a self-transition: modal stays open, no request.
func (h *Handler) Submit(c *gin.Context) {
	id, _ := strconv.ParseInt(c.PostForm("id"), 10, 64)
	draft := view.Draft{
		ID:       id,
		Username: c.PostForm("username"),
		Email:    c.PostForm("email"),
		Token:    c.PostForm("token"),
	}

	h.dispatch(c, func(ctx context.Context, st view.State) view.State {
		if errs := view.Validate(draft); errs.Any() {
			return view.Reduce(st, view.SubmitInvalid{Draft: draft, Errors: errs})
		}

		if draft.ID == 0 {
			created, err := h.api.Create(ctx, draft.Username, draft.Email, draft.Token)
			if err != nil {
				return h.mutationFailed(st, "create user", err)
			}
			return view.Reduce(st, view.Created{User: *created})
		}

		// edit updates the token only; username/email are read-only here
		updated, err := h.api.UpdateToken(ctx, draft.ID, draft.Token)
		if err != nil {
			return h.mutationFailed(st, "update token", err)
		}
		return view.Reduce(st, view.Updated{User: *updated})
	})
}

func (h *Handler) OpenDelete(c *gin.Context) {
	id, _ := strconv.ParseInt(c.Param("id"), 10, 64)
	h.dispatch(c, func(_ context.Context, st view.State) view.State {
		return view.Reduce(st, view.OpenDelete{ID: id})
	})
}

func (h *Handler) CancelDelete(c *gin.Context) {
	h.dispatch(c, func(_ context.Context, st view.State) view.State {
		return view.Reduce(st, view.CloseDelete{})
	})
}

func (h *Handler) ConfirmDelete(c *gin.Context) {
	h.dispatch(c, func(ctx context.Context, st view.State) view.State {
		if st.DeleteID == 0 {
			return st
		}
		if err := h.api.Delete(ctx, st.DeleteID); err != nil {
			return h.mutationFailed(st, "delete user", err)
		}
		return view.Reduce(st, view.Deleted{ID: st.DeleteID})
	})
}

func (h *Handler) DismissFlash(c *gin.Context) {
	h.dispatch(c, func(_ context.Context, st view.State) view.State {
		return view.Reduce(st, view.DismissFlash{})
	})
}

func (h *Handler) fetchUsers(ctx context.Context, st view.State) view.State {
	users, err := h.api.List(ctx)
	if err != nil {
		h.log.Error("fetch users", zap.Error(err))
		return view.Reduce(st, view.LoadFailed{})
	}
	if users == nil {
		users = []user.User{}
	}
	return view.Reduce(st, view.UsersLoaded{Users: users})
}

// mutationFailed logs the cause and folds it into the State so the screen
// can say something, instead of dropping it on the console floor.
func (h *Handler) mutationFailed(st view.State, op string, err error) view.State {
	h.log.Error(op, zap.Error(err))

	msg := "The request failed. Is the user API reachable?"
	var apiErr *apiclient.APIError
	switch {
	case errors.Is(err, apiclient.ErrNotFound):
		msg = "That user no longer exists on the server."
	case errors.As(err, &apiErr):
		msg = "The server rejected the request: " + apiErr.Message
	}
	return view.Reduce(st, view.MutationFailed{Message: msg})
}

func (h *Handler) dispatch(c *gin.Context, fn func(context.Context, view.State) view.State) {
	sid, st := h.load(c)
	st = fn(c.Request.Context(), st)
	h.save(c, sid, st)
	c.Redirect(http.StatusSeeOther, "/")
}

func (h *Handler) load(c *gin.Context) (string, view.State) {
	sid, err := c.Cookie(sessionCookie)
	if err != nil || sid == "" {
		sid = utils.NewID()
		c.SetCookie(sessionCookie, sid, 0, "/", "", false, true)
		return sid, view.Initial()
	}
	st, err := h.sessions.Load(c.Request.Context(), sid)
	if err != nil {
		if !errors.Is(err, session.ErrNotFound) {
			h.log.Error("session load", zap.Error(err))
		}
		return sid, view.Initial()
	}
	return sid, st
}

func (h *Handler) save(c *gin.Context, sid string, st view.State) {
	if err := h.sessions.Save(c.Request.Context(), sid, st); err != nil {
		h.log.Error("session save", zap.Error(err))
	}
}
