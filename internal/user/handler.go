package user

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	resp "user-console/internal/transport/http/response"
)

// Handler maps one HTTP request to one Store call and a status code. It
// holds no state beyond its dependencies; all invariants (required fields,
// not-found) are decided here, never in the store.
type Handler struct {
	store Store
	log   *zap.Logger
}

func NewHandler(store Store, log *zap.Logger) *Handler {
	return &Handler{store: store, log: log}
}

func (h *Handler) List(c *gin.Context) {
	users, err := h.store.List(c.Request.Context())
	if err != nil {
		h.fail(c, "list users", err)
		return
	}
	if users == nil {
		users = []User{}
	}
	c.JSON(http.StatusOK, users)
}

func (h *Handler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	u, err := h.store.Get(c.Request.Context(), id)
	if err != nil {
		h.fail(c, "get user", err)
		return
	}
	if u == nil {
		c.JSON(http.StatusNotFound, resp.Error(resp.MsgUserNotFound))
		return
	}
	c.JSON(http.StatusOK, u)
}

func (h *Handler) Create(c *gin.Context) {
	var in struct {
		Username string `json:"username"`
		Email    string `json:"email"`
		Token    string `json:"token"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, resp.Error(resp.MsgFieldsNeeded))
		return
	}
	if in.Username == "" || in.Email == "" || in.Token == "" {
		c.JSON(http.StatusBadRequest, resp.Error(resp.MsgFieldsNeeded))
		return
	}
	u := User{Username: in.Username, Email: in.Email, Token: in.Token}
	if err := h.store.Create(c.Request.Context(), &u); err != nil {
		h.fail(c, "create user", err)
		return
	}
	c.JSON(http.StatusCreated, u)
}

// Update changes the token and nothing else. Extra body fields (the edit
// form may post the whole record) are decoded and dropped.
func (h *Handler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var in struct {
		Token string `json:"token"`
	}
	if err := c.ShouldBindJSON(&in); err != nil || in.Token == "" {
		c.JSON(http.StatusBadRequest, resp.Error(resp.MsgTokenNeeded))
		return
	}
	u, err := h.store.UpdateToken(c.Request.Context(), id, in.Token)
	if err != nil {
		h.fail(c, "update token", err)
		return
	}
	if u == nil {
		c.JSON(http.StatusNotFound, resp.Error(resp.MsgUserNotFound))
		return
	}
	c.JSON(http.StatusOK, u)
}

func (h *Handler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	n, err := h.store.Delete(c.Request.Context(), id)
	if err != nil {
		h.fail(c, "delete user", err)
		return
	}
	if n == 0 {
		c.JSON(http.StatusNotFound, resp.Error(resp.MsgUserNotFound))
		return
	}
	c.JSON(http.StatusOK, resp.Message(resp.MsgUserDeleted))
}

func (h *Handler) fail(c *gin.Context, op string, err error) {
	h.log.Error(op, zap.Error(err), zap.String("rid", c.GetString("X-Request-ID")))
	c.JSON(http.StatusInternalServerError, resp.Error(resp.MsgInternal))
}

func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, resp.Error(resp.MsgInvalidID))
		return 0, false
	}
	return id, true
}
