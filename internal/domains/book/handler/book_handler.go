package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"book-manage/internal/domains/book/model"
	service "book-manage/internal/domains/book/service"
	"book-manage/internal/shared/middleware"
	"book-manage/internal/shared/view"
)

const listPath = "/books"

// Handler - HTTP Handler for the books pages
type Handler struct {
	service service.ServiceInterface
}

// NewHandler - Constructor with DI
func NewHandler(service service.ServiceInterface) *Handler {
	return &Handler{service: service}
}

// BooksPage is the model of the books and admin pages.
type BooksPage struct {
	view.Page
	Form       *model.Form
	ID         int64
	MessageKey string
	Message    string
	Violations []model.FieldMessage
}

func (h *Handler) render(c *gin.Context, name string, form *model.Form, id int64) {
	c.HTML(http.StatusOK, name, BooksPage{
		Page: middleware.NewPage(c),
		Form: form,
		ID:   id,
	})
}

// Index - GET /
func (h *Handler) Index(c *gin.Context) {
	c.Redirect(http.StatusSeeOther, listPath)
}

// List - GET /books
func (h *Handler) List(c *gin.Context) {
	form, err := h.service.InitForm(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}
	h.render(c, view.Books, form, 0)
}

// Admin - GET /admin
func (h *Handler) Admin(c *gin.Context) {
	form, err := h.service.InitForm(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}
	h.render(c, view.Admin, form, 0)
}

// ReadOne - GET /books/:id
func (h *Handler) ReadOne(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	form, err := h.service.ReadOne(c.Request.Context(), id)
	if err != nil {
		h.handleFailure(c, model.NewForm(nil), 0, err)
		return
	}
	h.render(c, view.Books, form, id)
}

// Create - POST /books
func (h *Handler) Create(c *gin.Context) {
	form, err := bindForm(c)
	if err != nil {
		h.handleFailure(c, form, 0, err)
		return
	}

	actor := middleware.CurrentPrincipal(c).Username
	if _, err := h.service.Create(c.Request.Context(), form, actor); err != nil {
		h.handleFailure(c, form, 0, err)
		return
	}
	c.Redirect(http.StatusSeeOther, listPath)
}

// Update - PUT /books/:id
func (h *Handler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	form, err := bindForm(c)
	if err != nil {
		h.handleFailure(c, form, id, err)
		return
	}

	actor := middleware.CurrentPrincipal(c).Username
	if _, err := h.service.Update(c.Request.Context(), id, form, actor); err != nil {
		h.handleFailure(c, form, id, err)
		return
	}
	c.Redirect(http.StatusSeeOther, listPath)
}

// Delete - DELETE /books/:id
func (h *Handler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		h.handleFailure(c, model.NewForm(nil), 0, err)
		return
	}
	c.Redirect(http.StatusSeeOther, listPath)
}

// Export - GET /admin/books.xlsx
func (h *Handler) Export(c *gin.Context) {
	f, err := h.service.ExportBooksToExcel(c.Request.Context(), middleware.Printer(c))
	if err != nil {
		_ = c.Error(err)
		return
	}
	defer f.Close()

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", `attachment; filename="books.xlsx"`)
	c.Status(http.StatusOK)
	if err := f.Write(c.Writer); err != nil {
		_ = c.Error(err)
	}
}

// parseID reads :id. A non-numeric id is an unexpected failure and ends up
// on the generic error page.
func parseID(c *gin.Context) (int64, bool) {
	raw := c.Param("id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		_ = c.Error(fmt.Errorf("invalid book id %q: %w", raw, err))
		return 0, false
	}
	return id, true
}

// bindForm binds and validates the submitted form. The returned form always
// holds whatever could be bound so the page can redisplay it.
func bindForm(c *gin.Context) (*model.Form, error) {
	form := &model.Form{}
	if err := c.ShouldBind(form); err != nil {
		return form, model.ValidationFailed(model.Violations{{Field: "form", Key: model.KeyMalformed}})
	}

	violations, err := model.ValidateForm(form)
	if err != nil {
		return form, err
	}
	if violations.HasErrors() {
		return form, model.ValidationFailed(violations)
	}
	return form, nil
}
