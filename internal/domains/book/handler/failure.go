package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"book-manage/internal/domains/book/model"
	"book-manage/internal/infrastructure/i18n"
	"book-manage/internal/shared/middleware"
	"book-manage/internal/shared/view"
)

// handleFailure redraws the books page for a business failure: the listing
// is reloaded, the message is localized and the submitted input is kept.
// Anything that is not a business failure goes to the error boundary.
func (h *Handler) handleFailure(c *gin.Context, form *model.Form, id int64, err error) {
	f, ok := model.AsFailure(err)
	if !ok {
		_ = c.Error(err)
		return
	}

	var key string
	switch f.Kind {
	case model.KindNotFound:
		key = i18n.KeyBookNotFound
	case model.KindOptimisticConflict:
		key = i18n.KeyOptimisticConflict
	case model.KindValidation:
		key = i18n.KeyValidation
	default:
		_ = c.Error(err)
		return
	}

	fresh, ferr := h.service.InitForm(c.Request.Context())
	if ferr != nil {
		_ = c.Error(ferr)
		return
	}
	form.Books = fresh.Books

	log.Warn().
		Str("request_id", c.GetString("request_id")).
		Str("kind", f.Kind.String()).
		Int64("book_id", f.ID).
		Str("violations", f.Violations.String()).
		Msg("[BookHandler] Business failure")

	printer := middleware.Printer(c)
	c.HTML(http.StatusOK, view.Books, BooksPage{
		Page:       middleware.NewPage(c),
		Form:       form,
		ID:         id,
		MessageKey: key,
		Message:    printer.Sprintf(key),
		Violations: f.Violations.Localize(printer),
	})
}
