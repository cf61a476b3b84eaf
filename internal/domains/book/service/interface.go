package service

import (
	"context"

	"github.com/xuri/excelize/v2"

	"book-manage/internal/domains/book/model"
)

// ServiceInterface - Định nghĩa business logic methods
//
// Business failures are returned as *model.Failure; any other error is
// unexpected.
type ServiceInterface interface {
	InitForm(ctx context.Context) (*model.Form, error)
	ReadOne(ctx context.Context, id int64) (*model.Form, error)
	Create(ctx context.Context, form *model.Form, actor string) (*model.Book, error)
	Update(ctx context.Context, id int64, form *model.Form, actor string) (*model.Book, error)
	Delete(ctx context.Context, id int64) error
	Listing(ctx context.Context) ([]model.Book, error)
	ExportBooksToExcel(ctx context.Context, t model.Translator) (*excelize.File, error)
}
