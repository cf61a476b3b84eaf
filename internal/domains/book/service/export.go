package service

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"

	"book-manage/internal/domains/book/model"
)

const exportTimeLayout = "2006-01-02 15:04:05"

// ExportBooksToExcel builds a workbook with one row per book. Headers are
// localized with t.
func (s *BookService) ExportBooksToExcel(ctx context.Context, t model.Translator) (*excelize.File, error) {
	books, err := s.Listing(ctx)
	if err != nil {
		return nil, err
	}

	f, err := buildBooksExcelFile(books, t)
	if err != nil {
		return nil, fmt.Errorf("failed to build excel file: %w", err)
	}
	return f, nil
}

func buildBooksExcelFile(books []model.Book, t model.Translator) (*excelize.File, error) {
	f := excelize.NewFile()

	sheetName := t.Sprintf("export.sheet")
	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return nil, err
	}

	// Row 1: Header
	headers := []string{
		t.Sprintf("export.header.id"),
		t.Sprintf("label.title"),
		t.Sprintf("label.author"),
		t.Sprintf("label.version"),
		t.Sprintf("export.header.created"),
		t.Sprintf("label.updatedBy"),
		t.Sprintf("label.updatedAt"),
	}
	for colIdx, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(colIdx+1, 1)
		if err := f.SetCellValue(sheetName, cell, header); err != nil {
			return nil, err
		}
	}

	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err == nil {
		lastCol, _ := excelize.CoordinatesToCellName(len(headers), 1)
		_ = f.SetCellStyle(sheetName, "A1", lastCol, headerStyle)
	}

	// Data rows, bắt đầu từ row 2
	for i, b := range books {
		row := []any{
			b.ID,
			b.Title,
			b.Author,
			b.Version,
			b.CreatedAt.Format(exportTimeLayout),
			b.UpdatedBy,
			b.UpdatedAt.Format(exportTimeLayout),
		}
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(sheetName, cell, &row); err != nil {
			return nil, err
		}
	}

	return f, nil
}
