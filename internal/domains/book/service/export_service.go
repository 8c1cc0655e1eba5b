package service

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"

	"bookshelf-backend/internal/domains/book/model"
)

// ExportBooksToExcel renders the catalog listing as a spreadsheet.
func (s *BookService) ExportBooksToExcel(ctx context.Context) (*excelize.File, error) {
	books, err := s.ListBooks(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list books: %w", err)
	}
	return buildBooksExcelFile(books)
}

func buildBooksExcelFile(books []model.Book) (*excelize.File, error) {
	f := excelize.NewFile()

	sheetName := "Books"
	f.SetSheetName("Sheet1", sheetName)

	headers := []string{"ID", "Book Name", "Author", "Price", "Image URL", "Created At", "Updated At"}
	for colIdx, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(colIdx+1, 1)
		f.SetCellValue(sheetName, cell, header)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
	})
	if err == nil {
		f.SetCellStyle(sheetName, "A1", "G1", headerStyle)
	}

	for i, b := range books {
		row := i + 2
		cell := func(col int) string {
			name, _ := excelize.CoordinatesToCellName(col, row)
			return name
		}

		f.SetCellValue(sheetName, cell(1), b.ID.Hex())
		f.SetCellValue(sheetName, cell(2), b.BookName)
		f.SetCellValue(sheetName, cell(3), b.AuthorName)
		f.SetCellValue(sheetName, cell(4), b.Price)
		f.SetCellValue(sheetName, cell(5), b.ImageURL)
		f.SetCellValue(sheetName, cell(6), b.CreatedAt.Format("2006-01-02 15:04:05"))
		f.SetCellValue(sheetName, cell(7), b.UpdatedAt.Format("2006-01-02 15:04:05"))
	}

	if err := f.SetColWidth(sheetName, "A", "G", 24); err != nil {
		return nil, fmt.Errorf("failed to size columns: %w", err)
	}

	return f, nil
}
