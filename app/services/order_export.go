package services

import (
	"fmt"
	"io"

	"github.com/farsishop/storefront/app/models"
	"github.com/farsishop/storefront/app/utils/calc"
	"github.com/tealeg/xlsx"
)

const orderSheetName = "سفارش‌ها"

var orderSheetHeader = []string{
	"شماره سفارش",
	"تاریخ ثبت",
	"محصول",
	"تعداد",
	"قیمت پیشنهادی",
	"قیمت واحد",
	"نام مشتری",
	"تلفن",
	"وضعیت",
	"توضیحات",
}

// WriteOrdersXLSX renders orders as a single-sheet workbook.
func WriteOrdersXLSX(w io.Writer, orders []models.Order) error {
	file := xlsx.NewFile()
	sheet, err := file.AddSheet(orderSheetName)
	if err != nil {
		return fmt.Errorf("failed to add sheet: %w", err)
	}

	header := sheet.AddRow()
	for _, title := range orderSheetHeader {
		header.AddCell().SetString(title)
	}

	for _, order := range orders {
		row := sheet.AddRow()
		row.AddCell().SetString(order.ID)
		row.AddCell().SetString(order.CreatedAt.Format("2006-01-02 15:04"))
		row.AddCell().SetString(order.ProductName)
		row.AddCell().SetInt(order.Quantity)
		row.AddCell().SetString(order.DesiredPrice.StringFixed(0))
		row.AddCell().SetString(calc.UnitPrice(order.DesiredPrice, order.Quantity).StringFixed(0))
		row.AddCell().SetString(order.CustomerName)
		row.AddCell().SetString(order.CustomerPhone)
		row.AddCell().SetString(models.OrderStatusLabels[order.Status])
		notes := ""
		if order.Notes != nil {
			notes = *order.Notes
		}
		row.AddCell().SetString(notes)
	}

	if err := file.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}
