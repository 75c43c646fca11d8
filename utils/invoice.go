package utils

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/medinatrips/medina-api/models"
	"github.com/medinatrips/medina-api/pricing"
	"github.com/phpdave11/gofpdf"
)

// BuildOrderVoucher renders a printable PDF voucher for a paid order.
func BuildOrderVoucher(order models.Order) (*bytes.Buffer, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 18)
	pdf.Cell(0, 12, "Booking Voucher")
	pdf.Ln(14)

	pdf.SetFont("Arial", "", 11)
	pdf.Cell(0, 7, "Order: "+order.OrderNumber)
	pdf.Ln(7)
	pdf.Cell(0, 7, fmt.Sprintf("Customer: %s %s", order.FirstName, order.LastName))
	pdf.Ln(7)
	pdf.Cell(0, 7, "Email: "+order.Email+"    Phone: "+order.Phone)
	pdf.Ln(7)
	accommodation := order.AccommodationType
	if order.HotelName != "" {
		accommodation += " - " + order.HotelName
	}
	pdf.Cell(0, 7, "Accommodation: "+accommodation)
	pdf.Ln(7)
	pdf.Cell(0, 7, "Payment: "+order.PaymentMethod+" ("+order.PaymentStatus+")")
	pdf.Ln(12)

	var lines []pricing.Line
	if len(order.CartItems) > 0 {
		if err := json.Unmarshal(order.CartItems, &lines); err != nil {
			return nil, fmt.Errorf("failed to parse cart snapshot: %w", err)
		}
	}

	pdf.SetFont("Arial", "B", 11)
	pdf.CellFormat(80, 8, "Excursion", "1", 0, "L", false, 0, "")
	pdf.CellFormat(30, 8, "Date", "1", 0, "L", false, 0, "")
	pdf.CellFormat(40, 8, "Travellers", "1", 0, "C", false, 0, "")
	pdf.CellFormat(40, 8, "Total (MAD)", "1", 1, "R", false, 0, "")

	pdf.SetFont("Arial", "", 10)
	for _, line := range lines {
		travellers := fmt.Sprintf("%d adult / %d child / %d baby", line.Adult, line.Child, line.Baby)
		pdf.CellFormat(80, 8, line.Name, "1", 0, "L", false, 0, "")
		pdf.CellFormat(30, 8, line.Date, "1", 0, "L", false, 0, "")
		pdf.CellFormat(40, 8, travellers, "1", 0, "C", false, 0, "")
		pdf.CellFormat(40, 8, fmt.Sprintf("%.2f", line.Total), "1", 1, "R", false, 0, "")
	}

	pdf.SetFont("Arial", "B", 11)
	pdf.CellFormat(150, 8, "Total", "1", 0, "R", false, 0, "")
	pdf.CellFormat(40, 8, fmt.Sprintf("%.2f", order.TotalMad), "1", 1, "R", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return &buf, nil
}
