package documents

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"
)

// TicketData carries everything the PDF needs. It is a snapshot of ticket,
// event and participant fields so rendering stays a pure function and can be
// replayed for an existing ticket.
type TicketData struct {
	ParticipantName string
	EventName       string
	EventDate       time.Time
	Location        string
	Description     string
	Code            string
	Number          int
	MaxTickets      int // 0 when the event has no capacity ceiling
	QRCode          string
}

const (
	placeholderLocation = "Location to be announced"
	pageWidth           = 210.0
	pageHeight          = 297.0
)

// RenderTicketPDF produces the A4 ticket document. Missing optional fields
// fall back to fixed placeholder text.
func RenderTicketPDF(data TicketData) ([]byte, error) {
	location := data.Location
	if location == "" {
		location = placeholderLocation
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	// Soft background panel.
	pdf.SetFillColor(245, 247, 250)
	pdf.Rect(0, 0, pageWidth, pageHeight, "F")
	pdf.SetFillColor(227, 232, 240)
	pdf.Rect(0, pageHeight/2, pageWidth, pageHeight/2, "F")

	pdf.SetY(30)
	pdf.SetFont("Helvetica", "B", 28)
	pdf.SetTextColor(0, 0, 0)
	pdf.CellFormat(0, 14, tr(strings.ToUpper(data.EventName)), "", 1, "C", false, 0, "")

	pdf.Ln(8)
	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(0, 10, tr(strings.ToUpper(data.ParticipantName)), "", 1, "C", false, 0, "")

	// QR code, centered, with a light frame.
	const qrSize = 64.0
	qrX := (pageWidth - qrSize) / 2
	qrY := 90.0
	qrPNG, err := DecodeQRCode(data.QRCode)
	if err != nil {
		return nil, fmt.Errorf("invalid qr payload: %w", err)
	}
	pdf.SetFillColor(255, 255, 255)
	pdf.Rect(qrX-3, qrY-3, qrSize+6, qrSize+6, "F")
	imageName := "qr-" + data.Code
	pdf.RegisterImageOptionsReader(imageName, gofpdf.ImageOptions{ImageType: "PNG"}, bytes.NewReader(qrPNG))
	pdf.ImageOptions(imageName, qrX, qrY, qrSize, qrSize, false, gofpdf.ImageOptions{ImageType: "PNG"}, 0, "")

	pdf.SetY(qrY + qrSize + 6)
	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(0, 8, tr(data.Code), "", 1, "C", false, 0, "")

	if data.Number > 0 {
		pdf.SetFont("Helvetica", "", 11)
		pdf.SetTextColor(80, 80, 80)
		label := fmt.Sprintf("Ticket #%d", data.Number)
		if data.MaxTickets > 0 {
			label = fmt.Sprintf("Ticket #%d of %d", data.Number, data.MaxTickets)
		}
		pdf.CellFormat(0, 6, label, "", 1, "C", false, 0, "")
	}

	pdf.SetY(185)
	pdf.SetFont("Helvetica", "B", 13)
	pdf.SetTextColor(0, 0, 0)
	pdf.CellFormat(0, 8, tr(data.EventDate.Format("Monday, 2 January 2006 at 15:04")), "", 1, "C", false, 0, "")
	pdf.CellFormat(0, 8, tr(location), "", 1, "C", false, 0, "")

	// Info box, only when the event carries a description.
	if data.Description != "" {
		boxX, boxY := 25.0, 212.0
		boxW, boxH := pageWidth-50.0, 36.0
		pdf.SetFillColor(255, 255, 255)
		pdf.Rect(boxX, boxY, boxW, boxH, "F")
		pdf.SetXY(boxX+6, boxY+5)
		pdf.SetFont("Helvetica", "B", 11)
		pdf.CellFormat(0, 6, "INFO:", "", 1, "L", false, 0, "")
		pdf.SetX(boxX + 6)
		pdf.SetFont("Helvetica", "", 10)
		pdf.MultiCell(boxW-12, 5, tr(data.Description), "", "L", false)
	}

	pdf.SetY(pageHeight - 28)
	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(85, 85, 85)
	pdf.CellFormat(0, 5, "Present this ticket at the entrance for validation.", "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	pdf.SetTextColor(119, 119, 119)
	pdf.CellFormat(0, 5, "This ticket is personal and non-transferable.", "", 1, "C", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
