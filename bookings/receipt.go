package bookings

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/julienschmidt/httprouter"
	"github.com/phpdave11/gofpdf"
	"github.com/skip2/go-qrcode"
	"go.mongodb.org/mongo-driver/bson"

	"hawurwanda/db"
	"hawurwanda/models"
	"hawurwanda/policy"
	"hawurwanda/utils"
)

func receiptSecret() []byte {
	if s := os.Getenv("RECEIPT_SECRET"); s != "" {
		return []byte(s)
	}
	return []byte("hawurwanda-receipt")
}

// ReceiptPayload builds the string embedded in a receipt QR code:
// bookingId|timeSlot|amount|signature. The salon scans it at the desk to
// confirm the receipt was issued by us and not edited.
func ReceiptPayload(b models.Booking) string {
	data := fmt.Sprintf("%s|%d|%.0f", b.BookingID, b.TimeSlot.Unix(), b.AmountTotal)
	h := hmac.New(sha256.New, receiptSecret())
	h.Write([]byte(data))
	sig := base64.StdEncoding.EncodeToString(h.Sum(nil))
	return fmt.Sprintf("%s|%s", data, sig)
}

// VerifyReceiptPayload checks a scanned payload's signature.
func VerifyReceiptPayload(payload string) bool {
	i := len(payload) - 1
	for ; i >= 0; i-- {
		if payload[i] == '|' {
			break
		}
	}
	if i <= 0 {
		return false
	}
	data, sig := payload[:i], payload[i+1:]
	h := hmac.New(sha256.New, receiptSecret())
	h.Write([]byte(data))
	expected := base64.StdEncoding.EncodeToString(h.Sum(nil))
	return hmac.Equal([]byte(sig), []byte(expected))
}

// PrintReceipt renders a booking receipt PDF with a signed QR code. Any party
// to the booking may download it.
func PrintReceipt(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	actor := policy.FromRequest(r)

	var booking models.Booking
	err := db.BookingCollection.FindOne(r.Context(), bson.M{"bookingId": ps.ByName("bookingId")}).Decode(&booking)
	if err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Booking not found")
		return
	}
	if !policy.CanAccessBooking(actor, booking) {
		utils.RespondWithError(w, http.StatusForbidden, "Not allowed to view this booking")
		return
	}

	var service models.Service
	_ = db.ServiceCollection.FindOne(r.Context(), bson.M{"serviceid": booking.ServiceID}).Decode(&service)
	serviceTitle := service.Title
	if serviceTitle == "" {
		serviceTitle = booking.ServiceID
	}

	var salon models.Salon
	_ = db.SalonCollection.FindOne(r.Context(), bson.M{"salonid": booking.SalonID}).Decode(&salon)
	salonName := salon.Name
	if salonName == "" {
		salonName = "Hawu Rwanda Salon"
	}

	qrPNG, err := qrcode.Encode(ReceiptPayload(booking), qrcode.Medium, 256)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to generate QR code")
		return
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(20, 20, 20)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 18)
	pdf.CellFormat(0, 12, salonName, "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "", 11)
	pdf.CellFormat(0, 8, "Booking Receipt", "", 1, "C", false, 0, "")
	pdf.Ln(6)

	pdf.SetFont("Arial", "", 12)
	pdf.MultiCell(0, 8, fmt.Sprintf(
		"Booking: %s\nService: %s\nTime: %s\nStatus: %s",
		booking.BookingID,
		serviceTitle,
		booking.TimeSlot.Format("Monday 02 Jan 2006, 15:04"),
		booking.Status,
	), "", "L", false)
	pdf.Ln(4)

	pdf.SetFont("Arial", "B", 12)
	pdf.MultiCell(0, 8, fmt.Sprintf(
		"Total: %.0f RWF\nPaid: %.0f RWF\nBalance due: %.0f RWF",
		booking.AmountTotal,
		booking.DepositPaid,
		booking.BalanceRemaining,
	), "", "L", false)

	imgOpts := gofpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("qr", imgOpts, bytes.NewReader(qrPNG))
	pdf.ImageOptions("qr", 150, 50, 40, 40, false, imgOpts, 0, "")

	pdf.SetY(-30)
	pdf.SetFont("Arial", "I", 9)
	pdf.CellFormat(0, 10, fmt.Sprintf("Issued %s. Present the QR code at the salon.", time.Now().Format("02 Jan 2006 15:04")), "T", 0, "C", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to generate receipt")
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", "attachment; filename=receipt-"+booking.BookingID+".pdf")
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}
