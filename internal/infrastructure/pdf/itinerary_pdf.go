package pdf

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/phpdave11/gofpdf"
	"github.com/skip2/go-qrcode"

	"goplanner/internal/domain/model"
)

const (
	pageMargin   = 20.0
	footerHeight = 15.0
	qrSize       = 28.0
)

var (
	primaryColor = [3]int{19, 127, 236}
	lightGray    = [3]int{240, 240, 240}
	darkGray     = [3]int{100, 100, 100}
)

// ItineraryRenderer は旅程をPDFに書き出す
type ItineraryRenderer interface {
	Render(w io.Writer, draftID string, it *model.Itinerary) error
}

type itineraryRenderer struct {
	publicBaseURL string
	compress      bool
}

// NewItineraryRenderer は共有用QRコードのリンク先を指定して作成する
func NewItineraryRenderer(publicBaseURL string) ItineraryRenderer {
	return &itineraryRenderer{
		publicBaseURL: strings.TrimRight(publicBaseURL, "/"),
		compress:      true,
	}
}

// ShareURL は旅程の共有URL
func ShareURL(publicBaseURL, draftID string) string {
	return fmt.Sprintf("%s/itineraries/%s", strings.TrimRight(publicBaseURL, "/"), draftID)
}

// FileName は "GoPlanner_{目的地}_{日付}.pdf"
func FileName(destination string, now time.Time) string {
	if destination == "" {
		destination = "Trip"
	}
	safe := strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			return r
		}
		return '_'
	}, destination)
	return fmt.Sprintf("GoPlanner_%s_%s.pdf", safe, now.Format(model.DateLayout))
}

func (r *itineraryRenderer) Render(w io.Writer, draftID string, it *model.Itinerary) error {
	doc := gofpdf.New("P", "mm", "A4", "")
	doc.SetCompression(r.compress)
	doc.SetMargins(pageMargin, pageMargin, pageMargin)
	doc.SetAutoPageBreak(false, pageMargin)
	doc.AliasNbPages("{nb}")
	tr := doc.UnicodeTranslatorFromDescriptor("")

	doc.SetFooterFunc(func() {
		pageWidth, pageHeight := doc.GetPageSize()
		doc.SetDrawColor(200, 200, 200)
		doc.SetLineWidth(0.5)
		doc.Line(pageMargin, pageHeight-footerHeight, pageWidth-pageMargin, pageHeight-footerHeight)
		doc.SetY(pageHeight - 12)
		doc.SetFont("Helvetica", "", 8)
		doc.SetTextColor(darkGray[0], darkGray[1], darkGray[2])
		doc.CellFormat(0, 6, tr(fmt.Sprintf("Generated by GoPlanner • Page %d of {nb}", doc.PageNo())), "", 0, "C", false, 0, "")
	})

	doc.AddPage()
	r.header(doc, draftID)
	r.infoBox(doc, tr, it)
	for i := range it.Days {
		r.day(doc, tr, &it.Days[i])
	}

	if err := doc.Error(); err != nil {
		return fmt.Errorf("PDFの生成に失敗: %w", err)
	}
	return doc.Output(w)
}

func (r *itineraryRenderer) header(doc *gofpdf.Fpdf, draftID string) {
	pageWidth, _ := doc.GetPageSize()
	contentWidth := pageWidth - 2*pageMargin
	y := doc.GetY()

	doc.SetFillColor(primaryColor[0], primaryColor[1], primaryColor[2])
	doc.Rect(pageMargin, y, contentWidth, 35, "F")

	doc.SetTextColor(255, 255, 255)
	doc.SetFont("Helvetica", "B", 28)
	doc.Text(pageMargin+10, y+14, "GoPlanner")
	doc.SetFont("Helvetica", "", 16)
	doc.Text(pageMargin+10, y+26, "Trip Itinerary")

	// 共有用QRコード（生成に失敗しても本文は出力する）
	if draftID != "" && r.publicBaseURL != "" {
		if png, err := qrcode.Encode(ShareURL(r.publicBaseURL, draftID), qrcode.Medium, 256); err == nil {
			opts := gofpdf.ImageOptions{ImageType: "png"}
			doc.RegisterImageOptionsReader("share-qr", opts, bytes.NewReader(png))
			doc.ImageOptions("share-qr", pageMargin+contentWidth-qrSize-3.5, y+3.5, qrSize, qrSize, false, opts, 0, "")
		}
	}
	doc.SetY(y + 45)
}

func (r *itineraryRenderer) infoBox(doc *gofpdf.Fpdf, tr func(string) string, it *model.Itinerary) {
	pageWidth, _ := doc.GetPageSize()
	y := doc.GetY()

	type row struct{ label, value string }
	var rows []row
	if it.Destination != "" {
		rows = append(rows, row{"Destination:", it.Destination})
	}
	if it.StartDate != "" && it.EndDate != "" {
		rows = append(rows, row{"Travel Dates:", fmt.Sprintf("%s - %s", displayDate(it.StartDate, "Jan 2, 2006"), displayDate(it.EndDate, "Jan 2, 2006"))})
	}
	if it.Budget != "" {
		rows = append(rows, row{"Budget:", it.Budget})
	}
	if len(it.Interests) > 0 {
		rows = append(rows, row{"Interests:", strings.Join(it.Interests, ", ")})
	}

	height := float64(len(rows))*8 + 10
	doc.SetDrawColor(primaryColor[0], primaryColor[1], primaryColor[2])
	doc.SetLineWidth(0.5)
	doc.Rect(pageMargin, y, pageWidth-2*pageMargin, height, "D")

	lineY := y + 10
	for _, rw := range rows {
		doc.SetFont("Helvetica", "B", 12)
		doc.SetTextColor(primaryColor[0], primaryColor[1], primaryColor[2])
		doc.Text(pageMargin+8, lineY, rw.label)
		doc.SetFont("Helvetica", "", 12)
		doc.SetTextColor(0, 0, 0)
		doc.Text(pageMargin+53, lineY, tr(rw.value))
		lineY += 8
	}
	doc.SetY(y + height + 10)
}

func (r *itineraryRenderer) day(doc *gofpdf.Fpdf, tr func(string) string, day *model.DayPlan) {
	pageWidth, _ := doc.GetPageSize()
	contentWidth := pageWidth - 2*pageMargin
	ensureSpace(doc, 50)
	y := doc.GetY()

	doc.SetFillColor(primaryColor[0], primaryColor[1], primaryColor[2])
	doc.Rect(pageMargin, y, contentWidth, 12, "F")
	doc.SetTextColor(255, 255, 255)
	doc.SetFont("Helvetica", "B", 16)
	title := fmt.Sprintf("Day %d", day.DayNumber)
	if day.Date != "" {
		title += fmt.Sprintf(" (%s)", displayDate(day.Date, "Mon, Jan 2"))
	}
	doc.Text(pageMargin+8, y+8.5, title)
	doc.SetY(y + 18)

	if len(day.Activities) == 0 {
		doc.SetTextColor(darkGray[0], darkGray[1], darkGray[2])
		doc.SetFont("Helvetica", "I", 10)
		doc.Text(pageMargin+10, doc.GetY(), "No activities scheduled for this day.")
		doc.SetY(doc.GetY() + 18)
		return
	}

	for i := range day.Activities {
		r.activity(doc, tr, &day.Activities[i], contentWidth)
	}
	doc.SetY(doc.GetY() + 8)
}

func (r *itineraryRenderer) activity(doc *gofpdf.Fpdf, tr func(string) string, a *model.Activity, contentWidth float64) {
	textX := pageMargin + 12
	if a.Time != "" {
		textX = pageMargin + 50
	}
	textWidth := pageMargin + contentWidth - 5 - textX - 3

	notes := a.Notes
	if notes == "" {
		notes = a.Description
	}
	doc.SetFont("Helvetica", "", 9)
	noteLines := doc.SplitLines([]byte(tr(notes)), textWidth)
	if notes == "" {
		noteLines = nil
	}
	boxHeight := 20 + float64(len(noteLines))*4

	ensureSpace(doc, boxHeight+5)
	y := doc.GetY()

	doc.SetFillColor(lightGray[0], lightGray[1], lightGray[2])
	doc.Rect(pageMargin+5, y, contentWidth-10, boxHeight, "F")

	if a.Time != "" {
		doc.SetFillColor(primaryColor[0], primaryColor[1], primaryColor[2])
		doc.Rect(pageMargin+8, y+3, 35, 6, "F")
		doc.SetTextColor(255, 255, 255)
		doc.SetFont("Helvetica", "B", 10)
		doc.Text(pageMargin+10, y+7.5, a.Time)
	}

	name := a.Activity
	if name == "" {
		name = "Activity"
	}
	doc.SetTextColor(0, 0, 0)
	doc.SetFont("Helvetica", "B", 12)
	doc.Text(textX, y+7.5, tr(name))

	if a.Location != "" {
		doc.SetFont("Helvetica", "", 10)
		doc.SetTextColor(darkGray[0], darkGray[1], darkGray[2])
		doc.Text(textX, y+14, tr("Location: "+a.Location))
	}

	doc.SetFont("Helvetica", "", 9)
	doc.SetTextColor(60, 60, 60)
	for i, line := range noteLines {
		doc.Text(textX, y+20+float64(i)*4, string(line))
	}

	doc.SetY(y + boxHeight + 5)
}

// ensureSpace は残りの高さが足りなければ改ページする
func ensureSpace(doc *gofpdf.Fpdf, required float64) {
	_, pageHeight := doc.GetPageSize()
	if doc.GetY()+required > pageHeight-pageMargin-footerHeight {
		doc.AddPage()
	}
}

func displayDate(date, layout string) string {
	t, err := time.Parse(model.DateLayout, date)
	if err != nil {
		return date
	}
	return t.Format(layout)
}
