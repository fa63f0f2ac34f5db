// Package document lays out EMI payment receipts and loan closure
// certificates as A4 PDFs.
package document

import (
	"bytes"
	"fmt"
	"image"
	"time"

	"github.com/disintegration/imaging"
	"github.com/go-pdf/fpdf"
)

// ContentTypePDF is the MIME type of every rendered document
const ContentTypePDF = "application/pdf"

const (
	pageWidth    = 210.0
	pageHeight   = 297.0
	marginLeft   = 18.0
	marginRight  = 18.0
	innerPad     = 6.0
	bodyLeft     = marginLeft + innerPad
	bodyWidth    = pageWidth - bodyLeft - marginRight - innerPad
	labelWidth   = 70.0
	rowHeight    = 8.5
	headingBarH  = 9.0
	logoWidth    = 18.0
	logoMaxPixel = 256
	logoName     = "brand-logo"
)

// RGB is a colour triple
type RGB struct {
	R, G, B int
}

// Brand holds the issuer details printed on every document
type Brand struct {
	Name    string
	Email   string
	Contact string
	Address string
	Primary RGB
	Accent  RGB
}

// DefaultBrand is the SmartLend letterhead
func DefaultBrand() Brand {
	return Brand{
		Name:    "SmartLend",
		Email:   "SmartLendLms1@gmail.com",
		Contact: "+91 98765 43210",
		Address: "No. 42, Tech Park Lane, Chennai - 600096",
		Primary: RGB{3, 61, 107},
		Accent:  RGB{21, 62, 117},
	}
}

var (
	tableFill  = RGB{240, 243, 245}
	tableText  = RGB{31, 41, 55}
	bodyText   = RGB{33, 33, 33}
	mutedText  = RGB{90, 90, 90}
	footerGrey = RGB{110, 110, 110}
)

// Document is a rendered file ready for download
type Document struct {
	Filename    string
	ContentType string
	Data        []byte
}

// Renderer produces branded PDF documents. It is safe for concurrent use;
// every call builds its own PDF.
type Renderer struct {
	brand Brand
	logo  []byte
	now   func() time.Time
}

// NewRenderer creates a Renderer for brand
func NewRenderer(brand Brand) *Renderer {
	return &Renderer{brand: brand, now: time.Now}
}

// SetClock overrides the time source used for "today" fallbacks and the
// footer year
func (r *Renderer) SetClock(now func() time.Time) {
	r.now = now
}

// LoadLogo reads an image file and keeps a downscaled PNG copy for the
// document header
func (r *Renderer) LoadLogo(path string) error {
	img, err := imaging.Open(path)
	if err != nil {
		return fmt.Errorf("open logo: %w", err)
	}
	return r.SetLogo(img)
}

// SetLogo uses img as the header logo
func (r *Renderer) SetLogo(img image.Image) error {
	b := img.Bounds()
	if b.Dx() > logoMaxPixel || b.Dy() > logoMaxPixel {
		img = imaging.Fit(img, logoMaxPixel, logoMaxPixel, imaging.Lanczos)
	}
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		return fmt.Errorf("encode logo: %w", err)
	}
	r.logo = buf.Bytes()
	return nil
}

// page wraps one fpdf document with the shared letterhead helpers
type page struct {
	pdf   *fpdf.Fpdf
	tr    func(string) string
	brand Brand
	y     float64
}

func (r *Renderer) newPage() *page {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(marginLeft, 15, marginRight)
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()

	p := &page{
		pdf:   pdf,
		tr:    pdf.UnicodeTranslatorFromDescriptor(""),
		brand: r.brand,
	}
	if len(r.logo) > 0 {
		opts := fpdf.ImageOptions{ImageType: "PNG", ReadDpi: true}
		pdf.RegisterImageOptionsReader(logoName, opts, bytes.NewReader(r.logo))
		pdf.ImageOptions(logoName, marginLeft, 10, logoWidth, 0, false, opts, 0, "")
	}
	return p
}

func (p *page) color(c RGB) {
	p.pdf.SetTextColor(c.R, c.G, c.B)
}

func (p *page) centered(y, h float64, text string) {
	p.pdf.SetXY(0, y)
	p.pdf.CellFormat(pageWidth, h, p.tr(text), "", 0, "C", false, 0, "")
}

// header draws the brand name, document subtitle and contact line
func (p *page) header(subtitle string) {
	p.color(p.brand.Primary)
	p.pdf.SetFont("Helvetica", "B", 25)
	p.centered(12, 10, p.brand.Name)

	p.pdf.SetFont("Helvetica", "", 15)
	p.centered(23, 7, subtitle)

	p.pdf.SetFont("Helvetica", "", 9)
	p.centered(32, 5, fmt.Sprintf("%s | Contact: %s | Email: %s", p.brand.Address, p.brand.Contact, p.brand.Email))

	p.y = 42
}

// headingBar draws the filled title bar that opens the body section
func (p *page) headingBar(title string) {
	a := p.brand.Accent
	p.pdf.SetFillColor(a.R, a.G, a.B)
	p.pdf.Rect(bodyLeft, p.y, bodyWidth, headingBarH, "F")

	p.pdf.SetTextColor(255, 255, 255)
	p.pdf.SetFont("Helvetica", "B", 13)
	p.pdf.SetXY(bodyLeft, p.y)
	p.pdf.CellFormat(bodyWidth, headingBarH, p.tr(title), "", 0, "C", false, 0, "")

	p.y += headingBarH + 3
	p.divider(bodyLeft, p.y, bodyLeft+bodyWidth, 215)
	p.y += 8
}

func (p *page) divider(x1, y, x2 float64, grey int) {
	p.pdf.SetDrawColor(grey, grey, grey)
	p.pdf.Line(x1, y, x2, y)
}

// text writes a single left-aligned body line and advances the cursor
func (p *page) text(s string, advance float64) {
	p.color(bodyText)
	p.pdf.SetFont("Helvetica", "", 11)
	p.pdf.SetXY(bodyLeft+2, p.y-4)
	p.pdf.CellFormat(bodyWidth-2, 5, p.tr(s), "", 0, "L", false, 0, "")
	p.y += advance
}

// paragraph writes justified, wrapped body copy
func (p *page) paragraph(s string) {
	p.color(bodyText)
	p.pdf.SetFont("Helvetica", "", 11)
	p.pdf.SetXY(bodyLeft, p.y-4)
	p.pdf.MultiCell(bodyWidth, 5.5, p.tr(s), "", "J", false)
	p.y = p.pdf.GetY() + 6
}

// table draws the two-column label/value table
func (p *page) table(rows [][2]string) {
	p.pdf.SetFillColor(tableFill.R, tableFill.G, tableFill.B)
	p.color(tableText)
	for _, row := range rows {
		p.pdf.SetXY(bodyLeft, p.y)
		p.pdf.SetFont("Helvetica", "B", 11)
		p.pdf.CellFormat(labelWidth, rowHeight, p.tr(row[0]), "", 0, "L", true, 0, "")
		p.pdf.SetFont("Helvetica", "", 11)
		p.pdf.CellFormat(bodyWidth-labelWidth, rowHeight, p.tr(row[1]), "", 0, "R", true, 0, "")
		p.y += rowHeight
		p.divider(bodyLeft, p.y+0.5, bodyLeft+bodyWidth, 235)
		p.y += 1
	}
	p.y += 10
}

// notes writes centred small print under the table
func (p *page) notes(lines ...string) {
	p.color(mutedText)
	p.pdf.SetFont("Helvetica", "", 10.5)
	for _, line := range lines {
		p.pdf.SetXY(bodyLeft, p.y-4)
		p.pdf.CellFormat(bodyWidth, 5, p.tr(line), "", 0, "C", false, 0, "")
		p.y += 5
	}
	p.y += 7
}

// footer draws the contact strip and copyright line at the page bottom
func (p *page) footer(year int) {
	y := pageHeight - 16
	p.color(p.brand.Primary)
	p.pdf.SetFont("Helvetica", "", 9)
	p.centered(y-3.5, 5, fmt.Sprintf("Email: %s  |  Contact: %s", p.brand.Email, p.brand.Contact))

	p.color(footerGrey)
	p.centered(y+1.5, 5, fmt.Sprintf("© %d %s. System-generated document.", year, p.brand.Name))
}

func (p *page) output(filename string) (*Document, error) {
	var buf bytes.Buffer
	if err := p.pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render %s: %w", filename, err)
	}
	return &Document{
		Filename:    filename,
		ContentType: ContentTypePDF,
		Data:        buf.Bytes(),
	}, nil
}
