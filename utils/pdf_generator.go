package utils

import (
	"bytes"
	"context"
	"html/template"
	"os"
	"path/filepath"
	"time"

	"kvltransport/models"
	"kvltransport/repository"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
)

// FormatContacts flattens the company mobile list into the header string
// printed on every document.
func FormatContacts(profile *models.CompanyProfile) string {
	if profile == nil {
		return ""
	}
	contacts := ""
	for _, m := range profile.Mobile {
		contacts += m.Number + "(" + m.Label + "), "
	}
	if len(contacts) > 2 {
		contacts = contacts[:len(contacts)-2]
	}
	return contacts
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format("02-Jan-2006")
}

// GenerateConsignmentNotePDF renders the three-copy consignment note:
// consignee, driver and consignor copies, structurally identical except for
// the copy label. Returns nil bytes when the consignment does not exist.
func GenerateConsignmentNotePDF(repo *repository.PDFRepository, consignmentID string) ([]byte, error) {
	company, err := repo.GetCompanyForPDF()
	if err != nil {
		return nil, err
	}

	cons, err := repo.GetConsignmentForPDF(consignmentID)
	if err != nil {
		return nil, err
	}
	if cons == nil {
		return nil, nil
	}

	tmpl, err := template.ParseFiles("templates/consignment_note.html")
	if err != nil {
		return nil, err
	}

	copyTitles := []string{"Consignee Copy", "Driver Copy", "Consignor Copy"}

	var fullHTML bytes.Buffer
	for _, title := range copyTitles {
		data := models.ConsignmentPDFData{
			Company:   company,
			Cons:      cons,
			Contacts:  FormatContacts(company),
			Date:      formatDate(cons.BookingDate),
			CopyTitle: title,
		}

		var buf bytes.Buffer
		if err := tmpl.Execute(&buf, data); err != nil {
			return nil, err
		}

		// Keep each copy whole; move to a new page only if it would be cut.
		fullHTML.WriteString("<div class='doc-copy'>")
		fullHTML.Write(buf.Bytes())
		fullHTML.WriteString("</div>")
	}

	return renderHTMLToPDF(wrapDocument(fullHTML.String()), false)
}

// GenerateFreightBillPDF renders the single-page landscape freight bill
// with the final amount in words.
func GenerateFreightBillPDF(repo *repository.PDFRepository, billID string) ([]byte, error) {
	company, err := repo.GetCompanyForPDF()
	if err != nil {
		return nil, err
	}

	bill, err := repo.GetBillForPDF(billID)
	if err != nil {
		return nil, err
	}
	if bill == nil {
		return nil, nil
	}

	tmpl, err := template.ParseFiles("templates/freight_bill.html")
	if err != nil {
		return nil, err
	}

	data := models.FreightBillPDFData{
		Company:     company,
		Bill:        bill,
		Contacts:    FormatContacts(company),
		Date:        formatDate(bill.BillDate),
		AmountWords: NumberToCurrencyWords(bill.FinalAmount),
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, err
	}

	return renderHTMLToPDF(wrapDocument(buf.String()), true)
}

// GenerateLoadChalanPDF renders the single-page landscape chalan with the
// balance freight in words.
func GenerateLoadChalanPDF(repo *repository.PDFRepository, chalanID string) ([]byte, error) {
	company, err := repo.GetCompanyForPDF()
	if err != nil {
		return nil, err
	}

	chalan, err := repo.GetChalanForPDF(chalanID)
	if err != nil {
		return nil, err
	}
	if chalan == nil {
		return nil, nil
	}

	tmpl, err := template.ParseFiles("templates/load_chalan.html")
	if err != nil {
		return nil, err
	}

	data := models.LoadChalanPDFData{
		Company:      company,
		Chalan:       chalan,
		Contacts:     FormatContacts(company),
		Date:         formatDate(chalan.ChalanDate),
		BalanceWords: NumberToCurrencyWords(chalan.BalanceFreight),
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, err
	}

	return renderHTMLToPDF(wrapDocument(buf.String()), true)
}

func wrapDocument(body string) string {
	return `<!DOCTYPE html>
<html>
<head>
<meta charset="UTF-8">
<style>
@page {
	size: A4;
	margin: 20px;
}
body {
	font-family: Arial, Helvetica, sans-serif;
	font-size: 12px;
	margin: 0;
	padding: 0;
}
.doc-copy {
	page-break-inside: avoid;
	border: none;
}
</style>
</head>
<body>` + body + `</body></html>`
}

// renderHTMLToPDF prints the HTML with headless Chrome. Landscape selects
// the page orientation for bill and chalan documents.
func renderHTMLToPDF(html string, landscape bool) ([]byte, error) {
	tmpDir := os.TempDir()
	tmpHTML := filepath.Join(tmpDir, "kvldoc_"+time.Now().Format("20060102150405")+".html")
	if err := os.WriteFile(tmpHTML, []byte(html), 0644); err != nil {
		return nil, err
	}
	defer os.Remove(tmpHTML)

	ctx, cancel := chromedp.NewContext(context.Background())
	defer cancel()

	var pdfBuf []byte
	fileURL := "file://" + tmpHTML

	err := chromedp.Run(ctx,
		chromedp.Navigate(fileURL),
		chromedp.Sleep(1*time.Second),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			printer := page.PrintToPDF().
				WithPrintBackground(true).
				WithPaperWidth(8.27).  // A4 width
				WithPaperHeight(11.7). // A4 height
				WithLandscape(landscape)
			pdfBuf, _, err = printer.Do(ctx)
			return err
		}),
	)
	if err != nil {
		return nil, err
	}

	return pdfBuf, nil
}
