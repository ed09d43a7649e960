package web

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/regwatch/regwatch/internal/aggregate"
	"github.com/regwatch/regwatch/internal/cfr"
	"github.com/regwatch/regwatch/internal/web/templates"
)

// maxDocumentsShown caps the per-agency document list on the dashboard.
const maxDocumentsShown = 10

var printer = message.NewPrinter(language.English)

func dashboardData(snapshot *aggregate.Snapshot) templates.DashboardData {
	totalDocs, totalNew, totalSizeKB := snapshot.Totals()

	data := templates.DashboardData{
		LastUpdated:    snapshot.BuiltAt.Format("2006-01-02 15:04 MST"),
		TotalAgencies:  printer.Sprintf("%d", len(snapshot.Agencies)),
		TotalDocuments: printer.Sprintf("%d", totalDocs),
		NewDocuments:   printer.Sprintf("%d", totalNew),
		TotalSize:      formatSizeKB(totalSizeKB),
	}
	for _, agency := range snapshot.Agencies {
		data.Agencies = append(data.Agencies, agencyRow(agency))
	}
	return data
}

func agencyRow(agency aggregate.Agency) templates.AgencyRow {
	row := templates.AgencyRow{
		RowID:         "docs-" + agency.Slug,
		Name:          agency.Name,
		URL:           agency.URL,
		CFRTitle:      fmt.Sprintf("Title %d: %s", agency.CFRTitle, cfr.TitleName(agency.CFRTitle)),
		DocumentCount: printer.Sprintf("%d", agency.DocumentCount),
		Size:          formatSizeKB(agency.TotalSizeKB),
	}
	if agency.FullName != agency.Name {
		row.FullName = agency.FullName
	}
	if agency.NewCount > 0 {
		row.NewBadge = printer.Sprintf("%d NEW", agency.NewCount)
	}

	for i, doc := range agency.Documents {
		if i == maxDocumentsShown {
			row.ShownOf = printer.Sprintf("Showing %d of %d recent documents", maxDocumentsShown, len(agency.Documents))
			break
		}
		row.Documents = append(row.Documents, templates.DocumentItem{
			Title:     doc.Title,
			Type:      doc.Type,
			Published: doc.PublicationDate,
			Size:      formatSizeKB(doc.EstimatedKB),
			Recent:    doc.Recent,
			PDFURL:    doc.PDFURL,
			HTMLURL:   doc.HTMLURL,
		})
	}
	return row
}

func recentData(docs []aggregate.Document) templates.RecentData {
	data := templates.RecentData{Count: printer.Sprintf("%d", len(docs))}
	for _, doc := range docs {
		data.Documents = append(data.Documents, templates.RecentRow{
			Title:     doc.Title,
			Agency:    doc.AgencyName,
			Type:      doc.Type,
			Published: doc.PublicationDate,
			Size:      formatSizeKB(doc.EstimatedKB),
			PDFURL:    doc.PDFURL,
			HTMLURL:   doc.HTMLURL,
		})
	}
	return data
}

// formatSizeKB renders a kilobyte estimate as KB below one megabyte and as
// MB with two decimals above it.
func formatSizeKB(kb int) string {
	if kb < 1024 {
		return humanize.Comma(int64(kb)) + " KB"
	}
	return humanize.CommafWithDigits(float64(kb)/1024, 2) + " MB"
}
