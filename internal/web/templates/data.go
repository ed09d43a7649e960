// File data.go defines view data for the tracker's HTML pages.
package templates

// DocumentItem holds formatted document data for display inside an agency
// row.
type DocumentItem struct {
	// Title is the document headline.
	Title string
	// Type is the document type label (Rule, Notice, ...).
	Type string
	// Published is the formatted publication date.
	Published string
	// Size is the formatted size estimate.
	Size string
	// Recent marks documents published within the last day of the build.
	Recent bool
	// PDFURL links the official PDF when available.
	PDFURL string
	// HTMLURL links the official HTML version when available.
	HTMLURL string
}

// AgencyRow holds formatted agency data for the dashboard table.
type AgencyRow struct {
	// RowID is the DOM id used to toggle the document list.
	RowID string
	// Name is the agency display name.
	Name string
	// FullName is the long agency name, empty when equal to Name.
	FullName string
	// URL is the agency homepage when available.
	URL string
	// CFRTitle is the formatted CFR title association.
	CFRTitle string
	// DocumentCount is the formatted number of fetched documents.
	DocumentCount string
	// Size is the formatted estimated size.
	Size string
	// NewBadge is the formatted new-document badge text, empty when none.
	NewBadge string
	// Documents lists up to the first ten recent documents.
	Documents []DocumentItem
	// ShownOf notes truncation, empty when all documents are shown.
	ShownOf string
}

// DashboardData holds everything the dashboard page renders.
type DashboardData struct {
	// LastUpdated is the formatted snapshot build time.
	LastUpdated string
	// TotalAgencies is the formatted agency count.
	TotalAgencies string
	// TotalDocuments is the formatted document count.
	TotalDocuments string
	// NewDocuments is the formatted count of documents new in 24 hours.
	NewDocuments string
	// TotalSize is the formatted estimated total size.
	TotalSize string
	// Agencies lists the sorted agency rows.
	Agencies []AgencyRow
}

// RecentRow holds formatted document data for the recent-documents page.
type RecentRow struct {
	// Title is the document headline.
	Title string
	// Agency is the owning agency display name.
	Agency string
	// Type is the document type label.
	Type string
	// Published is the formatted publication date.
	Published string
	// Size is the formatted size estimate.
	Size string
	// PDFURL links the official PDF when available.
	PDFURL string
	// HTMLURL links the official HTML version when available.
	HTMLURL string
}

// RecentData holds everything the recent-documents page renders.
type RecentData struct {
	// Count is the formatted number of recent documents.
	Count string
	// Documents lists recent documents, newest first.
	Documents []RecentRow
}
