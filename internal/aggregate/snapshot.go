package aggregate

import (
	"sort"
	"strings"
	"time"
)

// Document is one Federal Register document attributed to an agency. It is
// immutable once built; the Recent flag is frozen at snapshot build time.
type Document struct {
	DocumentNumber  string    `json:"document_number"`
	Title           string    `json:"title"`
	Type            string    `json:"type"`
	PublicationDate string    `json:"publication_date"`
	PublishedAt     time.Time `json:"-"`
	AgencySlug      string    `json:"agency_slug"`
	AgencyName      string    `json:"agency"`
	EstimatedKB     int       `json:"size_kb"`
	Recent          bool      `json:"is_recent"`
	PDFURL          string    `json:"pdf_url,omitempty"`
	HTMLURL         string    `json:"html_url,omitempty"`
	Abstract        string    `json:"abstract,omitempty"`
}

// Agency groups one agency's recent documents with derived aggregates.
type Agency struct {
	ID                int        `json:"agency_id"`
	Slug              string     `json:"slug"`
	Name              string     `json:"name"`
	FullName          string     `json:"full_name"`
	URL               string     `json:"url,omitempty"`
	CFRTitle          int        `json:"cfr_title"`
	Documents         []Document `json:"recent_documents"`
	DocumentCount     int        `json:"document_count"`
	TotalInWindow     int        `json:"total_in_window"`
	NewCount          int        `json:"new_documents_count"`
	TotalSizeKB       int        `json:"total_size_kb"`
	LatestPublication time.Time  `json:"latest_publication"`
}

// Snapshot is one full aggregation result. Agencies are sorted
// alphabetically by display name and always hold at least one document.
type Snapshot struct {
	Agencies []Agency  `json:"agencies"`
	BuiltAt  time.Time `json:"built_at"`
}

// Agency returns the snapshot entry for a slug.
func (s *Snapshot) Agency(slug string) (Agency, bool) {
	if s == nil {
		return Agency{}, false
	}
	slug = strings.TrimSpace(slug)
	for _, agency := range s.Agencies {
		if agency.Slug == slug {
			return agency, true
		}
	}
	return Agency{}, false
}

// RecentDocuments returns the documents flagged recent at build time across
// all agencies, sorted by publication time descending.
func (s *Snapshot) RecentDocuments() []Document {
	if s == nil {
		return nil
	}
	var recent []Document
	for _, agency := range s.Agencies {
		for _, doc := range agency.Documents {
			if doc.Recent {
				recent = append(recent, doc)
			}
		}
	}
	sort.SliceStable(recent, func(i, j int) bool {
		return recent[i].PublishedAt.After(recent[j].PublishedAt)
	})
	return recent
}

// Totals sums document counts, new-document counts, and estimated sizes
// across the snapshot.
func (s *Snapshot) Totals() (documents, newDocuments, sizeKB int) {
	if s == nil {
		return 0, 0, 0
	}
	for _, agency := range s.Agencies {
		documents += agency.DocumentCount
		newDocuments += agency.NewCount
		sizeKB += agency.TotalSizeKB
	}
	return documents, newDocuments, sizeKB
}
