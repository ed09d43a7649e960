package templates

import (
	"context"
	"io"
	"strings"

	"github.com/a-h/templ"
)

const pageStyle = `
body { font-family: Arial, sans-serif; margin: 20px; background-color: #f5f5f5; }
.container { max-width: 1600px; margin: 0 auto; background-color: white; padding: 20px; border-radius: 8px; }
h1 { color: #333; border-bottom: 3px solid #0066cc; padding-bottom: 10px; }
.metadata { background-color: #f0f8ff; padding: 15px; border-radius: 5px; margin: 20px 0; border-left: 4px solid #0066cc; }
.metadata strong { display: inline-block; min-width: 150px; }
.new-badge { background-color: #d9534f; color: white; padding: 3px 8px; border-radius: 3px; font-size: 0.75em; font-weight: bold; margin-left: 8px; }
table { width: 100%; border-collapse: collapse; margin-top: 20px; }
th { background-color: #0066cc; color: white; padding: 12px; text-align: left; }
td { padding: 10px; border-bottom: 1px solid #ddd; }
.agency-row { cursor: pointer; }
.agency-row:hover { background-color: #f5f5f5; }
.documents-row { background-color: #f9f9f9; }
.documents-container { padding: 20px; max-height: 500px; overflow-y: auto; }
.document-item { padding: 10px; margin-bottom: 10px; border-left: 3px solid #0066cc; background-color: white; }
.doc-title { font-weight: bold; margin-bottom: 5px; color: #333; }
.doc-meta { font-size: 0.85em; color: #666; }
.doc-link { color: #0066cc; text-decoration: none; padding: 2px 6px; border: 1px solid #0066cc; border-radius: 3px; font-size: 0.85em; }
.show-more { color: #666; font-style: italic; margin-top: 10px; }
.button { background-color: #0066cc; color: white; padding: 10px 20px; text-decoration: none; border-radius: 5px; display: inline-block; margin: 10px 5px 10px 0; }
.button.alert { background-color: #d9534f; }
.footer { margin-top: 20px; padding-top: 20px; border-top: 1px solid #ddd; color: #666; font-size: 0.9em; }
a { color: #0066cc; text-decoration: none; }
`

const toggleScript = `
function toggleDocuments(id) {
	var row = document.getElementById(id);
	row.style.display = row.style.display === 'none' ? 'table-row' : 'none';
}
`

// Dashboard renders the agency statistics page.
func Dashboard(data DashboardData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var b strings.Builder
		writePageOpen(&b, "Federal Register Tracker", pageStyle, toggleScript)

		b.WriteString(`<h1>Federal Register Documents by Agency</h1>`)
		b.WriteString(`<div class="metadata">`)
		writeMetadataLine(&b, "Last Updated", data.LastUpdated)
		writeMetadataLine(&b, "Total Agencies", data.TotalAgencies)
		writeMetadataLine(&b, "Total Documents", data.TotalDocuments)
		b.WriteString(`<strong>New in 24hrs:</strong> <span class="new-badge">` + templ.EscapeString(data.NewDocuments) + `</span><br>`)
		writeMetadataLine(&b, "Estimated Total Size", data.TotalSize)
		b.WriteString(`<a href="/refresh" class="button">Refresh Data</a>`)
		b.WriteString(`<a href="/recent" class="button alert">View All New (24hrs)</a>`)
		b.WriteString(`<a href="/api/agency-stats" class="button">JSON API</a>`)
		b.WriteString(`</div>`)

		b.WriteString(`<p><strong>Tip:</strong> Click on any agency row to expand its recent documents (last 30 days).</p>`)

		b.WriteString(`<table><thead><tr>` +
			`<th>Agency</th><th>Full Name</th><th>CFR Title</th>` +
			`<th style="text-align: right;">Documents</th><th style="text-align: right;">Size</th>` +
			`<th style="text-align: center;">Expand</th></tr></thead><tbody>`)
		for _, row := range data.Agencies {
			writeAgencyRow(&b, row)
		}
		b.WriteString(`</tbody></table>`)

		b.WriteString(`<div class="footer">` +
			`<p><strong>Data Source:</strong> <a href="https://www.federalregister.gov" target="_blank">Federal Register API</a> ` +
			`&middot; <strong>Reference:</strong> <a href="https://www.ecfr.gov" target="_blank">eCFR</a></p>` +
			`</div>`)

		writePageClose(&b)
		_, err := io.WriteString(w, b.String())
		return err
	})
}

func writeAgencyRow(b *strings.Builder, row AgencyRow) {
	rowID := templ.EscapeString(row.RowID)

	b.WriteString(`<tr class="agency-row" onclick="toggleDocuments('` + rowID + `')"><td>`)
	if row.URL != "" {
		b.WriteString(`<a href="` + templ.EscapeString(row.URL) + `" target="_blank">` + templ.EscapeString(row.Name) + `</a>`)
	} else {
		b.WriteString(templ.EscapeString(row.Name))
	}
	if row.NewBadge != "" {
		b.WriteString(` <span class="new-badge">` + templ.EscapeString(row.NewBadge) + `</span>`)
	}
	b.WriteString(`</td>`)
	b.WriteString(`<td style="font-size: 0.85em; color: #666;">` + templ.EscapeString(row.FullName) + `</td>`)
	b.WriteString(`<td>` + templ.EscapeString(row.CFRTitle) + `</td>`)
	b.WriteString(`<td style="text-align: right;">` + templ.EscapeString(row.DocumentCount) + `</td>`)
	b.WriteString(`<td style="text-align: right;">` + templ.EscapeString(row.Size) + `</td>`)
	b.WriteString(`<td style="text-align: center;">&#9660;</td></tr>`)

	b.WriteString(`<tr id="` + rowID + `" class="documents-row" style="display: none;"><td colspan="6">` +
		`<div class="documents-container"><h4>Recent Documents (Last 30 Days)</h4>`)
	if len(row.Documents) == 0 {
		b.WriteString(`<p>No recent documents</p>`)
	}
	for _, doc := range row.Documents {
		writeDocumentItem(b, doc)
	}
	if row.ShownOf != "" {
		b.WriteString(`<p class="show-more">` + templ.EscapeString(row.ShownOf) + `</p>`)
	}
	b.WriteString(`</div></td></tr>`)
}

func writeDocumentItem(b *strings.Builder, doc DocumentItem) {
	b.WriteString(`<div class="document-item"><div class="doc-title">`)
	if doc.Recent {
		b.WriteString(`<span class="new-badge">NEW</span> `)
	}
	b.WriteString(templ.EscapeString(doc.Title) + `</div><div class="doc-meta">`)
	b.WriteString(`<span>` + templ.EscapeString(doc.Type) + `</span> | `)
	b.WriteString(`<span>` + templ.EscapeString(doc.Published) + `</span> | `)
	b.WriteString(`<span>` + templ.EscapeString(doc.Size) + `</span>`)
	writeDocLinks(b, doc.PDFURL, doc.HTMLURL)
	b.WriteString(`</div></div>`)
}

func writeDocLinks(b *strings.Builder, pdfURL, htmlURL string) {
	if pdfURL != "" {
		b.WriteString(` <a href="` + templ.EscapeString(pdfURL) + `" target="_blank" class="doc-link">PDF</a>`)
	}
	if htmlURL != "" {
		b.WriteString(` <a href="` + templ.EscapeString(htmlURL) + `" target="_blank" class="doc-link">HTML</a>`)
	}
}

func writeMetadataLine(b *strings.Builder, label, value string) {
	b.WriteString(`<strong>` + templ.EscapeString(label) + `:</strong> ` + templ.EscapeString(value) + `<br>`)
}

func writePageOpen(b *strings.Builder, title, style, script string) {
	b.WriteString(`<!DOCTYPE html><html><head><meta charset="utf-8"><title>`)
	b.WriteString(templ.EscapeString(title))
	b.WriteString(`</title><style>` + style + `</style>`)
	if script != "" {
		b.WriteString(`<script>` + script + `</script>`)
	}
	b.WriteString(`</head><body><div class="container">`)
}

func writePageClose(b *strings.Builder) {
	b.WriteString(`</div></body></html>`)
}
