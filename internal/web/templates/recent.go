package templates

import (
	"context"
	"io"
	"strings"

	"github.com/a-h/templ"
)

// Recent renders the recent-documents (last 24 hours) page.
func Recent(data RecentData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var b strings.Builder
		writePageOpen(&b, "Recent Federal Register Documents (24 Hours)", pageStyle, "")

		b.WriteString(`<h1>Recent Federal Register Documents (Last 24 Hours)</h1>`)
		b.WriteString(`<p>Found ` + templ.EscapeString(data.Count) + ` new documents.</p>`)
		b.WriteString(`<p><a href="/">&larr; Back to All Agencies</a></p>`)

		b.WriteString(`<table><thead><tr>` +
			`<th>Title</th><th>Agency</th><th>Type</th><th>Published</th>` +
			`<th style="text-align: right;">Size</th><th>Links</th></tr></thead><tbody>`)
		for _, doc := range data.Documents {
			b.WriteString(`<tr><td><span class="new-badge">NEW</span> ` + templ.EscapeString(doc.Title) + `</td>`)
			b.WriteString(`<td>` + templ.EscapeString(doc.Agency) + `</td>`)
			b.WriteString(`<td>` + templ.EscapeString(doc.Type) + `</td>`)
			b.WriteString(`<td>` + templ.EscapeString(doc.Published) + `</td>`)
			b.WriteString(`<td style="text-align: right;">` + templ.EscapeString(doc.Size) + `</td>`)
			b.WriteString(`<td>`)
			writeDocLinks(&b, doc.PDFURL, doc.HTMLURL)
			b.WriteString(`</td></tr>`)
		}
		b.WriteString(`</tbody></table>`)

		writePageClose(&b)
		_, err := io.WriteString(w, b.String())
		return err
	})
}

// Error renders a minimal service-error page.
func Error(message string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var b strings.Builder
		writePageOpen(&b, "Federal Register Tracker", pageStyle, "")
		b.WriteString(`<h1>Service Unavailable</h1>`)
		b.WriteString(`<p>` + templ.EscapeString(message) + `</p>`)
		b.WriteString(`<p><a href="/">&larr; Back</a></p>`)
		writePageClose(&b)
		_, err := io.WriteString(w, b.String())
		return err
	})
}
