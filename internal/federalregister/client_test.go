package federalregister

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

func testClient(baseURL string) *Client {
	return NewClient(Config{
		BaseURL:           baseURL,
		Timeout:           5 * time.Second,
		RequestsPerSecond: 1000,
	})
}

func TestListAgencies(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/agencies" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `[
			{"id": 12, "slug": "agriculture-department", "name": "Department of Agriculture", "short_name": "USDA", "agency_url": "https://example.com/usda"},
			{"id": 145, "slug": "energy-department", "name": "Department of Energy", "short_name": "DOE", "agency_url": ""}
		]`)
	}))
	defer ts.Close()

	agencies, err := testClient(ts.URL).ListAgencies(context.Background())
	if err != nil {
		t.Fatalf("list agencies: %v", err)
	}
	if len(agencies) != 2 {
		t.Fatalf("expected 2 agencies, got %d", len(agencies))
	}
	if agencies[0].Slug != "agriculture-department" || agencies[0].ShortName != "USDA" {
		t.Fatalf("unexpected first agency: %+v", agencies[0])
	}
}

func TestListAgenciesErrorStatus(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusForbidden)
	}))
	defer ts.Close()

	if _, err := testClient(ts.URL).ListAgencies(context.Background()); err == nil {
		t.Fatal("expected error for non-2xx status")
	}
}

func TestListAgencyDocumentsQuery(t *testing.T) {
	since := time.Date(2026, 7, 31, 0, 0, 0, 0, time.UTC)

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if got := q.Get("conditions[agencies][]"); got != "energy-department" {
			t.Errorf("agency condition = %q", got)
		}
		if got := q.Get("conditions[publication_date][gte]"); got != "2026-07-31" {
			t.Errorf("date condition = %q", got)
		}
		if got := q.Get("per_page"); got != "20" {
			t.Errorf("per_page = %q", got)
		}
		if got := q.Get("order"); got != "newest" {
			t.Errorf("order = %q", got)
		}
		if fields := q["fields[]"]; len(fields) == 0 {
			t.Error("expected fields[] to be requested")
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"count": 1, "results": [
			{"title": "Energy Conservation Program", "document_number": "2026-12345", "type": "Rule", "publication_date": "2026-08-29"}
		]}`)
	}))
	defer ts.Close()

	docs, total, err := testClient(ts.URL).ListAgencyDocuments(context.Background(), "energy-department", since, 20)
	if err != nil {
		t.Fatalf("list documents: %v", err)
	}
	if total != 1 {
		t.Fatalf("expected total 1, got %d", total)
	}
	if len(docs) != 1 || docs[0].DocumentNumber != "2026-12345" {
		t.Fatalf("unexpected documents: %+v", docs)
	}
}

func TestListAgencyDocumentsPagination(t *testing.T) {
	var ts *httptest.Server
	ts = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if r.URL.Query().Get("page") == "2" {
			fmt.Fprint(w, `{"count": 3, "results": [{"document_number": "doc-3", "type": "Notice", "publication_date": "2026-08-01"}]}`)
			return
		}
		fmt.Fprintf(w, `{"count": 3, "next_page_url": %q, "results": [
			{"document_number": "doc-1", "type": "Rule", "publication_date": "2026-08-20"},
			{"document_number": "doc-2", "type": "Notice", "publication_date": "2026-08-10"}
		]}`, ts.URL+"/documents?page=2")
	}))
	defer ts.Close()

	docs, total, err := testClient(ts.URL).ListAgencyDocuments(context.Background(), "labor-department", time.Now(), 20)
	if err != nil {
		t.Fatalf("list documents: %v", err)
	}
	if total != 3 {
		t.Fatalf("expected total 3, got %d", total)
	}
	if len(docs) != 3 || docs[2].DocumentNumber != "doc-3" {
		t.Fatalf("expected all pages merged, got %+v", docs)
	}
}

func TestListAgencyDocumentsLimitCapsPagination(t *testing.T) {
	var pages int32
	var ts *httptest.Server
	ts = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&pages, 1)
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"count": 100, "next_page_url": %q, "results": [
			{"document_number": "doc-a", "type": "Rule", "publication_date": "2026-08-20"},
			{"document_number": "doc-b", "type": "Rule", "publication_date": "2026-08-19"}
		]}`, ts.URL+"/documents?page=next")
	}))
	defer ts.Close()

	docs, _, err := testClient(ts.URL).ListAgencyDocuments(context.Background(), "labor-department", time.Now(), 2)
	if err != nil {
		t.Fatalf("list documents: %v", err)
	}
	if len(docs) != 2 {
		t.Fatalf("expected limit to cap results at 2, got %d", len(docs))
	}
	if got := atomic.LoadInt32(&pages); got != 1 {
		t.Fatalf("expected a single page fetch, got %d", got)
	}
}

func TestListAgencyDocumentsRetriesOnRateLimit(t *testing.T) {
	var calls int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) == 1 {
			http.Error(w, "slow down", http.StatusTooManyRequests)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"count": 1, "results": [{"document_number": "doc-1", "type": "Rule", "publication_date": "2026-08-20"}]}`)
	}))
	defer ts.Close()

	docs, _, err := testClient(ts.URL).ListAgencyDocuments(context.Background(), "labor-department", time.Now(), 5)
	if err != nil {
		t.Fatalf("expected retry to recover, got %v", err)
	}
	if len(docs) != 1 {
		t.Fatalf("expected 1 document, got %d", len(docs))
	}
	if atomic.LoadInt32(&calls) < 2 {
		t.Fatal("expected at least one retry")
	}
}

func TestListAgencyDocumentsRequiresSlug(t *testing.T) {
	if _, _, err := testClient("http://127.0.0.1:0").ListAgencyDocuments(context.Background(), "  ", time.Now(), 5); err == nil {
		t.Fatal("expected error for empty slug")
	}
}

func TestPublishedAt(t *testing.T) {
	doc := Document{PublicationDate: "2026-08-29"}
	got, ok := doc.PublishedAt()
	if !ok {
		t.Fatal("expected date to parse")
	}
	want := time.Date(2026, 8, 29, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}

	doc = Document{PublicationDate: "2026-08-29T14:30:00Z"}
	if _, ok := doc.PublishedAt(); !ok {
		t.Fatal("expected RFC3339 fallback to parse")
	}

	doc = Document{PublicationDate: "yesterday"}
	if _, ok := doc.PublishedAt(); ok {
		t.Fatal("expected garbage date not to parse")
	}
}
