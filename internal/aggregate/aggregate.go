// Package aggregate builds and caches per-agency views of recent Federal
// Register activity.
package aggregate

import (
	"context"
	"errors"
	"log"
	"sort"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/errgroup"

	"github.com/regwatch/regwatch/internal/cfr"
	"github.com/regwatch/regwatch/internal/docsize"
	"github.com/regwatch/regwatch/internal/federalregister"
)

const (
	defaultLookbackWindow = 30 * 24 * time.Hour
	defaultPerAgencyLimit = 20
	defaultMaxConcurrent  = 10
	// recentWindow is how far back from build time a publication counts as
	// recent.
	recentWindow = 24 * time.Hour
)

// RegistryClient lists agencies and their recent documents from the upstream
// registry.
type RegistryClient interface {
	ListAgencies(ctx context.Context) ([]federalregister.Agency, error)
	ListAgencyDocuments(ctx context.Context, agencySlug string, since time.Time, limit int) ([]federalregister.Document, int, error)
}

// BuilderConfig defines the inputs for a Builder.
type BuilderConfig struct {
	// LookbackWindow bounds how far back per-agency documents are fetched.
	LookbackWindow time.Duration
	// PerAgencyLimit caps documents fetched per agency.
	PerAgencyLimit int
	// MaxConcurrent bounds the per-agency fetch fan-out.
	MaxConcurrent int
}

// Builder assembles aggregation snapshots from the upstream registry.
type Builder struct {
	client RegistryClient
	config BuilderConfig
	now    func() time.Time
}

// NewBuilder builds a snapshot builder over the given registry client.
func NewBuilder(client RegistryClient, config BuilderConfig) *Builder {
	if config.LookbackWindow <= 0 {
		config.LookbackWindow = defaultLookbackWindow
	}
	if config.PerAgencyLimit <= 0 {
		config.PerAgencyLimit = defaultPerAgencyLimit
	}
	if config.MaxConcurrent <= 0 {
		config.MaxConcurrent = defaultMaxConcurrent
	}
	return &Builder{
		client: client,
		config: config,
		now:    time.Now,
	}
}

// Build fetches the agency directory, filters it against the CFR taxonomy,
// fans out per-agency document fetches, and assembles a sorted snapshot.
//
// A single agency's fetch failure is logged and drops that agency from the
// result; only an agency-directory failure fails the whole build.
func (b *Builder) Build(ctx context.Context) (*Snapshot, error) {
	if b == nil || b.client == nil {
		return nil, errors.New("builder requires a registry client")
	}

	tracer := otel.Tracer("aggregate")
	ctx, span := tracer.Start(ctx, "snapshot.build")
	defer span.End()

	builtAt := b.now().UTC()
	since := builtAt.Add(-b.config.LookbackWindow)

	raw, err := b.client.ListAgencies(ctx)
	if err != nil {
		return nil, err
	}

	type matched struct {
		agency federalregister.Agency
		title  int
	}
	var candidates []matched
	for _, agency := range raw {
		title, ok := cfr.Match(agency.Name)
		if !ok {
			continue
		}
		candidates = append(candidates, matched{agency: agency, title: title})
	}
	log.Printf("aggregating %d CFR-related agencies (filtered from %d)", len(candidates), len(raw))
	span.SetAttributes(
		attribute.Int("agencies.total", len(raw)),
		attribute.Int("agencies.matched", len(candidates)),
	)

	// Fan out with a bounded group and join before assembly. Entries stay
	// index-aligned with candidates so fetch order is preserved for stable
	// sorting.
	results := make([]Agency, len(candidates))
	group := new(errgroup.Group)
	group.SetLimit(b.config.MaxConcurrent)
	for i, candidate := range candidates {
		group.Go(func() error {
			documents, total, err := b.client.ListAgencyDocuments(ctx, candidate.agency.Slug, since, b.config.PerAgencyLimit)
			if err != nil {
				// Partial-failure tolerance: the agency ends up with zero
				// documents and is dropped during assembly.
				log.Printf("fetch documents for %q failed: %v", candidate.agency.Slug, err)
				return nil
			}
			results[i] = b.assembleAgency(candidate.agency, candidate.title, documents, total, builtAt)
			return nil
		})
	}
	_ = group.Wait()

	agencies := make([]Agency, 0, len(results))
	for _, agency := range results {
		if agency.DocumentCount == 0 {
			continue
		}
		agencies = append(agencies, agency)
	}
	sort.SliceStable(agencies, func(i, j int) bool {
		return strings.ToLower(agencies[i].Name) < strings.ToLower(agencies[j].Name)
	})

	span.SetAttributes(attribute.Int("agencies.included", len(agencies)))
	return &Snapshot{Agencies: agencies, BuiltAt: builtAt}, nil
}

func (b *Builder) assembleAgency(raw federalregister.Agency, title int, rawDocs []federalregister.Document, total int, builtAt time.Time) Agency {
	displayName := strings.TrimSpace(raw.ShortName)
	if displayName == "" {
		displayName = strings.TrimSpace(raw.Name)
	}

	agency := Agency{
		ID:            raw.ID,
		Slug:          raw.Slug,
		Name:          displayName,
		FullName:      strings.TrimSpace(raw.Name),
		URL:           raw.URL,
		CFRTitle:      title,
		TotalInWindow: total,
	}

	for _, rawDoc := range rawDocs {
		doc := Document{
			DocumentNumber:  rawDoc.DocumentNumber,
			Title:           rawDoc.Title,
			Type:            rawDoc.Type,
			PublicationDate: rawDoc.PublicationDate,
			AgencySlug:      raw.Slug,
			AgencyName:      displayName,
			EstimatedKB:     docsize.EstimateKB(rawDoc.Type),
			PDFURL:          rawDoc.PDFURL,
			HTMLURL:         rawDoc.HTMLURL,
			Abstract:        truncateAbstract(rawDoc.Abstract),
		}
		if publishedAt, ok := rawDoc.PublishedAt(); ok {
			doc.PublishedAt = publishedAt
			// Recency is frozen against the build timestamp, not read time.
			doc.Recent = builtAt.Sub(publishedAt) < recentWindow
		}
		agency.Documents = append(agency.Documents, doc)
		agency.TotalSizeKB += doc.EstimatedKB
		if doc.Recent {
			agency.NewCount++
		}
		if doc.PublishedAt.After(agency.LatestPublication) {
			agency.LatestPublication = doc.PublishedAt
		}
	}
	agency.DocumentCount = len(agency.Documents)
	return agency
}

// abstractLimit caps stored abstract length.
const abstractLimit = 200

func truncateAbstract(abstract string) string {
	abstract = strings.TrimSpace(abstract)
	if len(abstract) <= abstractLimit {
		return abstract
	}
	return abstract[:abstractLimit] + "..."
}
