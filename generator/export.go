package generator

import (
	"fmt"

	"github.com/c360studio/caseschema/export"
	"github.com/c360studio/caseschema/investigation"
	"github.com/c360studio/caseschema/samples"
)

// Export renders the catalog of t, plus any records, as RDF in the configured
// format and profile.
func (g *Generator) Export(t investigation.Type, records []samples.Record) (string, error) {
	format, err := export.ParseFormat(g.cfg.Export.Format)
	if err != nil {
		return "", err
	}
	profileName, err := export.ParseProfile(g.cfg.Export.Profile)
	if err != nil {
		return "", err
	}
	profile, err := investigation.NewProfile(t)
	if err != nil {
		return "", err
	}

	e := export.NewRDFExporter(profileName)
	e.AddCatalog(profile.Catalog)
	for _, rec := range records {
		triples, err := g.converter.FromRecord(rec)
		if err != nil {
			return "", fmt.Errorf("convert %s: %w", rec.ID(), err)
		}
		e.AddTriples(triples)
	}

	out, err := e.Export(format)
	if err != nil {
		return "", err
	}
	g.metrics.DocumentsWritten.WithLabelValues("export").Inc()
	g.logger.Debug("Exported catalog", "type", t, "format", format, "profile", profileName,
		"entities", e.Len(), "records", len(records))
	return out, nil
}
