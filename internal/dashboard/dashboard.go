package dashboard

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"

	"github.com/AlexZav1327/converter/models"
	"github.com/sirupsen/logrus"
)

//go:embed templates
var templates embed.FS

type Dashboard struct {
	pg   LogStore
	log  *logrus.Entry
	tmpl *template.Template
}

type LogStore interface {
	CountEntries(ctx context.Context) (int64, error)
	AverageResponseTime(ctx context.Context) (float64, error)
	MostCommonCurrency(ctx context.Context, field string) (string, error)
	ListEntries(ctx context.Context) ([]models.ConversionLogEntry, error)
}

type report struct {
	TotalRequests       int64
	AverageResponseTime float64
	MostCommonSource    string
	Entries             []models.ConversionLogEntry
}

func New(pg LogStore, log *logrus.Logger) *Dashboard {
	return &Dashboard{
		pg:   pg,
		log:  log.WithField("module", "dashboard"),
		tmpl: template.Must(template.ParseFS(templates, "templates/dashboard.gohtml")),
	}
}

// Render produces the full analytics report. An error means nothing was
// rendered: the caller either gets the whole page or a clean failure it can
// answer with an error response.
func (d *Dashboard) Render(ctx context.Context) ([]byte, error) {
	count, err := d.pg.CountEntries(ctx)
	if err != nil {
		return nil, fmt.Errorf("pg.CountEntries: %w", err)
	}

	average, err := d.pg.AverageResponseTime(ctx)
	if err != nil {
		return nil, fmt.Errorf("pg.AverageResponseTime: %w", err)
	}

	mostCommon, err := d.pg.MostCommonCurrency(ctx, "fromCurrency")
	if err != nil {
		return nil, fmt.Errorf("pg.MostCommonCurrency: %w", err)
	}

	entries, err := d.pg.ListEntries(ctx)
	if err != nil {
		return nil, fmt.Errorf("pg.ListEntries: %w", err)
	}

	var buf bytes.Buffer

	err = d.tmpl.Execute(&buf, report{
		TotalRequests:       count,
		AverageResponseTime: average,
		MostCommonSource:    mostCommon,
		Entries:             entries,
	})
	if err != nil {
		return nil, fmt.Errorf("tmpl.Execute: %w", err)
	}

	return buf.Bytes(), nil
}
