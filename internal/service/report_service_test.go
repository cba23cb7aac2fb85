package service

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildReportAndRender(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	require.NoError(t, f.service.Run(ctx, "123"))

	reportService := NewReportService(f.invoiceRepo, f.categoryRepo, f.lineItemRepo, f.runRepo)

	report, err := reportService.BuildReport(ctx)
	require.NoError(t, err)
	assert.Len(t, report.Categories, 1)
	assert.Len(t, report.LineItems, 1)

	var buf bytes.Buffer
	RenderReport(&buf, report)
	out := buf.String()

	assert.Contains(t, out, "Categories found: 1")
	assert.Contains(t, out, "Grocery - 2 items - $10.00")
	assert.Contains(t, out, "Line items found: 1")
	assert.Contains(t, out, "X1 - Widget - $5.00 x 2 (SRP: $12.00) = $10.00")
}

func TestRenderReportNullEnrichment(t *testing.T) {
	f := newFixture(t)
	f.client.items.Value = nil // no item details fetched
	ctx := context.Background()
	require.NoError(t, f.service.Run(ctx, "123"))

	reportService := NewReportService(f.invoiceRepo, f.categoryRepo, f.lineItemRepo, f.runRepo)
	report, err := reportService.BuildReport(ctx)
	require.NoError(t, err)

	var buf bytes.Buffer
	RenderReport(&buf, report)

	// Null description and SRP render placeholders instead of crashing.
	assert.Contains(t, buf.String(), "(no description)")
	assert.Contains(t, buf.String(), "(SRP: -)")
}
