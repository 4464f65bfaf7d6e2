package property

import (
	"context"
	"database/sql"
	_ "embed"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/require"

	"assessorscraper/lib/scrapers/assessor"
	"assessorscraper/lib/telemetry"
)

//go:embed testdata/anr.html
var anrPage []byte

func newTestService(t *testing.T) *Service {
	cleanup := telemetry.SetupForTesting(t, "property")
	t.Cleanup(cleanup)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(anrPage)
	}))
	t.Cleanup(srv.Close)

	client, err := assessor.NewClient(assessor.ClientOptions{
		BaseUrl: srv.URL,
		Retry: assessor.RetryPolicy{
			Delay:       time.Millisecond,
			MaxAttempts: 3,
		},
	})
	require.NoError(t, err)

	svc, err := NewService(filepath.Join(t.TempDir(), "property.db"), client)
	require.NoError(t, err)
	t.Cleanup(func() { svc.Close() })
	return svc
}

func TestScrapeAndGetRoundTrip(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	scraped, err := svc.ScrapeProperty(ctx, 1185700)
	require.NoError(t, err)
	require.Equal(t, int64(1185700), scraped.PropertyID)

	stored, err := svc.GetProperty(ctx, 1185700)
	require.NoError(t, err)

	diff := cmp.Diff(scraped, stored, cmpopts.EquateEmpty())
	require.Empty(t, diff)
}

func TestGetUnknownProperty(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.GetProperty(context.Background(), 42)
	require.ErrorIs(t, err, sql.ErrNoRows)
}

func TestRescrapeReplacesChildren(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	first, err := svc.ScrapeProperty(ctx, 1185700)
	require.NoError(t, err)
	_, err = svc.ScrapeProperty(ctx, 1185700)
	require.NoError(t, err)

	stored, err := svc.GetProperty(ctx, 1185700)
	require.NoError(t, err)

	// child rows must be replaced, not appended
	require.Len(t, stored.Valuations, len(first.Valuations))
	require.Len(t, stored.Deeds, len(first.Deeds))
	require.Len(t, stored.Permits, len(first.Permits))
	require.Len(t, stored.Buildings, len(first.Buildings))
}

func TestSavePropertyUpdatesInPlace(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	record, err := svc.ScrapeProperty(ctx, 1185700)
	require.NoError(t, err)

	record.OwnerName1 = "NEW OWNER LLC"
	record.Valuations = record.Valuations[:1]
	require.NoError(t, svc.SaveProperty(ctx, record))

	stored, err := svc.GetProperty(ctx, 1185700)
	require.NoError(t, err)
	require.Equal(t, "NEW OWNER LLC", stored.OwnerName1)
	require.Len(t, stored.Valuations, 1)
}
