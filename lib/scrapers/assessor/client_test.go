package assessor

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// fixtureServer serves the AN-R fixture, dropping the first `failures`
// connections cold to simulate the site's flaky frontend.
func fixtureServer(t *testing.T, failures int32) (*httptest.Server, *int32) {
	var requests int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := atomic.AddInt32(&requests, 1)
		if n <= failures {
			hj, ok := w.(http.Hijacker)
			if !ok {
				panic("response writer does not support hijacking")
			}
			conn, _, err := hj.Hijack()
			if err != nil {
				panic(err)
			}
			conn.Close()
			return
		}
		w.Write(anrPage)
	}))
	t.Cleanup(srv.Close)
	return srv, &requests
}

func TestScrape(t *testing.T) {
	srv, _ := fixtureServer(t, 0)
	client := newTestClient(t, srv.URL)

	prop, err := client.Scrape(context.Background(), 1185700)
	require.NoError(t, err)

	require.Equal(t, int64(1185700), prop.PropertyID)
	require.Equal(t, "R123456789", prop.AccountNumber)

	require.Len(t, prop.Valuations, 2)
	require.Equal(t, ptrInt(2021), prop.Valuations[0].Year)
	require.Equal(t, ptrInt(250000), prop.Valuations[0].MarketValue)
	require.Equal(t, ptrFloat(117.92), prop.Valuations[0].Millage)

	require.Len(t, prop.Deeds, 2)
	require.Equal(t, time.Date(2021, 1, 15, 0, 0, 0, 0, time.UTC), prop.Deeds[0].Date)
	require.Equal(t, ptrInt(250000), prop.Deeds[0].Price)
	// the second deed has a blank price cell
	require.Nil(t, prop.Deeds[1].Price)

	require.Len(t, prop.Permits, 1)
	require.Equal(t, "PB-2019-00123", prop.Permits[0].PermitNumber)
	require.Equal(t, ptrInt(8000), prop.Permits[0].EstimatedCost)

	require.Len(t, prop.Buildings, 1)
	require.Equal(t, "RANCH 1 STORY", prop.Buildings[0].Description)
	require.Equal(t, ptrFloat(1200), prop.Buildings[0].SquareFeet)
}

func TestFetchRetriesTransient(t *testing.T) {
	srv, requests := fixtureServer(t, 2)
	client := newTestClient(t, srv.URL)

	valuations, err := client.Valuations(context.Background(), 1185700)
	require.NoError(t, err)
	require.Len(t, valuations, 2)
	// two dropped connections plus the one that went through
	require.Equal(t, int32(3), atomic.LoadInt32(requests))
}

func TestStructuralMismatchNotRetried(t *testing.T) {
	var requests int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&requests, 1)
		w.Write([]byte(`<html><body><table><tr><td>maintenance</td></tr></table></body></html>`))
	}))
	t.Cleanup(srv.Close)

	// unbounded retry, the structural failure must still return at once
	client, err := NewClient(ClientOptions{
		BaseUrl: srv.URL,
		Retry:   RetryPolicy{Delay: time.Millisecond},
	})
	require.NoError(t, err)

	_, err = client.Property(context.Background(), PropertySource{PropertyID: 1185700})
	var structural *StructuralError
	require.ErrorAs(t, err, &structural)
	require.Equal(t, int32(1), atomic.LoadInt32(&requests))
}
