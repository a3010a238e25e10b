package feed

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

// newFeedServer serves a minimal but complete feed contract.
func newFeedServer(t *testing.T) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/api/dates/index.json", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`["2024-05-02","2024-05-01"]`))
	})
	mux.HandleFunc("/api/types/index.json", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`["Market Analysis","Stock","Sector"]`))
	})
	collection := `{
		"date": "2024-05-02",
		"ideas": [
			{"title":"Top NASDAQ Performer: NVDA","type":"Stock","asset":"NVDA","market":"NASDAQ",
			 "rationale":"Strong weekly return.","risk_level":"Medium-High","time_horizon":"Short-term",
			 "metrics":{"return":8.1,"rsi":71.2}},
			{"title":"","type":"Stock","asset":"BAD"}
		],
		"data_sources": {"Stock Data": "Alpha Vantage, Twelve Data, and Finnhub APIs"}
	}`
	mux.HandleFunc("/api/ideas/index.json", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(collection))
	})
	mux.HandleFunc("/api/ideas/investment_ideas_2024-05-02.json", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(collection))
	})

	return httptest.NewServer(mux)
}

func newTestClient(t *testing.T, origin string) *Client {
	t.Helper()
	c, err := NewClient(origin, "/daily-investment-ideas", 5*time.Second)
	if err != nil {
		t.Fatalf("NewClient failed: %v", err)
	}
	return c
}

func TestClientDates(t *testing.T) {
	srv := newFeedServer(t)
	defer srv.Close()

	c := newTestClient(t, srv.URL)

	dates, err := c.Dates(context.Background())
	if err != nil {
		t.Fatalf("Dates failed: %v", err)
	}
	if len(dates) != 2 || dates[0] != "2024-05-02" {
		t.Errorf("unexpected dates: %v", dates)
	}
}

func TestClientTypes(t *testing.T) {
	srv := newFeedServer(t)
	defer srv.Close()

	c := newTestClient(t, srv.URL)

	types, err := c.Types(context.Background())
	if err != nil {
		t.Fatalf("Types failed: %v", err)
	}
	if len(types) != 3 || types[1] != "Stock" {
		t.Errorf("unexpected types: %v", types)
	}
}

func TestClientLatest_SanitizesOnIngest(t *testing.T) {
	srv := newFeedServer(t)
	defer srv.Close()

	c := newTestClient(t, srv.URL)

	res, err := c.Latest(context.Background())
	if err != nil {
		t.Fatalf("Latest failed: %v", err)
	}
	if res.Collection.Date != "2024-05-02" {
		t.Errorf("unexpected date %s", res.Collection.Date)
	}
	if res.Dropped != 1 {
		t.Errorf("expected 1 quarantined record, got %d", res.Dropped)
	}
	if len(res.Collection.Ideas) != 1 {
		t.Errorf("expected 1 surviving idea, got %d", len(res.Collection.Ideas))
	}
}

func TestClientCollection_ByDate(t *testing.T) {
	srv := newFeedServer(t)
	defer srv.Close()

	c := newTestClient(t, srv.URL)

	res, err := c.Collection(context.Background(), "2024-05-02")
	if err != nil {
		t.Fatalf("Collection failed: %v", err)
	}
	if res.Collection.Ideas[0].Asset != "NVDA" {
		t.Errorf("unexpected idea: %+v", res.Collection.Ideas[0])
	}
}

func TestClient_HTTPErrorProducesFetchError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)

	_, err := c.Dates(context.Background())
	if err == nil {
		t.Fatal("expected error for HTTP 500")
	}

	var fe *FetchError
	if !errors.As(err, &fe) {
		t.Fatalf("expected FetchError, got %T: %v", err, err)
	}
	if fe.StatusCode != http.StatusInternalServerError {
		t.Errorf("expected status 500 on FetchError, got %d", fe.StatusCode)
	}
}

func TestClient_TransportFailureProducesFetchError(t *testing.T) {
	// Grab a port that is closed by the time the client dials it.
	srv := httptest.NewServer(http.NotFoundHandler())
	origin := srv.URL
	srv.Close()

	c := newTestClient(t, origin)

	_, err := c.Types(context.Background())
	if err == nil {
		t.Fatal("expected error for unreachable feed")
	}

	var fe *FetchError
	if !errors.As(err, &fe) {
		t.Fatalf("expected FetchError, got %T: %v", err, err)
	}
	if fe.StatusCode != 0 {
		t.Errorf("transport failure should carry no status, got %d", fe.StatusCode)
	}
	if fe.Unwrap() == nil {
		t.Error("transport failure should carry the underlying error")
	}
}

func TestClient_MalformedJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("{not json"))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)

	_, err := c.Dates(context.Background())
	if err == nil {
		t.Fatal("expected error for malformed JSON")
	}
}

func TestNewClient_RejectsBadOrigin(t *testing.T) {
	if _, err := NewClient("not a url", "/x", time.Second); err == nil {
		t.Error("expected error for origin without scheme")
	}
	if _, err := NewClient("", "/x", time.Second); err == nil {
		t.Error("expected error for empty origin")
	}
}

func TestNewClient_ResolvesLocalBasePath(t *testing.T) {
	c := newTestClient(t, "http://127.0.0.1:9999")
	if c.BaseURL() != "http://127.0.0.1:9999/api" {
		t.Errorf("unexpected base URL %s", c.BaseURL())
	}
}

func TestNewClient_ResolvesDeployedBasePath(t *testing.T) {
	c, err := NewClient("https://allmba.github.io", "/daily-investment-ideas", time.Second)
	if err != nil {
		t.Fatal(err)
	}
	if c.BaseURL() != "https://allmba.github.io/daily-investment-ideas/api" {
		t.Errorf("unexpected base URL %s", c.BaseURL())
	}
}
