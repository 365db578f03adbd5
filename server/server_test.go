package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/etnz/positions"
	"github.com/etnz/positions/date"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSource struct {
	lots  []positions.Lot
	cash  positions.Money
	err   error
	calls int
}

func (f *fakeSource) Lots(ctx context.Context) ([]positions.Lot, error) {
	f.calls++
	return f.lots, f.err
}

func (f *fakeSource) Cash(ctx context.Context) (positions.Money, error) { return f.cash, f.err }

func sampleLots() []positions.Lot {
	return []positions.Lot{
		{
			Symbol: "AAPL", LastPrice: positions.M(190.5), Change: positions.M(1.5), ChangePercent: positions.P(0.79),
			Quantity: positions.Q(10), PricePaid: positions.M(185), DaysGain: positions.M(15),
			TotalGain: positions.M(55), TotalGainPercent: positions.P(2.97), Value: positions.M(1905),
			Date: date.New(2024, time.January, 15),
		},
		{
			Symbol: "AAPL", LastPrice: positions.M(191), Change: positions.M(2), ChangePercent: positions.P(1.06),
			Quantity: positions.Q(20), PricePaid: positions.M(180), DaysGain: positions.M(40),
			TotalGain: positions.M(75), TotalGainPercent: positions.P(4.17), Value: positions.M(3820),
			Date: date.New(2024, time.March, 2),
		},
		{
			Symbol: "GOOG", LastPrice: positions.M(130), Change: positions.M(-1), ChangePercent: positions.P(-0.76),
			Quantity: positions.Q(5), PricePaid: positions.M(125), DaysGain: positions.M(-5),
			TotalGain: positions.M(25), TotalGainPercent: positions.P(4), Value: positions.M(650),
			Date: date.New(2024, time.February, 20),
		},
	}
}

// newTestServer returns a server with a loaded snapshot.
func newTestServer(t *testing.T) (*Server, *fakeSource) {
	t.Helper()
	src := &fakeSource{lots: sampleLots(), cash: positions.M(1000)}
	s := New(Options{Log: zerolog.Nop(), Source: src})
	require.NoError(t, s.snapshot.Refresh(context.Background()))
	return s, src
}

func do(t *testing.T, s *Server, method, target, session, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if session != "" {
		req.Header.Set(SessionHeader, session)
	}
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func TestHealth(t *testing.T) {
	s, _ := newTestServer(t)
	rec := do(t, s, http.MethodGet, "/health", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestPivot(t *testing.T) {
	s, _ := newTestServer(t)

	rec := do(t, s, http.MethodGet, "/api/pivot", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	session := rec.Header().Get(SessionHeader)
	assert.NotEmpty(t, session, "a session must be created")

	p := decode[positions.Pivot](t, rec)
	require.Len(t, p.Rows, 2)
	assert.Equal(t, "AAPL", p.Rows[0].Symbol)
	assert.Equal(t, 2, p.Rows[0].Lots)
	assert.False(t, p.Rows[0].Expanded)
	assert.Empty(t, p.Rows[0].Details)
	assert.True(t, p.Totals.Value.Equal(positions.M(6375)), "total value %v", p.Totals.Value)
}

func TestPivot_Filter(t *testing.T) {
	s, _ := newTestServer(t)

	p := decode[positions.Pivot](t, do(t, s, http.MethodGet, "/api/pivot?q=goo", "", ""))
	assert.Equal(t, "goo", p.Filter)
	require.Len(t, p.Rows, 1)
	assert.Equal(t, "GOOG", p.Rows[0].Symbol)
	assert.True(t, p.Totals.Value.Equal(positions.M(650)), "total value %v", p.Totals.Value)
}

func TestPivot_ExpandIsPerSession(t *testing.T) {
	s, _ := newTestServer(t)
	session := do(t, s, http.MethodGet, "/api/pivot", "", "").Header().Get(SessionHeader)

	rec := do(t, s, http.MethodPost, "/api/pivot/expand/aapl", session, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"symbol":"AAPL","expanded":true}`, rec.Body.String())
	assert.Equal(t, session, rec.Header().Get(SessionHeader))

	p := decode[positions.Pivot](t, do(t, s, http.MethodGet, "/api/pivot", session, ""))
	assert.True(t, p.Rows[0].Expanded)
	assert.Len(t, p.Rows[0].Details, 2)

	other := decode[positions.Pivot](t, do(t, s, http.MethodGet, "/api/pivot", "", ""))
	assert.False(t, other.Rows[0].Expanded, "another session must not see the expansion")
	assert.Equal(t, 1, s.sessions.Len(), "only the session that expanded a row is stored")

	rec = do(t, s, http.MethodPost, "/api/pivot/expand/AAPL", session, "")
	assert.JSONEq(t, `{"symbol":"AAPL","expanded":false}`, rec.Body.String())
}

func TestPivot_CollapseAll(t *testing.T) {
	s, _ := newTestServer(t)
	session := do(t, s, http.MethodGet, "/api/pivot", "", "").Header().Get(SessionHeader)
	do(t, s, http.MethodPost, "/api/pivot/expand/AAPL", session, "")
	do(t, s, http.MethodPost, "/api/pivot/expand/GOOG", session, "")

	rec := do(t, s, http.MethodDelete, "/api/pivot/expand", session, "")
	assert.Equal(t, http.StatusNoContent, rec.Code)

	p := decode[positions.Pivot](t, do(t, s, http.MethodGet, "/api/pivot", session, ""))
	for _, r := range p.Rows {
		assert.False(t, r.Expanded, r.Symbol)
	}
}

func TestPivot_ReadsDoNotStoreSessions(t *testing.T) {
	s, _ := newTestServer(t)
	for i := 0; i < 50; i++ {
		session := ""
		if i%2 == 0 {
			session = uuid.NewString()
		}
		rec := do(t, s, http.MethodGet, "/api/pivot", session, "")
		require.Equal(t, http.StatusOK, rec.Code)
	}
	assert.Equal(t, 0, s.sessions.Len())

	session := uuid.NewString()
	do(t, s, http.MethodPost, "/api/pivot/expand/AAPL", session, "")
	assert.Equal(t, 1, s.sessions.Len())
	do(t, s, http.MethodPost, "/api/pivot/expand/AAPL", session, "")
	assert.Equal(t, 0, s.sessions.Len(), "a session with nothing expanded is dropped")
}

func TestSessions_Sweep(t *testing.T) {
	now := time.Date(2024, time.July, 10, 11, 0, 0, 0, time.UTC)
	ss := newSessions(time.Hour, 0)
	ss.now = func() time.Time { return now }

	ss.Toggle("old", "AAPL")
	now = now.Add(45 * time.Minute)
	ss.Toggle("recent", "GOOG")
	now = now.Add(30 * time.Minute)

	assert.Equal(t, 1, ss.Sweep())
	assert.Equal(t, 1, ss.Len())
	assert.False(t, ss.Expanded("old").IsExpanded("AAPL"))
	assert.True(t, ss.Expanded("recent").IsExpanded("GOOG"))
}

func TestSessions_Sweep_ReadKeepsAlive(t *testing.T) {
	now := time.Date(2024, time.July, 10, 11, 0, 0, 0, time.UTC)
	ss := newSessions(time.Hour, 0)
	ss.now = func() time.Time { return now }

	ss.Toggle("a", "AAPL")
	now = now.Add(50 * time.Minute)
	ss.Expanded("a")
	now = now.Add(50 * time.Minute)

	assert.Equal(t, 0, ss.Sweep())
	assert.True(t, ss.Expanded("a").IsExpanded("AAPL"))
}

func TestSessions_EvictsLeastRecentlySeen(t *testing.T) {
	now := time.Date(2024, time.July, 10, 11, 0, 0, 0, time.UTC)
	ss := newSessions(0, 2)
	ss.now = func() time.Time { return now }

	ss.Toggle("a", "AAPL")
	now = now.Add(time.Minute)
	ss.Toggle("b", "AAPL")
	now = now.Add(time.Minute)
	ss.Expanded("a")
	now = now.Add(time.Minute)
	ss.Toggle("c", "AAPL")

	assert.Equal(t, 2, ss.Len())
	assert.True(t, ss.Expanded("a").IsExpanded("AAPL"))
	assert.False(t, ss.Expanded("b").IsExpanded("AAPL"), "b was seen last the longest ago")
	assert.True(t, ss.Expanded("c").IsExpanded("AAPL"))
}

func TestSweepJob(t *testing.T) {
	s, _ := newTestServer(t)
	do(t, s, http.MethodPost, "/api/pivot/expand/AAPL", uuid.NewString(), "")
	s.sessions.now = func() time.Time { return time.Now().Add(DefaultSessionTTL + time.Minute) }

	require.NoError(t, s.sweep.Run())
	assert.Equal(t, 0, s.sessions.Len())

	rec := do(t, s, http.MethodGet, "/metrics", "", "")
	assert.Contains(t, rec.Body.String(), "positions_sessions 0")
}

func TestServer_Timeouts(t *testing.T) {
	s, _ := newTestServer(t)
	assert.Less(t, handlerTimeout, s.server.WriteTimeout, "handlers must time out before the connection does")
}

func TestSnapshot_State(t *testing.T) {
	src := &fakeSource{lots: sampleLots(), cash: positions.M(1000)}
	snap := NewSnapshot(src)
	require.NoError(t, snap.Refresh(context.Background()))

	src.lots, src.cash = sampleLots()[:1], positions.M(5)
	require.NoError(t, snap.Refresh(context.Background()))

	lots, cash := snap.State()
	assert.Len(t, lots, 1)
	assert.True(t, cash.Equal(positions.M(5)), "cash %v", cash)

	lots[0].Symbol = "CHANGED"
	again, _ := snap.State()
	assert.Equal(t, "AAPL", again[0].Symbol, "State returns a copy")
}

func TestAllocation(t *testing.T) {
	s, _ := newTestServer(t)

	equities := decode[[]positions.Slice](t, do(t, s, http.MethodGet, "/api/allocation/equities", "", ""))
	require.Len(t, equities, 2)
	assert.Equal(t, "AAPL", equities[0].Label)
	assert.True(t, equities[0].Percent.Equal(positions.P(89.80)), "AAPL share %v", equities[0].Percent)
	assert.NotEmpty(t, equities[0].Color)

	// colors are stable across requests.
	again := decode[[]positions.Slice](t, do(t, s, http.MethodGet, "/api/allocation/equities", "", ""))
	assert.Equal(t, equities[0].Color, again[0].Color)

	assets := decode[[]positions.Slice](t, do(t, s, http.MethodGet, "/api/allocation/assets", "", ""))
	require.Len(t, assets, 2)
	assert.Equal(t, "Cash", assets[0].Label)
	assert.True(t, assets[0].Value.Equal(positions.M(1000)), "cash %v", assets[0].Value)
	assert.True(t, assets[1].Value.Equal(positions.M(6375)), "equities %v", assets[1].Value)
}

func TestStats(t *testing.T) {
	s, _ := newTestServer(t)
	stats := decode[positions.Stats](t, do(t, s, http.MethodGet, "/api/stats", "", ""))
	assert.True(t, stats.TotalAssets.Equal(positions.M(7375)), "total assets %v", stats.TotalAssets)
	assert.True(t, stats.DaysGainPercent.Equal(positions.P(0.79)), "day's gain %v", stats.DaysGainPercent)
}

func TestMarket(t *testing.T) {
	s, _ := newTestServer(t)
	// Wednesday 2024-07-10 at 11:00 in New York.
	s.now = func() time.Time { return time.Date(2024, time.July, 10, 11, 0, 0, 0, date.NewYork) }

	rec := do(t, s, http.MethodGet, "/api/market", "", "")
	assert.JSONEq(t, `{"status":"open","label":"Market Open"}`, rec.Body.String())

	s.now = func() time.Time { return time.Date(2024, time.July, 13, 11, 0, 0, 0, date.NewYork) }
	rec = do(t, s, http.MethodGet, "/api/market", "", "")
	assert.JSONEq(t, `{"status":"closed","label":"Market Closed"}`, rec.Body.String())
}

func TestSellEstimate(t *testing.T) {
	s, _ := newTestServer(t)

	rec := do(t, s, http.MethodPost, "/api/sell/estimate", "", `{"symbol":"aapl","quantity":10}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	e := decode[positions.Estimate](t, rec)
	assert.Equal(t, "AAPL", e.Symbol)
	assert.True(t, e.Total.Equal(positions.M(1907.5)), "total %v", e.Total)

	tests := []struct {
		name string
		body string
	}{
		{"too many", `{"symbol":"GOOG","quantity":6}`},
		{"not held", `{"symbol":"MSFT","quantity":1}`},
		{"fraction", `{"symbol":"GOOG","quantity":1.5}`},
		{"garbage", `{"symbol":`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, s, http.MethodPost, "/api/sell/estimate", "", tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Contains(t, rec.Body.String(), `"error"`)
		})
	}
}

func TestRefresh(t *testing.T) {
	s, src := newTestServer(t)
	src.lots = sampleLots()[2:]

	rec := do(t, s, http.MethodPost, "/api/refresh", "", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), `"lots":1`)

	src.err = errors.New("backend down")
	rec = do(t, s, http.MethodPost, "/api/refresh", "", "")
	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Len(t, s.snapshot.Lots(), 1, "a failed refresh keeps the previous state")
}

func TestRefreshJob(t *testing.T) {
	src := &fakeSource{lots: sampleLots()}
	snap := NewSnapshot(src)
	job := NewRefreshJob(snap, NewMetrics(), zerolog.Nop())
	// Saturday
	job.now = func() time.Time { return time.Date(2024, time.July, 13, 11, 0, 0, 0, date.NewYork) }

	require.NoError(t, job.Run())
	assert.Equal(t, 1, src.calls, "the first load happens even when the market is closed")
	assert.True(t, snap.Loaded())

	require.NoError(t, job.Run())
	assert.Equal(t, 1, src.calls, "no refresh while the market is closed")

	job.now = func() time.Time { return time.Date(2024, time.July, 15, 10, 0, 0, 0, date.NewYork) }
	require.NoError(t, job.Run())
	assert.Equal(t, 2, src.calls)
}

func TestMetrics(t *testing.T) {
	s, _ := newTestServer(t)
	do(t, s, http.MethodGet, "/api/stats", "", "")

	rec := do(t, s, http.MethodGet, "/metrics", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `positions_http_requests_total{method="GET",route="/api/stats",status="200"} 1`)
}

func TestConfigFromEnv(t *testing.T) {
	t.Setenv("POS_ADDR", ":9999")
	t.Setenv("POS_REFRESH", "")
	t.Setenv("POS_LOG_PRETTY", "true")

	cfg := ConfigFromEnv()
	assert.Equal(t, ":9999", cfg.Addr)
	assert.Equal(t, DefaultRefresh, cfg.Refresh)
	assert.True(t, cfg.LogPretty)
	assert.Zero(t, cfg.SessionTTL)

	t.Setenv("POS_SESSION_TTL", "2h")
	t.Setenv("POS_MAX_SESSIONS", "50")
	cfg = ConfigFromEnv()
	assert.Equal(t, 2*time.Hour, cfg.SessionTTL)
	assert.Equal(t, 50, cfg.MaxSessions)
}
