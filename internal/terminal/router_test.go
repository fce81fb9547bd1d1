package terminal

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRoutes() []Route {
	return []Route{
		{AgentID: "apollo", Pattern: `\b(sales?|leads?|calls?)\b`, Reply: "pipeline is healthy"},
		{AgentID: "horus", Pattern: `\b(kpis?|metrics?|mrr)\b`, Reply: "mrr is up"},
	}
}

func TestRouter_Route(t *testing.T) {
	r, err := NewRouter(testRoutes(), Options{Fallback: "osiris"})
	require.NoError(t, err)

	cases := []struct {
		query string
		agent string
	}{
		{"How many LEADS came in?", "apollo"},
		{"what's our mrr", "horus"},
		{"calls and metrics", "apollo"},
		{"recallsomething", "osiris"},
		{"How did WinBros perform this week?", "osiris"},
	}
	for _, tc := range cases {
		t.Run(tc.query, func(t *testing.T) {
			agent, reply := r.Route(tc.query)
			assert.Equal(t, tc.agent, agent)
			assert.NotEmpty(t, reply)
		})
	}

	_, reply := r.Route("anything else")
	assert.Equal(t, DefaultFallbackReply, reply)
}

func TestRouter_RespondWaitsForDelay(t *testing.T) {
	r, err := NewRouter(testRoutes(), Options{Fallback: "osiris", Delay: 30 * time.Millisecond})
	require.NoError(t, err)

	start := time.Now()
	got, err := r.Respond(context.Background(), "  sales update ")
	require.NoError(t, err)
	assert.GreaterOrEqual(t, time.Since(start), 30*time.Millisecond)
	assert.Equal(t, Reply{Query: "sales update", AgentID: "apollo", Reply: "pipeline is healthy"}, got)
}

func TestRouter_RespondHonoursCancel(t *testing.T) {
	r, err := NewRouter(testRoutes(), Options{Fallback: "osiris", Delay: time.Hour})
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err = r.Respond(ctx, "kpi")
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestRouter_Errors(t *testing.T) {
	_, err := NewRouter(testRoutes(), Options{})
	assert.Error(t, err)

	_, err = NewRouter([]Route{{AgentID: "x", Pattern: "(open"}}, Options{Fallback: "osiris"})
	assert.Error(t, err)

	r, err := NewRouter(nil, Options{Fallback: "osiris", FallbackReply: "hello"})
	require.NoError(t, err)
	_, err = r.Respond(context.Background(), "   ")
	assert.ErrorIs(t, err, ErrEmptyQuery)

	got, err := r.Respond(context.Background(), "hi")
	require.NoError(t, err)
	assert.Equal(t, "hello", got.Reply)
}
