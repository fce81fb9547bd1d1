package terminal

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dlclark/regexp2"
)

// DefaultDelay is how long an agent "thinks" before answering.
const DefaultDelay = 1500 * time.Millisecond

const matchTimeout = 100 * time.Millisecond

// DefaultFallbackReply is what the orchestrator says when no keyword matches.
const DefaultFallbackReply = "Based on your data: WinBros is performing well with 12 calls today and 8 bookings (67% conversion). " +
	"Cedar Rapids had 3 calls with 2 bookings. Total MRR is $1,750 and trending up 15% from last month. " +
	"Your next priority should be closing the 2 pending leads from yesterday's calls."

var ErrEmptyQuery = errors.New("empty query")

type Route struct {
	AgentID string
	Pattern string
	Reply   string
}

type Options struct {
	Fallback      string
	FallbackReply string
	Delay         time.Duration
}

type Reply struct {
	Query   string `json:"query"`
	AgentID string `json:"agent_id"`
	Reply   string `json:"reply"`
}

type compiledRoute struct {
	agentID string
	reply   string
	re      *regexp2.Regexp
}

// Router answers free-text questions with the canned reply of the first
// agent whose keywords match. It never touches game state.
type Router struct {
	routes        []compiledRoute
	fallback      string
	fallbackReply string
	delay         time.Duration
}

func NewRouter(routes []Route, opts Options) (*Router, error) {
	if opts.Fallback == "" {
		return nil, errors.New("terminal: fallback agent is required")
	}
	if opts.FallbackReply == "" {
		opts.FallbackReply = DefaultFallbackReply
	}
	r := &Router{
		fallback:      opts.Fallback,
		fallbackReply: opts.FallbackReply,
		delay:         opts.Delay,
	}
	for i, route := range routes {
		re, err := regexp2.Compile(route.Pattern, regexp2.IgnoreCase|regexp2.RE2)
		if err != nil {
			return nil, fmt.Errorf("terminal route %d (%s): %w", i, route.AgentID, err)
		}
		re.MatchTimeout = matchTimeout
		r.routes = append(r.routes, compiledRoute{agentID: route.AgentID, reply: route.Reply, re: re})
	}
	return r, nil
}

// Route picks the agent for a query and the reply it will give.
func (r *Router) Route(query string) (agentID, reply string) {
	for _, route := range r.routes {
		ok, err := route.re.MatchString(query)
		if err != nil || !ok {
			continue
		}
		return route.agentID, route.reply
	}
	return r.fallback, r.fallbackReply
}

// Respond waits out the thinking delay and answers. Cancelling ctx abandons the wait.
func (r *Router) Respond(ctx context.Context, query string) (Reply, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return Reply{}, ErrEmptyQuery
	}
	agentID, text := r.Route(query)

	if r.delay > 0 {
		timer := time.NewTimer(r.delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return Reply{}, ctx.Err()
		case <-timer.C:
		}
	}
	return Reply{Query: query, AgentID: agentID, Reply: text}, nil
}
