package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"
)

// NodeName identifies a node of the pipeline graph.
type NodeName string

// End is the terminal pseudo-node.
const End NodeName = "__end__"

// Stage is one unit of the pipeline. Run absorbs its own failures into st;
// anything it cannot absorb must panic, which the graph turns into a
// pipeline-fatal *StageError.
type Stage interface {
	Name() NodeName
	Run(ctx context.Context, st *PipelineState)
}

// Router picks the node that follows the current one. Routers must be pure
// functions of the state.
type Router func(st *PipelineState) NodeName

type edge struct {
	route   Router
	targets []NodeName
}

// Step records one executed node.
type Step struct {
	Node NodeName
	Took time.Duration
}

// Trace is the ordered list of nodes an invocation visited.
type Trace []Step

// Nodes returns the visited node names in order.
func (t Trace) Nodes() []NodeName {
	out := make([]NodeName, len(t))
	for i, s := range t {
		out[i] = s.Node
	}
	return out
}

// GraphBuilder collects nodes and edges; Compile validates them into an
// immutable CompiledGraph. The first error sticks and is reported by Compile.
type GraphBuilder struct {
	entry NodeName
	nodes map[NodeName]Stage
	order []NodeName
	edges map[NodeName]edge
	err   error
}

// NewGraphBuilder returns an empty builder.
func NewGraphBuilder() *GraphBuilder {
	return &GraphBuilder{
		nodes: make(map[NodeName]Stage),
		edges: make(map[NodeName]edge),
	}
}

func (b *GraphBuilder) fail(format string, args ...any) *GraphBuilder {
	if b.err == nil {
		b.err = fmt.Errorf("%w: "+format, append([]any{ErrInvalidGraph}, args...)...)
	}
	return b
}

// AddNode registers a stage under its own name.
func (b *GraphBuilder) AddNode(s Stage) *GraphBuilder {
	name := s.Name()
	if name == "" || name == End {
		return b.fail("reserved or empty node name %q", name)
	}
	if _, dup := b.nodes[name]; dup {
		return b.fail("duplicate node %q", name)
	}
	b.nodes[name] = s
	b.order = append(b.order, name)
	return b
}

// AddEdge adds an unconditional edge from -> to.
func (b *GraphBuilder) AddEdge(from, to NodeName) *GraphBuilder {
	return b.AddConditionalEdge(from, func(*PipelineState) NodeName { return to }, to)
}

// AddConditionalEdge routes out of from with route, which may only return
// one of targets.
func (b *GraphBuilder) AddConditionalEdge(from NodeName, route Router, targets ...NodeName) *GraphBuilder {
	if _, dup := b.edges[from]; dup {
		return b.fail("node %q already has an outgoing edge", from)
	}
	if len(targets) == 0 {
		return b.fail("edge from %q declares no targets", from)
	}
	b.edges[from] = edge{route: route, targets: slices.Clone(targets)}
	return b
}

// SetEntry sets the first node to run.
func (b *GraphBuilder) SetEntry(name NodeName) *GraphBuilder {
	b.entry = name
	return b
}

// Compile validates the definition: the entry exists, every node has exactly
// one outgoing edge, every target exists, and no path loops.
func (b *GraphBuilder) Compile() (*CompiledGraph, error) {
	if b.err != nil {
		return nil, b.err
	}
	if _, ok := b.nodes[b.entry]; !ok {
		return nil, fmt.Errorf("%w: entry node %q not registered", ErrInvalidGraph, b.entry)
	}
	for from, e := range b.edges {
		if _, ok := b.nodes[from]; !ok {
			return nil, fmt.Errorf("%w: edge from unknown node %q", ErrInvalidGraph, from)
		}
		for _, to := range e.targets {
			if _, ok := b.nodes[to]; !ok && to != End {
				return nil, fmt.Errorf("%w: edge %q -> unknown node %q", ErrInvalidGraph, from, to)
			}
		}
	}
	for _, name := range b.order {
		if _, ok := b.edges[name]; !ok {
			return nil, fmt.Errorf("%w: node %q has no outgoing edge", ErrInvalidGraph, name)
		}
	}
	if cyc := b.findCycle(); cyc != "" {
		return nil, fmt.Errorf("%w: cycle through %q", ErrInvalidGraph, cyc)
	}

	g := &CompiledGraph{
		entry: b.entry,
		nodes: make(map[NodeName]Stage, len(b.nodes)),
		edges: make(map[NodeName]edge, len(b.edges)),
	}
	for k, v := range b.nodes {
		g.nodes[k] = v
	}
	for k, v := range b.edges {
		g.edges[k] = v
	}
	return g, nil
}

func (b *GraphBuilder) findCycle() NodeName {
	const (
		unvisited = iota
		visiting
		done
	)
	state := make(map[NodeName]int, len(b.nodes))

	var visit func(n NodeName) NodeName
	visit = func(n NodeName) NodeName {
		if n == End {
			return ""
		}
		switch state[n] {
		case visiting:
			return n
		case done:
			return ""
		}
		state[n] = visiting
		for _, next := range b.edges[n].targets {
			if c := visit(next); c != "" {
				return c
			}
		}
		state[n] = done
		return ""
	}

	for _, n := range b.order {
		if c := visit(n); c != "" {
			return c
		}
	}
	return ""
}

// CompiledGraph is an immutable, validated pipeline definition. It holds no
// per-invocation data and is safe to share between goroutines.
type CompiledGraph struct {
	entry NodeName
	nodes map[NodeName]Stage
	edges map[NodeName]edge
}

// Next evaluates the routing table for the node that just ran.
func (g *CompiledGraph) Next(current NodeName, st *PipelineState) (NodeName, error) {
	e, ok := g.edges[current]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownNode, current)
	}
	next := e.route(st)
	if !slices.Contains(e.targets, next) {
		return "", fmt.Errorf("%w: %q routed to undeclared %q", ErrUnknownNode, current, next)
	}
	return next, nil
}

// Run executes the graph over st until End. Stages run strictly one after
// another. The context is checked before every node and once at the end; an
// expired deadline is reported as ErrBudgetExceeded and a cancelled context as
// ErrCanceled rather than returning a partially filled state as success.
func (g *CompiledGraph) Run(ctx context.Context, st *PipelineState) (Trace, error) {
	var trace Trace
	node := g.entry

	for node != End {
		if err := ctx.Err(); err != nil {
			return trace, &StageError{Stage: node, Err: contextError(err)}
		}

		start := time.Now()
		if err := runGuarded(ctx, g.nodes[node], st); err != nil {
			return trace, &StageError{Stage: node, Err: err}
		}
		trace = append(trace, Step{Node: node, Took: time.Since(start)})

		next, err := g.Next(node, st)
		if err != nil {
			return trace, &StageError{Stage: node, Err: err}
		}
		node = next
	}

	if err := ctx.Err(); err != nil {
		last := End
		if len(trace) > 0 {
			last = trace[len(trace)-1].Node
		}
		return trace, &StageError{Stage: last, Err: contextError(err)}
	}
	return trace, nil
}

// contextError classifies a context error: only a passed deadline counts
// against the time budget.
func contextError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %w", ErrBudgetExceeded, err)
	}
	return fmt.Errorf("%w: %w", ErrCanceled, err)
}

func runGuarded(ctx context.Context, s Stage, st *PipelineState) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrStagePanic, r)
		}
	}()
	s.Run(ctx, st)
	return nil
}
