package script

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/matzehuels/heaviest/pkg/core/graph"
	errs "github.com/matzehuels/heaviest/pkg/errors"
)

// Kind names a graph operation.
type Kind string

const (
	KindAdd    Kind = "add"
	KindDelete Kind = "delete"
	KindWeight Kind = "weight"
	KindMax    Kind = "max"
	KindNodes  Kind = "nodes"
	KindEdges  Kind = "edges"
)

// arity is the number of integer arguments each kind takes.
var arity = map[Kind]int{
	KindAdd:    2,
	KindDelete: 1,
	KindWeight: 1,
	KindMax:    0,
	KindNodes:  0,
	KindEdges:  0,
}

// Expect is the expected result of an operation. Add and delete compare
// Bool; weight, nodes and edges compare Int; max compares Int, or None for
// an empty graph.
type Expect struct {
	Bool bool
	Int  int
	None bool
}

// Op is one scripted graph call.
type Op struct {
	Kind   Kind
	Args   []int
	Expect *Expect

	// Line is the 1-based source line for text scripts, 0 otherwise.
	Line int
}

// Add returns an add operation with no expectation.
func Add(u, v int) Op { return Op{Kind: KindAdd, Args: []int{u, v}} }

// Delete returns a delete operation with no expectation.
func Delete(id int) Op { return Op{Kind: KindDelete, Args: []int{id}} }

// Weight returns a weight query with no expectation.
func Weight(id int) Op { return Op{Kind: KindWeight, Args: []int{id}} }

// Max returns a max query with no expectation.
func Max() Op { return Op{Kind: KindMax} }

// Nodes returns a node count query with no expectation.
func Nodes() Op { return Op{Kind: KindNodes} }

// Edges returns an edge count query with no expectation.
func Edges() Op { return Op{Kind: KindEdges} }

// ExpectBool returns op expecting b.
func (op Op) ExpectBool(b bool) Op {
	op.Expect = &Expect{Bool: b}
	return op
}

// ExpectInt returns op expecting n.
func (op Op) ExpectInt(n int) Op {
	op.Expect = &Expect{Int: n}
	return op
}

// ExpectNone returns a max op expecting an empty graph.
func (op Op) ExpectNone() Op {
	op.Expect = &Expect{None: true}
	return op
}

// Validate checks the argument count and that the expectation fits the
// operation kind.
func (op Op) Validate() error {
	n, ok := arity[op.Kind]
	if !ok {
		return errs.New(errs.ErrCodeInvalidOperation, "unknown operation %q", op.Kind)
	}
	if len(op.Args) != n {
		return errs.New(errs.ErrCodeInvalidOperation, "%s takes %d argument(s), got %d", op.Kind, n, len(op.Args))
	}
	if op.Expect != nil && op.Expect.None && op.Kind != KindMax {
		return errs.New(errs.ErrCodeInvalidOperation, "%s cannot expect none", op.Kind)
	}
	return nil
}

// String renders op in the text script syntax.
func (op Op) String() string {
	var b strings.Builder
	b.WriteString(string(op.Kind))
	for _, a := range op.Args {
		b.WriteByte(' ')
		b.WriteString(strconv.Itoa(a))
	}
	if op.Expect != nil {
		b.WriteString(" => ")
		b.WriteString(op.Expect.format(op.Kind))
	}
	return b.String()
}

func (e *Expect) format(k Kind) string {
	switch {
	case k == KindAdd || k == KindDelete:
		return strconv.FormatBool(e.Bool)
	case e.None:
		return "none"
	default:
		return strconv.Itoa(e.Int)
	}
}

// Outcome is the observed result of one applied operation.
type Outcome struct {
	Index int
	Op    Op

	// Bool is the result of add and delete.
	Bool bool
	// Int is the result of weight, nodes, edges and max.
	Int int
	// None is set when max ran on an empty graph.
	None bool
	// MaxID is the vertex returned by max.
	MaxID int

	// OK is false when the operation carried an expectation that did not hold.
	OK bool
}

// Got renders the observed value in the text script syntax.
func (o Outcome) Got() string {
	e := Expect{Bool: o.Bool, Int: o.Int, None: o.None}
	return e.format(o.Op.Kind)
}

// apply performs op on g and records what it returned.
func apply(g *graph.Graph, i int, op Op) Outcome {
	o := Outcome{Index: i, Op: op, OK: true}
	switch op.Kind {
	case KindAdd:
		o.Bool = g.AddEdge(op.Args[0], op.Args[1])
	case KindDelete:
		o.Bool = g.DeleteNode(op.Args[0])
	case KindWeight:
		o.Int = g.NeighborhoodWeight(op.Args[0])
	case KindNodes:
		o.Int = g.NumNodes()
	case KindEdges:
		o.Int = g.NumEdges()
	case KindMax:
		v, ok := g.MaxNeighborhoodWeight()
		if !ok {
			o.None = true
			break
		}
		o.MaxID = v.ID
		o.Int = g.NeighborhoodWeight(v.ID)
	}

	if e := op.Expect; e != nil {
		switch op.Kind {
		case KindAdd, KindDelete:
			o.OK = o.Bool == e.Bool
		case KindMax:
			o.OK = o.None == e.None && (o.None || o.Int == e.Int)
		default:
			o.OK = o.Int == e.Int
		}
	}
	return o
}

func (o Outcome) mismatch() string {
	return fmt.Sprintf("op %d (%s): got %s", o.Index, o.Op, o.Got())
}
