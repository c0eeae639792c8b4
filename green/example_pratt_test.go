package green_test

import (
	"fmt"

	"github.com/flier/greentree/green"
)

// Kinds for the worked Pratt-parser example (spec.md §8 scenario S3,
// original_source/examples/pratt_parser.rs and the doctest embedded in
// builder.rs's start_node_at).
const (
	exATOM green.Kind = 0
	exPLUS green.Kind = 1
	exMUL  green.Kind = 2
	exEXPR green.Kind = 4
)

func exBindingPower(kind green.Kind) float64 {
	switch kind {
	case exPLUS:
		return 1
	case exMUL:
		return 2
	default:
		return 0
	}
}

func exText(kind green.Kind) string {
	switch kind {
	case exATOM:
		return "atom"
	case exPLUS:
		return "+"
	case exMUL:
		return "*"
	default:
		panic("greentree: unknown example kind")
	}
}

// parseExpr is a minimal precedence-climbing (Pratt) parser: it reads one
// atom, then repeatedly consumes an operator of at least bind power and
// recurses for its right-hand side, using a checkpoint taken before the
// left-hand side to retroactively wrap it (and the newly parsed operator
// and right-hand side) into an EXPR node once the operator is found to
// bind tightly enough. This is the canonical motivation for
// TreeBuilder.Checkpoint/StartNodeAt (GLOSSARY: Pratt parser).
func parseExpr(b *green.TreeBuilder, bind float64, tokens *[]green.Kind) {
	start := b.Checkpoint()

	first := (*tokens)[0]
	*tokens = (*tokens)[1:]
	b.Token(first, exText(first))

	for len(*tokens) > 0 {
		op := (*tokens)[0]
		power := exBindingPower(op)
		if power < bind {
			break
		}

		*tokens = (*tokens)[1:]
		b.Token(op, exText(op))
		parseExpr(b, power, tokens)
		b.StartNodeAt(start, exEXPR).FinishNode()
	}
}

// ExampleTreeBuilder_checkpoint reproduces spec.md §8 scenario S3: parsing
// `atom*atom+atom*atom` must produce EXPR(EXPR(a,*,a), +, EXPR(a,*,a)),
// where each EXPR node was not known to exist until its right-hand operand
// had already been parsed.
func ExampleTreeBuilder_checkpoint() {
	tokens := []green.Kind{exATOM, exMUL, exATOM, exPLUS, exATOM, exMUL, exATOM}

	b := green.NewTreeBuilder()
	parseExpr(b, 0, &tokens)

	root := b.Finish()

	var describe func(n *green.Node) string
	describe = func(n *green.Node) string {
		s := "EXPR("
		for i, el := range collectAll(n) {
			if i > 0 {
				s += ", "
			}

			if tok, ok := el.Token(); ok {
				s += tok.Text()
			} else {
				child, _ := el.Node()
				s += describe(child)
			}
		}

		return s + ")"
	}

	fmt.Println(describe(root))
	// Output:
	// EXPR(EXPR(atom, *, atom), +, EXPR(atom, *, atom))
}

func collectAll(n *green.Node) []green.Element {
	var out []green.Element
	for el := range n.Children().All() {
		out = append(out, el)
	}

	return out
}
