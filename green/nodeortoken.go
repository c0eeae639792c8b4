package green

// NodeOrToken is a two-variant sum over a node reference and a token
// reference, used as the public element type at API boundaries (Children
// iteration, TreeBuilder.Add, the serialization contract). It is the Go
// rendition of sorbus's NodeOrToken<Node, Token> enum (original_source's
// src/utils.rs): instead of a tagged enum we carry the two payloads plus a
// discriminant bool, since Go has no enum-with-payload construct.
type NodeOrToken[N, T any] struct {
	node  N
	token T
	isTok bool
}

// OfNode wraps a node reference as a NodeOrToken.
func OfNode[N, T any](n N) NodeOrToken[N, T] {
	return NodeOrToken[N, T]{node: n}
}

// OfToken wraps a token reference as a NodeOrToken.
func OfToken[N, T any](t T) NodeOrToken[N, T] {
	return NodeOrToken[N, T]{token: t, isTok: true}
}

// IsNode reports whether this holds a node.
func (e NodeOrToken[N, T]) IsNode() bool { return !e.isTok }

// IsToken reports whether this holds a token.
func (e NodeOrToken[N, T]) IsToken() bool { return e.isTok }

// Node returns the node payload and true, or the zero value and false if
// this holds a token.
func (e NodeOrToken[N, T]) Node() (N, bool) {
	return e.node, !e.isTok
}

// Token returns the token payload and true, or the zero value and false if
// this holds a node.
func (e NodeOrToken[N, T]) Token() (T, bool) {
	return e.token, e.isTok
}

// UnwrapNode returns the node payload, panicking if this holds a token.
func (e NodeOrToken[N, T]) UnwrapNode() N {
	if e.isTok {
		panic("greentree: called UnwrapNode on a token")
	}
	return e.node
}

// UnwrapToken returns the token payload, panicking if this holds a node.
func (e NodeOrToken[N, T]) UnwrapToken() T {
	if !e.isTok {
		panic("greentree: called UnwrapToken on a node")
	}
	return e.token
}

// MapNodeOrToken transforms each arm of e independently, producing a
// NodeOrToken over the mapped types.
func MapNodeOrToken[N1, T1, N2, T2 any](e NodeOrToken[N1, T1], node func(N1) N2, token func(T1) T2) NodeOrToken[N2, T2] {
	if e.isTok {
		return OfToken[N2, T2](token(e.token))
	}
	return OfNode[N2, T2](node(e.node))
}

// Flatten returns whichever payload is set, when both arms share a type.
func Flatten[T any](e NodeOrToken[T, T]) T {
	if e.isTok {
		return e.token
	}
	return e.node
}

// Element is the concrete NodeOrToken instantiation returned at API
// boundaries: a borrowed reference to a Node or a Token, valid for as long
// as the parent handle that produced it is alive.
type Element = NodeOrToken[*Node, *Token]
