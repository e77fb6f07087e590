package types

// Generic is an uninstantiated class template: a class body parameterized
// over type-parameter names. It caches its expansions by structural
// equality of the concrete argument list (spec.md §9). A Generic never
// appears as the operand type of any runtime expression: after template
// expansion every ResolutionDeferred pointing at a Generic with type
// arguments is rewritten to point at the corresponding Class expansion.
type Generic struct {
	NodeID     NodeID
	Name       string
	ParamNames []string

	expansions []*Class
}

func (g *Generic) String() string { return g.Name }
func (g *Generic) Actual() Type   { return g }
func (*Generic) typ()             {}

// Lookup returns the cached expansion for args, or nil if none has been
// produced yet.
func (g *Generic) Lookup(args []Type) *Class {
	for _, c := range g.expansions {
		if SameArgs(c.TypeArgs, args) {
			return c
		}
	}
	return nil
}

// Register adds c to the expansion cache, deduplicated by structural
// equality of c.TypeArgs. It is a no-op if an equal expansion is already
// cached.
func (g *Generic) Register(c *Class) {
	if g.Lookup(c.TypeArgs) != nil {
		return
	}
	g.expansions = append(g.expansions, c)
}

// Expansions returns every Class produced so far from this Generic.
func (g *Generic) Expansions() []*Class {
	return g.expansions
}
