package semantic

import (
	"github.com/cwbudde/go-dws/internal/ast"
	"github.com/cwbudde/go-dws/internal/ident"
	"github.com/cwbudde/go-dws/internal/types"
)

// ClosureScopeKind classifies a ClosureScope: the body of a named
// function/method, the body of a lambda literal, or a loop body.
// Named ClosureScope* (rather than Scope/ScopeKind) to avoid colliding
// with the lexical Scope/ScopeKind pair pass_context.go already uses
// for ordinary symbol resolution — the two model unrelated things
// (symbol visibility vs. capture/environment bookkeeping) and happen
// to want the same short names.
type ClosureScopeKind int

const (
	ClosureScopeFunction ClosureScopeKind = iota
	ClosureScopeLambda
	ClosureScopeLoop
)

func (k ClosureScopeKind) String() string {
	switch k {
	case ClosureScopeFunction:
		return "FUNCTION"
	case ClosureScopeLambda:
		return "LAMBDA"
	case ClosureScopeLoop:
		return "LOOP"
	default:
		return "UNKNOWN"
	}
}

// ClosureScope is a node in the capture-analysis scope tree, rooted at
// a function or method body. Parent may be rewritten during phase 2
// (environment synthesis) to collapse runs of scopes that never grew
// an environment, so that reaching any ancestor capture costs one
// environment-field hop.
type ClosureScope struct {
	ID                int
	Kind              ClosureScopeKind
	Node              ast.Node
	EnclosingFunction *ast.FunctionDecl
	Parent            *ClosureScope

	HasCapturedDefinitions bool
	HasCapturingUses       bool

	EnvironmentObject      *types.ClassType
	EnvironmentConstructor *ast.FunctionDecl
	EnvironmentVariable    *ast.Identifier

	// EnvironmentConstructorCall is the "new EnvClass(...)" expression
	// that allocates this scope's environment. The distilled spec
	// models object construction as a generic CallExpression; this
	// AST represents it as the dedicated *ast.NewExpression node
	// (see DESIGN.md), which is what every other `new Foo(...)` site
	// in this compiler already produces.
	EnvironmentConstructorCall *ast.NewExpression

	Definitions []*Definition
	Uses        []*Use
	Copies      []*Copy

	DefinitionLookup map[string]*Definition
	CopyLookup       map[int]*Copy
}

// NewClosureScope builds an empty ClosureScope ready to be scanned
// into.
func NewClosureScope(id int, kind ClosureScopeKind, node ast.Node, enclosing *ast.FunctionDecl, parent *ClosureScope) *ClosureScope {
	return &ClosureScope{
		ID:                id,
		Kind:              kind,
		Node:              node,
		EnclosingFunction: enclosing,
		Parent:            parent,
		DefinitionLookup:  make(map[string]*Definition),
		CopyLookup:        make(map[int]*Copy),
	}
}

// Definition is a binding visible in a scope: a named local, a
// function/lambda argument, a loop variable, or a synthetic binding
// (Self, an exception-handler variable) with no declaring node.
type Definition struct {
	SymbolName string
	Type       types.Type
	Node       ast.Node // declaring node, nil for synthetic bindings
	Scope      *ClosureScope
	IsCaptured bool
	// IsLoopVariable marks a FOR/FOR-IN loop counter. Its Node is the
	// *ast.Identifier naming it (not nil, unlike Self), so it needs its
	// own flag to be recognized by isArgumentOrSelfDefinition alongside
	// real *ast.Parameter definitions as prefill-eligible.
	IsLoopVariable bool
	Member         *types.FieldInfo // set once phase 2 materializes its environment field
}

// Use is a single reference to a Definition from a NAME node.
type Use struct {
	Definition *Definition
	Node       *ast.Identifier
}

// Copy is an obligation that one scope's environment holds a
// reference to an ancestor scope's environment, so a deeply nested
// scope can reach a capture without walking every intermediate scope
// at runtime.
type Copy struct {
	Scope  *ClosureScope
	Member *types.FieldInfo
}

// recordDefinition adds a new Definition to s for symbolName,
// panicking (an assertion — see closure_conversion.go's assert
// helper) if the name is already defined directly in s.
func (s *ClosureScope) recordDefinition(symbolName string, typ types.Type, node ast.Node) *Definition {
	key := ident.Normalize(symbolName)
	if _, exists := s.DefinitionLookup[key]; exists {
		panicClosureAssert(node, "redefinition of %q in scope %d", symbolName, s.ID)
	}
	def := &Definition{SymbolName: symbolName, Type: typ, Node: node, Scope: s}
	s.Definitions = append(s.Definitions, def)
	s.DefinitionLookup[key] = def
	return def
}

// resolveNamedType resolves name against ctx's TypeRegistry, the same
// lookup contract_pass.go's resolveTypeExpression uses for parameter
// and variable type annotations. It falls back to Variant rather than
// nil when name is empty or unregistered, so every recorded Definition
// carries a usable type even when the precise one can't be recovered at
// scan time — the same erasure the rest of this pass already uses for
// genuinely unknown types (see spliceLambdaEnv's untyped-lambda case).
func resolveNamedType(ctx *PassContext, name string) types.Type {
	if name == "" {
		return types.VARIANT
	}
	if typ, ok := ctx.TypeRegistry.Resolve(name); ok {
		return typ
	}
	return types.VARIANT
}

// resolveAnnotatedType is resolveNamedType for a *ast.TypeAnnotation,
// which is nil for an omitted type (an untyped lambda parameter, an
// inferred var with no explicit type).
func resolveAnnotatedType(ctx *PassContext, ta *ast.TypeAnnotation) types.Type {
	if ta == nil {
		return types.VARIANT
	}
	return resolveNamedType(ctx, ta.Name)
}

// createReferenceToScope builds the expression that reaches target's
// environment from a reference site logically inside self: walk up
// self's (already-collapsed) Parent chain to the nearest scope T with
// an environment. If T is target, that is a direct reference to
// T.EnvironmentVariable; otherwise T must hold a Copy reaching target,
// reached as T.EnvironmentVariable.<copy member>. This costs at most
// one member access after phase 2's parent-chain collapse.
func (self *ClosureScope) createReferenceToScope(target *ClosureScope) ast.Expression {
	t := self
	for t != nil && t.EnvironmentObject == nil {
		t = t.Parent
	}
	if t == nil {
		panicClosureAssert(self.Node, "no ancestor environment found reaching scope %d from scope %d", target.ID, self.ID)
	}
	if t == target {
		return &ast.Identifier{Token: t.EnvironmentVariable.Token, Value: t.EnvironmentVariable.Value}
	}
	copy, ok := t.CopyLookup[target.ID]
	if !ok {
		panicClosureAssert(self.Node, "scope %d has no copy reaching scope %d", t.ID, target.ID)
	}
	return &ast.MemberAccessExpression{
		Object: &ast.Identifier{Token: t.EnvironmentVariable.Token, Value: t.EnvironmentVariable.Value},
		Member: &ast.Identifier{Value: copy.Member.Name},
	}
}

// closureScanner performs phase 1 (scan): a pre-order traversal of
// every function, method, and lambda body that builds the flat scope
// list, each scope's Definitions/Uses, and the global list of call
// sites to revisit in phase 3.
type closureScanner struct {
	ctx    *PassContext
	stack  []*ClosureScope
	flat   []*ClosureScope
	calls  []*ast.CallExpression
	nextID int

	// enclosing tracks the nearest enclosing named function/method, so
	// a lambda scope's EnclosingFunction is set even though lambdas
	// don't themselves carry an *ast.FunctionDecl.
	enclosing *ast.FunctionDecl
}

func newClosureScanner(ctx *PassContext) *closureScanner {
	return &closureScanner{ctx: ctx}
}

func (s *closureScanner) currentScope() *ClosureScope {
	return s.stack[len(s.stack)-1]
}

func (s *closureScanner) pushScope(kind ClosureScopeKind, node ast.Node) *ClosureScope {
	var parent *ClosureScope
	if len(s.stack) > 0 {
		parent = s.currentScope()
	}
	id := s.nextID
	s.nextID++
	scope := NewClosureScope(id, kind, node, s.enclosing, parent)
	s.stack = append(s.stack, scope)
	s.flat = append(s.flat, scope)
	return scope
}

func (s *closureScanner) popScope() {
	s.stack = s.stack[:len(s.stack)-1]
}

// recordUse implements §4.1's recordUse: walk from the current
// (using) scope up through Parent, flipping isCaptured the first time
// the walk steps out of a LAMBDA scope. The first scope (searched in
// any case) whose DefinitionLookup has the symbol is the defining
// scope; a Use is appended there only if reachable at all.
func (s *closureScanner) recordUse(symbolName string, node *ast.Identifier) {
	using := s.currentScope()
	key := ident.Normalize(symbolName)
	isCaptured := false

	for scope := using; scope != nil; scope = scope.Parent {
		if def, ok := scope.DefinitionLookup[key]; ok {
			use := &Use{Definition: def, Node: node}
			using.Uses = append(using.Uses, use)
			if isCaptured {
				def.IsCaptured = true
				scope.HasCapturedDefinitions = true
				using.HasCapturingUses = true
			}
			return
		}
		if scope.Kind == ClosureScopeLambda {
			isCaptured = true
		}
	}
	// Symbol belongs to an enclosing function not on the stack (e.g. a
	// global, or a name resolved elsewhere entirely) — nothing to record.
}

// scanProgram runs phase 1 over every top-level statement. Top-level
// code is treated as living in an implicit FUNCTION scope rooted at
// the program itself, so a lambda written directly in top-level code
// (closing over a global `var`) is scanned exactly like one written
// inside a named function.
func (s *closureScanner) scanProgram(program *ast.Program) {
	s.pushScope(ClosureScopeFunction, program)
	for _, stmt := range program.Statements {
		s.scan(stmt)
	}
	s.popScope()
}

// scan is the single dispatch point for every AST node kind the
// scanner must special-case, following the teacher's
// dispatch-by-type-switch idiom (analyze_statements.go,
// analyze_expressions.go) rather than a reflection-based visitor.
func (s *closureScanner) scan(node ast.Node) {
	if node == nil {
		return
	}
	switch n := node.(type) {
	case *ast.Program:
		s.scanProgram(n)
	case *ast.BlockStatement:
		for _, stmt := range n.Statements {
			s.scan(stmt)
		}
	case *ast.FunctionDecl:
		s.scanFunctionDecl(n)
	case *ast.ClassDecl:
		s.scanClassDecl(n)
	case *ast.LambdaExpression:
		s.scanLambda(n)
	case *ast.ForInStatement:
		s.scanForIn(n)
	case *ast.ForStatement:
		s.scanFor(n)
	case *ast.WhileStatement:
		s.scanWhile(n)
	case *ast.RepeatStatement:
		s.scanRepeat(n)
	case *ast.VarDeclStatement:
		s.scanVarDecl(n)
	case *ast.AssignmentStatement:
		s.scan(n.Value)
		s.scan(n.Target)
	case *ast.IfStatement:
		s.scan(n.Condition)
		s.scan(n.Consequence)
		if n.Alternative != nil {
			s.scan(n.Alternative)
		}
	case *ast.CaseStatement:
		s.scan(n.Expression)
		for _, branch := range n.Cases {
			for _, v := range branch.Values {
				s.scan(v)
			}
			s.scan(branch.Statement)
		}
		if n.Else != nil {
			s.scan(n.Else)
		}
	case *ast.ReturnStatement:
		s.scan(n.ReturnValue)
	case *ast.ExitStatement:
		s.scan(n.ReturnValue)
	case *ast.ExpressionStatement:
		s.scan(n.Expression)
	case *ast.TryStatement:
		s.scanTry(n)
	case *ast.RaiseStatement:
		s.scan(n.Exception)
	case *ast.CallExpression:
		s.scanCall(n)
	case *ast.MethodCallExpression:
		s.scan(n.Object)
		for _, arg := range n.Arguments {
			s.scan(arg)
		}
	case *ast.MemberAccessExpression:
		s.scan(n.Object)
	case *ast.NewExpression:
		for _, arg := range n.Arguments {
			s.scan(arg)
		}
	case *ast.BinaryExpression:
		s.scan(n.Left)
		s.scan(n.Right)
	case *ast.UnaryExpression:
		s.scan(n.Right)
	case *ast.GroupedExpression:
		s.scan(n.Expression)
	case *ast.IndexExpression:
		s.scan(n.Left)
		s.scan(n.Index)
	case *ast.Identifier:
		s.scanIdentifierUse(n)
	default:
		// Literals and every other leaf node have no definitions,
		// uses, or call sites to record.
	}
}

func (s *closureScanner) scanFunctionDecl(fn *ast.FunctionDecl) {
	previousEnclosing := s.enclosing
	s.enclosing = fn
	scope := s.pushScope(ClosureScopeFunction, fn)

	if fn.ClassName != nil {
		scope.recordDefinition("Self", resolveNamedType(s.ctx, fn.ClassName.Value), nil)
	}
	for _, param := range fn.Parameters {
		scope.recordDefinition(param.Name.Value, resolveAnnotatedType(s.ctx, param.Type), param)
	}
	s.scan(fn.Body)

	s.popScope()
	s.enclosing = previousEnclosing
}

func (s *closureScanner) scanClassDecl(cls *ast.ClassDecl) {
	if cls.Constructor != nil {
		s.scan(cls.Constructor)
	}
	if cls.Destructor != nil {
		s.scan(cls.Destructor)
	}
	for _, m := range cls.Methods {
		s.scan(m)
	}
}

// scanLambda implements §4.1's LAMBDA rule: push a LAMBDA scope for
// the lambda itself, then a nested FUNCTION scope for its body, and
// record the lambda's own arguments as definitions of that nested
// FUNCTION scope — not the LAMBDA scope. This is the subtlety
// described in spec.md §9: a lambda's parameters must get fresh
// storage on every invocation, which only happens if they live in the
// inner FUNCTION scope rather than the (per-closure, not
// per-invocation) LAMBDA scope.
func (s *closureScanner) scanLambda(lam *ast.LambdaExpression) {
	s.pushScope(ClosureScopeLambda, lam)
	funcScope := s.pushScope(ClosureScopeFunction, lam)

	for _, param := range lam.Parameters {
		funcScope.recordDefinition(param.Name.Value, resolveAnnotatedType(s.ctx, param.Type), param)
	}
	s.scan(lam.Body)

	s.popScope() // FUNCTION
	s.popScope() // LAMBDA
}

func (s *closureScanner) scanForIn(stmt *ast.ForInStatement) {
	s.scan(stmt.Collection)
	scope := s.pushScope(ClosureScopeLoop, stmt)
	def := scope.recordDefinition(stmt.Variable.Value, s.forInVariableType(stmt), stmt.Variable)
	def.IsLoopVariable = true
	s.scan(stmt.Body)
	s.popScope()
}

// scanFor pushes a LOOP scope for a counted for loop. The loop
// variable is recorded as a definition of the loop scope, symmetric
// with scanForIn, so a lambda inside the body that captures the
// counter (spec.md scenario D) gets a fresh per-iteration environment
// the same way a for-in loop variable does. Its type defaults to
// Integer, the same default analyzeFor (analyze_statements.go) gives a
// counted loop variable whose Start expression isn't itself a narrower
// ordinal type.
func (s *closureScanner) scanFor(stmt *ast.ForStatement) {
	s.scan(stmt.Start)
	s.scan(stmt.End)
	scope := s.pushScope(ClosureScopeLoop, stmt)
	def := scope.recordDefinition(stmt.Variable.Value, types.INTEGER, stmt.Variable)
	def.IsLoopVariable = true
	s.scan(stmt.Body)
	s.popScope()
}

// lookupDefinition walks the current scope chain outward looking for
// name's Definition, the same walk recordUse performs, without marking
// anything captured. Used by forInVariableType to recover a loop
// variable's element type from its collection's own declared type.
func (s *closureScanner) lookupDefinition(name string) *Definition {
	key := ident.Normalize(name)
	for scope := s.currentScope(); scope != nil; scope = scope.Parent {
		if def, ok := scope.DefinitionLookup[key]; ok {
			return def
		}
	}
	return nil
}

// forInVariableType best-effort resolves a FOR-IN loop variable's
// element type from its collection's declared type, when the
// collection is a plain local/parameter reference whose Definition.Type
// is already known to be an array or set. Anything more dynamic (a
// call result, a literal) falls back to Variant — the loop variable is
// still captured and prefilled correctly, just without a precise
// element type.
func (s *closureScanner) forInVariableType(stmt *ast.ForInStatement) types.Type {
	if id, ok := stmt.Collection.(*ast.Identifier); ok {
		if def := s.lookupDefinition(id.Value); def != nil {
			switch t := def.Type.(type) {
			case *types.ArrayType:
				if t.ElementType != nil {
					return t.ElementType
				}
			case *types.SetType:
				if t.ElementType != nil {
					return t.ElementType
				}
			}
		}
	}
	return types.VARIANT
}

func (s *closureScanner) scanWhile(stmt *ast.WhileStatement) {
	s.pushScope(ClosureScopeLoop, stmt)
	s.scan(stmt.Condition)
	s.scan(stmt.Body)
	s.popScope()
}

func (s *closureScanner) scanRepeat(stmt *ast.RepeatStatement) {
	s.pushScope(ClosureScopeLoop, stmt)
	s.scan(stmt.Body)
	s.scan(stmt.Condition)
	s.popScope()
}

func (s *closureScanner) scanVarDecl(decl *ast.VarDeclStatement) {
	s.scan(decl.Value)
	typ := s.varDeclType(decl)
	for _, name := range decl.Names {
		s.currentScope().recordDefinition(name.Value, typ, decl)
	}
}

// varDeclType resolves decl's declared type, falling back to its
// initializer's own inferred type (stamped by the analyzer via
// TypedExpression.SetType, e.g. for a literal) when decl itself carries
// none — the `var x := ...` Inferred form.
func (s *closureScanner) varDeclType(decl *ast.VarDeclStatement) types.Type {
	if decl.Type != nil {
		return resolveAnnotatedType(s.ctx, decl.Type)
	}
	if typed, ok := decl.Value.(ast.TypedExpression); ok {
		if ta := typed.GetType(); ta != nil {
			return resolveAnnotatedType(s.ctx, ta)
		}
	}
	return types.VARIANT
}

// scanTry handles CATCH per the open question resolved in spec.md §9:
// an exception-bound name is recorded as a definition of the
// enclosing scope, not a new scope (a known simplification relative
// to a from-scratch design that might give each handler its own
// scope).
func (s *closureScanner) scanTry(stmt *ast.TryStatement) {
	s.scan(stmt.TryBlock)
	if stmt.ExceptClause != nil {
		for _, handler := range stmt.ExceptClause.Handlers {
			if handler.Variable != nil {
				typ := resolveAnnotatedType(s.ctx, handler.ExceptionType)
				s.currentScope().recordDefinition(handler.Variable.Value, typ, handler)
			}
			s.scan(handler.Statement)
		}
		s.scan(stmt.ExceptClause.ElseBlock)
	}
	if stmt.FinallyClause != nil {
		s.scan(stmt.FinallyClause.Block)
	}
}

func (s *closureScanner) scanCall(call *ast.CallExpression) {
	s.calls = append(s.calls, call)
	s.scan(call.Function)
	for _, arg := range call.Arguments {
		s.scan(arg)
	}
}

func (s *closureScanner) scanIdentifierUse(ident *ast.Identifier) {
	if ident.Value == "" {
		return
	}
	s.recordUse(ident.Value, ident)
}
