package semantic

import (
	"fmt"
	"os"

	"github.com/cwbudde/go-dws/internal/ast"
	dwerrors "github.com/cwbudde/go-dws/internal/errors"
	"github.com/cwbudde/go-dws/internal/lexer"
	"github.com/cwbudde/go-dws/internal/types"
)

// ClosureConversionPass rewrites every *ast.LambdaExpression reachable
// from a program into a heap-allocated environment/closure object pair
// implementing a synthesized Fn/FnVoid interface, so indirect lambda
// calls become ordinary interface dispatch. It runs after type
// resolution and before code generation, consuming a fully
// type-checked AST and mutating it in place — mirroring how every
// other pass in this package (see pass.go) is a small struct whose
// Run method is the entire public surface.
//
// The pass is three sequential phases over one global AST:
//
//  1. scan: a pre-order traversal building the flat scope list and
//     each scope's captured definitions/uses (closure_conversion_scope.go).
//  2. convert lambdas: environment synthesis, parent-copy propagation,
//     and rewriting lambda literals and captured definitions/uses into
//     environment member access (this file, plus
//     closure_conversion_rewrite.go).
//  3. convert calls: rewriting every call through a lambda-typed
//     callee into a call through the synthesized interface's Run
//     method (closure_conversion_rewrite.go).
type ClosureConversionPass struct {
	// Trace, when set, makes Run write one line per synthesized
	// environment/lambda class to os.Stderr, threaded the same way
	// --verbose is threaded through cmd/dwscript/cmd/root.go.
	Trace bool
}

// NewClosureConversionPass builds a pass with tracing disabled.
func NewClosureConversionPass() *ClosureConversionPass {
	return &ClosureConversionPass{}
}

func (p *ClosureConversionPass) Name() string { return "ClosureConversion" }

// Run implements semantic.Pass.
func (p *ClosureConversionPass) Run(program *ast.Program, ctx *PassContext) error {
	if ctx.FnInterfaces == nil {
		ctx.FnInterfaces = NewFnInterfaceRegistry()
	}

	scanner := newClosureScanner(ctx)
	scanner.scanProgram(program)

	conv := &closureConverter{
		ctx:             ctx,
		trace:           p.Trace,
		fieldNames:      make(map[*types.ClassType]map[string]int),
		localNames:      make(map[*ClosureScope]map[string]int),
		classDeclByNode: make(map[*ClosureScope]*ast.ClassDecl),
	}

	for _, scope := range scanner.flat {
		conv.synthesizeEnvironment(scope)
	}
	for _, scope := range scanner.flat {
		conv.wireCopies(scope)
	}

	idx := buildScopeIndex(scanner.flat)
	useByNode := make(map[*ast.Identifier]*Use)
	for _, scope := range scanner.flat {
		for _, use := range scope.Uses {
			useByNode[use.Node] = use
		}
	}
	conv.useByNode = useByNode

	// Sweep A may have prepended an env declaration (and prefill
	// assignments) directly to program.Statements if top-level code
	// itself captures a global into a lambda; appendSynthesizedClass
	// defers its own classes to ctx.synthesizedClasses instead, so
	// program.Statements here holds exactly the source-level statements
	// (rewritten in place below) plus any such prepended synthetic
	// ones, which are harmless to pass through rewriteStmt a second
	// time since they reference no recorded Definition.
	topLevel := idx.byNode[program]
	program.Statements = conv.rewriteStmtList(program.Statements, topLevel, idx)

	if len(ctx.synthesizedClasses) > 0 {
		for _, cd := range ctx.synthesizedClasses {
			program.Statements = append(program.Statements, cd)
		}
		ctx.synthesizedClasses = nil
	}

	return nil
}

// assertionFailed panics with a *dwerrors.CompilerError carrying pos,
// per SPEC_FULL §3.4: a closure-conversion invariant violation is a
// compiler bug on already type-checked IR, not a user diagnostic, so
// it is never returned as an error value. cmd/dwscript recovers this
// panic at the top level and prints it as an internal compiler error.
func assertionFailed(pos lexer.Position, format string, args ...interface{}) {
	panic(dwerrors.NewCompilerError(pos, fmt.Sprintf(format, args...), "", ""))
}

// panicClosureAssert is the same assertion helper, accepting an
// ast.Node (or nil) instead of a bare Position, since most call sites
// have a node at hand rather than having already extracted its Pos.
func panicClosureAssert(node ast.Node, format string, args ...interface{}) {
	var pos lexer.Position
	if node != nil {
		pos = node.Pos()
	}
	assertionFailed(pos, format, args...)
}

// closureConverter holds the cross-scope state phases 2 and 3 need:
// the pass context (for registering synthesized classes/interfaces),
// name-uniquification counters, and the Use index built after
// scanning completes.
type closureConverter struct {
	ctx   *PassContext
	trace bool

	fieldNames map[*types.ClassType]map[string]int
	localNames map[*ClosureScope]map[string]int
	envCounter int

	useByNode       map[*ast.Identifier]*Use
	classDeclByNode map[*ClosureScope]*ast.ClassDecl
}

func identRef(id *ast.Identifier) *ast.Identifier {
	return &ast.Identifier{Token: id.Token, Value: id.Value}
}

// typeAnnotationFor renders typ as a type annotation for a synthesized
// field or parameter declaration, or nil when typ is unknown (an
// untyped synthetic definition like a caught exception variable whose
// declared type was never threaded through scanning).
func typeAnnotationFor(typ types.Type) *ast.TypeAnnotation {
	if typ == nil {
		return nil
	}
	return &ast.TypeAnnotation{Name: typ.String()}
}

// isArgumentOrSelfDefinition reports whether def is a function
// argument, lambda parameter, or the synthetic Self binding — the
// definitions whose *initial* value must be copied into the
// environment at the point the environment is created (spec.md §4.3's
// FUNCTION splice step 5), as opposed to an ordinary local variable,
// whose initializer is relocated in sweep three instead.
func isArgumentOrSelfDefinition(def *Definition) bool {
	if def.IsLoopVariable {
		return true
	}
	if def.Node == nil {
		return def.SymbolName == "Self"
	}
	_, isParam := def.Node.(*ast.Parameter)
	return isParam
}

// generateEnvName implements spec.md §4.6: walk the enclosing function
// chain, title-case each name, and suffix with Lambda or Env. This
// codebase's FunctionDecl doesn't nest (only lambdas do), so the
// "chain" is just the one enclosing named function plus the scope's
// own kind; generateName-style uniquification is handled separately
// by uniqueClassName.
func (c *closureConverter) generateEnvName(scope *ClosureScope) string {
	base := "Program"
	if scope.EnclosingFunction != nil && scope.EnclosingFunction.Name != nil && scope.EnclosingFunction.Name.Value != "" {
		base = titleCase(scope.EnclosingFunction.Name.Value)
	}
	suffix := "Env"
	if scope.Kind == ClosureScopeLambda {
		suffix = "Lambda"
	}
	return c.uniqueClassName(base + suffix)
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	if r[0] >= 'a' && r[0] <= 'z' {
		r[0] = r[0] - ('a' - 'A')
	}
	return string(r)
}

// uniqueClassName appends a numeric suffix to base the second and
// later time it is requested, so two lambdas in functions of the same
// name (e.g. two overloads) don't collide.
func (c *closureConverter) uniqueClassName(base string) string {
	if c.ctx.TypeRegistry.Has(base) {
		c.envCounter++
		return fmt.Sprintf("%s%d", base, c.envCounter)
	}
	return base
}

// uniqueFieldName returns a field name for symbolName on class,
// disambiguating repeated captures of the same source name across
// different definitions within the same environment (shadowing across
// nested blocks of one function scope).
func (c *closureConverter) uniqueFieldName(class *types.ClassType, symbolName string) string {
	counts := c.fieldNames[class]
	if counts == nil {
		counts = make(map[string]int)
		c.fieldNames[class] = counts
	}
	n := counts[symbolName]
	counts[symbolName] = n + 1
	if n == 0 {
		return symbolName
	}
	return fmt.Sprintf("%s%d", symbolName, n)
}

// uniqueLocalName returns a fresh local variable name within scope,
// for the synthesized env/lambda/copy locals sweep A and B introduce.
func (c *closureConverter) uniqueLocalName(scope *ClosureScope, base string) string {
	counts := c.localNames[scope]
	if counts == nil {
		counts = make(map[string]int)
		c.localNames[scope] = counts
	}
	n := counts[base]
	counts[base] = n + 1
	if n == 0 {
		return base
	}
	return fmt.Sprintf("%s%d", base, n)
}

// loopBodyBlock returns scope's loop body as a *ast.BlockStatement,
// wrapping (and writing back) a bare single-statement body in place
// if necessary, since ForStatement/WhileStatement/RepeatStatement
// model Body as the Statement interface rather than a concrete block.
func (c *closureConverter) loopBodyBlock(scope *ClosureScope) *ast.BlockStatement {
	switch n := scope.Node.(type) {
	case *ast.ForInStatement:
		if b, ok := n.Body.(*ast.BlockStatement); ok {
			return b
		}
		b := &ast.BlockStatement{Token: n.Token, Statements: []ast.Statement{n.Body}}
		n.Body = b
		return b
	case *ast.ForStatement:
		if b, ok := n.Body.(*ast.BlockStatement); ok {
			return b
		}
		b := &ast.BlockStatement{Token: n.Token, Statements: []ast.Statement{n.Body}}
		n.Body = b
		return b
	case *ast.WhileStatement:
		if b, ok := n.Body.(*ast.BlockStatement); ok {
			return b
		}
		b := &ast.BlockStatement{Token: n.Token, Statements: []ast.Statement{n.Body}}
		n.Body = b
		return b
	case *ast.RepeatStatement:
		if b, ok := n.Body.(*ast.BlockStatement); ok {
			return b
		}
		b := &ast.BlockStatement{Token: n.Token, Statements: []ast.Statement{n.Body}}
		n.Body = b
		return b
	default:
		panicClosureAssert(scope.Node, "scope %d is not a loop scope", scope.ID)
		return nil
	}
}

// bodyStatementsSlot returns the address of the statement slice that
// owns scope's body, so callers can prepend into it directly. Program
// stands in for the implicit top-level "function" scope scanProgram
// pushes.
func (c *closureConverter) bodyStatementsSlot(scope *ClosureScope) *[]ast.Statement {
	switch n := scope.Node.(type) {
	case *ast.Program:
		return &n.Statements
	case *ast.FunctionDecl:
		if n.Body == nil {
			n.Body = &ast.BlockStatement{Token: n.Token}
		}
		return &n.Body.Statements
	case *ast.LambdaExpression:
		if n.Body == nil {
			n.Body = &ast.BlockStatement{Token: n.Token}
		}
		return &n.Body.Statements
	case *ast.ForInStatement, *ast.ForStatement, *ast.WhileStatement, *ast.RepeatStatement:
		b := c.loopBodyBlock(scope)
		return &b.Statements
	default:
		panicClosureAssert(scope.Node, "scope %d has no spliceable body", scope.ID)
		return nil
	}
}

// synthesizeEnvironment is phase 2's first sweep (spec.md §4.3): for
// every scope that needs one, materialize the environment class, its
// constructor, its constructor-call expression, and one field per
// captured definition, then splice the declaration into the AST
// according to the scope's kind.
func (c *closureConverter) synthesizeEnvironment(scope *ClosureScope) {
	if !(scope.HasCapturedDefinitions || scope.Kind == ClosureScopeLambda) {
		return
	}
	if scope.Kind == ClosureScopeLambda && scope.HasCapturedDefinitions {
		panicClosureAssert(scope.Node, "LAMBDA scope %d unexpectedly reports captured definitions of its own", scope.ID)
	}

	name := c.generateEnvName(scope)
	class := types.NewClassType(name, nil)
	class.SynthID = synthID()

	nameTok := lexer.Token{Type: lexer.IDENT, Literal: name}
	classIdent := &ast.Identifier{Token: nameTok, Value: name}

	ctor := &ast.FunctionDecl{
		Token:         nameTok,
		Name:          &ast.Identifier{Value: "Create"},
		ClassName:     classIdent,
		Body:          &ast.BlockStatement{Token: nameTok},
		IsConstructor: true,
	}
	classDecl := &ast.ClassDecl{
		Token:       nameTok,
		Name:        classIdent,
		Constructor: ctor,
	}

	envVarName := c.uniqueLocalName(scope, "env")
	if scope.Kind == ClosureScopeLambda {
		envVarName = c.uniqueLocalName(scope, "lambda")
	}
	envVar := &ast.Identifier{Token: nameTok, Value: envVarName}

	scope.EnvironmentObject = class
	scope.EnvironmentConstructor = ctor
	scope.EnvironmentVariable = envVar
	scope.EnvironmentConstructorCall = &ast.NewExpression{
		Token:     nameTok,
		ClassName: identRef(classIdent),
		Type:      &ast.TypeAnnotation{Name: name, Token: nameTok},
	}

	for _, def := range scope.Definitions {
		if !def.IsCaptured {
			continue
		}
		fieldName := c.uniqueFieldName(class, def.SymbolName)
		member := class.AddField(fieldName, def.Type, int(ast.VisibilityPublic))
		def.Member = member
		classDecl.Fields = append(classDecl.Fields, &ast.FieldDecl{
			Token:      nameTok,
			Name:       &ast.Identifier{Value: fieldName},
			Type:       typeAnnotationFor(def.Type),
			Visibility: ast.VisibilityPublic,
		})
	}

	c.classDeclByNode[scope] = classDecl

	c.ctx.Symbols.DefineClass(name, class)
	pos := lexer.Position{}
	if scope.Node != nil {
		pos = scope.Node.Pos()
	}
	if err := c.ctx.TypeRegistry.Register(name, class, pos, int(ast.VisibilityPublic)); err != nil {
		panicClosureAssert(scope.Node, "registering synthesized environment %q: %v", name, err)
	}

	switch scope.Kind {
	case ClosureScopeLambda:
		c.spliceLambdaEnv(scope, classDecl)
	default: // ClosureScopeFunction, ClosureScopeLoop
		c.spliceFunctionOrLoopEnv(scope)
		c.appendSynthesizedClass(scope, classDecl)
	}
}

// appendSynthesizedClass places a newly synthesized, non-lambda
// environment class's declaration into the program, right alongside
// every other top-level declaration. Lambda classes are appended by
// spliceLambdaEnv instead, since they also carry the Run method.
func (c *closureConverter) appendSynthesizedClass(scope *ClosureScope, classDecl *ast.ClassDecl) {
	c.ctx.synthesizedClasses = append(c.ctx.synthesizedClasses, classDecl)
	if c.trace {
		fmt.Fprintf(os.Stderr, "closure-conversion: synthesized %s (scope %d, %s)\n", classDecl.Name.Value, scope.ID, scope.Kind)
	}
}

// spliceFunctionOrLoopEnv implements spec.md §4.3's FUNCTION/LOOP
// splice step: declare `var env := new EnvClass()` at the top of the
// scope's body (the loop's per-iteration body, for a LOOP scope, so a
// fresh environment is allocated every iteration — testable property
// 5), then immediately prefill every captured argument/Self
// definition from its parameter.
func (c *closureConverter) spliceFunctionOrLoopEnv(scope *ClosureScope) {
	slot := c.bodyStatementsSlot(scope)

	envDecl := &ast.VarDeclStatement{
		Token:    scope.EnvironmentVariable.Token,
		Names:    []*ast.Identifier{identRef(scope.EnvironmentVariable)},
		Type:     &ast.TypeAnnotation{Name: scope.EnvironmentObject.Name},
		Value:    scope.EnvironmentConstructorCall,
		Inferred: true,
	}

	prefill := make([]ast.Statement, 0, len(scope.Definitions))
	for _, def := range scope.Definitions {
		if !def.IsCaptured || def.Member == nil || !isArgumentOrSelfDefinition(def) {
			continue
		}
		prefill = append(prefill, &ast.AssignmentStatement{
			Target: &ast.MemberAccessExpression{
				Object: identRef(scope.EnvironmentVariable),
				Member: &ast.Identifier{Value: def.Member.Name},
			},
			Value: &ast.Identifier{Value: def.SymbolName},
		})
	}

	rest := *slot
	combined := make([]ast.Statement, 0, len(rest)+1+len(prefill))
	combined = append(combined, envDecl)
	combined = append(combined, prefill...)
	combined = append(combined, rest...)
	*slot = combined
}

// spliceLambdaEnv implements spec.md §4.3's LAMBDA splice step: the
// lambda's inner function becomes an instance method, Run, on the new
// environment/lambda class, and the LambdaExpression node itself is
// later "become"-d into the class's constructor call (done by
// rewriteExpr, once the class's Run method and copy fields all
// exist).
func (c *closureConverter) spliceLambdaEnv(scope *ClosureScope, classDecl *ast.ClassDecl) {
	lam, ok := scope.Node.(*ast.LambdaExpression)
	if !ok {
		panicClosureAssert(scope.Node, "LAMBDA scope %d's node is not a lambda expression", scope.ID)
	}

	runMethod := &ast.FunctionDecl{
		Token:      lam.Token,
		Name:       &ast.Identifier{Value: "Run"},
		ClassName:  classDecl.Name,
		Parameters: lam.Parameters,
		ReturnType: lam.ReturnType,
		Body:       lam.Body,
		IsVirtual:  true,
	}
	classDecl.Methods = append(classDecl.Methods, runMethod)

	// Resolve the lambda's own declared parameter/return types (an
	// omitted type falls back to Variant, the same erasure
	// resolveAnnotatedType already applies everywhere else in this
	// pass) rather than blanket-erasing every signature to Variant: two
	// lambdas of the same arity but different real types must end up
	// with distinct Run signatures, so neither is forced to implement
	// an interface it doesn't actually satisfy.
	paramTypes := make([]types.Type, 0, len(lam.Parameters))
	for _, param := range lam.Parameters {
		paramTypes = append(paramTypes, resolveAnnotatedType(c.ctx, param.Type))
	}
	var returnType types.Type
	if lam.ReturnType != nil {
		returnType = resolveAnnotatedType(c.ctx, lam.ReturnType)
	}
	sig := types.NewFunctionType(paramTypes, returnType)

	iface := c.ctx.FnInterfaces.InterfaceFor(paramTypes, returnType)
	classDecl.Interfaces = append(classDecl.Interfaces, &ast.Identifier{Value: iface.Name})
	scope.EnvironmentObject.Interfaces = append(scope.EnvironmentObject.Interfaces, iface)

	// Register Run on the class's own method set so
	// types.ImplementsInterface (which calls class.GetMethod, not
	// classDecl.Methods) actually finds it: without this the
	// synthesized class satisfies no interface it claims to, however
	// faithfully its AST declares Run and lists the interface.
	scope.EnvironmentObject.AddMethodOverload("Run", &types.MethodInfo{
		Signature: sig,
		IsVirtual: true,
	})

	c.appendSynthesizedClass(scope, classDecl)
}

// wireCopies is phase 2's copy-wiring sweep (spec.md §4.2 and §4.4's
// second pass, combined): for every captured use recorded against
// scope, it makes sure a chain of Copy fields exists from the using
// scope's nearest environment down to the defining scope's
// environment. Rather than statically propagating obligations in a
// separate pre-pass and then wiring them in a second one, this builds
// the chain recursively and memoizes each hop on CopyLookup as it
// goes — the two are equivalent fixpoints, since Copy creation is
// idempotent per (owning scope, target scope) pair; see DESIGN.md.
func (c *closureConverter) wireCopies(scope *ClosureScope) {
	for _, use := range scope.Uses {
		if !use.Definition.IsCaptured {
			continue
		}
		c.ensureReachable(scope, use.Definition.Scope)
	}
}

// ensureReachable makes target's environment reachable from using's
// nearest environment-bearing ancestor, creating and memoizing one
// Copy per hop. It derives the "collapsed parent chain" of spec.md
// §4.3 step 6 lazily, by walking the uncollapsed Parent chain each
// time, rather than mutating Parent in place — the alternative §9
// explicitly sanctions ("derive the collapsed chain lazily").
func (c *closureConverter) ensureReachable(using *ClosureScope, target *ClosureScope) {
	t := using
	for t != nil && t.EnvironmentObject == nil {
		t = t.Parent
	}
	if t == nil {
		panicClosureAssert(using.Node, "no ancestor environment found reaching scope %d from scope %d", target.ID, using.ID)
	}
	if t == target {
		return
	}
	if _, ok := t.CopyLookup[target.ID]; ok {
		return
	}
	if t.Parent == nil {
		panicClosureAssert(using.Node, "scope %d has no parent to route a copy to scope %d through", t.ID, target.ID)
	}

	c.ensureReachable(t.Parent, target)
	argument := t.Parent.createReferenceToScope(target)

	fieldName := c.uniqueFieldName(t.EnvironmentObject, "copy"+target.EnvironmentObject.Name)
	member := t.EnvironmentObject.AddField(fieldName, target.EnvironmentObject, int(ast.VisibilityPublic))
	if classDecl := c.classDeclByNode[t]; classDecl != nil {
		classDecl.Fields = append(classDecl.Fields, &ast.FieldDecl{
			Name:       &ast.Identifier{Value: fieldName},
			Type:       &ast.TypeAnnotation{Name: target.EnvironmentObject.Name},
			Visibility: ast.VisibilityPublic,
		})
	}

	cp := &Copy{Scope: target, Member: member}
	t.Copies = append(t.Copies, cp)
	if t.CopyLookup == nil {
		t.CopyLookup = make(map[int]*Copy)
	}
	t.CopyLookup[target.ID] = cp

	t.EnvironmentConstructor.Parameters = append(t.EnvironmentConstructor.Parameters, &ast.Parameter{
		Name: &ast.Identifier{Value: fieldName},
		Type: &ast.TypeAnnotation{Name: target.EnvironmentObject.Name},
	})
	t.EnvironmentConstructor.Body.Statements = append(t.EnvironmentConstructor.Body.Statements, &ast.AssignmentStatement{
		Target: &ast.MemberAccessExpression{
			Object: &ast.Identifier{Value: "Self"},
			Member: &ast.Identifier{Value: fieldName},
		},
		Value: &ast.Identifier{Value: fieldName},
	})
	t.EnvironmentConstructorCall.Arguments = append(t.EnvironmentConstructorCall.Arguments, argument)
}
