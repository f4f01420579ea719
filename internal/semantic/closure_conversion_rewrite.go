package semantic

import (
	"strings"

	"github.com/cwbudde/go-dws/internal/ast"
)

// scopeIndex correlates an AST node back to the ClosureScope the scan
// phase pushed for it, so the rewrite walk can re-enter scopes in
// lockstep with scanning without rebuilding the scope graph. Lambda
// expressions are special: scanLambda pushes two scopes (LAMBDA, then
// a nested FUNCTION) against the very same *ast.LambdaExpression node,
// so they get their own slot instead of sharing the single-scope map.
type scopeIndex struct {
	byNode       map[ast.Node]*ClosureScope
	lambdaScopes map[*ast.LambdaExpression][2]*ClosureScope
}

func buildScopeIndex(flat []*ClosureScope) *scopeIndex {
	idx := &scopeIndex{
		byNode:       make(map[ast.Node]*ClosureScope),
		lambdaScopes: make(map[*ast.LambdaExpression][2]*ClosureScope),
	}
	for _, scope := range flat {
		if lam, ok := scope.Node.(*ast.LambdaExpression); ok {
			pair := idx.lambdaScopes[lam]
			if scope.Kind == ClosureScopeLambda {
				pair[0] = scope
			} else {
				pair[1] = scope
			}
			idx.lambdaScopes[lam] = pair
			continue
		}
		idx.byNode[scope.Node] = scope
	}
	return idx
}

// typedNode is satisfied by every expression node that carries a
// resolved TypeAnnotation, which is every concrete expression type in
// this AST except the handful of leaf literals that never need one
// here (NilLiteral, etc.) — those simply fail the type assertion and
// are treated as non-lambda-typed.
type typedNode interface {
	GetType() *ast.TypeAnnotation
}

// isLambdaTyped reports whether expr's resolved type is one of the
// function-pointer types analyze_lambdas.go tags with a "lambda"
// prefixed name (see analyzeLambdaExpression), the signal this
// compiler already uses to mark a value as lambda-valued.
func isLambdaTyped(expr ast.Expression) bool {
	tn, ok := expr.(typedNode)
	if !ok {
		return false
	}
	t := tn.GetType()
	return t != nil && strings.HasPrefix(t.Name, "lambda")
}

// referenceToCapturedMember builds the expression a Use rewrites into:
// a chain of environment member accesses from usingScope, possibly
// through several parent environments, down to def's field.
func (c *closureConverter) referenceToCapturedMember(usingScope *ClosureScope, def *Definition) ast.Expression {
	base := usingScope.createReferenceToScope(def.Scope)
	return &ast.MemberAccessExpression{Object: base, Member: &ast.Identifier{Value: def.Member.Name}}
}

// rewriteStmt is phase 2's third sweep and phase 3 combined into one
// recursive walk: it rewrites captured definitions and uses into
// environment member access, "becomes" lambda literals into their
// constructor calls, and rewrites calls through lambda-typed callees
// into calls through the synthesized interface's Run method. scope is
// the ClosureScope whose body currently contains stmt, or nil when
// walking code the scan phase never entered (there is none, in
// practice, since scanProgram pushes an implicit top-level scope).
func (c *closureConverter) rewriteStmt(stmt ast.Statement, scope *ClosureScope, idx *scopeIndex) ast.Statement {
	if stmt == nil {
		return nil
	}

	switch n := stmt.(type) {
	case *ast.BlockStatement:
		n.Statements = c.rewriteStmtList(n.Statements, scope, idx)
		return n

	case *ast.FunctionDecl:
		inner := idx.byNode[n]
		if inner == nil {
			inner = scope
		}
		if n.Body != nil {
			n.Body.Statements = c.rewriteStmtList(n.Body.Statements, inner, idx)
		}
		return n

	case *ast.ClassDecl:
		if n.Constructor != nil {
			c.rewriteStmt(n.Constructor, scope, idx)
		}
		if n.Destructor != nil {
			c.rewriteStmt(n.Destructor, scope, idx)
		}
		for _, m := range n.Methods {
			c.rewriteStmt(m, scope, idx)
		}
		return n

	case *ast.VarDeclStatement:
		return c.rewriteVarDecl(n, scope, idx)

	case *ast.AssignmentStatement:
		n.Target = c.rewriteExpr(n.Target, scope, idx)
		n.Value = c.rewriteExpr(n.Value, scope, idx)
		return n

	case *ast.ExpressionStatement:
		n.Expression = c.rewriteExpr(n.Expression, scope, idx)
		return n

	case *ast.ReturnStatement:
		n.ReturnValue = c.rewriteExpr(n.ReturnValue, scope, idx)
		return n

	case *ast.ExitStatement:
		n.ReturnValue = c.rewriteExpr(n.ReturnValue, scope, idx)
		return n

	case *ast.IfStatement:
		n.Condition = c.rewriteExpr(n.Condition, scope, idx)
		n.Consequence = c.rewriteStmt(n.Consequence, scope, idx)
		n.Alternative = c.rewriteStmt(n.Alternative, scope, idx)
		return n

	case *ast.CaseStatement:
		n.Expression = c.rewriteExpr(n.Expression, scope, idx)
		for _, br := range n.Cases {
			for i, v := range br.Values {
				br.Values[i] = c.rewriteExpr(v, scope, idx)
			}
			br.Statement = c.rewriteStmt(br.Statement, scope, idx)
		}
		n.Else = c.rewriteStmt(n.Else, scope, idx)
		return n

	case *ast.ForInStatement:
		n.Collection = c.rewriteExpr(n.Collection, scope, idx)
		loopScope := idx.byNode[n]
		n.Body = c.rewriteStmt(n.Body, loopScope, idx)
		return n

	case *ast.ForStatement:
		n.Start = c.rewriteExpr(n.Start, scope, idx)
		n.End = c.rewriteExpr(n.End, scope, idx)
		loopScope := idx.byNode[n]
		n.Body = c.rewriteStmt(n.Body, loopScope, idx)
		return n

	case *ast.WhileStatement:
		n.Condition = c.rewriteExpr(n.Condition, scope, idx)
		loopScope := idx.byNode[n]
		n.Body = c.rewriteStmt(n.Body, loopScope, idx)
		return n

	case *ast.RepeatStatement:
		loopScope := idx.byNode[n]
		n.Body = c.rewriteStmt(n.Body, loopScope, idx)
		n.Condition = c.rewriteExpr(n.Condition, scope, idx)
		return n

	case *ast.TryStatement:
		n.TryBlock = c.rewriteStmt(n.TryBlock, scope, idx).(*ast.BlockStatement)
		if n.ExceptClause != nil {
			for _, h := range n.ExceptClause.Handlers {
				h.Statement = c.rewriteStmt(h.Statement, scope, idx)
			}
			if n.ExceptClause.ElseBlock != nil {
				n.ExceptClause.ElseBlock = c.rewriteStmt(n.ExceptClause.ElseBlock, scope, idx).(*ast.BlockStatement)
			}
		}
		if n.FinallyClause != nil && n.FinallyClause.Block != nil {
			n.FinallyClause.Block = c.rewriteStmt(n.FinallyClause.Block, scope, idx).(*ast.BlockStatement)
		}
		return n

	case *ast.RaiseStatement:
		n.Exception = c.rewriteExpr(n.Exception, scope, idx)
		return n

	default:
		// BreakStatement, ContinueStatement, FieldDecl and other
		// closure-free leaves need no rewriting.
		return stmt
	}
}

func (c *closureConverter) rewriteStmtList(stmts []ast.Statement, scope *ClosureScope, idx *scopeIndex) []ast.Statement {
	out := make([]ast.Statement, 0, len(stmts))
	for _, s := range stmts {
		rewritten := c.rewriteStmt(s, scope, idx)
		if rewritten != nil {
			out = append(out, rewritten)
		}
	}
	return out
}

// rewriteVarDecl implements spec.md §4.4's declaration-extraction step:
// a captured name's declaration is removed from its VarDeclStatement
// and replaced by an assignment into the owning environment's field.
func (c *closureConverter) rewriteVarDecl(decl *ast.VarDeclStatement, scope *ClosureScope, idx *scopeIndex) ast.Statement {
	if scope == nil {
		return decl
	}

	var capturedDef *Definition
	remaining := decl.Names[:0:0]
	for _, name := range decl.Names {
		if def, ok := scope.DefinitionLookup[normalizeCaptureKey(name.Value)]; ok && def.IsCaptured && def.Node == decl && capturedDef == nil {
			capturedDef = def
			continue
		}
		remaining = append(remaining, name)
	}

	if capturedDef == nil {
		decl.Value = c.rewriteExpr(decl.Value, scope, idx)
		return decl
	}

	value := c.rewriteExpr(decl.Value, scope, idx)
	assign := &ast.AssignmentStatement{
		Token: decl.Token,
		Target: &ast.MemberAccessExpression{
			Object: identRef(scope.EnvironmentVariable),
			Member: &ast.Identifier{Value: capturedDef.Member.Name},
		},
		Value: value,
	}

	if len(remaining) == 0 {
		return assign
	}

	// A shared initializer across several co-declared names is already
	// unusual in this language; when some of them are captured and
	// some are not, the remaining declaration keeps its names but
	// drops the initializer rather than duplicating it.
	decl.Names = remaining
	decl.Value = nil
	return &ast.BlockStatement{Token: decl.Token, Statements: []ast.Statement{decl, assign}}
}

func normalizeCaptureKey(name string) string {
	return strings.ToLower(name)
}

// rewriteExpr mirrors rewriteStmt for expressions: it substitutes
// captured-variable reads with environment member access, "becomes"
// lambda literals into their environment's constructor call, and
// rewrites lambda-typed call sites into Run dispatch.
func (c *closureConverter) rewriteExpr(expr ast.Expression, scope *ClosureScope, idx *scopeIndex) ast.Expression {
	if expr == nil {
		return nil
	}

	switch n := expr.(type) {
	case *ast.Identifier:
		return c.rewriteIdentifier(n, scope)

	case *ast.LambdaExpression:
		pair, ok := idx.lambdaScopes[n]
		if !ok || pair[0] == nil {
			return n
		}
		lambdaScope, funcScope := pair[0], pair[1]
		if n.Body != nil {
			n.Body.Statements = c.rewriteStmtList(n.Body.Statements, funcScope, idx)
		}
		n.EnvironmentType = &ast.TypeAnnotation{Name: lambdaScope.EnvironmentObject.Name, Token: n.Token}
		if lambdaScope.Parent != nil {
			n.ParentScopeID = lambdaScope.Parent.ID
		}
		return lambdaScope.EnvironmentConstructorCall

	case *ast.CallExpression:
		n.Function = c.rewriteExpr(n.Function, scope, idx)
		for i, a := range n.Arguments {
			n.Arguments[i] = c.rewriteExpr(a, scope, idx)
		}
		if isLambdaTyped(n.Function) {
			return &ast.MethodCallExpression{
				Token:     n.Token,
				Object:    n.Function,
				Method:    &ast.Identifier{Value: "Run"},
				Arguments: n.Arguments,
				Type:      n.Type,
			}
		}
		return n

	case *ast.MethodCallExpression:
		n.Object = c.rewriteExpr(n.Object, scope, idx)
		for i, a := range n.Arguments {
			n.Arguments[i] = c.rewriteExpr(a, scope, idx)
		}
		return n

	case *ast.MemberAccessExpression:
		n.Object = c.rewriteExpr(n.Object, scope, idx)
		return n

	case *ast.NewExpression:
		for i, a := range n.Arguments {
			n.Arguments[i] = c.rewriteExpr(a, scope, idx)
		}
		return n

	case *ast.BinaryExpression:
		n.Left = c.rewriteExpr(n.Left, scope, idx)
		n.Right = c.rewriteExpr(n.Right, scope, idx)
		return n

	case *ast.UnaryExpression:
		n.Right = c.rewriteExpr(n.Right, scope, idx)
		return n

	case *ast.GroupedExpression:
		n.Expression = c.rewriteExpr(n.Expression, scope, idx)
		return n

	case *ast.IndexExpression:
		n.Left = c.rewriteExpr(n.Left, scope, idx)
		n.Index = c.rewriteExpr(n.Index, scope, idx)
		return n

	default:
		// Literals and other closure-free leaves.
		return expr
	}
}

func (c *closureConverter) rewriteIdentifier(id *ast.Identifier, scope *ClosureScope) ast.Expression {
	if scope == nil {
		return id
	}
	use := c.useByNode[id]
	if use == nil || !use.Definition.IsCaptured {
		return id
	}
	return c.referenceToCapturedMember(scope, use.Definition)
}
