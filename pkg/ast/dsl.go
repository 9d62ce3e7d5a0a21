package ast

// Identifier and literal helpers.

func ID(name string) *Identifier {
	return NewIdentifier(name)
}

func Num(value float64) *Literal {
	return NewLiteral(value, "")
}

func Str(value string) *Literal {
	return NewLiteral(value, "")
}

func Bool(value bool) *Literal {
	return NewLiteral(value, "")
}

func Null() *Literal {
	return NewLiteral(nil, "null")
}

func Tpl(text string) *TemplateLiteral {
	return NewTemplateLiteral([]string{text})
}

func This() *ThisExpression {
	return NewThisExpression()
}

func Arr(elements ...Expression) *ArrayExpression {
	return NewArrayExpression(elements)
}

func Obj(props ...*Property) *ObjectExpression {
	return NewObjectExpression(props)
}

func Prop(key string, value Expression) *Property {
	return NewProperty(ID(key), value, false)
}

// Program and statement helpers.

func Prog(body ...Statement) *Program {
	return NewProgram(body)
}

func Block(body ...Statement) *BlockStatement {
	return NewBlockStatement(body)
}

func Expr(expr Expression) *ExpressionStatement {
	return NewExpressionStatement(expr)
}

func Decl(kind DeclarationKind, name string, init Expression) *VariableDeclaration {
	return NewVariableDeclaration(kind, []*VariableDeclarator{NewVariableDeclarator(ID(name), init)})
}

func Let(name string, init Expression) *VariableDeclaration {
	return Decl(DeclarationLet, name, init)
}

func Const(name string, init Expression) *VariableDeclaration {
	return Decl(DeclarationConst, name, init)
}

func Var(name string, init Expression) *VariableDeclaration {
	return Decl(DeclarationVar, name, init)
}

func Fn(name string, params []Pattern, body ...Statement) *FunctionDeclaration {
	return NewFunctionDeclaration(ID(name), params, Block(body...))
}

func FnExpr(params []Pattern, body ...Statement) *FunctionExpression {
	return NewFunctionExpression(nil, params, Block(body...))
}

func Arrow(params []Pattern, body ...Statement) *ArrowFunctionExpression {
	return NewArrowFunctionExpression(params, Block(body...), false)
}

func ArrowExpr(params []Pattern, body Expression) *ArrowFunctionExpression {
	return NewArrowFunctionExpression(params, body, true)
}

// Params builds identifier parameters.
func Params(names ...string) []Pattern {
	out := make([]Pattern, 0, len(names))
	for _, name := range names {
		out = append(out, ID(name))
	}
	return out
}

func Default(name string, value Expression) *AssignmentPattern {
	return NewAssignmentPattern(ID(name), value)
}

func Ret(argument Expression) *ReturnStatement {
	return NewReturnStatement(argument)
}

func If(test Expression, consequent, alternate Statement) *IfStatement {
	return NewIfStatement(test, consequent, alternate)
}

func While(test Expression, body ...Statement) *WhileStatement {
	return NewWhileStatement(test, Block(body...))
}

func For(init Node, test, update Expression, body ...Statement) *ForStatement {
	return NewForStatement(init, test, update, Block(body...))
}

func Break() *BreakStatement {
	return NewBreakStatement()
}

func Continue() *ContinueStatement {
	return NewContinueStatement()
}

// Expression helpers.

func Call(callee Expression, args ...Expression) *CallExpression {
	return NewCallExpression(callee, args)
}

func CallName(name string, args ...Expression) *CallExpression {
	return NewCallExpression(ID(name), args)
}

func New(callee Expression, args ...Expression) *NewExpression {
	return NewNewExpression(callee, args)
}

func Member(object Expression, name string) *MemberExpression {
	return NewMemberExpression(object, ID(name), false)
}

func Index(object, index Expression) *MemberExpression {
	return NewMemberExpression(object, index, true)
}

func Bin(op string, left, right Expression) *BinaryExpression {
	return NewBinaryExpression(op, left, right)
}

func Logical(op string, left, right Expression) *LogicalExpression {
	return NewLogicalExpression(op, left, right)
}

func Unary(op string, argument Expression) *UnaryExpression {
	return NewUnaryExpression(op, argument)
}

func Cond(test, consequent, alternate Expression) *ConditionalExpression {
	return NewConditionalExpression(test, consequent, alternate)
}

func Assign(left, right Expression) *AssignmentExpression {
	return NewAssignmentExpression("=", left, right)
}

func AssignOp(op string, left, right Expression) *AssignmentExpression {
	return NewAssignmentExpression(op, left, right)
}

func Inc(name string) *UpdateExpression {
	return NewUpdateExpression("++", false, ID(name))
}

func Dec(name string) *UpdateExpression {
	return NewUpdateExpression("--", false, ID(name))
}
