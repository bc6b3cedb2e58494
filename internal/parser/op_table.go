package parser

import (
	"calc/internal/ir"
	"calc/internal/token"
)

// Таблица приоритетов для бинарных операторов
// Чем больше число, тем выше приоритет
const (
	precAdditive       = 1 // + -
	precMultiplicative = 2 // * /
)

// binaryOp возвращает оператор и его приоритет; все операторы левоассоциативны.
// Для не-операторов приоритет -1.
func binaryOp(kind token.Kind) (ir.Op, int) {
	switch kind {
	case token.Plus:
		return ir.OpAdd, precAdditive
	case token.Minus:
		return ir.OpSubtract, precAdditive
	case token.Star:
		return ir.OpMultiply, precMultiplicative
	case token.Slash:
		return ir.OpDivide, precMultiplicative
	default:
		return 0, -1
	}
}
