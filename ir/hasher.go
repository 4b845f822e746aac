package ir

import "github.com/benbjohnson/immutable"

var _ immutable.Hasher[Expr] = ExprHasher{}

// ExprHasher lets expressions key immutable maps and sets, by structure
type ExprHasher struct{}

func (ExprHasher) Hash(e Expr) uint32 {
	h := e.Hash()
	return uint32(h) ^ uint32(h>>32)
}

func (ExprHasher) Equal(a, b Expr) bool { return Equal(a, b) }
