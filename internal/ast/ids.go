package ast

type (
	StmtID uint32
	ExprID uint32
)

const (
	NoStmtID StmtID = 0
	NoExprID ExprID = 0
)

func (id StmtID) IsValid() bool { return id != NoStmtID }
func (id ExprID) IsValid() bool { return id != NoExprID }
