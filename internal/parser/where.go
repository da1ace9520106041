package parser

import (
	"fmt"
	"strings"

	"github.com/thisizaro/MiniDB/internal/minidb"
)

var (
	errEmptyWhereClause     = fmt.Errorf("at WHERE: empty WHERE clause")
	errWhereWithoutOperator = fmt.Errorf("at WHERE: condition without operator")
)

func (p *parser) doParseWhere() error {
	switch p.step {
	case stepWhere:
		switch strings.ToUpper(p.peek()) {
		case "WHERE":
			p.pop()
			p.step = stepWhereField
		case ";", "":
			p.step = stepStatementEnd
		default:
			return fmt.Errorf("at WHERE: expected WHERE or end of statement")
		}
	case stepWhereField:
		identifier := p.peek()
		if !isIdentifier(identifier) {
			return fmt.Errorf("at WHERE: expected field name")
		}
		p.Conditions = append(p.Conditions, minidb.Condition{Field: identifier})
		p.pop()
		p.step = stepWhereOperator
	case stepWhereOperator:
		currentCondition := &p.Conditions[len(p.Conditions)-1]
		switch p.peek() {
		case "=":
			currentCondition.Operator = minidb.Eq
		case "!=":
			currentCondition.Operator = minidb.Ne
		case "<":
			currentCondition.Operator = minidb.Lt
		case "<=":
			currentCondition.Operator = minidb.Le
		case ">":
			currentCondition.Operator = minidb.Gt
		case ">=":
			currentCondition.Operator = minidb.Ge
		default:
			return errWhereWithoutOperator
		}
		p.pop()
		p.step = stepWhereValue
	case stepWhereValue:
		value, ln := p.peekValue()
		if ln == 0 {
			return fmt.Errorf("at WHERE: expected quoted, numeric or NULL value")
		}
		p.Conditions[len(p.Conditions)-1].Value = value
		p.pop()
		p.step = stepWhereAnd
	case stepWhereAnd:
		switch strings.ToUpper(p.peek()) {
		case "AND":
			p.pop()
			p.step = stepWhereField
		case ";", "":
			p.step = stepStatementEnd
		default:
			return fmt.Errorf("at WHERE: expected AND or end of statement")
		}
	}
	return nil
}
