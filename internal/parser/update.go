package parser

import (
	"fmt"
	"strings"

	"github.com/thisizaro/MiniDB/internal/minidb"
)

var errNoFieldsToUpdate = fmt.Errorf("at UPDATE: expected at least one field to update")

func (p *parser) doParseUpdate() error {
	switch p.step {
	case stepUpdateTable:
		tableName := p.peek()
		if !isIdentifier(tableName) {
			return fmt.Errorf("at UPDATE: expected table name")
		}
		p.TableName = tableName
		p.pop()
		p.step = stepUpdateSet
	case stepUpdateSet:
		if strings.ToUpper(p.peek()) != "SET" {
			return fmt.Errorf("at UPDATE: expected 'SET'")
		}
		p.pop()
		p.step = stepUpdateField
	case stepUpdateField:
		identifier := p.peek()
		if !isIdentifier(identifier) {
			return errNoFieldsToUpdate
		}
		p.nextUpdateField = identifier
		p.pop()
		p.step = stepUpdateEquals
	case stepUpdateEquals:
		if p.peek() != "=" {
			return fmt.Errorf("at UPDATE: expected '='")
		}
		p.pop()
		p.step = stepUpdateValue
	case stepUpdateValue:
		value, ln := p.peekValue()
		if ln == 0 {
			return fmt.Errorf("at UPDATE: expected quoted, numeric or NULL value")
		}
		if p.Updates == nil {
			p.Updates = make(map[string]minidb.Value)
		}
		p.Updates[p.nextUpdateField] = value
		p.nextUpdateField = ""
		p.pop()
		p.step = stepUpdateCommaOrWhere
	case stepUpdateCommaOrWhere:
		switch strings.ToUpper(p.peek()) {
		case ",":
			p.pop()
			p.step = stepUpdateField
		case "WHERE":
			p.step = stepWhere
		case ";", "":
			p.step = stepStatementEnd
		default:
			return fmt.Errorf("at UPDATE: expected comma, WHERE or end of statement")
		}
	}
	return nil
}
