package parser

import (
	"fmt"
	"strings"
)

var errSelectWithoutFields = fmt.Errorf("at SELECT: expected field to select")

func (p *parser) doParseSelect() error {
	switch p.step {
	case stepSelectField:
		identifier := p.peek()
		if !isIdentifierOrAsterisk(identifier) {
			return errSelectWithoutFields
		}
		p.Fields = append(p.Fields, identifier)
		p.pop()
		p.step = stepSelectComma
	case stepSelectComma:
		switch strings.ToUpper(p.peek()) {
		case ",":
			p.pop()
			p.step = stepSelectField
		case "FROM":
			p.step = stepSelectFrom
		default:
			return fmt.Errorf("at SELECT: expected comma or FROM")
		}
	case stepSelectFrom:
		if strings.ToUpper(p.peek()) != "FROM" {
			return fmt.Errorf("at SELECT: expected FROM")
		}
		p.pop()
		p.step = stepSelectFromTable
	case stepSelectFromTable:
		tableName := p.peek()
		if !isIdentifier(tableName) {
			return fmt.Errorf("at SELECT: expected table name")
		}
		p.TableName = tableName
		p.pop()
		p.step = stepWhere
	}
	return nil
}
