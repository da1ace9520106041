package parser

import (
	"fmt"
	"strings"
)

var (
	errNoRowsToInsert                = fmt.Errorf("at INSERT INTO: need at least one row to insert")
	errInsertFieldValueCountMismatch = fmt.Errorf("at INSERT INTO: value count doesn't match field count")
	errInsertNoFields                = fmt.Errorf("at INSERT INTO: expected at least one field to insert")
)

func (p *parser) doParseInsert() error {
	switch p.step {
	case stepInsertTable:
		tableName := p.peek()
		if !isIdentifier(tableName) {
			return fmt.Errorf("at INSERT INTO: expected table name")
		}
		p.TableName = tableName
		p.pop()
		p.step = stepInsertFieldsOrValues
	case stepInsertFieldsOrValues:
		// The field list is optional, values are positional without it
		switch {
		case p.peek() == "(":
			p.pop()
			p.step = stepInsertFields
		case strings.ToUpper(p.peek()) == "VALUES":
			p.pop()
			p.step = stepInsertValuesOpeningParens
		default:
			return fmt.Errorf("at INSERT INTO: expected field list or 'VALUES'")
		}
	case stepInsertFields:
		identifier := p.peek()
		if !isIdentifier(identifier) {
			return errInsertNoFields
		}
		p.Fields = append(p.Fields, identifier)
		p.pop()
		p.step = stepInsertFieldsCommaOrClosingParens
	case stepInsertFieldsCommaOrClosingParens:
		commaOrClosingParens := p.peek()
		if commaOrClosingParens != "," && commaOrClosingParens != ")" {
			return fmt.Errorf("at INSERT INTO: expected comma or closing parens")
		}
		p.pop()
		if commaOrClosingParens == "," {
			p.step = stepInsertFields
			return nil
		}
		p.step = stepInsertValuesRWord
	case stepInsertValuesRWord:
		if strings.ToUpper(p.peek()) != "VALUES" {
			return fmt.Errorf("at INSERT INTO: expected 'VALUES'")
		}
		p.pop()
		p.step = stepInsertValuesOpeningParens
	case stepInsertValuesOpeningParens:
		if p.peek() != "(" {
			return fmt.Errorf("at INSERT INTO: expected opening parens")
		}
		p.Inserts = append(p.Inserts, nil)
		p.pop()
		p.step = stepInsertValues
	case stepInsertValues:
		value, ln := p.peekValue()
		if ln == 0 {
			return fmt.Errorf("at INSERT INTO: expected quoted, numeric or NULL value")
		}
		p.Inserts[len(p.Inserts)-1] = append(p.Inserts[len(p.Inserts)-1], value)
		p.pop()
		p.step = stepInsertValuesCommaOrClosingParens
	case stepInsertValuesCommaOrClosingParens:
		commaOrClosingParens := p.peek()
		if commaOrClosingParens != "," && commaOrClosingParens != ")" {
			return fmt.Errorf("at INSERT INTO: expected comma or closing parens")
		}
		p.pop()
		if commaOrClosingParens == "," {
			p.step = stepInsertValues
			return nil
		}
		if len(p.Fields) > 0 && len(p.Inserts[len(p.Inserts)-1]) != len(p.Fields) {
			return errInsertFieldValueCountMismatch
		}
		p.step = stepInsertValuesCommaBeforeOpeningParens
	case stepInsertValuesCommaBeforeOpeningParens:
		commaOrEnd := p.peek()
		if commaOrEnd == ";" || len(commaOrEnd) == 0 {
			p.step = stepStatementEnd
			return nil
		}
		if commaOrEnd != "," {
			return fmt.Errorf("at INSERT INTO: expected comma")
		}
		p.pop()
		p.step = stepInsertValuesOpeningParens
	}
	return nil
}
