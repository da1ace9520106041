package parser

import (
	"fmt"
	"strings"

	"github.com/thisizaro/MiniDB/internal/minidb"
)

var errCreateIndexUnknownKind = fmt.Errorf("at CREATE INDEX: expected BTREE or HASH")

func (p *parser) doParseCreateIndex() error {
	switch p.step {
	case stepCreateIndexOn:
		if strings.ToUpper(p.peek()) != "ON" {
			return fmt.Errorf("at CREATE INDEX: expected ON")
		}
		p.pop()
		p.step = stepCreateIndexTable
	case stepCreateIndexTable:
		tableName := p.peek()
		if !isIdentifier(tableName) {
			return fmt.Errorf("at CREATE INDEX: expected table name")
		}
		p.TableName = tableName
		p.pop()
		p.step = stepCreateIndexOpeningParens
	case stepCreateIndexOpeningParens:
		if p.peek() != "(" {
			return fmt.Errorf("at CREATE INDEX: expected opening parens")
		}
		p.pop()
		p.step = stepCreateIndexColumn
	case stepCreateIndexColumn:
		identifier := p.peek()
		if !isIdentifier(identifier) {
			return fmt.Errorf("at CREATE INDEX: expected column name")
		}
		p.IndexColumn = identifier
		p.pop()
		p.step = stepCreateIndexClosingParens
	case stepCreateIndexClosingParens:
		if p.peek() != ")" {
			return fmt.Errorf("at CREATE INDEX: expected closing parens")
		}
		p.pop()
		// USING clause is optional, default is a btree index
		p.IndexKind = minidb.BTreeIndexKind
		p.step = stepCreateIndexUsing
	case stepCreateIndexUsing:
		if strings.ToUpper(p.peek()) != "USING" {
			p.step = stepStatementEnd
			return nil
		}
		p.pop()
		p.step = stepCreateIndexKind
	case stepCreateIndexKind:
		kind, ok := minidb.IndexKindFromString(p.peek())
		if !ok {
			return errCreateIndexUnknownKind
		}
		p.IndexKind = kind
		p.pop()
		p.step = stepStatementEnd
	}
	return nil
}

func (p *parser) doParseDropIndex() error {
	switch p.step {
	case stepDropIndexOn:
		if strings.ToUpper(p.peek()) != "ON" {
			return fmt.Errorf("at DROP INDEX: expected ON")
		}
		p.pop()
		p.step = stepDropIndexTable
	case stepDropIndexTable:
		tableName := p.peek()
		if !isIdentifier(tableName) {
			return fmt.Errorf("at DROP INDEX: expected table name")
		}
		p.TableName = tableName
		p.pop()
		p.step = stepDropIndexOpeningParens
	case stepDropIndexOpeningParens:
		if p.peek() != "(" {
			return fmt.Errorf("at DROP INDEX: expected opening parens")
		}
		p.pop()
		p.step = stepDropIndexColumn
	case stepDropIndexColumn:
		identifier := p.peek()
		if !isIdentifier(identifier) {
			return fmt.Errorf("at DROP INDEX: expected column name")
		}
		p.IndexColumn = identifier
		p.pop()
		p.step = stepDropIndexClosingParens
	case stepDropIndexClosingParens:
		if p.peek() != ")" {
			return fmt.Errorf("at DROP INDEX: expected closing parens")
		}
		p.pop()
		p.step = stepStatementEnd
	}
	return nil
}
