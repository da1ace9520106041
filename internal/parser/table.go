package parser

import (
	"fmt"
	"strings"

	"github.com/thisizaro/MiniDB/internal/minidb"
)

var (
	errCreateTableNoColumns           = fmt.Errorf("at CREATE TABLE: no columns specified")
	errCreateTableMultiplePrimaryKeys = fmt.Errorf("at CREATE TABLE: multiple primary keys specified")
)

func (p *parser) doParseCreateTable() error {
	switch p.step {
	case stepCreateTableName:
		tableName := p.peek()
		if !isIdentifier(tableName) {
			return fmt.Errorf("at CREATE TABLE: expected table name")
		}
		p.TableName = tableName
		p.pop()
		p.step = stepCreateTableOpeningParens
	case stepCreateTableOpeningParens:
		openingParens := p.peek()
		if openingParens != "(" {
			return fmt.Errorf("at CREATE TABLE: expected opening parens")
		}
		p.pop()
		p.step = stepCreateTableColumn
	case stepCreateTableColumn:
		identifier := p.peek()
		if !isIdentifier(identifier) {
			return errCreateTableNoColumns
		}
		p.Columns = append(p.Columns, minidb.Column{Name: identifier})
		p.pop()
		p.step = stepCreateTableColumnDef
	case stepCreateTableColumnDef:
		columnKind, ok := minidb.ColumnKindFromString(p.peek())
		if !ok {
			return fmt.Errorf("at CREATE TABLE: unknown column type '%s'", p.peek())
		}
		p.Columns[len(p.Columns)-1].Kind = columnKind
		p.pop()
		p.step = stepCreateTableColumnFlags
	case stepCreateTableColumnFlags:
		switch strings.ToUpper(p.peek()) {
		case "PRIMARY KEY":
			p.Columns[len(p.Columns)-1].PrimaryKey = true
			p.pop()
		case "NOT NULL":
			p.Columns[len(p.Columns)-1].NotNull = true
			p.pop()
		case "UNIQUE":
			p.Columns[len(p.Columns)-1].Unique = true
			p.pop()
		case ",":
			p.pop()
			p.step = stepCreateTableColumn
		case ")":
			p.pop()
			p.step = stepStatementEnd
		default:
			return fmt.Errorf("at CREATE TABLE: expected column flag, comma or closing parens")
		}
	}
	return nil
}

func (p *parser) doParseDropTable() error {
	tableName := p.peek()
	if !isIdentifier(tableName) {
		return fmt.Errorf("at DROP TABLE: expected table name")
	}
	p.TableName = tableName
	p.pop()
	p.step = stepStatementEnd
	return nil
}
