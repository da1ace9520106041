package parser

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/thisizaro/MiniDB/internal/minidb"
)

var (
	errInvalidStatementKind = fmt.Errorf("invalid statement kind")
	errEmptyStatementKind   = fmt.Errorf("statement kind cannot be empty")
	errEmptyTableName       = fmt.Errorf("table name cannot be empty")
	errEmptyIndexColumn     = fmt.Errorf("index column cannot be empty")
)

var reservedWords = []string{
	// operators
	"(", ")", ">=", "<=", "!=", ",", "=", ">", "<",
	// column types
	"INTEGER", "TEXT", "REAL", "BLOB",
	// statement types
	"CREATE TABLE", "DROP TABLE", "CREATE INDEX", "DROP INDEX",
	"SELECT", "INSERT INTO", "VALUES", "UPDATE", "DELETE FROM",
	// statement other
	"*", "PRIMARY KEY", "NOT NULL", "UNIQUE", "NULL",
	"WHERE", "FROM", "SET", "AND", "ON", "USING", "BTREE", "HASH",
	";",
}

type step int

const (
	stepBeginning step = iota + 1
	stepCreateTableName
	stepCreateTableOpeningParens
	stepCreateTableColumn
	stepCreateTableColumnDef
	stepCreateTableColumnFlags
	stepDropTableName
	stepCreateIndexOn
	stepCreateIndexTable
	stepCreateIndexOpeningParens
	stepCreateIndexColumn
	stepCreateIndexClosingParens
	stepCreateIndexUsing
	stepCreateIndexKind
	stepDropIndexOn
	stepDropIndexTable
	stepDropIndexOpeningParens
	stepDropIndexColumn
	stepDropIndexClosingParens
	stepInsertTable
	stepInsertFieldsOrValues
	stepInsertFields
	stepInsertFieldsCommaOrClosingParens
	stepInsertValuesRWord
	stepInsertValuesOpeningParens
	stepInsertValues
	stepInsertValuesCommaOrClosingParens
	stepInsertValuesCommaBeforeOpeningParens
	stepSelectField
	stepSelectComma
	stepSelectFrom
	stepSelectFromTable
	stepUpdateTable
	stepUpdateSet
	stepUpdateField
	stepUpdateEquals
	stepUpdateValue
	stepUpdateCommaOrWhere
	stepDeleteFromTable
	stepWhere
	stepWhereField
	stepWhereOperator
	stepWhereValue
	stepWhereAnd
	stepStatementEnd
)

type parser struct {
	minidb.Statement
	i               int // where we are in the query
	sql             string
	step            step
	nextUpdateField string
}

func New() *parser {
	return new(parser)
}

func (p *parser) Parse(ctx context.Context, sql string) ([]minidb.Statement, error) {
	p.reset()
	p.sql = strings.TrimSpace(sql)

	statements, err := p.doParse()

	p.logError(err)
	return statements, err
}

func (p *parser) reset() {
	p.Statement = minidb.Statement{}
	p.sql = ""
	p.step = stepBeginning
	p.i = 0
	p.nextUpdateField = ""
}

func (p *parser) doParse() ([]minidb.Statement, error) {
	var statements []minidb.Statement
	for p.i < len(p.sql) {
		switch p.step {
		// -----------------
		// QUERY TYPE
		//------------------
		case stepBeginning:
			switch strings.ToUpper(p.peek()) {
			case "CREATE TABLE":
				p.Kind = minidb.CreateTable
				p.pop()
				p.step = stepCreateTableName
			case "DROP TABLE":
				p.Kind = minidb.DropTable
				p.pop()
				p.step = stepDropTableName
			case "CREATE INDEX":
				p.Kind = minidb.CreateIndex
				p.pop()
				p.step = stepCreateIndexOn
			case "DROP INDEX":
				p.Kind = minidb.DropIndex
				p.pop()
				p.step = stepDropIndexOn
			case "SELECT":
				p.Kind = minidb.Select
				p.pop()
				p.step = stepSelectField
			case "INSERT INTO":
				p.Kind = minidb.Insert
				p.pop()
				p.step = stepInsertTable
			case "UPDATE":
				p.Kind = minidb.Update
				p.pop()
				p.step = stepUpdateTable
			case "DELETE FROM":
				p.Kind = minidb.Delete
				p.pop()
				p.step = stepDeleteFromTable
			default:
				return statements, errInvalidStatementKind
			}
		// -----------------
		// CREATE TABLE / DROP TABLE
		//------------------
		case stepCreateTableName,
			stepCreateTableOpeningParens,
			stepCreateTableColumn,
			stepCreateTableColumnDef,
			stepCreateTableColumnFlags:
			if err := p.doParseCreateTable(); err != nil {
				return statements, err
			}
		case stepDropTableName:
			if err := p.doParseDropTable(); err != nil {
				return statements, err
			}
		// -----------------
		// CREATE INDEX / DROP INDEX
		//------------------
		case stepCreateIndexOn,
			stepCreateIndexTable,
			stepCreateIndexOpeningParens,
			stepCreateIndexColumn,
			stepCreateIndexClosingParens,
			stepCreateIndexUsing,
			stepCreateIndexKind:
			if err := p.doParseCreateIndex(); err != nil {
				return statements, err
			}
		case stepDropIndexOn,
			stepDropIndexTable,
			stepDropIndexOpeningParens,
			stepDropIndexColumn,
			stepDropIndexClosingParens:
			if err := p.doParseDropIndex(); err != nil {
				return statements, err
			}
		// -----------------
		// INSERT INTO
		//------------------
		case stepInsertTable,
			stepInsertFieldsOrValues,
			stepInsertFields,
			stepInsertFieldsCommaOrClosingParens,
			stepInsertValuesRWord,
			stepInsertValuesOpeningParens,
			stepInsertValues,
			stepInsertValuesCommaOrClosingParens,
			stepInsertValuesCommaBeforeOpeningParens:
			if err := p.doParseInsert(); err != nil {
				return statements, err
			}
		// -----------------
		// SELECT
		//------------------
		case stepSelectField,
			stepSelectComma,
			stepSelectFrom,
			stepSelectFromTable:
			if err := p.doParseSelect(); err != nil {
				return statements, err
			}
		// -----------------
		// UPDATE
		//------------------
		case stepUpdateTable,
			stepUpdateSet,
			stepUpdateField,
			stepUpdateEquals,
			stepUpdateValue,
			stepUpdateCommaOrWhere:
			if err := p.doParseUpdate(); err != nil {
				return statements, err
			}
		// -----------------
		// DELETE FROM
		//------------------
		case stepDeleteFromTable:
			if err := p.doParseDelete(); err != nil {
				return statements, err
			}
		// -----------------
		// WHERE
		//------------------
		case stepWhere,
			stepWhereField,
			stepWhereOperator,
			stepWhereValue,
			stepWhereAnd:
			if err := p.doParseWhere(); err != nil {
				return statements, err
			}
		case stepStatementEnd:
			semicolon := p.peek()
			if semicolon != ";" && len(semicolon) != 0 {
				return statements, fmt.Errorf("expected semicolon")
			}
			if semicolon == ";" {
				p.pop()
				if err := p.validate(p.Statement); err != nil {
					return nil, err
				}
				statements = append(statements, p.Statement)
				if p.i < len(p.sql)-1 {
					p.step = stepBeginning
					p.Statement = minidb.Statement{}
					p.nextUpdateField = ""
				} else {
					return statements, nil
				}
			}
		}
	}

	if p.step != stepStatementEnd {
		if err := p.validate(p.Statement); err != nil {
			return nil, err
		}
		statements = append(statements, p.Statement)
	}

	return statements, nil
}

func (p *parser) peek() string {
	peeked, _ := p.peekWithLength()
	return peeked
}

func (p *parser) pop() string {
	peeked, ln := p.peekWithLength()
	p.i += ln
	p.popWhitespace()
	return peeked
}

// popWhitespace skips whitespace between tokens. Whitespace inside
// quoted string literals is preserved by the quoted string scan.
func (p *parser) popWhitespace() {
	for ; p.i < len(p.sql) && unicode.IsSpace(rune(p.sql[p.i])); p.i++ {
	}
}

func (p *parser) peekWithLength() (string, int) {
	if p.i >= len(p.sql) {
		return "", 0
	}
	// First check for reserved words
	for _, rWord := range reservedWords {
		token := strings.ToUpper(p.sql[p.i:min(len(p.sql), p.i+len(rWord))])
		if token == rWord {
			return token, len(token)
		}
	}
	// Next for quoted string literals
	if p.sql[p.i] == '\'' {
		return p.peekQuotedStringWithLength()
	}
	// Next for numbers (floats or integers)
	if unicode.IsDigit(rune(p.sql[p.i])) || p.sql[p.i] == '-' {
		_, ln := p.peekNumberWithLength()
		if ln > 0 {
			return p.sql[p.i : p.i+ln], ln
		}
	}
	// And finally for identifiers
	return p.peekIdentifierWithLength()
}

func (p *parser) peekQuotedStringWithLength() (string, int) {
	if len(p.sql) < p.i || p.sql[p.i] != '\'' {
		return "", 0
	}
	for i := p.i + 1; i < len(p.sql); i++ {
		if p.sql[i] == '\'' && p.sql[i-1] != '\\' {
			return p.sql[p.i+1 : i], len(p.sql[p.i+1:i]) + 2 // +2 for the two quotes
		}
	}
	return "", 0
}

func (p *parser) peekNumberWithLength() (float64, int) {
	start := p.i
	i := p.i
	if i < len(p.sql) && p.sql[i] == '-' {
		i += 1
	}
	if i >= len(p.sql) || !unicode.IsDigit(rune(p.sql[i])) {
		return 0.0, 0
	}
	for ; i < len(p.sql); i++ {
		if unicode.IsDigit(rune(p.sql[i])) || p.sql[i] == '.' {
			continue
		}
		break
	}
	floatValue, err := strconv.ParseFloat(p.sql[start:i], 64)
	if err != nil {
		return 0.0, 0
	}
	return floatValue, i - start
}

// peekValue peeks a literal value, converting it to the engine's tagged
// value type. Integral numbers come back as INTEGER, fractional ones as
// REAL, quoted strings as TEXT.
func (p *parser) peekValue() (minidb.Value, int) {
	if strings.ToUpper(p.peek()) == "NULL" {
		return minidb.NewNull(), len("NULL")
	}
	number, ln := p.peekNumberWithLength()
	if ln > 0 {
		if !strings.Contains(p.sql[p.i:p.i+ln], ".") {
			return minidb.NewInteger(int64(number)), ln
		}
		return minidb.NewReal(number), ln
	}
	quotedValue, ln := p.peekQuotedStringWithLength()
	if ln > 0 {
		return minidb.NewText(quotedValue), ln
	}
	return minidb.Value{}, 0
}

var identifierCharRegexp = regexp.MustCompile(`[\"a-zA-Z_0-9]`)

func (p *parser) peekIdentifierWithLength() (string, int) {
	var i int
	for i = p.i; i < len(p.sql); i++ {
		if !identifierCharRegexp.MatchString(string(p.sql[i])) {
			break
		}
	}
	identifier := p.sql[p.i:i]
	return strings.Trim(identifier, "\""), len(identifier)
}

func (p *parser) validate(stmt minidb.Statement) error {
	if stmt.Kind == 0 {
		return errEmptyStatementKind
	}
	if p.step == stepWhereField && len(stmt.Conditions) == 0 {
		return errEmptyWhereClause
	}
	if stmt.TableName == "" {
		return errEmptyTableName
	}
	switch stmt.Kind {
	case minidb.CreateTable:
		if len(stmt.Columns) == 0 {
			return errCreateTableNoColumns
		}
		primaryKeys := 0
		for _, aColumn := range stmt.Columns {
			if aColumn.PrimaryKey {
				primaryKeys += 1
			}
		}
		if primaryKeys > 1 {
			return errCreateTableMultiplePrimaryKeys
		}
	case minidb.CreateIndex, minidb.DropIndex:
		if stmt.IndexColumn == "" {
			return errEmptyIndexColumn
		}
	case minidb.Insert:
		if len(stmt.Inserts) == 0 {
			return errNoRowsToInsert
		}
		if len(stmt.Fields) > 0 {
			for _, values := range stmt.Inserts {
				if len(values) != len(stmt.Fields) {
					return errInsertFieldValueCountMismatch
				}
			}
		}
	case minidb.Update:
		if len(stmt.Updates) == 0 {
			return errNoFieldsToUpdate
		}
	case minidb.Select:
		if len(stmt.Fields) == 0 {
			return errSelectWithoutFields
		}
	}
	for _, aCondition := range stmt.Conditions {
		if aCondition.Operator == 0 {
			return errWhereWithoutOperator
		}
		if aCondition.Field == "" {
			return fmt.Errorf("at WHERE: condition with empty field")
		}
	}
	return nil
}

func (p *parser) logError(err error) {
	if err == nil {
		return
	}
	fmt.Println(p.sql)
	fmt.Println(strings.Repeat(" ", p.i) + "^")
	fmt.Println(err)
}

var identifierRegexp = regexp.MustCompile(`(\"[a-zA-Z_][a-zA-Z_0-9]*\"|[a-zA-Z_][a-zA-Z_0-9]*)`)

func isIdentifier(s string) bool {
	for _, rw := range reservedWords {
		if strings.ToUpper(s) == rw {
			return false
		}
	}
	return identifierRegexp.MatchString(s)
}

func isIdentifierOrAsterisk(s string) bool {
	return isIdentifier(s) || s == "*"
}
