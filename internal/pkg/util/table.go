package util

import (
	"fmt"
	"io"
	"strings"

	"github.com/thisizaro/MiniDB/internal/minidb"
)

const (
	truncatedStringEnd = " ..."
	columnWidth        = 20
	maxLength          = 40
)

func PrintTableHeader(w io.Writer, columns []string) {
	tableWidth := computeTableWidth(columns)

	// add top horizontal border
	fmt.Fprintf(w, "+%s+\n", strings.Repeat("-", tableWidth-2))

	for i, name := range columns {
		// pad with spaces on the right rather than the left (left-justify the field)
		fmt.Fprintf(w, "| %-*s ", columnWidth, name)
		if i == len(columns)-1 {
			fmt.Fprintf(w, "|\n")
		}
	}

	// add horizontal border bellow the header row
	fmt.Fprintf(w, "+%s+\n", strings.Repeat("-", tableWidth-2))
}

func PrintTableRow(w io.Writer, values []minidb.Value) {
	for _, aValue := range values {
		aStringValue := aValue.String()
		r := []rune(aStringValue)
		if len(r) >= maxLength-len(truncatedStringEnd) {
			aStringValue = string(r[0:maxLength-len(truncatedStringEnd)]) + truncatedStringEnd
		}
		fmt.Fprintf(w, "| %-*s ", columnWidth, aStringValue)
	}
	fmt.Fprintf(w, "|\n")
}

func PrintTableEnd(w io.Writer, columns []string) {
	fmt.Fprintf(w, "+%s+\n", strings.Repeat("-", computeTableWidth(columns)-2))
}

func computeTableWidth(columns []string) int {
	// left border is | followed by a space, right border is space followed
	// by | (2+2=4), then between each column we have space, |, space (3)
	return 4 + (len(columns)-1)*3 + len(columns)*columnWidth
}
