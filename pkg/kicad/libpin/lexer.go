package libpin

import (
	"fmt"
	"strings"

	"github.com/alecthomas/participle/v2/lexer"
)

// RecordLexer splits a pin record into whitespace separated fields.
var RecordLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Whitespace", Pattern: `[ \t\r\n]+`},
	{Name: "Field", Pattern: `[^ \t\r\n]+`},
})

var fieldToken = RecordLexer.Symbols()["Field"]

// field is one token of a record with its 1-based column.
type field struct {
	value  string
	column int
}

func splitFields(line string) ([]field, error) {
	lex, err := RecordLexer.Lex("", strings.NewReader(line))
	if err != nil {
		return nil, fmt.Errorf("failed to start lexer: %w", err)
	}

	var fields []field
	for {
		tok, err := lex.Next()
		if err != nil {
			return nil, err
		}
		if tok.EOF() {
			return fields, nil
		}
		if tok.Type != fieldToken {
			continue
		}
		fields = append(fields, field{value: tok.Value, column: tok.Pos.Column})
	}
}
