package spreadsheet

import (
	"errors"
	"testing"
)

func parseExpression(expression string) (ASTNode, error) {
	lexer := NewLexer(expression)
	tokens, err := lexer.Tokenize()
	if err != nil {
		return nil, err
	}

	parser := NewParser(tokens)
	return parser.Parse()
}

func TestParserBasicFormulas(t *testing.T) {
	validFormulas := []string{
		"1",
		"1+2",
		"A1",
		"ZZ100",
		"1.5",
		".5",
		"1E+20",
		"1.5E-3",
		"1E5",
		"2.5E+2",
		"-1",
		"--1",
		"1--2",
		"2*-3",
		"2^-1",
		"+1",
		"1*+2",
		"(1)",
		"((A1))",
		"(1+2)*3",
		" 1 + 2 ",
		"A1+B2*C3/D4-E5^F6",
	}

	for _, formula := range validFormulas {
		t.Run(formula, func(t *testing.T) {
			if _, err := parseExpression(formula); err != nil {
				t.Errorf("Failed to parse valid formula %q: %v", formula, err)
			}
		})
	}
}

func TestParserInvalidFormulas(t *testing.T) {
	invalidFormulas := []string{
		"",
		"   ",
		"1+",
		"*1",
		"1*",
		"(1",
		"1)",
		"()",
		"(1+2",
		"1 2",
		"A1 B1",
		"=1",
		"SUM(1)",
		"SUM(A1:A2)",
		"A1:B2",
		`"hello"`,
		`"hello`,
		"TRUE",
		"1%",
		"1=1",
		"1<2",
		"1&2",
		"a1",
		"$A$1",
		"Sheet1!A1",
		"#REF!",
		"1+#",
		"Inf",
		"NaN",
		"1e",
		"1e5",
		"1e+5",
		"1.5e-3",
		"0x1p4",
		"{1,2}",
		"A",
		"1A",
	}

	for _, formula := range invalidFormulas {
		t.Run(formula, func(t *testing.T) {
			_, err := parseExpression(formula)
			if err == nil {
				t.Fatalf("Expected formula %q to fail but it succeeded", formula)
			}
			if !errors.Is(err, ErrFormulaSyntax) {
				t.Errorf("Formula %q: got %v, want a syntax error", formula, err)
			}
		})
	}
}

func TestParserPrettyPrint(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"1+2*3", "1+2*3"},
		{" 1 +  2 ", "1+2"},
		{"(1+2)*3", "(1+2)*3"},
		{"((1))", "1"},
		{"(1*2)+3", "1*2+3"},
		{"1-(2-3)", "1-(2-3)"},
		{"(1-2)-3", "1-2-3"},
		{"1+(2+3)", "1+(2+3)"},
		{"1/(2*3)", "1/(2*3)"},
		{"(1/2)*3", "1/2*3"},
		{"2^3^2", "2^3^2"},
		{"2^(3^2)", "2^3^2"},
		{"(2^3)^2", "(2^3)^2"},
		{"-2^2", "-2^2"},
		{"-(2^2)", "-(2^2)"},
		{"-(1+2)", "-(1+2)"},
		{"--1", "--1"},
		{"+1", "1"},
		{"1*+2", "1*2"},
		{"2*-A1", "2*-A1"},
		{"(A1)+(B2)", "A1+B2"},
		{"1.50", "1.5"},
		{"007", "7"},
		{"1E+3", "1000"},
		{"1.5E+20", "1.5E+20"},
		{"0.0001", "0.0001"},
		{"1.25E-05", "1.25E-05"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			ast, err := parseExpression(tt.input)
			if err != nil {
				t.Fatalf("parse %q: %v", tt.input, err)
			}
			if got := ast.ToString(); got != tt.expected {
				t.Errorf("ToString() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestParserRoundTrip(t *testing.T) {
	expressions := []string{
		"1+2*3",
		"(1+2)*(3-4)/5",
		"1-(2-(3-4))",
		"2^(1/2)^3",
		"-(A1+B1)^-2",
		"1E+300*1E+10",
		"1/3",
		"((A1*B1)-(C1/D1))^2",
	}

	for _, expression := range expressions {
		t.Run(expression, func(t *testing.T) {
			first, err := parseExpression(expression)
			if err != nil {
				t.Fatalf("parse %q: %v", expression, err)
			}
			printed := first.ToString()

			second, err := parseExpression(printed)
			if err != nil {
				t.Fatalf("reparse %q: %v", printed, err)
			}
			if again := second.ToString(); again != printed {
				t.Errorf("round trip %q -> %q -> %q", expression, printed, again)
			}
		})
	}
}

func TestParserPrecedence(t *testing.T) {
	tests := []struct {
		input    string
		expected float64
	}{
		{"1+2*3", 7},
		{"(1+2)*3", 9},
		{"10-4-3", 3},
		{"100/10/2", 5},
		{"2^3^2", 512},
		{"-2^2", 4},
		{"2^-1", 0.5},
		{"--3", 3},
		{"1--2", 3},
		{"2*3^2", 18},
		{"-(1+2)*2", -6},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			ast, err := parseExpression(tt.input)
			if err != nil {
				t.Fatalf("parse %q: %v", tt.input, err)
			}
			got, err := ast.Eval(mapReader{})
			if err != nil {
				t.Fatalf("Eval(%q): %v", tt.input, err)
			}
			if got != tt.expected {
				t.Errorf("Eval(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}
