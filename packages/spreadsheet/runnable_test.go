package spreadsheet

import (
	"errors"
	"strings"
	"testing"
)

type lineRecorder struct {
	lines []string
}

func (l *lineRecorder) printLn(line string) {
	l.lines = append(l.lines, line)
}

func TestRunnableSheetChain(t *testing.T) {
	rec := &lineRecorder{}
	r := NewRunnableSheet(rec.printLn).
		Set("A1", "10").
		Set("A2", "=A1*2").
		Set("B1", "'=not a formula").
		Log("A2").
		Log("C9").
		LogText("B1").
		LogText("A2").
		CheckError()

	if r.Error() != nil {
		t.Fatalf("unexpected error: %v", r.Error())
	}
	if got := r.Value("A2"); got != 20.0 {
		t.Errorf("Value(A2) = %v, want 20", got)
	}
	if got := r.Value("C9"); got != nil {
		t.Errorf("Value(C9) = %v, want nil", got)
	}
	if got := r.Value("B1"); got != "=not a formula" {
		t.Errorf("Value(B1) = %v, want the escaped text", got)
	}
	if got := r.Text("A2"); got != "=A1*2" {
		t.Errorf("Text(A2) = %q, want %q", got, "=A1*2")
	}

	expected := []string{
		"A2: 20",
		"C9: <empty>",
		"B1: '=not a formula",
		"A2: =A1*2",
		"No errors",
	}
	if strings.Join(rec.lines, "\n") != strings.Join(expected, "\n") {
		t.Errorf("logged %q, want %q", rec.lines, expected)
	}
}

func TestRunnableSheetErrors(t *testing.T) {
	rec := &lineRecorder{}
	r := NewRunnableSheet(rec.printLn).
		Set("A1", "=B1").
		Set("B1", "=A1").
		Set("C1", "5").
		CheckError()

	if !errors.Is(r.Error(), ErrCircularDependency) {
		t.Fatalf("Error() = %v, want a circular dependency", r.Error())
	}
	if len(rec.lines) != 1 || !strings.HasPrefix(rec.lines[0], "ERROR: ") {
		t.Errorf("logged %q, want a single ERROR line", rec.lines)
	}

	// the chain stopped at the failure
	if cell, _ := r.Sheet().GetCell(ParsePosition("C1")); cell != nil {
		t.Errorf("C1 was set after the chain failed")
	}

	r.Reset().Set("C1", "5")
	if r.Error() != nil || r.Value("C1") != 5.0 {
		t.Errorf("after Reset: err=%v C1=%v", r.Error(), r.Value("C1"))
	}
}

func TestRunnableSheetInvalidAddress(t *testing.T) {
	for _, address := range []string{"", "A0", "a1", "XFE1", "A16385", "1A"} {
		r := NewRunnableSheet(func(string) {}).Set(address, "1")
		if !errors.Is(r.Error(), ErrInvalidPosition) {
			t.Errorf("Set(%q): got %v, want an invalid position", address, r.Error())
		}
	}

	r := NewRunnableSheet(func(string) {})
	if got := r.Value("nope"); got != nil {
		t.Errorf("Value(nope) = %v, want nil", got)
	}
	if !errors.Is(r.Error(), ErrInvalidPosition) {
		t.Errorf("Value(nope) left error %v", r.Error())
	}
}

func TestRunnableSheetHelpers(t *testing.T) {
	custom := errors.New("handled")

	r := NewRunnableSheet(func(string) {}).
		Set("A1", "=1+").
		Then(func(r *RunnableSheet) *RunnableSheet {
			t.Errorf("Then ran after a failure")
			return r
		}).
		OnError(func(err error) error {
			if !errors.Is(err, ErrFormulaSyntax) {
				t.Errorf("OnError got %v, want a syntax error", err)
			}
			return custom
		})

	if r.Error() != custom {
		t.Errorf("Error() = %v, want the replaced error", r.Error())
	}

	defer func() {
		if recover() == nil {
			t.Errorf("Must did not panic")
		}
	}()
	r.Must()
}

func TestRunnableSheetPrint(t *testing.T) {
	var values, texts strings.Builder
	r := NewRunnableSheet(func(string) {}).
		Set("A1", "2").
		Set("B2", "=A1/0").
		Clear("A1").
		Set("A1", "3").
		PrintValues(&values).
		PrintTexts(&texts)

	if r.Error() != nil {
		t.Fatalf("unexpected error: %v", r.Error())
	}
	if got := values.String(); got != "3\t\n\t#DIV/0!\n" {
		t.Errorf("PrintValues = %q", got)
	}
	if got := texts.String(); got != "3\t\n\t=A1/0\n" {
		t.Errorf("PrintTexts = %q", got)
	}
}
