package cmd

import (
	"bytes"
	"strings"
	"testing"
)

func TestReplPersistsGlobalsAcrossLines(t *testing.T) {
	in := strings.NewReader("var a = 1;\nprint a + 1;\n")
	var out, errOut bytes.Buffer

	if err := replLoop(in, &out, &errOut, false); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if errOut.Len() != 0 {
		t.Fatalf("unexpected stderr: %s", errOut.String())
	}
	if out.String() != "2\n" {
		t.Fatalf("got %q, want \"2\\n\"", out.String())
	}
}

func TestReplEmptyLineExits(t *testing.T) {
	in := strings.NewReader("print 1;\n\nprint 2;\n")
	var out, errOut bytes.Buffer

	if err := replLoop(in, &out, &errOut, false); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.String() != "1\n" {
		t.Fatalf("got %q, expected the loop to stop before the second print", out.String())
	}
}

func TestReplErrorsDoNotEndSession(t *testing.T) {
	in := strings.NewReader("print missing;\nprint 1;\n")
	var out, errOut bytes.Buffer

	if err := replLoop(in, &out, &errOut, false); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.String() != "1\n" {
		t.Fatalf("expected the session to continue after the error, got %q", out.String())
	}
	if errOut.Len() == 0 {
		t.Fatal("expected the undefined-variable error to be reported")
	}
}

func TestReplPromptOnlyWrittenWhenRequested(t *testing.T) {
	in := strings.NewReader("print 1;\n")
	var out, errOut bytes.Buffer

	if err := replLoop(in, &out, &errOut, true); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasPrefix(out.String(), "> ") {
		t.Fatalf("expected prompt prefix, got %q", out.String())
	}
}

func TestReplREPLModePrintsBareExpressionValue(t *testing.T) {
	in := strings.NewReader("1 + 1;\n")
	var out, errOut bytes.Buffer

	if err := replLoop(in, &out, &errOut, false); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.String() != "2\n" {
		t.Fatalf("got %q, want \"2\\n\"", out.String())
	}
}
