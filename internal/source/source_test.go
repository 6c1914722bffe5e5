package source

import "testing"

func TestPush_Reindents(t *testing.T) {
	var s Source
	s.Push(`function f(a) {
			    if (a) {
			return 1;
			} else {
			        return 2;
			}
			}
			`)

	want := "function f(a) {\n" +
		"  if (a) {\n" +
		"    return 1;\n" +
		"  } else {\n" +
		"    return 2;\n" +
		"  }\n" +
		"}\n"
	if got := s.String(); got != want {
		t.Errorf("got:\n%s\nwant:\n%s", got, want)
	}
}

func TestPush_SingleLine(t *testing.T) {
	var s Source
	s.Push("let x")
	s.Push(" = 1;")
	s.Line("")
	s.Linef("let %s = %d;", "y", 2)

	want := "let x = 1;\nlet y = 2;\n"
	if got := s.String(); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
	if s.Len() != len(want) {
		t.Errorf("Len = %d", s.Len())
	}
}

func TestPush_NestedLines(t *testing.T) {
	var s Source
	s.Line("class A {")
	s.Line("m() {")
	s.Line("return 1;")
	s.Line("}")
	s.Line("}")

	want := "class A {\n  m() {\n    return 1;\n  }\n}\n"
	if got := s.String(); got != want {
		t.Errorf("got:\n%s\nwant:\n%s", got, want)
	}
}

func TestAppend(t *testing.T) {
	var a, b Source
	a.Line("let a;")
	b.Pushf("let %s;", "b")
	a.Append(&b)
	if got := a.String(); got != "let a;\nlet b;" {
		t.Errorf("got %q", got)
	}
}
