package runtime

import "testing"

func TestTruthyOnlyNilAndFalseAreFalsy(t *testing.T) {
	falsy := []Value{Nil, Bool(false)}
	for _, v := range falsy {
		if Truthy(v) {
			t.Errorf("expected %v to be falsy", v)
		}
	}

	truthy := []Value{Bool(true), Number(0), Number(-1), String(""), String("x")}
	for _, v := range truthy {
		if !Truthy(v) {
			t.Errorf("expected %v to be truthy", v)
		}
	}
}

func TestEqualRequiresSameTag(t *testing.T) {
	cases := []struct {
		a, b Value
		want bool
	}{
		{Number(1), Number(1), true},
		{Number(1), Number(2), false},
		{Number(1), String("1"), false},
		{String("a"), String("a"), true},
		{Bool(true), Bool(true), true},
		{Nil, Nil, true},
		{Nil, Bool(false), false},
	}
	for _, c := range cases {
		if got := Equal(c.a, c.b); got != c.want {
			t.Errorf("Equal(%v, %v) = %v, want %v", c.a, c.b, got, c.want)
		}
	}
}

func TestNumberStringRoundTrips(t *testing.T) {
	if Number(7).String() != "7" {
		t.Errorf("got %q, want 7", Number(7).String())
	}
	if Number(1.5).String() != "1.5" {
		t.Errorf("got %q, want 1.5", Number(1.5).String())
	}
}
