package variant

import (
	"errors"
	"math"
	"testing"
)

func TestScalarCoercion(t *testing.T) {
	tests := []struct {
		name string
		v    Value
		b    bool
		i    int64
		r    float64
	}{
		{"null", Null(), false, 0, 0},
		{"zero value", Value{}, false, 0, 0},
		{"false", Bool(false), false, 0, 0},
		{"true", Bool(true), true, 1, 1},
		{"int", Int(42), true, 42, 42},
		{"int zero", Int(0), false, 0, 0},
		{"negative int", Int(-7), true, -7, -7},
		{"real", Real(2.75), true, 2, 2.75},
		{"negative real", Real(-2.75), true, -2, -2.75},
		{"real zero", Real(0), false, 0, 0},
		{"real fraction", Real(0.5), true, 0, 0.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := tt.v.AsBool()
			if err != nil || b != tt.b {
				t.Fatalf("AsBool = %v, %v; want %v", b, err, tt.b)
			}
			i, err := tt.v.AsInt()
			if err != nil || i != tt.i {
				t.Fatalf("AsInt = %v, %v; want %v", i, err, tt.i)
			}
			r, err := tt.v.AsReal()
			if err != nil || r != tt.r {
				t.Fatalf("AsReal = %v, %v; want %v", r, err, tt.r)
			}
		})
	}
}

func TestScalarAccessorsRejectNonScalars(t *testing.T) {
	for _, v := range []Value{String("1"), List(Int(1)), TableOf(Entry{"a", Int(1)})} {
		if _, err := v.AsBool(); !errors.Is(err, ErrAccess) {
			t.Errorf("%s: AsBool err = %v", v.Kind(), err)
		}
		if _, err := v.AsInt(); !errors.Is(err, ErrAccess) {
			t.Errorf("%s: AsInt err = %v", v.Kind(), err)
		}
		if _, err := v.AsReal(); !errors.Is(err, ErrAccess) {
			t.Errorf("%s: AsReal err = %v", v.Kind(), err)
		}
	}
}

func TestStrictAccessors(t *testing.T) {
	s := String("hi")
	if got, err := s.AsString(); err != nil || got != "hi" {
		t.Fatalf("AsString = %q, %v", got, err)
	}
	if _, err := Int(1).AsString(); !errors.Is(err, ErrAccess) {
		t.Fatalf("Int.AsString err = %v", err)
	}
	if _, err := s.AsList(); !errors.Is(err, ErrAccess) {
		t.Fatalf("String.AsList err = %v", err)
	}
	_, err := List().AsTable()
	var ae *AccessError
	if !errors.As(err, &ae) {
		t.Fatalf("List.AsTable err = %v, want *AccessError", err)
	}
	if ae.Op != "AsTable" || ae.Want != KindTable || ae.Got != KindList {
		t.Fatalf("AccessError = %+v", ae)
	}
	if want := "variant: AsTable: cannot read list as table"; ae.Error() != want {
		t.Fatalf("Error() = %q, want %q", ae.Error(), want)
	}
}

func TestValueSemantics(t *testing.T) {
	items := []Value{Int(1), Int(2)}
	l := List(items...)
	items[0] = String("changed")
	if got, _ := l.Index(0); !Equal(got, Int(1)) {
		t.Fatalf("constructor did not copy: %s", l)
	}

	out, _ := l.AsList()
	out[1] = Null()
	if got, _ := l.Index(1); !Equal(got, Int(2)) {
		t.Fatalf("AsList exposed storage: %s", l)
	}

	m := map[string]Value{"a": Int(1)}
	tbl := Table(m)
	m["b"] = Int(2)
	if tbl.Len() != 1 {
		t.Fatalf("Table did not copy: %s", tbl)
	}
	got, _ := tbl.AsTable()
	delete(got, "a")
	if _, ok := tbl.Get("a"); !ok {
		t.Fatalf("AsTable exposed storage")
	}

	nested := List(List(Int(1)))
	cp := nested.Clone()
	if !Equal(cp, nested) {
		t.Fatalf("Clone not equal: %s vs %s", cp, nested)
	}
	alias := cp
	cp = alias
	if !cp.Equal(nested) {
		t.Fatalf("self-assignment changed value")
	}
}

func TestEmptyContainers(t *testing.T) {
	if l := List(); l.Kind() != KindList || l.Len() != 0 {
		t.Fatalf("List() = %s", l)
	}
	if tb := Table(nil); tb.Kind() != KindTable || tb.Len() != 0 {
		t.Fatalf("Table(nil) = %s", tb)
	}
	if !Null().IsNull() || Int(0).IsNull() {
		t.Fatalf("IsNull mismatch")
	}
}

func TestTableOfLastWins(t *testing.T) {
	v := TableOf(Entry{"a", Int(1)}, Entry{"b", Int(2)}, Entry{"a", Int(3)})
	if v.Len() != 2 {
		t.Fatalf("Len = %d, want 2", v.Len())
	}
	if got, _ := v.Get("a"); !Equal(got, Int(3)) {
		t.Fatalf("a = %s, want 3", got)
	}
}

func TestIndexAndLookup(t *testing.T) {
	v := TableOf(Entry{"srv", TableOf(Entry{"ports", List(Int(80), Int(443))})})
	ports, ok := v.Lookup("srv", "ports")
	if !ok {
		t.Fatalf("Lookup failed")
	}
	if p, err := ports.Index(1); err != nil || !Equal(p, Int(443)) {
		t.Fatalf("Index(1) = %s, %v", p, err)
	}
	if _, err := ports.Index(2); err == nil {
		t.Fatalf("Index(2) should fail")
	}
	if _, err := Int(1).Index(0); !errors.Is(err, ErrAccess) {
		t.Fatalf("Int.Index err = %v", err)
	}
	if _, ok := v.Lookup("srv", "missing"); ok {
		t.Fatalf("Lookup(missing) ok")
	}
	if _, ok := Int(1).Get("a"); ok {
		t.Fatalf("Int.Get ok")
	}
}

func TestKeysAndRange(t *testing.T) {
	v := TableOf(Entry{"c", Int(3)}, Entry{"a", Int(1)}, Entry{"b", Int(2)})
	keys := v.Keys()
	if len(keys) != 3 || keys[0] != "a" || keys[1] != "b" || keys[2] != "c" {
		t.Fatalf("Keys = %v", keys)
	}
	var seen []string
	v.Range(func(k string, idx int, _ Value) bool {
		if idx != -1 {
			t.Fatalf("table index = %d", idx)
		}
		seen = append(seen, k)
		return k != "b"
	})
	if len(seen) != 2 {
		t.Fatalf("Range did not stop: %v", seen)
	}

	var sum int64
	List(Int(1), Int(2), Int(3)).Range(func(_ string, idx int, item Value) bool {
		n, _ := item.AsInt()
		sum += n * int64(idx+1)
		return true
	})
	if sum != 14 {
		t.Fatalf("sum = %d", sum)
	}
}

func TestEqual(t *testing.T) {
	tests := []struct {
		a, b Value
		want bool
	}{
		{Null(), Value{}, true},
		{Int(1), Real(1), false},
		{Int(1), Int(1), true},
		{Real(math.NaN()), Real(math.NaN()), false},
		{String("a"), String("a"), true},
		{List(Int(1), Int(2)), List(Int(1), Int(2)), true},
		{List(Int(1), Int(2)), List(Int(2), Int(1)), false},
		{TableOf(Entry{"a", Int(1)}), TableOf(Entry{"a", Int(1)}), true},
		{TableOf(Entry{"a", Int(1)}), TableOf(Entry{"b", Int(1)}), false},
		{List(), Table(nil), false},
	}
	for i, tt := range tests {
		if got := Equal(tt.a, tt.b); got != tt.want {
			t.Errorf("#%d Equal(%s, %s) = %v, want %v", i, tt.a, tt.b, got, tt.want)
		}
	}
}

func TestString(t *testing.T) {
	v := TableOf(
		Entry{"b", List(Int(1), Real(2), Bool(true))},
		Entry{"a", String("x")},
		Entry{"n", Null()},
	)
	want := `{a: "x", b: [1, 2.0, true], n: null}`
	if got := v.String(); got != want {
		t.Fatalf("String() = %s, want %s", got, want)
	}
}

func TestKindString(t *testing.T) {
	names := map[Kind]string{
		KindNull: "null", KindBool: "bool", KindInt: "int", KindReal: "real",
		KindString: "string", KindList: "list", KindTable: "table", Kind(99): "unknown",
	}
	for k, want := range names {
		if got := k.String(); got != want {
			t.Errorf("Kind(%d).String() = %q, want %q", k, got, want)
		}
	}
}
