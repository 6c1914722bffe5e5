package abi

import (
	"testing"

	"go.bytecodealliance.org/wit"
)

func assertFlat(t *testing.T, got, want []CoreTy) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("expected %d types, got %d (%v)", len(want), len(got), got)
	}
	for i := range got {
		if got[i] != want[i] {
			t.Errorf("index %d: expected %v, got %v", i, want[i], got[i])
		}
	}
}

func TestFlatten_Primitives(t *testing.T) {
	tests := []struct {
		name     string
		typ      wit.Type
		expected []CoreTy
	}{
		{"bool", wit.Bool{}, []CoreTy{I32}},
		{"u8", wit.U8{}, []CoreTy{I32}},
		{"u16", wit.U16{}, []CoreTy{I32}},
		{"u32", wit.U32{}, []CoreTy{I32}},
		{"s8", wit.S8{}, []CoreTy{I32}},
		{"s16", wit.S16{}, []CoreTy{I32}},
		{"s32", wit.S32{}, []CoreTy{I32}},
		{"char", wit.Char{}, []CoreTy{I32}},
		{"u64", wit.U64{}, []CoreTy{I64}},
		{"s64", wit.S64{}, []CoreTy{I64}},
		{"f32", wit.F32{}, []CoreTy{F32}},
		{"f64", wit.F64{}, []CoreTy{F64}},
		{"string", wit.String{}, []CoreTy{I32, I32}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assertFlat(t, Flatten(tc.typ), tc.expected)
			if FlatCount(tc.typ) != len(tc.expected) {
				t.Errorf("FlatCount = %d, want %d", FlatCount(tc.typ), len(tc.expected))
			}
		})
	}
}

func TestFlatten_Nil(t *testing.T) {
	if result := Flatten(nil); result != nil {
		t.Errorf("expected nil, got %v", result)
	}
	if FlatCount(nil) != 0 {
		t.Error("FlatCount(nil) should be 0")
	}
}

func TestFlatten_Compound(t *testing.T) {
	point := &wit.TypeDef{Kind: &wit.Record{Fields: []wit.Field{
		{Name: "x", Type: wit.U32{}},
		{Name: "y", Type: wit.F64{}},
	}}}
	resource := &wit.TypeDef{Kind: &wit.Resource{}}

	tests := []struct {
		name     string
		typ      wit.Type
		expected []CoreTy
	}{
		{"record", point, []CoreTy{I32, F64}},
		{"nested record", &wit.TypeDef{Kind: &wit.Record{Fields: []wit.Field{
			{Name: "p", Type: point},
			{Name: "name", Type: wit.String{}},
		}}}, []CoreTy{I32, F64, I32, I32}},
		{"tuple", &wit.TypeDef{Kind: &wit.Tuple{Types: []wit.Type{wit.U8{}, wit.S64{}}}}, []CoreTy{I32, I64}},
		{"list", &wit.TypeDef{Kind: &wit.List{Type: point}}, []CoreTy{I32, I32}},
		{"option u64", &wit.TypeDef{Kind: &wit.Option{Type: wit.U64{}}}, []CoreTy{I32, I64}},
		{"result string string", &wit.TypeDef{Kind: &wit.Result{OK: wit.String{}, Err: wit.String{}}}, []CoreTy{I32, I32, I32}},
		{"result empty", &wit.TypeDef{Kind: &wit.Result{}}, []CoreTy{I32}},
		{"enum", &wit.TypeDef{Kind: &wit.Enum{Cases: []wit.EnumCase{{Name: "a"}, {Name: "b"}}}}, []CoreTy{I32}},
		{"own", &wit.TypeDef{Kind: &wit.Own{Type: resource}}, []CoreTy{I32}},
		{"borrow", &wit.TypeDef{Kind: &wit.Borrow{Type: resource}}, []CoreTy{I32}},
		{"alias", &wit.TypeDef{Kind: point}, []CoreTy{I32, F64}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assertFlat(t, Flatten(tc.typ), tc.expected)
			if FlatCount(tc.typ) != len(tc.expected) {
				t.Errorf("FlatCount = %d, want %d", FlatCount(tc.typ), len(tc.expected))
			}
		})
	}
}

func TestFlatten_VariantJoin(t *testing.T) {
	// variant { none, int(u32), float(f32), wide(u64), text(string) }
	v := &wit.TypeDef{Kind: &wit.Variant{Cases: []wit.Case{
		{Name: "none"},
		{Name: "int", Type: wit.U32{}},
		{Name: "float", Type: wit.F32{}},
		{Name: "wide", Type: wit.U64{}},
		{Name: "text", Type: wit.String{}},
	}}}

	// slot 0: join(i32, f32, i64, i32) = i64; slot 1: i32 from string len
	assertFlat(t, Flatten(v), []CoreTy{I32, I64, I32})
}

func TestFlatten_Flags(t *testing.T) {
	makeFlags := func(n int) *wit.TypeDef {
		flags := make([]wit.Flag, n)
		for i := range flags {
			flags[i] = wit.Flag{Name: string(rune('a' + i%26))}
		}
		return &wit.TypeDef{Kind: &wit.Flags{Flags: flags}}
	}

	tests := []struct {
		n    int
		want int
	}{
		{0, 0}, {1, 1}, {8, 1}, {32, 1}, {33, 2}, {64, 2}, {65, 3},
	}
	for _, tc := range tests {
		if got := len(Flatten(makeFlags(tc.n))); got != tc.want {
			t.Errorf("flags(%d): %d slots, want %d", tc.n, got, tc.want)
		}
		if got := FlatCount(makeFlags(tc.n)); got != tc.want {
			t.Errorf("flags(%d): FlatCount %d, want %d", tc.n, got, tc.want)
		}
	}
}

func TestJoin(t *testing.T) {
	tests := []struct {
		a, b, want CoreTy
	}{
		{I32, I32, I32},
		{I32, F32, I32},
		{F32, I32, I32},
		{F32, F32, F32},
		{I32, I64, I64},
		{F32, F64, I64},
		{F64, F64, F64},
		{I64, F64, I64},
	}
	for _, tc := range tests {
		if got := Join(tc.a, tc.b); got != tc.want {
			t.Errorf("Join(%v, %v) = %v, want %v", tc.a, tc.b, got, tc.want)
		}
	}
}
