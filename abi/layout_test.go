package abi

import (
	"testing"

	"go.bytecodealliance.org/wit"
)

func TestSizeAlign_Primitives(t *testing.T) {
	sa := NewSizeAlign()
	tests := []struct {
		name  string
		typ   wit.Type
		size  uint32
		align uint32
	}{
		{"bool", wit.Bool{}, 1, 1},
		{"u8", wit.U8{}, 1, 1},
		{"s16", wit.S16{}, 2, 2},
		{"u32", wit.U32{}, 4, 4},
		{"char", wit.Char{}, 4, 4},
		{"f32", wit.F32{}, 4, 4},
		{"u64", wit.U64{}, 8, 8},
		{"f64", wit.F64{}, 8, 8},
		{"string", wit.String{}, 8, 4},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			info := sa.Of(tc.typ)
			if info.Size != tc.size || info.Align != tc.align {
				t.Errorf("got size=%d align=%d, want size=%d align=%d", info.Size, info.Align, tc.size, tc.align)
			}
		})
	}
}

func TestSizeAlign_Record(t *testing.T) {
	sa := NewSizeAlign()
	// record { a: u8, b: u32, c: u16, d: u64 }
	types := []wit.Type{wit.U8{}, wit.U32{}, wit.U16{}, wit.U64{}}
	rec := &wit.TypeDef{Kind: &wit.Record{Fields: []wit.Field{
		{Name: "a", Type: types[0]},
		{Name: "b", Type: types[1]},
		{Name: "c", Type: types[2]},
		{Name: "d", Type: types[3]},
	}}}

	info := sa.Of(rec)
	if info.Size != 24 || info.Align != 8 {
		t.Errorf("record layout = %+v, want size 24 align 8", info)
	}

	offsets := sa.FieldOffsets(types)
	want := []uint32{0, 4, 8, 16}
	for i := range want {
		if offsets[i] != want[i] {
			t.Errorf("field %d offset = %d, want %d", i, offsets[i], want[i])
		}
	}

	empty := sa.Of(&wit.TypeDef{Kind: &wit.Record{}})
	if empty.Size != 0 || empty.Align != 1 {
		t.Errorf("empty record = %+v", empty)
	}
}

func TestSizeAlign_Variants(t *testing.T) {
	sa := NewSizeAlign()
	tests := []struct {
		name          string
		typ           wit.Type
		size, align   uint32
		payloadOffset uint32
		payloads      []wit.Type
	}{
		{
			name:     "option u8",
			typ:      &wit.TypeDef{Kind: &wit.Option{Type: wit.U8{}}},
			size:     2,
			align:    1,
			payloads: []wit.Type{nil, wit.U8{}},

			payloadOffset: 1,
		},
		{
			name:     "option u64",
			typ:      &wit.TypeDef{Kind: &wit.Option{Type: wit.U64{}}},
			size:     16,
			align:    8,
			payloads: []wit.Type{nil, wit.U64{}},

			payloadOffset: 8,
		},
		{
			name:     "result string string",
			typ:      &wit.TypeDef{Kind: &wit.Result{OK: wit.String{}, Err: wit.String{}}},
			size:     12,
			align:    4,
			payloads: []wit.Type{wit.String{}, wit.String{}},

			payloadOffset: 4,
		},
		{
			name:     "result empty",
			typ:      &wit.TypeDef{Kind: &wit.Result{}},
			size:     1,
			align:    1,
			payloads: []wit.Type{nil, nil},

			payloadOffset: 1,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			info := sa.Of(tc.typ)
			if info.Size != tc.size || info.Align != tc.align {
				t.Errorf("layout = %+v, want size=%d align=%d", info, tc.size, tc.align)
			}
			if off := sa.PayloadOffset(tc.payloads); off != tc.payloadOffset {
				t.Errorf("payload offset = %d, want %d", off, tc.payloadOffset)
			}
		})
	}
}

func TestSizeAlign_EnumAndFlags(t *testing.T) {
	sa := NewSizeAlign()

	cases := make([]wit.EnumCase, 300)
	for i := range cases {
		cases[i] = wit.EnumCase{Name: "c"}
	}
	big := sa.Of(&wit.TypeDef{Kind: &wit.Enum{Cases: cases}})
	if big.Size != 2 || big.Align != 2 {
		t.Errorf("300-case enum = %+v, want 2/2", big)
	}

	tests := []struct {
		n           int
		size, align uint32
	}{
		{0, 0, 1}, {3, 1, 1}, {9, 2, 2}, {17, 4, 4}, {40, 8, 4},
	}
	for _, tc := range tests {
		info := FlagsLayout(tc.n)
		if info.Size != tc.size || info.Align != tc.align {
			t.Errorf("flags(%d) = %+v, want %d/%d", tc.n, info, tc.size, tc.align)
		}
	}
}

func TestSizeAlign_Cache(t *testing.T) {
	sa := NewSizeAlign()
	td := &wit.TypeDef{Kind: &wit.Tuple{Types: []wit.Type{wit.U8{}, wit.U32{}}}}
	first := sa.Of(td)
	if _, ok := sa.cache[td]; !ok {
		t.Fatal("type definition should be cached")
	}
	if second := sa.Of(td); second != first {
		t.Errorf("cached layout differs: %+v vs %+v", first, second)
	}
}

func TestAlignTo(t *testing.T) {
	tests := []struct{ off, align, want uint32 }{
		{0, 4, 0}, {1, 4, 4}, {4, 4, 4}, {5, 8, 8}, {3, 1, 3}, {7, 0, 7},
	}
	for _, tc := range tests {
		if got := AlignTo(tc.off, tc.align); got != tc.want {
			t.Errorf("AlignTo(%d, %d) = %d, want %d", tc.off, tc.align, got, tc.want)
		}
	}
}
