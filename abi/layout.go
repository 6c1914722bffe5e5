package abi

import (
	"go.bytecodealliance.org/wit"
)

// Info is the linear-memory size and alignment of a type
type Info struct {
	Size  uint32
	Align uint32
}

// SizeAlign computes Canonical ABI layouts, caching named type definitions.
type SizeAlign struct {
	cache map[*wit.TypeDef]Info
}

// NewSizeAlign creates an empty layout calculator
func NewSizeAlign() *SizeAlign {
	return &SizeAlign{
		cache: make(map[*wit.TypeDef]Info),
	}
}

// Of returns the layout of t
func (s *SizeAlign) Of(t wit.Type) Info {
	switch typ := t.(type) {
	case nil:
		return Info{Size: 0, Align: 1}
	case wit.U8, wit.S8, wit.Bool:
		return Info{Size: 1, Align: 1}
	case wit.U16, wit.S16:
		return Info{Size: 2, Align: 2}
	case wit.U32, wit.S32, wit.F32, wit.Char:
		return Info{Size: 4, Align: 4}
	case wit.U64, wit.S64, wit.F64:
		return Info{Size: 8, Align: 8}
	case wit.String:
		return Info{Size: 8, Align: 4} // [ptr: u32, len: u32]
	case *wit.TypeDef:
		return s.typeDef(typ)
	default:
		return Info{Size: 0, Align: 1}
	}
}

// Size returns the byte size of t
func (s *SizeAlign) Size(t wit.Type) uint32 { return s.Of(t).Size }

// Align returns the alignment of t
func (s *SizeAlign) Align(t wit.Type) uint32 { return s.Of(t).Align }

func (s *SizeAlign) typeDef(t *wit.TypeDef) Info {
	if cached, ok := s.cache[t]; ok {
		return cached
	}

	var info Info

	switch kind := t.Kind.(type) {
	case *wit.Record:
		types := make([]wit.Type, len(kind.Fields))
		for i, f := range kind.Fields {
			types[i] = f.Type
		}
		info = s.Record(types)
	case *wit.Tuple:
		info = s.Record(kind.Types)
	case *wit.Variant:
		payloads := make([]wit.Type, len(kind.Cases))
		for i, c := range kind.Cases {
			payloads[i] = c.Type
		}
		info = s.Variant(payloads)
	case *wit.Enum:
		size := DiscriminantSize(len(kind.Cases))
		info = Info{Size: size, Align: size}
	case *wit.Option:
		info = s.Variant([]wit.Type{nil, kind.Type})
	case *wit.Result:
		info = s.Variant([]wit.Type{kind.OK, kind.Err})
	case *wit.Flags:
		info = FlagsLayout(len(kind.Flags))
	case *wit.List:
		info = Info{Size: 8, Align: 4}
	case *wit.Own, *wit.Borrow:
		info = Info{Size: 4, Align: 4}
	case wit.Type:
		info = s.Of(kind)
	default:
		info = Info{Size: 0, Align: 1}
	}

	s.cache[t] = info
	return info
}

// Record lays out types sequentially with per-field alignment padding
func (s *SizeAlign) Record(types []wit.Type) Info {
	maxAlign := uint32(1)
	offset := uint32(0)

	for _, typ := range types {
		field := s.Of(typ)
		offset = AlignTo(offset, field.Align)
		offset += field.Size
		maxAlign = max(maxAlign, field.Align)
	}

	return Info{
		Size:  AlignTo(offset, maxAlign),
		Align: maxAlign,
	}
}

// FieldOffsets returns the byte offset of each type laid out as a record
func (s *SizeAlign) FieldOffsets(types []wit.Type) []uint32 {
	offsets := make([]uint32, len(types))
	offset := uint32(0)
	for i, typ := range types {
		field := s.Of(typ)
		offset = AlignTo(offset, field.Align)
		offsets[i] = offset
		offset += field.Size
	}
	return offsets
}

// Variant lays out a discriminant followed by the largest case payload.
// A nil payload is a case without a value.
func (s *SizeAlign) Variant(payloads []wit.Type) Info {
	disc := DiscriminantSize(len(payloads))
	payloadAlign := s.MaxCaseAlign(payloads)

	maxSize := uint32(0)
	for _, p := range payloads {
		if p != nil {
			maxSize = max(maxSize, s.Size(p))
		}
	}

	align := max(disc, payloadAlign)
	payloadOffset := AlignTo(disc, payloadAlign)

	return Info{
		Size:  AlignTo(payloadOffset+maxSize, align),
		Align: align,
	}
}

// PayloadOffset returns where case payloads start in a variant layout
func (s *SizeAlign) PayloadOffset(payloads []wit.Type) uint32 {
	return AlignTo(DiscriminantSize(len(payloads)), s.MaxCaseAlign(payloads))
}

// MaxCaseAlign returns the largest alignment among case payloads
func (s *SizeAlign) MaxCaseAlign(payloads []wit.Type) uint32 {
	align := uint32(1)
	for _, p := range payloads {
		if p != nil {
			align = max(align, s.Align(p))
		}
	}
	return align
}

// FlagsLayout returns the layout of a flags type with n labels
func FlagsLayout(n int) Info {
	switch {
	case n == 0:
		return Info{Size: 0, Align: 1}
	case n <= 8:
		return Info{Size: 1, Align: 1}
	case n <= 16:
		return Info{Size: 2, Align: 2}
	default:
		return Info{Size: uint32(4 * FlagsI32Count(n)), Align: 4}
	}
}

// DiscriminantSize: 1 byte for <=256 cases, 2 for <=65536, else 4.
func DiscriminantSize(numCases int) uint32 {
	if numCases <= 256 {
		return 1
	} else if numCases <= 65536 {
		return 2
	}
	return 4
}

// AlignTo rounds offset up to a multiple of align
func AlignTo(offset, align uint32) uint32 {
	if align == 0 {
		return offset
	}
	return (offset + align - 1) &^ (align - 1)
}
