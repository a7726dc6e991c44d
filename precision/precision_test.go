package precision

import (
	"errors"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		spec  string
		count int
		in    Type
		out   Type
	}{
		{"int8", 1, Int8, Double},
		{"uchar", 1, Uint8, Double},
		{"3*single=>single", 3, Single, Single},
		{"*uint16", 1, Uint16, Uint16},
		{"10*int32=>int8", 10, Int32, Int8},
		{"2**double", 2, Double, Double},
		{"integer*4", 1, Int32, Double},
		{"4*real*8=>single", 4, Double, Single},
		{"unsigned  char=>char", 1, Uint8, Char},
		{" long ", 1, Int64, Double},
		{"float", 1, Single, Double},
		{"ushort=>uint64", 1, Uint16, Uint64},
	}
	for _, tt := range tests {
		t.Run(tt.spec, func(t *testing.T) {
			got, err := Parse(tt.spec)
			if err != nil {
				t.Fatalf("Parse(%q) error: %v", tt.spec, err)
			}
			want := Spec{Count: tt.count, In: tt.in, Out: tt.out}
			if got != want {
				t.Errorf("Parse(%q) = %+v, want %+v", tt.spec, got, want)
			}
		})
	}
}

func TestParseRoundTripsCountAndTypes(t *testing.T) {
	types := []Type{Int8, Uint8, Int16, Uint16, Int32, Uint32, Int64, Uint64, Single, Double, Char}
	for _, in := range types {
		for _, out := range types {
			for _, n := range []int{1, 2, 17} {
				spec := Spec{Count: n, In: in, Out: out}.String()
				got, err := Parse(spec)
				if err != nil {
					t.Fatalf("Parse(%q) error: %v", spec, err)
				}
				if got.Count != n || got.In != in || got.Out != out {
					t.Errorf("Parse(%q) = %+v", spec, got)
				}
			}
		}
	}
}

func TestParseInvalid(t *testing.T) {
	tests := []struct {
		spec  string
		token string
	}{
		{"", ""},
		{"int7", "int7"},
		{"0*int8", "0"},
		{"-2*int8", "-2"},
		{"3*", ""},
		{"int8=>", ""},
		{"int8=>bogus", "bogus"},
		{"*int8=>double", "*int8=>double"},
	}
	for _, tt := range tests {
		t.Run(tt.spec, func(t *testing.T) {
			_, err := Parse(tt.spec)
			var perr *Error
			if !errors.As(err, &perr) {
				t.Fatalf("Parse(%q) error = %v, want *Error", tt.spec, err)
			}
			if perr.Token != tt.token {
				t.Errorf("Token = %q, want %q", perr.Token, tt.token)
			}
		})
	}
}

func TestParseWriteKeepsRawType(t *testing.T) {
	got, err := ParseWrite("2*int16=>double")
	if err != nil {
		t.Fatal(err)
	}
	if got.In != Int16 || got.Out != Int16 || got.Count != 2 {
		t.Errorf("ParseWrite = %+v", got)
	}
}

func TestTypeLimits(t *testing.T) {
	if Int8.Min() != -128 || Int8.Max() != 127 {
		t.Errorf("int8 limits = %d..%d", Int8.Min(), Int8.Max())
	}
	if Uint64.Min() != 0 || Uint64.Max() != 18446744073709551615 {
		t.Errorf("uint64 limits = %d..%d", Uint64.Min(), Uint64.Max())
	}
	for _, tt := range []struct {
		t    Type
		size int
	}{{Char, 1}, {Int16, 2}, {Single, 4}, {Uint32, 4}, {Double, 8}, {Int64, 8}} {
		if got := tt.t.Size(); got != tt.size {
			t.Errorf("%s.Size() = %d, want %d", tt.t, got, tt.size)
		}
	}
}

func TestParseArch(t *testing.T) {
	tests := []struct {
		arch string
		want ByteOrder
	}{
		{"native", Native},
		{"n", Native},
		{"ieee-be", BigEndian},
		{"b", BigEndian},
		{"IEEE-LE", LittleEndian},
		{"l", LittleEndian},
		{"vaxd", Native},
		{"", Native},
	}
	for _, tt := range tests {
		if got := ParseArch(tt.arch); got != tt.want {
			t.Errorf("ParseArch(%q) = %v, want %v", tt.arch, got, tt.want)
		}
	}
	if Native.Swaps() || HostOrder().Swaps() {
		t.Error("native order must never swap")
	}
	if got := Native.Resolve(); got != HostOrder() {
		t.Errorf("Native.Resolve() = %v, want host order %v", got, HostOrder())
	}
	if got := BigEndian.Resolve(); got != BigEndian {
		t.Errorf("BigEndian.Resolve() = %v", got)
	}
}
