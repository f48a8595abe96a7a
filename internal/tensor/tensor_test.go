package tensor

import (
	"errors"
	"testing"
)

func assertEqualShape(t *testing.T, expected, actual Shape, msg string) {
	t.Helper()
	if !expected.Equal(actual) {
		t.Errorf("%s: expected shape %v, got %v", msg, expected, actual)
	}
}

func TestDataTypeSize(t *testing.T) {
	tests := []struct {
		dtype DataType
		size  int
	}{
		{Float16, 2},
		{Float32, 4},
		{Float64, 8},
		{Int32, 4},
		{Int64, 8},
		{Uint8, 1},
		{Bool, 1},
	}

	for _, tt := range tests {
		if got := tt.dtype.Size(); got != tt.size {
			t.Errorf("%s.Size() = %d, want %d", tt.dtype, got, tt.size)
		}
	}
}

func TestParseDataType(t *testing.T) {
	for _, dt := range []DataType{Float16, Float32, Float64, Int32, Int64, Uint8, Bool} {
		got, ok := ParseDataType(dt.String())
		if !ok || got != dt {
			t.Errorf("ParseDataType(%q) = %v, %v", dt.String(), got, ok)
		}
	}
	if _, ok := ParseDataType("complex128"); ok {
		t.Error("ParseDataType accepted unknown dtype name")
	}
}

func TestShapeNumElements(t *testing.T) {
	tests := []struct {
		shape    Shape
		expected int
	}{
		{Shape{}, 1},
		{Shape{5}, 5},
		{Shape{3, 4}, 12},
		{Shape{2, 3, 4}, 24},
	}

	for _, tt := range tests {
		if got := tt.shape.NumElements(); got != tt.expected {
			t.Errorf("Shape%v.NumElements() = %d, want %d", tt.shape, got, tt.expected)
		}
	}
}

func TestShapeNormalizeAxis(t *testing.T) {
	s := Shape{2, 3, 4}

	if axis, err := s.NormalizeAxis(-1); err != nil || axis != 2 {
		t.Errorf("NormalizeAxis(-1) = %d, %v", axis, err)
	}
	if axis, err := s.NormalizeAxis(1); err != nil || axis != 1 {
		t.Errorf("NormalizeAxis(1) = %d, %v", axis, err)
	}
	if _, err := s.NormalizeAxis(3); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("NormalizeAxis(3) error = %v, want ErrInvalidArgument", err)
	}
}

func TestBroadcastShapes(t *testing.T) {
	tests := []struct {
		a, b, want Shape
		wantErr    bool
	}{
		{Shape{3, 1}, Shape{3, 5}, Shape{3, 5}, false},
		{Shape{1, 5}, Shape{3, 5}, Shape{3, 5}, false},
		{Shape{3, 5}, Shape{3, 5}, Shape{3, 5}, false},
		{Shape{5}, Shape{3, 5}, Shape{3, 5}, false},
		{Shape{3, 4}, Shape{3, 5}, nil, true},
	}

	for _, tt := range tests {
		got, _, err := BroadcastShapes(tt.a, tt.b)
		if tt.wantErr {
			if err == nil {
				t.Errorf("BroadcastShapes(%v, %v): expected error", tt.a, tt.b)
			}
			continue
		}
		if err != nil {
			t.Errorf("BroadcastShapes(%v, %v): %v", tt.a, tt.b, err)
			continue
		}
		assertEqualShape(t, tt.want, got, "BroadcastShapes")
	}
}

func TestFromAnyNestedSlices(t *testing.T) {
	raw, err := FromAny([][]float64{{1, 2, 3}, {4, 5, 6}})
	if err != nil {
		t.Fatalf("FromAny: %v", err)
	}
	assertEqualShape(t, Shape{2, 3}, raw.Shape(), "FromAny shape")
	if raw.DType() != Float64 {
		t.Errorf("FromAny dtype = %s, want float64", raw.DType())
	}
	if got := raw.AsFloat64()[4]; got != 5 {
		t.Errorf("FromAny data[4] = %v, want 5", got)
	}
}

func TestFromAnyIntBecomesInt64(t *testing.T) {
	raw, err := FromAny([]int{1, 0, 2})
	if err != nil {
		t.Fatalf("FromAny: %v", err)
	}
	if raw.DType() != Int64 {
		t.Errorf("FromAny dtype = %s, want int64", raw.DType())
	}
}

func TestFromAnyRagged(t *testing.T) {
	_, err := FromAny([]any{[]float64{1, 2}, []float64{3}})
	if !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("FromAny ragged error = %v, want ErrInvalidArgument", err)
	}
}

func TestFromAnyPassThrough(t *testing.T) {
	orig := Zeros(Shape{2, 2}, Float32)
	raw, err := FromAny(orig)
	if err != nil {
		t.Fatalf("FromAny: %v", err)
	}
	if raw != orig {
		t.Error("FromAny should return *RawTensor inputs unchanged")
	}
}

func TestFloat16RoundTrip(t *testing.T) {
	raw := Zeros(Shape{3}, Float16)
	raw.SetFloatAt(0, 1.5)
	raw.SetFloatAt(1, -2.0)
	raw.SetFloatAt(2, 0.25)

	want := []float64{1.5, -2.0, 0.25}
	for i, w := range want {
		if got := raw.FloatAt(i); got != w {
			t.Errorf("float16 element %d = %v, want %v", i, got, w)
		}
	}
	if raw.ByteSize() != 6 {
		t.Errorf("float16 ByteSize = %d, want 6", raw.ByteSize())
	}
}

func TestWithShape(t *testing.T) {
	raw, err := FromFloat32([]float32{1, 2, 3, 4, 5, 6}, Shape{2, 3})
	if err != nil {
		t.Fatal(err)
	}

	view, err := raw.WithShape(Shape{3, 2})
	if err != nil {
		t.Fatalf("WithShape: %v", err)
	}
	assertEqualShape(t, Shape{3, 2}, view.Shape(), "WithShape")

	if _, err := raw.WithShape(Shape{4, 2}); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("WithShape mismatch error = %v, want ErrInvalidArgument", err)
	}
}

func TestItem(t *testing.T) {
	s := Scalar(Float32, 3.5)
	if got := s.Item(); got != 3.5 {
		t.Errorf("Item() = %v, want 3.5", got)
	}
}
