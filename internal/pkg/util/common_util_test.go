package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizePage(t *testing.T) {
	cases := []struct {
		limit, offset       int
		wantLimit, wantOffs int
	}{
		{0, 0, DefaultPageSize, 0},
		{-5, -1, DefaultPageSize, 0},
		{500, 10, MaxPageSize, 10},
		{15, 30, 15, 30},
	}
	for _, c := range cases {
		l, o := NormalizePage(c.limit, c.offset)
		assert.Equal(t, c.wantLimit, l)
		assert.Equal(t, c.wantOffs, o)
	}
}

func TestParseUint64s(t *testing.T) {
	ids, invalid := ParseUint64s([]string{"1", "42"})
	assert.Equal(t, []uint64{1, 42}, ids)
	assert.Empty(t, invalid)

	ids, invalid = ParseUint64s([]string{"7", "x", "-3"})
	assert.Equal(t, []uint64{7}, ids)
	assert.Equal(t, []string{"x", "-3"}, invalid)
}

func TestAnyToUint64(t *testing.T) {
	v, ok := AnyToUint64("17")
	assert.True(t, ok)
	assert.Equal(t, uint64(17), v)

	v, ok = AnyToUint64(float64(9))
	assert.True(t, ok)
	assert.Equal(t, uint64(9), v)

	_, ok = AnyToUint64("abc")
	assert.False(t, ok)
	_, ok = AnyToUint64(nil)
	assert.False(t, ok)
}

func TestValidateStruct(t *testing.T) {
	type sample struct {
		Name string  `validate:"required,max=3"`
		Bio  *string `validate:"omitempty,max=2"`
	}
	assert.NoError(t, ValidateStruct(sample{Name: "abc"}))
	assert.Error(t, ValidateStruct(sample{Name: "abcd"}))
	assert.Error(t, ValidateStruct(sample{}))
	assert.Error(t, ValidateStruct(sample{Name: "a", Bio: Ptr("xyz")}))
}
