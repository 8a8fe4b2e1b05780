package value_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmgilman/go/fstree/errors"
	"github.com/jmgilman/go/fstree/value"
	"github.com/jmgilman/go/fstree/value/shape"
)

func TestFormatText(t *testing.T) {
	tests := []struct {
		v    value.Value
		want string
	}{
		{value.Unit{}, ""},
		{value.Bool(true), "true"},
		{value.Bool(false), "false"},
		{value.Int(-42), "-42"},
		{value.Uint(math.MaxUint64), "18446744073709551615"},
		{value.Float(1.5), "1.5"},
		{value.Float(1e21), "1e+21"},
		{value.Float(math.Inf(-1)), "-Inf"},
		{value.Char('é'), "é"},
		{value.String("hello world"), "hello world"},
		{value.Bytes("raw"), "raw"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			got, err := value.FormatText(tt.v)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormatText_Errors(t *testing.T) {
	_, err := value.FormatText(value.Seq{})
	assert.Equal(t, errors.CodeUnsupportedType, errors.GetCode(err))

	_, err = value.FormatText(value.Bytes{0xff, 0xfe})
	assert.Equal(t, errors.CodeInvalidUnicode, errors.GetCode(err))

	_, err = value.FormatText(value.Char(0xD800))
	assert.Equal(t, errors.CodeInvalidUnicode, errors.GetCode(err))
}

func TestParseText(t *testing.T) {
	tests := []struct {
		name string
		text string
		s    *value.Shape
		want value.Value
	}{
		{"unit ignores content", "anything", shape.Unit(), value.Unit{}},
		{"bool", "false", shape.Bool(), value.Bool(false)},
		{"int8 min", "-128", shape.Int(8), value.Int(-128)},
		{"uint8 max", "255", shape.Uint(8), value.Uint(255)},
		{"float", "3.25", shape.Float(), value.Float(3.25)},
		{"float inf", "+Inf", shape.Float(), value.Float(math.Inf(1))},
		{"char first rune", "ab", shape.Char(), value.Char('a')},
		{"char multibyte", "日本", shape.Char(), value.Char('日')},
		{"char replacement rune", "�", shape.Char(), value.Char('�')},
		{"string", "line\nbreak", shape.String(), value.String("line\nbreak")},
		{"bytes", "\x00\x01", shape.Bytes(), value.Bytes{0, 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := value.ParseText(tt.text, tt.s)
			require.NoError(t, err)
			assert.True(t, value.Equal(tt.want, got), "got %#v", got)
		})
	}
}

func TestParseText_Errors(t *testing.T) {
	tests := []struct {
		name string
		text string
		s    *value.Shape
		code errors.ErrorCode
	}{
		{"bool", "yes", shape.Bool(), errors.CodeInvalidBool},
		{"bool case", "True", shape.Bool(), errors.CodeInvalidBool},
		{"int overflow", "128", shape.Int(8), errors.CodeParse},
		{"int text", "seven", shape.Int(64), errors.CodeParse},
		{"uint negative", "-1", shape.Uint(32), errors.CodeParse},
		{"float", "1.2.3", shape.Float(), errors.CodeParse},
		{"empty char", "", shape.Char(), errors.CodeEmptyFile},
		{"invalid char", "\xff", shape.Char(), errors.CodeInvalidUnicode},
		{"invalid string", "a\xffb", shape.String(), errors.CodeInvalidUnicode},
		{"composite", "x", shape.Seq(shape.Int(64)), errors.CodeUnsupportedType},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := value.ParseText(tt.text, tt.s)
			require.Error(t, err)
			assert.Equal(t, tt.code, errors.GetCode(err))
		})
	}
}

func TestFits(t *testing.T) {
	assert.True(t, value.FitsInt(127, 8))
	assert.False(t, value.FitsInt(128, 8))
	assert.True(t, value.FitsInt(-128, 8))
	assert.False(t, value.FitsInt(-129, 8))
	assert.True(t, value.FitsInt(math.MinInt64, 64))
	assert.True(t, value.FitsUint(65535, 16))
	assert.False(t, value.FitsUint(65536, 16))
	assert.True(t, value.FitsUint(math.MaxUint64, 64))
}
