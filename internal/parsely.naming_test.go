package internal

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSnakeCase(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"Foo", "foo"},
		{"foo", "foo"},
		{"ManyThings", "many_things"},
		{"UNum", "u_num"},
		{"HTTPServer", "http_server"},
		{"ServeHTTP", "serve_http"},
		{"V2Name", "v2_name"},
		{"already_snake", "already_snake"},
		{"Mixed_Case", "mixed_case"},
		{"_Leading", "leading"},
		{"Trailing_", "trailing"},
		{"A", "a"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, SnakeCase(tt.input))
		})
	}
}

func TestVariantName(t *testing.T) {
	tests := []struct {
		owner    string
		name     string
		expected string
	}{
		{"ManyThings", "ManyThingsSalad", "Salad"},
		{"Color", "Color_Red", "Red"},
		{"Color", "Colorful", "Colorful"},
		{"Color", "Color", "Color"},
		{"Mixed", "Hello", "Hello"},
		{"", "Hello", "Hello"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, VariantName(tt.owner, tt.name))
		})
	}
}

func TestDefaultLiteral(t *testing.T) {
	assert.Equal(t, "salad", DefaultLiteral("ManyThings", "ManyThingsSalad"))
	assert.Equal(t, "u_num", DefaultLiteral("Mixed", "UNum"))
	assert.Equal(t, "foo", DefaultLiteral("", "Foo"))
}
