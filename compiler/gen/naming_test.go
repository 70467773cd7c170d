package gen

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPascal(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"user_id", "UserID"},
		{"default::Color", "DefaultColor"},
		{"@note", "Note"},
		{"name", "Name"},
		{"firstName", "FirstName"},
		{"api_url", "APIURL"},
		{"", "X"},
		{"__", "X"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, pascal(tt.in))
		})
	}
}

func TestSnake(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"GetUser", "get_user"},
		{"get-user", "get_user"},
		{"get_user", "get_user"},
		{"UserID", "user_id"},
		{"default", "default"},
		{"--", ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, snake(tt.in))
		})
	}
}

func TestPackageName(t *testing.T) {
	assert.Equal(t, "default_", packageName("default"))
	assert.Equal(t, "type_", packageName("type"))
	assert.Equal(t, "mymodule", packageName("my_module"))
	assert.Equal(t, "x1st", packageName("1st"))
	assert.Equal(t, "x", packageName("::"))
	assert.Equal(t, "db", packageName("db"))
}

func TestReceiver(t *testing.T) {
	assert.Equal(t, "b", receiver("InputBuilder"))
	assert.Equal(t, "c", receiver("Color"))
	assert.Equal(t, "g", receiver("Globals"))
	assert.Equal(t, "v", receiver(""))
}
