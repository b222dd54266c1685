package slug

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMake(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{"Apple iPhone 15", "apple-iphone-15"},
		{"  Lenovo   ThinkPad X1 ", "lenovo-thinkpad-x1"},
		{"Café Crème", "cafe-creme"},
		{"Samsung -- Galaxy!!", "samsung-galaxy"},
		{"already-a-slug", "already-a-slug"},
		{"", ""},
		{"***", ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Make(tt.in))
		})
	}
}
