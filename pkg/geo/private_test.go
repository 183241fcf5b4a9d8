package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsPrivate(t *testing.T) {
	tests := []struct {
		addr string
		want bool
	}{
		{"10.0.0.1", true},
		{"10.255.255.255", true},
		{"172.16.0.1", true},
		{"172.31.255.254", true},
		{"172.15.0.1", false},
		{"172.32.0.1", false},
		{"172.217.14.206", false},
		{"192.168.1.1", true},
		{"192.169.0.1", false},
		{"127.0.0.1", true},
		{"169.254.10.20", true},
		{"100.64.0.1", true},
		{"100.128.0.1", false},
		{"8.8.8.8", false},
		{"::1", true},
		{"fd12:3456::1", true},
		{"fe80::1", true},
		{"2606:4700:4700::1111", false},
		{"::ffff:192.168.0.1", true},
		{"", false},
		{"router.lan", false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, IsPrivate(tt.addr), tt.addr)
	}
}
