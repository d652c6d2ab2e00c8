package s3

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestObjectKeyFromURL(t *testing.T) {
	tests := []struct {
		name   string
		domain string
		url    string
		want   string
	}{
		{
			name:   "uploaded object",
			domain: "https://cdn.example.com",
			url:    "https://cdn.example.com/room/abc.png",
			want:   "room/abc.png",
		},
		{
			name:   "domain with trailing slash",
			domain: "https://cdn.example.com/",
			url:    "https://cdn.example.com/room/abc.png",
			want:   "room/abc.png",
		},
		{
			name:   "foreign url",
			domain: "https://cdn.example.com",
			url:    "https://elsewhere.example.com/room/abc.png",
			want:   "",
		},
		{
			name:   "no public domain configured",
			domain: "",
			url:    "/room/abc.png",
			want:   "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, objectKeyFromURL(tt.domain, tt.url))
		})
	}
}
