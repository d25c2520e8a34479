package s3_test

import (
	"hotelier/config"
	"hotelier/infras/s3"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestObjectName(t *testing.T) {
	cfg := &config.Config{}
	cfg.External.S3.PublicDomain = "https://cdn.hotel.test/"
	cfg.External.S3.APIEndpoint = "https://s3.hotel.test"

	tests := []struct {
		name string
		url  string
		want string
	}{
		{name: "public domain", url: "https://cdn.hotel.test/rooms/101.png", want: "101.png"},
		{name: "path style endpoint", url: "https://s3.hotel.test/hotel/logos/logo.webp", want: "logo.webp"},
		{name: "foreign url", url: "https://example.com/rooms/101.png", want: ""},
		{name: "domain only", url: "https://cdn.hotel.test/", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, s3.ObjectName(cfg, "hotel", tt.url))
		})
	}
}

func TestObjectName_Unconfigured(t *testing.T) {
	assert.Empty(t, s3.ObjectName(&config.Config{}, "hotel", "/hotel/rooms/101.png"))
}
