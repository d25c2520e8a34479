package config_test

import (
	"hotelier/config"
	"testing"

	"github.com/stretchr/testify/assert"
)

func validConfig() config.Config {
	var cfg config.Config

	cfg.JWT.AccessSecret = "access"
	cfg.JWT.RefreshSecret = "refresh"
	cfg.DB.Postgres.Write.Host = "db"

	return cfg
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(cfg *config.Config)
		wantErr string
	}{
		{name: "complete", mutate: func(*config.Config) {}},
		{
			name:    "missing secrets",
			mutate:  func(cfg *config.Config) { cfg.JWT.RefreshSecret = "" },
			wantErr: "JWT_ACCESS_SECRET and JWT_REFRESH_SECRET are required",
		},
		{
			name:    "shared secret",
			mutate:  func(cfg *config.Config) { cfg.JWT.RefreshSecret = "access" },
			wantErr: "access and refresh secrets must differ",
		},
		{
			name:    "kafka without brokers",
			mutate:  func(cfg *config.Config) { cfg.Kafka.Enable = true },
			wantErr: "KAFKA_BROKERS is required when KAFKA_ENABLE is set",
		},
		{
			name: "every problem is reported",
			mutate: func(cfg *config.Config) {
				cfg.JWT.AccessSecret = ""
				cfg.DB.Postgres.Write.Host = ""
			},
			wantErr: "JWT_ACCESS_SECRET and JWT_REFRESH_SECRET are required\nDB_POSTGRES_WRITE_HOST is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)

			err := cfg.Validate()

			if tt.wantErr == "" {
				assert.NoError(t, err)

				return
			}

			assert.EqualError(t, err, tt.wantErr)
		})
	}
}
