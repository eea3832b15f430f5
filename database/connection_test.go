package database

import (
	"testing"

	"github.com/Ananth-NQI/fraudshield-backend/internal/config"
	"github.com/stretchr/testify/assert"
)

func TestDSN(t *testing.T) {
	tests := []struct {
		name string
		cfg  config.Config
		want string
	}{
		{
			name: "explicit url",
			cfg:  config.Config{DatabaseURL: "postgres://u:p@db/fraud"},
			want: "postgres://u:p@db/fraud",
		},
		{
			name: "cloud sql socket",
			cfg:  config.Config{InstanceConnectionName: "proj:region:inst", DBUser: "postgres", DBPass: "pw", DBName: "fraudshield"},
			want: "host=/cloudsql/proj:region:inst user=postgres password=pw dbname=fraudshield sslmode=disable",
		},
		{
			name: "tcp defaults to localhost",
			cfg:  config.Config{DBUser: "postgres", DBPass: "pw", DBName: "fraudshield", DBPort: "5432"},
			want: "host=localhost user=postgres password=pw dbname=fraudshield port=5432 sslmode=disable",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DSN(&tt.cfg))
		})
	}
}
