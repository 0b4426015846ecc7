package flagx

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilterArgs(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		allowed []string
		want    []string
	}{
		{
			name:    "keeps allowed flag with separate value",
			args:    []string{"-a", ":4000", "-x", "other"},
			allowed: []string{"-a"},
			want:    []string{"-a", ":4000"},
		},
		{
			name:    "keeps allowed flag with equals value",
			args:    []string{"-d=postgres://dsn", "-x=1"},
			allowed: []string{"-d"},
			want:    []string{"-d=postgres://dsn"},
		},
		{
			name:    "drops unknown flags",
			args:    []string{"-x", "1", "-y"},
			allowed: []string{"-a", "-d"},
			want:    []string{},
		},
		{
			name:    "flag without value before another flag",
			args:    []string{"-a", "-d", "dsn"},
			allowed: []string{"-a", "-d"},
			want:    []string{"-a", "-d", "dsn"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FilterArgs(tt.args, tt.allowed))
		})
	}
}
