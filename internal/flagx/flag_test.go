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
			name:    "separate value",
			args:    []string{"-c", "conf.json", "-a", "http://localhost"},
			allowed: []string{"-c"},
			want:    []string{"-c", "conf.json"},
		},
		{
			name:    "equals form",
			args:    []string{"-config=alt.json", "-a", "http://localhost"},
			allowed: []string{"-config"},
			want:    []string{"-config=alt.json"},
		},
		{
			name:    "order preserved",
			args:    []string{"-config=first.json", "-c", "second.json", "-x", "1"},
			allowed: []string{"-c", "-config"},
			want:    []string{"-config=first.json", "-c", "second.json"},
		},
		{
			name:    "nothing allowed",
			args:    []string{"-x", "1", "-y=2", "positional"},
			allowed: []string{"-c"},
			want:    []string{},
		},
		{
			name:    "trailing flag without value",
			args:    []string{"-c"},
			allowed: []string{"-c"},
			want:    []string{"-c"},
		},
		{
			name:    "next arg is a flag",
			args:    []string{"-c", "-a"},
			allowed: []string{"-c"},
			want:    []string{"-c"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FilterArgs(tt.args, tt.allowed)
			assert.NotNil(t, got)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestConfigFileFlags(t *testing.T) {
	t.Run("short json and env", func(t *testing.T) {
		got := ConfigFileFlags([]string{"-a", "http://x", "-c", "cfg.json", "-env", ".env.local"})
		assert.Equal(t, ConfigFiles{JSON: "cfg.json", Env: ".env.local"}, got)
	})

	t.Run("long json with equals", func(t *testing.T) {
		got := ConfigFileFlags([]string{"-config=/etc/roomadmin.json"})
		assert.Equal(t, "/etc/roomadmin.json", got.JSON)
		assert.Empty(t, got.Env)
	})

	t.Run("none", func(t *testing.T) {
		assert.Equal(t, ConfigFiles{}, ConfigFileFlags([]string{"-u", "4"}))
	})
}
