package flagx

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilterArgs(t *testing.T) {
	tests := []struct {
		name         string
		args         []string
		allowedFlags []string
		want         []string
	}{
		{
			name:         "short flag with separate value",
			args:         []string{"-c", "conf.json", "-a", ":3001"},
			allowedFlags: []string{"-c", "-config"},
			want:         []string{"-c", "conf.json"},
		},
		{
			name:         "flag with equals",
			args:         []string{"-config=alt.json", "-a", ":3001"},
			allowedFlags: []string{"-c", "-config"},
			want:         []string{"-config=alt.json"},
		},
		{
			name:         "unknown flags and positionals ignored",
			args:         []string{"-x", "1", "--y=2", "positional"},
			allowedFlags: []string{"-c"},
			want:         []string{},
		},
		{
			name:         "flag without value at end is kept",
			args:         []string{"-as"},
			allowedFlags: []string{"-as"},
			want:         []string{"-as"},
		},
		{
			name:         "dash-prefixed next token is not a value",
			args:         []string{"-c", "-rs", "refresh-secret"},
			allowedFlags: []string{"-c", "-rs"},
			want:         []string{"-c", "-rs", "refresh-secret"},
		},
		{
			name:         "equals value may start with dashes",
			args:         []string{"-config=--weird.json"},
			allowedFlags: []string{"-config"},
			want:         []string{"-config=--weird.json"},
		},
		{
			name:         "repeated flag keeps order",
			args:         []string{"-t", "15m", "-t", "30m"},
			allowedFlags: []string{"-t"},
			want:         []string{"-t", "15m", "-t", "30m"},
		},
		{
			name:         "empty args",
			args:         []string{},
			allowedFlags: []string{"-c"},
			want:         []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FilterArgs(tt.args, tt.allowedFlags)
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("FilterArgs() = %#v, want %#v", got, tt.want)
			}
		})
	}
}

func TestConfigPath(t *testing.T) {
	assert.Equal(t, "/etc/ak.json", ConfigPath([]string{"-c", "/etc/ak.json"}))
	assert.Equal(t, "/etc/long.json", ConfigPath([]string{"-a", ":1", "-config", "/etc/long.json"}))
	assert.Equal(t, "/etc/eq.json", ConfigPath([]string{"-config=/etc/eq.json"}))
	assert.Empty(t, ConfigPath([]string{"-x", "1"}))
	assert.Equal(t, "/2.json", ConfigPath([]string{"-c", "/1.json", "-config", "/2.json"}))
}
