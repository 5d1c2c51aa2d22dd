package flagx

import (
	"os"
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
			name:    "short flag with separate value",
			args:    []string{"-c", "conf.json", "-a", "localhost"},
			allowed: []string{"-c", "--config"},
			want:    []string{"-c", "conf.json"},
		},
		{
			name:    "long flag with equals",
			args:    []string{"--config=alt.json", "-a", "localhost"},
			allowed: []string{"-c", "--config"},
			want:    []string{"--config=alt.json"},
		},
		{
			name:    "unknown flags ignored",
			args:    []string{"-x", "1", "--y=2", "positional"},
			allowed: []string{"-c", "--config"},
			want:    []string{},
		},
		{
			name:    "flag followed by another flag keeps no value",
			args:    []string{"-c", "-notvalue"},
			allowed: []string{"-c"},
			want:    []string{"-c"},
		},
		{
			name:    "order preserved across forms",
			args:    []string{"--config=first.json", "-c", "second.json"},
			allowed: []string{"-c", "--config"},
			want:    []string{"--config=first.json", "-c", "second.json"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FilterArgs(tt.args, tt.allowed))
		})
	}
}

func TestJsonConfigFlags(t *testing.T) {
	orig := os.Args
	defer func() { os.Args = orig }()

	os.Args = []string{"app", "-a", "localhost:8080", "-c", "conf.json"}
	assert.Equal(t, "conf.json", JsonConfigFlags())

	os.Args = []string{"app", "--config=alt.json"}
	assert.Equal(t, "alt.json", JsonConfigFlags())

	os.Args = []string{"app", "-a", "localhost:8080"}
	assert.Equal(t, "", JsonConfigFlags())
}
