package flagx

import (
	"os"
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
			args:         []string{"-c", "conf.json", "-d", "storage/uploads"},
			allowedFlags: []string{"-c", "--config"},
			want:         []string{"-c", "conf.json"},
		},
		{
			name:         "long flag with equals",
			args:         []string{"--config=alt.json", "-d", "storage/uploads"},
			allowedFlags: []string{"-c", "--config"},
			want:         []string{"--config=alt.json"},
		},
		{
			name:         "unknown flags ignored",
			args:         []string{"-x", "1", "--y=2", "positional"},
			allowedFlags: []string{"-c"},
			want:         []string{},
		},
		{
			name:         "flag without value at end is kept",
			args:         []string{"-c"},
			allowedFlags: []string{"-c"},
			want:         []string{"-c"},
		},
		{
			name:         "next dash token is not a value",
			args:         []string{"-c", "--config=alt.json"},
			allowedFlags: []string{"-c", "--config"},
			want:         []string{"-c", "--config=alt.json"},
		},
		{
			name:         "repeated flag preserved in order",
			args:         []string{"-m", "10", "-m", "20"},
			allowedFlags: []string{"-m"},
			want:         []string{"-m", "10", "-m", "20"},
		},
		{
			name:         "equals value that looks like a flag",
			args:         []string{"-o=-1"},
			allowedFlags: []string{"-o"},
			want:         []string{"-o=-1"},
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
			assert.Equal(t, tt.want, FilterArgs(tt.args, tt.allowedFlags))
		})
	}
}

func TestConfigFile(t *testing.T) {
	t.Setenv(ConfigEnvVar, "")

	assert.Equal(t, "/path/short.json", ConfigFile([]string{"-c", "/path/short.json"}))
	assert.Equal(t, "/path/long.json", ConfigFile([]string{"-config", "/path/long.json", "-d", "x"}))
	assert.Equal(t, "/path/2.json", ConfigFile([]string{"-c", "/path/1.json", "-config", "/path/2.json"}))
	assert.Empty(t, ConfigFile([]string{"-x", "1"}))
}

func TestConfigFile_EnvFallback(t *testing.T) {
	t.Setenv(ConfigEnvVar, "/etc/placebot.json")

	assert.Equal(t, "/etc/placebot.json", ConfigFile(nil))
	assert.Equal(t, "/flag.json", ConfigFile([]string{"-c", "/flag.json"}))
}

func TestJsonConfigFlags_UsesProcessArgs(t *testing.T) {
	t.Setenv(ConfigEnvVar, "")
	orig := os.Args
	t.Cleanup(func() { os.Args = orig })

	os.Args = []string{"bot", "-c", "/path/from-args.json"}
	assert.Equal(t, "/path/from-args.json", JsonConfigFlags())
}

func TestSplitList(t *testing.T) {
	assert.Equal(t, []string{"RobloxDev", "Admin"}, SplitList(" RobloxDev, ,Admin "))
	assert.Nil(t, SplitList(""))
}
