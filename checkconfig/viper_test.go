// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package checkconfig

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewViper(t *testing.T) {
	var (
		assert = assert.New(t)
		v      = NewViper("checktest")
	)

	t.Setenv("CHECKTEST_SERVER_ADDRESS", ":9999")
	assert.Equal(":9999", v.GetString("server.address"))
}

func testParseAndBindOverrides(t *testing.T) {
	var (
		assert  = assert.New(t)
		require = require.New(t)
		v       = NewViper("checktest")
		fs      = NewFlagSet("checktest")
	)

	v.SetDefault("server.address", ":8080")
	v.SetDefault("health.interval", "30s")

	require.NoError(ParseAndBind(v, fs, []string{"--server.address", ":7070"}))
	assert.Equal(":7070", v.GetString("server.address"))

	// flags that were not set don't mask configuration
	assert.Equal(30*time.Second, v.GetDuration("health.interval"))
}

func testParseAndBindInvalid(t *testing.T) {
	var (
		v  = NewViper("checktest")
		fs = NewFlagSet("checktest")
	)

	fs.SetOutput(new(nopWriter))
	assert.Error(t, ParseAndBind(v, fs, []string{"--nosuch"}))
}

func TestParseAndBind(t *testing.T) {
	t.Run("Overrides", testParseAndBindOverrides)
	t.Run("Invalid", testParseAndBindInvalid)
}

type nopWriter struct{}

func (nopWriter) Write(p []byte) (int, error) { return len(p), nil }

type testConfiger struct {
	name, file string
}

func (tc *testConfiger) SetConfigName(name string) { tc.name = name }
func (tc *testConfiger) SetConfigFile(file string) { tc.file = file }

func TestBindConfig(t *testing.T) {
	testData := []struct {
		arguments    []string
		expectedFile string
		expectedName string
		explicit     bool
	}{
		{nil, "", "checktest", false},
		{[]string{"-n", "other"}, "", "other", false},
		{[]string{"-f", "/etc/checktest/custom.yaml"}, "/etc/checktest/custom.yaml", "", true},
		{[]string{"--file", "custom.yaml", "--name", "ignored"}, "custom.yaml", "", true},
	}

	for _, record := range testData {
		var (
			assert  = assert.New(t)
			require = require.New(t)
			fs      = NewFlagSet("checktest")
			c       = new(testConfiger)
		)

		require.NoError(fs.Parse(record.arguments))
		assert.Equal(record.explicit, BindConfig(c, fs))
		assert.Equal(record.expectedFile, c.file)
		assert.Equal(record.expectedName, c.name)
	}

	assert.False(t, BindConfig(new(testConfiger), pflag.NewFlagSet("empty", pflag.ContinueOnError)))
}

func testReadInConfigFile(t *testing.T) {
	var (
		assert  = assert.New(t)
		require = require.New(t)
		file    = filepath.Join(t.TempDir(), "custom.yaml")
	)

	require.NoError(os.WriteFile(file, []byte("server:\n  address: \":6060\"\n"), 0o600))

	v := NewViper("checktest")
	require.NoError(ReadInConfig(v, NewFlagSet("checktest"), []string{"-f", file}))
	assert.Equal(":6060", v.GetString("server.address"))
}

func testReadInConfigMissingFile(t *testing.T) {
	var (
		v    = NewViper("checktest")
		file = filepath.Join(t.TempDir(), "nosuch.yaml")
	)

	assert.Error(t, ReadInConfig(v, NewFlagSet("checktest"), []string{"-f", file}))
}

func testReadInConfigMissingName(t *testing.T) {
	v := NewViper("checktest-nosuch")
	assert.NoError(t, ReadInConfig(v, NewFlagSet("checktest-nosuch"), []string{}))
}

func TestReadInConfig(t *testing.T) {
	t.Run("File", testReadInConfigFile)
	t.Run("MissingFile", testReadInConfigMissingFile)
	t.Run("MissingName", testReadInConfigMissingName)
}
