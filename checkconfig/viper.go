// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package checkconfig

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	// FileFlag names the flag holding the full path to a configuration file.
	FileFlag = "file"

	// NameFlag names the flag holding the configuration file name to search for.
	NameFlag = "name"
)

// NewViper produces a Viper instance configured with the standard conventions.
// The applicationName is used as the configuration file name, the environment prefix,
// and to generate the paths under /etc and $HOME to look for configuration files.
// Automatic environment mode is turned on, with nested keys joined by underscores.
func NewViper(applicationName string) *viper.Viper {
	v := viper.New()
	v.SetConfigName(applicationName)
	v.AddConfigPath(fmt.Sprintf("/etc/%s", applicationName))
	v.AddConfigPath(fmt.Sprintf("$HOME/.%s", applicationName))
	v.AddConfigPath(".")
	v.SetEnvPrefix(applicationName)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// NewFlagSet creates the command line flags understood by a check service.
func NewFlagSet(applicationName string) *pflag.FlagSet {
	fs := pflag.NewFlagSet(applicationName, pflag.ContinueOnError)
	fs.StringP(FileFlag, "f", "", "the fully qualified path of the configuration file")
	fs.StringP(NameFlag, "n", applicationName, "the name of the configuration file to search for")
	fs.String("server.address", "", "the address the health endpoints are served on")
	fs.Duration("health.interval", 0, "how often the health checks are evaluated")
	return fs
}

// ParseAndBind parses the given flag set using the supplied arguments and then binds
// the flag set to the specified Viper instance.  If arguments is nil, os.Args[1:] is used instead.
func ParseAndBind(v *viper.Viper, fs *pflag.FlagSet, arguments []string) error {
	if arguments == nil {
		arguments = os.Args[1:]
	}

	if err := fs.Parse(arguments); err != nil {
		return err
	}

	// only explicitly set flags override configuration
	var err error
	fs.Visit(func(f *pflag.Flag) {
		if err == nil {
			err = v.BindPFlag(f.Name, f)
		}
	})

	return err
}

// Configer is the subset of Viper behavior dealing with configuration paths and locations
type Configer interface {
	SetConfigName(string)
	SetConfigFile(string)
}

// FlagLookup is the behavior expected of a pflag.FlagSet to lookup individual flags by longhand name.
type FlagLookup interface {
	Lookup(string) *pflag.Flag
}

// BindConfig points c at the file named by the file flag, if set, or else at the name given
// by the name flag.  It returns true if the file flag was used.
func BindConfig(c Configer, fl FlagLookup) (explicitFile bool) {
	if f := fl.Lookup(FileFlag); f != nil && len(f.Value.String()) > 0 {
		c.SetConfigFile(f.Value.String())
		return true
	}

	if f := fl.Lookup(NameFlag); f != nil && len(f.Value.String()) > 0 {
		c.SetConfigName(f.Value.String())
	}

	return false
}

// Defaults is a set of default configuration values, keyed by viper key.
type Defaults map[string]interface{}

type defaulter interface {
	SetDefault(string, interface{})
}

// ApplyDefaults sets every default on d.
func ApplyDefaults(d defaulter, defaults Defaults) {
	for key, value := range defaults {
		d.SetDefault(key, value)
	}
}

// ReadInConfig binds the flags to v and reads the configuration file.  A missing file is
// tolerated when it was only searched for by name, so that a service can run from defaults
// and the environment alone.
func ReadInConfig(v *viper.Viper, fs *pflag.FlagSet, arguments []string) error {
	if err := ParseAndBind(v, fs, arguments); err != nil {
		return err
	}

	explicitFile := BindConfig(v, fs)
	err := v.ReadInConfig()

	var notFound viper.ConfigFileNotFoundError
	if errors.As(err, &notFound) && !explicitFile {
		return nil
	}

	return err
}
