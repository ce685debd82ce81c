// Copyright © 2023 Alibaba Group Holding Ltd.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/sealerio/cgnsval/common"
	"github.com/sealerio/cgnsval/pkg/checker"
	"github.com/sealerio/cgnsval/pkg/logger"
	"github.com/sealerio/cgnsval/pkg/version"
)

type rootOpts struct {
	cfgFile     string
	debugModeOn bool
	hideLogTime bool
	hideLogPath bool
	logToFile   bool
	colorMode   string
}

var rootOpt rootOpts

const (
	colorModeNever  = "never"
	colorModeAlways = "always"
)

var supportedColorModes = []string{
	colorModeNever,
	colorModeAlways,
}

var longRootCmdDescription = `cgnsval checks CGNS trees against the structural rules of the format, the
SIDS standard and user grammars found in the grammar search path.
Every applicable check runs; diagnostics are reported per node path.
`

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:           common.AppName,
	Short:         "A validator for CGNS trees.",
	Long:          longRootCmdDescription,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		logrus.Errorf("%s-%s: %v", common.AppName, version.GetSingleVersion(), err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.AddCommand(NewCheckCmd(), NewListCmd(), NewGrammarsCmd(), NewVersionCmd(), NewCompletionCmd())

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&rootOpt.cfgFile, "config", "", fmt.Sprintf("config file of %s (default is $HOME/%s)", common.AppName, common.ConfigFileName))
	flags.BoolVarP(&rootOpt.debugModeOn, "debug", "d", false, "turn on debug mode")
	flags.BoolVar(&rootOpt.hideLogTime, "hide-time", false, "hide the log time")
	flags.BoolVar(&rootOpt.hideLogPath, "hide-path", false, "hide the log path")
	flags.BoolVar(&rootOpt.logToFile, "log-to-file", false, "write log message to disk")
	flags.StringVar(&rootOpt.colorMode, "color", colorModeAlways, fmt.Sprintf("set the log color mode, the possible values can be %v", supportedColorModes))

	flags.StringSliceP("grammar", "u", nil, "user grammar ids applied after G and S, in order")
	flags.StringSlice("search-path", nil, "directories searched for user grammar files (default is $HOME/.cgnsval/grammars)")
	flags.Bool("ignore-extension-errors", false, "skip user grammars that cannot be loaded instead of failing")
	bindFlags(flags, map[string]string{
		"grammars":              "grammar",
		"searchPath":            "search-path",
		"ignoreExtensionErrors": "ignore-extension-errors",
	})

	rootCmd.DisableAutoGenTag = true
}

// bindFlags binds viper keys to flags so the config file and CGNSVAL_*
// environment variables feed the same options.
func bindFlags(flags *pflag.FlagSet, keys map[string]string) {
	for key, name := range keys {
		if err := viper.BindPFlag(key, flags.Lookup(name)); err != nil {
			panic(fmt.Sprintf("failed to bind flag %s: %v", name, err))
		}
	}
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if err := logger.Init(logger.LogOptions{
		LogToFile:    rootOpt.logToFile,
		Verbose:      rootOpt.debugModeOn,
		HideLogTime:  rootOpt.hideLogTime,
		HideLogPath:  rootOpt.hideLogPath,
		DisableColor: rootOpt.colorMode == colorModeNever,
	}); err != nil {
		panic(fmt.Sprintf("failed to init logger: %v\n", err))
	}

	explicit := rootOpt.cfgFile != ""
	if !explicit {
		rootOpt.cfgFile = common.DefaultConfigFile()
	}
	viper.SetConfigFile(rootOpt.cfgFile)
	viper.SetEnvPrefix(common.EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if explicit || common.IsFileExist(rootOpt.cfgFile) {
			logrus.Warnf("failed to read config file %s: %v", rootOpt.cfgFile, err)
		}
		return
	}
	logrus.Debugf("using config file %s", viper.ConfigFileUsed())
}

// loadOptions reads checker options from flags, environment and config file,
// defaults filled in by checker.
func loadOptions() (checker.Options, error) {
	var opts checker.Options
	if err := viper.Unmarshal(&opts); err != nil {
		return opts, errors.Wrap(err, "failed to read options")
	}
	return opts.Complete()
}
