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


package logger

import (
	"io"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

type LogOptions struct {
	// OutputPath is the directory of the rotated log file, default is common.DefaultLogDir.
	OutputPath string
	// Verbose switches logrus to debug level.
	Verbose bool
	// DisableColor if true will disable outputting colors.
	DisableColor bool
	HideLogTime  bool
	HideLogPath  bool
	// LogToFile also writes every entry to a daily rotated cgnsval.log.
	LogToFile bool
	// Output overrides the console writer, stderr when nil.
	Output io.Writer
}

func Init(options LogOptions) error {
	if options.Verbose {
		logrus.SetLevel(logrus.DebugLevel)
	} else {
		logrus.SetLevel(logrus.InfoLevel)
	}

	logrus.SetReportCaller(true)

	logrus.SetFormatter(&Formatter{
		DisableColor: options.DisableColor,
		HideLogTime:  options.HideLogTime,
		HideLogPath:  options.HideLogPath,
	})

	if options.Output != nil {
		logrus.SetOutput(options.Output)
	}

	if options.LogToFile {
		fh, err := NewFileHook(options.OutputPath)
		if err != nil {
			return errors.Wrap(err, "failed to init log file hook")
		}
		logrus.AddHook(fh)
	}

	return nil
}
