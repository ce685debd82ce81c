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
	"bytes"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"
)

const (
	colorRed    = 31
	colorYellow = 33
	colorBlue   = 36
	colorGray   = 37
)

const defaultTimestampFormat = "2006-01-02 15:04:05"

func getColorByLevel(level logrus.Level) int {
	switch level {
	case logrus.DebugLevel, logrus.TraceLevel:
		return colorGray
	case logrus.WarnLevel:
		return colorYellow
	case logrus.ErrorLevel, logrus.FatalLevel, logrus.PanicLevel:
		return colorRed
	default:
		return colorBlue
	}
}

// Formatter renders "<time> [LEVEL] [file:line] message k=v ...".
// Fields are sorted so a validation run logs the same line every time.
type Formatter struct {
	DisableColor bool
	// HideLogTime drops the leading timestamp.
	HideLogTime bool
	// HideLogPath drops the caller file and line.
	HideLogPath     bool
	TimestampFormat string
}

func (f *Formatter) Format(entry *logrus.Entry) ([]byte, error) {
	b := entry.Buffer
	if b == nil {
		b = &bytes.Buffer{}
	}

	timestampFormat := f.TimestampFormat
	if timestampFormat == "" {
		timestampFormat = defaultTimestampFormat
	}

	if !f.HideLogTime {
		b.WriteString(entry.Time.Format(timestampFormat))
	}

	var line strings.Builder
	fmt.Fprintf(&line, " [%s]", strings.ToUpper(entry.Level.String()))
	if !f.HideLogPath && entry.HasCaller() {
		fmt.Fprintf(&line, " [%s:%d]", filepath.Base(entry.Caller.File), entry.Caller.Line)
	}
	line.WriteString(" ")
	line.WriteString(entry.Message)
	writeFields(&line, entry.Data)

	if f.DisableColor {
		b.WriteString(line.String())
	} else {
		fmt.Fprintf(b, "\033[%dm%s\033[0m", getColorByLevel(entry.Level), line.String())
	}
	b.WriteByte('\n')

	return b.Bytes(), nil
}

func writeFields(w *strings.Builder, data logrus.Fields) {
	if len(data) == 0 {
		return
	}
	keys := make([]string, 0, len(data))
	for k := range data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(w, " %s=%v", k, data[k])
	}
}
