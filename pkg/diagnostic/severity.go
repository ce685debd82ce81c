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

package diagnostic

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// Severity grades a diagnostic.
type Severity int

const (
	SeverityError Severity = iota
	SeverityWarning
)

// String returns the one letter suffix used in catalog documentation.
func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "E"
	case SeverityWarning:
		return "W"
	default:
		return fmt.Sprintf("Severity(%d)", int(s))
	}
}

// Name returns the long form, Error or Warning.
func (s Severity) Name() string {
	switch s {
	case SeverityError:
		return "Error"
	case SeverityWarning:
		return "Warning"
	default:
		return s.String()
	}
}

// Status is the outcome of checking a node.
func (s Severity) Status() Status {
	if s == SeverityWarning {
		return StatusWarning
	}
	return StatusFail
}

func (s Severity) MarshalText() ([]byte, error) {
	return []byte(s.Name()), nil
}

func (s *Severity) UnmarshalText(text []byte) error {
	v, err := ParseSeverity(string(text))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// ParseSeverity accepts E, W, Error and Warning in any case.
func ParseSeverity(s string) (Severity, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "e", "error":
		return SeverityError, nil
	case "w", "warning":
		return SeverityWarning, nil
	}
	return 0, errors.Errorf("unknown severity %q, must be E or W", s)
}

// Status is the per node, per grammar outcome. Statuses are ordered:
// Ok < Good < Warning < Fail.
type Status int

const (
	// StatusOk means nothing was checked.
	StatusOk Status = iota
	// StatusGood means checks ran and found nothing.
	StatusGood
	StatusWarning
	StatusFail
)

func (s Status) String() string {
	switch s {
	case StatusOk:
		return "Ok"
	case StatusGood:
		return "Good"
	case StatusWarning:
		return "Warning"
	case StatusFail:
		return "Fail"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *Status) UnmarshalText(text []byte) error {
	for st := StatusOk; st <= StatusFail; st++ {
		if strings.EqualFold(st.String(), string(text)) {
			*s = st
			return nil
		}
	}
	return errors.Errorf("unknown status %q", string(text))
}

// Worst returns the most severe of s and others.
func (s Status) Worst(others ...Status) Status {
	w := s
	for _, o := range others {
		if o > w {
			w = o
		}
	}
	return w
}

// Worst folds statuses, StatusOk for none.
func Worst(statuses ...Status) Status {
	return StatusOk.Worst(statuses...)
}
