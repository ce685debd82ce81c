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


package progressbar

import (
	"fmt"
	"io"

	"github.com/schollz/progressbar/v3"
	"github.com/sirupsen/logrus"
)

// FileProgress counts checked files on a terminal:
// [checking 3 files]  66% [=================>         ] (2/3) [0s:0s]
type FileProgress struct {
	bar    *progressbar.ProgressBar
	failed int
}

// NewFileProgress sizes the bar to half of a terminal of termWidth columns.
func NewFileProgress(w io.Writer, total int, termWidth int) *FileProgress {
	width := termWidth / 2
	if width > 50 {
		width = 50
	}
	if width < 10 {
		width = 10
	}
	return &FileProgress{
		bar: progressbar.NewOptions(total,
			progressbar.OptionSetWriter(w),
			progressbar.OptionEnableColorCodes(true),
			progressbar.OptionSetWidth(width),
			progressbar.OptionShowCount(),
			progressbar.OptionClearOnFinish(),
			progressbar.OptionSetTheme(progressbar.Theme{
				Saucer:        "=",
				SaucerHead:    ">",
				SaucerPadding: " ",
				BarStart:      "[",
				BarEnd:        "]",
			}),
			progressbar.OptionSetDescription("checking files"),
		),
	}
}

// Done advances the bar by one file; a failed file is counted in the description.
func (p *FileProgress) Done(file string, err error) {
	if err != nil {
		p.failed++
		p.bar.Describe(fmt.Sprintf("checking files, [red]%d failed[reset]", p.failed))
	}
	if err := p.bar.Add(1); err != nil {
		logrus.Debugf("failed to advance progress bar after %s: %v", file, err)
	}
}

func (p *FileProgress) Finish() {
	if err := p.bar.Finish(); err != nil {
		logrus.Debugf("failed to finish progress bar: %v", err)
	}
}
