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
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/sealerio/cgnsval/common"
)

var longCompletionCmdDescription = `Generate the autocompletion script for cgnsval for the bash or zsh shell.
To load completions in your current shell session:

	source <(cgnsval completion bash)

To load completions for every new session, execute once:

- Linux :
	## If bash-completion is not installed on Linux, please install the 'bash-completion' package
		cgnsval completion bash > /etc/bash_completion.d/cgnsval
	`

// NewCompletionCmd completionCmd represents the completion command
func NewCompletionCmd() *cobra.Command {
	completionCmd := &cobra.Command{
		Use:                   "completion",
		Short:                 "generate autocompletion script for bash or zsh",
		Long:                  longCompletionCmdDescription,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh"},
		Args:                  cobra.ExactValidArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var err error
			switch args[0] {
			case "bash":
				err = cmd.Root().GenBashCompletion(common.StdOut)
			case "zsh":
				err = cmd.Root().GenZshCompletion(common.StdOut)
			}
			return errors.Wrapf(err, "failed to generate %s completion", args[0])
		},
	}
	return completionCmd
}
