package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/weave/internal/compiler"
)

func newCompileCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compile <pipeline-file>",
		Short: "Print the compiled instruction vector for a pipeline file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			lines, _, err := readPipelineFile(args[0], "")
			if err != nil {
				return err
			}
			instructions, err := compiler.NewDefault().Compile(lines)
			if err != nil {
				return err
			}
			for i, instr := range instructions {
				fmt.Fprintf(cmd.OutOrStdout(), "%3d  %s\n", i, formatCompiledInstruction(instr))
			}
			return nil
		},
	}
	return cmd
}

func formatCompiledInstruction(instr compiler.Instruction) string {
	first := instr.First()
	var head string
	switch first.Kind {
	case compiler.TokenOp:
		head = fmt.Sprintf("op:%s", first.Op)
	case compiler.TokenCall:
		head = fmt.Sprintf("call:%s", first.Text)
	case compiler.TokenComment:
		head = fmt.Sprintf("comment:%s", first.Text)
	case compiler.TokenReference:
		head = fmt.Sprintf("reference:%s", first.Text)
	default:
		head = "noop"
	}
	for _, arg := range instr.Args() {
		head += " " + arg.Text
	}
	return head
}
