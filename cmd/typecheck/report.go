package main

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"

	"github.com/funvibe/typecheck/internal/diagnostics"
)

// reporter prints a module's diagnostics, colorizing the kind tag
// when stdout is a terminal (grounded on the teacher's
// internal/evaluator/builtins_term.go isatty.IsTerminal gate and
// sunholo/ailang's fatih/color CLI diagnostics).
type reporter struct {
	out     io.Writer
	colored bool
}

func newReporter(out *os.File) *reporter {
	return &reporter{
		out:     out,
		colored: isatty.IsTerminal(out.Fd()) || isatty.IsCygwinTerminal(out.Fd()),
	}
}

func (r *reporter) report(moduleName string, ds []*diagnostics.Diagnostic) {
	if len(ds) == 0 {
		return
	}
	errTag := color.New(color.FgRed, color.Bold).SprintFunc()
	for _, d := range ds {
		if r.colored {
			fmt.Fprintf(r.out, "%s: %s\n", moduleName, errTag(d.Error()))
			continue
		}
		fmt.Fprintf(r.out, "%s: %s\n", moduleName, d.Error())
	}
}
