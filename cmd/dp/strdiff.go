package main

import (
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/sergi/go-diff/diffmatchpatch"
)

var (
	delColor = color.New(color.FgRed, color.CrossedOut)
	insColor = color.New(color.FgGreen)
)

// inlineDiff renders a character level diff of two strings on one
// line. Without color, deletions are wrapped in [-...-] and insertions
// in {+...+}.
func inlineDiff(old, new string, colored bool) string {
	dmp := diffmatchpatch.New()
	diffs := dmp.DiffCleanupSemantic(dmp.DiffMain(old, new, false))
	var b strings.Builder
	for _, d := range diffs {
		switch d.Type {
		case diffmatchpatch.DiffDelete:
			if colored {
				b.WriteString(delColor.Sprint(d.Text))
			} else {
				b.WriteString("[-" + d.Text + "-]")
			}
		case diffmatchpatch.DiffInsert:
			if colored {
				b.WriteString(insColor.Sprint(d.Text))
			} else {
				b.WriteString("{+" + d.Text + "+}")
			}
		default:
			b.WriteString(d.Text)
		}
	}
	return b.String()
}

func textColor(cfg *DiffConfig) bool {
	if cfg.Color {
		return true
	}
	for _, opt := range cfg.Main.Opts {
		if opt.Name == "color" && opt.Value != nil {
			return false
		}
	}
	return isatty.IsTerminal(os.Stdout.Fd())
}
