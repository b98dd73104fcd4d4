package main

import (
	"fmt"
	"io"

	"github.com/signadot/docpatch"
	"github.com/signadot/docpatch/encode"
	"github.com/signadot/docpatch/ir"
	"github.com/signadot/docpatch/pointer"

	"github.com/expr-lang/expr"
	"github.com/scott-cotton/cli"
)

func diff(cfg *DiffConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Diff.Parse(cc, args)
	if err != nil {
		cfg.Diff.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) != 2 {
		return fmt.Errorf("%w: diff requires two document arguments", cli.ErrUsage)
	}
	src, err := parseArg(cfg.MainConfig, args[0])
	if err != nil {
		return err
	}
	dst, err := parseArg(cfg.MainConfig, args[1])
	if err != nil {
		return err
	}
	if cfg.Reverse {
		src, dst = dst, src
	}
	p, err := docpatch.MakePatch(src, dst)
	if err != nil {
		return fmt.Errorf("error diffing %s %s: %w", args[0], args[1], err)
	}
	if cfg.Where != "" {
		p, err = filterOps(p, cfg.Where)
		if err != nil {
			return fmt.Errorf("%w: %v", cli.ErrUsage, err)
		}
	}
	if cfg.Text {
		return renderText(cfg, cc.Out, src, p)
	}
	if err := encode.Encode(p.Node(), cc.Out, cfg.encOpts(cc.Out)...); err != nil {
		return fmt.Errorf("error encoding patch: %w", err)
	}
	return nil
}

// filterOps keeps the operations for which the where expression holds.
// The expression sees op, path, and from as strings.
func filterOps(p docpatch.Patch, where string) (docpatch.Patch, error) {
	env := map[string]any{"op": "", "path": "", "from": ""}
	prog, err := expr.Compile(where, expr.Env(env), expr.AsBool())
	if err != nil {
		return nil, err
	}
	res := make(docpatch.Patch, 0, len(p))
	for _, op := range p {
		n := op.Node()
		env["op"] = string(op.Kind())
		env["path"] = fieldString(n, "path")
		env["from"] = fieldString(n, "from")
		keep, err := expr.Run(prog, env)
		if err != nil {
			return nil, err
		}
		if keep.(bool) {
			res = append(res, op)
		}
	}
	return res, nil
}

func fieldString(n *ir.Node, field string) string {
	if v := ir.Get(n, field); v != nil {
		return v.String
	}
	return ""
}

// renderText writes a line-per-operation human readable form. Replaced
// strings are rendered as inline diffs against their value in src.
func renderText(cfg *DiffConfig, w io.Writer, src *ir.Node, p docpatch.Patch) error {
	colored := textColor(cfg)
	for _, op := range p {
		var line string
		switch o := op.(type) {
		case *docpatch.AddOp:
			line = fmt.Sprintf("add %s: %s", pstr(o.Path), encode.MustString(o.Value))
		case *docpatch.RemoveOp:
			line = fmt.Sprintf("remove %s", pstr(o.Path))
		case *docpatch.ReplaceOp:
			line = renderReplace(src, o, colored)
		case *docpatch.MoveOp:
			line = fmt.Sprintf("move %s -> %s", pstr(o.From), pstr(o.Path))
		case *docpatch.CopyOp:
			line = fmt.Sprintf("copy %s -> %s", pstr(o.From), pstr(o.Path))
		case *docpatch.TestOp:
			line = fmt.Sprintf("test %s: %s", pstr(o.Path), encode.MustString(o.Value))
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

func renderReplace(src *ir.Node, o *docpatch.ReplaceOp, colored bool) string {
	old, err := o.Path.Resolve(src)
	if err == nil && old.Type == ir.StringType && o.Value.Type == ir.StringType {
		return fmt.Sprintf("replace %s: %s", pstr(o.Path), inlineDiff(old.String, o.Value.String, colored))
	}
	if err == nil {
		return fmt.Sprintf("replace %s: %s -> %s", pstr(o.Path),
			encode.MustString(old), encode.MustString(o.Value))
	}
	return fmt.Sprintf("replace %s: %s", pstr(o.Path), encode.MustString(o.Value))
}

// pstr shows the root pointer visibly.
func pstr(p pointer.Pointer) string {
	if len(p) == 0 {
		return "(root)"
	}
	return p.String()
}
