package main

import (
	"fmt"
	"io"
	"os"

	"github.com/signadot/docpatch"
	"github.com/signadot/docpatch/encode"
	"github.com/signadot/docpatch/parse"

	"github.com/scott-cotton/cli"
)

func apply(cfg *ApplyConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Apply.Parse(cc, args)
	if err != nil {
		cfg.Apply.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) == 0 {
		return fmt.Errorf("%w: apply requires a patch argument", cli.ErrUsage)
	}
	p, err := readPatch(cfg, args[0])
	if err != nil {
		return err
	}
	files := args[1:]
	if len(files) == 0 {
		files = []string{"-"}
	}
	for i, arg := range files {
		doc, err := parseArg(cfg.MainConfig, arg)
		if err != nil {
			return err
		}
		res, err := p.Apply(doc)
		if err != nil {
			return fmt.Errorf("error patching %s: %w", arg, err)
		}
		if i > 0 {
			if _, err := cc.Out.Write([]byte("\n---\n")); err != nil {
				return err
			}
		}
		if err := encode.Encode(res, cc.Out, cfg.encOpts(cc.Out)...); err != nil {
			return fmt.Errorf("error encoding result: %w", err)
		}
	}
	return nil
}

func readPatch(cfg *ApplyConfig, arg string) (docpatch.Patch, error) {
	var d []byte
	switch {
	case cfg.String:
		d = []byte(arg)
	case arg == "-":
		var err error
		d, err = io.ReadAll(os.Stdin)
		if err != nil {
			return nil, err
		}
	default:
		var err error
		d, err = os.ReadFile(arg)
		if err != nil {
			return nil, fmt.Errorf("error opening %s: %w", arg, err)
		}
	}
	n, err := parse.Parse(d, cfg.parseOpts()...)
	if err != nil {
		return nil, fmt.Errorf("error decoding patch: %w", err)
	}
	p, err := docpatch.FromIR(n)
	if err != nil {
		return nil, fmt.Errorf("invalid patch %s: %w", arg, err)
	}
	return p, nil
}
