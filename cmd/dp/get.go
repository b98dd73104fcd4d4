package main

import (
	"fmt"

	"github.com/signadot/docpatch/encode"
	"github.com/signadot/docpatch/pointer"

	"github.com/scott-cotton/cli"
)

func get(cfg *GetConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Get.Parse(cc, args)
	if err != nil {
		cfg.Get.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) == 0 {
		return fmt.Errorf("%w: get requires a pointer argument", cli.ErrUsage)
	}
	p, err := pointer.Parse(args[0])
	if err != nil {
		return fmt.Errorf("%w: %v", cli.ErrUsage, err)
	}
	files := args[1:]
	if len(files) == 0 {
		files = []string{"-"}
	}
	for _, arg := range files {
		doc, err := parseArg(cfg.MainConfig, arg)
		if err != nil {
			return err
		}
		res, err := p.Resolve(doc)
		if err != nil {
			return fmt.Errorf("error resolving %s in %s: %w", p, arg, err)
		}
		if err := encode.Encode(res, cc.Out, cfg.encOpts(cc.Out)...); err != nil {
			return fmt.Errorf("error encoding result: %w", err)
		}
	}
	return nil
}
