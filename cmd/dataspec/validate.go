package main

import (
	"fmt"

	"github.com/dataspec-format/dataspec"
	"github.com/dataspec-format/dataspec/load"
	"github.com/dataspec-format/dataspec/schema"

	"github.com/scott-cotton/cli"
)

func validate(cfg *ValidateConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Validate.Parse(cc, args)
	if err != nil {
		cfg.Validate.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if cfg.Schema == "" || cfg.Data == "" {
		return fmt.Errorf("%w: validate requires -schema and -data", cli.ErrUsage)
	}
	if len(args) != 0 {
		return fmt.Errorf("%w: unexpected arguments %v", cli.ErrUsage, args)
	}
	p := &printer{w: cc.Out, color: cfg.useColor(cc.Out)}

	schemaDoc, err := load.File(cfg.Schema, cfg.SchemaFormat)
	if err != nil {
		p.fail("cannot load schema %s: %v", cfg.Schema, err)
		return cli.ExitCodeErr(2)
	}
	model, err := schema.Load(schemaDoc)
	if err != nil {
		p.fail("invalid schema %s: %v", cfg.Schema, err)
		return cli.ExitCodeErr(2)
	}
	doc, err := load.File(cfg.Data, cfg.DataFormat)
	if err != nil {
		p.fail("cannot load data %s: %v", cfg.Data, err)
		return cli.ExitCodeErr(2)
	}

	var vOpts []dataspec.ValidateOpt
	if cfg.MaxDepth > 0 {
		vOpts = append(vOpts, dataspec.WithMaxDepth(cfg.MaxDepth))
	}
	res, err := dataspec.Validate(doc, model, vOpts...)
	if err != nil {
		return err
	}
	if res.OK() {
		p.pass("%s is valid against %s", cfg.Data, cfg.Schema)
		return nil
	}
	p.fail("%s is not valid against %s: %d error(s)", cfg.Data, cfg.Schema, len(res.Errors))
	for _, e := range res.Errors {
		fmt.Fprintf(cc.Out, "  %s\n", e.Error())
	}
	return cli.ExitCodeErr(1)
}
