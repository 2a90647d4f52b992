package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/dataspec-format/dataspec"
	"github.com/dataspec-format/dataspec/ir"
	"github.com/dataspec-format/dataspec/load"

	"github.com/goccy/go-yaml"
	"github.com/scott-cotton/cli"
)

func search(cfg *SearchConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Search.Parse(cc, args)
	if err != nil {
		cfg.Search.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	path := cfg.Path
	if path == "" && len(args) > 0 {
		path = args[0]
		args = args[1:]
	}
	if path == "" {
		return fmt.Errorf("%w: search requires a datapath expression", cli.ErrUsage)
	}
	if cfg.Data == "" {
		return fmt.Errorf("%w: search requires -data", cli.ErrUsage)
	}
	if len(args) != 0 {
		return fmt.Errorf("%w: unexpected arguments %v", cli.ErrUsage, args)
	}
	p := &printer{w: cc.Out, color: cfg.useColor(cc.Out)}

	doc, err := load.File(cfg.Data, cfg.DataFormat)
	if err != nil {
		p.fail("cannot load data %s: %v", cfg.Data, err)
		return cli.ExitCodeErr(2)
	}
	res, err := dataspec.Search(doc, path)
	if err != nil {
		p.fail("%v", err)
		return cli.ExitCodeErr(1)
	}
	return writeResult(cc.Out, res)
}

// writeResult prints scalars bare and composites as YAML.
func writeResult(w io.Writer, res *ir.Node) error {
	if res.Type.IsLeaf() {
		var s string
		switch res.Type {
		case ir.NullType:
			s = "null"
		case ir.BoolType:
			s = strconv.FormatBool(res.Bool)
		case ir.NumberType:
			s = res.Number
		case ir.StringType:
			s = res.String
		}
		_, err := fmt.Fprintln(w, s)
		return err
	}
	d, err := yaml.Marshal(ir.ToAny(res))
	if err != nil {
		return fmt.Errorf("error encoding result: %w", err)
	}
	_, err = w.Write(d)
	return err
}
