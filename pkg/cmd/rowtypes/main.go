// Copyright 2024 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

// rowtypes is a diagnostic tool that loads a YAML catalog definition and
// prints the row types the schema builds for it.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/geophile/sql-layer-sub008/pkg/geo/geoindex"
	"github.com/geophile/sql-layer-sub008/pkg/sql/cat/testcat"
	"github.com/geophile/sql-layer-sub008/pkg/sql/rowtype"
	"github.com/geophile/sql-layer-sub008/pkg/util/log"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var rootFlags = pflag.NewFlagSet(`rowtypes`, pflag.ExitOnError)
var catalogPath = rootFlags.String("catalog", "", "path of the YAML catalog definition")
var verbosity = rootFlags.Int32("v", 0, "log verbosity")
var redactable = rootFlags.Bool("redactable", false, "keep redaction markers in log output")

var rootCmd = &cobra.Command{
	Use:   "rowtypes",
	Short: "Inspect the row types built for a catalog",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return log.ApplyConfig(log.Config{Verbosity: *verbosity, Redactable: *redactable})
	},
	SilenceUsage: true,
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the row types of every table and index",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		schema, _, err := loadSchema(cmd.Context())
		if err != nil {
			return err
		}
		return printRowTypes(cmd.OutOrStdout(), schema.RowTypes())
	},
}

var explainCmd = &cobra.Command{
	Use:   "explain <table> [<child table>...]",
	Short: "Explain a table row type, or the flattening of a branch of tables",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		schema, tc, err := loadSchema(cmd.Context())
		if err != nil {
			return err
		}
		return catchAndPrint(cmd.OutOrStdout(), func() rowtype.RowType {
			var rt rowtype.RowType
			for _, name := range args {
				t := tableRowType(schema, tc, name)
				if rt == nil {
					rt = t
				} else {
					rt = schema.NewFlattenType(rt, t)
				}
			}
			return rt
		})
	},
}

var productCmd = &cobra.Command{
	Use:   "product <left table> <right table>",
	Short: "Explain the product of the branches ending at two tables",
	Long: `Explain the product of the branches ending at two tables. Each branch is
the flattening of the tables from the group root down to the given table, and
the branch table of the product is the deepest table common to both.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		schema, tc, err := loadSchema(cmd.Context())
		if err != nil {
			return err
		}
		return catchAndPrint(cmd.OutOrStdout(), func() rowtype.RowType {
			left := branchRowType(schema, tc, args[0])
			right := branchRowType(schema, tc, args[1])
			return schema.NewProductType(left, nil, right)
		})
	},
}

var ordinalCmd = &cobra.Command{
	Use:   "ordinal {<lat> <lon> | <wkt point>}",
	Short: "Print the packed spatial ordinal of a coordinate",
	Long: `Print the packed spatial ordinal of a coordinate, given either as a
latitude and longitude in degrees or as a WKT point such as 'POINT (lon lat)'.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := geoindex.DefaultConfig()
		cfg.S2.Level = *s2Level
		if err := cfg.Validate(cfg.Dimensions); err != nil {
			return err
		}
		var ord int64
		if len(args) == 1 {
			p, err := geoindex.ParsePoint(args[0])
			if err != nil {
				return err
			}
			if ord, err = geoindex.PointOrdinal(cfg, p); err != nil {
				return err
			}
		} else {
			coords := make([]float64, len(args))
			for i, a := range args {
				f, err := strconv.ParseFloat(a, 64)
				if err != nil {
					return errors.Wrapf(err, "coordinate %q", a)
				}
				coords[i] = f
			}
			var err error
			if ord, err = geoindex.Ordinal(cfg, coords...); err != nil {
				return err
			}
		}
		fmt.Fprintln(cmd.OutOrStdout(), ord)
		return nil
	},
}

var s2Level *int32

func init() {
	s2Level = ordinalCmd.Flags().Int32("level", geoindex.MaxS2Level, "S2 cell level")
	rootCmd.PersistentFlags().AddFlagSet(rootFlags)
	rootCmd.AddCommand(listCmd, explainCmd, productCmd, ordinalCmd)
}

func loadSchema(ctx context.Context) (*rowtype.Schema, *testcat.Catalog, error) {
	if *catalogPath == "" {
		return nil, nil, errors.New("--catalog is required")
	}
	tc, err := testcat.LoadFile(*catalogPath)
	if err != nil {
		return nil, nil, err
	}
	if ctx == nil {
		ctx = context.Background()
	}
	schema, err := rowtype.NewSchema(ctx, tc)
	if err != nil {
		return nil, nil, err
	}
	log.Infof(ctx, "loaded %d row types from %s", len(schema.RowTypes()), *catalogPath)
	return schema, tc, nil
}

func tableRowType(schema *rowtype.Schema, tc *testcat.Catalog, name string) *rowtype.TableRowType {
	t := tc.TableByName(name)
	if t == nil {
		panic(errors.Newf("table %s does not exist", name))
	}
	return schema.TableRowType(t)
}

// branchRowType returns the flattening of the tables from the group root down
// to the named table.
func branchRowType(schema *rowtype.Schema, tc *testcat.Catalog, name string) rowtype.RowType {
	var rt rowtype.RowType = tableRowType(schema, tc, name)
	for t := rt.Table().Parent(); t != nil; t = t.Parent() {
		rt = schema.NewFlattenType(schema.TableRowType(t), rt)
	}
	return rt
}

// catchAndPrint prints the explain output of the row type built by fn,
// converting panics raised while building it into errors.
func catchAndPrint(w io.Writer, fn func() rowtype.RowType) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = rowtype.CatchError(r)
		}
	}()
	rt := fn()
	fmt.Fprintf(w, "%s\n", rt)
	fmt.Fprint(w, rowtype.FormatExplain(rt))
	return nil
}

func printRowTypes(w io.Writer, rts []rowtype.RowType) error {
	table := tablewriter.NewWriter(w)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"id", "kind", "row type", "fields", "hkey", "tables"})
	for _, rt := range rts {
		fields := make([]string, rt.FieldCount())
		for i := range fields {
			fields[i] = rt.TypeAt(i).String()
		}
		hkey := ""
		if hk := rt.HKey(); hk != nil {
			hkey = hk.String()
		}
		tables := ""
		if tc := rt.TypeComposition(); tc != nil {
			tables = tc.String()
		}
		table.Append([]string{
			strconv.FormatInt(int64(rt.ID()), 10),
			rt.Kind().String(),
			rt.String(),
			strings.Join(fields, ", "),
			hkey,
			tables,
		})
	}
	table.Render()
	fmt.Fprintf(w, "(%d row types)\n", len(rts))
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		// Cobra has already printed the error message.
		os.Exit(1)
	}
}
