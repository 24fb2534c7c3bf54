package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/litescript/ls-astroclock/internal/ephem"
	"github.com/litescript/ls-astroclock/internal/horizons"
)

func convertCmd(a *app) *cobra.Command {
	var elements bool

	cmd := &cobra.Command{
		Use:   "convert <horizons-export> <name> <out>",
		Short: "Convert a JPL Horizons text export into a binary table",
		Long: `Convert a Horizons observer export (CSV, JD dates, ecliptic longitude in
the sixth column) into a longitude table, or with --elements an osculating
element export into an element table. Name the output <name>.lng or
<name>.elem in the ephemeris directory to have it loaded.`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, name, out := args[0], args[1], args[2]

			f, err := os.Open(in)
			if err != nil {
				return err
			}
			defer f.Close()

			var seg ephem.Segment
			if elements {
				seg, err = horizons.ParseElements(f, name)
			} else {
				seg, err = horizons.ParseObserver(f, name, a.log)
			}
			if err != nil {
				return fmt.Errorf("%s: %w", in, err)
			}
			if err := writeTable(out, seg); err != nil {
				return err
			}
			a.log.Info("table written", "file", out, "samples", seg.Len(), "t0", seg.T0, "t1", seg.T1)
			return nil
		},
	}

	cmd.Flags().BoolVar(&elements, "elements", false, "input is an osculating element export")
	return cmd
}

// writeTable encodes seg to path in the layout matching its kind.
func writeTable(path string, seg ephem.Segment) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	var encode func(io.Writer, ephem.Segment) error
	switch seg.Kind() {
	case ephem.KindElements:
		encode = ephem.EncodeElementTable
	default:
		encode = ephem.EncodeLongitudeTable
	}
	if err := encode(f, seg); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}
