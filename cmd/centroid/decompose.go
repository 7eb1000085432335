package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/g-m-twostay/go-centroid/Decomp"
	"github.com/g-m-twostay/go-centroid/Oracle"
	"github.com/g-m-twostay/go-centroid/Trees"
	"github.com/spf13/cobra"
)

func (a *app) decomposeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "decompose",
		Short: "Decompose the tree read from a file or stdin",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			bp, err := a.readInput(cmd)
			if err != nil {
				return err
			}
			return a.decompose(cmd.OutOrStdout(), bp)
		},
	}
	f := cmd.Flags()
	f.StringP("input", "i", "-", "file holding the tree, - for stdin")
	f.BoolP("output", "o", false, "print the centroid tree")
	f.BoolP("check", "c", false, "verify the result by replaying it")
	f.Bool("std", false, "use the O(n log n) decomposer")
	f.IntP("cover-size", "a", 0, "minimum cover element size, 0 for log2(n)")
	f.IntP("threshold", "b", 0, "component size handed to the O(n log n) decomposer, 0 for log2(n)^3, negative for never")
	return a.bind(cmd)
}

func (a *app) readInput(cmd *cobra.Command) (string, error) {
	var r io.Reader = cmd.InOrStdin()
	if name := a.v.GetString("input"); name != "-" {
		f, err := os.Open(name)
		if err != nil {
			return "", err
		}
		defer f.Close()
		r = f
	}
	b, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(b)), nil
}

func (a *app) decompose(w io.Writer, bp string) error {
	start := time.Now()
	t, err := Trees.From[uint32](bp)
	if err != nil {
		return err
	}
	a.log.Info().Uint32("n", t.Len()).Dur("took", time.Since(start)).Msg("built")

	var pristine *Trees.Tree[uint32]
	if a.v.GetBool("check") {
		pristine = t.Clone()
	}
	start = time.Now()
	var ct *Decomp.CentroidTree[uint32]
	if a.v.GetBool("std") {
		ct = Decomp.Standard(t)
	} else {
		cfg := Decomp.DefaultConfig()
		cfg.CoverSize = a.v.GetInt("cover-size")
		cfg.Threshold = a.v.GetInt("threshold")
		cfg.Logger = &a.log
		d, err := Decomp.New(t, cfg)
		if err != nil {
			return err
		}
		if ct, err = d.Run(); err != nil {
			return err
		}
		st := d.Stats()
		a.log.Info().Int("searches", st.Searches).Int("fallbacks", st.Fallbacks).Msg("macro tree")
	}
	a.log.Info().Dur("took", time.Since(start)).Msg("decomposed")

	if pristine != nil {
		start = time.Now()
		if err := Oracle.Verify(pristine, ct.Shape, ct.IDs); err != nil {
			return fmt.Errorf("check failed: %w", err)
		}
		a.log.Info().Dur("took", time.Since(start)).Msg("checked")
	}
	if a.v.GetBool("output") {
		fmt.Fprintln(w, ct.String())
	}
	fmt.Fprintf(w, "nodes %d height %d digest %016x\n", len(ct.IDs), ct.Height(), ct.Digest())
	return nil
}
