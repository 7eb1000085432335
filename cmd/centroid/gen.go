package main

import (
	"fmt"
	"math/rand"

	"github.com/g-m-twostay/go-centroid/Gen"
	"github.com/spf13/cobra"
)

func (a *app) genCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:       "gen {random|path|star|binary|caterpillar}",
		Short:     "Write a tree in balanced parenthesis form",
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{"random", "path", "star", "binary", "caterpillar"},
		RunE: func(cmd *cobra.Command, args []string) error {
			n := a.v.GetInt("nodes")
			if n < 1 {
				return fmt.Errorf("--nodes must be positive, got %d", n)
			}
			r := rand.New(rand.NewSource(a.v.GetInt64("seed")))
			var bp string
			switch args[0] {
			case "random":
				bp = Gen.Random(r, n)
			case "path":
				bp = Gen.Path(n)
			case "star":
				bp = Gen.Star(n)
			case "binary":
				bp = Gen.Binary(n)
			case "caterpillar":
				bp = Gen.Caterpillar(r, n, a.v.GetInt("degree"))
			}
			_, err := fmt.Fprintln(cmd.OutOrStdout(), bp)
			return err
		},
	}
	f := cmd.Flags()
	f.IntP("nodes", "n", 1000, "number of nodes")
	f.Int64("seed", 1, "seed of the random trees")
	f.IntP("degree", "k", 3, "maximum degree of a caterpillar")
	return a.bind(cmd)
}
