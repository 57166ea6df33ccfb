// Command solve computes an approximate Nash equilibrium strategy profile
// for Kuhn Poker with vanilla CFR and prints the average strategies for
// both players.
package main

import (
	"flag"
	"os"
	"sort"
	"time"

	"github.com/golang/glog"
	"github.com/pkg/errors"
	"github.com/pterm/pterm"

	"kuhncfr/cfr"
	"kuhncfr/kuhn"
	"kuhncfr/tree"
)

func main() {
	nIter := flag.Int("iter", 100000, "Number of CFR iterations to run")
	purify := flag.Float64("purify", 1e-3, "Zero out average strategy probabilities below this threshold")
	out := flag.String("out", "", "File to save the final policy table to (optional)")
	flag.Parse()

	policy := cfr.NewPolicyTable(cfr.Params{PurificationThreshold: float32(*purify)})
	vanillaCFR := cfr.NewVanilla(policy)
	root := kuhn.NewGame()

	var expectedValue float32
	start := time.Now()
	for i := 1; i <= *nIter; i++ {
		expectedValue += vanillaCFR.Run(root)
		policy.Update()
		if *nIter >= 10 && i%(*nIter/10) == 0 {
			glog.Infof("[iter=%d] Expected game value: %.4f", i, expectedValue/float32(i))
		}
	}

	glog.Infof("Solved %d iterations in %s", *nIter, time.Since(start))

	printStrategies(root, policy)
	pterm.Info.Printfln("Expected game value for player 1: %.4f (equilibrium: -1/18 = %.4f)",
		expectedValue/float32(*nIter), -1.0/18.0)

	if *out != "" {
		if err := savePolicy(policy, *out); err != nil {
			glog.Exitf("Failed to save policy table: %v", err)
		}

		pterm.Success.Printfln("Saved policy table to %v", *out)
	}
}

// printStrategies renders one table of average strategies per player,
// partitioned by the acting player and sorted by information set key.
func printStrategies(root cfr.GameTreeNode, policy *cfr.PolicyTable) {
	var keys []string
	players := make(map[string]int)
	tree.VisitInfoSets(root, func(player int, infoSet string) {
		keys = append(keys, infoSet)
		players[infoSet] = player
	})
	sort.Strings(keys)

	tables := map[int]pterm.TableData{
		0: {{"InfoSet", "Check", "Bet"}},
		1: {{"InfoSet", "Check", "Bet"}},
	}

	for _, key := range keys {
		strat := policy.GetStrategy(key)
		if strat == nil {
			continue
		}

		player := players[key]
		tables[player] = append(tables[player], []string{
			key,
			pterm.Sprintf("%.3f", strat[0]),
			pterm.Sprintf("%.3f", strat[1]),
		})
	}

	for player := 0; player <= 1; player++ {
		pterm.DefaultSection.Printfln("Player %d strategies", player+1)
		if err := pterm.DefaultTable.WithHasHeader().WithData(tables[player]).Render(); err != nil {
			glog.Errorf("Failed to render strategy table: %v", err)
		}
	}
}

func savePolicy(policy *cfr.PolicyTable, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "failed to create %v", path)
	}
	defer f.Close()

	return policy.MarshalTo(f)
}
