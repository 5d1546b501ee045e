package reward

import (
	"sort"

	"github.com/xtding233/towerclimb-backend/internal/gacha"
)

// Expectation is the mean count of one reward per opened package.
type Expectation struct {
	Ref      string  `json:"ref"`
	Name     string  `json:"name"`
	Mean     float64 `json:"mean"`
	Presence float64 `json:"presence"` // share of opens containing it at least once
}

// SimulationReport summarizes repeated opens of one package.
type SimulationReport struct {
	PackageID string        `json:"packageId"`
	Trials    int           `json:"trials"`
	Entries   gacha.Stats   `json:"entries"` // reward entries per open
	Rewards   []Expectation `json:"rewards"`
}

// Simulate opens packageID trials times and reports per-reward expectations.
func (r *Resolver) Simulate(packageID string, trials int) (SimulationReport, error) {
	totals := map[string]int{}
	present := map[string]int{}
	names := map[string]string{}

	stats, err := gacha.RunMonteCarlo(trials, func() (int, error) {
		res, err := r.OpenPackage(packageID)
		if err != nil {
			return 0, err
		}
		seen := map[string]bool{}
		for _, e := range res.Items {
			key := e.Ref().String()
			totals[key] += e.Count
			names[key] = e.Name
			if !seen[key] {
				seen[key] = true
				present[key]++
			}
		}
		return len(res.Items), nil
	})
	if err != nil {
		return SimulationReport{}, err
	}

	rep := SimulationReport{PackageID: packageID, Trials: trials, Entries: stats}
	if trials <= 0 {
		return rep, nil
	}
	for key, n := range totals {
		rep.Rewards = append(rep.Rewards, Expectation{
			Ref:      key,
			Name:     names[key],
			Mean:     float64(n) / float64(trials),
			Presence: float64(present[key]) / float64(trials),
		})
	}
	sort.Slice(rep.Rewards, func(i, j int) bool {
		if rep.Rewards[i].Presence != rep.Rewards[j].Presence {
			return rep.Rewards[i].Presence > rep.Rewards[j].Presence
		}
		return rep.Rewards[i].Ref < rep.Rewards[j].Ref
	})
	return rep, nil
}
