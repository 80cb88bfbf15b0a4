package readpair

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"seqflow/internal/prep"
	"seqflow/internal/services"
)

// Sample associates one run prefix with its sample identifier and read files.
// ReversePath is empty in single-end mode; within one matching pass it is
// either set for every sample or for none.
type Sample struct {
	RunPrefix   string
	Name        string
	ForwardPath string
	ReversePath string
}

// Paired reports whether the sample carries a reverse read file.
func (s Sample) Paired() bool {
	return s.ReversePath != ""
}

// Match pairs sorted forward and reverse read files and resolves each pair to
// a sample through the run-prefix index. The result preserves
// sorted-forward-path order. Input slices are not mutated.
func Match(forward, reverse []string, idx *prep.Index) ([]Sample, error) {
	if len(forward) == 0 {
		return nil, services.Wrap(services.ErrPairing, "matching", "", "no forward read files provided", nil)
	}
	if len(reverse) > 0 && len(forward) != len(reverse) {
		return nil, services.Wrap(services.ErrPairing, "matching", "",
			fmt.Sprintf("forward and reverse file lists differ in length. Forward: %s. Reverse: %s",
				strings.Join(forward, ", "), strings.Join(reverse, ", ")), nil)
	}

	fwd := make([]string, len(forward))
	copy(fwd, forward)
	sort.Strings(fwd)

	var rev []string
	if len(reverse) > 0 {
		rev = make([]string, len(reverse))
		copy(rev, reverse)
		sort.Strings(rev)
	}

	samples := make([]Sample, 0, len(fwd))
	used := make(map[string]struct{}, len(fwd))
	for i, forwardPath := range fwd {
		forwardName := filepath.Base(forwardPath)

		matches := idx.MatchPrefixes(forwardName)
		switch len(matches) {
		case 0:
			return nil, services.Wrap(services.ErrPairing, "matching", "",
				fmt.Sprintf("no run prefix matches forward read %s", forwardName), nil)
		case 1:
		default:
			return nil, services.Wrap(services.ErrPairing, "matching", "",
				fmt.Sprintf("multiple run prefixes match forward read %s: %s", forwardName, strings.Join(matches, ", ")), nil)
		}
		runPrefix := matches[0]

		if _, taken := used[runPrefix]; taken {
			return nil, services.Wrap(services.ErrPairing, "matching", "",
				fmt.Sprintf("run prefix %s matches multiple forward reads", runPrefix), nil)
		}
		used[runPrefix] = struct{}{}

		sample := Sample{RunPrefix: runPrefix, ForwardPath: forwardPath}
		sample.Name, _ = idx.Sample(runPrefix)

		if rev != nil {
			reverseName := filepath.Base(rev[i])
			if !strings.HasPrefix(reverseName, runPrefix) {
				return nil, services.Wrap(services.ErrPairing, "matching", "",
					fmt.Sprintf("reverse read does not match run prefix %s. Forward: %s. Reverse: %s",
						runPrefix, forwardName, reverseName), nil)
			}
			sample.ReversePath = rev[i]
		}

		samples = append(samples, sample)
	}

	return samples, nil
}
