// Package report computes read-only summaries over finished record lists.
package report

import (
	"sort"

	"github.com/montanaflynn/stats"

	"github.com/ukaji3/plotimport-go/pkg/plotimport/models"
)

// DefaultExamples is the number of multi-plot owners shown in a summary.
const DefaultExamples = 5

// Options controls what a Summary includes.
type Options struct {
	// Examples caps the multi-plot owner examples.
	Examples int
	// Preview is the number of records copied into each preview slice.
	// Zero disables previews.
	Preview int
}

// DefaultOptions returns the standard summary settings.
func DefaultOptions() Options {
	return Options{Examples: DefaultExamples}
}

// ownerGroup accumulates the records of one email in first-seen order.
type ownerGroup struct {
	email    string
	fullName string
	plots    []string
	order    int
}

// Summarize builds a Summary. It never modifies records.
func Summarize(records []models.NormalizedRecord, opts Options) models.Summary {
	summary := models.Summary{TotalRecords: len(records)}

	groups := make(map[string]*ownerGroup)
	for _, r := range records {
		if r.Phone != "" {
			summary.WithPhone++
		} else {
			summary.WithoutPhone++
		}

		if r.Email == "" {
			continue
		}
		g, ok := groups[r.Email]
		if !ok {
			g = &ownerGroup{email: r.Email, fullName: r.FullName, order: len(groups)}
			groups[r.Email] = g
		}
		g.plots = append(g.plots, r.PlotNumber)
	}
	summary.UniqueEmails = len(groups)

	ordered := make([]*ownerGroup, 0, len(groups))
	counts := make(stats.Float64Data, 0, len(groups))
	for _, g := range groups {
		ordered = append(ordered, g)
		counts = append(counts, float64(len(g.plots)))
	}
	// Most plots first; ties keep first-seen order.
	sort.Slice(ordered, func(i, j int) bool {
		if len(ordered[i].plots) != len(ordered[j].plots) {
			return len(ordered[i].plots) > len(ordered[j].plots)
		}
		return ordered[i].order < ordered[j].order
	})

	for _, g := range ordered {
		if len(g.plots) < 2 {
			break
		}
		summary.MultiPlotOwners++
		if len(summary.Examples) < opts.Examples {
			summary.Examples = append(summary.Examples, models.OwnerExample{
				Email:    g.email,
				FullName: g.fullName,
				Plots:    append([]string(nil), g.plots...),
			})
		}
	}

	summary.PlotsPerOwner = distribution(counts)

	if opts.Preview > 0 {
		summary.Preview = head(records, opts.Preview, func(models.NormalizedRecord) bool { return true })
		summary.PreviewPhone = head(records, opts.Preview, func(r models.NormalizedRecord) bool { return r.Phone != "" })
		summary.PreviewNoPhone = head(records, opts.Preview, func(r models.NormalizedRecord) bool { return r.Phone == "" })
	}

	return summary
}

// distribution returns zero values for an empty data set.
func distribution(counts stats.Float64Data) models.PlotDistribution {
	if len(counts) == 0 {
		return models.PlotDistribution{}
	}
	mean, _ := stats.Mean(counts)
	mean, _ = stats.Round(mean, 2)
	median, _ := stats.Median(counts)
	maximum, _ := stats.Max(counts)
	return models.PlotDistribution{
		Mean:   mean,
		Median: median,
		Max:    maximum,
	}
}

func head(records []models.NormalizedRecord, n int, keep func(models.NormalizedRecord) bool) []models.NormalizedRecord {
	var out []models.NormalizedRecord
	for _, r := range records {
		if len(out) == n {
			break
		}
		if keep(r) {
			out = append(out, r)
		}
	}
	return out
}
