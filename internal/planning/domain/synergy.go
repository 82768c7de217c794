package planning

import "sort"

// DefaultSynergyDiscount is the bundling discount for compatible projects
// executed in the same year.
const DefaultSynergyDiscount = 0.05

// Project is a candidate renovation in the long-term plan.
type Project struct {
	ComponentID string  `json:"component_id"`
	Name        string  `json:"name"`
	Category    string  `json:"category"`
	Year        int     `json:"year"`
	Cost        float64 `json:"cost"`
}

// YearSynergy describes one year group that qualifies for a bundling discount.
type YearSynergy struct {
	Year      int      `json:"year"`
	GroupCost float64  `json:"group_cost"`
	Savings   float64  `json:"savings"`
	Projects  []string `json:"projects"`
}

// SynergyResult accumulates bundling discounts across all plan years.
type SynergyResult struct {
	TotalSavings float64       `json:"total_savings"`
	Groups       []YearSynergy `json:"groups,omitempty"`
}

// DetectSynergies groups projects by target year and applies the discount to
// years that bundle facade and window work. Scaffolding and contractor access
// are shared between the two; other pairings get no discount.
func DetectSynergies(projects []Project, discount float64) SynergyResult {
	if discount <= 0 {
		discount = DefaultSynergyDiscount
	}

	byYear := make(map[int][]Project)
	for _, project := range projects {
		byYear[project.Year] = append(byYear[project.Year], project)
	}

	years := make([]int, 0, len(byYear))
	for year := range byYear {
		years = append(years, year)
	}
	sort.Ints(years)

	var result SynergyResult
	for _, year := range years {
		group := byYear[year]
		hasFacade := false
		hasWindows := false
		groupCost := 0.0
		names := make([]string, 0, len(group))
		for _, project := range group {
			switch project.Category {
			case "facade":
				hasFacade = true
			case "windows":
				hasWindows = true
			}
			groupCost += project.Cost
			names = append(names, project.Name)
		}
		if !hasFacade || !hasWindows {
			continue
		}
		savings := groupCost * discount
		result.TotalSavings += savings
		result.Groups = append(result.Groups, YearSynergy{
			Year:      year,
			GroupCost: groupCost,
			Savings:   savings,
			Projects:  names,
		})
	}
	return result
}
