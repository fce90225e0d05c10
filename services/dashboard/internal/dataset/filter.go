package dataset

import (
	"slices"
	"strconv"

	"github.com/02loveslollipop/vibrio-dashboard/services/dashboard/internal/models"
)

// All is the selector sentinel meaning "no filter".
const All = "전체"

// Selection is the region/pond choice made in the sidebar.
type Selection struct {
	Region string `json:"region"`
	Pond   string `json:"pond"`
}

// NewSelection normalizes raw selector values; empty and "ALL" mean All.
func NewSelection(region, pond string) Selection {
	return Selection{Region: normalize(region), Pond: normalize(pond)}
}

func normalize(v string) string {
	if v == "" || v == "ALL" {
		return All
	}
	return v
}

// Options holds the choices offered by the two selectors.
type Options struct {
	Regions []string `json:"regions"`
	Ponds   []string `json:"ponds"`
}

// Resolve computes selector choices for owner and clamps sel to them. Pond
// choices come from the owner's rows after the region filter, so changing the
// region rescopes the ponds. A value missing from its choices falls back to All.
func Resolve(rows []models.Measurement, owner string, sel Selection) (Options, Selection) {
	sel = NewSelection(sel.Region, sel.Pond)
	owned := byOwner(rows, owner)

	regions := distinctRegions(owned)
	if sel.Region != All && !slices.Contains(regions, sel.Region) {
		sel.Region = All
	}
	scoped := byRegion(owned, sel.Region)

	ponds := distinctPonds(scoped)
	if sel.Pond != All && !slices.Contains(ponds, sel.Pond) {
		sel.Pond = All
	}

	return Options{
		Regions: append([]string{All}, regions...),
		Ponds:   append([]string{All}, ponds...),
	}, sel
}

// Filter applies owner, region and pond equality filters in that order,
// preserving source order. An unparseable pond matches nothing.
func Filter(rows []models.Measurement, owner string, sel Selection) []models.Measurement {
	sel = NewSelection(sel.Region, sel.Pond)
	out := byRegion(byOwner(rows, owner), sel.Region)
	if sel.Pond == All {
		return out
	}

	pond, err := strconv.Atoi(sel.Pond)
	if err != nil {
		return []models.Measurement{}
	}
	filtered := make([]models.Measurement, 0, len(out))
	for _, r := range out {
		if r.PondNumber == pond {
			filtered = append(filtered, r)
		}
	}
	return filtered
}

func byOwner(rows []models.Measurement, owner string) []models.Measurement {
	out := make([]models.Measurement, 0)
	for _, r := range rows {
		if r.FarmOwner == owner {
			out = append(out, r)
		}
	}
	return out
}

func byRegion(rows []models.Measurement, region string) []models.Measurement {
	if region == All {
		return rows
	}
	out := make([]models.Measurement, 0, len(rows))
	for _, r := range rows {
		if r.Region == region {
			out = append(out, r)
		}
	}
	return out
}

func distinctRegions(rows []models.Measurement) []string {
	seen := make(map[string]struct{})
	out := make([]string, 0)
	for _, r := range rows {
		if _, ok := seen[r.Region]; !ok {
			seen[r.Region] = struct{}{}
			out = append(out, r.Region)
		}
	}
	slices.Sort(out)
	return out
}

func distinctPonds(rows []models.Measurement) []string {
	seen := make(map[int]struct{})
	nums := make([]int, 0)
	for _, r := range rows {
		if _, ok := seen[r.PondNumber]; !ok {
			seen[r.PondNumber] = struct{}{}
			nums = append(nums, r.PondNumber)
		}
	}
	slices.Sort(nums)

	out := make([]string, len(nums))
	for i, n := range nums {
		out[i] = strconv.Itoa(n)
	}
	return out
}
