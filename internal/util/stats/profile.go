package stats

import "github.com/samber/lo"

type Level bool

const (
	Low  Level = false
	High Level = true
)

func (l Level) String() string {
	if l {
		return "High"
	}
	return "Low"
}

func (l Level) MarshalText() ([]byte, error) {
	return []byte(l.String()), nil
}

type Profile string

const (
	ProfileMajorContributor    Profile = "Major Contributor"
	ProfileHighlyEcoConscious  Profile = "Highly Eco-Conscious"
	ProfileMobileTechCommuter  Profile = "Mobile Tech Commuter"
	ProfileCommutingDiner      Profile = "Commuting Diner"
	ProfileCampusConsumer      Profile = "Campus Consumer"
	ProfileTransportDependent  Profile = "Transport Dependent"
	ProfileDeviceHeavy         Profile = "Device Heavy"
	ProfileFoodWaster          Profile = "Food Waster"
	ProfileModerateContributor Profile = "Moderate Contributor"
)

// Profiles lists every label Classify can produce, in decision order.
var Profiles = []Profile{
	ProfileMajorContributor,
	ProfileHighlyEcoConscious,
	ProfileMobileTechCommuter,
	ProfileCommutingDiner,
	ProfileCampusConsumer,
	ProfileTransportDependent,
	ProfileDeviceHeavy,
	ProfileFoodWaster,
	ProfileModerateContributor,
}

type profileRule struct {
	match   func(t, e, f Level) Level
	profile Profile
}

// rules are checked in order, the first match wins.
var rules = []profileRule{
	{func(t, e, f Level) Level { return t && e && f }, ProfileMajorContributor},
	{func(t, e, f Level) Level { return !t && !e && !f }, ProfileHighlyEcoConscious},
	{func(t, e, f Level) Level { return t && e }, ProfileMobileTechCommuter},
	{func(t, e, f Level) Level { return t && f }, ProfileCommutingDiner},
	{func(t, e, f Level) Level { return e && f }, ProfileCampusConsumer},
	{func(t, e, f Level) Level { return t }, ProfileTransportDependent},
	{func(t, e, f Level) Level { return e }, ProfileDeviceHeavy},
	{func(t, e, f Level) Level { return f }, ProfileFoodWaster},
}

// Classify maps the transport, electronics and food waste levels of a respondent to a profile.
func Classify(transport, electronics, foodWaste Level) Profile {
	for _, r := range rules {
		if r.match(transport, electronics, foodWaste) {
			return r.profile
		}
	}
	return ProfileModerateContributor
}

// Totals are the per-category emissions of one respondent.
type Totals struct {
	ID             int     `json:"id"`
	Transportation float64 `json:"transportation"`
	Electronics    float64 `json:"electronics"`
	FoodWaste      float64 `json:"foodWaste"`
}

func (t Totals) Total() float64 {
	return t.Transportation + t.Electronics + t.FoodWaste
}

type Medians struct {
	Transportation float64 `json:"transportation"`
	Electronics    float64 `json:"electronics"`
	FoodWaste      float64 `json:"foodWaste"`
}

type Classification struct {
	ID             int     `json:"id"`
	Transportation Level   `json:"transportation"`
	Electronics    Level   `json:"electronics"`
	FoodWaste      Level   `json:"foodWaste"`
	Profile        Profile `json:"profile"`
}

// ClassifyAll classifies every respondent against the medians of the given set.
// Sets of at most minRespondents respondents yield ErrInsufficientData.
func ClassifyAll(totals []Totals, minRespondents int) ([]Classification, Medians, error) {
	if len(totals) <= minRespondents {
		return nil, Medians{}, ErrInsufficientData
	}

	m := Medians{
		Transportation: Median(lo.Map(totals, func(t Totals, _ int) float64 { return t.Transportation })),
		Electronics:    Median(lo.Map(totals, func(t Totals, _ int) float64 { return t.Electronics })),
		FoodWaste:      Median(lo.Map(totals, func(t Totals, _ int) float64 { return t.FoodWaste })),
	}

	out := make([]Classification, 0, len(totals))
	for _, t := range totals {
		c := Classification{
			ID:             t.ID,
			Transportation: Level(t.Transportation > m.Transportation),
			Electronics:    Level(t.Electronics > m.Electronics),
			FoodWaste:      Level(t.FoodWaste > m.FoodWaste),
		}
		c.Profile = Classify(c.Transportation, c.Electronics, c.FoodWaste)
		out = append(out, c)
	}
	return out, m, nil
}

// Distribution counts respondents per profile. Every profile is present, possibly with 0.
func Distribution(classes []Classification) map[Profile]int {
	d := make(map[Profile]int, len(Profiles))
	for _, p := range Profiles {
		d[p] = 0
	}
	for _, c := range classes {
		d[c.Profile]++
	}
	return d
}

// Dominant returns the most frequent profile, ties resolved by decision order.
func Dominant(classes []Classification) (Profile, bool) {
	if len(classes) == 0 {
		return "", false
	}
	d := Distribution(classes)
	best := Profiles[0]
	for _, p := range Profiles[1:] {
		if d[p] > d[best] {
			best = p
		}
	}
	return best, true
}
