package advisory

// GuideEntry is one month of the static hazelnut care guide.
type GuideEntry struct {
	Month        string `json:"month"`
	Phenology    string `json:"phenology"`
	ClimateFocus string `json:"climate_focus"`
	OrchardOps   string `json:"orchard_ops"`
	PestFocus    string `json:"pest_disease_focus"`
}

// HazelnutGuide returns the month-by-month best-practice table. Generalized
// heuristics; callers should calibrate with local extension guidance,
// cultivar and soil/leaf analyses.
func HazelnutGuide() []GuideEntry {
	return []GuideEntry{
		{"Jan", "Dormant", "Drainage, frost protection", "Structural pruning; sanitation; soil sampling", "Cankers; sanitize mummies"},
		{"Feb", "Dormant / catkin shed", "Avoid waterlogging/frost", "Finish pruning; plan nutrition", "Cankers; dormant sprays if local guidance"},
		{"Mar", "Budbreak", "Rains okay; track frost", "First N after growth; pre-emergent; sucker control", "Aphids/leafrollers; bud mite"},
		{"Apr", "Rapid growth", "Watch dry spells", "Split N if needed; maintain weed strip", "Leafrollers; place traps"},
		{"May", "Nut set", "Irrigation may begin", "Finish N by late spring; foliar only if deficient", "Aphids; bud mite (region)"},
		{"Jun", "Kernel growth", "Irrigation important", "Mow floor; maintain cover", "Filbertworm monitoring; stink bugs"},
		{"Jul", "Kernel fill", "Irrigation critical", "Avoid late heavy N; K by tests", "Filbertworm timing; BMSB scouting"},
		{"Aug", "Maturity approaching", "Avoid water stress", "Leaf sampling for nutrition; prep floor", "Continue pest monitoring"},
		{"Sep", "Harvest begins", "Keep floor dry", "Mow/sweep; timely harvest", "Wasps; vertebrates"},
		{"Oct", "Harvest / post", "Wetter; avoid rutting", "Finish harvest; remove mummies; soil tests", "Sanitation for next season"},
		{"Nov", "Leaf fall", "High rainfall", "Lime/P/K by tests; cover crop", "Canker scouting after leaf drop"},
		{"Dec", "Dormant", "Storm season", "Plan pruning; service sprayers", "Rodent guards; sanitation"},
	}
}
