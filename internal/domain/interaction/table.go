package interaction

// knownInteractions is the built-in adverse combination table. Tokens are
// canonical lowercase generic names matching what Tokenize produces for
// well-formed medicine names ("Warfarin 5mg" -> "warfarin").
var knownInteractions = []struct {
	a, b        string
	severity    string
	description string
}{
	{"warfarin", "aspirin", "major", "Increased risk of bleeding. Monitor INR closely and watch for signs of hemorrhage."},
	{"warfarin", "ibuprofen", "major", "NSAIDs potentiate anticoagulant effect and increase GI bleeding risk."},
	{"warfarin", "metronidazole", "major", "Metronidazole inhibits warfarin metabolism; anticoagulant effect is enhanced."},
	{"aspirin", "ibuprofen", "moderate", "Ibuprofen can blunt the antiplatelet effect of low-dose aspirin."},
	{"aspirin", "methotrexate", "major", "Salicylates reduce methotrexate clearance and raise toxicity risk."},
	{"lisinopril", "spironolactone", "major", "Combined ACE inhibitor and potassium-sparing diuretic may cause hyperkalemia."},
	{"lisinopril", "ibuprofen", "moderate", "NSAIDs reduce the antihypertensive effect and can impair renal function."},
	{"simvastatin", "clarithromycin", "major", "Macrolide inhibition of CYP3A4 raises statin levels; rhabdomyolysis risk."},
	{"simvastatin", "amlodipine", "moderate", "Limit simvastatin to 20mg daily with amlodipine due to myopathy risk."},
	{"digoxin", "amiodarone", "major", "Amiodarone increases digoxin levels; reduce digoxin dose and monitor."},
	{"digoxin", "furosemide", "moderate", "Diuretic-induced hypokalemia predisposes to digoxin toxicity."},
	{"metformin", "prednisolone", "moderate", "Corticosteroids raise blood glucose and oppose glycemic control."},
	{"tramadol", "fluoxetine", "major", "Combined serotonergic agents increase risk of serotonin syndrome."},
	{"fluoxetine", "sumatriptan", "major", "SSRI plus triptan may precipitate serotonin syndrome."},
	{"ciprofloxacin", "theophylline", "major", "Ciprofloxacin reduces theophylline clearance; toxicity may occur."},
	{"clopidogrel", "omeprazole", "moderate", "Omeprazole inhibits CYP2C19 activation of clopidogrel, reducing efficacy."},
	{"azithromycin", "amiodarone", "major", "Additive QT prolongation; risk of torsades de pointes."},
	{"amoxicillin", "allopurinol", "minor", "Concurrent use is associated with increased incidence of rash."},
}
