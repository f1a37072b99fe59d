// internal/scholarship/catalog.go
package scholarship

import "scholarship-workers/internal/models"

const (
	NSPURL          = "https://scholarships.gov.in"
	BiharURL        = "https://scholarship.bih.nic.in"
	UttarPradeshURL = "https://scholarship.up.gov.in"
	TamilNaduURL    = "https://www.tnscholarships.gov.in"
	MaharashtraURL  = "https://scholarships.maharashtra.gov.in"
)

var portals = []models.Portal{
	{
		ID:               "nsp",
		Name:             "National Scholarship Portal (NSP)",
		Jurisdiction:     models.JurisdictionCentral,
		CoveredSchemes:   "Central Government Scholarships including Post Matric, Pre-Matric, Merit-cum-Means",
		Description:      "Official portal for all central government scholarship schemes",
		PortalURL:        NSPURL,
		Eligibility:      "Various - Income, merit, and category-based",
		ApplicableStates: []string{models.AllStates},
	},
	{
		ID:               "bsp",
		Name:             "Bihar Scholarship Portal",
		Jurisdiction:     models.JurisdictionState,
		CoveredSchemes:   "Post Matric, Pre-Matric, Mukhyamantri Scholarship Yojana",
		Description:      "Official Bihar government scholarship programs",
		PortalURL:        BiharURL,
		Eligibility:      "Bihar residents with merit requirements",
		ApplicableStates: []string{"Bihar"},
	},
	{
		ID:               "upsp",
		Name:             "Uttar Pradesh Scholarship Portal",
		Jurisdiction:     models.JurisdictionState,
		CoveredSchemes:   "Post Matric Scholarship, Pre-Matric Scholarship, Integrated Scholarship Scheme",
		Description:      "Official UP government scholarship schemes",
		PortalURL:        UttarPradeshURL,
		Eligibility:      "UP residents based on income and merit",
		ApplicableStates: []string{"Uttar Pradesh"},
	},
	{
		ID:               "minority",
		Name:             "Ministry of Minority Affairs Scholarships",
		Jurisdiction:     models.JurisdictionCentral,
		CoveredSchemes:   "Merit-cum-Means, Free Coaching, Pre-Matric & Post-Matric",
		Description:      "Scholarships for minority community students",
		PortalURL:        "https://www.scholarships.gov.in",
		Eligibility:      "Minority communities with merit requirements",
		ApplicableStates: []string{models.AllStates},
	},
	{
		ID:               "aicte",
		Name:             "AICTE Portal",
		Jurisdiction:     models.JurisdictionCentral,
		CoveredSchemes:   "AICTE Scholarships, Internship Programs, Skill Development",
		Description:      "Technical education scholarships and grants",
		PortalURL:        "https://aicte-india.org",
		Eligibility:      "Students in technical and engineering courses",
		ApplicableStates: []string{models.AllStates},
	},
	{
		ID:               "ugc",
		Name:             "UGC (University Grants Commission) Scholarships",
		Jurisdiction:     models.JurisdictionCentral,
		CoveredSchemes:   "UGC-CSIR, INSPIRE, Junior Research Fellowship",
		Description:      "Research and higher education scholarships",
		PortalURL:        "https://ugc.ac.in",
		Eligibility:      "Higher education and research scholars",
		ApplicableStates: []string{models.AllStates},
	},
	{
		ID:               "tamilnadu",
		Name:             "Tamil Nadu Scholarship Portal",
		Jurisdiction:     models.JurisdictionState,
		CoveredSchemes:   "State Merit Scholarships, Post-Matric, Pre-Matric",
		Description:      "Tamil Nadu government scholarship schemes",
		PortalURL:        TamilNaduURL,
		Eligibility:      "Tamil Nadu residents",
		ApplicableStates: []string{"Tamil Nadu"},
	},
	{
		ID:               "maharashtra",
		Name:             "Maharashtra Scholarship Portal",
		Jurisdiction:     models.JurisdictionState,
		CoveredSchemes:   "State Scholarships, Mukhyamantri Scholarships, SC/ST Scholarships",
		Description:      "Maharashtra government scholarship programs",
		PortalURL:        MaharashtraURL,
		Eligibility:      "Maharashtra residents",
		ApplicableStates: []string{"Maharashtra"},
	},
	{
		ID:               "icmr",
		Name:             "ICMR Scholarships",
		Jurisdiction:     models.JurisdictionCentral,
		CoveredSchemes:   "Medical Research, Fellowships, Grants",
		Description:      "Medical research scholarships and grants",
		PortalURL:        "https://icmr.gov.in",
		Eligibility:      "Medical and health research scholars",
		ApplicableStates: []string{models.AllStates},
	},
	{
		ID:               "dsir",
		Name:             "DSIR Innovation Grants",
		Jurisdiction:     models.JurisdictionCentral,
		CoveredSchemes:   "Innovation, Research, SEED Grants",
		Description:      "Department of Scientific and Industrial Research grants",
		PortalURL:        "https://www.dsir.gov.in",
		Eligibility:      "Innovators and researchers",
		ApplicableStates: []string{models.AllStates},
	},
}

var individualScholarships = []models.IndividualScholarship{
	// Central government schemes
	{ID: "post-matric", Name: "Post Matric Scholarship Scheme", Jurisdiction: models.JurisdictionCentral,
		Description: "Financial assistance for SC/ST/OBC students pursuing post-matriculation courses",
		PortalURL:   NSPURL, Category: "Education"},
	{ID: "pre-matric", Name: "Pre-Matric Scholarship Scheme", Jurisdiction: models.JurisdictionCentral,
		Description: "Scholarship for SC/ST students studying in classes 9th and 10th",
		PortalURL:   NSPURL, Category: "Education"},
	{ID: "merit-means", Name: "Merit-cum-Means Scholarship", Jurisdiction: models.JurisdictionCentral,
		Description: "For economically weaker students with good academic performance",
		PortalURL:   NSPURL, Category: "Merit"},
	{ID: "minority-merit", Name: "Ministry of Minority Affairs Merit Scholarship", Jurisdiction: models.JurisdictionCentral,
		Description: "Merit-based scholarship for minority community students",
		PortalURL:   "https://www.scholarships.gov.in", Category: "Merit"},
	{ID: "ugc-csir", Name: "UGC-CSIR NET Fellowship", Jurisdiction: models.JurisdictionCentral,
		Description: "Junior Research Fellowship for research scholars",
		PortalURL:   "https://ugc.ac.in", Category: "Research"},
	{ID: "inspire", Name: "INSPIRE Scholarship", Jurisdiction: models.JurisdictionCentral,
		Description: "Innovation in Science Pursuit for Inspired Research",
		PortalURL:   "https://www.inspire-dst.gov.in", Category: "Research"},

	// State government schemes
	{ID: "cm-bicycle-bihar", Name: "Chief Minister's Bicycle Scheme (Bihar)", Jurisdiction: models.JurisdictionState,
		Description: "Free bicycle distribution scheme for girl students in Bihar",
		PortalURL:   BiharURL, State: "Bihar", Category: "Welfare"},
	{ID: "mukhyamantri-bihar", Name: "Mukhyamantri Balika Protsahan Yojana", Jurisdiction: models.JurisdictionState,
		Description: "Bihar government scheme for girl child education",
		PortalURL:   BiharURL, State: "Bihar", Category: "Education"},
	{ID: "up-post-matric", Name: "UP Post Matric Scholarship", Jurisdiction: models.JurisdictionState,
		Description: "Uttar Pradesh state scholarship for post-matric students",
		PortalURL:   UttarPradeshURL, State: "Uttar Pradesh", Category: "Education"},
	{ID: "tn-merit", Name: "Tamil Nadu State Merit Scholarship", Jurisdiction: models.JurisdictionState,
		Description: "Merit scholarship for Tamil Nadu students",
		PortalURL:   TamilNaduURL, State: "Tamil Nadu", Category: "Merit"},
	{ID: "maha-mukhyamantri", Name: "Mukhyamantri Yuva Swavlamban Yojana", Jurisdiction: models.JurisdictionState,
		Description: "Maharashtra government scholarship for higher education",
		PortalURL:   MaharashtraURL, State: "Maharashtra", Category: "Education"},
	{ID: "rajasthan-scholarship", Name: "Rajasthan State Scholarship", Jurisdiction: models.JurisdictionState,
		Description: "Various scholarship schemes for Rajasthan students",
		PortalURL:   "https://rajeduboard.rajasthan.gov.in", State: "Rajasthan", Category: "Education"},
	{ID: "kerala-scholarship", Name: "Kerala State Scholarship", Jurisdiction: models.JurisdictionState,
		Description: "State government scholarships for Kerala students",
		PortalURL:   "https://keralascholarship.gov.in", State: "Kerala", Category: "Education"},
	{ID: "west-bengal-scholarship", Name: "West Bengal State Scholarship", Jurisdiction: models.JurisdictionState,
		Description: "Scholarship programs for West Bengal students",
		PortalURL:   "https://wb.gov.in", State: "West Bengal", Category: "Education"},

	// Private scholarships
	{ID: "tata-scholarship", Name: "Tata Trusts Scholarship", Jurisdiction: models.JurisdictionPrivate,
		Description: "Merit-based scholarships by Tata Trusts for higher education",
		PortalURL:   "https://www.tatatrusts.org", Category: "Merit"},
	{ID: "reliance-foundation", Name: "Reliance Foundation Scholarship", Jurisdiction: models.JurisdictionPrivate,
		Description: "Scholarships for meritorious students from economically weaker sections",
		PortalURL:   "https://www.reliancefoundation.org", Category: "Merit"},
	{ID: "aditya-birla", Name: "Aditya Birla Scholarship", Jurisdiction: models.JurisdictionPrivate,
		Description: "Scholarship program for meritorious students",
		PortalURL:   "https://www.adityabirlascholarship.net", Category: "Merit"},
	{ID: "infosys-foundation", Name: "Infosys Foundation Scholarship", Jurisdiction: models.JurisdictionPrivate,
		Description: "Scholarships for engineering and technology students",
		PortalURL:   "https://www.infosys.com", Category: "Education"},
	{ID: "wipro-foundation", Name: "Wipro Foundation Scholarship", Jurisdiction: models.JurisdictionPrivate,
		Description: "Educational scholarships for underprivileged students",
		PortalURL:   "https://www.wiprofoundation.org", Category: "Education"},
	{ID: "icici-foundation", Name: "ICICI Foundation Scholarship", Jurisdiction: models.JurisdictionPrivate,
		Description: "Scholarships for higher education and skill development",
		PortalURL:   "https://www.icicifoundation.org", Category: "Education"},
	{ID: "hdfc-bank-scholarship", Name: "HDFC Bank Parivartan Scholarship", Jurisdiction: models.JurisdictionPrivate,
		Description: "Merit-cum-means scholarship for higher education",
		PortalURL:   "https://www.hdfcbank.com", Category: "Merit"},
	{ID: "axis-bank-foundation", Name: "Axis Bank Foundation Scholarship", Jurisdiction: models.JurisdictionPrivate,
		Description: "Educational support for deserving students",
		PortalURL:   "https://www.axisbankfoundation.org", Category: "Education"},
}

// Portals returns a copy of the portal catalog in declaration order.
func Portals() []models.Portal {
	out := make([]models.Portal, len(portals))
	for i, p := range portals {
		out[i] = clonePortal(p)
	}
	return out
}

// IndividualScholarships returns a copy of the individual scholarship catalog.
func IndividualScholarships() []models.IndividualScholarship {
	out := make([]models.IndividualScholarship, len(individualScholarships))
	copy(out, individualScholarships)
	return out
}

func PortalsByType(j models.Jurisdiction) []models.Portal {
	var out []models.Portal
	for _, p := range portals {
		if p.Jurisdiction == j {
			out = append(out, clonePortal(p))
		}
	}
	return out
}

// PortalsByState returns portals that list the state or ALL.
func PortalsByState(state string) []models.Portal {
	var out []models.Portal
	for _, p := range portals {
		if p.ServesState(state) {
			out = append(out, clonePortal(p))
		}
	}
	return out
}

func PortalByID(id string) (models.Portal, bool) {
	for _, p := range portals {
		if p.ID == id {
			return clonePortal(p), true
		}
	}
	return models.Portal{}, false
}

func ScholarshipByID(id string) (models.IndividualScholarship, bool) {
	for _, s := range individualScholarships {
		if s.ID == id {
			return s, true
		}
	}
	return models.IndividualScholarship{}, false
}

// Entries returns every catalog item as a tagged entry, portals first.
func Entries() []models.CatalogEntry {
	out := make([]models.CatalogEntry, 0, len(portals)+len(individualScholarships))
	for _, p := range portals {
		out = append(out, models.PortalEntry(clonePortal(p)))
	}
	for _, s := range individualScholarships {
		out = append(out, models.ScholarshipEntry(s))
	}
	return out
}

func clonePortal(p models.Portal) models.Portal {
	p.ApplicableStates = append([]string(nil), p.ApplicableStates...)
	return p
}
