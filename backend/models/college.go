package models

type College struct {
	Slug string `gorm:"primaryKey;size:64" json:"slug"`
	Name string `gorm:"not null" json:"name"`
}

// DefaultColleges is seeded on startup. Slugs are unique.
var DefaultColleges = []College{
	// California State Universities
	{Slug: "cal-poly-slo", Name: "Cal Poly San Luis Obispo"},
	{Slug: "cal-poly-pomona", Name: "Cal Poly Pomona"},
	{Slug: "csun", Name: "California State University, Northridge"},
	{Slug: "csulb", Name: "California State University, Long Beach"},
	{Slug: "csuf", Name: "California State University, Fullerton"},
	{Slug: "csusb", Name: "California State University, San Bernardino"},
	{Slug: "csusm", Name: "California State University, San Marcos"},
	{Slug: "csudh", Name: "California State University, Dominguez Hills"},
	{Slug: "csueb", Name: "California State University, East Bay"},
	{Slug: "csufresno", Name: "California State University, Fresno"},
	{Slug: "csul", Name: "California State University, Los Angeles"},
	{Slug: "csumb", Name: "California State University, Monterey Bay"},
	{Slug: "csus", Name: "California State University, Sacramento"},
	{Slug: "sdsu", Name: "San Diego State University"},
	{Slug: "sfsu", Name: "San Francisco State University"},
	{Slug: "sjsu", Name: "San Jose State University"},
	{Slug: "csustan", Name: "California State University, Stanislaus"},
	{Slug: "csuchico", Name: "California State University, Chico"},
	{Slug: "cal-poly-humboldt", Name: "Cal Poly Humboldt"},
	{Slug: "csub", Name: "California State University, Bakersfield"},
	{Slug: "csuci", Name: "California State University, Channel Islands"},

	// Arizona
	{Slug: "asu", Name: "Arizona State University"},
	{Slug: "uofa", Name: "University of Arizona"},
	{Slug: "nau", Name: "Northern Arizona University"},
	{Slug: "asu-tempe", Name: "Arizona State University - Tempe"},
	{Slug: "asu-poly", Name: "Arizona State University - Polytechnic"},
	{Slug: "asu-west", Name: "Arizona State University - West"},
	{Slug: "asu-downtown", Name: "Arizona State University - Downtown Phoenix"},

	// Big state schools
	{Slug: "rutgers", Name: "Rutgers University"},
	{Slug: "penn-state", Name: "Penn State University"},
	{Slug: "gsu", Name: "Georgia State University"},
	{Slug: "uga", Name: "University of Georgia"},
	{Slug: "texas-am", Name: "Texas A&M University"},
	{Slug: "ut-austin", Name: "University of Texas at Austin"},
	{Slug: "ufl", Name: "University of Florida"},
	{Slug: "fsu", Name: "Florida State University"},
	{Slug: "umich", Name: "University of Michigan"},
	{Slug: "msu", Name: "Michigan State University"},
	{Slug: "osu", Name: "Ohio State University"},
	{Slug: "uiuc", Name: "University of Illinois at Urbana-Champaign"},
	{Slug: "uw-madison", Name: "University of Wisconsin-Madison"},
	{Slug: "umn", Name: "University of Minnesota"},
	{Slug: "purdue", Name: "Purdue University"},
	{Slug: "indiana", Name: "Indiana University"},
	{Slug: "mizzou", Name: "University of Missouri"},
	{Slug: "kansas", Name: "University of Kansas"},
	{Slug: "oklahoma", Name: "University of Oklahoma"},
	{Slug: "arkansas", Name: "University of Arkansas"},
	{Slug: "lsu", Name: "Louisiana State University"},
	{Slug: "ole-miss", Name: "University of Mississippi"},
	{Slug: "alabama", Name: "University of Alabama"},
	{Slug: "auburn", Name: "Auburn University"},
	{Slug: "tennessee", Name: "University of Tennessee"},
	{Slug: "kentucky", Name: "University of Kentucky"},
	{Slug: "virginia-tech", Name: "Virginia Tech"},
	{Slug: "uva", Name: "University of Virginia"},
	{Slug: "ncsu", Name: "North Carolina State University"},
	{Slug: "unc", Name: "University of North Carolina"},
	{Slug: "clemson", Name: "Clemson University"},
	{Slug: "south-carolina", Name: "University of South Carolina"},
	{Slug: "maryland", Name: "University of Maryland"},
	{Slug: "delaware", Name: "University of Delaware"},
	{Slug: "west-virginia", Name: "West Virginia University"},
	{Slug: "pitt", Name: "University of Pittsburgh"},
	{Slug: "temple", Name: "Temple University"},
	{Slug: "drexel", Name: "Drexel University"},
	{Slug: "boston-u", Name: "Boston University"},
	{Slug: "northeastern", Name: "Northeastern University"},
	{Slug: "umass", Name: "University of Massachusetts"},
	{Slug: "uconn", Name: "University of Connecticut"},
}
