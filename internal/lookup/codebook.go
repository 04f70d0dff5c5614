package lookup

// Codebook tables small enough that they were published inline rather than
// as JSON files. Labels reproduce the codebook wording exactly.

// Court maps CourtCommittedBy codes.
func Court() Table {
	return Table{
		"0": "Transfer from Civil Institution",
		"1": "Special Sessions – New York City",
		"2": "County/Supreme Court – General Sessions",
		"5": "Preliminary Court",
		"8": "Children’s Court (Family Court after 9/62)",
		"9": "Court Not Stated",
	}
}

// Race maps Race codes. Codes 5 and 6 both read Puerto Rican in the
// codebook.
func Race() Table {
	return Table{
		"1": "White",
		"2": "Black",
		"3": "Oriental",
		"4": "American Indian",
		"5": "Puerto Rican",
		"6": "Puerto Rican",
	}
}

// MilitaryService maps MilitaryService codes.
func MilitaryService() Table {
	return Table{
		"0": "No military service",
		"1": "Military – honorable/general discharge",
		"2": "Military – discharged for mental disability",
		"3": "Military – discharged as undesirable (BCD/BCI)",
		"4": "Military – dishonorable discharge",
		"5": "Military – discharged as minor",
		"6": "Military – type not stated",
		"7": "Military – now in reserves",
		"8": "Military – active/AWOL",
		"9": "Military – not stated",
	}
}

// Education maps Education codes.
func Education() Table {
	return Table{
		"0": "Not stated",
		"1": "Illiterate/<3rd grade",
		"2": "Special/Remedial classes",
		"3": "3rd grade",
		"4": "4th grade",
		"5": "5th grade",
		"6": "6th grade",
		"7": "7th grade",
		"8": "8th grade",
		"9": "9th grade",
		"A": "10th grade",
		"B": "11th grade",
		"C": "12th grade",
		"E": "High school equivalency",
		"H": "High school graduate",
		"L": "Some college",
		"G": "College graduate",
		"M": "Master’s/Doctorate",
		"P": "Business college",
		"Q": "Technical institution",
		"R": "Other beyond high school",
	}
}

// Occupation maps Occupation codes.
func Occupation() Table {
	return Table{
		"0": "Professional",
		"1": "Semi-professional",
		"2": "Manager/Official/Proprietor",
		"3": "Clerical",
		"4": "Sales worker",
		"5": "Craftsman/Foreman",
		"6": "Operative/Mechanic",
		"7": "Service worker",
		"8": "Laborer",
		"9": "Not stated/Unemployed/Housewife/Student",
	}
}

// NarcoticsUse maps NarcoticsUse codes.
func NarcoticsUse() Table {
	return Table{
		"1": "Uses narcotics",
		"2": "Does not use narcotics",
		"4": "Denies, but suspected",
		"9": "Not stated whether uses",
	}
}

// MaritalStatus maps MaritalStatus codes.
func MaritalStatus() Table {
	return Table{
		"0": "Single",
		"1": "Married",
		"2": "Divorced/Annulled",
		"3": "Widowed",
		"4": "Separated",
		"6": "Common-law",
		"9": "Not stated",
	}
}

// PrevCriminalRecord maps PrevCriminalRecord codes.
func PrevCriminalRecord() Table {
	return Table{
		"0": "No prior adult record",
		"1": "No prior adult conviction (dismissal)",
		"2": "No prior institutional commitment",
		"3": "Local jail/penitentiary only",
		"4": "State/Federal institution only",
		"5": "State/Federal + probation",
		"6": "Local + State/Federal, no probation",
		"7": "Local + State/Federal + probation",
		"8": "State/Federal + local + probation",
		"9": "Data not available",
	}
}

// NaturalizationStatus maps NaturalizationStatus codes.
func NaturalizationStatus() Table {
	return Table{
		"1": "Alien",
		"5": "First papers only",
		"6": "Naturalized via military service",
		"7": "Naturalized (not via military)",
		"8": "Foreign-born U.S. citizen",
		"9": "Not stated",
		"-": "Not stated",
	}
}

// CrimeAttempted maps CrimeAttempted codes.
func CrimeAttempted() Table {
	return Table{
		"0": "Completed",
		"1": "Attempted",
	}
}
