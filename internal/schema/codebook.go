package schema

// Default returns the built-in layout for the 1950s-60s New York State
// inmate record codebook: 39 fields over an 80-column card image.
// DateOfBirth pivots against the receive year because inmates born before
// 1900 appear in mid-century receptions.
func Default() Layout {
	return Layout{Fields: []Field{
		{Name: "ReceivingInstitutionCode", Start: 0, End: 2},
		{Name: "InmateNumber", Start: 2, End: 8},
		{Name: "DateReceived", Start: 8, End: 13, Kind: KindDate, Format: FormatMDDYY, Pivot: Pivot1900},
		{Name: "CrimeCategory", Start: 13, End: 14},
		{Name: "SentenceType", Start: 14, End: 15},
		{Name: "DateOfBirth", Start: 15, End: 20, Kind: KindDate, Format: FormatMDDYY, Pivot: PivotBirth},
		{Name: "CrimeDetails", Start: 20, End: 24},
		{Name: "MinSentence", Start: 24, End: 27},
		{Name: "MaxSentence", Start: 27, End: 30},
		{Name: "CountyCommittedFrom", Start: 30, End: 32},
		{Name: "CourtCommittedBy", Start: 32, End: 33},
		{Name: "Race", Start: 33, End: 34},
		{Name: "AgeAtCommitment", Start: 34, End: 36},
		{Name: "Religion", Start: 36, End: 37},
		{Name: "Sex", Start: 37, End: 38},
		{Name: "IdentifierNumber", Start: 38, End: 44},
		{Name: "CheckDigit", Start: 44, End: 45},
		{Name: "YearsResidenceNY", Start: 45, End: 47},
		{Name: "MilitaryService", Start: 47, End: 48},
		{Name: "Education", Start: 48, End: 49},
		{Name: "Occupation", Start: 49, End: 50},
		{Name: "NarcoticsUse", Start: 50, End: 51},
		{Name: "MaritalStatus", Start: 51, End: 52},
		{Name: "PrevCriminalRecord", Start: 52, End: 54},
		{Name: "CommitmentsProbation", Start: 54, End: 55},
		{Name: "FinesSuspensions", Start: 55, End: 56},
		{Name: "TimeSpanEarliestAdultRecord", Start: 56, End: 57},
		{Name: "MinorPoliceContacts", Start: 57, End: 58},
		{Name: "SeriousPoliceContacts", Start: 58, End: 59},
		{Name: "CountryOfBirth", Start: 59, End: 61},
		{Name: "YearEnteredUS", Start: 61, End: 63},
		{Name: "NaturalizationStatus", Start: 63, End: 64},
		{Name: "PsychiatricClassification", Start: 64, End: 66},
		{Name: "InstitutionOriginal", Start: 66, End: 68},
		{Name: "OriginalMonthYear", Start: 68, End: 70},
		{Name: "MentalHygieneID", Start: 70, End: 71},
		{Name: "ReturnType", Start: 71, End: 72},
		{Name: "LatestReleaseDate", Start: 72, End: 75, Kind: KindDate, Format: FormatMYY, Pivot: Pivot1900},
		{Name: "LatestReturnDate", Start: 75, End: 78, Kind: KindDate, Format: FormatMDDYY, Pivot: Pivot1900},
		{Name: "CurrentInstitution", Start: 78, End: 80},
	}}
}
