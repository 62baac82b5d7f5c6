// pkg/model/defaults.go
package model

// Column names of the SATIAP feedback export, schema version 1. The survey
// tool emits the multi-select sub-option columns without headers; they arrive
// as "Unnamed: N" after header promotion.
const (
	ColRespondentID = "Respondent ID"
	ColCollectorID  = "Collector ID"
	ColStartDate    = "Start Date"
	ColEndDate      = "End Date"
	ColIPAddress    = "IP Address"

	colDepartment = "Nan ki depatman lopital / sant sante a ye ?"
	colSTCode     = "Antre kòd ST?"
	colLastVisit  = "Dat dènye vizit ou nan sant sante a oubyen lopital la ?"

	colNoteOverall    = "Kòman ou tap note sèvis ou resevwa nan sant sante a oubyen lopital la jeneralman ?"
	colNoteClean      = "Kòman ou tap note pwòprete nan sant sante a oubyen lopital la?"
	colNoteWelcome    = "Kòman ou tap note akèy nan sant sante a oubyen lopital la?"
	colNoteStaff      = "Kòman ou tap note sèvis pèsonèl yo bay nan sant sante a oubyen lopital la jeneralman ?"
	colNoteWait       = "Kòman ou tap note tan ou fè ap tann nan sant sante a oubyen lopital la jeneralman ?"
	colNoteDoctor     = "Kòman ou tap note sèvis Doktè yo bay nan sant sante a oubyen lopital la jeneralman ?"
	colNoteNurse      = "Kòman ou tap note sèvis Enfimyè yo bay nan sant sante a oubyen lopital la jeneralman ?"
	colNotePharmacist = "Kòman ou tap note sèvis Famasyen yo bay nan sant sante a oubyen lopital la jeneralman ?"
	colNoteSocial     = "Kòman ou tap note sèvis Sikològ / travayè sosyalyo bay nan sant sante a oubyen lopital la jeneralman ?"
	colNoteLab        = "Kòman ou tap note sèvis Laboratwa yo bay nan sant sante a oubyen lopital la jeneralman ?"

	colMistreated = "Eske moun yo mal gade ou nan sant sante a oubyen lopital la jeneralman ?"
	colService    = "Pou ki sèvis ou bay enfòmasyon sa yo "

	colCommentGeneral  = "Kòmantè ou ."
	colCommentFacility = "Kòmantè ou sou sant sante a oubyen lopital la."
	colCommentService  = "Kòmantè e sigjesyon ou sou sèvis ou jwenn?"
)

// Combined column names produced by consolidation.
const (
	ColHospitalCombined        = "Hospital_Combined"
	ColSatisfactionCombined    = "Satisfaction_Combined"
	ColDissatisfactionCombined = "Dissatisfaction_Combined"
	ColMistreatmentCombined    = "Mistreatment_Combined"
)

// FeedbackRulesV1 returns the transformation ruleset for version 1 of the
// feedback CSV export. The surgery script reproduces the legacy spreadsheet
// macro: positions are letter references against the layout current at each
// step, so the op order is part of the contract.
func FeedbackRulesV1() *Ruleset {
	return &Ruleset{
		SchemaVersion: "feedback-v1",
		IDColumn:      ColRespondentID,

		EncodingFixes: map[string]string{
			"Ã´": "ô",
			"Ã©": "é",
			"Ã¨": "è",
			"Ã ": "à",
			"Ã®": "î",
			"Ã§": "ç",
			"Ã»": "û",
			"Ã¢": "â",
			"Ã«": "ë",
			"Ã¯": "ï",
			"Ã¼": "ü",
			"Ã¶": "ö",
		},

		Surgery: []SurgeryOp{
			{Kind: SurgeryDelete, At: "AC"},
			{Kind: SurgeryMove, From: "V", To: "AA"},
			{Kind: SurgeryMove, From: "AJ", To: "AR"},
		},

		MergeGroups: []MergeGroup{
			{
				Name: ColHospitalCombined,
				Members: []string{
					"Nan ki lopital oubyen sant sante ou konn ale nan depatmant atibonit ?",
					"Nan ki lopital oubyen sant sante ou konn ale nan depatman sant?",
					"Nan ki lopital oubyen sant sante ou konn ale nan depatman grandans?",
					"Nan ki lopital oubyen sant sante ou konn ale nan depatman nip?",
					"Nan ki lopital oubyen sant sante ou konn ale nan depatman nò?",
					"Nan ki lopital oubyen sant sante ou konn ale nan depatman nòdès?",
					"Nan ki lopital oubyen sant sante ou konn ale nan depatman nòdwès?",
					"Nan ki lopital oubyen sant sante ou konn ale nan depatman wès?",
					"Nan ki lopital oubyen sant sante ou konn ale nan depatman sid?",
					"Nan ki lopital oubyen sant sante ou konn ale nan depatman sidès?",
				},
			},
			{
				Name: ColSatisfactionCombined,
				Members: []string{
					"De kisa ou satisfè nan sant sante a oubyen lopital la?",
					"Unnamed: 32",
					"Unnamed: 33",
					"Unnamed: 34",
					"Unnamed: 35",
				},
			},
			{
				Name: ColDissatisfactionCombined,
				Members: []string{
					"Ki pèsonèl ou pa satisfè de sèvis li ?",
					"Unnamed: 53",
					"Unnamed: 54",
					"Unnamed: 55",
					"Unnamed: 56",
				},
			},
			{
				Name: ColMistreatmentCombined,
				Members: []string{
					"Ki moun ki mal gade w nan sant sante oubyen lopital la ?",
					"Ki moun ki mal gade w nan sant sante oubyen lopital la ? (2)",
					"Unnamed: 43",
					"Unnamed: 44",
					"Unnamed: 45",
					"Unnamed: 46",
					"Unnamed: 47",
					"Unnamed: 48",
					"Unnamed: 49",
					"Unnamed: 50",
				},
			},
		},

		RatingColumns: []string{
			colNoteOverall,
			colNoteClean,
			colNoteWelcome,
			colNoteStaff,
			colNoteDoctor,
			colNoteNurse,
			colNotePharmacist,
			colNoteSocial,
			colNoteLab,
		},
		RatingScale: RatingScale{
			1: "1 Etwal",
			2: "2 Etwal",
			3: "3 Etwal",
			4: "4 Etwal",
			5: "5 Etwal",
		},

		DropColumns: []string{
			"Email Address",
			"First Name",
			"Last Name",
			"Custom Data 1",
			"language",
		},

		TextPolicies: []TextPolicy{
			{Column: colSTCode, Casing: CaseUpper},
			{Column: colCommentGeneral, Casing: CaseUnchanged},
			{Column: colCommentFacility, Casing: CaseUnchanged},
			{Column: colCommentService, Casing: CaseUnchanged},
			{Column: ColHospitalCombined, Casing: CaseUnchanged},
			{Column: ColSatisfactionCombined, Casing: CaseUnchanged},
			{Column: ColDissatisfactionCombined, Casing: CaseUnchanged},
			{Column: ColMistreatmentCombined, Casing: CaseUnchanged},
		},
	}
}

// FeedbackColumnsV1 is the expected output schema for version 1, used by the
// post-transform validation pass. Extra columns fail validation; the loader
// only ever sees tables in exactly this shape (order enforced by reordering).
func FeedbackColumnsV1() []string {
	return []string{
		ColRespondentID,
		ColCollectorID,
		ColStartDate,
		ColEndDate,
		ColIPAddress,
		colDepartment,
		colSTCode,
		colLastVisit,
		colNoteOverall,
		colNoteClean,
		colNoteWelcome,
		colNoteStaff,
		colNoteWait,
		colNoteDoctor,
		colNoteNurse,
		colNotePharmacist,
		colNoteSocial,
		colNoteLab,
		colMistreated,
		colService,
		colCommentGeneral,
		colCommentFacility,
		colCommentService,
		ColHospitalCombined,
		ColSatisfactionCombined,
		ColDissatisfactionCombined,
		ColMistreatmentCombined,
	}
}
