// Package score holds the in-match point table.
//
// Keys mirror the configured point entries of the game settings; unknown
// keys score zero so a trimmed table never breaks resolution.
package score

// Key names a point table entry.
type Key string

const (
	MafKill           Key = "MafKill"
	MafKillCom        Key = "MafKillCom"
	MafKillOpposite   Key = "MafKillOpposite"
	CivilKillCivil    Key = "CivilKillCivil"
	CivilKillMaf      Key = "CivilKillMaf"
	CivilDayKillCom   Key = "CivilDayKillCom"
	ComKillCivil      Key = "ComKillCivil"
	ComKillMaf        Key = "ComKillMaf"
	SheriffKillCom    Key = "SheriffKillCom"
	DocHealCivil      Key = "DocHealCivil"
	DocHealMaf        Key = "DocHealMaf"
	DocHealCom        Key = "DocHealCom"
	HoodlumBlockCom   Key = "HoodlumBlockCom"
	HoodlumBlockMaf   Key = "HoodlumBlockMaf"
	WenchBlockCom     Key = "WenchBlockCom"
	WenchBlockMaf     Key = "WenchBlockMaf"
	LawyerCheckCom    Key = "LawyerCheckCom"
	JudgeJustifyCivil Key = "JudgeJustifyCivil"
	JudgeJustifyMaf   Key = "JudgeJustifyMaf"
	JudgeJustifyCom   Key = "JudgeJustifyCom"
	NeutralKill       Key = "NeutralKill"
	Win               Key = "Win"
	WinAndSurvive     Key = "WinAndSurvive"
	Survive           Key = "Survive"
	Draw              Key = "Draw"
)

// Table maps point keys to their award values.
type Table map[Key]int64

// Get returns the award for a key, zero when the key is not configured.
func (t Table) Get(key Key) int64 {
	return t[key]
}

// DefaultTable returns the standard point configuration.
func DefaultTable() Table {
	return Table{
		MafKill:           3,
		MafKillCom:        5,
		MafKillOpposite:   3,
		CivilKillCivil:    -5,
		CivilKillMaf:      5,
		CivilDayKillCom:   -5,
		ComKillCivil:      -5,
		ComKillMaf:        5,
		SheriffKillCom:    -5,
		DocHealCivil:      3,
		DocHealMaf:        -3,
		DocHealCom:        5,
		HoodlumBlockCom:   5,
		HoodlumBlockMaf:   3,
		WenchBlockCom:     5,
		WenchBlockMaf:     3,
		LawyerCheckCom:    5,
		JudgeJustifyCivil: 3,
		JudgeJustifyMaf:   -3,
		JudgeJustifyCom:   5,
		NeutralKill:       3,
		Win:               10,
		WinAndSurvive:     5,
		Survive:           2,
		Draw:              5,
	}
}
